// Package wsexecutor serves submissions over a websocket connection. Each
// text message carries one JSON request and each reply one JSON result.
// Results are sent in completion order and matched by request id.
package wsexecutor

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/criyle/coderunner/cmd/coderunner/model"
	"github.com/criyle/coderunner/worker"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 50 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Register registers the handler
type Register interface {
	Register(*gin.Engine)
}

type wsHandle struct {
	worker worker.Worker
	logger *zap.Logger
}

// New creates new websocket handle
func New(worker worker.Worker, logger *zap.Logger) Register {
	return &wsHandle{
		worker: worker,
		logger: logger,
	}
}

func (h *wsHandle) Register(r *gin.Engine) {
	r.GET("/ws", h.handleWS)
}

func (h *wsHandle) handleWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.Error(err)
		return
	}
	resultCh := make(chan model.Result, 128)
	ctx, cancel := context.WithCancel(context.TODO())

	// read request
	go func() {
		defer cancel()
		conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			conn.SetReadDeadline(time.Now().Add(pongWait))
			return nil
		})

		for {
			req := new(model.Request)
			if err := conn.ReadJSON(req); err != nil {
				var ce *websocket.CloseError
				if !errors.As(err, &ce) {
					h.logger.Debug("ws read", zap.Error(err))
				}
				return
			}
			r := model.ConvertRequest(req)
			h.logger.Debug("ws request", zap.Stringer("request", r))
			go func() {
				rt := <-h.worker.Submit(ctx, r)
				select {
				case resultCh <- model.ConvertResponse(rt):
				case <-ctx.Done():
				}
			}()
		}
	}()

	// write result
	go func() {
		defer conn.Close()
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case r := <-resultCh:
				conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteJSON(r); err != nil {
					h.logger.Debug("ws write", zap.Error(err))
					return
				}
			case <-ticker.C:
				conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}()
}
