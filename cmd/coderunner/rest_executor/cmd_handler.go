package restexecutor

import (
	"errors"
	"net/http"

	"github.com/criyle/coderunner/cmd/coderunner/model"
	"github.com/criyle/coderunner/language"
	"github.com/criyle/coderunner/worker"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Languages lists and resolves supported languages
type Languages interface {
	Resolve(name string) (language.NewFunc, error)
	List() []language.Info
}

type cmdHandle struct {
	worker    worker.Worker
	languages Languages
	logger    *zap.Logger
}

// NewCmdHandle creates a new command handle
func NewCmdHandle(worker worker.Worker, languages Languages, logger *zap.Logger) Register {
	return &cmdHandle{
		worker:    worker,
		languages: languages,
		logger:    logger,
	}
}

func (c *cmdHandle) Register(r *gin.Engine) {
	// Run handle
	r.POST("/run", c.handleRun)
	r.GET("/languages", c.handleLanguages)
}

func (c *cmdHandle) handleRun(ctx *gin.Context) {
	var req model.Request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.Error(err)
		ctx.AbortWithStatusJSON(http.StatusBadRequest, err.Error())
		return
	}
	if _, err := c.languages.Resolve(req.Language); err != nil {
		if errors.Is(err, language.ErrUnsupportedLanguage) {
			ctx.AbortWithStatusJSON(http.StatusBadRequest, err.Error())
			return
		}
		ctx.Error(err)
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, err.Error())
		return
	}

	r := model.ConvertRequest(&req)
	c.logger.Debug("request", zap.Stringer("request", r))
	rt := <-c.worker.Submit(ctx.Request.Context(), r)
	res := model.ConvertResponse(rt)
	c.logger.Debug("response", zap.Stringer("response", res))
	ctx.JSON(http.StatusOK, res)
}

func (c *cmdHandle) handleLanguages(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, model.ConvertLanguages(c.languages.List()))
}
