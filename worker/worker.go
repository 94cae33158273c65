// Package worker runs independent submissions in parallel with bounded
// concurrency.
package worker

import (
	"context"
	"errors"
	"sync"

	"github.com/criyle/coderunner/runner"
)

const maxWaiting = 512

var errShutdown = errors.New("worker is shutting down")

// Runner runs a single submission
type Runner interface {
	Run(ctx context.Context, lang, source, stdin string) runner.Outcome
}

// Config defines worker configuration
type Config struct {
	Runner       Runner
	Parallelism  int
	ExecObserver func(Response)
}

// Worker defines interface for executor
type Worker interface {
	Start()
	Submit(context.Context, *Request) <-chan Response
	Execute(context.Context, *Request) <-chan Response
	Shutdown()
}

// worker defines executor worker
type worker struct {
	runner      Runner
	parallelism int

	execObserver func(Response)

	startOnce sync.Once
	stopOnce  sync.Once
	wg        sync.WaitGroup
	workCh    chan workRequest
	done      chan struct{}
}

type workRequest struct {
	*Request
	context.Context
	resultCh chan<- Response
}

// New creates new worker
func New(conf Config) Worker {
	parallelism := conf.Parallelism
	if parallelism <= 0 {
		parallelism = 1
	}
	return &worker{
		runner:       conf.Runner,
		parallelism:  parallelism,
		execObserver: conf.ExecObserver,
		workCh:       make(chan workRequest, maxWaiting),
		done:         make(chan struct{}),
	}
}

// Start starts worker loops with given parallelism
func (w *worker) Start() {
	w.startOnce.Do(func() {
		w.wg.Add(w.parallelism)
		for i := 0; i < w.parallelism; i++ {
			go w.loop()
		}
	})
}

// Submit queues a single request behind the parallelism limit
func (w *worker) Submit(ctx context.Context, req *Request) <-chan Response {
	ch := make(chan Response, 1)
	wq := workRequest{
		Request:  req,
		Context:  ctx,
		resultCh: ch,
	}
	select {
	case <-w.done:
		w.reject(wq, errShutdown)
		return ch
	default:
	}
	select {
	case w.workCh <- wq:
	case <-ctx.Done():
		w.reject(wq, ctx.Err())
	case <-w.done:
		w.reject(wq, errShutdown)
	}
	return ch
}

// Execute will execute the request in new goroutine (bypass the parallelism limit)
func (w *worker) Execute(ctx context.Context, req *Request) <-chan Response {
	ch := make(chan Response, 1)
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.workDoRun(workRequest{
			Request:  req,
			Context:  ctx,
			resultCh: ch,
		})
	}()
	return ch
}

// Shutdown waits all worker to finish
func (w *worker) Shutdown() {
	w.stopOnce.Do(func() {
		close(w.done)
		w.wg.Wait()
		for {
			select {
			case req := <-w.workCh:
				w.reject(req, errShutdown)
			default:
				return
			}
		}
	})
}

func (w *worker) loop() {
	defer w.wg.Done()
	for {
		select {
		case req := <-w.workCh:
			// the submitter may have gone while queued
			if err := req.Context.Err(); err != nil {
				w.reject(req, err)
				continue
			}
			w.workDoRun(req)
		case <-w.done:
			return
		}
	}
}

func (w *worker) workDoRun(req workRequest) {
	rt := Response{
		RequestID: req.RequestID,
		Language:  req.Language,
		Outcome:   w.runner.Run(req.Context, req.Language, req.Source, req.Input),
	}
	if w.execObserver != nil {
		w.execObserver(rt)
	}
	req.resultCh <- rt
}

func (w *worker) reject(req workRequest, err error) {
	req.resultCh <- Response{
		RequestID: req.RequestID,
		Language:  req.Language,
		Outcome:   runner.InternalError(err),
	}
}
