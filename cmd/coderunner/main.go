// Command coderunner starts a http server that compiles and runs untrusted
// submissions in a limiter wrapped subprocess.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"net/http/pprof"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/criyle/coderunner/cmd/coderunner/config"
	restexecutor "github.com/criyle/coderunner/cmd/coderunner/rest_executor"
	"github.com/criyle/coderunner/cmd/coderunner/version"
	wsexecutor "github.com/criyle/coderunner/cmd/coderunner/ws_executor"
	"github.com/criyle/coderunner/language"
	"github.com/criyle/coderunner/runner"
	"github.com/criyle/coderunner/worker"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/google/shlex"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	ginprometheus "github.com/zsais/go-gin-prometheus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
)

var logger *zap.Logger

func main() {
	conf := loadConf()
	if conf.Version {
		fmt.Println(version.Version)
		return
	}
	initLogger(conf)
	defer logger.Sync()
	if ce := logger.Check(zap.InfoLevel, "Config loaded"); ce != nil {
		ce.Write(zap.String("config", fmt.Sprintf("%+v", conf)))
	}
	warnIfNotLinux()

	reg := newRegistry(conf)
	work := newWorker(conf, reg)
	work.Start()
	logger.Info("Worker started",
		zap.Int("parallelism", conf.Parallelism),
		zap.String("dir", conf.Dir),
		zap.Stringer("outputLimit", conf.OutputLimit))

	servers := []initFunc{
		cleanUpWorker(work),
		initHTTPServer(conf, work, reg),
		initMonitorHTTPServer(conf),
	}

	// Gracefully shutdown, with signal / HTTP server / Monitor HTTP server
	sig := make(chan os.Signal, 1+len(servers))

	stops := []stopFunc{}
	for _, s := range servers {
		start, stop := s()
		if start != nil {
			go func() {
				start()
				sig <- os.Interrupt
			}()
		}
		if stop != nil {
			stops = append(stops, stop)
		}
	}

	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	signal.Reset(syscall.SIGINT, syscall.SIGTERM)

	logger.Info("Shutting Down...")

	ctx, cancel := context.WithTimeout(context.TODO(), time.Second*3)
	defer cancel()

	var eg errgroup.Group
	for _, s := range stops {
		eg.Go(func() error {
			return s(ctx)
		})
	}

	go func() {
		logger.Info("Shutdown Finished", zap.Error(eg.Wait()))
		cancel()
	}()
	<-ctx.Done()
}

func warnIfNotLinux() {
	if runtime.GOOS != "linux" {
		logger.Warn("Platform is not primarily supported", zap.String("GOOS", runtime.GOOS))
		logger.Warn("Memory and signal telemetry are only reported on Linux")
	}
}

func loadConf() *config.Config {
	var conf config.Config
	if err := conf.Load(); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		log.Fatalln("load config failed ", err)
	}
	return &conf
}

type (
	stopFunc func(ctx context.Context) error
	initFunc func() (start func(), cleanUp stopFunc)
)

func cleanUpWorker(work worker.Worker) initFunc {
	return func() (start func(), cleanUp stopFunc) {
		return nil, func(ctx context.Context) error {
			work.Shutdown()
			logger.Info("Worker shutdown")
			return nil
		}
	}
}

func initHTTPServer(conf *config.Config, work worker.Worker, reg *language.Registry) initFunc {
	return func() (start func(), cleanUp stopFunc) {
		r := initHTTPMux(conf, work, reg)
		srv := http.Server{
			Addr:    conf.HTTPAddr,
			Handler: r,
		}

		return func() {
				lis, err := newListener(conf.HTTPAddr, 0)
				if err != nil {
					logger.Error("Http server listen failed", zap.Error(err))
					return
				}
				logger.Info("Starting http server", zap.String("addr", conf.HTTPAddr), zap.String("listener", printListener(lis)))
				if err := srv.Serve(lis); errors.Is(err, http.ErrServerClosed) {
					logger.Info("Http server stopped", zap.Error(err))
				} else {
					logger.Error("Http server stopped", zap.Error(err))
				}
			}, func(ctx context.Context) error {
				logger.Info("Http server shutting down")
				return srv.Shutdown(ctx)
			}
	}
}

func initMonitorHTTPServer(conf *config.Config) initFunc {
	return func() (start func(), cleanUp stopFunc) {
		mr := initMonitorHTTPMux(conf)
		if mr == nil {
			return nil, nil
		}
		msrv := http.Server{
			Addr:    conf.MonitorAddr,
			Handler: mr,
		}
		return func() {
				lis, err := newListener(conf.MonitorAddr, 1)
				if err != nil {
					logger.Error("Monitoring http listen failed", zap.Error(err))
					return
				}
				logger.Info("Starting monitoring http server", zap.String("addr", conf.MonitorAddr), zap.String("listener", printListener(lis)))
				logger.Info("Monitoring http server stopped", zap.Error(msrv.Serve(lis)))
			}, func(ctx context.Context) error {
				logger.Info("Monitoring http server shutdown")
				return msrv.Shutdown(ctx)
			}
	}
}

func initLogger(conf *config.Config) {
	if conf.Silent {
		logger = zap.NewNop()
		return
	}

	var err error
	if conf.Release {
		logger, err = zap.NewProduction()
	} else {
		config := zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		if !conf.EnableDebug {
			config.Level.SetLevel(zap.InfoLevel)
		}
		logger, err = config.Build()
	}
	if err != nil {
		log.Fatalln("init logger failed ", err)
	}
}

func newRegistry(conf *config.Config) *language.Registry {
	tc, err := language.LoadToolchain(conf.ToolchainConf)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		logger.Info("Toolchain config not found, using defaults", zap.String("path", conf.ToolchainConf))
	case err != nil:
		logger.Fatal("Load toolchain config failed", zap.String("path", conf.ToolchainConf), zap.Error(err))
	}
	limiter, err := shlex.Split(conf.Limiter)
	if err != nil || len(limiter) == 0 {
		logger.Fatal("Invalid limiter command", zap.String("limiter", conf.Limiter), zap.Error(err))
	}
	tc.Runguard = limiter

	reg, err := language.NewRegistry(tc, language.DefaultLanguages()...)
	if err != nil {
		logger.Fatal("Create language registry failed", zap.Error(err))
	}
	return reg
}

func newWorker(conf *config.Config, reg *language.Registry) worker.Worker {
	if conf.Dir != "" {
		if err := os.MkdirAll(conf.Dir, 0o755); err != nil {
			logger.Fatal("Failed to create work dir", zap.String("dir", conf.Dir), zap.Error(err))
		}
	}
	r := runner.New(runner.Config{
		Registry:    reg,
		Root:        conf.Dir,
		KeepWorkDir: conf.KeepWorkDir,
		OutputLimit: *conf.OutputLimit,
		Logger:      logger.Named("runner"),
	})
	var observer func(worker.Response)
	if conf.EnableMetrics {
		observer = newExecObserver(reg.List())
	}
	return worker.New(worker.Config{
		Runner:       r,
		Parallelism:  conf.Parallelism,
		ExecObserver: observer,
	})
}

func initHTTPMux(conf *config.Config, work worker.Worker, reg *language.Registry) http.Handler {
	if conf.Release {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(ginzap.Ginzap(logger, "", false))
	r.Use(ginzap.RecoveryWithZap(logger, true))

	// Metrics Handle
	if conf.EnableMetrics {
		initGinMetrics(r)
	}

	// Version handle
	r.GET("/version", handleVersion)

	// Add auth token
	if conf.AuthToken != "" {
		r.Use(tokenAuth(conf.AuthToken))
		logger.Info("Attach token auth", zap.String("token", conf.AuthToken))
	}

	// Rest Handle
	cmdHandle := restexecutor.NewCmdHandle(work, reg, logger)
	cmdHandle.Register(r)

	// WebSocket Handle
	wsHandle := wsexecutor.New(work, logger)
	wsHandle.Register(r)

	return r
}

func initMonitorHTTPMux(conf *config.Config) http.Handler {
	if !conf.EnableMetrics && !conf.EnableDebug {
		return nil
	}
	mux := http.NewServeMux()
	if conf.EnableMetrics {
		mux.Handle("/metrics", promhttp.Handler())
	}
	if conf.EnableDebug {
		initDebugRoute(mux)
	}
	return mux
}

func initDebugRoute(mux *http.ServeMux) {
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
}

func initGinMetrics(r *gin.Engine) {
	p := ginprometheus.NewWithConfig(ginprometheus.Config{
		Subsystem:          "gin",
		DisableBodyReading: true,
	})
	p.ReqCntURLLabelMappingFn = func(c *gin.Context) string {
		return c.FullPath()
	}
	r.Use(p.HandlerFunc())
}

func tokenAuth(token string) gin.HandlerFunc {
	const bearer = "Bearer "
	return func(c *gin.Context) {
		reqToken := c.GetHeader("Authorization")
		if strings.HasPrefix(reqToken, bearer) && reqToken[len(bearer):] == token {
			c.Next()
			return
		}
		c.AbortWithStatus(http.StatusUnauthorized)
	}
}

func handleVersion(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"buildVersion": version.Version,
		"goVersion":    runtime.Version(),
		"platform":     runtime.GOARCH,
		"os":           runtime.GOOS,
	})
}
