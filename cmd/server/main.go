package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/atelier-mireille/backend/config"
	"github.com/atelier-mireille/backend/internal/app"
	"github.com/atelier-mireille/backend/internal/notify"
	"github.com/atelier-mireille/backend/internal/store"
	"github.com/atelier-mireille/backend/internal/uploads"
	"github.com/atelier-mireille/backend/internal/webapi"
	"github.com/atelier-mireille/backend/internal/webserver"
	"go.uber.org/zap"
)

var (
	cfile  = flag.String("c", "atelier.yml", "config file")
	initdb = flag.Bool("initdb", false, "drop and recreate all tables, then exit")
)

func main() {
	flag.Parse()

	cfg := config.LoadConfig(*cfile)
	application := app.NewApplication(cfg)
	application.Init(cfg)
	defer application.Release()

	if *initdb {
		application.InitDb()
		zap.L().Info("database initialized")
		return
	}

	// The notification channel handle is constructed here and owned by the
	// process, not rebuilt per request.
	channel := notify.NewTelegramChannel(cfg.Notify)
	dispatcher := notify.NewDispatcher(channel, application, cfg.Notify.Enabled)

	webserver.Init(application)
	webapi.Register(&webapi.Env{
		Store:    store.New(application.DB(), cfg.Web.PublicURL),
		Uploads:  uploads.NewStore(cfg.Web.UploadDir),
		Notifier: dispatcher,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- webserver.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			zap.L().Fatal("http server failed", zap.Error(err))
		}
	case sig := <-sigCh:
		zap.L().Info("shutting down", zap.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := webserver.Shutdown(ctx); err != nil {
			zap.L().Warn("shutdown error", zap.Error(err))
		}
	}
}
