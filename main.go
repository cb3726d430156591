package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/chaos-io/garment2layers/config"
	"github.com/chaos-io/garment2layers/handler"
	"github.com/chaos-io/garment2layers/middleware"
	"github.com/chaos-io/garment2layers/pipeline"
	"github.com/chaos-io/garment2layers/util"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config")
	serve := flag.Bool("serve", false, "run the HTTP server instead of a one-shot batch")
	flag.Parse()

	var cfg *config.Config
	if *configPath == "config.yaml" {
		cfg = config.New()
	} else {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load config %s: %v\n", *configPath, err)
			os.Exit(1)
		}
	}

	log, err := util.NewLogger(cfg.Server.Mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("garment2layers",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
		zap.String("catalog_dir", cfg.Catalog.Dir))

	runner := pipeline.NewRunner(cfg, log)
	notifier := pipeline.NewNotifier(cfg.Notify, log)

	if !*serve {
		report, err := runner.Run(pipeline.CatalogFromConfig(cfg))
		if err != nil {
			log.Fatal("batch run aborted", zap.Error(err))
		}
		notifier.Notify(context.Background(), report)
		log.Info("done",
			zap.String("run_id", report.RunID),
			zap.Int("succeeded", report.Succeeded),
			zap.Int("failed", report.Failed))
		return
	}

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger(log))
	handler.New(cfg, log, runner, notifier).Register(r)

	if cfg.Schedule.Spec != "" {
		sched := cron.New()
		_, err := sched.AddFunc(cfg.Schedule.Spec, func() {
			report, err := runner.Run(pipeline.CatalogFromConfig(cfg))
			if err != nil {
				log.Error("scheduled batch run aborted", zap.Error(err))
				return
			}
			notifier.Notify(context.Background(), report)
		})
		if err != nil {
			log.Fatal("invalid schedule spec", zap.String("spec", cfg.Schedule.Spec), zap.Error(err))
		}
		sched.Start()
		defer sched.Stop()
		log.Info("batch schedule active", zap.String("spec", cfg.Schedule.Spec))
	}

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	log.Info("listening", zap.String("addr", cfg.Server.Addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("server stopped", zap.Error(err))
	}
}
