package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/TahliaK/wight-whale/internal/core/models"
	"github.com/TahliaK/wight-whale/internal/core/observability/log"
	"github.com/TahliaK/wight-whale/internal/core/settings"
	"github.com/TahliaK/wight-whale/internal/core/xmlstore"
	"github.com/TahliaK/wight-whale/internal/injector"
)

func main() {
	var (
		opts       injector.Options
		objectsDir string
		ticks      int
		serve      bool
	)
	flag.StringVar(&opts.SettingsPath, "settings", settings.DefaultPath, "graphics settings file (.xml or .yaml)")
	flag.StringVar(&opts.InputDir, "in", xmlstore.DefaultInputDir, "input directory for object documents")
	flag.StringVar(&opts.OutputDir, "out", xmlstore.DefaultOutputDir, "output directory for exported objects")
	flag.StringVar(&opts.ExportSubdir, "subdir", "", "subdirectory of -out to export into")
	flag.StringVar(&opts.ListenAddr, "addr", "127.0.0.1:8080", "telemetry listen address")
	flag.StringVar(&opts.LogLevel, "log-level", "info", "debug, info, warn, error or none")
	flag.BoolVar(&opts.JSONLogs, "json-logs", false, "log as JSON")
	flag.StringVar(&objectsDir, "objects", "", "directory of object documents to register on start")
	flag.IntVar(&ticks, "ticks", 0, "stop after this many ticks (0 runs until interrupted)")
	flag.BoolVar(&serve, "serve", true, "serve telemetry over HTTP and websocket")
	flag.Parse()

	if err := run(opts, objectsDir, ticks, serve); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(opts injector.Options, objectsDir string, ticks int, serve bool) error {
	app := injector.InitializeApp(opts)
	defer func() { _ = app.Logger.Sync() }()
	models.SetLogger(app.Logger.With(log.String("component", "models")))

	ctrl := app.Controller
	if objectsDir != "" {
		n, err := ctrl.ImportAll(objectsDir)
		if err != nil {
			app.Logger.Warn("Some objects failed to import", log.Error(err))
		}
		app.Logger.Info("Registered objects", log.Int("count", n))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if serve {
		if err := app.Server.Start(ctx); err != nil {
			return err
		}
		defer func() { _ = app.Server.Stop(context.Background()) }()
	}

	err := ctrl.Run(ctx, func(n int) {
		if serve {
			app.Server.Broadcast(n)
		}
		if ticks > 0 && n >= ticks {
			cancel()
		}
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	return ctrl.ExportAll()
}
