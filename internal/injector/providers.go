package injector

import (
	"github.com/google/wire"

	"github.com/TahliaK/wight-whale/internal/core/graphics"
	"github.com/TahliaK/wight-whale/internal/core/imaging"
	"github.com/TahliaK/wight-whale/internal/core/models"
	"github.com/TahliaK/wight-whale/internal/core/observability/log"
	"github.com/TahliaK/wight-whale/internal/core/xmlstore"
	"github.com/TahliaK/wight-whale/internal/server"
)

// Options carries everything the providers need from the command line.
type Options struct {
	SettingsPath string
	InputDir     string
	OutputDir    string
	ExportSubdir string
	ListenAddr   string
	LogLevel     string
	JSONLogs     bool
}

// App is the wired object graph used by cmd/wightwhale.
type App struct {
	Logger     *log.Logger
	Cache      *imaging.Cache
	Controller *graphics.Controller
	Server     *server.Server
}

var ProviderSet = wire.NewSet(
	ProvideLogger,
	ProvideCache,
	ProvideStore,
	ProvideController,
	ProvideServer,
	wire.Struct(new(App), "*"),
)

func ProvideLogger(opts Options) *log.Logger {
	level := log.ParseLevel(opts.LogLevel)
	if opts.JSONLogs {
		return log.New(level)
	}
	return log.NewDevelopment(level)
}

func ProvideCache() *imaging.Cache {
	return imaging.NewCache()
}

func ProvideStore(opts Options, logger *log.Logger) *xmlstore.Handler[models.MovingObject] {
	return xmlstore.NewHandler[models.MovingObject](
		xmlstore.WithOutputDir(opts.OutputDir),
		xmlstore.WithInputDir(opts.InputDir),
		xmlstore.WithLogger(logger),
	)
}

func ProvideController(opts Options, logger *log.Logger, store *xmlstore.Handler[models.MovingObject], cache *imaging.Cache) *graphics.Controller {
	return graphics.New(
		graphics.WithSettingsPath(opts.SettingsPath),
		graphics.WithLogger(logger),
		graphics.WithStore(store),
		graphics.WithExportSubdir(opts.ExportSubdir),
		graphics.WithImageCache(cache),
	)
}

func ProvideServer(opts Options, ctrl *graphics.Controller, logger *log.Logger) *server.Server {
	cfg := server.DefaultConfig()
	if opts.ListenAddr != "" {
		cfg.ListenAddr = opts.ListenAddr
	}
	return server.New(ctrl, cfg, logger)
}
