package graphics

import (
	"github.com/TahliaK/wight-whale/internal/core/imaging"
	"github.com/TahliaK/wight-whale/internal/core/models"
	"github.com/TahliaK/wight-whale/internal/core/observability/log"
	"github.com/TahliaK/wight-whale/internal/core/settings"
	"github.com/TahliaK/wight-whale/internal/core/xmlstore"
)

type config struct {
	settingsPath  string
	settings      *settings.Settings
	logger        log.Log
	store         *xmlstore.Handler[models.MovingObject]
	exportSubdir  string
	exportWorkers int
	cache         *imaging.Cache
	decayVelocity bool
}

func defaultConfig() config {
	return config{
		settingsPath:  settings.DefaultPath,
		exportWorkers: 4,
	}
}

type Option func(*config)

// WithSettingsPath imports settings from path instead of settings.DefaultPath.
func WithSettingsPath(path string) Option {
	return func(c *config) { c.settingsPath = path }
}

// WithSettings skips the import and uses s as given.
func WithSettings(s settings.Settings) Option {
	return func(c *config) { c.settings = &s }
}

func WithLogger(l log.Log) Option {
	return func(c *config) { c.logger = l }
}

// WithStore sets the XML handler used by ExportAll and ImportAll.
func WithStore(h *xmlstore.Handler[models.MovingObject]) Option {
	return func(c *config) { c.store = h }
}

// WithExportSubdir writes exports below <output>/<dir>.
func WithExportSubdir(dir string) Option {
	return func(c *config) { c.exportSubdir = dir }
}

// WithExportWorkers bounds the number of files written at once.
func WithExportWorkers(n int) Option {
	return func(c *config) { c.exportWorkers = n }
}

// WithImageCache makes ImportAll load sprites through cache.
func WithImageCache(cache *imaging.Cache) Option {
	return func(c *config) { c.cache = cache }
}

// WithVelocityDecay makes StepDelta store the scaled, truncated velocity
// back on every object, so repeated small deltas wear velocity down to zero.
func WithVelocityDecay(enabled bool) Option {
	return func(c *config) { c.decayVelocity = enabled }
}
