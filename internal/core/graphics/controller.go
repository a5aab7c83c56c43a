// Package graphics tracks moving objects by ID and advances them each tick.
package graphics

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/TahliaK/wight-whale/internal/core/imaging"
	"github.com/TahliaK/wight-whale/internal/core/models"
	"github.com/TahliaK/wight-whale/internal/core/observability/log"
	"github.com/TahliaK/wight-whale/internal/core/settings"
	"github.com/TahliaK/wight-whale/internal/core/xmlstore"
	"github.com/TahliaK/wight-whale/pkg/concurrent"
)

// Controller is the registry of moving objects plus the window settings the
// driving loop runs with. A Controller is always initialized; New is the
// only way to get one.
type Controller struct {
	mu       sync.RWMutex
	items    map[string]*models.MovingObject
	settings settings.Settings
	stepSize int
	running  bool

	decayVelocity bool

	store         *xmlstore.Handler[models.MovingObject]
	exportSubdir  string
	exportWorkers int
	cache         *imaging.Cache

	logger log.Log
}

// ObjectState is a read-only copy of one registered object.
type ObjectState struct {
	ID        string `json:"id"`
	Visible   bool   `json:"visible"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	DX        int    `json:"dx"`
	DY        int    `json:"dy"`
	ImageFile string `json:"imageFile,omitempty"`
}

// New builds a ready controller. Settings are imported from the configured
// path; when that fails the defaults are used.
func New(opts ...Option) *Controller {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = log.Provide()
	}
	logger := cfg.logger.With(log.String("component", "graphics"))

	if cfg.store == nil {
		cfg.store = xmlstore.NewHandler[models.MovingObject](xmlstore.WithLogger(cfg.logger))
	}

	c := &Controller{
		items:         make(map[string]*models.MovingObject),
		running:       true,
		decayVelocity: cfg.decayVelocity,
		store:         cfg.store,
		exportSubdir:  cfg.exportSubdir,
		exportWorkers: cfg.exportWorkers,
		cache:         cfg.cache,
		logger:        logger,
	}

	if cfg.settings != nil {
		c.settings = *cfg.settings
	} else {
		s, err := settings.Load(cfg.settingsPath)
		if err != nil {
			logger.Warn("Settings import failed, using defaults",
				log.String("path", cfg.settingsPath),
				log.Error(err))
			s = settings.Default()
		}
		c.settings = s
	}
	c.stepSize = c.settings.StepSize()

	logger.Info("Initialized successfully.",
		log.String("title", c.settings.WindowTitle),
		log.Int("fps", c.settings.FPS),
		log.Int("step_ms", c.stepSize))

	return c
}

// Register stores a moving copy of obj under its ID. Only the visual
// attributes are copied: size, ID, image and image file. The copy starts at
// (0,0), hidden, with zero velocity.
func (c *Controller) Register(obj *models.GameObject) error {
	if obj == nil {
		return ErrNilObject
	}
	if obj.ID == "" {
		c.logger.Error("Failed to register object; no ID assigned.")
		return ErrNoID
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkFreeLocked(obj.ID, func(existing *models.MovingObject) bool {
		return existing.SameVisual(obj)
	}); err != nil {
		return err
	}

	c.items[obj.ID] = models.FromGameObject(obj)
	c.logger.Info("Successfully registered", log.String("id", obj.ID))
	return nil
}

// RegisterMoving stores obj itself, keeping its position and velocity.
func (c *Controller) RegisterMoving(obj *models.MovingObject) error {
	if obj == nil {
		return ErrNilObject
	}
	if obj.ID == "" {
		c.logger.Error("Failed to register object; no ID assigned.")
		return ErrNoID
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkFreeLocked(obj.ID, func(existing *models.MovingObject) bool {
		return existing == obj || existing.SameVisual(&obj.GameObject)
	}); err != nil {
		return err
	}

	c.items[obj.ID] = obj
	c.logger.Info("Successfully registered", log.String("id", obj.ID))
	return nil
}

func (c *Controller) checkFreeLocked(id string, same func(*models.MovingObject) bool) error {
	existing, ok := c.items[id]
	if !ok {
		return nil
	}
	if same(existing) {
		c.logger.Info("Failed to register, object already registered.", log.String("id", id))
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, id)
	}
	c.logger.Error("Failed to register, ID already in use.", log.String("id", id))
	return fmt.Errorf("%w: %s", ErrIDInUse, id)
}

// Get returns the object registered under id.
func (c *Controller) Get(id string) (*models.MovingObject, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	m, ok := c.items[id]
	return m, ok
}

// Items returns a copy of the registry map. The objects are shared.
func (c *Controller) Items() map[string]*models.MovingObject {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return maps.Clone(c.items)
}

// All iterates over a copy of the registry taken when iteration starts.
func (c *Controller) All() iter.Seq2[string, *models.MovingObject] {
	return maps.All(c.Items())
}

func (c *Controller) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Step moves every object by its velocity once. Does nothing while the
// controller is not running.
func (c *Controller) Step() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.running {
		return
	}
	for _, m := range c.items {
		m.Step()
	}
}

// StepDelta moves every object by its velocity scaled by delta, truncated to
// whole pixels. It runs regardless of the running flag.
func (c *Controller) StepDelta(delta float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, m := range c.items {
		if c.decayVelocity {
			m.Velocity = m.Velocity.Scale(delta)
			m.Step()
			continue
		}
		m.StepScaled(delta)
	}
}

// Run calls Step every StepInterval until ctx is done. tick, if not nil, is
// called after each step with the tick number starting at 1.
func (c *Controller) Run(ctx context.Context, tick func(n int)) error {
	interval := c.StepInterval()
	if interval <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidStepSize, interval)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	c.logger.Info("Loop started", log.Duration("interval", interval))
	for n := 1; ; n++ {
		select {
		case <-ctx.Done():
			c.logger.Info("Loop stopped", log.Int("ticks", n-1))
			return ctx.Err()
		case <-ticker.C:
		}

		c.Step()
		if tick != nil {
			tick(n)
		}
		if err := ctx.Err(); err != nil {
			c.logger.Info("Loop stopped", log.Int("ticks", n))
			return err
		}
	}
}

// ExportAll writes every registered object to its own XML file. A failing
// object does not stop the others; all failures are joined.
func (c *Controller) ExportAll() error {
	c.mu.RLock()
	snapshot := make([]models.MovingObject, 0, len(c.items))
	for _, m := range c.items {
		snapshot = append(snapshot, *m)
	}
	c.mu.RUnlock()

	err := concurrent.Each(snapshot, c.exportWorkers, func(m models.MovingObject) error {
		return c.store.Write(&m, c.exportSubdir, m.ID)
	})
	if err != nil {
		c.logger.Error("Export finished with errors", log.Int("objects", len(snapshot)), log.Error(err))
		return err
	}
	c.logger.Info("Exported all objects", log.Int("objects", len(snapshot)))
	return nil
}

// ImportAll registers every object document found in dir and returns how
// many were registered. When the controller has an image cache, sprites are
// loaded at the stored size; objects whose sprite fails still register.
func (c *Controller) ImportAll(dir string) (int, error) {
	items, err := c.store.ReadAll(dir)
	if items == nil && err != nil {
		return 0, err
	}

	errs := []error{err}
	count := 0
	for _, m := range items {
		if c.cache != nil && m.ImageFile != "" {
			if lerr := m.LoadWith(c.cache, m.ImageFile, false); lerr != nil {
				errs = append(errs, fmt.Errorf("%s: %w", m.ID, lerr))
			}
		}
		if rerr := c.RegisterMoving(m); rerr != nil {
			errs = append(errs, rerr)
			continue
		}
		count++
	}

	c.logger.Info("Imported objects", log.String("dir", dir), log.Int("objects", count))
	return count, errors.Join(errs...)
}

// Clear drops every registered object.
func (c *Controller) Clear() {
	c.mu.Lock()
	c.items = make(map[string]*models.MovingObject)
	c.mu.Unlock()
	c.logger.Info("Graphics items cleared.")
}

// Snapshot returns the state of every object ordered by ID.
func (c *Controller) Snapshot() []ObjectState {
	c.mu.RLock()
	out := make([]ObjectState, 0, len(c.items))
	for _, m := range c.items {
		out = append(out, ObjectState{
			ID:        m.ID,
			Visible:   m.Visible,
			X:         m.Position.X,
			Y:         m.Position.Y,
			Width:     m.Size.Width,
			Height:    m.Size.Height,
			DX:        m.Velocity.X,
			DY:        m.Velocity.Y,
			ImageFile: m.ImageFile,
		})
	}
	c.mu.RUnlock()

	slices.SortFunc(out, func(a, b ObjectState) int { return strings.Compare(a.ID, b.ID) })
	return out
}
