package graphics

import (
	"time"

	"github.com/TahliaK/wight-whale/internal/core/settings"
)

func (c *Controller) WindowTitle() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.settings.WindowTitle
}

func (c *Controller) SetWindowTitle(title string) {
	c.mu.Lock()
	c.settings.WindowTitle = title
	c.mu.Unlock()
}

func (c *Controller) WindowWidth() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.settings.WindowWidth
}

func (c *Controller) SetWindowWidth(width int) {
	c.mu.Lock()
	c.settings.WindowWidth = width
	c.mu.Unlock()
}

func (c *Controller) WindowHeight() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.settings.WindowHeight
}

func (c *Controller) SetWindowHeight(height int) {
	c.mu.Lock()
	c.settings.WindowHeight = height
	c.mu.Unlock()
}

func (c *Controller) Settings() settings.Settings {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.settings
}

// SetSettings replaces the settings and recomputes the step size when the
// new FPS is positive.
func (c *Controller) SetSettings(s settings.Settings) {
	c.mu.Lock()
	c.settings = s
	if s.FPS > 0 {
		c.stepSize = s.StepSize()
	}
	c.mu.Unlock()
}

// StepSize is the number of milliseconds between ticks.
func (c *Controller) StepSize() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stepSize
}

func (c *Controller) SetStepSize(ms int) {
	c.mu.Lock()
	c.stepSize = ms
	c.mu.Unlock()
}

func (c *Controller) StepInterval() time.Duration {
	return time.Duration(c.StepSize()) * time.Millisecond
}

func (c *Controller) Running() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.running
}

// SetRunning pauses or resumes Step.
func (c *Controller) SetRunning(running bool) {
	c.mu.Lock()
	c.running = running
	c.mu.Unlock()
}
