// Package settings describes the window and timing configuration of the
// graphics controller.
package settings

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultPath is where the controller looks for settings on start.
	DefaultPath = "Files/GraphicsController.xml"

	DefaultWindowTitle  = "WightWhale"
	DefaultWindowWidth  = 800
	DefaultWindowHeight = 600
	DefaultFPS          = 60
)

var (
	ErrInvalidSettings = errors.New("invalid graphics settings")
	ErrUnknownFormat   = errors.New("unknown settings format")
)

type Settings struct {
	XMLName      xml.Name `xml:"graphicsSettings" json:"-" yaml:"-"`
	WindowTitle  string   `xml:"windowTitle" json:"windowTitle" yaml:"window_title"`
	WindowWidth  int      `xml:"windowWidth" json:"windowWidth" yaml:"window_width"`
	WindowHeight int      `xml:"windowHeight" json:"windowHeight" yaml:"window_height"`
	FPS          int      `xml:"fps" json:"fps" yaml:"fps"`
}

// Default returns the settings used when nothing can be imported.
func Default() Settings {
	return Settings{
		WindowTitle:  DefaultWindowTitle,
		WindowWidth:  DefaultWindowWidth,
		WindowHeight: DefaultWindowHeight,
		FPS:          DefaultFPS,
	}
}

// Validate rejects settings the controller cannot run with.
func (s Settings) Validate() error {
	if s.WindowWidth <= 0 || s.WindowHeight <= 0 {
		return fmt.Errorf("%w: window %dx%d", ErrInvalidSettings, s.WindowWidth, s.WindowHeight)
	}
	if s.FPS <= 0 {
		return fmt.Errorf("%w: fps %d", ErrInvalidSettings, s.FPS)
	}
	return nil
}

// StepSize is the tick length in whole milliseconds, 1000/FPS.
func (s Settings) StepSize() int {
	if s.FPS <= 0 {
		return 0
	}
	return 1000 / s.FPS
}

// LoadXML decodes settings from an XML document.
func LoadXML(r io.Reader) (Settings, error) {
	var s Settings
	if err := xml.NewDecoder(r).Decode(&s); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// LoadYAML decodes settings from a YAML document.
func LoadYAML(r io.Reader) (Settings, error) {
	var s Settings
	if err := yaml.NewDecoder(r).Decode(&s); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Load reads path, choosing the decoder by extension, and validates the
// result.
func Load(path string) (Settings, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return Settings{}, err
	}
	defer func() { _ = f.Close() }()

	var s Settings
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xml":
		s, err = LoadXML(f)
	case ".yaml", ".yml":
		s, err = LoadYAML(f)
	default:
		return Settings{}, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
	if err != nil {
		return Settings{}, fmt.Errorf("decode %s: %w", path, err)
	}
	if err = s.Validate(); err != nil {
		return Settings{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Interval is StepSize as a duration.
func (s Settings) Interval() time.Duration {
	return time.Duration(s.StepSize()) * time.Millisecond
}
