package settings

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	s := Default()
	require.NoError(t, s.Validate())
	assert.Equal(t, DefaultWindowTitle, s.WindowTitle)
	assert.Equal(t, 16, s.StepSize())
	assert.Equal(t, 16*time.Millisecond, s.Interval())
}

func TestStepSize(t *testing.T) {
	assert.Equal(t, 33, Settings{FPS: 30}.StepSize())
	assert.Equal(t, 1000, Settings{FPS: 1}.StepSize())
	assert.Equal(t, 0, Settings{FPS: 2000}.StepSize())
	assert.Equal(t, 0, Settings{}.StepSize())
}

func TestValidate(t *testing.T) {
	s := Default()
	s.FPS = 0
	assert.ErrorIs(t, s.Validate(), ErrInvalidSettings)

	s = Default()
	s.WindowWidth = -1
	assert.ErrorIs(t, s.Validate(), ErrInvalidSettings)
}

func TestLoadXML(t *testing.T) {
	path := writeFile(t, "GraphicsController.xml", `<?xml version="1.0" encoding="UTF-8"?>
<graphicsSettings>
    <windowTitle>Whale Watch</windowTitle>
    <windowWidth>1024</windowWidth>
    <windowHeight>768</windowHeight>
    <fps>25</fps>
</graphicsSettings>`)

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Whale Watch", s.WindowTitle)
	assert.Equal(t, 1024, s.WindowWidth)
	assert.Equal(t, 768, s.WindowHeight)
	assert.Equal(t, 40, s.StepSize())
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "graphics.yaml", `
window_title: Whale Watch
window_width: 640
window_height: 480
fps: 50
`)

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Settings{WindowTitle: "Whale Watch", WindowWidth: 640, WindowHeight: 480, FPS: 50}, s)
}

func TestLoadFailures(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.xml"))
	assert.ErrorIs(t, err, fs.ErrNotExist)

	_, err = Load(writeFile(t, "settings.json", `{}`))
	assert.ErrorIs(t, err, ErrUnknownFormat)

	_, err = Load(writeFile(t, "broken.xml", `<graphicsSettings><fps>`))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "zero.xml", `<graphicsSettings><windowWidth>10</windowWidth><windowHeight>10</windowHeight><fps>0</fps></graphicsSettings>`))
	assert.ErrorIs(t, err, ErrInvalidSettings)
}
