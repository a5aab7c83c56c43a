package models

import (
	"encoding/xml"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TahliaK/wight-whale/internal/core/imaging"
)

func writeSprite(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 200, G: 10, B: 10, A: 255})
		}
	}
	path := filepath.Join(t.TempDir(), "sprite.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	return path
}

func TestNewGameObjectDefaults(t *testing.T) {
	o := NewGameObject()
	assert.Equal(t, "", o.ID)
	assert.Equal(t, Vector{}, o.Position)
	assert.Equal(t, Size{Width: 10, Height: 10}, o.Size)
	assert.Nil(t, o.Image)
	assert.Empty(t, o.ImageFile)
}

func TestLoadAdoptsImageSize(t *testing.T) {
	path := writeSprite(t, 7, 3)
	o := NewGameObject()

	require.NoError(t, o.Load(path, true))
	assert.Equal(t, Size{Width: 7, Height: 3}, o.Size)
	assert.Equal(t, path, o.ImageFile)
	require.NotNil(t, o.Image)
	assert.Equal(t, 7, o.Image.Bounds().Dx())
}

func TestLoadScalesToObjectSize(t *testing.T) {
	path := writeSprite(t, 7, 3)
	o := NewGameObject()
	o.Size = Size{Width: 20, Height: 12}

	require.NoError(t, o.Load(path, false))
	assert.Equal(t, Size{Width: 20, Height: 12}, o.Size)
	assert.Equal(t, image.Rect(0, 0, 20, 12), o.Image.Bounds())
}

func TestLoadMissingFileLeavesObjectUntouched(t *testing.T) {
	path := writeSprite(t, 4, 4)
	o := NewGameObject()
	require.NoError(t, o.Load(path, true))
	prevImage := o.Image

	err := o.Load(filepath.Join(t.TempDir(), "nope.png"), true)
	assert.ErrorIs(t, err, ErrImageLoad)
	assert.ErrorIs(t, err, imaging.ErrDecode)
	assert.Equal(t, Size{Width: 4, Height: 4}, o.Size)
	assert.True(t, sameImage(prevImage, o.Image))
	assert.Equal(t, path, o.ImageFile)
}

func TestLoadScaleFailureLeavesObjectUntouched(t *testing.T) {
	path := writeSprite(t, 4, 4)
	o := NewGameObject()
	o.Size = Size{Width: 0, Height: 5}

	err := o.Load(path, false)
	assert.ErrorIs(t, err, ErrImageScale)
	assert.ErrorIs(t, err, imaging.ErrInvalidSize)
	assert.Nil(t, o.Image)
	assert.Empty(t, o.ImageFile)
}

func TestLoadWithZeroSizeIsRejected(t *testing.T) {
	path := writeSprite(t, 6, 4)
	cache := imaging.NewCache()
	o := NewGameObject()
	o.Size = Size{}

	err := o.LoadWith(cache, path, false)
	assert.ErrorIs(t, err, ErrImageScale)
	assert.ErrorIs(t, err, imaging.ErrInvalidSize)
	assert.Nil(t, o.Image)
	assert.Empty(t, o.ImageFile)
	assert.Equal(t, Size{}, o.Size)
	assert.Equal(t, 0, cache.Len())
}

func TestReload(t *testing.T) {
	o := NewGameObject()
	assert.ErrorIs(t, o.Reload(true), ErrNoImageFile)

	o.ImageFile = writeSprite(t, 5, 6)
	require.NoError(t, o.Reload(true))
	assert.Equal(t, Size{Width: 5, Height: 6}, o.Size)
}

func TestNewGameObjectAt(t *testing.T) {
	path := writeSprite(t, 8, 9)
	o, err := NewGameObjectAt(3, 4, 1, 1, "ship", path)
	require.NoError(t, err)
	assert.Equal(t, "ship", o.ID)
	assert.Equal(t, Vector{X: 3, Y: 4}, o.Position)
	assert.Equal(t, Size{Width: 8, Height: 9}, o.Size)

	o, err = NewGameObjectAt(1, 2, 30, 40, "ghost", filepath.Join(t.TempDir(), "missing.png"))
	assert.ErrorIs(t, err, ErrImageLoad)
	require.NotNil(t, o)
	assert.Equal(t, Size{Width: 30, Height: 40}, o.Size)
	assert.Nil(t, o.Image)
}

func TestLoadWithCache(t *testing.T) {
	path := writeSprite(t, 6, 6)
	cache := imaging.NewCache()

	a := NewGameObject()
	b := NewGameObject()
	require.NoError(t, a.LoadWith(cache, path, false))
	require.NoError(t, b.LoadWith(cache, path, false))
	assert.Equal(t, 1, cache.Len())
	assert.Equal(t, image.Rect(0, 0, 10, 10), a.Image.Bounds())
	assert.True(t, sameImage(a.Image, b.Image))

	c := NewGameObject()
	require.NoError(t, c.LoadWith(cache, path, true))
	assert.Equal(t, Size{Width: 6, Height: 6}, c.Size)

	d := NewGameObject()
	d.Size = Size{Width: -1, Height: 2}
	assert.ErrorIs(t, d.LoadWith(cache, path, false), ErrImageScale)
	assert.ErrorIs(t, d.LoadWith(cache, "missing.png", true), ErrImageLoad)
}

func TestAssignID(t *testing.T) {
	o := NewGameObject()
	id := o.AssignID()
	assert.NotEmpty(t, id)
	assert.Equal(t, id, o.AssignID())

	o2 := &GameObject{ID: "fixed"}
	assert.Equal(t, "fixed", o2.AssignID())
}

func TestSameVisual(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	a := &GameObject{ID: "a", Size: Size{Width: 1, Height: 1}, Image: img}
	b := &GameObject{ID: "a", Size: Size{Width: 1, Height: 1}, Image: img}
	assert.True(t, a.SameVisual(b))

	b.Image = image.NewRGBA(image.Rect(0, 0, 1, 1))
	assert.False(t, a.SameVisual(b))
	assert.False(t, a.SameVisual(nil))
}

func TestMovingObjectStep(t *testing.T) {
	m := NewMovingObject()
	m.Position = Vector{X: 10, Y: 20}
	m.SetDX(3)
	m.SetDY(-4)

	m.Step()
	assert.Equal(t, Vector{X: 13, Y: 16}, m.Position)
	assert.Equal(t, 3, m.DX())
	assert.Equal(t, -4, m.DY())
}

func TestMovingObjectStepScaledKeepsVelocity(t *testing.T) {
	m := NewMovingObject()
	m.Velocity = Vector{X: 4, Y: 4}

	m.StepScaled(0.5)
	assert.Equal(t, Vector{X: 2, Y: 2}, m.Position)
	assert.Equal(t, Vector{X: 4, Y: 4}, m.Velocity)

	m.StepScaled(0.1)
	assert.Equal(t, Vector{X: 2, Y: 2}, m.Position)
}

func TestVectorScaleTruncatesTowardZero(t *testing.T) {
	assert.Equal(t, Vector{X: 1, Y: -1}, Vector{X: 3, Y: -3}.Scale(0.5))
	assert.Equal(t, Vector{}, Vector{X: 1, Y: 1}.Scale(0.9))
}

func TestFromGameObjectCopiesVisualsOnly(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	src := &GameObject{
		ID:        "hero",
		Visible:   true,
		Position:  Vector{X: 5, Y: 6},
		Size:      Size{Width: 2, Height: 2},
		ImageFile: "hero.png",
		Image:     img,
	}

	m := FromGameObject(src)
	assert.Equal(t, "hero", m.ID)
	assert.Equal(t, src.Size, m.Size)
	assert.Equal(t, "hero.png", m.ImageFile)
	assert.True(t, sameImage(img, m.Image))
	assert.False(t, m.Visible)
	assert.Equal(t, Vector{}, m.Position)
	assert.Equal(t, Vector{}, m.Velocity)
}

func TestMovingObjectXML(t *testing.T) {
	m := NewMovingObject()
	m.ID = "crate"
	m.Visible = true
	m.Position = Vector{X: -3, Y: 9}
	m.Size = Size{Width: 16, Height: 24}
	m.ImageFile = "sprites/crate.png"
	m.Velocity = Vector{X: 1, Y: 2}
	m.Image = image.NewRGBA(image.Rect(0, 0, 16, 24))

	data, err := xml.Marshal(m)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<movingObject>")
	assert.NotContains(t, string(data), "Image>")

	var got MovingObject
	require.NoError(t, xml.Unmarshal(data, &got))
	assert.Equal(t, m.ID, got.ID)
	assert.Equal(t, m.Visible, got.Visible)
	assert.Equal(t, m.Position, got.Position)
	assert.Equal(t, m.Size, got.Size)
	assert.Equal(t, m.ImageFile, got.ImageFile)
	assert.Equal(t, m.Velocity, got.Velocity)
	assert.Nil(t, got.Image)
}

func TestAccessorsDoNotValidate(t *testing.T) {
	o := NewGameObject()
	o.SetPosition(3, 4)
	o.SetX(-7)
	o.SetSize(-1, 20)
	o.SetHeight(-2)
	o.SetVisible(true)

	assert.Equal(t, -7, o.X())
	assert.Equal(t, 4, o.Y())
	assert.Equal(t, -1, o.Width())
	assert.Equal(t, -2, o.Height())
	assert.True(t, o.Visible)

	m := NewMovingObject()
	m.SetVelocity(2, -3)
	m.SetDX(5)
	assert.Equal(t, 5, m.DX())
	assert.Equal(t, -3, m.DY())
}
