// Package models holds the sprite entities tracked by the graphics controller.
package models

import (
	"encoding/xml"
	"errors"
	"fmt"
	"image"
	"reflect"

	"github.com/google/uuid"

	"github.com/TahliaK/wight-whale/internal/core/imaging"
	"github.com/TahliaK/wight-whale/internal/core/observability/log"
)

const (
	DefaultWidth  = 10
	DefaultHeight = 10
)

// GameObject is a visual entity: identity, visibility, position, size and a
// sprite. Only the image file name is persisted, never the pixels.
type GameObject struct {
	XMLName xml.Name `xml:"gameObject" json:"-" yaml:"-"`

	ID        string `xml:"id" json:"id" yaml:"id"`
	Visible   bool   `xml:"visible" json:"visible" yaml:"visible"`
	Position  Vector `xml:"position" json:"position" yaml:"position"`
	Size      Size   `xml:"size" json:"size" yaml:"size"`
	ImageFile string `xml:"imageFile,omitempty" json:"imageFile,omitempty" yaml:"imageFile,omitempty"`

	Image image.Image `xml:"-" json:"-" yaml:"-"`
}

// NewGameObject returns an object at (0,0), 10x10, with no image and no ID.
func NewGameObject() *GameObject {
	return &GameObject{
		Size: Size{Width: DefaultWidth, Height: DefaultHeight},
	}
}

// NewGameObjectAt builds a fully specified object and loads imageFile,
// adopting the image's size. The object is returned even when the load
// fails; the error tells the caller the sprite is missing.
func NewGameObjectAt(x, y, width, height int, id, imageFile string) (*GameObject, error) {
	o := &GameObject{
		ID:        id,
		Position:  Vector{X: x, Y: y},
		Size:      Size{Width: width, Height: height},
		ImageFile: imageFile,
	}
	return o, o.Load(imageFile, true)
}

// Load decodes the image at path. With matchSize the object takes the
// image's native size, otherwise the image is scaled to the object's size.
// On failure the object is left untouched.
func (o *GameObject) Load(path string, matchSize bool) error {
	img, err := imaging.Load(path)
	if err != nil {
		logger().Error("Failed to load image",
			log.String("id", o.ID),
			log.String("file", path),
			log.Error(err))
		return fmt.Errorf("%w: %w", ErrImageLoad, err)
	}
	return o.adopt(path, img, matchSize)
}

// LoadWith is Load going through a shared sprite cache.
func (o *GameObject) LoadWith(cache *imaging.Cache, path string, matchSize bool) error {
	var (
		img image.Image
		err error
	)
	if matchSize {
		img, err = cache.Native(path)
	} else {
		img, err = cache.Get(path, o.Size.Width, o.Size.Height)
	}
	if err != nil {
		logger().Error("Failed to load cached image",
			log.String("id", o.ID),
			log.String("file", path),
			log.Error(err))
		if errors.Is(err, imaging.ErrInvalidSize) || errors.Is(err, imaging.ErrEmptySource) {
			return fmt.Errorf("%w: %w", ErrImageScale, err)
		}
		return fmt.Errorf("%w: %w", ErrImageLoad, err)
	}
	if matchSize {
		b := img.Bounds()
		o.Size = Size{Width: b.Dx(), Height: b.Dy()}
	}
	o.Image = img
	o.ImageFile = path
	return nil
}

// Reload loads the stored ImageFile again.
func (o *GameObject) Reload(matchSize bool) error {
	if o.ImageFile == "" {
		logger().Error("Failed to reload image, no file set", log.String("id", o.ID))
		return ErrNoImageFile
	}
	return o.Load(o.ImageFile, matchSize)
}

func (o *GameObject) adopt(path string, img image.Image, matchSize bool) error {
	if matchSize {
		b := img.Bounds()
		o.Size = Size{Width: b.Dx(), Height: b.Dy()}
		o.Image = img
		o.ImageFile = path
		return nil
	}

	scaled, err := imaging.Scale(img, o.Size.Width, o.Size.Height)
	if err != nil {
		logger().Error("Failed to scale image",
			log.String("id", o.ID),
			log.String("file", path),
			log.String("size", o.Size.String()),
			log.Error(err))
		return fmt.Errorf("%w: %w", ErrImageScale, err)
	}
	o.Image = scaled
	o.ImageFile = path
	return nil
}

// AssignID gives the object a random ID if it has none and returns the ID.
func (o *GameObject) AssignID() string {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return o.ID
}

// SameVisual reports whether o and other share ID, size, image file and
// image buffer.
func (o *GameObject) SameVisual(other *GameObject) bool {
	if other == nil {
		return false
	}
	return o.ID == other.ID &&
		o.Size == other.Size &&
		o.ImageFile == other.ImageFile &&
		sameImage(o.Image, other.Image)
}

func sameImage(a, b image.Image) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() || va.Kind() != reflect.Pointer {
		return false
	}
	return va.Pointer() == vb.Pointer()
}
