// Package imaging loads sprite bitmaps and resamples them to object sizes.
package imaging

import (
	"fmt"
	"image"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// Scale resamples img to exactly width x height pixels with nearest
// neighbour sampling. The result is opaque: transparent source pixels end up
// over black.
func Scale(img image.Image, width, height int) (*image.RGBA, error) {
	return ScaleWith(xdraw.NearestNeighbor, img, width, height)
}

// ScaleWith is Scale with an explicit interpolator such as
// xdraw.ApproxBiLinear or xdraw.CatmullRom.
func ScaleWith(interp xdraw.Transformer, img image.Image, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	if img == nil {
		return nil, ErrEmptySource
	}
	sr := img.Bounds()
	if sr.Empty() {
		return nil, ErrEmptySource
	}

	sx := float64(width) / float64(sr.Dx())
	sy := float64(height) / float64(sr.Dy())
	// src -> dst, with the source origin moved to (0, 0)
	m := f64.Aff3{
		sx, 0, -sx * float64(sr.Min.X),
		0, sy, -sy * float64(sr.Min.Y),
	}

	out := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.Draw(out, out.Bounds(), image.Black, image.Point{}, xdraw.Src)
	interp.Transform(out, m, img, sr, xdraw.Over, nil)
	return out, nil
}

// ToRGBA returns img itself when it already is an *image.RGBA, otherwise a
// copy of its pixels in a fresh RGBA buffer with the same bounds.
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	b := img.Bounds()
	out := image.NewRGBA(b)
	xdraw.Draw(out, b, img, b.Min, xdraw.Src)
	return out
}

// ARGBGrid flattens img into rows of packed 0xAARRGGBB words.
func ARGBGrid(img image.Image) [][]uint32 {
	b := img.Bounds()
	grid := make([][]uint32, b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := make([]uint32, b.Dx())
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, a := img.At(x, y).RGBA()
			if a != 0 && a != 0xffff {
				// un-premultiply
				r = r * 0xffff / a
				g = g * 0xffff / a
				bl = bl * 0xffff / a
			}
			row[x-b.Min.X] = (a>>8)<<24 | (r>>8)<<16 | (g>>8)<<8 | bl>>8
		}
		grid[y-b.Min.Y] = row
	}
	return grid
}
