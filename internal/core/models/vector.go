package models

import "fmt"

// Vector is an integer screen-space pair, used for positions and velocities.
type Vector struct {
	X int `xml:"x" json:"x" yaml:"x"`
	Y int `xml:"y" json:"y" yaml:"y"`
}

func (v Vector) Add(o Vector) Vector {
	return Vector{X: v.X + o.X, Y: v.Y + o.Y}
}

// Scale multiplies both axes by f and truncates toward zero.
func (v Vector) Scale(f float64) Vector {
	return Vector{X: int(float64(v.X) * f), Y: int(float64(v.Y) * f)}
}

func (v Vector) String() string {
	return fmt.Sprintf("(%d,%d)", v.X, v.Y)
}

// Size is a width/height pair in pixels. Negative values are stored as given.
type Size struct {
	Width  int `xml:"width" json:"width" yaml:"width"`
	Height int `xml:"height" json:"height" yaml:"height"`
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}
