package models

import "encoding/xml"

// MovingObject is a GameObject with a per-tick displacement.
type MovingObject struct {
	XMLName xml.Name `xml:"movingObject" json:"-" yaml:"-"`
	GameObject
	Velocity Vector `xml:"velocity" json:"velocity" yaml:"velocity"`
}

// NewMovingObject returns a default object with zero velocity.
func NewMovingObject() *MovingObject {
	return &MovingObject{GameObject: *NewGameObject()}
}

// FromGameObject copies the visual attributes of src (size, ID, image, image
// file) into a new moving object. Position, visibility and velocity start at
// zero.
func FromGameObject(src *GameObject) *MovingObject {
	return &MovingObject{
		GameObject: GameObject{
			ID:        src.ID,
			Size:      src.Size,
			ImageFile: src.ImageFile,
			Image:     src.Image,
		},
	}
}

// Step moves the object by its velocity.
func (m *MovingObject) Step() {
	m.Position = m.Position.Add(m.Velocity)
}

// StepScaled moves the object by its velocity scaled by delta, truncated per
// axis. The stored velocity is not changed.
func (m *MovingObject) StepScaled(delta float64) {
	m.Position = m.Position.Add(m.Velocity.Scale(delta))
}

func (m *MovingObject) DX() int { return m.Velocity.X }
func (m *MovingObject) DY() int { return m.Velocity.Y }

func (m *MovingObject) SetDX(dx int) { m.Velocity.X = dx }
func (m *MovingObject) SetDY(dy int) { m.Velocity.Y = dy }
