package models

// Accessors mirror the exported fields. None of them validate; a negative
// size is stored as given.

func (o *GameObject) X() int     { return o.Position.X }
func (o *GameObject) Y() int     { return o.Position.Y }
func (o *GameObject) SetX(x int) { o.Position.X = x }
func (o *GameObject) SetY(y int) { o.Position.Y = y }

func (o *GameObject) SetPosition(x, y int) {
	o.Position = Vector{X: x, Y: y}
}

func (o *GameObject) Width() int           { return o.Size.Width }
func (o *GameObject) Height() int          { return o.Size.Height }
func (o *GameObject) SetWidth(width int)   { o.Size.Width = width }
func (o *GameObject) SetHeight(height int) { o.Size.Height = height }

func (o *GameObject) SetSize(width, height int) {
	o.Size = Size{Width: width, Height: height}
}

func (o *GameObject) SetVisible(visible bool) { o.Visible = visible }

// SetVelocity replaces both velocity components.
func (m *MovingObject) SetVelocity(dx, dy int) {
	m.Velocity = Vector{X: dx, Y: dy}
}
