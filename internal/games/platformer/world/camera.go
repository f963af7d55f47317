package world

// Camera follows Mario horizontally. It only ever scrolls right.
type Camera struct {
	X, Y       float64
	ViewWidth  float64 // Visible width in world pixels
	Lead       float64 // Fraction of the view kept left of the target
	LevelWidth float64 // Course width in world pixels; 0 disables the right clamp
}

// Follow scrolls toward the target's x position.
func (c *Camera) Follow(targetX float64) {
	if want := targetX - c.ViewWidth*c.Lead; want > c.X {
		c.X = want
	}
	if c.LevelWidth > 0 {
		if limit := c.LevelWidth - c.ViewWidth; c.X > limit {
			c.X = limit
		}
	}
	if c.X < 0 {
		c.X = 0
	}
}

// Reset returns the camera to the start of the course.
func (c *Camera) Reset() {
	c.X = 0
	c.Y = 0
}
