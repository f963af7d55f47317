package world

import "testing"

func TestCameraFollow(t *testing.T) {
	c := Camera{ViewWidth: 256, Lead: 0.4, LevelWidth: 1024}

	steps := []struct {
		target float64
		want   float64
	}{
		{50, 0},      // clamped at the course start
		{300, 197.6}, // scrolls right
		{200, 197.6}, // never scrolls back
		{2000, 768},  // stops at the course end
		{100, 768},
	}
	for i, step := range steps {
		c.Follow(step.target)
		if diff := c.X - step.want; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("step %d: Follow(%v) X = %v, expected %v", i, step.target, c.X, step.want)
		}
	}

	c.Reset()
	if c.X != 0 {
		t.Errorf("Reset() X = %v, expected 0", c.X)
	}
}

func TestCameraNarrowLevel(t *testing.T) {
	c := Camera{ViewWidth: 256, Lead: 0.4, LevelWidth: 200}

	c.Follow(180)

	if c.X != 0 {
		t.Errorf("X = %v, expected 0 when the course fits the view", c.X)
	}
}
