package world

import (
	"math"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
)

// Epsilon trims the far edge of a box so that a body resting flush against a
// cell boundary does not count as overlapping the next cell.
const Epsilon = 0.1

// cellSpan returns the first and last cell indices covered by [lo, lo+size).
func cellSpan(lo, size float64) (int, int) {
	return int(math.Floor(lo / TileSize)), int(math.Floor((lo + size - Epsilon) / TileSize))
}

// Body is the physical state shared by every entity. X, Y are the top-left
// corner in world pixels.
type Body struct {
	X, Y        float64
	W, H        float64
	VX, VY      float64
	Grounded    bool
	Dead        bool
	FacingRight bool
}

// Rect returns the body's bounding box.
func (b *Body) Rect() core.RectF {
	return core.RectF{X: b.X, Y: b.Y, W: b.W, H: b.H}
}

// Overlaps reports whether two bodies intersect (touching edges do not count).
func (b *Body) Overlaps(o *Body) bool {
	return b.Rect().Intersects(o.Rect())
}

// CenterCol returns the grid column under the body's horizontal center.
func (b *Body) CenterCol() int {
	return int(math.Floor((b.X + b.W/2) / TileSize))
}

// applyGravity adds scaled gravity to VY and clamps the fall speed.
func applyGravity(b *Body, phys config.PlatformerPhysics, scale float64) {
	b.VY += phys.Gravity * scale
	if b.VY > phys.MaxFallSpeed {
		b.VY = phys.MaxFallSpeed
	}
}

// resolveX pushes a body that has already moved horizontally out of any solid
// cell it overlaps. The snap uses the nearest solid column on the travel side,
// then zeroes VX. It reports whether a wall was hit.
func resolveX(b *Body, g TileReader) bool {
	if b.VX == 0 {
		return false
	}
	c0, c1 := cellSpan(b.X, b.W)
	r0, r1 := cellSpan(b.Y, b.H)

	hitCol := -1
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			if !g.At(col, row).Solid() {
				continue
			}
			if hitCol < 0 || (b.VX > 0 && col < hitCol) || (b.VX < 0 && col > hitCol) {
				hitCol = col
			}
		}
	}
	if hitCol < 0 {
		return false
	}
	if b.VX > 0 {
		b.X = float64(hitCol*TileSize) - b.W
	} else {
		b.X = float64((hitCol + 1) * TileSize)
	}
	b.VX = 0
	return true
}

// ejectRight moves a body right until it no longer overlaps a solid cell.
func ejectRight(b *Body, g TileReader) {
	for {
		c0, c1 := cellSpan(b.X, b.W)
		r0, r1 := cellSpan(b.Y, b.H)
		hitCol := -1
		for row := r0; row <= r1; row++ {
			for col := c0; col <= c1; col++ {
				if col > hitCol && g.At(col, row).Solid() {
					hitCol = col
				}
			}
		}
		if hitCol < 0 {
			return
		}
		b.X = float64((hitCol + 1) * TileSize)
	}
}

// TopHit is a solid cell struck from below.
type TopHit struct {
	Col, Row int
	Tile     Tile
}

// resolveY pushes a body that has already moved vertically out of solid cells.
// Downward contact lands the body; upward contact returns every solid cell of
// the contact row, left to right, for the caller's head-bump handling.
func resolveY(b *Body, g TileReader) (landed bool, hits []TopHit) {
	b.Grounded = false
	if b.VY == 0 {
		return false, nil
	}
	c0, c1 := cellSpan(b.X, b.W)
	r0, r1 := cellSpan(b.Y, b.H)

	hitRow := -1
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			if !g.At(col, row).Solid() {
				continue
			}
			if hitRow < 0 || (b.VY > 0 && row < hitRow) || (b.VY < 0 && row > hitRow) {
				hitRow = row
			}
		}
	}
	if hitRow < 0 {
		return false, nil
	}

	if b.VY > 0 {
		b.Y = float64(hitRow*TileSize) - b.H
		b.VY = 0
		b.Grounded = true
		return true, nil
	}

	for col := c0; col <= c1; col++ {
		if t := g.At(col, hitRow); t.Solid() {
			hits = append(hits, TopHit{Col: col, Row: hitRow, Tile: t})
		}
	}
	b.Y = float64((hitRow + 1) * TileSize)
	b.VY = 0
	return false, hits
}

// moveAndCollide is the shared integration step: gravity, horizontal move and
// resolve, vertical move and resolve. It returns whether a wall was hit and the
// cells struck from below.
func moveAndCollide(b *Body, g TileReader, phys config.PlatformerPhysics) (wall bool, hits []TopHit) {
	applyGravity(b, phys, 1)
	b.X += b.VX
	wall = resolveX(b, g)
	b.Y += b.VY
	_, hits = resolveY(b, g)
	return wall, hits
}

// walkStep is the enemy variant of the step. Only the leading edge column at
// the next position is probed for walls, against the rows the body occupies
// before falling; a wall reverses VX and the body stays put for this tick.
// The ground check only looks at the row under the body's feet.
func walkStep(b *Body, g TileReader, phys config.PlatformerPhysics) {
	if b.VX != 0 {
		targetX := b.X + b.VX
		lead := int(math.Floor(targetX / TileSize))
		if b.VX > 0 {
			_, lead = cellSpan(targetX, b.W)
		}
		r0, r1 := cellSpan(b.Y, b.H)
		wall := false
		for row := r0; row <= r1; row++ {
			if g.At(lead, row).Solid() {
				wall = true
				break
			}
		}
		if wall {
			b.VX = -b.VX
			b.FacingRight = b.VX > 0
		} else {
			b.X = targetX
		}
	}

	applyGravity(b, phys, 1)
	b.Y += b.VY
	b.Grounded = false
	if b.VY <= 0 {
		return
	}
	c0, c1 := cellSpan(b.X, b.W)
	_, feet := cellSpan(b.Y, b.H)
	for col := c0; col <= c1; col++ {
		if g.At(col, feet).Solid() {
			b.Y = float64(feet*TileSize) - b.H
			b.VY = 0
			b.Grounded = true
			return
		}
	}
}
