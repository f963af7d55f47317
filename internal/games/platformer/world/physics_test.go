package world

import (
	"testing"

	"github.com/vovakirdan/tui-platformer/internal/config"
)

// gridWithGround builds a width x 16 grid with ground on rows 14 and 15 and
// the given extra solid cells.
func gridWithGround(width int, solids ...Point) *Grid {
	g := NewGrid(flatRows(width))
	for _, p := range solids {
		g.Set(p.X, p.Y, TileGround)
	}
	return g
}

// overlapsSolid reports whether the body covers any solid cell.
func overlapsSolid(b *Body, g TileReader) bool {
	c0, c1 := cellSpan(b.X, b.W)
	r0, r1 := cellSpan(b.Y, b.H)
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			if g.At(col, row).Solid() {
				return true
			}
		}
	}
	return false
}

func TestCellSpan(t *testing.T) {
	tests := []struct {
		lo, size   float64
		first, end int
	}{
		{0, 16, 0, 0},
		{8, 16, 0, 1},
		{16, 16, 1, 1},
		{208, 16, 13, 13},
		{208.2, 16, 13, 14},
		{-4, 12, -1, 0},
	}
	for _, tt := range tests {
		first, end := cellSpan(tt.lo, tt.size)
		if first != tt.first || end != tt.end {
			t.Errorf("cellSpan(%v, %v) = (%d, %d), expected (%d, %d)", tt.lo, tt.size, first, end, tt.first, tt.end)
		}
	}
}

func TestResolveXSnapsToNearestWall(t *testing.T) {
	// Two solid columns side by side: moving right snaps against the first,
	// moving left against the last.
	g := gridWithGround(20, Point{5, 13}, Point{6, 13})

	right := &Body{X: 70, Y: 208, W: 12, H: 16, VX: 3}
	if !resolveX(right, g) {
		t.Fatal("resolveX() should report a wall when moving right")
	}
	if right.X != 68 {
		t.Errorf("right X = %v, expected 68", right.X)
	}
	if right.VX != 0 {
		t.Errorf("right VX = %v, expected 0", right.VX)
	}

	left := &Body{X: 100, Y: 208, W: 12, H: 16, VX: -2}
	if !resolveX(left, g) {
		t.Fatal("resolveX() should report a wall when moving left")
	}
	if left.X != 112 {
		t.Errorf("left X = %v, expected 112", left.X)
	}

	free := &Body{X: 120, Y: 208, W: 12, H: 16, VX: 2}
	if resolveX(free, g) {
		t.Error("resolveX() reported a wall in open space")
	}
	if free.VX != 2 {
		t.Errorf("free VX = %v, expected unchanged 2", free.VX)
	}
}

func TestEjectRight(t *testing.T) {
	g := gridWithGround(20, Point{5, 13}, Point{6, 13})

	tests := []struct {
		name     string
		x        float64
		expected float64
	}{
		{"inside the last column", 100, 112},
		{"inside both columns", 90, 112},
		{"already clear", 120, 120},
	}
	for _, tt := range tests {
		b := &Body{X: tt.x, Y: 208, W: 12, H: 16}
		ejectRight(b, g)
		if b.X != tt.expected {
			t.Errorf("%s: ejectRight() X = %v, expected %v", tt.name, b.X, tt.expected)
		}
		if overlapsSolid(b, g) {
			t.Errorf("%s: body still overlaps a solid cell", tt.name)
		}
	}
}

func TestResolveYLandsOnGround(t *testing.T) {
	g := gridWithGround(20)
	b := &Body{X: 40, Y: 212, W: 12, H: 16, VY: 4}

	landed, hits := resolveY(b, g)

	if !landed || !b.Grounded {
		t.Fatalf("resolveY() landed = %v grounded = %v, expected both true", landed, b.Grounded)
	}
	if b.Y != 208 {
		t.Errorf("Y = %v, expected 208", b.Y)
	}
	if b.VY != 0 {
		t.Errorf("VY = %v, expected 0", b.VY)
	}
	if len(hits) != 0 {
		t.Errorf("landing should not report head hits, got %v", hits)
	}
}

func TestResolveYReportsHeadHits(t *testing.T) {
	g := gridWithGround(20)
	g.Set(1, 2, TileCoinBlock)
	g.Set(2, 2, TileBrick)
	b := &Body{X: 24, Y: 40, W: 12, H: 16, VY: -3, Grounded: true}

	landed, hits := resolveY(b, g)

	if landed || b.Grounded {
		t.Error("upward contact should not ground the body")
	}
	if b.Y != 48 {
		t.Errorf("Y = %v, expected 48", b.Y)
	}
	if b.VY != 0 {
		t.Errorf("VY = %v, expected 0", b.VY)
	}
	want := []TopHit{{Col: 1, Row: 2, Tile: TileCoinBlock}, {Col: 2, Row: 2, Tile: TileBrick}}
	if len(hits) != len(want) {
		t.Fatalf("hits = %v, expected %v", hits, want)
	}
	for i := range want {
		if hits[i] != want[i] {
			t.Errorf("hits[%d] = %v, expected %v", i, hits[i], want[i])
		}
	}
}

func TestRestingBodyStaysGrounded(t *testing.T) {
	rules := config.DefaultPlatformerConfig()
	g := gridWithGround(20)
	b := &Body{X: 40, Y: 208, W: 12, H: 16}

	for i := 0; i < 60; i++ {
		moveAndCollide(b, g, rules.Physics)
		if !b.Grounded || b.Y != 208 {
			t.Fatalf("tick %d: grounded = %v Y = %v, expected resting at 208", i, b.Grounded, b.Y)
		}
	}
}

func TestFallSpeedIsClamped(t *testing.T) {
	rules := config.DefaultPlatformerConfig()
	g := NewEmptyGrid(20, 16)
	b := &Body{X: 40, Y: 0, W: 16, H: 16}

	for i := 0; i < 100; i++ {
		moveAndCollide(b, g, rules.Physics)
		if b.VY > rules.Physics.MaxFallSpeed {
			t.Fatalf("tick %d: VY = %v exceeds max fall speed %v", i, b.VY, rules.Physics.MaxFallSpeed)
		}
	}
	if b.VY != rules.Physics.MaxFallSpeed {
		t.Errorf("VY = %v, expected terminal velocity %v", b.VY, rules.Physics.MaxFallSpeed)
	}
}

func TestNoTunneling(t *testing.T) {
	rules := config.DefaultPlatformerConfig()
	// A wall at column 10 and ground at rows 14-15
	var wall []Point
	for row := 0; row < 14; row++ {
		wall = append(wall, Point{10, row})
	}
	g := gridWithGround(20, wall...)

	for start := 0.0; start < 140; start += 3.3 {
		b := &Body{X: 40 + start/4, Y: start, W: 12, H: 16, VX: rules.Physics.MaxRunSpeed, VY: rules.Physics.MaxFallSpeed}
		for i := 0; i < 120; i++ {
			moveAndCollide(b, g, rules.Physics)
			if overlapsSolid(b, g) {
				t.Fatalf("start %v tick %d: body %+v overlaps a solid cell", start, i, b.Rect())
			}
			if b.VX == 0 {
				b.VX = rules.Physics.MaxRunSpeed
			}
		}
		if b.X+b.W > 160 {
			t.Errorf("start %v: body passed the wall, X = %v", start, b.X)
		}
	}
}

func TestWalkStepOnFlatGround(t *testing.T) {
	rules := config.DefaultPlatformerConfig()
	g := gridWithGround(20)
	b := &Body{X: 160, Y: 208, W: 16, H: 16, VX: -0.5}

	for i := 0; i < 100; i++ {
		walkStep(b, g, rules.Physics)
		if b.VX != -0.5 {
			t.Fatalf("tick %d: VX = %v, walker turned around on flat ground", i, b.VX)
		}
		if !b.Grounded || b.Y != 208 {
			t.Fatalf("tick %d: grounded = %v Y = %v, expected walking on the ground", i, b.Grounded, b.Y)
		}
	}
	if b.X != 110 {
		t.Errorf("X = %v, expected 110 after 100 ticks", b.X)
	}
}

func TestWalkStepReversesAtWall(t *testing.T) {
	rules := config.DefaultPlatformerConfig()
	g := gridWithGround(20, Point{5, 12}, Point{5, 13})
	b := &Body{X: 112, Y: 208, W: 16, H: 16, VX: -0.5}

	for i := 0; i < 40; i++ {
		walkStep(b, g, rules.Physics)
		if overlapsSolid(b, g) {
			t.Fatalf("tick %d: walker overlaps a wall at X = %v", i, b.X)
		}
	}
	if b.VX != 0.5 {
		t.Errorf("VX = %v, expected 0.5 after hitting the wall", b.VX)
	}
	if b.X < 96 {
		t.Errorf("X = %v, walker went into the wall", b.X)
	}
}

func TestWalkStepFallsIntoPit(t *testing.T) {
	rules := config.DefaultPlatformerConfig()
	g := NewEmptyGrid(20, 16)
	b := &Body{X: 160, Y: 100, W: 16, H: 16, VX: -0.5}

	for i := 0; i < 20; i++ {
		walkStep(b, g, rules.Physics)
	}
	if b.Grounded {
		t.Error("walker over a pit should not be grounded")
	}
	if b.Y <= 100 {
		t.Errorf("Y = %v, walker should be falling", b.Y)
	}
}
