package world

import "github.com/vovakirdan/tui-platformer/internal/config"

// item is a power-up that first rises out of its block, then moves freely.
type item struct {
	body     Body
	rules    *config.PlatformerConfig
	Emerging bool
	TargetY  float64
}

// newItem places an item for the tile (col, row): it starts one tile lower,
// inside the block that produced it.
func newItem(col, row int, rules *config.PlatformerConfig) item {
	x, y := float64(col*TileSize), float64(row*TileSize)
	return item{
		body:     Body{X: x, Y: y + TileSize, W: TileSize, H: TileSize, FacingRight: true},
		rules:    rules,
		Emerging: true,
		TargetY:  y,
	}
}

func (it *item) Body() *Body     { return &it.body }
func (it *item) Removable() bool { return it.body.Dead }
func (it *item) Kill(*Tick)      { it.body.Dead = true }

// emerge moves the item up and reports whether it just finished rising.
func (it *item) emerge() bool {
	it.body.Y -= it.rules.Items.EmergeSpeed
	if it.body.Y <= it.TargetY {
		it.body.Y = it.TargetY
		it.Emerging = false
		return true
	}
	return false
}

// cruise runs the shared physics step. A wall reverses the horizontal speed
// the item had before the step.
func (it *item) cruise(t *Tick) {
	b := &it.body
	prev := b.VX
	if wall, _ := moveAndCollide(b, t.Grid, it.rules.Physics); wall {
		b.VX = -prev
	}
	if b.Y > it.rules.Player.FallLimit {
		b.Dead = true
	}
}

// collect consumes the item if Mario touches it.
func (it *item) collect(t *Tick) bool {
	if it.body.Dead || !t.overlapsMario(&it.body) {
		return false
	}
	it.body.Dead = true
	t.AddScore(it.rules.Scoring.PowerUp)
	return true
}

// Mushroom makes small Mario big.
type Mushroom struct {
	item
}

// NewMushroom creates a mushroom emerging into tile (col, row).
func NewMushroom(col, row int, rules *config.PlatformerConfig) *Mushroom {
	return &Mushroom{item: newItem(col, row, rules)}
}

func (m *Mushroom) Kind() EntityKind { return KindMushroom }

func (m *Mushroom) Update(t *Tick) {
	if m.body.Dead {
		return
	}
	if m.Emerging {
		if m.emerge() {
			m.body.VX = m.rules.Items.MushroomSpeed
		}
		return
	}
	m.cruise(t)
	if m.collect(t) {
		t.Mario.Grow(t)
	}
}

func (m *Mushroom) RenderData(int) RenderData {
	return RenderData{Sprite: "item_mushroom", X: m.body.X, Y: m.body.Y, Hitbox: m.body.Rect()}
}

// Star grants temporary invincibility and bounces along the ground.
type Star struct {
	item
}

// NewStar creates a star emerging into tile (col, row).
func NewStar(col, row int, rules *config.PlatformerConfig) *Star {
	return &Star{item: newItem(col, row, rules)}
}

func (s *Star) Kind() EntityKind { return KindStar }

func (s *Star) Update(t *Tick) {
	if s.body.Dead {
		return
	}
	cfg := s.rules.Items
	if s.Emerging {
		if s.emerge() {
			s.body.VX = cfg.StarSpeed
			s.body.VY = cfg.StarBounce
		}
		return
	}
	s.cruise(t)
	if s.body.Grounded {
		s.body.VY = cfg.StarBounce
	}
	if s.collect(t) {
		t.Mario.StartStar(t)
	}
}

func (s *Star) RenderData(int) RenderData {
	return RenderData{Sprite: "item_star", X: s.body.X, Y: s.body.Y, Hitbox: s.body.Rect()}
}
