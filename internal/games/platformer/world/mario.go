package world

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-platformer/internal/config"
)

// Power is Mario's power-up state.
type Power int

const (
	PowerSmall Power = iota
	PowerBig
	PowerFire
)

func (p Power) String() string {
	switch p {
	case PowerSmall:
		return "SMALL"
	case PowerBig:
		return "BIG"
	case PowerFire:
		return "FIRE"
	default:
		return "UNKNOWN"
	}
}

// Mario is the player avatar.
type Mario struct {
	body     Body
	rules    *config.PlatformerConfig
	Power    Power
	StarTime int // Ticks of star invincibility left
	Grace    int // Ticks of post-damage invincibility left
	anim     int
	jumping  bool
}

// NewMario creates a small Mario standing at the given pixel position.
func NewMario(x, y float64, rules *config.PlatformerConfig) *Mario {
	return &Mario{
		body: Body{
			X:           x,
			Y:           y,
			W:           rules.Player.Width,
			H:           rules.Player.SmallHeight,
			FacingRight: true,
		},
		rules: rules,
		Power: PowerSmall,
	}
}

func (m *Mario) Kind() EntityKind { return KindMario }
func (m *Mario) Body() *Body      { return &m.body }

// Removable is always false: Mario lives as long as the session does.
func (m *Mario) Removable() bool { return false }

// Kill is the same as Die for Mario.
func (m *Mario) Kill(t *Tick) { m.Die(t) }

// Big reports whether Mario has a power-up.
func (m *Mario) Big() bool { return m.Power != PowerSmall }

// Invincible reports whether damage is currently ignored.
func (m *Mario) Invincible() bool { return m.StarTime > 0 || m.Grace > 0 }

// Update advances Mario by one tick.
func (m *Mario) Update(t *Tick) {
	b := &m.body
	phys := m.rules.Physics

	if b.Dead {
		// The death hop ignores the grid and the fall cap.
		b.VY += phys.Gravity
		b.Y += b.VY
		if b.Y > m.rules.Player.FallLimit {
			t.RequestRestart()
		}
		return
	}

	if t.Phase != PhasePlaying {
		applyGravity(b, phys, 1)
		b.Y += b.VY
		resolveY(b, t.Grid)
		m.anim++
		return
	}

	if b.Y > m.rules.Player.FallLimit {
		m.Die(t)
		return
	}

	if m.StarTime > 0 {
		m.StarTime--
	}
	if m.Grace > 0 {
		m.Grace--
	}

	in := t.Input
	maxSpeed, accel := phys.MaxWalkSpeed, phys.AccelWalk
	if in.Run {
		maxSpeed, accel = phys.MaxRunSpeed, phys.AccelRun
	}

	switch {
	case in.Left:
		b.VX -= accel
		b.FacingRight = false
	case in.Right:
		b.VX += accel
		b.FacingRight = true
	default:
		b.VX *= phys.Friction
		if math.Abs(b.VX) < phys.MinSpeed {
			b.VX = 0
		}
	}
	if b.VX > maxSpeed {
		b.VX = maxSpeed
	}
	if b.VX < -maxSpeed {
		b.VX = -maxSpeed
	}

	if in.UpPressed && b.Grounded && !m.jumping {
		b.VY = phys.JumpForce
		b.Grounded = false
		m.jumping = true
		t.Emit(EventJump)
	}

	scale := 1.0
	if m.jumping && in.Up && b.VY < 0 {
		scale = phys.JumpHoldGravity
	} else if b.VY >= 0 {
		m.jumping = false
	}
	applyGravity(b, phys, scale)

	b.X += b.VX
	resolveX(b, t.Grid)
	if b.X < t.CameraLeft {
		b.X = t.CameraLeft
		b.VX = 0
		ejectRight(b, t.Grid)
	}

	b.Y += b.VY
	_, hits := resolveY(b, t.Grid)
	for _, h := range hits {
		m.collideTop(t, h)
	}

	m.anim++

	if b.CenterCol() >= t.Goal.FlagPoleX {
		t.TriggerFlagpole()
	}
}

// collideTop handles a block struck by Mario's head.
func (m *Mario) collideTop(t *Tick, h TopHit) {
	score := m.rules.Scoring
	switch h.Tile {
	case TileCoinBlock:
		t.SetTile(h.Col, h.Row, TileUsedBlock)
		t.Emit(EventBump)
		t.AddScore(score.Coin)
		t.AddCoin()
		t.Emit(EventCoin)
	case TileMushroomBlock, TileStarBlock:
		t.SetTile(h.Col, h.Row, TileUsedBlock)
		t.Emit(EventBump)
		kind := KindMushroom
		if h.Tile == TileStarBlock {
			kind = KindStar
		}
		t.SpawnItem(kind, h.Col, h.Row-1)
		t.Emit(EventPowerUpAppears)
	case TileBrick:
		if !m.Big() {
			t.Emit(EventBump)
			return
		}
		t.SetTile(h.Col, h.Row, TileEmpty)
		t.AddScore(score.BrickBreak)
		t.Emit(EventBreakBlock)
	}
}

// TakeDamage shrinks a powered-up Mario or kills a small one. It does nothing
// while Mario is invincible.
func (m *Mario) TakeDamage(t *Tick) {
	if m.Invincible() {
		return
	}
	if !m.Big() {
		m.Die(t)
		return
	}
	p := m.rules.Player
	m.Power = PowerSmall
	m.body.Y += p.BigHeight - p.SmallHeight
	m.body.H = p.SmallHeight
	m.Grace = p.DamageGrace
	t.Emit(EventDamage)
}

// Die kills Mario once: death hop, no horizontal motion, one life lost.
func (m *Mario) Die(t *Tick) {
	if m.body.Dead {
		return
	}
	m.body.Dead = true
	m.body.VY = m.rules.Player.DeathHop
	m.body.VX = 0
	t.LoseLife()
	t.Emit(EventDie)
}

// Grow promotes a small Mario to big, keeping his feet in place.
func (m *Mario) Grow(t *Tick) {
	if m.Power != PowerSmall {
		return
	}
	p := m.rules.Player
	m.Power = PowerBig
	m.body.H = p.BigHeight
	m.body.Y -= p.BigHeight - p.SmallHeight
	t.Emit(EventPowerUp)
}

// StartStar grants star invincibility.
func (m *Mario) StartStar(t *Tick) {
	m.StarTime = m.rules.Player.StarDuration
	t.Emit(EventStarman)
}

// RenderData picks Mario's sprite. He blinks on alternate 6-tick windows
// while the damage grace runs.
func (m *Mario) RenderData(frame int) RenderData {
	b := &m.body
	prefix := "mario_small"
	if m.Big() {
		prefix = "mario_big"
	}

	sprite := prefix + "_stand"
	switch {
	case b.Dead:
		sprite = "mario_small_die"
	case !b.Grounded:
		sprite = prefix + "_jump"
	case math.Abs(b.VX) > m.rules.Physics.MinSpeed:
		sprite = fmt.Sprintf("%s_walk%d", prefix, (m.anim/5)%3+1)
	}

	return RenderData{
		Sprite: sprite,
		X:      b.X,
		Y:      b.Y,
		FlipX:  !b.FacingRight,
		Hidden: m.Grace > 0 && (frame/6)%2 == 0,
		Hitbox: b.Rect(),
	}
}
