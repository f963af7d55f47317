package world

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-platformer/internal/config"
)

// shellKickGrace is how long a freshly kicked shell ignores Mario, so the
// kick itself does not count as the shell running him over.
const shellKickGrace = 10

// enemy is the state every enemy kind shares.
type enemy struct {
	body  Body
	rules *config.PlatformerConfig
	anim  int
}

func newEnemy(x, y, w, h float64, rules *config.PlatformerConfig) enemy {
	return enemy{
		body:  Body{X: x, Y: y, W: w, H: h, VX: -rules.Enemies.WalkSpeed},
		rules: rules,
	}
}

func (e *enemy) Body() *Body { return &e.body }

// Kill marks the enemy dead.
func (e *enemy) Kill(t *Tick) {
	if e.body.Dead {
		return
	}
	e.body.Dead = true
	e.body.VX = 0
	t.Emit(EventKick)
}

// fellOut drops enemies that walked into a pit.
func (e *enemy) fellOut() bool {
	if e.body.Y > e.rules.Player.FallLimit {
		e.body.Dead = true
		return true
	}
	return false
}

// stompable is an enemy that reacts to Mario landing on it. stomped reports
// whether the landing counted as a stomp (Mario bounces and scores).
type stompable interface {
	Entity
	stomped(t *Tick) bool
}

// contactMario resolves an overlap between Mario and a live enemy: star
// invincibility kills the enemy, a landing from above stomps it, anything
// else hurts Mario.
func contactMario(t *Tick, e stompable) {
	b := e.Body()
	if b.Dead || !t.overlapsMario(b) {
		return
	}
	m := t.Mario
	mb := &m.body
	rules := m.rules

	if m.StarTime > 0 {
		e.Kill(t)
		t.AddScore(rules.Scoring.StarKill)
		return
	}

	// Mario's bottom edge before this tick's move must have been at most
	// StompTolerance px below the enemy's top.
	if mb.VY > 0 && mb.Y+mb.H-mb.VY <= b.Y+rules.Player.StompTolerance {
		if e.stomped(t) {
			mb.VY = rules.Physics.JumpForce * rules.Player.StompBounce
			mb.Grounded = false
			t.AddScore(rules.Scoring.Stomp)
		}
		return
	}
	m.TakeDamage(t)
}

// Goomba walks and is flattened by a stomp.
type Goomba struct {
	enemy
	Flat      bool
	FlatTimer int
}

// NewGoomba creates a Goomba at a pixel position.
func NewGoomba(x, y float64, rules *config.PlatformerConfig) *Goomba {
	return &Goomba{enemy: newEnemy(x, y, TileSize, TileSize, rules)}
}

func (g *Goomba) Kind() EntityKind { return KindGoomba }

func (g *Goomba) Update(t *Tick) {
	if g.Flat {
		g.FlatTimer--
		return
	}
	if g.body.Dead {
		return
	}
	walkStep(&g.body, t.Grid, g.rules.Physics)
	if g.fellOut() {
		return
	}
	contactMario(t, g)
	g.anim++
}

func (g *Goomba) stomped(t *Tick) bool {
	g.Flat = true
	g.body.Dead = true
	g.body.VX = 0
	g.FlatTimer = g.rules.Enemies.FlatTicks
	t.Emit(EventStomp)
	return true
}

// Removable keeps a flattened Goomba on screen until its timer runs out.
func (g *Goomba) Removable() bool {
	if g.Flat {
		return g.FlatTimer <= 0
	}
	return g.body.Dead
}

func (g *Goomba) RenderData(int) RenderData {
	rd := RenderData{X: g.body.X, Y: g.body.Y, Hitbox: g.body.Rect()}
	if g.Flat {
		rd.Sprite = "goomba_flat"
		rd.Hidden = g.FlatTimer <= 0
		return rd
	}
	rd.Sprite = fmt.Sprintf("goomba_walk%d", (g.anim/10)%2+1)
	return rd
}

// KoopaState is the Koopa's walk/shell mode.
type KoopaState int

const (
	KoopaWalk KoopaState = iota
	KoopaShellIdle
	KoopaShellSlide
)

func (s KoopaState) String() string {
	switch s {
	case KoopaWalk:
		return "WALK"
	case KoopaShellIdle:
		return "SHELL_IDLE"
	case KoopaShellSlide:
		return "SHELL_SLIDE"
	default:
		return "UNKNOWN"
	}
}

// Koopa walks, retreats into its shell when stomped, and slides when its
// shell is stomped again. A sliding shell kills other enemies it touches.
type Koopa struct {
	enemy
	State      KoopaState
	ShellTimer int
	kickGrace  int
}

// Koopa heights while walking and as a shell.
const (
	koopaHeight = 24
	shellHeight = 16
)

// NewKoopa creates a walking Koopa at a pixel position.
func NewKoopa(x, y float64, rules *config.PlatformerConfig) *Koopa {
	return &Koopa{enemy: newEnemy(x, y, TileSize, koopaHeight, rules)}
}

func (k *Koopa) Kind() EntityKind { return KindKoopa }

func (k *Koopa) Update(t *Tick) {
	if k.body.Dead {
		return
	}
	walkStep(&k.body, t.Grid, k.rules.Physics)
	if k.fellOut() {
		return
	}
	if k.kickGrace > 0 {
		k.kickGrace--
	} else {
		contactMario(t, k)
	}
	k.anim++

	switch k.State {
	case KoopaShellIdle:
		k.ShellTimer--
		if k.ShellTimer <= 0 {
			k.State = KoopaWalk
			k.body.H = koopaHeight
			k.body.Y -= koopaHeight - shellHeight
			k.body.VX = -k.rules.Enemies.WalkSpeed
		}
	case KoopaShellSlide:
		k.sweep(t)
	}
}

// sweep kills every other live enemy the sliding shell overlaps.
func (k *Koopa) sweep(t *Tick) {
	for _, e := range t.Entities {
		if e == Entity(k) || e.Kind() == KindMario {
			continue
		}
		ob := e.Body()
		if ob.Dead || !k.body.Overlaps(ob) {
			continue
		}
		e.Kill(t)
		t.AddScore(k.rules.Scoring.ShellKill)
	}
}

func (k *Koopa) stomped(t *Tick) bool {
	switch k.State {
	case KoopaWalk:
		k.State = KoopaShellIdle
		k.body.VX = 0
		k.body.H = shellHeight
		k.body.Y += koopaHeight - shellHeight
		k.ShellTimer = k.rules.Enemies.ShellIdleTicks
		t.Emit(EventStomp)
	case KoopaShellIdle:
		k.State = KoopaShellSlide
		k.body.VX = -k.rules.Enemies.ShellSpeed
		if t.Mario.body.X < k.body.X {
			k.body.VX = k.rules.Enemies.ShellSpeed
		}
		k.kickGrace = shellKickGrace
		t.Emit(EventKick)
	case KoopaShellSlide:
		k.State = KoopaShellIdle
		k.body.VX = 0
		k.ShellTimer = k.rules.Enemies.ShellIdleTicks
		t.Emit(EventStomp)
	}
	return true
}

func (k *Koopa) Removable() bool { return k.body.Dead }

func (k *Koopa) RenderData(int) RenderData {
	rd := RenderData{X: k.body.X, Y: k.body.Y, Hitbox: k.body.Rect()}
	if k.State == KoopaWalk {
		rd.Sprite = fmt.Sprintf("koopa_walk%d", (k.anim/10)%2+1)
		rd.FlipX = k.body.VX > 0
		return rd
	}
	rd.Sprite = "koopa_shell"
	return rd
}

// PiranhaState is the plant's position in its hide/rise/fall cycle.
type PiranhaState int

const (
	PiranhaHidden PiranhaState = iota
	PiranhaRising
	PiranhaUp
	PiranhaFalling
)

func (s PiranhaState) String() string {
	switch s {
	case PiranhaHidden:
		return "HIDDEN"
	case PiranhaRising:
		return "RISING"
	case PiranhaUp:
		return "UP"
	case PiranhaFalling:
		return "FALLING"
	default:
		return "UNKNOWN"
	}
}

// Piranha rises out of a pipe, waits, and sinks back. It never moves
// horizontally and ignores the grid.
type Piranha struct {
	enemy
	BaseY float64
	State PiranhaState
	Timer int
}

// NewPiranha creates a hidden plant whose resting top edge is y.
func NewPiranha(x, y float64, rules *config.PlatformerConfig) *Piranha {
	p := &Piranha{
		enemy: newEnemy(x, y, TileSize, 24, rules),
		BaseY: y,
		State: PiranhaHidden,
		Timer: rules.Enemies.PiranhaWaitTicks,
	}
	p.body.VX = 0
	return p
}

func (p *Piranha) Kind() EntityKind { return KindPiranha }

func (p *Piranha) Update(t *Tick) {
	if p.body.Dead {
		return
	}
	p.anim++
	cfg := p.rules.Enemies

	switch p.State {
	case PiranhaHidden:
		p.Timer--
		if p.Timer <= 0 && math.Abs(t.Mario.body.X-p.body.X) > cfg.PiranhaSafeDistance {
			p.State = PiranhaRising
		}
		return
	case PiranhaRising:
		p.body.Y -= cfg.PiranhaSpeed
		if top := p.BaseY - cfg.PiranhaRise; p.body.Y <= top {
			p.body.Y = top
			p.State = PiranhaUp
			p.Timer = cfg.PiranhaWaitTicks
		}
	case PiranhaUp:
		p.Timer--
		if p.Timer <= 0 {
			p.State = PiranhaFalling
		}
	case PiranhaFalling:
		p.body.Y += cfg.PiranhaSpeed
		if p.body.Y >= p.BaseY {
			p.body.Y = p.BaseY
			p.State = PiranhaHidden
			p.Timer = cfg.PiranhaWaitTicks
		}
	}
	contactMario(t, p)
}

// stomped hurts Mario. Star contact is handled before the stomp test in
// contactMario, so the plant never dies here.
func (p *Piranha) stomped(t *Tick) bool {
	t.Mario.TakeDamage(t)
	return false
}

func (p *Piranha) Removable() bool { return p.body.Dead }

func (p *Piranha) RenderData(int) RenderData {
	return RenderData{
		Sprite: fmt.Sprintf("piranha_%d", (p.anim/10)%2+1),
		X:      p.body.X,
		Y:      p.body.Y,
		Hidden: p.State == PiranhaHidden,
		Hitbox: p.body.Rect(),
	}
}
