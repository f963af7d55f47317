package world

import (
	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
)

// Event is a gameplay cue raised by the simulation, usually a sound to play.
type Event string

const (
	EventJump           Event = "jump"
	EventBump           Event = "bump"
	EventCoin           Event = "coin"
	EventBreakBlock     Event = "break_block"
	EventPowerUpAppears Event = "powerup_appears"
	EventPowerUp        Event = "powerup"
	EventDamage         Event = "damage"
	EventDie            Event = "die"
	EventStomp          Event = "stomp"
	EventKick           Event = "kick"
	EventStarman        Event = "starman_music"
	EventFlagpole       Event = "flagpole"
)

// Input is the control snapshot for one tick.
type Input struct {
	Left      bool
	Right     bool
	Up        bool // Jump held
	Run       bool
	UpPressed bool // Jump went down this tick
	Restart   bool
}

// RenderData describes how to draw one entity this tick.
type RenderData struct {
	Sprite string
	X, Y   float64
	FlipX  bool
	Hidden bool
	Hitbox core.RectF
}

// Entity is one simulated object. Behavior is fixed per kind.
type Entity interface {
	Kind() EntityKind
	Body() *Body
	Update(t *Tick)
	RenderData(frame int) RenderData
	// Removable reports whether the session may drop the entity.
	Removable() bool
	// Kill marks the entity dead without a stomp (shell hit, star contact).
	Kill(t *Tick)
}

// Tick is the per-update context handed to entities. Entities read the world
// through it and queue changes; the session applies the queue after each
// entity's update.
type Tick struct {
	Grid       TileReader
	Input      Input
	Mario      *Mario
	Entities   []Entity
	Phase      Phase
	CameraLeft float64
	Goal       Goal
	Frame      int
	Rules      *config.PlatformerConfig

	intents []intent
}

type intentKind int

const (
	intentSetTile intentKind = iota
	intentSpawn
	intentScore
	intentCoin
	intentLoseLife
	intentEvent
	intentFlagpole
	intentRestart
)

type intent struct {
	kind   intentKind
	col    int
	row    int
	tile   Tile
	spawn  EntityKind
	amount int
	event  Event
}

// SetTile queues a grid mutation.
func (t *Tick) SetTile(col, row int, tile Tile) {
	t.intents = append(t.intents, intent{kind: intentSetTile, col: col, row: row, tile: tile})
}

// SpawnItem queues a power-up whose resting position is the tile (col, row).
func (t *Tick) SpawnItem(kind EntityKind, col, row int) {
	t.intents = append(t.intents, intent{kind: intentSpawn, spawn: kind, col: col, row: row})
}

// AddScore queues points.
func (t *Tick) AddScore(points int) {
	t.intents = append(t.intents, intent{kind: intentScore, amount: points})
}

// AddCoin queues one collected coin.
func (t *Tick) AddCoin() {
	t.intents = append(t.intents, intent{kind: intentCoin, amount: 1})
}

// LoseLife queues the loss of one life.
func (t *Tick) LoseLife() {
	t.intents = append(t.intents, intent{kind: intentLoseLife})
}

// Emit queues a gameplay event.
func (t *Tick) Emit(e Event) {
	t.intents = append(t.intents, intent{kind: intentEvent, event: e})
}

// TriggerFlagpole asks the session to start the flagpole sequence.
func (t *Tick) TriggerFlagpole() {
	t.intents = append(t.intents, intent{kind: intentFlagpole})
}

// RequestRestart asks the session for a soft restart once the tick ends.
func (t *Tick) RequestRestart() {
	t.intents = append(t.intents, intent{kind: intentRestart})
}

// overlapsMario reports whether a live Mario touches the body.
func (t *Tick) overlapsMario(b *Body) bool {
	return t.Mario != nil && !t.Mario.body.Dead && t.Mario.body.Overlaps(b)
}
