package world

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-platformer/internal/config"
)

// ErrUnknownEntity is returned when a course spawns an entity kind the
// simulation does not know.
var ErrUnknownEntity = errors.New("world: unknown entity kind")

// defaultViewWidth is the camera width used until the renderer sets one.
const defaultViewWidth = 16 * TileSize

// Phase is the course phase.
type Phase int

const (
	PhasePlaying Phase = iota
	PhaseFlagpole
	PhaseClear
)

func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "PLAYING"
	case PhaseFlagpole:
		return "FLAGPOLE"
	case PhaseClear:
		return "CLEAR"
	default:
		return "UNKNOWN"
	}
}

// Session runs one course: it owns the live grid, every entity and the
// score, coins, lives and clock. All mutation happens inside Update.
type Session struct {
	level *Level
	rules config.PlatformerConfig

	grid     *Grid
	mario    *Mario
	entities []Entity // Mario first
	items    []Entity

	score    int
	coins    int
	lives    int
	gameTime int

	phase      Phase
	gameOver   bool
	clearTimer int
	flagY      int

	camera     Camera
	frame      int
	clockTicks int

	events           []Event
	restartRequested bool
}

// NewSession prepares a course for play. Every spawn must be a known kind.
func NewSession(level *Level, rules config.PlatformerConfig) (*Session, error) {
	s := &Session{
		level: level,
		rules: rules,
		camera: Camera{
			ViewWidth:  defaultViewWidth,
			Lead:       rules.Session.CameraLead,
			LevelWidth: level.PixelWidth(),
		},
	}
	for _, spec := range level.Entities {
		if _, err := s.spawnEnemy(spec); err != nil {
			return nil, err
		}
	}
	s.resetProgress()
	s.resetLevel()
	return s, nil
}

// spawnEnemy builds a course entity from its spawn spec.
func (s *Session) spawnEnemy(spec SpawnSpec) (Entity, error) {
	x, y := float64(spec.X*TileSize), float64(spec.Y*TileSize)
	switch spec.Kind {
	case KindGoomba:
		return NewGoomba(x, y, &s.rules), nil
	case KindKoopa:
		return NewKoopa(x, y-(koopaHeight-shellHeight), &s.rules), nil
	case KindPiranha:
		return NewPiranha(x, y, &s.rules), nil
	default:
		return nil, fmt.Errorf("%w: %q at (%d,%d)", ErrUnknownEntity, spec.Kind, spec.X, spec.Y)
	}
}

func (s *Session) spawnItem(kind EntityKind, col, row int) {
	switch kind {
	case KindMushroom:
		s.items = append(s.items, NewMushroom(col, row, &s.rules))
	case KindStar:
		s.items = append(s.items, NewStar(col, row, &s.rules))
	}
}

func (s *Session) resetProgress() {
	s.score = 0
	s.coins = 0
	s.lives = s.rules.Session.Lives
}

// resetLevel rebuilds the course from its pristine layout.
func (s *Session) resetLevel() {
	s.grid = s.level.Grid.Clone()
	s.gameTime = s.rules.Session.Time
	s.gameOver = false
	s.phase = PhasePlaying
	s.clearTimer = 0
	s.flagY = s.level.Goal.FlagTopRow
	s.clockTicks = 0
	s.restartRequested = false

	spawn := s.level.Spawn
	s.mario = NewMario(float64(spawn.X*TileSize), float64(spawn.Y*TileSize), &s.rules)
	s.entities = []Entity{s.mario}
	for _, spec := range s.level.Entities {
		// Kinds were checked by NewSession.
		if e, err := s.spawnEnemy(spec); err == nil {
			s.entities = append(s.entities, e)
		}
	}
	s.items = nil
	s.camera.Reset()
}

// Restart is the soft restart: a fresh layout keeping score, coins and lives.
// With no lives left it ends the game instead. Ignored once the game is over.
func (s *Session) Restart() {
	if s.gameOver {
		return
	}
	if s.lives <= 0 {
		s.gameOver = true
		return
	}
	s.resetLevel()
}

// HardRestart resets score, coins and lives, then restarts the course.
func (s *Session) HardRestart() {
	s.resetProgress()
	s.resetLevel()
}

func (s *Session) newTick(in Input) *Tick {
	return &Tick{
		Grid:       s.grid,
		Input:      in,
		Mario:      s.mario,
		Entities:   s.entities,
		Phase:      s.phase,
		CameraLeft: s.camera.X,
		Goal:       s.level.Goal,
		Frame:      s.frame,
		Rules:      &s.rules,
	}
}

// Update advances the session by one tick.
func (s *Session) Update(in Input) {
	if s.gameOver {
		return
	}
	s.frame++

	if in.Restart && s.phase == PhaseClear {
		s.Restart()
		return
	}

	t := s.newTick(in)
	switch s.phase {
	case PhaseFlagpole:
		s.updateFlagpole()
		s.camera.Follow(s.mario.body.X)
		s.mario.Update(t)
		s.apply(t)
	case PhaseClear:
		s.clearTimer++
	case PhasePlaying:
		s.updatePlaying(t)
	}

	if s.restartRequested {
		s.restartRequested = false
		s.Restart()
	}
}

func (s *Session) updateFlagpole() {
	s.clearTimer++
	bottom := s.level.Goal.FlagBottomRow
	if step := s.rules.Session.FlagStepTicks; step > 0 && s.clearTimer%step == 0 && s.flagY < bottom {
		s.flagY++
	}
	if s.flagY >= bottom && s.clearTimer > s.rules.Session.FlagGraceTicks {
		s.phase = PhaseClear
		s.clearTimer = 0
	}
}

func (s *Session) updatePlaying(t *Tick) {
	s.clockTicks++
	if s.clockTicks >= s.rules.Session.TicksPerSecond {
		s.clockTicks = 0
		s.gameTime--
		if s.gameTime <= 0 {
			s.mario.Die(t)
			s.apply(t)
		}
	}

	s.items = prune(s.items)
	for _, it := range s.items {
		it.Update(t)
		s.apply(t)
	}

	s.entities = prune(s.entities)
	t.Entities = s.entities
	for _, e := range s.entities {
		e.Update(t)
		s.apply(t)
	}

	s.camera.Follow(s.mario.body.X)
}

// prune drops removable entities, keeping order.
func prune(list []Entity) []Entity {
	kept := list[:0]
	for _, e := range list {
		if !e.Removable() {
			kept = append(kept, e)
		}
	}
	for i := len(kept); i < len(list); i++ {
		list[i] = nil
	}
	return kept
}

// apply commits the intents an entity queued during its update.
func (s *Session) apply(t *Tick) {
	for _, in := range t.intents {
		switch in.kind {
		case intentSetTile:
			s.grid.Set(in.col, in.row, in.tile)
		case intentSpawn:
			s.spawnItem(in.spawn, in.col, in.row)
		case intentScore:
			s.score += in.amount
		case intentCoin:
			s.coins += in.amount
		case intentLoseLife:
			s.lives--
		case intentEvent:
			s.events = append(s.events, in.event)
		case intentFlagpole:
			s.triggerFlagpole()
			t.Phase = s.phase
		case intentRestart:
			s.restartRequested = true
		}
	}
	t.intents = t.intents[:0]
}

func (s *Session) triggerFlagpole() {
	if s.phase != PhasePlaying {
		return
	}
	s.phase = PhaseFlagpole
	s.mario.body.VX = 0
	s.mario.body.VY = 0
	s.flagY = s.level.Goal.FlagTopRow
	s.clearTimer = 0
	s.events = append(s.events, EventFlagpole)
}

// DrainEvents returns and clears the events raised since the last call.
func (s *Session) DrainEvents() []Event {
	ev := s.events
	s.events = nil
	return ev
}

// SetViewWidth sets the camera's visible width in world pixels.
func (s *Session) SetViewWidth(px float64) {
	s.camera.ViewWidth = px
}

func (s *Session) Level() *Level                  { return s.level }
func (s *Session) Rules() config.PlatformerConfig { return s.rules }
func (s *Session) Grid() TileReader               { return s.grid }
func (s *Session) Mario() *Mario                  { return s.mario }
func (s *Session) Entities() []Entity             { return s.entities }
func (s *Session) Items() []Entity                { return s.items }
func (s *Session) Score() int                     { return s.score }
func (s *Session) Coins() int                     { return s.coins }
func (s *Session) Lives() int                     { return s.lives }
func (s *Session) Phase() Phase                   { return s.phase }
func (s *Session) GameOver() bool                 { return s.gameOver }
func (s *Session) ClearTimer() int                { return s.clearTimer }
func (s *Session) FlagY() int                     { return s.flagY }
func (s *Session) Camera() Camera                 { return s.camera }
func (s *Session) Frame() int                     { return s.frame }

// TimeLeft returns the course clock in seconds, never below zero.
func (s *Session) TimeLeft() int {
	return max(s.gameTime, 0)
}
