// Package platformer adapts the world simulation to the arcade platform:
// it maps input frames onto the simulation's input snapshot, draws the
// course into a terminal screen and reports game state.
package platformer

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/levels"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/world"
	"github.com/vovakirdan/tui-platformer/internal/registry"
)

// IDPrefix namespaces course IDs in the registry and score storage.
const IDPrefix = "platformer-"

// statusTicks is how long the last event stays on the status line.
const statusTicks = 90

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// logger receives game events; nil discards them
var logger *log.Logger

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	p, err := config.ParseDifficultyPreset(preset)
	if err != nil {
		p = ""
	}
	difficultyPreset = p
}

// SetLogger routes game events and config problems to l.
func SetLogger(l *log.Logger) {
	logger = l
}

// GameID returns the registry ID for a course.
func GameID(levelID string) string {
	return IDPrefix + levelID
}

// Game plays one course.
type Game struct {
	level   *world.Level
	session *world.Session
	rules   config.PlatformerConfig
	runtime core.RuntimeConfig
	err     error

	paused bool
	debug  bool
	lastUp bool

	status      string
	statusTimer int

	minScreenW     int
	minScreenH     int
	screenTooSmall bool
}

// New creates a game for the given course.
func New(level *world.Level) *Game {
	return &Game{level: level}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID(g.level.ID)
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return g.level.Name
}

// Level returns the course being played.
func (g *Game) Level() *world.Level {
	return g.level
}

// Session exposes the running simulation, nil before Reset.
func (g *Game) Session() *world.Session {
	return g.session
}

// Reset loads the rules and starts the course from scratch.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := config.LoadPlatformer(configPath)
	if err != nil {
		if logger != nil {
			logger.Warn("using default rules", "error", err)
		}
		cfg = config.DefaultPlatformerConfig()
	}
	if difficultyPreset != "" {
		config.ApplyPlatformerPreset(&cfg, difficultyPreset)
	}
	g.rules = cfg

	g.session, g.err = world.NewSession(g.level, cfg)
	g.paused = false
	g.lastUp = false
	g.status = ""
	g.statusTimer = 0

	g.minScreenW = 40
	g.minScreenH = g.level.Grid.Height() + 2
	g.Resize(runtime.ScreenW, runtime.ScreenH)
}

// Resize adapts the viewport to a new terminal size.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW = w
	g.runtime.ScreenH = h
	g.screenTooSmall = w < g.minScreenW || h < g.minScreenH
	if g.session != nil {
		g.session.SetViewWidth(float64(w * pxPerColumn))
	}
}

// Step advances the simulation by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.err != nil || g.screenTooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionDebug) {
		g.debug = !g.debug
	}

	// Game over: only a restart does anything
	if g.session.GameOver() {
		if in.Has(core.ActionRestart) {
			g.session.HardRestart()
		}
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	up := in.Has(core.ActionJump)
	g.session.Update(world.Input{
		Left:      in.Has(core.ActionLeft),
		Right:     in.Has(core.ActionRight),
		Up:        up,
		Run:       in.Has(core.ActionRun),
		UpPressed: up && !g.lastUp,
		Restart:   in.Has(core.ActionRestart),
	})
	g.lastUp = up

	if g.statusTimer > 0 {
		g.statusTimer--
	}

	events := g.session.DrainEvents()
	names := make([]string, len(events))
	for i, e := range events {
		names[i] = string(e)
		if logger != nil {
			logger.Debug("event", "course", g.level.ID, "event", e, "frame", g.session.Frame())
		}
	}
	if len(events) > 0 {
		g.status = names[len(names)-1]
		g.statusTimer = statusTicks
	}

	return core.StepResult{State: g.State(), Events: names}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{GameOver: g.err != nil}
	}
	return core.GameState{
		Score:    g.session.Score(),
		Coins:    g.session.Coins(),
		TimeLeft: g.session.TimeLeft(),
		GameOver: g.session.GameOver() || g.err != nil,
		Cleared:  g.session.Phase() == world.PhaseClear,
		Paused:   g.paused,
	}
}

// Debug reports whether the hitbox overlay is on.
func (g *Game) Debug() bool {
	return g.debug
}

// RegisterCourses adds every course the loader finds to the registry.
// Courses whose ID is already registered are skipped and reported.
func RegisterCourses(l *levels.Loader) (added int, err error) {
	courses, err := l.LoadAll()
	if err != nil {
		return 0, err
	}
	for _, lvl := range courses {
		id := GameID(lvl.ID)
		if registry.Exists(id) {
			if logger != nil {
				logger.Warn("course already registered", "id", lvl.ID, "source", lvl.Source)
			}
			continue
		}
		registry.Register(id, func() registry.Game {
			return New(lvl)
		})
		added++
	}
	return added, nil
}

// Register the built-in courses with the registry
func init() {
	if _, err := RegisterCourses(levels.Builtin()); err != nil {
		panic(fmt.Sprintf("platformer: built-in courses: %v", err))
	}
}
