package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/registry"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

// GameOptions are the optional collaborators of a GameModel.
type GameOptions struct {
	Store    *storage.Store  // Where finished runs go; nil disables saving
	Player   string          // Recorded with each run; empty means local
	Renderer *ScreenRenderer // Nil renders for the local terminal
	Logger   *log.Logger     // Receives game events; nil discards them
	Embedded bool            // Back returns to a parent model instead of quitting
}

// GameModel runs one course: it feeds key state into the game every tick,
// renders it, and records the run when it finishes.
type GameModel struct {
	game      registry.Game
	screen    *core.Screen
	config    core.RuntimeConfig
	opts      GameOptions
	keys      *KeyMapper
	holds     *HoldTracker
	oneShot   core.InputFrame
	runLock   bool
	gameState core.GameState

	quitting   bool
	backToMenu bool
	runSaved   bool
}

// NewGameModel creates a model for the given game.
func NewGameModel(game registry.Game, cfg core.RuntimeConfig, opts GameOptions) GameModel {
	if opts.Renderer == nil {
		opts.Renderer = NewScreenRenderer(nil)
	}
	if opts.Player == "" {
		opts.Player = storage.LocalPlayer
	}

	return GameModel{
		game:    game,
		screen:  core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:  cfg,
		opts:    opts,
		keys:    NewKeyMapper(),
		holds:   NewHoldTracker(cfg.TickRate),
		oneShot: core.NewInputFrame(),
	}
}

// Init starts the game and the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Keys.Shot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Keys.RunLock):
		m.runLock = !m.runLock
		return m, nil
	}

	for _, a := range m.keys.MapKey(msg) {
		switch {
		case a == core.ActionQuit:
			m.quitting = true
			return m, tea.Quit
		case a == core.ActionBack:
			if m.gameState.Finished() || m.gameState.Paused {
				m.backToMenu = true
				if !m.opts.Embedded {
					return m, tea.Quit
				}
			}
		case IsHeld(a):
			m.holds.Press(a)
		default:
			m.oneShot.Set(a)
		}
	}

	return m, nil
}

func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	// Games that can follow a resize keep their progress
	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(msg.Width, msg.Height)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}

	return m, nil
}

// Frame builds this tick's input from one-shot keys, held keys and run lock.
func (m GameModel) Frame() core.InputFrame {
	frame := m.oneShot.Clone()
	m.holds.Apply(&frame)
	if m.runLock {
		frame.Set(core.ActionRun)
	}
	return frame
}

func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.Frame())
	m.gameState = result.State

	if m.opts.Logger != nil {
		for _, e := range result.Events {
			m.opts.Logger.Debug("event", "game", m.game.ID(), "player", m.opts.Player, "event", e)
		}
	}

	// One record per finished run; a restart starts a new one
	if m.gameState.Finished() {
		if !m.runSaved {
			m.saveRun()
			m.runSaved = true
		}
	} else {
		m.runSaved = false
	}

	m.oneShot.Clear()
	m.holds.Advance()

	return m, tickCmd(m.config.TickRate)
}

func (m GameModel) saveRun() {
	st := m.gameState
	if m.opts.Store == nil || (st.Score == 0 && !st.Cleared) {
		return
	}

	_, err := m.opts.Store.SaveRun(storage.Run{
		CourseID: m.game.ID(),
		Player:   m.opts.Player,
		Score:    st.Score,
		Coins:    st.Coins,
		TimeLeft: st.TimeLeft,
		Cleared:  st.Cleared,
	})
	if err != nil && m.opts.Logger != nil {
		m.opts.Logger.Warn("could not save run", "game", m.game.ID(), "error", err)
	}
}

// saveScreenshot writes the current frame as plain text.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".platformer", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(filepath.Join(dir, filename), []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return m.opts.Renderer.Render(m.screen)
}

// IsQuitting returns true if the user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user asked to return to the menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// RunLock reports whether run is latched on.
func (m GameModel) RunLock() bool {
	return m.runLock
}

// Run plays a single game in the local terminal. It returns true when the
// player asked to go back to the menu rather than quit.
func Run(game registry.Game, cfg core.RuntimeConfig, opts GameOptions) (backToMenu bool, err error) {
	model := NewGameModel(game, cfg, opts)

	p := tea.NewProgram(model, tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	if gm, ok := final.(GameModel); ok {
		return gm.BackToMenu(), nil
	}
	return false, nil
}
