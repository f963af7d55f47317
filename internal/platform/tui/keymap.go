package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// GameKeyMap defines the in-game key bindings.
type GameKeyMap struct {
	Left     key.Binding
	Right    key.Binding
	RunLeft  key.Binding
	RunRight key.Binding
	Jump     key.Binding
	RunLock  key.Binding
	Restart  key.Binding
	Pause    key.Binding
	Debug    key.Binding
	Back     key.Binding
	Shot     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Jump, k.RunLock, k.Pause, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.RunLeft, k.RunRight, k.Jump},
		{k.RunLock, k.Restart, k.Pause, k.Debug},
		{k.Back, k.Shot, k.Quit},
	}
}

// DefaultGameKeyMap returns default key bindings.
func DefaultGameKeyMap() GameKeyMap {
	return GameKeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("←/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("→/d", "right"),
		),
		RunLeft: key.NewBinding(
			key.WithKeys("shift+left", "A"),
			key.WithHelp("S-←/A", "run left"),
		),
		RunRight: key.NewBinding(
			key.WithKeys("shift+right", "D"),
			key.WithHelp("S-→/D", "run right"),
		),
		Jump: key.NewBinding(
			key.WithKeys("up", "w", " "),
			key.WithHelp("↑/w/space", "jump"),
		),
		RunLock: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "run lock"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Debug: key.NewBinding(
			key.WithKeys("f3"),
			key.WithHelp("F3", "hitboxes"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "menu"),
		),
		Shot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("C-s", "screenshot"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// KeyMapper translates Bubble Tea key messages to game actions.
type KeyMapper struct {
	Keys GameKeyMap
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{Keys: DefaultGameKeyMap()}
}

// MapKey translates a key message into the actions it triggers.
// Run variants of the arrows yield both the direction and ActionRun.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) []core.Action {
	k := km.Keys
	switch {
	case key.Matches(msg, k.Quit):
		return []core.Action{core.ActionQuit}
	case key.Matches(msg, k.RunLeft):
		return []core.Action{core.ActionLeft, core.ActionRun}
	case key.Matches(msg, k.RunRight):
		return []core.Action{core.ActionRight, core.ActionRun}
	case key.Matches(msg, k.Left):
		return []core.Action{core.ActionLeft}
	case key.Matches(msg, k.Right):
		return []core.Action{core.ActionRight}
	case key.Matches(msg, k.Jump):
		return []core.Action{core.ActionJump}
	case key.Matches(msg, k.Restart):
		return []core.Action{core.ActionRestart}
	case key.Matches(msg, k.Pause):
		return []core.Action{core.ActionPause}
	case key.Matches(msg, k.Debug):
		return []core.Action{core.ActionDebug}
	case key.Matches(msg, k.Back):
		return []core.Action{core.ActionBack}
	case msg.String() == "enter":
		return []core.Action{core.ActionConfirm}
	}
	return nil
}

// IsHeld reports whether an action is a held control rather than a one-shot.
func IsHeld(a core.Action) bool {
	switch a {
	case core.ActionLeft, core.ActionRight, core.ActionJump, core.ActionRun:
		return true
	}
	return false
}

// HoldTracker turns key presses into held actions. Terminals report presses
// but not releases, so a press counts as held for a short window. The first
// press gets a longer window that covers the terminal's auto-repeat delay;
// repeats arriving inside a window only need to bridge the repeat interval.
type HoldTracker struct {
	firstHold  int
	repeatHold int
	tick       int
	until      map[core.Action]int
}

// NewHoldTracker sizes the hold windows for a tick rate.
func NewHoldTracker(tickRate int) *HoldTracker {
	if tickRate <= 0 {
		tickRate = 60
	}
	return &HoldTracker{
		firstHold:  tickRate * 11 / 20, // ~550ms, longer than the usual 500ms repeat delay
		repeatHold: max(tickRate/8, 2), // ~125ms, several repeat intervals
		until:      make(map[core.Action]int),
	}
}

// Press records a key press for a held action.
// Pressing one direction releases the other.
func (h *HoldTracker) Press(a core.Action) {
	switch a {
	case core.ActionLeft:
		delete(h.until, core.ActionRight)
	case core.ActionRight:
		delete(h.until, core.ActionLeft)
	}

	window := h.firstHold
	if h.Held(a) {
		window = h.repeatHold
	}
	h.until[a] = max(h.until[a], h.tick+window)
}

// Held reports whether the action is inside its hold window.
func (h *HoldTracker) Held(a core.Action) bool {
	until, ok := h.until[a]
	return ok && h.tick < until
}

// Apply marks every held action on the frame.
func (h *HoldTracker) Apply(frame *core.InputFrame) {
	for a := range h.until {
		if h.Held(a) {
			frame.Set(a)
		}
	}
}

// Advance moves to the next tick and forgets expired holds.
func (h *HoldTracker) Advance() {
	h.tick++
	for a, until := range h.until {
		if h.tick >= until {
			delete(h.until, a)
		}
	}
}

// Reset releases every key.
func (h *HoldTracker) Reset() {
	clear(h.until)
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionScoreboard
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k":
		return MenuActionUp
	case "s", "down", "j":
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}

	return MenuActionNone
}
