package tui

import (
	"slices"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name     string
		msg      tea.KeyMsg
		expected []core.Action
	}{
		{"arrow left", tea.KeyMsg{Type: tea.KeyLeft}, []core.Action{core.ActionLeft}},
		{"d", runes("d"), []core.Action{core.ActionRight}},
		{"shift left runs", tea.KeyMsg{Type: tea.KeyShiftLeft}, []core.Action{core.ActionLeft, core.ActionRun}},
		{"capital D runs", runes("D"), []core.Action{core.ActionRight, core.ActionRun}},
		{"space jumps", tea.KeyMsg{Type: tea.KeySpace}, []core.Action{core.ActionJump}},
		{"up jumps", tea.KeyMsg{Type: tea.KeyUp}, []core.Action{core.ActionJump}},
		{"restart", runes("r"), []core.Action{core.ActionRestart}},
		{"pause", runes("p"), []core.Action{core.ActionPause}},
		{"hitboxes", tea.KeyMsg{Type: tea.KeyF3}, []core.Action{core.ActionDebug}},
		{"escape", tea.KeyMsg{Type: tea.KeyEsc}, []core.Action{core.ActionBack}},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, []core.Action{core.ActionConfirm}},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, []core.Action{core.ActionQuit}},
		{"unbound", runes("z"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := km.MapKey(tt.msg)
			if !slices.Equal(got, tt.expected) {
				t.Errorf("MapKey(%q) = %v, expected %v", tt.msg.String(), got, tt.expected)
			}
		})
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg      tea.KeyMsg
		expected MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{runes("j"), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{runes("q"), MenuActionQuit},
		{runes("x"), MenuActionNone},
	}

	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.expected {
			t.Errorf("MapKeyToMenuAction(%q) = %v, expected %v", tt.msg.String(), got, tt.expected)
		}
	}
}

func advance(h *HoldTracker, ticks int) {
	for range ticks {
		h.Advance()
	}
}

func TestHoldTrackerFirstPress(t *testing.T) {
	h := NewHoldTracker(60)
	h.Press(core.ActionLeft)

	// The first press must outlast the terminal's auto-repeat delay
	advance(h, 32)
	if !h.Held(core.ActionLeft) {
		t.Error("Left released before the first hold window ended")
	}

	advance(h, 1)
	if h.Held(core.ActionLeft) {
		t.Error("Left still held after the first hold window")
	}
}

func TestHoldTrackerRepeat(t *testing.T) {
	h := NewHoldTracker(60)
	h.Press(core.ActionRight)

	// Repeats keep extending the hold past the first window
	for range 10 {
		advance(h, 5)
		h.Press(core.ActionRight)
	}
	if !h.Held(core.ActionRight) {
		t.Fatal("Right released while repeats kept arriving")
	}

	// Once repeats stop, the key is released after the short window
	advance(h, h.repeatHold)
	if h.Held(core.ActionRight) {
		t.Error("Right still held after repeats stopped")
	}
}

func TestHoldTrackerOppositeDirection(t *testing.T) {
	h := NewHoldTracker(60)
	h.Press(core.ActionLeft)
	h.Press(core.ActionJump)
	h.Press(core.ActionRight)

	if h.Held(core.ActionLeft) {
		t.Error("Pressing right should release left")
	}
	if !h.Held(core.ActionRight) || !h.Held(core.ActionJump) {
		t.Error("Right and jump should be held")
	}

	frame := core.NewInputFrame()
	h.Apply(&frame)
	if frame.Has(core.ActionLeft) || !frame.Has(core.ActionRight) || !frame.Has(core.ActionJump) {
		t.Error("Apply() should set exactly the held actions")
	}

	h.Reset()
	if h.Held(core.ActionRight) {
		t.Error("Reset() should release every key")
	}
}

func TestIsHeld(t *testing.T) {
	held := []core.Action{core.ActionLeft, core.ActionRight, core.ActionJump, core.ActionRun}
	for _, a := range held {
		if !IsHeld(a) {
			t.Errorf("IsHeld(%v) = false, expected true", a)
		}
	}
	for _, a := range []core.Action{core.ActionPause, core.ActionRestart, core.ActionDebug} {
		if IsHeld(a) {
			t.Errorf("IsHeld(%v) = true, expected false", a)
		}
	}
}
