package core

import (
	"strings"
	"testing"
)

func TestNewScreenIsBlank(t *testing.T) {
	s := NewScreen(8, 3)

	if s.Width() != 8 || s.Height() != 3 {
		t.Fatalf("size = %dx%d, expected 8x3", s.Width(), s.Height())
	}
	expected := strings.Repeat(" ", 8)
	for y := range 3 {
		if s.Row(y) != expected {
			t.Errorf("Row(%d) = %q, expected blanks", y, s.Row(y))
		}
	}
}

func TestScreenOutOfBounds(t *testing.T) {
	s := NewScreen(4, 4)

	// Sprites hanging off any edge must not panic or wrap
	for _, p := range [][2]int{{-1, 0}, {4, 0}, {0, -1}, {0, 4}, {4, 3}} {
		s.SetWithColor(p[0], p[1], 'X', ColorRed)
		s.SetColor(p[0], p[1], ColorRed)
	}
	if strings.ContainsRune(s.String(), 'X') {
		t.Errorf("out-of-bounds writes leaked into the buffer:\n%s", s.String())
	}

	if c := s.GetCell(-1, -1); c != blankCell {
		t.Errorf("GetCell() out of bounds = %+v, expected a blank cell", c)
	}
}

func TestScreenColors(t *testing.T) {
	s := NewScreen(10, 2)

	s.DrawTextColor(2, 0, "MARIO", ColorBrightRed)
	if c := s.GetCell(4, 0); c.Rune != 'R' || c.Color != ColorBrightRed {
		t.Errorf("GetCell(4, 0) = %+v, expected red R", c)
	}

	// SetColor keeps the rune
	s.SetColor(4, 0, ColorBrightYellow)
	if c := s.GetCell(4, 0); c.Rune != 'R' || c.Color != ColorBrightYellow {
		t.Errorf("after SetColor = %+v, expected yellow R", c)
	}

	// Set resets the color
	s.Set(4, 0, 'r')
	if c := s.GetCell(4, 0); c.Color != ColorDefault {
		t.Errorf("Set() kept color %v", c.Color)
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(10, 1)

	// Multi-byte runes take one cell each; overflow is clipped
	s.DrawText(7, 0, "×02x")
	if s.Row(0) != "       ×02" {
		t.Errorf("Row(0) = %q", s.Row(0))
	}

	s.Clear()
	s.DrawTextCentered(0, "GO")
	if s.Row(0) != "    GO    " {
		t.Errorf("centered Row(0) = %q", s.Row(0))
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(6, 4)
	s.DrawRect(NewRect(0, 0, 6, 4), '#')
	s.DrawBox(NewRect(1, 0, 4, 3))

	expected := []string{
		"#┌──┐#",
		"#│##│#",
		"#└──┘#",
		"######",
	}
	for y, row := range expected {
		if s.Row(y) != row {
			t.Errorf("Row(%d) = %q, expected %q", y, s.Row(y), row)
		}
	}
}

func TestScreenResizeClears(t *testing.T) {
	s := NewScreen(4, 2)
	s.DrawText(0, 0, "ABCD")

	s.Resize(6, 3)
	if s.Width() != 6 || s.Height() != 3 {
		t.Fatalf("size = %dx%d, expected 6x3", s.Width(), s.Height())
	}
	if strings.TrimSpace(s.String()) != "" {
		t.Errorf("Resize() should clear the buffer, got %q", s.String())
	}

	// Negative sizes collapse to an empty buffer
	s.Resize(-1, 5)
	if s.Width() != 0 || s.String() != strings.Repeat("\n", 4) {
		t.Errorf("Resize(-1, 5) gave width %d and %q", s.Width(), s.String())
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(3, 2)
	s.DrawText(0, 0, "ab")
	s.DrawText(1, 1, "cd")

	if s.String() != "ab \n cd" {
		t.Errorf("String() = %q, expected %q", s.String(), "ab \n cd")
	}
}
