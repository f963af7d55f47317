package levels

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/levels/formats"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/world"
)

func TestBuiltinCourses(t *testing.T) {
	l := Builtin()
	l.Strict = true

	levels, err := l.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}

	expected := []string{"1-1", "1-2", "1-3"}
	if len(levels) != len(expected) {
		t.Fatalf("LoadAll() returned %d courses, expected %d", len(levels), len(expected))
	}
	for i, lvl := range levels {
		if lvl.ID != expected[i] {
			t.Errorf("course %d ID = %q, expected %q", i, lvl.ID, expected[i])
		}
		if lvl.Grid.Height() != 16 {
			t.Errorf("%s height = %d, expected 16", lvl.ID, lvl.Grid.Height())
		}
		if lvl.Name == "" || lvl.Name == lvl.ID {
			t.Errorf("%s has no display name", lvl.ID)
		}
		// Every built-in course can be started
		if _, err := world.NewSession(lvl, config.DefaultPlatformerConfig()); err != nil {
			t.Errorf("NewSession(%s) error = %v", lvl.ID, err)
		}
	}
}

func TestLoadByID(t *testing.T) {
	lvl, err := Builtin().LoadByID("1-2")
	if err != nil {
		t.Fatalf("LoadByID() error = %v", err)
	}
	if lvl.Goal.FlagPoleX != 130 {
		t.Errorf("FlagPoleX = %d, expected 130", lvl.Goal.FlagPoleX)
	}

	if _, err := Builtin().LoadByID("9-9"); err == nil {
		t.Error("LoadByID(9-9) expected error")
	}
}

// validLevel returns a 64x16 course that passes strict validation.
func validLevel() formats.Level {
	rows := make([]string, 16)
	for y := range rows {
		rows[y] = strings.Repeat(" ", 64)
	}
	ground := []byte(strings.Repeat("1", 64))
	// A pit every eight columns keeps the density rules happy
	for x := 4; x < 64; x += 8 {
		ground[x] = ' '
	}
	rows[14], rows[15] = string(ground), string(ground)

	return formats.Level{
		ID:       "valid",
		Width:    64,
		Height:   16,
		TileSize: 16,
		Rows:     rows,
		Spawn:    world.Point{X: 1, Y: 13},
		Goal:     world.Goal{FlagPoleX: 60, FlagTopRow: 6, FlagBottomRow: 14},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*formats.Level)
		strict bool
		valid  bool
	}{
		{"valid", func(*formats.Level) {}, true, true},
		{"tile size", func(l *formats.Level) { l.TileSize = 8 }, false, false},
		{"too narrow", func(l *formats.Level) { l.Width = 63 }, false, false},
		{"too tall", func(l *formats.Level) { l.Height = 33 }, false, false},
		{"spawn out of bounds", func(l *formats.Level) { l.Spawn.X = 64 }, false, false},
		// floor(64*0.8) = 51
		{"pole too early", func(l *formats.Level) { l.Goal.FlagPoleX = 50 }, false, false},
		{"pole at minimum", func(l *formats.Level) { l.Goal.FlagPoleX = 51 }, false, true},
		{"flag rows inverted", func(l *formats.Level) { l.Goal.FlagTopRow = 14 }, false, false},
		{"flag bottom past grid", func(l *formats.Level) { l.Goal.FlagBottomRow = 16 }, false, false},
		{"unknown entity", func(l *formats.Level) {
			l.Entities = []world.SpawnSpec{{Kind: "bowser", X: 3, Y: 13}}
		}, false, false},
		{"negative entity", func(l *formats.Level) {
			l.Entities = []world.SpawnSpec{{Kind: world.KindGoomba, X: -1, Y: 13}}
		}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := validLevel()
			tt.mutate(&l)
			err := Validate(l, tt.strict)
			if tt.valid && err != nil {
				t.Errorf("Validate() error = %v, expected nil", err)
			}
			if !tt.valid && !errors.Is(err, ErrInvalidLevel) {
				t.Errorf("Validate() error = %v, expected ErrInvalidLevel", err)
			}
		})
	}
}

func TestValidateReportsAllProblems(t *testing.T) {
	l := validLevel()
	l.TileSize = 8
	l.Spawn.Y = -1

	err := Validate(l, false)
	if err == nil {
		t.Fatal("Validate() expected error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "tileSize") || !strings.Contains(msg, "spawn") {
		t.Errorf("Validate() error = %q, expected both problems", msg)
	}
}

func TestValidateDensity(t *testing.T) {
	// Flat ground with nothing to do is fine unless strict
	l := validLevel()
	solid := strings.Repeat("1", 64)
	l.Rows[14], l.Rows[15] = solid, solid

	if err := Validate(l, false); err != nil {
		t.Errorf("Validate(non-strict) error = %v, expected nil", err)
	}

	err := Validate(l, true)
	if err == nil {
		t.Fatal("Validate(strict) expected density error")
	}
	if !strings.Contains(err.Error(), "no interaction") || !strings.Contains(err.Error(), "plain ground") {
		t.Errorf("Validate(strict) error = %q, expected window and run failures", err)
	}

	// An enemy counts as an interaction for its column
	l = validLevel()
	l.Rows[14], l.Rows[15] = solid, solid
	for x := 4; x < 64; x += 8 {
		l.Entities = append(l.Entities, world.SpawnSpec{Kind: world.KindGoomba, X: x, Y: 13})
	}
	if err := Validate(l, true); err != nil {
		t.Errorf("Validate(strict, enemies) error = %v, expected nil", err)
	}
}

func TestLoadAllSkipsInvalid(t *testing.T) {
	fsys := fstest.MapFS{
		"broken.yaml":    {Data: []byte("rows: [unclosed")},
		"notes.txt":      {Data: []byte("ignored")},
		"nested/ok.yaml": {Data: []byte(validYAML())},
	}

	l := &Loader{FS: fsys, Root: "mem"}
	levels, err := l.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	if len(levels) != 1 {
		t.Fatalf("LoadAll() returned %d courses, expected 1", len(levels))
	}
	// ID falls back to the file stem
	if levels[0].ID != "ok" {
		t.Errorf("ID = %q, expected ok", levels[0].ID)
	}
	if levels[0].Source != "mem/nested/ok.yaml" {
		t.Errorf("Source = %q, expected mem/nested/ok.yaml", levels[0].Source)
	}
}

// validYAML renders validLevel as a rows-based YAML course.
func validYAML() string {
	l := validLevel()
	var b strings.Builder
	b.WriteString("spawn: {x: 1, y: 13}\ngoal: {flag_pole_x: 60}\nrows:\n")
	for _, r := range l.Rows {
		b.WriteString("  - \"" + r + "\"\n")
	}
	return b.String()
}
