package levels

import (
	"errors"
	"fmt"
	"math"

	"github.com/vovakirdan/tui-platformer/internal/games/platformer/levels/formats"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/world"
)

// ErrInvalidLevel wraps every validation failure.
var ErrInvalidLevel = errors.New("invalid level")

// Course bounds, in tiles.
const (
	MinWidth  = 64
	MaxWidth  = 512
	MinHeight = 16
	MaxHeight = 32

	// The flagpole must sit in the last fifth of the course.
	goalFraction = 0.8

	// Density rules, checked in strict mode.
	densityWindow  = 16
	maxPlainGround = 8
)

// Validate checks a parsed course. All problems are reported together.
// strict additionally enforces the interaction density rules.
func Validate(l formats.Level, strict bool) error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalidLevel, fmt.Sprintf(format, args...)))
	}

	if l.TileSize != world.TileSize {
		fail("tileSize must be %d, got %d", world.TileSize, l.TileSize)
	}
	if l.Width < MinWidth || l.Width > MaxWidth {
		fail("width %d outside %d..%d", l.Width, MinWidth, MaxWidth)
	}
	if l.Height < MinHeight || l.Height > MaxHeight {
		fail("height %d outside %d..%d", l.Height, MinHeight, MaxHeight)
	}
	if len(l.Rows) != l.Height {
		fail("expected %d rows, got %d", l.Height, len(l.Rows))
	}
	if l.Spawn.X < 0 || l.Spawn.X >= l.Width || l.Spawn.Y < 0 || l.Spawn.Y >= l.Height {
		fail("spawn (%d,%d) out of bounds", l.Spawn.X, l.Spawn.Y)
	}

	minPole := int(math.Floor(float64(l.Width) * goalFraction))
	if l.Goal.FlagPoleX < minPole || l.Goal.FlagPoleX >= l.Width {
		fail("flagPoleX %d must be in %d..%d", l.Goal.FlagPoleX, minPole, l.Width-1)
	}
	if l.Goal.FlagTopRow < 0 || l.Goal.FlagBottomRow >= l.Height || l.Goal.FlagTopRow >= l.Goal.FlagBottomRow {
		fail("flag rows %d..%d invalid", l.Goal.FlagTopRow, l.Goal.FlagBottomRow)
	}

	for i, e := range l.Entities {
		if !world.IsSpawnable(e.Kind) {
			fail("entity %d: unknown type %q", i, e.Kind)
		}
		if e.X < 0 || e.Y < 0 || e.X >= l.Width || e.Y >= l.Height {
			fail("entity %d (%s) at (%d,%d) out of bounds", i, e.Kind, e.X, e.Y)
		}
	}

	if strict && len(errs) == 0 {
		errs = append(errs, checkDensity(l)...)
	}

	return errors.Join(errs...)
}

// interactionColumns marks columns where the player has something to do:
// a pit, anything above the ground rows, a reward block or an enemy.
func interactionColumns(l formats.Level) []bool {
	h := l.Height
	cols := make([]bool, l.Width)
	for x := 0; x < l.Width; x++ {
		if l.Rows[h-2][x] == byte(world.TileEmpty) {
			cols[x] = true
			continue
		}
		for y := 0; y < h; y++ {
			t := world.Tile(l.Rows[y][x])
			if (y < h-2 && t != world.TileEmpty) || t.IsQuestion() {
				cols[x] = true
				break
			}
		}
	}
	for _, e := range l.Entities {
		if e.X >= 0 && e.X < l.Width {
			cols[e.X] = true
		}
	}
	return cols
}

func checkDensity(l formats.Level) []error {
	var errs []error
	cols := interactionColumns(l)
	h := l.Height

	for start := 0; start+densityWindow <= l.Width; start++ {
		found := false
		for x := start; x < start+densityWindow; x++ {
			if cols[x] {
				found = true
				break
			}
		}
		if !found {
			errs = append(errs, fmt.Errorf("%w: no interaction in columns %d..%d", ErrInvalidLevel, start, start+densityWindow-1))
			break
		}
	}

	run, runStart := 0, 0
	for x := 0; x < l.Width; x++ {
		plain := !cols[x] &&
			l.Rows[h-2][x] != byte(world.TileEmpty) &&
			l.Rows[h-1][x] != byte(world.TileEmpty)
		if !plain {
			run = 0
			continue
		}
		if run == 0 {
			runStart = x
		}
		run++
		if run == maxPlainGround+1 {
			errs = append(errs, fmt.Errorf("%w: plain ground run from column %d exceeds %d", ErrInvalidLevel, runStart, maxPlainGround))
		}
	}

	return errs
}
