// Package formats provides pluggable course file parsers. Every parser
// produces the same raw Level, which the levels package validates before it
// becomes a playable world.Level.
package formats

import (
	"fmt"

	"github.com/vovakirdan/tui-platformer/internal/games/platformer/world"
)

// Level is a parsed, not yet validated course.
type Level struct {
	ID       string
	Name     string
	Width    int
	Height   int
	TileSize int
	Rows     []string
	Spawn    world.Point
	Goal     world.Goal
	Entities []world.SpawnSpec
	Decor    world.Decor
	Warnings []string // Non-fatal problems found while building the rows
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml", ".json", ".tmx"}
}

// Op is one fill or clear rectangle in a solids layer.
type Op struct {
	Op   string `yaml:"op" json:"op"`
	Tile string `yaml:"tile,omitempty" json:"tile,omitempty"`
	X    int    `yaml:"x" json:"x"`
	Y    int    `yaml:"y" json:"y"`
	W    int    `yaml:"w" json:"w"`
	H    int    `yaml:"h" json:"h"`
}

func (o Op) String() string {
	if o.Op == "fill" {
		return fmt.Sprintf("fill %q at (%d,%d) %dx%d", o.Tile, o.X, o.Y, o.W, o.H)
	}
	return fmt.Sprintf("%s at (%d,%d) %dx%d", o.Op, o.X, o.Y, o.W, o.H)
}

// emptyCells returns a width x height block of empty tiles.
func emptyCells(width, height int) [][]byte {
	cells := make([][]byte, height)
	for y := range cells {
		row := make([]byte, width)
		for x := range row {
			row[x] = byte(world.TileEmpty)
		}
		cells[y] = row
	}
	return cells
}

// ApplyOps runs fill/clear ops over the cells, clipping each op to the grid.
// An op that touches no cell is reported as a warning.
func ApplyOps(cells [][]byte, ops []Op) ([]string, error) {
	var warnings []string
	height := len(cells)
	width := 0
	if height > 0 {
		width = len(cells[0])
	}

	for i, op := range ops {
		var tile byte
		switch op.Op {
		case "fill":
			if len(op.Tile) != 1 || !world.ValidTile(rune(op.Tile[0])) {
				return warnings, fmt.Errorf("op %d: unknown tile %q", i, op.Tile)
			}
			tile = op.Tile[0]
		case "clear":
			tile = byte(world.TileEmpty)
		default:
			return warnings, fmt.Errorf("op %d: unknown op %q", i, op.Op)
		}

		changed := 0
		for y := max(0, op.Y); y < min(height, op.Y+op.H); y++ {
			for x := max(0, op.X); x < min(width, op.X+op.W); x++ {
				cells[y][x] = tile
				changed++
			}
		}
		if changed == 0 {
			warnings = append(warnings, fmt.Sprintf("op %d (%s) had no effect", i, op))
		}
	}
	return warnings, nil
}

func cellsToRows(cells [][]byte) []string {
	rows := make([]string, len(cells))
	for y, row := range cells {
		rows[y] = string(row)
	}
	return rows
}

// goalWithDefaults fills in the default flag rows when they are not given.
func goalWithDefaults(poleX int, top, bottom *int) world.Goal {
	g := world.Goal{
		FlagPoleX:     poleX,
		FlagTopRow:    world.DefaultFlagTopRow,
		FlagBottomRow: world.DefaultFlagBottomRow,
	}
	if top != nil {
		g.FlagTopRow = *top
	}
	if bottom != nil {
		g.FlagBottomRow = *bottom
	}
	return g
}
