// Package world is the platformer simulation: the tile grid, the shared
// AABB-vs-grid physics step, per-kind entity state machines and the session
// controller that sequences a course. It never draws and never reads the
// terminal; the game adapter feeds it input snapshots and reads render data.
package world

import "strings"

// TileSize is the edge length of one grid cell in world pixels.
const TileSize = 16

// Tile is the symbol stored in one grid cell.
type Tile byte

const (
	TileEmpty         Tile = ' '
	TileGround        Tile = '1'
	TileBrick         Tile = '2'
	TileCoinBlock     Tile = '3'
	TileMushroomBlock Tile = '4'
	TileStarBlock     Tile = '5'
	TileUsedBlock     Tile = 'e'
	TilePipeTopLeft   Tile = '7'
	TilePipeTopRight  Tile = '8'
	TilePipeBodyLeft  Tile = '9'
	TilePipeBodyRight Tile = 'a'
	TileStep          Tile = 's'
	TileFlagBase      Tile = 'f'
)

// Solid reports whether bodies collide with the tile. Anything but empty is solid.
func (t Tile) Solid() bool {
	return t != TileEmpty && t != 0
}

// IsQuestion reports whether the tile is an unopened question block.
func (t Tile) IsQuestion() bool {
	return t == TileCoinBlock || t == TileMushroomBlock || t == TileStarBlock
}

// ValidTile reports whether r is a known tile symbol.
func ValidTile(r rune) bool {
	switch Tile(r) {
	case TileEmpty, TileGround, TileBrick, TileCoinBlock, TileMushroomBlock, TileStarBlock,
		TileUsedBlock, TilePipeTopLeft, TilePipeTopRight, TilePipeBodyLeft, TilePipeBodyRight,
		TileStep, TileFlagBase:
		return true
	}
	return false
}

// TileReader is read-only access to a tile grid. Entities only ever see this;
// mutations go through the session.
type TileReader interface {
	At(col, row int) Tile
	Width() int
	Height() int
}

// Grid is a fixed-shape grid of tiles addressed by (col, row).
// Reads outside the grid return TileEmpty; writes outside it are dropped.
type Grid struct {
	width  int
	height int
	cells  [][]Tile
}

// NewGrid builds a grid from text rows. Short rows are padded with empty
// tiles so every row has the width of the longest one.
func NewGrid(rows []string) *Grid {
	width := 0
	for _, r := range rows {
		width = max(width, len(r))
	}
	g := NewEmptyGrid(width, len(rows))
	for y, r := range rows {
		for x := 0; x < len(r); x++ {
			g.cells[y][x] = Tile(r[x])
		}
	}
	return g
}

// NewEmptyGrid creates a width x height grid of empty tiles.
func NewEmptyGrid(width, height int) *Grid {
	g := &Grid{width: width, height: height}
	g.cells = make([][]Tile, height)
	for y := range g.cells {
		row := make([]Tile, width)
		for x := range row {
			row[x] = TileEmpty
		}
		g.cells[y] = row
	}
	return g
}

// Width returns the number of columns.
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of rows.
func (g *Grid) Height() int {
	return g.height
}

// At returns the tile at (col, row), or TileEmpty outside the grid.
func (g *Grid) At(col, row int) Tile {
	if col < 0 || row < 0 || col >= g.width || row >= g.height {
		return TileEmpty
	}
	return g.cells[row][col]
}

// Set writes a tile. Out-of-range writes are ignored.
func (g *Grid) Set(col, row int, t Tile) {
	if col < 0 || row < 0 || col >= g.width || row >= g.height {
		return
	}
	g.cells[row][col] = t
}

// Clone returns a deep copy, so a course can be restarted from its pristine layout.
func (g *Grid) Clone() *Grid {
	c := &Grid{width: g.width, height: g.height, cells: make([][]Tile, g.height)}
	for y := range g.cells {
		c.cells[y] = append([]Tile(nil), g.cells[y]...)
	}
	return c
}

// Rows returns the grid as text rows.
func (g *Grid) Rows() []string {
	rows := make([]string, g.height)
	var sb strings.Builder
	for y := range g.cells {
		sb.Reset()
		for _, t := range g.cells[y] {
			sb.WriteByte(byte(t))
		}
		rows[y] = sb.String()
	}
	return rows
}
