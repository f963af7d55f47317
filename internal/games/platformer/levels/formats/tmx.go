package formats

import (
	"fmt"
	"io/fs"
	"strings"

	"github.com/lafriks/go-tiled"

	"github.com/vovakirdan/tui-platformer/internal/games/platformer/world"
)

// Tiled conventions for courses: a tile layer named "solids" whose tileset
// tiles carry a "symbol" string property, and an object group whose object
// classes name spawns, enemies, the flag and scenery.
const (
	tmxSolidsLayer = "solids"
	tmxSymbolProp  = "symbol"
)

// ParseTMX loads a Tiled map from fsys. External tilesets are resolved
// relative to the map inside the same filesystem.
func ParseTMX(fsys fs.FS, path string) (Level, error) {
	m, err := tiled.LoadFile(path, tiled.WithFileSystem(fsys))
	if err != nil {
		return Level{}, fmt.Errorf("tmx load: %w", err)
	}
	if m.TileWidth != m.TileHeight {
		return Level{}, fmt.Errorf("tiles must be square, got %dx%d", m.TileWidth, m.TileHeight)
	}

	level := Level{
		Width:    m.Width,
		Height:   m.Height,
		TileSize: m.TileWidth,
		Goal:     goalWithDefaults(0, nil, nil),
	}
	if name := m.Properties.GetString("name"); name != "" {
		level.Name = name
	}
	level.ID = m.Properties.GetString("id")

	cells := emptyCells(m.Width, m.Height)
	solidsFound := false
	for _, layer := range m.Layers {
		if layer.Name != tmxSolidsLayer {
			continue
		}
		solidsFound = true
		for i, tile := range layer.Tiles {
			if tile == nil || tile.IsNil() {
				continue
			}
			x, y := i%m.Width, i/m.Width
			if y >= m.Height {
				break
			}
			tt, err := tile.Tileset.GetTilesetTile(tile.ID)
			if err != nil {
				return Level{}, fmt.Errorf("tile at (%d,%d): %w", x, y, err)
			}
			sym := tt.Properties.GetString(tmxSymbolProp)
			if len(sym) != 1 || !world.ValidTile(rune(sym[0])) {
				return Level{}, fmt.Errorf("tile at (%d,%d): bad symbol %q", x, y, sym)
			}
			cells[y][x] = sym[0]
		}
	}
	if !solidsFound {
		return Level{}, fmt.Errorf("no %q tile layer", tmxSolidsLayer)
	}
	level.Rows = cellsToRows(cells)

	ts := float64(m.TileWidth)
	spawnFound, flagFound := false, false
	for _, og := range m.ObjectGroups {
		for _, o := range og.Objects {
			col, row := int(o.X/ts), int(o.Y/ts)
			switch kind := objectClass(o); kind {
			case "spawn":
				level.Spawn = world.Point{X: col, Y: row}
				spawnFound = true
			case "flag":
				level.Goal.FlagPoleX = col
				if v := o.Properties.GetInt("topRow"); v != 0 {
					level.Goal.FlagTopRow = v
				}
				if v := o.Properties.GetInt("bottomRow"); v != 0 {
					level.Goal.FlagBottomRow = v
				}
				flagFound = true
			case "cloud":
				level.Decor.Clouds = append(level.Decor.Clouds, world.Point{X: col, Y: row})
			case "bush":
				w := max(1, o.Properties.GetInt("w"))
				level.Decor.Bushes = append(level.Decor.Bushes, world.Bush{X: col, Y: row, W: w})
			case "castle":
				level.Decor.Castle = &world.Point{X: col, Y: row}
			case "":
				level.Warnings = append(level.Warnings, fmt.Sprintf("object %d in %q has no class", o.ID, og.Name))
			default:
				level.Entities = append(level.Entities, world.SpawnSpec{Kind: world.EntityKind(kind), X: col, Y: row})
			}
		}
	}
	if !spawnFound {
		return Level{}, fmt.Errorf("no spawn object")
	}
	if !flagFound {
		return Level{}, fmt.Errorf("no flag object")
	}

	return level, nil
}

// objectClass prefers the Tiled 1.9+ class attribute over the legacy type.
func objectClass(o *tiled.Object) string {
	class := o.Class
	if class == "" {
		class = o.Type //nolint:staticcheck
	}
	return strings.ToLower(strings.TrimSpace(class))
}
