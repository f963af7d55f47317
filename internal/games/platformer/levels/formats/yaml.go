package formats

import (
	"fmt"

	"github.com/vovakirdan/tui-platformer/internal/games/platformer/world"
	"gopkg.in/yaml.v3"
)

// Row markers that place entities instead of tiles.
const (
	markerGoomba  = 'g'
	markerKoopa   = 'k'
	markerPiranha = 'p'
	markerSpawn   = 'M'
)

// YAMLLevel represents the YAML structure for a course file. The layout is
// either drawn as rows or built from width/height plus solids ops; ops are
// applied on top of rows when both are present.
type YAMLLevel struct {
	ID       string       `yaml:"id"`
	Name     string       `yaml:"name"`
	TileSize int          `yaml:"tile_size,omitempty"`
	Width    int          `yaml:"width,omitempty"`
	Height   int          `yaml:"height,omitempty"`
	Spawn    *world.Point `yaml:"spawn,omitempty"`
	Goal     YAMLGoal     `yaml:"goal"`
	Rows     []string     `yaml:"rows,omitempty"`
	Solids   []Op         `yaml:"solids,omitempty"`
	Entities []YAMLEntity `yaml:"entities,omitempty"`
	Decor    YAMLDecor    `yaml:"decor,omitempty"`
}

// YAMLGoal locates the flagpole.
type YAMLGoal struct {
	FlagPoleX     int  `yaml:"flag_pole_x"`
	FlagTopRow    *int `yaml:"flag_top_row,omitempty"`
	FlagBottomRow *int `yaml:"flag_bottom_row,omitempty"`
}

// YAMLEntity places one enemy.
type YAMLEntity struct {
	Type string `yaml:"type"`
	X    int    `yaml:"x"`
	Y    int    `yaml:"y"`
}

// YAMLDecor is renderer-only scenery.
type YAMLDecor struct {
	Clouds []world.Point `yaml:"clouds,omitempty"`
	Bushes []world.Bush  `yaml:"bushes,omitempty"`
	Castle *world.Point  `yaml:"castle,omitempty"`
}

// ParseYAML parses a YAML course file.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	level := Level{
		ID:       yl.ID,
		Name:     yl.Name,
		TileSize: yl.TileSize,
		Goal:     goalWithDefaults(yl.Goal.FlagPoleX, yl.Goal.FlagTopRow, yl.Goal.FlagBottomRow),
		Decor: world.Decor{
			Clouds: yl.Decor.Clouds,
			Bushes: yl.Decor.Bushes,
			Castle: yl.Decor.Castle,
		},
	}
	if level.TileSize == 0 {
		level.TileSize = world.TileSize
	}

	width, height := yl.Width, yl.Height
	for _, r := range yl.Rows {
		width = max(width, len(r))
	}
	height = max(height, len(yl.Rows))
	if width == 0 || height == 0 {
		return Level{}, fmt.Errorf("course has no rows and no width/height")
	}
	level.Width, level.Height = width, height

	cells := emptyCells(width, height)
	spawnFound := false
	for y, r := range yl.Rows {
		for x := 0; x < len(r); x++ {
			c := r[x]
			switch c {
			case markerGoomba:
				level.Entities = append(level.Entities, world.SpawnSpec{Kind: world.KindGoomba, X: x, Y: y})
			case markerKoopa:
				level.Entities = append(level.Entities, world.SpawnSpec{Kind: world.KindKoopa, X: x, Y: y})
			case markerPiranha:
				level.Entities = append(level.Entities, world.SpawnSpec{Kind: world.KindPiranha, X: x, Y: y})
			case markerSpawn:
				level.Spawn = world.Point{X: x, Y: y}
				spawnFound = true
			default:
				if !world.ValidTile(rune(c)) {
					return Level{}, fmt.Errorf("row %d col %d: unknown tile %q", y, x, c)
				}
				cells[y][x] = c
			}
		}
	}

	warnings, err := ApplyOps(cells, yl.Solids)
	if err != nil {
		return Level{}, err
	}
	level.Warnings = warnings
	level.Rows = cellsToRows(cells)

	if yl.Spawn != nil {
		level.Spawn = *yl.Spawn
	} else if !spawnFound {
		return Level{}, fmt.Errorf("course has no spawn")
	}

	for _, e := range yl.Entities {
		level.Entities = append(level.Entities, world.SpawnSpec{Kind: world.EntityKind(e.Type), X: e.X, Y: e.Y})
	}

	return level, nil
}
