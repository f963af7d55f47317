package formats

import (
	"encoding/json"
	"fmt"

	"github.com/vovakirdan/tui-platformer/internal/games/platformer/world"
)

// requiredJSONKeys must all be present at the top level of a JSON course.
var requiredJSONKeys = []string{"meta", "width", "height", "tileSize", "layers", "goal", "spawn"}

// JSONLevel is the layered JSON course schema.
type JSONLevel struct {
	Meta struct {
		ID     string `json:"id"`
		Name   string `json:"name"`
		Author string `json:"author,omitempty"`
	} `json:"meta"`
	Width    int        `json:"width"`
	Height   int        `json:"height"`
	TileSize int        `json:"tileSize"`
	Layers   JSONLayers `json:"layers"`
	Goal     struct {
		FlagPoleX     int  `json:"flagPoleX"`
		FlagTopRow    *int `json:"flagTopRow,omitempty"`
		FlagBottomRow *int `json:"flagBottomRow,omitempty"`
	} `json:"goal"`
	Spawn    world.Point `json:"spawn"`
	Entities []struct {
		Type string `json:"type"`
		X    int    `json:"x"`
		Y    int    `json:"y"`
	} `json:"entities"`
}

// JSONLayers holds the solids ops and the scenery layers.
type JSONLayers struct {
	Solids     []Op       `json:"solids"`
	Decor      *jsonDecor `json:"decor,omitempty"`
	DecorBack  *jsonDecor `json:"decorBack,omitempty"`
	DecorFront *jsonDecor `json:"decorFront,omitempty"`
}

type jsonDecor struct {
	Clouds []world.Point `json:"clouds,omitempty"`
	Bushes []world.Bush  `json:"bushes,omitempty"`
	Castle *world.Point  `json:"castle,omitempty"`
}

func (d *jsonDecor) mergeInto(out *world.Decor) {
	if d == nil {
		return
	}
	out.Clouds = append(out.Clouds, d.Clouds...)
	out.Bushes = append(out.Bushes, d.Bushes...)
	if d.Castle != nil {
		out.Castle = d.Castle
	}
}

// ParseJSON parses a layered JSON course file.
func ParseJSON(data []byte) (Level, error) {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return Level{}, fmt.Errorf("json unmarshal: %w", err)
	}
	for _, k := range requiredJSONKeys {
		if _, ok := keys[k]; !ok {
			return Level{}, fmt.Errorf("missing required key %q", k)
		}
	}

	var jl JSONLevel
	if err := json.Unmarshal(data, &jl); err != nil {
		return Level{}, fmt.Errorf("json unmarshal: %w", err)
	}
	if jl.Width <= 0 || jl.Height <= 0 {
		return Level{}, fmt.Errorf("invalid size %dx%d", jl.Width, jl.Height)
	}

	level := Level{
		ID:       jl.Meta.ID,
		Name:     jl.Meta.Name,
		Width:    jl.Width,
		Height:   jl.Height,
		TileSize: jl.TileSize,
		Spawn:    jl.Spawn,
		Goal:     goalWithDefaults(jl.Goal.FlagPoleX, jl.Goal.FlagTopRow, jl.Goal.FlagBottomRow),
	}

	cells := emptyCells(jl.Width, jl.Height)
	warnings, err := ApplyOps(cells, jl.Layers.Solids)
	if err != nil {
		return Level{}, err
	}
	level.Warnings = warnings
	level.Rows = cellsToRows(cells)

	jl.Layers.Decor.mergeInto(&level.Decor)
	jl.Layers.DecorBack.mergeInto(&level.Decor)
	jl.Layers.DecorFront.mergeInto(&level.Decor)

	for _, e := range jl.Entities {
		level.Entities = append(level.Entities, world.SpawnSpec{Kind: world.EntityKind(e.Type), X: e.X, Y: e.Y})
	}

	return level, nil
}
