package platformer

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/world"
)

// One tile is drawn as two columns by one row.
const (
	columnsPerTile = 2
	pxPerColumn    = world.TileSize / columnsPerTile
	hudRows        = 1
	clearOverlayAt = 30
)

// glyph is how a sprite looks: the top row, the rows below it, and a color.
type glyph struct {
	top   string
	body  string
	color core.Color
}

// sprites maps sprite keys, with any trailing frame number removed, to glyphs.
var sprites = map[string]glyph{
	"tile_ground":       {top: "██", color: core.ColorOrange},
	"tile_brick":        {top: "▒▒", color: core.ColorRed},
	"tile_qblock":       {top: "??", color: core.ColorBrightYellow},
	"tile_qblock_empty": {top: "■■", color: core.ColorOrange},
	"tile_pipe_top_l":   {top: "╔═", color: core.ColorBrightGreen},
	"tile_pipe_top_r":   {top: "═╗", color: core.ColorBrightGreen},
	"tile_pipe_body_l":  {top: " ║", color: core.ColorGreen},
	"tile_pipe_body_r":  {top: "║ ", color: core.ColorGreen},
	"tile_step":         {top: "▓▓", color: core.ColorGray},
	"tile_flag_base":    {top: "▓▓", color: core.ColorGreen},

	"mario_small_stand": {top: "M▸", color: core.ColorBrightRed},
	"mario_small_walk":  {top: "M›", color: core.ColorBrightRed},
	"mario_small_jump":  {top: "M▴", color: core.ColorBrightRed},
	"mario_small_die":   {top: "××", color: core.ColorBrightRed},
	"mario_big_stand":   {top: "M▸", body: "▐▌", color: core.ColorRed},
	"mario_big_walk":    {top: "M›", body: "╱╲", color: core.ColorRed},
	"mario_big_jump":    {top: "M▴", body: "▐▌", color: core.ColorRed},

	"goomba_walk": {top: "◖◗", color: core.ColorOrange},
	"goomba_flat": {top: "▁▁", color: core.ColorOrange},
	"koopa_walk":  {top: "K▸", body: "◖◗", color: core.ColorGreen},
	"koopa_shell": {top: "◓◓", color: core.ColorBrightGreen},
	"piranha":     {top: "ΨΨ", body: "║║", color: core.ColorBrightRed},

	"item_mushroom": {top: "◓◓", color: core.ColorBrightRed},
	"item_star":     {top: "**", color: core.ColorBrightYellow},
}

// mirrored swaps direction-bearing runes for left-facing sprites.
var mirrored = strings.NewReplacer("▸", "◂", "›", "‹", "◖", "◗", "◗", "◖", "╱", "╲", "╲", "╱")

// starColors cycle while Mario is invincible from a star.
var starColors = []core.Color{core.ColorBrightRed, core.ColorBrightYellow, core.ColorBrightGreen, core.ColorBrightCyan}

// lookupGlyph resolves a sprite key, ignoring a trailing frame number.
func lookupGlyph(key string) (glyph, bool) {
	if gl, ok := sprites[key]; ok {
		return gl, true
	}
	trimmed := strings.TrimSuffix(strings.TrimRight(key, "0123456789"), "_")
	gl, ok := sprites[trimmed]
	return gl, ok
}

// viewport maps world pixels to screen cells.
type viewport struct {
	camX float64
	top  int
}

func (v viewport) col(px float64) int {
	return int(math.Floor((px - v.camX) / pxPerColumn))
}

func (v viewport) row(py float64) int {
	return v.top + int(math.Floor(py/world.TileSize))
}

// Render draws the course, its entities and the HUD.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.err != nil {
		dst.DrawTextCentered(dst.Height()/2-1, "Cannot start course")
		dst.DrawTextCentered(dst.Height()/2+1, g.err.Error())
		return
	}
	if g.screenTooSmall {
		msg := "Window too small"
		hint := fmt.Sprintf("Need %dx%d", g.minScreenW, g.minScreenH)
		dst.DrawTextCentered(dst.Height()/2-1, msg)
		dst.DrawTextCentered(dst.Height()/2+1, hint)
		return
	}

	v := viewport{camX: g.session.Camera().X, top: hudRows}

	g.renderDecor(dst, v)
	g.renderTiles(dst, v)
	g.renderFlagpole(dst, v)
	g.renderEntities(dst, v)
	if g.debug {
		g.renderHitboxes(dst, v)
	}
	g.renderHUD(dst)
	g.renderStatus(dst)
	g.renderOverlay(dst)
}

func (g *Game) renderTiles(dst *core.Screen, v viewport) {
	grid := g.session.Grid()
	frame := g.session.Frame()
	first := int(v.camX) / world.TileSize
	last := first + dst.Width()/columnsPerTile + 1

	for row := 0; row < grid.Height(); row++ {
		for col := first; col <= last && col < grid.Width(); col++ {
			key := world.TileSprite(grid.At(col, row), frame)
			if key == "" {
				continue
			}
			gl, ok := lookupGlyph(key)
			if !ok {
				continue
			}
			dst.DrawTextColor(v.col(float64(col*world.TileSize)), v.row(float64(row*world.TileSize)), gl.top, gl.color)
		}
	}
}

func (g *Game) renderDecor(dst *core.Screen, v viewport) {
	decor := g.level.Decor

	for _, c := range decor.Clouds {
		x := v.col(float64(c.X * world.TileSize))
		y := v.row(float64(c.Y * world.TileSize))
		dst.DrawTextColor(x, y, " ▁▂▂▁ ", core.ColorBrightWhite)
		dst.DrawTextColor(x, y+1, "▝▀▀▀▀▘", core.ColorBrightWhite)
	}

	for _, b := range decor.Bushes {
		x := v.col(float64(b.X * world.TileSize))
		y := v.row(float64(b.Y * world.TileSize))
		dst.DrawTextColor(x, y, strings.Repeat("♣", b.W*columnsPerTile), core.ColorGreen)
	}

	if c := decor.Castle; c != nil {
		castle := []string{
			"▙▟▙▟▙▟▙▟▙▟",
			"██████████",
			"███▛▀▀▜███",
			"███▌  ▐███",
		}
		x := v.col(float64(c.X * world.TileSize))
		for i, line := range castle {
			dst.DrawTextColor(x, v.row(float64((c.Y+i)*world.TileSize)), line, core.ColorGray)
		}
	}
}

func (g *Game) renderFlagpole(dst *core.Screen, v viewport) {
	goal := g.level.Goal
	x := v.col(float64(goal.FlagPoleX*world.TileSize)) + 1

	dst.SetWithColor(x, v.row(float64(goal.FlagTopRow*world.TileSize))-1, '●', core.ColorBrightGreen)
	for row := goal.FlagTopRow; row <= goal.FlagBottomRow; row++ {
		dst.SetWithColor(x, v.row(float64(row*world.TileSize)), '│', core.ColorBrightWhite)
	}
	flagRow := v.row(float64(g.session.FlagY() * world.TileSize))
	dst.DrawTextColor(x-2, flagRow, "◀▬", core.ColorBrightGreen)
}

func (g *Game) renderEntities(dst *core.Screen, v viewport) {
	frame := g.session.Frame()
	for _, e := range g.session.Items() {
		g.drawSprite(dst, v, e.Body(), e.RenderData(frame), nil)
	}
	mario := g.session.Mario()
	for _, e := range g.session.Entities() {
		if e == world.Entity(mario) {
			continue
		}
		g.drawSprite(dst, v, e.Body(), e.RenderData(frame), nil)
	}

	var tint *core.Color
	if mario.StarTime > 0 {
		c := starColors[(frame/4)%len(starColors)]
		tint = &c
	}
	g.drawSprite(dst, v, mario.Body(), mario.RenderData(frame), tint)
}

// drawSprite draws a sprite over every screen row its body covers.
func (g *Game) drawSprite(dst *core.Screen, v viewport, b *world.Body, rd world.RenderData, tint *core.Color) {
	if rd.Hidden {
		return
	}
	gl, ok := lookupGlyph(rd.Sprite)
	if !ok {
		gl = glyph{top: "??", color: core.ColorMagenta}
	}
	if tint != nil {
		gl.color = *tint
	}
	top, body := gl.top, gl.body
	if body == "" {
		body = top
	}
	if rd.FlipX {
		top = reverse(mirrored.Replace(top))
		body = reverse(mirrored.Replace(body))
	}

	x := v.col(rd.X)
	y0 := v.row(rd.Y)
	y1 := v.row(rd.Y + b.H - world.Epsilon)
	for y := y0; y <= y1; y++ {
		text := body
		if y == y0 {
			text = top
		}
		dst.DrawTextColor(x, y, text, gl.color)
	}
}

func (g *Game) renderHitboxes(dst *core.Screen, v viewport) {
	frame := g.session.Frame()
	all := append(append([]world.Entity{}, g.session.Entities()...), g.session.Items()...)
	for _, e := range all {
		hb := e.RenderData(frame).Hitbox
		for y := v.row(hb.Y); y <= v.row(hb.Bottom()-world.Epsilon); y++ {
			for x := v.col(hb.X); x <= v.col(hb.Right()-world.Epsilon); x++ {
				if dst.Get(x, y) == ' ' {
					dst.SetWithColor(x, y, '·', core.ColorMagenta)
				} else {
					dst.SetColor(x, y, core.ColorMagenta)
				}
			}
		}
	}
}

func (g *Game) renderHUD(dst *core.Screen) {
	s := g.session
	hud := fmt.Sprintf("MARIO %06d  COINS x%02d  WORLD %s  TIME %03d  LIVES %d",
		s.Score(), s.Coins(), g.level.ID, s.TimeLeft(), s.Lives())
	dst.DrawTextColor(1, 0, hud, core.ColorBrightWhite)
}

func (g *Game) renderStatus(dst *core.Screen) {
	y := dst.Height() - 1
	if y <= g.level.Grid.Height()+hudRows-1 {
		return
	}
	left := fmt.Sprintf("%s  %s", g.session.Mario().Power, g.session.Phase())
	dst.DrawTextColor(1, y, left, core.ColorGray)
	if g.statusTimer > 0 {
		dst.DrawTextColor(dst.Width()-len(g.status)-1, y, g.status, core.ColorCyan)
	}
	if g.debug {
		dst.DrawTextCentered(y, "HITBOXES")
	}
}

func (g *Game) renderOverlay(dst *core.Screen) {
	switch {
	case g.session.GameOver():
		subtitle := fmt.Sprintf("Score: %d  |  Press R to restart", g.session.Score())
		g.drawCenteredBox(dst, "GAME OVER", subtitle)
	case g.session.Phase() == world.PhaseClear && g.session.ClearTimer() > clearOverlayAt:
		subtitle := fmt.Sprintf("Score: %d  Time: %d  |  Press R to play again", g.session.Score(), g.session.TimeLeft())
		g.drawCenteredBox(dst, "COURSE CLEAR!", subtitle)
	case g.paused:
		g.drawCenteredBox(dst, "PAUSED", "Press P to resume")
	}
}

// drawCenteredBox draws a centered message box.
func (g *Game) drawCenteredBox(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawText(boxX+(boxW-len(title))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}

func reverse(s string) string {
	r := []rune(s)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return string(r)
}
