package world

import "testing"

func TestNewGridPadsRows(t *testing.T) {
	g := NewGrid([]string{"11", "1", "1111"})

	if g.Width() != 4 {
		t.Errorf("Width() = %d, expected 4", g.Width())
	}
	if g.Height() != 3 {
		t.Errorf("Height() = %d, expected 3", g.Height())
	}
	if g.At(3, 1) != TileEmpty {
		t.Errorf("At(3, 1) = %q, expected padding with empty", g.At(3, 1))
	}
	if g.At(3, 2) != TileGround {
		t.Errorf("At(3, 2) = %q, expected ground", g.At(3, 2))
	}
}

func TestGridOutOfRange(t *testing.T) {
	g := NewGrid([]string{"111", "111"})

	tests := []struct {
		name     string
		col, row int
	}{
		{"left", -1, 0},
		{"right", 3, 0},
		{"above", 0, -1},
		{"below", 0, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.At(tt.col, tt.row); got != TileEmpty {
				t.Errorf("At(%d, %d) = %q, expected empty", tt.col, tt.row, got)
			}
			if g.At(tt.col, tt.row).Solid() {
				t.Errorf("out-of-range cell should not be solid")
			}
			// Writes outside the grid are dropped without panicking
			g.Set(tt.col, tt.row, TileBrick)
		})
	}

	for _, row := range g.Rows() {
		if row != "111" {
			t.Errorf("out-of-range Set changed the grid: %q", row)
		}
	}
}

func TestGridCloneIsIndependent(t *testing.T) {
	g := NewGrid([]string{"3  ", "111"})
	c := g.Clone()

	c.Set(0, 0, TileUsedBlock)

	if g.At(0, 0) != TileCoinBlock {
		t.Errorf("original changed after editing clone: %q", g.At(0, 0))
	}
	if c.At(0, 0) != TileUsedBlock {
		t.Errorf("clone At(0, 0) = %q, expected used block", c.At(0, 0))
	}
}

func TestTileSolid(t *testing.T) {
	tests := []struct {
		tile  Tile
		solid bool
	}{
		{TileEmpty, false},
		{0, false},
		{TileGround, true},
		{TileBrick, true},
		{TileCoinBlock, true},
		{TileUsedBlock, true},
		{TilePipeTopLeft, true},
		{TilePipeBodyRight, true},
		{TileStep, true},
		{TileFlagBase, true},
	}
	for _, tt := range tests {
		if got := tt.tile.Solid(); got != tt.solid {
			t.Errorf("Tile(%q).Solid() = %v, expected %v", tt.tile, got, tt.solid)
		}
	}
}

func TestValidTile(t *testing.T) {
	for _, r := range " 12345e789asf" {
		if !ValidTile(r) {
			t.Errorf("ValidTile(%q) = false, expected true", r)
		}
	}
	for _, r := range "0bgkM#" {
		if ValidTile(r) {
			t.Errorf("ValidTile(%q) = true, expected false", r)
		}
	}
}

func TestTileSprite(t *testing.T) {
	tests := []struct {
		tile   Tile
		frame  int
		sprite string
	}{
		{TileEmpty, 0, ""},
		{TileGround, 0, "tile_ground"},
		{TileBrick, 0, "tile_brick"},
		{TileCoinBlock, 0, "tile_qblock1"},
		{TileCoinBlock, 14, "tile_qblock1"},
		{TileCoinBlock, 15, "tile_qblock_empty"},
		{TileStarBlock, 30, "tile_qblock1"},
		{TileUsedBlock, 0, "tile_qblock_empty"},
		{TilePipeTopLeft, 0, "tile_pipe_top_l"},
		{TilePipeBodyRight, 0, "tile_pipe_body_r"},
	}
	for _, tt := range tests {
		if got := TileSprite(tt.tile, tt.frame); got != tt.sprite {
			t.Errorf("TileSprite(%q, %d) = %q, expected %q", tt.tile, tt.frame, got, tt.sprite)
		}
	}
}
