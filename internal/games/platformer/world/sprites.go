package world

// qblockBlinkTicks is how long a question block shows each of its two frames.
const qblockBlinkTicks = 15

// TileSprite returns the sprite key for a tile at the given frame, or "" for
// empty cells. Unopened question blocks blink.
func TileSprite(t Tile, frame int) string {
	switch t {
	case TileGround:
		return "tile_ground"
	case TileBrick:
		return "tile_brick"
	case TileCoinBlock, TileMushroomBlock, TileStarBlock:
		if (frame/qblockBlinkTicks)%2 == 0 {
			return "tile_qblock1"
		}
		return "tile_qblock_empty"
	case TileUsedBlock:
		return "tile_qblock_empty"
	case TilePipeTopLeft:
		return "tile_pipe_top_l"
	case TilePipeTopRight:
		return "tile_pipe_top_r"
	case TilePipeBodyLeft:
		return "tile_pipe_body_l"
	case TilePipeBodyRight:
		return "tile_pipe_body_r"
	case TileStep:
		return "tile_step"
	case TileFlagBase:
		return "tile_flag_base"
	default:
		return ""
	}
}
