package renderer

import "image"

// Tile is one unit of work: a rectangle of pixels written by exactly one worker
type Tile struct {
	ID     int
	Bounds image.Rectangle
}

// NewTile creates a new tile
func NewTile(id int, bounds image.Rectangle) *Tile {
	return &Tile{ID: id, Bounds: bounds}
}

// NewTileGrid covers the image with square tiles, clipped at the right and bottom edges
func NewTileGrid(width, height, tileSize int) []*Tile {
	var tiles []*Tile
	tileID := 0

	// Calculate number of tiles in each dimension
	tilesX := (width + tileSize - 1) / tileSize // Ceiling division
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width) // Don't exceed image bounds
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, NewTile(tileID, image.Rect(x0, y0, x1, y1)))
			tileID++
		}
	}

	return tiles
}

// NewRowGrid makes one full-width unit per image row
func NewRowGrid(width, height int) []*Tile {
	tiles := make([]*Tile, height)
	for y := 0; y < height; y++ {
		tiles[y] = NewTile(y, image.Rect(0, y, width, y+1))
	}
	return tiles
}

// partition splits the image according to the config
func partition(width, height int, config Config) []*Tile {
	if config.Partition == PartitionTiles {
		return NewTileGrid(width, height, config.TileSize)
	}
	return NewRowGrid(width, height)
}
