package scif

import "math"

// DefaultMaxBufferSize is the largest plane or tile, in bytes, a Reader
// will decode into a single buffer. Regions above this limit fail with
// ErrBufferTooLarge; callers read such planes tile by tile instead.
const DefaultMaxBufferSize = math.MaxInt32

// OptimalTileSize returns the largest tile dimensions for a width x height
// plane of bpp-byte samples whose byte size stays within maxBuf. Full rows
// are preserved for as long as possible: the height shrinks first, and the
// width is only reduced once even a single full row would not fit,
// matching the row-major layout of packed planes.
func OptimalTileSize(width, height int64, bpp int, maxBuf int64) (tileWidth, tileHeight int64, err error) {
	if width <= 0 || height <= 0 || bpp <= 0 {
		return 0, 0, ErrRegionBounds
	}
	if maxBuf < int64(bpp) {
		// Not even one sample fits
		return 0, 0, ErrBufferTooLarge
	}

	tileWidth, tileHeight = width, height
	if tileWidth*tileHeight*int64(bpp) <= maxBuf {
		return tileWidth, tileHeight, nil
	}

	tileHeight = maxBuf / (tileWidth * int64(bpp))
	if tileHeight < 1 {
		tileHeight = 1
		tileWidth = maxBuf / int64(bpp)
	}
	if tileWidth > width {
		tileWidth = width
	}
	if tileHeight > height {
		tileHeight = height
	}

	return tileWidth, tileHeight, nil
}

// TileGrid partitions a width x height plane into tiles of at most
// TileWidth x TileHeight samples. Every sample belongs to exactly one tile;
// tiles on the right and bottom edges are clipped at the plane boundary.
type TileGrid struct {
	Width, Height         int64
	TileWidth, TileHeight int64
}

// NewTileGrid returns the grid covering a width x height plane with the
// given nominal tile dimensions.
func NewTileGrid(width, height, tileWidth, tileHeight int64) TileGrid {
	return TileGrid{
		Width:      width,
		Height:     height,
		TileWidth:  tileWidth,
		TileHeight: tileHeight,
	}
}

// TilesWide returns the number of tile columns.
func (g TileGrid) TilesWide() int64 {
	return ceilDiv(g.Width, g.TileWidth)
}

// TilesHigh returns the number of tile rows.
func (g TileGrid) TilesHigh() int64 {
	return ceilDiv(g.Height, g.TileHeight)
}

// Tile returns the clipped region of the tile at grid coordinates (tx, ty).
func (g TileGrid) Tile(tx, ty int64) Region {
	r := Region{
		X:      tx * g.TileWidth,
		Y:      ty * g.TileHeight,
		Width:  g.TileWidth,
		Height: g.TileHeight,
	}
	if r.X+r.Width > g.Width {
		r.Width = g.Width - r.X
	}
	if r.Y+r.Height > g.Height {
		r.Height = g.Height - r.Y
	}
	return r
}

// ForEach calls fn for every tile in row-major order, stopping at the first
// error.
func (g TileGrid) ForEach(fn func(Region) error) error {
	for ty := int64(0); ty < g.TilesHigh(); ty++ {
		for tx := int64(0); tx < g.TilesWide(); tx++ {
			if err := fn(g.Tile(tx, ty)); err != nil {
				return err
			}
		}
	}
	return nil
}

func ceilDiv(a, b int64) int64 {
	if b <= 0 {
		return 0
	}
	return (a + b - 1) / b
}
