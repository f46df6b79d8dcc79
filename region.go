package scif

// Region describes a sub-rectangle of one plane: an offset and an extent
// along each of the two planar axes.
type Region struct {
	X, Y          int64
	Width, Height int64
}

// WholePlane returns the region spanning the entire plane of m.
func WholePlane(m *ImageMetadata) Region {
	return Region{Width: m.PlaneWidth(), Height: m.PlaneHeight()}
}

// Bytes returns the byte size of the region for the given pixel type.
func (r Region) Bytes(p PixelType) int64 {
	return r.Width * r.Height * int64(p.Bytes())
}

// In reports whether the region lies entirely within the plane bounds of m.
func (r Region) In(m *ImageMetadata) bool {
	return r.X >= 0 && r.Y >= 0 && r.Width >= 0 && r.Height >= 0 &&
		r.X+r.Width <= m.PlaneWidth() && r.Y+r.Height <= m.PlaneHeight()
}

// Whole reports whether the region spans the entire declared plane of m.
func (r Region) Whole(m *ImageMetadata) bool {
	return r.X == 0 && r.Y == 0 && r.Width == m.PlaneWidth() && r.Height == m.PlaneHeight()
}

// Plane is one decoded 2D region: a full plane or a sub-rectangular tile.
// Bytes always holds exactly Region.Width * Region.Height samples at the
// owning metadata's pixel size.
type Plane struct {
	Bytes      []byte
	Region     Region
	ImageIndex int
	Index      int64
}
