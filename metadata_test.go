package scif

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testImage() *ImageMetadata {
	return &ImageMetadata{
		Axes: []Axis{
			{Type: AxisX, Length: 50, Unit: "mm", Scale: 0.5},
			{Type: AxisY, Length: 40, Unit: "mm", Scale: 0.5},
			{Type: AxisZ, Length: 3, Unit: "mm", Scale: 1},
			{Type: AxisChannel, Length: 5},
			{Type: AxisTime, Length: 7},
		},
		ByteOrder:       binary.LittleEndian,
		BitsPerPixel:    16,
		PixelType:       Uint16,
		OrderCertain:    true,
		PlanarAxisCount: 2,
	}
}

func TestPixelTypeBytes(t *testing.T) {
	assert.Equal(t, 1, Uint8.Bytes())
	assert.Equal(t, 2, Uint16.Bytes())
	assert.Equal(t, 4, Float32.Bytes())
	assert.Equal(t, 8, Float64.Bytes())
	assert.Equal(t, 0, PixelType(0).Bytes())
}

func TestImageMetadataAxisLookup(t *testing.T) {
	im := testImage()

	assert.Equal(t, int64(40), im.AxisLength(AxisY))

	im.Axes = im.Axes[:2]
	assert.Equal(t, int64(0), im.AxisLength(AxisZ))
	_, ok := im.Axis(AxisZ)
	assert.False(t, ok)
}

func TestImageMetadataPlaneGeometry(t *testing.T) {
	im := testImage()

	assert.Equal(t, int64(50), im.PlaneWidth())
	assert.Equal(t, int64(40), im.PlaneHeight())
	// Planes index every non-planar axis combination
	assert.Equal(t, int64(3*5*7), im.PlaneCount())
	assert.Equal(t, int64(50*40*2), im.PlaneSize())
}

func TestRegionBounds(t *testing.T) {
	im := testImage()

	assert.True(t, Region{X: 10, Y: 10, Width: 40, Height: 30}.In(im))
	assert.False(t, Region{X: 10, Y: 10, Width: 41, Height: 30}.In(im))
	assert.False(t, Region{X: -1, Width: 1, Height: 1}.In(im))

	whole := WholePlane(im)
	assert.True(t, whole.Whole(im))
	assert.True(t, whole.In(im))
	assert.False(t, Region{Width: 50, Height: 39}.Whole(im))

	assert.Equal(t, int64(40*30*2), Region{Width: 40, Height: 30}.Bytes(Uint16))
}
