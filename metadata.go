package scif

import "encoding/binary"

// AxisType tags one dimension of an image dataset.
type AxisType int

const (
	AxisX AxisType = iota + 1
	AxisY
	AxisZ
	AxisChannel
	AxisTime
)

func (t AxisType) String() string {
	switch t {
	case AxisX:
		return "X"
	case AxisY:
		return "Y"
	case AxisZ:
		return "Z"
	case AxisChannel:
		return "Channel"
	case AxisTime:
		return "Time"
	}
	return "Unknown"
}

// Spatial reports whether the axis type is one of X, Y or Z.
func (t AxisType) Spatial() bool {
	return t == AxisX || t == AxisY || t == AxisZ
}

// Axis is one calibrated dimension of an image: a type tag, a length in
// samples, an optional physical unit and the physical size per sample.
type Axis struct {
	Type   AxisType
	Length int64
	Unit   string
	Scale  float64
}

// PixelType enumerates the numeric sample types a format can store.
type PixelType int

const (
	Int8 PixelType = iota + 1
	Uint8
	Int16
	Uint16
	Int32
	Uint32
	Float32
	Float64
)

func (p PixelType) String() string {
	switch p {
	case Int8:
		return "int8"
	case Uint8:
		return "uint8"
	case Int16:
		return "int16"
	case Uint16:
		return "uint16"
	case Int32:
		return "int32"
	case Uint32:
		return "uint32"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	}
	return "unknown"
}

// Bytes returns the number of bytes per sample, or zero for an invalid type.
func (p PixelType) Bytes() int {
	switch p {
	case Int8, Uint8:
		return 1
	case Int16, Uint16:
		return 2
	case Int32, Uint32, Float32:
		return 4
	case Float64:
		return 8
	}
	return 0
}

// ImageMetadata is the generalized, format-agnostic description of one
// logical image in a dataset. The conversion from format-specific metadata
// is intentionally lossy: only dimensional, calibration and ordering facts
// survive.
//
// The first PlanarAxisCount axes (typically X and Y) define a 2D plane; the
// remaining axes index which plane.
type ImageMetadata struct {
	Axes            []Axis
	ByteOrder       binary.ByteOrder
	BitsPerPixel    int
	PixelType       PixelType
	OrderCertain    bool
	PlanarAxisCount int
}

// Axis returns the first axis of the given type.
func (m *ImageMetadata) Axis(t AxisType) (Axis, bool) {
	for _, a := range m.Axes {
		if a.Type == t {
			return a, true
		}
	}
	return Axis{}, false
}

// AxisLength returns the length of the first axis of the given type, or
// zero if the image has no such axis.
func (m *ImageMetadata) AxisLength(t AxisType) int64 {
	a, ok := m.Axis(t)
	if !ok {
		return 0
	}
	return a.Length
}

// PlaneWidth returns the length of the first planar axis.
func (m *ImageMetadata) PlaneWidth() int64 {
	if len(m.Axes) < 1 {
		return 0
	}
	return m.Axes[0].Length
}

// PlaneHeight returns the length of the second planar axis, or one for
// single-row images.
func (m *ImageMetadata) PlaneHeight() int64 {
	if m.PlanarAxisCount < 2 || len(m.Axes) < 2 {
		return 1
	}
	return m.Axes[1].Length
}

// PlaneCount returns the number of planes in the image: the product of the
// non-planar axis lengths.
func (m *ImageMetadata) PlaneCount() int64 {
	count := int64(1)
	for i := m.PlanarAxisCount; i < len(m.Axes); i++ {
		count *= m.Axes[i].Length
	}
	return count
}

// PlaneSize returns the byte size of one decoded plane.
func (m *ImageMetadata) PlaneSize() int64 {
	return m.PlaneWidth() * m.PlaneHeight() * int64(m.PixelType.Bytes())
}
