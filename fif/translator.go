package fif

import (
	"math"

	"github.com/scif-go/scif"
)

// Translator fills FIF metadata from another format's generalized image
// metadata, so that any readable dataset can be written out as FIF.
type Translator struct{}

// Translate sets the dimensional fields of dest from the spatial axes of
// the first source image. An absent axis leaves both lengths zero. The
// physical length is the rounded product of scale and length when the axis
// is calibrated in the FIF unit; lengths calibrated in any other unit are
// passed through unconverted, a documented approximation. The source is
// never mutated.
//
// The caller populates dest afterwards, as after parsing.
func (Translator) Translate(source []*scif.ImageMetadata, dest scif.Metadata) error {
	m, ok := dest.(*Metadata)
	if !ok {
		return errMetadataType
	}
	if len(source) == 0 {
		return scif.ErrNotPopulated
	}
	im := source[0]

	m.Width = axisLength(im, scif.AxisX)
	m.Height = axisLength(im, scif.AxisY)
	m.Depth = axisLength(im, scif.AxisZ)
	m.PhysicalWidth = calibratedLength(im, scif.AxisX)
	m.PhysicalHeight = calibratedLength(im, scif.AxisY)
	m.PhysicalDepth = calibratedLength(im, scif.AxisZ)

	return nil
}

func axisLength(im *scif.ImageMetadata, t scif.AxisType) int32 {
	a, ok := im.Axis(t)
	if !ok {
		return 0
	}
	return int32(a.Length)
}

func calibratedLength(im *scif.ImageMetadata, t scif.AxisType) int32 {
	a, ok := im.Axis(t)
	if !ok {
		return 0
	}
	if a.Unit != Unit {
		return int32(a.Length)
	}
	return int32(math.Round(a.Scale * float64(a.Length)))
}
