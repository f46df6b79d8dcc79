package fif

import (
	"bytes"
	"testing"
	"time"

	"github.com/scif-go/scif"
	"github.com/scif-go/scif/stream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	b := makeHeader(12, 13, 14, 24, 26, 28, 21122012, "Initech microscope  ", 0.12345)
	src := stream.NewReader(bytes.NewReader(b))

	m := NewMetadata()
	require.NoError(t, Parser{}.Parse(src, m, scif.ParseOptions{}))
	require.NoError(t, m.Populate())

	assert.Equal(t, int32(12), m.Width)
	assert.Equal(t, int32(13), m.Height)
	assert.Equal(t, int32(14), m.Depth)
	assert.Equal(t, int32(24), m.PhysicalWidth)
	assert.Equal(t, int32(26), m.PhysicalHeight)
	assert.Equal(t, int32(28), m.PhysicalDepth)
	assert.Equal(t, time.Date(2012, time.December, 21, 0, 0, 0, 0, time.UTC), m.AcquisitionDate)
	assert.Equal(t, "Initech microscope", m.Instrument)
	assert.InDelta(t, 0.12345, m.ExcitationLevel, 1e-12)
	assert.Equal(t, int64(12*13*2), m.PlaneSize())
}

func TestParseTruncatedHeader(t *testing.T) {
	b := makeHeader(12, 13, 14, 0, 0, 0, 0, "", 0)
	src := stream.NewReader(bytes.NewReader(b[:HeaderLength-1]))

	err := Parser{}.Parse(src, NewMetadata(), scif.ParseOptions{})
	assert.ErrorIs(t, err, scif.ErrParse)
}

func TestParseNegativeDimension(t *testing.T) {
	b := makeHeader(12, -13, 14, 0, 0, 0, 0, "", 0)
	src := stream.NewReader(bytes.NewReader(b))

	err := Parser{}.Parse(src, NewMetadata(), scif.ParseOptions{})
	assert.ErrorIs(t, err, scif.ErrParse)
}

func TestParseMinimum(t *testing.T) {
	b := makeHeader(12, 13, 14, 24, 26, 28, 21122012, "Initech microscope  ", 0.12345)
	src := stream.NewReader(bytes.NewReader(b))

	m := NewMetadata()
	require.NoError(t, Parser{}.Parse(src, m, scif.ParseOptions{Level: scif.MetadataLevelMinimum}))

	// Dimensional fields are always read
	assert.Equal(t, int32(12), m.Width)
	assert.Equal(t, int32(28), m.PhysicalDepth)

	// Skipped fields keep their defaults
	assert.Equal(t, defaultDate, m.AcquisitionDate)
	assert.Empty(t, m.Instrument)
	assert.Zero(t, m.ExcitationLevel)
}

func TestParseWrongMetadataType(t *testing.T) {
	src := stream.NewReader(bytes.NewReader(makeHeader(1, 1, 1, 0, 0, 0, 0, "", 0)))

	err := Parser{}.Parse(src, otherMetadata{}, scif.ParseOptions{})
	assert.ErrorIs(t, err, errMetadataType)
}

// otherMetadata is a scif.Metadata of some other format.
type otherMetadata struct{}

func (otherMetadata) FormatName() string                 { return "other" }
func (otherMetadata) Populate() error                    { return nil }
func (otherMetadata) Images() []*scif.ImageMetadata      { return nil }
