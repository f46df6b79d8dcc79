package fif

import (
	"encoding/binary"
	"testing"
	"time"

	"github.com/scif-go/scif"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetInstrumentTruncates(t *testing.T) {
	m := NewMetadata()
	m.SetInstrument("Lentokonesuihkuturbiinimoottoriapumekaanikkoaliupseerioppilas")

	assert.Len(t, m.Instrument, InstrumentLength)
}

func TestSetInstrumentTrims(t *testing.T) {
	m := NewMetadata()
	m.SetInstrument("Initech microscope  ")

	assert.Equal(t, "Initech microscope", m.Instrument)
}

func TestPopulate(t *testing.T) {
	m := NewMetadata()
	m.Width, m.Height, m.Depth = 10, 11, 12
	m.PhysicalWidth, m.PhysicalHeight, m.PhysicalDepth = 20, 26, 36

	require.NoError(t, m.Populate())

	images := m.Images()
	require.Len(t, images, 1)
	im := images[0]

	assert.Equal(t, binary.ByteOrder(binary.LittleEndian), im.ByteOrder)
	assert.True(t, im.OrderCertain)
	assert.Equal(t, 16, im.BitsPerPixel)
	assert.Equal(t, scif.Uint16, im.PixelType)
	assert.Equal(t, 2, im.PlanarAxisCount)

	types := []scif.AxisType{scif.AxisX, scif.AxisY, scif.AxisZ}
	lengths := []int64{10, 11, 12}
	scales := []float64{2.0, 26.0 / 11.0, 3.0}

	require.Len(t, im.Axes, 3)
	for i, a := range im.Axes {
		assert.Equal(t, types[i], a.Type)
		assert.Equal(t, lengths[i], a.Length)
		assert.Equal(t, Unit, a.Unit)
		assert.InDelta(t, scales[i], a.Scale, 1e-12)
	}

	assert.Equal(t, int64(10*11*2), m.PlaneSize())
}

func TestPopulateDefaultScales(t *testing.T) {
	m := NewMetadata()
	m.Width, m.Height, m.Depth = 10, 11, 12

	require.NoError(t, m.Populate())

	x, y, z := m.Scales()
	assert.Equal(t, 1.0, x)
	assert.Equal(t, 1.0, y)
	assert.Equal(t, 1.0, z)
}

func TestPopulateIdempotent(t *testing.T) {
	m := NewMetadata()
	m.Width, m.Height, m.Depth = 4, 4, 2

	require.NoError(t, m.Populate())
	m.Width = 8
	require.NoError(t, m.Populate())

	// Recomputed, not appended
	images := m.Images()
	require.Len(t, images, 1)
	assert.Equal(t, int64(8), images[0].PlaneWidth())
	assert.Equal(t, int64(8*4*2), m.PlaneSize())
}

func TestDateInt(t *testing.T) {
	m := NewMetadata()
	m.SetDateInt(21122012)

	assert.Equal(t, time.Date(2012, time.December, 21, 0, 0, 0, 0, time.UTC), m.AcquisitionDate)
	assert.Equal(t, int32(21122012), m.DateInt())
}

func TestDateIntInvalidFallsBack(t *testing.T) {
	for _, v := range []int32{99129999, 32012000, 1132000, -1} {
		m := NewMetadata()
		m.SetDateInt(v)
		assert.Equal(t, defaultDate, m.AcquisitionDate, "date int %d", v)
	}
}

func TestMarshalBinaryLayout(t *testing.T) {
	m := NewMetadata()
	m.Width, m.Height, m.Depth = 12, 13, 14
	m.PhysicalWidth, m.PhysicalHeight, m.PhysicalDepth = 24, 26, 28
	m.SetDateInt(21122012)
	m.SetInstrument("Initech microscope")
	m.ExcitationLevel = 0.12345

	b, err := m.MarshalBinary()
	require.NoError(t, err)
	require.Len(t, b, HeaderLength)

	assert.Equal(t, makeHeader(12, 13, 14, 24, 26, 28, 21122012, "Initech microscope  ", 0.12345), b)
}
