package fif

import (
	"encoding/binary"
	"strconv"
	"strings"
	"time"

	"github.com/scif-go/scif"
	"github.com/scif-go/scif/stream"
)

// defaultDate is the acquisition date assumed when a file carries none or
// an unparseable one.
var defaultDate = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

// Metadata holds the raw FIF header fields plus the generalized image
// metadata derived from them by Populate.
//
// Dimensions are voxel counts; physical dimensions are the sample extents
// in millimetres. Metadata implements encoding.BinaryMarshaler, producing
// the fixed 80 byte header.
type Metadata struct {
	Width, Height, Depth                         int32
	PhysicalWidth, PhysicalHeight, PhysicalDepth int32
	AcquisitionDate                              time.Time
	Instrument                                   string
	ExcitationLevel                              float64

	xScale, yScale, zScale float64
	planeSize              int64
	images                 []*scif.ImageMetadata
}

// NewMetadata returns an empty Metadata with the default acquisition date.
func NewMetadata() *Metadata {
	return &Metadata{AcquisitionDate: defaultDate}
}

// FormatName implements scif.Metadata.
func (m *Metadata) FormatName() string {
	return FormatName
}

// Images implements scif.Metadata.
func (m *Metadata) Images() []*scif.ImageMetadata {
	return m.images
}

// SetInstrument sets the instrument name, truncating it to
// InstrumentLength and trimming surrounding padding.
func (m *Metadata) SetInstrument(name string) {
	if len(name) > InstrumentLength {
		name = name[:InstrumentLength]
	}
	// Strip both space padding and the NUL fill of never-set fields
	m.Instrument = strings.TrimFunc(name, func(r rune) bool { return r <= ' ' })
}

// SetDateInt sets the acquisition date from its packed integer encoding,
// day*1_000_000 + month*10_000 + year. Values that do not form a valid
// calendar date fall back to the default date rather than failing: a
// deliberate lossy-recovery policy for files written by sloppy
// acquisition software.
func (m *Metadata) SetDateInt(v int32) {
	m.AcquisitionDate = dateFromInt(v)
}

// DateInt returns the acquisition date in its packed integer encoding.
func (m *Metadata) DateInt() int32 {
	y, mo, d := m.AcquisitionDate.Date()
	return int32(d)*1_000_000 + int32(mo)*10_000 + int32(y)
}

func dateFromInt(v int32) time.Time {
	if v < 0 {
		return defaultDate
	}
	day := int(v / 1_000_000)
	month := int(v / 10_000 % 100)
	year := int(v % 10_000)

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes out-of-range components; a changed component
	// means the encoded date was not a real calendar date
	ty, tm, td := t.Date()
	if ty != year || tm != time.Month(month) || td != day {
		return defaultDate
	}
	return t
}

// Populate derives the generalized image metadata from the raw header
// fields: one image of X, Y and Z axes in millimetres, unsigned 16-bit
// little-endian samples, two planar axes. Axis scales are the physical
// extent divided by the voxel count, defaulting to 1 where the file
// carries no calibration. Re-invoking Populate recomputes everything.
func (m *Metadata) Populate() error {
	m.xScale = axisScale(m.PhysicalWidth, m.Width)
	m.yScale = axisScale(m.PhysicalHeight, m.Height)
	m.zScale = axisScale(m.PhysicalDepth, m.Depth)

	m.images = []*scif.ImageMetadata{{
		Axes: []scif.Axis{
			{Type: scif.AxisX, Length: int64(m.Width), Unit: Unit, Scale: m.xScale},
			{Type: scif.AxisY, Length: int64(m.Height), Unit: Unit, Scale: m.yScale},
			{Type: scif.AxisZ, Length: int64(m.Depth), Unit: Unit, Scale: m.zScale},
		},
		ByteOrder:       binary.LittleEndian,
		BitsPerPixel:    16,
		PixelType:       scif.Uint16,
		OrderCertain:    true,
		PlanarAxisCount: 2,
	}}

	m.planeSize = int64(m.Width) * int64(m.Height) * int64(scif.Uint16.Bytes())

	return nil
}

func axisScale(physical, samples int32) float64 {
	if physical <= 0 || samples <= 0 {
		return 1
	}
	return float64(physical) / float64(samples)
}

// PlaneSize returns the byte size of one whole plane, cached by Populate.
func (m *Metadata) PlaneSize() int64 {
	return m.planeSize
}

// Scales returns the axis scale factors computed by Populate.
func (m *Metadata) Scales() (x, y, z float64) {
	return m.xScale, m.yScale, m.zScale
}

// MarshalBinary encodes the fixed 80 byte FIF header.
func (m *Metadata) MarshalBinary() ([]byte, error) {
	buf := stream.NewBuffer(make([]byte, 0, HeaderLength))
	w := stream.NewWriter(buf)

	if _, err := w.Write(magic); err != nil {
		return nil, err
	}
	for _, v := range []int32{
		m.Width, m.Height, m.Depth,
		m.PhysicalWidth, m.PhysicalHeight, m.PhysicalDepth,
		m.DateInt(),
	} {
		if err := w.WriteInt32(v); err != nil {
			return nil, err
		}
	}
	if err := w.WriteString(m.Instrument, InstrumentLength); err != nil {
		return nil, err
	}
	if err := w.WriteFloat64(m.ExcitationLevel); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// String summarizes the metadata for logging.
func (m *Metadata) String() string {
	return FormatName + " " +
		strconv.Itoa(int(m.Width)) + "x" +
		strconv.Itoa(int(m.Height)) + "x" +
		strconv.Itoa(int(m.Depth))
}
