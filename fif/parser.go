package fif

import (
	"encoding/binary"
	"fmt"

	"github.com/scif-go/scif"
	"github.com/scif-go/scif/stream"
)

// Parser reads a FIF header into a Metadata instance.
type Parser struct{}

// Parse reads the fixed header fields from src. The caller is expected to
// invoke Populate on the metadata afterwards.
//
// With ParseOptions.Level set to MetadataLevelMinimum only the dimensional
// and calibration fields are read; the acquisition date, instrument name
// and excitation level keep their zero-value defaults.
func (Parser) Parse(src *stream.Reader, meta scif.Metadata, opts scif.ParseOptions) error {
	m, ok := meta.(*Metadata)
	if !ok {
		return errMetadataType
	}

	if n, err := src.Len(); err != nil {
		return err
	} else if n < HeaderLength {
		return fmt.Errorf("fif: header is %d bytes, need %d: %w", n, HeaderLength, scif.ErrParse)
	}

	src.SetOrder(binary.LittleEndian)
	if err := src.Seek(int64(len(magic))); err != nil {
		return err
	}

	for _, field := range []*int32{
		&m.Width, &m.Height, &m.Depth,
		&m.PhysicalWidth, &m.PhysicalHeight, &m.PhysicalDepth,
	} {
		v, err := src.ReadInt32()
		if err != nil {
			return err
		}
		if v < 0 {
			return fmt.Errorf("fif: negative dimension %d: %w", v, scif.ErrParse)
		}
		*field = v
	}

	if opts.Level == scif.MetadataLevelMinimum {
		return nil
	}

	date, err := src.ReadInt32()
	if err != nil {
		return err
	}
	m.SetDateInt(date)

	instrument, err := src.ReadString(InstrumentLength)
	if err != nil {
		return err
	}
	m.SetInstrument(instrument)

	if m.ExcitationLevel, err = src.ReadFloat64(); err != nil {
		return err
	}

	return nil
}
