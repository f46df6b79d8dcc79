/*
Package fif implements the Fictional Image Format, an uncompressed
container for 16-bit microscopy stacks.

A file starts with a fixed 80 byte header: a six byte signature, the stack
dimensions and physical sample dimensions as little-endian int32 values, the
acquisition date packed into a single int32, a 20 byte space-padded
instrument name and the excitation level as a float64. Image planes follow
packed contiguously with no padding, each width*height little-endian
unsigned 16-bit samples.
*/
package fif

import (
	"bytes"
	"errors"
	"io"

	"github.com/scif-go/scif"
	"github.com/scif-go/scif/stream"
)

const (
	// FormatName identifies the format in the registry.
	FormatName = "Fictional Image Format"

	// Suffix is the file extension, without the leading separator.
	Suffix = "fif"

	// HeaderLength is the size of the fixed header in bytes. Plane data
	// begins at this offset.
	HeaderLength = 80

	// InstrumentLength is the fixed width of the instrument name field.
	InstrumentLength = 20

	// Unit is the physical calibration unit of all FIF axes.
	Unit = "mm"
)

// magic is the byte sequence identifying a FIF file.
var magic = []byte{0x0C, 0x00, 0x0F, 0x0F, 0x0E, 0x0E}

var errMetadataType = errors.New("fif: metadata does not belong to this format")

func init() {
	scif.Register(Format{})
}

// Format is the FIF format descriptor and component factory.
type Format struct{}

// Name implements scif.Format.
func (Format) Name() string {
	return FormatName
}

// Suffixes implements scif.Format.
func (Format) Suffixes() []string {
	return []string{Suffix}
}

// NewMetadata implements scif.Format.
func (Format) NewMetadata() scif.Metadata {
	return NewMetadata()
}

// NewChecker implements scif.Format.
func (Format) NewChecker() scif.Checker {
	return Checker{}
}

// NewParser implements scif.Format.
func (Format) NewParser() scif.Parser {
	return Parser{}
}

// NewReader implements scif.Format.
func (Format) NewReader(meta scif.Metadata, src *stream.Reader) (scif.Reader, error) {
	m, ok := meta.(*Metadata)
	if !ok {
		return nil, errMetadataType
	}
	return NewReader(m, src)
}

// NewWriter implements scif.Format.
func (Format) NewWriter(meta scif.Metadata, dst *stream.Writer) (scif.Writer, error) {
	m, ok := meta.(*Metadata)
	if !ok {
		return nil, errMetadataType
	}
	return NewWriter(m, dst)
}

// Checker decides FIF compatibility by magic bytes alone: the suffix is
// neither sufficient nor necessary.
type Checker struct{}

// SuffixSufficient implements scif.Checker.
func (Checker) SuffixSufficient() bool {
	return false
}

// SuffixNecessary implements scif.Checker.
func (Checker) SuffixNecessary() bool {
	return false
}

// IsFormat reports whether r starts with the FIF signature. Sources shorter
// than the signature never match.
func (Checker) IsFormat(r io.Reader) bool {
	prefix := make([]byte, len(magic))
	if _, err := io.ReadFull(r, prefix); err != nil {
		return false
	}
	return bytes.Equal(prefix, magic)
}
