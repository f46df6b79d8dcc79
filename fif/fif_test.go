package fif

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"github.com/scif-go/scif"
	"github.com/scif-go/scif/stream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeHeader builds a FIF header independently of the Writer, so that
// parser tests do not depend on the code under test.
func makeHeader(width, height, depth, physW, physH, physD, date int32, instrument string, excitation float64) []byte {
	b := make([]byte, HeaderLength)
	copy(b, magic)

	le := binary.LittleEndian
	le.PutUint32(b[6:], uint32(width))
	le.PutUint32(b[10:], uint32(height))
	le.PutUint32(b[14:], uint32(depth))
	le.PutUint32(b[18:], uint32(physW))
	le.PutUint32(b[22:], uint32(physH))
	le.PutUint32(b[26:], uint32(physD))
	le.PutUint32(b[30:], uint32(date))
	copy(b[34:54], instrument)
	le.PutUint64(b[54:], math.Float64bits(excitation))
	return b
}

// makeFile appends packed uint16 planes to a header, sample value =
// plane*10000 + row*100 + column.
func makeFile(width, height, depth int32) []byte {
	b := makeHeader(width, height, depth, 0, 0, 0, 0, "", 0)
	for p := int32(0); p < depth; p++ {
		for y := int32(0); y < height; y++ {
			for x := int32(0); x < width; x++ {
				var s [2]byte
				binary.LittleEndian.PutUint16(s[:], uint16(p*10000+y*100+x))
				b = append(b, s[:]...)
			}
		}
	}
	return b
}

func TestIsFormatShortSource(t *testing.T) {
	c := Checker{}
	assert.False(t, c.IsFormat(bytes.NewReader([]byte{0x0C, 0x00, 0x0F})))
}

func TestIsFormatIncorrectBytes(t *testing.T) {
	c := Checker{}
	assert.False(t, c.IsFormat(bytes.NewReader([]byte{0x0C, 0x00, 0x0F, 0x0F, 0x0E, 0x0F})))
}

func TestIsFormatTrailingBytes(t *testing.T) {
	c := Checker{}
	// An extra byte after the signature must not affect the result
	assert.True(t, c.IsFormat(bytes.NewReader([]byte{0x0C, 0x00, 0x0F, 0x0F, 0x0E, 0x0E, 0x01})))
}

func TestCheckerPolicy(t *testing.T) {
	c := Checker{}
	assert.False(t, c.SuffixSufficient())
	assert.False(t, c.SuffixNecessary())
}

func TestDefaultRegistryResolvesFIF(t *testing.T) {
	src := stream.NewReader(bytes.NewReader(makeFile(2, 2, 1)))

	// The suffix is irrelevant for FIF; only the signature counts
	f, err := scif.Find("dataset.bin", src)
	require.NoError(t, err)
	assert.Equal(t, FormatName, f.Name())
}
