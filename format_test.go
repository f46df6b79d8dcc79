package scif

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/scif-go/scif/stream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubFormat is a minimal format whose checker policy is configurable.
type stubFormat struct {
	name             string
	suffixes         []string
	suffixSufficient bool
	suffixNecessary  bool
	magic            []byte
}

type stubChecker struct {
	f *stubFormat
}

func (c stubChecker) SuffixSufficient() bool { return c.f.suffixSufficient }
func (c stubChecker) SuffixNecessary() bool  { return c.f.suffixNecessary }

func (c stubChecker) IsFormat(r io.Reader) bool {
	prefix := make([]byte, len(c.f.magic))
	if _, err := io.ReadFull(r, prefix); err != nil {
		return false
	}
	return bytes.Equal(prefix, c.f.magic)
}

func (f *stubFormat) Name() string          { return f.name }
func (f *stubFormat) Suffixes() []string    { return f.suffixes }
func (f *stubFormat) NewMetadata() Metadata { return nil }
func (f *stubFormat) NewChecker() Checker   { return stubChecker{f} }
func (f *stubFormat) NewParser() Parser     { return nil }

func (f *stubFormat) NewReader(Metadata, *stream.Reader) (Reader, error) {
	return nil, errors.New("not implemented")
}

func (f *stubFormat) NewWriter(Metadata, *stream.Writer) (Writer, error) {
	return nil, errors.New("not implemented")
}

func TestRegistrySuffixSufficient(t *testing.T) {
	r := &Registry{}
	r.Register(&stubFormat{
		name:             "suffix-only",
		suffixes:         []string{"abc"},
		suffixSufficient: true,
	})

	// No byte source needed: suffix alone decides
	f, err := r.Find("image.abc", nil)
	require.NoError(t, err)
	assert.Equal(t, "suffix-only", f.Name())

	_, err = r.Find("image.xyz", nil)
	assert.ErrorIs(t, err, ErrFormatMismatch)
}

func TestRegistrySuffixNecessary(t *testing.T) {
	r := &Registry{}
	r.Register(&stubFormat{
		name:            "suffix-and-magic",
		suffixes:        []string{"abc"},
		suffixNecessary: true,
		magic:           []byte{0x42},
	})

	src := stream.NewReader(bytes.NewReader([]byte{0x42, 0x00}))

	// Right magic, wrong suffix: the suffix is a required precondition
	_, err := r.Find("image.xyz", src)
	assert.ErrorIs(t, err, ErrFormatMismatch)

	f, err := r.Find("image.abc", src)
	require.NoError(t, err)
	assert.Equal(t, "suffix-and-magic", f.Name())
}

func TestRegistryMagicOnly(t *testing.T) {
	r := &Registry{}
	r.Register(&stubFormat{
		name:     "magic-only",
		suffixes: []string{"abc"},
		magic:    []byte{0x42},
	})

	// Wrong suffix is irrelevant; the probe decides
	f, err := r.Find("image.xyz", stream.NewReader(bytes.NewReader([]byte{0x42})))
	require.NoError(t, err)
	assert.Equal(t, "magic-only", f.Name())

	_, err = r.Find("image.abc", stream.NewReader(bytes.NewReader([]byte{0x41})))
	assert.ErrorIs(t, err, ErrFormatMismatch)
}

func TestRegistryProbesFromStart(t *testing.T) {
	r := &Registry{}
	r.Register(&stubFormat{name: "first", magic: []byte{0x01}})
	r.Register(&stubFormat{name: "second", magic: []byte{0x02}})

	// The first checker consumes the prefix; the second must still see it
	f, err := r.Find("image", stream.NewReader(bytes.NewReader([]byte{0x02})))
	require.NoError(t, err)
	assert.Equal(t, "second", f.Name())
}

func TestRegistryGet(t *testing.T) {
	r := &Registry{}
	r.Register(&stubFormat{name: "a"})

	f, err := r.Get("a")
	require.NoError(t, err)
	assert.Equal(t, "a", f.Name())

	_, err = r.Get("b")
	assert.ErrorIs(t, err, ErrFormatMismatch)
}

func TestMatchSuffixCaseInsensitive(t *testing.T) {
	assert.True(t, matchSuffix("A.FIF", []string{"fif"}))
	assert.False(t, matchSuffix("fif", []string{"fif"}))
}
