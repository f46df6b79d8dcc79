package scif

import (
	"io"
	"path/filepath"
	"strings"
	"sync"

	"github.com/scif-go/scif/stream"
)

// Metadata is the format-specific record of a dataset: the raw fields as
// found in the source encoding plus the generalized ImageMetadata derived
// from them by Populate.
type Metadata interface {
	// FormatName names the format this metadata belongs to.
	FormatName() string

	// Populate derives the ImageMetadata list from the raw fields. It is
	// idempotent: re-invoking it fully recomputes the list.
	Populate() error

	// Images returns the derived per-image metadata. Empty until Populate
	// has been invoked.
	Images() []*ImageMetadata
}

// Checker decides whether a byte source belongs to a format.
//
// Two policies control evaluation: if SuffixSufficient is true a matching
// file suffix alone yields compatibility and IsFormat never runs; otherwise
// if SuffixNecessary is true a suffix match is required before IsFormat is
// consulted, and if false IsFormat alone decides.
type Checker interface {
	SuffixSufficient() bool
	SuffixNecessary() bool

	// IsFormat probes the byte source, typically comparing a fixed-length
	// prefix against a magic signature. It reports false, never an error,
	// for sources shorter than the signature.
	IsFormat(r io.Reader) bool
}

// MetadataLevel selects how much of the header a Parser reads.
type MetadataLevel int

const (
	// MetadataLevelAll parses every header field.
	MetadataLevelAll MetadataLevel = iota

	// MetadataLevelMinimum parses only the fields Populate needs; skipped
	// fields keep their zero-value defaults.
	MetadataLevelMinimum
)

// ParseOptions configures a Parse call.
type ParseOptions struct {
	Level MetadataLevel
}

// Parser reads a byte source into a Metadata instance of its format.
type Parser interface {
	Parse(src *stream.Reader, meta Metadata, opts ParseOptions) error
}

// Reader decodes pixel regions from the byte source it was bound to. A
// Reader is bound to exactly one source and one Metadata for its lifetime
// and is not safe for concurrent use.
type Reader interface {
	Metadata() Metadata

	// OpenPlane decodes the full plane at the given indices.
	OpenPlane(imageIndex int, planeIndex int64) (*Plane, error)

	// OpenRegion decodes a sub-rectangle of a plane. If buf is non-nil it
	// must have exactly the region's byte size and is reused as the plane
	// buffer; otherwise a new buffer is allocated.
	OpenRegion(imageIndex int, planeIndex int64, region Region, buf []byte) (*Plane, error)

	// OptimalTileWidth and OptimalTileHeight return the largest tile
	// dimensions that decode within the reader's buffer limit.
	OptimalTileWidth(imageIndex int) (int64, error)
	OptimalTileHeight(imageIndex int) (int64, error)

	Close() error
}

// Writer encodes metadata and pixel planes into the byte sink it was bound
// to. Like Reader, a Writer is bound to one sink and one Metadata for its
// lifetime.
type Writer interface {
	Metadata() Metadata

	// WritePlane encodes the plane bytes for the given indices. Formats
	// without native tiled storage accept whole-plane regions only.
	WritePlane(imageIndex int, planeIndex int64, region Region, plane []byte) error

	// Close finalizes the sink, writing any trailing footer the format
	// requires, and must leave it in a consistent, readable state.
	Close() error
}

// Format identifies a family of images by name and file-suffix set and is
// the factory for the per-format components.
type Format interface {
	Name() string
	Suffixes() []string

	NewMetadata() Metadata
	NewChecker() Checker
	NewParser() Parser

	// NewReader binds a reader to a populated Metadata and an open source.
	NewReader(meta Metadata, src *stream.Reader) (Reader, error)

	// NewWriter binds a writer to a populated Metadata and an open sink,
	// writing the format header if the sink is empty.
	NewWriter(meta Metadata, dst *stream.Writer) (Writer, error)
}

// Registry resolves byte sources to Formats via the Checker contract.
type Registry struct {
	mu      sync.RWMutex
	formats []Format
}

// DefaultRegistry is the registry used by the package-level functions.
// Format packages register themselves here from init.
var DefaultRegistry = &Registry{}

// Register adds a format to the default registry.
func Register(f Format) {
	DefaultRegistry.Register(f)
}

// Find resolves a format in the default registry.
func Find(name string, src *stream.Reader) (Format, error) {
	return DefaultRegistry.Find(name, src)
}

// Register adds a format to the registry.
func (r *Registry) Register(f Format) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.formats = append(r.formats, f)
}

// Formats returns the registered formats.
func (r *Registry) Formats() []Format {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Format(nil), r.formats...)
}

// Get returns the registered format with the given name.
func (r *Registry) Get(name string) (Format, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, f := range r.formats {
		if f.Name() == name {
			return f, nil
		}
	}
	return nil, ErrFormatMismatch
}

// Find returns the first registered format compatible with the named source.
// Suffix matching uses name's file extension; the binary probe, when a
// checker requires one, reads from the start of src. src may be nil, in
// which case only suffix-sufficient formats can match.
func (r *Registry) Find(name string, src *stream.Reader) (Format, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, f := range r.formats {
		ok, err := isCompatible(f, name, src)
		if err != nil {
			return nil, err
		}
		if ok {
			return f, nil
		}
	}
	return nil, ErrFormatMismatch
}

func isCompatible(f Format, name string, src *stream.Reader) (bool, error) {
	c := f.NewChecker()
	suffix := matchSuffix(name, f.Suffixes())

	if c.SuffixSufficient() {
		return suffix, nil
	}
	if c.SuffixNecessary() && !suffix {
		return false, nil
	}
	if src == nil {
		return false, nil
	}
	if err := src.Seek(0); err != nil {
		return false, err
	}
	return c.IsFormat(src), nil
}

func matchSuffix(name string, suffixes []string) bool {
	ext := strings.TrimPrefix(filepath.Ext(name), ".")
	for _, s := range suffixes {
		if strings.EqualFold(ext, s) {
			return true
		}
	}
	return false
}
