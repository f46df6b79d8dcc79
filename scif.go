/*
Package scif is a library for reading and writing scientific image
containers through pluggable per-format components.

Each supported format bundles six components behind the Format interface: a
Checker deciding whether a byte source belongs to the format, a Parser
filling format-specific Metadata from the source, a Reader decoding pixel
planes (in bounded tiles when a plane would not fit in memory), a Writer
encoding planes back out, and a Translator converting generalized image
metadata into the format's own fields. A Registry resolves a byte source to
its Format via the Checker contract.
*/
package scif

import (
	"fmt"
	"io"
	"log"

	"github.com/scif-go/scif/stream"
)

// SCIF ties a format registry, an optional dataset catalog and a logger
// together and provides the convenience entry points for opening datasets.
type SCIF struct {
	registry *Registry
	catalog  *Catalog
	logger   *log.Logger
}

// New returns a SCIF handle. A nil registry selects the default registry, a
// nil catalog disables scanning and a nil logger discards all output.
func New(registry *Registry, catalog *Catalog, logger *log.Logger) *SCIF {
	if registry == nil {
		registry = DefaultRegistry
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &SCIF{
		registry: registry,
		catalog:  catalog,
		logger:   logger,
	}
}

// Registry returns the format registry used by this handle.
func (s *SCIF) Registry() *Registry {
	return s.registry
}

// Initialize opens the dataset at path, resolves its Format, parses and
// populates its Metadata and returns a Reader bound to both. The caller owns
// the Reader and must Close it.
func (s *SCIF) Initialize(path string) (Reader, error) {
	src, err := stream.Open(path)
	if err != nil {
		return nil, err
	}

	r, err := s.initialize(path, src)
	if err != nil {
		src.Close()
		return nil, err
	}
	return r, nil
}

func (s *SCIF) initialize(path string, src *stream.Reader) (Reader, error) {
	format, err := s.registry.Find(path, src)
	if err != nil {
		return nil, err
	}
	s.logger.Printf("%s: matched format %q", path, format.Name())

	meta := format.NewMetadata()
	if err := src.Seek(0); err != nil {
		return nil, err
	}
	if err := format.NewParser().Parse(src, meta, ParseOptions{}); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := meta.Populate(); err != nil {
		return nil, fmt.Errorf("populating metadata for %s: %w", path, err)
	}

	return format.NewReader(meta, src)
}
