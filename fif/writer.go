package fif

import (
	"encoding/binary"
	"fmt"

	"github.com/scif-go/scif"
	"github.com/scif-go/scif/stream"
)

// Writer encodes a FIF header and whole planes into a byte sink. It is
// bound to one sink and one Metadata for its lifetime and is not safe for
// concurrent use.
type Writer struct {
	meta   *Metadata
	dst    *stream.Writer
	closed bool
}

// NewWriter binds a writer to a populated metadata and an open sink. If
// the sink is empty the fixed header is written immediately, so that plane
// writes in any order land on a valid file.
func NewWriter(meta *Metadata, dst *stream.Writer) (*Writer, error) {
	if len(meta.Images()) == 0 {
		if err := meta.Populate(); err != nil {
			return nil, err
		}
	}
	dst.SetOrder(binary.LittleEndian)

	w := &Writer{meta: meta, dst: dst}

	n, err := dst.Len()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		if err := w.writeHeader(); err != nil {
			return nil, err
		}
	}
	return w, nil
}

func (w *Writer) writeHeader() error {
	b, err := w.meta.MarshalBinary()
	if err != nil {
		return err
	}
	if err := w.dst.Seek(0); err != nil {
		return err
	}
	_, err = w.dst.Write(b)
	return err
}

// Metadata implements scif.Writer.
func (w *Writer) Metadata() scif.Metadata {
	return w.meta
}

// WritePlane writes one whole plane. FIF has no tiled storage, so a region
// narrower than the declared plane fails; only unsigned 16-bit planes are
// accepted. The plane lands at HeaderLength + planeIndex*width*height*bpp.
func (w *Writer) WritePlane(imageIndex int, planeIndex int64, region scif.Region, plane []byte) error {
	if w.closed {
		return scif.ErrClosed
	}
	images := w.meta.Images()
	if imageIndex < 0 || imageIndex >= len(images) {
		return fmt.Errorf("fif: image index %d out of range [0,%d): %w",
			imageIndex, len(images), scif.ErrRegionBounds)
	}
	im := images[imageIndex]

	if im.PixelType != scif.Uint16 {
		return fmt.Errorf("fif: unsupported image type %s: %w", im.PixelType, scif.ErrUnsupportedPixelType)
	}
	if !region.Whole(im) {
		return fmt.Errorf("fif: writer does not support writing image tiles: %w", scif.ErrPartialWrite)
	}
	if planeIndex < 0 || planeIndex >= im.PlaneCount() {
		return fmt.Errorf("fif: plane index %d out of range [0,%d): %w",
			planeIndex, im.PlaneCount(), scif.ErrRegionBounds)
	}
	if int64(len(plane)) != w.meta.PlaneSize() {
		return fmt.Errorf("fif: plane is %d bytes, want %d: %w",
			len(plane), w.meta.PlaneSize(), scif.ErrBufferSize)
	}

	if err := w.dst.Seek(HeaderLength + planeIndex*w.meta.PlaneSize()); err != nil {
		return err
	}
	_, err := w.dst.Write(plane)
	return err
}

// Close finalizes the sink. FIF needs no trailing footer, so closing only
// releases the underlying sink, leaving it readable.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	return w.dst.Close()
}
