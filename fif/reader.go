package fif

import (
	"encoding/binary"
	"fmt"

	"github.com/scif-go/scif"
	"github.com/scif-go/scif/stream"
)

// Reader decodes planes and tiles from a FIF byte source. It is bound to
// one source and one Metadata for its lifetime and is not safe for
// concurrent use; parallel tile decoding needs independent Readers over
// independently opened sources.
type Reader struct {
	meta   *Metadata
	src    *stream.Reader
	maxBuf int64
	closed bool
}

// NewReader binds a reader to a populated metadata and an open source. If
// the metadata has not been populated yet it is populated here.
func NewReader(meta *Metadata, src *stream.Reader) (*Reader, error) {
	if len(meta.Images()) == 0 {
		if err := meta.Populate(); err != nil {
			return nil, err
		}
	}
	src.SetOrder(binary.LittleEndian)
	return &Reader{
		meta:   meta,
		src:    src,
		maxBuf: scif.DefaultMaxBufferSize,
	}, nil
}

// SetMaxBufferSize overrides the maximum decode buffer size. Useful for
// exercising tiled reads on small images.
func (r *Reader) SetMaxBufferSize(n int64) {
	r.maxBuf = n
}

// Metadata implements scif.Reader.
func (r *Reader) Metadata() scif.Metadata {
	return r.meta
}

// OpenPlane decodes the whole plane at the given indices into a freshly
// allocated buffer. Fails with scif.ErrBufferTooLarge when the plane
// exceeds the maximum buffer size; read such planes tile by tile using
// OpenRegion and the optimal tile dimensions instead.
func (r *Reader) OpenPlane(imageIndex int, planeIndex int64) (*scif.Plane, error) {
	im, err := r.image(imageIndex)
	if err != nil {
		return nil, err
	}
	return r.OpenRegion(imageIndex, planeIndex, scif.WholePlane(im), nil)
}

// OpenRegion decodes a sub-rectangle of a plane. A non-nil buf is reused
// as the plane buffer and must have exactly the region's byte size.
//
// Full-width regions, including the tiles OptimalTileWidth and
// OptimalTileHeight describe, are contiguous in the packed plane and read
// in a single pass. Narrower regions decode row by row, copying only the
// requested columns: tiling bounds memory, not I/O volume.
func (r *Reader) OpenRegion(imageIndex int, planeIndex int64, region scif.Region, buf []byte) (*scif.Plane, error) {
	if r.closed {
		return nil, scif.ErrClosed
	}
	im, err := r.image(imageIndex)
	if err != nil {
		return nil, err
	}
	if !region.In(im) {
		return nil, fmt.Errorf("fif: region %+v does not fit a %dx%d plane: %w",
			region, im.PlaneWidth(), im.PlaneHeight(), scif.ErrRegionBounds)
	}
	if planeIndex < 0 || planeIndex >= im.PlaneCount() {
		return nil, fmt.Errorf("fif: plane index %d out of range [0,%d): %w",
			planeIndex, im.PlaneCount(), scif.ErrRegionBounds)
	}

	size := region.Bytes(im.PixelType)
	if size > r.maxBuf {
		return nil, fmt.Errorf("fif: region needs %d bytes, limit is %d: %w",
			size, r.maxBuf, scif.ErrBufferTooLarge)
	}
	if buf == nil {
		buf = make([]byte, size)
	} else if int64(len(buf)) != size {
		return nil, fmt.Errorf("fif: buffer is %d bytes, region needs %d: %w",
			len(buf), size, scif.ErrBufferSize)
	}

	planeStart := HeaderLength + planeIndex*r.meta.PlaneSize()

	if region.X == 0 && region.Width == im.PlaneWidth() {
		// Full-width regions are contiguous runs of the packed plane
		off := planeStart + region.Y*region.Width*int64(im.PixelType.Bytes())
		if err := r.src.Seek(off); err != nil {
			return nil, err
		}
		if err := r.src.ReadFull(buf); err != nil {
			return nil, err
		}
	} else if err := r.readRows(planeStart, im, region, buf); err != nil {
		return nil, err
	}

	return &scif.Plane{
		Bytes:      buf,
		Region:     region,
		ImageIndex: imageIndex,
		Index:      planeIndex,
	}, nil
}

// readRows decodes one row segment at a time so that no intermediate
// buffer larger than the output tile is ever allocated.
func (r *Reader) readRows(planeStart int64, im *scif.ImageMetadata, region scif.Region, buf []byte) error {
	bpp := int64(im.PixelType.Bytes())
	rowBytes := region.Width * bpp

	for row := int64(0); row < region.Height; row++ {
		offset := planeStart + ((region.Y+row)*im.PlaneWidth()+region.X)*bpp
		if err := r.src.Seek(offset); err != nil {
			return err
		}
		if err := r.src.ReadFull(buf[row*rowBytes : (row+1)*rowBytes]); err != nil {
			return err
		}
	}
	return nil
}

// OptimalTileWidth implements scif.Reader.
func (r *Reader) OptimalTileWidth(imageIndex int) (int64, error) {
	w, _, err := r.optimalTile(imageIndex)
	return w, err
}

// OptimalTileHeight implements scif.Reader.
func (r *Reader) OptimalTileHeight(imageIndex int) (int64, error) {
	_, h, err := r.optimalTile(imageIndex)
	return h, err
}

func (r *Reader) optimalTile(imageIndex int) (int64, int64, error) {
	im, err := r.image(imageIndex)
	if err != nil {
		return 0, 0, err
	}
	return scif.OptimalTileSize(im.PlaneWidth(), im.PlaneHeight(), im.PixelType.Bytes(), r.maxBuf)
}

func (r *Reader) image(imageIndex int) (*scif.ImageMetadata, error) {
	images := r.meta.Images()
	if imageIndex < 0 || imageIndex >= len(images) {
		return nil, fmt.Errorf("fif: image index %d out of range [0,%d): %w",
			imageIndex, len(images), scif.ErrRegionBounds)
	}
	return images[imageIndex], nil
}

// Close releases the underlying source. Any in-flight read fails once the
// source is closed.
func (r *Reader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	return r.src.Close()
}
