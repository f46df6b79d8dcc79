// Package stream provides seekable, byte-order-aware access to the byte
// sources and sinks that image containers are read from and written to.
package stream

import (
	"encoding/binary"
	"io"
	"math"
	"os"
)

// Reader reads fixed-layout binary data from a seekable byte source. The
// byte order defaults to little endian and can be changed at any time; a
// Reader tracks a single stream position and is not safe for concurrent
// use.
type Reader struct {
	r     io.ReadSeeker
	order binary.ByteOrder
}

// NewReader returns a Reader over r.
func NewReader(r io.ReadSeeker) *Reader {
	return &Reader{r: r, order: binary.LittleEndian}
}

// Open opens the named file for reading.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return NewReader(f), nil
}

// SetOrder sets the byte order for subsequent reads.
func (r *Reader) SetOrder(order binary.ByteOrder) {
	r.order = order
}

// Order returns the current byte order.
func (r *Reader) Order() binary.ByteOrder {
	return r.order
}

// Seek positions the stream at the given offset from the start.
func (r *Reader) Seek(offset int64) error {
	_, err := r.r.Seek(offset, io.SeekStart)
	return err
}

// Pos returns the current stream position.
func (r *Reader) Pos() (int64, error) {
	return r.r.Seek(0, io.SeekCurrent)
}

// Len returns the total length of the source, preserving the current
// position.
func (r *Reader) Len() (int64, error) {
	pos, err := r.r.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, err
	}
	end, err := r.r.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, err
	}
	if _, err := r.r.Seek(pos, io.SeekStart); err != nil {
		return 0, err
	}
	return end, nil
}

// Read implements io.Reader.
func (r *Reader) Read(p []byte) (int, error) {
	return r.r.Read(p)
}

// ReadFull reads exactly len(p) bytes, converting a clean EOF into
// io.ErrUnexpectedEOF.
func (r *Reader) ReadFull(p []byte) error {
	_, err := io.ReadFull(r.r, p)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

// ReadInt32 reads a signed 32-bit integer in the current byte order.
func (r *Reader) ReadInt32() (int32, error) {
	var buf [4]byte
	if err := r.ReadFull(buf[:]); err != nil {
		return 0, err
	}
	return int32(r.order.Uint32(buf[:])), nil
}

// ReadFloat64 reads an IEEE 754 64-bit float in the current byte order.
func (r *Reader) ReadFloat64() (float64, error) {
	var buf [8]byte
	if err := r.ReadFull(buf[:]); err != nil {
		return 0, err
	}
	return math.Float64frombits(r.order.Uint64(buf[:])), nil
}

// ReadString reads a fixed-width text field of n bytes. No trimming is
// applied; callers decide how padding is handled.
func (r *Reader) ReadString(n int) (string, error) {
	buf := make([]byte, n)
	if err := r.ReadFull(buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

// Close closes the underlying source if it is an io.Closer.
func (r *Reader) Close() error {
	if c, ok := r.r.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Writer writes fixed-layout binary data to a seekable byte sink.
type Writer struct {
	w     io.WriteSeeker
	order binary.ByteOrder
}

// NewWriter returns a Writer over w.
func NewWriter(w io.WriteSeeker) *Writer {
	return &Writer{w: w, order: binary.LittleEndian}
}

// Create creates or truncates the named file for writing.
func Create(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return NewWriter(f), nil
}

// SetOrder sets the byte order for subsequent writes.
func (w *Writer) SetOrder(order binary.ByteOrder) {
	w.order = order
}

// Seek positions the stream at the given offset from the start.
func (w *Writer) Seek(offset int64) error {
	_, err := w.w.Seek(offset, io.SeekStart)
	return err
}

// Pos returns the current stream position.
func (w *Writer) Pos() (int64, error) {
	return w.w.Seek(0, io.SeekCurrent)
}

// Len returns the total length of the sink, preserving the current
// position.
func (w *Writer) Len() (int64, error) {
	pos, err := w.w.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, err
	}
	end, err := w.w.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, err
	}
	if _, err := w.w.Seek(pos, io.SeekStart); err != nil {
		return 0, err
	}
	return end, nil
}

// Write implements io.Writer.
func (w *Writer) Write(p []byte) (int, error) {
	return w.w.Write(p)
}

// WriteInt32 writes a signed 32-bit integer in the current byte order.
func (w *Writer) WriteInt32(v int32) error {
	var buf [4]byte
	w.order.PutUint32(buf[:], uint32(v))
	_, err := w.w.Write(buf[:])
	return err
}

// WriteFloat64 writes an IEEE 754 64-bit float in the current byte order.
func (w *Writer) WriteFloat64(v float64) error {
	var buf [8]byte
	w.order.PutUint64(buf[:], math.Float64bits(v))
	_, err := w.w.Write(buf[:])
	return err
}

// WriteString writes s as a fixed-width text field of width bytes, padding
// with trailing spaces and truncating if s is longer.
func (w *Writer) WriteString(s string, width int) error {
	buf := make([]byte, width)
	for i := range buf {
		buf[i] = ' '
	}
	copy(buf, s)
	_, err := w.w.Write(buf)
	return err
}

// Close closes the underlying sink if it is an io.Closer.
func (w *Writer) Close() error {
	if c, ok := w.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
