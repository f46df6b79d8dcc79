package stream

import (
	"errors"
	"io"
)

// Buffer is a growable in-memory byte store implementing io.Reader,
// io.Writer and io.Seeker. It stands in for a file when a dataset is built
// or inspected without touching disk.
type Buffer struct {
	b   []byte
	pos int64
}

// NewBuffer returns a Buffer initially containing b. The Buffer takes
// ownership of the slice.
func NewBuffer(b []byte) *Buffer {
	return &Buffer{b: b}
}

// Bytes returns the current contents.
func (b *Buffer) Bytes() []byte {
	return b.b
}

// Len returns the current length in bytes.
func (b *Buffer) Len() int {
	return len(b.b)
}

// Read implements io.Reader.
func (b *Buffer) Read(p []byte) (int, error) {
	if b.pos >= int64(len(b.b)) {
		return 0, io.EOF
	}
	n := copy(p, b.b[b.pos:])
	b.pos += int64(n)
	return n, nil
}

// Write implements io.Writer, growing the buffer as needed. Writing past
// the current end zero-fills the gap.
func (b *Buffer) Write(p []byte) (int, error) {
	if end := b.pos + int64(len(p)); end > int64(len(b.b)) {
		grown := make([]byte, end)
		copy(grown, b.b)
		b.b = grown
	}
	n := copy(b.b[b.pos:], p)
	b.pos += int64(n)
	return n, nil
}

// Seek implements io.Seeker.
func (b *Buffer) Seek(offset int64, whence int) (int64, error) {
	var pos int64
	switch whence {
	case io.SeekStart:
		pos = offset
	case io.SeekCurrent:
		pos = b.pos + offset
	case io.SeekEnd:
		pos = int64(len(b.b)) + offset
	default:
		return 0, errors.New("stream: invalid whence")
	}
	if pos < 0 {
		return 0, errors.New("stream: negative position")
	}
	b.pos = pos
	return pos, nil
}
