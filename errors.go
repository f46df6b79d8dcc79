package scif

import "errors"

// Common errors
var (
	ErrFormatMismatch       = errors.New("scif: no format matches source")
	ErrParse                = errors.New("scif: malformed or truncated header")
	ErrBufferTooLarge       = errors.New("scif: region exceeds maximum buffer size")
	ErrBufferSize           = errors.New("scif: buffer length does not match region")
	ErrUnsupportedPixelType = errors.New("scif: unsupported pixel type")
	ErrPartialWrite         = errors.New("scif: writer does not support partial planes")
	ErrRegionBounds         = errors.New("scif: region out of plane bounds")
	ErrNotPopulated         = errors.New("scif: metadata has not been populated")
	ErrClosed               = errors.New("scif: reader or writer is closed")
)
