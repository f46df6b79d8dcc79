package scif

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
	"github.com/ericpauley/go-quantize/quantize"
)

// Render converts a decoded plane into a grayscale image, mapping the
// plane's minimum and maximum sample values to the 0-255 display range.
// Without this auto-contrast most scientific images display nearly black,
// since acquisitions rarely use the full numeric range of their pixel
// type.
func Render(p *Plane, im *ImageMetadata) (image.Image, error) {
	w, h := int(p.Region.Width), int(p.Region.Height)
	if w == 0 || h == 0 {
		return image.NewGray(image.Rect(0, 0, w, h)), nil
	}
	samples := make([]uint32, w*h)

	switch im.PixelType {
	case Uint8:
		for i, b := range p.Bytes {
			samples[i] = uint32(b)
		}
	case Uint16:
		for i := range samples {
			samples[i] = uint32(im.ByteOrder.Uint16(p.Bytes[i*2:]))
		}
	default:
		return nil, fmt.Errorf("scif: cannot render %s planes: %w", im.PixelType, ErrUnsupportedPixelType)
	}

	min, max := samples[0], samples[0]
	for _, s := range samples {
		if s < min {
			min = s
		}
		if s > max {
			max = s
		}
	}

	out := image.NewGray(image.Rect(0, 0, w, h))
	scale := max - min
	for i, s := range samples {
		v := uint8(0xff)
		if scale > 0 {
			v = uint8((s - min) * 0xff / scale)
		}
		out.Pix[i] = v
	}
	return out, nil
}

// Thumbnail scales m down to the given width, preserving the aspect ratio.
// Images already narrower than width are returned unchanged.
func Thumbnail(m image.Image, width int) image.Image {
	if m.Bounds().Dx() <= width {
		return m
	}
	return imaging.Resize(m, width, 0, imaging.Lanczos)
}

// Paletted quantizes m down to at most colors entries, for export to
// palette-based encodings such as GIF.
func Paletted(m image.Image, colors int) *image.Paletted {
	q := quantize.MedianCutQuantizer{}
	b := m.Bounds()

	pm := image.NewPaletted(b, q.Quantize(make(color.Palette, 0, colors), m))
	draw.Draw(pm, b, m, b.Min, draw.Src)
	return pm
}
