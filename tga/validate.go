package tga

import "fmt"

func malformed(field string, format string, a ...interface{}) error {
	return &FormatError{Field: field, Msg: fmt.Sprintf(format, a...)}
}

func unsupported(field string, format string, a ...interface{}) error {
	return &UnsupportedError{Field: field, Msg: fmt.Sprintf(format, a...)}
}

// Validate checks the header describes an image this package can stream.
// The first violation found is returned as either a *FormatError or an
// *UnsupportedError.
func (h Header) Validate() error {
	if h.ColorMapType != ColorMapNone {
		return unsupported("color map type", "%d", h.ColorMapType)
	}
	if h.ColorMap.Offset != 0 {
		return malformed("color map offset", "%d without a color map", h.ColorMap.Offset)
	}
	if h.ColorMap.Size != 0 {
		return malformed("color map size", "%d without a color map", h.ColorMap.Size)
	}
	if h.ColorMap.BitsPerPixel != 0 {
		return malformed("color map depth", "%d without a color map", h.ColorMap.BitsPerPixel)
	}

	if h.Image.Width == 0 {
		return malformed("width", "zero")
	}
	if h.Image.Height == 0 {
		return malformed("height", "zero")
	}

	if bpp := h.Image.BitsPerPixel; bpp < 8 || bpp > 32 || bpp%8 != 0 {
		return unsupported("bits per pixel", "%d", bpp)
	}

	d := h.Image.Descriptor
	if d.AttributeBits != 0 && d.AttributeBits != 8 {
		return unsupported("attribute bits", "%d", d.AttributeBits)
	}
	if d.Reserved != 0 {
		return malformed("descriptor", "reserved bit set")
	}
	if d.Interleave != 0 {
		return unsupported("interleave", "%d", d.Interleave)
	}

	_, err := h.Components()
	return err
}

// Components returns the number of bytes per pixel, checking the image type
// agrees with the pixel depth. 8 and 16 bits per pixel must be grayscale and
// 24 and 32 bits per pixel must be true-color.
func (h Header) Components() (int, error) {
	var want ImageType
	switch h.Image.BitsPerPixel {
	case 8, 16:
		want = ImageGrayscale
	case 24, 32:
		want = ImageTrueColor
	default:
		return 0, unsupported("bits per pixel", "%d", h.Image.BitsPerPixel)
	}
	if h.ImageType != want {
		return 0, unsupported("image type", "%s at %d bits per pixel", h.ImageType, h.Image.BitsPerPixel)
	}
	return int(h.Image.BitsPerPixel) >> 3, nil
}
