package tga

import (
	"image"
	"image/color"
	"io"
)

type decoder struct {
	r io.Reader

	header     Header
	components int

	image image.Image
}

func (d *decoder) colorModel() color.Model {
	switch d.components {
	case 1:
		return color.GrayModel
	case 3:
		return color.RGBAModel
	default:
		return color.NRGBAModel
	}
}

// set stores pixel p, in file order, at (x, y).
func (d *decoder) set(x, y int, p []byte) {
	switch m := d.image.(type) {
	case *image.Gray:
		m.SetGray(x, y, color.Gray{p[0]})
	case *image.RGBA:
		m.SetRGBA(x, y, color.RGBA{p[2], p[1], p[0], 0xff})
	case *image.NRGBA:
		if len(p) == 2 {
			m.SetNRGBA(x, y, color.NRGBA{p[0], p[0], p[0], p[1]})
		} else {
			m.SetNRGBA(x, y, color.NRGBA{p[2], p[1], p[0], p[3]})
		}
	}
}

func (d *decoder) decode(r io.Reader, configOnly bool) error {
	d.r = r

	var err error
	if d.header, err = ReadHeader(d.r); err != nil {
		return err
	}
	if err = d.header.Validate(); err != nil {
		return err
	}
	if d.components, err = d.header.Components(); err != nil {
		return err
	}

	if configOnly {
		return nil
	}

	if _, err := ReadID(d.r, d.header); err != nil {
		return err
	}

	width, height := int(d.header.Image.Width), int(d.header.Image.Height)
	bounds := image.Rect(0, 0, width, height)

	switch d.components {
	case 1:
		d.image = image.NewGray(bounds)
	case 3:
		d.image = image.NewRGBA(bounds)
	default:
		d.image = image.NewNRGBA(bounds)
	}

	row := NewRow(width, d.components)
	for i := 0; i < height; i++ {
		if err := row.Read(d.r, width); err != nil {
			return err
		}

		// Rows are stored bottom up unless the descriptor says otherwise
		y := height - 1 - i
		if d.header.Image.Descriptor.TopToBottom {
			y = i
		}

		for x := 0; x < width; x++ {
			d.set(x, y, row.Pixel(x))
		}
	}

	return nil
}

// Decode reads an uncompressed TGA image from r and returns it as an
// image.Image. Any data following the pixels is ignored.
func Decode(r io.Reader) (image.Image, error) {
	var d decoder
	if err := d.decode(r, false); err != nil {
		return nil, err
	}
	return d.image, nil
}

// DecodeConfig returns the color model and dimensions of a TGA image without
// decoding the entire image.
func DecodeConfig(r io.Reader) (image.Config, error) {
	var d decoder
	if err := d.decode(r, true); err != nil {
		return image.Config{}, err
	}
	return image.Config{
		ColorModel: d.colorModel(),
		Width:      int(d.header.Image.Width),
		Height:     int(d.header.Image.Height),
	}, nil
}
