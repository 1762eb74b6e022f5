package halfsize

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/bodgit/halfsize/tga"
)

// writer tags every failed or short write with ErrWrite so output failures
// can be told apart from input failures once they have propagated.
type writer struct {
	w io.Writer
}

func (w writer) Write(p []byte) (int, error) {
	n, err := w.w.Write(p)
	if err == nil && n < len(p) {
		err = io.ErrShortWrite
	}
	if err != nil {
		err = fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return n, err
}

func halve(n uint16) uint16 {
	return uint16((int(n) + 1) >> 1)
}

// OutputHeader derives the header of the halved image from the input
// header. The dimensions are halved rounding up and the origin is halved
// rounding down, every other field is copied unchanged.
func OutputHeader(h tga.Header) tga.Header {
	out := h
	out.Image.XOrigin = h.Image.XOrigin >> 1
	out.Image.YOrigin = h.Image.YOrigin >> 1
	out.Image.Width = halve(h.Image.Width)
	out.Image.Height = halve(h.Image.Height)
	return out
}

func (c *Converter) convertRows(r io.Reader, w io.Writer, h tga.Header, components int) error {
	width := int(h.Image.Width)
	height := int(h.Image.Height)

	// Input rows are rounded up to an even number of pixels
	in0 := tga.NewRow((width+1)&^1, components)
	in1 := tga.NewRow((width+1)&^1, components)
	out := tga.NewRow(int(halve(h.Image.Width)), components)

	for i := height >> 1; i > 0; i-- {
		if err := in0.Read(r, width); err != nil {
			return err
		}
		if err := in1.Read(r, width); err != nil {
			return err
		}

		Downsample(out, in0, in1)

		if err := out.Write(w); err != nil {
			return err
		}
	}

	// Convert the outstanding odd row against itself
	if height&1 == 1 {
		if err := in0.Read(r, width); err != nil {
			return err
		}

		Downsample(out, in0, in0)

		if err := out.Write(w); err != nil {
			return err
		}
	}

	return nil
}

// Convert reads a TGA image from r and writes it to w at half the width and
// height. The image ID field and any bytes following the pixel data are
// copied unchanged.
//
// Malformed input returns an error matching tga.ErrMalformed, input using
// unsupported features returns an error matching tga.ErrUnsupported and
// failing to write returns an error matching ErrWrite. Output already
// written before an error is not removed.
func (c *Converter) Convert(r io.Reader, w io.Writer) error {
	br := bufio.NewReader(r)
	bw := bufio.NewWriter(writer{w})

	in, err := tga.ReadHeader(br)
	if err != nil {
		return err
	}
	if err := in.Validate(); err != nil {
		return err
	}
	components, err := in.Components()
	if err != nil {
		return err
	}

	out := OutputHeader(in)

	c.logger.Printf("Converting %dx%d %d bpp %s image to %dx%d\n", in.Image.Width, in.Image.Height, in.Image.BitsPerPixel, in.ImageType, out.Image.Width, out.Image.Height)

	if err := tga.WriteHeader(bw, out); err != nil {
		return err
	}

	// Copy ID field
	id, err := tga.ReadID(br, in)
	if err != nil {
		return err
	}
	if _, err := bw.Write(id); err != nil {
		return err
	}
	c.logger.Printf("Copied %d byte image ID\n", len(id))

	if err := c.convertRows(br, bw, in, components); err != nil {
		return err
	}

	// Copy anything else, such as the extension area and footer
	n, err := io.Copy(bw, br)
	if err != nil {
		if errors.Is(err, ErrWrite) {
			return err
		}
		return &tga.FormatError{Field: "trailer", Msg: err.Error()}
	}
	c.logger.Printf("Copied %d trailing bytes\n", n)

	return bw.Flush()
}

// ConvertFile halves the TGA image in the file named in and writes the
// result to the file named out, which is created or truncated.
func (c *Converter) ConvertFile(in, out string) error {
	f, err := os.Open(in)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrOpenInput, err)
	}
	defer f.Close()

	g, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrOpenOutput, err)
	}

	if err := c.Convert(f, g); err != nil {
		g.Close()
		return err
	}

	if err := g.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}

	return nil
}
