package tga

import "io"

// Row is a single scanline of pixels, each Components bytes wide and stored
// in file order. Rows are allocated once and reused for every scanline.
type Row struct {
	Pix        []byte
	Components int
}

// NewRow returns a row holding width pixels of the given number of
// components.
func NewRow(width, components int) *Row {
	return &Row{
		Pix:        make([]byte, width*components),
		Components: components,
	}
}

// Len returns the number of pixels in the row.
func (r *Row) Len() int {
	return len(r.Pix) / r.Components
}

// Pixel returns the components of pixel i.
func (r *Row) Pixel(i int) []byte {
	return r.Pix[i*r.Components : (i+1)*r.Components : (i+1)*r.Components]
}

// Read fills the row with width pixels from rd. If the row is longer than
// width, the last pixel read is duplicated into the remaining slot so a
// row with an odd number of pixels can be filtered in pairs.
func (r *Row) Read(rd io.Reader, width int) error {
	if width <= 0 || width > r.Len() || r.Len()-width > 1 {
		panic("tga: row length does not fit width")
	}

	n := width * r.Components
	if err := readFull(rd, r.Pix[:n], "pixel data"); err != nil {
		return err
	}

	// Account for an odd column by repeating it
	if n < len(r.Pix) {
		copy(r.Pix[n:], r.Pix[n-r.Components:n])
	}

	return nil
}

// Write writes every pixel in the row to w.
func (r *Row) Write(w io.Writer) error {
	n, err := w.Write(r.Pix)
	if err == nil && n < len(r.Pix) {
		err = io.ErrShortWrite
	}
	return err
}
