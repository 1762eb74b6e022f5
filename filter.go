package halfsize

import "github.com/bodgit/halfsize/tga"

const (
	// Sum of the weights of the four input pixels
	accumulatedUnit = 4
	// Added before dividing to round to nearest, ties upwards
	accumulatedHalf = accumulatedUnit / 2
)

// Downsample box filters rows a and b into out. Both input rows must be
// exactly twice the length of out and every row must have the same number
// of components. Passing the same row as a and b averages horizontally
// only, which is how a final odd row is handled.
func Downsample(out, a, b *tga.Row) {
	if a.Components != out.Components || b.Components != out.Components {
		panic("halfsize: rows differ in components")
	}
	if len(a.Pix) != len(b.Pix) || len(a.Pix) != len(out.Pix)<<1 {
		panic("halfsize: row lengths do not halve")
	}

	switch n := out.Components; n {
	case 1, 2, 3, 4:
		box(out.Pix, a.Pix, b.Pix, n)
	default:
		panic("halfsize: unsupported number of components")
	}
}

// box averages each component of pixels 2i and 2i+1 in both a and b into
// pixel i of out. Pixels are n bytes wide.
func box(out, a, b []byte, n int) {
	for i, j := 0, 0; i < len(out); i, j = i+n, j+n<<1 {
		var acc [4]uint16
		for c := 0; c < n; c++ {
			acc[c] = accumulatedHalf
			acc[c] += uint16(a[j+c]) + uint16(a[j+n+c])
			acc[c] += uint16(b[j+c]) + uint16(b[j+n+c])
			out[i+c] = byte(acc[c] >> 2)
		}
	}
}
