/*
Package halfsize halves the resolution of uncompressed TGA images.

Each output pixel is the rounded average of a 2 by 2 block of input pixels.
Images are streamed two rows at a time so memory use depends only on the
image width. An odd final column or row is treated as if it were repeated.
*/
package halfsize

import (
	"errors"
	"log"
)

var (
	// ErrOpenInput is matched by errors opening the input file.
	ErrOpenInput = errors.New("failed to open input file")

	// ErrOpenOutput is matched by errors creating the output file.
	ErrOpenOutput = errors.New("failed to open output file")

	// ErrWrite is matched by any failed or short write of the output.
	ErrWrite = errors.New("failed to write output file")
)

// Converter halves TGA images.
type Converter struct {
	logger *log.Logger
}

// New returns a Converter reporting progress to logger.
func New(logger *log.Logger) *Converter {
	return &Converter{
		logger: logger,
	}
}
