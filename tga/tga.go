/*
Package tga implements the subset of the Truevision TGA format needed to
stream uncompressed grayscale and true-color images.

A file starts with an 18 byte header, all multi-byte fields little-endian,
followed by an optional image ID field of up to 255 bytes, the pixel data
stored one scanline after another and finally any number of trailing bytes
such as the TGA 2.0 extension area and footer.

Only uncompressed images without a color map are supported: 8 and 16 bits
per pixel grayscale (the second byte of a 16-bit pixel being alpha) and 24
and 32 bits per pixel true-color stored as BGR and BGRA respectively.
*/
package tga

import (
	"errors"
	"fmt"
	"io"
)

// HeaderSize is the size in bytes of an encoded Header.
const HeaderSize = 18

var (
	// ErrMalformed is matched by any error caused by input that violates
	// the structure of a TGA file.
	ErrMalformed = errors.New("tga: malformed input")

	// ErrUnsupported is matched by any error caused by a well-formed TGA
	// file using a feature that is not implemented.
	ErrUnsupported = errors.New("tga: unsupported input")
)

// A FormatError reports that the input is not a valid TGA stream.
type FormatError struct {
	Field string
	Msg   string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("tga: malformed %s: %s", e.Field, e.Msg)
}

// Is reports whether target is ErrMalformed.
func (e *FormatError) Is(target error) bool {
	return target == ErrMalformed
}

// An UnsupportedError reports that the input uses a valid but unimplemented
// TGA feature.
type UnsupportedError struct {
	Field string
	Msg   string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("tga: unsupported %s: %s", e.Field, e.Msg)
}

// Is reports whether target is ErrUnsupported.
func (e *UnsupportedError) Is(target error) bool {
	return target == ErrUnsupported
}

func readFull(r io.Reader, b []byte, field string) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	if err != nil {
		return &FormatError{Field: field, Msg: err.Error()}
	}
	return nil
}
