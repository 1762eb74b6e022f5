package tga

import (
	"encoding/binary"
	"fmt"
	"io"
)

// ColorMapType indicates whether a color map is included.
type ColorMapType uint8

// ColorMapNone is the only color map type supported.
const ColorMapNone ColorMapType = 0

// ImageType describes the compression and color type of the image data.
type ImageType uint8

// Image types defined by the TGA specification.
const (
	ImageNone               ImageType = 0
	ImageColorMapped        ImageType = 1
	ImageTrueColor          ImageType = 2
	ImageGrayscale          ImageType = 3
	ImageRunLengthColorMap  ImageType = 9
	ImageRunLengthTrueColor ImageType = 10
	ImageRunLengthGrayscale ImageType = 11
)

var imageTypeNames = map[ImageType]string{
	ImageNone:               "no image data",
	ImageColorMapped:        "uncompressed color-mapped",
	ImageTrueColor:          "uncompressed true-color",
	ImageGrayscale:          "uncompressed grayscale",
	ImageRunLengthColorMap:  "run-length encoded color-mapped",
	ImageRunLengthTrueColor: "run-length encoded true-color",
	ImageRunLengthGrayscale: "run-length encoded grayscale",
}

func (t ImageType) String() string {
	if s, ok := imageTypeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("unknown (%d)", uint8(t))
}

// ColorMapSpec describes the color map. All fields must be zero for the
// images handled by this package.
type ColorMapSpec struct {
	Offset       uint16 `yaml:"offset"`
	Size         uint16 `yaml:"size"`
	BitsPerPixel uint8  `yaml:"bpp"`
}

// Descriptor is the unpacked image descriptor byte.
//
// Bits 0-3 hold the number of attribute bits per pixel, bit 4 is reserved,
// bit 5 is set when the first stored row is the top of the image and bits
// 6-7 hold the interleave mode.
type Descriptor struct {
	AttributeBits uint8 `yaml:"attribute_bits"`
	Reserved      uint8 `yaml:"reserved"`
	TopToBottom   bool  `yaml:"top_to_bottom"`
	Interleave    uint8 `yaml:"interleave"`
}

const (
	attributeMask   = 0x0f
	reservedShift   = 4
	directionShift  = 5
	interleaveShift = 6
)

// ParseDescriptor unpacks an image descriptor byte.
func ParseDescriptor(b byte) Descriptor {
	return Descriptor{
		AttributeBits: b & attributeMask,
		Reserved:      b >> reservedShift & 1,
		TopToBottom:   b>>directionShift&1 == 1,
		Interleave:    b >> interleaveShift & 3,
	}
}

// Byte packs the descriptor back into a single byte. Fields wider than
// their bit allocation are truncated.
func (d Descriptor) Byte() byte {
	b := d.AttributeBits&attributeMask | d.Reserved&1<<reservedShift | d.Interleave&3<<interleaveShift
	if d.TopToBottom {
		b |= 1 << directionShift
	}
	return b
}

// ImageSpec describes the image dimensions and pixel format.
type ImageSpec struct {
	XOrigin      uint16     `yaml:"x_origin"`
	YOrigin      uint16     `yaml:"y_origin"`
	Width        uint16     `yaml:"width"`
	Height       uint16     `yaml:"height"`
	BitsPerPixel uint8      `yaml:"bpp"`
	Descriptor   Descriptor `yaml:"descriptor"`
}

// Header is the fixed size header found at the start of every TGA file. It
// implements the encoding.BinaryMarshaler and encoding.BinaryUnmarshaler
// interfaces.
type Header struct {
	IDLength     uint8        `yaml:"id_length"`
	ColorMapType ColorMapType `yaml:"color_map_type"`
	ImageType    ImageType    `yaml:"image_type"`
	ColorMap     ColorMapSpec `yaml:"color_map"`
	Image        ImageSpec    `yaml:"image"`
}

// MarshalBinary encodes the header into its 18 byte form.
func (h Header) MarshalBinary() ([]byte, error) {
	b := make([]byte, HeaderSize)

	b[0] = h.IDLength
	b[1] = byte(h.ColorMapType)
	b[2] = byte(h.ImageType)

	binary.LittleEndian.PutUint16(b[3:], h.ColorMap.Offset)
	binary.LittleEndian.PutUint16(b[5:], h.ColorMap.Size)
	b[7] = h.ColorMap.BitsPerPixel

	binary.LittleEndian.PutUint16(b[8:], h.Image.XOrigin)
	binary.LittleEndian.PutUint16(b[10:], h.Image.YOrigin)
	binary.LittleEndian.PutUint16(b[12:], h.Image.Width)
	binary.LittleEndian.PutUint16(b[14:], h.Image.Height)
	b[16] = h.Image.BitsPerPixel
	b[17] = h.Image.Descriptor.Byte()

	return b, nil
}

// UnmarshalBinary decodes the header from its 18 byte form. No validation
// of the field values is performed, see Validate.
func (h *Header) UnmarshalBinary(b []byte) error {
	if len(b) != HeaderSize {
		return &FormatError{Field: "header", Msg: fmt.Sprintf("got %d bytes, want %d", len(b), HeaderSize)}
	}

	*h = Header{
		IDLength:     b[0],
		ColorMapType: ColorMapType(b[1]),
		ImageType:    ImageType(b[2]),
		ColorMap: ColorMapSpec{
			Offset:       binary.LittleEndian.Uint16(b[3:]),
			Size:         binary.LittleEndian.Uint16(b[5:]),
			BitsPerPixel: b[7],
		},
		Image: ImageSpec{
			XOrigin:      binary.LittleEndian.Uint16(b[8:]),
			YOrigin:      binary.LittleEndian.Uint16(b[10:]),
			Width:        binary.LittleEndian.Uint16(b[12:]),
			Height:       binary.LittleEndian.Uint16(b[14:]),
			BitsPerPixel: b[16],
			Descriptor:   ParseDescriptor(b[17]),
		},
	}

	return nil
}

// ReadHeader reads and decodes a header from r.
func ReadHeader(r io.Reader) (Header, error) {
	var (
		h   Header
		tmp [HeaderSize]byte
	)
	if err := readFull(r, tmp[:], "header"); err != nil {
		return h, err
	}
	err := h.UnmarshalBinary(tmp[:])
	return h, err
}

// WriteHeader encodes h and writes it to w.
func WriteHeader(w io.Writer, h Header) error {
	b, err := h.MarshalBinary()
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

// ReadID reads the image ID field described by h from r.
func ReadID(r io.Reader, h Header) ([]byte, error) {
	b := make([]byte, h.IDLength)
	if err := readFull(r, b, "image ID"); err != nil {
		return nil, err
	}
	return b, nil
}
