package tga

import (
	"bytes"
	"encoding/binary"
	"io"
)

const footerSize = 26

var signature = []byte("TRUEVISION-XFILE.\x00")

// Footer is the TGA 2.0 file footer, locating the optional extension area
// and developer directory. An offset of zero means the section is absent.
type Footer struct {
	ExtensionOffset uint32 `yaml:"extension_offset"`
	DeveloperOffset uint32 `yaml:"developer_offset"`
}

// ReadFooter looks for a TGA 2.0 footer at the end of r. It returns nil
// without error if the stream is too short or the signature does not match,
// as is the case for original TGA files.
func ReadFooter(r io.ReadSeeker) (*Footer, error) {
	size, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, err
	}
	if size < HeaderSize+footerSize {
		return nil, nil
	}

	if _, err := r.Seek(-footerSize, io.SeekEnd); err != nil {
		return nil, err
	}

	var tmp [footerSize]byte
	if err := readFull(r, tmp[:], "footer"); err != nil {
		return nil, err
	}

	if !bytes.Equal(tmp[8:], signature) {
		return nil, nil
	}

	return &Footer{
		ExtensionOffset: binary.LittleEndian.Uint32(tmp[0:]),
		DeveloperOffset: binary.LittleEndian.Uint32(tmp[4:]),
	}, nil
}
