// Package parq reads the footer of a columnar container file: the data is
// framed by a 4-byte magic number at both ends, and the metadata block sits
// just before a little-endian uint32 holding its length and the trailing
// magic.
package parq

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/mcncl/parson/internal/errors"
)

// Magic frames every container file.
const Magic = "PAR1"

const (
	magicLen       = len(Magic)
	footerLenBytes = 4
	// MinSize is a leading magic, a zero-length footer and a trailing magic.
	MinSize = 2*magicLen + footerLenBytes
)

// Footer is the located metadata block of a container.
type Footer struct {
	// Size is the total length of the container in bytes.
	Size int64
	// MetadataOffset is where the metadata block starts.
	MetadataOffset int64
	// MetadataLength is the declared length of the metadata block.
	MetadataLength uint32
	// Metadata holds the raw, still encoded, metadata bytes.
	Metadata []byte
}

// DataLength is the number of bytes between the leading magic and the
// metadata block.
func (f *Footer) DataLength() int64 {
	return f.MetadataOffset - int64(magicLen)
}

// IsContainer reports whether b starts with the container magic.
func IsContainer(b []byte) bool {
	return bytes.HasPrefix(b, []byte(Magic))
}

// Open locates the footer of an in-memory container.
func Open(b []byte) (*Footer, error) {
	return Read(bytes.NewReader(b), int64(len(b)))
}

// Read locates the footer of a container of the given size.
func Read(r io.ReaderAt, size int64) (*Footer, error) {
	if size < int64(MinSize) {
		return nil, errors.NewInputError(
			fmt.Sprintf("container is %d bytes, need at least %d", size, MinSize),
			errors.ErrNotContainer,
		)
	}

	head := make([]byte, magicLen)
	if _, err := r.ReadAt(head, 0); err != nil {
		return nil, errors.NewInputError("could not read leading magic number", err)
	}
	if string(head) != Magic {
		return nil, errors.NewInputError(
			fmt.Sprintf("not a container file: leading magic is %q", head),
			errors.ErrNotContainer,
		)
	}

	tail := make([]byte, footerLenBytes+magicLen)
	if _, err := r.ReadAt(tail, size-int64(len(tail))); err != nil {
		return nil, errors.NewInputError("could not read footer length", err)
	}
	if string(tail[footerLenBytes:]) != Magic {
		return nil, errors.NewInputError(
			fmt.Sprintf("not a container file: trailing magic is %q", tail[footerLenBytes:]),
			errors.ErrNotContainer,
		)
	}

	length := binary.LittleEndian.Uint32(tail[:footerLenBytes])
	offset := size - int64(len(tail)) - int64(length)
	if offset < int64(magicLen) {
		return nil, errors.NewStructuralError(
			fmt.Sprintf("footer length %d exceeds the %d bytes available", length, size-int64(MinSize)),
			int(size-int64(len(tail))),
			errors.ErrNotContainer,
		)
	}

	metadata := make([]byte, length)
	if _, err := r.ReadAt(metadata, offset); err != nil && err != io.EOF {
		return nil, errors.NewInputError("failed to read metadata bytes", err)
	}

	return &Footer{
		Size:           size,
		MetadataOffset: offset,
		MetadataLength: length,
		Metadata:       metadata,
	}, nil
}
