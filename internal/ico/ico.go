package ico

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Windows ICO container over PNG-compressed entries. Modern Windows accepts
// PNG payloads directly inside the ICONDIR structure, which keeps this writer
// a pure framing step.

const (
	iconDirSize      = 6
	iconDirEntrySize = 16
)

var ErrNoEntries = errors.New("ico: no entries")

type Entry struct {
	Width  int
	Height int
	Data   []byte // PNG-encoded image payload
}

// Encode writes the entries as a single ICO stream, in the given order.
// Dimensions must be 1..256 per the format (256 is stored as 0).
func Encode(w io.Writer, entries []Entry) error {
	if len(entries) == 0 {
		return ErrNoEntries
	}

	total := iconDirSize + len(entries)*iconDirEntrySize
	for _, e := range entries {
		if e.Width <= 0 || e.Height <= 0 || e.Width > 256 || e.Height > 256 {
			return fmt.Errorf("ico: entry dimensions must be 1..256, got %dx%d", e.Width, e.Height)
		}
		total += len(e.Data)
	}

	buf := make([]byte, iconDirSize+len(entries)*iconDirEntrySize, total)
	binary.LittleEndian.PutUint16(buf[0:2], 0)                    // reserved
	binary.LittleEndian.PutUint16(buf[2:4], 1)                    // image type (icon)
	binary.LittleEndian.PutUint16(buf[4:6], uint16(len(entries))) // image count

	offset := len(buf)
	for i, e := range entries {
		entry := buf[iconDirSize+i*iconDirEntrySize:]
		entry[0] = dimByte(e.Width)
		entry[1] = dimByte(e.Height)
		entry[2] = 0                                  // palette
		entry[3] = 0                                  // reserved
		binary.LittleEndian.PutUint16(entry[4:6], 1)  // color planes
		binary.LittleEndian.PutUint16(entry[6:8], 32) // bits per pixel
		binary.LittleEndian.PutUint32(entry[8:12], uint32(len(e.Data)))
		binary.LittleEndian.PutUint32(entry[12:16], uint32(offset))
		offset += len(e.Data)
	}
	for _, e := range entries {
		buf = append(buf, e.Data...)
	}

	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("ico: write: %w", err)
	}
	return nil
}

func dimByte(v int) byte {
	if v >= 256 {
		return 0
	}
	return byte(v)
}
