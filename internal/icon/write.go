package icon

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
)

// EncodePNG returns the PNG encoding of the canvas. An opaque RGBA canvas
// encodes as 8-bit truecolor without an alpha channel, and the stdlib encoder
// is deterministic, so equal canvases yield equal bytes.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteFile renders the target and writes it into dir. The directory must
// already exist; a missing or unwritable directory surfaces as the wrapped
// I/O error.
func WriteFile(dir string, target Target) error {
	img := Render(target.Size)
	path := filepath.Join(dir, target.Name)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", target.Name, err)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %s: %w", target.Name, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", target.Name, err)
	}
	return nil
}
