package icon

import (
	"bytes"
	"errors"
	"image/color"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"tripagent-icongen/internal/pine"
)

func TestRenderDimensions(t *testing.T) {
	for _, target := range Targets {
		img := Render(target.Size)
		if got := img.Bounds(); got.Dx() != target.Size || got.Dy() != target.Size {
			t.Fatalf("Render(%d) bounds = %v", target.Size, got)
		}
	}
}

func TestRenderCornersAreBackground(t *testing.T) {
	for _, target := range Targets {
		img := Render(target.Size)
		last := target.Size - 1
		corners := [][2]int{{0, 0}, {last, 0}, {0, last}, {last, last}}
		for _, c := range corners {
			if got := img.RGBAAt(c[0], c[1]); got != Background {
				t.Fatalf("size %d: corner (%d,%d) = %v, want %v", target.Size, c[0], c[1], got, Background)
			}
		}
	}
}

func TestRenderIsPixelDeterministic(t *testing.T) {
	for _, size := range []int{48, 432} {
		a := Render(size)
		b := Render(size)
		if !bytes.Equal(a.Pix, b.Pix) {
			t.Fatalf("Render(%d) produced different pixels across calls", size)
		}
	}
}

func TestRenderSilhouettePlacement(t *testing.T) {
	for _, target := range Targets {
		tree := pine.Layout(target.Size)
		img := Render(target.Size)

		at := func(x, y float64) color.RGBA {
			return img.RGBAAt(int(x), int(y))
		}

		trunkMid := at(tree.CenterX, (tree.Trunk.Top+tree.Trunk.Bottom)/2)
		if trunkMid != Foreground {
			t.Fatalf("size %d: trunk center pixel = %v, want foreground", target.Size, trunkMid)
		}
		widest := tree.Layers[0]
		foliageMid := at(tree.CenterX, widest.Apex.Y+widest.Height()/2)
		if foliageMid != Foreground {
			t.Fatalf("size %d: foliage center pixel = %v, want foreground", target.Size, foliageMid)
		}
		for x := 0; x < target.Size; x++ {
			if got := img.RGBAAt(x, 0); got != Background {
				t.Fatalf("size %d: top row pixel (%d,0) = %v, want background", target.Size, x, got)
			}
			if got := img.RGBAAt(x, target.Size-1); got != Background {
				t.Fatalf("size %d: bottom row pixel (%d,%d) = %v, want background", target.Size, x, target.Size-1, got)
			}
		}
	}
}

func TestEncodePNGDeterministicTruecolor(t *testing.T) {
	img := Render(200)

	first, err := EncodePNG(img)
	if err != nil {
		t.Fatalf("EncodePNG() error = %v", err)
	}
	second, err := EncodePNG(Render(200))
	if err != nil {
		t.Fatalf("EncodePNG() error = %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatalf("identical canvases encoded to different bytes")
	}

	cfg, err := png.DecodeConfig(bytes.NewReader(first))
	if err != nil {
		t.Fatalf("DecodeConfig() error = %v", err)
	}
	if cfg.Width != 200 || cfg.Height != 200 {
		t.Fatalf("decoded config = %dx%d, want 200x200", cfg.Width, cfg.Height)
	}
	if cfg.ColorModel != color.RGBAModel {
		t.Fatalf("decoded color model = %v, want opaque truecolor", cfg.ColorModel)
	}
}

func TestWriteFileProducesDecodablePNG(t *testing.T) {
	dir := t.TempDir()
	target := Target{Name: "favicon.png", Size: 48}

	if err := WriteFile(dir, target); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	f, err := os.Open(filepath.Join(dir, target.Name))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer f.Close()

	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if got := decoded.Bounds(); got.Dx() != 48 || got.Dy() != 48 {
		t.Fatalf("decoded bounds = %v, want 48x48", got)
	}
}

func TestWriteFileMissingDirectory(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "assets")
	err := WriteFile(missing, Target{Name: "icon.png", Size: 48})
	if err == nil {
		t.Fatalf("WriteFile() into missing directory succeeded")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("WriteFile() error = %v, want wrapped fs.ErrNotExist", err)
	}
}

func TestTargetByName(t *testing.T) {
	if got, ok := TargetByName("adaptive-icon.png"); !ok || got.Size != 432 {
		t.Fatalf("TargetByName(adaptive-icon.png) = %+v, %v", got, ok)
	}
	if _, ok := TargetByName("banner.png"); ok {
		t.Fatalf("TargetByName(banner.png) should not resolve")
	}
}
