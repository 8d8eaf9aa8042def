package demo

import (
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/cylinders/internal/config"
	"github.com/Faultbox/cylinders/internal/engine/controls"
	"github.com/Faultbox/cylinders/internal/engine/softrender"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Window.Width = 32
	cfg.Window.Height = 32
	cfg.Mesh.Sides = 12
	cfg.Mesh.Stacks = 2
	cfg.Screenshot.OutputDir = t.TempDir()
	cfg.Screenshot.Supersample = 1
	return cfg
}

func newTestDemo(t *testing.T) *Demo {
	t.Helper()
	d, err := New(testConfig(t), softrender.New(softrender.Config{Supersample: 1}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(d.Close)
	return d
}

func TestHandleKeyMovesCamera(t *testing.T) {
	d := newTestDemo(t)
	if err := d.Display(); err != nil {
		t.Fatalf("Display: %v", err)
	}
	if d.NeedsRedraw() {
		t.Fatal("redraw pending right after Display")
	}

	az, el, dist := d.Camera.Azimuth, d.Camera.Elevation, d.Camera.Distance
	keys := []rune{'4', '4', '6', '8', '3', '9', '9'}
	for _, k := range keys {
		if err := d.HandleKey(k); err != nil {
			t.Fatalf("HandleKey(%q): %v", k, err)
		}
	}

	if d.Camera.Azimuth != az+5 {
		t.Errorf("azimuth = %v, want %v", d.Camera.Azimuth, az+5)
	}
	if d.Camera.Elevation != el+5 {
		t.Errorf("elevation = %v, want %v", d.Camera.Elevation, el+5)
	}
	if d.Camera.Distance != dist-0.5 {
		t.Errorf("distance = %v, want %v", d.Camera.Distance, dist-0.5)
	}
	if !d.NeedsRedraw() {
		t.Error("camera moved but no redraw pending")
	}
}

func TestHandleKeyUnboundDoesNotRedraw(t *testing.T) {
	d := newTestDemo(t)
	if err := d.Display(); err != nil {
		t.Fatalf("Display: %v", err)
	}

	if err := d.HandleKey('z'); err != nil {
		t.Fatalf("HandleKey: %v", err)
	}
	if d.NeedsRedraw() {
		t.Error("unbound key scheduled a redraw")
	}
}

func TestHandleKeyQuit(t *testing.T) {
	d := newTestDemo(t)
	for _, k := range []rune{controls.Escape, 'q', 'Q'} {
		if err := d.HandleKey(k); !errors.Is(err, ErrQuit) {
			t.Errorf("HandleKey(%q) = %v, want ErrQuit", k, err)
		}
	}
}

func TestZoomPastOrigin(t *testing.T) {
	d := newTestDemo(t)

	// 5 -> -1 after twelve zoom-in presses; distance is not clamped.
	for i := 0; i < 12; i++ {
		if err := d.HandleKey('9'); err != nil {
			t.Fatalf("HandleKey: %v", err)
		}
	}
	if d.Camera.Distance != -1 {
		t.Errorf("distance = %v, want -1", d.Camera.Distance)
	}
	if err := d.Display(); err != nil {
		t.Errorf("Display with negative distance: %v", err)
	}
}

func TestScreenshotKey(t *testing.T) {
	cfg := testConfig(t)
	d, err := New(cfg, softrender.New(softrender.Config{Supersample: 1}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(d.Close)

	if err := d.HandleKey('p'); err == nil {
		t.Error("screenshot before the first frame succeeded, want error")
	}

	if err := d.Display(); err != nil {
		t.Fatalf("Display: %v", err)
	}
	if err := d.HandleKey('p'); err != nil {
		t.Fatalf("HandleKey('p'): %v", err)
	}

	matches, err := filepath.Glob(filepath.Join(cfg.Screenshot.OutputDir, "*.png"))
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 1 {
		t.Errorf("expected 1 screenshot, found %d", len(matches))
	}
}

func TestResizeSchedulesRedraw(t *testing.T) {
	d := newTestDemo(t)
	if err := d.Display(); err != nil {
		t.Fatalf("Display: %v", err)
	}

	d.Resize(48, 24)
	if !d.NeedsRedraw() {
		t.Error("resize did not schedule a redraw")
	}
	if err := d.Display(); err != nil {
		t.Fatalf("Display after resize: %v", err)
	}
}

func TestRunHeadless(t *testing.T) {
	cfg := testConfig(t)
	cfg.Screenshot.Supersample = 2

	path, err := RunHeadless(cfg)
	if err != nil {
		t.Fatalf("RunHeadless: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 32 || b.Dy() != 32 {
		t.Errorf("image size = %dx%d, want 32x32", b.Dx(), b.Dy())
	}
}
