package glrender

import (
	"image/png"
	"os"
	"testing"

	"github.com/Faultbox/cylinders/internal/engine/debug"
)

type recorder struct {
	calls []string
}

func (r *recorder) SwapBuffers() {
	r.calls = append(r.calls, "swap")
}

// newTestBackend builds a Backend without a GL context; only Present and
// Screenshot are safe to call on it.
func newTestBackend(rec *recorder, width, height int) *Backend {
	return &Backend{
		swapper: rec,
		width:   width,
		height:  height,
		readPixels: func(w, h int, dst []byte) {
			rec.calls = append(rec.calls, "read")
			for i := range dst {
				dst[i] = 0xff
			}
		},
	}
}

func TestPresentReadsBeforeSwap(t *testing.T) {
	rec := &recorder{}
	b := newTestBackend(rec, 4, 3)

	if err := b.Present(); err != nil {
		t.Fatalf("Present: %v", err)
	}

	if len(rec.calls) != 2 || rec.calls[0] != "read" || rec.calls[1] != "swap" {
		t.Errorf("calls = %v, want [read swap]", rec.calls)
	}
	if len(b.pixels) != 4*3*4 {
		t.Errorf("kept %d bytes, want %d", len(b.pixels), 4*3*4)
	}
}

func TestPresentWithoutSwapper(t *testing.T) {
	b := &Backend{width: 1, height: 1}
	if err := b.Present(); err == nil {
		t.Error("Present without swapper succeeded")
	}
}

func TestScreenshotUsesPresentedFrame(t *testing.T) {
	rec := &recorder{}
	b := newTestBackend(rec, 4, 3)
	sc := debug.NewScreenshotCapture(t.TempDir(), "gl")

	if _, err := b.Screenshot(sc); err == nil {
		t.Fatal("Screenshot before Present succeeded")
	}

	if err := b.Present(); err != nil {
		t.Fatalf("Present: %v", err)
	}
	path, err := b.Screenshot(sc)
	if err != nil {
		t.Fatalf("Screenshot: %v", err)
	}

	// No extra readback: the screenshot comes from the kept frame.
	if len(rec.calls) != 2 {
		t.Errorf("calls = %v, want only the Present readback and swap", rec.calls)
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
	if got := img.Bounds().Size(); got.X != 4 || got.Y != 3 {
		t.Errorf("screenshot size = %v, want 4x3", got)
	}
}
