package gfx_test

import (
	"testing"

	"github.com/devblok/prism/gfx"
)

func TestDeviceSizeToLayout(t *testing.T) {
	size := gfx.DeviceIntSize{Width: 1600, Height: 1200}

	layout := size.ToLayout(2)
	if layout.W != 800 || layout.H != 600 {
		t.Errorf("ratio 2: got %vx%v", layout.W, layout.H)
	}

	// A zero ratio behaves like an unscaled display.
	layout = size.ToLayout(0)
	if layout.W != 1600 || layout.H != 1200 {
		t.Errorf("ratio 0: got %vx%v", layout.W, layout.H)
	}
}

func TestLayoutRect(t *testing.T) {
	rect := gfx.NewLayoutRect(10, 20, 30, 40)
	w, h := rect.Size()
	if w != 30 || h != 40 {
		t.Errorf("size %vx%v", w, h)
	}
	if rect.Empty() {
		t.Error("rect with area reported empty")
	}
	if !gfx.NewLayoutRect(5, 5, 0, 10).Empty() {
		t.Error("zero width rect should be empty")
	}
}
