package gfx

import (
	glm "github.com/go-gl/mathgl/mgl32"
)

// DeviceIntSize is a size in physical device pixels.
type DeviceIntSize struct {
	Width  int32
	Height int32
}

// ToLayout converts the device size into layout units given a device
// pixel ratio. A ratio of zero is treated as one.
func (s DeviceIntSize) ToLayout(pixelRatio float32) LayoutSize {
	if pixelRatio == 0 {
		pixelRatio = 1
	}
	return LayoutSize{
		W: float32(s.Width) / pixelRatio,
		H: float32(s.Height) / pixelRatio,
	}
}

// LayoutSize is a size in layout units.
type LayoutSize struct {
	W float32
	H float32
}

// LayoutRect is an axis-aligned rectangle in layout units,
// described by its minimum and maximum corners.
type LayoutRect struct {
	Min glm.Vec2
	Max glm.Vec2
}

// NewLayoutRect builds a rectangle from an origin and a size.
func NewLayoutRect(x, y, w, h float32) LayoutRect {
	return LayoutRect{
		Min: glm.Vec2{x, y},
		Max: glm.Vec2{x + w, y + h},
	}
}

// Size returns the width and height of the rectangle.
func (r LayoutRect) Size() (float32, float32) {
	return r.Max.X() - r.Min.X(), r.Max.Y() - r.Min.Y()
}

// Empty reports whether the rectangle encloses no area.
func (r LayoutRect) Empty() bool {
	return r.Max.X() <= r.Min.X() || r.Max.Y() <= r.Min.Y()
}

// ColorF is a straight-alpha color with float components in [0,1].
type ColorF struct {
	R, G, B, A float32
}

// Named colors used by the demo scenes.
var (
	ColorRed   = ColorF{1, 0, 0, 1}
	ColorGreen = ColorF{0, 1, 0, 1}
	ColorBlue  = ColorF{0, 0, 1, 1}
)

// PipelineID names a scene namespace within a document. The pair is
// chosen by the embedder and never by the renderer.
type PipelineID struct {
	Namespace uint32
	ID        uint32
}

// Epoch is the version counter of a pipeline's display list. A frame
// composites exactly one epoch per pipeline.
type Epoch uint32

// DocumentID is an opaque handle for a renderer-managed logical
// drawable surface. Handles are issued by RenderAPI.AddDocument and
// stay valid for the lifetime of the backend.
type DocumentID uint32

// RenderReasons is a bitset describing why a frame was requested.
// Purely diagnostic.
type RenderReasons uint32

// Known frame request reasons.
const (
	RenderReasonNone    RenderReasons = 0
	RenderReasonScene   RenderReasons = 1
	RenderReasonTesting RenderReasons = 2
)
