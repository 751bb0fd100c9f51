package main

import (
	glm "github.com/go-gl/mathgl/mgl32"

	"github.com/devblok/prism/gfx"
)

// buildDisplayList constructs the static demo scene: three
// overlapping rectangles at fixed fractions of the device size, red
// then green then blue, so later ones composite over earlier ones.
// Pure function of its inputs; a zero size yields three degenerate
// rectangles.
func buildDisplayList(size gfx.DeviceIntSize, pipeline gfx.PipelineID) gfx.BuiltDisplayList {
	width := float32(size.Width)
	height := float32(size.Height)

	builder := gfx.NewDisplayListBuilder(pipeline)
	builder.Begin()

	bounds := gfx.LayoutRect{
		Min: glm.Vec2{0, 0},
		Max: glm.Vec2{width * 0.5, height * 0.5},
	}
	builder.PushRect(bounds, bounds, gfx.ColorRed)

	bounds = gfx.LayoutRect{
		Min: glm.Vec2{width * 0.25, height * 0.25},
		Max: glm.Vec2{width * 0.75, height * 0.75},
	}
	builder.PushRect(bounds, bounds, gfx.ColorGreen)

	bounds = gfx.LayoutRect{
		Min: glm.Vec2{width * 0.5, height * 0.5},
		Max: glm.Vec2{width, height},
	}
	builder.PushRect(bounds, bounds, gfx.ColorBlue)

	return builder.End()
}
