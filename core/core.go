package core

import (
	"github.com/devblok/prism/gfx"
)

// Renderer describes the rendering machinery.
// It's created with its scene thread already running, but GPU-side
// state is only set up by Initialise, which must be called on the
// thread that owns the current GL context.
type Renderer interface {
	// Initialise sets up the GPU function table and the configured
	// rendering pipeline
	Initialise() error

	// Update adopts the latest frame built by the scene thread.
	// Non-blocking, a no-op when no new frame has been published
	Update()

	// Render composites the current frame into the given device
	// size. Safe to call every iteration whether or not Update
	// adopted anything new
	Render(size gfx.DeviceIntSize) error

	// FlushPipelineInfo returns the diagnostic info of frames
	// composited since the previous flush and clears it
	FlushPipelineInfo() gfx.PipelineInfo

	// Deinit stops the scene thread and destroys internal members
	Deinit()
}
