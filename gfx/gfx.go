// Package gfx defines the public surface of the rendering machinery:
// the value types that describe scenes, the display list format, the
// transaction batches that mutate renderer state, and the API handle
// used to talk to a running backend.
//
// Concrete backends live in subpackages and consume the types defined
// here; they never expose their own scene types.
package gfx

// Notifier is the callback object a backend invokes when a new frame
// is ready or a redraw is otherwise needed. Backends call it from
// their internal scene-builder goroutine, so implementations must be
// non-blocking and safe for concurrent use. Delivery is at-least-once,
// duplicate or coalesced wakes are acceptable.
type Notifier interface {

	// Clone returns a copy that can be handed to a backend while
	// the caller keeps or drops its own reference independently.
	Clone() Notifier

	// WakeUp requests at least one more iteration of the event
	// loop. It must never block and never fail loudly.
	WakeUp()

	// NewFrameReady signals that a frame for the given document has
	// been built and is ready to composite.
	NewFrameReady(doc DocumentID, scrolled bool, compositeNeeded bool)
}

// PipelineInfo is the per-frame diagnostic a renderer hands back after
// compositing: which pipelines made it to the screen and at which
// display list version.
type PipelineInfo struct {
	Epochs map[PipelineID]Epoch
}
