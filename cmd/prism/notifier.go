package main

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/devblok/prism/gfx"
)

// wakeNotifier forwards renderer notifications into the SDL event
// queue as user events, interrupting the loop's blocking wait. It is
// the only object the renderer's scene goroutine shares with the
// event thread, and it carries no mutable state of its own.
type wakeNotifier struct {
	eventType uint32
	push      func(sdl.Event) (bool, error)
}

func newWakeNotifier(eventType uint32) *wakeNotifier {
	return &wakeNotifier{
		eventType: eventType,
		push:      sdl.PushEvent,
	}
}

// Clone implements gfx.Notifier
func (n *wakeNotifier) Clone() gfx.Notifier {
	return &wakeNotifier{
		eventType: n.eventType,
		push:      n.push,
	}
}

// WakeUp implements gfx.Notifier. A failed push only means the event
// loop is already gone, so the result is dropped.
func (n *wakeNotifier) WakeUp() {
	n.push(&sdl.UserEvent{Type: n.eventType})
}

// NewFrameReady implements gfx.Notifier
func (n *wakeNotifier) NewFrameReady(_ gfx.DocumentID, _ bool, _ bool) {
	n.WakeUp()
}
