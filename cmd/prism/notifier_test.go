package main

import (
	"errors"
	"testing"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/devblok/prism/gfx"
)

func countingNotifier(eventType uint32) (*wakeNotifier, *[]uint32) {
	posted := []uint32{}
	n := newWakeNotifier(eventType)
	n.push = func(event sdl.Event) (bool, error) {
		posted = append(posted, event.(*sdl.UserEvent).Type)
		return true, nil
	}
	return n, &posted
}

func TestWakeUpPostsOneEvent(t *testing.T) {
	n, posted := countingNotifier(42)
	n.WakeUp()
	if len(*posted) != 1 {
		t.Fatalf("expected 1 posted event, got %d", len(*posted))
	}
	if (*posted)[0] != 42 {
		t.Errorf("posted event type %d", (*posted)[0])
	}
}

func TestNewFrameReadyForwardsToWakeUp(t *testing.T) {
	n, posted := countingNotifier(42)
	n.NewFrameReady(gfx.DocumentID(7), true, false)
	n.NewFrameReady(gfx.DocumentID(7), false, true)
	if len(*posted) != 2 {
		t.Fatalf("expected one wake per notification, got %d", len(*posted))
	}
	for i, eventType := range *posted {
		if eventType != 42 {
			t.Errorf("wake %d: event type %d", i, eventType)
		}
	}
}

func TestCloneSharesEventType(t *testing.T) {
	n, posted := countingNotifier(42)
	clone := n.Clone()
	clone.WakeUp()
	if len(*posted) != 1 || (*posted)[0] != 42 {
		t.Errorf("clone posted %v", *posted)
	}
}

func TestFailedPushIsSwallowed(t *testing.T) {
	n := newWakeNotifier(42)
	n.push = func(sdl.Event) (bool, error) {
		return false, errors.New("queue is gone")
	}
	// Must not panic.
	n.WakeUp()
	n.NewFrameReady(gfx.DocumentID(1), false, true)
}
