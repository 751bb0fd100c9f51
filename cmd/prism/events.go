package main

import (
	"github.com/veandco/go-sdl2/sdl"
)

// loopAction is what the driver loop does about one platform event.
type loopAction int

const (
	// actionNone leaves window state alone. The iteration still
	// does its render work.
	actionNone loopAction = iota

	// actionExit terminates the loop after the current iteration.
	actionExit

	// actionShow reveals and focuses the window.
	actionShow
)

// classifyEvent maps a platform event to a loop action. Renderer wake
// events deliberately fall through to actionNone, their only job is
// to end the blocking wait.
func classifyEvent(event sdl.Event, resumeEvent uint32) loopAction {
	switch et := event.(type) {
	case *sdl.QuitEvent:
		return actionExit
	case *sdl.KeyboardEvent:
		if et.Type == sdl.KEYDOWN && et.Keysym.Sym == sdl.K_ESCAPE {
			return actionExit
		}
	case *sdl.WindowEvent:
		if et.Event == sdl.WINDOWEVENT_RESTORED {
			return actionShow
		}
	case *sdl.UserEvent:
		if et.Type == resumeEvent {
			return actionShow
		}
	}
	return actionNone
}
