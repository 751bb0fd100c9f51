package core

import "github.com/devblok/prism/gfx"

// Configuration defines a global application configuration setting
type Configuration struct {
	Window   WindowConfiguration
	Renderer RendererConfiguration
	Time     TimeConfiguration
}

// WindowConfiguration is used to configure the application window
type WindowConfiguration struct {
	Title string

	ScreenWidth  int32
	ScreenHeight int32
}

// RendererConfiguration is used to configure the renderer
type RendererConfiguration struct {
	// ClearColor is the color the frame is cleared to when a
	// display list carries no background of its own
	ClearColor gfx.ColorF

	// CaptureDirectory, when set, makes the renderer record every
	// generated frame's display list into an archive there
	CaptureDirectory string
}

// TimeConfiguration is used to configure time services
type TimeConfiguration struct {
	// FPSSampleWindow is the number of frames the rolling FPS
	// average is computed over. Zero picks a sane default
	FPSSampleWindow int
}
