package main

import (
	"runtime"
	"strconv"

	"github.com/gobuffalo/envy"
	log "github.com/sirupsen/logrus"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/devblok/prism/core"
	"github.com/devblok/prism/gfx"
	"github.com/devblok/prism/gfx/glr"
)

func init() {
	runtime.LockOSThread()
}

var configuration = core.Configuration{
	Window: core.WindowConfiguration{
		Title:        "Prism",
		ScreenWidth:  800,
		ScreenHeight: 600,
	},
	Renderer: core.RendererConfiguration{
		ClearColor: gfx.ColorRed,
	},
	Time: core.TimeConfiguration{
		FPSSampleWindow: 60,
	},
}

// applyEnvironment folds process environment overrides into the
// static configuration.
func applyEnvironment() {
	if level, err := log.ParseLevel(envy.Get("PRISM_LOG_LEVEL", "info")); err == nil {
		log.SetLevel(level)
	}
	if width, err := strconv.Atoi(envy.Get("PRISM_WIDTH", "")); err == nil && width > 0 {
		configuration.Window.ScreenWidth = int32(width)
	}
	if height, err := strconv.Atoi(envy.Get("PRISM_HEIGHT", "")); err == nil && height > 0 {
		configuration.Window.ScreenHeight = int32(height)
	}
	configuration.Renderer.CaptureDirectory = envy.Get("PRISM_CAPTURE", "")
}

// newWindow creates the hidden GL window the scene is composited
// into. The window only becomes visible on the resume notification.
func newWindow() *sdl.Window {
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 3)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 3)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)

	window, err := sdl.CreateWindow(configuration.Window.Title,
		sdl.WINDOWPOS_UNDEFINED,
		sdl.WINDOWPOS_UNDEFINED,
		configuration.Window.ScreenWidth,
		configuration.Window.ScreenHeight,
		sdl.WINDOW_OPENGL|sdl.WINDOW_HIDDEN|sdl.WINDOW_ALLOW_HIGHDPI)
	if err != nil {
		panic(err)
	}
	return window
}

func main() {
	applyEnvironment()

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		panic(err)
	}
	defer sdl.Quit()

	window := newWindow()
	defer window.Destroy()

	glContext, err := window.GLCreateContext()
	if err != nil {
		panic(err)
	}
	defer sdl.GLDeleteContext(glContext)
	if err := window.GLMakeCurrent(glContext); err != nil {
		panic(err)
	}
	sdl.GLSetSwapInterval(1)

	wakeEvent := sdl.RegisterEvents(2)
	resumeEvent := wakeEvent + 1
	notifier := newWakeNotifier(wakeEvent)

	renderer, api, err := glr.New(notifier.Clone(), glr.Options{
		ClearColor: configuration.Renderer.ClearColor,
		CaptureDir: configuration.Renderer.CaptureDirectory,
	})
	if err != nil {
		panic(err)
	}
	if err := renderer.Initialise(); err != nil {
		panic(err)
	}

	drawableW, drawableH := window.GLGetDrawableSize()
	deviceSize := gfx.DeviceIntSize{Width: drawableW, Height: drawableH}

	windowW, _ := window.GetSize()
	pixelRatio := float32(1)
	if windowW > 0 {
		pixelRatio = float32(drawableW) / float32(windowW)
	}
	layoutSize := deviceSize.ToLayout(pixelRatio)

	pipelineID := gfx.PipelineID{Namespace: 0, ID: 0}
	epoch := gfx.Epoch(0)
	documentID := api.AddDocument(deviceSize)

	background := gfx.ColorRed
	txn := gfx.NewTransaction()
	txn.SetDisplayList(epoch, &background, layoutSize, buildDisplayList(deviceSize, pipelineID))
	txn.SetRootPipeline(pipelineID)
	txn.GenerateFrame(0, gfx.RenderReasonNone)
	api.SendTransaction(documentID, txn)

	log.WithFields(log.Fields{
		"width":      deviceSize.Width,
		"height":     deviceSize.Height,
		"pixelRatio": pixelRatio,
	}).Info("scene submitted")

	timer := core.NewFrameTimer(configuration.Time)

	// The platform resumed notification, delivered through the
	// queue like every other event.
	sdl.PushEvent(&sdl.UserEvent{Type: resumeEvent})

	running := true
	for running {
		event := sdl.WaitEvent()

		switch classifyEvent(event, resumeEvent) {
		case actionExit:
			running = false
		case actionShow:
			window.Show()
			window.Raise()
		}

		// Every iteration pumps state and re-renders, whether or
		// not the event changed anything.
		api.SendTransaction(documentID, gfx.NewTransaction())
		renderer.Update()
		if err := renderer.Render(deviceSize); err != nil {
			panic(err)
		}
		info := renderer.FlushPipelineInfo()
		window.GLSwap()
		timer.Tick()

		log.WithFields(log.Fields{
			"frame":     timer.Frames(),
			"pipelines": len(info.Epochs),
			"fps":       timer.FPS(),
		}).Debug("frame composited")
	}

	renderer.Deinit()
	log.Info("event loop exited")
}
