// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package glr implements the OpenGL display list renderer.
//
// A Renderer owns two sides. The scene side runs on an internal
// goroutine, consumes transactions from the RenderAPI channel, keeps
// retained per-document scene state and builds frames, announcing
// each one through the embedder's Notifier. The composite side
// (Initialise, Update, Render, Deinit) must stay on the thread that
// owns the GL context. The published frame slot is the only state
// shared between the two.
package glr

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/go-gl/gl/v3.3-core/gl"
	glm "github.com/go-gl/mathgl/mgl32"
	log "github.com/sirupsen/logrus"

	"github.com/devblok/prism/core"
	"github.com/devblok/prism/gfx"
	"github.com/devblok/prism/utility/capture"
)

var _ core.Renderer = (*Renderer)(nil)

const sceneQueueDepth = 32

// package errors
var (
	ErrNoNotifier = errors.New("glr: renderer requires a notifier")
)

// Options configures a Renderer.
type Options struct {
	// ClearColor is used when the composited display list carries
	// no background color of its own.
	ClearColor gfx.ColorF

	// CaptureDir, when non-empty, records every generated frame's
	// display list into an archive written there on Deinit.
	CaptureDir string
}

// New creates a Renderer with its scene goroutine running and returns
// the API handle used to feed it. GL state is not touched until
// Initialise.
func New(notifier gfx.Notifier, opts Options) (*Renderer, *gfx.RenderAPI, error) {
	if notifier == nil {
		return nil, nil, ErrNoNotifier
	}

	scene := make(chan gfx.SceneMsg, sceneQueueDepth)
	r := &Renderer{
		opts:     opts,
		notifier: notifier,
		scene:    scene,
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	if opts.CaptureDir != "" {
		r.capture = capture.NewBuilder(capture.Header{
			Producer: "prism-glr",
			Created:  time.Now().Unix(),
			Version:  1,
		})
	}

	go r.sceneLoop()
	return r, gfx.NewRenderAPI(scene), nil
}

// Renderer composites built frames with OpenGL.
type Renderer struct {
	opts     Options
	notifier gfx.Notifier

	scene chan gfx.SceneMsg
	quit  chan struct{}
	done  chan struct{}

	// store and capture belong to the scene goroutine.
	store      *sceneStore
	capture    *capture.Builder
	captureSeq uint64

	// pending is the frame slot shared with the scene goroutine.
	mu      sync.Mutex
	pending *builtFrame

	// Composite-side state, event thread only.
	current    *builtFrame
	sinceFlush map[gfx.PipelineID]gfx.Epoch

	program   uint32
	vao       uint32
	vbo       uint32
	transform int32
	color     int32
}

// sceneLoop is the internal worker. It owns the scene store outright
// and is the only caller of the notifier.
func (r *Renderer) sceneLoop() {
	defer close(r.done)
	r.store = newSceneStore()

	for {
		select {
		case <-r.quit:
			return
		case msg := <-r.scene:
			r.handleSceneMsg(msg)
		}
	}
}

func (r *Renderer) handleSceneMsg(msg gfx.SceneMsg) {
	if msg.NewDocument != nil {
		r.store.addDocument(msg.Document, *msg.NewDocument)
		log.WithFields(log.Fields{
			"document": msg.Document,
			"width":    msg.NewDocument.Width,
			"height":   msg.NewDocument.Height,
		}).Debug("glr: document added")
		return
	}
	if msg.Txn == nil {
		return
	}

	frame, err := r.store.apply(msg.Document, msg.Txn)
	if err != nil {
		log.WithError(err).Error("glr: transaction rejected")
		return
	}
	if frame == nil {
		// Scene state changed without a frame request, the next
		// generated frame picks it up.
		if !msg.Txn.IsEmpty() {
			r.notifier.WakeUp()
		}
		return
	}

	r.recordCapture(msg.Document, msg.Txn)

	r.mu.Lock()
	r.pending = frame
	r.mu.Unlock()
	r.notifier.NewFrameReady(msg.Document, false, true)
}

// recordCapture archives the display list of a generated frame.
func (r *Renderer) recordCapture(doc gfx.DocumentID, txn *gfx.Transaction) {
	if r.capture == nil || txn.DisplayList == nil {
		return
	}
	name := fmt.Sprintf("frame-%06d", r.captureSeq)
	r.captureSeq++
	err := r.capture.Add(name, capture.EntryInfo{
		Seq:   txn.Frame.Seq,
		Epoch: uint32(txn.DisplayList.Epoch),
	}, txn.DisplayList.List.Payload)
	if err != nil {
		log.WithError(err).Warn("glr: frame capture failed")
	}
}

// Initialise implements interface. Loads the GL function table and
// builds the rect pipeline, so it must run with a current context.
func (r *Renderer) Initialise() error {
	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl.Init(): %s", err.Error())
	}
	version := gl.GoStr(gl.GetString(gl.VERSION))
	log.WithField("version", version).Info("glr: OpenGL initialised")

	program, err := newRectProgram()
	if err != nil {
		return err
	}
	r.program = program
	r.transform = gl.GetUniformLocation(program, gl.Str("uTransform\x00"))
	r.color = gl.GetUniformLocation(program, gl.Str("uColor\x00"))

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)
	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, rectVertexCount*2*4, nil, gl.DYNAMIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, gl.PtrOffset(0))
	gl.BindVertexArray(0)

	return nil
}

// Update implements interface
func (r *Renderer) Update() {
	r.mu.Lock()
	frame := r.pending
	r.pending = nil
	r.mu.Unlock()
	if frame != nil {
		r.current = frame
	}
}

// Render implements interface
func (r *Renderer) Render(size gfx.DeviceIntSize) error {
	gl.Viewport(0, 0, size.Width, size.Height)

	clear := r.opts.ClearColor
	frame := r.current
	if frame != nil && frame.hasBG {
		clear = frame.background
	}
	gl.ClearColor(clear.R, clear.G, clear.B, clear.A)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	if frame != nil && len(frame.items) > 0 {
		layout := frame.layout
		if layout.W == 0 || layout.H == 0 {
			layout = gfx.LayoutSize{W: float32(size.Width), H: float32(size.Height)}
		}
		ortho := glm.Ortho2D(0, layout.W, layout.H, 0)

		gl.UseProgram(r.program)
		gl.UniformMatrix4fv(r.transform, 1, false, &ortho[0])
		gl.BindVertexArray(r.vao)
		gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)

		for _, item := range frame.items {
			draw, ok := clipRect(item.Rect, item.Clip)
			if !ok {
				continue
			}
			verts := rectVertices(draw)
			gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(verts)*4, gl.Ptr(verts))
			gl.Uniform4f(r.color, item.Color.R, item.Color.G, item.Color.B, item.Color.A)
			gl.DrawArrays(gl.TRIANGLES, 0, rectVertexCount)
		}
		gl.BindVertexArray(0)
	}

	if glErr := gl.GetError(); glErr != gl.NO_ERROR {
		return fmt.Errorf("glr: render failed with GL error 0x%04x", glErr)
	}

	if frame != nil {
		if r.sinceFlush == nil {
			r.sinceFlush = make(map[gfx.PipelineID]gfx.Epoch)
		}
		for pipeline, epoch := range frame.epochs {
			r.sinceFlush[pipeline] = epoch
		}
	}
	return nil
}

// FlushPipelineInfo implements interface
func (r *Renderer) FlushPipelineInfo() gfx.PipelineInfo {
	info := gfx.PipelineInfo{Epochs: r.sinceFlush}
	if info.Epochs == nil {
		info.Epochs = make(map[gfx.PipelineID]gfx.Epoch)
	}
	r.sinceFlush = nil
	return info
}

// Deinit implements interface
func (r *Renderer) Deinit() {
	close(r.quit)
	<-r.done

	if r.capture != nil {
		if err := r.writeCapture(); err != nil {
			log.WithError(err).Error("glr: could not write frame capture")
		}
	}

	if r.program != 0 {
		gl.DeleteProgram(r.program)
		gl.DeleteBuffers(1, &r.vbo)
		gl.DeleteVertexArrays(1, &r.vao)
		r.program = 0
	}
}

// writeCapture flushes the capture archive to disk. Runs after the
// scene goroutine has stopped, so the builder is safe to read.
func (r *Renderer) writeCapture() error {
	if len(r.capture.Entries()) == 0 {
		return nil
	}
	if err := os.MkdirAll(r.opts.CaptureDir, 0755); err != nil {
		return err
	}
	name := fmt.Sprintf("capture-%d.pfc", time.Now().Unix())
	f, err := os.Create(filepath.Join(r.opts.CaptureDir, name))
	if err != nil {
		return err
	}
	defer f.Close()
	written, err := r.capture.WriteTo(f)
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"file":  f.Name(),
		"bytes": written,
	}).Info("glr: frame capture written")
	return nil
}

const rectVertexCount = 6

// rectVertices expands a rectangle into two CCW triangles.
func rectVertices(r gfx.LayoutRect) []float32 {
	x0, y0 := r.Min.X(), r.Min.Y()
	x1, y1 := r.Max.X(), r.Max.Y()
	return []float32{
		x0, y0,
		x0, y1,
		x1, y1,

		x0, y0,
		x1, y1,
		x1, y0,
	}
}

// clipRect intersects a rectangle with its clip. The second return
// is false when nothing remains to draw.
func clipRect(r, clip gfx.LayoutRect) (gfx.LayoutRect, bool) {
	out := gfx.LayoutRect{
		Min: glm.Vec2{max32(r.Min.X(), clip.Min.X()), max32(r.Min.Y(), clip.Min.Y())},
		Max: glm.Vec2{min32(r.Max.X(), clip.Max.X()), min32(r.Max.Y(), clip.Max.Y())},
	}
	if out.Empty() {
		return gfx.LayoutRect{}, false
	}
	return out, true
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}
