// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package glr

import (
	"testing"
	"time"

	glm "github.com/go-gl/mathgl/mgl32"

	"github.com/devblok/prism/gfx"
)

var testPipeline = gfx.PipelineID{Namespace: 0, ID: 0}

func buildList(t *testing.T) gfx.BuiltDisplayList {
	t.Helper()
	builder := gfx.NewDisplayListBuilder(testPipeline)
	builder.Begin()
	rect := gfx.NewLayoutRect(0, 0, 400, 300)
	if err := builder.PushRect(rect, rect, gfx.ColorRed); err != nil {
		t.Fatal(err)
	}
	return builder.End()
}

func sceneTransaction(t *testing.T, generate bool) *gfx.Transaction {
	t.Helper()
	background := gfx.ColorRed
	txn := gfx.NewTransaction()
	txn.SetDisplayList(gfx.Epoch(0), &background, gfx.LayoutSize{W: 800, H: 600}, buildList(t))
	txn.SetRootPipeline(testPipeline)
	if generate {
		txn.GenerateFrame(0, gfx.RenderReasonNone)
	}
	return txn
}

func TestStoreRejectsUnknownDocument(t *testing.T) {
	store := newSceneStore()
	if _, err := store.apply(gfx.DocumentID(7), gfx.NewTransaction()); err == nil {
		t.Error("expected an error for an unregistered document")
	}
}

func TestStoreBuildsFrameOnRequestOnly(t *testing.T) {
	store := newSceneStore()
	doc := gfx.DocumentID(1)
	store.addDocument(doc, gfx.DeviceIntSize{Width: 800, Height: 600})

	frame, err := store.apply(doc, sceneTransaction(t, false))
	if err != nil {
		t.Fatal(err)
	}
	if frame != nil {
		t.Error("frame built without a frame request")
	}

	frame, err = store.apply(doc, sceneTransaction(t, true))
	if err != nil {
		t.Fatal(err)
	}
	if frame == nil {
		t.Fatal("frame request did not build a frame")
	}
	if len(frame.items) != 1 {
		t.Errorf("expected 1 item, got %d", len(frame.items))
	}
	if !frame.hasBG || frame.background != gfx.ColorRed {
		t.Error("frame lost its background color")
	}
	if epoch, ok := frame.epochs[testPipeline]; !ok || epoch != 0 {
		t.Errorf("frame epochs wrong: %v", frame.epochs)
	}
}

func TestStoreEmptyFrameWithoutRoot(t *testing.T) {
	store := newSceneStore()
	doc := gfx.DocumentID(1)
	store.addDocument(doc, gfx.DeviceIntSize{Width: 800, Height: 600})

	txn := gfx.NewTransaction()
	txn.GenerateFrame(0, gfx.RenderReasonNone)
	frame, err := store.apply(doc, txn)
	if err != nil {
		t.Fatal(err)
	}
	if frame == nil || len(frame.items) != 0 {
		t.Error("expected an empty frame for a rootless document")
	}
}

type stubNotifier struct {
	signals chan string
}

func (n *stubNotifier) Clone() gfx.Notifier { return n }

func (n *stubNotifier) WakeUp() {
	select {
	case n.signals <- "wake":
	default:
	}
}

func (n *stubNotifier) NewFrameReady(_ gfx.DocumentID, _ bool, _ bool) {
	select {
	case n.signals <- "frame":
	default:
	}
}

func TestSceneLoopPublishesFrames(t *testing.T) {
	notifier := &stubNotifier{signals: make(chan string, 8)}
	renderer, api, err := New(notifier.Clone(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	defer renderer.Deinit()

	doc := api.AddDocument(gfx.DeviceIntSize{Width: 800, Height: 600})
	api.SendTransaction(doc, sceneTransaction(t, true))

	select {
	case signal := <-notifier.signals:
		if signal != "frame" {
			t.Errorf("expected a frame signal, got %q", signal)
		}
	case <-time.After(time.Second):
		t.Fatal("no frame signal within a second")
	}

	renderer.Update()
	if renderer.current == nil {
		t.Fatal("Update did not adopt the published frame")
	}
	if renderer.current.doc != doc {
		t.Errorf("frame for document %d, want %d", renderer.current.doc, doc)
	}
}

func TestSceneLoopIgnoresEmptyTransactions(t *testing.T) {
	notifier := &stubNotifier{signals: make(chan string, 8)}
	renderer, api, err := New(notifier.Clone(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	defer renderer.Deinit()

	doc := api.AddDocument(gfx.DeviceIntSize{Width: 800, Height: 600})
	api.SendTransaction(doc, gfx.NewTransaction())

	select {
	case signal := <-notifier.signals:
		t.Errorf("empty transaction produced a %q signal", signal)
	case <-time.After(50 * time.Millisecond):
	}

	renderer.Update()
	if renderer.current != nil {
		t.Error("empty transaction published a frame")
	}
}

func TestNewRequiresNotifier(t *testing.T) {
	if _, _, err := New(nil, Options{}); err != ErrNoNotifier {
		t.Errorf("expected ErrNoNotifier, got %v", err)
	}
}

func TestRectVertices(t *testing.T) {
	verts := rectVertices(gfx.NewLayoutRect(10, 20, 30, 40))
	if len(verts) != rectVertexCount*2 {
		t.Fatalf("expected %d floats, got %d", rectVertexCount*2, len(verts))
	}
	// Corners must span exactly the rect.
	minX, minY := verts[0], verts[1]
	maxX, maxY := verts[4], verts[5]
	if minX != 10 || minY != 20 || maxX != 40 || maxY != 60 {
		t.Errorf("vertex span (%v,%v)-(%v,%v)", minX, minY, maxX, maxY)
	}
}

func TestClipRect(t *testing.T) {
	rect := gfx.NewLayoutRect(0, 0, 100, 100)
	clip := gfx.LayoutRect{Min: glm.Vec2{50, 50}, Max: glm.Vec2{150, 150}}

	out, ok := clipRect(rect, clip)
	if !ok {
		t.Fatal("overlapping clip discarded the rect")
	}
	if out.Min.X() != 50 || out.Min.Y() != 50 || out.Max.X() != 100 || out.Max.Y() != 100 {
		t.Errorf("unexpected clipped rect %v", out)
	}

	far := gfx.LayoutRect{Min: glm.Vec2{200, 200}, Max: glm.Vec2{300, 300}}
	if _, ok := clipRect(rect, far); ok {
		t.Error("disjoint clip should discard the rect")
	}
}
