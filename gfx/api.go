package gfx

import (
	"sync/atomic"
)

// SceneMsg is one message on the channel between a RenderAPI and a
// backend's scene-builder goroutine. Exactly one of NewDocument or
// Txn is set.
type SceneMsg struct {
	Document DocumentID

	// NewDocument carries the initial size when the message
	// registers a document.
	NewDocument *DeviceIntSize

	// Txn carries a transaction batch for an existing document.
	Txn *Transaction
}

// RenderAPI is the handle an embedder uses to register documents and
// submit transactions to a backend. Backends create one around their
// scene channel and hand it out next to the renderer.
//
// The handle is safe to use from the event thread while the backend
// goroutine consumes; sends only block when the backend has stopped
// draining, which for a live renderer means never.
type RenderAPI struct {
	scene   chan<- SceneMsg
	nextDoc uint32
}

// NewRenderAPI wraps a backend's scene channel.
func NewRenderAPI(scene chan<- SceneMsg) *RenderAPI {
	return &RenderAPI{scene: scene}
}

// AddDocument registers a new logical drawable surface of the given
// device size and returns its handle.
func (api *RenderAPI) AddDocument(size DeviceIntSize) DocumentID {
	doc := DocumentID(atomic.AddUint32(&api.nextDoc, 1))
	s := size
	api.scene <- SceneMsg{Document: doc, NewDocument: &s}
	return doc
}

// SendTransaction submits a transaction batch for the document. The
// transaction must not be reused afterwards.
func (api *RenderAPI) SendTransaction(doc DocumentID, txn *Transaction) {
	api.scene <- SceneMsg{Document: doc, Txn: txn}
}
