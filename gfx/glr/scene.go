// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package glr

import (
	"fmt"

	"github.com/devblok/prism/gfx"
)

// pipelineScene is the retained state of one pipeline: its current
// display list payload and the metadata it composites against.
type pipelineScene struct {
	epoch      gfx.Epoch
	background *gfx.ColorF
	layout     gfx.LayoutSize
	payload    []byte
	itemCount  int
}

// documentScene is the retained state of one document.
type documentScene struct {
	size      gfx.DeviceIntSize
	root      gfx.PipelineID
	hasRoot   bool
	pipelines map[gfx.PipelineID]*pipelineScene
}

// builtFrame is a fully decoded frame ready for compositing. It is
// produced on the scene goroutine and handed to the render thread
// whole, never mutated afterwards.
type builtFrame struct {
	doc        gfx.DocumentID
	seq        uint64
	background gfx.ColorF
	hasBG      bool
	layout     gfx.LayoutSize
	items      []gfx.RectItem
	epochs     map[gfx.PipelineID]gfx.Epoch
}

// sceneStore holds all retained scene state. It lives on the scene
// goroutine and is never touched from anywhere else.
type sceneStore struct {
	documents map[gfx.DocumentID]*documentScene
}

func newSceneStore() *sceneStore {
	return &sceneStore{
		documents: make(map[gfx.DocumentID]*documentScene),
	}
}

func (s *sceneStore) addDocument(doc gfx.DocumentID, size gfx.DeviceIntSize) {
	s.documents[doc] = &documentScene{
		size:      size,
		pipelines: make(map[gfx.PipelineID]*pipelineScene),
	}
}

// apply folds a transaction into the store. When the transaction
// requests a frame, the returned frame is non-nil.
func (s *sceneStore) apply(doc gfx.DocumentID, txn *gfx.Transaction) (*builtFrame, error) {
	state, ok := s.documents[doc]
	if !ok {
		return nil, fmt.Errorf("glr: transaction for unknown document %d", doc)
	}

	if dl := txn.DisplayList; dl != nil {
		state.pipelines[dl.List.Pipeline] = &pipelineScene{
			epoch:      dl.Epoch,
			background: dl.Background,
			layout:     dl.LayoutSize,
			payload:    dl.List.Payload,
			itemCount:  dl.List.ItemCount,
		}
	}
	if txn.RootPipeline != nil {
		state.root = *txn.RootPipeline
		state.hasRoot = true
	}
	if txn.Frame == nil {
		return nil, nil
	}
	return s.buildFrame(doc, state, txn.Frame.Seq)
}

// buildFrame decodes the root pipeline's display list into an ordered
// rect batch. A document without a root pipeline, or whose root has
// no display list yet, builds an empty frame.
func (s *sceneStore) buildFrame(doc gfx.DocumentID, state *documentScene, seq uint64) (*builtFrame, error) {
	frame := &builtFrame{
		doc:    doc,
		seq:    seq,
		epochs: make(map[gfx.PipelineID]gfx.Epoch),
	}
	if !state.hasRoot {
		return frame, nil
	}
	scene, ok := state.pipelines[state.root]
	if !ok {
		return frame, nil
	}

	pipeline, items, err := gfx.DecodeDisplayList(scene.payload)
	if err != nil {
		return nil, err
	}
	if pipeline != state.root {
		return nil, fmt.Errorf("glr: display list pipeline %v stored under %v", pipeline, state.root)
	}

	frame.layout = scene.layout
	frame.items = items
	frame.epochs[state.root] = scene.epoch
	if scene.background != nil {
		frame.background = *scene.background
		frame.hasBG = true
	}
	return frame, nil
}
