package gfx

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
)

// package errors
var (
	ErrBadDisplayList = errors.New("corrupted or not a display list payload")
	ErrBuilderState   = errors.New("display list builder used before Begin or after End")
)

// Display list payload layout constants.
const (
	displayListMagic = "PDL1"

	itemTagRect uint8 = 1
)

// RectItem is one filled rectangle of a decoded display list: the
// rectangle itself, the clip it is bounded by, and its flat color.
// Items composite in list order, later items over earlier ones.
type RectItem struct {
	Rect  LayoutRect
	Clip  LayoutRect
	Color ColorF
}

// BuiltDisplayList is the finalized, serialized form of a display
// list. The payload is a self-contained binary stream that the scene
// builder decodes on its own goroutine; the struct itself carries no
// references back into the builder, so it is safe to send across.
type BuiltDisplayList struct {
	Pipeline  PipelineID
	Payload   []byte
	ItemCount int
}

// DisplayListBuilder accumulates drawing items for a single pipeline
// and serializes them into a BuiltDisplayList. The zero value is not
// usable; create one with NewDisplayListBuilder and bracket item
// pushes with Begin and End.
//
// Building is deterministic: identical sequences of pushes produce
// byte-identical payloads.
type DisplayListBuilder struct {
	pipeline PipelineID
	buf      *bytes.Buffer
	count    int
	open     bool
}

// NewDisplayListBuilder creates a builder for the given pipeline.
func NewDisplayListBuilder(pipeline PipelineID) *DisplayListBuilder {
	return &DisplayListBuilder{
		pipeline: pipeline,
		buf:      bytes.NewBuffer([]byte{}),
	}
}

// Begin starts a new display list, discarding anything accumulated
// since the previous End.
func (b *DisplayListBuilder) Begin() {
	b.buf.Reset()
	b.count = 0
	b.open = true
	b.buf.WriteString(displayListMagic)
	writeBinary(b.buf, b.pipeline.Namespace)
	writeBinary(b.buf, b.pipeline.ID)
}

// PushRect appends a filled rectangle bound to the root space of the
// builder's pipeline. Degenerate rectangles are accepted and encode
// like any other; the backend draws nothing for them.
func (b *DisplayListBuilder) PushRect(rect, clip LayoutRect, color ColorF) error {
	if !b.open {
		return ErrBuilderState
	}
	b.buf.WriteByte(itemTagRect)
	writeBinary(b.buf, rect.Min)
	writeBinary(b.buf, rect.Max)
	writeBinary(b.buf, clip.Min)
	writeBinary(b.buf, clip.Max)
	writeBinary(b.buf, color)
	b.count++
	return nil
}

// End finalizes the display list and returns the built payload. The
// builder can be reused with another Begin.
func (b *DisplayListBuilder) End() BuiltDisplayList {
	b.open = false
	payload := make([]byte, b.buf.Len())
	copy(payload, b.buf.Bytes())
	return BuiltDisplayList{
		Pipeline:  b.pipeline,
		Payload:   payload,
		ItemCount: b.count,
	}
}

// DecodeDisplayList parses a display list payload back into its
// ordered items. It returns ErrBadDisplayList when the payload does
// not start with the display list magic or is truncated mid-item.
func DecodeDisplayList(payload []byte) (PipelineID, []RectItem, error) {
	r := bytes.NewReader(payload)

	magic := make([]byte, len(displayListMagic))
	if _, err := io.ReadFull(r, magic); err != nil || string(magic) != displayListMagic {
		return PipelineID{}, nil, ErrBadDisplayList
	}

	var pipeline PipelineID
	if err := readBinary(r, &pipeline.Namespace); err != nil {
		return PipelineID{}, nil, ErrBadDisplayList
	}
	if err := readBinary(r, &pipeline.ID); err != nil {
		return PipelineID{}, nil, ErrBadDisplayList
	}

	var items []RectItem
	for r.Len() > 0 {
		tag, err := r.ReadByte()
		if err != nil {
			return PipelineID{}, nil, ErrBadDisplayList
		}
		if tag != itemTagRect {
			return PipelineID{}, nil, ErrBadDisplayList
		}
		var item RectItem
		if err := readBinary(r, &item.Rect.Min); err != nil {
			return PipelineID{}, nil, ErrBadDisplayList
		}
		if err := readBinary(r, &item.Rect.Max); err != nil {
			return PipelineID{}, nil, ErrBadDisplayList
		}
		if err := readBinary(r, &item.Clip.Min); err != nil {
			return PipelineID{}, nil, ErrBadDisplayList
		}
		if err := readBinary(r, &item.Clip.Max); err != nil {
			return PipelineID{}, nil, ErrBadDisplayList
		}
		if err := readBinary(r, &item.Color); err != nil {
			return PipelineID{}, nil, ErrBadDisplayList
		}
		items = append(items, item)
	}
	return pipeline, items, nil
}

func writeBinary(buf *bytes.Buffer, v interface{}) {
	if err := binary.Write(buf, binary.LittleEndian, v); err != nil {
		panic(err) // writes to a bytes.Buffer cannot fail
	}
}

func readBinary(r io.Reader, v interface{}) error {
	return binary.Read(r, binary.LittleEndian, v)
}
