// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package capture_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/devblok/prism/utility/capture"
)

var (
	testPayload1 = []byte("PDL1 first frame payload with three rectangles in it")
	testPayload2 = []byte("PDL1 second frame payload, same scene rebuilt")
)

func TestCreateAndRead(t *testing.T) {
	builder := capture.NewBuilder(capture.Header{
		Producer: "capture-test",
		Created:  time.Now().Unix(),
		Version:  1,
	})
	if err := builder.Add("frame-000000", capture.EntryInfo{Seq: 0, Epoch: 0}, testPayload1); err != nil {
		t.Error(err)
	}
	if err := builder.Add("frame-000001", capture.EntryInfo{Seq: 1, Epoch: 0}, testPayload2); err != nil {
		t.Error(err)
	}

	buf := bytes.NewBuffer([]byte{})
	if written, err := builder.WriteTo(buf); err != nil {
		t.Error(err)
	} else {
		t.Logf("written %d", written)
	}

	ar, err := capture.Open(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if ar.Header().Producer != "capture-test" {
		t.Errorf("producer %q", ar.Header().Producer)
	}
	if len(ar.Index()) != 2 {
		t.Fatalf("expected 2 index entries, got %d", len(ar.Index()))
	}

	payload, err := ar.ReadAll("frame-000000")
	if err != nil {
		t.Error(err)
	}
	if !bytes.Equal(payload, testPayload1) {
		t.Error("first payload does not round trip")
	}

	payload, err = ar.ReadAll("frame-000001")
	if err != nil {
		t.Error(err)
	}
	if !bytes.Equal(payload, testPayload2) {
		t.Error("second payload does not round trip")
	}
}

func TestEntryMetadata(t *testing.T) {
	builder := capture.NewBuilder(capture.Header{Version: 1})
	if err := builder.Add("frame-000000", capture.EntryInfo{Seq: 42, Epoch: 7}, testPayload1); err != nil {
		t.Fatal(err)
	}
	if entries := builder.Entries(); len(entries) != 1 || entries[0] != "frame-000000" {
		t.Errorf("unexpected entries %v", entries)
	}

	buf := bytes.NewBuffer([]byte{})
	if _, err := builder.WriteTo(buf); err != nil {
		t.Fatal(err)
	}
	ar, err := capture.Open(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}

	entry := ar.Index()[0]
	if entry.Info.Seq != 42 || entry.Info.Epoch != 7 {
		t.Errorf("metadata lost: %+v", entry.Info)
	}
	if entry.Size != int64(len(testPayload1)) {
		t.Errorf("size %d, want %d", entry.Size, len(testPayload1))
	}
}

func TestOpenRejectsGarbage(t *testing.T) {
	if _, err := capture.Open(bytes.NewReader([]byte("definitely not an archive"))); err != capture.ErrFileFormat {
		t.Errorf("expected ErrFileFormat, got %v", err)
	}
}

func TestReadMissingEntry(t *testing.T) {
	builder := capture.NewBuilder(capture.Header{Version: 1})
	buf := bytes.NewBuffer([]byte{})
	if _, err := builder.WriteTo(buf); err != nil {
		t.Fatal(err)
	}
	ar, err := capture.Open(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ar.ReadAll("frame-999999"); err != capture.ErrNoEntry {
		t.Errorf("expected ErrNoEntry, got %v", err)
	}
}
