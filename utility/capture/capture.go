// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package capture is an api for an lz4 backed frame capture format.
// A capture archive records the display list payload of every frame a
// renderer generated during a run, so a scene can be inspected or
// replayed offline. Each payload is individually compressed and the
// gob encoded header indexes them all, so any frame can be read back
// without touching the rest of the archive.
package capture

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"errors"
)

// package errors
var (
	ErrFileFormat = errors.New("corrupted or not a capture archive")
	ErrNoEntry    = errors.New("no such entry in the capture archive")
)

// Sizes relevant to the header of the file.
const (
	MagicLength            = 4
	HeaderSizeNumberLength = binary.MaxVarintLen64
)

const fileMagic = "PFC\x00"

// EntryInfo is the frame metadata recorded next to a payload.
type EntryInfo struct {
	// Seq is the frame request sequence the payload was built for.
	Seq uint64

	// Epoch is the display list version composited into the frame.
	Epoch uint32
}

// IndexEntry is info for one frame in the archive index.
type IndexEntry struct {
	Name           string
	Info           EntryInfo
	Offset         int64
	Size           int64
	CompressedSize int64
}

// Header is the file header for capture archives.
type Header struct {
	Producer string
	Created  int64
	Version  int64
	Index    []IndexEntry
}

func int64ToBinary(num int64) []byte {
	numBytes := make([]byte, binary.MaxVarintLen64)
	binary.PutVarint(numBytes, num)
	return numBytes
}

func binaryToint64(bts []byte) (int64, error) {
	return binary.ReadVarint(bytes.NewReader(bts))
}

func gobEncode(v interface{}) ([]byte, error) {
	buf := bytes.NewBuffer([]byte{})
	if err := gob.NewEncoder(buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func gobDecode(v interface{}, data []byte) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(v)
}
