// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package capture

import (
	"bytes"
	"io"
	"io/ioutil"
	"strings"

	"github.com/pierrec/lz4"
)

// Open opens the capture archive from r. It will also check if the
// file is actually a capture archive, will return an error when the
// file is incorrect.
func Open(r io.ReaderAt) (*Archive, error) {
	magic := make([]byte, MagicLength)
	if num, err := r.ReadAt(magic, 0); err != nil {
		return nil, err
	} else if num < MagicLength || strings.Compare(string(magic), fileMagic) != 0 {
		return nil, ErrFileFormat
	}

	headerSizeBytes := make([]byte, HeaderSizeNumberLength)
	if num, err := r.ReadAt(headerSizeBytes, MagicLength); err != nil {
		return nil, err
	} else if num < HeaderSizeNumberLength {
		return nil, ErrFileFormat
	}

	headerSize, err := binaryToint64(headerSizeBytes)
	if err != nil || headerSize <= 0 {
		return nil, ErrFileFormat
	}

	headerBytes := make([]byte, headerSize)
	if num, err := r.ReadAt(headerBytes, MagicLength+HeaderSizeNumberLength); err != nil {
		return nil, err
	} else if int64(num) < headerSize {
		return nil, ErrFileFormat
	}

	var header Header
	if err := gobDecode(&header, headerBytes); err != nil {
		return nil, ErrFileFormat
	}

	return &Archive{
		reader:      r,
		header:      header,
		payloadBase: MagicLength + HeaderSizeNumberLength + headerSize,
	}, nil
}

// Archive provides concurrent reads of a capture file. Every frame
// payload can be decompressed independently.
type Archive struct {
	reader      io.ReaderAt
	header      Header
	payloadBase int64
}

// Header returns the decoded archive header.
func (a *Archive) Header() Header {
	return a.header
}

// Index returns the frame index in archive order.
func (a *Archive) Index() []IndexEntry {
	return a.header.Index
}

// ReadAll returns the decompressed payload of the frame with the
// given name.
func (a *Archive) ReadAll(name string) ([]byte, error) {
	for _, entry := range a.header.Index {
		if entry.Name == name {
			return a.readEntry(entry)
		}
	}
	return nil, ErrNoEntry
}

func (a *Archive) readEntry(entry IndexEntry) ([]byte, error) {
	compressed := make([]byte, entry.CompressedSize)
	if _, err := a.reader.ReadAt(compressed, a.payloadBase+entry.Offset); err != nil {
		return nil, err
	}
	payload, err := ioutil.ReadAll(lz4.NewReader(bytes.NewReader(compressed)))
	if err != nil {
		return nil, ErrFileFormat
	}
	return payload, nil
}
