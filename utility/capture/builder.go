// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package capture

import (
	"bytes"
	"io"
	"sync"

	"github.com/pierrec/lz4"
)

// NewBuilder creates a new Builder. Do not fill the Index in the
// header, it will be overwritten anyway.
func NewBuilder(header Header) *Builder {
	return &Builder{header: header}
}

type pendingEntry struct {
	name       string
	info       EntryInfo
	size       int64
	compressed []byte
}

// Builder accumulates frame payloads and writes them out as a capture
// archive. Payloads are compressed as they are added, so Add carries
// the compression cost and WriteTo is mostly io. Add is safe to use
// concurrently in different goroutines.
type Builder struct {
	header Header

	mutex   sync.Mutex
	entries []pendingEntry
}

// Add compresses and appends one frame payload under the given name.
// Will block until lz4 finishes compression.
func (b *Builder) Add(name string, info EntryInfo, payload []byte) error {
	compressed := bytes.NewBuffer([]byte{})
	writer := lz4.NewWriter(compressed)
	if _, err := io.Copy(writer, bytes.NewReader(payload)); err != nil {
		return err
	}
	if err := writer.Close(); err != nil {
		return err
	}

	b.mutex.Lock()
	defer b.mutex.Unlock()
	b.entries = append(b.entries, pendingEntry{
		name:       name,
		info:       info,
		size:       int64(len(payload)),
		compressed: compressed.Bytes(),
	})
	return nil
}

// Entries returns the names of the payloads added so far, in order.
func (b *Builder) Entries() []string {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	names := make([]string, len(b.entries))
	for i, e := range b.entries {
		names[i] = e.name
	}
	return names
}

// WriteTo bundles and writes all of the payloads added to the Builder
// into a capture archive that is ready to use.
func (b *Builder) WriteTo(w io.Writer) (int64, error) {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	header := b.header
	header.Index = nil
	var offset int64
	for _, e := range b.entries {
		header.Index = append(header.Index, IndexEntry{
			Name:           e.name,
			Info:           e.info,
			Offset:         offset,
			Size:           e.size,
			CompressedSize: int64(len(e.compressed)),
		})
		offset += int64(len(e.compressed))
	}

	headerBytes, err := gobEncode(&header)
	if err != nil {
		return 0, err
	}

	var written int64
	count, err := w.Write([]byte(fileMagic))
	written += int64(count)
	if err != nil {
		return written, err
	}
	count, err = w.Write(int64ToBinary(int64(len(headerBytes))))
	written += int64(count)
	if err != nil {
		return written, err
	}
	count, err = w.Write(headerBytes)
	written += int64(count)
	if err != nil {
		return written, err
	}
	for _, e := range b.entries {
		count, err = w.Write(e.compressed)
		written += int64(count)
		if err != nil {
			return written, err
		}
	}
	return written, nil
}
