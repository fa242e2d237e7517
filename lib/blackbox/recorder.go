// Copyright 2026 The Mavscript Authors
// SPDX-License-Identifier: Apache-2.0

// Package blackbox persists flight records: a zstd-compressed CBOR
// stream holding one header followed by one record per mission event.
// The recorder observes a mission without feeding anything back; a
// recording failure stops the recording, never the flight.
package blackbox

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/mavscript/mavscript/lib/codec"
	"github.com/mavscript/mavscript/lib/flight"
)

// Recorder writes mission events to a flight record stream.
type Recorder struct {
	mu   sync.Mutex
	file *os.File // non-nil only for Create-backed recorders
	zw   *zstd.Encoder
	enc  *codec.Encoder
	log  *slog.Logger
	dead bool
}

var _ flight.Observer = (*Recorder)(nil)

// New starts a flight record on w and writes its header. The caller
// keeps ownership of w but must not write to it until Close.
func New(w io.Writer, hdr Header, logger *slog.Logger) (*Recorder, error) {
	zw, err := zstd.NewWriter(w, zstd.WithEncoderConcurrency(1))
	if err != nil {
		return nil, fmt.Errorf("starting flight record compressor: %w", err)
	}

	hdr.Format = formatVersion
	r := &Recorder{zw: zw, enc: codec.NewEncoder(zw), log: logger}
	if err := r.enc.Encode(&hdr); err != nil {
		zw.Close()
		return nil, fmt.Errorf("writing flight record header: %w", err)
	}
	// Land the header on its own so even an aborted run identifies
	// itself.
	if err := zw.Flush(); err != nil {
		zw.Close()
		return nil, fmt.Errorf("flushing flight record header: %w", err)
	}
	return r, nil
}

// Create starts a flight record file at path.
func Create(path string, hdr Header, logger *slog.Logger) (*Recorder, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating flight record: %w", err)
	}
	r, err := New(f, hdr, logger)
	if err != nil {
		f.Close()
		os.Remove(path)
		return nil, err
	}
	r.file = f
	return r, nil
}

// Event records one mission event. The first write failure logs a
// warning and stops the recording; later events are dropped silently.
func (r *Recorder) Event(e flight.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.dead || r.zw == nil {
		return
	}

	rec := makeRecord(e)
	if err := r.enc.Encode(&rec); err != nil {
		r.abandon(err)
		return
	}
	// Flush per event so a crash mid-flight keeps everything sent so
	// far readable.
	if err := r.zw.Flush(); err != nil {
		r.abandon(err)
	}
}

func (r *Recorder) abandon(err error) {
	r.log.Warn("flight record write failed, recording stopped", "error", err)
	r.dead = true
}

// Close finishes the compressed stream and, for file-backed
// recorders, syncs and closes the file.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.zw == nil {
		return nil
	}

	err := r.zw.Close()
	r.zw = nil
	if r.file != nil {
		if serr := r.file.Sync(); err == nil {
			err = serr
		}
		if cerr := r.file.Close(); err == nil {
			err = cerr
		}
		r.file = nil
	}
	if err != nil {
		return fmt.Errorf("closing flight record: %w", err)
	}
	return nil
}
