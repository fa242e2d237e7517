// Copyright 2026 The Mavscript Authors
// SPDX-License-Identifier: Apache-2.0

package blackbox

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"

	"github.com/mavscript/mavscript/lib/codec"
)

// Read loads a flight record file. On a decode error it still returns
// the records recovered up to that point, so a file truncated by a
// crash can be salvaged alongside the error.
func Read(path string) (Header, []Record, error) {
	var hdr Header

	f, err := os.Open(path)
	if err != nil {
		return hdr, nil, fmt.Errorf("opening flight record: %w", err)
	}
	defer f.Close()

	zr, err := zstd.NewReader(f, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return hdr, nil, fmt.Errorf("starting flight record decompressor: %w", err)
	}
	defer zr.Close()

	dec := codec.NewDecoder(zr)
	if err := dec.Decode(&hdr); err != nil {
		return hdr, nil, fmt.Errorf("reading flight record header: %w", err)
	}
	if hdr.Format != formatVersion {
		return hdr, nil, fmt.Errorf("unsupported flight record format %d", hdr.Format)
	}

	var records []Record
	for {
		var rec Record
		if err := dec.Decode(&rec); err != nil {
			if errors.Is(err, io.EOF) {
				return hdr, records, nil
			}
			return hdr, records, fmt.Errorf("reading flight record: %w", err)
		}
		records = append(records, rec)
	}
}
