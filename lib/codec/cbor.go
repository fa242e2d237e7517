// Copyright 2026 The Mavscript Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec is the single place CBOR encoding is configured.
// Flight records and plan digests both need byte-stable encodings, so
// every encoder in the repo comes from here rather than from
// fxamacker/cbor directly.
package codec

import (
	"io"
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

// encMode uses Core Deterministic Encoding (RFC 8949 §4.2): sorted
// map keys, smallest integer widths, no indefinite-length items. The
// same logical value always encodes to the same bytes, which is what
// makes plan digests meaningful.
var encMode cbor.EncMode

// decMode accepts standard CBOR and ignores unknown fields, so old
// tools keep reading records written by newer builds.
var decMode cbor.DecMode

func init() {
	var err error

	opts := cbor.CoreDetEncOptions()
	// Core deterministic encoding alone stores times as whole unix
	// seconds; flight record timestamps need sub-second precision.
	opts.Time = cbor.TimeUnixMicro
	encMode, err = opts.EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		// Any-typed targets decode maps as map[string]any instead of
		// the CBOR default map[any]any; record tooling hands decoded
		// values straight to code expecting the JSON-ish shape.
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("codec: CBOR decoder initialization failed: " + err.Error())
	}
}

// Marshal encodes v with Core Deterministic Encoding.
func Marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// Unmarshal decodes data into v.
func Unmarshal(data []byte, v any) error {
	return decMode.Unmarshal(data, v)
}

// Encoder is a CBOR stream encoder. Alias so consumers import only
// this package.
type Encoder = cbor.Encoder

// Decoder is a CBOR stream decoder.
type Decoder = cbor.Decoder

// NewEncoder returns a stream encoder writing deterministic CBOR to w.
func NewEncoder(w io.Writer) *Encoder {
	return encMode.NewEncoder(w)
}

// NewDecoder returns a stream decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	return decMode.NewDecoder(r)
}
