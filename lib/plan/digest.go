// Copyright 2026 The Mavscript Authors
// SPDX-License-Identifier: Apache-2.0

package plan

import (
	"encoding/hex"
	"fmt"

	"github.com/zeebo/blake3"

	"github.com/mavscript/mavscript/lib/codec"
)

// digestKey is the BLAKE3 domain key for plan digests, the ASCII
// domain name zero-padded to 32 bytes. A digest of the same bytes in
// another context can never collide with a plan digest.
var digestKey = [32]byte{
	'm', 'a', 'v', 's', 'c', 'r', 'i', 'p', 't', '.', 'p', 'l', 'a', 'n',
}

// Digest returns the hex BLAKE3 digest of the plan's deterministic
// CBOR encoding. Two plans share a digest exactly when every name,
// coordinate, hold, and note matches, so a flight record carrying the
// digest pins the precise script that was flown.
func (p *Plan) Digest() (string, error) {
	encoded, err := codec.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("encoding plan for digest: %w", err)
	}

	hasher, err := blake3.NewKeyed(digestKey[:])
	if err != nil {
		panic("plan: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write(encoded)
	return hex.EncodeToString(hasher.Sum(nil)), nil
}
