// constants.go - protocol-wide constants and fixed public parameters.
// Copyright (C) 2025 Logical Mechanism LLC
// SPDX-License-Identifier: GPL-3.0-only

// Package constants declares system-wide constants: domain separation tags,
// the fixed public G2 parameters and element byte lengths.
package constants

import (
	"encoding/hex"
)

const (
	// G1Len is the byte length of a compressed G1 element.
	G1Len = 48

	// G2Len is the byte length of a compressed G2 element.
	G2Len = 96

	// DigestLen is the byte length of the outer transcript hash (blake2b-224).
	DigestLen = 28

	// NonceLen is the byte length of an AES-GCM nonce.
	NonceLen = 12

	// KeyLen is the byte length of a derived AEAD key.
	KeyLen = 32

	// FpLen is the byte length of a single big-endian Fp coefficient
	// inside a serialized GT element.
	FpLen = 48
)

// Domain separation tags. Every transcript is prefixed with the hex encoding
// of a distinct ASCII tag so a hash produced for one purpose can never be
// replayed as another. The |v1| suffix versions the tag set.
var (
	KeyDomainTag = hex.EncodeToString([]byte("ED25519|To|BLS12381|v1|"))
	F12DomainTag = hex.EncodeToString([]byte("F12|To|Hex|v1|"))
	SltDomainTag = hex.EncodeToString([]byte("SLT|ECIES|AES-GCM|v1|"))
	KemDomainTag = hex.EncodeToString([]byte("KEM|ECIES|AES-GCM|v1|"))
	AadDomainTag = hex.EncodeToString([]byte("AAD|ECIES|AES-GCM|v1|"))
	MsgDomainTag = hex.EncodeToString([]byte("MSG|ECIES|AES-GCM|v1|"))
	SchDomainTag = hex.EncodeToString([]byte("SCHNORR|PROOF|v1|"))
	BndDomainTag = hex.EncodeToString([]byte("BINDING|PROOF|v1|"))
	H2IDomainTag = hex.EncodeToString([]byte("HASH|To|Int|v1|"))
)

// Fixed public G2 points (compressed hex). H0 keys the pairing oracle and the
// shared-secret walk; H1..H3 build the per-level commitment term r4.
const (
	H0 = "a5acbe8bdb762cf7b4bfa9171b9ffa23b6ed710b290280b271a0258e285354aac338bb9e5a9ee41b4454e4c410f40eea16c82b493986bfc754aa789e1408b2b526f8b92e9ddcd4eee1a6c4daa84d561a6ceb452afc4559fe81a1c7f3f26715db"
	H1 = "a1dcce801cd2950dcad45faa854382bbe39f5f84d1855ed4ad2d5d2a8e94b67b2d126fbafbcd1a4f15b82f793f5c8cc80d5638f2260b3e3d0c3bcf1b45f7cc0f72f5a8d7a6d6e6615f7d72ab7e70dcbb56d1fefdb72c65f7bc5f073373cc99a7"
	H2 = "a8a54abec2b6379d1aa238de61a783f704255e14cd02c8385e9bb2e648e33ea9fc271a62ff5669defdc59cfee7414102180a831c7be88ea85bc81e0ec3a929bf63766ede414ee0aac2b66a3e7e20c631453aa11aa20eb7945349e4df933dc7dd"
	H3 = "872fd1490d93c0895b3dd1cef1874eca2457b1615e0a5a9cee4ddf14da09a0d51987ce3806d2e87f33139b261ee26ce00e71c41a7c75c158896db6a477e8b4b10b40bda60f8a0a7e0aa7e2a3b3652c9000508a15a24c9f5b3c4cfb84ef72c9a6"
)
