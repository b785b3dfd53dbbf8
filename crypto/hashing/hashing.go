// hashing.go - domain-tagged transcript hashing.
// Copyright (C) 2025 Logical Mechanism LLC
// SPDX-License-Identifier: GPL-3.0-only

// Package hashing provides the outer transcript hash used for every
// Fiat-Shamir challenge and key derivation in the protocol. Transcripts are
// hex strings: the concatenation of a domain tag (itself the hex encoding of
// an ASCII label) and the serialized protocol elements. The transcript is
// hex-decoded and digested with blake2b-224.
package hashing

import (
	"encoding/hex"
	"fmt"
	"math/big"

	"golang.org/x/crypto/blake2b"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fp"

	"github.com/logical-mechanism/peace-protocol/constants"
	"github.com/logical-mechanism/peace-protocol/crypto/bpgroup"
)

// Generate digests a hex transcript with blake2b-224 and returns the digest
// as lowercase hex. Odd-length or non-hex transcripts are rejected.
func Generate(transcript string) (string, error) {
	raw, err := hex.DecodeString(transcript)
	if err != nil {
		return "", fmt.Errorf("hashing: invalid transcript: %w", err)
	}
	h, err := blake2b.New(constants.DigestLen, nil)
	if err != nil {
		return "", err
	}
	h.Write(raw)
	return hex.EncodeToString(h.Sum(nil)), nil
}

// ToInt maps a hex digest into the scalar field: int(digest, 16) mod r.
func ToInt(digest string) (*big.Int, error) {
	return bpgroup.ToScalar(digest)
}

// EncodeGT serializes a GT element as the concatenation of its twelve Fp
// coefficients, each a 48-byte big-endian integer, appends the domain tag and
// digests the result. The coefficient order is fixed:
//
//	C0.B0.A0, C0.B0.A1, C0.B1.A0, C0.B1.A1, C0.B2.A0, C0.B2.A1,
//	C1.B0.A0, C1.B0.A1, C1.B1.A0, C1.B1.A1, C1.B2.A0, C1.B2.A1
func EncodeGT(k bpgroup.GT, domainTag string) (string, error) {
	out := make([]byte, 0, 12*constants.FpLen)

	appendFp := func(e fp.Element) {
		var bi big.Int
		e.BigInt(&bi)
		buf := make([]byte, constants.FpLen)
		bi.FillBytes(buf)
		out = append(out, buf...)
	}

	appendFp(k.C0.B0.A0)
	appendFp(k.C0.B0.A1)
	appendFp(k.C0.B1.A0)
	appendFp(k.C0.B1.A1)
	appendFp(k.C0.B2.A0)
	appendFp(k.C0.B2.A1)
	appendFp(k.C1.B0.A0)
	appendFp(k.C1.B0.A1)
	appendFp(k.C1.B1.A0)
	appendFp(k.C1.B1.A1)
	appendFp(k.C1.B2.A0)
	appendFp(k.C1.B2.A1)

	return Generate(hex.EncodeToString(out) + domainTag)
}
