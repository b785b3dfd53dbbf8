// native.go - in-process pairing oracle.
// Copyright (C) 2025 Logical Mechanism LLC
// SPDX-License-Identifier: GPL-3.0-only

package oracle

import (
	"context"
	"fmt"
	"math/big"

	"github.com/logical-mechanism/peace-protocol/constants"
	"github.com/logical-mechanism/peace-protocol/crypto/bpgroup"
	"github.com/logical-mechanism/peace-protocol/crypto/hashing"
)

// Native computes pairing hashes and hop keys in-process with the same GT
// encoding the sidecar locks in. It cannot verify circuit proofs; use CLI
// when proof verification is required.
type Native struct{}

// NewNative returns an in-process oracle.
func NewNative() *Native {
	return &Native{}
}

// PairingHash computes the digest of kappa = e([a]G1, H0) under the F12
// domain tag. A zero scalar is refused: its image is the unit of GT and
// would key every caller identically.
func (o *Native) PairingHash(_ context.Context, a *big.Int) (string, error) {
	if a == nil || a.Sign() == 0 {
		return "", fmt.Errorf("%w: pairing hash scalar must be non-zero", ErrOracle)
	}
	kappa, err := bpgroup.Pair(bpgroup.G1Point(a), constants.H0, true)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrOracle, err)
	}
	return hashing.EncodeGT(kappa, constants.F12DomainTag)
}

// HopKey derives one hop key:
//
//	r2 = e(r2g1, H0)              half level
//	r2 = e(r2g1, H0) * e(r1, r2g2) full level
//	key = encode(r2 / e(r1, shared))
func (o *Native) HopKey(_ context.Context, r1, r2g1, r2g2, shared string) (string, error) {
	r2, err := bpgroup.Pair(r2g1, constants.H0, true)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrOracle, err)
	}
	if r2g2 != "" {
		t, err := bpgroup.Pair(r1, r2g2, true)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrOracle, err)
		}
		r2.Mul(&r2, &t)
	}

	b, err := bpgroup.Pair(r1, shared, true)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrOracle, err)
	}
	b.Inverse(&b)
	r2.Mul(&r2, &b)

	return hashing.EncodeGT(r2, constants.F12DomainTag)
}

// VerifyProof always fails: circuit proofs only exist on the sidecar side.
func (o *Native) VerifyProof(_ context.Context, _ string) error {
	return fmt.Errorf("%w: native oracle cannot verify circuit proofs", ErrOracle)
}
