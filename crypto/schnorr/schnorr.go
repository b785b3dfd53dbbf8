// schnorr.go - knowledge-of-exponent proof.
// Copyright (C) 2025 Logical Mechanism LLC
// SPDX-License-Identifier: GPL-3.0-only

// Package schnorr implements a non-interactive Schnorr proof of knowledge of
// x such that u = [x]g, made non-interactive with the Fiat-Shamir heuristic
// over a domain-separated transcript.
package schnorr

import (
	"errors"
	"math/big"

	"github.com/logical-mechanism/peace-protocol/constants"
	"github.com/logical-mechanism/peace-protocol/crypto/bpgroup"
	"github.com/logical-mechanism/peace-protocol/crypto/hashing"
	"github.com/logical-mechanism/peace-protocol/crypto/register"
	"github.com/logical-mechanism/peace-protocol/plutus"
)

// ErrNoSecret indicates an attempt to prove knowledge for a public-only
// register. A proof without the witness would be meaningless, so the call is
// rejected rather than substituting a default.
var ErrNoSecret = errors.New("schnorr: register secret is not known")

// Proof is the proof artifact: the response scalar z = r + c*x (minimal
// big-endian hex) and the commitment point [r]g.
type Proof struct {
	Z          string
	Commitment string
}

// FiatShamir derives the challenge material for the transcript
// SCH_TAG || g || commitment || u.
func FiatShamir(g, commitment, u string) (string, error) {
	return hashing.Generate(constants.SchDomainTag + g + commitment + u)
}

// Prove generates a proof of knowledge of the register's secret.
func Prove(reg *register.Register) (*Proof, error) {
	x, ok := reg.Secret()
	if !ok {
		return nil, ErrNoSecret
	}

	r := bpgroup.RandomScalar()
	commitment := bpgroup.G1Point(r)

	transcript, err := FiatShamir(reg.Gen(), commitment, reg.Public())
	if err != nil {
		return nil, err
	}
	c, err := hashing.ToInt(transcript)
	if err != nil {
		return nil, err
	}

	// z = (r + c*x) mod ord
	z := new(big.Int).Mul(c, x)
	z.Add(z, r)
	z.Mod(z, bpgroup.Order())

	return &Proof{Z: bpgroup.FromInt(z), Commitment: commitment}, nil
}

// Verify reproduces the ledger verification equation
// [z]g == commitment + [c]u. The on-chain verifier performs the same check;
// this mirror exists so proofs can be validated in tests and before
// submission.
func Verify(proof *Proof, g, u string) bool {
	transcript, err := FiatShamir(g, proof.Commitment, u)
	if err != nil {
		return false
	}
	c, err := hashing.ToInt(transcript)
	if err != nil {
		return false
	}
	z, err := bpgroup.ToScalar(proof.Z)
	if err != nil {
		return false
	}

	lhs, err := bpgroup.Scale(g, z)
	if err != nil {
		return false
	}
	cu, err := bpgroup.Scale(u, c)
	if err != nil {
		return false
	}
	rhs, err := bpgroup.Combine(proof.Commitment, cu)
	if err != nil {
		return false
	}
	return lhs == rhs
}

// PlutusData returns the ledger representation:
// Constr 0 [bytes z, bytes commitment].
func (p *Proof) PlutusData() plutus.Data {
	return plutus.NewConstr(0, plutus.NewBytes(p.Z), plutus.NewBytes(p.Commitment))
}
