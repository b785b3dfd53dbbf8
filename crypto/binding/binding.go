// binding.go - dual-secret binding proof.
// Copyright (C) 2025 Logical Mechanism LLC
// SPDX-License-Identifier: GPL-3.0-only

// Package binding implements the joint proof of knowledge of two secrets
// (a, r) behind a level's statement points
//
//	stmt1 = [r]g
//	stmt2 = [a]g + [r]u
//
// against a register's public value u. The transcript carries an external
// context label (an asset name) so a proof generated for one context cannot
// be replayed in another.
package binding

import (
	"math/big"

	"github.com/logical-mechanism/peace-protocol/constants"
	"github.com/logical-mechanism/peace-protocol/crypto/bpgroup"
	"github.com/logical-mechanism/peace-protocol/crypto/hashing"
	"github.com/logical-mechanism/peace-protocol/crypto/register"
	"github.com/logical-mechanism/peace-protocol/plutus"
)

// Proof is the proof artifact: two response scalars (minimal big-endian hex)
// and two commitment points.
type Proof struct {
	Za string
	Zr string
	T1 string
	T2 string
}

// FiatShamir derives the challenge material for the transcript
// BND_TAG || g || u || t1 || t2 || stmt1 || stmt2 || tokenName.
func FiatShamir(reg *register.Register, t1, t2, stmt1, stmt2, tokenName string) (string, error) {
	return hashing.Generate(
		constants.BndDomainTag + reg.Gen() + reg.Public() + t1 + t2 + stmt1 + stmt2 + tokenName)
}

// Prove generates a binding proof for the secrets (a, r). The statement
// points are computed by the caller and only enter the transcript here.
// Soundness requires rho and alpha to be freshly and independently sampled
// on every call.
func Prove(a, r *big.Int, stmt1, stmt2 string, reg *register.Register, tokenName string) (*Proof, error) {
	rho := bpgroup.RandomScalar()
	alpha := bpgroup.RandomScalar()

	t1 := bpgroup.G1Point(rho)

	uRho, err := reg.Scale(rho)
	if err != nil {
		return nil, err
	}
	t2, err := bpgroup.Combine(bpgroup.G1Point(alpha), uRho)
	if err != nil {
		return nil, err
	}

	transcript, err := FiatShamir(reg, t1, t2, stmt1, stmt2, tokenName)
	if err != nil {
		return nil, err
	}
	c, err := hashing.ToInt(transcript)
	if err != nil {
		return nil, err
	}

	ord := bpgroup.Order()
	zr := new(big.Int).Mul(c, r) // zr = (rho + c*r) mod ord
	zr.Add(zr, rho)
	zr.Mod(zr, ord)
	za := new(big.Int).Mul(c, a) // za = (alpha + c*a) mod ord
	za.Add(za, alpha)
	za.Mod(za, ord)

	return &Proof{
		Za: bpgroup.FromInt(za),
		Zr: bpgroup.FromInt(zr),
		T1: t1,
		T2: t2,
	}, nil
}

// Verify reproduces the ledger verification equations
//
//	[zr]g == t1 + [c]stmt1
//	[za]g + [zr]u == t2 + [c]stmt2
//
// for the same transcript the prover hashed.
func Verify(proof *Proof, stmt1, stmt2 string, reg *register.Register, tokenName string) bool {
	transcript, err := FiatShamir(reg, proof.T1, proof.T2, stmt1, stmt2, tokenName)
	if err != nil {
		return false
	}
	c, err := hashing.ToInt(transcript)
	if err != nil {
		return false
	}
	zr, err := bpgroup.ToScalar(proof.Zr)
	if err != nil {
		return false
	}
	za, err := bpgroup.ToScalar(proof.Za)
	if err != nil {
		return false
	}

	lhs1, err := bpgroup.Scale(reg.Gen(), zr)
	if err != nil {
		return false
	}
	cs1, err := bpgroup.Scale(stmt1, c)
	if err != nil {
		return false
	}
	rhs1, err := bpgroup.Combine(proof.T1, cs1)
	if err != nil {
		return false
	}
	if lhs1 != rhs1 {
		return false
	}

	zaG, err := bpgroup.Scale(reg.Gen(), za)
	if err != nil {
		return false
	}
	zrU, err := reg.Scale(zr)
	if err != nil {
		return false
	}
	lhs2, err := bpgroup.Combine(zaG, zrU)
	if err != nil {
		return false
	}
	cs2, err := bpgroup.Scale(stmt2, c)
	if err != nil {
		return false
	}
	rhs2, err := bpgroup.Combine(proof.T2, cs2)
	if err != nil {
		return false
	}
	return lhs2 == rhs2
}

// PlutusData returns the ledger representation:
// Constr 0 [bytes za, bytes zr, bytes t1, bytes t2].
func (p *Proof) PlutusData() plutus.Data {
	return plutus.NewConstr(0,
		plutus.NewBytes(p.Za),
		plutus.NewBytes(p.Zr),
		plutus.NewBytes(p.T1),
		plutus.NewBytes(p.T2),
	)
}
