// register.go - discrete-log key pair register.
// Copyright (C) 2025 Logical Mechanism LLC
// SPDX-License-Identifier: GPL-3.0-only

// Package register provides the public register used by the Schnorr and
// binding proofs and by chain construction. A register is either
// secret-known, derived entirely from a secret scalar, or public-only,
// built from an explicit (generator, public) pair. The constructors are the
// only way to obtain a register, so an inconsistent (x, g, u) triple cannot
// be represented.
package register

import (
	"errors"
	"math/big"

	"github.com/logical-mechanism/peace-protocol/crypto/bpgroup"
	"github.com/logical-mechanism/peace-protocol/plutus"
)

var (
	// ErrInvalidRegister indicates missing or undecodable public material.
	ErrInvalidRegister = errors.New("register: missing or invalid public material")
)

// Register holds a generator g, a public value u and, for secret-known
// registers, the secret x with u = [x]g. The secret is never serialized.
type Register struct {
	x *big.Int
	g string
	u string
}

// FromSecret builds a secret-known register on the canonical G1 generator.
func FromSecret(x *big.Int) *Register {
	return &Register{
		x: new(big.Int).Set(x),
		g: bpgroup.G1Point(big.NewInt(1)),
		u: bpgroup.G1Point(x),
	}
}

// FromPublic builds a public-only register. Both elements must be present
// and decode as G1 points.
func FromPublic(g, u string) (*Register, error) {
	if g == "" || u == "" {
		return nil, ErrInvalidRegister
	}
	if _, err := bpgroup.ParseG1(g); err != nil {
		return nil, ErrInvalidRegister
	}
	if _, err := bpgroup.ParseG1(u); err != nil {
		return nil, ErrInvalidRegister
	}
	return &Register{g: g, u: u}, nil
}

// Gen returns the compressed generator.
func (r *Register) Gen() string {
	return r.g
}

// Public returns the compressed public value.
func (r *Register) Public() string {
	return r.u
}

// Secret returns the secret scalar and whether it is known.
func (r *Register) Secret() (*big.Int, bool) {
	if r.x == nil {
		return nil, false
	}
	return new(big.Int).Set(r.x), true
}

// Scale multiplies the register's public value by an integer scalar.
func (r *Register) Scale(k *big.Int) (string, error) {
	if r.u == "" {
		return "", ErrInvalidRegister
	}
	return bpgroup.Scale(r.u, k)
}

// Equal compares two registers structurally over (x, g, u).
func (r *Register) Equal(other *Register) bool {
	if other == nil {
		return false
	}
	if (r.x == nil) != (other.x == nil) {
		return false
	}
	if r.x != nil && r.x.Cmp(other.x) != 0 {
		return false
	}
	return r.g == other.g && r.u == other.u
}

// PlutusData returns the ledger representation of the public components:
// Constr 0 [bytes g, bytes u].
func (r *Register) PlutusData() plutus.Data {
	return plutus.NewConstr(0, plutus.NewBytes(r.g), plutus.NewBytes(r.u))
}
