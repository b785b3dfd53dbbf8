// bpgroup.go - BLS12-381 bilinear pairing group wrapper.
// Copyright (C) 2025 Logical Mechanism LLC
// SPDX-License-Identifier: GPL-3.0-only

// Package bpgroup wraps the BLS12-381 groups used by the protocol. Elements
// cross package boundaries in their canonical external form: lowercase hex of
// the compressed encoding (48 bytes for G1, 96 bytes for G2). Scalars are
// big.Ints reduced modulo the prime group order.
package bpgroup

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/logical-mechanism/peace-protocol/constants"
)

var (
	// ErrMalformedPoint indicates a group element that could not be decoded:
	// bad hex, wrong length, off-curve or outside the prime-order subgroup.
	ErrMalformedPoint = errors.New("bpgroup: malformed group element")

	// ErrScalarDomain indicates a scalar operation outside its domain,
	// such as inverting the zero scalar.
	ErrScalarDomain = errors.New("bpgroup: scalar outside operation domain")
)

// GT is an element of the pairing target group.
type GT = bls12381.GT

// Order returns a copy of the prime order r of the pairing groups.
func Order() *big.Int {
	return fr.Modulus()
}

// RandomScalar samples a uniform scalar in [1, r) from crypto/rand.
// Entropy failure is not recoverable, hence the panic.
func RandomScalar() *big.Int {
	ord := Order()
	k, err := rand.Int(rand.Reader, new(big.Int).Sub(ord, big.NewInt(1)))
	if err != nil {
		panic(err)
	}
	return k.Add(k, big.NewInt(1))
}

// G1Point returns the canonical G1 generator scaled by k, compressed hex.
func G1Point(k *big.Int) string {
	var p bls12381.G1Affine
	p.ScalarMultiplicationBase(new(big.Int).Set(k))
	buf := p.Bytes()
	return hex.EncodeToString(buf[:])
}

// G2Point returns the canonical G2 generator scaled by k, compressed hex.
func G2Point(k *big.Int) string {
	var p bls12381.G2Affine
	p.ScalarMultiplicationBase(new(big.Int).Set(k))
	buf := p.Bytes()
	return hex.EncodeToString(buf[:])
}

// G1Identity returns the identity element of G1, compressed hex.
func G1Identity() string {
	return G1Point(big.NewInt(0))
}

// G2Identity returns the identity element of G2, compressed hex.
func G2Identity() string {
	return G2Point(big.NewInt(0))
}

// ParseG1 decodes a compressed hex G1 element, enforcing the curve and
// subgroup checks.
func ParseG1(element string) (bls12381.G1Affine, error) {
	var p bls12381.G1Affine
	raw, err := hex.DecodeString(element)
	if err != nil || len(raw) != constants.G1Len {
		return p, ErrMalformedPoint
	}
	if _, err := p.SetBytes(raw); err != nil {
		return p, ErrMalformedPoint
	}
	return p, nil
}

// ParseG2 decodes a compressed hex G2 element, enforcing the curve and
// subgroup checks.
func ParseG2(element string) (bls12381.G2Affine, error) {
	var p bls12381.G2Affine
	raw, err := hex.DecodeString(element)
	if err != nil || len(raw) != constants.G2Len {
		return p, ErrMalformedPoint
	}
	if _, err := p.SetBytes(raw); err != nil {
		return p, ErrMalformedPoint
	}
	return p, nil
}

// Scale multiplies a compressed element by a scalar. The group is inferred
// from the serialized length: 96 hex characters means G1, otherwise G2.
func Scale(element string, k *big.Int) (string, error) {
	if len(element) == 2*constants.G1Len {
		p, err := ParseG1(element)
		if err != nil {
			return "", err
		}
		p.ScalarMultiplication(&p, new(big.Int).Set(k))
		buf := p.Bytes()
		return hex.EncodeToString(buf[:]), nil
	}
	p, err := ParseG2(element)
	if err != nil {
		return "", err
	}
	p.ScalarMultiplication(&p, new(big.Int).Set(k))
	buf := p.Bytes()
	return hex.EncodeToString(buf[:]), nil
}

// Combine adds two compressed elements of the same group.
func Combine(left, right string) (string, error) {
	if len(left) != len(right) {
		return "", ErrMalformedPoint
	}
	if len(left) == 2*constants.G1Len {
		p, err := ParseG1(left)
		if err != nil {
			return "", err
		}
		q, err := ParseG1(right)
		if err != nil {
			return "", err
		}
		p.Add(&p, &q)
		buf := p.Bytes()
		return hex.EncodeToString(buf[:]), nil
	}
	p, err := ParseG2(left)
	if err != nil {
		return "", err
	}
	q, err := ParseG2(right)
	if err != nil {
		return "", err
	}
	p.Add(&p, &q)
	buf := p.Bytes()
	return hex.EncodeToString(buf[:]), nil
}

// Invert negates a compressed element.
func Invert(element string) (string, error) {
	if len(element) == 2*constants.G1Len {
		p, err := ParseG1(element)
		if err != nil {
			return "", err
		}
		p.Neg(&p)
		buf := p.Bytes()
		return hex.EncodeToString(buf[:]), nil
	}
	p, err := ParseG2(element)
	if err != nil {
		return "", err
	}
	p.Neg(&p)
	buf := p.Bytes()
	return hex.EncodeToString(buf[:]), nil
}

// Pair computes the pairing e(g1El, g2El). With finalize set the result is
// taken through the final exponentiation; without it only the Miller loop is
// evaluated.
func Pair(g1El, g2El string, finalize bool) (GT, error) {
	p, err := ParseG1(g1El)
	if err != nil {
		return GT{}, err
	}
	q, err := ParseG2(g2El)
	if err != nil {
		return GT{}, err
	}
	if finalize {
		return bls12381.Pair([]bls12381.G1Affine{p}, []bls12381.G2Affine{q})
	}
	return bls12381.MillerLoop([]bls12381.G1Affine{p}, []bls12381.G2Affine{q})
}

// FromInt encodes a non-negative scalar as minimal big-endian hex. Zero
// encodes as a single zero byte rather than an empty string.
func FromInt(k *big.Int) string {
	if k.Sign() == 0 {
		return "00"
	}
	return hex.EncodeToString(k.Bytes())
}

// ToScalar interprets a hex digest as a scalar reduced modulo the group
// order.
func ToScalar(digest string) (*big.Int, error) {
	k, ok := new(big.Int).SetString(digest, 16)
	if !ok {
		return nil, ErrScalarDomain
	}
	return k.Mod(k, Order()), nil
}

// InvertScalar returns k^-1 mod r. Inverting zero is undefined.
func InvertScalar(k *big.Int) (*big.Int, error) {
	if new(big.Int).Mod(k, Order()).Sign() == 0 {
		return nil, ErrScalarDomain
	}
	return new(big.Int).ModInverse(k, Order()), nil
}
