// bpgroup_test.go - pairing group wrapper tests.
// Copyright (C) 2025 Logical Mechanism LLC
// SPDX-License-Identifier: GPL-3.0-only

package bpgroup_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/logical-mechanism/peace-protocol/constants"
	"github.com/logical-mechanism/peace-protocol/crypto/bpgroup"
)

func TestIdentityEncoding(t *testing.T) {
	assert.Len(t, bpgroup.G1Identity(), 2*constants.G1Len)
	assert.Len(t, bpgroup.G2Identity(), 2*constants.G2Len)
	assert.Equal(t, bpgroup.G1Point(big.NewInt(0)), bpgroup.G1Identity())
	assert.Equal(t, bpgroup.G2Point(big.NewInt(0)), bpgroup.G2Identity())
}

func TestScaleByZeroIsIdentity(t *testing.T) {
	g := bpgroup.G1Point(big.NewInt(1))
	out, err := bpgroup.Scale(g, big.NewInt(0))
	assert.Nil(t, err)
	assert.Equal(t, bpgroup.G1Identity(), out)

	h, err := bpgroup.Scale(constants.H0, big.NewInt(0))
	assert.Nil(t, err)
	assert.Equal(t, bpgroup.G2Identity(), h)
}

func TestScaleMatchesBasePoint(t *testing.T) {
	k := big.NewInt(42)
	g := bpgroup.G1Point(big.NewInt(1))
	out, err := bpgroup.Scale(g, k)
	assert.Nil(t, err)
	assert.Equal(t, bpgroup.G1Point(k), out)
}

func TestCombineWithInverseIsIdentity(t *testing.T) {
	p := bpgroup.G1Point(big.NewInt(7))
	neg, err := bpgroup.Invert(p)
	assert.Nil(t, err)
	sum, err := bpgroup.Combine(p, neg)
	assert.Nil(t, err)
	assert.Equal(t, bpgroup.G1Identity(), sum)

	q, err := bpgroup.Scale(constants.H1, big.NewInt(7))
	assert.Nil(t, err)
	negQ, err := bpgroup.Invert(q)
	assert.Nil(t, err)
	sumQ, err := bpgroup.Combine(q, negQ)
	assert.Nil(t, err)
	assert.Equal(t, bpgroup.G2Identity(), sumQ)
}

func TestCombineMatchesScalarAddition(t *testing.T) {
	p := bpgroup.G1Point(big.NewInt(3))
	q := bpgroup.G1Point(big.NewInt(4))
	sum, err := bpgroup.Combine(p, q)
	assert.Nil(t, err)
	assert.Equal(t, bpgroup.G1Point(big.NewInt(7)), sum)
}

func TestCombineRejectsMixedGroups(t *testing.T) {
	_, err := bpgroup.Combine(bpgroup.G1Point(big.NewInt(1)), constants.H0)
	assert.Equal(t, bpgroup.ErrMalformedPoint, err)
}

func TestParseRejectsMalformedElements(t *testing.T) {
	_, err := bpgroup.ParseG1("zz")
	assert.Equal(t, bpgroup.ErrMalformedPoint, err)

	_, err = bpgroup.ParseG1("acab")
	assert.Equal(t, bpgroup.ErrMalformedPoint, err)

	// right length, not a valid compressed point
	bad := "11" + bpgroup.G1Point(big.NewInt(1))[2:]
	_, err = bpgroup.ParseG1(bad)
	assert.Equal(t, bpgroup.ErrMalformedPoint, err)

	_, err = bpgroup.ParseG2(bpgroup.G1Point(big.NewInt(1)))
	assert.Equal(t, bpgroup.ErrMalformedPoint, err)
}

func TestParseRoundTrip(t *testing.T) {
	for _, k := range []int64{1, 2, 12345} {
		el := bpgroup.G1Point(big.NewInt(k))
		p, err := bpgroup.ParseG1(el)
		assert.Nil(t, err)
		assert.False(t, p.IsInfinity())

		el2 := bpgroup.G2Point(big.NewInt(k))
		q, err := bpgroup.ParseG2(el2)
		assert.Nil(t, err)
		assert.False(t, q.IsInfinity())
	}
}

// Check if the bilinearity property holds, i.e. e(aP, Q) = e(P, aQ)
func TestPairBilinearity(t *testing.T) {
	two := big.NewInt(2)

	left, err := bpgroup.Pair(bpgroup.G1Point(two), constants.H0, true)
	assert.Nil(t, err)

	h0Double, err := bpgroup.Scale(constants.H0, two)
	assert.Nil(t, err)
	right, err := bpgroup.Pair(bpgroup.G1Point(big.NewInt(1)), h0Double, true)
	assert.Nil(t, err)

	assert.True(t, left.Equal(&right))
}

func TestRandomScalarRange(t *testing.T) {
	for i := 0; i < 32; i++ {
		k := bpgroup.RandomScalar()
		assert.True(t, k.Sign() > 0)
		assert.True(t, k.Cmp(bpgroup.Order()) < 0)
	}
}

func TestFromIntEncoding(t *testing.T) {
	assert.Equal(t, "00", bpgroup.FromInt(big.NewInt(0)))
	assert.Equal(t, "01", bpgroup.FromInt(big.NewInt(1)))
	assert.Equal(t, "ff", bpgroup.FromInt(big.NewInt(255)))
	assert.Equal(t, "0100", bpgroup.FromInt(big.NewInt(256)))
}

func TestScalarCodecRoundTrip(t *testing.T) {
	rMinus1 := new(big.Int).Sub(bpgroup.Order(), big.NewInt(1))
	for _, k := range []*big.Int{
		big.NewInt(0),
		big.NewInt(1),
		big.NewInt(255),
		big.NewInt(256),
		rMinus1,
	} {
		back, err := bpgroup.ToScalar(bpgroup.FromInt(k))
		assert.Nil(t, err)
		assert.Equal(t, 0, k.Cmp(back))
	}
}

func TestToScalarReduces(t *testing.T) {
	k, err := bpgroup.ToScalar(bpgroup.FromInt(bpgroup.Order()))
	assert.Nil(t, err)
	assert.Equal(t, 0, k.Sign())

	_, err = bpgroup.ToScalar("not hex")
	assert.Equal(t, bpgroup.ErrScalarDomain, err)
}

func TestInvertScalar(t *testing.T) {
	k := big.NewInt(12345)
	inv, err := bpgroup.InvertScalar(k)
	assert.Nil(t, err)

	prod := new(big.Int).Mul(k, inv)
	prod.Mod(prod, bpgroup.Order())
	assert.Equal(t, int64(1), prod.Int64())

	_, err = bpgroup.InvertScalar(big.NewInt(0))
	assert.Equal(t, bpgroup.ErrScalarDomain, err)
	_, err = bpgroup.InvertScalar(bpgroup.Order())
	assert.Equal(t, bpgroup.ErrScalarDomain, err)
}
