// level_test.go - chain state machine and ledger round trip tests.
// Copyright (C) 2025 Logical Mechanism LLC
// SPDX-License-Identifier: GPL-3.0-only

package level_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/logical-mechanism/peace-protocol/crypto/bpgroup"
	"github.com/logical-mechanism/peace-protocol/crypto/ecies"
	"github.com/logical-mechanism/peace-protocol/level"
	"github.com/logical-mechanism/peace-protocol/plutus"
)

func testEntry(seed int64) level.Entry {
	return level.Entry{
		R1:   bpgroup.G1Point(big.NewInt(seed)),
		R2G1: bpgroup.G1Point(big.NewInt(seed + 1)),
		R4:   bpgroup.G1Point(big.NewInt(seed + 2)),
	}
}

func testCapsule() ecies.Capsule {
	return ecies.Capsule{
		Nonce: "000102030405060708090a0b",
		Aad:   "acab",
		Ct:    "deadbeef",
	}
}

func TestNewChain(t *testing.T) {
	c, err := level.NewChain(testEntry(1), testCapsule())
	assert.Nil(t, err)
	assert.Equal(t, 1, c.Len())
	head := c.Head()
	assert.False(t, head.Completed())
	assert.Nil(t, c.Walkable())
}

func TestNewChainRejectsCompletedEntry(t *testing.T) {
	e := testEntry(1)
	e.R2G2 = bpgroup.G2Point(big.NewInt(5))
	_, err := level.NewChain(e, testCapsule())
	assert.Equal(t, level.ErrChainState, err)
}

func TestAppendAndComplete(t *testing.T) {
	c, err := level.NewChain(testEntry(1), testCapsule())
	assert.Nil(t, err)

	hop := testEntry(10)
	assert.Nil(t, c.AppendHalf(hop))
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, hop.R1, c.Head().R1)

	// two pendings, not yet walkable
	assert.Equal(t, level.ErrChainState, c.Walkable())

	r5 := bpgroup.G2Point(big.NewInt(5))
	assert.Nil(t, c.CompleteLast(r5))
	assert.Nil(t, c.Walkable())

	levels := c.Levels()
	assert.False(t, levels[0].Completed())
	assert.True(t, levels[1].Completed())
	assert.Equal(t, r5, levels[1].R2G2)
}

func TestAppendRejectsSecondPendingHop(t *testing.T) {
	c, err := level.NewChain(testEntry(1), testCapsule())
	assert.Nil(t, err)

	assert.Nil(t, c.AppendHalf(testEntry(10)))
	// the previous hop was never completed
	assert.Equal(t, level.ErrChainState, c.AppendHalf(testEntry(20)))
}

func TestCompleteLastRequiresPlaceholder(t *testing.T) {
	c, err := level.NewChain(testEntry(1), testCapsule())
	assert.Nil(t, err)

	r5 := bpgroup.G2Point(big.NewInt(5))
	// single entry, nothing behind the head to complete
	assert.Equal(t, level.ErrChainState, c.CompleteLast(r5))

	assert.Nil(t, c.AppendHalf(testEntry(10)))
	assert.Nil(t, c.CompleteLast(r5))
	// already completed
	assert.Equal(t, level.ErrChainState, c.CompleteLast(r5))
}

func TestCompleteLastRejectsMalformedShare(t *testing.T) {
	c, err := level.NewChain(testEntry(1), testCapsule())
	assert.Nil(t, err)
	assert.Nil(t, c.AppendHalf(testEntry(10)))

	assert.Equal(t, bpgroup.ErrMalformedPoint, c.CompleteLast("acab"))
}

func TestMultiHopGrowth(t *testing.T) {
	c, err := level.NewChain(testEntry(1), testCapsule())
	assert.Nil(t, err)

	for i := 0; i < 3; i++ {
		assert.Nil(t, c.AppendHalf(testEntry(int64(10*(i+1)))))
		assert.Nil(t, c.CompleteLast(bpgroup.G2Point(big.NewInt(int64(i+5)))))
	}
	assert.Equal(t, 4, c.Len())
	assert.Nil(t, c.Walkable())

	// newest first: only the head is pending
	for i, e := range c.Levels() {
		assert.Equal(t, i != 0, e.Completed())
	}
}

func TestEntryPlutusShape(t *testing.T) {
	e := testEntry(1)
	pending, ok := e.PlutusData().(plutus.Constr)
	assert.True(t, ok)
	assert.Equal(t, uint64(0), pending.Constructor)
	assert.Len(t, pending.Fields, 3)

	inner, ok := pending.Fields[1].(plutus.Constr)
	assert.True(t, ok)
	absent, ok := inner.Fields[1].(plutus.Constr)
	assert.True(t, ok)
	assert.Equal(t, uint64(1), absent.Constructor)
	assert.Len(t, absent.Fields, 0)

	e.R2G2 = bpgroup.G2Point(big.NewInt(5))
	full, ok := e.PlutusData().(plutus.Constr)
	assert.True(t, ok)
	// completed entries carry one extra wrapping constructor
	assert.Len(t, full.Fields, 1)
}

func TestChainPlutusRoundTrip(t *testing.T) {
	c, err := level.NewChain(testEntry(1), testCapsule())
	assert.Nil(t, err)
	assert.Nil(t, c.AppendHalf(testEntry(10)))
	assert.Nil(t, c.CompleteLast(bpgroup.G2Point(big.NewInt(5))))

	raw := c.PlutusData()
	back, err := level.FromPlutusData(raw)
	assert.Nil(t, err)

	assert.Equal(t, c.Levels(), back.Levels())
	assert.Equal(t, c.Capsule(), back.Capsule())
}

func TestFromPlutusDataRejectsUnwalkable(t *testing.T) {
	c, err := level.NewChain(testEntry(1), testCapsule())
	assert.Nil(t, err)
	assert.Nil(t, c.AppendHalf(testEntry(10)))
	// second entry still pending when serialized

	_, err = level.FromPlutusData(c.PlutusData())
	assert.Equal(t, level.ErrChainState, err)
}

func TestFromPlutusDataRejectsGarbage(t *testing.T) {
	_, err := level.FromPlutusData(plutus.NewBytes("acab"))
	assert.Equal(t, plutus.ErrDecode, err)

	_, err = level.FromPlutusData(plutus.NewConstr(0, plutus.NewList()))
	assert.Equal(t, plutus.ErrDecode, err)
}
