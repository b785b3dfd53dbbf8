// level.go - re-encryption chain data model.
// Copyright (C) 2025 Logical Mechanism LLC
// SPDX-License-Identifier: GPL-3.0-only

// Package level models the encryption chain: one entry per delegation hop
// plus the terminal capsule. Entries are stored newest hop first, which is
// the order the decrypt walk consumes them. A hop enters the chain as a
// pending half entry (its G2 share not yet revealed) and is retroactively
// completed when the next hop reveals its share - hop i's reveal always
// lands in entry i-1. The newest hop therefore stays pending until a
// further hop is added or decryption walks it with its G1 components alone.
package level

import (
	"errors"

	"github.com/logical-mechanism/peace-protocol/crypto/bpgroup"
	"github.com/logical-mechanism/peace-protocol/crypto/ecies"
	"github.com/logical-mechanism/peace-protocol/plutus"
)

var (
	// ErrChainState indicates an operation that violates the chain's state
	// machine: completing a non-pending entry, appending over an unfinished
	// hop or walking a malformed chain.
	ErrChainState = errors.New("level: invalid chain state")
)

// Entry is a single hop. R1, R2G1 and R4 are compressed G1 hex; R2G2 is the
// compressed G2 hex revealed by the following hop, empty while the entry is
// pending.
type Entry struct {
	R1   string
	R2G1 string
	R2G2 string
	R4   string
}

// Completed reports whether the entry's G2 share has been revealed.
func (e *Entry) Completed() bool {
	return e.R2G2 != ""
}

// PlutusData returns the ledger representation of the entry. A pending
// entry is the half-level shape with the constructor-1 "G2 absent" inner
// field; a completed entry is the full-level shape wrapped once in the
// "completed" variant.
func (e *Entry) PlutusData() plutus.Data {
	if !e.Completed() {
		return plutus.NewConstr(0,
			plutus.NewBytes(e.R1),
			plutus.NewConstr(0,
				plutus.NewBytes(e.R2G1),
				plutus.NewConstr(1),
			),
			plutus.NewBytes(e.R4),
		)
	}
	return plutus.NewConstr(0,
		plutus.NewConstr(0,
			plutus.NewBytes(e.R1),
			plutus.NewConstr(0,
				plutus.NewBytes(e.R2G1),
				plutus.NewConstr(0, plutus.NewBytes(e.R2G2)),
			),
			plutus.NewBytes(e.R4),
		),
	)
}

// Chain is an ordered encryption chain: hop entries newest first, then the
// terminal capsule.
type Chain struct {
	levels  []Entry
	capsule ecies.Capsule
}

// NewChain starts a chain from the initial pending hop entry and its sealed
// capsule.
func NewChain(first Entry, capsule ecies.Capsule) (*Chain, error) {
	if first.Completed() {
		return nil, ErrChainState
	}
	return &Chain{levels: []Entry{first}, capsule: capsule}, nil
}

// AppendHalf pushes a new pending hop entry in front of the existing ones.
// The previous head must still be pending: it is the entry the new hop's
// reveal will complete.
func (c *Chain) AppendHalf(e Entry) error {
	if e.Completed() {
		return ErrChainState
	}
	if len(c.levels) == 0 || c.levels[0].Completed() {
		return ErrChainState
	}
	if len(c.levels) > 1 && !c.levels[1].Completed() {
		// the previous hop was never finalized
		return ErrChainState
	}
	c.levels = append([]Entry{e}, c.levels...)
	return nil
}

// CompleteLast fills the G2 placeholder of the previous hop's entry,
// converting it to a full level. The head entry (the hop currently being
// built) is never a candidate. Fails if no completable placeholder exists.
func (c *Chain) CompleteLast(r2g2 string) error {
	if _, err := bpgroup.ParseG2(r2g2); err != nil {
		return err
	}
	if len(c.levels) < 2 || c.levels[1].Completed() {
		return ErrChainState
	}
	c.levels[1].R2G2 = r2g2
	return nil
}

// Levels returns a copy of the hop entries, newest first.
func (c *Chain) Levels() []Entry {
	out := make([]Entry, len(c.levels))
	copy(out, c.levels)
	return out
}

// Head returns the newest hop entry.
func (c *Chain) Head() Entry {
	return c.levels[0]
}

// Len returns the number of hop entries.
func (c *Chain) Len() int {
	return len(c.levels)
}

// Capsule returns the terminal capsule.
func (c *Chain) Capsule() ecies.Capsule {
	return c.capsule
}

// Walkable verifies the shape the decrypt walk requires: a pending head and
// every later entry completed.
func (c *Chain) Walkable() error {
	if len(c.levels) == 0 || c.levels[0].Completed() {
		return ErrChainState
	}
	for _, e := range c.levels[1:] {
		if !e.Completed() {
			return ErrChainState
		}
	}
	return nil
}

// PlutusData returns the ledger representation of the whole chain:
// Constr 0 [list of entries (newest first), capsule].
func (c *Chain) PlutusData() plutus.Data {
	items := make([]plutus.Data, len(c.levels))
	for i := range c.levels {
		items[i] = c.levels[i].PlutusData()
	}
	return plutus.NewConstr(0, plutus.NewList(items...), c.capsule.PlutusData())
}

func bytesField(d plutus.Data) (string, error) {
	b, ok := d.(plutus.Bytes)
	if !ok {
		return "", plutus.ErrDecode
	}
	return b.Inner, nil
}

func entryFromData(d plutus.Data) (Entry, error) {
	outer, ok := d.(plutus.Constr)
	if !ok {
		return Entry{}, plutus.ErrDecode
	}
	// completed entries carry one extra wrapping constructor
	if outer.Constructor == 0 && len(outer.Fields) == 1 {
		inner, ok := outer.Fields[0].(plutus.Constr)
		if !ok {
			return Entry{}, plutus.ErrDecode
		}
		outer = inner
	}
	if outer.Constructor != 0 || len(outer.Fields) != 3 {
		return Entry{}, plutus.ErrDecode
	}

	var e Entry
	var err error
	if e.R1, err = bytesField(outer.Fields[0]); err != nil {
		return Entry{}, err
	}
	if e.R4, err = bytesField(outer.Fields[2]); err != nil {
		return Entry{}, err
	}

	r2, ok := outer.Fields[1].(plutus.Constr)
	if !ok || r2.Constructor != 0 || len(r2.Fields) != 2 {
		return Entry{}, plutus.ErrDecode
	}
	if e.R2G1, err = bytesField(r2.Fields[0]); err != nil {
		return Entry{}, err
	}
	g2Opt, ok := r2.Fields[1].(plutus.Constr)
	if !ok {
		return Entry{}, plutus.ErrDecode
	}
	switch {
	case g2Opt.Constructor == 1 && len(g2Opt.Fields) == 0:
		// G2 absent
	case g2Opt.Constructor == 0 && len(g2Opt.Fields) == 1:
		if e.R2G2, err = bytesField(g2Opt.Fields[0]); err != nil {
			return Entry{}, err
		}
	default:
		return Entry{}, plutus.ErrDecode
	}
	return e, nil
}

// FromPlutusData rebuilds a chain from its ledger representation and
// validates it is walkable.
func FromPlutusData(d plutus.Data) (*Chain, error) {
	outer, ok := d.(plutus.Constr)
	if !ok || outer.Constructor != 0 || len(outer.Fields) != 2 {
		return nil, plutus.ErrDecode
	}
	list, ok := outer.Fields[0].(plutus.List)
	if !ok || len(list.Items) == 0 {
		return nil, plutus.ErrDecode
	}

	levels := make([]Entry, len(list.Items))
	for i := range list.Items {
		e, err := entryFromData(list.Items[i])
		if err != nil {
			return nil, err
		}
		levels[i] = e
	}

	capData, ok := outer.Fields[1].(plutus.Constr)
	if !ok || capData.Constructor != 0 || len(capData.Fields) != 3 {
		return nil, plutus.ErrDecode
	}
	var capsule ecies.Capsule
	var err error
	if capsule.Nonce, err = bytesField(capData.Fields[0]); err != nil {
		return nil, err
	}
	if capsule.Aad, err = bytesField(capData.Fields[1]); err != nil {
		return nil, err
	}
	if capsule.Ct, err = bytesField(capData.Fields[2]); err != nil {
		return nil, err
	}

	c := &Chain{levels: levels, capsule: capsule}
	if err := c.Walkable(); err != nil {
		return nil, err
	}
	return c, nil
}
