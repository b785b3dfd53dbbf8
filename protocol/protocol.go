// protocol.go - re-encryption protocol orchestration.
// Copyright (C) 2025 Logical Mechanism LLC
// SPDX-License-Identifier: GPL-3.0-only

// Package protocol composes the crypto layers into the three top-level
// operations: sealing a message into a fresh chain, extending the chain by
// one delegation hop, and walking the chain back to the plaintext. All
// operations are synchronous; the only blocking call is the SNARK oracle.
package protocol

import (
	"context"
	"math/big"

	"gopkg.in/op/go-logging.v1"

	"github.com/logical-mechanism/peace-protocol/constants"
	"github.com/logical-mechanism/peace-protocol/crypto/binding"
	"github.com/logical-mechanism/peace-protocol/crypto/bpgroup"
	"github.com/logical-mechanism/peace-protocol/crypto/ecies"
	"github.com/logical-mechanism/peace-protocol/crypto/hashing"
	"github.com/logical-mechanism/peace-protocol/crypto/register"
	"github.com/logical-mechanism/peace-protocol/crypto/schnorr"
	"github.com/logical-mechanism/peace-protocol/level"
	"github.com/logical-mechanism/peace-protocol/oracle"
	"github.com/logical-mechanism/peace-protocol/wallet"
)

// Protocol runs the re-encryption operations against an injected SNARK
// oracle. The logger may be nil.
type Protocol struct {
	oracle oracle.Oracle
	log    *logging.Logger
}

// New builds a protocol instance.
func New(o oracle.Oracle, log *logging.Logger) *Protocol {
	return &Protocol{oracle: o, log: log}
}

// EncryptionResult carries every artifact of the initial encryption.
type EncryptionResult struct {
	User    *register.Register
	Schnorr *schnorr.Proof
	Binding *binding.Proof
	Chain   *level.Chain
}

// HopResult carries every artifact of one re-encryption hop. R5 is the G2
// share revealed into the previous chain entry; Witness is the hop key's G1
// image, consumed by the circuit prover.
type HopResult struct {
	Entry   level.Entry
	R5      string
	Witness string
	Binding *binding.Proof
}

// DeriveSecret derives a protocol scalar from wallet key material under the
// key domain tag.
func DeriveSecret(walletPath string) (*big.Int, error) {
	key, err := wallet.ExtractKey(walletPath)
	if err != nil {
		return nil, err
	}
	digest, err := hashing.Generate(constants.KeyDomainTag + key)
	if err != nil {
		return nil, err
	}
	return hashing.ToInt(digest)
}

// levelScalars derives the two transcript scalars that weight the r4
// commitment term, binding it to the level points and the context label.
func levelScalars(r1b, r2g1b, tokenName string) (*big.Int, *big.Int, error) {
	da, err := hashing.Generate(constants.H2IDomainTag + r1b)
	if err != nil {
		return nil, nil, err
	}
	a, err := hashing.ToInt(da)
	if err != nil {
		return nil, nil, err
	}
	db, err := hashing.Generate(constants.H2IDomainTag + r1b + r2g1b + tokenName)
	if err != nil {
		return nil, nil, err
	}
	b, err := hashing.ToInt(db)
	if err != nil {
		return nil, nil, err
	}
	return a, b, nil
}

// EncryptInitial seals plaintext into a fresh single-hop chain on behalf of
// the sender. The token name binds every proof to its on-chain context.
func (p *Protocol) EncryptInitial(ctx context.Context, walletPath string, plaintext []byte, tokenName string) (*EncryptionResult, error) {
	a0 := bpgroup.RandomScalar()
	r0 := bpgroup.RandomScalar()

	m0, err := p.oracle.PairingHash(ctx, a0)
	if err != nil {
		return nil, err
	}

	sk, err := DeriveSecret(walletPath)
	if err != nil {
		return nil, err
	}
	user := register.FromSecret(sk)

	schnorrProof, err := schnorr.Prove(user)
	if err != nil {
		return nil, err
	}

	r1b := bpgroup.G1Point(r0)

	// r2_g1 = [a0 + r0*sk]G1
	exp := new(big.Int).Mul(r0, sk)
	exp.Add(exp, a0)
	exp.Mod(exp, bpgroup.Order())
	r2g1b := bpgroup.G1Point(exp)

	a, b, err := levelScalars(r1b, r2g1b, tokenName)
	if err != nil {
		return nil, err
	}

	// r4 = [r0]([a]H1 + [b]H2 + H3)
	h1a, err := bpgroup.Scale(constants.H1, a)
	if err != nil {
		return nil, err
	}
	h2b, err := bpgroup.Scale(constants.H2, b)
	if err != nil {
		return nil, err
	}
	c, err := bpgroup.Combine(h1a, h2b)
	if err != nil {
		return nil, err
	}
	if c, err = bpgroup.Combine(c, constants.H3); err != nil {
		return nil, err
	}
	r4b, err := bpgroup.Scale(c, r0)
	if err != nil {
		return nil, err
	}

	capsule, err := ecies.Encrypt(r1b, m0, plaintext)
	if err != nil {
		return nil, err
	}

	chain, err := level.NewChain(level.Entry{R1: r1b, R2G1: r2g1b, R4: r4b}, *capsule)
	if err != nil {
		return nil, err
	}

	bindingProof, err := binding.Prove(a0, r0, r1b, r2g1b, user, tokenName)
	if err != nil {
		return nil, err
	}

	if p.log != nil {
		p.log.Noticef("sealed initial chain entry %s", r1b[:16])
	}

	return &EncryptionResult{
		User:    user,
		Schnorr: schnorrProof,
		Binding: bindingProof,
		Chain:   chain,
	}, nil
}

// ReEncryptHop extends the chain by one hop towards the holder of
// bobPublic. The new hop enters as a pending half entry and the previous
// tail is retroactively completed with the revealed G2 share r5.
func (p *Protocol) ReEncryptHop(ctx context.Context, walletPath, bobPublic, tokenName string, chain *level.Chain) (*HopResult, error) {
	a1 := bpgroup.RandomScalar()
	r1sec := bpgroup.RandomScalar()

	m1, err := p.oracle.PairingHash(ctx, a1)
	if err != nil {
		return nil, err
	}
	hk, err := hashing.ToInt(m1)
	if err != nil {
		return nil, err
	}

	sk, err := DeriveSecret(walletPath)
	if err != nil {
		return nil, err
	}

	r1b := bpgroup.G1Point(r1sec)

	// r2_g1 = [a1]G1 + [r1sec]bobPublic
	bobShare, err := bpgroup.Scale(bobPublic, r1sec)
	if err != nil {
		return nil, err
	}
	r2g1b, err := bpgroup.Combine(bpgroup.G1Point(a1), bobShare)
	if err != nil {
		return nil, err
	}

	a, b, err := levelScalars(r1b, r2g1b, tokenName)
	if err != nil {
		return nil, err
	}

	// r4 = [r1sec]([a]H1 + [b]H2)
	h1a, err := bpgroup.Scale(constants.H1, a)
	if err != nil {
		return nil, err
	}
	h2b, err := bpgroup.Scale(constants.H2, b)
	if err != nil {
		return nil, err
	}
	c, err := bpgroup.Combine(h1a, h2b)
	if err != nil {
		return nil, err
	}
	r4b, err := bpgroup.Scale(c, r1sec)
	if err != nil {
		return nil, err
	}

	entry := level.Entry{R1: r1b, R2G1: r2g1b, R4: r4b}
	if err := chain.AppendHalf(entry); err != nil {
		return nil, err
	}

	// r5 = [hk]G2 - [sk]H0; witness = [hk]G1
	h0Neg, err := bpgroup.Invert(constants.H0)
	if err != nil {
		return nil, err
	}
	skShare, err := bpgroup.Scale(h0Neg, sk)
	if err != nil {
		return nil, err
	}
	r5b, err := bpgroup.Combine(bpgroup.G2Point(hk), skShare)
	if err != nil {
		return nil, err
	}
	witness := bpgroup.G1Point(hk)

	bobReg, err := register.FromPublic(bpgroup.G1Point(big.NewInt(1)), bobPublic)
	if err != nil {
		return nil, err
	}
	bindingProof, err := binding.Prove(a1, r1sec, r1b, r2g1b, bobReg, tokenName)
	if err != nil {
		return nil, err
	}

	if err := chain.CompleteLast(r5b); err != nil {
		return nil, err
	}

	if p.log != nil {
		p.log.Noticef("appended hop %d, completed previous tail", chain.Len())
	}

	return &HopResult{
		Entry:   entry,
		R5:      r5b,
		Witness: witness,
		Binding: bindingProof,
	}, nil
}

// RecursiveDecrypt walks the chain with the recipient's wallet and opens
// the terminal capsule. Any oracle failure aborts the walk.
func (p *Protocol) RecursiveDecrypt(ctx context.Context, walletPath string, chain *level.Chain) ([]byte, error) {
	sk, err := DeriveSecret(walletPath)
	if err != nil {
		return nil, err
	}
	if err := chain.Walkable(); err != nil {
		return nil, err
	}

	shared, err := bpgroup.Scale(constants.H0, sk)
	if err != nil {
		return nil, err
	}

	levels := chain.Levels()

	head := levels[0]
	key, err := p.oracle.HopKey(ctx, head.R1, head.R2G1, "", shared)
	if err != nil {
		return nil, err
	}
	lastR1 := head.R1

	for _, e := range levels[1:] {
		k, err := hashing.ToInt(key)
		if err != nil {
			return nil, err
		}
		shared = bpgroup.G2Point(k)

		if key, err = p.oracle.HopKey(ctx, e.R1, e.R2G1, e.R2G2, shared); err != nil {
			return nil, err
		}
		lastR1 = e.R1
	}

	capsule := chain.Capsule()
	return ecies.Decrypt(lastR1, key, capsule.Nonce, capsule.Ct, capsule.Aad)
}

// Bid derives a bidder's register and proves knowledge of its secret. This
// is the minimal setup a recipient publishes before any hop can target it.
func (p *Protocol) Bid(walletPath string) (*register.Register, *schnorr.Proof, error) {
	sk, err := DeriveSecret(walletPath)
	if err != nil {
		return nil, nil, err
	}
	user := register.FromSecret(sk)

	proof, err := schnorr.Prove(user)
	if err != nil {
		return nil, nil, err
	}
	return user, proof, nil
}
