// ecies.go - pairing-keyed hybrid authenticated cipher.
// Copyright (C) 2025 Logical Mechanism LLC
// SPDX-License-Identifier: GPL-3.0-only

// Package ecies implements the hybrid cipher that seals the chain's payload.
// A pairing output (the KEM material) is stretched through HKDF-SHA3-256
// into an AES-256-GCM key; the salt and associated data are derived from a
// caller-supplied context so every hop position keys independently even when
// the KEM material collides.
package ecies

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"io"

	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/sha3"

	"github.com/logical-mechanism/peace-protocol/constants"
	"github.com/logical-mechanism/peace-protocol/crypto/hashing"
	"github.com/logical-mechanism/peace-protocol/plutus"
)

// ErrAuthentication indicates any decryption failure. Wrong key, tampered
// ciphertext and mismatched associated data are deliberately
// indistinguishable to the caller.
var ErrAuthentication = errors.New("ecies: authentication failure")

// Capsule is one sealed payload, the terminal entry of an encryption chain.
// All fields are hex strings.
type Capsule struct {
	Nonce string
	Aad   string
	Ct    string
}

// deriveKey runs the HKDF step shared by Encrypt and Decrypt. The salt is
// the ASCII hex digest of the domain-tagged context transcript, matching the
// derivation fixed by the ledger tooling.
func deriveKey(context, kem string) ([]byte, error) {
	salt, err := hashing.Generate(constants.SltDomainTag + context + constants.KemDomainTag)
	if err != nil {
		return nil, err
	}
	ikm, err := hex.DecodeString(kem)
	if err != nil {
		return nil, err
	}
	key := make([]byte, constants.KeyLen)
	kdf := hkdf.New(sha3.New256, ikm, []byte(salt), []byte(constants.KemDomainTag))
	if _, err := io.ReadFull(kdf, key); err != nil {
		return nil, err
	}
	return key, nil
}

func newAead(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// Encrypt seals msg under a key derived from the KEM material and returns
// the capsule. The context must be the enclosing level's r1 point so the
// derived key is bound to the chain position.
func Encrypt(context, kem string, msg []byte) (*Capsule, error) {
	key, err := deriveKey(context, kem)
	if err != nil {
		return nil, err
	}
	aead, err := newAead(key)
	if err != nil {
		return nil, err
	}

	aad, err := hashing.Generate(constants.AadDomainTag + context + constants.MsgDomainTag)
	if err != nil {
		return nil, err
	}
	aadBytes, err := hex.DecodeString(aad)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, constants.NonceLen)
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}

	ct := aead.Seal(nil, nonce, msg, aadBytes)
	return &Capsule{
		Nonce: hex.EncodeToString(nonce),
		Aad:   aad,
		Ct:    hex.EncodeToString(ct),
	}, nil
}

// Decrypt mirrors Encrypt exactly. Every failure mode surfaces as the
// uniform ErrAuthentication.
func Decrypt(context, kem, nonce, ct, aad string) ([]byte, error) {
	key, err := deriveKey(context, kem)
	if err != nil {
		return nil, ErrAuthentication
	}
	aead, err := newAead(key)
	if err != nil {
		return nil, ErrAuthentication
	}

	nonceBytes, err := hex.DecodeString(nonce)
	if err != nil || len(nonceBytes) != constants.NonceLen {
		return nil, ErrAuthentication
	}
	ctBytes, err := hex.DecodeString(ct)
	if err != nil {
		return nil, ErrAuthentication
	}
	aadBytes, err := hex.DecodeString(aad)
	if err != nil {
		return nil, ErrAuthentication
	}

	msg, err := aead.Open(nil, nonceBytes, ctBytes, aadBytes)
	if err != nil {
		return nil, ErrAuthentication
	}
	return msg, nil
}

// PlutusData returns the ledger representation:
// Constr 0 [bytes nonce, bytes aad, bytes ct].
func (c *Capsule) PlutusData() plutus.Data {
	return plutus.NewConstr(0,
		plutus.NewBytes(c.Nonce),
		plutus.NewBytes(c.Aad),
		plutus.NewBytes(c.Ct),
	)
}
