// ecies_test.go - hybrid cipher tests.
// Copyright (C) 2025 Logical Mechanism LLC
// SPDX-License-Identifier: GPL-3.0-only

package ecies_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/logical-mechanism/peace-protocol/constants"
	"github.com/logical-mechanism/peace-protocol/crypto/bpgroup"
	"github.com/logical-mechanism/peace-protocol/crypto/ecies"
)

// a realistic context: a compressed G1 point, as used by the chain
func testContext() string {
	return bpgroup.G1Point(big.NewInt(77))
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	kem := "deadbeefcafe0123"
	msg := []byte("a secret between two parties")

	capsule, err := ecies.Encrypt(testContext(), kem, msg)
	assert.Nil(t, err)
	assert.Len(t, capsule.Nonce, 2*constants.NonceLen)

	out, err := ecies.Decrypt(testContext(), kem, capsule.Nonce, capsule.Ct, capsule.Aad)
	assert.Nil(t, err)
	assert.Equal(t, msg, out)
}

func TestEncryptEmptyMessage(t *testing.T) {
	capsule, err := ecies.Encrypt(testContext(), "00", []byte{})
	assert.Nil(t, err)

	out, err := ecies.Decrypt(testContext(), "00", capsule.Nonce, capsule.Ct, capsule.Aad)
	assert.Nil(t, err)
	assert.Len(t, out, 0)
}

func TestDecryptWrongKem(t *testing.T) {
	capsule, err := ecies.Encrypt(testContext(), "deadbeef", []byte("msg"))
	assert.Nil(t, err)

	_, err = ecies.Decrypt(testContext(), "beefdead", capsule.Nonce, capsule.Ct, capsule.Aad)
	assert.Equal(t, ecies.ErrAuthentication, err)
}

func TestDecryptWrongContext(t *testing.T) {
	capsule, err := ecies.Encrypt(testContext(), "deadbeef", []byte("msg"))
	assert.Nil(t, err)

	other := bpgroup.G1Point(big.NewInt(78))
	_, err = ecies.Decrypt(other, "deadbeef", capsule.Nonce, capsule.Ct, capsule.Aad)
	assert.Equal(t, ecies.ErrAuthentication, err)
}

func TestDecryptTamperedCiphertext(t *testing.T) {
	capsule, err := ecies.Encrypt(testContext(), "deadbeef", []byte("msg"))
	assert.Nil(t, err)

	tampered := "00" + capsule.Ct[2:]
	if tampered == capsule.Ct {
		tampered = "ff" + capsule.Ct[2:]
	}
	_, err = ecies.Decrypt(testContext(), "deadbeef", capsule.Nonce, tampered, capsule.Aad)
	assert.Equal(t, ecies.ErrAuthentication, err)
}

func TestDecryptMalformedInputs(t *testing.T) {
	capsule, err := ecies.Encrypt(testContext(), "deadbeef", []byte("msg"))
	assert.Nil(t, err)

	// truncated nonce
	_, err = ecies.Decrypt(testContext(), "deadbeef", capsule.Nonce[2:], capsule.Ct, capsule.Aad)
	assert.Equal(t, ecies.ErrAuthentication, err)

	// non-hex kem
	_, err = ecies.Decrypt(testContext(), "zz", capsule.Nonce, capsule.Ct, capsule.Aad)
	assert.Equal(t, ecies.ErrAuthentication, err)

	// mismatched associated data
	wrongAad := capsule.Aad[2:] + capsule.Aad[:2]
	_, err = ecies.Decrypt(testContext(), "deadbeef", capsule.Nonce, capsule.Ct, wrongAad)
	assert.Equal(t, ecies.ErrAuthentication, err)
}

func TestNoncesAreFresh(t *testing.T) {
	c1, err := ecies.Encrypt(testContext(), "deadbeef", []byte("msg"))
	assert.Nil(t, err)
	c2, err := ecies.Encrypt(testContext(), "deadbeef", []byte("msg"))
	assert.Nil(t, err)
	assert.NotEqual(t, c1.Nonce, c2.Nonce)
	assert.NotEqual(t, c1.Ct, c2.Ct)
}
