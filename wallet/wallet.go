// wallet.go - wallet key extraction.
// Copyright (C) 2025 Logical Mechanism LLC
// SPDX-License-Identifier: GPL-3.0-only

// Package wallet reads signing-key material out of wallet files. The file is
// a JSON envelope whose cborHex field carries the key behind a four
// character CBOR byte-string prefix.
package wallet

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrKeyFormat indicates a wallet file without usable key material.
var ErrKeyFormat = errors.New("wallet: missing or malformed cborHex field")

type envelope struct {
	CborHex string `json:"cborHex"`
}

// ExtractKey returns the hex key material from a wallet signing-key file,
// with the CBOR prefix stripped.
func ExtractKey(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("wallet: %w", err)
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return "", fmt.Errorf("wallet: %w", err)
	}
	if len(env.CborHex) <= 4 {
		return "", ErrKeyFormat
	}
	return env.CborHex[4:], nil
}
