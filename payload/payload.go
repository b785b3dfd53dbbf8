// payload.go - canonical CBOR payload packing.
// Copyright (C) 2025 Logical Mechanism LLC
// SPDX-License-Identifier: GPL-3.0-only

// Package payload builds and parses the peace-payload map carried inside a
// capsule:
//
//	{ 0 => bstr, ? 1 => bstr, ? 2 => bstr, * int => bstr }
//
// Field 0 is the content locator (a CID, transaction id, URL or inline
// data), field 1 an optional access secret, field 2 an optional integrity
// digest. Keys 0-2 are reserved; extensions use keys >= 3. Encoding is
// canonical CBOR so every implementation produces identical bytes.
package payload

import (
	"errors"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

var (
	// ErrReservedKey indicates an extension field colliding with keys 0-2.
	ErrReservedKey = errors.New("payload: extension key collides with reserved keys")

	// ErrSchema indicates CBOR that does not match the peace-payload shape.
	ErrSchema = errors.New("payload: value does not match the payload schema")
)

// Payload is a decoded peace-payload map.
type Payload map[int][]byte

// Locator returns the required field 0.
func (p Payload) Locator() []byte {
	return p[0]
}

// Secret returns the optional field 1 and whether it is present.
func (p Payload) Secret() ([]byte, bool) {
	v, ok := p[1]
	return v, ok
}

// Digest returns the optional field 2 and whether it is present.
func (p Payload) Digest() ([]byte, bool) {
	v, ok := p[2]
	return v, ok
}

// Build assembles and canonically encodes a payload. The secret and digest
// are optional; extra holds extension fields with keys >= 3.
func Build(locator, secret, digest []byte, extra map[int][]byte) ([]byte, error) {
	m := Payload{0: locator}
	if secret != nil {
		m[1] = secret
	}
	if digest != nil {
		m[2] = digest
	}
	for k, v := range extra {
		if k >= 0 && k <= 2 {
			return nil, ErrReservedKey
		}
		m[k] = v
	}

	opts, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		return nil, err
	}
	return opts.Marshal(map[int][]byte(m))
}

// Parse decodes payload bytes and validates the schema: a map with integer
// keys, byte-string values and the locator present.
func Parse(raw []byte) (Payload, error) {
	var m map[interface{}]interface{}
	if err := cbor.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("payload: %w", err)
	}

	out := Payload{}
	for k, v := range m {
		key, ok := toInt(k)
		if !ok {
			return nil, ErrSchema
		}
		val, ok := v.([]byte)
		if !ok {
			return nil, ErrSchema
		}
		out[key] = val
	}
	if _, ok := out[0]; !ok {
		return nil, ErrSchema
	}
	return out, nil
}

func toInt(v interface{}) (int, bool) {
	switch k := v.(type) {
	case int64:
		return int(k), true
	case uint64:
		return int(k), true
	default:
		return 0, false
	}
}
