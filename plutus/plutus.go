// plutus.go - ledger data encoding.
// Copyright (C) 2025 Logical Mechanism LLC
// SPDX-License-Identifier: GPL-3.0-only

// Package plutus models the tagged constructor records consumed by the
// ledger verifier and reads and writes them as JSON artifacts. A value is
// either a byte string, a list, or a constructor with an index and ordered
// fields, mirroring the on-chain data encoding.
package plutus

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrDecode indicates an artifact that does not match the ledger data shape.
var ErrDecode = errors.New("plutus: malformed data record")

// Data is a node of a ledger data tree.
type Data interface {
	isData()
}

// Bytes is a hex-encoded byte string field.
type Bytes struct {
	Inner string
}

// Constr is a tagged constructor with ordered fields.
type Constr struct {
	Constructor uint64
	Fields      []Data
}

// List is an ordered sequence of data nodes.
type List struct {
	Items []Data
}

func (Bytes) isData()  {}
func (Constr) isData() {}
func (List) isData()   {}

// NewBytes wraps a hex string as a byte field.
func NewBytes(hexStr string) Data {
	return Bytes{Inner: hexStr}
}

// NewConstr builds a constructor node.
func NewConstr(tag uint64, fields ...Data) Data {
	if fields == nil {
		fields = []Data{}
	}
	return Constr{Constructor: tag, Fields: fields}
}

// NewList builds a list node.
func NewList(items ...Data) Data {
	if items == nil {
		items = []Data{}
	}
	return List{Items: items}
}

// MarshalJSON encodes a byte field as {"bytes": hex}.
func (b Bytes) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Bytes string `json:"bytes"`
	}{b.Inner})
}

// MarshalJSON encodes a constructor as {"constructor": n, "fields": [...]}.
func (c Constr) MarshalJSON() ([]byte, error) {
	fields := c.Fields
	if fields == nil {
		fields = []Data{}
	}
	return json.Marshal(struct {
		Constructor uint64 `json:"constructor"`
		Fields      []Data `json:"fields"`
	}{c.Constructor, fields})
}

// MarshalJSON encodes a list as {"list": [...]}.
func (l List) MarshalJSON() ([]byte, error) {
	items := l.Items
	if items == nil {
		items = []Data{}
	}
	return json.Marshal(struct {
		List []Data `json:"list"`
	}{items})
}

func fromAny(v interface{}) (Data, error) {
	m, ok := v.(map[string]interface{})
	if !ok {
		return nil, ErrDecode
	}
	if raw, ok := m["bytes"]; ok {
		s, ok := raw.(string)
		if !ok {
			return nil, ErrDecode
		}
		return Bytes{Inner: s}, nil
	}
	if raw, ok := m["list"]; ok {
		items, ok := raw.([]interface{})
		if !ok {
			return nil, ErrDecode
		}
		out := make([]Data, len(items))
		for i := range items {
			d, err := fromAny(items[i])
			if err != nil {
				return nil, err
			}
			out[i] = d
		}
		return List{Items: out}, nil
	}
	rawTag, ok := m["constructor"]
	if !ok {
		return nil, ErrDecode
	}
	tag, ok := rawTag.(float64)
	if !ok || tag < 0 {
		return nil, ErrDecode
	}
	rawFields, ok := m["fields"].([]interface{})
	if !ok {
		return nil, ErrDecode
	}
	fields := make([]Data, len(rawFields))
	for i := range rawFields {
		d, err := fromAny(rawFields[i])
		if err != nil {
			return nil, err
		}
		fields[i] = d
	}
	return Constr{Constructor: uint64(tag), Fields: fields}, nil
}

// Decode parses a JSON document into a data tree.
func Decode(raw []byte) (Data, error) {
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("plutus: %w", err)
	}
	return fromAny(v)
}

// Save writes a data tree as an indented JSON artifact, creating parent
// directories as needed.
func Save(path string, d Data) error {
	raw, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0600)
}

// Load reads a JSON artifact back into a data tree.
func Load(path string) (Data, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(raw)
}

// SaveString writes a plain string artifact, creating parent directories as
// needed. Used for the r5 and witness point files.
func SaveString(path, s string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(s), 0600)
}
