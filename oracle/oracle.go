// oracle.go - external SNARK oracle port.
// Copyright (C) 2025 Logical Mechanism LLC
// SPDX-License-Identifier: GPL-3.0-only

// Package oracle defines the port through which the protocol reaches the
// SNARK sidecar. The sidecar owns the circuit; this core only asks it for
// pairing hashes and hop keys and to verify previously exported proofs.
// Two implementations are provided: CLI drives the sidecar binary as a
// subprocess, Native reproduces the pairing arithmetic in-process for
// deployments and tests that do not need circuit proofs.
package oracle

import (
	"context"
	"errors"
	"math/big"
)

// ErrOracle indicates an oracle invocation failure: non-zero exit, timeout
// or an unusable reply. Oracle failures abort the enclosing protocol step
// and are never retried by the core.
var ErrOracle = errors.New("oracle: invocation failed")

// Oracle is the SNARK process boundary.
type Oracle interface {
	// PairingHash returns the digest of e([a]G1, H0) under the F12 domain
	// tag. The scalar a stays inside the caller; only its digest circulates.
	PairingHash(ctx context.Context, a *big.Int) (string, error)

	// HopKey derives one hop key from a level's components and the current
	// shared point. An empty r2g2 selects the half-level derivation.
	HopKey(ctx context.Context, r1, r2g1, r2g2, shared string) (string, error)

	// VerifyProof checks the proof artifacts previously exported to outDir.
	VerifyProof(ctx context.Context, outDir string) error
}
