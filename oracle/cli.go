// cli.go - subprocess-backed SNARK oracle.
// Copyright (C) 2025 Logical Mechanism LLC
// SPDX-License-Identifier: GPL-3.0-only

package oracle

import (
	"bytes"
	"context"
	"fmt"
	"math/big"
	"os/exec"
	"strings"
	"time"

	"gopkg.in/op/go-logging.v1"
)

const defaultTimeout = 30 * time.Second

// CLI invokes the SNARK sidecar binary. Every call is bounded by the
// configured timeout; a timeout or non-zero exit surfaces as ErrOracle.
type CLI struct {
	binary  string
	timeout time.Duration
	log     *logging.Logger
}

// NewCLI builds a subprocess oracle for the sidecar at binary. A
// non-positive timeout falls back to the default. The logger may be nil.
func NewCLI(binary string, timeout time.Duration, log *logging.Logger) *CLI {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &CLI{binary: binary, timeout: timeout, log: log}
}

func (o *CLI) run(ctx context.Context, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	if o.log != nil {
		// args never contain secrets aside from the hash scalar, which is
		// why the command line itself is only logged at debug level.
		o.log.Debugf("invoking snark sidecar: %v", args[0])
	}

	cmd := exec.CommandContext(ctx, o.binary, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("%w: %s timed out after %v", ErrOracle, args[0], o.timeout)
		}
		return "", fmt.Errorf("%w: %s: %v: %s", ErrOracle, args[0], err, strings.TrimSpace(stderr.String()))
	}
	return strings.TrimSpace(stdout.String()), nil
}

// PairingHash shells out to the sidecar's hash subcommand.
func (o *CLI) PairingHash(ctx context.Context, a *big.Int) (string, error) {
	return o.run(ctx, "hash", "-a", a.String())
}

// HopKey shells out to the sidecar's decrypt subcommand. An empty r2g2
// omits the -g2b flag, selecting the half-level derivation.
func (o *CLI) HopKey(ctx context.Context, r1, r2g1, r2g2, shared string) (string, error) {
	if r2g2 == "" {
		return o.run(ctx, "decrypt", "-r1", r1, "-g1b", r2g1, "-shared", shared)
	}
	return o.run(ctx, "decrypt", "-r1", r1, "-g1b", r2g1, "-g2b", r2g2, "-shared", shared)
}

// VerifyProof shells out to the sidecar's verify subcommand; the sidecar's
// exit code is the verdict.
func (o *CLI) VerifyProof(ctx context.Context, outDir string) error {
	_, err := o.run(ctx, "verify", "-out", outDir)
	return err
}
