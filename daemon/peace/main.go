// main.go - peace daemon entry point.
// Copyright (C) 2025 Logical Mechanism LLC
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/logical-mechanism/peace-protocol/config"
	"github.com/logical-mechanism/peace-protocol/level"
	"github.com/logical-mechanism/peace-protocol/logger"
	"github.com/logical-mechanism/peace-protocol/oracle"
	"github.com/logical-mechanism/peace-protocol/payload"
	"github.com/logical-mechanism/peace-protocol/plutus"
	"github.com/logical-mechanism/peace-protocol/protocol"
)

const usageText = `Usage: peace [-f config.toml] <command> [options]

Commands:
  bid        derive a register and prove knowledge of its secret
  encrypt    seal a message into a fresh chain
  reencrypt  extend an existing chain by one hop
  decrypt    walk a chain and recover the plaintext
`

func usage() {
	fmt.Fprint(os.Stderr, usageText)
	os.Exit(-1)
}

func fatalf(format string, a ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(-1)
}

func buildOracle(cfg *config.Config, log *logger.Logger) oracle.Oracle {
	if cfg.Oracle.Native {
		return oracle.NewNative()
	}
	timeout := time.Duration(cfg.Oracle.TimeoutMilliseconds) * time.Millisecond
	return oracle.NewCLI(cfg.Peace.SnarkBinary, timeout, log.GetLogger("oracle"))
}

func loadChain(path string) (*level.Chain, error) {
	d, err := plutus.Load(path)
	if err != nil {
		return nil, err
	}
	return level.FromPlutusData(d)
}

func runBid(p *protocol.Protocol, dataDir string, args []string) error {
	fs := flag.NewFlagSet("bid", flag.ExitOnError)
	walletFile := fs.String("wallet", "", "Path to the wallet key file.")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *walletFile == "" {
		return fmt.Errorf("bid: no wallet file provided")
	}

	reg, proof, err := p.Bid(*walletFile)
	if err != nil {
		return err
	}
	if err := plutus.Save(filepath.Join(dataDir, "register.json"), reg.PlutusData()); err != nil {
		return err
	}
	return plutus.Save(filepath.Join(dataDir, "schnorr.json"), proof.PlutusData())
}

func runEncrypt(ctx context.Context, p *protocol.Protocol, dataDir string, args []string) error {
	fs := flag.NewFlagSet("encrypt", flag.ExitOnError)
	walletFile := fs.String("wallet", "", "Path to the wallet key file.")
	msgFile := fs.String("in", "", "Path to the plaintext file.")
	locator := fs.String("locator", "", "Seal a payload pointing at this locator instead of raw bytes.")
	tokenName := fs.String("token", "", "Hex token name binding the proofs.")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *walletFile == "" || (*msgFile == "" && *locator == "") {
		return fmt.Errorf("encrypt: wallet and either an input file or a locator are required")
	}

	var plaintext []byte
	var err error
	if *locator != "" {
		// payload form: the locator names the content, the input file (if
		// any) rides along as the access secret
		var secret []byte
		if *msgFile != "" {
			if secret, err = os.ReadFile(*msgFile); err != nil {
				return err
			}
		}
		if plaintext, err = payload.Build([]byte(*locator), secret, nil, nil); err != nil {
			return err
		}
	} else if plaintext, err = os.ReadFile(*msgFile); err != nil {
		return err
	}

	res, err := p.EncryptInitial(ctx, *walletFile, plaintext, *tokenName)
	if err != nil {
		return err
	}

	if err := plutus.Save(filepath.Join(dataDir, "register.json"), res.User.PlutusData()); err != nil {
		return err
	}
	if err := plutus.Save(filepath.Join(dataDir, "schnorr.json"), res.Schnorr.PlutusData()); err != nil {
		return err
	}
	if err := plutus.Save(filepath.Join(dataDir, "binding.json"), res.Binding.PlutusData()); err != nil {
		return err
	}
	head := res.Chain.Head()
	if err := plutus.Save(filepath.Join(dataDir, "half-level.json"), head.PlutusData()); err != nil {
		return err
	}
	capsule := res.Chain.Capsule()
	if err := plutus.Save(filepath.Join(dataDir, "capsule.json"), capsule.PlutusData()); err != nil {
		return err
	}
	return plutus.Save(filepath.Join(dataDir, "chain.json"), res.Chain.PlutusData())
}

func runReEncrypt(ctx context.Context, p *protocol.Protocol, dataDir string, args []string) error {
	fs := flag.NewFlagSet("reencrypt", flag.ExitOnError)
	walletFile := fs.String("wallet", "", "Path to the wallet key file.")
	bobPublic := fs.String("bob", "", "Compressed G1 public point of the recipient.")
	tokenName := fs.String("token", "", "Hex token name binding the proofs.")
	chainFile := fs.String("chain", "", "Path to the chain artifact to extend.")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *walletFile == "" || *bobPublic == "" || *chainFile == "" {
		return fmt.Errorf("reencrypt: wallet, bob and chain are required")
	}

	chain, err := loadChain(*chainFile)
	if err != nil {
		return err
	}

	res, err := p.ReEncryptHop(ctx, *walletFile, *bobPublic, *tokenName, chain)
	if err != nil {
		return err
	}

	if err := plutus.Save(filepath.Join(dataDir, "binding.json"), res.Binding.PlutusData()); err != nil {
		return err
	}
	if err := plutus.SaveString(filepath.Join(dataDir, "r5.point"), res.R5); err != nil {
		return err
	}
	if err := plutus.SaveString(filepath.Join(dataDir, "witness.point"), res.Witness); err != nil {
		return err
	}
	return plutus.Save(*chainFile, chain.PlutusData())
}

func runDecrypt(ctx context.Context, p *protocol.Protocol, args []string) error {
	fs := flag.NewFlagSet("decrypt", flag.ExitOnError)
	walletFile := fs.String("wallet", "", "Path to the wallet key file.")
	chainFile := fs.String("chain", "", "Path to the chain artifact to walk.")
	asPayload := fs.Bool("payload", false, "Parse the plaintext as a payload and emit its locator.")
	outFile := fs.String("out", "", "Path the plaintext is written to, stdout when empty.")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *walletFile == "" || *chainFile == "" {
		return fmt.Errorf("decrypt: wallet and chain are required")
	}

	chain, err := loadChain(*chainFile)
	if err != nil {
		return err
	}

	plaintext, err := p.RecursiveDecrypt(ctx, *walletFile, chain)
	if err != nil {
		return err
	}
	if *asPayload {
		parsed, err := payload.Parse(plaintext)
		if err != nil {
			return err
		}
		plaintext = parsed.Locator()
	}
	if *outFile == "" {
		_, err = os.Stdout.Write(plaintext)
		return err
	}
	return os.WriteFile(*outFile, plaintext, 0600)
}

func main() {
	cfgFile := flag.String("f", "config.toml", "Path to the daemon config file.")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
	}

	cfg, err := config.LoadFile(*cfgFile)
	if err != nil {
		fatalf("Failed to load config file '%v': %v", *cfgFile, err)
	}

	log, err := logger.New(cfg.Logging.File, cfg.Logging.Level, cfg.Logging.Disable)
	if err != nil {
		fatalf("Failed to create logger: %v", err)
	}

	p := protocol.New(buildOracle(cfg, log), log.GetLogger("protocol"))
	ctx := context.Background()

	cmd, args := flag.Arg(0), flag.Args()[1:]
	switch cmd {
	case "bid":
		err = runBid(p, cfg.Peace.DataDir, args)
	case "encrypt":
		err = runEncrypt(ctx, p, cfg.Peace.DataDir, args)
	case "reencrypt":
		err = runReEncrypt(ctx, p, cfg.Peace.DataDir, args)
	case "decrypt":
		err = runDecrypt(ctx, p, args)
	default:
		usage()
	}
	if err != nil {
		fatalf("%v: %v", cmd, err)
	}
}
