// SPDX-FileCopyrightText: 2026 The opacity Authors
// SPDX-License-Identifier: Apache-2.0

// Command opacity-demo runs a single Opacity handshake against a PIV card
// over a PC/SC reader and prints the derived session keys' length and the
// handshake duration.
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/nist80073/opacity"
	"github.com/nist80073/opacity/internal/config"
	"github.com/nist80073/opacity/internal/pcsctransceiver"
	"github.com/nist80073/opacity/internal/zlogobserver"
)

const defaultConfigFileName = "opacity-demo.yaml"

func main() {
	configPath := flag.String("config", defaultConfigFileName, "path to opacity-demo.yaml")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	obs := zlogobserver.New(cfg.Runtime.LogLevel)

	t, err := pcsctransceiver.Dial(cfg.Reader.Name)
	if err != nil {
		log.Fatalf("failed to connect to reader: %v", err)
	}
	// OpenTunnel closes t itself on a failed handshake. This demo has no
	// Secure Messaging channel to hand a successful t off to, so it closes
	// t itself once done; a real caller would keep t open instead.
	defer func() { _ = t.Close() }()

	idh, err := hex.DecodeString(cfg.Host.IDHHex)
	if err != nil || len(idh) != 8 {
		log.Fatalf("invalid host.idh_hex: %v", err)
	}

	opts := opacity.TunnelOptions{Observer: obs}
	copy(opts.IDH[:], idh)

	if cfg.Runtime.VerifyCVC != nil && *cfg.Runtime.VerifyCVC {
		opts.VerifyCVC = func(cvc []byte) error {
			if len(cvc) == 0 {
				return fmt.Errorf("card did not present a CVC")
			}
			return nil
		}
	}

	keys, metrics, err := opacity.OpenTunnel(t, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "handshake failed: %v\n", err)
		os.Exit(1)
	}
	defer keys.Zeroize()

	fmt.Printf("tunnel opened in %dms; derived %d-byte key roles: cfrm, mac, enc, rmac\n",
		metrics.TunnelCreationMS, len(keys.CFRM))
}
