// SPDX-FileCopyrightText: 2026 The opacity Authors
// SPDX-License-Identifier: Apache-2.0

// Package zlogobserver implements opacity.Observer on top of zerolog,
// rendering each handshake event as a structured log line rather than the
// reference implementation's interleaved formatted strings.
package zlogobserver

import (
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/nist80073/opacity"
)

// Observer logs handshake events at debug level, except TunnelOpened and
// TunnelFailed which log at info/warn respectively.
type Observer struct {
	log zerolog.Logger
}

// New builds an Observer that writes to the console, leveled by levelName
// (a zerolog level name such as "debug" or "info"; unknown names fall back
// to info).
func New(levelName string) *Observer {
	level, err := zerolog.ParseLevel(levelName)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.TimeFieldFormat = time.RFC3339

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Str("component", "opacity").Logger().
		Level(level)

	return &Observer{log: logger}
}

func (o *Observer) EphemeralKeyGenerated() {
	o.log.Debug().Msg("ephemeral keypair generated")
}

func (o *Observer) ResponseReceived(bytes int) {
	o.log.Debug().Int("bytes", bytes).Msg("card response received")
}

func (o *Observer) SignatureParsed(persistentBinding bool) {
	o.log.Debug().Bool("persistent_binding", persistentBinding).Msg("card signature parsed")
}

func (o *Observer) KeysDerived() {
	o.log.Debug().Msg("session keys derived")
}

func (o *Observer) CryptogramVerified() {
	o.log.Debug().Msg("auth cryptogram verified")
}

func (o *Observer) TunnelOpened(metrics opacity.HandshakeMetrics) {
	o.log.Info().Int64("tunnel_creation_ms", metrics.TunnelCreationMS).Msg("tunnel opened")
}

func (o *Observer) TunnelFailed(kind opacity.Kind) {
	o.log.Warn().Str("kind", kind.String()).Msg("tunnel failed")
}

var _ opacity.Observer = (*Observer)(nil)
