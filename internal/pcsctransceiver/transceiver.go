// SPDX-FileCopyrightText: 2026 The opacity Authors
// SPDX-License-Identifier: Apache-2.0

// Package pcsctransceiver implements opacity.Transceiver over a PC/SC smart
// card reader, adapted from the PIV client's transaction and APDU chaining
// logic.
package pcsctransceiver

import (
	"fmt"

	"github.com/ebfe/scard"

	"github.com/nist80073/opacity"
)

// insGetResponseAPDU is the ISO/IEC 7816-4 GET RESPONSE instruction used to
// retrieve chained response data signalled by SW1=0x61.
const insGetResponseAPDU = 0xc0

// maxAPDUDataSize is the largest command data field sent in a single short
// APDU before chaining with CLA bit 0x10 is required.
const maxAPDUDataSize = 0xff

// Transceiver holds a connection to one PC/SC reader (see Dial) and
// exchanges APDUs with the card inside a single transaction, satisfying
// opacity.Transceiver.
type Transceiver struct {
	ctx  *scard.Context
	card *scard.Card
}

// Dial establishes a PC/SC context, connects to readerName (or the first
// reader found if readerName is empty), and begins a card transaction.
func Dial(readerName string) (*Transceiver, error) {
	ctx, err := scard.EstablishContext()
	if err != nil {
		return nil, fmt.Errorf("failed to establish PC/SC context: %w", err)
	}

	if readerName == "" {
		readers, err := ctx.ListReaders()
		if err != nil {
			_ = ctx.Release()
			return nil, fmt.Errorf("failed to list readers: %w", err)
		}
		if len(readers) == 0 {
			_ = ctx.Release()
			return nil, fmt.Errorf("no PC/SC readers found")
		}
		readerName = readers[0]
	}

	card, err := ctx.Connect(readerName, scard.ShareShared, scard.ProtocolAny)
	if err != nil {
		_ = ctx.Release()
		return nil, fmt.Errorf("failed to connect to reader %q: %w", readerName, err)
	}

	if err := card.BeginTransaction(); err != nil {
		_ = card.Disconnect(scard.LeaveCard)
		_ = ctx.Release()
		return nil, fmt.Errorf("failed to begin card transaction: %w", err)
	}

	return &Transceiver{ctx: ctx, card: card}, nil
}

// Transceive implements opacity.Transceiver. apduName is used only in
// wrapped error messages.
func (t *Transceiver) Transceive(apduName string, apduBytes []byte) (*opacity.Response, error) {
	resp, err := t.transmitChained(apduBytes)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", apduName, err)
	}
	return resp, nil
}

// Close ends the transaction and releases the reader connection and
// context. Safe to call once; OpenTunnel calls it once when a handshake
// fails, and after a successful handshake the caller closes it.
func (t *Transceiver) Close() error {
	var firstErr error
	if err := t.card.EndTransaction(scard.LeaveCard); err != nil {
		firstErr = err
	}
	if err := t.card.Disconnect(scard.LeaveCard); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := t.ctx.Release(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

func (t *Transceiver) transmitChained(apduBytes []byte) (*opacity.Response, error) {
	if len(apduBytes) < 5 {
		return nil, fmt.Errorf("malformed command APDU: %dB", len(apduBytes))
	}
	cla, ins, p1, p2 := apduBytes[0], apduBytes[1], apduBytes[2], apduBytes[3]
	lc := int(apduBytes[4])
	payload := apduBytes[5 : 5+lc]

	var resp []byte

	for len(payload) > maxAPDUDataSize {
		chunk := payload[:maxAPDUDataSize]
		payload = payload[maxAPDUDataSize:]

		req := append([]byte{cla | 0x10, ins, p1, p2, byte(len(chunk))}, chunk...) // ISO/IEC 7816-4 §5.1.1: command chaining
		_, r, err := t.transmitOne(req)
		if err != nil {
			return nil, fmt.Errorf("failed to transmit chained request: %w", err)
		}
		resp = append(resp, r...)
	}

	req := append([]byte{cla, ins, p1, p2, byte(len(payload))}, payload...)
	req = append(req, 0x00) // Le
	hasMore, r, err := t.transmitOne(req)
	if err != nil {
		return nil, err
	}
	resp = append(resp, r...)

	for hasMore {
		req := []byte{0x00, insGetResponseAPDU, 0x00, 0x00, 0x00}
		var rr []byte
		hasMore, rr, err = t.transmitOne(req)
		if err != nil {
			return nil, fmt.Errorf("failed to read further response: %w", err)
		}
		resp = append(resp, rr...)
	}

	return &opacity.Response{Data: resp, Success: true}, nil
}

func (t *Transceiver) transmitOne(req []byte) (more bool, data []byte, err error) {
	raw, err := t.card.Transmit(req)
	if err != nil {
		return false, nil, fmt.Errorf("failed to transmit APDU: %w", err)
	}
	if len(raw) < 2 {
		return false, nil, fmt.Errorf("response shorter than SW1SW2: got=%dB", len(raw))
	}

	sw1 := raw[len(raw)-2]
	sw2 := raw[len(raw)-1]
	switch {
	case sw1 == 0x90 && sw2 == 0x00:
		return false, raw[:len(raw)-2], nil
	case sw1 == 0x61:
		return true, raw[:len(raw)-2], nil
	default:
		return false, nil, fmt.Errorf("card returned status word %02X%02X", sw1, sw2)
	}
}
