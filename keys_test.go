// SPDX-FileCopyrightText: 2026 The opacity Authors
// SPDX-License-Identifier: Apache-2.0

package opacity

import (
	"crypto/ecdh"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateEphemeralKeyPair(t *testing.T) {
	kp, err := generateEphemeralKeyPair(rand.Reader)
	require.NoError(t, err)

	pub := kp.encodedPublicKey()
	assert.Equal(t, byte(0x04), pub[0])
	assert.NotZero(t, kp.x)
	assert.NotZero(t, kp.y)
	assert.NotZero(t, kp.scalar)

	kp.zeroize()
	assert.Nil(t, kp.priv)
	assert.Zero(t, kp.scalar, "zeroize must wipe the scalar array held by the key pair")
}

func TestCheckCardPublicKeyRejectsIdentity(t *testing.T) {
	var x, y [fieldElementLength]byte
	_, err := checkCardPublicKey(x, y)
	require.Error(t, err)

	var opErr *Error
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, KindKeyValidation, opErr.Kind)
}

func TestCheckCardPublicKeyAcceptsValidPoint(t *testing.T) {
	priv, err := ecdh.P256().GenerateKey(rand.Reader)
	require.NoError(t, err)

	x, y, err := uncompressedXY(priv.PublicKey().Bytes())
	require.NoError(t, err)

	pub, err := checkCardPublicKey(x, y)
	require.NoError(t, err)
	assert.NotNil(t, pub)
}

func TestECDHSharedSecretLength(t *testing.T) {
	hostKP, err := generateEphemeralKeyPair(rand.Reader)
	require.NoError(t, err)

	cardPriv, err := ecdh.P256().GenerateKey(rand.Reader)
	require.NoError(t, err)

	z, err := ecdhSharedSecret(hostKP, cardPriv.PublicKey())
	require.NoError(t, err)
	assert.Len(t, z, fieldElementLength)
	assert.NotZero(t, z)
}
