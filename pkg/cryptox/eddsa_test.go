package cryptox_test

import (
	"crypto/ed25519"
	"testing"

	"github.com/hypolab/workspace/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestEd25519KeyRoundTrip(t *testing.T) {
	pemBytes, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)

	key, err := cryptox.ParseEd25519PrivateKey(pemBytes)
	require.NoError(t, err)
	require.Len(t, key, ed25519.PrivateKeySize)

	msg := []byte("hello")
	sig := ed25519.Sign(key, msg)
	require.True(t, ed25519.Verify(key.Public().(ed25519.PublicKey), msg, sig))
}

func TestParseEd25519PrivateKeyRejectsGarbage(t *testing.T) {
	_, err := cryptox.ParseEd25519PrivateKey([]byte("not pem"))
	require.Error(t, err)

	_, err = cryptox.ParseEd25519PrivateKey([]byte("-----BEGIN PUBLIC KEY-----\nAAAA\n-----END PUBLIC KEY-----\n"))
	require.Error(t, err)
}
