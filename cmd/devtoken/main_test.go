package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hypolab/workspace/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestDevTokenRoundTrip(t *testing.T) {
	key := filepath.Join(t.TempDir(), "dev.pem")

	var out bytes.Buffer
	require.NoError(t, run([]string{"--key", key, "--init"}, &out))
	require.Error(t, run([]string{"--key", key, "--init"}, &out), "refuses to overwrite")

	out.Reset()
	require.NoError(t, run([]string{"--key", key, "--kid", "k1", "--jwks"}, &out))
	var set jwtx.JWKS
	require.NoError(t, json.Unmarshal(out.Bytes(), &set))
	require.Len(t, set.Keys, 1)

	keys := jwtx.NewKeySet()
	require.NoError(t, keys.Replace(set))

	out.Reset()
	require.NoError(t, run([]string{
		"--key", key, "--kid", "k1",
		"--sub", "u-1", "--email", "ana@example.com", "--name", "Ana",
		"--issuer", "https://id.example.test", "--aud", "workspace",
	}, &out))

	verifier := jwtx.NewVerifier(keys, jwtx.VerifyOptions{
		Issuer:   "https://id.example.test",
		Audience: []string{"workspace"},
	})
	claims, err := verifier.Verify(strings.TrimSpace(out.String()))
	require.NoError(t, err)
	require.Equal(t, "u-1", claims.Subject)
	require.Equal(t, "ana@example.com", claims.Email)
}

func TestDevTokenRequiresIdentity(t *testing.T) {
	key := filepath.Join(t.TempDir(), "dev.pem")
	require.NoError(t, run([]string{"--key", key, "--init"}, &bytes.Buffer{}))
	require.Error(t, run([]string{"--key", key}, &bytes.Buffer{}))
}
