package jwtx_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hypolab/workspace/pkg/cryptox"
	"github.com/hypolab/workspace/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const testIssuer = "https://id.example.test"

func newSigner(t *testing.T, kid string) *jwtx.Signer {
	t.Helper()
	pemKey, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)
	s, err := jwtx.NewSigner(kid, pemKey)
	require.NoError(t, err)
	return s
}

func newVerifier(t *testing.T, signers ...*jwtx.Signer) *jwtx.KeySetVerifier {
	t.Helper()
	keys := jwtx.NewKeySet()
	for _, s := range signers {
		require.NoError(t, keys.Add(s.PublicJWK()))
	}
	return jwtx.NewVerifier(keys, jwtx.VerifyOptions{
		Issuer:   testIssuer,
		Audience: []string{"workspace"},
	})
}

func TestSignAndVerify(t *testing.T) {
	signer := newSigner(t, "k1")
	verifier := newVerifier(t, signer)

	claims := jwtx.NewIdentityClaims("user-1", " Alice@Example.com ", "Alice", testIssuer,
		[]string{"workspace"}, 5*time.Minute, time.Now())

	token, err := signer.Sign(claims)
	require.NoError(t, err)

	got, err := verifier.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", got.Subject)
	require.Equal(t, "alice@example.com", got.Email)
	require.Equal(t, "Alice", got.Name)
	require.NotEmpty(t, got.ID)
}

func TestVerifyRejects(t *testing.T) {
	signer := newSigner(t, "k1")
	stranger := newSigner(t, "k2")
	verifier := newVerifier(t, signer)
	now := time.Now()

	sign := func(s *jwtx.Signer, c jwtx.Claims) string {
		tok, err := s.Sign(c)
		require.NoError(t, err)
		return tok
	}

	base := func() jwtx.Claims {
		return jwtx.NewIdentityClaims("user-1", "a@example.com", "A", testIssuer,
			[]string{"workspace"}, time.Minute, now)
	}

	wrongIssuer := base()
	wrongIssuer.Issuer = "https://evil.test"

	wrongAudience := base()
	wrongAudience.Audience = jwt.ClaimStrings{"billing"}

	expired := jwtx.NewIdentityClaims("user-1", "a@example.com", "A", testIssuer,
		[]string{"workspace"}, time.Minute, now.Add(-time.Hour))

	noEmail := base()
	noEmail.Email = ""

	tests := []struct {
		name  string
		token string
		want  error
	}{
		{"unknown kid", sign(stranger, base()), jwtx.ErrUnknownKID},
		{"wrong issuer", sign(signer, wrongIssuer), jwtx.ErrIssuer},
		{"wrong audience", sign(signer, wrongAudience), jwtx.ErrAudience},
		{"expired", sign(signer, expired), jwt.ErrTokenExpired},
		{"no email", sign(signer, noEmail), jwtx.ErrInvalidClaim},
		{"garbage", "not.a.jwt", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := verifier.Verify(tt.token)
			require.Error(t, err)
			if tt.want != nil {
				require.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestVerifyRejectsAlgKeyMismatch(t *testing.T) {
	rsaKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	// An RS256 token whose kid points at an Ed25519 key
	ed := newSigner(t, "shared")
	verifier := newVerifier(t, ed)

	claims := jwtx.NewIdentityClaims("user-1", "a@example.com", "A", testIssuer,
		[]string{"workspace"}, time.Minute, time.Now())
	tok := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	tok.Header["kid"] = "shared"
	raw, err := tok.SignedString(rsaKey)
	require.NoError(t, err)

	_, err = verifier.Verify(raw)
	require.ErrorIs(t, err, jwtx.ErrKeyType)
}

func TestVerifyRS256(t *testing.T) {
	rsaKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	keys := jwtx.NewKeySet()
	require.NoError(t, keys.Add(jwtx.NewRSAJWK("rsa-1", &rsaKey.PublicKey)))
	verifier := jwtx.NewVerifier(keys, jwtx.VerifyOptions{Issuer: testIssuer})

	claims := jwtx.NewIdentityClaims("user-9", "r@example.com", "R", testIssuer, nil, time.Minute, time.Now())
	tok := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	tok.Header["kid"] = "rsa-1"
	raw, err := tok.SignedString(rsaKey)
	require.NoError(t, err)

	got, err := verifier.Verify(raw)
	require.NoError(t, err)
	require.Equal(t, "user-9", got.Subject)
}

func TestKeySetLoadFileAndFetch(t *testing.T) {
	signer := newSigner(t, "k1")
	set := jwtx.JWKS{Keys: []jwtx.JWK{signer.PublicJWK()}}
	body, err := json.Marshal(set)
	require.NoError(t, err)

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "jwks.json")
		require.NoError(t, os.WriteFile(path, body, 0o600))

		keys := jwtx.NewKeySet()
		require.NoError(t, keys.LoadFile(path))
		require.Equal(t, 1, keys.Len())
		_, err := keys.Get("k1")
		require.NoError(t, err)
	})

	t.Run("http", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write(body)
		}))
		defer srv.Close()

		keys := jwtx.NewKeySet()
		require.NoError(t, keys.Fetch(context.Background(), srv.Client(), srv.URL))
		require.Equal(t, set, keys.JWKS())
	})

	t.Run("bad status keeps old keys", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		keys := jwtx.NewKeySet()
		require.NoError(t, keys.Add(signer.PublicJWK()))
		require.Error(t, keys.Fetch(context.Background(), srv.Client(), srv.URL))
		require.Equal(t, 1, keys.Len())
	})
}

func TestJWKRejectsUnsupported(t *testing.T) {
	_, err := jwtx.JWK{Kty: "EC", Kid: "x"}.PublicKey()
	require.Error(t, err)

	_, err = jwtx.JWK{Kty: "OKP", Crv: "X25519", Kid: "x"}.PublicKey()
	require.Error(t, err)

	_, err = jwtx.JWK{Kty: "OKP", Crv: "Ed25519"}.PublicKey()
	require.Error(t, err)
}
