package jwtx

import (
	"crypto/ed25519"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hypolab/workspace/pkg/cryptox"
)

// Signer mints identity tokens. Production tokens come from the identity
// provider; this exists for local development and tests.
type Signer struct {
	kid string
	key ed25519.PrivateKey
}

// NewSigner loads an Ed25519 PKCS8 PEM key.
func NewSigner(kid string, pemKey []byte) (*Signer, error) {
	key, err := cryptox.ParseEd25519PrivateKey(pemKey)
	if err != nil {
		return nil, err
	}
	return &Signer{kid: kid, key: key}, nil
}

func (s *Signer) KID() string { return s.kid }

func (s *Signer) Sign(c Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodEdDSA, c)
	t.Header["kid"] = s.kid
	return t.SignedString(s.key)
}

// PublicJWK is the verification key to publish alongside tokens.
func (s *Signer) PublicJWK() JWK {
	return NewEd25519JWK(s.kid, s.key.Public().(ed25519.PublicKey))
}
