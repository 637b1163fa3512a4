package jwtx

import (
	"crypto/ed25519"
	"crypto/rsa"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verifier validates a JWT and returns its claims.
type Verifier interface {
	Verify(token string) (Claims, error)
}

var (
	ErrUnknownKID   = errors.New("jwtx: unknown kid")
	ErrKeyType      = errors.New("jwtx: key type does not match algorithm")
	ErrIssuer       = errors.New("jwtx: issuer mismatch")
	ErrAudience     = errors.New("jwtx: audience mismatch")
	ErrInvalidClaim = errors.New("jwtx: invalid claims")
)

// VerifyOptions are the expectations every accepted token must meet.
type VerifyOptions struct {
	// Issuer the token must carry. Empty skips the check.
	Issuer string

	// Audience lists acceptable aud values. Empty skips the check.
	Audience []string

	// Leeway absorbs clock skew on exp and nbf.
	Leeway time.Duration
}

// KeySetVerifier checks EdDSA and RS256 signatures against a KeySet. The
// key's type must agree with the token's alg header.
type KeySetVerifier struct {
	keys *KeySet
	opts VerifyOptions
}

func NewVerifier(keys *KeySet, opts VerifyOptions) *KeySetVerifier {
	return &KeySetVerifier{keys: keys, opts: opts}
}

func (v *KeySetVerifier) Verify(raw string) (Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodEdDSA.Alg(), jwt.SigningMethodRS256.Alg()}),
		jwt.WithLeeway(v.opts.Leeway),
		jwt.WithExpirationRequired(),
	)

	token, err := parser.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (any, error) {
		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			return nil, fmt.Errorf("%w: missing kid", ErrUnknownKID)
		}

		key, err := v.keys.Get(kid)
		if err != nil {
			return nil, fmt.Errorf("%w %q", ErrUnknownKID, kid)
		}

		switch k := key.(type) {
		case ed25519.PublicKey:
			if t.Method.Alg() != jwt.SigningMethodEdDSA.Alg() {
				return nil, ErrKeyType
			}
			return k, nil
		case *rsa.PublicKey:
			if t.Method.Alg() != jwt.SigningMethodRS256.Alg() {
				return nil, ErrKeyType
			}
			return k, nil
		default:
			return nil, ErrKeyType
		}
	})
	if err != nil {
		return Claims{}, fmt.Errorf("jwtx: parse or verify: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Claims{}, ErrInvalidClaim
	}

	if err := claims.ValidateIssuer(v.opts.Issuer); err != nil {
		return Claims{}, err
	}
	if err := claims.ValidateAudience(v.opts.Audience); err != nil {
		return Claims{}, err
	}
	if err := claims.ValidateIdentity(); err != nil {
		return Claims{}, err
	}

	return *claims, nil
}
