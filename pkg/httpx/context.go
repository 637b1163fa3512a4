package httpx

import "context"

type ctxKey int

const identityKey ctxKey = iota

// Identity is the verified caller as asserted by the identity provider. It
// says who the caller is, never what they may do.
type Identity struct {
	Subject string
	Email   string
	Name    string

	// EmailVerified is the provider's email_verified claim. Anything keyed
	// on the address, like redeeming an invitation, must require it.
	EmailVerified bool
}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}
