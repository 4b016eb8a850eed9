package middleware

import "context"

type identityKey struct{}

// Identity is the resolved caller attached to the request context by the
// auth middleware. Test harnesses may inject one directly with WithIdentity;
// request parsing has no other way to produce an identity than a verified
// token.
type Identity struct {
	UserID string
	Role   string
}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

func IdentityFrom(ctx context.Context) (Identity, bool) {
	v, ok := ctx.Value(identityKey{}).(Identity)
	return v, ok
}
