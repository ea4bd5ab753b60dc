// Package auth turns an inbound request's bearer credential into a
// request-scoped identity. The identity is resolved once, before any
// resolver runs, and carried on the context.
package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/hmans/rolodex/internal/contact"
	"github.com/hmans/rolodex/internal/store"
	"github.com/hmans/rolodex/internal/token"
)

// ErrNotAuthenticated is returned by RequireUser when no identity was
// resolved for the request.
var ErrNotAuthenticated = errors.New("not authenticated")

// Identity is the per-request resolved account, or the absence thereof.
// A nil User with a nil Err is an anonymous request. Err records a
// credential that was present but failed verification; read paths ignore
// it, operations that mandate identity surface it.
type Identity struct {
	User *contact.User
	Err  error
}

type contextKey struct{}

// WithIdentity returns a context carrying the identity.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// IdentityFrom returns the identity carried by the context. A context
// without one is anonymous.
func IdentityFrom(ctx context.Context) Identity {
	id, _ := ctx.Value(contextKey{}).(Identity)
	return id
}

// CurrentUser returns the resolved account, or nil for anonymous
// requests. Invalid credentials read as anonymous here.
func CurrentUser(ctx context.Context) *contact.User {
	return IdentityFrom(ctx).User
}

// RequireUser returns the resolved account or the reason there is none:
// token.ErrInvalidToken for a bad credential, ErrNotAuthenticated for an
// absent one.
func RequireUser(ctx context.Context) (*contact.User, error) {
	id := IdentityFrom(ctx)
	if id.Err != nil {
		return nil, id.Err
	}
	if id.User == nil {
		return nil, ErrNotAuthenticated
	}
	return id.User, nil
}

// Builder resolves bearer credentials into identities.
type Builder struct {
	dir   store.Directory
	codec *token.Codec
}

// NewBuilder creates a builder over the given directory and codec.
func NewBuilder(dir store.Directory, codec *token.Codec) *Builder {
	return &Builder{dir: dir, codec: codec}
}

// Resolve builds the identity for the given Authorization header value
// and returns a context carrying it. The sequence is fixed: extract the
// bearer token, verify it, then load the account with its friend list
// expanded, so every handler downstream sees ready-to-serve entities.
//
// An absent or non-bearer header is anonymous, not an error. A
// well-formed token naming no account is also anonymous. Only a failed
// verification is recorded, and even that surfaces solely through
// RequireUser.
func (b *Builder) Resolve(ctx context.Context, authorization string) (context.Context, error) {
	raw, ok := bearerToken(authorization)
	if !ok {
		return WithIdentity(ctx, Identity{}), nil
	}

	claims, err := b.codec.Verify(raw)
	if err != nil {
		return WithIdentity(ctx, Identity{Err: err}), nil
	}

	user, err := b.dir.UserByID(ctx, claims.AccountID)
	if err != nil {
		return ctx, err
	}
	return WithIdentity(ctx, Identity{User: user}), nil
}

// bearerToken extracts the credential from an Authorization header,
// matching the scheme case-insensitively.
func bearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}
