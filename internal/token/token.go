// Package token signs and verifies the compact identity tokens exchanged
// with clients. Tokens are HS256-signed over {username, accountId} with a
// process-wide secret and deliberately carry no expiry.
package token

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned when a token is malformed, unsigned by our
// secret, or carries unusable claims.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the identity payload embedded in a token.
type Claims struct {
	Username  string `json:"username"`
	AccountID string `json:"accountId"`
	jwt.RegisteredClaims
}

// Codec signs and verifies identity tokens. It is stateless and safe for
// concurrent use.
type Codec struct {
	secret []byte
}

// NewCodec creates a codec around the given shared secret.
func NewCodec(secret string) *Codec {
	return &Codec{secret: []byte(secret)}
}

// Sign produces the opaque string form of a token for the given identity.
func (c *Codec) Sign(username, accountID string) (string, error) {
	claims := Claims{Username: username, AccountID: accountID}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(c.secret)
	if err != nil {
		return "", err
	}
	return signed, nil
}

// Verify checks the signature and returns the embedded claims. Tokens
// signed with a different secret are rejected.
func (c *Codec) Verify(tokenString string) (*Claims, error) {
	tok, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return c.secret, nil
	})
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := tok.Claims.(*Claims)
	if !ok || claims.AccountID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
