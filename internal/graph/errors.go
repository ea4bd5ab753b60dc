package graph

import (
	"errors"

	"github.com/vektah/gqlparser/v2/gqlerror"

	"github.com/hmans/rolodex/internal/auth"
	"github.com/hmans/rolodex/internal/contact"
	"github.com/hmans/rolodex/internal/token"
)

// Error codes surfaced in the extensions of a GraphQL error.
const (
	CodeNotAuthenticated   = "NOT_AUTHENTICATED"
	CodeInvalidToken       = "INVALID_TOKEN"
	CodeValidationFailed   = "VALIDATION_FAILED"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeInternal           = "INTERNAL"
)

func newError(code, message string) *gqlerror.Error {
	return &gqlerror.Error{
		Message:    message,
		Extensions: map[string]interface{}{"code": code},
	}
}

// errAuth maps an identity failure: a credential that failed
// verification keeps its own code, absence is NOT_AUTHENTICATED.
func errAuth(err error) *gqlerror.Error {
	if errors.Is(err, token.ErrInvalidToken) {
		return newError(CodeInvalidToken, "invalid token")
	}
	if errors.Is(err, auth.ErrNotAuthenticated) {
		return newError(CodeNotAuthenticated, "not authenticated")
	}
	return errInternal(err)
}

// errValidation builds a VALIDATION_FAILED error carrying the offending
// input so the caller can correct it.
func errValidation(err error, args map[string]interface{}) *gqlerror.Error {
	e := newError(CodeValidationFailed, err.Error())
	e.Extensions["invalidArgs"] = args
	return e
}

// errStore maps a repository failure. Storage-boundary rejections become
// validation failures; anything else is internal.
func errStore(err error, args map[string]interface{}) *gqlerror.Error {
	if contact.IsValidation(err) {
		return errValidation(err, args)
	}
	return errInternal(err)
}

// errInvalidCredentials is deliberately uninformative: the same shape
// whether the username is unknown or the password is wrong.
func errInvalidCredentials() *gqlerror.Error {
	return newError(CodeInvalidCredentials, "wrong credentials")
}

func errInternal(err error) *gqlerror.Error {
	return newError(CodeInternal, err.Error())
}
