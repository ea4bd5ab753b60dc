package contact

import "errors"

var (
	// ErrNameTaken is returned when creating a person whose name is
	// already in the directory.
	ErrNameTaken = errors.New("name already taken")
	// ErrUsernameTaken is returned when creating an account whose
	// username already exists.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrUnknownPerson is returned when a friend link names a person
	// that does not exist in the directory.
	ErrUnknownPerson = errors.New("unknown person")
)

// ValidationError describes a field rejected at the storage boundary.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsValidation reports whether err is a storage-boundary rejection:
// either a field-constraint violation or a uniqueness conflict.
func IsValidation(err error) bool {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return true
	}
	return errors.Is(err, ErrNameTaken) || errors.Is(err, ErrUsernameTaken) || errors.Is(err, ErrUnknownPerson)
}
