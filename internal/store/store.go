// Package store provides persistence for the contact directory. The
// Directory interface is the repository contract consumed by the
// resolver and auth layers; SQLite backs the only real implementation.
package store

import (
	"context"

	"github.com/hmans/rolodex/internal/contact"
)

// PhoneFilter is the tri-state filter for listing persons.
type PhoneFilter int

const (
	// PhoneAny returns every person.
	PhoneAny PhoneFilter = iota
	// PhoneSet returns persons with a phone number on file.
	PhoneSet
	// PhoneUnset returns persons without a phone number.
	PhoneUnset
)

// Directory is the repository contract for the two entity collections.
// Lookups return (nil, nil) when no record matches: not-found is not an
// error. Writes enforce the storage-boundary field constraints and
// uniqueness rules, surfacing violations as contact errors.
type Directory interface {
	// CountPersons returns the number of persons in the directory.
	CountPersons(ctx context.Context) (int, error)
	// AllPersons lists persons, optionally filtered by phone presence.
	AllPersons(ctx context.Context, filter PhoneFilter) ([]*contact.Person, error)
	// PersonByName returns the person with the exact name, or nil.
	PersonByName(ctx context.Context, name string) (*contact.Person, error)
	// CreatePerson validates and inserts a person, assigning its ID.
	CreatePerson(ctx context.Context, p *contact.Person) error
	// SavePerson validates and updates an existing person.
	SavePerson(ctx context.Context, p *contact.Person) error

	// CreateUser validates and inserts an account, assigning its ID.
	CreateUser(ctx context.Context, u *contact.User) error
	// UserByID returns the account with its friend list expanded to
	// full person records, or nil.
	UserByID(ctx context.Context, id string) (*contact.User, error)
	// UserByUsername returns the account with its friend list expanded
	// to full person records, or nil.
	UserByUsername(ctx context.Context, username string) (*contact.User, error)
	// SaveFriends persists the account's current friend list.
	SaveFriends(ctx context.Context, u *contact.User) error
}
