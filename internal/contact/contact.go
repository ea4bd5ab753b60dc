// Package contact defines the directory's domain types: persons with a
// derived address, and accounts holding a friend list of person references.
package contact

import (
	"fmt"
)

// Field minimums enforced at the storage boundary. Shorter values are
// rejected with a ValidationError, never truncated.
const (
	MinNameLen     = 5
	MinPhoneLen    = 5
	MinStreetLen   = 5
	MinCityLen     = 3
	MinUsernameLen = 3
)

// Address is a read-only view composed from a person's street and city.
// It is never stored as its own record.
type Address struct {
	Street string `json:"street"`
	City   string `json:"city"`
}

// Person is a directory entry. Phone is optional; the empty string means
// no phone number is on file. Notes is free-text markdown carried by
// imported contact cards and never exposed through the API schema.
type Person struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Phone  string `json:"phone,omitempty"`
	Street string `json:"street"`
	City   string `json:"city"`
	Notes  string `json:"notes,omitempty"`
}

// Address returns the derived address view.
func (p *Person) Address() Address {
	return Address{Street: p.Street, City: p.City}
}

// HasPhone reports whether a phone number is on file.
func (p *Person) HasPhone() bool {
	return p.Phone != ""
}

// Validate checks the storage-boundary field constraints.
func (p *Person) Validate() error {
	if len(p.Name) < MinNameLen {
		return &ValidationError{Field: "name", Message: fmt.Sprintf("name must be at least %d characters", MinNameLen)}
	}
	if p.Phone != "" && len(p.Phone) < MinPhoneLen {
		return &ValidationError{Field: "phone", Message: fmt.Sprintf("phone must be at least %d characters", MinPhoneLen)}
	}
	if len(p.Street) < MinStreetLen {
		return &ValidationError{Field: "street", Message: fmt.Sprintf("street must be at least %d characters", MinStreetLen)}
	}
	if len(p.City) < MinCityLen {
		return &ValidationError{Field: "city", Message: fmt.Sprintf("city must be at least %d characters", MinCityLen)}
	}
	return nil
}

// User is an authenticated principal owning an ordered friend list of
// person references. Friends hold full person records, not bare IDs:
// everything downstream of the auth context expects ready-to-serve
// entities.
type User struct {
	ID       string    `json:"id"`
	Username string    `json:"username"`
	Friends  []*Person `json:"friends"`
}

// Validate checks the storage-boundary field constraints.
func (u *User) Validate() error {
	if len(u.Username) < MinUsernameLen {
		return &ValidationError{Field: "username", Message: fmt.Sprintf("username must be at least %d characters", MinUsernameLen)}
	}
	return nil
}

// HasFriend reports whether the friend list already references the
// person with the given ID.
func (u *User) HasFriend(id string) bool {
	for _, f := range u.Friends {
		if f.ID == id {
			return true
		}
	}
	return false
}

// AddFriend appends a person to the friend list unless already present.
// Membership is idempotent: duplicates by ID are never created. Returns
// true if the list changed.
func (u *User) AddFriend(p *Person) bool {
	if u.HasFriend(p.ID) {
		return false
	}
	u.Friends = append(u.Friends, p)
	return true
}

// FriendIDs returns the ordered person IDs referenced by the friend list.
func (u *User) FriendIDs() []string {
	ids := make([]string, len(u.Friends))
	for i, f := range u.Friends {
		ids[i] = f.ID
	}
	return ids
}
