package graph

import (
	"github.com/hmans/rolodex/internal/contact"
)

// fieldSource exposes one object's fields by name to the projection
// step.
type fieldSource func(name string) (interface{}, bool)

// objectFields maps a domain value to its schema type name and field
// accessor. This is where view-only fields live: a person's address is
// composed from the stored street and city and never persisted.
func objectFields(val interface{}) (string, fieldSource, bool) {
	switch v := val.(type) {
	case *contact.Person:
		return "Person", personFields(v), true
	case contact.Address:
		return "Address", addressFields(v), true
	case *contact.User:
		return "User", userFields(v), true
	case Token:
		return "Token", tokenFields(v), true
	}
	return "", nil, false
}

func personFields(p *contact.Person) fieldSource {
	return func(name string) (interface{}, bool) {
		switch name {
		case "name":
			return p.Name, true
		case "phone":
			if !p.HasPhone() {
				return nil, true
			}
			return p.Phone, true
		case "address":
			return p.Address(), true
		case "id":
			return p.ID, true
		}
		return nil, false
	}
}

func addressFields(a contact.Address) fieldSource {
	return func(name string) (interface{}, bool) {
		switch name {
		case "street":
			return a.Street, true
		case "city":
			return a.City, true
		}
		return nil, false
	}
}

func userFields(u *contact.User) fieldSource {
	return func(name string) (interface{}, bool) {
		switch name {
		case "username":
			return u.Username, true
		case "friends":
			items := make([]interface{}, len(u.Friends))
			for i, f := range u.Friends {
				items[i] = f
			}
			return items, true
		case "id":
			return u.ID, true
		}
		return nil, false
	}
}

func tokenFields(t Token) fieldSource {
	return func(name string) (interface{}, bool) {
		if name == "value" {
			return t.Value, true
		}
		return nil, false
	}
}
