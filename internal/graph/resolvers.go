package graph

import (
	"context"

	"github.com/vektah/gqlparser/v2/gqlerror"

	"github.com/hmans/rolodex/internal/auth"
	"github.com/hmans/rolodex/internal/contact"
	"github.com/hmans/rolodex/internal/store"
	"github.com/hmans/rolodex/internal/token"
)

// sharedPassword is the single fixed credential every account logs in
// with. Hardening this is deliberately out of scope.
const sharedPassword = "1234"

// Token is the opaque credential returned by login.
type Token struct {
	Value string `json:"value"`
}

// Resolver holds the collaborators the operation handlers need: the
// directory repository and the token codec.
type Resolver struct {
	Dir   store.Directory
	Codec *token.Codec
}

// NewResolver creates a resolver over the given directory and codec.
func NewResolver(dir store.Directory, codec *token.Codec) *Resolver {
	return &Resolver{Dir: dir, Codec: codec}
}

// PersonCount returns the number of persons in the directory.
func (r *Resolver) PersonCount(ctx context.Context, args map[string]interface{}) (interface{}, *gqlerror.Error) {
	n, err := r.Dir.CountPersons(ctx)
	if err != nil {
		return nil, errInternal(err)
	}
	return n, nil
}

// AllPersons lists persons. The optional phone argument is tri-state:
// absent returns everyone, YES only persons with a phone, NO only
// persons without one.
func (r *Resolver) AllPersons(ctx context.Context, args map[string]interface{}) (interface{}, *gqlerror.Error) {
	filter := store.PhoneAny
	switch args["phone"] {
	case "YES":
		filter = store.PhoneSet
	case "NO":
		filter = store.PhoneUnset
	}

	persons, err := r.Dir.AllPersons(ctx, filter)
	if err != nil {
		return nil, errInternal(err)
	}
	if persons == nil {
		persons = []*contact.Person{}
	}
	return persons, nil
}

// FindPerson returns the person with the exact name, or null. Absence is
// not an error.
func (r *Resolver) FindPerson(ctx context.Context, args map[string]interface{}) (interface{}, *gqlerror.Error) {
	p, err := r.Dir.PersonByName(ctx, stringArg(args, "name"))
	if err != nil {
		return nil, errInternal(err)
	}
	if p == nil {
		return nil, nil
	}
	return p, nil
}

// Me returns the current user, or null for anonymous requests. An
// invalid credential reads as anonymous here.
func (r *Resolver) Me(ctx context.Context, args map[string]interface{}) (interface{}, *gqlerror.Error) {
	user := auth.CurrentUser(ctx)
	if user == nil {
		return nil, nil
	}
	return user, nil
}

// AddPerson creates a person and appends it to the caller's friend list.
// The person insert and the friend-list write are two independent
// commits; a failure between them is not rolled back.
func (r *Resolver) AddPerson(ctx context.Context, args map[string]interface{}) (interface{}, *gqlerror.Error) {
	user, err := auth.RequireUser(ctx)
	if err != nil {
		return nil, errAuth(err)
	}

	p := &contact.Person{
		Name:   stringArg(args, "name"),
		Phone:  stringArg(args, "phone"),
		Street: stringArg(args, "street"),
		City:   stringArg(args, "city"),
	}
	if err := r.Dir.CreatePerson(ctx, p); err != nil {
		return nil, errStore(err, args)
	}

	user.AddFriend(p)
	if err := r.Dir.SaveFriends(ctx, user); err != nil {
		return nil, errStore(err, args)
	}
	return p, nil
}

// EditNumber sets the phone of the person with the given name. An
// unknown name returns null, not an error.
func (r *Resolver) EditNumber(ctx context.Context, args map[string]interface{}) (interface{}, *gqlerror.Error) {
	p, err := r.Dir.PersonByName(ctx, stringArg(args, "name"))
	if err != nil {
		return nil, errInternal(err)
	}
	if p == nil {
		return nil, nil
	}

	p.Phone = stringArg(args, "phone")
	if err := r.Dir.SavePerson(ctx, p); err != nil {
		return nil, errStore(err, args)
	}
	return p, nil
}

// CreateUser creates an account with an empty friend list.
func (r *Resolver) CreateUser(ctx context.Context, args map[string]interface{}) (interface{}, *gqlerror.Error) {
	u := &contact.User{
		Username: stringArg(args, "username"),
		Friends:  []*contact.Person{},
	}
	if err := r.Dir.CreateUser(ctx, u); err != nil {
		return nil, errStore(err, args)
	}
	return u, nil
}

// Login checks the username and the shared password and returns a signed
// token. The failure shape never reveals which check failed.
func (r *Resolver) Login(ctx context.Context, args map[string]interface{}) (interface{}, *gqlerror.Error) {
	u, err := r.Dir.UserByUsername(ctx, stringArg(args, "username"))
	if err != nil {
		return nil, errInternal(err)
	}
	if u == nil || stringArg(args, "password") != sharedPassword {
		return nil, errInvalidCredentials()
	}

	signed, err := r.Codec.Sign(u.Username, u.ID)
	if err != nil {
		return nil, errInternal(err)
	}
	return Token{Value: signed}, nil
}

// AddAsFriend appends the named person to the caller's friend list if
// not already referenced, and returns the caller either way. Repeated
// calls are no-ops.
func (r *Resolver) AddAsFriend(ctx context.Context, args map[string]interface{}) (interface{}, *gqlerror.Error) {
	user, err := auth.RequireUser(ctx)
	if err != nil {
		return nil, errAuth(err)
	}

	p, err := r.Dir.PersonByName(ctx, stringArg(args, "name"))
	if err != nil {
		return nil, errInternal(err)
	}
	if p == nil {
		return nil, errValidation(contact.ErrUnknownPerson, args)
	}

	if user.AddFriend(p) {
		if err := r.Dir.SaveFriends(ctx, user); err != nil {
			return nil, errStore(err, args)
		}
	}
	return user, nil
}

func stringArg(args map[string]interface{}, name string) string {
	s, _ := args[name].(string)
	return s
}
