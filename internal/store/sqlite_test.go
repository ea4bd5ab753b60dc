package store

import (
	"context"
	"errors"
	"testing"

	"github.com/hmans/rolodex/internal/contact"
)

func setupStore(t *testing.T) *SQLite {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open(:memory:) error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func createTestPerson(t *testing.T, s *SQLite, name, phone string) *contact.Person {
	t.Helper()
	p := &contact.Person{Name: name, Phone: phone, Street: "Tapiolankatu 5 A", City: "Espoo"}
	if err := s.CreatePerson(context.Background(), p); err != nil {
		t.Fatalf("CreatePerson(%q) error = %v", name, err)
	}
	return p
}

func createTestUser(t *testing.T, s *SQLite, username string) *contact.User {
	t.Helper()
	u := &contact.User{Username: username}
	if err := s.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("CreateUser(%q) error = %v", username, err)
	}
	return u
}

func TestCreatePersonAssignsID(t *testing.T) {
	s := setupStore(t)
	p := createTestPerson(t, s, "Arto Hellas", "040-123543")
	if p.ID == "" {
		t.Error("CreatePerson() left ID empty")
	}
}

func TestCreatePersonRejectsShortName(t *testing.T) {
	s := setupStore(t)
	p := &contact.Person{Name: "Bob", Street: "Tapiolankatu 5 A", City: "Espoo"}
	err := s.CreatePerson(context.Background(), p)
	var ve *contact.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("CreatePerson() error = %v, want *ValidationError", err)
	}
	if ve.Field != "name" {
		t.Errorf("field = %q, want %q", ve.Field, "name")
	}

	// Nothing persisted
	n, err := s.CountPersons(context.Background())
	if err != nil {
		t.Fatalf("CountPersons() error = %v", err)
	}
	if n != 0 {
		t.Errorf("CountPersons() = %d, want 0", n)
	}
}

func TestCreatePersonRejectsDuplicateName(t *testing.T) {
	s := setupStore(t)
	createTestPerson(t, s, "Arto Hellas", "")

	p := &contact.Person{Name: "Arto Hellas", Street: "Another Street 1", City: "Espoo"}
	if err := s.CreatePerson(context.Background(), p); !errors.Is(err, contact.ErrNameTaken) {
		t.Errorf("CreatePerson() error = %v, want ErrNameTaken", err)
	}
}

func TestAllPersonsPhoneFilterPartitions(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	createTestPerson(t, s, "Arto Hellas", "040-123543")
	createTestPerson(t, s, "Matti Luukkainen", "040-432342")
	createTestPerson(t, s, "Venla Ruuska", "")

	all, err := s.AllPersons(ctx, PhoneAny)
	if err != nil {
		t.Fatalf("AllPersons(PhoneAny) error = %v", err)
	}
	withPhone, err := s.AllPersons(ctx, PhoneSet)
	if err != nil {
		t.Fatalf("AllPersons(PhoneSet) error = %v", err)
	}
	withoutPhone, err := s.AllPersons(ctx, PhoneUnset)
	if err != nil {
		t.Fatalf("AllPersons(PhoneUnset) error = %v", err)
	}

	if len(all) != 3 {
		t.Errorf("PhoneAny count = %d, want 3", len(all))
	}
	if len(withPhone) != 2 {
		t.Errorf("PhoneSet count = %d, want 2", len(withPhone))
	}
	if len(withoutPhone) != 1 {
		t.Errorf("PhoneUnset count = %d, want 1", len(withoutPhone))
	}
	if len(withPhone)+len(withoutPhone) != len(all) {
		t.Error("phone filters do not partition the full set")
	}
	for _, p := range withPhone {
		if !p.HasPhone() {
			t.Errorf("PhoneSet returned %q without phone", p.Name)
		}
	}
	for _, p := range withoutPhone {
		if p.HasPhone() {
			t.Errorf("PhoneUnset returned %q with phone %q", p.Name, p.Phone)
		}
	}
}

func TestPersonByName(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	created := createTestPerson(t, s, "Arto Hellas", "040-123543")

	t.Run("found", func(t *testing.T) {
		got, err := s.PersonByName(ctx, "Arto Hellas")
		if err != nil {
			t.Fatalf("PersonByName() error = %v", err)
		}
		if got == nil || got.ID != created.ID {
			t.Errorf("PersonByName() = %+v, want ID %q", got, created.ID)
		}
	})

	t.Run("absent is not an error", func(t *testing.T) {
		got, err := s.PersonByName(ctx, "Nobody Nowhere")
		if err != nil {
			t.Fatalf("PersonByName() error = %v", err)
		}
		if got != nil {
			t.Errorf("PersonByName() = %+v, want nil", got)
		}
	})
}

func TestSavePersonUpdatesPhoneOnly(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	p := createTestPerson(t, s, "Arto Hellas", "")

	p.Phone = "045-1232456"
	if err := s.SavePerson(ctx, p); err != nil {
		t.Fatalf("SavePerson() error = %v", err)
	}

	got, err := s.PersonByName(ctx, "Arto Hellas")
	if err != nil {
		t.Fatalf("PersonByName() error = %v", err)
	}
	if got.Phone != "045-1232456" {
		t.Errorf("phone = %q, want %q", got.Phone, "045-1232456")
	}
	if got.Street != "Tapiolankatu 5 A" || got.City != "Espoo" {
		t.Errorf("other fields changed: %+v", got)
	}
}

func TestSavePersonUnknownID(t *testing.T) {
	s := setupStore(t)
	p := &contact.Person{ID: "missing", Name: "Arto Hellas", Street: "Tapiolankatu 5 A", City: "Espoo"}
	if err := s.SavePerson(context.Background(), p); !errors.Is(err, contact.ErrUnknownPerson) {
		t.Errorf("SavePerson() error = %v, want ErrUnknownPerson", err)
	}
}

func TestCreateUserUniqueUsername(t *testing.T) {
	s := setupStore(t)
	createTestUser(t, s, "alice")

	u := &contact.User{Username: "alice"}
	if err := s.CreateUser(context.Background(), u); !errors.Is(err, contact.ErrUsernameTaken) {
		t.Errorf("CreateUser() error = %v, want ErrUsernameTaken", err)
	}
}

func TestUserLookupsExpandFriends(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	u := createTestUser(t, s, "alice")
	p1 := createTestPerson(t, s, "Arto Hellas", "040-123543")
	p2 := createTestPerson(t, s, "Matti Luukkainen", "")

	u.AddFriend(p1)
	u.AddFriend(p2)
	if err := s.SaveFriends(ctx, u); err != nil {
		t.Fatalf("SaveFriends() error = %v", err)
	}

	t.Run("by id", func(t *testing.T) {
		got, err := s.UserByID(ctx, u.ID)
		if err != nil {
			t.Fatalf("UserByID() error = %v", err)
		}
		if got == nil {
			t.Fatal("UserByID() = nil")
		}
		if len(got.Friends) != 2 {
			t.Fatalf("friends count = %d, want 2", len(got.Friends))
		}
		// Friends are full records in insertion order, not bare IDs
		if got.Friends[0].Name != "Arto Hellas" || got.Friends[1].Name != "Matti Luukkainen" {
			t.Errorf("friends = [%q, %q], want insertion order", got.Friends[0].Name, got.Friends[1].Name)
		}
		if got.Friends[0].Street == "" {
			t.Error("friend records not expanded")
		}
	})

	t.Run("by username", func(t *testing.T) {
		got, err := s.UserByUsername(ctx, "alice")
		if err != nil {
			t.Fatalf("UserByUsername() error = %v", err)
		}
		if got == nil || got.ID != u.ID {
			t.Fatalf("UserByUsername() = %+v, want ID %q", got, u.ID)
		}
		if len(got.Friends) != 2 {
			t.Errorf("friends count = %d, want 2", len(got.Friends))
		}
	})

	t.Run("absent user", func(t *testing.T) {
		got, err := s.UserByID(ctx, "missing")
		if err != nil {
			t.Fatalf("UserByID() error = %v", err)
		}
		if got != nil {
			t.Errorf("UserByID() = %+v, want nil", got)
		}
	})
}

func TestSaveFriendsRejectsUnknownPerson(t *testing.T) {
	s := setupStore(t)
	u := createTestUser(t, s, "alice")
	u.Friends = append(u.Friends, &contact.Person{ID: "ghost"})
	if err := s.SaveFriends(context.Background(), u); !errors.Is(err, contact.ErrUnknownPerson) {
		t.Errorf("SaveFriends() error = %v, want ErrUnknownPerson", err)
	}
}

func TestSaveFriendsIsIdempotentAcrossSaves(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	u := createTestUser(t, s, "alice")
	p := createTestPerson(t, s, "Arto Hellas", "")

	u.AddFriend(p)
	if err := s.SaveFriends(ctx, u); err != nil {
		t.Fatalf("SaveFriends() error = %v", err)
	}
	// Saving the same list again must not duplicate links
	if err := s.SaveFriends(ctx, u); err != nil {
		t.Fatalf("SaveFriends() error = %v", err)
	}

	got, err := s.UserByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("UserByID() error = %v", err)
	}
	if len(got.Friends) != 1 {
		t.Errorf("friends count = %d, want 1", len(got.Friends))
	}
}
