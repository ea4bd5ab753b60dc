package contact

import (
	"strings"
	"testing"
)

func TestPersonValidate(t *testing.T) {
	valid := Person{Name: "Arto Hellas", Phone: "040-123543", Street: "Tapiolankatu 5 A", City: "Espoo"}

	t.Run("valid person", func(t *testing.T) {
		p := valid
		if err := p.Validate(); err != nil {
			t.Errorf("Validate() error = %v, want nil", err)
		}
	})

	t.Run("no phone is allowed", func(t *testing.T) {
		p := valid
		p.Phone = ""
		if err := p.Validate(); err != nil {
			t.Errorf("Validate() error = %v, want nil", err)
		}
	})

	tests := []struct {
		name   string
		mutate func(*Person)
		field  string
	}{
		{"short name", func(p *Person) { p.Name = "Bob" }, "name"},
		{"short phone", func(p *Person) { p.Phone = "123" }, "phone"},
		{"short street", func(p *Person) { p.Street = "5 A" }, "street"},
		{"short city", func(p *Person) { p.City = "Ii" }, "city"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)
			err := p.Validate()
			if err == nil {
				t.Fatal("Validate() error = nil, want ValidationError")
			}
			ve, ok := err.(*ValidationError)
			if !ok {
				t.Fatalf("Validate() error type = %T, want *ValidationError", err)
			}
			if ve.Field != tt.field {
				t.Errorf("Validate() field = %q, want %q", ve.Field, tt.field)
			}
		})
	}
}

func TestPersonAddress(t *testing.T) {
	p := Person{Name: "Arto Hellas", Street: "123 Main St", City: "Madrid"}
	addr := p.Address()
	if addr.Street != "123 Main St" || addr.City != "Madrid" {
		t.Errorf("Address() = %+v, want {123 Main St Madrid}", addr)
	}
}

func TestUserAddFriend(t *testing.T) {
	u := User{ID: "u1", Username: "alice"}
	p := &Person{ID: "p1", Name: "Arto Hellas"}

	if changed := u.AddFriend(p); !changed {
		t.Error("AddFriend() = false on first add, want true")
	}
	if changed := u.AddFriend(p); changed {
		t.Error("AddFriend() = true on repeat add, want false")
	}
	if len(u.Friends) != 1 {
		t.Errorf("Friends count = %d, want 1", len(u.Friends))
	}
	if !u.HasFriend("p1") {
		t.Error("HasFriend(p1) = false, want true")
	}
}

func TestCardRoundTrip(t *testing.T) {
	p := &Person{
		Name:   "Matti Luukkainen",
		Phone:  "040-432342",
		Street: "Malminkaari 10 A",
		City:   "Helsinki",
		Notes:  "Met at **GopherCon**.",
	}

	data, err := p.RenderCard()
	if err != nil {
		t.Fatalf("RenderCard() error = %v", err)
	}

	got, err := ParseCard(strings.NewReader(string(data)))
	if err != nil {
		t.Fatalf("ParseCard() error = %v", err)
	}

	if got.Name != p.Name || got.Phone != p.Phone || got.Street != p.Street || got.City != p.City {
		t.Errorf("ParseCard() = %+v, want %+v", got, p)
	}
	if got.Notes != p.Notes {
		t.Errorf("ParseCard() notes = %q, want %q", got.Notes, p.Notes)
	}
}

func TestParseCardWithoutNotes(t *testing.T) {
	card := "---\nname: Ada Lovelace\nstreet: Analytical Way 1\ncity: London\n---\n"
	got, err := ParseCard(strings.NewReader(card))
	if err != nil {
		t.Fatalf("ParseCard() error = %v", err)
	}
	if got.Name != "Ada Lovelace" {
		t.Errorf("ParseCard() name = %q, want %q", got.Name, "Ada Lovelace")
	}
	if got.Phone != "" {
		t.Errorf("ParseCard() phone = %q, want empty", got.Phone)
	}
	if got.Notes != "" {
		t.Errorf("ParseCard() notes = %q, want empty", got.Notes)
	}
}
