package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/mattn/go-sqlite3"

	"github.com/hmans/rolodex/internal/contact"
)

const idLength = 12

const schema = `
CREATE TABLE IF NOT EXISTS persons (
	id     TEXT PRIMARY KEY,
	name   TEXT NOT NULL UNIQUE,
	phone  TEXT,
	street TEXT NOT NULL,
	city   TEXT NOT NULL,
	notes  TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS accounts (
	id       TEXT PRIMARY KEY,
	username TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS friends (
	account_id TEXT NOT NULL REFERENCES accounts(id),
	person_id  TEXT NOT NULL REFERENCES persons(id),
	position   INTEGER NOT NULL,
	PRIMARY KEY (account_id, person_id)
);
`

// SQLite is the sqlite-backed Directory implementation.
type SQLite struct {
	db *sql.DB
}

var _ Directory = (*SQLite)(nil)

// Open opens (and initializes, if needed) a sqlite database at the given
// path. Use ":memory:" for an in-memory database.
func Open(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

// Close closes the underlying database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// isUniqueViolation reports whether err is a sqlite UNIQUE constraint
// failure.
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}

func (s *SQLite) CountPersons(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM persons").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting persons: %w", err)
	}
	return n, nil
}

func (s *SQLite) AllPersons(ctx context.Context, filter PhoneFilter) ([]*contact.Person, error) {
	query := "SELECT id, name, phone, street, city, notes FROM persons"
	switch filter {
	case PhoneSet:
		query += " WHERE phone IS NOT NULL"
	case PhoneUnset:
		query += " WHERE phone IS NULL"
	}
	query += " ORDER BY name"

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing persons: %w", err)
	}
	defer rows.Close()

	var persons []*contact.Person
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, err
		}
		persons = append(persons, p)
	}
	return persons, rows.Err()
}

func (s *SQLite) PersonByName(ctx context.Context, name string) (*contact.Person, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, name, phone, street, city, notes FROM persons WHERE name = ?", name)
	p, err := scanPerson(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *SQLite) CreatePerson(ctx context.Context, p *contact.Person) error {
	if err := p.Validate(); err != nil {
		return err
	}

	if p.ID == "" {
		id, err := gonanoid.New(idLength)
		if err != nil {
			return fmt.Errorf("generating id: %w", err)
		}
		p.ID = id
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO persons (id, name, phone, street, city, notes) VALUES (?, ?, ?, ?, ?, ?)",
		p.ID, p.Name, nullable(p.Phone), p.Street, p.City, p.Notes)
	if isUniqueViolation(err) {
		return contact.ErrNameTaken
	}
	if err != nil {
		return fmt.Errorf("inserting person: %w", err)
	}
	return nil
}

func (s *SQLite) SavePerson(ctx context.Context, p *contact.Person) error {
	if err := p.Validate(); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx,
		"UPDATE persons SET name = ?, phone = ?, street = ?, city = ?, notes = ? WHERE id = ?",
		p.Name, nullable(p.Phone), p.Street, p.City, p.Notes, p.ID)
	if isUniqueViolation(err) {
		return contact.ErrNameTaken
	}
	if err != nil {
		return fmt.Errorf("updating person: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return contact.ErrUnknownPerson
	}
	return nil
}

func (s *SQLite) CreateUser(ctx context.Context, u *contact.User) error {
	if err := u.Validate(); err != nil {
		return err
	}

	if u.ID == "" {
		id, err := gonanoid.New(idLength)
		if err != nil {
			return fmt.Errorf("generating id: %w", err)
		}
		u.ID = id
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO accounts (id, username) VALUES (?, ?)", u.ID, u.Username)
	if isUniqueViolation(err) {
		return contact.ErrUsernameTaken
	}
	if err != nil {
		return fmt.Errorf("inserting account: %w", err)
	}
	return nil
}

func (s *SQLite) UserByID(ctx context.Context, id string) (*contact.User, error) {
	return s.userBy(ctx, "id", id)
}

func (s *SQLite) UserByUsername(ctx context.Context, username string) (*contact.User, error) {
	return s.userBy(ctx, "username", username)
}

func (s *SQLite) userBy(ctx context.Context, column, value string) (*contact.User, error) {
	u := &contact.User{Friends: []*contact.Person{}}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, username FROM accounts WHERE "+column+" = ?", value).Scan(&u.ID, &u.Username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying account: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT p.id, p.name, p.phone, p.street, p.city, p.notes
		FROM friends f
		JOIN persons p ON p.id = f.person_id
		WHERE f.account_id = ?
		ORDER BY f.position`, u.ID)
	if err != nil {
		return nil, fmt.Errorf("expanding friends: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, err
		}
		u.Friends = append(u.Friends, p)
	}
	return u, rows.Err()
}

// SaveFriends rewrites the account's friend links to match the in-memory
// list. This is its own commit, independent of any person write that
// preceded it.
func (s *SQLite) SaveFriends(ctx context.Context, u *contact.User) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM friends WHERE account_id = ?", u.ID); err != nil {
		return fmt.Errorf("clearing friends: %w", err)
	}

	for i, f := range u.Friends {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO friends (account_id, person_id, position) VALUES (?, ?, ?)",
			u.ID, f.ID, i)
		if err != nil {
			var sqliteErr sqlite3.Error
			if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey {
				return contact.ErrUnknownPerson
			}
			return fmt.Errorf("inserting friend link: %w", err)
		}
	}

	return tx.Commit()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPerson(row scanner) (*contact.Person, error) {
	var p contact.Person
	var phone sql.NullString
	if err := row.Scan(&p.ID, &p.Name, &phone, &p.Street, &p.City, &p.Notes); err != nil {
		return nil, err
	}
	p.Phone = phone.String
	return &p, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
