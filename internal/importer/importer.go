// Package importer loads markdown contact cards into the directory
// store, once or continuously via a filesystem watcher.
package importer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hmans/rolodex/internal/contact"
	"github.com/hmans/rolodex/internal/store"
)

// Result summarizes one import pass.
type Result struct {
	Created int
	Updated int
	Skipped []SkippedCard
}

// SkippedCard records a card that could not be imported and why.
type SkippedCard struct {
	Path   string
	Reason error
}

// Import reads every .md card in dir and upserts it into the directory,
// keyed by contact name. Cards the store rejects are collected as
// skipped rather than aborting the pass.
func Import(ctx context.Context, dir store.Directory, cardsDir string) (*Result, error) {
	entries, err := os.ReadDir(cardsDir)
	if err != nil {
		return nil, fmt.Errorf("reading cards directory: %w", err)
	}

	result := &Result{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}

		path := filepath.Join(cardsDir, entry.Name())
		if err := importCard(ctx, dir, path, result); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func importCard(ctx context.Context, dir store.Directory, path string, result *Result) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	card, err := contact.ParseCard(f)
	if err != nil {
		result.Skipped = append(result.Skipped, SkippedCard{Path: path, Reason: err})
		return nil
	}

	existing, err := dir.PersonByName(ctx, card.Name)
	if err != nil {
		return err
	}

	if existing == nil {
		if err := dir.CreatePerson(ctx, card); err != nil {
			if contact.IsValidation(err) {
				result.Skipped = append(result.Skipped, SkippedCard{Path: path, Reason: err})
				return nil
			}
			return err
		}
		result.Created++
		return nil
	}

	existing.Phone = card.Phone
	existing.Street = card.Street
	existing.City = card.City
	existing.Notes = card.Notes
	if err := dir.SavePerson(ctx, existing); err != nil {
		if contact.IsValidation(err) {
			result.Skipped = append(result.Skipped, SkippedCard{Path: path, Reason: err})
			return nil
		}
		return err
	}
	result.Updated++
	return nil
}

// Export writes every person in the directory as a markdown card in
// cardsDir, named after a slug of the contact name.
func Export(ctx context.Context, dir store.Directory, cardsDir string) (int, error) {
	if err := os.MkdirAll(cardsDir, 0755); err != nil {
		return 0, fmt.Errorf("creating cards directory: %w", err)
	}

	persons, err := dir.AllPersons(ctx, store.PhoneAny)
	if err != nil {
		return 0, err
	}

	for _, p := range persons {
		data, err := p.RenderCard()
		if err != nil {
			return 0, err
		}
		path := filepath.Join(cardsDir, Slugify(p.Name)+".md")
		if err := os.WriteFile(path, data, 0644); err != nil {
			return 0, fmt.Errorf("writing %s: %w", path, err)
		}
	}
	return len(persons), nil
}

// Slugify converts a contact name to a filesystem-friendly filename.
func Slugify(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteRune('-')
		}
	}
	return strings.Trim(b.String(), "-")
}
