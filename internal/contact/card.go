package contact

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"
)

// cardFrontMatter is the subset of Person serialized as YAML front matter
// in a markdown contact card. The markdown body becomes the notes.
type cardFrontMatter struct {
	Name   string `yaml:"name"`
	Phone  string `yaml:"phone,omitempty"`
	Street string `yaml:"street"`
	City   string `yaml:"city"`
}

// ParseCard reads a person from a markdown contact card (YAML front
// matter followed by free-text notes). The ID is not part of the card;
// it is assigned by the store.
func ParseCard(r io.Reader) (*Person, error) {
	var fm cardFrontMatter
	body, err := frontmatter.Parse(r, &fm)
	if err != nil {
		return nil, fmt.Errorf("parsing front matter: %w", err)
	}

	return &Person{
		Name:   fm.Name,
		Phone:  fm.Phone,
		Street: fm.Street,
		City:   fm.City,
		Notes:  strings.TrimSpace(string(body)),
	}, nil
}

// RenderCard serializes the person back to a markdown contact card.
func (p *Person) RenderCard() ([]byte, error) {
	fm := cardFrontMatter{
		Name:   p.Name,
		Phone:  p.Phone,
		Street: p.Street,
		City:   p.City,
	}

	fmBytes, err := yaml.Marshal(&fm)
	if err != nil {
		return nil, fmt.Errorf("marshaling front matter: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(fmBytes)
	buf.WriteString("---\n")
	if p.Notes != "" {
		buf.WriteString("\n")
		buf.WriteString(p.Notes)
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}
