// Package search provides full-text search over contacts using Bleve.
package search

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"

	"github.com/hmans/rolodex/internal/contact"
)

// Index wraps a Bleve in-memory index for searching contacts.
type Index struct {
	index bleve.Index
}

// personDocument is the structure stored in the Bleve index.
type personDocument struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Phone  string `json:"phone,omitempty"`
	Street string `json:"street"`
	City   string `json:"city"`
	Notes  string `json:"notes,omitempty"`
}

// NewIndex creates a new in-memory Bleve index.
func NewIndex() (*Index, error) {
	idx, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, err
	}
	return &Index{index: idx}, nil
}

// buildIndexMapping creates the Bleve index mapping for contact documents.
func buildIndexMapping() mapping.IndexMapping {
	textFieldMapping := bleve.NewTextFieldMapping()
	textFieldMapping.Analyzer = "standard"

	// ID and phone are stored but not analyzed
	keywordFieldMapping := bleve.NewKeywordFieldMapping()

	personMapping := bleve.NewDocumentMapping()
	personMapping.AddFieldMappingsAt("id", keywordFieldMapping)
	personMapping.AddFieldMappingsAt("name", textFieldMapping)
	personMapping.AddFieldMappingsAt("phone", keywordFieldMapping)
	personMapping.AddFieldMappingsAt("street", textFieldMapping)
	personMapping.AddFieldMappingsAt("city", textFieldMapping)
	personMapping.AddFieldMappingsAt("notes", textFieldMapping)

	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultMapping = personMapping
	indexMapping.DefaultAnalyzer = "standard"
	indexMapping.IndexDynamic = false
	indexMapping.StoreDynamic = false
	indexMapping.ScoringModel = "bm25"

	return indexMapping
}

// Close closes the index.
func (idx *Index) Close() error {
	return idx.index.Close()
}

// IndexPerson adds or updates a person in the search index.
func (idx *Index) IndexPerson(p *contact.Person) error {
	return idx.index.Index(p.ID, toDocument(p))
}

// IndexPersons indexes multiple persons in a batch.
func (idx *Index) IndexPersons(persons []*contact.Person) error {
	batch := idx.index.NewBatch()
	for _, p := range persons {
		if err := batch.Index(p.ID, toDocument(p)); err != nil {
			return err
		}
	}
	return idx.index.Batch(batch)
}

// DeletePerson removes a person from the search index.
func (idx *Index) DeletePerson(id string) error {
	return idx.index.Delete(id)
}

// DefaultSearchLimit is the default maximum number of search results.
const DefaultSearchLimit = 1000

// Search executes a query-string search (terms, AND/OR, wildcards,
// phrases, field:term) and returns matching person IDs ranked by score.
func (idx *Index) Search(queryStr string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	query := bleve.NewQueryStringQuery(queryStr)
	searchRequest := bleve.NewSearchRequest(query)
	searchRequest.Size = limit

	result, err := idx.index.Search(searchRequest)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(result.Hits))
	for _, hit := range result.Hits {
		ids = append(ids, hit.ID)
	}
	return ids, nil
}

func toDocument(p *contact.Person) personDocument {
	return personDocument{
		ID:     p.ID,
		Name:   p.Name,
		Phone:  p.Phone,
		Street: p.Street,
		City:   p.City,
		Notes:  p.Notes,
	}
}
