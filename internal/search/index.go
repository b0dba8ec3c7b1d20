// Package search builds and queries the in-memory full-text index over the
// prompt collection. The index is immutable once built; callers rebuild it
// whenever the collection changes.
package search

import (
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
)

// Field boosts bias ranking toward title and description matches over body
// matches.
const (
	titleBoost       = 10.0
	descriptionBoost = 5.0
	bodyBoost        = 1.0
)

// Document is the indexable projection of a prompt.
type Document struct {
	ID          string
	Title       string
	Description string
	Content     string
	WhenToUse   string
}

// indexedDoc is what actually goes into the index. The id travels as the
// bleve doc id, not as an indexed field.
type indexedDoc struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
	WhenToUse   string `json:"when_to_use"`
}

// Index wraps an in-memory bleve index over a fixed document set.
type Index struct {
	idx  bleve.Index
	size int
}

// Build constructs the index. It returns nil when no index can be
// constructed; callers treat that as "no index available" and score with
// the substring fallback instead of failing.
func Build(docs []Document) *Index {
	indexMapping := bleve.NewIndexMapping()

	textField := bleve.NewTextFieldMapping()
	textField.Store = false
	textField.IncludeTermVectors = false

	docMapping := bleve.NewDocumentMapping()
	docMapping.Dynamic = false
	docMapping.AddFieldMappingsAt("title", textField)
	docMapping.AddFieldMappingsAt("description", textField)
	docMapping.AddFieldMappingsAt("content", textField)
	docMapping.AddFieldMappingsAt("when_to_use", textField)
	indexMapping.DefaultMapping = docMapping

	idx, err := bleve.NewMemOnly(indexMapping)
	if err != nil {
		return nil
	}

	batch := idx.NewBatch()
	for _, d := range docs {
		err := batch.Index(d.ID, indexedDoc{
			Title:       d.Title,
			Description: d.Description,
			Content:     d.Content,
			WhenToUse:   d.WhenToUse,
		})
		if err != nil {
			_ = idx.Close()
			return nil
		}
	}
	if err := idx.Batch(batch); err != nil {
		_ = idx.Close()
		return nil
	}

	return &Index{idx: idx, size: len(docs)}
}

// Close releases the underlying bleve index. Safe on nil.
func (x *Index) Close() {
	if x == nil || x.idx == nil {
		return
	}
	_ = x.idx.Close()
}

// Query scores every matching document for q, keyed by document id.
// Documents absent from the result matched no term. A malformed query
// (query-string syntax the parser rejects, e.g. an unbalanced quote) is
// returned as an error so the caller can fall back to substring scoring.
func (x *Index) Query(q string) (map[string]float64, error) {
	if x == nil || x.idx == nil {
		return nil, fmt.Errorf("no index available")
	}

	// Gate on the query-string grammar first: this is where user input with
	// stray quotes, colons or tildes blows up, and the contract is to fall
	// back rather than surface a syntax error.
	if _, err := query.NewQueryStringQuery(q).Parse(); err != nil {
		return nil, fmt.Errorf("parse query %q: %w", q, err)
	}

	fieldQuery := func(field string, boost float64) query.Query {
		mq := bleve.NewMatchQuery(q)
		mq.SetField(field)
		mq.SetBoost(boost)
		return mq
	}
	disjunction := bleve.NewDisjunctionQuery(
		fieldQuery("title", titleBoost),
		fieldQuery("description", descriptionBoost),
		fieldQuery("content", bodyBoost),
		fieldQuery("when_to_use", bodyBoost),
	)

	req := bleve.NewSearchRequestOptions(disjunction, x.size, 0, false)
	res, err := x.idx.Search(req)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", q, err)
	}

	scores := make(map[string]float64, len(res.Hits))
	for _, hit := range res.Hits {
		scores[hit.ID] = hit.Score
	}
	return scores, nil
}

// FallbackScores is the deterministic substring comparator used when no
// index exists or the indexed query failed: 2 for a title match, 1 for a
// description or content match, 0 otherwise.
func FallbackScores(q string, docs []Document) map[string]float64 {
	lower := strings.ToLower(q)
	scores := make(map[string]float64, len(docs))
	for _, d := range docs {
		switch {
		case strings.Contains(strings.ToLower(d.Title), lower):
			scores[d.ID] = 2
		case strings.Contains(strings.ToLower(d.Description), lower),
			strings.Contains(strings.ToLower(d.Content), lower):
			scores[d.ID] = 1
		default:
			scores[d.ID] = 0
		}
	}
	return scores
}
