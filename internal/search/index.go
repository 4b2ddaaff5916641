// Package search provides a fuzzy recovery index over the function table.
// It exists for the one case the two-phase resolvers cannot help with: a
// misspelled or heavily partial name that matches nothing exactly and
// nothing by substring. The index is a session-level convenience and never
// participates in the deterministic lookup protocol.
package search

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/quarrylabs/quarry/internal/codeql"
)

// Match is one search hit: the matched function row and its bleve score.
type Match struct {
	Row   codeql.FunctionRow `json:"row"`
	Score float64            `json:"score"`
}

// Index is an in-memory bleve index over function names and files. Document
// ids are zero-padded row ordinals so equal-score hits keep first-occurrence
// table order.
type Index struct {
	mu        sync.RWMutex
	index     bleve.Index
	rows      []codeql.FunctionRow
	fuzziness int
}

// NewIndex builds an index over rows. Fuzziness sets the edit distance used
// for the fuzzy query leg (0 disables it).
func NewIndex(ctx context.Context, rows []codeql.FunctionRow, fuzziness int) (*Index, error) {
	idx := &Index{fuzziness: fuzziness}
	if err := idx.rebuild(ctx, rows); err != nil {
		return nil, err
	}
	return idx, nil
}

// Rebuild replaces the index contents with a fresh row set.
func (idx *Index) Rebuild(ctx context.Context, rows []codeql.FunctionRow) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	old := idx.index
	if err := idx.rebuild(ctx, rows); err != nil {
		return err
	}
	if old != nil {
		old.Close()
	}
	return nil
}

// rebuild creates a new mem-only index and batch-loads rows into it.
// Caller holds the lock (or owns the Index exclusively).
func (idx *Index) rebuild(ctx context.Context, rows []codeql.FunctionRow) error {
	index, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return fmt.Errorf("failed to create bleve index: %w", err)
	}

	const batchSize = 1000
	batch := index.NewBatch()
	for i, row := range rows {
		if i%batchSize == 0 {
			select {
			case <-ctx.Done():
				index.Close()
				return ctx.Err()
			default:
			}
		}

		doc := map[string]interface{}{
			"name": codeql.SimpleName(codeql.StripQuotes(row.Name)),
			"file": codeql.StripQuotes(row.File),
		}
		if err := batch.Index(docID(i), doc); err != nil {
			index.Close()
			return fmt.Errorf("failed to add row %d to batch: %w", i, err)
		}
		if batch.Size() >= batchSize {
			if err := index.Batch(batch); err != nil {
				index.Close()
				return fmt.Errorf("failed to execute batch: %w", err)
			}
			batch = index.NewBatch()
		}
	}
	if batch.Size() > 0 {
		if err := index.Batch(batch); err != nil {
			index.Close()
			return fmt.Errorf("failed to execute final batch: %w", err)
		}
	}

	idx.index = index
	idx.rows = rows
	return nil
}

// buildIndexMapping creates the index mapping for function documents.
func buildIndexMapping() *mapping.IndexMappingImpl {
	indexMapping := bleve.NewIndexMapping()

	nameMapping := bleve.NewTextFieldMapping()
	nameMapping.Analyzer = "standard"
	nameMapping.Store = false
	nameMapping.Index = true

	fileMapping := bleve.NewTextFieldMapping()
	fileMapping.Analyzer = "standard"
	fileMapping.Store = false
	fileMapping.Index = true

	docMapping := bleve.NewDocumentMapping()
	docMapping.AddFieldMappingsAt("name", nameMapping)
	docMapping.AddFieldMappingsAt("file", fileMapping)

	indexMapping.DefaultMapping = docMapping
	return indexMapping
}

// Search returns up to limit function rows ranked by match quality against
// term. Exact and prefix hits rank above fuzzy ones; ties fall back to
// table order.
func (idx *Index) Search(ctx context.Context, term string, limit int) ([]Match, error) {
	if limit <= 0 || limit > 100 {
		limit = 15
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	matchQuery := bleve.NewMatchQuery(term)
	matchQuery.SetField("name")

	prefixQuery := bleve.NewPrefixQuery(term)
	prefixQuery.SetField("name")

	legs := []query.Query{matchQuery, prefixQuery}
	if idx.fuzziness > 0 {
		fuzzyQuery := bleve.NewFuzzyQuery(term)
		fuzzyQuery.SetField("name")
		fuzzyQuery.SetFuzziness(idx.fuzziness)
		legs = append(legs, fuzzyQuery)
	}

	searchRequest := bleve.NewSearchRequestOptions(bleve.NewDisjunctionQuery(legs...), limit, 0, false)
	searchResult, err := idx.index.SearchInContext(ctx, searchRequest)
	if err != nil {
		return nil, fmt.Errorf("bleve search failed: %w", err)
	}

	matches := make([]Match, 0, len(searchResult.Hits))
	for _, hit := range searchResult.Hits {
		ordinal, err := strconv.Atoi(hit.ID)
		if err != nil || ordinal < 0 || ordinal >= len(idx.rows) {
			continue
		}
		matches = append(matches, Match{Row: idx.rows[ordinal], Score: hit.Score})
	}

	// Equal scores keep first-occurrence table order.
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	return matches, nil
}

// Size returns the number of indexed rows.
func (idx *Index) Size() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.rows)
}

// Close releases the underlying bleve index.
func (idx *Index) Close() error {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	if idx.index != nil {
		return idx.index.Close()
	}
	return nil
}

// docID formats a row ordinal as a fixed-width document id so bleve's id
// tiebreak follows table order.
func docID(ordinal int) string {
	return fmt.Sprintf("%012d", ordinal)
}
