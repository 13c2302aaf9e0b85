package lookup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"unicode"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/mapping"
	bleveQuery "github.com/blevesearch/bleve/v2/search/query"

	"github.com/pders01/pickr/internal/combobox"
	"github.com/pders01/pickr/internal/debuglog"
)

const defaultIndexLimit = 20

// Index is a full-text index over the option catalog. Documents are keyed
// by option value; queries match whole words and word prefixes of labels.
type Index struct {
	mu    sync.RWMutex
	idx   bleve.Index
	limit int
}

// NewMemIndex creates an index that lives only in memory.
func NewMemIndex(limit int) (*Index, error) {
	idx, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, err
	}
	return newIndex(idx, limit), nil
}

// OpenIndex opens the index at path, creating it when missing.
func OpenIndex(path string, limit int) (*Index, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	idx, err := bleve.Open(path)
	if err != nil {
		idx, err = bleve.New(path, buildIndexMapping())
		if err != nil {
			return nil, err
		}
	}
	return newIndex(idx, limit), nil
}

func newIndex(idx bleve.Index, limit int) *Index {
	if limit <= 0 {
		limit = defaultIndexLimit
	}
	return &Index{idx: idx, limit: limit}
}

func buildIndexMapping() mapping.IndexMapping {
	im := bleve.NewIndexMapping()
	im.DefaultAnalyzer = standard.Name

	dm := bleve.NewDocumentMapping()

	label := bleve.NewTextFieldMapping()
	label.Analyzer = standard.Name
	label.Store = true
	label.IncludeTermVectors = true

	// Stored verbatim so hits can be turned back into options.
	raw := bleve.NewTextFieldMapping()
	raw.Analyzer = keyword.Name
	raw.Store = true
	raw.Index = false

	value := bleve.NewTextFieldMapping()
	value.Analyzer = standard.Name
	value.Store = true

	dm.AddFieldMappingsAt("label", label)
	dm.AddFieldMappingsAt("label_raw", raw)
	dm.AddFieldMappingsAt("value", value)

	im.DefaultMapping = dm
	return im
}

func document(o combobox.Option) map[string]any {
	return map[string]any{
		"label":     o.Label,
		"label_raw": o.Label,
		"value":     o.Value,
	}
}

// SetOptions replaces the indexed catalog with options.
func (x *Index) SetOptions(options []combobox.Option) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	ids, err := x.allIDs()
	if err != nil {
		return err
	}
	keep := make(map[string]bool, len(options))
	batch := x.idx.NewBatch()
	for _, o := range options {
		keep[o.Value] = true
		if err := batch.Index(o.Value, document(o)); err != nil {
			return fmt.Errorf("indexing %q: %w", o.Value, err)
		}
	}
	removed := 0
	for _, id := range ids {
		if !keep[id] {
			batch.Delete(id)
			removed++
		}
	}
	if err := x.idx.Batch(batch); err != nil {
		return err
	}
	debuglog.Debugf("Reindexed lookup catalog: %d options, %d removed", len(options), removed)
	return nil
}

// Add indexes options without touching the rest of the catalog.
func (x *Index) Add(options ...combobox.Option) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	batch := x.idx.NewBatch()
	for _, o := range options {
		if err := batch.Index(o.Value, document(o)); err != nil {
			return fmt.Errorf("indexing %q: %w", o.Value, err)
		}
	}
	return x.idx.Batch(batch)
}

func (x *Index) allIDs() ([]string, error) {
	count, err := x.idx.DocCount()
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}
	req := bleve.NewSearchRequestOptions(bleve.NewMatchAllQuery(), int(count), 0, false)
	res, err := x.idx.Search(req)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(res.Hits))
	for _, h := range res.Hits {
		ids = append(ids, h.ID)
	}
	return ids, nil
}

// DocCount reports the number of indexed options.
func (x *Index) DocCount() (int, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()
	n, err := x.idx.DocCount()
	return int(n), err
}

func (x *Index) Lookup(ctx context.Context, query string) ([]combobox.Option, error) {
	terms := tokenize(query)
	if len(terms) == 0 {
		return []combobox.Option{}, nil
	}

	var qs []bleveQuery.Query
	for _, term := range terms {
		// label^4, label prefix^3.5, value prefix^1
		qm := bleve.NewMatchQuery(term)
		qm.SetField("label")
		qm.SetBoost(4.0)
		qs = append(qs, qm)

		qp := bleve.NewPrefixQuery(term)
		qp.SetField("label")
		qp.SetBoost(3.5)
		qs = append(qs, qp)

		qv := bleve.NewPrefixQuery(term)
		qv.SetField("value")
		qv.SetBoost(1.0)
		qs = append(qs, qv)
	}

	req := bleve.NewSearchRequestOptions(bleve.NewDisjunctionQuery(qs...), x.limit, 0, false)
	req.Fields = []string{"label_raw", "value"}

	x.mu.RLock()
	res, err := x.idx.SearchInContext(ctx, req)
	x.mu.RUnlock()
	if err != nil {
		return nil, err
	}

	out := make([]combobox.Option, 0, len(res.Hits))
	for _, h := range res.Hits {
		o := combobox.Option{Value: h.ID}
		if l, ok := h.Fields["label_raw"].(string); ok {
			o.Label = l
		}
		if o.Label == "" {
			o.Label = o.Value
		}
		out = append(out, o)
	}
	return out, nil
}

func (x *Index) Close() error {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.idx.Close()
}

// tokenize lowercases text and splits it on anything that is not a letter
// or digit, the way the standard analyzer does.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}
