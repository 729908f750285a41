package search

import (
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/marianmeres/item-collection/collection"
)

// Defaults applied when Config fields are zero.
const (
	DefaultLimit       = 10
	DefaultMaxDistance = 1
)

// ErrUnknownStrategy is returned for a strategy the adapter does not
// implement.
var ErrUnknownStrategy = fmt.Errorf("unknown search strategy")

// Config configures a BleveAdapter.
type Config struct {
	// Limit caps the number of hits when SearchOptions.Limit is zero.
	// Default 10.
	Limit int

	// MaxDistance is the fuzzy edit distance when SearchOptions.MaxDistance
	// is zero. Default 1.
	MaxDistance int
}

// BleveAdapter implements collection.SearchAdapter over an in-memory bleve
// index. Document ids are the stringified identity values handed over by the
// engine.
type BleveAdapter struct {
	index  bleve.Index
	config Config
}

var _ collection.SearchAdapter = (*BleveAdapter)(nil)

type document struct {
	Content string `json:"content"`
}

// NewBleveAdapter creates an adapter over a fresh memory-only bleve index.
func NewBleveAdapter(cfg Config) (*BleveAdapter, error) {
	if cfg.Limit <= 0 {
		cfg.Limit = DefaultLimit
	}
	if cfg.MaxDistance <= 0 {
		cfg.MaxDistance = DefaultMaxDistance
	}

	idx, err := bleve.NewMemOnly(bleve.NewIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("create in-memory index: %w", err)
	}
	return &BleveAdapter{index: idx, config: cfg}, nil
}

// AddOrReplace indexes content under id, replacing any prior entry.
func (a *BleveAdapter) AddOrReplace(content, id string) error {
	return a.index.Index(id, document{Content: content})
}

// RemoveByID drops the entry for id. Removing an unknown id is a no-op.
func (a *BleveAdapter) RemoveByID(id string) error {
	return a.index.Delete(id)
}

// Search returns the ids of matching documents, best score first.
func (a *BleveAdapter) Search(q string, strategy collection.Strategy, opts collection.SearchOptions) ([]string, error) {
	var bq query.Query
	switch strategy {
	case collection.StrategyExact, "":
		bq = bleve.NewMatchQuery(q)
	case collection.StrategyPrefix:
		// Prefix queries run against indexed terms, which the standard
		// analyzer lowercases.
		bq = bleve.NewPrefixQuery(strings.ToLower(q))
	case collection.StrategyFuzzy:
		fq := bleve.NewFuzzyQuery(strings.ToLower(q))
		distance := opts.MaxDistance
		if distance <= 0 {
			distance = a.config.MaxDistance
		}
		fq.SetFuzziness(distance)
		bq = fq
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, strategy)
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = a.config.Limit
	}
	req := bleve.NewSearchRequest(bq)
	req.Size = limit

	res, err := a.index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("bleve search: %w", err)
	}
	ids := make([]string, 0, len(res.Hits))
	for _, hit := range res.Hits {
		ids = append(ids, hit.ID)
	}
	return ids, nil
}

// Close releases the underlying index.
func (a *BleveAdapter) Close() error {
	return a.index.Close()
}
