package collection

import (
	"fmt"
	"time"
)

// Strategy selects how a search query matches indexed content.
type Strategy string

// Search strategies.
const (
	StrategyExact  Strategy = "exact"
	StrategyPrefix Strategy = "prefix"
	StrategyFuzzy  Strategy = "fuzzy"
)

// SearchOptions tunes a single search call.
type SearchOptions struct {
	// MaxDistance is the maximum edit distance for StrategyFuzzy.
	// Zero means the adapter's default.
	MaxDistance int
	// Limit caps the number of hits. Zero means the adapter's default.
	Limit int
}

// SearchAdapter is the narrow full-text search contract the engine consumes.
// Document ids are stringified identity values; the engine maps returned ids
// back to items through the identity index.
type SearchAdapter interface {
	AddOrReplace(content, id string) error
	RemoveByID(id string) error
	Search(query string, strategy Strategy, opts SearchOptions) ([]string, error)
}

// Search runs a full-text query through the configured adapter and maps the
// ranked ids back to items. It returns ErrSearchNotConfigured when no
// adapter was set at construction. Hits whose ids no longer resolve to a
// live item are skipped.
func (c *Collection[T]) Search(query string, strategy Strategy, opts SearchOptions) ([]T, error) {
	if c.search == nil {
		return nil, ErrSearchNotConfigured
	}
	ids, err := c.search.Search(query, strategy, opts)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}

	byKey := make(map[string][]int)
	for v, positions := range c.identityIndex() {
		byKey[searchKey(v)] = positions
	}
	var out []T
	for _, id := range ids {
		for _, pos := range byKey[id] {
			out = append(out, c.items[pos])
		}
	}
	c.lastQuery = &QueryInfo{
		Query:    query,
		Strategy: strategy,
		Hits:     len(out),
		Executed: time.Now(),
	}
	return out, nil
}

// searchIndex (re)indexes the item's content under its stringified identity
// value, replacing any prior entry for that id. An item whose content
// derives to nothing has its entry removed instead.
func (c *Collection[T]) searchIndex(item T) {
	if c.search == nil {
		return
	}
	id, ok := c.property(item, c.idProp)
	if !ok {
		return
	}
	key := searchKey(id)
	if text, ok := c.content(item); ok {
		if err := c.search.AddOrReplace(text, key); err != nil {
			c.logf("search index failed", "id", key, "err", err)
		}
		return
	}
	if err := c.search.RemoveByID(key); err != nil {
		c.logf("search deindex failed", "id", key, "err", err)
	}
}

func (c *Collection[T]) searchRemove(item T) {
	if c.search == nil {
		return
	}
	id, ok := c.property(item, c.idProp)
	if !ok {
		return
	}
	key := searchKey(id)
	if err := c.search.RemoveByID(key); err != nil {
		c.logf("search deindex failed", "id", key, "err", err)
	}
}

func searchKey(id any) string {
	return fmt.Sprint(id)
}
