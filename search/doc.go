// Package search provides a bleve-backed implementation of the collection
// package's SearchAdapter contract.
//
// It exists to:
//   - Keep collection small and dependency-light
//   - Confine the bleve dependency to consumers that actually want
//     full-text search
//
// # Usage
//
// The primary type is [BleveAdapter], which implements
// [collection.SearchAdapter] over an in-memory bleve index:
//
//	adapter, err := search.NewBleveAdapter(search.Config{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer adapter.Close()
//
//	coll := collection.New(collection.Options[map[string]any]{
//	    Search: adapter,
//	    Content: func(item map[string]any) (string, bool) {
//	        s, ok := item["label"].(string)
//	        return s, ok
//	    },
//	})
//
// # Strategies
//
// The adapter maps the contract's strategies onto bleve queries:
//
//   - exact: analyzed match query (whole-term matches)
//   - prefix: term prefix query
//   - fuzzy: fuzzy query with a configurable maximum edit distance
//
// # Behavior
//
// Hits are ranked by score, best first. Result count is capped by
// SearchOptions.Limit, falling back to Config.Limit (default 10). The fuzzy
// edit distance falls back to Config.MaxDistance (default 1).
package search
