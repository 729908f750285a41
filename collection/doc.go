// Package collection provides a generically-typed, ordered, in-memory item
// collection with an active pointer, automatic secondary indexes, tagging,
// change notification, and JSON state snapshots.
//
// A Collection owns an ordered sequence of items. Positions are zero-based
// indexes into that sequence and shift on insert, remove, and move; identity
// is carried by a designated item attribute (default "id"), never by
// reference. Every mutating call either fully commits and notifies
// subscribers, or changes nothing and reports failure.
//
// # Usage
//
// Create a collection of map items and add a few:
//
//	coll := collection.New(collection.Options[map[string]any]{})
//
//	coll.Add(map[string]any{"id": "a", "label": "Alpha"})
//	coll.Add(map[string]any{"id": "b", "label": "Beta"})
//
//	item, ok := coll.FindBy("label", "Beta")
//
// Struct items work through a property accessor:
//
//	type Track struct {
//	    ID    string `json:"id"`
//	    Title string `json:"title"`
//	}
//
//	coll := collection.New(collection.Options[Track]{
//	    Property: collection.FieldProperty[Track](),
//	})
//
// # Secondary Indexes
//
// FindBy, FindAllBy, IndexBy, and IndexesBy are backed by per-property
// position indexes built lazily on first query. The identity-attribute index
// is kept current after every mutation; other cached indexes are invalidated
// on structural changes and rebuilt on the next query.
//
// # Tags
//
// Tags are named membership sets keyed by position, each with an optional
// cardinality limit. Tag positions are remapped on remove and move so a tag
// keeps following the same logical item. Exceeding a tag's cardinality evicts
// the highest positions first.
//
//	coll.ConfigureTag("selected", collection.TagConfig{Cardinality: 1})
//	coll.ApplyTagAt("selected", 0)
//
// # Active Pointer
//
// At most one position is "active". Next, Previous, First, and Last navigate
// it; removal and move adjust it so it keeps pointing at the same logical
// item. Sort does not remap the active pointer or tag positions; after a sort
// they refer to whatever item now occupies the same numeric slot.
//
// # Change Notifications
//
// Subscribe registers a listener and returns an unsubscribe function:
//
//	unsub := coll.Subscribe(func(snap collection.Snapshot[map[string]any]) {
//	    fmt.Println("size:", snap.Size)
//	})
//	defer unsub()
//
// The listener fires immediately with the current snapshot, then
// synchronously after each committed mutation, in subscription order.
//
// # Full-Text Search
//
// An optional SearchAdapter (see the sibling search package for a bleve-backed
// implementation) receives item content on add and patch and answers exact,
// prefix, and fuzzy queries with ranked identity values.
//
// # Errors
//
// Expected failures (bad id, out-of-range position, capacity reached) are
// reported through boolean or count returns, never panics. Tagging with an
// unregistered tag name while StrictTags is enabled is a programming error
// and panics. Restoring from malformed JSON logs the failure and resets the
// collection to empty.
//
// # Thread Safety
//
// A Collection performs no internal locking. All calls, including subscriber
// callbacks, run synchronously on the calling goroutine; a concurrent host
// must serialize access externally, for example with one mutex per instance.
package collection
