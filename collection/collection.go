package collection

import (
	"log/slog"
	"reflect"
	"slices"

	"github.com/marianmeres/item-collection/pubsub"
)

// Collection is an ordered, in-memory item collection with an active pointer,
// lazily-built secondary indexes, position-keyed tags, optional full-text
// search, and synchronous change notification.
//
// A Collection is not safe for concurrent use; see the package documentation.
type Collection[T any] struct {
	items  []T
	active int // -1 when unset
	props  *propertyIndex
	tags   *tagStore

	capacity int
	allowDup bool
	idProp   string
	cyclic   bool
	strict   bool

	less      func(a, b T) bool
	normalize func(item T) T
	property  PropertyFunc[T]

	search  SearchAdapter
	content ContentFunc[T]

	bus       Publisher
	logger    *slog.Logger
	lastQuery *QueryInfo
}

// New creates a Collection from the given options.
//
// It panics if Options.Search is set without Options.Content, since an
// adapter without a content extractor can never index anything; this is a
// construction-time programming error, not a data condition.
func New[T any](opts Options[T]) *Collection[T] {
	if opts.Search != nil && opts.Content == nil {
		panic("collection: Options.Search requires Options.Content")
	}

	c := &Collection[T]{
		active:    -1,
		props:     newPropertyIndex(),
		tags:      newTagStore(opts.Tags),
		capacity:  opts.Capacity,
		allowDup:  opts.AllowDuplicates,
		idProp:    opts.IDProperty,
		cyclic:    opts.Cyclic,
		strict:    opts.StrictTags,
		less:      opts.Less,
		normalize: opts.Normalize,
		property:  opts.Property,
		search:    opts.Search,
		content:   opts.Content,
		bus:       opts.Publisher,
		logger:    opts.Logger,
	}
	if c.idProp == "" {
		c.idProp = DefaultIDProperty
	}
	if c.property == nil {
		c.property = MapProperty[T]()
	}
	if c.bus == nil {
		c.bus = pubsub.New()
	}
	return c
}

// ============================================================
// Mutations
// ============================================================

// Add appends an item to the end of the sequence, or re-sorts the sequence
// first if a comparator is configured. It reports false, changing nothing,
// for an empty/absent item, a full collection, or (with uniqueness enforced)
// a duplicate identity value.
func (c *Collection[T]) Add(item T) bool {
	return c.add(item, true, true)
}

// AddMany adds each item without per-item re-sorting, then performs a single
// sort pass if a comparator is configured and anything was added. It returns
// the number of items actually added and fires at most one change
// notification.
func (c *Collection[T]) AddMany(items []T) int {
	count := 0
	for _, item := range items {
		if c.add(item, false, false) {
			count++
		}
	}
	if count > 0 {
		if c.less != nil {
			c.sortItems(c.less)
		}
		c.publishChange()
	}
	return count
}

func (c *Collection[T]) add(item T, autoSort, notify bool) bool {
	if isEmptyItem(item) {
		return false
	}
	if c.capacity > 0 && len(c.items) >= c.capacity {
		return false
	}
	if !c.allowDup {
		if id, ok := c.property(item, c.idProp); ok {
			if len(c.identityIndex()[id]) > 0 {
				return false
			}
		}
	}
	if c.normalize != nil {
		item = c.normalize(item)
	}

	c.items = append(c.items, item)
	if c.less != nil && autoSort {
		c.sortItems(c.less)
	} else {
		c.indexAppended(item)
	}
	c.searchIndex(item)
	if notify {
		c.publishChange()
	}
	return true
}

// RemoveAt removes the item at the given position. It reports false for an
// out-of-range position.
func (c *Collection[T]) RemoveAt(pos int) bool {
	return c.removeAt(pos, true)
}

// RemoveByID removes the first item whose identity attribute equals id.
func (c *Collection[T]) RemoveByID(id any) bool {
	return c.RemoveAt(c.IndexBy(c.idProp, id))
}

// RemoveAllBy removes every item whose property equals value, re-resolving
// positions after each removal, and returns the total removed.
func (c *Collection[T]) RemoveAllBy(property string, value any) int {
	count := 0
	for {
		pos := c.IndexBy(property, value)
		if pos < 0 {
			break
		}
		c.removeAt(pos, false)
		count++
	}
	if count > 0 {
		c.publishChange()
	}
	return count
}

func (c *Collection[T]) removeAt(pos int, notify bool) bool {
	if pos < 0 || pos >= len(c.items) {
		return false
	}
	removed := c.items[pos]
	c.items = slices.Delete(c.items, pos, pos+1)

	c.props.reset()
	c.identityIndex()
	c.adjustActiveAfterRemove(pos)
	c.tags.shiftAfterRemove(pos)
	c.searchRemove(removed)

	if notify {
		c.publishChange()
	}
	return true
}

// Patch replaces, in place, every item whose identity value matches the
// incoming item's identity value (full replace, not merge). Size, positions,
// tags, and the active pointer are untouched. It reports whether at least
// one position was patched.
func (c *Collection[T]) Patch(item T) bool {
	id, ok := c.property(item, c.idProp)
	if !ok {
		return false
	}
	positions := c.identityIndex()[id]
	if len(positions) == 0 {
		return false
	}
	for _, p := range positions {
		c.items[p] = item
	}
	// Non-identity property values may have changed.
	c.props.invalidateExcept(c.idProp)
	c.searchIndex(item)
	c.publishChange()
	return true
}

// Move removes the item at from and reinserts it at to in one pass; every
// position strictly between the two shifts by one toward from's old slot.
// Tag positions and the active pointer follow the moved items. It reports
// false if either position is out of range or the two are equal.
func (c *Collection[T]) Move(from, to int) bool {
	size := len(c.items)
	if from == to || from < 0 || from >= size || to < 0 || to >= size {
		return false
	}
	item := c.items[from]
	c.items = slices.Delete(c.items, from, from+1)
	c.items = slices.Insert(c.items, to, item)

	// Rebuilding beats incremental patching here; move is rare and the
	// shift touches an arbitrary range.
	c.props.reset()
	c.identityIndex()
	c.adjustActiveAfterMove(from, to)
	c.tags.remapAfterMove(from, to)

	c.publishChange()
	return true
}

// Sort re-orders the sequence stably using the given comparator, or the
// configured default when less is nil. With neither it is a no-op reporting
// false.
//
// Sort does NOT remap tag positions or the active pointer: after a sort they
// refer to whatever item now occupies the same numeric slot. Use Move when
// tags or the active pointer must follow items.
func (c *Collection[T]) Sort(less func(a, b T) bool) bool {
	if less == nil {
		less = c.less
	}
	if less == nil {
		return false
	}
	c.sortItems(less)
	c.publishChange()
	return true
}

// Clear empties the sequence, unsets the active pointer, drops all property
// indexes, and empties (but keeps the configuration of) every tag. Search
// entries for the removed items are dropped as well.
func (c *Collection[T]) Clear() {
	c.clear(true)
}

func (c *Collection[T]) clear(notify bool) {
	if c.search != nil {
		for _, item := range c.items {
			c.searchRemove(item)
		}
	}
	c.items = nil
	c.active = -1
	c.props.reset()
	c.tags.clearMembership()
	if notify {
		c.publishChange()
	}
}

func (c *Collection[T]) sortItems(less func(a, b T) bool) {
	slices.SortStableFunc(c.items, func(a, b T) int {
		switch {
		case less(a, b):
			return -1
		case less(b, a):
			return 1
		default:
			return 0
		}
	})
	c.props.reset()
	c.identityIndex()
}

// ============================================================
// Lookup
// ============================================================

// Size returns the number of items.
func (c *Collection[T]) Size() int { return len(c.items) }

// IsEmpty reports whether the collection holds no items.
func (c *Collection[T]) IsEmpty() bool { return len(c.items) == 0 }

// Capacity returns the configured maximum item count (0 = unbounded).
func (c *Collection[T]) Capacity() int { return c.capacity }

// IsFull reports whether the collection has reached its capacity.
func (c *Collection[T]) IsFull() bool {
	return c.capacity > 0 && len(c.items) >= c.capacity
}

// At returns the item at the given position.
func (c *Collection[T]) At(pos int) (T, bool) {
	if pos < 0 || pos >= len(c.items) {
		var zero T
		return zero, false
	}
	return c.items[pos], true
}

// Items returns a defensive copy of the sequence.
func (c *Collection[T]) Items() []T {
	return slices.Clone(c.items)
}

// ByID returns the first item whose identity attribute equals id.
func (c *Collection[T]) ByID(id any) (T, bool) {
	return c.FindBy(c.idProp, id)
}

// FindBy returns the first item whose property equals value.
func (c *Collection[T]) FindBy(property string, value any) (T, bool) {
	return c.At(c.IndexBy(property, value))
}

// FindAllBy returns every item whose property equals value, in position
// order.
func (c *Collection[T]) FindAllBy(property string, value any) []T {
	positions := c.IndexesBy(property, value)
	if len(positions) == 0 {
		return nil
	}
	out := make([]T, len(positions))
	for i, p := range positions {
		out[i] = c.items[p]
	}
	return out
}

// IndexBy returns the position of the first item whose property equals
// value, or -1.
func (c *Collection[T]) IndexBy(property string, value any) int {
	positions := c.indexFor(property)[value]
	if len(positions) == 0 {
		return -1
	}
	return positions[0]
}

// IndexesBy returns the ascending positions of every item whose property
// equals value.
func (c *Collection[T]) IndexesBy(property string, value any) []int {
	return slices.Clone(c.indexFor(property)[value])
}

// IDProperty returns the identity attribute name.
func (c *Collection[T]) IDProperty() string { return c.idProp }

// ============================================================
// Configuration
// ============================================================

// SetCapacity updates the maximum item count (0 = unbounded). Existing items
// beyond a reduced capacity are kept; further adds fail until below it.
func (c *Collection[T]) SetCapacity(n int) {
	if n < 0 {
		n = 0
	}
	if n == c.capacity {
		return
	}
	c.capacity = n
	c.publishChange()
}

// SetAllowDuplicates toggles uniqueness enforcement for future adds.
func (c *Collection[T]) SetAllowDuplicates(allow bool) {
	if allow == c.allowDup {
		return
	}
	c.allowDup = allow
	c.publishChange()
}

// SetCyclic toggles wrap-around navigation for Next/Previous.
func (c *Collection[T]) SetCyclic(cyclic bool) {
	if cyclic == c.cyclic {
		return
	}
	c.cyclic = cyclic
	c.publishChange()
}

// ============================================================
// Internals
// ============================================================

// indexFor returns the position index for property, building it from the
// live sequence when absent.
func (c *Collection[T]) indexFor(property string) map[any][]int {
	if entry, ok := c.props.get(property); ok {
		return entry
	}
	entry := make(map[any][]int)
	for i, item := range c.items {
		if v, ok := c.property(item, property); ok {
			entry[v] = append(entry[v], i)
		}
	}
	c.props.put(property, entry)
	return entry
}

// identityIndex returns the always-current identity-attribute index.
func (c *Collection[T]) identityIndex() map[any][]int {
	return c.indexFor(c.idProp)
}

// indexAppended incrementally records the item just appended at the end of
// the sequence in every cached property index.
func (c *Collection[T]) indexAppended(item T) {
	pos := len(c.items) - 1
	hadIdentity := false
	for property := range c.props.entries {
		if property == c.idProp {
			hadIdentity = true
		}
		if v, ok := c.property(item, property); ok {
			c.props.append(property, v, pos)
		}
	}
	if !hadIdentity {
		c.identityIndex()
	}
}

// indexOfItem resolves an item to its current position via the identity
// attribute, or -1.
func (c *Collection[T]) indexOfItem(item T) int {
	id, ok := c.property(item, c.idProp)
	if !ok {
		return -1
	}
	return c.IndexBy(c.idProp, id)
}

func (c *Collection[T]) logf(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Warn(msg, args...)
	}
}

// isEmptyItem reports whether an item counts as empty/absent: an untyped
// nil, a nil pointer or interface, or a nil/empty map or slice.
func isEmptyItem[T any](item T) bool {
	v := reflect.ValueOf(item)
	if !v.IsValid() {
		return true
	}
	switch v.Kind() {
	case reflect.Map, reflect.Slice:
		return v.IsNil() || v.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return v.IsNil()
	}
	return false
}
