package collection

import "fmt"

// Tag API. Tags accept either an item (resolved to its current position via
// the identity attribute) or a raw position; both forms funnel through the
// position-based primitives.

// ConfigureTag registers or updates a tag's configuration. Reducing the
// cardinality below the current membership size evicts the highest positions
// first.
func (c *Collection[T]) ConfigureTag(name string, cfg TagConfig) bool {
	if name == "" {
		return false
	}
	c.tags.configure(name, cfg)
	c.publishChange()
	return true
}

// TagConfigFor returns a tag's configuration.
func (c *Collection[T]) TagConfigFor(name string) (TagConfig, bool) {
	if !c.tags.configured(name) {
		return TagConfig{}, false
	}
	return c.tags.configs[name], true
}

// DeleteTag removes a tag's membership set and its configuration. It reports
// false for an unknown tag.
func (c *Collection[T]) DeleteTag(name string) bool {
	if !c.tags.delete(name) {
		return false
	}
	c.publishChange()
	return true
}

// ApplyTag tags the item, resolved to its current position via the identity
// attribute. It reports false when the item is not found or already tagged.
func (c *Collection[T]) ApplyTag(name string, item T) bool {
	return c.ApplyTagAt(name, c.indexOfItem(item))
}

// ApplyTagAt tags the given position. Applying at capacity enforces the
// tag's cardinality by evicting the highest positions first; a position
// evicted immediately reports false.
//
// With StrictTags enabled, naming a tag that was never configured panics.
func (c *Collection[T]) ApplyTagAt(name string, pos int) bool {
	if pos < 0 || pos >= len(c.items) {
		return false
	}
	c.ensureTag(name)
	if !c.tags.apply(name, pos) {
		return false
	}
	c.publishChange()
	return true
}

// RemoveTag untags the item, resolved via the identity attribute.
func (c *Collection[T]) RemoveTag(name string, item T) bool {
	return c.RemoveTagAt(name, c.indexOfItem(item))
}

// RemoveTagAt untags the given position. Untagging an untagged position is a
// no-op reporting false, with no notification.
//
// With StrictTags enabled, naming a tag that was never configured panics.
func (c *Collection[T]) RemoveTagAt(name string, pos int) bool {
	if pos < 0 || pos >= len(c.items) {
		return false
	}
	c.ensureTag(name)
	if !c.tags.remove(name, pos) {
		return false
	}
	c.publishChange()
	return true
}

// ToggleTag applies the tag if the item lacks it, removes it otherwise. It
// returns whether the tag ended up applied, and whether the item was found.
func (c *Collection[T]) ToggleTag(name string, item T) (applied, ok bool) {
	return c.ToggleTagAt(name, c.indexOfItem(item))
}

// ToggleTagAt is ToggleTag for a raw position.
func (c *Collection[T]) ToggleTagAt(name string, pos int) (applied, ok bool) {
	if pos < 0 || pos >= len(c.items) {
		return false, false
	}
	if c.tags.has(name, pos) {
		c.RemoveTagAt(name, pos)
		return false, true
	}
	return c.ApplyTagAt(name, pos), true
}

// HasTag reports whether the item, resolved via the identity attribute,
// bears the tag.
func (c *Collection[T]) HasTag(name string, item T) bool {
	return c.HasTagAt(name, c.indexOfItem(item))
}

// HasTagAt reports whether the given position bears the tag. Unknown tags
// report false even with StrictTags enabled.
func (c *Collection[T]) HasTagAt(name string, pos int) bool {
	return c.tags.has(name, pos)
}

// IndexesByTag returns the tag's member positions in ascending order.
func (c *Collection[T]) IndexesByTag(name string) []int {
	return c.tags.positions(name)
}

// ItemsByTag returns the tag's member items in position order.
func (c *Collection[T]) ItemsByTag(name string) []T {
	positions := c.tags.positions(name)
	if len(positions) == 0 {
		return nil
	}
	out := make([]T, len(positions))
	for i, p := range positions {
		out[i] = c.items[p]
	}
	return out
}

// TagNames returns every configured tag name, sorted.
func (c *Collection[T]) TagNames() []string {
	return c.tags.names()
}

// ensureTag auto-initializes an unconfigured tag, or panics when StrictTags
// forbids that: an unregistered tag name is a programming error in the host,
// not a data condition.
func (c *Collection[T]) ensureTag(name string) {
	if c.tags.configured(name) {
		c.tags.ensure(name)
		return
	}
	if c.strict {
		panic(fmt.Errorf("collection: %w %q (StrictTags enabled)", ErrUnknownTag, name))
	}
	c.tags.ensure(name)
}
