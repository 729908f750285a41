package collection

// Active pointer: at most one position is "active". The pointer is adjusted
// on remove and move so it keeps referring to the same logical item, and is
// unset whenever the collection becomes empty.

// Active returns the active item, if any.
func (c *Collection[T]) Active() (T, bool) {
	return c.At(c.active)
}

// ActiveIndex returns the active position, or -1 when unset.
func (c *Collection[T]) ActiveIndex() int { return c.active }

// SetActive resolves the item to a position via the identity attribute and
// makes it active. It reports false, changing nothing, when not found.
func (c *Collection[T]) SetActive(item T) bool {
	pos := c.indexOfItem(item)
	if pos < 0 {
		return false
	}
	c.setActive(pos)
	return true
}

// SetActiveID makes the first item whose identity attribute equals id
// active. It reports false, changing nothing, when not found.
func (c *Collection[T]) SetActiveID(id any) bool {
	pos := c.IndexBy(c.idProp, id)
	if pos < 0 {
		return false
	}
	c.setActive(pos)
	return true
}

// SetActiveIndex sets the active position to n modulo size, so any integer
// (including negative) wraps into range. On an empty collection the pointer
// becomes unset and the call reports false.
func (c *Collection[T]) SetActiveIndex(n int) bool {
	size := len(c.items)
	if size == 0 {
		if c.active != -1 {
			c.active = -1
			c.publishChange()
		}
		return false
	}
	c.setActive(((n % size) + size) % size)
	return true
}

// UnsetActive clears the active pointer. Calling it again is a no-op with no
// notification.
func (c *Collection[T]) UnsetActive() {
	if c.active == -1 {
		return
	}
	c.active = -1
	c.publishChange()
}

// Next advances the active pointer by one. When unset it jumps to position
// 0; at the last position it wraps to the first only with cyclic navigation
// enabled, otherwise it stays put without notification. It returns the
// resulting active item, or false on an empty collection.
func (c *Collection[T]) Next() (T, bool) {
	return c.step(1)
}

// Previous steps the active pointer back by one, with the same unset, wrap,
// and boundary behavior as Next.
func (c *Collection[T]) Previous() (T, bool) {
	return c.step(-1)
}

// First makes position 0 active. It is a no-op on an empty collection.
func (c *Collection[T]) First() (T, bool) {
	if len(c.items) == 0 {
		var zero T
		return zero, false
	}
	c.setActive(0)
	return c.items[c.active], true
}

// Last makes the final position active. It is a no-op on an empty
// collection.
func (c *Collection[T]) Last() (T, bool) {
	if len(c.items) == 0 {
		var zero T
		return zero, false
	}
	c.setActive(len(c.items) - 1)
	return c.items[c.active], true
}

func (c *Collection[T]) step(delta int) (T, bool) {
	size := len(c.items)
	if size == 0 {
		var zero T
		return zero, false
	}
	next := c.active
	switch {
	case c.active < 0:
		next = 0
	case delta > 0 && c.active == size-1:
		if c.cyclic {
			next = 0
		}
	case delta < 0 && c.active == 0:
		if c.cyclic {
			next = size - 1
		}
	default:
		next = c.active + delta
	}
	c.setActive(next)
	return c.items[c.active], true
}

func (c *Collection[T]) setActive(pos int) {
	if pos == c.active {
		return
	}
	c.active = pos
	c.publishChange()
}

// adjustActiveAfterRemove keeps the pointer on the same logical item after
// the item at removed is gone. When the active item itself was removed, the
// item sliding into its slot becomes active (modulo the new size), or the
// pointer unsets on an empty collection.
func (c *Collection[T]) adjustActiveAfterRemove(removed int) {
	switch {
	case c.active < 0:
	case c.active == removed:
		if len(c.items) == 0 {
			c.active = -1
		} else {
			c.active = removed % len(c.items)
		}
	case c.active > removed:
		c.active--
	}
}

// adjustActiveAfterMove keeps the pointer on the same logical item after the
// item at from has been reinserted at to.
func (c *Collection[T]) adjustActiveAfterMove(from, to int) {
	switch {
	case c.active == from:
		c.active = to
	case from < c.active && c.active <= to:
		c.active--
	case to <= c.active && c.active < from:
		c.active++
	}
}
