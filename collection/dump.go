package collection

import "encoding/json"

// Dump is the serializable state of a Collection: items verbatim, active
// position, configuration scalars, and tag membership/configuration. The
// comparator, normalization function, and search wiring are behavior, not
// data, and are intentionally excluded; they do not round-trip.
type Dump[T any] struct {
	Items      []T                  `json:"items"`
	Active     *int                 `json:"active,omitempty"`
	Capacity   int                  `json:"capacity"`
	Unique     bool                 `json:"unique"`
	IDProperty string               `json:"idProperty"`
	Tags       map[string][]int     `json:"tags"`
	TagConfigs map[string]TagConfig `json:"tagConfigs"`
}

// Dump captures the current state.
func (c *Collection[T]) Dump() Dump[T] {
	d := Dump[T]{
		Items:      c.Items(),
		Capacity:   c.capacity,
		Unique:     !c.allowDup,
		IDProperty: c.idProp,
		Tags:       make(map[string][]int, len(c.tags.sets)),
		TagConfigs: make(map[string]TagConfig, len(c.tags.configs)),
	}
	if c.active >= 0 {
		active := c.active
		d.Active = &active
	}
	for name := range c.tags.sets {
		d.Tags[name] = c.tags.positions(name)
	}
	for name, cfg := range c.tags.configs {
		d.TagConfigs[name] = cfg
	}
	return d
}

// ToJSON serializes the current state.
func (c *Collection[T]) ToJSON() ([]byte, error) {
	return json.Marshal(c.Dump())
}

// Restore clears the collection and replays the dump: configuration scalars
// first, then a bulk re-add of the items, then the active position (only if
// within bounds), then tag configuration and membership (silently dropping
// stored positions outside the restored bounds). One change notification
// fires at the end.
//
// Items are re-added with uniqueness enforced regardless of the stored flag,
// so a dump of a non-unique collection holding duplicate identity values
// collapses to unique on restore. The stored flag is applied afterwards and
// governs future adds.
func (c *Collection[T]) Restore(d Dump[T]) bool {
	c.clear(false)

	c.capacity = d.Capacity
	if d.IDProperty != "" {
		c.idProp = d.IDProperty
	}

	c.allowDup = false
	for _, item := range d.Items {
		c.add(item, false, false)
	}
	c.allowDup = !d.Unique

	if d.Active != nil && *d.Active >= 0 && *d.Active < len(c.items) {
		c.active = *d.Active
	}

	for name, cfg := range d.TagConfigs {
		c.tags.configure(name, cfg)
	}
	for name, positions := range d.Tags {
		c.tags.ensure(name)
		for _, p := range positions {
			if p < 0 || p >= len(c.items) {
				continue
			}
			c.tags.apply(name, p)
		}
	}

	c.publishChange()
	return true
}

// FromJSON restores serialized state. Malformed input is logged and converts
// into "restore failed, collection reset to empty" — it never propagates as
// a panic or error.
func (c *Collection[T]) FromJSON(data []byte) bool {
	var d Dump[T]
	if err := json.Unmarshal(data, &d); err != nil {
		c.logf("restore failed", "err", err)
		c.clear(true)
		return false
	}
	return c.Restore(d)
}
