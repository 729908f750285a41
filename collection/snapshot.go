package collection

import (
	"slices"
	"time"
)

// TopicChange is the topic on which committed mutations are published.
const TopicChange = "change"

// Publisher is the change notification contract the engine consumes. The
// sibling pubsub package provides the default in-process implementation.
type Publisher interface {
	Publish(topic string, payload any)
	Subscribe(topic string, fn func(payload any)) func()
}

// ConfigInfo is the configuration portion of a Snapshot.
type ConfigInfo struct {
	Capacity        int    `json:"capacity"`
	AllowDuplicates bool   `json:"allowDuplicates"`
	IDProperty      string `json:"idProperty"`
	Cyclic          bool   `json:"cyclic"`
	StrictTags      bool   `json:"strictTags"`
	Searchable      bool   `json:"searchable"`
}

// QueryInfo records the most recent search query.
type QueryInfo struct {
	Query    string    `json:"query"`
	Strategy Strategy  `json:"strategy"`
	Hits     int       `json:"hits"`
	Executed time.Time `json:"executed"`
}

// Snapshot is the immutable view of a Collection handed to subscribers after
// every committed mutation.
type Snapshot[T any] struct {
	Items       []T        `json:"items"`
	Active      *T         `json:"active,omitempty"`
	ActiveIndex int        `json:"activeIndex"`
	Size        int        `json:"size"`
	IsFull      bool       `json:"isFull"`
	Config      ConfigInfo `json:"config"`
	Timestamp   time.Time  `json:"timestamp"`
	LastQuery   *QueryInfo `json:"lastQuery,omitempty"`
}

// Snapshot computes the current snapshot. The item slice is a defensive
// copy.
func (c *Collection[T]) Snapshot() Snapshot[T] {
	snap := Snapshot[T]{
		Items:       slices.Clone(c.items),
		ActiveIndex: c.active,
		Size:        len(c.items),
		IsFull:      c.IsFull(),
		Config: ConfigInfo{
			Capacity:        c.capacity,
			AllowDuplicates: c.allowDup,
			IDProperty:      c.idProp,
			Cyclic:          c.cyclic,
			StrictTags:      c.strict,
			Searchable:      c.search != nil,
		},
		Timestamp: time.Now(),
		LastQuery: c.lastQuery,
	}
	if c.active >= 0 {
		active := c.items[c.active]
		snap.Active = &active
	}
	return snap
}

// Subscribe registers a change listener and returns an unsubscribe function.
// The listener is invoked immediately with the current snapshot, then
// synchronously after every committed mutation, in subscription order.
func (c *Collection[T]) Subscribe(fn func(snap Snapshot[T])) func() {
	unsub := c.bus.Subscribe(TopicChange, func(payload any) {
		if snap, ok := payload.(Snapshot[T]); ok {
			fn(snap)
		}
	})
	fn(c.Snapshot())
	return unsub
}

func (c *Collection[T]) publishChange() {
	c.bus.Publish(TopicChange, c.Snapshot())
}
