package pubsub

import (
	"slices"
	"sync"
)

// Callback receives the payload published to a topic.
type Callback = func(payload any)

type subscriber struct {
	id int
	fn Callback
}

// PubSub is an in-process synchronous topic publisher.
type PubSub struct {
	mu     sync.Mutex
	nextID int
	topics map[string][]subscriber
}

// New creates an empty PubSub.
func New() *PubSub {
	return &PubSub{topics: make(map[string][]subscriber)}
}

// Subscribe registers a callback for a topic and returns an unsubscribe
// function. Unsubscribing more than once is a no-op.
func (p *PubSub) Subscribe(topic string, fn Callback) func() {
	p.mu.Lock()
	p.nextID++
	id := p.nextID
	p.topics[topic] = append(p.topics[topic], subscriber{id: id, fn: fn})
	p.mu.Unlock()

	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		subs := p.topics[topic]
		p.topics[topic] = slices.DeleteFunc(subs, func(s subscriber) bool {
			return s.id == id
		})
		if len(p.topics[topic]) == 0 {
			delete(p.topics, topic)
		}
	}
}

// Publish delivers the payload to every current subscriber of the topic, in
// subscription order, before returning.
func (p *PubSub) Publish(topic string, payload any) {
	p.mu.Lock()
	subs := slices.Clone(p.topics[topic])
	p.mu.Unlock()

	for _, sub := range subs {
		sub.fn(payload)
	}
}

// SubscriberCount returns the number of subscribers on a topic.
func (p *PubSub) SubscriberCount(topic string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.topics[topic])
}
