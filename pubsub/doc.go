// Package pubsub provides a minimal synchronous topic publish/subscribe
// mechanism.
//
// Subscribers on a topic are invoked in subscription order, on the
// publishing goroutine, before Publish returns. There is no buffering, no
// background delivery, and no retained messages.
//
// # Usage
//
//	bus := pubsub.New()
//
//	unsub := bus.Subscribe("change", func(payload any) {
//	    fmt.Println("changed:", payload)
//	})
//	defer unsub()
//
//	bus.Publish("change", 42)
//
// # Thread Safety
//
// Subscription bookkeeping is guarded by a mutex and the subscriber list is
// copied before delivery, so subscribing or unsubscribing from inside a
// callback is safe. Callbacks themselves run unlocked on the publisher's
// goroutine.
package pubsub
