// Package bus implements a minimal topic-based publish/subscribe mechanism.
//
// A Bus is owned by a single goroutine: delivery is synchronous on the
// publisher's call stack and no locking is performed. Handlers may register
// further subscriptions re-entrantly; subscriptions made during an Emit do
// not receive that emission.
//
// The subscription map doubles as a resolution table: Topics and OnceCount
// expose which names still have waiting subscribers, so pending state is
// inspectable rather than hidden inside a global emitter.
package bus

import "sort"

// Handler receives a published value.
type Handler[T any] func(T)

type subscription[T any] struct {
	fn      Handler[T]
	once    bool
	removed bool
}

// Bus routes published values to subscribers by topic name. There is no
// ordering guarantee across distinct topics and no replay: a subscriber
// registered after the matching publish never fires.
type Bus[T any] struct {
	subs map[string][]*subscription[T]
}

// New returns an empty Bus.
func New[T any]() *Bus[T] {
	return &Bus[T]{subs: make(map[string][]*subscription[T])}
}

// On registers a persistent subscription for topic. The returned function
// removes the subscription; calling it more than once is harmless.
func (b *Bus[T]) On(topic string, fn Handler[T]) func() {
	sub := &subscription[T]{fn: fn}
	b.subs[topic] = append(b.subs[topic], sub)
	return func() { sub.removed = true }
}

// Once registers a one-shot subscription for topic. It fires at most once,
// for whichever value is eventually published under that exact name, and is
// cleared before delivery.
func (b *Bus[T]) Once(topic string, fn Handler[T]) {
	b.subs[topic] = append(b.subs[topic], &subscription[T]{fn: fn, once: true})
}

// Emit publishes v under topic. Subscriber callbacks fire in subscription
// order, synchronously on the caller's stack. One-shot subscriptions are
// removed from the table before any handler runs, so a handler that emits
// re-entrantly cannot fire them twice. Returns the number of handlers
// invoked.
func (b *Bus[T]) Emit(topic string, v T) int {
	subs := b.subs[topic]
	if len(subs) == 0 {
		return 0
	}

	// Drop one-shots and tombstones from the table first; re-entrant
	// registrations during delivery land in the rebuilt slice.
	remaining := make([]*subscription[T], 0, len(subs))
	for _, s := range subs {
		if !s.once && !s.removed {
			remaining = append(remaining, s)
		}
	}
	if len(remaining) == 0 {
		delete(b.subs, topic)
	} else {
		b.subs[topic] = remaining
	}

	delivered := 0
	for _, s := range subs {
		if s.removed {
			continue
		}
		if s.once {
			s.removed = true
		}
		s.fn(v)
		delivered++
	}
	return delivered
}

// Topics returns the sorted topic names that currently have at least one
// live subscriber.
func (b *Bus[T]) Topics() []string {
	var topics []string
	for topic, subs := range b.subs {
		for _, s := range subs {
			if !s.removed {
				topics = append(topics, topic)
				break
			}
		}
	}
	sort.Strings(topics)
	return topics
}

// OnceCount returns the number of live one-shot subscriptions for topic.
func (b *Bus[T]) OnceCount(topic string) int {
	n := 0
	for _, s := range b.subs[topic] {
		if s.once && !s.removed {
			n++
		}
	}
	return n
}
