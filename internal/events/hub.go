package events

import (
	"sync"
	"time"
)

// Kind identifies a domain event feed.
type Kind string

const (
	BookAdded    Kind = "book_added"
	AuthorEdited Kind = "author_edited"
)

// Event is a published domain change.
type Event struct {
	Kind    Kind        `json:"kind"`
	Payload interface{} `json:"payload"`
	At      time.Time   `json:"at"`
}

// Hub is an in-process publish/subscribe fan-out keyed by event kind.
// Publish never blocks and never fails: each subscriber owns an unbounded
// FIFO queue drained by its own goroutine, so a slow or stalled consumer
// cannot hold up the mutation that published the event. Events are not
// replayed and are dropped when their subscriber disconnects.
type Hub struct {
	mu     sync.RWMutex
	subs   map[Kind]map[uint64]*Subscription
	nextID uint64
	closed bool
}

func NewHub() *Hub {
	return &Hub{
		subs: make(map[Kind]map[uint64]*Subscription),
	}
}

// Publish delivers the payload to every current subscriber of kind.
func (h *Hub) Publish(kind Kind, payload interface{}) {
	ev := Event{Kind: kind, Payload: payload, At: time.Now()}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, sub := range h.subs[kind] {
		sub.enqueue(ev)
	}
}

// Subscribe registers a new subscriber for kind, receiving events published
// from now on. The caller must Close the subscription when done.
func (h *Hub) Subscribe(kind Kind) *Subscription {
	sub := &Subscription{
		hub:  h,
		kind: kind,
		wake: make(chan struct{}, 1),
		out:  make(chan Event),
		done: make(chan struct{}),
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		// The pump never starts for a subscription born after shutdown,
		// so its stream is closed here.
		sub.Close()
		close(sub.out)
		return sub
	}
	h.nextID++
	sub.id = h.nextID
	if h.subs[kind] == nil {
		h.subs[kind] = make(map[uint64]*Subscription)
	}
	h.subs[kind][sub.id] = sub
	h.mu.Unlock()

	go sub.pump()

	return sub
}

// Close detaches all subscribers and rejects new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	all := make([]*Subscription, 0)
	for _, byID := range h.subs {
		for _, sub := range byID {
			all = append(all, sub)
		}
	}
	h.subs = make(map[Kind]map[uint64]*Subscription)
	h.mu.Unlock()

	for _, sub := range all {
		sub.Close()
	}
}

func (h *Hub) unsubscribe(kind Kind, id uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if byID, ok := h.subs[kind]; ok {
		delete(byID, id)
	}
}

// Subscription is one live subscriber of a single event kind.
type Subscription struct {
	hub  *Hub
	kind Kind
	id   uint64

	mu    sync.Mutex
	queue []Event

	wake chan struct{}
	out  chan Event
	done chan struct{}

	closeOnce sync.Once
}

// Events is the in-order stream for this subscription.
func (s *Subscription) Events() <-chan Event {
	return s.out
}

// Close detaches the subscription. Queued but undelivered events are
// dropped; Events() stops yielding once the pump drains.
func (s *Subscription) Close() {
	s.closeOnce.Do(func() {
		s.hub.unsubscribe(s.kind, s.id)
		close(s.done)
	})
}

func (s *Subscription) enqueue(ev Event) {
	s.mu.Lock()
	s.queue = append(s.queue, ev)
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *Subscription) pump() {
	defer close(s.out)

	for {
		s.mu.Lock()
		var next *Event
		if len(s.queue) > 0 {
			next = &s.queue[0]
			s.queue = s.queue[1:]
		}
		s.mu.Unlock()

		if next == nil {
			select {
			case <-s.wake:
				continue
			case <-s.done:
				return
			}
		}

		select {
		case s.out <- *next:
		case <-s.done:
			return
		}
	}
}
