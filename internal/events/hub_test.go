package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receiveOne(t *testing.T, sub *Subscription) Event {
	t.Helper()
	select {
	case ev, ok := <-sub.Events():
		require.True(t, ok, "subscription closed unexpectedly")
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestPublishDeliversInOrder(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	sub := hub.Subscribe(BookAdded)
	defer sub.Close()

	for i := 0; i < 5; i++ {
		hub.Publish(BookAdded, i)
	}

	for i := 0; i < 5; i++ {
		ev := receiveOne(t, sub)
		assert.Equal(t, BookAdded, ev.Kind)
		assert.Equal(t, i, ev.Payload)
	}
}

func TestPublishDoesNotBlockOnSlowSubscriber(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	// Subscriber never reads; every Publish must still return promptly.
	sub := hub.Subscribe(BookAdded)
	defer sub.Close()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 1000; i++ {
			hub.Publish(BookAdded, i)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on an unread subscriber")
	}
}

func TestNoReplayForLateSubscriber(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	hub.Publish(BookAdded, "before")

	sub := hub.Subscribe(BookAdded)
	defer sub.Close()

	hub.Publish(BookAdded, "after")

	ev := receiveOne(t, sub)
	assert.Equal(t, "after", ev.Payload)
}

func TestKindsAreIndependent(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	books := hub.Subscribe(BookAdded)
	defer books.Close()
	authors := hub.Subscribe(AuthorEdited)
	defer authors.Close()

	hub.Publish(AuthorEdited, "fowler")

	ev := receiveOne(t, authors)
	assert.Equal(t, AuthorEdited, ev.Kind)

	select {
	case ev := <-books.Events():
		t.Fatalf("book subscriber received foreign event: %+v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestClosedSubscriptionStopsDelivery(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	sub := hub.Subscribe(BookAdded)
	sub.Close()

	// Must not panic or block.
	hub.Publish(BookAdded, "late")

	select {
	case _, ok := <-sub.Events():
		assert.False(t, ok, "expected closed events channel")
	case <-time.After(2 * time.Second):
		t.Fatal("events channel did not close")
	}
}

func TestHubCloseDetachesSubscribers(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe(BookAdded)

	hub.Close()

	select {
	case _, ok := <-sub.Events():
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("events channel did not close after hub shutdown")
	}

	// Subscriptions made after shutdown are born closed.
	late := hub.Subscribe(BookAdded)
	_, ok := <-late.Events()
	assert.False(t, ok)
}
