package broadcast

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runHub(t *testing.T, bufferSize int) (Hub, context.CancelFunc) {
	t.Helper()

	h := NewHub(bufferSize)
	ctx, cancel := context.WithCancel(context.Background())

	go h.Run(ctx)

	return h, cancel
}

func receive(t *testing.T, sub *Subscription) Envelope {
	t.Helper()

	select {
	case env, ok := <-sub.Envelopes:
		require.True(t, ok, "subscription closed")
		return env
	case <-time.After(time.Second):
		t.Fatal("Expected envelope")
	}

	return Envelope{}
}

func Test_NewHub(t *testing.T) {
	h := NewHub(100)

	impl, ok := h.(*hub)
	require.True(t, ok)
	assert.Equal(t, 100, impl.bufferSize)
	assert.NotNil(t, impl.subscribers)
	assert.Equal(t, 100, cap(impl.broadcast))
}

func Test_Subscription_ShouldReceive(t *testing.T) {
	sub := NewSubscription(1, "topic", 4)

	assert.True(t, sub.ShouldReceive("topic"))
	assert.False(t, sub.ShouldReceive("other"))
	assert.False(t, sub.ShouldReceive(""))
	assert.Equal(t, 4, cap(sub.Envelopes))
}

func Test_Hub_DeliverInOrder(t *testing.T) {
	h, cancel := runHub(t, 16)
	defer cancel()

	sub := h.Subscribe("topic")

	for _, msg := range []string{"one", "two", "three"} {
		h.Deliver(Envelope{Action: "topic", Type: "INFO", Message: msg})
	}

	assert.Equal(t, "one", receive(t, sub).Message)
	assert.Equal(t, "two", receive(t, sub).Message)
	assert.Equal(t, "three", receive(t, sub).Message)
}

func Test_Hub_TopicFilter(t *testing.T) {
	h, cancel := runHub(t, 16)
	defer cancel()

	sub := h.Subscribe("topic")

	h.Deliver(Envelope{Action: "other", Message: "foreign"})
	h.Deliver(Envelope{Action: "topic", Message: "mine"})

	assert.Equal(t, "mine", receive(t, sub).Message)
}

func Test_Hub_MultipleSubscribers(t *testing.T) {
	h, cancel := runHub(t, 16)
	defer cancel()

	first := h.Subscribe("topic")
	second := h.Subscribe("topic")
	assert.NotEqual(t, first.ID, second.ID)

	h.Deliver(Envelope{Action: "topic", Message: "fan-out"})

	assert.Equal(t, "fan-out", receive(t, first).Message)
	assert.Equal(t, "fan-out", receive(t, second).Message)
}

func Test_Hub_Unsubscribe(t *testing.T) {
	h, cancel := runHub(t, 16)
	defer cancel()

	sub := h.Subscribe("topic")
	h.Unsubscribe(sub)

	_, ok := <-sub.Envelopes
	assert.False(t, ok, "channel should be closed after unsubscribe")

	h.Deliver(Envelope{Action: "topic", Message: "late"})
	h.Unsubscribe(sub)
}

func Test_Hub_FullSubscriptionDrops(t *testing.T) {
	h, cancel := runHub(t, 1)
	defer cancel()

	sub := h.Subscribe("topic")

	h.Deliver(Envelope{Action: "topic", Message: "kept"})
	h.Deliver(Envelope{Action: "topic", Message: "dropped"})

	assert.Eventually(t, func() bool { return sub.Dropped() == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, "kept", receive(t, sub).Message)
}

func Test_Hub_StopClosesSubscriptions(t *testing.T) {
	h, cancel := runHub(t, 4)

	sub := h.Subscribe("topic")
	cancel()

	select {
	case _, ok := <-sub.Envelopes:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("Expected closed channel")
	}

	late := h.Subscribe("topic")
	_, ok := <-late.Envelopes
	assert.False(t, ok, "subscribing to a stopped hub yields a closed channel")

	h.Deliver(Envelope{Action: "topic"})
	h.Unsubscribe(late)
}
