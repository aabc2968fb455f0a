package sse

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redisclient "github.com/fantabuste/envelope-server-go/internal/redis"
)

func receive(t *testing.T, client *Client) Event {
	t.Helper()
	select {
	case ev := <-client.Events:
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestBroker_LocalDelivery(t *testing.T) {
	broker := NewBroker(nil)
	defer broker.Close()
	ctx := context.Background()

	a1 := broker.Subscribe("ABCDE")
	a2 := broker.Subscribe("ABCDE")
	other := broker.Subscribe("ZZZZZ")

	assert.Equal(t, 2, broker.ClientCount("ABCDE"))
	assert.Equal(t, 3, broker.TotalClients())

	ev, err := NewEvent(EventParticipantJoined, map[string]string{"name": "Team A"})
	require.NoError(t, err)
	require.NoError(t, broker.Publish(ctx, "ABCDE", ev))

	for _, c := range []*Client{a1, a2} {
		got := receive(t, c)
		assert.Equal(t, EventParticipantJoined, got.Type)

		var data map[string]string
		require.NoError(t, json.Unmarshal(got.Data, &data))
		assert.Equal(t, "Team A", data["name"])
	}

	select {
	case <-other.Events:
		t.Fatal("event leaked to another session")
	default:
	}
}

func TestBroker_Unsubscribe(t *testing.T) {
	broker := NewBroker(nil)
	defer broker.Close()

	client := broker.Subscribe("ABCDE")
	broker.Unsubscribe(client)

	assert.Equal(t, 0, broker.ClientCount("ABCDE"))
	select {
	case <-client.Done:
	default:
		t.Fatal("Done should be closed after unsubscribe")
	}

	// A second unsubscribe is a no-op.
	assert.NotPanics(t, func() { broker.Unsubscribe(client) })
}

func TestBroker_DropsWhenBufferFull(t *testing.T) {
	broker := NewBroker(nil)
	defer broker.Close()
	ctx := context.Background()

	client := broker.Subscribe("ABCDE")
	ev, err := NewEvent(EventEnvelopeSubmitted, nil)
	require.NoError(t, err)

	for i := 0; i < clientBufferSize+5; i++ {
		require.NoError(t, broker.Publish(ctx, "ABCDE", ev))
	}
	assert.Len(t, client.Events, clientBufferSize)
}

func TestBroker_Close(t *testing.T) {
	broker := NewBroker(nil)
	client := broker.Subscribe("ABCDE")

	broker.Close()

	select {
	case <-client.Done:
	default:
		t.Fatal("Done should be closed after broker close")
	}
	assert.Equal(t, 0, broker.TotalClients())
	assert.NotPanics(t, func() { broker.Unsubscribe(client) })
}

func TestBroker_RedisFanOut(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	// Uses DB 15 so it never touches real data
	client, err := redisclient.NewClient(ctx, "redis://localhost:6379/15")
	if err != nil {
		t.Skip("Redis not available for testing")
	}
	defer client.Close()

	// Two brokers sharing Redis stand in for two server instances.
	publisher := NewBroker(client)
	defer publisher.Close()
	subscriber := NewBroker(client)
	defer subscriber.Close()

	watcher := subscriber.Subscribe("RDSFN")
	defer subscriber.Unsubscribe(watcher)

	ev, err := NewEvent(EventSessionRevealed, map[string]string{"code": "RDSFN"})
	require.NoError(t, err)

	// The relay goroutine subscribes asynchronously, so retry until it sees one.
	require.Eventually(t, func() bool {
		_ = publisher.Publish(context.Background(), "RDSFN", ev)
		select {
		case got := <-watcher.Events:
			return got.Type == EventSessionRevealed
		case <-time.After(100 * time.Millisecond):
			return false
		}
	}, 3*time.Second, 50*time.Millisecond)
}
