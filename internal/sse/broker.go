package sse

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	redisclient "github.com/fantabuste/envelope-server-go/internal/redis"
)

const (
	HeartbeatInterval = 30 * time.Second
	clientBufferSize  = 16
)

type EventType string

const (
	EventParticipantJoined EventType = "participant_joined"
	EventEnvelopeSubmitted EventType = "envelope_submitted"
	EventSessionRevealed   EventType = "session_revealed"
)

// Event is a lobby notification. Data never carries envelope text; pages
// reload and read the current state themselves.
type Event struct {
	Type EventType       `json:"type"`
	Data json.RawMessage `json:"data"`
}

// NewEvent marshals data into an Event.
func NewEvent(eventType EventType, data any) (Event, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return Event{}, err
	}
	return Event{Type: eventType, Data: raw}, nil
}

type Client struct {
	SessionCode string
	Events      chan Event
	Done        chan struct{}
}

// Broker fans lobby events out to the SSE clients watching a session.
// With a Redis client, events travel over pub/sub so every instance sees
// them; without one, Publish delivers to local clients directly.
type Broker struct {
	redis   *redisclient.Client
	clients map[string]map[*Client]bool // session code -> set of clients
	relays  map[string]context.CancelFunc
	mu      sync.RWMutex
	ctx     context.Context
	cancel  context.CancelFunc
}

func NewBroker(redisClient *redisclient.Client) *Broker {
	ctx, cancel := context.WithCancel(context.Background())
	return &Broker{
		redis:   redisClient,
		clients: make(map[string]map[*Client]bool),
		relays:  make(map[string]context.CancelFunc),
		ctx:     ctx,
		cancel:  cancel,
	}
}

func (b *Broker) Subscribe(code string) *Client {
	client := &Client{
		SessionCode: code,
		Events:      make(chan Event, clientBufferSize),
		Done:        make(chan struct{}),
	}

	b.mu.Lock()
	if b.clients[code] == nil {
		b.clients[code] = make(map[*Client]bool)
		if b.redis != nil {
			relayCtx, cancel := context.WithCancel(b.ctx)
			b.relays[code] = cancel
			go b.subscribeToRedis(relayCtx, code)
		}
	}
	b.clients[code][client] = true
	clientCount := len(b.clients[code])
	b.mu.Unlock()

	log.Debug().
		Str("code", code).
		Int("clientCount", clientCount).
		Msg("sse client subscribed")

	return client
}

func (b *Broker) Unsubscribe(client *Client) {
	b.mu.Lock()
	defer b.mu.Unlock()

	clients, ok := b.clients[client.SessionCode]
	if !ok || !clients[client] {
		return
	}
	delete(clients, client)
	close(client.Done)

	if len(clients) == 0 {
		delete(b.clients, client.SessionCode)
		if cancel, ok := b.relays[client.SessionCode]; ok {
			cancel()
			delete(b.relays, client.SessionCode)
		}
	}

	log.Debug().
		Str("code", client.SessionCode).
		Int("clientCount", len(clients)).
		Msg("sse client unsubscribed")
}

func (b *Broker) Publish(ctx context.Context, code string, event Event) error {
	if b.redis == nil {
		b.broadcast(code, event)
		return nil
	}

	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return b.redis.Publish(ctx, redisclient.SessionChannel(code), data).Err()
}

func (b *Broker) subscribeToRedis(ctx context.Context, code string) {
	channel := redisclient.SessionChannel(code)
	pubsub := b.redis.Subscribe(ctx, channel)
	defer pubsub.Close()

	log.Debug().
		Str("code", code).
		Str("channel", channel).
		Msg("redis pubsub subscribed")

	ch := pubsub.Channel()

	for {
		select {
		case <-ctx.Done():
			return

		case msg, ok := <-ch:
			if !ok {
				return
			}

			var event Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				log.Error().Err(err).Msg("failed to unmarshal event")
				continue
			}

			b.broadcast(code, event)
		}
	}
}

func (b *Broker) broadcast(code string, event Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	clients := b.clients[code]
	for client := range clients {
		select {
		case client.Events <- event:
		default:
			log.Warn().
				Str("code", code).
				Msg("client event buffer full, dropping event")
		}
	}
}

func (b *Broker) Close() {
	b.cancel()

	b.mu.Lock()
	defer b.mu.Unlock()

	for _, clients := range b.clients {
		for client := range clients {
			close(client.Done)
		}
	}
	b.clients = make(map[string]map[*Client]bool)
	b.relays = make(map[string]context.CancelFunc)
}

func (b *Broker) ClientCount(code string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.clients[code])
}

func (b *Broker) TotalClients() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	total := 0
	for _, clients := range b.clients {
		total += len(clients)
	}
	return total
}
