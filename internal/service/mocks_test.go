package service

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/fantabuste/envelope-server-go/internal/model"
	"github.com/fantabuste/envelope-server-go/internal/repository"
	"github.com/fantabuste/envelope-server-go/internal/sse"
)

// Mock repositories
type mockSessionRepo struct {
	mock.Mock
}

var _ repository.SessionRepository = (*mockSessionRepo)(nil)

func (m *mockSessionRepo) FindByID(ctx context.Context, id string) (*model.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Session), args.Error(1)
}

func (m *mockSessionRepo) FindByCode(ctx context.Context, code string) (*model.Session, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Session), args.Error(1)
}

func (m *mockSessionRepo) Create(ctx context.Context, params model.CreateSessionParams) (*model.Session, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Session), args.Error(1)
}

func (m *mockSessionRepo) MarkRevealed(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// recordingPublisher captures published events in order.
type recordingPublisher struct {
	mu     sync.Mutex
	codes  []string
	events []sse.Event
}

func (p *recordingPublisher) Publish(ctx context.Context, code string, event sse.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.codes = append(p.codes, code)
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) types() []sse.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]sse.EventType, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}
