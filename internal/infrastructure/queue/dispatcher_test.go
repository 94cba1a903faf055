package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/lumaworks/studio-crm/internal/core/domain"
)

type collectingService struct {
	mu     sync.Mutex
	events []domain.AuditEvent
	done   chan struct{}
	want   int
}

func newCollectingService(want int) *collectingService {
	return &collectingService{done: make(chan struct{}), want: want}
}

func (s *collectingService) Process(_ context.Context, event domain.AuditEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	if len(s.events) == s.want {
		close(s.done)
	}
	return nil
}

func (s *collectingService) wait(t *testing.T) []domain.AuditEvent {
	t.Helper()
	select {
	case <-s.done:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for events")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.AuditEvent(nil), s.events...)
}

func TestDispatcher_DeliversAllEvents(t *testing.T) {
	service := newCollectingService(3)
	d := NewDispatcher(2, service, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Enqueue(domain.AuditEvent{ActorID: "a1", Action: domain.AuditLogin})
	d.Enqueue(domain.AuditEvent{ActorID: "a2", Action: domain.AuditRegister})
	d.Enqueue(domain.AuditEvent{ActorID: "a3", Action: domain.AuditLogin})

	events := service.wait(t)
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
}

func TestDispatcher_PerActorOrdering(t *testing.T) {
	const n = 20
	service := newCollectingService(n)
	d := NewDispatcher(4, service, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	// All events share one actor, so they hash to one worker and must be
	// processed in enqueue order.
	for i := 0; i < n; i++ {
		d.Enqueue(domain.AuditEvent{
			ActorID:   "admin1",
			Action:    domain.AuditLogin,
			Timestamp: time.Unix(int64(i), 0),
		})
	}

	events := service.wait(t)
	for i, event := range events {
		if event.Timestamp.Unix() != int64(i) {
			t.Fatalf("per-actor order broken at %d: got timestamp %d", i, event.Timestamp.Unix())
		}
	}
}

func TestDispatcher_ShardIsDeterministic(t *testing.T) {
	d := NewDispatcher(4, nil, zerolog.Nop())

	first := d.shardIndex("admin1")
	for i := 0; i < 10; i++ {
		if got := d.shardIndex("admin1"); got != first {
			t.Fatalf("shard index not deterministic: %d vs %d", first, got)
		}
	}
	if first < 0 || first >= 4 {
		t.Fatalf("shard index out of range: %d", first)
	}
}

func TestDispatcher_DefaultWorkerCount(t *testing.T) {
	d := NewDispatcher(0, nil, zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
}
