package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/lumaworks/studio-crm/internal/core/domain"
	"github.com/lumaworks/studio-crm/internal/core/ports"
)

// AuditDedup abstracts the idempotency store (Redis) for audit events.
type AuditDedup interface {
	IsDuplicate(ctx context.Context, event domain.AuditEvent) (bool, error)
	Mark(ctx context.Context, event domain.AuditEvent) error
}

type auditService struct {
	repo  ports.AuditRepository
	dedup AuditDedup
	log   zerolog.Logger
}

// NewAuditService returns an AuditService implementation.
func NewAuditService(repo ports.AuditRepository, dedup AuditDedup, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, dedup: dedup, log: log}
}

// Process deduplicates and persists a single audit event. Events arrive from
// the dispatcher workers, so a delivery retry after a crash can replay one;
// the dedup key makes the replay a no-op.
func (s *auditService) Process(ctx context.Context, event domain.AuditEvent) error {
	isDup, err := s.dedup.IsDuplicate(ctx, event)
	if err != nil {
		s.log.Warn().Err(err).Str("actor_id", event.ActorID).Msg("audit dedup check failed, recording anyway")
	} else if isDup {
		s.log.Debug().Str("actor_id", event.ActorID).Str("action", string(event.Action)).Msg("duplicate audit event skipped")
		return nil
	}

	if markErr := s.dedup.Mark(ctx, event); markErr != nil {
		s.log.Warn().Err(markErr).Str("actor_id", event.ActorID).Msg("failed to set audit dedup key")
	}

	if err := s.repo.Insert(ctx, &event); err != nil {
		return fmt.Errorf("process audit event: %w", err)
	}

	s.log.Debug().
		Str("actor_id", event.ActorID).
		Str("action", string(event.Action)).
		Msg("audit event recorded")

	return nil
}
