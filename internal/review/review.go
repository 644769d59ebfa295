// Package review tracks previously missed questions per user. The
// review queue is the only feedback loop between exam results and
// future session content: attempt counters and reopen-on-relapse let
// the UI surface "this concept keeps failing" signals without a
// separate analytics subsystem.
package review

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aviaprep/typerating-engine/internal/category"
	"github.com/aviaprep/typerating-engine/internal/domain/entities"
)

var ErrRecordNotFound = errors.New("incorrect question record not found")

// Store persists incorrect-question records keyed by (user, question).
// Implementations are expected to provide upsert-by-key idempotence;
// the manager does not lock.
type Store interface {
	Get(ctx context.Context, userID int64) ([]*entities.IncorrectQuestionRecord, error)
	GetByQuestion(ctx context.Context, userID int64, questionID string) (*entities.IncorrectQuestionRecord, error)
	Upsert(ctx context.Context, rec *entities.IncorrectQuestionRecord) error
}

// Manager implements the review-queue semantics on top of a Store.
type Manager struct {
	store Store
}

// NewManager creates a review queue manager.
func NewManager(store Store) *Manager {
	return &Manager{store: store}
}

// RecordIncorrect registers an incorrect answer. First miss creates the
// record with attempt count 1; a repeat miss on an unresolved record
// increments the counter and refreshes the last-attempt timestamp; a
// miss on a resolved record reopens it with the counter reset to 1.
func (m *Manager) RecordIncorrect(ctx context.Context, userID int64, questionID, categoryLabel string, difficulty entities.Difficulty, aircraftType entities.AircraftType) error {
	rec, err := m.store.GetByQuestion(ctx, userID, questionID)
	switch {
	case errors.Is(err, ErrRecordNotFound):
		rec = entities.NewIncorrectQuestionRecord(userID, questionID, categoryLabel, difficulty, aircraftType)
	case err != nil:
		return fmt.Errorf("get incorrect record: %w", err)
	default:
		rec.RecordMiss(time.Now())
	}

	if err := m.store.Upsert(ctx, rec); err != nil {
		return fmt.Errorf("upsert incorrect record: %w", err)
	}
	return nil
}

// MarkResolved flips the record to resolved after a correct answer in a
// review context. Idempotent; a missing record is a no-op, not an error.
func (m *Manager) MarkResolved(ctx context.Context, userID int64, questionID string) error {
	rec, err := m.store.GetByQuestion(ctx, userID, questionID)
	if errors.Is(err, ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("get incorrect record: %w", err)
	}
	if rec.IsResolved {
		return nil
	}

	rec.Resolve()
	if err := m.store.Upsert(ctx, rec); err != nil {
		return fmt.Errorf("upsert incorrect record: %w", err)
	}
	return nil
}

// ListUnresolved returns the user's open records, optionally narrowed
// by category using the same permissive cascade the session filter uses.
func (m *Manager) ListUnresolved(ctx context.Context, userID int64, categoryFilter []string) ([]*entities.IncorrectQuestionRecord, error) {
	records, err := m.store.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get incorrect records: %w", err)
	}

	out := make([]*entities.IncorrectQuestionRecord, 0, len(records))
	for _, rec := range records {
		if rec.IsResolved {
			continue
		}
		if len(categoryFilter) > 0 && !category.Matches(rec.Category, categoryFilter) {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

// UnresolvedIDSet returns the set of unresolved question IDs, the shape
// the session assembler intersects against in review mode.
func (m *Manager) UnresolvedIDSet(ctx context.Context, userID int64) (map[string]struct{}, error) {
	records, err := m.ListUnresolved(ctx, userID, nil)
	if err != nil {
		return nil, err
	}

	ids := make(map[string]struct{}, len(records))
	for _, rec := range records {
		ids[rec.QuestionID] = struct{}{}
	}
	return ids, nil
}

// Stats summarizes a user's review queue.
type Stats struct {
	Open        int // unresolved records
	Resolved    int
	MaxAttempts int // highest miss count across open records
}

// QueueStats computes open/resolved counts and the worst attempt count.
func (m *Manager) QueueStats(ctx context.Context, userID int64) (*Stats, error) {
	records, err := m.store.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get incorrect records: %w", err)
	}

	stats := &Stats{}
	for _, rec := range records {
		if rec.IsResolved {
			stats.Resolved++
			continue
		}
		stats.Open++
		if rec.AttemptCount > stats.MaxAttempts {
			stats.MaxAttempts = rec.AttemptCount
		}
	}
	return stats, nil
}
