package entities

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SessionMode determines how a question set is assembled and presented.
type SessionMode string

const (
	ModePractice SessionMode = "practice" // untimed, randomized
	ModeTimed    SessionMode = "timed"    // time-boxed, randomized
	ModeReview   SessionMode = "review"   // previously missed questions, stable order
)

var ErrInvalidFilter = errors.New("invalid session filter")

// SessionFilter carries the criteria a learner selected for a session.
// Category labels are free text and are matched permissively, not by
// exact key. A nil Seed means assembly is non-deterministic per call.
type SessionFilter struct {
	AircraftType AircraftType // "" or ALL means no constraint
	Categories   []string     // empty means all categories
	Difficulty   Difficulty   // "" means all difficulties
	Count        int
	Mode         SessionMode
	Seed         *int64
}

// Validate rejects malformed filters before any bank access.
func (f SessionFilter) Validate() error {
	if f.Count <= 0 {
		return fmt.Errorf("%w: count must be positive, got %d", ErrInvalidFilter, f.Count)
	}

	switch f.Mode {
	case ModePractice, ModeTimed, ModeReview:
	default:
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidFilter, f.Mode)
	}

	switch f.Difficulty {
	case "", DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
	default:
		return fmt.Errorf("%w: unknown difficulty %q", ErrInvalidFilter, f.Difficulty)
	}

	return nil
}

// Session is one assembled, bounded question set for a user.
type Session struct {
	ID        string
	UserID    int64
	Mode      SessionMode
	Questions []QuestionRecord
	CreatedAt time.Time
}

// NewSession creates a session around an assembled question list.
func NewSession(userID int64, mode SessionMode, questions []QuestionRecord) *Session {
	return &Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		Mode:      mode,
		Questions: questions,
		CreatedAt: time.Now(),
	}
}
