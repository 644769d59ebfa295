package session

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/aviaprep/typerating-engine/internal/domain/entities"
)

// QuestionBank supplies the full question set. The engine filters the
// active flag itself, so implementations return active and inactive
// records alike.
type QuestionBank interface {
	List(ctx context.Context) ([]entities.QuestionRecord, error)
}

// ReviewQueue exposes the unresolved-question set consumed by review
// sessions.
type ReviewQueue interface {
	UnresolvedIDSet(ctx context.Context, userID int64) (map[string]struct{}, error)
}

// Service assembles complete sessions: it fetches the bank, consults
// the review queue when the mode asks for it and wraps the result in a
// Session entity.
type Service struct {
	bank      QuestionBank
	review    ReviewQueue
	assembler *Assembler
}

// NewService creates a session service.
func NewService(bank QuestionBank, review ReviewQueue, logger *zap.Logger) *Service {
	return &Service{
		bank:      bank,
		review:    review,
		assembler: NewAssembler(logger),
	}
}

// BuildSession assembles a session for the user according to the
// filter. Returns ErrNoQuestionsAvailable (wrapped) when nothing
// matched, and entities.ErrInvalidFilter for malformed input.
func (s *Service) BuildSession(ctx context.Context, userID int64, filter entities.SessionFilter) (*entities.Session, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	bank, err := s.bank.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list question bank: %w", err)
	}

	var reviewIDs map[string]struct{}
	if filter.Mode == entities.ModeReview {
		reviewIDs, err = s.review.UnresolvedIDSet(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("get unresolved questions: %w", err)
		}
	}

	questions, err := s.assembler.Assemble(bank, filter, reviewIDs)
	if err != nil {
		return nil, err
	}

	return entities.NewSession(userID, filter.Mode, questions), nil
}
