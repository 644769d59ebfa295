package session

import (
	"errors"
	"math/rand"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/aviaprep/typerating-engine/internal/category"
	"github.com/aviaprep/typerating-engine/internal/domain/entities"
)

// ErrNoQuestionsAvailable signals that no question satisfied the filter.
// It is a valid outcome, not a failure: callers decide whether to relax
// the filter or report an empty result to the user.
var ErrNoQuestionsAvailable = errors.New("no questions available")

// Assembler builds a bounded question list from the full bank and a
// session filter. It holds no state between calls; randomness comes
// from a per-call source so that a supplied seed makes assembly
// reproducible across retries.
type Assembler struct {
	logger *zap.Logger
}

// NewAssembler creates an Assembler. The logger reports question
// records excluded for violating authoring invariants so the content
// team can clean them up.
func NewAssembler(logger *zap.Logger) *Assembler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Assembler{logger: logger}
}

// Assemble filters the bank down to the records satisfying the filter
// and bounds the result to filter.Count.
//
// Filtering order: active flag, authoring invariants, aircraft type,
// categories (permissive cascade matching), difficulty, and for review
// mode an intersection with the caller-supplied unresolved question
// IDs. An empty reviewIDs set in review mode yields an empty result,
// never a fallback to the full bank.
//
// If the filtered set fits within Count it is returned whole in
// original bank order. Otherwise exactly Count records are drawn by
// uniform sampling without replacement; review sessions keep the
// original relative order, practice and timed sessions are shuffled.
func (a *Assembler) Assemble(bank []entities.QuestionRecord, filter entities.SessionFilter, reviewIDs map[string]struct{}) ([]entities.QuestionRecord, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	filtered := make([]entities.QuestionRecord, 0, len(bank))
	for _, q := range bank {
		if !q.IsActive {
			continue
		}
		if !q.Valid() {
			a.logger.Warn("excluding invalid question record",
				zap.String("question_id", q.ID),
				zap.Int("options", len(q.Options)),
				zap.Int("correct_answer", q.CorrectAnswer),
			)
			continue
		}
		if !q.MatchesAircraft(filter.AircraftType) {
			continue
		}
		if len(filter.Categories) > 0 && !category.Matches(q.Category, filter.Categories) {
			continue
		}
		if filter.Difficulty != "" && q.Difficulty != filter.Difficulty {
			continue
		}
		if filter.Mode == entities.ModeReview {
			if _, ok := reviewIDs[q.ID]; !ok {
				continue
			}
		}
		filtered = append(filtered, q)
	}

	if len(filtered) == 0 {
		return nil, ErrNoQuestionsAvailable
	}

	if len(filtered) <= filter.Count {
		return filtered, nil
	}

	return a.sample(filtered, filter), nil
}

// sample draws filter.Count records without replacement.
func (a *Assembler) sample(pool []entities.QuestionRecord, filter entities.SessionFilter) []entities.QuestionRecord {
	rng := newRNG(filter.Seed)

	indices := rng.Perm(len(pool))[:filter.Count]
	if filter.Mode == entities.ModeReview {
		// Review sessions keep the original bank order for stability.
		sort.Ints(indices)
	}

	out := make([]entities.QuestionRecord, 0, filter.Count)
	for _, i := range indices {
		out = append(out, pool[i])
	}
	return out
}

func newRNG(seed *int64) *rand.Rand {
	if seed != nil {
		return rand.New(rand.NewSource(*seed))
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}
