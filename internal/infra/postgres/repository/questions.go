package repository

import (
	"context"
	"fmt"

	"github.com/aviaprep/typerating-engine/internal/domain/entities"
	"github.com/aviaprep/typerating-engine/internal/infra/postgres"
)

// QuestionRepository reads the shared question bank. The bank is
// authored externally and read-only from the engine's point of view.
type QuestionRepository struct {
	db postgres.DBTX
}

// NewQuestionRepository creates a new QuestionRepository.
func NewQuestionRepository(db postgres.DBTX) *QuestionRepository {
	return &QuestionRepository{db: db}
}

// List returns the full question set, active and inactive alike; the
// engine applies the active filter itself.
func (r *QuestionRepository) List(ctx context.Context) ([]entities.QuestionRecord, error) {
	query := `
		SELECT id, question_text, options, correct_answer, explanation,
		       aircraft_type, category, difficulty, is_active, created_at, source_ref
		FROM questions
		ORDER BY created_at, id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	defer rows.Close()

	var questions []entities.QuestionRecord
	for rows.Next() {
		var q entities.QuestionRecord
		var aircraftType, difficulty string

		if err := rows.Scan(
			&q.ID,
			&q.Text,
			&q.Options,
			&q.CorrectAnswer,
			&q.Explanation,
			&aircraftType,
			&q.Category,
			&difficulty,
			&q.IsActive,
			&q.CreatedAt,
			&q.SourceRef,
		); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}

		q.AircraftType = entities.AircraftType(aircraftType)
		q.Difficulty = entities.Difficulty(difficulty)
		questions = append(questions, q)
	}

	return questions, rows.Err()
}
