package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aviaprep/typerating-engine/internal/domain/entities"
	"github.com/aviaprep/typerating-engine/internal/infra/postgres"
	"github.com/aviaprep/typerating-engine/internal/review"
)

// ReviewRepository persists incorrect-question records keyed by
// (user_id, question_id).
type ReviewRepository struct {
	db postgres.DBTX
}

// NewReviewRepository creates a new ReviewRepository.
func NewReviewRepository(db postgres.DBTX) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Upsert creates or replaces a record by its (user, question) key. The
// upsert is idempotent by key, which is what lets concurrent devices of
// the same user race safely with last-writer-wins semantics.
func (r *ReviewRepository) Upsert(ctx context.Context, rec *entities.IncorrectQuestionRecord) error {
	query := `
		INSERT INTO incorrect_questions (
			user_id, question_id, category, difficulty, aircraft_type,
			is_resolved, attempt_count, last_attempt_at, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id, question_id) DO UPDATE SET
			category = EXCLUDED.category,
			difficulty = EXCLUDED.difficulty,
			aircraft_type = EXCLUDED.aircraft_type,
			is_resolved = EXCLUDED.is_resolved,
			attempt_count = EXCLUDED.attempt_count,
			last_attempt_at = EXCLUDED.last_attempt_at,
			created_at = incorrect_questions.created_at
	`

	_, err := r.db.Exec(
		ctx,
		query,
		rec.UserID,
		rec.QuestionID,
		rec.Category,
		string(rec.Difficulty),
		string(rec.AircraftType),
		rec.IsResolved,
		rec.AttemptCount,
		rec.LastAttemptAt,
		rec.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("upsert incorrect question: %w", err)
	}

	return nil
}

// GetByQuestion retrieves a single record, translating a missing row
// into review.ErrRecordNotFound.
func (r *ReviewRepository) GetByQuestion(ctx context.Context, userID int64, questionID string) (*entities.IncorrectQuestionRecord, error) {
	query := `
		SELECT user_id, question_id, category, difficulty, aircraft_type,
		       is_resolved, attempt_count, last_attempt_at, created_at
		FROM incorrect_questions
		WHERE user_id = $1 AND question_id = $2
	`

	rec, err := scanIncorrectRecord(r.db.QueryRow(ctx, query, userID, questionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, review.ErrRecordNotFound
		}
		return nil, fmt.Errorf("get incorrect question: %w", err)
	}

	return rec, nil
}

// Get returns all of a user's records, resolved and unresolved.
func (r *ReviewRepository) Get(ctx context.Context, userID int64) ([]*entities.IncorrectQuestionRecord, error) {
	query := `
		SELECT user_id, question_id, category, difficulty, aircraft_type,
		       is_resolved, attempt_count, last_attempt_at, created_at
		FROM incorrect_questions
		WHERE user_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("get incorrect questions: %w", err)
	}
	defer rows.Close()

	var records []*entities.IncorrectQuestionRecord
	for rows.Next() {
		rec, err := scanIncorrectRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan incorrect question: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

func scanIncorrectRecord(row pgx.Row) (*entities.IncorrectQuestionRecord, error) {
	var rec entities.IncorrectQuestionRecord
	var difficulty, aircraftType string

	err := row.Scan(
		&rec.UserID,
		&rec.QuestionID,
		&rec.Category,
		&difficulty,
		&aircraftType,
		&rec.IsResolved,
		&rec.AttemptCount,
		&rec.LastAttemptAt,
		&rec.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	rec.Difficulty = entities.Difficulty(difficulty)
	rec.AircraftType = entities.AircraftType(aircraftType)
	return &rec, nil
}
