package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aviaprep/typerating-engine/internal/domain/entities"
	"github.com/aviaprep/typerating-engine/internal/infra/postgres"
	"github.com/aviaprep/typerating-engine/internal/progress"
)

// ProgressRepository persists lesson progress keyed by (user_id, lesson_id).
type ProgressRepository struct {
	db postgres.DBTX
}

// NewProgressRepository creates a new ProgressRepository.
func NewProgressRepository(db postgres.DBTX) *ProgressRepository {
	return &ProgressRepository{db: db}
}

// Upsert creates or updates a lesson progress record.
func (r *ProgressRepository) Upsert(ctx context.Context, rec *entities.LessonProgress) error {
	query := `
		INSERT INTO lesson_progress (
			user_id, lesson_id, theory_completed, flashcards_completed,
			quiz_completed, quiz_score, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, lesson_id) DO UPDATE SET
			theory_completed = EXCLUDED.theory_completed,
			flashcards_completed = EXCLUDED.flashcards_completed,
			quiz_completed = EXCLUDED.quiz_completed,
			quiz_score = EXCLUDED.quiz_score,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.Exec(
		ctx,
		query,
		rec.UserID,
		rec.LessonID,
		rec.TheoryCompleted,
		rec.FlashcardsCompleted,
		rec.QuizCompleted,
		rec.QuizScore,
		rec.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("upsert lesson progress: %w", err)
	}

	return nil
}

// Get retrieves a single lesson progress record, translating a missing
// row into progress.ErrProgressNotFound.
func (r *ProgressRepository) Get(ctx context.Context, userID int64, lessonID string) (*entities.LessonProgress, error) {
	query := `
		SELECT user_id, lesson_id, theory_completed, flashcards_completed,
		       quiz_completed, quiz_score, updated_at
		FROM lesson_progress
		WHERE user_id = $1 AND lesson_id = $2
	`

	var rec entities.LessonProgress
	err := r.db.QueryRow(ctx, query, userID, lessonID).Scan(
		&rec.UserID,
		&rec.LessonID,
		&rec.TheoryCompleted,
		&rec.FlashcardsCompleted,
		&rec.QuizCompleted,
		&rec.QuizScore,
		&rec.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, progress.ErrProgressNotFound
		}
		return nil, fmt.Errorf("get lesson progress: %w", err)
	}

	return &rec, nil
}

// GetByUser returns all lesson progress records of a user.
func (r *ProgressRepository) GetByUser(ctx context.Context, userID int64) ([]*entities.LessonProgress, error) {
	query := `
		SELECT user_id, lesson_id, theory_completed, flashcards_completed,
		       quiz_completed, quiz_score, updated_at
		FROM lesson_progress
		WHERE user_id = $1
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("get user lesson progress: %w", err)
	}
	defer rows.Close()

	var records []*entities.LessonProgress
	for rows.Next() {
		var rec entities.LessonProgress
		if err := rows.Scan(
			&rec.UserID,
			&rec.LessonID,
			&rec.TheoryCompleted,
			&rec.FlashcardsCompleted,
			&rec.QuizCompleted,
			&rec.QuizScore,
			&rec.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan lesson progress: %w", err)
		}
		records = append(records, &rec)
	}

	return records, rows.Err()
}
