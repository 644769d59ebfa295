package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/aviaprep/typerating-engine/internal/domain/entities"
	"github.com/aviaprep/typerating-engine/internal/progress"
	"github.com/aviaprep/typerating-engine/internal/review"
)

// MemoryReviewStore is an in-memory review.Store for local runs and
// tests. Not durable.
type MemoryReviewStore struct {
	mu      sync.RWMutex
	records map[string]*entities.IncorrectQuestionRecord
}

// NewMemoryReviewStore creates an empty in-memory review store.
func NewMemoryReviewStore() *MemoryReviewStore {
	return &MemoryReviewStore{records: make(map[string]*entities.IncorrectQuestionRecord)}
}

func reviewKey(userID int64, questionID string) string {
	return fmt.Sprintf("%d/%s", userID, questionID)
}

func (s *MemoryReviewStore) Get(_ context.Context, userID int64) ([]*entities.IncorrectQuestionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*entities.IncorrectQuestionRecord, 0, len(s.records))
	for _, rec := range s.records {
		if rec.UserID == userID {
			cp := *rec
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *MemoryReviewStore) GetByQuestion(_ context.Context, userID int64, questionID string) (*entities.IncorrectQuestionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[reviewKey(userID, questionID)]
	if !ok {
		return nil, review.ErrRecordNotFound
	}
	cp := *rec
	return &cp, nil
}

func (s *MemoryReviewStore) Upsert(_ context.Context, rec *entities.IncorrectQuestionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *rec
	s.records[reviewKey(rec.UserID, rec.QuestionID)] = &cp
	return nil
}

// MemoryProgressStore is an in-memory progress.Store for local runs
// and tests. Not durable.
type MemoryProgressStore struct {
	mu      sync.RWMutex
	records map[string]*entities.LessonProgress
}

// NewMemoryProgressStore creates an empty in-memory progress store.
func NewMemoryProgressStore() *MemoryProgressStore {
	return &MemoryProgressStore{records: make(map[string]*entities.LessonProgress)}
}

func progressKey(userID int64, lessonID string) string {
	return fmt.Sprintf("%d/%s", userID, lessonID)
}

func (s *MemoryProgressStore) Get(_ context.Context, userID int64, lessonID string) (*entities.LessonProgress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[progressKey(userID, lessonID)]
	if !ok {
		return nil, progress.ErrProgressNotFound
	}
	cp := *rec
	return &cp, nil
}

func (s *MemoryProgressStore) GetByUser(_ context.Context, userID int64) ([]*entities.LessonProgress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*entities.LessonProgress, 0, len(s.records))
	for _, rec := range s.records {
		if rec.UserID == userID {
			cp := *rec
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *MemoryProgressStore) Upsert(_ context.Context, rec *entities.LessonProgress) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *rec
	s.records[progressKey(rec.UserID, rec.LessonID)] = &cp
	return nil
}
