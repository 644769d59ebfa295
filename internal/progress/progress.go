// Package progress tracks per-lesson completion (theory, flashcards,
// quiz) and derives module unlock and course completion from it.
// Sub-component flags are independent: ordering policy, such as gating
// the quiz behind flashcards, belongs to the caller, since different
// lesson types carry different prerequisite policies.
package progress

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aviaprep/typerating-engine/internal/domain/entities"
)

var ErrProgressNotFound = errors.New("lesson progress not found")

// Store persists lesson progress keyed by (user, lesson). Upserts are
// expected to be idempotent by key; the tracker does not lock.
type Store interface {
	Get(ctx context.Context, userID int64, lessonID string) (*entities.LessonProgress, error)
	GetByUser(ctx context.Context, userID int64) ([]*entities.LessonProgress, error)
	Upsert(ctx context.Context, rec *entities.LessonProgress) error
}

// Tracker implements the lesson progression state machine on top of a
// Store. Records are created lazily on first interaction and flags are
// monotonic except through an explicit reset.
type Tracker struct {
	store Store
}

// NewTracker creates a progress tracker.
func NewTracker(store Store) *Tracker {
	return &Tracker{store: store}
}

// MarkTheory marks the theory part of a lesson complete.
func (t *Tracker) MarkTheory(ctx context.Context, userID int64, lessonID string) error {
	return t.update(ctx, userID, lessonID, func(p *entities.LessonProgress) {
		p.TheoryCompleted = true
	})
}

// MarkFlashcards marks the flashcard deck of a lesson complete.
func (t *Tracker) MarkFlashcards(ctx context.Context, userID int64, lessonID string) error {
	return t.update(ctx, userID, lessonID, func(p *entities.LessonProgress) {
		p.FlashcardsCompleted = true
	})
}

// RecordQuiz marks the lesson quiz complete with the given score. The
// best score across attempts is kept. The tracker does not check that
// flashcards were completed first; that gate is caller policy.
func (t *Tracker) RecordQuiz(ctx context.Context, userID int64, lessonID string, score int) error {
	now := time.Now()
	return t.update(ctx, userID, lessonID, func(p *entities.LessonProgress) {
		p.RecordQuiz(score, now)
	})
}

// ResetLesson clears all completion flags and the quiz score. This is
// the only path that clears progress.
func (t *Tracker) ResetLesson(ctx context.Context, userID int64, lessonID string) error {
	now := time.Now()
	return t.update(ctx, userID, lessonID, func(p *entities.LessonProgress) {
		p.Reset(now)
	})
}

// LessonStatus returns the progress record for a lesson, or an empty
// record if the user has not interacted with it yet.
func (t *Tracker) LessonStatus(ctx context.Context, userID int64, lessonID string) (*entities.LessonProgress, error) {
	rec, err := t.store.Get(ctx, userID, lessonID)
	if errors.Is(err, ErrProgressNotFound) {
		return entities.NewLessonProgress(userID, lessonID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("get lesson progress: %w", err)
	}
	return rec, nil
}

func (t *Tracker) update(ctx context.Context, userID int64, lessonID string, apply func(*entities.LessonProgress)) error {
	rec, err := t.store.Get(ctx, userID, lessonID)
	switch {
	case errors.Is(err, ErrProgressNotFound):
		rec = entities.NewLessonProgress(userID, lessonID)
	case err != nil:
		return fmt.Errorf("get lesson progress: %w", err)
	}

	apply(rec)
	rec.UpdatedAt = time.Now()

	if err := t.store.Upsert(ctx, rec); err != nil {
		return fmt.Errorf("upsert lesson progress: %w", err)
	}
	return nil
}

// ModuleStatus aggregates lesson completion within one module.
type ModuleStatus struct {
	ModuleID  string
	Title     string
	Completed int
	Total     int
	Unlocked  bool
}

// IsCompleted reports whether every lesson of the module is done.
func (s ModuleStatus) IsCompleted() bool {
	return s.Total > 0 && s.Completed == s.Total
}

// CourseStatus lists module statuses in course order plus the derived
// course-completion flag.
type CourseStatus struct {
	Modules         []ModuleStatus
	CourseCompleted bool
}

// CourseStatus computes per-module completion and unlock state for the
// user. The first module is always unlocked; module N+1 unlocks once
// every lesson of module N is completed. Course completion is true iff
// every lesson across every module is completed.
func (t *Tracker) CourseStatus(ctx context.Context, userID int64, course *entities.Course) (*CourseStatus, error) {
	records, err := t.store.GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user progress: %w", err)
	}

	completed := make(map[string]bool, len(records))
	for _, rec := range records {
		completed[rec.LessonID] = rec.IsCompleted()
	}

	status := &CourseStatus{
		Modules:         make([]ModuleStatus, 0, len(course.Modules)),
		CourseCompleted: course.LessonCount() > 0,
	}

	previousCompleted := true // first module is unconditionally unlocked
	for _, m := range course.Modules {
		ms := ModuleStatus{
			ModuleID: m.ID,
			Title:    m.Title,
			Total:    len(m.LessonIDs),
			Unlocked: previousCompleted,
		}
		for _, lessonID := range m.LessonIDs {
			if completed[lessonID] {
				ms.Completed++
			} else {
				status.CourseCompleted = false
			}
		}
		status.Modules = append(status.Modules, ms)
		previousCompleted = ms.IsCompleted()
	}

	return status, nil
}

// IsModuleUnlocked reports whether the given module is reachable for
// the user.
func (t *Tracker) IsModuleUnlocked(ctx context.Context, userID int64, course *entities.Course, moduleID string) (bool, error) {
	if course.ModuleByID(moduleID) == nil {
		return false, fmt.Errorf("module %q not in course %q", moduleID, course.ID)
	}

	status, err := t.CourseStatus(ctx, userID, course)
	if err != nil {
		return false, err
	}
	for _, ms := range status.Modules {
		if ms.ModuleID == moduleID {
			return ms.Unlocked, nil
		}
	}
	return false, nil
}

// CourseCompleted reports whether the user finished every lesson of the
// course. Persisting the flag is the caller's concern; once stored it
// is never cleared automatically.
func (t *Tracker) CourseCompleted(ctx context.Context, userID int64, course *entities.Course) (bool, error) {
	status, err := t.CourseStatus(ctx, userID, course)
	if err != nil {
		return false, err
	}
	return status.CourseCompleted, nil
}
