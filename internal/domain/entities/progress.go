package entities

import "time"

// LessonProgress stores the three-part completion state of a lesson for
// a user. The flags are independent: the engine stores whatever it is
// given and leaves ordering policy (e.g. quiz gated behind flashcards)
// to the caller. Flags are only cleared by an explicit reset.
type LessonProgress struct {
	UserID              int64
	LessonID            string
	TheoryCompleted     bool
	FlashcardsCompleted bool
	QuizCompleted       bool
	QuizScore           int // 0-100, best score across attempts
	UpdatedAt           time.Time
}

// NewLessonProgress creates an empty progress record, created lazily on
// the first interaction with a lesson.
func NewLessonProgress(userID int64, lessonID string) *LessonProgress {
	return &LessonProgress{
		UserID:    userID,
		LessonID:  lessonID,
		UpdatedAt: time.Now(),
	}
}

// IsCompleted reports whether all three parts of the lesson are done.
func (p *LessonProgress) IsCompleted() bool {
	return p.TheoryCompleted && p.FlashcardsCompleted && p.QuizCompleted
}

// RecordQuiz marks the quiz part complete and keeps the best score.
// Scores are clamped to the 0-100 range.
func (p *LessonProgress) RecordQuiz(score int, now time.Time) {
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	p.QuizCompleted = true
	if score > p.QuizScore {
		p.QuizScore = score
	}
	p.UpdatedAt = now
}

// Reset clears all flags and the score. This is the only path that
// clears completion state.
func (p *LessonProgress) Reset(now time.Time) {
	p.TheoryCompleted = false
	p.FlashcardsCompleted = false
	p.QuizCompleted = false
	p.QuizScore = 0
	p.UpdatedAt = now
}
