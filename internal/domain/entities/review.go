package entities

import "time"

// IncorrectQuestionRecord tracks a question a user has answered wrong.
// It is owned by the (user, question) pair: created on the first miss,
// incremented on repeat misses and resolved once the user answers
// correctly in a review context. A miss after resolution reopens it.
type IncorrectQuestionRecord struct {
	UserID        int64
	QuestionID    string
	Category      string // category label at the time of the failure
	Difficulty    Difficulty
	AircraftType  AircraftType
	IsResolved    bool
	AttemptCount  int // number of misses, always >= 1
	LastAttemptAt time.Time
	CreatedAt     time.Time
}

// NewIncorrectQuestionRecord creates a record for the first miss.
func NewIncorrectQuestionRecord(userID int64, questionID, category string, difficulty Difficulty, aircraftType AircraftType) *IncorrectQuestionRecord {
	now := time.Now()
	return &IncorrectQuestionRecord{
		UserID:        userID,
		QuestionID:    questionID,
		Category:      category,
		Difficulty:    difficulty,
		AircraftType:  aircraftType,
		IsResolved:    false,
		AttemptCount:  1,
		LastAttemptAt: now,
		CreatedAt:     now,
	}
}

// RecordMiss registers another incorrect answer. An unresolved record
// gets its counter incremented; a resolved record is reopened with the
// counter reset to 1, since a later miss invalidates the prior resolution.
func (r *IncorrectQuestionRecord) RecordMiss(now time.Time) {
	if r.IsResolved {
		r.IsResolved = false
		r.AttemptCount = 1
	} else {
		r.AttemptCount++
	}
	r.LastAttemptAt = now
}

// Resolve marks the record as answered correctly in review. Idempotent.
func (r *IncorrectQuestionRecord) Resolve() {
	r.IsResolved = true
}
