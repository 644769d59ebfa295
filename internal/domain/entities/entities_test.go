package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestQuestionRecordValid(t *testing.T) {
	base := QuestionRecord{
		ID:            "q1",
		Text:          "Which bus feeds the standby AC bus?",
		Options:       []string{"AC bus 1", "Battery bus"},
		CorrectAnswer: 0,
	}
	assert.True(t, base.Valid())

	tests := []struct {
		name   string
		mutate func(*QuestionRecord)
	}{
		{"missing id", func(q *QuestionRecord) { q.ID = "" }},
		{"missing text", func(q *QuestionRecord) { q.Text = "" }},
		{"single option", func(q *QuestionRecord) { q.Options = q.Options[:1] }},
		{"answer out of bounds", func(q *QuestionRecord) { q.CorrectAnswer = 2 }},
		{"negative answer", func(q *QuestionRecord) { q.CorrectAnswer = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := base
			tt.mutate(&q)
			assert.False(t, q.Valid())
		})
	}
}

func TestSessionFilterValidate(t *testing.T) {
	valid := SessionFilter{Count: 10, Mode: ModePractice}
	assert.NoError(t, valid.Validate())

	assert.ErrorIs(t, SessionFilter{Count: 0, Mode: ModePractice}.Validate(), ErrInvalidFilter)
	assert.ErrorIs(t, SessionFilter{Count: 10, Mode: "exam"}.Validate(), ErrInvalidFilter)
	assert.ErrorIs(t, SessionFilter{Count: 10, Mode: ModeTimed, Difficulty: "expert"}.Validate(), ErrInvalidFilter)
}

func TestCourseModuleByID(t *testing.T) {
	course := Course{
		ID: "b737-type-rating",
		Modules: []Module{
			{ID: "foundations", Order: 1},
			{ID: "electrical", Order: 2},
		},
	}

	m := course.ModuleByID("electrical")
	if assert.NotNil(t, m) {
		assert.Equal(t, 2, m.Order)
	}
	assert.Nil(t, course.ModuleByID("hydraulics"))
}

func TestIncorrectQuestionRecordLifecycle(t *testing.T) {
	rec := NewIncorrectQuestionRecord(1, "q1", "Fuel System", DifficultyBeginner, AircraftB737)
	assert.Equal(t, 1, rec.AttemptCount)
	assert.False(t, rec.IsResolved)

	now := time.Now().Add(time.Hour)
	rec.RecordMiss(now)
	assert.Equal(t, 2, rec.AttemptCount)
	assert.Equal(t, now, rec.LastAttemptAt)

	rec.Resolve()
	assert.True(t, rec.IsResolved)

	// A miss after resolution reopens with a fresh counter.
	rec.RecordMiss(now.Add(time.Hour))
	assert.False(t, rec.IsResolved)
	assert.Equal(t, 1, rec.AttemptCount)
}
