package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/aviaprep/typerating-engine/internal/domain/entities"
)

var ErrEmptyBank = errors.New("question bank is empty")

// QuestionBank is a file-backed question source. It loads the whole
// bank into memory once; useful for fixtures, local runs and content
// review without a database.
type QuestionBank struct {
	questions []entities.QuestionRecord
}

type questionJSON struct {
	ID            string    `json:"id"`
	Text          string    `json:"text"`
	Options       []string  `json:"options"`
	CorrectAnswer int       `json:"correct_answer"`
	Explanation   string    `json:"explanation"`
	AircraftType  string    `json:"aircraft_type"`
	Category      string    `json:"category"`
	Difficulty    string    `json:"difficulty"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	SourceRef     string    `json:"source_ref"`
}

// NewQuestionBank loads the bank from a JSON file.
func NewQuestionBank(path string) (*QuestionBank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read question bank: %w", err)
	}

	var raw []questionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse question bank: %w", err)
	}
	if len(raw) == 0 {
		return nil, ErrEmptyBank
	}

	questions := make([]entities.QuestionRecord, 0, len(raw))
	for _, q := range raw {
		questions = append(questions, entities.QuestionRecord{
			ID:            q.ID,
			Text:          q.Text,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
			AircraftType:  entities.AircraftType(q.AircraftType),
			Category:      q.Category,
			Difficulty:    entities.Difficulty(q.Difficulty),
			IsActive:      q.IsActive,
			CreatedAt:     q.CreatedAt,
			SourceRef:     q.SourceRef,
		})
	}

	return &QuestionBank{questions: questions}, nil
}

// List returns the full set, active and inactive alike. The caller
// filters the active flag.
func (b *QuestionBank) List(_ context.Context) ([]entities.QuestionRecord, error) {
	out := make([]entities.QuestionRecord, len(b.questions))
	copy(out, b.questions)
	return out, nil
}
