package session

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aviaprep/typerating-engine/internal/domain/entities"
)

func makeQuestion(id string, aircraft entities.AircraftType, cat string, diff entities.Difficulty) entities.QuestionRecord {
	return entities.QuestionRecord{
		ID:            id,
		Text:          "What powers the " + cat + " system?",
		Options:       []string{"AC bus 1", "DC bus 2", "APU generator", "RAT"},
		CorrectAnswer: 0,
		AircraftType:  aircraft,
		Category:      cat,
		Difficulty:    diff,
		IsActive:      true,
	}
}

func makeBank(n int, aircraft entities.AircraftType, cat string) []entities.QuestionRecord {
	bank := make([]entities.QuestionRecord, 0, n)
	for i := 0; i < n; i++ {
		bank = append(bank, makeQuestion(fmt.Sprintf("%s-%s-%d", aircraft, cat, i), aircraft, cat, entities.DifficultyIntermediate))
	}
	return bank
}

func practiceFilter(count int) entities.SessionFilter {
	return entities.SessionFilter{Count: count, Mode: entities.ModePractice}
}

func TestAssembleRejectsInvalidFilter(t *testing.T) {
	a := NewAssembler(nil)
	bank := makeBank(5, entities.AircraftB737, "fuel")

	_, err := a.Assemble(bank, entities.SessionFilter{Count: 0, Mode: entities.ModePractice}, nil)
	assert.ErrorIs(t, err, entities.ErrInvalidFilter)

	_, err = a.Assemble(bank, entities.SessionFilter{Count: 5, Mode: "exam"}, nil)
	assert.ErrorIs(t, err, entities.ErrInvalidFilter)
}

func TestAssembleFiltersInactive(t *testing.T) {
	a := NewAssembler(nil)
	bank := makeBank(3, entities.AircraftB737, "fuel")
	bank[1].IsActive = false

	got, err := a.Assemble(bank, practiceFilter(10), nil)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestAssembleExcludesInvalidRecords(t *testing.T) {
	a := NewAssembler(nil)
	bank := makeBank(3, entities.AircraftB737, "fuel")
	bank[0].CorrectAnswer = 7 // out of bounds
	bank[2].Options = bank[2].Options[:1]

	got, err := a.Assemble(bank, practiceFilter(10), nil)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, bank[1].ID, got[0].ID)
}

func TestAssembleAircraftAndCategoryFilter(t *testing.T) {
	a := NewAssembler(nil)
	bank := append(makeBank(50, entities.AircraftB737, "fuel"), makeBank(50, entities.AircraftA320, "fuel")...)

	filter := entities.SessionFilter{
		AircraftType: entities.AircraftB737,
		Categories:   []string{"fuel"},
		Count:        20,
		Mode:         entities.ModePractice,
	}

	got, err := a.Assemble(bank, filter, nil)
	require.NoError(t, err)
	require.Len(t, got, 20)
	for _, q := range got {
		assert.Equal(t, entities.AircraftB737, q.AircraftType)
		assert.Equal(t, "fuel", q.Category)
	}
}

func TestAssembleAllAircraftMeansNoConstraint(t *testing.T) {
	a := NewAssembler(nil)
	bank := append(makeBank(5, entities.AircraftB737, "fuel"), makeBank(5, entities.AircraftA320, "fuel")...)

	filter := entities.SessionFilter{
		AircraftType: entities.AircraftAll,
		Count:        100,
		Mode:         entities.ModePractice,
	}

	got, err := a.Assemble(bank, filter, nil)
	require.NoError(t, err)
	assert.Len(t, got, 10)
}

func TestAssembleCategoryCascade(t *testing.T) {
	a := NewAssembler(nil)
	bank := []entities.QuestionRecord{
		makeQuestion("q1", entities.AircraftB737, "Electrical Systems", entities.DifficultyBeginner),
		makeQuestion("q2", entities.AircraftB737, "Hydraulics", entities.DifficultyBeginner),
		makeQuestion("q3", entities.AircraftB737, "Sistema Eléctrico", entities.DifficultyBeginner),
	}

	filter := entities.SessionFilter{
		Categories: []string{"Electrical"},
		Count:      10,
		Mode:       entities.ModePractice,
	}

	got, err := a.Assemble(bank, filter, nil)
	require.NoError(t, err)
	// Substring tier catches "Electrical Systems"; the Spanish label
	// shares no token with "Electrical" and stays out.
	require.Len(t, got, 1)
	assert.Equal(t, "q1", got[0].ID)
}

func TestAssembleDifficultyFilter(t *testing.T) {
	a := NewAssembler(nil)
	bank := makeBank(4, entities.AircraftB737, "fuel")
	bank[2].Difficulty = entities.DifficultyAdvanced

	filter := entities.SessionFilter{
		Difficulty: entities.DifficultyAdvanced,
		Count:      10,
		Mode:       entities.ModePractice,
	}

	got, err := a.Assemble(bank, filter, nil)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, bank[2].ID, got[0].ID)
}

func TestAssembleEmptyResult(t *testing.T) {
	a := NewAssembler(nil)
	bank := makeBank(5, entities.AircraftB737, "fuel")

	filter := entities.SessionFilter{
		AircraftType: entities.AircraftA320,
		Count:        5,
		Mode:         entities.ModePractice,
	}

	_, err := a.Assemble(bank, filter, nil)
	assert.ErrorIs(t, err, ErrNoQuestionsAvailable)
}

func TestAssembleReturnsAllInOrderWhenUnderCount(t *testing.T) {
	a := NewAssembler(nil)
	bank := makeBank(7, entities.AircraftB737, "fuel")

	got, err := a.Assemble(bank, practiceFilter(20), nil)
	require.NoError(t, err)
	require.Len(t, got, 7)
	for i, q := range got {
		assert.Equal(t, bank[i].ID, q.ID)
	}
}

func TestAssembleNoDuplicates(t *testing.T) {
	a := NewAssembler(nil)
	bank := makeBank(100, entities.AircraftB737, "fuel")

	got, err := a.Assemble(bank, practiceFilter(30), nil)
	require.NoError(t, err)
	require.Len(t, got, 30)

	seen := make(map[string]struct{}, len(got))
	for _, q := range got {
		_, dup := seen[q.ID]
		assert.False(t, dup, "duplicate question %s", q.ID)
		seen[q.ID] = struct{}{}
	}
}

func TestAssembleSeedDeterminism(t *testing.T) {
	a := NewAssembler(nil)
	bank := makeBank(50, entities.AircraftB737, "fuel")

	seed := int64(42)
	filter := entities.SessionFilter{Count: 10, Mode: entities.ModeTimed, Seed: &seed}

	first, err := a.Assemble(bank, filter, nil)
	require.NoError(t, err)
	second, err := a.Assemble(bank, filter, nil)
	require.NoError(t, err)

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
	}
}

func TestAssembleReviewIntersection(t *testing.T) {
	a := NewAssembler(nil)
	bank := makeBank(10, entities.AircraftB737, "fuel")

	reviewIDs := map[string]struct{}{
		bank[2].ID: {},
		bank[5].ID: {},
	}

	filter := entities.SessionFilter{Count: 10, Mode: entities.ModeReview}
	got, err := a.Assemble(bank, filter, reviewIDs)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, bank[2].ID, got[0].ID)
	assert.Equal(t, bank[5].ID, got[1].ID)
}

func TestAssembleReviewEmptySetNeverFallsBack(t *testing.T) {
	a := NewAssembler(nil)
	bank := makeBank(10, entities.AircraftB737, "fuel")

	filter := entities.SessionFilter{Count: 10, Mode: entities.ModeReview}
	_, err := a.Assemble(bank, filter, nil)
	assert.ErrorIs(t, err, ErrNoQuestionsAvailable)

	_, err = a.Assemble(bank, filter, map[string]struct{}{})
	assert.ErrorIs(t, err, ErrNoQuestionsAvailable)
}

func TestAssembleReviewSamplingKeepsBankOrder(t *testing.T) {
	a := NewAssembler(nil)
	bank := makeBank(30, entities.AircraftB737, "fuel")

	reviewIDs := make(map[string]struct{}, len(bank))
	for _, q := range bank {
		reviewIDs[q.ID] = struct{}{}
	}

	seed := int64(7)
	filter := entities.SessionFilter{Count: 10, Mode: entities.ModeReview, Seed: &seed}
	got, err := a.Assemble(bank, filter, reviewIDs)
	require.NoError(t, err)
	require.Len(t, got, 10)

	pos := make(map[string]int, len(bank))
	for i, q := range bank {
		pos[q.ID] = i
	}
	for i := 1; i < len(got); i++ {
		assert.Less(t, pos[got[i-1].ID], pos[got[i].ID], "review sample must preserve bank order")
	}
}
