package entities

import "time"

// AircraftType identifies the aircraft family a question belongs to.
type AircraftType string

const (
	AircraftA320 AircraftType = "A320_FAMILY"
	AircraftB737 AircraftType = "B737_FAMILY"
	AircraftB777 AircraftType = "B777_FAMILY"
	AircraftE190 AircraftType = "E190_FAMILY"
	AircraftAll  AircraftType = "ALL" // general questions, not tied to a single type
)

// Difficulty classifies a question by expected learner level.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// QuestionRecord is a single multiple-choice question from the bank.
// Records are authored externally and treated as immutable by the engine.
type QuestionRecord struct {
	ID            string
	Text          string
	Options       []string // at least two options
	CorrectAnswer int      // index into Options
	Explanation   string
	AircraftType  AircraftType
	Category      string // free-text label, human-entered, not canonical
	Difficulty    Difficulty
	IsActive      bool
	CreatedAt     time.Time
	SourceRef     string // reference to the source document (FCOM chapter, QRH page etc)
}

// Valid reports whether the record satisfies the authoring invariants:
// non-empty text, at least two options and a correct-answer index inside
// the option list. Records failing this check are excluded from assembly
// rather than failing the whole call.
func (q *QuestionRecord) Valid() bool {
	if q.Text == "" || q.ID == "" {
		return false
	}
	if len(q.Options) < 2 {
		return false
	}
	return q.CorrectAnswer >= 0 && q.CorrectAnswer < len(q.Options)
}

// MatchesAircraft reports whether the record satisfies an aircraft-type
// constraint. An empty constraint or AircraftAll means no constraint.
func (q *QuestionRecord) MatchesAircraft(t AircraftType) bool {
	if t == "" || t == AircraftAll {
		return true
	}
	return q.AircraftType == t
}
