package entities

import (
	"time"

	"github.com/google/uuid"
)

// ToneProfile is the accumulated stylistic preferences of a user, built
// incrementally from approval edit deltas and replaced wholesale by the
// one-shot deep analysis once the learning threshold is crossed.
//
// Concurrent approvals for the same user race on this record; the accepted
// policy is last-write-wins (no optimistic lock, matching the original
// product behavior).
type ToneProfile struct {
	ID                 uuid.UUID     `json:"id"`
	UserID             uuid.UUID     `json:"userId"`
	ReinforcedPhrases  []string      `json:"reinforcedPhrases"`
	DiscouragedPhrases []string      `json:"discouragedPhrases"`
	TargetLength       int           `json:"targetLength"`
	Exemplars          []string      `json:"exemplars"`
	NotesAnalyzed      int           `json:"notesAnalyzed"`
	LearningComplete   bool          `json:"learningComplete"`
	StyleSummary       *StyleSummary `json:"styleSummary,omitempty"`
	LastUpdated        time.Time     `json:"lastUpdated"`
	CreatedAt          time.Time     `json:"createdAt"`
}

// StyleSummary is the structured output of the one-shot deep style analysis.
type StyleSummary struct {
	ToneDescription    string   `json:"tone_description"`
	AverageLength      int      `json:"average_length"`
	SentenceStructure  string   `json:"sentence_structure"`
	CommonPhrases      []string `json:"common_phrases"`
	OpeningStyle       string   `json:"opening_style"`
	ClosingStyle       string   `json:"closing_style"`
	Formality          string   `json:"formality"`
	EnthusiasmLevel    string   `json:"enthusiasm_level"`
	ExampleNotes       []string `json:"example_notes"`
	KeyCharacteristics []string `json:"key_characteristics"`
}
