package library

import "time"

// AnswerStatus is the outcome recorded for a single question within a
// session or attempt.
type AnswerStatus string

const (
	StatusUnanswered AnswerStatus = "unanswered"
	StatusCorrect    AnswerStatus = "correct"
	StatusIncorrect  AnswerStatus = "incorrect"
)

// Valid reports whether the status is one of the known outcomes.
func (s AnswerStatus) Valid() bool {
	switch s {
	case StatusUnanswered, StatusCorrect, StatusIncorrect:
		return true
	}
	return false
}

// Question is one question/answer pair belonging to a material's quiz bank.
// ID is assigned at creation and never changes. SourceQuestions is free-text
// provenance (the passage or note the question was generated from) and may be
// empty on manually added questions.
type Question struct {
	ID              string `json:"id"`
	Question        string `json:"question"`
	Answer          string `json:"answer"`
	SourceQuestions string `json:"source_questions"`
}

// Attempt records one completed traversal of a material's quiz. Answers[i]
// corresponds positionally to the i-th question of the quiz as it existed
// when the session started.
type Attempt struct {
	Date    time.Time      `json:"date"`
	Answers []AnswerStatus `json:"answers"`
}

// Material is one ingested document: its generated summary, quiz bank, and
// attempt history. QuizAttempts is append-only; entries are never edited or
// removed while the material exists.
type Material struct {
	ID           string     `json:"id"`
	FileName     string     `json:"fileName"`
	DisplayName  string     `json:"displayName"`
	Summary      string     `json:"summary"`
	Quiz         []Question `json:"quiz"`
	QuizAttempts []Attempt  `json:"quizAttempts"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// Clone returns a deep copy of the material.
func (m Material) Clone() Material {
	clone := m
	if m.Quiz != nil {
		clone.Quiz = append([]Question(nil), m.Quiz...)
	}
	if m.QuizAttempts != nil {
		clone.QuizAttempts = make([]Attempt, len(m.QuizAttempts))
		for i, attempt := range m.QuizAttempts {
			clone.QuizAttempts[i] = attempt.Clone()
		}
	}
	return clone
}

// Clone returns a deep copy of the attempt.
func (a Attempt) Clone() Attempt {
	clone := a
	if a.Answers != nil {
		clone.Answers = append([]AnswerStatus(nil), a.Answers...)
	}
	return clone
}

func cloneMaterials(materials []Material) []Material {
	if materials == nil {
		return nil
	}
	out := make([]Material, len(materials))
	for i, m := range materials {
		out[i] = m.Clone()
	}
	return out
}
