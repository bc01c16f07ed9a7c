package quiz

import (
	"errors"
	"fmt"
	"time"

	"studydeck/internal/library"
)

var (
	// ErrEmptyQuiz rejects starting a session over zero questions.
	ErrEmptyQuiz = errors.New("quiz: material has no questions")
	// ErrSessionCompleted rejects operations on a finished session. Hitting
	// it is a programming error in the presenting layer, not user input.
	ErrSessionCompleted = errors.New("quiz: session already completed")
	// ErrNotRevealed rejects answering a question whose answer has not been
	// shown yet.
	ErrNotRevealed = errors.New("quiz: reveal the answer before marking it")
)

// questionState is the transient per-question bookkeeping inside a session.
type questionState struct {
	revealed bool
	status   library.AnswerStatus
}

// State is the externally visible state of the current question.
type State struct {
	Revealed bool
	Status   library.AnswerStatus
}

// Session drives one traversal of a quiz. It snapshots the question list at
// construction, so concurrent edits to the material cannot desync the
// positional coupling between questions and recorded answers. A session is
// single-threaded and not reusable once completed.
type Session struct {
	questions []library.Question
	states    []questionState
	index     int
	completed bool
	attempt   library.Attempt
	now       func() time.Time
}

// Option customizes a session.
type Option func(*Session)

// WithClock overrides the attempt timestamp source (useful for tests).
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

// NewSession snapshots questions and starts at the first one, everything
// unrevealed and unanswered.
func NewSession(questions []library.Question, opts ...Option) (*Session, error) {
	if len(questions) == 0 {
		return nil, ErrEmptyQuiz
	}

	snapshot := append([]library.Question(nil), questions...)
	states := make([]questionState, len(snapshot))
	for i := range states {
		states[i].status = library.StatusUnanswered
	}

	session := &Session{
		questions: snapshot,
		states:    states,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(session)
	}
	return session, nil
}

// Len returns the number of questions in the snapshot.
func (s *Session) Len() int {
	return len(s.questions)
}

// Index returns the current question position.
func (s *Session) Index() int {
	return s.index
}

// Completed reports whether the session has produced its attempt.
func (s *Session) Completed() bool {
	return s.completed
}

// Current returns the question at the cursor and its transient state.
func (s *Session) Current() (library.Question, State) {
	st := s.states[s.index]
	return s.questions[s.index], State{Revealed: st.revealed, Status: st.status}
}

// Reveal marks the current question's answer as shown. Idempotent; does not
// touch the answer status.
func (s *Session) Reveal() error {
	if s.completed {
		return ErrSessionCompleted
	}
	s.states[s.index].revealed = true
	return nil
}

// Answer records the outcome for the current question. Only correct or
// incorrect are accepted; the caller changes their mind by calling Answer
// again before advancing, last write wins.
func (s *Session) Answer(status library.AnswerStatus) error {
	if s.completed {
		return ErrSessionCompleted
	}
	if status != library.StatusCorrect && status != library.StatusIncorrect {
		return fmt.Errorf("quiz: answer status must be correct or incorrect, got %q", status)
	}
	if !s.states[s.index].revealed {
		return ErrNotRevealed
	}
	s.states[s.index].status = status
	return nil
}

// Advance moves to the next question. On the last question it completes the
// session instead, freezing the attempt: per-question statuses in original
// order, with never-reached questions recorded as unanswered.
func (s *Session) Advance() error {
	if s.completed {
		return ErrSessionCompleted
	}
	if s.index < len(s.questions)-1 {
		s.index++
		return nil
	}

	answers := make([]library.AnswerStatus, len(s.states))
	for i, st := range s.states {
		answers[i] = st.status
	}
	s.attempt = library.Attempt{Date: s.now().UTC(), Answers: answers}
	s.completed = true
	return nil
}

// Attempt returns the frozen attempt of a completed session.
func (s *Session) Attempt() (library.Attempt, error) {
	if !s.completed {
		return library.Attempt{}, errors.New("quiz: session not completed")
	}
	return s.attempt.Clone(), nil
}
