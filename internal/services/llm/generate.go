package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"studydeck/internal/library"
)

// ErrInvalidPayload indicates the model returned a response whose shape does
// not satisfy the generation contract. The shape is validated once at this
// boundary; downstream code trusts the returned types.
var ErrInvalidPayload = errors.New("llm: response payload has invalid shape")

// maxPromptChars bounds how much document text is sent per request. Large
// PDFs routinely exceed provider context limits otherwise.
const maxPromptChars = 200_000

// StudySet is the validated result of full-document generation.
type StudySet struct {
	Summary   string
	Questions []library.Question
}

// QA is the validated result of single-question generation. Identifiers are
// assigned by the repository, not here.
type QA struct {
	Question string
	Answer   string
}

// GenerationOptions tunes the study-set request.
type GenerationOptions struct {
	MinQuestions int
	MaxQuestions int
}

type studySetPayload struct {
	Summary string `json:"summary"`
	Quiz    []struct {
		Question        string `json:"question"`
		Answer          string `json:"answer"`
		SourceQuestions string `json:"source_questions"`
	} `json:"quiz"`
}

// GenerateStudySet asks the model for a summary and quiz bank covering the
// supplied document text. Every returned question carries non-empty text,
// answer, and provenance; anything less fails with ErrInvalidPayload.
func (c *Client) GenerateStudySet(ctx context.Context, text string, opts GenerationOptions) (StudySet, error) {
	var empty StudySet
	text = truncateForPrompt(text, maxPromptChars)
	if text == "" {
		return empty, errors.New("llm generate: document text required")
	}

	content, err := c.completeJSON(ctx, "llm generate", studySetPrompt(opts.MinQuestions, opts.MaxQuestions), text)
	if err != nil {
		return empty, err
	}

	var payload studySetPayload
	if err := decodePayload(content, &payload); err != nil {
		return empty, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	summary := strings.TrimSpace(payload.Summary)
	if summary == "" {
		return empty, fmt.Errorf("%w: missing summary", ErrInvalidPayload)
	}
	if len(payload.Quiz) == 0 {
		return empty, fmt.Errorf("%w: empty quiz", ErrInvalidPayload)
	}

	questions := make([]library.Question, 0, len(payload.Quiz))
	for i, item := range payload.Quiz {
		question := strings.TrimSpace(item.Question)
		answer := strings.TrimSpace(item.Answer)
		source := strings.TrimSpace(item.SourceQuestions)
		if question == "" || answer == "" {
			return empty, fmt.Errorf("%w: quiz item %d missing question or answer", ErrInvalidPayload, i)
		}
		if source == "" {
			return empty, fmt.Errorf("%w: quiz item %d missing source_questions", ErrInvalidPayload, i)
		}
		questions = append(questions, library.Question{
			Question:        question,
			Answer:          answer,
			SourceQuestions: source,
		})
	}

	return StudySet{Summary: summary, Questions: questions}, nil
}

type singleQuestionPayload struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// GenerateQuestion asks the model for one additional question/answer pair
// from a snippet of material.
func (c *Client) GenerateQuestion(ctx context.Context, snippet string) (QA, error) {
	var empty QA
	snippet = truncateForPrompt(snippet, maxPromptChars)
	if snippet == "" {
		return empty, errors.New("llm generate: snippet required")
	}

	content, err := c.completeJSON(ctx, "llm generate one", singleQuestionPrompt, snippet)
	if err != nil {
		return empty, err
	}

	var payload singleQuestionPayload
	if err := decodePayload(content, &payload); err != nil {
		return empty, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	question := strings.TrimSpace(payload.Question)
	answer := strings.TrimSpace(payload.Answer)
	if question == "" || answer == "" {
		return empty, fmt.Errorf("%w: missing question or answer", ErrInvalidPayload)
	}
	return QA{Question: question, Answer: answer}, nil
}
