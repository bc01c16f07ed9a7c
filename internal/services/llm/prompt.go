package llm

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// studySetPromptTemplate captures the instructions for turning a full
// document into a summary plus quiz bank. Keep prompt updates centralized
// here so they are easy to tweak without hunting through call sites.
const studySetPromptTemplate = `You are a study assistant that turns course material into a revision aid.

Given the full text of a document, produce:

1. "summary": a concise summary of the document (3-6 paragraphs) covering the key concepts a student must retain.

2. "quiz": between %d and %d question/answer pairs that test understanding of the material. Each item must have:
   - "question": a clear, self-contained question.
   - "answer": the complete answer, phrased so it can be checked against from memory.
   - "source_questions": a short note naming the passage, section, or concept the question was drawn from. Never leave this empty.

Rules:
- Cover the whole document, not just the opening sections.
- Prefer questions that test understanding over verbatim recall.
- Do not invent facts that are not in the document.

You must respond ONLY with a JSON object like:
{"summary": "...", "quiz": [{"question": "...", "answer": "...", "source_questions": "..."}]}`

// singleQuestionPrompt captures the instructions for generating one extra
// question from a snippet of material.
const singleQuestionPrompt = `You are a study assistant. Given a snippet of course material, write ONE new question/answer pair testing its content.

You must respond ONLY with a JSON object like: {"question": "...", "answer": "..."}

Now write a question for this snippet:`

func studySetPrompt(minQuestions, maxQuestions int) string {
	if minQuestions <= 0 {
		minQuestions = 20
	}
	if maxQuestions < minQuestions {
		maxQuestions = minQuestions
	}
	return fmt.Sprintf(studySetPromptTemplate, minQuestions, maxQuestions)
}

func truncateForPrompt(text string, limit int) string {
	text = strings.TrimSpace(text)
	if limit <= 0 || len(text) <= limit {
		return text
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}
