package quiz

import "studydeck/internal/library"

// CorrectCount tallies correct answers in an attempt. Unanswered questions
// count as wrong for scoring but stay distinguishable in the record.
func CorrectCount(answers []library.AnswerStatus) int {
	count := 0
	for _, status := range answers {
		if status == library.StatusCorrect {
			count++
		}
	}
	return count
}

// ScorePercent derives the 0-100 score for an attempt. Scores are derived,
// never stored. An empty attempt scores zero.
func ScorePercent(answers []library.AnswerStatus) int {
	if len(answers) == 0 {
		return 0
	}
	return 100 * CorrectCount(answers) / len(answers)
}
