package quizgen

import (
	"fmt"

	"learnhub/internal/models"
)

// maxMockQuizzes caps the size of a mock batch.
const maxMockQuizzes = 5

// answerCycle rotates the correct tag through the four option slots so the
// mock data is not uniformly "A".
var answerCycle = [4]string{"A", "B", "C", "D"}

// MockQuizzes produces a deterministic placeholder quiz batch for the given
// course. It backs the degraded mode when the generative backend is down or
// its response cannot be parsed, and it never fails. The output is a pure
// function of (courseName, count), which tests rely on.
func MockQuizzes(courseName string, count int) []models.QuizDraft {
	if count < 0 {
		count = 0
	}
	if count > maxMockQuizzes {
		count = maxMockQuizzes
	}

	drafts := make([]models.QuizDraft, 0, count)
	for i := 0; i < count; i++ {
		drafts = append(drafts, models.QuizDraft{
			Question:      fmt.Sprintf("What is a key learning objective from the %s course? (Mock Question %d)", courseName, i+1),
			OptionA:       "Understanding fundamental concepts",
			OptionB:       "Mastering advanced techniques",
			OptionC:       "Learning historical context",
			OptionD:       "Applying knowledge in real scenarios",
			CorrectAnswer: answerCycle[i%len(answerCycle)],
		})
	}
	return drafts
}
