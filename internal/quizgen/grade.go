package quizgen

import (
	"github.com/google/uuid"

	"learnhub/internal/models"
)

// Grade scores a submission against a quiz set. answers maps quiz IDs to
// the submitted answer tag; a quiz with no submitted answer counts as
// incorrect, not skipped. The percentage is 0 (not NaN) for an empty set.
func Grade(records []models.Quiz, answers map[uuid.UUID]string) models.GradingResult {
	result := models.GradingResult{Total: len(records)}

	for _, q := range records {
		if tag, ok := answers[q.ID]; ok && tag == q.CorrectAnswer {
			result.Score++
		}
	}

	if result.Total > 0 {
		result.Percentage = float64(result.Score) / float64(result.Total) * 100
	}
	return result
}
