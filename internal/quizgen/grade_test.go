package quizgen

import (
	"math"
	"testing"

	"github.com/google/uuid"

	"learnhub/internal/models"
)

func quizRecord(tag string) models.Quiz {
	return models.Quiz{
		ID:            uuid.New(),
		Question:      "q",
		OptionA:       "a",
		OptionB:       "b",
		OptionC:       "c",
		OptionD:       "d",
		CorrectAnswer: tag,
	}
}

func TestGradeCountsCorrectAnswers(t *testing.T) {
	records := []models.Quiz{quizRecord("A"), quizRecord("B"), quizRecord("C")}

	answers := map[uuid.UUID]string{
		records[0].ID: "A",
		records[1].ID: "D",
		// records[2] left unanswered.
	}

	result := Grade(records, answers)
	if result.Score != 1 {
		t.Errorf("expected score 1, got %d", result.Score)
	}
	if result.Total != 3 {
		t.Errorf("expected total 3, got %d", result.Total)
	}
	want := 100.0 / 3.0
	if math.Abs(result.Percentage-want) > 0.001 {
		t.Errorf("expected percentage %.3f, got %.3f", want, result.Percentage)
	}
}

func TestGradeMissingAnswersAreIncorrect(t *testing.T) {
	records := []models.Quiz{quizRecord("A"), quizRecord("B")}

	result := Grade(records, nil)
	if result.Score != 0 || result.Total != 2 {
		t.Errorf("expected 0/2, got %d/%d", result.Score, result.Total)
	}
	if result.Percentage != 0 {
		t.Errorf("expected 0%%, got %.2f", result.Percentage)
	}
}

func TestGradeEmptyQuizSet(t *testing.T) {
	result := Grade(nil, map[uuid.UUID]string{uuid.New(): "A"})
	if result.Score != 0 || result.Total != 0 {
		t.Errorf("expected 0/0, got %d/%d", result.Score, result.Total)
	}
	if result.Percentage != 0 {
		t.Errorf("empty set should grade to 0%%, got %.2f", result.Percentage)
	}
}

func TestGradeExactTagMatch(t *testing.T) {
	records := []models.Quiz{quizRecord("A")}
	answers := map[uuid.UUID]string{records[0].ID: "a"}

	result := Grade(records, answers)
	if result.Score != 0 {
		t.Errorf("grading compares tags exactly; lowercase should not match")
	}
}
