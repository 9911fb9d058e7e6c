package quizgen

import (
	"log"
	"strings"

	"learnhub/internal/models"
)

// MaxParsedQuizzes caps the number of drafts returned from a single
// response, regardless of how many were requested or generated.
const MaxParsedQuizzes = 10

// Field markers of the response schema. These mirror the schema embedded
// in promptTemplate.
const (
	markerQuestion = "QUESTION:"
	markerOptionA  = "OPTION_A:"
	markerOptionB  = "OPTION_B:"
	markerOptionC  = "OPTION_C:"
	markerOptionD  = "OPTION_D:"
	markerCorrect  = "CORRECT_ANSWER:"
)

// ParseResponse converts the backend's semi-structured text reply into
// validated quiz drafts. It folds over the lines keeping one draft open at
// a time: a QUESTION: line emits the previous draft and opens a new one,
// the other markers set fields on the open draft (last write wins when a
// field repeats). Drafts missing any of the six fields are dropped. The
// result is capped at MaxParsedQuizzes.
func ParseResponse(raw string) []models.QuizDraft {
	lines := strings.Split(strings.TrimSpace(raw), "\n")

	var drafts []models.QuizDraft
	var cur *models.QuizDraft

	for _, line := range lines {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, markerQuestion):
			if cur != nil {
				drafts = append(drafts, *cur)
			}
			cur = &models.QuizDraft{Question: fieldValue(line, markerQuestion)}
		case strings.HasPrefix(line, markerOptionA):
			ensure(&cur).OptionA = fieldValue(line, markerOptionA)
		case strings.HasPrefix(line, markerOptionB):
			ensure(&cur).OptionB = fieldValue(line, markerOptionB)
		case strings.HasPrefix(line, markerOptionC):
			ensure(&cur).OptionC = fieldValue(line, markerOptionC)
		case strings.HasPrefix(line, markerOptionD):
			ensure(&cur).OptionD = fieldValue(line, markerOptionD)
		case strings.HasPrefix(line, markerCorrect):
			ensure(&cur).CorrectAnswer = fieldValue(line, markerCorrect)
		}
	}
	if cur != nil {
		drafts = append(drafts, *cur)
	}

	valid := make([]models.QuizDraft, 0, len(drafts))
	for _, d := range drafts {
		if d.Complete() {
			valid = append(valid, d)
		}
	}
	if dropped := len(drafts) - len(valid); dropped > 0 {
		log.Printf("WARN: Dropped %d incomplete quiz draft(s) while parsing response", dropped)
	}

	if len(valid) > MaxParsedQuizzes {
		valid = valid[:MaxParsedQuizzes]
	}
	return valid
}

func fieldValue(line, marker string) string {
	return strings.TrimSpace(strings.TrimPrefix(line, marker))
}

// ensure opens a draft when a field marker arrives before any QUESTION:
// line. Such a draft has no question text and is filtered out later.
func ensure(cur **models.QuizDraft) *models.QuizDraft {
	if *cur == nil {
		*cur = &models.QuizDraft{}
	}
	return *cur
}
