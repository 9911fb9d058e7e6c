package quizgen

import (
	"strings"
	"testing"
)

func TestBuildPromptIncludesSchemaAndMetadata(t *testing.T) {
	prompt := BuildPrompt("Some extracted text.", "Biology", "Dr. Vale", "Cells.pdf", 3, "hard")

	for _, want := range []string{
		"QUESTION:", "OPTION_A:", "OPTION_B:", "OPTION_C:", "OPTION_D:", "CORRECT_ANSWER:",
		"Course: Biology",
		"Instructor: Dr. Vale",
		"PDF Title: Cells.pdf",
		"challenging questions that test deep understanding",
		"Some extracted text.",
		"generate 3 multiple-choice quizzes",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuildPromptDifficultyFallback(t *testing.T) {
	prompt := BuildPrompt("text", "c", "i", "p", 5, "impossible")
	if !strings.Contains(prompt, "moderately difficult questions") {
		t.Errorf("unknown difficulty should fall back to the medium phrase")
	}
}

func TestBuildPromptDefaultCount(t *testing.T) {
	prompt := BuildPrompt("text", "c", "i", "p", 0, "easy")
	if !strings.Contains(prompt, "generate 5 multiple-choice quizzes") {
		t.Errorf("non-positive count should default to %d questions", DefaultQuestionCount)
	}
	if !strings.Contains(prompt, "Now generate 5 quizzes:") {
		t.Errorf("default count should appear in the closing instruction")
	}
}
