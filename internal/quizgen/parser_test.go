package quizgen

import (
	"fmt"
	"strings"
	"testing"
)

func sampleQuizBlock(n int) string {
	return fmt.Sprintf(`QUESTION: Question %d?
OPTION_A: Alpha %d
OPTION_B: Beta %d
OPTION_C: Gamma %d
OPTION_D: Delta %d
CORRECT_ANSWER: B`, n, n, n, n, n)
}

func TestParseResponseCompleteDrafts(t *testing.T) {
	raw := strings.Join([]string{
		sampleQuizBlock(1),
		sampleQuizBlock(2),
		sampleQuizBlock(3),
	}, "\n\n")

	drafts := ParseResponse(raw)
	if len(drafts) != 3 {
		t.Fatalf("expected 3 drafts, got %d", len(drafts))
	}
	if drafts[0].Question != "Question 1?" {
		t.Errorf("unexpected question: %q", drafts[0].Question)
	}
	if drafts[1].OptionC != "Gamma 2" {
		t.Errorf("unexpected option C: %q", drafts[1].OptionC)
	}
	if drafts[2].CorrectAnswer != "B" {
		t.Errorf("unexpected correct answer: %q", drafts[2].CorrectAnswer)
	}
}

func TestParseResponseDropsIncompleteDrafts(t *testing.T) {
	raw := sampleQuizBlock(1) + "\n\n" +
		"QUESTION: Missing everything else?\n\n" +
		sampleQuizBlock(2) + "\n\n" +
		`QUESTION: Missing the answer?
OPTION_A: a
OPTION_B: b
OPTION_C: c
OPTION_D: d`

	drafts := ParseResponse(raw)
	if len(drafts) != 2 {
		t.Fatalf("expected 2 complete drafts, got %d", len(drafts))
	}
	for _, d := range drafts {
		if !d.Complete() {
			t.Errorf("incomplete draft survived filtering: %+v", d)
		}
	}
}

func TestParseResponseCapsAtMax(t *testing.T) {
	var blocks []string
	for i := 0; i < 15; i++ {
		blocks = append(blocks, sampleQuizBlock(i))
	}

	drafts := ParseResponse(strings.Join(blocks, "\n\n"))
	if len(drafts) != MaxParsedQuizzes {
		t.Fatalf("expected cap of %d drafts, got %d", MaxParsedQuizzes, len(drafts))
	}
	if drafts[0].Question != "Question 0?" {
		t.Errorf("cap should keep the earliest drafts, got %q first", drafts[0].Question)
	}
}

func TestParseResponseLastWriteWins(t *testing.T) {
	raw := `QUESTION: Only one?
OPTION_A: first a
OPTION_A: second a
OPTION_B: b
OPTION_C: c
OPTION_D: d
CORRECT_ANSWER: A
CORRECT_ANSWER: D`

	drafts := ParseResponse(raw)
	if len(drafts) != 1 {
		t.Fatalf("expected 1 draft, got %d", len(drafts))
	}
	if drafts[0].OptionA != "second a" {
		t.Errorf("expected repeated field to keep last value, got %q", drafts[0].OptionA)
	}
	if drafts[0].CorrectAnswer != "D" {
		t.Errorf("expected repeated answer to keep last value, got %q", drafts[0].CorrectAnswer)
	}
}

func TestParseResponseIgnoresLeadingMarkers(t *testing.T) {
	// Field markers before the first QUESTION: line open a draft with no
	// question text, which must be filtered out.
	raw := "OPTION_A: stray\nCORRECT_ANSWER: A\n\n" + sampleQuizBlock(1)

	drafts := ParseResponse(raw)
	if len(drafts) != 1 {
		t.Fatalf("expected 1 draft, got %d", len(drafts))
	}
	if drafts[0].Question != "Question 1?" {
		t.Errorf("unexpected question: %q", drafts[0].Question)
	}
}

func TestParseResponseReparseIdempotent(t *testing.T) {
	raw := sampleQuizBlock(1) + "\n\n" + sampleQuizBlock(2)
	first := ParseResponse(raw)

	var blocks []string
	for _, d := range first {
		blocks = append(blocks, fmt.Sprintf(`QUESTION: %s
OPTION_A: %s
OPTION_B: %s
OPTION_C: %s
OPTION_D: %s
CORRECT_ANSWER: %s`, d.Question, d.OptionA, d.OptionB, d.OptionC, d.OptionD, d.CorrectAnswer))
	}
	second := ParseResponse(strings.Join(blocks, "\n\n"))

	if len(first) != len(second) {
		t.Fatalf("reparse changed draft count: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("draft %d changed across serialize/reparse:\n first %+v\nsecond %+v", i, first[i], second[i])
		}
	}
}

func TestParseResponseEmptyInput(t *testing.T) {
	if drafts := ParseResponse(""); len(drafts) != 0 {
		t.Fatalf("expected no drafts from empty input, got %d", len(drafts))
	}
	if drafts := ParseResponse("no markers here at all"); len(drafts) != 0 {
		t.Fatalf("expected no drafts from marker-free input, got %d", len(drafts))
	}
}
