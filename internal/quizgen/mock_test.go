package quizgen

import "testing"

func TestMockQuizzesCapsCount(t *testing.T) {
	drafts := MockQuizzes("Algebra 101", 7)
	if len(drafts) != 5 {
		t.Fatalf("expected mock batch capped at 5, got %d", len(drafts))
	}
}

func TestMockQuizzesContent(t *testing.T) {
	drafts := MockQuizzes("Algebra 101", 5)

	want := "What is a key learning objective from the Algebra 101 course? (Mock Question 1)"
	if drafts[0].Question != want {
		t.Errorf("unexpected first question:\n got %q\nwant %q", drafts[0].Question, want)
	}

	tags := []string{"A", "B", "C", "D", "A"}
	for i, d := range drafts {
		if d.CorrectAnswer != tags[i] {
			t.Errorf("draft %d: expected correct answer %s, got %s", i, tags[i], d.CorrectAnswer)
		}
		if !d.Complete() {
			t.Errorf("draft %d is incomplete: %+v", i, d)
		}
	}
}

func TestMockQuizzesDeterministic(t *testing.T) {
	a := MockQuizzes("History", 3)
	b := MockQuizzes("History", 3)
	if len(a) != len(b) {
		t.Fatalf("non-deterministic batch size: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("draft %d differs between identical calls", i)
		}
	}
}

func TestMockQuizzesZeroCount(t *testing.T) {
	if drafts := MockQuizzes("Empty", 0); len(drafts) != 0 {
		t.Fatalf("expected empty batch for count 0, got %d", len(drafts))
	}
}

func TestMockQuizzesNegativeCount(t *testing.T) {
	if drafts := MockQuizzes("Empty", -1); len(drafts) != 0 {
		t.Fatalf("expected empty batch for negative count, got %d", len(drafts))
	}
}
