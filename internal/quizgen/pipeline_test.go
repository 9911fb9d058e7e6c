package quizgen

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type fakeBackend struct {
	response string
	err      error
	calls    int
	prompt   string
}

func (f *fakeBackend) Generate(ctx context.Context, prompt string) (string, error) {
	f.calls++
	f.prompt = prompt
	return f.response, f.err
}

func newTestGenerator(backend TextGenerator, text string) *Generator {
	g := NewGenerator(backend)
	g.extract = func([]byte) string { return text }
	return g
}

func TestGenerateQuizSetNoExtractableText(t *testing.T) {
	backend := &fakeBackend{response: sampleQuizBlock(1)}
	g := newTestGenerator(backend, "")

	_, err := g.GenerateQuizSet(context.Background(), Request{PDFData: []byte("pdf"), CourseName: "Math"})
	if !errors.Is(err, ErrNoExtractableText) {
		t.Fatalf("expected ErrNoExtractableText, got %v", err)
	}
	if backend.calls != 0 {
		t.Errorf("backend must not be called when extraction yields nothing, got %d calls", backend.calls)
	}
}

func TestGenerateQuizSetBackendFailureFallsBackToMock(t *testing.T) {
	backend := &fakeBackend{err: errors.New("backend down")}
	g := newTestGenerator(backend, "extracted text")

	result, err := g.GenerateQuizSet(context.Background(), Request{PDFData: []byte("pdf"), CourseName: "Math"})
	if err != nil {
		t.Fatalf("backend failure must degrade, not fail: %v", err)
	}
	if result.Source != SourceMock {
		t.Errorf("expected mock source, got %s", result.Source)
	}

	want := MockQuizzes("Math", DefaultQuestionCount)
	if len(result.Drafts) != len(want) {
		t.Fatalf("expected %d mock drafts, got %d", len(want), len(result.Drafts))
	}
	for i := range want {
		if result.Drafts[i] != want[i] {
			t.Errorf("draft %d differs from deterministic mock output", i)
		}
	}
}

func TestGenerateQuizSetUnparseableResponseFallsBackToMock(t *testing.T) {
	backend := &fakeBackend{response: "sorry, I cannot help with that"}
	g := newTestGenerator(backend, "extracted text")

	result, err := g.GenerateQuizSet(context.Background(), Request{PDFData: []byte("pdf"), CourseName: "Math", NumQuestions: 3})
	if err != nil {
		t.Fatalf("unparseable response must degrade, not fail: %v", err)
	}
	if result.Source != SourceMock {
		t.Errorf("expected mock source, got %s", result.Source)
	}
	if len(result.Drafts) != 3 {
		t.Errorf("expected 3 mock drafts, got %d", len(result.Drafts))
	}
}

func TestGenerateQuizSetSuccess(t *testing.T) {
	backend := &fakeBackend{response: sampleQuizBlock(1) + "\n\n" + sampleQuizBlock(2)}
	g := newTestGenerator(backend, "extracted text")

	result, err := g.GenerateQuizSet(context.Background(), Request{
		PDFData:        []byte("pdf"),
		CourseName:     "Math",
		InstructorName: "Dr. Vale",
		PDFTitle:       "Limits.pdf",
		NumQuestions:   2,
		Difficulty:     "easy",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Source != SourceGemini {
		t.Errorf("expected gemini source, got %s", result.Source)
	}
	if len(result.Drafts) != 2 {
		t.Fatalf("expected 2 drafts, got %d", len(result.Drafts))
	}
	if backend.calls != 1 {
		t.Errorf("expected exactly one backend call, got %d", backend.calls)
	}
	if !strings.Contains(backend.prompt, "extracted text") {
		t.Errorf("prompt should embed the extracted text")
	}
	if !strings.Contains(backend.prompt, "easy questions suitable for beginners") {
		t.Errorf("prompt should embed the requested difficulty phrase")
	}
}

func TestGenerateQuizSetDefaultsQuestionCount(t *testing.T) {
	backend := &fakeBackend{err: errors.New("down")}
	g := newTestGenerator(backend, "text")

	result, err := g.GenerateQuizSet(context.Background(), Request{PDFData: []byte("pdf"), CourseName: "Math", NumQuestions: 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Drafts) != DefaultQuestionCount {
		t.Errorf("expected default of %d drafts, got %d", DefaultQuestionCount, len(result.Drafts))
	}
}
