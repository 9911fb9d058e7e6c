package quizgen

import (
	"context"
	"errors"
	"log"

	"learnhub/internal/models"
	"learnhub/internal/pdftext"
)

// ErrNoExtractableText indicates the PDF yielded no text at all. Unlike a
// backend failure this halts the pipeline: there is nothing to prompt with,
// so not even the mock generator runs.
var ErrNoExtractableText = errors.New("could not extract text from the PDF")

// TextGenerator is the surface the pipeline needs from the generative
// backend adapter.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Source records which path produced a quiz batch.
type Source string

const (
	// SourceGemini means the batch was parsed from a real model response.
	SourceGemini Source = "gemini"
	// SourceMock means the batch is deterministic placeholder data.
	SourceMock Source = "mock"
)

// Result is a generated quiz batch plus its provenance. Provenance is
// informational: callers treat both sources as success.
type Result struct {
	Drafts []models.QuizDraft `json:"drafts"`
	Source Source             `json:"source"`
}

// Request carries everything needed to generate a quiz set from one PDF.
type Request struct {
	PDFData        []byte
	CourseName     string
	InstructorName string
	PDFTitle       string
	NumQuestions   int
	Difficulty     string
}

// Generator runs the extraction-to-drafts pipeline.
type Generator struct {
	backend TextGenerator
	extract func([]byte) string
}

// NewGenerator wires the pipeline to a backend adapter.
func NewGenerator(backend TextGenerator) *Generator {
	return &Generator{
		backend: backend,
		extract: pdftext.Extract,
	}
}

// GenerateQuizSet extracts text from the PDF, prompts the backend and
// parses the reply into drafts. The failure handling is asymmetric on
// purpose: empty extraction fails the whole operation with
// ErrNoExtractableText, while a backend error or an unparseable response
// degrades to MockQuizzes so the caller still receives a batch. Once
// extraction succeeds the pipeline cannot fail.
func (g *Generator) GenerateQuizSet(ctx context.Context, req Request) (Result, error) {
	text := g.extract(req.PDFData)
	if text == "" {
		return Result{}, ErrNoExtractableText
	}

	count := req.NumQuestions
	if count <= 0 {
		count = DefaultQuestionCount
	}

	prompt := BuildPrompt(text, req.CourseName, req.InstructorName, req.PDFTitle, count, req.Difficulty)

	raw, err := g.backend.Generate(ctx, prompt)
	if err != nil {
		log.Printf("WARN: Quiz generation backend failed, using mock data: %v", err)
		return Result{Drafts: MockQuizzes(req.CourseName, count), Source: SourceMock}, nil
	}

	drafts := ParseResponse(raw)
	if len(drafts) == 0 {
		log.Printf("WARN: No quizzes parsed from backend response, using mock data")
		return Result{Drafts: MockQuizzes(req.CourseName, count), Source: SourceMock}, nil
	}

	log.Printf("INFO: Parsed %d quizzes from backend response", len(drafts))
	return Result{Drafts: drafts, Source: SourceGemini}, nil
}
