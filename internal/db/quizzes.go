package db

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"learnhub/internal/models"
)

const lockMaterialQuizzes = `
SELECT pg_advisory_xact_lock(hashtextextended($1::text, 0))
`

const deleteQuizzesByPDF = `
DELETE FROM quizzes WHERE pdf_id = $1
`

const insertQuiz = `
INSERT INTO quizzes (pdf_id, course_id, question, option_a, option_b, option_c, option_d, correct_answer)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id, pdf_id, course_id, question, option_a, option_b, option_c, option_d, correct_answer, created_at
`

// ReplaceQuizzes atomically swaps the quiz set of a PDF material: every
// prior record for the material is deleted and the new batch inserted in
// one transaction, so a concurrent reader sees either the full old set or
// the full new set. An advisory lock on the material id serializes
// concurrent regenerations of the same document (last committer wins, but
// batches never interleave).
//
// Drafts whose correct-answer tag is not one of A-D are skipped with a
// warning; the column CHECK constraint backstops this.
func (db *DB) ReplaceQuizzes(ctx context.Context, pdfID, courseID uuid.UUID, drafts []models.QuizDraft) ([]models.Quiz, error) {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin quiz replace transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, lockMaterialQuizzes, pdfID); err != nil {
		return nil, fmt.Errorf("failed to lock material %s: %w", pdfID, err)
	}
	if _, err := tx.Exec(ctx, deleteQuizzesByPDF, pdfID); err != nil {
		return nil, fmt.Errorf("failed to delete prior quizzes for material %s: %w", pdfID, err)
	}

	quizzes := make([]models.Quiz, 0, len(drafts))
	for _, d := range drafts {
		tag := strings.ToUpper(strings.TrimSpace(d.CorrectAnswer))
		if tag != "A" && tag != "B" && tag != "C" && tag != "D" {
			log.Printf("WARN: Skipping quiz draft with out-of-range correct answer %q for material %s", d.CorrectAnswer, pdfID)
			continue
		}

		var quiz models.Quiz
		err := tx.QueryRow(ctx, insertQuiz,
			pdfID, courseID, d.Question, d.OptionA, d.OptionB, d.OptionC, d.OptionD, tag).Scan(
			&quiz.ID, &quiz.PDFID, &quiz.CourseID, &quiz.Question,
			&quiz.OptionA, &quiz.OptionB, &quiz.OptionC, &quiz.OptionD,
			&quiz.CorrectAnswer, &quiz.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to insert quiz for material %s: %w", pdfID, err)
		}
		quizzes = append(quizzes, quiz)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit quiz replace for material %s: %w", pdfID, err)
	}
	return quizzes, nil
}

const listQuizzesByPDF = `
SELECT id, pdf_id, course_id, question, option_a, option_b, option_c, option_d, correct_answer, created_at
FROM quizzes WHERE pdf_id = $1
ORDER BY created_at, id
`

// ListQuizzesByPDF returns the current quiz set of a material.
func (q *Queries) ListQuizzesByPDF(ctx context.Context, pdfID uuid.UUID) ([]models.Quiz, error) {
	rows, err := q.db.Query(ctx, listQuizzesByPDF, pdfID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var quizzes []models.Quiz
	for rows.Next() {
		var quiz models.Quiz
		if err := rows.Scan(&quiz.ID, &quiz.PDFID, &quiz.CourseID, &quiz.Question,
			&quiz.OptionA, &quiz.OptionB, &quiz.OptionC, &quiz.OptionD,
			&quiz.CorrectAnswer, &quiz.CreatedAt); err != nil {
			return nil, err
		}
		quizzes = append(quizzes, quiz)
	}
	return quizzes, rows.Err()
}
