package models

import (
	"time"

	"github.com/google/uuid"
)

// UserRole distinguishes instructors (who own courses and upload materials)
// from students (who enroll and take quizzes).
type UserRole string

const (
	RoleInstructor UserRole = "instructor"
	RoleStudent    UserRole = "student"
)

// User represents a platform account created via Google OAuth.
type User struct {
	ID        uuid.UUID `json:"id"`
	GoogleID  string    `json:"google_id,omitempty"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Picture   string    `json:"picture,omitempty"`
	Role      UserRole  `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// Course represents a course owned by an instructor.
type Course struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Category     string    `json:"category,omitempty"`
	Price        float64   `json:"price"`
	InstructorID uuid.UUID `json:"instructor_id"`
	CreatedAt    time.Time `json:"created_at"`
}

// Section is an ordered block of content within a course.
type Section struct {
	ID       uuid.UUID `json:"id"`
	CourseID uuid.UUID `json:"course_id"`
	Title    string    `json:"title"`
	Content  string    `json:"content,omitempty"`
	Position int32     `json:"position"`
}

// Lesson is a unit of content within a section.
type Lesson struct {
	ID        uuid.UUID `json:"id"`
	SectionID uuid.UUID `json:"section_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content,omitempty"`
	VideoURL  string    `json:"video_url,omitempty"`
	Position  int32     `json:"position"`
}

// Enrollment links a student to a course.
type Enrollment struct {
	ID         uuid.UUID `json:"id"`
	StudentID  uuid.UUID `json:"student_id"`
	CourseID   uuid.UUID `json:"course_id"`
	EnrolledAt time.Time `json:"enrolled_at"`
	Progress   float64   `json:"progress"`
}

// PDFMaterial is an uploaded PDF attached to a course. The raw bytes are
// kept in the database so the extraction pipeline can re-read them at any
// time; StorageURL is set when the file was also mirrored to object storage.
// Materials are immutable once uploaded and are removed with their course.
type PDFMaterial struct {
	ID         uuid.UUID `json:"id"`
	CourseID   uuid.UUID `json:"course_id"`
	Title      string    `json:"title"`
	FileName   string    `json:"file_name"`
	StorageURL string    `json:"storage_url,omitempty"`
	UploadedBy uuid.UUID `json:"uploaded_by"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// Quiz is a persisted multiple-choice question generated from a PDF
// material. CorrectAnswer is one of "A", "B", "C" or "D". A regeneration
// replaces every quiz belonging to the same material in one transaction.
type Quiz struct {
	ID            uuid.UUID `json:"id"`
	PDFID         uuid.UUID `json:"pdf_id"`
	CourseID      uuid.UUID `json:"course_id"`
	Question      string    `json:"question"`
	OptionA       string    `json:"option_a"`
	OptionB       string    `json:"option_b"`
	OptionC       string    `json:"option_c"`
	OptionD       string    `json:"option_d"`
	CorrectAnswer string    `json:"correct_answer"`
	CreatedAt     time.Time `json:"created_at"`
}

// QuizDraft is a parsed-but-unpersisted quiz candidate. Fields may be
// empty until the draft passes validation.
type QuizDraft struct {
	Question      string `json:"question"`
	OptionA       string `json:"option_a"`
	OptionB       string `json:"option_b"`
	OptionC       string `json:"option_c"`
	OptionD       string `json:"option_d"`
	CorrectAnswer string `json:"correct_answer"`
}

// Complete reports whether every field of the draft is non-empty.
func (d QuizDraft) Complete() bool {
	return d.Question != "" &&
		d.OptionA != "" && d.OptionB != "" &&
		d.OptionC != "" && d.OptionD != "" &&
		d.CorrectAnswer != ""
}

// GradingResult is the outcome of scoring one submission against a quiz
// set. It is computed on the fly and never persisted.
type GradingResult struct {
	Score      int     `json:"score"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
}

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}
