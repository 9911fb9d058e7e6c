package db

import (
	"context"

	"github.com/google/uuid"

	"learnhub/internal/models"
)

// CreateCourseParams holds the fields for CreateCourse.
type CreateCourseParams struct {
	Title        string
	Description  string
	Category     string
	Price        float64
	InstructorID uuid.UUID
}

const createCourse = `
INSERT INTO courses (title, description, category, price, instructor_id)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, title, description, category, price, instructor_id, created_at
`

// CreateCourse inserts a new course owned by an instructor.
func (q *Queries) CreateCourse(ctx context.Context, arg CreateCourseParams) (models.Course, error) {
	var c models.Course
	err := q.db.QueryRow(ctx, createCourse,
		arg.Title, arg.Description, arg.Category, arg.Price, arg.InstructorID).Scan(
		&c.ID, &c.Title, &c.Description, &c.Category, &c.Price, &c.InstructorID, &c.CreatedAt)
	return c, err
}

const getCourseByID = `
SELECT id, title, description, category, price, instructor_id, created_at
FROM courses WHERE id = $1
`

// GetCourseByID returns one course, or pgx.ErrNoRows.
func (q *Queries) GetCourseByID(ctx context.Context, id uuid.UUID) (models.Course, error) {
	var c models.Course
	err := q.db.QueryRow(ctx, getCourseByID, id).Scan(
		&c.ID, &c.Title, &c.Description, &c.Category, &c.Price, &c.InstructorID, &c.CreatedAt)
	return c, err
}

const listCourses = `
SELECT id, title, description, category, price, instructor_id, created_at
FROM courses
WHERE $1 = '' OR title ILIKE '%' || $1 || '%'
ORDER BY created_at DESC
`

// ListCourses returns all courses, optionally filtered by a case-insensitive
// title search.
func (q *Queries) ListCourses(ctx context.Context, query string) ([]models.Course, error) {
	rows, err := q.db.Query(ctx, listCourses, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []models.Course
	for rows.Next() {
		var c models.Course
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.Category, &c.Price, &c.InstructorID, &c.CreatedAt); err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

// --- Sections ---

// CreateSectionParams holds the fields for CreateSection.
type CreateSectionParams struct {
	CourseID uuid.UUID
	Title    string
	Content  string
	Position int32
}

const createSection = `
INSERT INTO sections (course_id, title, content, position)
VALUES ($1, $2, $3, $4)
RETURNING id, course_id, title, content, position
`

// CreateSection adds a section to a course.
func (q *Queries) CreateSection(ctx context.Context, arg CreateSectionParams) (models.Section, error) {
	var s models.Section
	err := q.db.QueryRow(ctx, createSection,
		arg.CourseID, arg.Title, arg.Content, arg.Position).Scan(
		&s.ID, &s.CourseID, &s.Title, &s.Content, &s.Position)
	return s, err
}

const getSectionByID = `
SELECT id, course_id, title, content, position
FROM sections WHERE id = $1
`

// GetSectionByID returns one section, or pgx.ErrNoRows.
func (q *Queries) GetSectionByID(ctx context.Context, id uuid.UUID) (models.Section, error) {
	var s models.Section
	err := q.db.QueryRow(ctx, getSectionByID, id).Scan(
		&s.ID, &s.CourseID, &s.Title, &s.Content, &s.Position)
	return s, err
}

// UpdateSectionParams holds the fields for UpdateSection.
type UpdateSectionParams struct {
	ID       uuid.UUID
	Title    string
	Content  string
	Position int32
}

const updateSection = `
UPDATE sections SET title = $2, content = $3, position = $4
WHERE id = $1
RETURNING id, course_id, title, content, position
`

// UpdateSection edits a section in place.
func (q *Queries) UpdateSection(ctx context.Context, arg UpdateSectionParams) (models.Section, error) {
	var s models.Section
	err := q.db.QueryRow(ctx, updateSection,
		arg.ID, arg.Title, arg.Content, arg.Position).Scan(
		&s.ID, &s.CourseID, &s.Title, &s.Content, &s.Position)
	return s, err
}

const deleteSection = `
DELETE FROM sections WHERE id = $1
`

// DeleteSection removes a section and, via cascade, its lessons.
func (q *Queries) DeleteSection(ctx context.Context, id uuid.UUID) error {
	_, err := q.db.Exec(ctx, deleteSection, id)
	return err
}

const listSectionsByCourse = `
SELECT id, course_id, title, content, position
FROM sections WHERE course_id = $1
ORDER BY position, title
`

// ListSectionsByCourse returns the sections of a course in display order.
func (q *Queries) ListSectionsByCourse(ctx context.Context, courseID uuid.UUID) ([]models.Section, error) {
	rows, err := q.db.Query(ctx, listSectionsByCourse, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sections []models.Section
	for rows.Next() {
		var s models.Section
		if err := rows.Scan(&s.ID, &s.CourseID, &s.Title, &s.Content, &s.Position); err != nil {
			return nil, err
		}
		sections = append(sections, s)
	}
	return sections, rows.Err()
}

// --- Lessons ---

// CreateLessonParams holds the fields for CreateLesson.
type CreateLessonParams struct {
	SectionID uuid.UUID
	Title     string
	Content   string
	VideoURL  string
	Position  int32
}

const createLesson = `
INSERT INTO lessons (section_id, title, content, video_url, position)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, section_id, title, content, video_url, position
`

// CreateLesson adds a lesson to a section.
func (q *Queries) CreateLesson(ctx context.Context, arg CreateLessonParams) (models.Lesson, error) {
	var l models.Lesson
	err := q.db.QueryRow(ctx, createLesson,
		arg.SectionID, arg.Title, arg.Content, arg.VideoURL, arg.Position).Scan(
		&l.ID, &l.SectionID, &l.Title, &l.Content, &l.VideoURL, &l.Position)
	return l, err
}

const listLessonsBySection = `
SELECT id, section_id, title, content, video_url, position
FROM lessons WHERE section_id = $1
ORDER BY position, title
`

// ListLessonsBySection returns the lessons of a section in display order.
func (q *Queries) ListLessonsBySection(ctx context.Context, sectionID uuid.UUID) ([]models.Lesson, error) {
	rows, err := q.db.Query(ctx, listLessonsBySection, sectionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lessons []models.Lesson
	for rows.Next() {
		var l models.Lesson
		if err := rows.Scan(&l.ID, &l.SectionID, &l.Title, &l.Content, &l.VideoURL, &l.Position); err != nil {
			return nil, err
		}
		lessons = append(lessons, l)
	}
	return lessons, rows.Err()
}

// --- Enrollments ---

const createEnrollment = `
INSERT INTO enrollments (student_id, course_id)
VALUES ($1, $2)
ON CONFLICT (student_id, course_id) DO NOTHING
RETURNING id, student_id, course_id, enrolled_at, progress
`

// CreateEnrollment enrolls a student in a course. Enrolling twice returns
// pgx.ErrNoRows (the conflict produces no row), which callers map to an
// already-enrolled response.
func (q *Queries) CreateEnrollment(ctx context.Context, studentID, courseID uuid.UUID) (models.Enrollment, error) {
	var e models.Enrollment
	err := q.db.QueryRow(ctx, createEnrollment, studentID, courseID).Scan(
		&e.ID, &e.StudentID, &e.CourseID, &e.EnrolledAt, &e.Progress)
	return e, err
}

const listEnrollmentsByStudent = `
SELECT id, student_id, course_id, enrolled_at, progress
FROM enrollments WHERE student_id = $1
ORDER BY enrolled_at DESC
`

// ListEnrollmentsByStudent returns a student's enrollments, newest first.
func (q *Queries) ListEnrollmentsByStudent(ctx context.Context, studentID uuid.UUID) ([]models.Enrollment, error) {
	rows, err := q.db.Query(ctx, listEnrollmentsByStudent, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var enrollments []models.Enrollment
	for rows.Next() {
		var e models.Enrollment
		if err := rows.Scan(&e.ID, &e.StudentID, &e.CourseID, &e.EnrolledAt, &e.Progress); err != nil {
			return nil, err
		}
		enrollments = append(enrollments, e)
	}
	return enrollments, rows.Err()
}

const isEnrolled = `
SELECT EXISTS (SELECT 1 FROM enrollments WHERE student_id = $1 AND course_id = $2)
`

// IsEnrolled reports whether the student is enrolled in the course.
func (q *Queries) IsEnrolled(ctx context.Context, studentID, courseID uuid.UUID) (bool, error) {
	var enrolled bool
	err := q.db.QueryRow(ctx, isEnrolled, studentID, courseID).Scan(&enrolled)
	return enrolled, err
}
