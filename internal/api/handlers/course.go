package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"learnhub/internal/db"
	"learnhub/internal/models"
)

// requireInstructor checks that the current user has the instructor role.
func (h *Handler) requireInstructor(c *gin.Context) bool {
	profile, ok := h.currentProfile(c)
	if !ok || profile.Role != string(models.RoleInstructor) {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Instructor role required"})
		return false
	}
	return true
}

// requireCourseOwner loads a course and checks the current user owns it.
func (h *Handler) requireCourseOwner(c *gin.Context, userID, courseID uuid.UUID) (models.Course, bool) {
	course, err := h.DB.Queries.GetCourseByID(c.Request.Context(), courseID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		} else {
			h.handleError(c, userID, http.StatusInternalServerError, "Failed to load course", err)
		}
		return models.Course{}, false
	}
	if course.InstructorID != userID {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "You do not own this course"})
		return models.Course{}, false
	}
	return course, true
}

// CreateCourseRequest is the body of HandleCreateCourse.
type CreateCourseRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
}

// HandleCreateCourse creates a course owned by the current instructor.
func (h *Handler) HandleCreateCourse(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	if !h.requireInstructor(c) {
		return
	}

	var req CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if req.Price < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Price cannot be negative"})
		return
	}

	ctx := c.Request.Context()
	course, err := h.DB.Queries.CreateCourse(ctx, db.CreateCourseParams{
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		Price:        req.Price,
		InstructorID: userID,
	})
	if err != nil {
		h.handleError(c, userID, http.StatusInternalServerError, "Failed to create course", err)
		return
	}

	h.logActivity(ctx, userID, ActionCourseCreate, "course", course.ID,
		map[string]interface{}{"title": course.Title})
	h.sendDiscordNotification(DiscordEmbed{
		Title:       "📚 New Course",
		Description: fmt.Sprintf("'%s' created", course.Title),
		Color:       0x5865F2,
	})

	c.JSON(http.StatusCreated, course)
}

// HandleListCourses returns all courses, filtered by ?q= when present.
func (h *Handler) HandleListCourses(c *gin.Context) {
	courses, err := h.DB.Queries.ListCourses(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.handleError(c, uuid.Nil, http.StatusInternalServerError, "Failed to list courses", err)
		return
	}
	if courses == nil {
		courses = []models.Course{}
	}
	c.JSON(http.StatusOK, courses)
}

// HandleGetCourse returns one course with its sections, lessons and
// materials.
func (h *Handler) HandleGetCourse(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("courseId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid course ID format"})
		return
	}

	ctx := c.Request.Context()
	course, err := h.DB.Queries.GetCourseByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		} else {
			h.handleError(c, uuid.Nil, http.StatusInternalServerError, "Failed to load course", err)
		}
		return
	}

	sections, err := h.DB.Queries.ListSectionsByCourse(ctx, courseID)
	if err != nil {
		h.handleError(c, uuid.Nil, http.StatusInternalServerError, "Failed to load sections", err)
		return
	}

	type sectionWithLessons struct {
		models.Section
		Lessons []models.Lesson `json:"lessons"`
	}
	detailed := make([]sectionWithLessons, 0, len(sections))
	for _, s := range sections {
		lessons, err := h.DB.Queries.ListLessonsBySection(ctx, s.ID)
		if err != nil {
			h.handleError(c, uuid.Nil, http.StatusInternalServerError, "Failed to load lessons", err)
			return
		}
		if lessons == nil {
			lessons = []models.Lesson{}
		}
		detailed = append(detailed, sectionWithLessons{Section: s, Lessons: lessons})
	}

	materials, err := h.DB.Queries.ListMaterialsByCourse(ctx, courseID)
	if err != nil {
		h.handleError(c, uuid.Nil, http.StatusInternalServerError, "Failed to load materials", err)
		return
	}
	if materials == nil {
		materials = []models.PDFMaterial{}
	}

	c.JSON(http.StatusOK, gin.H{
		"course":    course,
		"sections":  detailed,
		"materials": materials,
	})
}

// SectionRequest is the body for creating and updating sections.
type SectionRequest struct {
	Title    string `json:"title" binding:"required"`
	Content  string `json:"content"`
	Position int32  `json:"position"`
}

// HandleCreateSection adds a section to a course the current user owns.
func (h *Handler) HandleCreateSection(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	courseID, err := uuid.Parse(c.Param("courseId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid course ID format"})
		return
	}
	if _, ok := h.requireCourseOwner(c, userID, courseID); !ok {
		return
	}

	var req SectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	section, err := h.DB.Queries.CreateSection(c.Request.Context(), db.CreateSectionParams{
		CourseID: courseID,
		Title:    req.Title,
		Content:  req.Content,
		Position: req.Position,
	})
	if err != nil {
		h.handleError(c, userID, http.StatusInternalServerError, "Failed to create section", err)
		return
	}
	c.JSON(http.StatusCreated, section)
}

// sectionForOwner resolves a section id and checks the current user owns
// its course.
func (h *Handler) sectionForOwner(c *gin.Context, userID uuid.UUID) (models.Section, bool) {
	sectionID, err := uuid.Parse(c.Param("sectionId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid section ID format"})
		return models.Section{}, false
	}

	section, err := h.DB.Queries.GetSectionByID(c.Request.Context(), sectionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Section not found"})
		} else {
			h.handleError(c, userID, http.StatusInternalServerError, "Failed to load section", err)
		}
		return models.Section{}, false
	}
	if _, ok := h.requireCourseOwner(c, userID, section.CourseID); !ok {
		return models.Section{}, false
	}
	return section, true
}

// HandleUpdateSection edits a section of a course the current user owns.
func (h *Handler) HandleUpdateSection(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	section, ok := h.sectionForOwner(c, userID)
	if !ok {
		return
	}

	var req SectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	updated, err := h.DB.Queries.UpdateSection(c.Request.Context(), db.UpdateSectionParams{
		ID:       section.ID,
		Title:    req.Title,
		Content:  req.Content,
		Position: req.Position,
	})
	if err != nil {
		h.handleError(c, userID, http.StatusInternalServerError, "Failed to update section", err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// HandleDeleteSection removes a section and its lessons.
func (h *Handler) HandleDeleteSection(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	section, ok := h.sectionForOwner(c, userID)
	if !ok {
		return
	}

	if err := h.DB.Queries.DeleteSection(c.Request.Context(), section.ID); err != nil {
		h.handleError(c, userID, http.StatusInternalServerError, "Failed to delete section", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// LessonRequest is the body of HandleCreateLesson.
type LessonRequest struct {
	Title    string `json:"title" binding:"required"`
	Content  string `json:"content"`
	VideoURL string `json:"video_url"`
	Position int32  `json:"position"`
}

// HandleCreateLesson adds a lesson to a section of an owned course.
func (h *Handler) HandleCreateLesson(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	section, ok := h.sectionForOwner(c, userID)
	if !ok {
		return
	}

	var req LessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	lesson, err := h.DB.Queries.CreateLesson(c.Request.Context(), db.CreateLessonParams{
		SectionID: section.ID,
		Title:     req.Title,
		Content:   req.Content,
		VideoURL:  req.VideoURL,
		Position:  req.Position,
	})
	if err != nil {
		h.handleError(c, userID, http.StatusInternalServerError, "Failed to create lesson", err)
		return
	}
	c.JSON(http.StatusCreated, lesson)
}

// HandleEnroll enrolls the current user in a course. Enrolling twice is
// reported as a conflict, not an error.
func (h *Handler) HandleEnroll(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	courseID, err := uuid.Parse(c.Param("courseId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid course ID format"})
		return
	}

	ctx := c.Request.Context()
	if _, err := h.DB.Queries.GetCourseByID(ctx, courseID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		} else {
			h.handleError(c, userID, http.StatusInternalServerError, "Failed to load course", err)
		}
		return
	}

	enrollment, err := h.DB.Queries.CreateEnrollment(ctx, userID, courseID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusConflict, gin.H{"error": "Already enrolled in this course"})
			return
		}
		h.handleError(c, userID, http.StatusInternalServerError, "Failed to enroll", err)
		return
	}

	h.logActivity(ctx, userID, ActionEnroll, "course", courseID, nil)
	c.JSON(http.StatusCreated, enrollment)
}

// HandleListEnrollments returns the current user's enrollments.
func (h *Handler) HandleListEnrollments(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	enrollments, err := h.DB.Queries.ListEnrollmentsByStudent(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, userID, http.StatusInternalServerError, "Failed to list enrollments", err)
		return
	}
	if enrollments == nil {
		enrollments = []models.Enrollment{}
	}
	c.JSON(http.StatusOK, enrollments)
}
