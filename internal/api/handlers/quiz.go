package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"learnhub/internal/models"
	"learnhub/internal/quizgen"
)

// QuizView is a quiz as shown to students: the correct answer is omitted.
type QuizView struct {
	ID       uuid.UUID `json:"id"`
	PDFID    uuid.UUID `json:"pdf_id"`
	CourseID uuid.UUID `json:"course_id"`
	Question string    `json:"question"`
	OptionA  string    `json:"option_a"`
	OptionB  string    `json:"option_b"`
	OptionC  string    `json:"option_c"`
	OptionD  string    `json:"option_d"`
}

// materialForViewer resolves a material and checks the current user may see
// its quizzes: the course owner or an enrolled student. The second return
// value reports whether the user owns the course.
func (h *Handler) materialForViewer(c *gin.Context, userID uuid.UUID) (models.PDFMaterial, bool, bool) {
	materialID, err := uuid.Parse(c.Param("materialId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid material ID format"})
		return models.PDFMaterial{}, false, false
	}

	ctx := c.Request.Context()
	material, err := h.DB.Queries.GetMaterialByID(ctx, materialID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Material not found"})
		} else {
			h.handleError(c, userID, http.StatusInternalServerError, "Failed to load material", err)
		}
		return models.PDFMaterial{}, false, false
	}

	course, err := h.DB.Queries.GetCourseByID(ctx, material.CourseID)
	if err != nil {
		h.handleError(c, userID, http.StatusInternalServerError, "Failed to load course", err)
		return models.PDFMaterial{}, false, false
	}
	if course.InstructorID == userID {
		return material, true, true
	}

	enrolled, err := h.DB.Queries.IsEnrolled(ctx, userID, material.CourseID)
	if err != nil {
		h.handleError(c, userID, http.StatusInternalServerError, "Failed to check enrollment", err)
		return models.PDFMaterial{}, false, false
	}
	if !enrolled {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Enroll in the course to access its quizzes"})
		return models.PDFMaterial{}, false, false
	}
	return material, false, true
}

// HandleListQuizzes returns the quiz set of a material. The course owner
// sees correct answers; enrolled students do not.
func (h *Handler) HandleListQuizzes(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	material, isOwner, ok := h.materialForViewer(c, userID)
	if !ok {
		return
	}

	quizzes, err := h.DB.Queries.ListQuizzesByPDF(c.Request.Context(), material.ID)
	if err != nil {
		h.handleError(c, userID, http.StatusInternalServerError, "Failed to list quizzes", err)
		return
	}

	if isOwner {
		if quizzes == nil {
			quizzes = []models.Quiz{}
		}
		c.JSON(http.StatusOK, quizzes)
		return
	}

	views := make([]QuizView, 0, len(quizzes))
	for _, q := range quizzes {
		views = append(views, QuizView{
			ID:       q.ID,
			PDFID:    q.PDFID,
			CourseID: q.CourseID,
			Question: q.Question,
			OptionA:  q.OptionA,
			OptionB:  q.OptionB,
			OptionC:  q.OptionC,
			OptionD:  q.OptionD,
		})
	}
	c.JSON(http.StatusOK, views)
}

// SubmitQuizzesRequest maps quiz ids to the chosen answer tag ("A"-"D").
type SubmitQuizzesRequest struct {
	Answers map[string]string `json:"answers" binding:"required"`
}

// HandleSubmitQuizzes grades a submission against a material's current quiz
// set. Results are computed on the fly and never stored; unanswered
// questions count as incorrect.
func (h *Handler) HandleSubmitQuizzes(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	material, _, ok := h.materialForViewer(c, userID)
	if !ok {
		return
	}

	var req SubmitQuizzesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	answers := make(map[uuid.UUID]string, len(req.Answers))
	for key, tag := range req.Answers {
		quizID, err := uuid.Parse(key)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quiz ID in answers: " + key})
			return
		}
		answers[quizID] = strings.ToUpper(strings.TrimSpace(tag))
	}

	ctx := c.Request.Context()
	quizzes, err := h.DB.Queries.ListQuizzesByPDF(ctx, material.ID)
	if err != nil {
		h.handleError(c, userID, http.StatusInternalServerError, "Failed to list quizzes", err)
		return
	}
	if len(quizzes) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No quizzes exist for this material"})
		return
	}

	result := quizgen.Grade(quizzes, answers)

	h.logActivity(ctx, userID, ActionQuizSubmit, "pdf_material", material.ID,
		map[string]interface{}{"score": result.Score, "total": result.Total})

	c.JSON(http.StatusOK, result)
}
