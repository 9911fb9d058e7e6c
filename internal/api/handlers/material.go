package handlers

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"learnhub/internal/db"
	"learnhub/internal/models"
	"learnhub/internal/quizgen"
)

// maxPDFSize caps uploads at 10MB.
const maxPDFSize = 10 << 20

// HandleUploadMaterial stores a PDF attached to a course the current user
// owns. The raw bytes always land in the database; when object storage is
// configured the file is mirrored there as well.
func (h *Handler) HandleUploadMaterial(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	courseID, err := uuid.Parse(c.Param("courseId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid course ID format"})
		return
	}
	course, ok := h.requireCourseOwner(c, userID, courseID)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing 'file' form field: " + err.Error()})
		return
	}
	if !strings.EqualFold(filepath.Ext(fileHeader.Filename), ".pdf") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only PDF files are allowed"})
		return
	}
	if fileHeader.Size > maxPDFSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File exceeds the 10MB limit"})
		return
	}

	title := strings.TrimSpace(c.PostForm("title"))
	if title == "" {
		title = strings.TrimSuffix(fileHeader.Filename, filepath.Ext(fileHeader.Filename))
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.handleError(c, userID, http.StatusInternalServerError, "Failed to open uploaded file", err)
		return
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, maxPDFSize+1))
	if err != nil {
		h.handleError(c, userID, http.StatusInternalServerError, "Failed to read uploaded file", err)
		return
	}
	if len(content) > maxPDFSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File exceeds the 10MB limit"})
		return
	}

	ctx := c.Request.Context()
	material, err := h.DB.Queries.CreateMaterial(ctx, db.CreateMaterialParams{
		CourseID:   courseID,
		Title:      title,
		FileName:   fileHeader.Filename,
		Content:    content,
		UploadedBy: userID,
	})
	if err != nil {
		h.handleError(c, userID, http.StatusInternalServerError, "Failed to store material", err)
		return
	}

	if h.R2 != nil {
		storageURL, err := h.R2.UploadPDF(ctx, courseID, material.ID, fileHeader.Filename, content)
		if err != nil {
			// The DB copy is authoritative; a failed mirror is not fatal.
			log.Printf("WARN: Failed to mirror material %s to R2: %v", material.ID, err)
		} else if err := h.DB.Queries.UpdateMaterialStorageURL(ctx, material.ID, storageURL); err != nil {
			log.Printf("ERROR: Failed to record storage URL for material %s: %v", material.ID, err)
		} else {
			material.StorageURL = storageURL
		}
	}

	h.logActivity(ctx, userID, ActionMaterialUpload, "pdf_material", material.ID,
		map[string]interface{}{"course_id": courseID.String(), "file_name": fileHeader.Filename})
	h.sendDiscordNotification(DiscordEmbed{
		Title:       "📄 Material Uploaded",
		Description: fmt.Sprintf("'%s' added to course '%s'", material.Title, course.Title),
		Color:       0x5865F2,
	})

	c.JSON(http.StatusCreated, material)
}

// GenerateQuizzesRequest is the body of HandleGenerateQuizzes. Both fields
// are optional; the pipeline applies its own defaults.
type GenerateQuizzesRequest struct {
	NumQuestions int    `json:"num_questions"`
	Difficulty   string `json:"difficulty"`
}

// HandleGenerateQuizzes runs the PDF-to-quiz pipeline for a material and
// replaces the material's quiz set with the new batch. A PDF with no
// extractable text is rejected; any backend failure degrades to mock
// quizzes instead of failing.
func (h *Handler) HandleGenerateQuizzes(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	materialID, err := uuid.Parse(c.Param("materialId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid material ID format"})
		return
	}

	var req GenerateQuizzesRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	ctx := c.Request.Context()
	material, err := h.DB.Queries.GetMaterialByID(ctx, materialID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Material not found"})
		} else {
			h.handleError(c, userID, http.StatusInternalServerError, "Failed to load material", err)
		}
		return
	}
	course, ok := h.requireCourseOwner(c, userID, material.CourseID)
	if !ok {
		return
	}

	instructor, err := h.DB.Queries.GetUserByID(ctx, course.InstructorID)
	if err != nil {
		h.handleError(c, userID, http.StatusInternalServerError, "Failed to load instructor", err)
		return
	}

	content, err := h.DB.Queries.GetMaterialContent(ctx, materialID)
	if err != nil {
		h.handleError(c, userID, http.StatusInternalServerError, "Failed to load material content", err)
		return
	}

	result, err := h.Generator.GenerateQuizSet(ctx, quizgen.Request{
		PDFData:        content,
		CourseName:     course.Title,
		InstructorName: instructor.Name,
		PDFTitle:       material.Title,
		NumQuestions:   req.NumQuestions,
		Difficulty:     req.Difficulty,
	})
	if err != nil {
		if errors.Is(err, quizgen.ErrNoExtractableText) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		h.handleError(c, userID, http.StatusInternalServerError, "Quiz generation failed", err)
		return
	}

	quizzes, err := h.DB.ReplaceQuizzes(ctx, materialID, course.ID, result.Drafts)
	if err != nil {
		h.handleError(c, userID, http.StatusInternalServerError, "Failed to store quizzes", err)
		return
	}

	h.logActivity(ctx, userID, ActionQuizGenerate, "pdf_material", materialID,
		map[string]interface{}{"count": len(quizzes), "source": string(result.Source)})
	h.sendDiscordNotification(DiscordEmbed{
		Title:       "🧠 Quizzes Generated",
		Description: fmt.Sprintf("%d quizzes for material '%s' (source: %s)", len(quizzes), material.Title, result.Source),
		Color:       0xFEE75C,
	})

	if quizzes == nil {
		quizzes = []models.Quiz{}
	}
	c.JSON(http.StatusOK, gin.H{
		"source":  result.Source,
		"quizzes": quizzes,
	})
}
