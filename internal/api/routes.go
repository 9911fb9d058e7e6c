package api

import (
	"github.com/gin-gonic/gin"

	"learnhub/internal/api/handlers"
)

// SetupRoutes sets up the API routes.
func SetupRoutes(router *gin.Engine, handler *handlers.Handler, frontendURL string) {
	router.Use(CORSMiddleware(frontendURL))

	// --- Public Auth Routes ---
	router.GET("/login", handler.HandleGoogleLogin)
	router.GET("/auth/google/callback", handler.HandleGoogleCallback)

	// --- API Routes ---
	api := router.Group("/api")
	{
		api.GET("/auth/status", handler.HandleAuthStatus)

		authorized := api.Group("/")
		authorized.Use(AuthRequired())
		{
			authorized.GET("/user/profile", handler.HandleUserProfile)
			authorized.PUT("/user/role", handler.HandleUpdateRole)
			authorized.POST("/logout", handler.HandleLogout)

			// --- Course Management ---
			authorized.GET("/courses", handler.HandleListCourses)
			authorized.GET("/courses/:courseId", handler.HandleGetCourse)
			authorized.POST("/courses", handler.HandleCreateCourse)
			authorized.POST("/courses/:courseId/sections", handler.HandleCreateSection)
			authorized.PUT("/sections/:sectionId", handler.HandleUpdateSection)
			authorized.DELETE("/sections/:sectionId", handler.HandleDeleteSection)
			authorized.POST("/sections/:sectionId/lessons", handler.HandleCreateLesson)

			// --- Enrollment ---
			authorized.POST("/courses/:courseId/enroll", handler.HandleEnroll)
			authorized.GET("/enrollments", handler.HandleListEnrollments)

			// --- Materials and Quizzes ---
			authorized.POST("/courses/:courseId/materials", handler.HandleUploadMaterial)
			authorized.POST("/materials/:materialId/quizzes/generate", handler.HandleGenerateQuizzes)
			authorized.GET("/materials/:materialId/quizzes", handler.HandleListQuizzes)
			authorized.POST("/materials/:materialId/quizzes/submit", handler.HandleSubmitQuizzes)
		}
	}
}
