package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/yigit/unijournal/internal/app/controllers"
	"github.com/yigit/unijournal/internal/middleware"
	"github.com/yigit/unijournal/internal/pkg/apperrors"
	"github.com/yigit/unijournal/internal/pkg/validation"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	journalController *controllers.JournalController,
	studentController *controllers.StudentController,
	importController *controllers.ImportController,
) {
	// Binding tags on request DTOs use the journal rules
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validation.Register(v)
	}

	v1 := router.Group("/api/v1")

	teachers := v1.Group("/teachers")
	{
		teachers.GET("", journalController.GetAllTeachers)
	}

	courses := v1.Group("/courses")
	{
		courses.GET("", journalController.GetAllCourses)
		courses.GET("/:id/journal", journalController.GetCourseJournal)
	}

	students := v1.Group("/students")
	{
		students.GET("", studentController.GetAllStudents)
		students.GET("/:id", studentController.GetStudentByID)
		students.GET("/:id/report", studentController.GetStudentReport)
		students.PUT("/:id/grades", studentController.UpdateGrade)
	}

	imports := v1.Group("/imports")
	{
		imports.POST("", importController.ImportRows)
		imports.POST("/file", importController.ImportFile)
		imports.GET("/template", importController.DownloadTemplate)
	}

	// Health check endpoint
	v1.GET("/health", journalController.Health)

	router.NoRoute(func(c *gin.Context) {
		middleware.HandleAPIError(c, apperrors.NewResourceNotFoundError("route not found"))
	})
}
