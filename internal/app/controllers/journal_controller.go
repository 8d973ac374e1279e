package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/unijournal/internal/app/models/dto"
	"github.com/yigit/unijournal/internal/app/services"
	"github.com/yigit/unijournal/internal/middleware"
)

// JournalController serves teachers, courses and the course journal
type JournalController struct {
	journalService services.JournalService
}

// NewJournalController creates a new JournalController
func NewJournalController(journalService services.JournalService) *JournalController {
	return &JournalController{
		journalService: journalService,
	}
}

// GetAllTeachers lists teachers
// @Summary List teachers
// @Tags teachers
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Teacher}
// @Router /teachers [get]
func (c *JournalController) GetAllTeachers(ctx *gin.Context) {
	teachers, err := c.journalService.ListTeachers(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(teachers))
}

// GetAllCourses lists courses, optionally those of one teacher
// @Summary List courses
// @Tags courses
// @Produce json
// @Param teacherId query string false "Teacher ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Course}
// @Router /courses [get]
func (c *JournalController) GetAllCourses(ctx *gin.Context) {
	courses, err := c.journalService.ListCourses(ctx, ctx.Query("teacherId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(courses))
}

// GetCourseJournal returns the grade table of one course
// @Summary Course journal
// @Tags courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} dto.APIResponse{data=services.CourseJournal}
// @Failure 404 {object} dto.APIResponse "Course not found"
// @Router /courses/{id}/journal [get]
func (c *JournalController) GetCourseJournal(ctx *gin.Context) {
	journal, err := c.journalService.GetCourseJournal(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(journal))
}

// Health reports liveness together with the dataset version
// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.HealthResponse}
// @Router /health [get]
func (c *JournalController) Health(ctx *gin.Context) {
	version, err := c.journalService.Version(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.HealthResponse{Status: "ok", Version: version},
		Timestamp: time.Now(),
	})
}
