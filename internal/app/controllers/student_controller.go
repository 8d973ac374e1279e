package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/unijournal/internal/app/models/dto"
	"github.com/yigit/unijournal/internal/app/services"
	"github.com/yigit/unijournal/internal/middleware"
	"github.com/yigit/unijournal/internal/pkg/apperrors"
	"github.com/yigit/unijournal/internal/pkg/helpers"
)

// StudentController handles students, their reports and grade edits
type StudentController struct {
	journalService services.JournalService
	gradeService   services.GradeService
	statsService   services.StatsService
}

// NewStudentController creates a new StudentController
func NewStudentController(journalService services.JournalService, gradeService services.GradeService, statsService services.StatsService) *StudentController {
	return &StudentController{
		journalService: journalService,
		gradeService:   gradeService,
		statsService:   statsService,
	}
}

// GetAllStudents lists students page by page
// @Summary List students
// @Tags students
// @Produce json
// @Param group query string false "Group code"
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=services.StudentPage}
// @Router /students [get]
func (c *StudentController) GetAllStudents(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	result, err := c.journalService.ListStudents(ctx, services.StudentFilter{
		Group: ctx.Query("group"),
		Page:  page,
		Size:  size,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(result))
}

// GetStudentByID returns one student with grades
// @Summary Get student
// @Tags students
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} dto.APIResponse{data=models.Student}
// @Failure 404 {object} dto.APIResponse "Student not found"
// @Router /students/{id} [get]
func (c *StudentController) GetStudentByID(ctx *gin.Context) {
	student, err := c.journalService.GetStudent(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(student))
}

// GetStudentReport returns the derived statistics of one student
// @Summary Student report
// @Tags students
// @Produce json
// @Param id path string true "Student ID"
// @Param semester query int false "Semester to report on"
// @Success 200 {object} dto.APIResponse{data=stats.Report}
// @Failure 400 {object} dto.APIResponse "Invalid semester"
// @Failure 404 {object} dto.APIResponse "Student not found"
// @Router /students/{id}/report [get]
func (c *StudentController) GetStudentReport(ctx *gin.Context) {
	semester := 0
	if raw := ctx.Query("semester"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("semester must be a positive integer"))
			return
		}
		semester = v
	}

	report, err := c.statsService.StudentReport(ctx, ctx.Param("id"), semester)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(report))
}

// UpdateGrade changes the value of an existing grade
// @Summary Edit a grade
// @Tags students
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param request body dto.UpdateGradeRequest true "Grade edit"
// @Success 200 {object} dto.APIResponse{data=models.Grade}
// @Failure 400 {object} dto.APIResponse "Invalid grade type or value"
// @Failure 404 {object} dto.APIResponse "Student or grade not found"
// @Router /students/{id}/grades [put]
func (c *StudentController) UpdateGrade(ctx *gin.Context) {
	var req dto.UpdateGradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	grade, err := c.gradeService.UpdateGrade(ctx, req.ToEdit(ctx.Param("id")))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(grade))
}
