package controllers

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/unijournal/internal/app/importer"
	"github.com/yigit/unijournal/internal/app/models/dto"
	"github.com/yigit/unijournal/internal/app/services"
	"github.com/yigit/unijournal/internal/middleware"
	"github.com/yigit/unijournal/internal/pkg/apperrors"
	"github.com/yigit/unijournal/internal/pkg/logger"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ImportController handles spreadsheet imports
type ImportController struct {
	importService  services.ImportService
	maxUploadBytes int64
}

// NewImportController creates a new ImportController
func NewImportController(importService services.ImportService, maxUploadBytes int64) *ImportController {
	return &ImportController{
		importService:  importService,
		maxUploadBytes: maxUploadBytes,
	}
}

// ImportRows imports rows sent as JSON objects keyed by column label
// @Summary Import rows
// @Tags imports
// @Accept json
// @Produce json
// @Param request body dto.ImportRowsRequest true "Rows"
// @Success 200 {object} dto.APIResponse{data=models.ImportReport}
// @Failure 400 {object} dto.APIResponse "Invalid request data"
// @Failure 422 {object} dto.APIResponse "No recognized columns"
// @Router /imports [post]
func (c *ImportController) ImportRows(ctx *gin.Context) {
	var req dto.ImportRowsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	report, err := c.importService.ImportRecords(ctx, req.Records())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(report))
}

// ImportFile imports an uploaded .xlsx or .csv file
// @Summary Import a spreadsheet
// @Tags imports
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Spreadsheet (.xlsx or .csv)"
// @Success 200 {object} dto.APIResponse{data=models.ImportReport}
// @Failure 400 {object} dto.APIResponse "Missing file"
// @Failure 413 {object} dto.APIResponse "File too large"
// @Failure 415 {object} dto.APIResponse "Unsupported format"
// @Failure 422 {object} dto.APIResponse "Unreadable file"
// @Router /imports/file [post]
func (c *ImportController) ImportFile(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			middleware.HandleAPIError(ctx, apperrors.ErrImportTooLarge)
			return
		}
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("multipart field \"file\" is required"))
		return
	}
	if c.maxUploadBytes > 0 && fileHeader.Size > c.maxUploadBytes {
		middleware.HandleAPIError(ctx, apperrors.ErrImportTooLarge)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewCustomError(apperrors.ErrImportFailed, err.Error()))
		return
	}
	defer file.Close()

	report, err := c.importService.ImportFile(ctx, fileHeader.Filename, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(report))
}

// DownloadTemplate returns an .xlsx file with the expected header row
// @Summary Import template
// @Tags imports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Router /imports/template [get]
func (c *ImportController) DownloadTemplate(ctx *gin.Context) {
	buf := &bytes.Buffer{}
	if err := importer.WriteTemplate(buf); err != nil {
		logger.Error().Err(err).Msg("Failed to build import template")
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Header("Content-Disposition", `attachment; filename="journal_template.xlsx"`)
	ctx.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
