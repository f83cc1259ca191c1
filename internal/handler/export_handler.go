package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/campus-ops-api/internal/dto"
	"github.com/noah-isme/campus-ops-api/internal/models"
	"github.com/noah-isme/campus-ops-api/internal/service"
	appErrors "github.com/noah-isme/campus-ops-api/pkg/errors"
	"github.com/noah-isme/campus-ops-api/pkg/response"
)

type exportService interface {
	RenderQueue(ctx context.Context, approver models.ApproverIdentity, scope models.ClassScope, format service.ExportFormat) ([]byte, string, error)
}

// ExportHandler serves downloadable renditions of the approver queue.
type ExportHandler struct {
	service exportService
}

// NewExportHandler constructs the handler.
func NewExportHandler(service exportService) *ExportHandler {
	return &ExportHandler{service: service}
}

// Queue godoc
// @Summary Export the approver queue as CSV or PDF
// @Tags Export
// @Produce application/octet-stream
// @Param format query string true "Export format (csv or pdf)"
// @Param month query int false "Calendar month (1-12), defaults to current"
// @Param yearLabel query int false "Calendar year, defaults to current"
// @Param department query string false "Department filter"
// @Success 200 {file} binary
// @Router /export/leaves [get]
func (h *ExportHandler) Queue(c *gin.Context) {
	claims := claimsFromContext(c)
	approver, ok := approverFromClaims(claims)
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "caller has no approval role"))
		return
	}
	format := service.ExportFormat(c.Query("format"))
	var req dto.ApproverQueueRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid export filters"))
		return
	}
	payload, contentType, err := h.service.RenderQueue(c.Request.Context(), approver, scopeFromRequest(req), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	filename := fmt.Sprintf("leave-queue-%s.%s", time.Now().UTC().Format("2006-01-02"), format)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, payload)
}
