package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/campus-ops-api/internal/dto"
	"github.com/noah-isme/campus-ops-api/internal/middleware"
	"github.com/noah-isme/campus-ops-api/internal/models"
	appErrors "github.com/noah-isme/campus-ops-api/pkg/errors"
	"github.com/noah-isme/campus-ops-api/pkg/response"
)

type dashboardService interface {
	Approver(ctx context.Context, approver models.ApproverIdentity, scope models.ClassScope) (*dto.LeaveDashboardResponse, bool, error)
}

// DashboardHandler wires the leave dashboard to HTTP endpoints.
type DashboardHandler struct {
	service dashboardService
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(service dashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Approver godoc
// @Summary Leave dashboard for the approver's scope
// @Description Rollup stats plus the present/absent roster partition for today.
// @Tags Dashboard
// @Produce json
// @Param year query string false "Academic year"
// @Param semester query string false "Semester"
// @Param division query string false "Division"
// @Param month query int false "Calendar month (1-12), defaults to current"
// @Param yearLabel query int false "Calendar year, defaults to current"
// @Param department query string false "Department filter"
// @Success 200 {object} response.Envelope
// @Router /dashboard/leaves [get]
func (h *DashboardHandler) Approver(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	claims := claimsFromContext(c)
	approver, ok := approverFromClaims(claims)
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "caller has no approval role"))
		return
	}
	var req dto.ApproverQueueRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid dashboard filters"))
		return
	}
	start := time.Now()
	summary, cacheHit, err := h.service.Approver(c.Request.Context(), approver, scopeFromRequest(req))
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	meta := middleware.ExtractMeta(c)
	if meta == nil {
		meta = map[string]interface{}{}
	}
	meta["processing_time_ms"] = time.Since(start).Milliseconds()
	response.JSON(c, http.StatusOK, summary, nil, meta)
}
