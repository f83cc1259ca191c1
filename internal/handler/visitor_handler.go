package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/campus-ops-api/internal/models"
	"github.com/noah-isme/campus-ops-api/internal/service"
	appErrors "github.com/noah-isme/campus-ops-api/pkg/errors"
	"github.com/noah-isme/campus-ops-api/pkg/response"
)

type visitorService interface {
	List(ctx context.Context, req service.VisitorListRequest) ([]models.Visitor, *models.Pagination, error)
	CheckIn(ctx context.Context, req service.CheckInVisitorRequest) (*models.Visitor, error)
	CheckOut(ctx context.Context, id string) (*models.Visitor, error)
}

// VisitorHandler wires the visitor log to HTTP endpoints.
type VisitorHandler struct {
	service visitorService
}

// NewVisitorHandler constructs the handler.
func NewVisitorHandler(service visitorService) *VisitorHandler {
	return &VisitorHandler{service: service}
}

// List godoc
// @Summary List visitor entries
// @Tags Visitors
// @Produce json
// @Param status query string false "Status filter"
// @Param department query string false "Department filter"
// @Param search query string false "Name/phone search"
// @Param dateFrom query string false "From date (YYYY-MM-DD)"
// @Param dateTo query string false "To date (YYYY-MM-DD)"
// @Param page query int false "Page"
// @Param pageSize query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /visitors [get]
func (h *VisitorHandler) List(c *gin.Context) {
	req := service.VisitorListRequest{
		Status:     c.Query("status"),
		Department: c.Query("department"),
		Search:     c.Query("search"),
	}
	if raw := c.Query("dateFrom"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid dateFrom, expected YYYY-MM-DD"))
			return
		}
		req.DateFrom = &parsed
	}
	if raw := c.Query("dateTo"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid dateTo, expected YYYY-MM-DD"))
			return
		}
		req.DateTo = &parsed
	}
	var pageQuery struct {
		Page     int `form:"page"`
		PageSize int `form:"pageSize"`
	}
	if err := c.ShouldBindQuery(&pageQuery); err == nil {
		req.Page = pageQuery.Page
		req.PageSize = pageQuery.PageSize
	}
	visitors, pagination, err := h.service.List(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, visitors, pagination)
}

// CheckIn godoc
// @Summary Check a visitor in
// @Tags Visitors
// @Accept json
// @Produce json
// @Param request body service.CheckInVisitorRequest true "Visitor details"
// @Success 201 {object} response.Envelope
// @Router /visitors [post]
func (h *VisitorHandler) CheckIn(c *gin.Context) {
	var req service.CheckInVisitorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid visitor payload"))
		return
	}
	visitor, err := h.service.CheckIn(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, visitor)
}

// CheckOut godoc
// @Summary Check a visitor out
// @Tags Visitors
// @Produce json
// @Param id path string true "Visitor entry ID"
// @Success 200 {object} response.Envelope
// @Router /visitors/{id}/checkout [post]
func (h *VisitorHandler) CheckOut(c *gin.Context) {
	visitor, err := h.service.CheckOut(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, visitor, nil)
}
