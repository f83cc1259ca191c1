package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/campus-ops-api/internal/models"
	"github.com/noah-isme/campus-ops-api/internal/service"
	appErrors "github.com/noah-isme/campus-ops-api/pkg/errors"
	"github.com/noah-isme/campus-ops-api/pkg/response"
)

type lostFoundService interface {
	List(ctx context.Context, req service.LostFoundListRequest) ([]models.LostFoundItem, *models.Pagination, error)
	Report(ctx context.Context, req service.ReportItemRequest, actor *models.JWTClaims) (*models.LostFoundItem, error)
	Claim(ctx context.Context, id string, actor *models.JWTClaims) (*models.LostFoundItem, error)
}

// LostFoundHandler wires the lost & found board to HTTP endpoints.
type LostFoundHandler struct {
	service lostFoundService
}

// NewLostFoundHandler constructs the handler.
func NewLostFoundHandler(service lostFoundService) *LostFoundHandler {
	return &LostFoundHandler{service: service}
}

// List godoc
// @Summary List lost & found items
// @Tags LostFound
// @Produce json
// @Param status query string false "Status filter (OPEN or CLAIMED)"
// @Param search query string false "Title/description search"
// @Param page query int false "Page"
// @Param pageSize query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /lost-found [get]
func (h *LostFoundHandler) List(c *gin.Context) {
	var query struct {
		Status   string `form:"status"`
		Search   string `form:"search"`
		Page     int    `form:"page"`
		PageSize int    `form:"pageSize"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid item filters"))
		return
	}
	items, pagination, err := h.service.List(c.Request.Context(), service.LostFoundListRequest{
		Status:   query.Status,
		Search:   query.Search,
		Page:     query.Page,
		PageSize: query.PageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, pagination)
}

// Report godoc
// @Summary Report a lost or found item
// @Tags LostFound
// @Accept json
// @Produce json
// @Param request body service.ReportItemRequest true "Item details"
// @Success 201 {object} response.Envelope
// @Router /lost-found [post]
func (h *LostFoundHandler) Report(c *gin.Context) {
	claims := claimsFromContext(c)
	var req service.ReportItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid item payload"))
		return
	}
	item, err := h.service.Report(c.Request.Context(), req, claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}

// Claim godoc
// @Summary Claim an open item
// @Tags LostFound
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} response.Envelope
// @Router /lost-found/{id}/claim [post]
func (h *LostFoundHandler) Claim(c *gin.Context) {
	claims := claimsFromContext(c)
	item, err := h.service.Claim(c.Request.Context(), c.Param("id"), claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}
