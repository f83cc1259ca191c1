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

type clubService interface {
	List(ctx context.Context, req service.ClubListRequest) ([]models.Club, *models.Pagination, error)
	Create(ctx context.Context, req service.CreateClubRequest) (*models.Club, error)
	Join(ctx context.Context, clubID string, actor *models.JWTClaims) ([]models.ClubMember, error)
	Members(ctx context.Context, clubID string) ([]models.ClubMember, error)
}

// ClubHandler wires clubs to HTTP endpoints.
type ClubHandler struct {
	service clubService
}

// NewClubHandler constructs the handler.
func NewClubHandler(service clubService) *ClubHandler {
	return &ClubHandler{service: service}
}

// List godoc
// @Summary List clubs
// @Tags Clubs
// @Produce json
// @Param department query string false "Department filter"
// @Param search query string false "Name search"
// @Param page query int false "Page"
// @Param pageSize query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /clubs [get]
func (h *ClubHandler) List(c *gin.Context) {
	var query struct {
		Department string `form:"department"`
		Search     string `form:"search"`
		Page       int    `form:"page"`
		PageSize   int    `form:"pageSize"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid club filters"))
		return
	}
	clubs, pagination, err := h.service.List(c.Request.Context(), service.ClubListRequest{
		Department: query.Department,
		Search:     query.Search,
		Page:       query.Page,
		PageSize:   query.PageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, clubs, pagination)
}

// Create godoc
// @Summary Create a club
// @Tags Clubs
// @Accept json
// @Produce json
// @Param request body service.CreateClubRequest true "Club details"
// @Success 201 {object} response.Envelope
// @Router /clubs [post]
func (h *ClubHandler) Create(c *gin.Context) {
	var req service.CreateClubRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid club payload"))
		return
	}
	club, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, club)
}

// Join godoc
// @Summary Join a club
// @Tags Clubs
// @Produce json
// @Param id path string true "Club ID"
// @Success 200 {object} response.Envelope
// @Router /clubs/{id}/join [post]
func (h *ClubHandler) Join(c *gin.Context) {
	claims := claimsFromContext(c)
	members, err := h.service.Join(c.Request.Context(), c.Param("id"), claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, members, nil)
}

// Members godoc
// @Summary List a club's members
// @Tags Clubs
// @Produce json
// @Param id path string true "Club ID"
// @Success 200 {object} response.Envelope
// @Router /clubs/{id}/members [get]
func (h *ClubHandler) Members(c *gin.Context) {
	members, err := h.service.Members(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, members, nil)
}
