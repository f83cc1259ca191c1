package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-ops-api/internal/models"
	appErrors "github.com/noah-isme/campus-ops-api/pkg/errors"
)

type lostFoundRepository interface {
	List(ctx context.Context, filter models.LostFoundFilter) ([]models.LostFoundItem, int, error)
	Create(ctx context.Context, item *models.LostFoundItem) (*models.LostFoundItem, error)
	Claim(ctx context.Context, id, userID string) error
	GetByID(ctx context.Context, id string) (*models.LostFoundItem, error)
}

// LostFoundService handles the lost & found board.
type LostFoundService struct {
	repo      lostFoundRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewLostFoundService constructs the service.
func NewLostFoundService(repo lostFoundRepository, validate *validator.Validate, logger *zap.Logger) *LostFoundService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LostFoundService{repo: repo, validator: validate, logger: logger}
}

// ReportItemRequest describes a lost/found report payload.
type ReportItemRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Location    string `json:"location"`
}

// LostFoundListRequest describes list filters.
type LostFoundListRequest struct {
	Status   string `json:"status"`
	Search   string `json:"search"`
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
}

// List returns items with pagination.
func (s *LostFoundService) List(ctx context.Context, req LostFoundListRequest) ([]models.LostFoundItem, *models.Pagination, error) {
	filter := models.LostFoundFilter{
		Search:   req.Search,
		Page:     req.Page,
		PageSize: req.PageSize,
	}
	if req.Status != "" {
		status := models.LostFoundStatus(req.Status)
		filter.Status = &status
	}
	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, err
	}
	pagination := &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: total}
	if pagination.Page < 1 {
		pagination.Page = 1
	}
	if pagination.PageSize <= 0 {
		pagination.PageSize = 20
	}
	return items, pagination, nil
}

// Report files a new lost/found item.
func (s *LostFoundService) Report(ctx context.Context, req ReportItemRequest, actor *models.JWTClaims) (*models.LostFoundItem, error) {
	if actor == nil {
		return nil, appErrors.ErrUnauthorized
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid item payload")
	}
	item := &models.LostFoundItem{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		ReportedBy:  actor.UserID,
	}
	stored, err := s.repo.Create(ctx, item)
	if err != nil {
		return nil, err
	}
	s.logger.Info("lost-found item reported", zap.String("id", stored.ID), zap.String("title", stored.Title))
	return stored, nil
}

// Claim marks an item as claimed by the acting user.
func (s *LostFoundService) Claim(ctx context.Context, id string, actor *models.JWTClaims) (*models.LostFoundItem, error) {
	if actor == nil {
		return nil, appErrors.ErrUnauthorized
	}
	if err := s.repo.Claim(ctx, id, actor.UserID); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}
