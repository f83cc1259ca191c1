package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-ops-api/internal/models"
	appErrors "github.com/noah-isme/campus-ops-api/pkg/errors"
)

type visitorRepository interface {
	List(ctx context.Context, filter models.VisitorFilter) ([]models.Visitor, int, error)
	Create(ctx context.Context, visitor *models.Visitor) (*models.Visitor, error)
	CheckOut(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.Visitor, error)
}

// VisitorService handles the campus visitor log.
type VisitorService struct {
	repo      visitorRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewVisitorService constructs the service.
func NewVisitorService(repo visitorRepository, validate *validator.Validate, logger *zap.Logger) *VisitorService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &VisitorService{repo: repo, validator: validate, logger: logger}
}

// CheckInVisitorRequest describes a visitor check-in payload.
type CheckInVisitorRequest struct {
	FullName   string `json:"full_name" validate:"required"`
	Phone      string `json:"phone" validate:"required"`
	Purpose    string `json:"purpose" validate:"required"`
	HostName   string `json:"host_name"`
	Department string `json:"department"`
}

// VisitorListRequest describes visitor list filters.
type VisitorListRequest struct {
	Status     string     `json:"status"`
	Department string     `json:"department"`
	Search     string     `json:"search"`
	DateFrom   *time.Time `json:"date_from"`
	DateTo     *time.Time `json:"date_to"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
}

// List returns visitor entries with pagination.
func (s *VisitorService) List(ctx context.Context, req VisitorListRequest) ([]models.Visitor, *models.Pagination, error) {
	filter := models.VisitorFilter{
		Department: req.Department,
		Search:     req.Search,
		DateFrom:   req.DateFrom,
		DateTo:     req.DateTo,
		Page:       req.Page,
		PageSize:   req.PageSize,
	}
	if req.Status != "" {
		status := models.VisitorStatus(req.Status)
		filter.Status = &status
	}
	visitors, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, err
	}
	pagination := &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: total}
	if pagination.Page < 1 {
		pagination.Page = 1
	}
	if pagination.PageSize <= 0 {
		pagination.PageSize = 50
	}
	return visitors, pagination, nil
}

// CheckIn logs a visitor arriving on campus.
func (s *VisitorService) CheckIn(ctx context.Context, req CheckInVisitorRequest) (*models.Visitor, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid visitor payload")
	}
	visitor := &models.Visitor{
		FullName:   req.FullName,
		Phone:      req.Phone,
		Purpose:    req.Purpose,
		HostName:   req.HostName,
		Department: req.Department,
	}
	stored, err := s.repo.Create(ctx, visitor)
	if err != nil {
		return nil, err
	}
	s.logger.Info("visitor checked in", zap.String("id", stored.ID), zap.String("host", stored.HostName))
	return stored, nil
}

// CheckOut logs a visitor leaving campus.
func (s *VisitorService) CheckOut(ctx context.Context, id string) (*models.Visitor, error) {
	if err := s.repo.CheckOut(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}
