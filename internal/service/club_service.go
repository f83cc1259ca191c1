package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-ops-api/internal/models"
	appErrors "github.com/noah-isme/campus-ops-api/pkg/errors"
)

type clubRepository interface {
	List(ctx context.Context, filter models.ClubFilter) ([]models.Club, int, error)
	Create(ctx context.Context, club *models.Club) (*models.Club, error)
	AddMember(ctx context.Context, member *models.ClubMember) error
	ListMembers(ctx context.Context, clubID string) ([]models.ClubMember, error)
	GetByID(ctx context.Context, id string) (*models.Club, error)
}

// ClubService handles clubs and memberships.
type ClubService struct {
	repo      clubRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewClubService constructs the service.
func NewClubService(repo clubRepository, validate *validator.Validate, logger *zap.Logger) *ClubService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClubService{repo: repo, validator: validate, logger: logger}
}

// CreateClubRequest describes a club creation payload.
type CreateClubRequest struct {
	Name          string `json:"name" validate:"required"`
	Description   string `json:"description"`
	Department    string `json:"department"`
	CoordinatorID string `json:"coordinator_id"`
}

// ClubListRequest describes club list filters.
type ClubListRequest struct {
	Department string `json:"department"`
	Active     *bool  `json:"active"`
	Search     string `json:"search"`
	Page       int    `json:"page"`
	PageSize   int    `json:"page_size"`
}

// List returns clubs with pagination.
func (s *ClubService) List(ctx context.Context, req ClubListRequest) ([]models.Club, *models.Pagination, error) {
	filter := models.ClubFilter{
		Department: req.Department,
		Active:     req.Active,
		Search:     req.Search,
		Page:       req.Page,
		PageSize:   req.PageSize,
	}
	clubs, total, err := s.repo.List(ctx, filter)
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
	return clubs, pagination, nil
}

// Create registers a new club.
func (s *ClubService) Create(ctx context.Context, req CreateClubRequest) (*models.Club, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid club payload")
	}
	club := &models.Club{
		Name:          req.Name,
		Description:   req.Description,
		Department:    req.Department,
		CoordinatorID: req.CoordinatorID,
		Active:        true,
	}
	stored, err := s.repo.Create(ctx, club)
	if err != nil {
		return nil, err
	}
	s.logger.Info("club created", zap.String("id", stored.ID), zap.String("name", stored.Name))
	return stored, nil
}

// Join enrolls the acting user into a club.
func (s *ClubService) Join(ctx context.Context, clubID string, actor *models.JWTClaims) ([]models.ClubMember, error) {
	if actor == nil {
		return nil, appErrors.ErrUnauthorized
	}
	if _, err := s.repo.GetByID(ctx, clubID); err != nil {
		return nil, err
	}
	member := &models.ClubMember{ClubID: clubID, UserID: actor.UserID, UserName: actor.FullName}
	if err := s.repo.AddMember(ctx, member); err != nil {
		return nil, err
	}
	return s.repo.ListMembers(ctx, clubID)
}

// Members lists a club's roster.
func (s *ClubService) Members(ctx context.Context, clubID string) ([]models.ClubMember, error) {
	if _, err := s.repo.GetByID(ctx, clubID); err != nil {
		return nil, err
	}
	return s.repo.ListMembers(ctx, clubID)
}
