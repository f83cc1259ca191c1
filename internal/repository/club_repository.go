package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/campus-ops-api/internal/models"
	appErrors "github.com/noah-isme/campus-ops-api/pkg/errors"
)

// ClubRepository handles persistence for clubs and their memberships.
type ClubRepository struct {
	db *sqlx.DB
}

// NewClubRepository constructs the repository.
func NewClubRepository(db *sqlx.DB) *ClubRepository {
	return &ClubRepository{db: db}
}

// List returns clubs matching the filter.
func (r *ClubRepository) List(ctx context.Context, filter models.ClubFilter) ([]models.Club, int, error) {
	where := []string{"1=1"}
	args := []interface{}{}
	if filter.Department != "" {
		where = append(where, fmt.Sprintf("department = $%d", len(args)+1))
		args = append(args, filter.Department)
	}
	if filter.Active != nil {
		where = append(where, fmt.Sprintf("active = $%d", len(args)+1))
		args = append(args, *filter.Active)
	}
	if filter.Search != "" {
		where = append(where, fmt.Sprintf("name ILIKE $%d", len(args)+1))
		args = append(args, "%"+filter.Search+"%")
	}
	whereClause := strings.Join(where, " AND ")

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}

	query := fmt.Sprintf(`SELECT c.id, c.name, c.description, c.department, c.coordinator_id,
        (SELECT COUNT(*) FROM club_members m WHERE m.club_id = c.id) AS member_count,
        c.active, c.created_at, c.updated_at
        FROM clubs c WHERE %s ORDER BY c.name LIMIT %d OFFSET %d`, whereClause, size, (page-1)*size)
	var clubs []models.Club
	if err := r.db.SelectContext(ctx, &clubs, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list clubs: %w", err)
	}

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM clubs c WHERE %s", whereClause)
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count clubs: %w", err)
	}
	return clubs, total, nil
}

// Create inserts a new club.
func (r *ClubRepository) Create(ctx context.Context, club *models.Club) (*models.Club, error) {
	now := time.Now().UTC()
	if club.ID == "" {
		club.ID = uuid.NewString()
	}
	club.CreatedAt = now
	club.UpdatedAt = now

	query := `INSERT INTO clubs (id, name, description, department, coordinator_id, active, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id, name, description, department, coordinator_id, 0 AS member_count, active, created_at, updated_at`
	var stored models.Club
	err := r.db.GetContext(ctx, &stored, query,
		club.ID, club.Name, club.Description, club.Department, club.CoordinatorID, club.Active, club.CreatedAt, club.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create club: %w", err)
	}
	return &stored, nil
}

// AddMember enrolls a user into a club.
func (r *ClubRepository) AddMember(ctx context.Context, member *models.ClubMember) error {
	if member.ID == "" {
		member.ID = uuid.NewString()
	}
	if member.JoinedAt.IsZero() {
		member.JoinedAt = time.Now().UTC()
	}
	query := `INSERT INTO club_members (id, club_id, user_id, user_name, joined_at)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (club_id, user_id) DO NOTHING`
	if _, err := r.db.ExecContext(ctx, query, member.ID, member.ClubID, member.UserID, member.UserName, member.JoinedAt); err != nil {
		return fmt.Errorf("add club member: %w", err)
	}
	return nil
}

// ListMembers returns the membership roster of a club.
func (r *ClubRepository) ListMembers(ctx context.Context, clubID string) ([]models.ClubMember, error) {
	query := `SELECT id, club_id, user_id, user_name, joined_at FROM club_members WHERE club_id = $1 ORDER BY joined_at`
	var members []models.ClubMember
	if err := r.db.SelectContext(ctx, &members, query, clubID); err != nil {
		return nil, fmt.Errorf("list club members: %w", err)
	}
	return members, nil
}

// GetByID loads one club.
func (r *ClubRepository) GetByID(ctx context.Context, id string) (*models.Club, error) {
	query := `SELECT c.id, c.name, c.description, c.department, c.coordinator_id,
        (SELECT COUNT(*) FROM club_members m WHERE m.club_id = c.id) AS member_count,
        c.active, c.created_at, c.updated_at
        FROM clubs c WHERE c.id = $1`
	var club models.Club
	if err := r.db.GetContext(ctx, &club, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "club not found")
		}
		return nil, fmt.Errorf("get club: %w", err)
	}
	return &club, nil
}
