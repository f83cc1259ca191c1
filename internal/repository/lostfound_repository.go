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

const lostFoundColumns = `id, title, description, location, reported_by, status, claimed_by, claimed_at, reported_at, created_at, updated_at`

// LostFoundRepository handles persistence for lost & found items.
type LostFoundRepository struct {
	db *sqlx.DB
}

// NewLostFoundRepository constructs the repository.
func NewLostFoundRepository(db *sqlx.DB) *LostFoundRepository {
	return &LostFoundRepository{db: db}
}

// List returns items matching the filter, newest first.
func (r *LostFoundRepository) List(ctx context.Context, filter models.LostFoundFilter) ([]models.LostFoundItem, int, error) {
	where := []string{"1=1"}
	args := []interface{}{}
	if filter.Status != nil {
		where = append(where, fmt.Sprintf("status = $%d", len(args)+1))
		args = append(args, *filter.Status)
	}
	if filter.Search != "" {
		where = append(where, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d)", len(args)+1, len(args)+1))
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

	query := fmt.Sprintf(`SELECT %s FROM lost_found_items WHERE %s ORDER BY reported_at DESC LIMIT %d OFFSET %d`,
		lostFoundColumns, whereClause, size, (page-1)*size)
	var items []models.LostFoundItem
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list lost-found items: %w", err)
	}

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM lost_found_items WHERE %s", whereClause)
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count lost-found items: %w", err)
	}
	return items, total, nil
}

// Create inserts a newly reported item.
func (r *LostFoundRepository) Create(ctx context.Context, item *models.LostFoundItem) (*models.LostFoundItem, error) {
	now := time.Now().UTC()
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.ReportedAt.IsZero() {
		item.ReportedAt = now
	}
	item.Status = models.LostFoundStatusOpen
	item.CreatedAt = now
	item.UpdatedAt = now

	query := fmt.Sprintf(`INSERT INTO lost_found_items (%s)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
        RETURNING %s`, lostFoundColumns, lostFoundColumns)
	var stored models.LostFoundItem
	err := r.db.GetContext(ctx, &stored, query,
		item.ID, item.Title, item.Description, item.Location, item.ReportedBy,
		item.Status, item.ClaimedBy, item.ClaimedAt, item.ReportedAt, item.CreatedAt, item.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create lost-found item: %w", err)
	}
	return &stored, nil
}

// Claim marks an open item as claimed by a user.
func (r *LostFoundRepository) Claim(ctx context.Context, id, userID string) error {
	query := `UPDATE lost_found_items SET status = $1, claimed_by = $2, claimed_at = $3, updated_at = $3
        WHERE id = $4 AND status = $5`
	result, err := r.db.ExecContext(ctx, query, models.LostFoundStatusClaimed, userID, time.Now().UTC(), id, models.LostFoundStatusOpen)
	if err != nil {
		return fmt.Errorf("claim lost-found item: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("claim lost-found item rows: %w", err)
	}
	if affected == 0 {
		return appErrors.Clone(appErrors.ErrPreconditionFailed, "item already claimed or unknown")
	}
	return nil
}

// GetByID loads one item.
func (r *LostFoundRepository) GetByID(ctx context.Context, id string) (*models.LostFoundItem, error) {
	query := fmt.Sprintf(`SELECT %s FROM lost_found_items WHERE id = $1`, lostFoundColumns)
	var item models.LostFoundItem
	if err := r.db.GetContext(ctx, &item, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "item not found")
		}
		return nil, fmt.Errorf("get lost-found item: %w", err)
	}
	return &item, nil
}
