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

const visitorColumns = `id, full_name, phone, purpose, host_name, department, status, checked_in_at, checked_out_at, created_at, updated_at`

// VisitorRepository handles persistence for the visitor log.
type VisitorRepository struct {
	db *sqlx.DB
}

// NewVisitorRepository constructs the repository.
func NewVisitorRepository(db *sqlx.DB) *VisitorRepository {
	return &VisitorRepository{db: db}
}

// List returns visitor entries matching the filter, newest first.
func (r *VisitorRepository) List(ctx context.Context, filter models.VisitorFilter) ([]models.Visitor, int, error) {
	where := []string{"1=1"}
	args := []interface{}{}
	if filter.Status != nil {
		where = append(where, fmt.Sprintf("status = $%d", len(args)+1))
		args = append(args, *filter.Status)
	}
	if filter.Department != "" {
		where = append(where, fmt.Sprintf("department = $%d", len(args)+1))
		args = append(args, filter.Department)
	}
	if filter.Search != "" {
		where = append(where, fmt.Sprintf("(full_name ILIKE $%d OR phone ILIKE $%d)", len(args)+1, len(args)+1))
		args = append(args, "%"+filter.Search+"%")
	}
	if filter.DateFrom != nil {
		where = append(where, fmt.Sprintf("checked_in_at >= $%d", len(args)+1))
		args = append(args, *filter.DateFrom)
	}
	if filter.DateTo != nil {
		where = append(where, fmt.Sprintf("checked_in_at <= $%d", len(args)+1))
		args = append(args, *filter.DateTo)
	}
	whereClause := strings.Join(where, " AND ")

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 200 {
		size = 50
	}

	query := fmt.Sprintf(`SELECT %s FROM visitors WHERE %s ORDER BY checked_in_at DESC LIMIT %d OFFSET %d`,
		visitorColumns, whereClause, size, (page-1)*size)
	var visitors []models.Visitor
	if err := r.db.SelectContext(ctx, &visitors, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list visitors: %w", err)
	}

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM visitors WHERE %s", whereClause)
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count visitors: %w", err)
	}
	return visitors, total, nil
}

// Create inserts a checked-in visitor entry.
func (r *VisitorRepository) Create(ctx context.Context, visitor *models.Visitor) (*models.Visitor, error) {
	now := time.Now().UTC()
	if visitor.ID == "" {
		visitor.ID = uuid.NewString()
	}
	if visitor.CheckedInAt.IsZero() {
		visitor.CheckedInAt = now
	}
	visitor.Status = models.VisitorStatusCheckedIn
	visitor.CreatedAt = now
	visitor.UpdatedAt = now

	query := fmt.Sprintf(`INSERT INTO visitors (%s)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
        RETURNING %s`, visitorColumns, visitorColumns)
	var stored models.Visitor
	err := r.db.GetContext(ctx, &stored, query,
		visitor.ID, visitor.FullName, visitor.Phone, visitor.Purpose, visitor.HostName, visitor.Department,
		visitor.Status, visitor.CheckedInAt, visitor.CheckedOutAt, visitor.CreatedAt, visitor.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create visitor: %w", err)
	}
	return &stored, nil
}

// CheckOut marks a visitor as having left campus.
func (r *VisitorRepository) CheckOut(ctx context.Context, id string) error {
	query := `UPDATE visitors SET status = $1, checked_out_at = $2, updated_at = $2
        WHERE id = $3 AND status = $4`
	result, err := r.db.ExecContext(ctx, query, models.VisitorStatusCheckedOut, time.Now().UTC(), id, models.VisitorStatusCheckedIn)
	if err != nil {
		return fmt.Errorf("check out visitor: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check out visitor rows: %w", err)
	}
	if affected == 0 {
		return appErrors.Clone(appErrors.ErrPreconditionFailed, "visitor already checked out or unknown")
	}
	return nil
}

// GetByID loads one visitor entry.
func (r *VisitorRepository) GetByID(ctx context.Context, id string) (*models.Visitor, error) {
	query := fmt.Sprintf(`SELECT %s FROM visitors WHERE id = $1`, visitorColumns)
	var visitor models.Visitor
	if err := r.db.GetContext(ctx, &visitor, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "visitor not found")
		}
		return nil, fmt.Errorf("get visitor: %w", err)
	}
	return &visitor, nil
}
