package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/campus-ops-api/internal/models"
	appErrors "github.com/noah-isme/campus-ops-api/pkg/errors"
)

// UserRepository reads user profiles and class rosters.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository constructs the repository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByID loads a user profile.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT id, email, full_name, role, department, roll_number, class, year, section, active, created_at, updated_at
        FROM users WHERE id = $1`
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

// ListRoster returns the ids of active students within a class scope.
func (r *UserRepository) ListRoster(ctx context.Context, scope models.ClassScope) ([]string, error) {
	where := []string{"role = $1", "active = TRUE"}
	args := []interface{}{models.RoleStudent}
	if scope.Year != "" {
		where = append(where, fmt.Sprintf("year = $%d", len(args)+1))
		args = append(args, scope.Year)
	}
	if scope.Division != "" {
		where = append(where, fmt.Sprintf("section = $%d", len(args)+1))
		args = append(args, scope.Division)
	}
	if scope.Department != "" {
		where = append(where, fmt.Sprintf("department = $%d", len(args)+1))
		args = append(args, scope.Department)
	}

	query := fmt.Sprintf(`SELECT id FROM users WHERE %s ORDER BY full_name`, strings.Join(where, " AND "))
	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query, args...); err != nil {
		return nil, fmt.Errorf("list roster: %w", err)
	}
	return ids, nil
}
