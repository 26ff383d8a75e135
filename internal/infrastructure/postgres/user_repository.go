package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Muhammad-Ali1445/FBR-Invoice-Management-System/internal/domain/entity"
	"github.com/Muhammad-Ali1445/FBR-Invoice-Management-System/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, fullname, email, password_hash, role_id, is_active, last_login, created_at, updated_at`

// UserRepo implements the UserRepository port over PostgreSQL.
type UserRepo struct {
	pool *pgxpool.Pool
}

// NewUserRepository builds the persistence adapter for user accounts.
func NewUserRepository(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

// Create persists a new user. Email is stored lower-cased.
func (r *UserRepo) Create(u *entity.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.pool.Exec(context.Background(), query,
		u.ID, u.FullName, strings.ToLower(u.Email), u.PasswordHash, u.RoleID,
		u.IsActive, u.LastLogin, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		return writeErr("insert user", err)
	}
	return nil
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	return r.queryOne(`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// GetByEmail fetches a user by email, case-insensitively.
func (r *UserRepo) GetByEmail(email string) (*entity.User, error) {
	return r.queryOne(`SELECT `+userColumns+` FROM users WHERE email = $1`, strings.ToLower(email))
}

// GetByFullName fetches a user by exact full name.
func (r *UserRepo) GetByFullName(fullname string) (*entity.User, error) {
	return r.queryOne(`SELECT `+userColumns+` FROM users WHERE fullname = $1`, fullname)
}

// Update persists all mutable fields of a user.
func (r *UserRepo) Update(u *entity.User) error {
	query := `
		UPDATE users
		SET fullname = $2, email = $3, password_hash = $4, role_id = $5, is_active = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		u.ID, u.FullName, strings.ToLower(u.Email), u.PasswordHash, u.RoleID, u.IsActive, u.UpdatedAt,
	)
	if err != nil {
		return writeErr("update user", err)
	}
	return nil
}

// UpdateLastLogin stamps the last successful authentication.
func (r *UserRepo) UpdateLastLogin(id string, at time.Time) error {
	_, err := r.pool.Exec(context.Background(),
		`UPDATE users SET last_login = $2 WHERE id = $1`, id, at)
	if err != nil {
		return fmt.Errorf("update last login: %w", err)
	}
	return nil
}

// List returns a page of users plus the total match count.
func (r *UserRepo) List(params repository.ListUsersParams) ([]*entity.User, int, error) {
	where := []string{"TRUE"}
	args := []any{}
	if params.ActiveOnly {
		where = append(where, "is_active")
	}
	if params.RoleID != "" {
		args = append(args, params.RoleID)
		where = append(where, fmt.Sprintf("role_id = $%d", len(args)))
	}
	if params.Search != "" {
		args = append(args, "%"+params.Search+"%")
		where = append(where, fmt.Sprintf("(fullname ILIKE $%d OR email ILIKE $%d)", len(args), len(args)))
	}
	cond := strings.Join(where, " AND ")

	var total int
	countQuery := `SELECT COUNT(*) FROM users WHERE ` + cond
	if err := r.pool.QueryRow(context.Background(), countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	args = append(args, params.Limit, params.Offset)
	query := fmt.Sprintf(`SELECT %s FROM users WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		userColumns, cond, len(args)-1, len(args))
	rows, err := r.pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var list []*entity.User
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(
			&u.ID, &u.FullName, &u.Email, &u.PasswordHash, &u.RoleID,
			&u.IsActive, &u.LastLogin, &u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, &u)
	}
	return list, total, rows.Err()
}

// CountActiveByRole counts active users referencing the role (the authoritative
// value behind the Role.UserCount cache).
func (r *UserRepo) CountActiveByRole(roleID string) (int, error) {
	var n int
	err := r.pool.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM users WHERE role_id = $1 AND is_active`, roleID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count users by role: %w", err)
	}
	return n, nil
}

// ReplaceOverrides swaps the user's override permission set wholesale.
func (r *UserRepo) ReplaceOverrides(userID string, permissionIDs []string) error {
	ctx := context.Background()
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM user_permissions WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("clear user permissions: %w", err)
	}
	for _, pid := range permissionIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO user_permissions (user_id, permission_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			userID, pid,
		); err != nil {
			return fmt.Errorf("insert user permission: %w", err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// GetOverrides resolves the user's override references, active or not.
func (r *UserRepo) GetOverrides(userID string) ([]*entity.Permission, error) {
	query := `
		SELECT p.id, p.key, p.name, p.description, p.category, p.resource, p.action,
		       p.is_active, p.created_at, p.updated_at
		FROM user_permissions up
		JOIN permissions p ON p.id = up.permission_id
		WHERE up.user_id = $1
		ORDER BY p.created_at, p.key`
	rows, err := r.pool.Query(context.Background(), query, userID)
	if err != nil {
		return nil, fmt.Errorf("get user permissions: %w", err)
	}
	defer rows.Close()
	return scanPermissions(rows)
}

func (r *UserRepo) queryOne(query string, args ...any) (*entity.User, error) {
	var u entity.User
	err := r.pool.QueryRow(context.Background(), query, args...).Scan(
		&u.ID, &u.FullName, &u.Email, &u.PasswordHash, &u.RoleID,
		&u.IsActive, &u.LastLogin, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}
