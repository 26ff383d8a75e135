package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Muhammad-Ali1445/FBR-Invoice-Management-System/internal/domain/entity"
	"github.com/Muhammad-Ali1445/FBR-Invoice-Management-System/internal/domain/repository"
)

var _ repository.RoleRepository = (*RoleRepo)(nil)

const roleColumns = `id, name, description, icon, color, is_active, user_count, created_at, updated_at`

// RoleRepo implements the RoleRepository port over PostgreSQL.
type RoleRepo struct {
	pool *pgxpool.Pool
}

// NewRoleRepository builds the persistence adapter for roles.
func NewRoleRepository(pool *pgxpool.Pool) *RoleRepo {
	return &RoleRepo{pool: pool}
}

// Create persists a new role.
func (r *RoleRepo) Create(role *entity.Role) error {
	query := `
		INSERT INTO roles (` + roleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.pool.Exec(context.Background(), query,
		role.ID, role.Name, role.Description, role.Icon, role.Color,
		role.IsActive, role.UserCount, role.CreatedAt, role.UpdatedAt,
	)
	if err != nil {
		return writeErr("insert role", err)
	}
	return nil
}

// GetByID fetches a role by id.
func (r *RoleRepo) GetByID(id string) (*entity.Role, error) {
	return r.queryOne(`SELECT `+roleColumns+` FROM roles WHERE id = $1`, id)
}

// GetByName fetches a role by its exact name (case-sensitive).
func (r *RoleRepo) GetByName(name string) (*entity.Role, error) {
	return r.queryOne(`SELECT `+roleColumns+` FROM roles WHERE name = $1`, name)
}

// List returns roles ordered by name.
func (r *RoleRepo) List(activeOnly bool) ([]*entity.Role, error) {
	query := `SELECT ` + roleColumns + ` FROM roles`
	if activeOnly {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY name`
	rows, err := r.pool.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()
	var list []*entity.Role
	for rows.Next() {
		var role entity.Role
		if err := rows.Scan(
			&role.ID, &role.Name, &role.Description, &role.Icon, &role.Color,
			&role.IsActive, &role.UserCount, &role.CreatedAt, &role.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		list = append(list, &role)
	}
	return list, rows.Err()
}

// Update persists all mutable fields of a role.
func (r *RoleRepo) Update(role *entity.Role) error {
	query := `
		UPDATE roles
		SET name = $2, description = $3, icon = $4, color = $5, is_active = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		role.ID, role.Name, role.Description, role.Icon, role.Color, role.IsActive, role.UpdatedAt,
	)
	if err != nil {
		return writeErr("update role", err)
	}
	return nil
}

// Delete removes the role row and its join rows in one transaction.
func (r *RoleRepo) Delete(id string) error {
	ctx := context.Background()
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM role_permissions WHERE role_id = $1`, id); err != nil {
		return fmt.Errorf("delete role permissions: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM roles WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete role: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// ReplacePermissions swaps the role's permission set wholesale (delete + insert).
func (r *RoleRepo) ReplacePermissions(roleID string, permissionIDs []string) error {
	ctx := context.Background()
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM role_permissions WHERE role_id = $1`, roleID); err != nil {
		return fmt.Errorf("clear role permissions: %w", err)
	}
	for _, pid := range permissionIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO role_permissions (role_id, permission_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			roleID, pid,
		); err != nil {
			return fmt.Errorf("insert role permission: %w", err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// GetPermissions resolves the role's permission references, active or not.
func (r *RoleRepo) GetPermissions(roleID string) ([]*entity.Permission, error) {
	query := `
		SELECT p.id, p.key, p.name, p.description, p.category, p.resource, p.action,
		       p.is_active, p.created_at, p.updated_at
		FROM role_permissions rp
		JOIN permissions p ON p.id = rp.permission_id
		WHERE rp.role_id = $1
		ORDER BY p.created_at, p.key`
	rows, err := r.pool.Query(context.Background(), query, roleID)
	if err != nil {
		return nil, fmt.Errorf("get role permissions: %w", err)
	}
	defer rows.Close()
	return scanPermissions(rows)
}

// SetUserCount writes the cached membership count.
func (r *RoleRepo) SetUserCount(roleID string, count int) error {
	_, err := r.pool.Exec(context.Background(),
		`UPDATE roles SET user_count = $2 WHERE id = $1`, roleID, count)
	if err != nil {
		return fmt.Errorf("set user count: %w", err)
	}
	return nil
}

func (r *RoleRepo) queryOne(query string, args ...any) (*entity.Role, error) {
	var role entity.Role
	err := r.pool.QueryRow(context.Background(), query, args...).Scan(
		&role.ID, &role.Name, &role.Description, &role.Icon, &role.Color,
		&role.IsActive, &role.UserCount, &role.CreatedAt, &role.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get role: %w", err)
	}
	return &role, nil
}
