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

var _ repository.PermissionRepository = (*PermissionRepo)(nil)

const permissionColumns = `id, key, name, description, category, resource, action, is_active, created_at, updated_at`

// PermissionRepo implements the PermissionRepository port over PostgreSQL.
type PermissionRepo struct {
	pool *pgxpool.Pool
}

// NewPermissionRepository builds the persistence adapter for the permission catalog.
func NewPermissionRepository(pool *pgxpool.Pool) *PermissionRepo {
	return &PermissionRepo{pool: pool}
}

// Create persists a new catalog entry.
func (r *PermissionRepo) Create(p *entity.Permission) error {
	query := `
		INSERT INTO permissions (` + permissionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.pool.Exec(context.Background(), query,
		p.ID, p.Key, p.Name, p.Description, p.Category, p.Resource, p.Action,
		p.IsActive, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return writeErr("insert permission", err)
	}
	return nil
}

// GetByID fetches a permission by id.
func (r *PermissionRepo) GetByID(id string) (*entity.Permission, error) {
	query := `SELECT ` + permissionColumns + ` FROM permissions WHERE id = $1`
	return r.queryOne(query, id)
}

// GetByResourceAction fetches a permission by its unique (resource, action) pair.
func (r *PermissionRepo) GetByResourceAction(resource, action string) (*entity.Permission, error) {
	query := `SELECT ` + permissionColumns + ` FROM permissions WHERE resource = $1 AND action = $2`
	return r.queryOne(query, resource, action)
}

// List returns the catalog in insertion order.
func (r *PermissionRepo) List(activeOnly bool) ([]*entity.Permission, error) {
	query := `SELECT ` + permissionColumns + ` FROM permissions`
	if activeOnly {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY created_at, key`
	rows, err := r.pool.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list permissions: %w", err)
	}
	defer rows.Close()
	return scanPermissions(rows)
}

// GetActiveByIDs resolves ids to active permissions only.
func (r *PermissionRepo) GetActiveByIDs(ids []string) ([]*entity.Permission, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT ` + permissionColumns + ` FROM permissions WHERE id = ANY($1) AND is_active`
	rows, err := r.pool.Query(context.Background(), query, ids)
	if err != nil {
		return nil, fmt.Errorf("get active permissions: %w", err)
	}
	defer rows.Close()
	return scanPermissions(rows)
}

// Update persists all mutable fields of a permission.
func (r *PermissionRepo) Update(p *entity.Permission) error {
	query := `
		UPDATE permissions
		SET name = $2, description = $3, category = $4, is_active = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		p.ID, p.Name, p.Description, p.Category, p.IsActive, p.UpdatedAt,
	)
	if err != nil {
		return writeErr("update permission", err)
	}
	return nil
}

func (r *PermissionRepo) queryOne(query string, args ...any) (*entity.Permission, error) {
	var p entity.Permission
	err := r.pool.QueryRow(context.Background(), query, args...).Scan(
		&p.ID, &p.Key, &p.Name, &p.Description, &p.Category, &p.Resource, &p.Action,
		&p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get permission: %w", err)
	}
	return &p, nil
}

func scanPermissions(rows pgx.Rows) ([]*entity.Permission, error) {
	var list []*entity.Permission
	for rows.Next() {
		var p entity.Permission
		if err := rows.Scan(
			&p.ID, &p.Key, &p.Name, &p.Description, &p.Category, &p.Resource, &p.Action,
			&p.IsActive, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan permission: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
