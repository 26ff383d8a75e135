package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schemaDDL bootstraps the schema. Idempotent: every statement is
// IF NOT EXISTS, so cmd/seed can run it on every start.
//
// References (role->permissions, user->role, user->permissions) are plain id
// columns resolved by explicit joins; no ON DELETE CASCADE, the application
// owns the reference checks.
const schemaDDL = `
CREATE TABLE IF NOT EXISTS permissions (
	id          UUID PRIMARY KEY,
	key         TEXT NOT NULL UNIQUE,
	name        TEXT NOT NULL UNIQUE,
	description TEXT NOT NULL DEFAULT '',
	category    TEXT NOT NULL,
	resource    TEXT NOT NULL,
	action      TEXT NOT NULL,
	is_active   BOOLEAN NOT NULL DEFAULT TRUE,
	created_at  TIMESTAMPTZ NOT NULL,
	updated_at  TIMESTAMPTZ NOT NULL,
	UNIQUE (resource, action)
);

CREATE TABLE IF NOT EXISTS roles (
	id          UUID PRIMARY KEY,
	name        TEXT NOT NULL UNIQUE,
	description TEXT NOT NULL DEFAULT '',
	icon        TEXT NOT NULL DEFAULT '',
	color       TEXT NOT NULL DEFAULT '',
	is_active   BOOLEAN NOT NULL DEFAULT TRUE,
	user_count  INTEGER NOT NULL DEFAULT 0,
	created_at  TIMESTAMPTZ NOT NULL,
	updated_at  TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS role_permissions (
	role_id       UUID NOT NULL REFERENCES roles(id),
	permission_id UUID NOT NULL REFERENCES permissions(id),
	PRIMARY KEY (role_id, permission_id)
);

CREATE TABLE IF NOT EXISTS users (
	id            UUID PRIMARY KEY,
	fullname      TEXT NOT NULL UNIQUE,
	email         TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	role_id       UUID NOT NULL REFERENCES roles(id),
	is_active     BOOLEAN NOT NULL DEFAULT TRUE,
	last_login    TIMESTAMPTZ,
	created_at    TIMESTAMPTZ NOT NULL,
	updated_at    TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_users_role_active ON users (role_id) WHERE is_active;

CREATE TABLE IF NOT EXISTS user_permissions (
	user_id       UUID NOT NULL REFERENCES users(id),
	permission_id UUID NOT NULL REFERENCES permissions(id),
	PRIMARY KEY (user_id, permission_id)
);

CREATE TABLE IF NOT EXISTS invoices (
	id                      UUID PRIMARY KEY,
	invoice_type            TEXT NOT NULL,
	invoice_date            TEXT NOT NULL,
	seller_ntn_cnic         TEXT NOT NULL,
	seller_business_name    TEXT NOT NULL,
	seller_province         TEXT NOT NULL DEFAULT '',
	seller_address          TEXT NOT NULL DEFAULT '',
	buyer_ntn_cnic          TEXT NOT NULL DEFAULT '',
	buyer_business_name     TEXT NOT NULL DEFAULT '',
	buyer_province          TEXT NOT NULL DEFAULT '',
	buyer_address           TEXT NOT NULL DEFAULT '',
	buyer_registration_type TEXT NOT NULL DEFAULT '',
	invoice_ref_no          TEXT NOT NULL,
	scenario_id             TEXT NOT NULL,
	status                  TEXT NOT NULL DEFAULT 'Pending',
	fbr_response            JSONB,
	created_at              TIMESTAMPTZ NOT NULL,
	updated_at              TIMESTAMPTZ NOT NULL,
	UNIQUE (invoice_ref_no, seller_ntn_cnic)
);

CREATE TABLE IF NOT EXISTS invoice_items (
	id                   UUID PRIMARY KEY,
	invoice_id           UUID NOT NULL REFERENCES invoices(id),
	hs_code              TEXT NOT NULL,
	product_description  TEXT NOT NULL,
	rate                 TEXT NOT NULL,
	uom                  TEXT NOT NULL,
	quantity             NUMERIC NOT NULL,
	total_values         NUMERIC NOT NULL,
	value_sales_excluding_st NUMERIC NOT NULL,
	fixed_notified_value_or_retail_price NUMERIC NOT NULL DEFAULT 0,
	sales_tax_applicable NUMERIC NOT NULL DEFAULT 0,
	sales_tax_withheld_at_source NUMERIC NOT NULL DEFAULT 0,
	extra_tax            NUMERIC NOT NULL DEFAULT 0,
	further_tax          NUMERIC NOT NULL DEFAULT 0,
	fed_payable          NUMERIC NOT NULL DEFAULT 0,
	discount             NUMERIC NOT NULL DEFAULT 0,
	sale_type            TEXT NOT NULL,
	sro_schedule_no      TEXT NOT NULL DEFAULT '',
	sro_item_serial_no   TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_invoice_items_invoice ON invoice_items (invoice_id);
`

// EnsureSchema applies the bootstrap DDL.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schemaDDL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
