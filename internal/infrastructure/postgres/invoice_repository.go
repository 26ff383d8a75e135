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

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

const invoiceColumns = `id, invoice_type, invoice_date,
	seller_ntn_cnic, seller_business_name, seller_province, seller_address,
	buyer_ntn_cnic, buyer_business_name, buyer_province, buyer_address, buyer_registration_type,
	invoice_ref_no, scenario_id, status, fbr_response, created_at, updated_at`

// InvoiceRepo implements the InvoiceRepository port over PostgreSQL.
type InvoiceRepo struct {
	pool *pgxpool.Pool
}

// NewInvoiceRepository builds the persistence adapter for invoices.
func NewInvoiceRepository(pool *pgxpool.Pool) *InvoiceRepo {
	return &InvoiceRepo{pool: pool}
}

// Create persists the invoice header and its items in one transaction.
func (r *InvoiceRepo) Create(inv *entity.Invoice, items []*entity.InvoiceItem) error {
	ctx := context.Background()
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	headerQuery := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err = tx.Exec(ctx, headerQuery,
		inv.ID, inv.InvoiceType, inv.InvoiceDate,
		inv.SellerNTNCNIC, inv.SellerBusinessName, inv.SellerProvince, inv.SellerAddress,
		inv.BuyerNTNCNIC, inv.BuyerBusinessName, inv.BuyerProvince, inv.BuyerAddress, inv.BuyerRegistrationType,
		inv.InvoiceRefNo, inv.ScenarioID, inv.Status, inv.FBRResponse, inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		return writeErr("insert invoice", err)
	}

	itemQuery := `
		INSERT INTO invoice_items (
			id, invoice_id, hs_code, product_description, rate, uom, quantity, total_values,
			value_sales_excluding_st, fixed_notified_value_or_retail_price,
			sales_tax_applicable, sales_tax_withheld_at_source, extra_tax, further_tax,
			fed_payable, discount, sale_type, sro_schedule_no, sro_item_serial_no
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	for _, it := range items {
		_, err = tx.Exec(ctx, itemQuery,
			it.ID, inv.ID, it.HSCode, it.ProductDescription, it.Rate, it.UoM, it.Quantity, it.TotalValues,
			it.ValueSalesExcludingST, it.FixedNotifiedValueOrRetailPrice,
			it.SalesTaxApplicable, it.SalesTaxWithheldAtSource, it.ExtraTax, it.FurtherTax,
			it.FEDPayable, it.Discount, it.SaleType, it.SROScheduleNo, it.SROItemSerialNo,
		)
		if err != nil {
			return fmt.Errorf("insert invoice item: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// GetByID fetches an invoice header by id.
func (r *InvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	return r.queryOne(`SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id)
}

// GetByRef fetches an invoice by reference number and seller NTN/CNIC.
func (r *InvoiceRepo) GetByRef(invoiceRefNo, sellerNTNCNIC string) (*entity.Invoice, error) {
	return r.queryOne(
		`SELECT `+invoiceColumns+` FROM invoices WHERE invoice_ref_no = $1 AND seller_ntn_cnic = $2`,
		invoiceRefNo, sellerNTNCNIC)
}

// GetItems fetches the items of an invoice.
func (r *InvoiceRepo) GetItems(invoiceID string) ([]*entity.InvoiceItem, error) {
	query := `
		SELECT id, invoice_id, hs_code, product_description, rate, uom, quantity, total_values,
		       value_sales_excluding_st, fixed_notified_value_or_retail_price,
		       sales_tax_applicable, sales_tax_withheld_at_source, extra_tax, further_tax,
		       fed_payable, discount, sale_type, sro_schedule_no, sro_item_serial_no
		FROM invoice_items WHERE invoice_id = $1 ORDER BY id`
	rows, err := r.pool.Query(context.Background(), query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("get invoice items: %w", err)
	}
	defer rows.Close()

	var list []*entity.InvoiceItem
	for rows.Next() {
		var it entity.InvoiceItem
		if err := rows.Scan(
			&it.ID, &it.InvoiceID, &it.HSCode, &it.ProductDescription, &it.Rate, &it.UoM, &it.Quantity, &it.TotalValues,
			&it.ValueSalesExcludingST, &it.FixedNotifiedValueOrRetailPrice,
			&it.SalesTaxApplicable, &it.SalesTaxWithheldAtSource, &it.ExtraTax, &it.FurtherTax,
			&it.FEDPayable, &it.Discount, &it.SaleType, &it.SROScheduleNo, &it.SROItemSerialNo,
		); err != nil {
			return nil, fmt.Errorf("scan invoice item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// Update persists status and gateway response after an FBR round trip.
func (r *InvoiceRepo) Update(inv *entity.Invoice) error {
	query := `
		UPDATE invoices SET status = $2, fbr_response = $3, updated_at = $4
		WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		inv.ID, inv.Status, inv.FBRResponse, inv.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}
	return nil
}

// List returns a page of invoice headers, newest first, plus the total count.
func (r *InvoiceRepo) List(limit, offset int) ([]*entity.Invoice, int, error) {
	var total int
	if err := r.pool.QueryRow(context.Background(), `SELECT COUNT(*) FROM invoices`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count invoices: %w", err)
	}

	query := `SELECT ` + invoiceColumns + ` FROM invoices ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, inv)
	}
	return list, total, rows.Err()
}

func (r *InvoiceRepo) queryOne(query string, args ...any) (*entity.Invoice, error) {
	row := r.pool.QueryRow(context.Background(), query, args...)
	inv, err := scanInvoice(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return inv, nil
}

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	err := row.Scan(
		&inv.ID, &inv.InvoiceType, &inv.InvoiceDate,
		&inv.SellerNTNCNIC, &inv.SellerBusinessName, &inv.SellerProvince, &inv.SellerAddress,
		&inv.BuyerNTNCNIC, &inv.BuyerBusinessName, &inv.BuyerProvince, &inv.BuyerAddress, &inv.BuyerRegistrationType,
		&inv.InvoiceRefNo, &inv.ScenarioID, &inv.Status, &inv.FBRResponse, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}
