package repository

import "github.com/Muhammad-Ali1445/FBR-Invoice-Management-System/internal/domain/entity"

// InvoiceRepository defines the persistence port for invoices and their items.
type InvoiceRepository interface {
	Create(inv *entity.Invoice, items []*entity.InvoiceItem) error
	GetByID(id string) (*entity.Invoice, error)
	// GetByRef looks an invoice up by its reference number scoped to a seller
	// NTN/CNIC (the pair is unique).
	GetByRef(invoiceRefNo, sellerNTNCNIC string) (*entity.Invoice, error)
	GetItems(invoiceID string) ([]*entity.InvoiceItem, error)
	// Update persists status and fbr_response after a gateway round trip.
	Update(inv *entity.Invoice) error
	List(limit, offset int) ([]*entity.Invoice, int, error)
}
