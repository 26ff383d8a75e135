package billing

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Muhammad-Ali1445/FBR-Invoice-Management-System/internal/domain"
	"github.com/Muhammad-Ali1445/FBR-Invoice-Management-System/internal/domain/entity"
	"github.com/Muhammad-Ali1445/FBR-Invoice-Management-System/internal/domain/repository"
)

// InvoicePDFGenerator is the outbound port for rendering the printable
// invoice representation.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, inv *entity.Invoice, items []*entity.InvoiceItem, fbrNumber, fbrDated string) ([]byte, error)
}

// PDFUseCase renders the printable representation of a registered invoice.
// Only invoices already accepted by FBR (status Valid) can be exported; a
// Pending or Invalid invoice has no FBR invoice number to print.
type PDFUseCase struct {
	invoiceRepo repository.InvoiceRepository
	generator   InvoicePDFGenerator
}

// NewPDFUseCase builds the PDF use case.
func NewPDFUseCase(invoiceRepo repository.InvoiceRepository, generator InvoicePDFGenerator) *PDFUseCase {
	return &PDFUseCase{invoiceRepo: invoiceRepo, generator: generator}
}

// DownloadInvoicePDF loads the invoice with its items and renders the PDF.
// Returns (bytes, filename, nil) on success, domain.ErrNotFound when the
// invoice does not exist, and a validation error when it is not yet Valid.
func (uc *PDFUseCase) DownloadInvoicePDF(ctx context.Context, invoiceID string) ([]byte, string, error) {
	inv, err := uc.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: load invoice: %w", err)
	}
	if inv == nil {
		return nil, "", domain.ErrNotFound
	}
	if inv.Status != entity.InvoiceStatusValid {
		return nil, "", fmt.Errorf("%w: invoice is %s, only Valid invoices can be exported",
			domain.ErrValidation, inv.Status)
	}

	items, err := uc.invoiceRepo.GetItems(inv.ID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: load items: %w", err)
	}

	fbrNumber, fbrDated := fbrStamp(inv.FBRResponse)

	bytes, err := uc.generator.GenerateInvoicePDF(ctx, inv, items, fbrNumber, fbrDated)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generation failed: %w", err)
	}

	filename := fmt.Sprintf("invoice_%s.pdf", inv.InvoiceRefNo)
	return bytes, filename, nil
}

// fbrStamp pulls the FBR invoice number and registration date out of the
// stored gateway payload. Both are empty when the payload lacks them.
func fbrStamp(raw []byte) (number, dated string) {
	if len(raw) == 0 {
		return "", ""
	}
	var stamp struct {
		InvoiceNumber string `json:"invoiceNumber"`
		Dated         string `json:"dated"`
	}
	if err := json.Unmarshal(raw, &stamp); err != nil {
		return "", ""
	}
	return stamp.InvoiceNumber, stamp.Dated
}
