// Package billing implements the tax-invoice flows: registering invoice data
// with the FBR gateway, re-validating stored invoices and reading them back.
package billing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Muhammad-Ali1445/FBR-Invoice-Management-System/internal/application/dto"
	"github.com/Muhammad-Ali1445/FBR-Invoice-Management-System/internal/domain"
	"github.com/Muhammad-Ali1445/FBR-Invoice-Management-System/internal/domain/entity"
	"github.com/Muhammad-Ali1445/FBR-Invoice-Management-System/internal/domain/repository"
	"github.com/Muhammad-Ali1445/FBR-Invoice-Management-System/internal/infrastructure/fbr"
)

// InvoiceUseCase drives the invoice lifecycle. An invoice is saved locally
// BEFORE the gateway call so a gateway outage never loses data: the record
// simply stays Pending until a later validation settles it.
type InvoiceUseCase struct {
	invoiceRepo repository.InvoiceRepository
	gateway     fbr.Submitter
	log         zerolog.Logger
}

// NewInvoiceUseCase builds the invoice use case.
func NewInvoiceUseCase(invoiceRepo repository.InvoiceRepository, gateway fbr.Submitter, log zerolog.Logger) *InvoiceUseCase {
	return &InvoiceUseCase{invoiceRepo: invoiceRepo, gateway: gateway, log: log}
}

// Post validates and stores an invoice, then registers it with the FBR
// gateway. The stored status follows the gateway verdict: "Invalid" when the
// validation block says so, "Valid" otherwise. If the gateway call itself
// fails the invoice stays Pending and the upstream error is returned.
func (uc *InvoiceUseCase) Post(ctx context.Context, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if err := validateCreate(in); err != nil {
		return nil, err
	}

	if existing, err := uc.invoiceRepo.GetByRef(in.InvoiceRefNo, in.SellerNTNCNIC); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, fmt.Errorf("%w: invoice %s already registered for seller %s",
			domain.ErrConflict, in.InvoiceRefNo, in.SellerNTNCNIC)
	}

	now := time.Now()
	inv := &entity.Invoice{
		ID:          uuid.New().String(),
		InvoiceType: in.InvoiceType,
		InvoiceDate: in.InvoiceDate,

		SellerNTNCNIC:      in.SellerNTNCNIC,
		SellerBusinessName: in.SellerBusinessName,
		SellerProvince:     in.SellerProvince,
		SellerAddress:      in.SellerAddress,

		BuyerNTNCNIC:          in.BuyerNTNCNIC,
		BuyerBusinessName:     in.BuyerBusinessName,
		BuyerProvince:         in.BuyerProvince,
		BuyerAddress:          in.BuyerAddress,
		BuyerRegistrationType: in.BuyerRegistrationType,

		InvoiceRefNo: in.InvoiceRefNo,
		ScenarioID:   in.ScenarioID,

		Status:    entity.InvoiceStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	items := make([]*entity.InvoiceItem, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, &entity.InvoiceItem{
			ID:        uuid.New().String(),
			InvoiceID: inv.ID,

			HSCode:             it.HSCode,
			ProductDescription: it.ProductDescription,
			Rate:               it.Rate,
			UoM:                it.UoM,
			Quantity:           it.Quantity,
			TotalValues:        it.TotalValues,

			ValueSalesExcludingST:           it.ValueSalesExcludingST,
			FixedNotifiedValueOrRetailPrice: it.FixedNotifiedValueOrRetailPrice,
			SalesTaxApplicable:              it.SalesTaxApplicable,
			SalesTaxWithheldAtSource:        it.SalesTaxWithheldAtSource,
			ExtraTax:                        it.ExtraTax,
			FurtherTax:                      it.FurtherTax,
			FEDPayable:                      it.FEDPayable,
			Discount:                        it.Discount,

			SaleType:        it.SaleType,
			SROScheduleNo:   it.SROScheduleNo,
			SROItemSerialNo: it.SROItemSerialNo,
		})
	}

	if err := uc.invoiceRepo.Create(inv, items); err != nil {
		return nil, err
	}

	verdict, err := uc.gateway.PostInvoice(ctx, in)
	if err != nil {
		uc.log.Error().Err(err).
			Str("invoice_ref_no", inv.InvoiceRefNo).
			Str("fbr_raw_body", upstreamBody(err)).
			Msg("fbr post failed, invoice kept as Pending")
		return nil, err
	}

	inv.Status = statusFromVerdict(verdict, entity.InvoiceStatusValid)
	inv.FBRResponse = verdict.Raw
	inv.UpdatedAt = time.Now()
	if err := uc.invoiceRepo.Update(inv); err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("invoice_ref_no", inv.InvoiceRefNo).
		Str("status", inv.Status).
		Str("fbr_invoice_number", verdict.InvoiceNumber).
		Msg("invoice registered with FBR")

	resp := dto.ToInvoiceResponse(inv, items)
	return &resp, nil
}

// Validate re-submits a stored invoice for validation and settles its status.
// The stored gateway payload is merged rather than replaced: invoiceNumber
// and dated from the original registration survive a later validation that
// does not repeat them.
func (uc *InvoiceUseCase) Validate(ctx context.Context, in dto.ValidateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if in.InvoiceRefNo == "" || in.SellerNTNCNIC == "" {
		return nil, fmt.Errorf("%w: invoiceRefNo and sellerNTNCNIC are required", domain.ErrValidation)
	}

	inv, err := uc.invoiceRepo.GetByRef(in.InvoiceRefNo, in.SellerNTNCNIC)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.invoiceRepo.GetItems(inv.ID)
	if err != nil {
		return nil, err
	}

	verdict, err := uc.gateway.ValidateInvoice(ctx, buildPayload(inv, items))
	if err != nil {
		uc.log.Error().Err(err).
			Str("invoice_ref_no", inv.InvoiceRefNo).
			Str("fbr_raw_body", upstreamBody(err)).
			Msg("fbr validate failed")
		return nil, err
	}

	inv.Status = statusFromVerdict(verdict, entity.InvoiceStatusPending)
	inv.FBRResponse = mergeResponses(inv.FBRResponse, verdict.Raw)
	inv.UpdatedAt = time.Now()
	if err := uc.invoiceRepo.Update(inv); err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("invoice_ref_no", inv.InvoiceRefNo).
		Str("status", inv.Status).
		Msg("invoice re-validated with FBR")

	resp := dto.ToInvoiceResponse(inv, items)
	return &resp, nil
}

// GetByID returns one invoice with its items.
func (uc *InvoiceUseCase) GetByID(id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.invoiceRepo.GetItems(inv.ID)
	if err != nil {
		return nil, err
	}
	resp := dto.ToInvoiceResponse(inv, items)
	return &resp, nil
}

// List returns a page of invoice headers, newest first.
func (uc *InvoiceUseCase) List(page dto.PageRequest) (*dto.InvoiceListResponse, error) {
	page.DefaultPage()
	invoices, total, err := uc.invoiceRepo.List(page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	out := &dto.InvoiceListResponse{
		Invoices:    make([]dto.InvoiceResponse, 0, len(invoices)),
		Total:       total,
		TotalPages:  (total + page.Limit - 1) / page.Limit,
		CurrentPage: page.Page,
	}
	for _, inv := range invoices {
		out.Invoices = append(out.Invoices, dto.ToInvoiceResponse(inv, nil))
	}
	return out, nil
}

func validateCreate(in dto.CreateInvoiceRequest) error {
	switch {
	case in.InvoiceType == "" || in.InvoiceDate == "":
		return fmt.Errorf("%w: invoiceType and invoiceDate are required", domain.ErrValidation)
	case in.SellerNTNCNIC == "" || in.SellerBusinessName == "":
		return fmt.Errorf("%w: seller NTN/CNIC and business name are required", domain.ErrValidation)
	case in.InvoiceRefNo == "" || in.ScenarioID == "":
		return fmt.Errorf("%w: invoiceRefNo and scenarioId are required", domain.ErrValidation)
	case len(in.Items) == 0:
		return fmt.Errorf("%w: at least one invoice item is required", domain.ErrValidation)
	}
	for i, it := range in.Items {
		if it.HSCode == "" || it.ProductDescription == "" || it.Rate == "" || it.UoM == "" {
			return fmt.Errorf("%w: item %d is missing hsCode, productDescription, rate or uoM", domain.ErrValidation, i)
		}
		if !entity.ValidSaleType(it.SaleType) {
			return fmt.Errorf("%w: item %d has unknown saleType %q", domain.ErrValidation, i, it.SaleType)
		}
	}
	return nil
}

// statusFromVerdict maps a gateway verdict to a stored status. fallback is
// used when the gateway omits the validation block: post treats silence as
// acceptance, validate keeps the invoice Pending.
func statusFromVerdict(v *fbr.Verdict, fallback string) string {
	if v.Validation == nil {
		return fallback
	}
	switch v.Validation.Status {
	case "Valid":
		return entity.InvoiceStatusValid
	case "Invalid":
		return entity.InvoiceStatusInvalid
	default:
		return fallback
	}
}

// mergeResponses overlays the latest gateway payload onto the stored one so
// fields only present at registration time (invoiceNumber, dated) survive
// later validations.
func mergeResponses(stored, latest []byte) []byte {
	if len(stored) == 0 {
		return latest
	}
	var base, overlay map[string]json.RawMessage
	if err := json.Unmarshal(stored, &base); err != nil {
		return latest
	}
	if err := json.Unmarshal(latest, &overlay); err != nil {
		return latest
	}
	for k, v := range overlay {
		// The gateway echoes invoiceNumber/dated as null or "" on validate
		// responses; a blank echo must not wipe the stored registration stamp.
		if (k == "invoiceNumber" || k == "dated") && blankJSON(v) && !blankJSON(base[k]) {
			continue
		}
		base[k] = v
	}
	merged, err := json.Marshal(base)
	if err != nil {
		return latest
	}
	return merged
}

// blankJSON reports whether a raw JSON value is absent, null or an empty
// string.
func blankJSON(v json.RawMessage) bool {
	s := string(v)
	return len(v) == 0 || s == "null" || s == `""`
}

// upstreamBody extracts the verbatim gateway payload from a failed call for
// the audit log. Empty when the failure never produced a body.
func upstreamBody(err error) string {
	var upstream *domain.UpstreamError
	if errors.As(err, &upstream) {
		return upstream.RawBody
	}
	return ""
}

// buildPayload reconstructs the gateway wire shape from a stored invoice.
func buildPayload(inv *entity.Invoice, items []*entity.InvoiceItem) dto.CreateInvoiceRequest {
	out := dto.CreateInvoiceRequest{
		InvoiceType: inv.InvoiceType,
		InvoiceDate: inv.InvoiceDate,

		SellerNTNCNIC:      inv.SellerNTNCNIC,
		SellerBusinessName: inv.SellerBusinessName,
		SellerProvince:     inv.SellerProvince,
		SellerAddress:      inv.SellerAddress,

		BuyerNTNCNIC:          inv.BuyerNTNCNIC,
		BuyerBusinessName:     inv.BuyerBusinessName,
		BuyerProvince:         inv.BuyerProvince,
		BuyerAddress:          inv.BuyerAddress,
		BuyerRegistrationType: inv.BuyerRegistrationType,

		InvoiceRefNo: inv.InvoiceRefNo,
		ScenarioID:   inv.ScenarioID,
	}
	for _, it := range items {
		out.Items = append(out.Items, dto.InvoiceItemRequest{
			HSCode:             it.HSCode,
			ProductDescription: it.ProductDescription,
			Rate:               it.Rate,
			UoM:                it.UoM,
			Quantity:           it.Quantity,
			TotalValues:        it.TotalValues,

			ValueSalesExcludingST:           it.ValueSalesExcludingST,
			FixedNotifiedValueOrRetailPrice: it.FixedNotifiedValueOrRetailPrice,
			SalesTaxApplicable:              it.SalesTaxApplicable,
			SalesTaxWithheldAtSource:        it.SalesTaxWithheldAtSource,
			ExtraTax:                        it.ExtraTax,
			FurtherTax:                      it.FurtherTax,
			FEDPayable:                      it.FEDPayable,
			Discount:                        it.Discount,

			SaleType:        it.SaleType,
			SROScheduleNo:   it.SROScheduleNo,
			SROItemSerialNo: it.SROItemSerialNo,
		})
	}
	return out
}
