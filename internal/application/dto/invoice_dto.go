package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Muhammad-Ali1445/FBR-Invoice-Management-System/internal/domain/entity"
)

// InvoiceItemRequest one line of an invoice, in the field shapes the FBR
// gateway expects.
type InvoiceItemRequest struct {
	HSCode             string          `json:"hsCode" validate:"required"`
	ProductDescription string          `json:"productDescription" validate:"required"`
	Rate               string          `json:"rate" validate:"required"`
	UoM                string          `json:"uoM" validate:"required"`
	Quantity           decimal.Decimal `json:"quantity" validate:"required"`
	TotalValues        decimal.Decimal `json:"totalValues" validate:"required"`

	ValueSalesExcludingST           decimal.Decimal `json:"valueSalesExcludingST" validate:"required"`
	FixedNotifiedValueOrRetailPrice decimal.Decimal `json:"fixedNotifiedValueOrRetailPrice"`
	SalesTaxApplicable              decimal.Decimal `json:"salesTaxApplicable"`
	SalesTaxWithheldAtSource        decimal.Decimal `json:"salesTaxWithheldAtSource"`
	ExtraTax                        decimal.Decimal `json:"extraTax"`
	FurtherTax                      decimal.Decimal `json:"furtherTax"`
	FEDPayable                      decimal.Decimal `json:"fedPayable"`
	Discount                        decimal.Decimal `json:"discount"`

	SaleType        string `json:"saleType" validate:"required"`
	SROScheduleNo   string `json:"sroScheduleNo"`
	SROItemSerialNo string `json:"sroItemSerialNo"`
}

// CreateInvoiceRequest input for posting an invoice to the gateway.
type CreateInvoiceRequest struct {
	InvoiceType string `json:"invoiceType" validate:"required"`
	InvoiceDate string `json:"invoiceDate" validate:"required"`

	SellerNTNCNIC      string `json:"sellerNTNCNIC" validate:"required"`
	SellerBusinessName string `json:"sellerBusinessName" validate:"required"`
	SellerProvince     string `json:"sellerProvince"`
	SellerAddress      string `json:"sellerAddress"`

	BuyerNTNCNIC          string `json:"buyerNTNCNIC"`
	BuyerBusinessName     string `json:"buyerBusinessName"`
	BuyerProvince         string `json:"buyerProvince"`
	BuyerAddress          string `json:"buyerAddress"`
	BuyerRegistrationType string `json:"buyerRegistrationType"`

	InvoiceRefNo string `json:"invoiceRefNo" validate:"required"`
	ScenarioID   string `json:"scenarioId" validate:"required"`

	Items []InvoiceItemRequest `json:"items" validate:"required,min=1"`
}

// ValidateInvoiceRequest input for re-validating a registered invoice.
type ValidateInvoiceRequest struct {
	InvoiceRefNo  string `json:"invoiceRefNo" validate:"required"`
	SellerNTNCNIC string `json:"sellerNTNCNIC" validate:"required"`
}

// InvoiceItemResponse one resolved invoice line.
type InvoiceItemResponse struct {
	HSCode             string          `json:"hsCode"`
	ProductDescription string          `json:"productDescription"`
	Rate               string          `json:"rate"`
	UoM                string          `json:"uoM"`
	Quantity           decimal.Decimal `json:"quantity"`
	TotalValues        decimal.Decimal `json:"totalValues"`

	ValueSalesExcludingST           decimal.Decimal `json:"valueSalesExcludingST"`
	FixedNotifiedValueOrRetailPrice decimal.Decimal `json:"fixedNotifiedValueOrRetailPrice"`
	SalesTaxApplicable              decimal.Decimal `json:"salesTaxApplicable"`
	SalesTaxWithheldAtSource        decimal.Decimal `json:"salesTaxWithheldAtSource"`
	ExtraTax                        decimal.Decimal `json:"extraTax"`
	FurtherTax                      decimal.Decimal `json:"furtherTax"`
	FEDPayable                      decimal.Decimal `json:"fedPayable"`
	Discount                        decimal.Decimal `json:"discount"`

	SaleType        string `json:"saleType"`
	SROScheduleNo   string `json:"sroScheduleNo"`
	SROItemSerialNo string `json:"sroItemSerialNo"`
}

// InvoiceResponse output for one invoice, raw gateway payload included.
type InvoiceResponse struct {
	ID          string `json:"id"`
	InvoiceType string `json:"invoiceType"`
	InvoiceDate string `json:"invoiceDate"`

	SellerNTNCNIC      string `json:"sellerNTNCNIC"`
	SellerBusinessName string `json:"sellerBusinessName"`
	SellerProvince     string `json:"sellerProvince"`
	SellerAddress      string `json:"sellerAddress"`

	BuyerNTNCNIC          string `json:"buyerNTNCNIC"`
	BuyerBusinessName     string `json:"buyerBusinessName"`
	BuyerProvince         string `json:"buyerProvince"`
	BuyerAddress          string `json:"buyerAddress"`
	BuyerRegistrationType string `json:"buyerRegistrationType"`

	InvoiceRefNo string `json:"invoiceRefNo"`
	ScenarioID   string `json:"scenarioId"`

	Status      string                `json:"status"`
	FBRResponse json.RawMessage       `json:"fbrResponse,omitempty"`
	Items       []InvoiceItemResponse `json:"items,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// InvoiceListResponse paginated invoice listing.
type InvoiceListResponse struct {
	Invoices    []InvoiceResponse `json:"invoices"`
	Total       int               `json:"total"`
	TotalPages  int               `json:"totalPages"`
	CurrentPage int               `json:"currentPage"`
}

// ToInvoiceResponse maps an invoice entity and optional items.
func ToInvoiceResponse(inv *entity.Invoice, items []*entity.InvoiceItem) InvoiceResponse {
	resp := InvoiceResponse{
		ID:          inv.ID,
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

		Status:      inv.Status,
		FBRResponse: json.RawMessage(inv.FBRResponse),

		CreatedAt: inv.CreatedAt,
		UpdatedAt: inv.UpdatedAt,
	}
	for _, it := range items {
		resp.Items = append(resp.Items, InvoiceItemResponse{
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
	return resp
}
