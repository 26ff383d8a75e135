package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice statuses relative to the FBR digital-invoicing gateway.
const (
	InvoiceStatusPending = "Pending" // saved locally, verdict outstanding
	InvoiceStatusValid   = "Valid"   // accepted by FBR
	InvoiceStatusInvalid = "Invalid" // rejected by FBR
)

// Sale types recognized by the FBR sandbox for invoice items.
var SaleTypes = []string{
	"Goods at standard rate (default)",
	"Standard Rate Unregistered",
	"Reduced Rate",
	"Exempt Sale",
	"Zero Rated",
	"Processing / Conversion",
	"FED in ST Mode",
	"Services FED in ST",
	"Services",
	"Goods under SRO 297(1)/2023",
}

// ValidSaleType reports whether s is one of the FBR sale types.
func ValidSaleType(s string) bool {
	for _, t := range SaleTypes {
		if t == s {
			return true
		}
	}
	return false
}

// Invoice is a sales tax invoice header. InvoiceRefNo is unique per seller
// NTN/CNIC; FBRResponse keeps the raw gateway payload for audit.
type Invoice struct {
	ID          string
	InvoiceType string
	InvoiceDate string // FBR expects the literal date string, not a timestamp

	SellerNTNCNIC      string
	SellerBusinessName string
	SellerProvince     string
	SellerAddress      string

	BuyerNTNCNIC          string
	BuyerBusinessName     string
	BuyerProvince         string
	BuyerAddress          string
	BuyerRegistrationType string

	InvoiceRefNo string
	ScenarioID   string

	Status      string
	FBRResponse []byte // raw JSON returned by the gateway, jsonb in storage

	CreatedAt time.Time
	UpdatedAt time.Time
}

// InvoiceItem is one line of an invoice. Monetary fields use decimal to keep
// tax arithmetic exact.
type InvoiceItem struct {
	ID        string
	InvoiceID string

	HSCode             string
	ProductDescription string
	Rate               string
	UoM                string
	Quantity           decimal.Decimal
	TotalValues        decimal.Decimal

	ValueSalesExcludingST           decimal.Decimal
	FixedNotifiedValueOrRetailPrice decimal.Decimal
	SalesTaxApplicable              decimal.Decimal
	SalesTaxWithheldAtSource        decimal.Decimal
	ExtraTax                        decimal.Decimal
	FurtherTax                      decimal.Decimal
	FEDPayable                      decimal.Decimal
	Discount                        decimal.Decimal

	SaleType        string
	SROScheduleNo   string
	SROItemSerialNo string
}
