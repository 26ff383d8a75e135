// Package pdf renders the printable representation of an FBR sales tax
// invoice using Maroto v2.
//
// A4 page layout:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Seller name + NTN/CNIC  │  Ref No + Date           │
//	│  ───────────────────────────────────────────────────────── │
//	│  SELLER: province / address                                  │
//	│  BUYER: name + NTN/CNIC + registration type                  │
//	│  ───────────────────────────────────────────────────────── │
//	│  TABLE: Qty | Description | HS Code | Excl. ST | ST | Total  │
//	│  ───────────────────────────────────────────────────────── │
//	│  TOTALS: Value excl. ST / Sales tax / TOTAL                  │
//	│  ───────────────────────────────────────────────────────── │
//	│  FBR FOOTER: FBR invoice number + QR + legal note            │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Muhammad-Ali1445/FBR-Invoice-Management-System/internal/domain/entity"
)

// ── Color palette ─────────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 90, Blue: 60}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implements billing.InvoicePDFGenerator using Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator builds the generator.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateInvoicePDF renders the PDF and returns its bytes.
func (g *MarotoPDFGenerator) GenerateInvoicePDF(
	_ context.Context,
	inv *entity.Invoice,
	items []*entity.InvoiceItem,
	fbrNumber, fbrDated string,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("FBR Sales Tax Invoice", true).
		WithAuthor(inv.SellerBusinessName, true).
		Build()

	m := maroto.New(cfg)

	// Main header
	m.AddRows(headerRow(inv))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(sellerRow(inv))
	m.AddRows(buyerRow(inv))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	// Items table
	m.AddRows(tableHeaderRow())
	for _, r := range tableItemRows(items) {
		m.AddRows(r)
	}

	// Totals
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(items))

	// FBR footer
	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	for _, r := range fbrFooterRows(fbrNumber, fbrDated) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate document: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Sections ──────────────────────────────────────────────────────────────────

// headerRow: seller name + NTN/CNIC (left), reference number + date (right).
func headerRow(inv *entity.Invoice) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(inv.SellerBusinessName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("NTN/CNIC: "+inv.SellerNTNCNIC, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("SALES TAX INVOICE", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(inv.InvoiceRefNo, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Date: "+inv.InvoiceDate, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// sellerRow: seller details.
func sellerRow(inv *entity.Invoice) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("SELLER", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Province: %s   |   Address: %s",
				nonEmpty(inv.SellerProvince, "—"),
				nonEmpty(inv.SellerAddress, "—"),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// buyerRow: buyer details.
func buyerRow(inv *entity.Invoice) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("BUYER", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(inv.BuyerBusinessName, "Unregistered buyer"), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("NTN/CNIC: %s   |   Registration: %s   |   Province: %s",
				nonEmpty(inv.BuyerNTNCNIC, "—"),
				nonEmpty(inv.BuyerRegistrationType, "—"),
				nonEmpty(inv.BuyerProvince, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: items table header.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Qty", 1, align.Center),
		h("Product / service description", 4, align.Left),
		h("HS Code", 2, align.Center),
		h("Excl. ST", 2, align.Right),
		h("Sales Tax", 1, align.Right),
		h("Total", 2, align.Right),
	)
}

// tableItemRows: one row per invoice line.
func tableItemRows(items []*entity.InvoiceItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				it.Quantity.StringFixed(0),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(4).Add(text.New(
				it.ProductDescription,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				it.HSCode,
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				"Rs "+formatMoney(it.ValueSalesExcludingST),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(1).Add(text.New(
				"Rs "+formatMoney(it.SalesTaxApplicable),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				"Rs "+formatMoney(it.TotalValues),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: totals block aligned right, summed over the items.
func totalsRow(items []*entity.InvoiceItem) core.Row {
	var excl, tax, total decimal.Decimal
	for _, it := range items {
		excl = excl.Add(it.ValueSalesExcludingST)
		tax = tax.Add(it.SalesTaxApplicable)
		total = total.Add(it.TotalValues)
	}

	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})
	}

	return row.New(26).Add(
		col.New(3), // left spacer
		col.New(3).Add(
			label("Value excl. ST:"),
			label("Sales tax:"),
			grandLabel("TOTAL:"),
		),
		col.New(3).Add(
			value("Rs "+formatMoney(excl)),
			value("Rs "+formatMoney(tax)),
			grandValue("Rs "+formatMoney(total)),
		),
		col.New(3), // right spacer
	)
}

// fbrFooterRows: FBR invoice number + QR code + legal note.
func fbrFooterRows(fbrNumber, fbrDated string) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("FBR DIGITAL INVOICING", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
	}

	if fbrNumber != "" {
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New("FBR Invoice Number: "+fbrNumber, props.Text{
				Style: fontstyle.Bold, Size: 7, Top: 1,
			}),
		)))
	}
	if fbrDated != "" {
		rows = append(rows, row.New(4).Add(col.New(12).Add(
			text.New("Registered: "+fbrDated, props.Text{
				Size: 6.5, Color: colorGray, Top: 0.5, Left: 2,
			}),
		)))
	}

	rows = append(rows, row.New(3))

	// QR + note
	if fbrNumber != "" {
		rows = append(rows, row.New(50).Add(
			col.New(4).Add(code.NewQr(fbrNumber, props.Rect{
				Percent: 95,
				Center:  true,
			})),
			col.New(8).Add(
				text.New("Scan the QR code to verify this\ninvoice with FBR.", props.Text{
					Size: 8, Top: 4, Left: 3, Color: colorGray,
				}),
				text.New("ELECTRONICALLY REGISTERED\nSALES TAX INVOICE", props.Text{
					Style: fontstyle.Bold, Size: 10, Top: 22,
					Left: 3, Color: colorPrimary,
				}),
			),
		))
	} else {
		rows = append(rows, row.New(10).Add(col.New(12).Add(
			text.New("ELECTRONICALLY REGISTERED SALES TAX INVOICE", props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Center,
				Color: colorPrimary, Top: 2,
			}),
		)))
	}

	// Legal note
	rows = append(rows, row.New(8).Add(col.New(12).Add(
		text.New(
			"This invoice was registered with the Federal Board of Revenue "+
				"digital invoicing system under the Sales Tax Act, 1990. "+
				"Keep this document as your fiscal record.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	)))

	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

var moneyPrinter = message.NewPrinter(language.English)

// formatMoney renders an amount rounded to whole rupees with thousands
// separators. Eg: 25000 → "25,000", 1000000 → "1,000,000"
func formatMoney(d decimal.Decimal) string {
	return moneyPrinter.Sprintf("%d", d.Round(0).IntPart())
}
