package entity

import "time"

// Permission categories.
const (
	CategoryInvoices       = "invoices"
	CategoryReports        = "reports"
	CategoryUserManagement = "user_management"
	CategorySystem         = "system"
)

// Permission actions.
const (
	ActionCreate   = "create"
	ActionRead     = "read"
	ActionUpdate   = "update"
	ActionDelete   = "delete"
	ActionApprove  = "approve"
	ActionValidate = "validate"
	ActionExport   = "export"
)

// Permission is one entry of the admin-curated catalog. Key is the stable
// string checked at authorization time (e.g. "invoice.create"); the pair
// (Resource, Action) is unique across the catalog.
type Permission struct {
	ID          string
	Key         string
	Name        string
	Description string
	Category    string
	Resource    string
	Action      string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ValidCategory reports whether c is one of the known catalog categories.
func ValidCategory(c string) bool {
	switch c {
	case CategoryInvoices, CategoryReports, CategoryUserManagement, CategorySystem:
		return true
	}
	return false
}

// ValidAction reports whether a is one of the known permission actions.
func ValidAction(a string) bool {
	switch a {
	case ActionCreate, ActionRead, ActionUpdate, ActionDelete, ActionApprove, ActionValidate, ActionExport:
		return true
	}
	return false
}

// CategoryLabel holds the human label and description shown for a catalog
// category in grouped listings.
type CategoryLabel struct {
	Name        string
	Description string
}

// CategoryLabels is the fixed lookup table for grouped permission listings.
// Unknown categories fall back to the raw category string with an empty
// description.
var CategoryLabels = map[string]CategoryLabel{
	CategoryInvoices:       {Name: "Invoice Management", Description: "Create, edit, and manage invoices"},
	CategoryReports:        {Name: "Reports & Analytics", Description: "Access to reporting and analytics features"},
	CategoryUserManagement: {Name: "User Management", Description: "Manage users and their access"},
	CategorySystem:         {Name: "System Administration", Description: "System-level configuration and maintenance"},
}
