package dto

// PageRequest pagination for listings (1-based page).
type PageRequest struct {
	Page  int `query:"page"`
	Limit int `query:"limit"`
}

// DefaultPage applies defaults when Page/Limit are unset.
func (p *PageRequest) DefaultPage() {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = 10
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
}

// Offset converts the 1-based page to a row offset.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// ErrorResponse HTTP error body. The optional fields carry authorization
// context: Required/Current on 403 responses, UserCount on blocked role
// deletion, Upstream the verbatim gateway payload on 502s. AuthzError
// payloads deliberately reveal required vs current — that helps a legitimate
// UI, unlike sign-in errors which stay uniform.
type ErrorResponse struct {
	Code      string   `json:"code"`
	Message   string   `json:"message"`
	Required  []string `json:"required,omitempty"`
	Current   string   `json:"current,omitempty"`
	UserCount *int     `json:"userCount,omitempty"`
	Upstream  string   `json:"upstream,omitempty"`
}
