// Package api holds the wire types shared by the take extraction service,
// the harvest runner and their clients.
package api

// ExtractRequest asks the service to run a take template over one
// document.
type ExtractRequest struct {
	// Template is take template source.
	Template string `json:"template"`
	// Document is the HTML to extract from.
	Document string `json:"document"`
	// BaseURL, when set, resolves relative URLs in the extracted data.
	BaseURL string `json:"base_url,omitempty"`
}

// ExtractResponse carries the output mapping of a successful extraction,
// flattened to plain JSON values.
type ExtractResponse struct {
	Data any `json:"data"`
}

// ExtractError describes a template compile fault.
type ExtractError struct {
	// Kind is the fault class: scan, token, directive or syntax.
	Kind string `json:"kind"`
	// Message is the human readable description.
	Message string `json:"message"`
	// Line locates the fault in template source, 1-based.
	Line int `json:"line"`
	// Column is 1-based. Zero means the fault has no column.
	Column int `json:"column,omitempty"`
}

// ErrorResponse is the body of any non-2xx service reply.
type ErrorResponse struct {
	Error ExtractError `json:"error"`
}
