package errors

// ErrorResponse is the envelope every failed request renders:
// {"success": false, "error": {...}}
type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   ErrorDetail `json:"error"`
}

// ErrorDetail carries the caller-facing message (the first hint in the
// chain) and any reportable details attached by the builder
type ErrorDetail struct {
	Display string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}
