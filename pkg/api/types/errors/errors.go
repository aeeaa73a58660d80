// Package errors defines the JSON shapes of error responses.
//
// The API speaks three envelopes, depending on who rejects the request:
// {"detail": ...} for auth, permission and routing rejections,
// {"errors": ...} (or the one-off {"error": ...}) for domain rejections,
// and {"field": ["message", ...]} for validation.
package errors

// Detail is the envelope of auth, permission and not-found errors.
type Detail struct {
	Detail string `json:"detail"`
}

// Errors is the envelope of domain rejections, like marking a favorite
// twice.
type Errors struct {
	Errors string `json:"errors"`
}

// Error is the envelope of a couple of endpoints that report with a
// singular key: avatar deletion without an avatar and shopping list
// download with an empty cart.
type Error struct {
	Error string `json:"error"`
}

// Fields maps field names to their validation messages.
//
// Errors not tied to a field go under "non_field_errors".
type Fields map[string][]string

const NonFieldErrors = "non_field_errors"
