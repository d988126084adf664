// Package types holds the JSON envelopes every casamar endpoint responds
// with: {"data": ...} on success, {"error": {...}} otherwise.
package types

type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the public error shape. Code is a pkg/errors code string;
// Details carries the rejection reason and field list when the code allows
// exposing them.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
