// Package dto provides Data Transfer Objects for API requests and responses.
package dto

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// DeleteBatchRequest carries the ids for a bulk delete.
type DeleteBatchRequest struct {
	IDs []int64 `json:"ids"`
}
