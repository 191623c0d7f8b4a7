// Package dto provides data transfer objects for HTTP requests/responses
package dto

// ListQuery holds limit/offset query parameters for list endpoints
type ListQuery struct {
	Limit  int `form:"limit"`
	Offset int `form:"offset"`
}

// ListResponse is the paginated list response wrapper
type ListResponse[T any] struct {
	Data    []T   `json:"data"`
	Total   int64 `json:"total"`
	HasMore bool  `json:"has_more"`
}

// ErrorResponse is the error body returned by all endpoints
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
