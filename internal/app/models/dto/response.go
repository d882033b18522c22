package dto

import "time"

// APIResponse is the success envelope returned by every endpoint
type APIResponse struct {
	Success   bool        `json:"success" example:"true"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp" example:"2025-04-23T12:01:05.123Z"`
}

// NewSuccessResponse wraps data in the success envelope
func NewSuccessResponse(data interface{}) APIResponse {
	return APIResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UTC(),
	}
}

// PageResponse is the data shape of every paginated endpoint
type PageResponse[T any] struct {
	Items []T   `json:"items"`
	Page  int   `json:"page" example:"1"`
	Limit int   `json:"limit" example:"10"`
	Total int64 `json:"total" example:"42"`
}

// NewPageResponse builds a page, never rendering items as null
func NewPageResponse[T any](items []T, page, limit int, total int64) PageResponse[T] {
	if items == nil {
		items = []T{}
	}
	return PageResponse[T]{Items: items, Page: page, Limit: limit, Total: total}
}

// MessageResponse is returned by endpoints with nothing else to report
type MessageResponse struct {
	Message string `json:"message" example:"Program deleted"`
}

// PaginationQuery carries the shared page/limit query parameters.
// Zero values fall back to the configured defaults.
type PaginationQuery struct {
	Page  int `form:"page" binding:"omitempty,min=1" example:"1"`
	Limit int `form:"limit" binding:"omitempty,min=1" example:"10"`
}
