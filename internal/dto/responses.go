package dto

import "github.com/ignatzorin/kerjaku-backend/internal/models"

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// SuccessResponse represents a standard success response
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// SessionResponse describes the browser context session state
type SessionResponse struct {
	Authenticated bool             `json:"authenticated"`
	User          *models.AuthUser `json:"user,omitempty"`
}

// ListResponse wraps a collection with its size
type ListResponse struct {
	Items interface{} `json:"items"`
	Total int         `json:"total"`
}
