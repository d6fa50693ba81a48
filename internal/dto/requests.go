package dto

import "github.com/ignatzorin/kerjaku-backend/internal/models"

// RegisterRequest represents the registration form
type RegisterRequest struct {
	Name            string                 `json:"name"`
	Phone           string                 `json:"phone"`
	Email           string                 `json:"email"`
	Password        string                 `json:"password"`
	PasswordConfirm string                 `json:"password_confirm"`
	Role            models.Role            `json:"role"`
	CompanyName     string                 `json:"company_name"`
	Location        string                 `json:"location"`
	Skills          []models.SkillCategory `json:"skills"`
}

// LoginRequest represents the login form
type LoginRequest struct {
	Phone    string      `json:"phone"`
	Password string      `json:"password"`
	Role     models.Role `json:"role"`
}

// PostJobRequest represents a new job posting
type PostJobRequest struct {
	Title         string               `json:"title" binding:"required"`
	Description   string               `json:"description" binding:"required"`
	SkillCategory models.SkillCategory `json:"skill_category" binding:"required"`
	Location      string               `json:"location" binding:"required"`
	BudgetMin     int64                `json:"budget_min"`
	BudgetMax     int64                `json:"budget_max"`
	DurationType  models.DurationType  `json:"duration_type" binding:"required"`
	Requirements  []string             `json:"requirements"`
}

// UpdateJobStatusRequest represents the request to close or fill a job
type UpdateJobStatusRequest struct {
	Status models.JobStatus `json:"status" binding:"required"`
}

// ApplyRequest represents a worker application to a job
type ApplyRequest struct {
	Message string `json:"message"`
}

// CreateReviewRequest represents an employer review of a worker
type CreateReviewRequest struct {
	Rating  int               `json:"rating" binding:"required"`
	Ratings models.SubRatings `json:"ratings"`
	Comment string            `json:"comment"`
}

// AdminLoginRequest represents the admin login form
type AdminLoginRequest struct {
	Password string `json:"password" binding:"required"`
}
