package models

import "time"

// Worker описывает профиль работника (исполнителя).
type Worker struct {
	ID              string          `json:"id" yaml:"id"`
	FullName        string          `json:"full_name" yaml:"full_name"`
	Phone           string          `json:"phone" yaml:"phone"`
	Location        string          `json:"location" yaml:"location"`
	Bio             string          `json:"bio" yaml:"bio"`
	ExperienceYears int             `json:"experience_years" yaml:"experience_years"`
	DailyRate       *int64          `json:"daily_rate,omitempty" yaml:"daily_rate,omitempty"`
	ProjectRate     *int64          `json:"project_rate,omitempty" yaml:"project_rate,omitempty"`
	AverageRating   float64         `json:"average_rating" yaml:"average_rating"`
	ReviewCount     int             `json:"review_count" yaml:"review_count"`
	CompletedJobs   int             `json:"completed_jobs" yaml:"completed_jobs"`
	Skills          []SkillCategory `json:"skills" yaml:"skills"`
	Portfolio       []PortfolioItem `json:"portfolio" yaml:"portfolio"`
	IsVerified      bool            `json:"is_verified" yaml:"is_verified"`
	IsAvailable     bool            `json:"is_available" yaml:"is_available"`
	CreatedAt       time.Time       `json:"created_at" yaml:"created_at"`
}

// HasSkill проверяет, есть ли у работника навык.
func (w Worker) HasSkill(skill SkillCategory) bool {
	for _, s := range w.Skills {
		if s == skill {
			return true
		}
	}
	return false
}

// PortfolioItem элемент портфолио работника.
type PortfolioItem struct {
	ID           string    `json:"id" yaml:"id"`
	MediaURL     string    `json:"media_url" yaml:"media_url"`
	ThumbnailURL string    `json:"thumbnail_url" yaml:"thumbnail_url"`
	Caption      string    `json:"caption" yaml:"caption"`
	Order        int       `json:"order" yaml:"order"`
	MediaType    MediaType `json:"media_type" yaml:"media_type"`
}

// SubRatings детальные оценки отзыва.
type SubRatings struct {
	Quality       *int `json:"quality,omitempty" yaml:"quality,omitempty"`
	Punctuality   *int `json:"punctuality,omitempty" yaml:"punctuality,omitempty"`
	Communication *int `json:"communication,omitempty" yaml:"communication,omitempty"`
}

// Review отзыв одного участника о другом.
type Review struct {
	ID           string     `json:"id" yaml:"id"`
	ReviewerID   string     `json:"reviewer_id" yaml:"reviewer_id"`
	ReviewerRole Role       `json:"reviewer_role" yaml:"reviewer_role"`
	ReviewerName string     `json:"reviewer_name" yaml:"reviewer_name"`
	RevieweeID   string     `json:"reviewee_id" yaml:"reviewee_id"`
	RevieweeRole Role       `json:"reviewee_role" yaml:"reviewee_role"`
	Rating       int        `json:"rating" yaml:"rating"`
	Ratings      SubRatings `json:"ratings" yaml:"ratings"`
	Comment      string     `json:"comment" yaml:"comment"`
	IsVerified   bool       `json:"is_verified" yaml:"is_verified"`
	CreatedAt    time.Time  `json:"created_at" yaml:"created_at"`
}
