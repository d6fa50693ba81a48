package models

import "time"

// JobPosting вакансия работодателя.
type JobPosting struct {
	ID            string        `json:"id" yaml:"id"`
	EmployerID    string        `json:"employer_id" yaml:"employer_id"`
	EmployerName  string        `json:"employer_name" yaml:"employer_name"`
	EmployerLogo  string        `json:"employer_logo" yaml:"employer_logo"`
	Title         string        `json:"title" yaml:"title"`
	Description   string        `json:"description" yaml:"description"`
	SkillCategory SkillCategory `json:"skill_category" yaml:"skill_category"`
	Location      string        `json:"location" yaml:"location"`
	BudgetMin     int64         `json:"budget_min" yaml:"budget_min"`
	BudgetMax     int64         `json:"budget_max" yaml:"budget_max"`
	DurationType  DurationType  `json:"duration_type" yaml:"duration_type"`
	Requirements  []string      `json:"requirements" yaml:"requirements"`
	Status        JobStatus     `json:"status" yaml:"status"`
	Applications  int           `json:"applications" yaml:"applications"`
	CreatedAt     time.Time     `json:"created_at" yaml:"created_at"`
}

// Application отклик работника на вакансию.
type Application struct {
	ID           string    `json:"id" yaml:"id"`
	JobID        string    `json:"job_id" yaml:"job_id"`
	WorkerUserID string    `json:"worker_user_id" yaml:"worker_user_id"`
	WorkerName   string    `json:"worker_name" yaml:"worker_name"`
	Phone        string    `json:"phone" yaml:"phone"`
	Message      string    `json:"message" yaml:"message"`
	CreatedAt    time.Time `json:"created_at" yaml:"created_at"`
}
