package models

import "time"

// Article статья блога.
type Article struct {
	ID          string    `json:"id" yaml:"id"`
	Title       string    `json:"title" yaml:"title"`
	Slug        string    `json:"slug" yaml:"slug"`
	Excerpt     string    `json:"excerpt" yaml:"excerpt"`
	Body        string    `json:"body" yaml:"body"`
	Category    string    `json:"category" yaml:"category"`
	CoverURL    string    `json:"cover_url" yaml:"cover_url"`
	Author      string    `json:"author" yaml:"author"`
	PublishedAt time.Time `json:"published_at" yaml:"published_at"`
}

// FAQItem вопрос и ответ.
type FAQItem struct {
	ID       string `json:"id" yaml:"id"`
	Question string `json:"question" yaml:"question"`
	Answer   string `json:"answer" yaml:"answer"`
	Category string `json:"category" yaml:"category"`
	Order    int    `json:"order" yaml:"order"`
}

// SkillGroup группа категорий навыков для витрины.
type SkillGroup struct {
	ID     string          `json:"id" yaml:"id"`
	Name   string          `json:"name" yaml:"name"`
	Icon   string          `json:"icon" yaml:"icon"`
	Skills []SkillCategory `json:"skills" yaml:"skills"`
}

// Training обучающая программа.
type Training struct {
	ID          string    `json:"id" yaml:"id"`
	Title       string    `json:"title" yaml:"title"`
	Description string    `json:"description" yaml:"description"`
	Category    string    `json:"category" yaml:"category"`
	Provider    string    `json:"provider" yaml:"provider"`
	Location    string    `json:"location" yaml:"location"`
	Duration    string    `json:"duration" yaml:"duration"`
	Price       int64     `json:"price" yaml:"price"`
	StartDate   time.Time `json:"start_date" yaml:"start_date"`
}

// PageBlock блок контента статической страницы.
type PageBlock struct {
	ID      string `json:"id" yaml:"id"`
	Page    string `json:"page" yaml:"page"`
	Section string `json:"section" yaml:"section"`
	Title   string `json:"title" yaml:"title"`
	Body    string `json:"body" yaml:"body"`
}

// SiteSetting настройка сайта.
type SiteSetting struct {
	ID    string `json:"id" yaml:"id"`
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}
