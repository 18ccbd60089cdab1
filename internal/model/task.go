package model

import "time"

type Task struct {
	ID          string       `json:"id"`
	Text        string       `json:"text"`
	Completed   bool         `json:"completed"`
	Translation *Translation `json:"translation,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// Translation хранит только последний успешный перевод задачи
type Translation struct {
	Lang string `json:"lang"`
	Text string `json:"text"`
}

type Stats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
}
