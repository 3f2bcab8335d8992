package model

import "time"

// Template is a stored workbook whose placeholders were discovered by scanning.
type Template struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	ObjectKey    string    `json:"object_key"`
	Sheets       []string  `json:"sheets"`
	Placeholders []string  `json:"placeholders"`
	Size         int64     `json:"size"`
	CreatedAt    time.Time `json:"created_at"`
}
