package models

import "time"

const (
	DefaultCategoryIcon  = "fa-solid fa-tag"
	DefaultCategoryColor = "#6366f1"
)

type Category struct {
	ID        int             `json:"id" db:"id"`
	Name      string          `json:"name" db:"name"`
	Type      TransactionType `json:"type" db:"type"`
	Icon      string          `json:"icon" db:"icon"`
	Color     string          `json:"color" db:"color"`
	CreatedAt time.Time       `json:"createdAt" db:"created_at"`
}
