package models

import (
	"time"
)

// Proposal is a business proposal owned by exactly one user. Ownership is
// immutable after creation; every read and write is scoped to the owner.
type Proposal struct {
	ID             string    `json:"id" db:"id"`
	UserID         string    `json:"user_id" db:"user_id"`
	Title          string    `json:"title" db:"title"`
	ClientName     *string   `json:"client_name,omitempty" db:"client_name"`
	ProjectName    *string   `json:"project_name,omitempty" db:"project_name"`
	Currency       *string   `json:"currency,omitempty" db:"currency"`
	EstimatedValue *float64  `json:"estimated_value,omitempty" db:"estimated_value"`
	Status         *string   `json:"status,omitempty" db:"status"`
	Notes          *string   `json:"notes,omitempty" db:"notes"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}
