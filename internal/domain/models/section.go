package models

import (
	"time"
)

// Section is an ordered content block inside a proposal. Sections carry no
// owner of their own: ownership is derived transitively from the parent
// proposal's owner on every access.
//
// CreatedAt doubles as a "last saved" timestamp: the save path re-stamps it
// on updates. Renderers must tolerate duplicate or gapped order indices.
type Section struct {
	ID         string    `json:"id" db:"id"`
	ProposalID string    `json:"proposal_id" db:"proposal_id"`
	Type       *string   `json:"type,omitempty" db:"type"`
	OrderIndex int       `json:"order_index" db:"order_index"`
	Heading    *string   `json:"heading,omitempty" db:"heading"`
	Content    string    `json:"content" db:"content"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
