package models

import (
	"time"

	"github.com/google/uuid"
)

// LogIn is the document recording one physical receiving event: who shipped it,
// which customer it relates to, and the packages/items inside.
type LogIn struct {
	ID           uuid.UUID        `json:"id" db:"id"`
	TenantID     uuid.UUID        `json:"tenant_id" db:"tenant_id"`
	Date         time.Time        `json:"date" db:"date"`
	ReceivedFrom *string          `json:"received_from,omitempty" db:"received_from"`
	CustomerName *string          `json:"customer_name,omitempty" db:"customer_name"`
	Comments     *string          `json:"comments,omitempty" db:"comments"`
	User         *string          `json:"user,omitempty" db:"user_name"`
	SearchText   string           `json:"-" db:"search_text"`
	LineItems    []*LogInLineItem `json:"line_items"`
	CreatedAt    time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at" db:"updated_at"`
}

// LogInLineItem identifies one received thing. ProductID and RepairID are both
// optional: a line item may correlate to a tracked item, a repair, both, or
// neither (a generic package).
type LogInLineItem struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	LogInID      uuid.UUID  `json:"log_in_id" db:"log_in_id"`
	ItemNumber   *string    `json:"item_number,omitempty" db:"item_number"`
	Name         string     `json:"name" db:"name"`
	ProductID    *uuid.UUID `json:"product_id,omitempty" db:"product_id"`
	RepairID     *uuid.UUID `json:"repair_id,omitempty" db:"repair_id"`
	RepairNumber *string    `json:"repair_number,omitempty" db:"repair_number"`
	RepairCost   *float64   `json:"repair_cost,omitempty" db:"repair_cost"`
}
