package models

import (
	"time"

	"github.com/google/uuid"
)

// Repair represents a repair job sent out to a vendor. A repair is open while
// ReturnDate is nil and closed once it is set; this package never reopens one.
type Repair struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	TenantID     uuid.UUID  `json:"tenant_id" db:"tenant_id"`
	RepairNumber string     `json:"repair_number" db:"repair_number"`
	ItemID       *uuid.UUID `json:"item_id,omitempty" db:"item_id"`
	Vendor       *string    `json:"vendor,omitempty" db:"vendor"`
	RepairCost   *float64   `json:"repair_cost,omitempty" db:"repair_cost"`
	RepairNotes  *string    `json:"repair_notes,omitempty" db:"repair_notes"`
	ReturnDate   *time.Time `json:"return_date,omitempty" db:"return_date"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}

// IsOpen reports whether the repair is still outstanding.
func (r *Repair) IsOpen() bool {
	return r.ReturnDate == nil
}
