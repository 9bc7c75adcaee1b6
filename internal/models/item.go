package models

import (
	"time"

	"github.com/google/uuid"
)

// ItemStatus is the visible lifecycle status of an inventory item.
type ItemStatus string

const (
	StatusInStock     ItemStatus = "In Stock"
	StatusSold        ItemStatus = "Sold"
	StatusMemo        ItemStatus = "Memo"
	StatusAtShow      ItemStatus = "At Show"
	StatusSalePending ItemStatus = "Sale Pending"
	StatusIncoming    ItemStatus = "Incoming"
	StatusDeleted     ItemStatus = "Deleted"
)

// Action tags recognized by status derivation. The vocabulary is open at the
// storage layer: any other tag is stored as-is and ignored on replay.
const (
	ActionSold         = "sold item"
	ActionReturned     = "item returned"
	ActionMemo         = "item memo"
	ActionReceived     = "received"
	ActionRepairPrefix = "in repair"
)

type Item struct {
	ID          uuid.UUID    `json:"id" db:"id"`
	TenantID    uuid.UUID    `json:"tenant_id" db:"tenant_id"`
	ItemNumber  string       `json:"item_number" db:"item_number"`
	Name        string       `json:"name" db:"name"`
	Status      ItemStatus   `json:"status" db:"status"`
	Version     int64        `json:"version" db:"version"`
	History     []*ItemEvent `json:"history,omitempty"`
	LastUpdated time.Time    `json:"last_updated" db:"last_updated"`
}

// ItemEvent is one entry in an item's append-only history. Seq is assigned on
// append and strictly increases per item; replay order follows Seq, never
// timestamps.
type ItemEvent struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	TenantID     uuid.UUID  `json:"tenant_id" db:"tenant_id"`
	ItemID       uuid.UUID  `json:"item_id" db:"item_id"`
	Seq          int        `json:"seq" db:"seq"`
	Date         time.Time  `json:"date" db:"date"`
	Action       string     `json:"action" db:"action"`
	User         *string    `json:"user,omitempty" db:"user_name"`
	ItemReceived *string    `json:"item_received,omitempty" db:"item_received"`
	ReceivedFrom *string    `json:"received_from,omitempty" db:"received_from"`
	RepairNumber *string    `json:"repair_number,omitempty" db:"repair_number"`
	CustomerName *string    `json:"customer_name,omitempty" db:"customer_name"`
	Comments     *string    `json:"comments,omitempty" db:"comments"`
	RepairCost   *float64   `json:"repair_cost,omitempty" db:"repair_cost"`
	RefDoc       *uuid.UUID `json:"ref_doc,omitempty" db:"ref_doc"`
}

// ItemSearchFilter holds search and filter criteria for item queries
type ItemSearchFilter struct {
	Query     string      `json:"query,omitempty"`
	Status    *ItemStatus `json:"status,omitempty"`
	SortBy    string      `json:"sort_by,omitempty"`    // Sort field: item_number, last_updated
	SortOrder string      `json:"sort_order,omitempty"` // Sort order: asc, desc
	Limit     int         `json:"limit,omitempty"`
	Offset    int         `json:"offset,omitempty"`
}
