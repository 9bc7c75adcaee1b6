package models

import (
	"time"

	"github.com/google/uuid"
)

// Per-line-item reconciliation statuses
const (
	LineItemReconciled   = "reconciled"
	LineItemLookupMissed = "lookup_missed"
	LineItemWriteFailed  = "write_failed"
	LineItemSkipped      = "skipped"
)

// LineItemOutcome is the result of reconciling a single log-in line item.
// Reconciliation is best-effort per line item: a failed outcome here never
// rolls back the log-in record itself.
type LineItemOutcome struct {
	ItemIndex      int         `json:"item_index"`
	LineItemID     string      `json:"line_item_id"`
	Status         string      `json:"status"`
	NewItemStatus  *ItemStatus `json:"new_item_status,omitempty"`
	RepairsClosed  int64       `json:"repairs_closed"`
	RepairsUpdated int64       `json:"repairs_updated"`
	Error          *string     `json:"error,omitempty"`
}

// ReconcileReport summarizes the reconciliation pass over one log-in record.
type ReconcileReport struct {
	LogInID        uuid.UUID         `json:"log_in_id"`
	Status         string            `json:"status"` // completed, partial
	TotalItems     int               `json:"total_items"`
	ProcessedItems int               `json:"processed_items"`
	FailedItems    int               `json:"failed_items"`
	SkippedItems   int               `json:"skipped_items"`
	StartTime      time.Time         `json:"start_time"`
	CompletionTime *time.Time        `json:"completion_time,omitempty"`
	Outcomes       []LineItemOutcome `json:"outcomes"`
}
