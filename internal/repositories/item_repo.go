package repositories

import (
	"context"
	"errors"

	"shopledger/internal/models"

	"github.com/google/uuid"
)

// ErrVersionConflict is returned when an item write lost the optimistic
// concurrency check: another writer changed the item between the read that
// produced the snapshot and this write.
var ErrVersionConflict = errors.New("item version conflict")

type ItemRepository interface {
	Create(ctx context.Context, item *models.Item) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Item, error)
	GetWithHistory(ctx context.Context, tenantID, id uuid.UUID) (*models.Item, error)
	ListEvents(ctx context.Context, tenantID, itemID uuid.UUID) ([]*models.ItemEvent, error)
	AppendEvent(ctx context.Context, tenantID, itemID uuid.UUID, newStatus models.ItemStatus, expectedVersion int64, event *models.ItemEvent) error
	List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Item, error)
}

type itemRepo struct {
	db Database
}

func NewItemRepo(db Database) ItemRepository {
	return &itemRepo{db: db}
}

func (r *itemRepo) Create(ctx context.Context, item *models.Item) error {
	query := `
		INSERT INTO items (id, tenant_id, item_number, name, status, version, last_updated)
		VALUES ($1, $2, $3, $4, $5, 1, NOW())
	`
	_, err := r.db.Exec(ctx, query, item.ID, item.TenantID, item.ItemNumber, item.Name, item.Status)
	return err
}

func (r *itemRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Item, error) {
	item := &models.Item{}
	query := `
		SELECT id, tenant_id, item_number, name, status, version, last_updated
		FROM items
		WHERE tenant_id = $1 AND id = $2
	`
	err := r.db.QueryRow(ctx, query, tenantID, id).Scan(&item.ID, &item.TenantID, &item.ItemNumber, &item.Name, &item.Status, &item.Version, &item.LastUpdated)
	if err != nil {
		return nil, err
	}
	return item, nil
}

// GetWithHistory loads the item together with its full event history in replay
// order. The returned Version is the snapshot AppendEvent must be handed back
// for the optimistic concurrency check.
func (r *itemRepo) GetWithHistory(ctx context.Context, tenantID, id uuid.UUID) (*models.Item, error) {
	item, err := r.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	events, err := r.ListEvents(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	item.History = events
	return item, nil
}

func (r *itemRepo) ListEvents(ctx context.Context, tenantID, itemID uuid.UUID) ([]*models.ItemEvent, error) {
	query := `
		SELECT id, tenant_id, item_id, seq, date, action, user_name, item_received, received_from, repair_number, customer_name, comments, repair_cost, ref_doc
		FROM item_events
		WHERE tenant_id = $1 AND item_id = $2
		ORDER BY seq ASC
	`
	rows, err := r.db.Query(ctx, query, tenantID, itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*models.ItemEvent
	for rows.Next() {
		event := &models.ItemEvent{}
		if err := rows.Scan(&event.ID, &event.TenantID, &event.ItemID, &event.Seq, &event.Date, &event.Action, &event.User, &event.ItemReceived, &event.ReceivedFrom, &event.RepairNumber, &event.CustomerName, &event.Comments, &event.RepairCost, &event.RefDoc); err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, nil
}

// AppendEvent atomically sets the item's status and appends one event to its
// history. The status update is guarded by expectedVersion: if another writer
// got in first the whole transaction rolls back with ErrVersionConflict and no
// event is written, so history rows are only ever added, never clobbered.
func (r *itemRepo) AppendEvent(ctx context.Context, tenantID, itemID uuid.UUID, newStatus models.ItemStatus, expectedVersion int64, event *models.ItemEvent) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		UPDATE items
		SET status = $1, version = version + 1, last_updated = NOW()
		WHERE tenant_id = $2 AND id = $3 AND version = $4
	`, newStatus, tenantID, itemID, expectedVersion)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrVersionConflict
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO item_events (id, tenant_id, item_id, seq, date, action, user_name, item_received, received_from, repair_number, customer_name, comments, repair_cost, ref_doc)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`, event.ID, tenantID, itemID, event.Seq, event.Date, event.Action, event.User, event.ItemReceived, event.ReceivedFrom, event.RepairNumber, event.CustomerName, event.Comments, event.RepairCost, event.RefDoc)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *itemRepo) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Item, error) {
	query := `
		SELECT id, tenant_id, item_number, name, status, version, last_updated
		FROM items
		WHERE tenant_id = $1
		ORDER BY last_updated DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.Item
	for rows.Next() {
		item := &models.Item{}
		if err := rows.Scan(&item.ID, &item.TenantID, &item.ItemNumber, &item.Name, &item.Status, &item.Version, &item.LastUpdated); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
