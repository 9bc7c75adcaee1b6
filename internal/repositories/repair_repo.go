package repositories

import (
	"context"
	"time"

	"shopledger/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type RepairRepository interface {
	Create(ctx context.Context, repair *models.Repair) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Repair, error)
	GetByNumber(ctx context.Context, tenantID uuid.UUID, repairNumber string) (*models.Repair, error)
	List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Repair, error)
	ListOpen(ctx context.Context, tenantID uuid.UUID, sentBefore *time.Time) ([]*models.Repair, error)
	CloseOnReceive(ctx context.Context, tenantID uuid.UUID, repairID, itemID *uuid.UUID, repairCost *float64, repairNotes *string) (int64, error)
	UpdateCostAndNotes(ctx context.Context, tenantID, repairID uuid.UUID, repairCost *float64, repairNotes *string) (int64, error)
}

type repairRepo struct {
	db Database
}

func NewRepairRepo(db Database) RepairRepository {
	return &repairRepo{db: db}
}

func (r *repairRepo) Create(ctx context.Context, repair *models.Repair) error {
	query := `
		INSERT INTO repairs (id, tenant_id, repair_number, item_id, vendor, repair_cost, repair_notes, return_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULL, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, repair.ID, repair.TenantID, repair.RepairNumber, repair.ItemID, repair.Vendor, repair.RepairCost, repair.RepairNotes)
	return err
}

func (r *repairRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Repair, error) {
	repair := &models.Repair{}
	query := `
		SELECT id, tenant_id, repair_number, item_id, vendor, repair_cost, repair_notes, return_date, created_at, updated_at
		FROM repairs
		WHERE tenant_id = $1 AND id = $2
	`
	err := r.db.QueryRow(ctx, query, tenantID, id).Scan(&repair.ID, &repair.TenantID, &repair.RepairNumber, &repair.ItemID, &repair.Vendor, &repair.RepairCost, &repair.RepairNotes, &repair.ReturnDate, &repair.CreatedAt, &repair.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return repair, nil
}

func (r *repairRepo) GetByNumber(ctx context.Context, tenantID uuid.UUID, repairNumber string) (*models.Repair, error) {
	repair := &models.Repair{}
	query := `
		SELECT id, tenant_id, repair_number, item_id, vendor, repair_cost, repair_notes, return_date, created_at, updated_at
		FROM repairs
		WHERE tenant_id = $1 AND repair_number = $2
	`
	err := r.db.QueryRow(ctx, query, tenantID, repairNumber).Scan(&repair.ID, &repair.TenantID, &repair.RepairNumber, &repair.ItemID, &repair.Vendor, &repair.RepairCost, &repair.RepairNotes, &repair.ReturnDate, &repair.CreatedAt, &repair.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return repair, nil
}

func (r *repairRepo) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Repair, error) {
	query := `
		SELECT id, tenant_id, repair_number, item_id, vendor, repair_cost, repair_notes, return_date, created_at, updated_at
		FROM repairs
		WHERE tenant_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRepairs(rows)
}

// ListOpen returns outstanding repairs (return_date still NULL), optionally
// only those sent out before the given cutoff.
func (r *repairRepo) ListOpen(ctx context.Context, tenantID uuid.UUID, sentBefore *time.Time) ([]*models.Repair, error) {
	query := `
		SELECT id, tenant_id, repair_number, item_id, vendor, repair_cost, repair_notes, return_date, created_at, updated_at
		FROM repairs
		WHERE tenant_id = $1 AND return_date IS NULL AND ($2::timestamptz IS NULL OR created_at < $2)
		ORDER BY created_at ASC
	`
	rows, err := r.db.Query(ctx, query, tenantID, sentBefore)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRepairs(rows)
}

// CloseOnReceive closes every open repair matching the line item's repair id
// OR its item id. The OR-match is deliberate: several open repairs can
// reference the same item and a single receive closes all of them, not just
// the most recent. Zero rows affected is a valid silent outcome, which also
// makes closing an already-closed repair a no-op.
func (r *repairRepo) CloseOnReceive(ctx context.Context, tenantID uuid.UUID, repairID, itemID *uuid.UUID, repairCost *float64, repairNotes *string) (int64, error) {
	query := `
		UPDATE repairs
		SET return_date = NOW(), repair_cost = $1, repair_notes = $2, updated_at = NOW()
		WHERE tenant_id = $3
		  AND return_date IS NULL
		  AND (($4::uuid IS NOT NULL AND id = $4) OR ($5::uuid IS NOT NULL AND item_id = $5))
	`
	tag, err := r.db.Exec(ctx, query, repairCost, repairNotes, tenantID, repairID, itemID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// UpdateCostAndNotes is the edit-time rule: it matches by repair id only (no
// item-id fallback) and never touches return_date. Narrower than
// CloseOnReceive on purpose; do not unify the two without product
// confirmation.
func (r *repairRepo) UpdateCostAndNotes(ctx context.Context, tenantID, repairID uuid.UUID, repairCost *float64, repairNotes *string) (int64, error) {
	query := `
		UPDATE repairs
		SET repair_cost = $1, repair_notes = $2, updated_at = NOW()
		WHERE tenant_id = $3 AND id = $4
	`
	tag, err := r.db.Exec(ctx, query, repairCost, repairNotes, tenantID, repairID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func scanRepairs(rows pgx.Rows) ([]*models.Repair, error) {
	var repairs []*models.Repair
	for rows.Next() {
		repair := &models.Repair{}
		if err := rows.Scan(&repair.ID, &repair.TenantID, &repair.RepairNumber, &repair.ItemID, &repair.Vendor, &repair.RepairCost, &repair.RepairNotes, &repair.ReturnDate, &repair.CreatedAt, &repair.UpdatedAt); err != nil {
			return nil, err
		}
		repairs = append(repairs, repair)
	}
	return repairs, nil
}
