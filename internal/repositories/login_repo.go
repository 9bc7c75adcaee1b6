package repositories

import (
	"context"

	"shopledger/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type LogInRepository interface {
	Create(ctx context.Context, login *models.LogIn) error
	Update(ctx context.Context, login *models.LogIn) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.LogIn, error)
	List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.LogIn, error)
	Search(ctx context.Context, tenantID uuid.UUID, query string, limit, offset int) ([]*models.LogIn, error)
}

type logInRepo struct {
	db Database
}

func NewLogInRepo(db Database) LogInRepository {
	return &logInRepo{db: db}
}

// Create persists the log-in header and its line items in one transaction. The
// record is the source of truth for the receiving event; reconciliation of
// items and repairs happens afterwards and never rolls this back.
func (r *logInRepo) Create(ctx context.Context, login *models.LogIn) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO log_ins (id, tenant_id, date, received_from, customer_name, comments, user_name, search_text, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
	`, login.ID, login.TenantID, login.Date, login.ReceivedFrom, login.CustomerName, login.Comments, login.User, login.SearchText)
	if err != nil {
		return err
	}

	for pos, li := range login.LineItems {
		_, err = tx.Exec(ctx, `
			INSERT INTO log_in_line_items (id, log_in_id, position, item_number, name, product_id, repair_id, repair_number, repair_cost)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`, li.ID, login.ID, pos, li.ItemNumber, li.Name, li.ProductID, li.RepairID, li.RepairNumber, li.RepairCost)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// Update rewrites the header and replaces the line items wholesale.
func (r *logInRepo) Update(ctx context.Context, login *models.LogIn) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		UPDATE log_ins
		SET date = $1, received_from = $2, customer_name = $3, comments = $4, user_name = $5, search_text = $6, updated_at = NOW()
		WHERE tenant_id = $7 AND id = $8
	`, login.Date, login.ReceivedFrom, login.CustomerName, login.Comments, login.User, login.SearchText, login.TenantID, login.ID)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `DELETE FROM log_in_line_items WHERE log_in_id = $1`, login.ID)
	if err != nil {
		return err
	}

	for pos, li := range login.LineItems {
		_, err = tx.Exec(ctx, `
			INSERT INTO log_in_line_items (id, log_in_id, position, item_number, name, product_id, repair_id, repair_number, repair_cost)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`, li.ID, login.ID, pos, li.ItemNumber, li.Name, li.ProductID, li.RepairID, li.RepairNumber, li.RepairCost)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *logInRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.LogIn, error) {
	login := &models.LogIn{}
	query := `
		SELECT id, tenant_id, date, received_from, customer_name, comments, user_name, search_text, created_at, updated_at
		FROM log_ins
		WHERE tenant_id = $1 AND id = $2
	`
	err := r.db.QueryRow(ctx, query, tenantID, id).Scan(&login.ID, &login.TenantID, &login.Date, &login.ReceivedFrom, &login.CustomerName, &login.Comments, &login.User, &login.SearchText, &login.CreatedAt, &login.UpdatedAt)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, log_in_id, item_number, name, product_id, repair_id, repair_number, repair_cost
		FROM log_in_line_items
		WHERE log_in_id = $1
		ORDER BY position ASC
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		li := &models.LogInLineItem{}
		if err := rows.Scan(&li.ID, &li.LogInID, &li.ItemNumber, &li.Name, &li.ProductID, &li.RepairID, &li.RepairNumber, &li.RepairCost); err != nil {
			return nil, err
		}
		login.LineItems = append(login.LineItems, li)
	}
	return login, nil
}

func (r *logInRepo) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.LogIn, error) {
	query := `
		SELECT id, tenant_id, date, received_from, customer_name, comments, user_name, search_text, created_at, updated_at
		FROM log_ins
		WHERE tenant_id = $1
		ORDER BY date DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanLogIns(rows)
}

// Search matches against the precomputed lowercase search_text column.
func (r *logInRepo) Search(ctx context.Context, tenantID uuid.UUID, query string, limit, offset int) ([]*models.LogIn, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, tenant_id, date, received_from, customer_name, comments, user_name, search_text, created_at, updated_at
		FROM log_ins
		WHERE tenant_id = $1 AND search_text LIKE '%' || lower($2) || '%'
		ORDER BY date DESC
		LIMIT $3 OFFSET $4
	`, tenantID, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanLogIns(rows)
}

func scanLogIns(rows pgx.Rows) ([]*models.LogIn, error) {
	var logins []*models.LogIn
	for rows.Next() {
		login := &models.LogIn{}
		if err := rows.Scan(&login.ID, &login.TenantID, &login.Date, &login.ReceivedFrom, &login.CustomerName, &login.Comments, &login.User, &login.SearchText, &login.CreatedAt, &login.UpdatedAt); err != nil {
			return nil, err
		}
		logins = append(logins, login)
	}
	return logins, nil
}
