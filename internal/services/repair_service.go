package services

import (
	"context"
	"time"

	"shopledger/internal/models"
	"shopledger/internal/repositories"

	"github.com/google/uuid"
)

type RepairService interface {
	Create(ctx context.Context, tenantID uuid.UUID, repair *models.Repair) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Repair, error)
	GetByNumber(ctx context.Context, tenantID uuid.UUID, repairNumber string) (*models.Repair, error)
	List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Repair, error)
	ListOpen(ctx context.Context, tenantID uuid.UUID) ([]*models.Repair, error)
	ListOverdue(ctx context.Context, tenantID uuid.UUID, olderThan time.Duration) ([]*models.Repair, error)
}

type repairService struct {
	repairRepo repositories.RepairRepository
}

func NewRepairService(repairRepo repositories.RepairRepository) RepairService {
	return &repairService{repairRepo: repairRepo}
}

// Create registers a repair as open. Closing happens only through the receive
// workflow; reopening is not supported here.
func (s *repairService) Create(ctx context.Context, tenantID uuid.UUID, repair *models.Repair) error {
	repair.TenantID = tenantID
	repair.ID = uuid.New()
	repair.ReturnDate = nil
	return s.repairRepo.Create(ctx, repair)
}

func (s *repairService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Repair, error) {
	return s.repairRepo.GetByID(ctx, tenantID, id)
}

func (s *repairService) GetByNumber(ctx context.Context, tenantID uuid.UUID, repairNumber string) (*models.Repair, error) {
	return s.repairRepo.GetByNumber(ctx, tenantID, repairNumber)
}

func (s *repairService) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Repair, error) {
	return s.repairRepo.List(ctx, tenantID, limit, offset)
}

func (s *repairService) ListOpen(ctx context.Context, tenantID uuid.UUID) ([]*models.Repair, error) {
	return s.repairRepo.ListOpen(ctx, tenantID, nil)
}

func (s *repairService) ListOverdue(ctx context.Context, tenantID uuid.UUID, olderThan time.Duration) ([]*models.Repair, error) {
	cutoff := time.Now().Add(-olderThan)
	return s.repairRepo.ListOpen(ctx, tenantID, &cutoff)
}
