package jobs

import (
	"context"
	"log"
	"time"

	"shopledger/internal/repositories"
	"shopledger/internal/services"

	"github.com/google/uuid"
)

// DefaultOverdueAfter is how long a repair may stay open before the scheduled
// check flags it.
const DefaultOverdueAfter = 30 * 24 * time.Hour

type RepairAlertService struct {
	repairService services.RepairService
	tenantRepo    repositories.TenantRepository
}

type RepairAlert struct {
	TenantID     uuid.UUID
	RepairID     uuid.UUID
	RepairNumber string
	Vendor       string
	DaysOpen     int
}

func NewRepairAlertService(repairService services.RepairService, tenantRepo repositories.TenantRepository) *RepairAlertService {
	return &RepairAlertService{
		repairService: repairService,
		tenantRepo:    tenantRepo,
	}
}

// CheckOverdue returns an alert for every repair of the tenant still open past
// the cutoff.
func (a *RepairAlertService) CheckOverdue(ctx context.Context, tenantID uuid.UUID, olderThan time.Duration) ([]RepairAlert, error) {
	if olderThan <= 0 {
		olderThan = DefaultOverdueAfter
	}

	repairs, err := a.repairService.ListOverdue(ctx, tenantID, olderThan)
	if err != nil {
		log.Printf("Failed to list overdue repairs for tenant %s: %v", tenantID.String(), err)
		return nil, err
	}

	var alerts []RepairAlert
	for _, repair := range repairs {
		vendor := ""
		if repair.Vendor != nil {
			vendor = *repair.Vendor
		}
		alerts = append(alerts, RepairAlert{
			TenantID:     tenantID,
			RepairID:     repair.ID,
			RepairNumber: repair.RepairNumber,
			Vendor:       vendor,
			DaysOpen:     int(time.Since(repair.CreatedAt).Hours() / 24),
		})
	}

	return alerts, nil
}

func (a *RepairAlertService) LogOverdueAlerts(ctx context.Context, alerts []RepairAlert) {
	if len(alerts) == 0 {
		return
	}

	log.Printf("Overdue repair alerts for tenant %s:", alerts[0].TenantID.String())
	for _, alert := range alerts {
		log.Printf("- Repair '%s' at vendor '%s' open for %d days",
			alert.RepairNumber,
			alert.Vendor,
			alert.DaysOpen)
	}
}

func (a *RepairAlertService) CheckAndLogOverdueAcrossAllTenants(ctx context.Context, olderThan time.Duration) error {
	tenants, err := a.tenantRepo.List(ctx, 1000, 0)
	if err != nil {
		log.Printf("Failed to list tenants for overdue repair check: %v", err)
		return err
	}

	for _, tenant := range tenants {
		alerts, err := a.CheckOverdue(ctx, tenant.ID, olderThan)
		if err != nil {
			// One tenant failing should not stop the sweep.
			continue
		}
		a.LogOverdueAlerts(ctx, alerts)
	}

	return nil
}

// Scheduled job to run every hour
func (a *RepairAlertService) ScheduledOverdueCheck(ctx context.Context) error {
	log.Println("Starting scheduled overdue repair check")

	err := a.CheckAndLogOverdueAcrossAllTenants(ctx, DefaultOverdueAfter)
	if err != nil {
		log.Printf("Scheduled overdue repair check failed: %v", err)
		return err
	}

	log.Println("Scheduled overdue repair check completed successfully")
	return nil
}
