package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"shopledger/internal/caching"
	"shopledger/internal/models"
	"shopledger/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	// Retries for the optimistic write when a concurrent log-in touched the
	// same item between our read and our write.
	maxReceiveRetries = 3

	// Each line item is reconciled under its own deadline so one stuck write
	// cannot starve the rest of the record.
	lineItemTimeout = 10 * time.Second
)

// ReconcileService runs the receive workflow for a log-in record: append a
// received event to each referenced item, store its re-derived status, and
// close or update correlated repairs. The record itself is persisted first;
// everything after is best-effort per line item and reported in the
// ReconcileReport rather than failing the request.
type ReconcileService interface {
	CreateLogIn(ctx context.Context, tenantID uuid.UUID, login *models.LogIn) (*models.ReconcileReport, error)
	UpdateLogIn(ctx context.Context, tenantID uuid.UUID, login *models.LogIn) (*models.ReconcileReport, error)
}

type reconcileService struct {
	logInRepo  repositories.LogInRepository
	itemRepo   repositories.ItemRepository
	repairRepo repositories.RepairRepository
	cacheSvc   caching.CacheService

	mu        sync.Mutex
	itemLocks map[uuid.UUID]*sync.Mutex
}

func NewReconcileService(logInRepo repositories.LogInRepository, itemRepo repositories.ItemRepository, repairRepo repositories.RepairRepository, cacheSvc caching.CacheService) ReconcileService {
	return &reconcileService{
		logInRepo:  logInRepo,
		itemRepo:   itemRepo,
		repairRepo: repairRepo,
		cacheSvc:   cacheSvc,
		itemLocks:  make(map[uuid.UUID]*sync.Mutex),
	}
}

// itemLock returns the mutex owning all receive writes for one item id. All
// mutations for a given item funnel through it, so two concurrent log-ins
// naming the same item serialize instead of racing the read-modify-write.
func (s *reconcileService) itemLock(itemID uuid.UUID) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.itemLocks[itemID]
	if !ok {
		lock = &sync.Mutex{}
		s.itemLocks[itemID] = lock
	}
	return lock
}

func (s *reconcileService) CreateLogIn(ctx context.Context, tenantID uuid.UUID, login *models.LogIn) (*models.ReconcileReport, error) {
	login.TenantID = tenantID
	login.ID = uuid.New()
	if login.Date.IsZero() {
		login.Date = time.Now()
	}
	for _, li := range login.LineItems {
		li.ID = uuid.New()
		li.LogInID = login.ID
	}
	login.SearchText = buildSearchText(login)

	if err := s.logInRepo.Create(ctx, login); err != nil {
		return nil, err
	}

	report := &models.ReconcileReport{
		LogInID:    login.ID,
		Status:     "processing",
		TotalItems: len(login.LineItems),
		StartTime:  time.Now(),
		Outcomes:   []models.LineItemOutcome{},
	}

	// Line items reconcile strictly in array order; a failure is recorded and
	// the loop moves on.
	for i, li := range login.LineItems {
		outcome := s.reconcileLineItem(ctx, tenantID, login, i, li)
		s.tally(report, outcome)
	}

	finishReport(report)
	return report, nil
}

// UpdateLogIn applies the edit-time pass: the header and line items are
// rewritten, then repairs explicitly referenced by repair id get their cost
// and notes refreshed. No item status is re-derived on edit, and return dates
// are never touched.
func (s *reconcileService) UpdateLogIn(ctx context.Context, tenantID uuid.UUID, login *models.LogIn) (*models.ReconcileReport, error) {
	login.TenantID = tenantID
	for _, li := range login.LineItems {
		if li.ID == uuid.Nil {
			li.ID = uuid.New()
		}
		li.LogInID = login.ID
	}
	login.SearchText = buildSearchText(login)

	if err := s.logInRepo.Update(ctx, login); err != nil {
		return nil, err
	}

	report := &models.ReconcileReport{
		LogInID:    login.ID,
		Status:     "processing",
		TotalItems: len(login.LineItems),
		StartTime:  time.Now(),
		Outcomes:   []models.LineItemOutcome{},
	}

	for i, li := range login.LineItems {
		outcome := models.LineItemOutcome{
			ItemIndex:  i,
			LineItemID: li.ID.String(),
			Status:     models.LineItemSkipped,
		}
		if li.RepairID != nil {
			liCtx, cancel := context.WithTimeout(ctx, lineItemTimeout)
			updated, err := s.repairRepo.UpdateCostAndNotes(liCtx, tenantID, *li.RepairID, li.RepairCost, login.Comments)
			cancel()
			if err != nil {
				log.Printf("Failed to update repair %s for log-in %s: %v", li.RepairID.String(), login.ID.String(), err)
				outcome.Status = models.LineItemWriteFailed
				msg := err.Error()
				outcome.Error = &msg
			} else {
				// Zero repairs updated is a valid silent outcome.
				outcome.Status = models.LineItemReconciled
				outcome.RepairsUpdated = updated
			}
		}
		s.tally(report, outcome)
	}

	finishReport(report)
	return report, nil
}

// reconcileLineItem applies the receive effects for one line item: item
// status derivation and event append first, then repair closure. Errors are
// caught here, at the line-item boundary.
func (s *reconcileService) reconcileLineItem(ctx context.Context, tenantID uuid.UUID, login *models.LogIn, idx int, li *models.LogInLineItem) models.LineItemOutcome {
	outcome := models.LineItemOutcome{
		ItemIndex:  idx,
		LineItemID: li.ID.String(),
		Status:     models.LineItemSkipped,
	}

	// Nothing to correlate; valid for generic packages with no inventory tie.
	if li.ProductID == nil && li.RepairID == nil {
		return outcome
	}

	ctx, cancel := context.WithTimeout(ctx, lineItemTimeout)
	defer cancel()

	if li.ProductID != nil {
		newStatus, err := s.receiveItem(ctx, tenantID, login, li)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				log.Printf("Item %s referenced by log-in %s not found, skipping line item %d", li.ProductID.String(), login.ID.String(), idx)
				outcome.Status = models.LineItemLookupMissed
			} else {
				log.Printf("Failed to receive item %s for log-in %s: %v", li.ProductID.String(), login.ID.String(), err)
				outcome.Status = models.LineItemWriteFailed
			}
			msg := err.Error()
			outcome.Error = &msg
			return outcome
		}
		outcome.Status = models.LineItemReconciled
		outcome.NewItemStatus = &newStatus
	}

	// Close-on-receive runs whenever the line item carries a repair id or a
	// product id, using the edit-time comments.
	closed, err := s.repairRepo.CloseOnReceive(ctx, tenantID, li.RepairID, li.ProductID, li.RepairCost, login.Comments)
	if err != nil {
		log.Printf("Failed to close repairs for log-in %s line item %d: %v", login.ID.String(), idx, err)
		outcome.Status = models.LineItemWriteFailed
		msg := err.Error()
		outcome.Error = &msg
		return outcome
	}
	outcome.RepairsClosed = closed
	outcome.Status = models.LineItemReconciled
	return outcome
}

// receiveItem performs the serialized read-derive-write cycle for one item.
// The per-item lock keeps writers in this process from interleaving; the
// version check in AppendEvent catches everyone else, and a conflict retries
// with a fresh snapshot.
func (s *reconcileService) receiveItem(ctx context.Context, tenantID uuid.UUID, login *models.LogIn, li *models.LogInLineItem) (models.ItemStatus, error) {
	lock := s.itemLock(*li.ProductID)
	lock.Lock()
	defer lock.Unlock()

	var lastErr error
	for attempt := 0; attempt < maxReceiveRetries; attempt++ {
		item, err := s.itemRepo.GetWithHistory(ctx, tenantID, *li.ProductID)
		if err != nil {
			return "", err
		}

		newStatus := NextStatusOnReceive(Replay(item.History))
		event := &models.ItemEvent{
			ID:           uuid.New(),
			TenantID:     tenantID,
			ItemID:       item.ID,
			Seq:          len(item.History) + 1,
			Date:         time.Now(),
			Action:       models.ActionReceived,
			User:         login.User,
			ItemReceived: &li.Name,
			ReceivedFrom: login.ReceivedFrom,
			RepairNumber: li.RepairNumber,
			CustomerName: login.CustomerName,
			Comments:     login.Comments,
			RepairCost:   li.RepairCost,
			RefDoc:       &login.ID,
		}

		err = s.itemRepo.AppendEvent(ctx, tenantID, item.ID, newStatus, item.Version, event)
		if err == nil {
			if cacheErr := s.cacheSvc.DeleteItem(ctx, tenantID, item.ID); cacheErr != nil {
				log.Printf("Failed to invalidate cache for item %s: %v", item.ID.String(), cacheErr)
			}
			return newStatus, nil
		}
		if !errors.Is(err, repositories.ErrVersionConflict) {
			return "", err
		}
		log.Printf("Version conflict receiving item %s (attempt %d), retrying", item.ID.String(), attempt+1)
		lastErr = err
	}
	return "", lastErr
}

func (s *reconcileService) tally(report *models.ReconcileReport, outcome models.LineItemOutcome) {
	report.Outcomes = append(report.Outcomes, outcome)
	switch outcome.Status {
	case models.LineItemReconciled:
		report.ProcessedItems++
	case models.LineItemSkipped:
		report.SkippedItems++
	default:
		report.FailedItems++
	}
}

func finishReport(report *models.ReconcileReport) {
	report.Status = "completed"
	if report.FailedItems > 0 {
		report.Status = "partial"
	}
	now := time.Now()
	report.CompletionTime = &now
}

// buildSearchText derives the free-text search field persisted with the
// record: a lowercase concatenation of header fields and line item details.
func buildSearchText(login *models.LogIn) string {
	var parts []string
	add := func(s *string) {
		if s != nil && *s != "" {
			parts = append(parts, *s)
		}
	}
	add(login.ReceivedFrom)
	add(login.CustomerName)
	add(login.Comments)
	add(login.User)
	for _, li := range login.LineItems {
		add(li.ItemNumber)
		if li.Name != "" {
			parts = append(parts, li.Name)
		}
		add(li.RepairNumber)
	}
	return strings.ToLower(strings.Join(parts, " "))
}
