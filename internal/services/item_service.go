package services

import (
	"context"
	"fmt"
	"time"

	"shopledger/internal/caching"
	"shopledger/internal/models"
	"shopledger/internal/repositories"

	"github.com/google/uuid"
)

type ItemService interface {
	Create(ctx context.Context, tenantID uuid.UUID, item *models.Item) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Item, error)
	GetHistory(ctx context.Context, tenantID, id uuid.UUID) ([]*models.ItemEvent, error)
	SetStatus(ctx context.Context, tenantID, id uuid.UUID, status models.ItemStatus, user *string) error
	List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Item, error)
}

type itemService struct {
	itemRepo     repositories.ItemRepository
	cacheService caching.CacheService
}

func NewItemService(itemRepo repositories.ItemRepository, cacheService caching.CacheService) ItemService {
	return &itemService{
		itemRepo:     itemRepo,
		cacheService: cacheService,
	}
}

func (s *itemService) Create(ctx context.Context, tenantID uuid.UUID, item *models.Item) error {
	item.TenantID = tenantID
	item.ID = uuid.New()
	if item.Status == "" {
		item.Status = models.StatusIncoming
	}
	return s.itemRepo.Create(ctx, item)
}

func (s *itemService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Item, error) {
	// Try to get from cache first
	if cachedItem, err := s.cacheService.GetItem(ctx, tenantID, id); cachedItem != nil {
		return cachedItem, nil
	} else if err != nil {
		// Log error but continue to database - cache errors shouldn't fail the operation
		fmt.Printf("Cache error for item %s: %v\n", id.String(), err)
	}

	item, err := s.itemRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if cacheErr := s.cacheService.SetItem(ctx, tenantID, item, 5*time.Minute); cacheErr != nil {
		fmt.Printf("Failed to cache item %s: %v\n", id.String(), cacheErr)
	}

	return item, nil
}

func (s *itemService) GetHistory(ctx context.Context, tenantID, id uuid.UUID) ([]*models.ItemEvent, error) {
	return s.itemRepo.ListEvents(ctx, tenantID, id)
}

// SetStatus is the manual status edit path. It appends its own tagged event so
// the change shows up in the history, but the tag is outside the derivation
// vocabulary: replay treats it as opaque and the receive workflow stays
// authoritative for In Stock/Sold/Memo.
func (s *itemService) SetStatus(ctx context.Context, tenantID, id uuid.UUID, status models.ItemStatus, user *string) error {
	item, err := s.itemRepo.GetWithHistory(ctx, tenantID, id)
	if err != nil {
		return err
	}

	event := &models.ItemEvent{
		ID:       uuid.New(),
		TenantID: tenantID,
		ItemID:   id,
		Seq:      len(item.History) + 1,
		Date:     time.Now(),
		Action:   fmt.Sprintf("status changed: %s", status),
		User:     user,
	}
	if err := s.itemRepo.AppendEvent(ctx, tenantID, id, status, item.Version, event); err != nil {
		return err
	}

	if cacheErr := s.cacheService.DeleteItem(ctx, tenantID, id); cacheErr != nil {
		fmt.Printf("Failed to invalidate cache for item %s: %v\n", id.String(), cacheErr)
	}
	return nil
}

func (s *itemService) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Item, error) {
	return s.itemRepo.List(ctx, tenantID, limit, offset)
}
