package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"shopledger/internal/models"
	"shopledger/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// Mock repositories and services
type MockLogInRepository struct {
	mock.Mock
}

func (m *MockLogInRepository) Create(ctx context.Context, login *models.LogIn) error {
	args := m.Called(ctx, login)
	return args.Error(0)
}

func (m *MockLogInRepository) Update(ctx context.Context, login *models.LogIn) error {
	args := m.Called(ctx, login)
	return args.Error(0)
}

func (m *MockLogInRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.LogIn, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LogIn), args.Error(1)
}

func (m *MockLogInRepository) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.LogIn, error) {
	args := m.Called(ctx, tenantID, limit, offset)
	return args.Get(0).([]*models.LogIn), args.Error(1)
}

func (m *MockLogInRepository) Search(ctx context.Context, tenantID uuid.UUID, query string, limit, offset int) ([]*models.LogIn, error) {
	args := m.Called(ctx, tenantID, query, limit, offset)
	return args.Get(0).([]*models.LogIn), args.Error(1)
}

type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) Create(ctx context.Context, item *models.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Item, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Item), args.Error(1)
}

func (m *MockItemRepository) GetWithHistory(ctx context.Context, tenantID, id uuid.UUID) (*models.Item, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Item), args.Error(1)
}

func (m *MockItemRepository) ListEvents(ctx context.Context, tenantID, itemID uuid.UUID) ([]*models.ItemEvent, error) {
	args := m.Called(ctx, tenantID, itemID)
	return args.Get(0).([]*models.ItemEvent), args.Error(1)
}

func (m *MockItemRepository) AppendEvent(ctx context.Context, tenantID, itemID uuid.UUID, newStatus models.ItemStatus, expectedVersion int64, event *models.ItemEvent) error {
	args := m.Called(ctx, tenantID, itemID, newStatus, expectedVersion, event)
	return args.Error(0)
}

func (m *MockItemRepository) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Item, error) {
	args := m.Called(ctx, tenantID, limit, offset)
	return args.Get(0).([]*models.Item), args.Error(1)
}

type MockRepairRepository struct {
	mock.Mock
}

func (m *MockRepairRepository) Create(ctx context.Context, repair *models.Repair) error {
	args := m.Called(ctx, repair)
	return args.Error(0)
}

func (m *MockRepairRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Repair, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Repair), args.Error(1)
}

func (m *MockRepairRepository) GetByNumber(ctx context.Context, tenantID uuid.UUID, repairNumber string) (*models.Repair, error) {
	args := m.Called(ctx, tenantID, repairNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Repair), args.Error(1)
}

func (m *MockRepairRepository) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Repair, error) {
	args := m.Called(ctx, tenantID, limit, offset)
	return args.Get(0).([]*models.Repair), args.Error(1)
}

func (m *MockRepairRepository) ListOpen(ctx context.Context, tenantID uuid.UUID, sentBefore *time.Time) ([]*models.Repair, error) {
	args := m.Called(ctx, tenantID, sentBefore)
	return args.Get(0).([]*models.Repair), args.Error(1)
}

func (m *MockRepairRepository) CloseOnReceive(ctx context.Context, tenantID uuid.UUID, repairID, itemID *uuid.UUID, repairCost *float64, repairNotes *string) (int64, error) {
	args := m.Called(ctx, tenantID, repairID, itemID, repairCost, repairNotes)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepairRepository) UpdateCostAndNotes(ctx context.Context, tenantID, repairID uuid.UUID, repairCost *float64, repairNotes *string) (int64, error) {
	args := m.Called(ctx, tenantID, repairID, repairCost, repairNotes)
	return args.Get(0).(int64), args.Error(1)
}

type MockCacheService struct {
	mock.Mock
}

func (m *MockCacheService) GetItem(ctx context.Context, tenantID, itemID uuid.UUID) (*models.Item, error) {
	args := m.Called(ctx, tenantID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Item), args.Error(1)
}

func (m *MockCacheService) SetItem(ctx context.Context, tenantID uuid.UUID, item *models.Item, ttl time.Duration) error {
	args := m.Called(ctx, tenantID, item, ttl)
	return args.Error(0)
}

func (m *MockCacheService) DeleteItem(ctx context.Context, tenantID, itemID uuid.UUID) error {
	args := m.Called(ctx, tenantID, itemID)
	return args.Error(0)
}

func (m *MockCacheService) GetRepair(ctx context.Context, tenantID, repairID uuid.UUID) (*models.Repair, error) {
	args := m.Called(ctx, tenantID, repairID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Repair), args.Error(1)
}

func (m *MockCacheService) SetRepair(ctx context.Context, tenantID uuid.UUID, repair *models.Repair, ttl time.Duration) error {
	args := m.Called(ctx, tenantID, repair, ttl)
	return args.Error(0)
}

func (m *MockCacheService) DeleteRepair(ctx context.Context, tenantID, repairID uuid.UUID) error {
	args := m.Called(ctx, tenantID, repairID)
	return args.Error(0)
}

func (m *MockCacheService) InvalidateTenantCache(ctx context.Context, tenantID uuid.UUID) error {
	args := m.Called(ctx, tenantID)
	return args.Error(0)
}

// ReconcileServiceTestSuite defines the test suite
type ReconcileServiceTestSuite struct {
	suite.Suite
	mockLogInRepo  *MockLogInRepository
	mockItemRepo   *MockItemRepository
	mockRepairRepo *MockRepairRepository
	mockCache      *MockCacheService
	service        ReconcileService
	tenantID       uuid.UUID
}

func (suite *ReconcileServiceTestSuite) SetupTest() {
	suite.mockLogInRepo = &MockLogInRepository{}
	suite.mockItemRepo = &MockItemRepository{}
	suite.mockRepairRepo = &MockRepairRepository{}
	suite.mockCache = &MockCacheService{}
	suite.service = NewReconcileService(suite.mockLogInRepo, suite.mockItemRepo, suite.mockRepairRepo, suite.mockCache)
	suite.tenantID = uuid.New()
}

func (suite *ReconcileServiceTestSuite) TearDownTest() {
	suite.mockLogInRepo.AssertExpectations(suite.T())
	suite.mockItemRepo.AssertExpectations(suite.T())
	suite.mockRepairRepo.AssertExpectations(suite.T())
	suite.mockCache.AssertExpectations(suite.T())
}

func TestReconcileServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReconcileServiceTestSuite))
}

func itemWith(tenantID uuid.UUID, version int64, actions ...string) *models.Item {
	item := &models.Item{
		ID:       uuid.New(),
		TenantID: tenantID,
		Version:  version,
	}
	for i, action := range actions {
		item.History = append(item.History, &models.ItemEvent{
			ItemID: item.ID,
			Seq:    i + 1,
			Action: action,
		})
	}
	return item
}

func (suite *ReconcileServiceTestSuite) TestCreateLogIn_ReceiveAndClose() {
	item := itemWith(suite.tenantID, 3, "sold item", "item returned")
	cost := 45.0
	login := &models.LogIn{
		LineItems: []*models.LogInLineItem{
			{Name: "Seamaster", ProductID: &item.ID, RepairCost: &cost},
		},
	}

	suite.mockLogInRepo.On("Create", mock.Anything, login).Return(nil)
	suite.mockItemRepo.On("GetWithHistory", mock.Anything, suite.tenantID, item.ID).Return(item, nil)
	suite.mockItemRepo.On("AppendEvent", mock.Anything, suite.tenantID, item.ID, models.StatusInStock, int64(3),
		mock.MatchedBy(func(ev *models.ItemEvent) bool {
			return ev.Action == models.ActionReceived && ev.Seq == 3 && ev.RefDoc != nil
		})).Return(nil)
	suite.mockCache.On("DeleteItem", mock.Anything, suite.tenantID, item.ID).Return(nil)
	suite.mockRepairRepo.On("CloseOnReceive", mock.Anything, suite.tenantID, (*uuid.UUID)(nil), &item.ID, &cost, (*string)(nil)).Return(int64(2), nil)

	report, err := suite.service.CreateLogIn(context.Background(), suite.tenantID, login)

	suite.NoError(err)
	suite.Equal("completed", report.Status)
	suite.Equal(1, report.ProcessedItems)
	suite.Equal(0, report.FailedItems)
	suite.Require().Len(report.Outcomes, 1)
	suite.Equal(models.LineItemReconciled, report.Outcomes[0].Status)
	suite.Require().NotNil(report.Outcomes[0].NewItemStatus)
	suite.Equal(models.StatusInStock, *report.Outcomes[0].NewItemStatus)
	suite.Equal(int64(2), report.Outcomes[0].RepairsClosed)
	suite.NotEqual(uuid.Nil, login.ID)
	suite.NotNil(report.CompletionTime)
}

func (suite *ReconcileServiceTestSuite) TestCreateLogIn_SoldItemBackFromRepair() {
	item := itemWith(suite.tenantID, 7, "sold item", "in repair: bracelet")
	login := &models.LogIn{
		LineItems: []*models.LogInLineItem{
			{Name: "Datejust", ProductID: &item.ID},
		},
	}

	suite.mockLogInRepo.On("Create", mock.Anything, login).Return(nil)
	suite.mockItemRepo.On("GetWithHistory", mock.Anything, suite.tenantID, item.ID).Return(item, nil)
	suite.mockItemRepo.On("AppendEvent", mock.Anything, suite.tenantID, item.ID, models.StatusSold, int64(7), mock.Anything).Return(nil)
	suite.mockCache.On("DeleteItem", mock.Anything, suite.tenantID, item.ID).Return(nil)
	suite.mockRepairRepo.On("CloseOnReceive", mock.Anything, suite.tenantID, (*uuid.UUID)(nil), &item.ID, (*float64)(nil), (*string)(nil)).Return(int64(1), nil)

	report, err := suite.service.CreateLogIn(context.Background(), suite.tenantID, login)

	suite.NoError(err)
	suite.Equal("completed", report.Status)
	suite.Require().NotNil(report.Outcomes[0].NewItemStatus)
	suite.Equal(models.StatusSold, *report.Outcomes[0].NewItemStatus)
}

func (suite *ReconcileServiceTestSuite) TestCreateLogIn_MissingItemSkipsRepairPass() {
	missingID := uuid.New()
	repairID := uuid.New()
	login := &models.LogIn{
		LineItems: []*models.LogInLineItem{
			{Name: "Ghost", ProductID: &missingID, RepairID: &repairID},
		},
	}

	suite.mockLogInRepo.On("Create", mock.Anything, login).Return(nil)
	suite.mockItemRepo.On("GetWithHistory", mock.Anything, suite.tenantID, missingID).Return(nil, pgx.ErrNoRows)

	report, err := suite.service.CreateLogIn(context.Background(), suite.tenantID, login)

	suite.NoError(err)
	suite.Equal("partial", report.Status)
	suite.Equal(1, report.FailedItems)
	suite.Equal(models.LineItemLookupMissed, report.Outcomes[0].Status)
	suite.mockRepairRepo.AssertNotCalled(suite.T(), "CloseOnReceive", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReconcileServiceTestSuite) TestCreateLogIn_UncorrelatedLineItemSkipped() {
	login := &models.LogIn{
		LineItems: []*models.LogInLineItem{
			{Name: "Box of parts"},
		},
	}

	suite.mockLogInRepo.On("Create", mock.Anything, login).Return(nil)

	report, err := suite.service.CreateLogIn(context.Background(), suite.tenantID, login)

	suite.NoError(err)
	suite.Equal("completed", report.Status)
	suite.Equal(1, report.SkippedItems)
	suite.Equal(0, report.ProcessedItems)
	suite.Equal(models.LineItemSkipped, report.Outcomes[0].Status)
}

func (suite *ReconcileServiceTestSuite) TestCreateLogIn_RepairOnlyLineItem() {
	repairID := uuid.New()
	login := &models.LogIn{
		LineItems: []*models.LogInLineItem{
			{Name: "Movement", RepairID: &repairID},
		},
	}

	suite.mockLogInRepo.On("Create", mock.Anything, login).Return(nil)
	suite.mockRepairRepo.On("CloseOnReceive", mock.Anything, suite.tenantID, &repairID, (*uuid.UUID)(nil), (*float64)(nil), (*string)(nil)).Return(int64(1), nil)

	report, err := suite.service.CreateLogIn(context.Background(), suite.tenantID, login)

	suite.NoError(err)
	suite.Equal("completed", report.Status)
	suite.Equal(1, report.ProcessedItems)
	suite.Equal(int64(1), report.Outcomes[0].RepairsClosed)
	suite.mockItemRepo.AssertNotCalled(suite.T(), "GetWithHistory", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReconcileServiceTestSuite) TestCreateLogIn_ZeroRepairsClosedIsSilent() {
	repairID := uuid.New()
	login := &models.LogIn{
		LineItems: []*models.LogInLineItem{
			{Name: "Already back", RepairID: &repairID},
		},
	}

	suite.mockLogInRepo.On("Create", mock.Anything, login).Return(nil)
	suite.mockRepairRepo.On("CloseOnReceive", mock.Anything, suite.tenantID, &repairID, (*uuid.UUID)(nil), (*float64)(nil), (*string)(nil)).Return(int64(0), nil)

	report, err := suite.service.CreateLogIn(context.Background(), suite.tenantID, login)

	suite.NoError(err)
	suite.Equal("completed", report.Status)
	suite.Equal(models.LineItemReconciled, report.Outcomes[0].Status)
	suite.Equal(int64(0), report.Outcomes[0].RepairsClosed)
}

func (suite *ReconcileServiceTestSuite) TestCreateLogIn_VersionConflictRetries() {
	stale := itemWith(suite.tenantID, 1, "sold item")
	fresh := itemWith(suite.tenantID, 2, "sold item", "received")
	fresh.ID = stale.ID
	for _, ev := range fresh.History {
		ev.ItemID = stale.ID
	}
	login := &models.LogIn{
		LineItems: []*models.LogInLineItem{
			{Name: "Contested", ProductID: &stale.ID},
		},
	}

	suite.mockLogInRepo.On("Create", mock.Anything, login).Return(nil)
	suite.mockItemRepo.On("GetWithHistory", mock.Anything, suite.tenantID, stale.ID).Return(stale, nil).Once()
	suite.mockItemRepo.On("AppendEvent", mock.Anything, suite.tenantID, stale.ID, models.StatusInStock, int64(1), mock.Anything).Return(repositories.ErrVersionConflict).Once()
	suite.mockItemRepo.On("GetWithHistory", mock.Anything, suite.tenantID, stale.ID).Return(fresh, nil).Once()
	suite.mockItemRepo.On("AppendEvent", mock.Anything, suite.tenantID, stale.ID, models.StatusInStock, int64(2),
		mock.MatchedBy(func(ev *models.ItemEvent) bool { return ev.Seq == 3 })).Return(nil).Once()
	suite.mockCache.On("DeleteItem", mock.Anything, suite.tenantID, stale.ID).Return(nil)
	suite.mockRepairRepo.On("CloseOnReceive", mock.Anything, suite.tenantID, (*uuid.UUID)(nil), &stale.ID, (*float64)(nil), (*string)(nil)).Return(int64(0), nil)

	report, err := suite.service.CreateLogIn(context.Background(), suite.tenantID, login)

	suite.NoError(err)
	suite.Equal("completed", report.Status)
	suite.Equal(models.LineItemReconciled, report.Outcomes[0].Status)
}

func (suite *ReconcileServiceTestSuite) TestCreateLogIn_VersionConflictExhausted() {
	item := itemWith(suite.tenantID, 1)
	login := &models.LogIn{
		LineItems: []*models.LogInLineItem{
			{Name: "Hot item", ProductID: &item.ID},
		},
	}

	suite.mockLogInRepo.On("Create", mock.Anything, login).Return(nil)
	suite.mockItemRepo.On("GetWithHistory", mock.Anything, suite.tenantID, item.ID).Return(item, nil).Times(3)
	suite.mockItemRepo.On("AppendEvent", mock.Anything, suite.tenantID, item.ID, models.StatusInStock, int64(1), mock.Anything).Return(repositories.ErrVersionConflict).Times(3)

	report, err := suite.service.CreateLogIn(context.Background(), suite.tenantID, login)

	suite.NoError(err)
	suite.Equal("partial", report.Status)
	suite.Equal(models.LineItemWriteFailed, report.Outcomes[0].Status)
	suite.Require().NotNil(report.Outcomes[0].Error)
}

func (suite *ReconcileServiceTestSuite) TestCreateLogIn_FailureIsolatedToLineItem() {
	broken := itemWith(suite.tenantID, 1)
	healthy := itemWith(suite.tenantID, 4)
	login := &models.LogIn{
		LineItems: []*models.LogInLineItem{
			{Name: "Broken", ProductID: &broken.ID},
			{Name: "Healthy", ProductID: &healthy.ID},
		},
	}

	suite.mockLogInRepo.On("Create", mock.Anything, login).Return(nil)
	suite.mockItemRepo.On("GetWithHistory", mock.Anything, suite.tenantID, broken.ID).Return(nil, errors.New("connection reset"))
	suite.mockItemRepo.On("GetWithHistory", mock.Anything, suite.tenantID, healthy.ID).Return(healthy, nil)
	suite.mockItemRepo.On("AppendEvent", mock.Anything, suite.tenantID, healthy.ID, models.StatusInStock, int64(4), mock.Anything).Return(nil)
	suite.mockCache.On("DeleteItem", mock.Anything, suite.tenantID, healthy.ID).Return(nil)
	suite.mockRepairRepo.On("CloseOnReceive", mock.Anything, suite.tenantID, (*uuid.UUID)(nil), &healthy.ID, (*float64)(nil), (*string)(nil)).Return(int64(0), nil)

	report, err := suite.service.CreateLogIn(context.Background(), suite.tenantID, login)

	suite.NoError(err)
	suite.Equal("partial", report.Status)
	suite.Equal(1, report.ProcessedItems)
	suite.Equal(1, report.FailedItems)
	suite.Equal(0, report.Outcomes[0].ItemIndex)
	suite.Equal(models.LineItemWriteFailed, report.Outcomes[0].Status)
	suite.Equal(1, report.Outcomes[1].ItemIndex)
	suite.Equal(models.LineItemReconciled, report.Outcomes[1].Status)
}

func (suite *ReconcileServiceTestSuite) TestCreateLogIn_CacheFailureDoesNotFailReceive() {
	item := itemWith(suite.tenantID, 2)
	login := &models.LogIn{
		LineItems: []*models.LogInLineItem{
			{Name: "Cached", ProductID: &item.ID},
		},
	}

	suite.mockLogInRepo.On("Create", mock.Anything, login).Return(nil)
	suite.mockItemRepo.On("GetWithHistory", mock.Anything, suite.tenantID, item.ID).Return(item, nil)
	suite.mockItemRepo.On("AppendEvent", mock.Anything, suite.tenantID, item.ID, models.StatusInStock, int64(2), mock.Anything).Return(nil)
	suite.mockCache.On("DeleteItem", mock.Anything, suite.tenantID, item.ID).Return(errors.New("redis down"))
	suite.mockRepairRepo.On("CloseOnReceive", mock.Anything, suite.tenantID, (*uuid.UUID)(nil), &item.ID, (*float64)(nil), (*string)(nil)).Return(int64(0), nil)

	report, err := suite.service.CreateLogIn(context.Background(), suite.tenantID, login)

	suite.NoError(err)
	suite.Equal("completed", report.Status)
	suite.Equal(models.LineItemReconciled, report.Outcomes[0].Status)
}

func (suite *ReconcileServiceTestSuite) TestCreateLogIn_PersistFailureAbortsReconciliation() {
	itemID := uuid.New()
	login := &models.LogIn{
		LineItems: []*models.LogInLineItem{
			{Name: "Never processed", ProductID: &itemID},
		},
	}

	suite.mockLogInRepo.On("Create", mock.Anything, login).Return(errors.New("insert failed"))

	report, err := suite.service.CreateLogIn(context.Background(), suite.tenantID, login)

	suite.Error(err)
	suite.Nil(report)
	suite.mockItemRepo.AssertNotCalled(suite.T(), "GetWithHistory", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReconcileServiceTestSuite) TestUpdateLogIn_RefreshesReferencedRepairsOnly() {
	repairID := uuid.New()
	itemID := uuid.New()
	cost := 120.0
	notes := "replaced mainspring"
	login := &models.LogIn{
		ID:       uuid.New(),
		Comments: &notes,
		LineItems: []*models.LogInLineItem{
			{ID: uuid.New(), Name: "Serviced", RepairID: &repairID, RepairCost: &cost},
			{ID: uuid.New(), Name: "Item only", ProductID: &itemID},
		},
	}

	suite.mockLogInRepo.On("Update", mock.Anything, login).Return(nil)
	suite.mockRepairRepo.On("UpdateCostAndNotes", mock.Anything, suite.tenantID, repairID, &cost, &notes).Return(int64(1), nil)

	report, err := suite.service.UpdateLogIn(context.Background(), suite.tenantID, login)

	suite.NoError(err)
	suite.Equal("completed", report.Status)
	suite.Equal(1, report.ProcessedItems)
	suite.Equal(1, report.SkippedItems)
	suite.Equal(int64(1), report.Outcomes[0].RepairsUpdated)
	// Edits never replay item history or close repairs.
	suite.mockItemRepo.AssertNotCalled(suite.T(), "GetWithHistory", mock.Anything, mock.Anything, mock.Anything)
	suite.mockItemRepo.AssertNotCalled(suite.T(), "AppendEvent", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockRepairRepo.AssertNotCalled(suite.T(), "CloseOnReceive", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReconcileServiceTestSuite) TestUpdateLogIn_WriteFailureReported() {
	repairID := uuid.New()
	login := &models.LogIn{
		ID: uuid.New(),
		LineItems: []*models.LogInLineItem{
			{ID: uuid.New(), Name: "Unlucky", RepairID: &repairID},
		},
	}

	suite.mockLogInRepo.On("Update", mock.Anything, login).Return(nil)
	suite.mockRepairRepo.On("UpdateCostAndNotes", mock.Anything, suite.tenantID, repairID, (*float64)(nil), (*string)(nil)).Return(int64(0), errors.New("deadlock"))

	report, err := suite.service.UpdateLogIn(context.Background(), suite.tenantID, login)

	suite.NoError(err)
	suite.Equal("partial", report.Status)
	suite.Equal(models.LineItemWriteFailed, report.Outcomes[0].Status)
}

func TestBuildSearchText(t *testing.T) {
	from := "Stern Bros"
	customer := "J. Alvarez"
	number := "W-1042"
	repairNo := "R-88"
	login := &models.LogIn{
		ReceivedFrom: &from,
		CustomerName: &customer,
		LineItems: []*models.LogInLineItem{
			{ItemNumber: &number, Name: "Speedmaster", RepairNumber: &repairNo},
		},
	}

	got := buildSearchText(login)
	for _, want := range []string{"stern bros", "j. alvarez", "w-1042", "speedmaster", "r-88"} {
		if !strings.Contains(got, want) {
			t.Errorf("search text %q missing %q", got, want)
		}
	}
}
