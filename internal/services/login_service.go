package services

import (
	"context"

	"shopledger/internal/models"
	"shopledger/internal/repositories"

	"github.com/google/uuid"
)

// LogInService is the read side of log-in records. Writes go through
// ReconcileService, which owns the receive workflow.
type LogInService interface {
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.LogIn, error)
	List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.LogIn, error)
	Search(ctx context.Context, tenantID uuid.UUID, query string, limit, offset int) ([]*models.LogIn, error)
}

type logInService struct {
	logInRepo repositories.LogInRepository
}

func NewLogInService(logInRepo repositories.LogInRepository) LogInService {
	return &logInService{logInRepo: logInRepo}
}

func (s *logInService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.LogIn, error) {
	return s.logInRepo.GetByID(ctx, tenantID, id)
}

func (s *logInService) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.LogIn, error) {
	return s.logInRepo.List(ctx, tenantID, limit, offset)
}

func (s *logInService) Search(ctx context.Context, tenantID uuid.UUID, query string, limit, offset int) ([]*models.LogIn, error) {
	return s.logInRepo.Search(ctx, tenantID, query, limit, offset)
}
