package services

import (
	"context"
	"time"

	"github.com/cafestamp/cafestamp-backend/internal/models"
	"github.com/cafestamp/cafestamp-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EstablishmentService handles establishment-related business logic
type EstablishmentService struct {
	accountRepo       repositories.AccountRepository
	establishmentRepo repositories.EstablishmentRepository
}

// NewEstablishmentService creates a new EstablishmentService
func NewEstablishmentService(accountRepo repositories.AccountRepository, establishmentRepo repositories.EstablishmentRepository) *EstablishmentService {
	return &EstablishmentService{
		accountRepo:       accountRepo,
		establishmentRepo: establishmentRepo,
	}
}

// CreateEstablishment registers a new cafe; SUPER_ADMIN only
func (s *EstablishmentService) CreateEstablishment(ctx context.Context, callerID primitive.ObjectID, req *models.EstablishmentRequest) (*models.Establishment, error) {
	caller, err := s.accountRepo.FindByID(ctx, callerID)
	if err != nil || caller.Role != models.RoleSuperAdmin {
		return nil, ErrUnauthorized
	}

	now := time.Now()
	establishment := &models.Establishment{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Active:      true,
		CreatedBy:   callerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.establishmentRepo.Create(ctx, establishment); err != nil {
		return nil, err
	}
	return establishment, nil
}

// UpdateEstablishment edits name/description/category; SUPER_ADMIN only
func (s *EstablishmentService) UpdateEstablishment(ctx context.Context, callerID, id primitive.ObjectID, req *models.EstablishmentRequest) (*models.Establishment, error) {
	caller, err := s.accountRepo.FindByID(ctx, callerID)
	if err != nil || caller.Role != models.RoleSuperAdmin {
		return nil, ErrUnauthorized
	}

	establishment, err := s.establishmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	establishment.Name = req.Name
	establishment.Description = req.Description
	establishment.Category = req.Category
	if err := s.establishmentRepo.Update(ctx, establishment); err != nil {
		return nil, err
	}
	return establishment, nil
}

// DeactivateEstablishment soft-deletes a cafe; SUPER_ADMIN only. The
// document stays so ledger entries keep resolving.
func (s *EstablishmentService) DeactivateEstablishment(ctx context.Context, callerID, id primitive.ObjectID) error {
	caller, err := s.accountRepo.FindByID(ctx, callerID)
	if err != nil || caller.Role != models.RoleSuperAdmin {
		return ErrUnauthorized
	}
	return s.establishmentRepo.SetActive(ctx, id, false)
}

// GetEstablishmentByID retrieves an establishment by ID
func (s *EstablishmentService) GetEstablishmentByID(ctx context.Context, id primitive.ObjectID) (*models.Establishment, error) {
	return s.establishmentRepo.FindByID(ctx, id)
}

// GetActiveEstablishments lists all active cafes
func (s *EstablishmentService) GetActiveEstablishments(ctx context.Context) ([]*models.Establishment, error) {
	return s.establishmentRepo.FindActive(ctx)
}
