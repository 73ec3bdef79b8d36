package services

import (
	"context"

	"github.com/cafestamp/cafestamp-backend/internal/models"
	"github.com/cafestamp/cafestamp-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AccountService handles account-related business logic. Role and
// managed-establishment changes are reserved for the SUPER_ADMIN owner.
type AccountService struct {
	accountRepo repositories.AccountRepository
}

// NewAccountService creates a new AccountService
func NewAccountService(accountRepo repositories.AccountRepository) *AccountService {
	return &AccountService{
		accountRepo: accountRepo,
	}
}

// GetAccountByID retrieves an account by ID
func (s *AccountService) GetAccountByID(ctx context.Context, id primitive.ObjectID) (*models.Account, error) {
	return s.accountRepo.FindByID(ctx, id)
}

// GetAllAccounts retrieves all accounts with pagination; staff only
func (s *AccountService) GetAllAccounts(ctx context.Context, callerID primitive.ObjectID, page, limit int) ([]*models.Account, error) {
	caller, err := s.accountRepo.FindByID(ctx, callerID)
	if err != nil || !caller.IsStaff() {
		return nil, ErrUnauthorized
	}
	return s.accountRepo.FindAll(ctx, page, limit)
}

// UpdateRole changes an account's role; SUPER_ADMIN only
func (s *AccountService) UpdateRole(ctx context.Context, callerID, accountID primitive.ObjectID, role string) error {
	if err := s.requireSuperAdmin(ctx, callerID); err != nil {
		return err
	}
	return s.accountRepo.UpdateRole(ctx, accountID, role)
}

// AddManagedCafe grants an admin scanning rights at an establishment;
// SUPER_ADMIN only
func (s *AccountService) AddManagedCafe(ctx context.Context, callerID, accountID, establishmentID primitive.ObjectID) error {
	if err := s.requireSuperAdmin(ctx, callerID); err != nil {
		return err
	}
	return s.accountRepo.AddManagedCafe(ctx, accountID, establishmentID)
}

// RemoveManagedCafe revokes an admin's scanning rights at an establishment;
// SUPER_ADMIN only
func (s *AccountService) RemoveManagedCafe(ctx context.Context, callerID, accountID, establishmentID primitive.ObjectID) error {
	if err := s.requireSuperAdmin(ctx, callerID); err != nil {
		return err
	}
	return s.accountRepo.RemoveManagedCafe(ctx, accountID, establishmentID)
}

func (s *AccountService) requireSuperAdmin(ctx context.Context, callerID primitive.ObjectID) error {
	caller, err := s.accountRepo.FindByID(ctx, callerID)
	if err != nil || caller.Role != models.RoleSuperAdmin {
		return ErrUnauthorized
	}
	return nil
}
