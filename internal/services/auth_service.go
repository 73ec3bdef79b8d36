package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cafestamp/cafestamp-backend/internal/config"
	"github.com/cafestamp/cafestamp-backend/internal/models"
	"github.com/cafestamp/cafestamp-backend/internal/repositories"
	"github.com/cafestamp/cafestamp-backend/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// AuthService defines the interface for authentication operations
type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.Account, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
}

type authService struct {
	accountRepo repositories.AccountRepository
	cfg         *config.Config
}

// NewAuthService creates a new AuthService implementation
func NewAuthService(accountRepo repositories.AccountRepository, cfg *config.Config) AuthService {
	return &authService{
		accountRepo: accountRepo,
		cfg:         cfg,
	}
}

// Register creates a new account. The very first account registered becomes
// the SUPER_ADMIN owner; everyone after that starts as a regular user.
func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) (*models.Account, error) {
	_, err := s.accountRepo.FindByEmail(ctx, req.Email)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("lookup email: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	role := models.RoleUser
	count, err := s.accountRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count accounts: %w", err)
	}
	if count == 0 {
		role = models.RoleSuperAdmin
	}

	now := time.Now()
	account := &models.Account{
		Email:        req.Email,
		DisplayName:  req.DisplayName,
		Password:     string(hashedPassword),
		Role:         role,
		ManagedCafes: []primitive.ObjectID{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}

	account.Password = ""
	return account, nil
}

// Login verifies the credentials and returns a signed token
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	account, err := s.accountRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateJWT(account.ID.Hex(), account.Email, account.Role, s.cfg)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	account.Password = ""
	return &models.LoginResponse{Token: token, Account: account}, nil
}
