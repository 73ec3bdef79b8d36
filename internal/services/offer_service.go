package services

import (
	"context"
	"errors"
	"time"

	"github.com/cafestamp/cafestamp-backend/internal/models"
	"github.com/cafestamp/cafestamp-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrInvalidScaleSize is returned when an offer's stamp threshold is below 1
var ErrInvalidScaleSize = errors.New("scaleSize must be at least 1")

// OfferService handles offer-related business logic. Offers may be managed
// by the SUPER_ADMIN or by an ADMIN who manages the owning establishment —
// the same predicate that gates scanning.
//
// Editing ScaleSize after scans have accrued does not reconcile existing
// progress records; the next scan is compared against the new threshold.
type OfferService struct {
	accountRepo       repositories.AccountRepository
	establishmentRepo repositories.EstablishmentRepository
	offerRepo         repositories.OfferRepository
}

// NewOfferService creates a new OfferService
func NewOfferService(accountRepo repositories.AccountRepository, establishmentRepo repositories.EstablishmentRepository, offerRepo repositories.OfferRepository) *OfferService {
	return &OfferService{
		accountRepo:       accountRepo,
		establishmentRepo: establishmentRepo,
		offerRepo:         offerRepo,
	}
}

// CreateOffer adds an offer to an establishment
func (s *OfferService) CreateOffer(ctx context.Context, callerID primitive.ObjectID, req *models.OfferRequest) (*models.Offer, error) {
	establishmentID, err := primitive.ObjectIDFromHex(req.EstablishmentID)
	if err != nil {
		return nil, repositories.ErrNotFound
	}
	if req.ScaleSize < 1 {
		return nil, ErrInvalidScaleSize
	}

	if err := s.requireManager(ctx, callerID, establishmentID); err != nil {
		return nil, err
	}
	if _, err := s.establishmentRepo.FindByID(ctx, establishmentID); err != nil {
		return nil, err
	}

	now := time.Now()
	offer := &models.Offer{
		EstablishmentID: establishmentID,
		Name:            req.Name,
		Description:     req.Description,
		ScaleSize:       req.ScaleSize,
		Price:           req.Price,
		Active:          true,
		CreatedBy:       callerID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.offerRepo.Create(ctx, offer); err != nil {
		return nil, err
	}
	return offer, nil
}

// UpdateOffer edits an existing offer
func (s *OfferService) UpdateOffer(ctx context.Context, callerID, offerID primitive.ObjectID, req *models.OfferRequest) (*models.Offer, error) {
	if req.ScaleSize < 1 {
		return nil, ErrInvalidScaleSize
	}

	offer, err := s.offerRepo.FindByID(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if err := s.requireManager(ctx, callerID, offer.EstablishmentID); err != nil {
		return nil, err
	}

	offer.Name = req.Name
	offer.Description = req.Description
	offer.ScaleSize = req.ScaleSize
	offer.Price = req.Price
	if err := s.offerRepo.Update(ctx, offer); err != nil {
		return nil, err
	}
	return offer, nil
}

// DeactivateOffer soft-deletes an offer
func (s *OfferService) DeactivateOffer(ctx context.Context, callerID, offerID primitive.ObjectID) error {
	offer, err := s.offerRepo.FindByID(ctx, offerID)
	if err != nil {
		return err
	}
	if err := s.requireManager(ctx, callerID, offer.EstablishmentID); err != nil {
		return err
	}
	return s.offerRepo.SetActive(ctx, offerID, false)
}

// GetOfferByID retrieves an offer by ID
func (s *OfferService) GetOfferByID(ctx context.Context, id primitive.ObjectID) (*models.Offer, error) {
	return s.offerRepo.FindByID(ctx, id)
}

// GetActiveOffers lists the active offers of one establishment
func (s *OfferService) GetActiveOffers(ctx context.Context, establishmentID primitive.ObjectID) ([]*models.Offer, error) {
	return s.offerRepo.FindActiveByEstablishment(ctx, establishmentID)
}

func (s *OfferService) requireManager(ctx context.Context, callerID, establishmentID primitive.ObjectID) error {
	caller, err := s.accountRepo.FindByID(ctx, callerID)
	if err != nil || !caller.CanScan(establishmentID) {
		return ErrUnauthorized
	}
	return nil
}
