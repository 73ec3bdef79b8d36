package handlers

import (
	"net/http"

	"github.com/cafestamp/cafestamp-backend/internal/models"
	"github.com/cafestamp/cafestamp-backend/internal/services"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OfferHandler handles offer-related HTTP requests
type OfferHandler struct {
	offerService *services.OfferService
}

// NewOfferHandler creates a new OfferHandler
func NewOfferHandler(offerService *services.OfferService) *OfferHandler {
	return &OfferHandler{
		offerService: offerService,
	}
}

// CreateOffer handles POST /offers
func (h *OfferHandler) CreateOffer(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token subject"})
		return
	}

	var req models.OfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	offer, err := h.offerService.CreateOffer(c, caller, &req)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": "Failed to create offer: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, offer)
}

// UpdateOffer handles PUT /offers/:id
func (h *OfferHandler) UpdateOffer(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token subject"})
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	var req models.OfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	offer, err := h.offerService.UpdateOffer(c, caller, id, &req)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": "Failed to update offer: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, offer)
}

// DeactivateOffer handles DELETE /offers/:id
func (h *OfferHandler) DeactivateOffer(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token subject"})
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	if err := h.offerService.DeactivateOffer(c, caller, id); err != nil {
		c.JSON(statusFromError(err), gin.H{"error": "Failed to deactivate offer: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deactivated"})
}

// GetOfferByID handles GET /offers/:id
func (h *OfferHandler) GetOfferByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	offer, err := h.offerService.GetOfferByID(c, id)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": "Offer not found"})
		return
	}
	c.JSON(http.StatusOK, offer)
}

// GetActiveOffers handles GET /establishments/:id/offers
func (h *OfferHandler) GetActiveOffers(c *gin.Context) {
	establishmentID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid establishment ID format"})
		return
	}

	offers, err := h.offerService.GetActiveOffers(c, establishmentID)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": "Failed to get offers: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, offers)
}
