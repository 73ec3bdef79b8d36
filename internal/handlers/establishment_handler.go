package handlers

import (
	"net/http"

	"github.com/cafestamp/cafestamp-backend/internal/models"
	"github.com/cafestamp/cafestamp-backend/internal/services"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EstablishmentHandler handles establishment-related HTTP requests
type EstablishmentHandler struct {
	establishmentService *services.EstablishmentService
}

// NewEstablishmentHandler creates a new EstablishmentHandler
func NewEstablishmentHandler(establishmentService *services.EstablishmentService) *EstablishmentHandler {
	return &EstablishmentHandler{
		establishmentService: establishmentService,
	}
}

// CreateEstablishment handles POST /establishments
func (h *EstablishmentHandler) CreateEstablishment(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token subject"})
		return
	}

	var req models.EstablishmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	establishment, err := h.establishmentService.CreateEstablishment(c, caller, &req)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": "Failed to create establishment: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, establishment)
}

// UpdateEstablishment handles PUT /establishments/:id
func (h *EstablishmentHandler) UpdateEstablishment(c *gin.Context) {
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

	var req models.EstablishmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	establishment, err := h.establishmentService.UpdateEstablishment(c, caller, id, &req)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": "Failed to update establishment: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, establishment)
}

// DeactivateEstablishment handles DELETE /establishments/:id
func (h *EstablishmentHandler) DeactivateEstablishment(c *gin.Context) {
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

	if err := h.establishmentService.DeactivateEstablishment(c, caller, id); err != nil {
		c.JSON(statusFromError(err), gin.H{"error": "Failed to deactivate establishment: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deactivated"})
}

// GetEstablishmentByID handles GET /establishments/:id
func (h *EstablishmentHandler) GetEstablishmentByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	establishment, err := h.establishmentService.GetEstablishmentByID(c, id)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": "Establishment not found"})
		return
	}
	c.JSON(http.StatusOK, establishment)
}

// GetActiveEstablishments handles GET /establishments
func (h *EstablishmentHandler) GetActiveEstablishments(c *gin.Context) {
	establishments, err := h.establishmentService.GetActiveEstablishments(c)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": "Failed to get establishments: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, establishments)
}
