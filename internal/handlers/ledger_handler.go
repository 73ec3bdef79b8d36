package handlers

import (
	"net/http"

	"github.com/cafestamp/cafestamp-backend/internal/models"
	"github.com/cafestamp/cafestamp-backend/internal/services"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LedgerHandler handles scan and history HTTP requests
type LedgerHandler struct {
	ledgerService services.LedgerService
}

// NewLedgerHandler creates a new LedgerHandler
func NewLedgerHandler(ledgerService services.LedgerService) *LedgerHandler {
	return &LedgerHandler{
		ledgerService: ledgerService,
	}
}

// RecordScan handles POST /scans. The request body carries the QR payload
// (the scanned customer's account id) and the offer being stamped; the
// authenticated caller is the scanning actor.
func (h *LedgerHandler) RecordScan(c *gin.Context) {
	actorID, ok := callerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token subject"})
		return
	}

	var req models.ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	accountID, err := primitive.ObjectIDFromHex(req.AccountID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid account ID format"})
		return
	}
	offerID, err := primitive.ObjectIDFromHex(req.OfferID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid offer ID format"})
		return
	}

	result, err := h.ledgerService.RecordScan(c, actorID, accountID, offerID)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": "Failed to record scan: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetHistory handles GET /history
func (h *LedgerHandler) GetHistory(c *gin.Context) {
	id, ok := callerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token subject"})
		return
	}

	entries, err := h.ledgerService.ListHistory(c, id)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": "Failed to get history: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, entries)
}

// GetMyProgress handles GET /accounts/me/progress
func (h *LedgerHandler) GetMyProgress(c *gin.Context) {
	id, ok := callerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token subject"})
		return
	}

	records, err := h.ledgerService.ListProgress(c, id)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": "Failed to get progress: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, records)
}
