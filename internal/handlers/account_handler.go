package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/cafestamp/cafestamp-backend/internal/models"
	"github.com/cafestamp/cafestamp-backend/internal/services"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AccountHandler handles account-related HTTP requests
type AccountHandler struct {
	accountService *services.AccountService
}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler(accountService *services.AccountService) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
	}
}

// GetMe handles GET /accounts/me. The returned id doubles as the QR payload
// the client renders for staff to scan.
func (h *AccountHandler) GetMe(c *gin.Context) {
	id, ok := callerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token subject"})
		return
	}

	account, err := h.accountService.GetAccountByID(c, id)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": "Account not found"})
		return
	}
	c.JSON(http.StatusOK, account)
}

// GetAllAccounts handles GET /accounts
func (h *AccountHandler) GetAllAccounts(c *gin.Context) {
	id, ok := callerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token subject"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	accounts, err := h.accountService.GetAllAccounts(c, id, page, limit)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": "Failed to get accounts: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, accounts)
}

// UpdateRole handles PUT /accounts/:id/role
func (h *AccountHandler) UpdateRole(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token subject"})
		return
	}

	accountID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	var req models.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.accountService.UpdateRole(c, caller, accountID, req.Role); err != nil {
		c.JSON(statusFromError(err), gin.H{"error": "Failed to update role: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

// AddManagedCafe handles POST /accounts/:id/managed-cafes
func (h *AccountHandler) AddManagedCafe(c *gin.Context) {
	h.changeManagedCafe(c, h.accountService.AddManagedCafe)
}

// RemoveManagedCafe handles DELETE /accounts/:id/managed-cafes
func (h *AccountHandler) RemoveManagedCafe(c *gin.Context) {
	h.changeManagedCafe(c, h.accountService.RemoveManagedCafe)
}

func (h *AccountHandler) changeManagedCafe(c *gin.Context, apply func(ctx context.Context, callerID, accountID, establishmentID primitive.ObjectID) error) {
	caller, ok := callerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token subject"})
		return
	}

	accountID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	var req models.ManagedCafeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	establishmentID, err := primitive.ObjectIDFromHex(req.EstablishmentID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid establishment ID format"})
		return
	}

	if err := apply(c, caller, accountID, establishmentID); err != nil {
		c.JSON(statusFromError(err), gin.H{"error": "Failed to update managed cafes: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}
