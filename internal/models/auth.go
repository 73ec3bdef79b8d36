package models

// LoginRequest defines the structure for login requests
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest defines the structure for registration requests
type RegisterRequest struct {
	DisplayName string `json:"displayName" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
}

// LoginResponse carries the signed token back to the client
type LoginResponse struct {
	Token   string   `json:"token"`
	Account *Account `json:"account"`
}

// ScanRequest is the body of a scan submission. AccountID is the raw QR
// payload: the scanned customer's account id hex string, nothing more.
type ScanRequest struct {
	AccountID string `json:"accountId" binding:"required"`
	OfferID   string `json:"offerId" binding:"required"`
}

// UpdateRoleRequest changes an account's role
type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=SUPER_ADMIN ADMIN USER"`
}

// ManagedCafeRequest adds or removes an establishment from an admin's
// managed set
type ManagedCafeRequest struct {
	EstablishmentID string `json:"establishmentId" binding:"required"`
}

// EstablishmentRequest is the create/update body for establishments
type EstablishmentRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// OfferRequest is the create/update body for offers
type OfferRequest struct {
	EstablishmentID string  `json:"establishmentId" binding:"required"`
	Name            string  `json:"name" binding:"required"`
	Description     string  `json:"description"`
	ScaleSize       int     `json:"scaleSize" binding:"required,min=1"`
	Price           float64 `json:"price"`
}
