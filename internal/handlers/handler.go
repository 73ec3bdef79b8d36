package handlers

import (
	"errors"
	"net/http"

	"github.com/cafestamp/cafestamp-backend/internal/repositories"
	"github.com/cafestamp/cafestamp-backend/internal/services"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// callerID extracts the authenticated account id that JWTAuthMiddleware
// stored in the context
func callerID(c *gin.Context) (primitive.ObjectID, bool) {
	v, ok := c.Get("userID")
	if !ok {
		return primitive.NilObjectID, false
	}
	hex, ok := v.(string)
	if !ok {
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}

// statusFromError maps the service/repository error taxonomy onto HTTP
// status codes
func statusFromError(err error) int {
	switch {
	case errors.Is(err, services.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, repositories.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, repositories.ErrTransactionConflict):
		return http.StatusConflict
	case errors.Is(err, repositories.ErrUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, services.ErrInvalidScaleSize):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
