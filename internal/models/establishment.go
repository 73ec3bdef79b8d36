package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Establishment represents a participating cafe. Establishments are never
// hard-deleted; deactivation flips the Active flag so historical ledger
// entries keep resolving.
type Establishment struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Category    string             `bson:"category" json:"category"`
	Active      bool               `bson:"active" json:"active"`
	CreatedBy   primitive.ObjectID `bson:"createdBy" json:"createdBy"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
