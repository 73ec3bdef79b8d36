package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Offer is a tracked reward program tied to one establishment: collect
// ScaleSize stamps, get the reward. Like establishments, offers are
// soft-deleted via the Active flag.
//
// ScaleSize may be edited after scans have accrued; existing progress
// records are not reconciled, the next scan is simply compared against
// the new threshold.
type Offer struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	EstablishmentID primitive.ObjectID `bson:"establishmentId" json:"establishmentId"`
	Name            string             `bson:"name" json:"name"`
	Description     string             `bson:"description" json:"description"`
	ScaleSize       int                `bson:"scaleSize" json:"scaleSize"`
	Price           float64            `bson:"price" json:"price"`
	Active          bool               `bson:"active" json:"active"`
	CreatedBy       primitive.ObjectID `bson:"createdBy" json:"createdBy"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}
