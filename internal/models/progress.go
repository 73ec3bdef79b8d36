package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProgressRecord tracks one account's stamps toward one offer's reward.
// There is at most one record per (account, establishment, offer) triple,
// upserted on every scan. Progress wraps to zero when a reward is issued;
// TotalScans and RewardsReceived only ever grow.
type ProgressRecord struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	AccountID       primitive.ObjectID `bson:"accountId" json:"accountId"`
	EstablishmentID primitive.ObjectID `bson:"establishmentId" json:"establishmentId"`
	OfferID         primitive.ObjectID `bson:"offerId" json:"offerId"`
	Progress        int                `bson:"progress" json:"progress"`
	TotalScans      int                `bson:"totalScans" json:"totalScans"`
	RewardsReceived int                `bson:"rewardsReceived" json:"rewardsReceived"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}
