package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LedgerEntry is the immutable audit record of one scan event. Entries are
// append-only: nothing in the system updates or deletes them, so the ledger
// is the source of truth the progress counters can be audited against.
type LedgerEntry struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	AccountID       primitive.ObjectID `bson:"accountId" json:"accountId"`
	AdminID         primitive.ObjectID `bson:"adminId" json:"adminId"`
	EstablishmentID primitive.ObjectID `bson:"establishmentId" json:"establishmentId"`
	OfferID         primitive.ObjectID `bson:"offerId" json:"offerId"`
	Description     string             `bson:"description" json:"description"`
	Progress        int                `bson:"progress" json:"progress"`
	RewardIssued    bool               `bson:"rewardIssued" json:"rewardIssued"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
}

// ScanResult is returned to the scanning client after a committed scan and
// drives which confirmation message the app shows.
type ScanResult struct {
	RewardAchieved  bool `json:"rewardAchieved"`
	Progress        int  `json:"progress"`
	ScaleSize       int  `json:"scaleSize"`
	TotalScans      int  `json:"totalScans"`
	RewardsReceived int  `json:"rewardsReceived"`
}
