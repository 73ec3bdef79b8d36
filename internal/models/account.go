package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles assigned to accounts. The first account ever registered becomes
// SUPER_ADMIN; everyone after that starts as USER.
const (
	RoleSuperAdmin = "SUPER_ADMIN"
	RoleAdmin      = "ADMIN"
	RoleUser       = "USER"
)

// Account represents an authenticated member of the loyalty program,
// customer and staff alike. Staff are distinguished only by role and by
// the set of establishments they manage.
type Account struct {
	ID              primitive.ObjectID   `bson:"_id,omitempty" json:"id,omitempty"`
	Email           string               `bson:"email" json:"email"`
	DisplayName     string               `bson:"displayName" json:"displayName"`
	Password        string               `bson:"password" json:"-"`
	Role            string               `bson:"role" json:"role"`
	ManagedCafes    []primitive.ObjectID `bson:"managedCafes" json:"managedCafes"`
	CreatedAt       time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// CanScan reports whether the account may record scans for the given
// establishment. Super admins may scan anywhere; admins only at
// establishments they manage; regular users never.
func (a *Account) CanScan(establishmentID primitive.ObjectID) bool {
	switch a.Role {
	case RoleSuperAdmin:
		return true
	case RoleAdmin:
		for _, id := range a.ManagedCafes {
			if id == establishmentID {
				return true
			}
		}
	}
	return false
}

// IsStaff reports whether the account holds any administrative role.
func (a *Account) IsStaff() bool {
	return a.Role == RoleAdmin || a.Role == RoleSuperAdmin
}
