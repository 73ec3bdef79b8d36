package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestAccount_CanScan(t *testing.T) {
	cafe := primitive.NewObjectID()
	otherCafe := primitive.NewObjectID()

	superAdmin := &Account{Role: RoleSuperAdmin}
	admin := &Account{Role: RoleAdmin, ManagedCafes: []primitive.ObjectID{cafe}}
	user := &Account{Role: RoleUser, ManagedCafes: []primitive.ObjectID{cafe}}

	assert.True(t, superAdmin.CanScan(cafe))
	assert.True(t, superAdmin.CanScan(otherCafe))

	assert.True(t, admin.CanScan(cafe))
	assert.False(t, admin.CanScan(otherCafe))

	// Managed cafes never grant rights without the role.
	assert.False(t, user.CanScan(cafe))
}

func TestAccount_IsStaff(t *testing.T) {
	assert.True(t, (&Account{Role: RoleSuperAdmin}).IsStaff())
	assert.True(t, (&Account{Role: RoleAdmin}).IsStaff())
	assert.False(t, (&Account{Role: RoleUser}).IsStaff())
	assert.False(t, (&Account{}).IsStaff())
}
