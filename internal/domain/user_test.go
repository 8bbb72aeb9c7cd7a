package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanChatWith(t *testing.T) {
	cases := []struct {
		a, b UserRole
		want bool
	}{
		{RoleGuest, RoleReceptionist, true},
		{RoleReceptionist, RoleGuest, true},
		{RoleReceptionist, RoleReceptionist, true},
		{RoleReceptionist, RoleManager, true},
		{RoleGuest, RoleGuest, false},
		{RoleGuest, RoleManager, false},
		{RoleHousekeeping, RoleHotelStaff, false},
		{RoleAdmin, RoleReceptionist, true},
		{UserRole("owner"), RoleReceptionist, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, CanChatWith(tc.a, tc.b), "%s <-> %s", tc.a, tc.b)
	}
}

func TestUserRole_Capabilities(t *testing.T) {
	assert.False(t, RoleGuest.IsStaff())
	assert.True(t, RoleHousekeeping.IsStaff())
	assert.False(t, UserRole("").IsStaff())

	assert.True(t, RoleReceptionist.CanManageBookings())
	assert.False(t, RoleHotelStaff.CanManageBookings())

	assert.True(t, RoleHousekeeping.CanBeAssignedTasks())
	assert.False(t, RoleManager.CanBeAssignedTasks())
	assert.Len(t, Roles(), 6)
}
