package domain

import "time"

type UserRole string

const (
	RoleGuest        UserRole = "guest"
	RoleReceptionist UserRole = "receptionist"
	RoleHousekeeping UserRole = "housekeeping"
	RoleHotelStaff   UserRole = "hotel_staff"
	RoleManager      UserRole = "manager"
	RoleAdmin        UserRole = "admin"
)

var allRoles = []UserRole{
	RoleGuest,
	RoleReceptionist,
	RoleHousekeeping,
	RoleHotelStaff,
	RoleManager,
	RoleAdmin,
}

// Roles returns every known role in a stable order.
func Roles() []UserRole {
	out := make([]UserRole, len(allRoles))
	copy(out, allRoles)
	return out
}

func (r UserRole) Valid() bool {
	for _, known := range allRoles {
		if r == known {
			return true
		}
	}
	return false
}

// IsStaff reports whether the role belongs to hotel personnel. Staff
// connections also receive events published on StaffChannel.
func (r UserRole) IsStaff() bool {
	return r.Valid() && r != RoleGuest
}

// CanManageBookings reports whether the role may drive the booking lifecycle.
func (r UserRole) CanManageBookings() bool {
	switch r {
	case RoleReceptionist, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// CanBeAssignedTasks reports whether housekeeping tasks may be assigned to the role.
func (r UserRole) CanBeAssignedTasks() bool {
	return r == RoleHousekeeping || r == RoleHotelStaff
}

// CanChatWith decides chat partner visibility. Receptionists are the hub of
// every conversation: they may talk to anyone, everyone else talks to them.
func CanChatWith(a, b UserRole) bool {
	if !a.Valid() || !b.Valid() {
		return false
	}
	return a == RoleReceptionist || b == RoleReceptionist
}

type User struct {
	ID           string    `json:"id" gorm:"primaryKey;size:36"`
	Username     string    `json:"username" gorm:"not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Role         UserRole  `json:"role" gorm:"not null;default:'guest'"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }

// Principal is the verified caller of an operation.
type Principal struct {
	UserID string
	Role   UserRole
}

// StaffChannel is the broadcast channel every staff connection joins.
const StaffChannel = "staff"
