package models

import (
	"time"
)

// Role is the closed set of account roles. There is no update path for a
// user's role after registration.
type Role string

const (
	RoleProvider Role = "provider"
	RoleReceiver Role = "receiver"
)

// Valid reports whether r is one of the known roles. Unknown roles are
// rejected at registration instead of falling through.
func (r Role) Valid() bool {
	return r == RoleProvider || r == RoleReceiver
}

type User struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	DisplayName     string    `json:"display_name"`
	Email           string    `json:"email" gorm:"unique"`
	Password        string    `json:"password,omitempty"`
	Role            Role      `json:"role"`
	Listings        []Listing `json:"listings,omitempty" gorm:"foreignKey:ProviderID"`
	ClaimedListings []Listing `json:"claimed_listings,omitempty" gorm:"foreignKey:ClaimedByID"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
