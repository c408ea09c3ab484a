package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type ListingStatus string

const (
	StatusAvailable ListingStatus = "Available"
	StatusClaimed   ListingStatus = "CLAIMED"
	StatusPickedUp  ListingStatus = "PickedUp"
	StatusExpired   ListingStatus = "Expired"
)

// Listing is a single food-donation offer with a pickup window. Latitude and
// longitude are pointers so an unset coordinate is omitted from inserts
// instead of written as zero.
type Listing struct {
	ID                uint          `json:"id" gorm:"primaryKey"`
	ProviderID        uint          `json:"provider_id"`
	Provider          User          `json:"provider,omitempty" gorm:"foreignKey:ProviderID"`
	FoodName          string        `json:"food_name"`
	Category          string        `json:"category"`
	Quantity          string        `json:"quantity"`
	Description       string        `json:"description"`
	Allergens         string        `json:"allergens"`
	PickupAddress     string        `json:"pickup_address"`
	Latitude          *float64      `json:"latitude,omitempty"`
	Longitude         *float64      `json:"longitude,omitempty"`
	PickupDate        time.Time     `json:"pickup_date"`
	PickupWindowStart time.Time     `json:"pickup_window_start"`
	PickupWindowEnd   time.Time     `json:"pickup_window_end"`
	ContactPerson     string        `json:"contact_person"`
	ContactNumber     string        `json:"contact_number"`
	PhotoURL          string        `json:"photo_url,omitempty"`
	Status            ListingStatus `json:"status"`
	ClaimedByID       *uint         `json:"claimed_by_id,omitempty"`
	ClaimedBy         *User         `json:"claimed_by,omitempty" gorm:"foreignKey:ClaimedByID"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
}

func (l *Listing) BeforeCreate(tx *gorm.DB) error {
	if l.Status == "" {
		l.Status = StatusAvailable
	}
	return nil
}

// CanTransition validates a status change against the listing lifecycle:
// Available -> CLAIMED -> PickedUp, Available -> Expired, and a provider may
// mark Available, CLAIMED or Expired listings as PickedUp. PickedUp is
// terminal.
func (l *Listing) CanTransition(next ListingStatus) error {
	switch l.Status {
	case StatusAvailable:
		if next != StatusClaimed && next != StatusPickedUp && next != StatusExpired {
			return fmt.Errorf("invalid transition from %s to %s", l.Status, next)
		}
	case StatusClaimed, StatusExpired:
		if next != StatusPickedUp {
			return fmt.Errorf("invalid transition from %s to %s", l.Status, next)
		}
	case StatusPickedUp:
		return fmt.Errorf("no transitions allowed from %s", l.Status)
	default:
		return fmt.Errorf("unknown listing status %s", l.Status)
	}
	return nil
}

// Claimable reports whether a receiver could still claim the listing. It is
// advisory only; the conditional update in the claim handler is what actually
// prevents double-claiming.
func (l *Listing) Claimable() bool {
	return l.Status == StatusAvailable
}

// Deletable reports whether the owning provider may still remove the listing.
func (l *Listing) Deletable() bool {
	return l.Status != StatusPickedUp
}
