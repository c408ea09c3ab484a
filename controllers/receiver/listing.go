package receiver

import (
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/kaintayo/food-rescue-api/db"
	"github.com/kaintayo/food-rescue-api/models"
	"github.com/kaintayo/food-rescue-api/utils"
)

// ListingSummary is the display-ready projection of a browse result.
type ListingSummary struct {
	ID                uint      `json:"id"`
	FoodItemName      string    `json:"food_item_name"`
	Category          string    `json:"category"`
	QuantityUnit      string    `json:"quantity_unit"`
	Description       string    `json:"description"`
	Allergens         string    `json:"allergens"`
	PickupAddress     string    `json:"pickup_address"`
	PickupWindowStart time.Time `json:"pickup_window_start"`
	PickupWindowEnd   time.Time `json:"pickup_window_end"`
	PhotoURL          string    `json:"photo_url,omitempty"`
	ProviderName      string    `json:"provider_name"`
	CreatedAt         time.Time `json:"created_at"`
}

func summarize(l models.Listing) ListingSummary {
	name := l.Provider.DisplayName
	if name == "" {
		name = "Unknown Provider"
	}
	return ListingSummary{
		ID:                l.ID,
		FoodItemName:      l.FoodName,
		Category:          l.Category,
		QuantityUnit:      l.Quantity,
		Description:       l.Description,
		Allergens:         l.Allergens,
		PickupAddress:     l.PickupAddress,
		PickupWindowStart: l.PickupWindowStart,
		PickupWindowEnd:   l.PickupWindowEnd,
		PhotoURL:          l.PhotoURL,
		ProviderName:      name,
		CreatedAt:         l.CreatedAt,
	}
}

// BrowseListings returns listings a receiver can still claim: Available and
// with a pickup window that has not closed. ?location= narrows by a
// case-insensitive substring of the pickup address.
func BrowseListings(c *fiber.Ctx) error {
	query := db.DB.Preload("Provider").
		Where("status = ? AND pickup_window_end > ?", models.StatusAvailable, time.Now())

	if location := c.Query("location"); location != "" {
		query = query.Where("pickup_address ILIKE ?", "%"+location+"%")
	}

	var listings []models.Listing
	if err := query.Order("created_at DESC").Find(&listings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to load available listings",
			Error:   err.Error(),
		})
	}

	summaries := make([]ListingSummary, 0, len(listings))
	for _, l := range listings {
		summaries = append(summaries, summarize(l))
	}

	return c.JSON(summaries)
}

// GetListing returns a single listing with its provider's display name.
func GetListing(c *fiber.Ctx) error {
	id := c.Params("id")

	var listing models.Listing
	if err := db.DB.Preload("Provider").First(&listing, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Listing not found.",
		})
	}

	listing.Provider.Password = ""
	if listing.ClaimedBy != nil {
		listing.ClaimedBy.Password = ""
	}

	return c.JSON(listing)
}

// ClaimListing reserves an Available listing for the authenticated receiver.
//
// The advisory status read gives early feedback when the page was stale; the
// conditional update below is the actual guard. Its WHERE clause re-checks
// status server-side, so of two concurrent claimants exactly one update
// matches a row. RowsAffected == 0 means someone else won and the claim is a
// conflict, never a silent success.
func ClaimListing(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "You must be logged in to claim a listing.",
		})
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid listing ID"})
	}

	var listing models.Listing
	if err := db.DB.First(&listing, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Listing not found.",
		})
	}

	if !listing.Claimable() {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "This listing has already been claimed.",
		})
	}

	result := db.DB.Model(&models.Listing{}).
		Where("id = ? AND status = ?", id, models.StatusAvailable).
		Updates(map[string]interface{}{
			"status":        models.StatusClaimed,
			"claimed_by_id": userID,
			"updated_at":    time.Now(),
		})
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to claim listing",
			Error:   result.Error.Error(),
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "This listing has already been claimed.",
		})
	}

	if err := db.DB.Preload("Provider").Preload("ClaimedBy").First(&listing, id).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Claim succeeded but listing could not be reloaded",
			Error:   err.Error(),
		})
	}

	listing.Provider.Password = ""
	if listing.ClaimedBy != nil {
		listing.ClaimedBy.Password = ""
	}

	go notifyProvider(listing)

	return c.JSON(fiber.Map{
		"message": "Successfully claimed!",
		"listing": listing,
	})
}

// notifyProvider emails the provider that their listing was claimed. Failures
// are logged; the claim has already succeeded.
func notifyProvider(listing models.Listing) {
	if listing.Provider.Email == "" {
		return
	}

	claimer := "A receiver"
	if listing.ClaimedBy != nil && listing.ClaimedBy.DisplayName != "" {
		claimer = listing.ClaimedBy.DisplayName
	}

	subject := fmt.Sprintf("Your listing %q has been claimed", listing.FoodName)
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>%s has claimed your food listing.</p>
		<p><strong>Details:</strong></p>
		<ul>
			<li><strong>Item:</strong> %s</li>
			<li><strong>Quantity:</strong> %s</li>
			<li><strong>Pickup window:</strong> %s to %s</li>
			<li><strong>Pickup address:</strong> %s</li>
		</ul>
		<p>Please have the items ready for pickup.</p>
		<p>Best regards,</p>
		<p>The KainTayo Team</p>
	`, listing.Provider.DisplayName, claimer, listing.FoodName, listing.Quantity,
		listing.PickupWindowStart.Format("2006-01-02 15:04"),
		listing.PickupWindowEnd.Format("2006-01-02 15:04"),
		listing.PickupAddress)

	if err := utils.SendEmail(listing.Provider.Email, subject, body); err != nil {
		log.Printf("Failed to send claim notification for listing %d: %v", listing.ID, err)
	}
}
