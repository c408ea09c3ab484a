package provider

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/kaintayo/food-rescue-api/db"
	"github.com/kaintayo/food-rescue-api/models"
	"github.com/kaintayo/food-rescue-api/utils"
)

// CreateListingInput is the form payload for a new listing. Dates and times
// arrive as the separate fields the form collects and are combined into
// timestamps before the insert.
type CreateListingInput struct {
	FoodName          string   `json:"food_name"`
	Category          string   `json:"category"`
	Quantity          string   `json:"quantity"`
	Description       string   `json:"description"`
	Allergens         string   `json:"allergens"`
	PickupAddress     string   `json:"pickup_address"`
	Latitude          *float64 `json:"latitude"`
	Longitude         *float64 `json:"longitude"`
	PickupDate        string   `json:"pickup_date"`
	PickupWindowStart string   `json:"pickup_window_start"`
	PickupWindowEnd   string   `json:"pickup_window_end"`
	ContactPerson     string   `json:"contact_person"`
	ContactNumber     string   `json:"contact_number"`
}

// Validate checks the required fields before anything is sent to the store.
func (in *CreateListingInput) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"food_name", in.FoodName},
		{"category", in.Category},
		{"quantity", in.Quantity},
		{"pickup_address", in.PickupAddress},
		{"pickup_date", in.PickupDate},
		{"pickup_window_start", in.PickupWindowStart},
		{"pickup_window_end", in.PickupWindowEnd},
	}
	for _, field := range required {
		if field.value == "" {
			return fmt.Errorf("missing required field: %s", field.name)
		}
	}
	return nil
}

// BuildListing normalizes the input into a Listing owned by the given
// provider. Status is always forced to Available regardless of the payload.
func (in *CreateListingInput) BuildListing(providerID uint) (models.Listing, error) {
	window, err := utils.CombinePickupWindow(in.PickupDate, in.PickupWindowStart, in.PickupWindowEnd)
	if err != nil {
		return models.Listing{}, err
	}

	return models.Listing{
		ProviderID:        providerID,
		FoodName:          in.FoodName,
		Category:          in.Category,
		Quantity:          in.Quantity,
		Description:       in.Description,
		Allergens:         in.Allergens,
		PickupAddress:     in.PickupAddress,
		Latitude:          in.Latitude,
		Longitude:         in.Longitude,
		PickupDate:        window.Date,
		PickupWindowStart: window.Start,
		PickupWindowEnd:   window.End,
		ContactPerson:     in.ContactPerson,
		ContactNumber:     in.ContactNumber,
		Status:            models.StatusAvailable,
	}, nil
}

func currentUserID(c *fiber.Ctx) (uint, error) {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return 0, errors.New("User ID not found in context")
	}
	return userID, nil
}

// CreateListing inserts a new listing owned by the authenticated provider.
func CreateListing(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	input := new(CreateListingInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	if err := input.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Please fill in all required fields",
			Error:   err.Error(),
		})
	}

	listing, err := input.BuildListing(userID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid pickup date or time",
			Error:   err.Error(),
		})
	}

	if err := db.DB.Create(&listing).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create listing",
			Error:   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(listing)
}

// GetMyListings returns the provider's own listings newest-first, with the
// claimer's profile joined for claimed ones. ?active=true narrows to
// Available and CLAIMED listings.
func GetMyListings(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	query := db.DB.Preload("ClaimedBy").
		Where("provider_id = ?", userID).
		Order("created_at DESC")

	if c.Query("active") == "true" {
		query = query.Where("status IN ?", []models.ListingStatus{models.StatusAvailable, models.StatusClaimed})
	}

	var listings []models.Listing
	if err := query.Find(&listings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch your listings",
			Error:   err.Error(),
		})
	}

	for i := range listings {
		if listings[i].ClaimedBy != nil {
			listings[i].ClaimedBy.Password = ""
		}
	}

	return c.JSON(listings)
}

// MarkPickedUp transitions a listing to PickedUp. The update is scoped to
// both the listing ID and the owning provider, so one provider's action can
// never touch another provider's rows or its own other listings.
func MarkPickedUp(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid listing ID"})
	}

	var listing models.Listing
	if db.DB.Where("id = ? AND provider_id = ?", id, userID).First(&listing).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Listing not found"})
	}

	if err := listing.CanTransition(models.StatusPickedUp); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	result := db.DB.Model(&models.Listing{}).
		Where("id = ? AND provider_id = ?", id, userID).
		Update("status", models.StatusPickedUp)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to mark listing as picked up",
			Error:   result.Error.Error(),
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Listing not found"})
	}

	listing.Status = models.StatusPickedUp
	return c.JSON(listing)
}

// DeleteListing removes a listing scoped by (id, provider_id). A delete for
// someone else's listing affects zero rows and reports not found.
func DeleteListing(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid listing ID"})
	}

	var listing models.Listing
	if db.DB.Where("id = ? AND provider_id = ?", id, userID).First(&listing).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Listing not found"})
	}

	if !listing.Deletable() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Picked up listings cannot be deleted",
		})
	}

	result := db.DB.Where("id = ? AND provider_id = ?", id, userID).Delete(&models.Listing{})
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to delete listing",
			Error:   result.Error.Error(),
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Listing not found"})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// UploadListingPhoto attaches a photo to one of the provider's listings.
func UploadListingPhoto(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid listing ID"})
	}

	var listing models.Listing
	if db.DB.Where("id = ? AND provider_id = ?", id, userID).First(&listing).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Listing not found"})
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Photo file is required"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to read uploaded file",
			Error:   err.Error(),
		})
	}
	defer file.Close()

	url, err := utils.UploadListingPhoto(file, fmt.Sprintf("listing-%d", listing.ID))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to upload photo",
			Error:   err.Error(),
		})
	}

	if err := db.DB.Model(&models.Listing{}).
		Where("id = ? AND provider_id = ?", id, userID).
		Update("photo_url", url).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to save photo URL",
			Error:   err.Error(),
		})
	}

	listing.PhotoURL = url
	return c.JSON(listing)
}
