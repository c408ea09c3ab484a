package receiver

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/kaintayo/food-rescue-api/db"
	"github.com/kaintayo/food-rescue-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	tdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, tdb.AutoMigrate(&models.User{}, &models.Listing{}))
	db.DB = tdb
}

// claimApp mounts ClaimListing behind a stand-in for the auth middleware that
// pins the caller's identity.
func claimApp(userID uint) *fiber.App {
	app := fiber.New()
	app.Post("/receiver/listings/:id/claim", func(c *fiber.Ctx) error {
		c.Locals("userID", userID)
		return ClaimListing(c)
	})
	return app
}

func seedClaimScenario(t *testing.T) (models.Listing, models.User, models.User) {
	t.Helper()

	// Provider has no email so no claim notification is attempted
	provider := models.User{DisplayName: "Corner Bakery", Role: models.RoleProvider}
	require.NoError(t, db.DB.Create(&provider).Error)

	first := models.User{DisplayName: "Food Bank", Email: "bank@example.com", Role: models.RoleReceiver}
	require.NoError(t, db.DB.Create(&first).Error)

	second := models.User{DisplayName: "Shelter", Email: "shelter@example.com", Role: models.RoleReceiver}
	require.NoError(t, db.DB.Create(&second).Error)

	listing := models.Listing{
		ProviderID:        provider.ID,
		FoodName:          "Sourdough Bread",
		Category:          "Baked Goods",
		Quantity:          "5 loaves",
		PickupAddress:     "123 Main St",
		PickupDate:        time.Now().Truncate(24 * time.Hour),
		PickupWindowStart: time.Now().Add(1 * time.Hour),
		PickupWindowEnd:   time.Now().Add(3 * time.Hour),
		Status:            models.StatusAvailable,
	}
	require.NoError(t, db.DB.Create(&listing).Error)
	require.Nil(t, listing.ClaimedByID)

	return listing, first, second
}

func doClaim(t *testing.T, app *fiber.App, listingID uint) (*http.Response, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest("POST", fmt.Sprintf("/receiver/listings/%d/claim", listingID), nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	return resp, body
}

func TestClaimListingSecondClaimerConflicts(t *testing.T) {
	setupTestDB(t)
	listing, first, second := seedClaimScenario(t)

	resp, body := doClaim(t, claimApp(first.ID), listing.ID)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Successfully claimed!", body["message"])

	resp, body = doClaim(t, claimApp(second.ID), listing.ID)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "This listing has already been claimed.", body["error"])

	var got models.Listing
	require.NoError(t, db.DB.First(&got, listing.ID).Error)
	assert.Equal(t, models.StatusClaimed, got.Status)
	require.NotNil(t, got.ClaimedByID)
	assert.Equal(t, first.ID, *got.ClaimedByID)
}

// Exercises the conditional-update guard directly: when two claimants race
// past the advisory status read, the WHERE clause still lets only one update
// match a row.
func TestClaimGuardExactlyOneRowAffected(t *testing.T) {
	setupTestDB(t)
	listing, first, second := seedClaimScenario(t)

	claimUpdate := func(userID uint) *gorm.DB {
		return db.DB.Model(&models.Listing{}).
			Where("id = ? AND status = ?", listing.ID, models.StatusAvailable).
			Updates(map[string]interface{}{
				"status":        models.StatusClaimed,
				"claimed_by_id": userID,
				"updated_at":    time.Now(),
			})
	}

	winner := claimUpdate(first.ID)
	require.NoError(t, winner.Error)
	assert.Equal(t, int64(1), winner.RowsAffected)

	loser := claimUpdate(second.ID)
	require.NoError(t, loser.Error)
	assert.Equal(t, int64(0), loser.RowsAffected)

	var got models.Listing
	require.NoError(t, db.DB.First(&got, listing.ID).Error)
	assert.Equal(t, models.StatusClaimed, got.Status)
	require.NotNil(t, got.ClaimedByID)
	assert.Equal(t, first.ID, *got.ClaimedByID)
}

func TestClaimListingNotFound(t *testing.T) {
	setupTestDB(t)
	_, first, _ := seedClaimScenario(t)

	resp, body := doClaim(t, claimApp(first.ID), 9999)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Listing not found.", body["error"])
}
