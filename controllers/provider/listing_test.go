package provider

import (
	"testing"

	"github.com/kaintayo/food-rescue-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() CreateListingInput {
	return CreateListingInput{
		FoodName:          "Sourdough Bread",
		Category:          "Baked Goods",
		Quantity:          "5 loaves",
		PickupAddress:     "123 Main St",
		PickupDate:        "2025-06-01",
		PickupWindowStart: "09:00",
		PickupWindowEnd:   "11:00",
	}
}

func TestCreateListingInputValidate(t *testing.T) {
	in := validInput()
	assert.NoError(t, in.Validate())

	cases := []struct {
		name  string
		unset func(*CreateListingInput)
	}{
		{"food_name", func(in *CreateListingInput) { in.FoodName = "" }},
		{"category", func(in *CreateListingInput) { in.Category = "" }},
		{"quantity", func(in *CreateListingInput) { in.Quantity = "" }},
		{"pickup_address", func(in *CreateListingInput) { in.PickupAddress = "" }},
		{"pickup_date", func(in *CreateListingInput) { in.PickupDate = "" }},
		{"pickup_window_start", func(in *CreateListingInput) { in.PickupWindowStart = "" }},
		{"pickup_window_end", func(in *CreateListingInput) { in.PickupWindowEnd = "" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.unset(&in)
			err := in.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.name)
		})
	}
}

func TestBuildListing(t *testing.T) {
	in := validInput()
	in.Description = "Freshly baked today"

	listing, err := in.BuildListing(42)
	require.NoError(t, err)

	assert.Equal(t, uint(42), listing.ProviderID)
	assert.Equal(t, models.StatusAvailable, listing.Status)
	assert.Equal(t, "2025-06-01T00:00:00", listing.PickupDate.Format("2006-01-02T15:04:05"))
	assert.Equal(t, "2025-06-01T09:00:00", listing.PickupWindowStart.Format("2006-01-02T15:04:05"))
	assert.Equal(t, "2025-06-01T11:00:00", listing.PickupWindowEnd.Format("2006-01-02T15:04:05"))

	// Coordinates stay nil when the form leaves them empty
	assert.Nil(t, listing.Latitude)
	assert.Nil(t, listing.Longitude)
	assert.Nil(t, listing.ClaimedByID)
}

func TestBuildListingWithCoordinates(t *testing.T) {
	in := validInput()
	lat, lng := 14.5995, 120.9842
	in.Latitude = &lat
	in.Longitude = &lng

	listing, err := in.BuildListing(7)
	require.NoError(t, err)
	require.NotNil(t, listing.Latitude)
	require.NotNil(t, listing.Longitude)
	assert.Equal(t, lat, *listing.Latitude)
	assert.Equal(t, lng, *listing.Longitude)
}

func TestBuildListingBadWindow(t *testing.T) {
	in := validInput()
	in.PickupWindowStart = "nine"
	_, err := in.BuildListing(1)
	assert.Error(t, err)
}
