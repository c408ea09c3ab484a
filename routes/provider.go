package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/kaintayo/food-rescue-api/controllers/provider"
	"github.com/kaintayo/food-rescue-api/middleware"
	"github.com/kaintayo/food-rescue-api/models"
)

// SetupProviderRoutes configures all provider listing management routes
func SetupProviderRoutes(app *fiber.App) {
	providerGroup := app.Group("/provider", middleware.Protected(), middleware.RequireRole(models.RoleProvider))
	providerGroup.Get("/listings", provider.GetMyListings)
	providerGroup.Post("/listings", provider.CreateListing)
	providerGroup.Patch("/listings/:id/pickup", provider.MarkPickedUp)
	providerGroup.Post("/listings/:id/photo", provider.UploadListingPhoto)
	providerGroup.Delete("/listings/:id", provider.DeleteListing)
}
