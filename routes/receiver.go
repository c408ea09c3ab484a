package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/kaintayo/food-rescue-api/controllers/receiver"
	"github.com/kaintayo/food-rescue-api/middleware"
	"github.com/kaintayo/food-rescue-api/models"
)

// SetupReceiverRoutes configures all receiver browse and claim routes
func SetupReceiverRoutes(app *fiber.App) {
	receiverGroup := app.Group("/receiver", middleware.Protected(), middleware.RequireRole(models.RoleReceiver))
	receiverGroup.Get("/listings", receiver.BrowseListings)
	receiverGroup.Get("/listings/:id", receiver.GetListing)
	receiverGroup.Post("/listings/:id/claim", receiver.ClaimListing)
}
