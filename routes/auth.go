package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/kaintayo/food-rescue-api/controllers"
	"github.com/kaintayo/food-rescue-api/middleware"
)

// SetupAuthRoutes configures all authentication related routes
func SetupAuthRoutes(app *fiber.App) {
	auth := app.Group("/auth")

	// Public routes
	auth.Post("/register", controllers.Register)
	auth.Post("/login", controllers.Login)
	auth.Post("/refresh", controllers.RefreshToken)
	auth.Get("/landing", controllers.Landing)
	auth.Get("/oauth/google", controllers.GoogleLogin)
	auth.Get("/oauth/google/callback", controllers.GoogleCallback)

	// Protected routes
	auth.Get("/me", middleware.Protected(), controllers.GetUserProfile)
	auth.Post("/logout", middleware.Protected(), controllers.Logout)
}
