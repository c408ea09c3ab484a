package main

import (
	"fmt"
	"os"

	"github.com/gofiber/fiber/v2"

	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/kaintayo/food-rescue-api/cron"
	"github.com/kaintayo/food-rescue-api/db"
	"github.com/kaintayo/food-rescue-api/redis"
	"github.com/kaintayo/food-rescue-api/routes"
)

func main() {
	app := fiber.New()
	db.Init()
	if os.Getenv("AUTO_MIGRATE") == "true" {
		db.Migrate()
	}
	redis.InitRedis()
	cron.StartCronJobs()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("KainTayo food rescue API")
	})
	routes.SetupAuthRoutes(app)
	routes.SetupProviderRoutes(app)
	routes.SetupReceiverRoutes(app)

	app.Listen(":8000")
	fmt.Println("Server started on port 8000")
}
