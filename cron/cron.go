package cron

import (
	"fmt"
	"log"
	"time"

	"github.com/kaintayo/food-rescue-api/db"
	"github.com/kaintayo/food-rescue-api/models"
	"github.com/robfig/cron/v3"
)

// StartCronJobs initializes and starts the cron scheduler for the listing
// expiry sweep
func StartCronJobs() {
	fmt.Println("Starting cron job scheduler...")
	c := cron.New()
	// Run every 5 minutes to expire listings whose pickup window has closed
	_, err := c.AddFunc("*/5 * * * *", expireStaleListings)
	if err != nil {
		log.Fatalf("Failed to add cron job: %v", err)
	}
	c.Start()
	log.Println("Cron job scheduler started for listing expiry")
}

// expireStaleListings marks Available listings whose pickup window has
// passed as Expired. Claimed listings are left alone so the provider and
// claimer can still settle the handoff.
func expireStaleListings() {
	result := db.DB.Model(&models.Listing{}).
		Where("status = ? AND pickup_window_end < ?", models.StatusAvailable, time.Now()).
		Update("status", models.StatusExpired)
	if result.Error != nil {
		log.Printf("Error expiring stale listings: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		log.Printf("Expired %d stale listings", result.RowsAffected)
	}
}
