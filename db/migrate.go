package db

import (
	"fmt"
	"log"

	"github.com/kaintayo/food-rescue-api/models"
)

// Migrate creates or updates the schema for every record type. It is safe to
// call as a standalone entry point; the connection is established first if
// Init has not run yet.
func Migrate() {
	if DB == nil {
		Init()
	}

	err := DB.AutoMigrate(
		&models.User{},
		&models.Listing{},
	)
	if err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	fmt.Println("✅ Migrations applied successfully!")
}
