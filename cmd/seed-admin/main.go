// Creates or updates the admin account from ADMIN_EMAIL / ADMIN_PASSWORD.
// cmd/seed-admin/main.go
package main

import (
	"errors"
	"log"
	"os"
	"strings"

	"omi-stitch-api/config"
	"omi-stitch-api/models"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	email := strings.ToLower(strings.TrimSpace(os.Getenv("ADMIN_EMAIL")))
	password := os.Getenv("ADMIN_PASSWORD")
	name := os.Getenv("ADMIN_NAME")
	if email == "" || password == "" {
		log.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD are required")
	}
	if name == "" {
		name = "OMI Admin"
	}

	// Initialize database
	config.InitDB()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	var admin models.AdminUser
	err = config.DB.Where("email = ?", email).First(&admin).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		admin = models.AdminUser{
			Email:        email,
			PasswordHash: string(hash),
			DisplayName:  name,
			IsActive:     true,
		}
		if err := config.DB.Create(&admin).Error; err != nil {
			log.Fatal("Failed to create admin:", err)
		}
		log.Printf("Created admin account %s\n", email)
	case err != nil:
		log.Fatal("Failed to look up admin:", err)
	default:
		updates := map[string]interface{}{
			"password_hash": string(hash),
			"display_name":  name,
			"is_active":     true,
		}
		if err := config.DB.Model(&admin).Updates(updates).Error; err != nil {
			log.Fatal("Failed to update admin:", err)
		}
		log.Printf("Updated admin account %s\n", email)
	}
}
