package main

import (
	"log"

	"donation-tracker-backend/internal/config"
	"donation-tracker-backend/internal/models"
	"donation-tracker-backend/internal/repositories"
	"donation-tracker-backend/internal/utils"
	"donation-tracker-backend/pkg/database"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	// Load configuration
	cfg, err := config.NewConfigFromEnv()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	// Initialize database
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Database connection error: %v", err)
	}

	// Run migrations
	if err := repositories.AutoMigrate(db); err != nil {
		log.Fatalf("Migration error: %v", err)
	}

	log.Println("✅ Database migrations completed successfully")

	// Create default admin user if not exists
	if err := createDefaultAdmin(db); err != nil {
		log.Fatalf("Failed to create default admin: %v", err)
	}

	log.Println("✅ Default admin user created (if not exists)")
	log.Println("🎉 Migration process completed!")
}

func createDefaultAdmin(db *gorm.DB) error {
	adminEmail := "admin@donation.local"
	adminPassword := "admin123"

	// Check if admin already exists
	var existingAdmin models.User
	if err := db.Where("email = ?", adminEmail).First(&existingAdmin).Error; err == nil {
		log.Println("ℹ️  Default admin user already exists")
		return nil
	}

	// Hash password
	hashedPassword, err := utils.HashPassword(adminPassword)
	if err != nil {
		return err
	}

	// Create credential row plus its profile in one transaction
	return db.Transaction(func(tx *gorm.DB) error {
		admin := &models.User{
			Email:    adminEmail,
			Password: hashedPassword,
		}
		if err := tx.Create(admin).Error; err != nil {
			return err
		}

		profile := &models.UserProfile{
			ID:          admin.ID,
			DisplayName: "ผู้ดูแลระบบ",
			Role:        "แอดมิน",
			IsActive:    true,
		}
		if err := tx.Create(profile).Error; err != nil {
			return err
		}

		log.Printf("✅ Default admin user created:")
		log.Printf("   Email: %s", adminEmail)
		log.Printf("   Password: %s", adminPassword)
		log.Printf("   Role: %s", profile.Role)
		return nil
	})
}
