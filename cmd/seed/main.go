package main

import (
	"context"
	"fmt"
	"log"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/taellinglin/LingTreasury/internal/config"
	"github.com/taellinglin/LingTreasury/internal/db"
	"github.com/taellinglin/LingTreasury/internal/model"
	"github.com/taellinglin/LingTreasury/internal/repository"
)

// SeedUserData describes a demo citizen to create.
type SeedUserData struct {
	Username string
	Email    string
	Password string
	Bio      string
	Balance  string
}

var demoUsers = []SeedUserData{
	{
		Username: "taellinglin",
		Email:    "taellinglin@example.com",
		Password: "changeme123",
		Bio:      "Treasurer of Ling Country.",
		Balance:  "111111111",
	},
	{
		Username: "collector",
		Email:    "collector@example.com",
		Password: "changeme123",
		Bio:      "I collect every denomination.",
		Balance:  "0",
	},
	{
		Username: "visitor",
		Email:    "visitor@example.com",
		Password: "changeme123",
		Bio:      "",
		Balance:  "0",
	},
}

func main() {
	log.Println("Starting seed script...")

	// Load configuration
	cfg := config.Load()

	// Connect to database
	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	// Run migrations to ensure schema is up to date
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.GenerationTask{},
		&model.Banknote{},
		&model.SerialNumber{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	userRepo := repository.NewUserRepository(gormDB)
	ctx := context.Background()

	log.Println("Seeding demo users into database...")
	seeded, updated, err := seedUsers(ctx, userRepo, demoUsers)
	if err != nil {
		log.Fatalf("Failed to seed users: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - New users created: %d", seeded)
	log.Printf("  - Existing users updated: %d", updated)
	log.Printf("  - Total users processed: %d", seeded+updated)
}

// seedUsers creates demo users or refreshes existing ones by username.
func seedUsers(ctx context.Context, repo repository.UserRepository, users []SeedUserData) (seeded int, updated int, err error) {
	for _, item := range users {
		balance, err := decimal.NewFromString(item.Balance)
		if err != nil {
			return seeded, updated, fmt.Errorf("invalid balance for %s: %w", item.Username, err)
		}

		existing, err := repo.FindByUsername(ctx, item.Username)
		if err != nil && err != gorm.ErrRecordNotFound {
			return seeded, updated, fmt.Errorf("error checking user %s: %w", item.Username, err)
		}

		if existing != nil {
			// Refresh mutable fields, keep the password and 2FA enrollment.
			existing.Email = item.Email
			existing.Bio = item.Bio
			existing.Balance = balance
			if err := repo.Update(ctx, existing); err != nil {
				return seeded, updated, fmt.Errorf("error updating user %s: %w", item.Username, err)
			}
			updated++
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(item.Password), bcrypt.DefaultCost)
		if err != nil {
			return seeded, updated, fmt.Errorf("error hashing password for %s: %w", item.Username, err)
		}

		user := &model.User{
			Username:     item.Username,
			Email:        item.Email,
			PasswordHash: string(hash),
			Bio:          item.Bio,
			Balance:      balance,
		}
		if err := repo.Create(ctx, user); err != nil {
			return seeded, updated, fmt.Errorf("error creating user %s: %w", item.Username, err)
		}
		seeded++
	}

	return seeded, updated, nil
}
