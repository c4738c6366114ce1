package main

import (
	"context"
	"log"
	"time"

	"ops-collab-be/internal/config"
	"ops-collab-be/internal/entity"
	"ops-collab-be/internal/repository/implementation"
	"ops-collab-be/internal/repository/specification"
	"ops-collab-be/pkg/database"

	"github.com/google/uuid"
)

// Seeds a development database with an admin account and a starter folder.
// Safe to run repeatedly, existing records are left alone.
func main() {
	cfg := config.Load()

	client, db, err := database.NewMongoDB(database.MongoConfig{
		URI:    cfg.Database.URI,
		DBName: cfg.Database.Name,
	})
	if err != nil {
		log.Fatalf("Unable to connect to MongoDB: %v", err)
	}
	defer database.Disconnect(client)

	ctx := context.Background()
	userRepo := implementation.NewUserRepository(db, nil)
	folderRepo := implementation.NewFolderRepository(db, nil)

	const adminDiscordId = "000000000000000000"

	admin, err := userRepo.FindOne(ctx, specification.ByDiscordID{DiscordID: adminDiscordId})
	if err != nil {
		log.Fatalf("Failed to look up admin user: %v", err)
	}
	if admin == nil {
		admin = &entity.User{
			Id:        uuid.New(),
			DiscordId: adminDiscordId,
			Username:  "admin",
			Role:      entity.RoleAdmin,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		if err := userRepo.Create(ctx, admin); err != nil {
			log.Fatalf("Failed to seed admin user: %v", err)
		}
		log.Printf("Seeded admin user %s", admin.Id)
	} else {
		log.Println("Admin user already present, skipping")
	}

	count, err := folderRepo.Count(ctx)
	if err != nil {
		log.Fatalf("Failed to count folders: %v", err)
	}
	if count == 0 {
		folder := &entity.Folder{
			Id:        uuid.New(),
			Name:      "General",
			Icon:      "📁",
			Position:  0,
			CreatedBy: admin.Id,
			CreatedAt: time.Now(),
		}
		if err := folderRepo.Create(ctx, folder); err != nil {
			log.Fatalf("Failed to seed folder: %v", err)
		}
		log.Printf("Seeded folder %s", folder.Id)
	} else {
		log.Println("Folders already present, skipping")
	}
}
