package main

import (
	"context"
	"log"

	"ops-collab-be/internal/bootstrap"
	"ops-collab-be/internal/config"
	"ops-collab-be/internal/server"
	"ops-collab-be/internal/tracer"
	"ops-collab-be/pkg/database"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	client, db, err := database.NewMongoDB(database.MongoConfig{
		URI:    cfg.Database.URI,
		DBName: cfg.Database.Name,
	})
	if err != nil {
		log.Panicf("Unable to connect to MongoDB: %v", err)
	}
	defer database.Disconnect(client)

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(client, db, cfg)

	// 4. Start Background Services
	go func() {
		log.Println("Background: Starting Discord delivery consumer...")
		if err := container.DiscordConsumerService.Consume(context.Background()); err != nil {
			log.Printf("Background Discord consumer error: %v", err)
		}
	}()
	container.Janitor.Start()
	defer container.Janitor.Stop()

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}
