package main

import (
	"context"
	"log"

	"clipstream-be/internal/bootstrap"
	"clipstream-be/internal/config"
	"clipstream-be/internal/server"
	"clipstream-be/internal/tracer"
	"clipstream-be/pkg/database"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	db, err := database.NewMongoDatabase(cfg.Database.MongoURI, cfg.Database.MongoDatabase)
	if err != nil {
		log.Panicf("Unable to connect to MongoDB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(db, cfg)

	// 4. Start Background Services
	// Note: In a larger app, we might use an errgroup or supervisor here
	go func() {
		log.Println("Background: Starting Consumer Service...")
		if err := container.ConsumerService.Consume(context.Background()); err != nil {
			log.Printf("Background Consumer Error: %v", err)
		}
	}()

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}
