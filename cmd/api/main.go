package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/sproutly/sproutly-backend/internal/config"
	"github.com/sproutly/sproutly-backend/internal/db"
	"github.com/sproutly/sproutly-backend/internal/model"
	"github.com/sproutly/sproutly-backend/internal/server"
)

var (
	sha       = "dev"
	buildTime = "unknown"
)

func main() {
	_ = godotenv.Load()

	srv := server.New(nil, sha, buildTime)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port

	errCh := make(chan error, 1)

	go func() {
		log.Printf("starting server on %s", addr)
		errCh <- srv.Start(addr)
	}()

	// The DB comes up asynchronously so Cloud Run health checks pass while
	// Cloud SQL is still connecting.
	go func() {
		cfg, err := config.Load()
		if err != nil {
			log.Printf("config load error: %v", err)
			return
		}
		conn, err := db.Connect(cfg)
		if err != nil {
			log.Printf("db connect error: %v", err)
			return
		}
		srv.SetDB(conn)
		if err := conn.AutoMigrate(
			&model.UserProgress{},
			&model.PlantedTree{},
			&model.Badge{},
			&model.Achievement{},
			&model.Challenge{},
			&model.ChallengeCompletion{},
			&model.DiseaseDiagnosis{},
			&model.Notification{},
			&model.NotificationPreferences{},
			&model.ShopItem{},
			&model.ItemOwnership{},
			&model.CommunityPost{},
			&model.PostLike{},
			&model.GameSession{},
		); err != nil {
			log.Printf("auto migrate error: %v", err)
		}
	}()

	if err := <-errCh; err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
