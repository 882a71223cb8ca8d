package main

import (
	"log"

	"github.com/jeffmcelheran/the-name-game/internal/config"
	"github.com/jeffmcelheran/the-name-game/internal/database"
	"github.com/jeffmcelheran/the-name-game/internal/handlers"
	"github.com/jeffmcelheran/the-name-game/internal/services"
	"github.com/jeffmcelheran/the-name-game/internal/store"
)

func main() {
	cfg := config.Load()

	db := database.Connect(cfg)
	database.AutoMigrate(db)

	st := store.NewGormStore(db)
	authService := services.NewHostAuthService(st)
	gameService := services.NewGameService(st, authService)

	gameHandler := handlers.NewGameHandler(gameService)
	r := handlers.SetupRouter(gameHandler)

	log.Printf("server starting on :%s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
