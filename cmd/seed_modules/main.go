package main

import (
	"context"
	"log"
	"time"

	"finlearn/internal/config"
	"finlearn/internal/database"
	"finlearn/internal/logger"
	"finlearn/internal/repository"
	"finlearn/internal/seed"
	"finlearn/internal/util"

	"go.uber.org/zap"
)

// Seeds the premade module catalog, upserting by title so reruns refresh
// content instead of duplicating rows.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Logger)
	l := logger.Get()
	defer l.Sync()

	db, err := database.NewSQLXPostgresDB(cfg.GetDSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	moduleRepo := repository.NewSQLXModuleRepository(db)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	created, updated := 0, 0
	for _, module := range seed.PremadeModules() {
		existing, err := moduleRepo.GetModuleByTitle(ctx, module.Title)
		if err != nil {
			l.Fatal("Failed to look up module", zap.String("title", module.Title), zap.Error(err))
		}
		if existing == nil {
			module.ID = util.NewULID()
			if err := moduleRepo.SaveModule(ctx, module); err != nil {
				l.Fatal("Failed to save module", zap.String("title", module.Title), zap.Error(err))
			}
			created++
		} else {
			module.ID = existing.ID
			module.CreatedAt = existing.CreatedAt
			if err := moduleRepo.UpdateModule(ctx, module); err != nil {
				l.Fatal("Failed to refresh module", zap.String("title", module.Title), zap.Error(err))
			}
			updated++
		}
	}

	l.Info("Premade modules seeded", zap.Int("created", created), zap.Int("updated", updated))
}
