package main

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"estatedash/server/config"
	"estatedash/server/internal/database"
	"estatedash/server/internal/processor"
	"estatedash/server/internal/queue"
	"estatedash/server/internal/seeder"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	if dir := filepath.Dir(cfg.Database.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			logger.WithError(err).Fatal("Failed to create database directory")
		}
	}

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database")
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		logger.WithError(err).Fatal("Failed to run database migrations")
	}

	ingestQueue := queue.NewPropertyQueue(cfg.BatchProcessing.QueueSize, logger)
	batchProcessor := processor.NewBatchProcessor(db.GetDB(), ingestQueue, cfg, logger)
	batchProcessor.Start()

	s := seeder.NewSeeder(ingestQueue, cfg, logger)
	if err := s.Run(); err != nil {
		logger.WithError(err).Error("Seeding failed")
	}

	// Wait for the processors to drain the queue
	batchProcessor.Stop()
	logger.Info("Seeding complete")
}
