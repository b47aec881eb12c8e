package config

import "github.com/caarlos0/env/v6"

type Config struct {
	// Server configuration
	Server struct {
		// Port the HTTP API listens on
		Port int `env:"SERVER_PORT" envDefault:"8000"`

		// Origins allowed by the CORS middleware (the dashboard frontends)
		AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://localhost:5173"`
	}

	// Database configuration
	Database struct {
		// Path to the SQLite database file
		Path string `env:"DATABASE_PATH" envDefault:"database/estatedash.db"`
	}

	// Seeding configuration
	Seed struct {
		// Number of sample properties to generate
		PropertyCount int `env:"SEED_PROPERTY_COUNT" envDefault:"50"`

		// Random seed for reproducible sample data
		RandomSeed int64 `env:"SEED_RANDOM_SEED" envDefault:"1"`
	}

	// BatchProcessing configuration
	BatchProcessing struct {
		// Maximum number of properties per batch pushed to the ingest queue
		MaxBatchSize int `env:"BATCH_MAX_SIZE" envDefault:"10"`

		// Buffer size of the ingest queue (in batches)
		QueueSize int `env:"BATCH_QUEUE_SIZE" envDefault:"100"`

		// Number of concurrent batch processors
		ProcessorCount int `env:"BATCH_PROCESSOR_COUNT" envDefault:"2"`

		// Maximum number of retries for failed batches
		MaxRetries int `env:"BATCH_MAX_RETRIES" envDefault:"3"`

		// Delay between retries in seconds
		RetryDelay int `env:"BATCH_RETRY_DELAY" envDefault:"5"`
	}
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
