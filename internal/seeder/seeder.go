package seeder

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"estatedash/server/config"
	"estatedash/server/internal/models"
	"estatedash/server/internal/queue"
)

var (
	propertyTypes = []string{"Single Family", "Condo", "Townhouse", "Apartment"}

	cities = []struct {
		City  string
		State string
		Zip   string
	}{
		{"Seattle", "WA", "98101"},
		{"Bellevue", "WA", "98004"},
		{"Redmond", "WA", "98052"},
		{"Kirkland", "WA", "98033"},
		{"Sammamish", "WA", "98074"},
		{"Mercer Island", "WA", "98040"},
		{"Issaquah", "WA", "98027"},
	}

	streets = []string{
		"Maple Ave", "Pine St", "Cedar Blvd", "Lakeview Dr", "Juniper Way",
		"Birch Ct", "Ridgecrest Rd", "Alder Ln", "Summit Pl", "Harbor Ave",
	}

	renovationTypes = []string{"Kitchen", "Bathroom", "Roof", "Flooring", "Windows", "Landscaping"}

	renovationStatuses = []string{
		models.RenovationStatusPending,
		models.RenovationStatusInProgress,
		models.RenovationStatusCompleted,
		models.RenovationStatusCancelled,
	}

	agents = []string{
		"Sarah Chen", "Marcus Webb", "Priya Patel", "Tom Delgado",
		"Anna Kowalski", "James O'Brien",
	}

	contractors = []string{
		"Evergreen Builders", "Rainier Remodeling", "Sound Renovations",
		"Cascade Contracting", "Puget Home Works",
	}
)

// Seeder generates a reproducible sample dataset and feeds it to the ingest
// queue in batches.
type Seeder struct {
	queue  *queue.PropertyQueue
	config *config.Config
	logger *logrus.Logger
	rng    *rand.Rand
}

func NewSeeder(q *queue.PropertyQueue, cfg *config.Config, logger *logrus.Logger) *Seeder {
	if logger == nil {
		logger = logrus.New()
	}
	return &Seeder{
		queue:  q,
		config: cfg,
		logger: logger,
		rng:    rand.New(rand.NewSource(cfg.Seed.RandomSeed)),
	}
}

// Run generates the configured number of properties and pushes them onto the
// queue. It returns once everything has been enqueued.
func (s *Seeder) Run() error {
	total := s.config.Seed.PropertyCount
	batchSize := s.config.BatchProcessing.MaxBatchSize
	if batchSize <= 0 {
		batchSize = 10
	}

	batch := make([]*models.Property, 0, batchSize)
	for i := 0; i < total; i++ {
		batch = append(batch, s.generateProperty(i))

		if len(batch) == batchSize {
			if err := s.pushBatch(batch); err != nil {
				return err
			}
			batch = make([]*models.Property, 0, batchSize)
		}
	}

	if len(batch) > 0 {
		if err := s.pushBatch(batch); err != nil {
			return err
		}
	}

	s.logger.Infof("Enqueued %d sample properties", total)
	return nil
}

func (s *Seeder) pushBatch(batch []*models.Property) error {
	// Retry briefly when the queue is full; the processors drain it
	for attempt := 0; attempt < 50; attempt++ {
		err := s.queue.Push(batch)
		if err == nil {
			return nil
		}
		if err != queue.ErrQueueFull {
			return err
		}
		time.Sleep(100 * time.Millisecond)
	}
	return queue.ErrQueueFull
}

func (s *Seeder) generateProperty(index int) *models.Property {
	location := cities[s.rng.Intn(len(cities))]
	yearBuilt := 1950 + s.rng.Intn(74)
	currentValue := 250000 + float64(s.rng.Intn(1500))*1000
	purchasePrice := currentValue * (0.6 + s.rng.Float64()*0.3)
	purchaseDate := time.Date(2015+s.rng.Intn(8), time.Month(1+s.rng.Intn(12)), 1+s.rng.Intn(28), 0, 0, 0, 0, time.UTC)

	property := &models.Property{
		Address:       fmt.Sprintf("%d %s", 100+s.rng.Intn(9900), streets[s.rng.Intn(len(streets))]),
		City:          location.City,
		State:         location.State,
		ZipCode:       location.Zip,
		PropertyType:  propertyTypes[s.rng.Intn(len(propertyTypes))],
		Bedrooms:      1 + s.rng.Intn(5),
		Bathrooms:     1 + float64(s.rng.Intn(6))*0.5,
		SquareFeet:    800 + s.rng.Intn(3200),
		LotSize:       0.1 + s.rng.Float64()*0.9,
		YearBuilt:     &yearBuilt,
		CurrentValue:  currentValue,
		PurchasePrice: &purchasePrice,
		PurchaseDate:  &purchaseDate,
	}

	// Roughly half the properties get a sale record
	if s.rng.Intn(2) == 0 {
		property.Sales = append(property.Sales, s.generateSale(currentValue))
	}
	for n := s.rng.Intn(3); n > 0; n-- {
		property.Renovations = append(property.Renovations, s.generateRenovation())
	}

	return property
}

func (s *Seeder) generateSale(currentValue float64) models.Sale {
	agent := agents[s.rng.Intn(len(agents))]
	saleDate := time.Date(2023+s.rng.Intn(2), time.Month(1+s.rng.Intn(12)), 1+s.rng.Intn(28), 0, 0, 0, 0, time.UTC)
	return models.Sale{
		SalePrice:  currentValue * (0.9 + s.rng.Float64()*0.2),
		SaleDate:   saleDate,
		BuyerName:  fmt.Sprintf("Buyer %d", 1+s.rng.Intn(500)),
		BuyerEmail: fmt.Sprintf("buyer%d@example.com", 1+s.rng.Intn(500)),
		BuyerPhone: fmt.Sprintf("206-555-%04d", s.rng.Intn(10000)),
		AgentName:  agent,
		AgentEmail: fmt.Sprintf("%s@example.com", sanitize(agent)),
		AgentPhone: fmt.Sprintf("425-555-%04d", s.rng.Intn(10000)),
	}
}

func (s *Seeder) generateRenovation() models.Renovation {
	start := time.Date(2023+s.rng.Intn(2), time.Month(1+s.rng.Intn(12)), 1+s.rng.Intn(28), 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 7+s.rng.Intn(90))
	cost := 5000 + float64(s.rng.Intn(450))*100
	renovationType := renovationTypes[s.rng.Intn(len(renovationTypes))]

	return models.Renovation{
		RenovationType:         renovationType,
		Description:            fmt.Sprintf("%s renovation", renovationType),
		Cost:                   cost,
		StartDate:              &start,
		EndDate:                &end,
		Status:                 renovationStatuses[s.rng.Intn(len(renovationStatuses))],
		ContractorName:         contractors[s.rng.Intn(len(contractors))],
		EstimatedValueIncrease: cost * (0.8 + s.rng.Float64()*0.8),
	}
}

func sanitize(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z':
			out = append(out, r)
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
		}
	}
	return string(out)
}
