package processor

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"estatedash/server/config"
	"estatedash/server/internal/database"
	"estatedash/server/internal/models"
	"estatedash/server/internal/queue"
)

// TxRunner is the slice of *gorm.DB the processor needs; it keeps batch
// writes transactional and mockable.
type TxRunner interface {
	Transaction(fc func(tx *gorm.DB) error, opts ...*sql.TxOptions) error
}

// BatchProcessor drains the ingest queue and writes each batch inside a
// transaction, retrying failed batches up to the configured limit.
type BatchProcessor struct {
	db        TxRunner
	logger    *logrus.Logger
	config    *config.Config
	queue     *queue.PropertyQueue
	waitGroup sync.WaitGroup
}

func NewBatchProcessor(db TxRunner, q *queue.PropertyQueue, cfg *config.Config, logger *logrus.Logger) *BatchProcessor {
	if logger == nil {
		logger = logrus.New()
	}
	return &BatchProcessor{
		db:     db,
		queue:  q,
		config: cfg,
		logger: logger,
	}
}

// Start launches the configured number of consumers.
func (p *BatchProcessor) Start() {
	p.queue.Subscribe(p.processBatch)

	for i := 0; i < p.config.BatchProcessing.ProcessorCount; i++ {
		p.waitGroup.Add(1)
		go func() {
			defer p.waitGroup.Done()
			p.queue.Consume()
		}()
	}
}

// Stop closes the queue and waits for in-flight batches to finish.
func (p *BatchProcessor) Stop() {
	p.queue.Close()
	p.waitGroup.Wait()
}

func (p *BatchProcessor) processBatch(batch []*models.Property) error {
	var err error
	for attempt := 0; attempt <= p.config.BatchProcessing.MaxRetries; attempt++ {
		if attempt > 0 {
			p.logger.Infof("Retrying batch processing, attempt %d of %d", attempt, p.config.BatchProcessing.MaxRetries)
			time.Sleep(time.Duration(p.config.BatchProcessing.RetryDelay) * time.Second)
		}

		err = p.db.Transaction(func(tx *gorm.DB) error {
			if err := database.InsertProperties(tx, batch); err != nil {
				return fmt.Errorf("failed to insert properties batch: %w", err)
			}
			return nil
		})

		if err == nil {
			p.logger.Infof("Successfully processed batch of %d properties", len(batch))
			return nil
		}

		p.logger.Errorf("Batch processing failed: %v", err)
	}

	return fmt.Errorf("failed to process batch after %d attempts: %w", p.config.BatchProcessing.MaxRetries, err)
}
