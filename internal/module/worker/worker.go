package worker

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/project-tktt/go-ausjobs/internal/common/normalizer"
	"github.com/project-tktt/go-ausjobs/internal/common/store"
	"github.com/project-tktt/go-ausjobs/internal/domain"
	"github.com/project-tktt/go-ausjobs/internal/queue"
)

// Worker drains fragments from the queue, normalizes them, persists new
// records and mirrors them into the search index.
type Worker struct {
	consumer *queue.Consumer
	pipeline *normalizer.Pipeline
	store    store.Store
	indexer  store.Indexer

	batchSize   int
	concurrency int
}

// Config holds worker configuration.
type Config struct {
	Concurrency int
	BatchSize   int
}

// NewWorker creates a new worker. indexer may be nil when search indexing
// is disabled.
func NewWorker(
	consumer *queue.Consumer,
	pipeline *normalizer.Pipeline,
	st store.Store,
	idx store.Indexer,
	cfg Config,
) *Worker {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 5
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}

	return &Worker{
		consumer:    consumer,
		pipeline:    pipeline,
		store:       st,
		indexer:     idx,
		batchSize:   cfg.BatchSize,
		concurrency: cfg.Concurrency,
	}
}

// Run starts the worker pool and blocks until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	log.Printf("Starting worker pool with %d workers", w.concurrency)

	var wg sync.WaitGroup
	errChan := make(chan error, w.concurrency)

	for i := 0; i < w.concurrency; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			if err := w.runSingle(ctx, workerID); err != nil {
				errChan <- fmt.Errorf("worker %d: %w", workerID, err)
			}
		}(i)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-errChan:
		return err
	case <-done:
		return nil
	}
}

func (w *Worker) runSingle(ctx context.Context, workerID int) error {
	log.Printf("Worker %d started", workerID)

	for {
		select {
		case <-ctx.Done():
			log.Printf("Worker %d stopping", workerID)
			return nil
		default:
		}

		// ConsumeBatch blocks on BRPOP for the first item, so an idle
		// worker does not spin.
		frags, err := w.consumer.ConsumeBatch(ctx, w.batchSize)
		if err != nil {
			log.Printf("Worker %d consume error: %v", workerID, err)
			continue
		}

		if len(frags) == 0 {
			continue // BRPOP timeout, try again
		}

		log.Printf("Worker %d processing %d fragments", workerID, len(frags))

		created := w.processBatch(ctx, frags)
		if len(created) > 0 && w.indexer != nil {
			if err := w.indexer.BulkIndex(ctx, created); err != nil {
				log.Printf("Worker %d index error: %v", workerID, err)
			} else {
				log.Printf("Worker %d indexed %d records", workerID, len(created))
			}
		}
	}
}

// processBatch normalizes and stores fragments, returning the records that
// were actually created. Duplicates are a normal outcome and only logged.
func (w *Worker) processBatch(ctx context.Context, frags []*domain.RawJobFragment) []*domain.JobRecord {
	created := make([]*domain.JobRecord, 0, len(frags))
	duplicates := 0

	for _, frag := range frags {
		rec := w.pipeline.Assemble(frag)
		if rec.Title == "" {
			log.Printf("Skipping fragment with no title: %s", frag.URL)
			continue
		}

		result, err := w.store.UpsertIfNew(ctx, rec)
		if err != nil {
			log.Printf("Store error for %s: %v", rec.ExternalURL, err)
			continue
		}

		switch result {
		case store.ResultDuplicate:
			duplicates++
		case store.ResultCreated:
			created = append(created, rec)
		}
	}

	if duplicates > 0 {
		log.Printf("Batch: %d created, %d duplicates", len(created), duplicates)
	}
	return created
}
