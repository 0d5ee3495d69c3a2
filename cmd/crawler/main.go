package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/project-tktt/go-ausjobs/internal/common/dedup"
	"github.com/project-tktt/go-ausjobs/internal/common/extractor"
	"github.com/project-tktt/go-ausjobs/internal/config"
	"github.com/project-tktt/go-ausjobs/internal/domain"
	"github.com/project-tktt/go-ausjobs/internal/module"
	"github.com/project-tktt/go-ausjobs/internal/module/jora"
	"github.com/project-tktt/go-ausjobs/internal/module/seek"
	"github.com/project-tktt/go-ausjobs/internal/module/workinaus"
	"github.com/project-tktt/go-ausjobs/internal/queue"
	"github.com/redis/go-redis/v9"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting Job Crawler Service")

	// Load configuration
	cfg := config.Load()

	// Initialize Redis client
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Test Redis connection
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("Redis connection failed: %v", err)
	}
	log.Println("Redis connected")

	// Initialize components
	deduplicator := dedup.NewDeduplicator(rdb, "job:seen", 30*24*time.Hour)
	publisher := queue.NewPublisher(rdb, cfg.Redis.FragmentQueue)

	extractorCfg := extractor.Config{
		UserAgent:    cfg.Crawler.UserAgent,
		ProxyURL:     cfg.Crawler.ProxyURL,
		MaxRetries:   cfg.Crawler.MaxRetries,
		RequestDelay: int(cfg.Crawler.RequestDelay.Milliseconds()),
	}

	crawlers := []module.Crawler{
		seek.NewCrawler(extractorCfg, module.Config{MaxPages: 50, RequestDelay: 3 * time.Second}),
		jora.NewCrawler(extractorCfg, module.Config{MaxPages: 50, RequestDelay: 2 * time.Second}),
		workinaus.NewCrawler(extractorCfg, module.Config{MaxPages: 50, RequestDelay: 2 * time.Second}),
	}

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	var wg sync.WaitGroup

	// Start crawler scheduler (runs each crawler periodically)
	wg.Add(1)
	go func() {
		defer wg.Done()
		runCrawlerScheduler(ctx, crawlers, deduplicator, publisher)
	}()

	// Wait for shutdown signal
	<-sigChan
	log.Println("Shutdown signal received, stopping...")
	cancel()

	// Wait for goroutines to finish
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Println("Graceful shutdown complete")
	case <-time.After(30 * time.Second):
		log.Println("Shutdown timeout, forcing exit")
	}
}

// runCrawlerScheduler runs each crawler sequentially at intervals.
func runCrawlerScheduler(ctx context.Context, crawlers []module.Crawler, deduplicator *dedup.Deduplicator, publisher *queue.Publisher) {
	// Run immediately on startup
	runAllCrawlers(ctx, crawlers, deduplicator, publisher)

	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runAllCrawlers(ctx, crawlers, deduplicator, publisher)
		}
	}
}

func runAllCrawlers(ctx context.Context, crawlers []module.Crawler, deduplicator *dedup.Deduplicator, publisher *queue.Publisher) {
	for _, c := range crawlers {
		select {
		case <-ctx.Done():
			return
		default:
		}

		log.Printf("Running crawler: %s", c.Source())

		var newJobs, seenJobs, totalJobs int

		// Streaming callback: publish each page as soon as it lands.
		err := c.CrawlWithCallback(ctx, func(frags []*domain.RawJobFragment) error {
			pageNew := 0
			for _, frag := range frags {
				seen, err := deduplicator.IsSeen(ctx, c.Source(), frag.URL)
				if err != nil {
					log.Printf("Dedup check error: %v", err)
					continue
				}
				if !seen && frag.Title != "" && frag.Company != "" {
					// Same posting reappearing under a new URL.
					seen, err = deduplicator.IsSeenPosting(ctx, c.Source(), frag.Title, frag.Company)
					if err != nil {
						log.Printf("Dedup check error: %v", err)
						continue
					}
				}
				if seen {
					seenJobs++
					continue
				}

				if err := publisher.Publish(ctx, frag); err != nil {
					log.Printf("Publish error: %v", err)
					continue
				}
				pageNew++

				if err := deduplicator.MarkSeen(ctx, c.Source(), frag.URL); err != nil {
					log.Printf("Mark seen error: %v", err)
				}
				if frag.Title != "" && frag.Company != "" {
					if err := deduplicator.MarkSeenPosting(ctx, c.Source(), frag.Title, frag.Company); err != nil {
						log.Printf("Mark seen error: %v", err)
					}
				}
			}
			newJobs += pageNew
			totalJobs += len(frags)
			log.Printf("Crawler %s: page - %d new, %d seen", c.Source(), pageNew, len(frags)-pageNew)
			return nil
		})

		if err != nil {
			log.Printf("Crawler %s error: %v", c.Source(), err)
		}

		log.Printf("Crawler %s: %d total, %d new, %d seen", c.Source(), totalJobs, newJobs, seenJobs)
	}
}
