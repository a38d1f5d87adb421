package main

import (
	"fmt"
	"os"
	"sync"
	"time"

	"leadboard/config"
	"leadboard/importer"
	"leadboard/services"
	"leadboard/storage"
	"leadboard/utils"
)

func main() {
	cfg := config.Load()
	logger := utils.NewLogger(cfg.Debug)

	logger.Info("=== Lead Dashboard Import Pipeline starting ===")

	files := os.Args[1:]
	if len(files) == 0 {
		logger.Error("Usage: leadboard <file.csv|file.tsv|file.json|file.xlsx> ...")
		os.Exit(1)
	}

	store, err := storage.NewPostgresStore(cfg.DSN())
	if err != nil {
		logger.Error("Failed to connect to PostgreSQL: %v", err)
		logger.Error("Make sure Docker is running: docker compose up -d")
		os.Exit(1)
	}
	defer store.Close()

	im := importer.New(logger)
	retry := &utils.RetryConfig{
		MaxAttempts: cfg.MaxRetries,
		BaseDelay:   2 * time.Second,
		Logger:      logger,
	}

	pool := utils.NewWorkerPool(cfg.MaxConcurrency, cfg.RateLimitMs)
	seen := utils.NewStringSet()

	var mu sync.Mutex
	totalWritten := 0

	for _, file := range files {
		file := file
		if !seen.Add(file) {
			logger.Warn("[main] Skipping duplicate file argument: %s", file)
			continue
		}

		pool.Submit(func() {
			content, err := os.ReadFile(file)
			if err != nil {
				logger.Error("[main] Cannot read %s: %v", file, err)
				return
			}

			leads, err := im.Import(file, content)
			if err != nil {
				logger.Error("[main] Import failed for %s: %v", file, err)
				return
			}
			if len(leads) == 0 {
				logger.Warn("[main] No importable leads found in %s", file)
				return
			}

			// On retry, resume after the rows already written — a partial
			// import stays written, it is never rolled back or redone.
			written := 0
			err = retry.Do("lead batch insert", func() error {
				n, err := store.CreateBatch(leads[written:])
				written += n
				return err
			})
			if err != nil {
				// Rows written before the failure stay written.
				logger.Error("[main] Partial import of %s (%d/%d rows): %v",
					file, written, len(leads), err)
			} else {
				logger.Info("[main] Imported %d leads from %s", written, file)
			}

			mu.Lock()
			totalWritten += written
			mu.Unlock()
		})
	}
	pool.Wait()

	logger.Info("Import finished — %d leads written from %d file(s)", totalWritten, seen.Size())

	leads, err := store.FetchAll()
	if err != nil {
		logger.Error("Failed to fetch leads for reporting: %v", err)
		os.Exit(1)
	}

	exporter, err := storage.NewCSVExporter(cfg.CSVExportPath)
	if err != nil {
		logger.Error("Failed to create CSV exporter: %v", err)
	} else {
		defer exporter.Close()
		if err := exporter.Export(leads); err != nil {
			logger.Error("CSV export failed: %v", err)
		} else {
			logger.Info("Lead snapshot saved to %s", cfg.CSVExportPath)
		}
	}

	insightSvc := services.NewInsightService(logger)
	insightSvc.Print(insightSvc.Generate(leads))

	weekly := insightSvc.GenerateWeekly(leads,
		cfg.ReportYear, time.Month(cfg.ReportMonth), cfg.ReportWeek)
	insightSvc.PrintWeekly(weekly)

	fmt.Printf("  Done. %d leads in store | snapshot → %s\n\n",
		len(leads), cfg.CSVExportPath)
}
