package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"leadboard/models"
)

// CSVExporter writes a snapshot of the lead set to a CSV file.
// It is safe for concurrent use.
type CSVExporter struct {
	mu     sync.Mutex
	file   *os.File
	writer *csv.Writer
}

// NewCSVExporter creates (or truncates) the CSV file at the given path and
// writes the header row. Intermediate directories are created automatically.
func NewCSVExporter(path string) (*CSVExporter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write([]string{
		"date", "customer", "lead source", "job type", "lead cost",
		"sold amount", "revenue", "job won", "booked", "sold", "cancelled",
		"reply time category", "reply time minutes", "comments",
	}); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	w.Flush()

	return &CSVExporter{file: f, writer: w}, nil
}

// Export writes every lead as one CSV row. Sold is exported through its
// read-side derivation, so legacy jobWon-only records export as sold.
func (c *CSVExporter) Export(leads []*models.Lead) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, l := range leads {
		row := []string{
			l.Date, l.Customer, l.LeadSource, l.JobType, l.LeadCost,
			l.SoldAmount, l.Revenue, l.JobWon, l.Booked, l.SoldValue(),
			l.Cancelled, l.ReplyTimeCategory, l.ReplyTimeMinutes, l.Comments,
		}
		if err := c.writer.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file.
func (c *CSVExporter) Close() error {
	c.writer.Flush()
	return c.file.Close()
}
