package storage

import "leadboard/models"

// LeadStore is the persistence collaborator for the import pipeline and
// the dashboard. Create is append-only; the import pipeline never mutates
// existing leads.
type LeadStore interface {
	Create(input models.LeadInput) (string, error)
	CreateBatch(inputs []models.LeadInput) (int, error)
	Update(id string, input models.LeadInput) error
	Delete(id string) error
	DeleteAll() (int, error)
	FetchAll() ([]*models.Lead, error)
	Close() error
}

// LeadExporter persists a snapshot of the lead set outside the database.
type LeadExporter interface {
	Export(leads []*models.Lead) error
	Close() error
}
