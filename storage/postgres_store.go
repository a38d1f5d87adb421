package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"leadboard/models"
)

// deleteBatchSize caps how many rows one bulk-delete transaction removes.
const deleteBatchSize = 400

// insertBatchSize caps how many rows one INSERT statement carries.
const insertBatchSize = 50

// PostgresStore persists leads to PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore opens a connection to PostgreSQL, runs schema
// migrations, and returns a ready-to-use store.
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	for i := 0; i < 10; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: ping failed after retries: %w", err)
	}

	ps := &PostgresStore{db: db}
	if err := ps.migrate(); err != nil {
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}
	return ps, nil
}

func (ps *PostgresStore) migrate() error {
	_, err := ps.db.Exec(`
		CREATE TABLE IF NOT EXISTS leads (
			id                  TEXT PRIMARY KEY,
			date                VARCHAR(10) NOT NULL,
			customer            TEXT        NOT NULL,
			lead_source         TEXT        NOT NULL DEFAULT '',
			job_type            TEXT        NOT NULL DEFAULT '',
			lead_cost           TEXT        NOT NULL DEFAULT '$0',
			sold_amount         TEXT        NOT NULL DEFAULT '$0',
			revenue             TEXT        NOT NULL DEFAULT '$0',
			job_won             VARCHAR(3)  NOT NULL DEFAULT 'No',
			booked              VARCHAR(3)  NOT NULL DEFAULT 'No',
			sold                VARCHAR(3)  NOT NULL DEFAULT '',
			cancelled           VARCHAR(3)  NOT NULL DEFAULT 'No',
			reply_time_category TEXT        NOT NULL DEFAULT '',
			reply_time_minutes  TEXT        NOT NULL DEFAULT '',
			reply_time          TEXT        NOT NULL DEFAULT '',
			comments            TEXT        NOT NULL DEFAULT '',
			created_at          TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_leads_date   ON leads(date);
		CREATE INDEX IF NOT EXISTS idx_leads_source ON leads(lead_source);
	`)
	return err
}

const leadColumns = `id, date, customer, lead_source, job_type, lead_cost,
	sold_amount, revenue, job_won, booked, sold, cancelled,
	reply_time_category, reply_time_minutes, reply_time, comments`

func leadArgs(id string, in models.LeadInput) []interface{} {
	return []interface{}{
		id, in.Date, in.Customer, in.LeadSource, in.JobType, in.LeadCost,
		in.SoldAmount, in.Revenue, in.JobWon, in.Booked, in.Sold, in.Cancelled,
		in.ReplyTimeCategory, in.ReplyTimeMinutes, in.ReplyTime, in.Comments,
	}
}

// Create appends one lead and returns its generated identifier.
func (ps *PostgresStore) Create(input models.LeadInput) (string, error) {
	id := uuid.NewString()
	query := fmt.Sprintf(`INSERT INTO leads (%s) VALUES (%s)`,
		leadColumns, placeholders(1, 16))
	if _, err := ps.db.Exec(query, leadArgs(id, input)...); err != nil {
		return "", fmt.Errorf("postgres: create lead: %w", err)
	}
	return id, nil
}

// CreateBatch appends an import's accepted rows in insert batches and
// returns how many were written. Rows written before a failure remain
// written — there is no rollback of a partial import.
func (ps *PostgresStore) CreateBatch(inputs []models.LeadInput) (int, error) {
	written := 0
	for start := 0; start < len(inputs); start += insertBatchSize {
		end := start + insertBatchSize
		if end > len(inputs) {
			end = len(inputs)
		}
		if err := ps.insertBatch(inputs[start:end]); err != nil {
			return written, err
		}
		written += end - start
	}
	return written, nil
}

func (ps *PostgresStore) insertBatch(batch []models.LeadInput) error {
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*16)

	for idx, in := range batch {
		valueStrings = append(valueStrings, placeholders(idx*16+1, 16))
		valueArgs = append(valueArgs, leadArgs(uuid.NewString(), in)...)
	}

	query := fmt.Sprintf(`INSERT INTO leads (%s) VALUES (%s)`,
		leadColumns, strings.Join(valueStrings, "),("))
	if _, err := ps.db.Exec(query, valueArgs...); err != nil {
		return fmt.Errorf("postgres: insert batch: %w", err)
	}
	return nil
}

// Update replaces every field of an existing lead.
func (ps *PostgresStore) Update(id string, input models.LeadInput) error {
	res, err := ps.db.Exec(`
		UPDATE leads SET
			date = $2, customer = $3, lead_source = $4, job_type = $5,
			lead_cost = $6, sold_amount = $7, revenue = $8, job_won = $9,
			booked = $10, sold = $11, cancelled = $12,
			reply_time_category = $13, reply_time_minutes = $14,
			reply_time = $15, comments = $16
		WHERE id = $1`,
		leadArgs(id, input)...)
	if err != nil {
		return fmt.Errorf("postgres: update lead %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("postgres: update lead %s: no such lead", id)
	}
	return nil
}

// Delete removes one lead.
func (ps *PostgresStore) Delete(id string) error {
	if _, err := ps.db.Exec(`DELETE FROM leads WHERE id = $1`, id); err != nil {
		return fmt.Errorf("postgres: delete lead %s: %w", id, err)
	}
	return nil
}

// DeleteAll removes every lead, batched so no single transaction deletes
// more than deleteBatchSize rows. Returns how many were removed.
func (ps *PostgresStore) DeleteAll() (int, error) {
	rows, err := ps.db.Query(`SELECT id FROM leads ORDER BY id`)
	if err != nil {
		return 0, fmt.Errorf("postgres: list ids: %w", err)
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return 0, fmt.Errorf("postgres: scan id: %w", err)
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, err
	}

	deleted := 0
	for _, chunk := range chunkIDs(ids, deleteBatchSize) {
		if err := ps.deleteChunk(chunk); err != nil {
			return deleted, err
		}
		deleted += len(chunk)
	}
	return deleted, nil
}

func (ps *PostgresStore) deleteChunk(ids []string) error {
	tx, err := ps.db.Begin()
	if err != nil {
		return fmt.Errorf("postgres: begin delete tx: %w", err)
	}
	for _, id := range ids {
		if _, err := tx.Exec(`DELETE FROM leads WHERE id = $1`, id); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("postgres: delete lead %s: %w", id, err)
		}
	}
	return tx.Commit()
}

// chunkIDs partitions ids into slices of at most size elements.
func chunkIDs(ids []string, size int) [][]string {
	var chunks [][]string
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		chunks = append(chunks, ids[start:end])
	}
	return chunks
}

// FetchAll retrieves the full lead set ordered by date descending — the
// snapshot the aggregation engine and dashboard consume.
func (ps *PostgresStore) FetchAll() ([]*models.Lead, error) {
	rows, err := ps.db.Query(fmt.Sprintf(`
		SELECT %s, created_at FROM leads
		ORDER BY date DESC, created_at DESC
	`, leadColumns))
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch all: %w", err)
	}
	defer rows.Close()

	var leads []*models.Lead
	for rows.Next() {
		l := &models.Lead{}
		if err := rows.Scan(
			&l.ID, &l.Date, &l.Customer, &l.LeadSource, &l.JobType,
			&l.LeadCost, &l.SoldAmount, &l.Revenue, &l.JobWon, &l.Booked,
			&l.Sold, &l.Cancelled, &l.ReplyTimeCategory, &l.ReplyTimeMinutes,
			&l.ReplyTime, &l.Comments, &l.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("postgres: scan lead: %w", err)
		}
		leads = append(leads, l)
	}
	return leads, rows.Err()
}

func (ps *PostgresStore) Close() error {
	return ps.db.Close()
}

// placeholders renders "$n,$n+1,…" for count parameters starting at start.
func placeholders(start, count int) string {
	parts := make([]string, count)
	for i := 0; i < count; i++ {
		parts[i] = fmt.Sprintf("$%d", start+i)
	}
	return strings.Join(parts, ",")
}
