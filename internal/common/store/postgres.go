package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
	"github.com/project-tktt/go-ausjobs/internal/domain"
)

// PostgresStore persists normalized job records.
type PostgresStore struct {
	db        *sql.DB
	tableName string
}

// NewPostgresStore opens a connection and ensures the table exists.
func NewPostgresStore(connStr string, tableName string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("open postgres connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	s := &PostgresStore{
		db:        db,
		tableName: tableName,
	}

	if err := s.ensureTable(); err != nil {
		return nil, fmt.Errorf("ensure table: %w", err)
	}

	return s, nil
}

func (s *PostgresStore) ensureTable() error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			external_id TEXT NOT NULL,
			external_url TEXT PRIMARY KEY,
			source TEXT,
			title VARCHAR(200) NOT NULL,
			company VARCHAR(200),
			city VARCHAR(100),
			state VARCHAR(100),
			country VARCHAR(100),
			salary_min NUMERIC,
			salary_max NUMERIC,
			salary_currency VARCHAR(3),
			salary_period VARCHAR(10),
			salary_raw_text VARCHAR(200),
			job_type VARCHAR(20),
			work_mode VARCHAR(20),
			description TEXT,
			description_html TEXT,
			skills TEXT[],
			preferred_skills TEXT[],
			posted_at TIMESTAMP WITH TIME ZONE,
			scraped_at TIMESTAMP WITH TIME ZONE,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)
	`, s.tableName)

	_, err := s.db.Exec(query)
	return err
}

// UpsertIfNew inserts the record unless its external URL, or the same
// (title, company) pair from the same source, already exists.
func (s *PostgresStore) UpsertIfNew(ctx context.Context, rec *domain.JobRecord) (Result, error) {
	// Semantic-duplicate check first: the same posting often reappears
	// under a fresh URL.
	var exists bool
	dupQuery := fmt.Sprintf(
		`SELECT EXISTS(SELECT 1 FROM %s WHERE source = $1 AND title = $2 AND company = $3)`,
		s.tableName)
	if err := s.db.QueryRowContext(ctx, dupQuery, rec.Source, rec.Title, rec.Company).Scan(&exists); err != nil {
		return ResultDuplicate, fmt.Errorf("duplicate check: %w", err)
	}
	if exists {
		return ResultDuplicate, nil
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (
			external_id, external_url, source, title, company,
			city, state, country,
			salary_min, salary_max, salary_currency, salary_period, salary_raw_text,
			job_type, work_mode, description, description_html,
			skills, preferred_skills, posted_at, scraped_at
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8,
			$9, $10, $11, $12, $13,
			$14, $15, $16, $17,
			$18, $19, $20, $21
		)
		ON CONFLICT (external_url) DO NOTHING
	`, s.tableName)

	res, err := s.db.ExecContext(ctx, query,
		rec.ExternalID, rec.ExternalURL, rec.Source, rec.Title, rec.Company,
		rec.Location.City, rec.Location.State, rec.Location.Country,
		rec.Salary.Min, rec.Salary.Max, rec.Salary.Currency, string(rec.Salary.Period), rec.Salary.RawText,
		string(rec.JobType), string(rec.WorkMode), rec.Description, rec.DescriptionHTML,
		pq.Array(rec.Skills), pq.Array(rec.PreferredSkills), rec.PostedAt, rec.ScrapedAt,
	)
	if err != nil {
		return ResultDuplicate, fmt.Errorf("insert record: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return ResultDuplicate, fmt.Errorf("rows affected: %w", err)
	}
	return upsertOutcome(exists, affected), nil
}

// upsertOutcome maps the semantic-duplicate check and the insert's row count
// to a Result. Zero rows affected means ON CONFLICT swallowed the insert
// because the external URL already exists.
func upsertOutcome(semanticDup bool, affected int64) Result {
	if semanticDup || affected == 0 {
		return ResultDuplicate
	}
	return ResultCreated
}

// Close closes the database connection.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
