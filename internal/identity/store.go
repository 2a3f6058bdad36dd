// Package identity persists resolved taxpayer identities and enriches
// decoded records with them. Lookups against national registries are slow
// and rate limited, so every outcome worth keeping lands in a durable cache
// shared across runs.
package identity

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/xl-idp/unzipping/internal/observability"
)

// Record is one cached identity row. For the taxpayer table the key is the
// id itself; for the search table the key is the cleaned query and
// TaxpayerID holds the mined id, empty for negative outcomes.
type Record struct {
	TaxpayerID  string `json:"taxpayer_id"`
	CompanyName string `json:"company_name"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Country     string `json:"country"`
}

// Store is the identity cache: one namespace per channel.
type Store interface {
	GetTaxpayer(ctx context.Context, taxpayerID string) (*Record, bool, error)
	PutTaxpayer(ctx context.Context, rec Record) error
	GetSearch(ctx context.Context, query string) (*Record, bool, error)
	PutSearch(ctx context.Context, query string, rec Record) error
	Close() error
}

// Supported SQL dialects.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

const (
	tableTaxpayer = "cache_taxpayer_id"
	tableSearch   = "search_engine"
)

// SQLStore keeps the cache in sqlite or postgres. A single mutex serializes
// writes; sqlite files choke on concurrent writers and the write rate here
// is tiny.
type SQLStore struct {
	db     *sql.DB
	driver string
	mu     sync.Mutex
	log    *observability.Logger
}

// NewSQLStore opens the database and creates the schema. driver must be
// DriverSQLite or DriverPostgres.
func NewSQLStore(driver, dsn string, log *observability.Logger) (*SQLStore, error) {
	if driver != DriverSQLite && driver != DriverPostgres {
		return nil, fmt.Errorf("identity: unsupported driver %q", driver)
	}
	if driver == DriverSQLite && dsn != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dsn), 0o755); err != nil {
			return nil, fmt.Errorf("identity: create cache dir: %w", err)
		}
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("identity: open %s: %w", driver, err)
	}
	s, err := NewSQLStoreFromDB(db, driver, log)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// NewSQLStoreFromDB wraps an existing handle and creates the schema.
func NewSQLStoreFromDB(db *sql.DB, driver string, log *observability.Logger) (*SQLStore, error) {
	if driver != DriverSQLite && driver != DriverPostgres {
		return nil, fmt.Errorf("identity: unsupported driver %q", driver)
	}
	if log == nil {
		log = observability.Nop()
	}
	s := &SQLStore{db: db, driver: driver, log: log}
	if err := s.migrate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SQLStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS ` + tableTaxpayer + ` (
			key TEXT PRIMARY KEY,
			taxpayer_id TEXT,
			company_name TEXT,
			phone TEXT,
			email TEXT,
			country TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tableSearch + ` (
			key TEXT PRIMARY KEY,
			taxpayer_id TEXT,
			company_name TEXT,
			phone TEXT,
			email TEXT,
			country TEXT
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("identity: migrate: %w", err)
		}
	}
	return nil
}

func (s *SQLStore) GetTaxpayer(ctx context.Context, taxpayerID string) (*Record, bool, error) {
	return s.get(ctx, tableTaxpayer, taxpayerID)
}

func (s *SQLStore) PutTaxpayer(ctx context.Context, rec Record) error {
	return s.put(ctx, tableTaxpayer, rec.TaxpayerID, rec)
}

func (s *SQLStore) GetSearch(ctx context.Context, query string) (*Record, bool, error) {
	return s.get(ctx, tableSearch, query)
}

func (s *SQLStore) PutSearch(ctx context.Context, query string, rec Record) error {
	return s.put(ctx, tableSearch, query, rec)
}

func (s *SQLStore) get(ctx context.Context, table, key string) (*Record, bool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT taxpayer_id, company_name, phone, email, country FROM `+table+` WHERE key = $1`, key)
	var rec Record
	err := row.Scan(&rec.TaxpayerID, &rec.CompanyName, &rec.Phone, &rec.Email, &rec.Country)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("identity: read %s: %w", table, err)
	}
	return &rec, true, nil
}

func (s *SQLStore) put(ctx context.Context, table, key string, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var stmt string
	if s.driver == DriverSQLite {
		stmt = `INSERT OR REPLACE INTO ` + table +
			` (key, taxpayer_id, company_name, phone, email, country) VALUES ($1, $2, $3, $4, $5, $6)`
	} else {
		stmt = `INSERT INTO ` + table +
			` (key, taxpayer_id, company_name, phone, email, country) VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (key) DO UPDATE SET
				taxpayer_id = EXCLUDED.taxpayer_id,
				company_name = EXCLUDED.company_name,
				phone = EXCLUDED.phone,
				email = EXCLUDED.email,
				country = EXCLUDED.country`
	}
	if _, err := s.db.ExecContext(ctx, stmt, key, rec.TaxpayerID, rec.CompanyName, rec.Phone, rec.Email, rec.Country); err != nil {
		return fmt.Errorf("identity: write %s: %w", table, err)
	}
	return nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}
