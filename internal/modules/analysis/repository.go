// Package analysis wires the pure scoring engine to persistence and HTTP.
package analysis

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/anagnostou/marketscope/internal/modules/analysis/domain"
)

// Record is a persisted analysis together with the snapshot it was computed
// from. The raw snapshot is kept so analyses can be re-materialized after an
// engine change without refetching market data.
type Record struct {
	ID        string                `json:"id"`
	CreatedAt time.Time             `json:"created_at"`
	Analysis  domain.MarketAnalysis `json:"analysis"`
	Snapshot  domain.MarketSnapshot `json:"snapshot"`
}

// Repository handles analysis database operations
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new analysis repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "analysis").Logger(),
	}
}

const schema = `
CREATE TABLE IF NOT EXISTS analyses (
	id            TEXT PRIMARY KEY,
	ticker        TEXT NOT NULL,
	name          TEXT,
	rating        TEXT NOT NULL,
	conviction    INTEGER NOT NULL,
	tone          INTEGER NOT NULL,
	growth        INTEGER NOT NULL,
	profitability INTEGER NOT NULL,
	valuation     INTEGER NOT NULL,
	balance       INTEGER NOT NULL,
	health        INTEGER NOT NULL,
	risk          INTEGER NOT NULL,
	summary       TEXT NOT NULL,
	thesis        TEXT NOT NULL,
	key_risks     TEXT NOT NULL,
	snapshot      BLOB NOT NULL,
	created_at    INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_analyses_ticker_created
	ON analyses(ticker, created_at DESC);
`

// Migrate creates the analyses table if it does not exist
func (r *Repository) Migrate() error {
	if _, err := r.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to migrate analyses schema: %w", err)
	}
	return nil
}

// Save persists an analysis with its source snapshot and returns the record
func (r *Repository) Save(analysis domain.MarketAnalysis, snapshot domain.MarketSnapshot) (*Record, error) {
	record := Record{
		ID:        uuid.New().String(),
		CreatedAt: time.Now().UTC(),
		Analysis:  analysis,
		Snapshot:  snapshot,
	}

	keyRisks, err := json.Marshal(analysis.KeyRisks)
	if err != nil {
		return nil, fmt.Errorf("failed to encode key risks: %w", err)
	}

	snapshotBlob, err := msgpack.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}

	query := `
		INSERT INTO analyses
		(id, ticker, name, rating, conviction, tone, growth, profitability,
		 valuation, balance, health, risk, summary, thesis, key_risks,
		 snapshot, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		record.ID,
		strings.ToUpper(strings.TrimSpace(analysis.Ticker)),
		analysis.Name,
		string(analysis.Rating),
		analysis.Conviction,
		analysis.Tone,
		analysis.Growth,
		analysis.Profitability,
		analysis.Valuation,
		analysis.Balance,
		analysis.Health,
		analysis.Factors.Risk,
		analysis.Summary,
		analysis.Thesis,
		string(keyRisks),
		snapshotBlob,
		record.CreatedAt.UnixNano(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to save analysis: %w", err)
	}

	r.log.Debug().
		Str("ticker", analysis.Ticker).
		Str("rating", string(analysis.Rating)).
		Int("health", analysis.Health).
		Msg("Analysis saved")

	return &record, nil
}

// LatestByTicker retrieves the most recent analysis for a ticker.
// Returns nil when the ticker has never been analyzed.
func (r *Repository) LatestByTicker(ticker string) (*Record, error) {
	query := selectColumns + `
		WHERE ticker = ?
		ORDER BY created_at DESC
		LIMIT 1
	`

	record, err := r.scanRecord(r.db.QueryRow(query, strings.ToUpper(strings.TrimSpace(ticker))))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest analysis: %w", err)
	}

	return record, nil
}

// ListLatest retrieves the most recent analysis per ticker
func (r *Repository) ListLatest() ([]Record, error) {
	query := selectColumns + `
		WHERE id IN (
			SELECT id FROM analyses a
			WHERE created_at = (
				SELECT MAX(created_at) FROM analyses b WHERE b.ticker = a.ticker
			)
		)
		ORDER BY ticker
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list latest analyses: %w", err)
	}
	defer rows.Close()

	return r.collectRecords(rows)
}

// History retrieves past analyses for a ticker, newest first
func (r *Repository) History(ticker string, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 50
	}

	query := selectColumns + `
		WHERE ticker = ?
		ORDER BY created_at DESC
		LIMIT ?
	`

	rows, err := r.db.Query(query, strings.ToUpper(strings.TrimSpace(ticker)), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get analysis history: %w", err)
	}
	defer rows.Close()

	return r.collectRecords(rows)
}

const selectColumns = `
	SELECT id, ticker, name, rating, conviction, tone, growth, profitability,
	       valuation, balance, health, risk, summary, thesis, key_risks,
	       snapshot, created_at
	FROM analyses
`

// scanner abstracts sql.Row and sql.Rows for scanning
type scanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanRecord(row scanner) (*Record, error) {
	var (
		record    Record
		rating    string
		keyRisks  string
		blob      []byte
		createdAt int64
	)

	err := row.Scan(
		&record.ID,
		&record.Analysis.Ticker,
		&record.Analysis.Name,
		&rating,
		&record.Analysis.Conviction,
		&record.Analysis.Tone,
		&record.Analysis.Growth,
		&record.Analysis.Profitability,
		&record.Analysis.Valuation,
		&record.Analysis.Balance,
		&record.Analysis.Health,
		&record.Analysis.Factors.Risk,
		&record.Analysis.Summary,
		&record.Analysis.Thesis,
		&keyRisks,
		&blob,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	record.Analysis.Rating = domain.Rating(rating)

	// The factors mirror the aliased output scores
	record.Analysis.Factors.Value = record.Analysis.Valuation
	record.Analysis.Factors.Growth = record.Analysis.Growth
	record.Analysis.Factors.Quality = record.Analysis.Profitability
	record.Analysis.Factors.Momentum = record.Analysis.Tone

	if err := json.Unmarshal([]byte(keyRisks), &record.Analysis.KeyRisks); err != nil {
		return nil, fmt.Errorf("failed to decode key risks: %w", err)
	}
	if err := msgpack.Unmarshal(blob, &record.Snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	record.CreatedAt = time.Unix(0, createdAt).UTC()

	return &record, nil
}

func (r *Repository) collectRecords(rows *sql.Rows) ([]Record, error) {
	var records []Record
	for rows.Next() {
		record, err := r.scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan analysis row: %w", err)
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate analysis rows: %w", err)
	}
	return records, nil
}
