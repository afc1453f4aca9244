package analysis

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/anagnostou/marketscope/internal/modules/analysis/domain"
	"github.com/anagnostou/marketscope/internal/modules/analysis/scorers"
)

// Service orchestrates scoring and persistence. The scoring itself is pure;
// everything stateful lives behind the repository.
type Service struct {
	analyzer *scorers.Analyzer
	repo     *Repository
	log      zerolog.Logger
}

// NewService creates a new analysis service
func NewService(repo *Repository, log zerolog.Logger) *Service {
	return &Service{
		analyzer: scorers.NewAnalyzer(),
		repo:     repo,
		log:      log.With().Str("service", "analysis").Logger(),
	}
}

// Score analyzes a snapshot. When persist is true the result is stored
// alongside the snapshot for later ranking and re-scoring.
func (s *Service) Score(snapshot domain.MarketSnapshot, persist bool) (*Record, error) {
	analysis := s.analyzer.Analyze(snapshot)

	if !persist {
		return &Record{Analysis: analysis, Snapshot: snapshot.Sanitize()}, nil
	}

	record, err := s.repo.Save(analysis, snapshot.Sanitize())
	if err != nil {
		return nil, fmt.Errorf("failed to persist analysis for %s: %w", snapshot.Ticker, err)
	}

	s.log.Info().
		Str("ticker", analysis.Ticker).
		Str("rating", string(analysis.Rating)).
		Int("health", analysis.Health).
		Int("conviction", analysis.Conviction).
		Msg("Snapshot scored")

	return record, nil
}

// Latest returns the most recent stored analysis for a ticker, nil if none
func (s *Service) Latest(ticker string) (*Record, error) {
	return s.repo.LatestByTicker(ticker)
}

// ListLatest returns the most recent stored analysis per ticker
func (s *Service) ListLatest() ([]Record, error) {
	return s.repo.ListLatest()
}

// History returns past analyses for a ticker, newest first
func (s *Service) History(ticker string, limit int) ([]Record, error) {
	return s.repo.History(ticker, limit)
}

// RescoreAll re-runs the engine over the latest stored snapshot of every
// ticker and persists fresh records. Scoring constants are fixed, so this
// only changes results after an engine upgrade; it is cheap enough to run
// on a schedule regardless.
func (s *Service) RescoreAll() (int, error) {
	records, err := s.repo.ListLatest()
	if err != nil {
		return 0, fmt.Errorf("failed to load snapshots for rescoring: %w", err)
	}

	count := 0
	for _, record := range records {
		analysis := s.analyzer.Analyze(record.Snapshot)
		if _, err := s.repo.Save(analysis, record.Snapshot); err != nil {
			s.log.Error().Err(err).Str("ticker", record.Snapshot.Ticker).Msg("Failed to rescore snapshot")
			continue
		}
		count++
	}

	s.log.Info().Int("count", count).Msg("Rescore completed")
	return count, nil
}
