package scheduler

import (
	"github.com/rs/zerolog"

	"github.com/anagnostou/marketscope/internal/modules/analysis"
)

// RescoreJob re-runs the scoring engine over every stored snapshot so
// persisted analyses track the current engine version.
type RescoreJob struct {
	service *analysis.Service
	log     zerolog.Logger
}

// NewRescoreJob creates a new rescore job
func NewRescoreJob(service *analysis.Service, log zerolog.Logger) *RescoreJob {
	return &RescoreJob{
		service: service,
		log:     log.With().Str("job", "rescore").Logger(),
	}
}

// Name returns the job name
func (j *RescoreJob) Name() string {
	return "rescore"
}

// Run re-scores all stored snapshots
func (j *RescoreJob) Run() error {
	count, err := j.service.RescoreAll()
	if err != nil {
		return err
	}

	j.log.Info().Int("count", count).Msg("Scheduled rescore finished")
	return nil
}
