package devserver

import (
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// OverdueJob periodically flips past-due tasks to OVERDUE, mirroring
// the real backend's scheduled sweep.
type OverdueJob struct {
	store *Store
	cron  *cron.Cron
	log   *zap.Logger
}

// NewOverdueJob creates the sweep with the given cron spec
func NewOverdueJob(store *Store, spec string, log *zap.Logger) (*OverdueJob, error) {
	job := &OverdueJob{
		store: store,
		cron:  cron.New(),
		log:   log,
	}
	if _, err := job.cron.AddFunc(spec, job.run); err != nil {
		return nil, err
	}
	return job, nil
}

// Start runs one sweep immediately, then on the cron schedule
func (j *OverdueJob) Start() {
	j.run()
	j.cron.Start()
}

// Stop halts the schedule
func (j *OverdueJob) Stop() {
	j.cron.Stop()
}

func (j *OverdueJob) run() {
	if changed := j.store.MarkOverdue(); changed > 0 {
		j.log.Info("marked overdue tasks", zap.Int("count", changed))
	}
}
