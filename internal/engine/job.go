package engine

import (
	"time"

	"duck-sync/internal/schema"
)

// Status is the state of a SyncJob.
type Status string

const (
	StatusPending   Status = "pending"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
	StatusSkipped   Status = "skipped"
)

// SyncJob tracks one table through a run. Only the orchestrator mutates it.
type SyncJob struct {
	Table      schema.TableDescriptor
	Status     Status
	RowsCopied int64
	ErrorKind  ErrorKind
	Error      string
	Discovered bool // added by schema discovery rather than the static list

	// Destination read-back, set after all jobs finished.
	Verified     bool
	VerifiedRows uint64

	Duration time.Duration
}

func (j *SyncJob) fail(err error) {
	j.Status = StatusFailed
	j.ErrorKind = KindOf(err)
	j.Error = err.Error()
}

func (j *SyncJob) skip(err error) {
	j.Status = StatusSkipped
	j.ErrorKind = KindOf(err)
	j.Error = err.Error()
}

// SyncReport is the outcome of a run. It is not modified after Run returns.
type SyncReport struct {
	Jobs       []SyncJob
	Succeeded  int
	Failed     int
	Skipped    int
	RowsCopied int64

	// Destination holds system.tables row counts for every namespace the
	// run touched, in the order the namespaces were first seen.
	Destination []schema.TableStat

	// Non-fatal problems outside individual jobs (discovery, read-back).
	Warnings []string

	StartedAt time.Time
	Elapsed   time.Duration
}

func newReport(jobs []*SyncJob, started time.Time) *SyncReport {
	r := &SyncReport{StartedAt: started}
	for _, j := range jobs {
		r.Jobs = append(r.Jobs, *j)
		switch j.Status {
		case StatusSucceeded:
			r.Succeeded++
			r.RowsCopied += j.RowsCopied
		case StatusFailed:
			r.Failed++
		case StatusSkipped:
			r.Skipped++
		}
	}
	return r
}

// HasFailures reports whether any job failed.
func (r *SyncReport) HasFailures() bool {
	return r.Failed > 0
}

// Job returns the job for t, if the run produced one.
func (r *SyncReport) Job(t schema.TableDescriptor) (SyncJob, bool) {
	for _, j := range r.Jobs {
		if j.Table == t {
			return j, true
		}
	}
	return SyncJob{}, false
}
