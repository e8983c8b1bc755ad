package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"duck-sync/internal/schema"

	"github.com/sirupsen/logrus"
)

// Options is the job list of a single run.
type Options struct {
	// Tables are synced first, in order. Duplicates are synced once.
	Tables []schema.TableDescriptor
	// Discover lists source schemas whose tables are synced after Tables.
	// Tables already processed are not synced again.
	Discover []string
	// OnJobDone, if set, is called after each job reaches a terminal state.
	// total grows as discovery adds jobs.
	OnJobDone func(job SyncJob, done, total int)
}

// Syncer drives table jobs strictly one after another.
type Syncer struct {
	source     Source
	sink       Sink
	translator *schema.Translator
	mover      *Mover
	log        logrus.FieldLogger
}

type Option func(*Syncer)

func WithTranslator(t *schema.Translator) Option {
	return func(s *Syncer) { s.translator = t }
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(s *Syncer) { s.log = l }
}

func NewSyncer(src Source, dst Sink, opts ...Option) *Syncer {
	s := &Syncer{
		source:     src,
		sink:       dst,
		translator: schema.DefaultTranslator(),
		log:        logrus.StandardLogger(),
	}
	for _, o := range opts {
		o(s)
	}
	s.mover = NewMover(src, dst)
	return s
}

// Run syncs every job and returns the report. The only error returned is a
// CONNECTION_FAILURE raised before any job is created; per-table failures
// are recorded in the report.
func (s *Syncer) Run(ctx context.Context, opts Options) (*SyncReport, error) {
	started := time.Now()

	if err := s.source.Ping(ctx); err != nil {
		return nil, newError(KindConnection, "", err)
	}
	if err := s.sink.Ping(ctx); err != nil {
		return nil, newError(KindConnection, "", err)
	}

	var (
		jobs       []*SyncJob
		warnings   []string
		namespaces []string
		seen       = make(map[schema.TableDescriptor]bool)
		nsSeen     = make(map[string]bool)
	)
	addNamespace := func(name string) {
		if !nsSeen[name] {
			nsSeen[name] = true
			namespaces = append(namespaces, name)
		}
	}

	for _, t := range opts.Tables {
		if seen[t] {
			continue
		}
		seen[t] = true
		addNamespace(t.Schema)
		jobs = append(jobs, &SyncJob{Table: t, Status: StatusPending})
	}

	total := len(jobs)
	done := 0
	finish := func(job *SyncJob) {
		done++
		if opts.OnJobDone != nil {
			opts.OnJobDone(*job, done, total)
		}
	}

	for _, job := range jobs {
		s.runJob(ctx, job)
		finish(job)
	}

	for _, schemaName := range opts.Discover {
		addNamespace(schemaName)

		names, err := s.source.ListTables(ctx, schemaName)
		if err != nil {
			s.log.WithError(err).WithField("schema", schemaName).Warn("schema discovery failed")
			warnings = append(warnings, fmt.Sprintf("discover %s: %v", schemaName, err))
			continue
		}
		s.log.WithField("schema", schemaName).Infof("Found %d tables", len(names))

		for _, name := range names {
			t := schema.TableDescriptor{Schema: schemaName, Name: name}
			if seen[t] {
				continue
			}
			seen[t] = true

			job := &SyncJob{Table: t, Status: StatusPending, Discovered: true}
			jobs = append(jobs, job)
			total++
			s.runJob(ctx, job)
			finish(job)
		}
	}

	warnings = append(warnings, s.verify(ctx, jobs)...)
	stats, statWarnings := s.readBack(ctx, namespaces)
	warnings = append(warnings, statWarnings...)

	report := newReport(jobs, started)
	report.Destination = stats
	report.Warnings = warnings
	report.Elapsed = time.Since(started)
	return report, nil
}

func (s *Syncer) runJob(ctx context.Context, job *SyncJob) {
	start := time.Now()
	log := s.log.WithFields(logrus.Fields{"schema": job.Table.Schema, "table": job.Table.Name})
	log.Debug("Syncing table...")

	rows, err := s.syncTable(ctx, job.Table)
	job.Duration = time.Since(start)

	switch {
	case err == nil:
		job.Status = StatusSucceeded
		job.RowsCopied = rows
		log.WithField("rows", rows).Info("Table synced")
	case KindOf(err) == KindSourceMissing:
		job.skip(err)
		log.Warn("Table not found in source, skipping")
	default:
		job.fail(err)
		log.WithError(err).Error("Table sync failed")
	}
}

func (s *Syncer) syncTable(ctx context.Context, t schema.TableDescriptor) (int64, error) {
	cols, err := s.source.ListColumns(ctx, t)
	if err != nil {
		return 0, newError(KindCatalog, t.String(), err)
	}
	if len(cols) == 0 {
		return 0, newError(KindSourceMissing, t.String(), errors.New("table not found in source"))
	}

	dest := s.translator.Columns(cols)

	if err := s.sink.EnsureNamespace(ctx, t.Schema); err != nil {
		return 0, newError(KindProvisioning, t.String(), err)
	}
	if err := s.sink.ReplaceTable(ctx, t, dest); err != nil {
		return 0, newError(KindProvisioning, t.String(), err)
	}

	return s.mover.Copy(ctx, t, cols, dest)
}

// verify reads back the row count of every succeeded job.
func (s *Syncer) verify(ctx context.Context, jobs []*SyncJob) []string {
	var warnings []string
	for _, job := range jobs {
		if job.Status != StatusSucceeded {
			continue
		}
		n, err := s.sink.CountRows(ctx, job.Table)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("verify %s: %v", job.Table, err))
			continue
		}
		job.Verified = true
		job.VerifiedRows = n
		if n != uint64(job.RowsCopied) {
			s.log.WithFields(logrus.Fields{
				"schema": job.Table.Schema, "table": job.Table.Name,
				"copied": job.RowsCopied, "verified": n,
			}).Warn("Row count mismatch after sync")
			warnings = append(warnings, fmt.Sprintf("verify %s: copied %d rows, destination has %d", job.Table, job.RowsCopied, n))
		}
	}
	return warnings
}

func (s *Syncer) readBack(ctx context.Context, namespaces []string) ([]schema.TableStat, []string) {
	var stats []schema.TableStat
	var warnings []string
	for _, ns := range namespaces {
		st, err := s.sink.TableStats(ctx, ns)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("summary %s: %v", ns, err))
			continue
		}
		stats = append(stats, st...)
	}
	return stats, warnings
}
