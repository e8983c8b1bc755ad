package engine

import (
	"context"

	"duck-sync/internal/schema"
)

// TablePlan is what a run would create for one table.
type TablePlan struct {
	Table      schema.TableDescriptor
	Source     []schema.ColumnDescriptor
	Columns    []schema.DestinationColumn
	Discovered bool
	Missing    bool
	Error      string
}

// Plan resolves the job list and column translation against the source
// only. The sink is never touched.
func (s *Syncer) Plan(ctx context.Context, opts Options) ([]TablePlan, error) {
	if err := s.source.Ping(ctx); err != nil {
		return nil, newError(KindConnection, "", err)
	}

	var plans []TablePlan
	seen := make(map[schema.TableDescriptor]bool)

	add := func(t schema.TableDescriptor, discovered bool) {
		if seen[t] {
			return
		}
		seen[t] = true

		p := TablePlan{Table: t, Discovered: discovered}
		cols, err := s.source.ListColumns(ctx, t)
		switch {
		case err != nil:
			p.Error = err.Error()
		case len(cols) == 0:
			p.Missing = true
		default:
			p.Source = cols
			p.Columns = s.translator.Columns(cols)
		}
		plans = append(plans, p)
	}

	for _, t := range opts.Tables {
		add(t, false)
	}
	for _, schemaName := range opts.Discover {
		names, err := s.source.ListTables(ctx, schemaName)
		if err != nil {
			s.log.WithError(err).WithField("schema", schemaName).Warn("schema discovery failed")
			continue
		}
		for _, name := range names {
			add(schema.TableDescriptor{Schema: schemaName, Name: name}, true)
		}
	}
	return plans, nil
}
