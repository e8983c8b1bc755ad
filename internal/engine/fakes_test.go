package engine_test

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"duck-sync/internal/schema"
	"duck-sync/internal/sink"
)

// recorder keeps the interleaved call order of source and sink.
type recorder struct {
	calls []string
}

func (r *recorder) add(format string, args ...any) {
	if r != nil {
		r.calls = append(r.calls, fmt.Sprintf(format, args...))
	}
}

type srcTable struct {
	cols []schema.ColumnDescriptor
	rows [][]any
}

// fakeSource is an in-memory Source.
type fakeSource struct {
	rec     *recorder
	pingErr error
	tables  map[schema.TableDescriptor]*srcTable
	listErr map[string]error
	readErr map[schema.TableDescriptor]error
}

func newFakeSource(rec *recorder) *fakeSource {
	return &fakeSource{
		rec:     rec,
		tables:  make(map[schema.TableDescriptor]*srcTable),
		listErr: make(map[string]error),
		readErr: make(map[schema.TableDescriptor]error),
	}
}

func (f *fakeSource) add(t schema.TableDescriptor, cols []schema.ColumnDescriptor, rows ...[]any) {
	f.tables[t] = &srcTable{cols: cols, rows: rows}
}

func (f *fakeSource) Ping(ctx context.Context) error { return f.pingErr }

func (f *fakeSource) ListColumns(ctx context.Context, t schema.TableDescriptor) ([]schema.ColumnDescriptor, error) {
	f.rec.add("columns %s", t)
	st, ok := f.tables[t]
	if !ok {
		return nil, nil
	}
	return st.cols, nil
}

func (f *fakeSource) ListTables(ctx context.Context, schemaName string) ([]string, error) {
	f.rec.add("tables %s", schemaName)
	if err := f.listErr[schemaName]; err != nil {
		return nil, err
	}
	var names []string
	for t := range f.tables {
		if t.Schema == schemaName {
			names = append(names, t.Name)
		}
	}
	sort.Strings(names)
	return names, nil
}

func (f *fakeSource) ReadTable(ctx context.Context, t schema.TableDescriptor, cols []schema.ColumnDescriptor) (*schema.Batch, error) {
	f.rec.add("read %s", t)
	if err := f.readErr[t]; err != nil {
		return nil, err
	}
	st := f.tables[t]
	b := &schema.Batch{}
	for _, c := range cols {
		b.Columns = append(b.Columns, c.Name)
	}
	for _, r := range st.rows {
		b.Rows = append(b.Rows, append([]any(nil), r...))
	}
	return b, nil
}

type dstTable struct {
	cols []schema.DestinationColumn
	rows [][]any
}

// fakeSink is an in-memory Sink. Inserted rows go through the same value
// conversion the ClickHouse sink applies.
type fakeSink struct {
	rec        *recorder
	pingErr    error
	nsErr      map[string]error
	replaceErr map[schema.TableDescriptor]error
	insertErr  map[schema.TableDescriptor]error
	statsErr   error

	namespaces  map[string]bool
	tables      map[schema.TableDescriptor]*dstTable
	insertCalls int
}

func newFakeSink(rec *recorder) *fakeSink {
	return &fakeSink{
		rec:        rec,
		nsErr:      make(map[string]error),
		replaceErr: make(map[schema.TableDescriptor]error),
		insertErr:  make(map[schema.TableDescriptor]error),
		namespaces: make(map[string]bool),
		tables:     make(map[schema.TableDescriptor]*dstTable),
	}
}

func (f *fakeSink) Ping(ctx context.Context) error { return f.pingErr }

func (f *fakeSink) EnsureNamespace(ctx context.Context, name string) error {
	f.rec.add("namespace %s", name)
	if err := f.nsErr[name]; err != nil {
		return err
	}
	f.namespaces[name] = true
	return nil
}

func (f *fakeSink) ReplaceTable(ctx context.Context, t schema.TableDescriptor, cols []schema.DestinationColumn) error {
	f.rec.add("replace %s", t)
	if err := f.replaceErr[t]; err != nil {
		return err
	}
	if err := sink.ValidateColumnNames(cols); err != nil {
		return err
	}
	if !f.namespaces[t.Schema] {
		return errors.New("unknown database " + t.Schema)
	}
	f.tables[t] = &dstTable{cols: cols}
	return nil
}

func (f *fakeSink) Insert(ctx context.Context, t schema.TableDescriptor, cols []schema.DestinationColumn, rows [][]any) error {
	f.rec.add("insert %s", t)
	f.insertCalls++
	if err := f.insertErr[t]; err != nil {
		return err
	}
	tbl, ok := f.tables[t]
	if !ok {
		return errors.New("unknown table " + t.String())
	}
	var converted [][]any
	for _, r := range rows {
		cr, err := sink.ConvertRow(tbl.cols, r)
		if err != nil {
			return err
		}
		converted = append(converted, cr)
	}
	tbl.rows = append(tbl.rows, converted...)
	return nil
}

func (f *fakeSink) CountRows(ctx context.Context, t schema.TableDescriptor) (uint64, error) {
	tbl, ok := f.tables[t]
	if !ok {
		return 0, errors.New("unknown table " + t.String())
	}
	return uint64(len(tbl.rows)), nil
}

func (f *fakeSink) TableStats(ctx context.Context, namespace string) ([]schema.TableStat, error) {
	if f.statsErr != nil {
		return nil, f.statsErr
	}
	var stats []schema.TableStat
	for t, tbl := range f.tables {
		if t.Schema == namespace {
			stats = append(stats, schema.TableStat{Schema: t.Schema, Name: t.Name, Rows: uint64(len(tbl.rows))})
		}
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Name < stats[j].Name })
	return stats, nil
}
