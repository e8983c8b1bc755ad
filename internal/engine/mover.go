package engine

import (
	"context"
	"fmt"

	"duck-sync/internal/schema"
)

// Source is the read-only side of a sync.
type Source interface {
	Ping(ctx context.Context) error
	ListColumns(ctx context.Context, t schema.TableDescriptor) ([]schema.ColumnDescriptor, error)
	ListTables(ctx context.Context, schemaName string) ([]string, error)
	ReadTable(ctx context.Context, t schema.TableDescriptor, cols []schema.ColumnDescriptor) (*schema.Batch, error)
}

// Sink is the destination side of a sync.
type Sink interface {
	Ping(ctx context.Context) error
	EnsureNamespace(ctx context.Context, name string) error
	ReplaceTable(ctx context.Context, t schema.TableDescriptor, cols []schema.DestinationColumn) error
	Insert(ctx context.Context, t schema.TableDescriptor, cols []schema.DestinationColumn, rows [][]any) error
	CountRows(ctx context.Context, t schema.TableDescriptor) (uint64, error)
	TableStats(ctx context.Context, namespace string) ([]schema.TableStat, error)
}

// Mover copies one table's contents from source to sink.
type Mover struct {
	source Source
	sink   Sink
}

func NewMover(src Source, dst Sink) *Mover {
	return &Mover{source: src, sink: dst}
}

// Copy materializes t, normalizes sentinels and issues one bulk insert.
// cols and dest describe the same columns in the same order. An empty
// table performs no insert.
func (m *Mover) Copy(ctx context.Context, t schema.TableDescriptor, cols []schema.ColumnDescriptor, dest []schema.DestinationColumn) (int64, error) {
	if len(cols) != len(dest) {
		return 0, newError(KindSourceRead, t.String(),
			fmt.Errorf("source has %d columns, destination has %d", len(cols), len(dest)))
	}

	batch, err := m.source.ReadTable(ctx, t, cols)
	if err != nil {
		return 0, newError(KindSourceRead, t.String(), err)
	}
	if len(batch.Columns) != len(dest) {
		return 0, newError(KindSourceRead, t.String(),
			fmt.Errorf("read %d columns, expected %d", len(batch.Columns), len(dest)))
	}

	NormalizeSentinels(batch, dest)

	if batch.Len() == 0 {
		return 0, nil
	}
	if err := m.sink.Insert(ctx, t, dest, batch.Rows); err != nil {
		return 0, newError(KindInsertion, t.String(), err)
	}
	return int64(batch.Len()), nil
}
