package sink

import (
	"context"
	"fmt"
	"time"

	"duck-sync/internal/schema"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

// Options configures the destination connection.
type Options struct {
	Addr        []string
	Protocol    string // "native" or "http"
	Database    string
	Username    string
	Password    string
	DialTimeout time.Duration
	Engine      string
}

// ClickHouse provisions and fills destination tables. One connection is
// reused for the whole run.
type ClickHouse struct {
	conn   driver.Conn
	engine string
}

// Open connects to ClickHouse and pings it.
func Open(ctx context.Context, opts Options) (*ClickHouse, error) {
	protocol := clickhouse.Native
	switch opts.Protocol {
	case "", "native":
	case "http":
		protocol = clickhouse.HTTP
	default:
		return nil, fmt.Errorf("unsupported destination protocol %q", opts.Protocol)
	}

	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr:     opts.Addr,
		Protocol: protocol,
		Auth: clickhouse.Auth{
			Database: opts.Database,
			Username: opts.Username,
			Password: opts.Password,
		},
		DialTimeout: opts.DialTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open destination: %w", err)
	}

	ch := &ClickHouse{conn: conn, engine: opts.Engine}
	if err := ch.Ping(ctx); err != nil {
		conn.Close()
		return nil, err
	}
	return ch, nil
}

func (c *ClickHouse) Ping(ctx context.Context) error {
	if err := c.conn.Ping(ctx); err != nil {
		return fmt.Errorf("failed to connect to destination: %w", err)
	}
	return nil
}

func (c *ClickHouse) Close() error {
	return c.conn.Close()
}

// EnsureNamespace creates the destination database if it does not exist.
func (c *ClickHouse) EnsureNamespace(ctx context.Context, name string) error {
	if err := c.conn.Exec(ctx, CreateDatabaseQuery(name)); err != nil {
		return fmt.Errorf("failed to create database %s: %w", name, err)
	}
	return nil
}

// ReplaceTable drops t if present and recreates it with cols.
func (c *ClickHouse) ReplaceTable(ctx context.Context, t schema.TableDescriptor, cols []schema.DestinationColumn) error {
	if err := ValidateColumnNames(cols); err != nil {
		return fmt.Errorf("table %s: %w", t, err)
	}
	if err := c.DropTable(ctx, t); err != nil {
		return err
	}
	if err := c.conn.Exec(ctx, CreateTableQuery(t, cols, c.engine)); err != nil {
		return fmt.Errorf("failed to create table %s: %w", t, err)
	}
	return nil
}

func (c *ClickHouse) DropTable(ctx context.Context, t schema.TableDescriptor) error {
	if err := c.conn.Exec(ctx, DropTableQuery(t)); err != nil {
		return fmt.Errorf("failed to drop table %s: %w", t, err)
	}
	return nil
}

// Insert sends rows as a single batch. Values are bound positionally to cols.
func (c *ClickHouse) Insert(ctx context.Context, t schema.TableDescriptor, cols []schema.DestinationColumn, rows [][]any) error {
	if len(rows) == 0 {
		return nil
	}

	batch, err := c.conn.PrepareBatch(ctx, InsertQuery(t, schema.ColumnNames(cols)))
	if err != nil {
		return fmt.Errorf("failed to prepare insert into %s: %w", t, err)
	}

	for i, row := range rows {
		values, err := ConvertRow(cols, row)
		if err == nil {
			err = batch.Append(values...)
		}
		if err != nil {
			batch.Abort()
			return fmt.Errorf("row %d of %s: %w", i, t, err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("failed to insert into %s: %w", t, err)
	}
	return nil
}

// CountRows reads back the row count of t.
func (c *ClickHouse) CountRows(ctx context.Context, t schema.TableDescriptor) (uint64, error) {
	var n uint64
	if err := c.conn.QueryRow(ctx, CountRowsQuery(t)).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count rows of %s: %w", t, err)
	}
	return n, nil
}

// TableStats lists the tables in a destination database with the row
// counts reported by system.tables.
func (c *ClickHouse) TableStats(ctx context.Context, database string) ([]schema.TableStat, error) {
	rows, err := c.conn.Query(ctx, tableStatsQuery, database)
	if err != nil {
		return nil, fmt.Errorf("failed to query system.tables: %w", err)
	}
	defer rows.Close()

	var stats []schema.TableStat
	for rows.Next() {
		var name string
		var total *uint64
		if err := rows.Scan(&name, &total); err != nil {
			return nil, fmt.Errorf("failed to scan system.tables row: %w", err)
		}
		st := schema.TableStat{Schema: database, Name: name}
		if total != nil {
			st.Rows = *total
		}
		stats = append(stats, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating system.tables: %w", err)
	}
	return stats, nil
}
