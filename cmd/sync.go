package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"duck-sync/internal/engine"
	"duck-sync/internal/schema"
	"duck-sync/internal/sink"

	"github.com/gosuri/uiprogress"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	dryRun   bool
	noBar    bool
	tables   []string
	discover []string
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Copy source tables into ClickHouse (full replace)",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Flag > Config > Default
		if cmd.Flags().Changed("tables") {
			viper.Set("sync.tables", tables)
		}
		if cmd.Flags().Changed("discover") {
			viper.Set("sync.discover", discover)
		}

		cfg, err := LoadConfig(viper.GetViper())
		if err != nil {
			return err
		}
		targets, err := cfg.TableDescriptors()
		if err != nil {
			return err
		}
		opts := engine.Options{Tables: targets, Discover: cfg.Sync.Discover}

		ctx := context.Background()

		src, err := openSource(ctx, cfg)
		if err != nil {
			return err
		}
		defer src.Close()

		if dryRun {
			logger.Info("[SIMULATION] Dry-Run Mode Active: No data will be written.")
			return planSync(ctx, os.Stdout, src, opts, cfg.Destination.Engine)
		}

		dst, err := openSink(ctx, cfg)
		if err != nil {
			return err
		}
		defer dst.Close()

		logger.Infof("Starting sync of %d tables (discover: %v)...", len(targets), cfg.Sync.Discover)
		start := time.Now()

		// Progress covers the static list; discovered tables are logged.
		var bar *uiprogress.Bar
		if !noBar && len(targets) > 0 {
			uiprogress.Start()
			bar = uiprogress.AddBar(len(targets)).AppendCompleted().PrependElapsed()
			bar.PrependFunc(func(b *uiprogress.Bar) string {
				return "Syncing: "
			})
			opts.OnJobDone = func(job engine.SyncJob, done, total int) {
				if done <= bar.Total {
					bar.Set(done)
				}
			}
		}

		syncer := engine.NewSyncer(src, dst, engine.WithLogger(logger))
		report, err := syncer.Run(ctx, opts)

		if bar != nil {
			uiprogress.Stop()
		}
		if err != nil {
			return err
		}

		printReport(os.Stdout, report)
		logger.Infof("Sync Done! Time Elapsed: %s", time.Since(start))

		if report.HasFailures() {
			return fmt.Errorf("%d of %d tables failed", report.Failed, len(report.Jobs))
		}
		return nil
	},
}

// planSync prints what a run would create, using tableEngine for the DDL.
func planSync(ctx context.Context, w io.Writer, src engine.Source, opts engine.Options, tableEngine string) error {
	plans, err := engine.NewSyncer(src, nil, engine.WithLogger(logger)).Plan(ctx, opts)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "🔍 Planned Tables:\n")
	for i, p := range plans {
		origin := "static"
		if p.Discovered {
			origin = "discovered"
		}
		switch {
		case p.Error != "":
			fmt.Fprintf(w, "[%02d] %s (%s) - ERROR: %s\n", i+1, p.Table, origin, p.Error)
		case p.Missing:
			fmt.Fprintf(w, "[%02d] %s (%s) - not found in source, would be skipped\n", i+1, p.Table, origin)
		default:
			fmt.Fprintf(w, "[%02d] %s (%s)\n", i+1, p.Table, origin)
			for ci, c := range p.Source {
				fmt.Fprintf(w, "    %-30s %-28s -> %s\n", c.Name, c.SourceType, p.Columns[ci].DDLType())
			}
			fmt.Fprintf(w, "%s\n\n", sink.CreateTableQuery(p.Table, p.Columns, tableEngine))
		}
	}
	return nil
}

func init() {
	RootCmd.AddCommand(syncCmd)

	// CLI Flags
	syncCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show the tables and DDL that would be created without writing to ClickHouse")
	syncCmd.Flags().BoolVar(&noBar, "no-progress", false, "Disable the progress bar")
	syncCmd.Flags().StringSliceVarP(&tables, "tables", "t", []string{}, "Tables to sync as schema.table (comma-separated, overrides config)")
	syncCmd.Flags().StringSliceVar(&discover, "discover", []string{}, "Source schemas to discover tables in (comma-separated, overrides config)")
}

var _ engine.Source = (*schema.Catalog)(nil)
var _ engine.Sink = (*sink.ClickHouse)(nil)
