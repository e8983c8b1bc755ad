package cmd

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cleanTables []string

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Drop the destination tables of the configured job list",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("tables") {
			viper.Set("sync.tables", cleanTables)
		}

		cfg, err := LoadConfig(viper.GetViper())
		if err != nil {
			return err
		}
		targets, err := cfg.TableDescriptors()
		if err != nil {
			return err
		}

		ctx := context.Background()
		dst, err := openSink(ctx, cfg)
		if err != nil {
			return err
		}
		defer dst.Close()

		dropped := 0
		total := len(targets)
		for i, t := range targets {
			if err := dst.DropTable(ctx, t); err != nil {
				logger.WithError(err).WithFields(logrus.Fields{"schema": t.Schema, "table": t.Name}).
					Warn("Failed to drop table (continuing...)")
			} else {
				dropped++
			}

			if (i+1)%5 == 0 || i+1 == total {
				logger.Infof("Cleaned %d/%d tables...", i+1, total)
			}
		}

		logger.Infof("Destination Cleaned: %d/%d tables dropped", dropped, total)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(cleanCmd)
	cleanCmd.Flags().StringSliceVarP(&cleanTables, "tables", "t", []string{}, "Tables to drop as schema.table (comma-separated, overrides config)")
}
