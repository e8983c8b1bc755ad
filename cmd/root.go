package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"duck-sync/internal/dialect"
	"duck-sync/internal/engine"
	"duck-sync/internal/logging"
	"duck-sync/internal/schema"
	"duck-sync/internal/sink"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	logger  = logrus.StandardLogger()
)

var RootCmd = &cobra.Command{
	Use:   "duck-sync",
	Short: "Mirror analytical database tables into ClickHouse",
	Long: `
     _            _                            
  __| |_   _  ___| | __      ___ _   _ _ __   ___ 
 / _' | | | |/ __| |/ /____ / __| | | | '_ \ / __|
| (_| | |_| | (__|   <_____|\__ \ |_| | | | | (__ 
 \__,_|\__,_|\___|_|\_\     |___/\__, |_| |_|\___|
                                 |___/            

DUCK SYNC 🦆 - DuckDB → ClickHouse table mirroring
`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := logging.New(viper.GetString("log.level"), viper.GetString("log.format"), os.Stderr)
		if err != nil {
			return err
		}
		logger = l
		if f := viper.ConfigFileUsed(); f != "" {
			logger.WithField("file", f).Debug("Using config file")
		}
		return nil
	},
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	setDefaults(viper.GetViper())

	// Define flags
	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./duck-sync.yaml)")
	RootCmd.PersistentFlags().String("source-driver", "", "Source driver (duckdb, postgres, mysql, sqlserver, oracle, sqlite)")
	RootCmd.PersistentFlags().String("source-dsn", "", "Source Data Source Name (DSN)")
	RootCmd.PersistentFlags().StringSlice("dest-addr", nil, "ClickHouse address(es), host:port")
	RootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")

	// Bind flags to viper
	viper.BindPFlag("source.driver", RootCmd.PersistentFlags().Lookup("source-driver"))
	viper.BindPFlag("source.dsn", RootCmd.PersistentFlags().Lookup("source-dsn"))
	viper.BindPFlag("destination.addr", RootCmd.PersistentFlags().Lookup("dest-addr"))
	viper.BindPFlag("log.level", RootCmd.PersistentFlags().Lookup("log-level"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// 1. Executable Directory (Priority 1)
		ex, err := os.Executable()
		if err == nil {
			viper.AddConfigPath(filepath.Dir(ex))
		}

		// 2. Current Directory (Priority 2)
		viper.AddConfigPath(".")

		viper.SetConfigName("duck-sync")
		viper.SetConfigType("yaml")
	}

	// DUCKSYNC_DESTINATION_PASSWORD -> destination.password
	viper.SetEnvPrefix("ducksync")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || cfgFile != "" {
			fmt.Fprintln(os.Stderr, "Warning: failed to read config:", err)
		}
	}
}

// openSource opens the source read-only. Failure is a connection failure.
func openSource(ctx context.Context, cfg *Config) (*schema.Catalog, error) {
	d, err := dialect.GetDialect(cfg.Source.Driver)
	if err != nil {
		return nil, err
	}
	logger.WithFields(logrus.Fields{"driver": d.DriverName()}).Info("🦆 Connecting to source")

	c, err := schema.OpenCatalog(ctx, d, cfg.Source.DSN)
	if err != nil {
		return nil, &engine.SyncError{Kind: engine.KindConnection, Err: err}
	}
	return c, nil
}

// openSink connects to ClickHouse. Failure is a connection failure.
func openSink(ctx context.Context, cfg *Config) (*sink.ClickHouse, error) {
	logger.WithFields(logrus.Fields{
		"addr":     strings.Join(cfg.Destination.Addr, ","),
		"protocol": cfg.Destination.Protocol,
	}).Info("🏠 Connecting to ClickHouse")

	ch, err := sink.Open(ctx, cfg.SinkOptions())
	if err != nil {
		return nil, &engine.SyncError{Kind: engine.KindConnection, Err: err}
	}
	return ch, nil
}
