package cmd

import (
	"fmt"
	"time"

	"duck-sync/internal/dialect"
	"duck-sync/internal/schema"
	"duck-sync/internal/sink"

	"github.com/spf13/viper"
)

type SourceConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

type DestinationConfig struct {
	Addr        []string      `mapstructure:"addr"`
	Protocol    string        `mapstructure:"protocol"`
	Database    string        `mapstructure:"database"`
	Username    string        `mapstructure:"username"`
	Password    string        `mapstructure:"password"`
	DialTimeout time.Duration `mapstructure:"dial_timeout"`
	Engine      string        `mapstructure:"engine"`
}

type SyncSettings struct {
	Tables   []string `mapstructure:"tables"`
	Discover []string `mapstructure:"discover"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type Config struct {
	Source      SourceConfig      `mapstructure:"source"`
	Destination DestinationConfig `mapstructure:"destination"`
	Sync        SyncSettings      `mapstructure:"sync"`
	Log         LogConfig         `mapstructure:"log"`
}

// defaultTables is the Olist raw layer.
var defaultTables = []string{
	"raw.customers",
	"raw.geolocation",
	"raw.order_items",
	"raw.order_payments",
	"raw.order_reviews",
	"raw.orders",
	"raw.products",
	"raw.sellers",
	"raw.product_category_name_translation",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("source.driver", "duckdb")
	v.SetDefault("source.dsn", "olist_ecommerce.duckdb")
	v.SetDefault("destination.addr", []string{"localhost:9000"})
	v.SetDefault("destination.protocol", "native")
	v.SetDefault("destination.database", "default")
	v.SetDefault("destination.username", "default")
	v.SetDefault("destination.password", "")
	v.SetDefault("destination.dial_timeout", 10*time.Second)
	v.SetDefault("destination.engine", sink.DefaultEngine)
	v.SetDefault("sync.tables", defaultTables)
	v.SetDefault("sync.discover", []string{"staging", "marts"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// LoadConfig decodes and validates the configuration held by v.
func LoadConfig(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if _, err := dialect.GetDialect(c.Source.Driver); err != nil {
		return err
	}
	if c.Source.DSN == "" {
		return fmt.Errorf("source.dsn is required (via flag or config)")
	}
	if len(c.Destination.Addr) == 0 || c.Destination.Addr[0] == "" {
		return fmt.Errorf("destination.addr is required (via flag or config)")
	}
	if _, err := c.TableDescriptors(); err != nil {
		return err
	}
	return nil
}

// TableDescriptors parses sync.tables.
func (c *Config) TableDescriptors() ([]schema.TableDescriptor, error) {
	tables := make([]schema.TableDescriptor, 0, len(c.Sync.Tables))
	for _, s := range c.Sync.Tables {
		t, err := schema.ParseTableDescriptor(s)
		if err != nil {
			return nil, fmt.Errorf("sync.tables: %w", err)
		}
		tables = append(tables, t)
	}
	return tables, nil
}

func (c *Config) SinkOptions() sink.Options {
	return sink.Options{
		Addr:        c.Destination.Addr,
		Protocol:    c.Destination.Protocol,
		Database:    c.Destination.Database,
		Username:    c.Destination.Username,
		Password:    c.Destination.Password,
		DialTimeout: c.Destination.DialTimeout,
		Engine:      c.Destination.Engine,
	}
}
