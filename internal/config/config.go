package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string

	Store     StoreConfig
	Data      DataConfig
	Bill      BillConfig
	Catalog   CatalogConfig
	Inventory InventoryConfig
	Report    ReportConfig
	Log       LogConfig
	Metrics   MetricsConfig
	Tracing   TracingConfig
}

type StoreConfig struct {
	Name           string
	CurrencySymbol string
}

// DataConfig locates the line-oriented record files. Relative file names are
// resolved against Dir.
type DataConfig struct {
	Dir            string
	ProductsFile   string
	ReceiptsFile   string
	SalesItemsFile string
	CustomersFile  string
	BillsDir       string
}

type BillConfig struct {
	Formats []string
}

type CatalogConfig struct {
	Backend string
	DSN     string
}

type InventoryConfig struct {
	LowStockThreshold int
}

type ReportConfig struct {
	TopLimit int
}

type LogConfig struct {
	Level  string
	Format string
}

type MetricsConfig struct {
	Textfile string
}

type TracingConfig struct {
	Enabled       bool
	Endpoint      string
	Protocol      string
	SamplingRatio float64
}

const (
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendMySQL    = "mysql"

	BillFormatText = "text"
	BillFormatPDF  = "pdf"
)

var (
	ErrInvalidDataPath   = errors.New("invalid_data_path")
	ErrInvalidBackend    = errors.New("invalid_catalog_backend")
	ErrInvalidBillFormat = errors.New("invalid_bill_format")
	ErrMissingDSN        = errors.New("missing_catalog_dsn")
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "retailpos")
	v.SetDefault("app.version", "0.1.0")
	v.SetDefault("app.environment", "development")

	v.SetDefault("store.name", "CODE_FUSION STORE")
	v.SetDefault("store.currency_symbol", "")

	v.SetDefault("data.dir", ".")
	v.SetDefault("data.products_file", "products.txt")
	v.SetDefault("data.receipts_file", "receipts.txt")
	v.SetDefault("data.sales_items_file", "sales_items.txt")
	v.SetDefault("data.customers_file", "customers.txt")
	v.SetDefault("data.bills_dir", "bills")

	v.SetDefault("bill.formats", []string{BillFormatText})

	v.SetDefault("catalog.backend", BackendFile)
	v.SetDefault("catalog.dsn", "")

	v.SetDefault("inventory.low_stock_threshold", 5)
	v.SetDefault("report.top_limit", 10)

	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "console")

	v.SetDefault("metrics.textfile", "")

	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.endpoint", "localhost:4317")
	v.SetDefault("tracing.protocol", "grpc")
	v.SetDefault("tracing.sampling_ratio", 1.0)
}

// Load reads .env, then retailpos.yml from the usual locations, then
// RETAILPOS_* environment overrides. A missing config file is not an error.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("retailpos")
	v.SetConfigType("yml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.retailpos")
	v.AddConfigPath("/etc/retailpos")

	v.SetEnvPrefix("RETAILPOS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	return FromViper(v)
}

// FromViper builds a validated Config from an already populated viper instance.
func FromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		AppName:     strings.TrimSpace(v.GetString("app.name")),
		AppVersion:  strings.TrimSpace(v.GetString("app.version")),
		Environment: strings.TrimSpace(v.GetString("app.environment")),
		Store: StoreConfig{
			Name:           strings.TrimSpace(v.GetString("store.name")),
			CurrencySymbol: v.GetString("store.currency_symbol"),
		},
		Data: DataConfig{
			Dir:            strings.TrimSpace(v.GetString("data.dir")),
			ProductsFile:   strings.TrimSpace(v.GetString("data.products_file")),
			ReceiptsFile:   strings.TrimSpace(v.GetString("data.receipts_file")),
			SalesItemsFile: strings.TrimSpace(v.GetString("data.sales_items_file")),
			CustomersFile:  strings.TrimSpace(v.GetString("data.customers_file")),
			BillsDir:       strings.TrimSpace(v.GetString("data.bills_dir")),
		},
		Bill: BillConfig{
			Formats: normalizeList(v.GetStringSlice("bill.formats")),
		},
		Catalog: CatalogConfig{
			Backend: strings.ToLower(strings.TrimSpace(v.GetString("catalog.backend"))),
			DSN:     strings.TrimSpace(v.GetString("catalog.dsn")),
		},
		Inventory: InventoryConfig{
			LowStockThreshold: v.GetInt("inventory.low_stock_threshold"),
		},
		Report: ReportConfig{
			TopLimit: v.GetInt("report.top_limit"),
		},
		Log: LogConfig{
			Level:  strings.ToLower(strings.TrimSpace(v.GetString("log.level"))),
			Format: strings.ToLower(strings.TrimSpace(v.GetString("log.format"))),
		},
		Metrics: MetricsConfig{
			Textfile: strings.TrimSpace(v.GetString("metrics.textfile")),
		},
		Tracing: TracingConfig{
			Enabled:       v.GetBool("tracing.enabled"),
			Endpoint:      strings.TrimSpace(v.GetString("tracing.endpoint")),
			Protocol:      strings.ToLower(strings.TrimSpace(v.GetString("tracing.protocol"))),
			SamplingRatio: v.GetFloat64("tracing.sampling_ratio"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configurations the stores cannot work with.
func (c Config) Validate() error {
	paths := []string{
		c.Data.Dir,
		c.Data.ProductsFile,
		c.Data.ReceiptsFile,
		c.Data.SalesItemsFile,
		c.Data.CustomersFile,
		c.Data.BillsDir,
	}
	for _, p := range paths {
		if p == "" {
			return ErrInvalidDataPath
		}
	}

	switch c.Catalog.Backend {
	case BackendFile:
	case BackendSQLite, BackendPostgres, BackendMySQL:
		if c.Catalog.DSN == "" {
			return fmt.Errorf("%w: backend %s", ErrMissingDSN, c.Catalog.Backend)
		}
	default:
		return fmt.Errorf("%w: %q", ErrInvalidBackend, c.Catalog.Backend)
	}

	for _, f := range c.Bill.Formats {
		if f != BillFormatText && f != BillFormatPDF {
			return fmt.Errorf("%w: %q", ErrInvalidBillFormat, f)
		}
	}
	return nil
}

// Path resolves a data file name against the data directory.
func (d DataConfig) Path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(d.Dir, name)
}

func (d DataConfig) ProductsPath() string   { return d.Path(d.ProductsFile) }
func (d DataConfig) ReceiptsPath() string   { return d.Path(d.ReceiptsFile) }
func (d DataConfig) SalesItemsPath() string { return d.Path(d.SalesItemsFile) }
func (d DataConfig) CustomersPath() string  { return d.Path(d.CustomersFile) }
func (d DataConfig) BillsPath() string      { return d.Path(d.BillsDir) }

// HasBillFormat reports whether the bill format is enabled.
func (b BillConfig) HasBillFormat(format string) bool {
	for _, f := range b.Formats {
		if f == format {
			return true
		}
	}
	return false
}

func normalizeList(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		// env overrides arrive as a single comma separated value
		for _, part := range strings.Split(item, ",") {
			part = strings.ToLower(strings.TrimSpace(part))
			if part == "" {
				continue
			}
			out = append(out, part)
		}
	}
	return out
}
