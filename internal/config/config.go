package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App       App       `mapstructure:",squash"`
	Server    Server    `mapstructure:",squash"`
	Brex      Brex      `mapstructure:",squash"`
	Mercury   Mercury   `mapstructure:",squash"`
	Rippling  Rippling  `mapstructure:",squash"`
	Mailgun   Mailgun   `mapstructure:",squash"`
	Mailbox   Mailbox   `mapstructure:",squash"`
	Warehouse Warehouse `mapstructure:",squash"`
	Narrative Narrative `mapstructure:",squash"`
	Report    Report    `mapstructure:",squash"`
	Schedules Schedules `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

// Brex, Mercury and Rippling hold per-vendor API access. An empty APIKey is
// not a configuration error: the source is skipped and the run proceeds with
// whatever the remaining adapters return.
type Brex struct {
	URL    string `mapstructure:"brex_url"`
	APIKey string `mapstructure:"brex_api_key"`
}

type Mercury struct {
	URL    string `mapstructure:"mercury_url"`
	APIKey string `mapstructure:"mercury_api_key"`
}

type Rippling struct {
	URL    string `mapstructure:"rippling_url"`
	APIKey string `mapstructure:"rippling_api_key"`
}

type Mailgun struct {
	Domain      string `mapstructure:"mailgun_domain"`
	APIKey      string `mapstructure:"mailgun_api_key"`
	SenderEmail string `mapstructure:"mailgun_sender_email"`
	SenderName  string `mapstructure:"mailgun_sender_name"`
}

// Mailbox configures the IMAP account that receives inventory CSV exports.
type Mailbox struct {
	Server         string `mapstructure:"imap_server"`
	Username       string `mapstructure:"imap_username"`
	Password       string `mapstructure:"imap_password"`
	SubjectKeyword string `mapstructure:"imap_subject_keyword"`
	Sender         string `mapstructure:"imap_sender"`
}

type Warehouse struct {
	ProjectID string `mapstructure:"warehouse_project_id"`
	Dataset   string `mapstructure:"warehouse_dataset"`
	Table     string `mapstructure:"warehouse_table"`
}

type Narrative struct {
	Model  string `mapstructure:"narrative_model"`
	APIKey string `mapstructure:"narrative_api_key"`
}

type Report struct {
	Recipient    string `mapstructure:"report_recipient"`
	LookbackDays int    `mapstructure:"report_lookback_days"`
}

type Schedules struct {
	SpendCron        string `mapstructure:"spend_report_cron"`
	SpendEnabled     bool   `mapstructure:"spend_report_enabled"`
	InventoryCron    string `mapstructure:"inventory_report_cron"`
	InventoryEnabled bool   `mapstructure:"inventory_report_enabled"`
	SalesCron        string `mapstructure:"sales_report_cron"`
	SalesEnabled     bool   `mapstructure:"sales_report_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("BREX_URL", "https://platform.brexapis.com/v2")
	viper.SetDefault("MERCURY_URL", "https://api.mercury.com/api/v1")
	viper.SetDefault("RIPPLING_URL", "https://api.rippling.com/platform/api")

	viper.SetDefault("IMAP_SERVER", "imap.gmail.com:993")
	viper.SetDefault("IMAP_SUBJECT_KEYWORD", "Inventory")

	viper.SetDefault("WAREHOUSE_DATASET", "CONNECTORS")
	viper.SetDefault("WAREHOUSE_TABLE", "SHOPIFY")

	viper.SetDefault("NARRATIVE_MODEL", "gemini-2.0-flash")

	viper.SetDefault("REPORT_LOOKBACK_DAYS", 30)

	// Weekly reports, Monday mornings, staggered so the runs never overlap.
	viper.SetDefault("SPEND_REPORT_CRON", "0 7 * * 1")
	viper.SetDefault("SPEND_REPORT_ENABLED", false)
	viper.SetDefault("INVENTORY_REPORT_CRON", "30 7 * * 1")
	viper.SetDefault("INVENTORY_REPORT_ENABLED", false)
	viper.SetDefault("SALES_REPORT_CRON", "0 8 * * 1")
	viper.SetDefault("SALES_REPORT_ENABLED", false)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("using variables loaded by godotenv (viper could not read .env):", err)
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	return config, nil
}

func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("could not determine working directory:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info(".env loaded from:", location)
			return
		}
	}

	logrus.Warn("no .env file found, relying on process environment")
}
