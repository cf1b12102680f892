package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"routescout/internal/engine"
)

// Config holds everything the scanner needs from the operator.
type Config struct {
	ServerURL string
	Email     string
	Password  string
	DBPath    string
	Scan      ScanConfig
}

// ScanConfig holds run-shaping knobs.
type ScanConfig struct {
	// IntervalMS is the minimum pause between route-quote requests.
	IntervalMS int
	// DestinationCap truncates the candidate airport list (0 = all).
	DestinationCap int
	// ResultsPerBase is how many ranked routes to keep per base.
	ResultsPerBase int
	// ServiceStars is the assumed in-flight service quality (1-5).
	ServiceStars int
	// MatchMode selects the fleet matcher: "substring" or "exact".
	MatchMode string
	// TariffFile points at a yaml file of cost-constant overrides; empty
	// means the built-in tariff is used as-is.
	TariffFile string
	Verbose    bool
}

// Load reads configuration from .env, config.yaml and ROUTESCOUT_* env
// vars, in increasing priority.
func Load() (*Config, error) {
	// Credentials usually live in .env; absence is fine.
	_ = godotenv.Load()

	v := viper.New()

	v.SetDefault("server_url", "https://www.airline-club.com")
	v.SetDefault("email", "")
	v.SetDefault("password", "")
	v.SetDefault("db_path", "routescout.db")
	v.SetDefault("scan.interval_ms", 1200)
	v.SetDefault("scan.destination_cap", 0)
	v.SetDefault("scan.results_per_base", 10)
	v.SetDefault("scan.service_stars", 3)
	v.SetDefault("scan.match_mode", "substring")
	v.SetDefault("scan.tariff_file", "")
	v.SetDefault("scan.verbose", false)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.routescout")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		// No config file is fine; defaults + env cover everything.
	}

	v.SetEnvPrefix("ROUTESCOUT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		ServerURL: v.GetString("server_url"),
		Email:     v.GetString("email"),
		Password:  v.GetString("password"),
		DBPath:    v.GetString("db_path"),
		Scan: ScanConfig{
			IntervalMS:     v.GetInt("scan.interval_ms"),
			DestinationCap: v.GetInt("scan.destination_cap"),
			ResultsPerBase: v.GetInt("scan.results_per_base"),
			ServiceStars:   v.GetInt("scan.service_stars"),
			MatchMode:      v.GetString("scan.match_mode"),
			TariffFile:     v.GetString("scan.tariff_file"),
			Verbose:        v.GetBool("scan.verbose"),
		},
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.ServerURL == "" {
		return fmt.Errorf("server_url must be set")
	}
	if c.Scan.IntervalMS < 0 {
		return fmt.Errorf("scan.interval_ms must not be negative")
	}
	if c.Scan.ServiceStars < 1 || c.Scan.ServiceStars > 5 {
		return fmt.Errorf("scan.service_stars must be 1-5, got %d", c.Scan.ServiceStars)
	}
	switch c.Scan.MatchMode {
	case "substring", "exact":
	default:
		return fmt.Errorf("scan.match_mode must be substring or exact, got %q", c.Scan.MatchMode)
	}
	return nil
}

// LoadTariff overlays the yaml file at path onto base: keys present in the
// file replace the corresponding constants, everything else keeps its base
// value. viper is avoided here because it lowercases map keys, which would
// mangle the airplane-type fee table.
func LoadTariff(path string, base engine.Tariff) (engine.Tariff, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("read tariff file: %w", err)
	}
	// Clone the slices and map so decoding never mutates the caller's base.
	tariff := base
	tariff.ClimbBands = append([]engine.FuelBand(nil), base.ClimbBands...)
	tariff.SlotFeeBySize = append([]float64(nil), base.SlotFeeBySize...)
	tariff.ServicePerHourStar = append([]float64(nil), base.ServicePerHourStar...)
	tariff.TypeFeeMultiplier = make(map[string]float64, len(base.TypeFeeMultiplier))
	for k, v := range base.TypeFeeMultiplier {
		tariff.TypeFeeMultiplier[k] = v
	}
	if err := yaml.Unmarshal(raw, &tariff); err != nil {
		return base, fmt.Errorf("parse tariff file %s: %w", path, err)
	}
	if tariff.ServiceStars < 1 || tariff.ServiceStars > 5 {
		return base, fmt.Errorf("tariff file %s: service_stars must be 1-5, got %d", path, tariff.ServiceStars)
	}
	return tariff, nil
}
