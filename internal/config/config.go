package config

import (
	"strings"

	"github.com/spf13/viper"

	applog "storefront/internal/log"
)

type Config struct {
	Port         string   `mapstructure:"PORT"`
	DBDSN        string   `mapstructure:"DB_DSN"`
	LogFile      string   `mapstructure:"LOG_FILE"`
	LogLevel     string   `mapstructure:"LOG_LEVEL"`
	PolicyFile   string   `mapstructure:"POLICY_FILE"`
	RateLimit    int      `mapstructure:"RATE_LIMIT_PER_MIN"`
	MaxCartQty   int      `mapstructure:"MAX_CART_QTY"`
	KafkaBrokers []string `mapstructure:"KAFKA_BROKERS"`
	KafkaTopic   string   `mapstructure:"KAFKA_TOPIC"`
	SeedDemo     bool     `mapstructure:"SEED_DEMO"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("DB_DSN", "storefront.db") // sqlite file in project root
	v.SetDefault("LOG_FILE", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("POLICY_FILE", "")
	v.SetDefault("RATE_LIMIT_PER_MIN", 60)
	v.SetDefault("MAX_CART_QTY", 50)
	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("KAFKA_TOPIC", "orders.placed")
	v.SetDefault("SEED_DEMO", true)
}

// Load reads configuration from the environment, optionally layered over the
// file named by CONFIG_FILE (.env, yaml, toml; anything viper understands).
func Load() (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if file := v.GetString("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	cfg.KafkaBrokers = cleanList(cfg.KafkaBrokers)
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = 60
	}
	if cfg.MaxCartQty <= 0 {
		cfg.MaxCartQty = 50
	}

	applog.Logger().Info().
		Str("port", cfg.Port).
		Str("db_dsn", cfg.DBDSN).
		Str("log_file", cfg.LogFile).
		Str("policy_file", cfg.PolicyFile).
		Strs("kafka_brokers", cfg.KafkaBrokers).
		Msg("config loaded")
	return cfg, nil
}

// cleanList drops blanks; viper splits "a, b" on commas but keeps the spaces.
func cleanList(in []string) []string {
	var out []string
	for _, s := range in {
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
