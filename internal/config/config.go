package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig      `mapstructure:"app"`
	HTTP     HTTPConfig     `mapstructure:"http"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Matching MatchingConfig `mapstructure:"matching"`
	Ranking  RankingConfig  `mapstructure:"ranking"`
	Training TrainingConfig `mapstructure:"training"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
}

type HTTPConfig struct {
	Port int `mapstructure:"port"`
}

type DatabaseConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	SSLMode        string `mapstructure:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Database, d.SSLMode,
	)
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	TTL      int    `mapstructure:"ttl"` // seconds
}

func (r RedisConfig) CacheTTL() time.Duration {
	return time.Duration(r.TTL) * time.Second
}

type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
}

// MatchingConfig carries the scoring knobs. The defaults reproduce the
// calibrated production behavior; override only with a recalibration.
type MatchingConfig struct {
	EligibleThreshold       float64 `mapstructure:"eligible_threshold"`
	AlmostEligibleThreshold float64 `mapstructure:"almost_eligible_threshold"`
	PartialCreditDamping    float64 `mapstructure:"partial_credit_damping"`
	LegacyEligibleThreshold float64 `mapstructure:"legacy_eligible_threshold"`
	LegacyAlmostThreshold   float64 `mapstructure:"legacy_almost_threshold"`
}

type RankingConfig struct {
	CandidateScanLimit int `mapstructure:"candidate_scan_limit"`
	Workers            int `mapstructure:"workers"`
}

type TrainingConfig struct {
	ArtifactDir string `mapstructure:"artifact_dir"`
	MinSamples  int    `mapstructure:"min_samples"`
	Trees       int    `mapstructure:"trees"`
	MaxDepth    int    `mapstructure:"max_depth"`
	Workers     int    `mapstructure:"workers"`
	RateLimit   int    `mapstructure:"rate_limit"`
	LockTTL     int    `mapstructure:"lock_ttl"` // seconds
}

func (t TrainingConfig) LockDuration() time.Duration {
	return time.Duration(t.LockTTL) * time.Second
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads config.yaml (plus the APP_ENVIRONMENT overlay) and lets
// environment variables override any key, MATCHING_ELIGIBLE_THRESHOLD style.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if env := v.GetString("app.environment"); env != "" {
		v.SetConfigName("config." + env)
		_ = v.MergeInConfig()
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "talent-match"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 8080
	}

	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.MaxConnections == 0 {
		cfg.Database.MaxConnections = 25
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}

	if cfg.Redis.TTL == 0 {
		cfg.Redis.TTL = 300
	}

	if cfg.Matching.EligibleThreshold == 0 {
		cfg.Matching.EligibleThreshold = 90
	}
	if cfg.Matching.AlmostEligibleThreshold == 0 {
		cfg.Matching.AlmostEligibleThreshold = 70
	}
	if cfg.Matching.PartialCreditDamping == 0 {
		cfg.Matching.PartialCreditDamping = 0.6
	}
	if cfg.Matching.LegacyEligibleThreshold == 0 {
		cfg.Matching.LegacyEligibleThreshold = 70
	}
	if cfg.Matching.LegacyAlmostThreshold == 0 {
		cfg.Matching.LegacyAlmostThreshold = 50
	}

	if cfg.Ranking.CandidateScanLimit == 0 {
		cfg.Ranking.CandidateScanLimit = 50
	}
	if cfg.Ranking.Workers == 0 {
		cfg.Ranking.Workers = 10
	}

	if cfg.Training.ArtifactDir == "" {
		cfg.Training.ArtifactDir = "./artifacts"
	}
	if cfg.Training.MinSamples == 0 {
		cfg.Training.MinSamples = 100
	}
	if cfg.Training.Trees == 0 {
		cfg.Training.Trees = 200
	}
	if cfg.Training.MaxDepth == 0 {
		cfg.Training.MaxDepth = 12
	}
	if cfg.Training.Workers == 0 {
		cfg.Training.Workers = 5
	}
	if cfg.Training.LockTTL == 0 {
		cfg.Training.LockTTL = 1800
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
}

func validate(cfg *Config) error {
	if cfg.Database.Host == "" {
		return fmt.Errorf("database.host is required")
	}
	if cfg.Database.Database == "" {
		return fmt.Errorf("database.database is required")
	}
	if cfg.Database.User == "" {
		return fmt.Errorf("database.user is required")
	}
	if cfg.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret is required")
	}
	if cfg.Matching.AlmostEligibleThreshold > cfg.Matching.EligibleThreshold {
		return fmt.Errorf("matching.almost_eligible_threshold cannot exceed matching.eligible_threshold")
	}
	return nil
}
