package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	MigrationsPath string

	JWTSecret         string
	JWTIssuer         string
	JWTExpiryDuration time.Duration

	CORSAllowedOrigins []string
	RateLimit          string // ulule formatted rate, e.g. "100-M"

	Categorization CategorizationConfig
	Reconciliation ReconciliationConfig
}

// CategorizationConfig tunes the rule engine, predictor and bulk tax categorization.
type CategorizationConfig struct {
	BulkBatchSize       int
	AutoApplyConfidence float64
	ReviewConfidence    float64
	FuzzyMatchThreshold float64
	ModelVersion        string
	HistoryLimit        int
}

// ReconciliationConfig tunes statement-to-book matching.
type ReconciliationConfig struct {
	DateWindowDays      int
	AutoMatchConfidence float64
	SuggestConfidence   float64
}

// DefaultCategorizationConfig returns the values used when nothing is configured.
func DefaultCategorizationConfig() CategorizationConfig {
	return CategorizationConfig{
		BulkBatchSize:       10,
		AutoApplyConfidence: 0.85,
		ReviewConfidence:    0.60,
		FuzzyMatchThreshold: 0.80,
		ModelVersion:        "history-v1",
		HistoryLimit:        500,
	}
}

// DefaultReconciliationConfig returns the values used when nothing is configured.
func DefaultReconciliationConfig() ReconciliationConfig {
	return ReconciliationConfig{
		DateWindowDays:      5,
		AutoMatchConfidence: 0.80,
		SuggestConfidence:   0.50,
	}
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	cat := DefaultCategorizationConfig()
	rec := DefaultReconciliationConfig()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_ISSUER", "manna")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("BULK_BATCH_SIZE", cat.BulkBatchSize)
	viper.SetDefault("AUTO_APPLY_CONFIDENCE", cat.AutoApplyConfidence)
	viper.SetDefault("REVIEW_CONFIDENCE", cat.ReviewConfidence)
	viper.SetDefault("FUZZY_MATCH_THRESHOLD", cat.FuzzyMatchThreshold)
	viper.SetDefault("PREDICTION_MODEL_VERSION", cat.ModelVersion)
	viper.SetDefault("PREDICTION_HISTORY_LIMIT", cat.HistoryLimit)
	viper.SetDefault("RECONCILE_DATE_WINDOW_DAYS", rec.DateWindowDays)
	viper.SetDefault("RECONCILE_AUTO_MATCH_CONFIDENCE", rec.AutoMatchConfidence)
	viper.SetDefault("RECONCILE_SUGGEST_CONFIDENCE", rec.SuggestConfidence)

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.IsProduction && cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET is the built-in default in production.")
	}
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiry, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiry = time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiry)
	}
	cfg.JWTExpiryDuration = jwtExpiry

	cfg.CORSAllowedOrigins = splitList(viper.GetString("CORS_ALLOWED_ORIGINS"))
	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	cfg.Categorization = CategorizationConfig{
		BulkBatchSize:       viper.GetInt("BULK_BATCH_SIZE"),
		AutoApplyConfidence: viper.GetFloat64("AUTO_APPLY_CONFIDENCE"),
		ReviewConfidence:    viper.GetFloat64("REVIEW_CONFIDENCE"),
		FuzzyMatchThreshold: viper.GetFloat64("FUZZY_MATCH_THRESHOLD"),
		ModelVersion:        viper.GetString("PREDICTION_MODEL_VERSION"),
		HistoryLimit:        viper.GetInt("PREDICTION_HISTORY_LIMIT"),
	}
	if cfg.Categorization.BulkBatchSize <= 0 {
		log.Printf("Warning: BULK_BATCH_SIZE must be positive. Defaulting to %d.\n", cat.BulkBatchSize)
		cfg.Categorization.BulkBatchSize = cat.BulkBatchSize
	}
	if cfg.Categorization.ReviewConfidence > cfg.Categorization.AutoApplyConfidence {
		log.Println("Warning: REVIEW_CONFIDENCE above AUTO_APPLY_CONFIDENCE; using defaults for both.")
		cfg.Categorization.ReviewConfidence = cat.ReviewConfidence
		cfg.Categorization.AutoApplyConfidence = cat.AutoApplyConfidence
	}

	cfg.Reconciliation = ReconciliationConfig{
		DateWindowDays:      viper.GetInt("RECONCILE_DATE_WINDOW_DAYS"),
		AutoMatchConfidence: viper.GetFloat64("RECONCILE_AUTO_MATCH_CONFIDENCE"),
		SuggestConfidence:   viper.GetFloat64("RECONCILE_SUGGEST_CONFIDENCE"),
	}
	if cfg.Reconciliation.DateWindowDays < 0 {
		cfg.Reconciliation.DateWindowDays = rec.DateWindowDays
	}

	return cfg, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
