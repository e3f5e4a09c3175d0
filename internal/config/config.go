package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"

	"ugc-studio/internal/logger"
	"ugc-studio/pkg/ai"
)

// Config is built once in main and handed to every component.
type Config struct {
	AppEnv   string `env:"APP_ENV" env-default:"development"`
	Server   ServerConfig
	Logger   logger.Config
	AI       AIConfig
	Firebase FirebaseConfig
	Media    MediaConfig
	Pipeline PipelineConfig
}

type ServerConfig struct {
	Port               string        `env:"SERVER_PORT" env-default:"8080"`
	BasePath           string        `env:"SERVER_BASE_PATH" env-default:"/api/v1"`
	ReadTimeout        time.Duration `env:"SERVER_READ_TIMEOUT" env-default:"15s"`
	WriteTimeout       time.Duration `env:"SERVER_WRITE_TIMEOUT" env-default:"300s"` // pipeline runs several AI calls
	IdleTimeout        time.Duration `env:"SERVER_IDLE_TIMEOUT" env-default:"60s"`
	ShutdownTimeout    time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"15s"`
	CORSAllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" env-separator:"," env-default:"http://localhost:3000,http://localhost:5173"`
}

// AIConfig carries both cleanenv and envconfig tags: the server loads it
// through cleanenv, ugcctl through envconfig.
type AIConfig struct {
	Provider       string        `env:"AI_PROVIDER" env-default:"gemini" envconfig:"AI_PROVIDER" default:"gemini"`
	APIKey         string        `env:"AI_API_KEY" envconfig:"AI_API_KEY"`
	BaseURL        string        `env:"AI_BASE_URL" env-default:"https://openrouter.ai/api/v1" envconfig:"AI_BASE_URL" default:"https://openrouter.ai/api/v1"`
	Model          string        `env:"AI_MODEL" env-default:"gemini-2.0-flash" envconfig:"AI_MODEL" default:"gemini-2.0-flash"`
	Timeout        time.Duration `env:"AI_TIMEOUT" env-default:"120s" envconfig:"AI_TIMEOUT" default:"120s"`
	MaxRetries     int           `env:"AI_MAX_RETRIES" env-default:"3" envconfig:"AI_MAX_RETRIES" default:"3"`
	RetryBaseDelay time.Duration `env:"AI_RETRY_BASE_DELAY" env-default:"2s" envconfig:"AI_RETRY_BASE_DELAY" default:"2s"`
	Temperature    float64       `env:"AI_TEMPERATURE" env-default:"0.9" envconfig:"AI_TEMPERATURE" default:"0.9"`
}

// ClientConfig converts the env settings into the provider client config.
func (c AIConfig) ClientConfig() ai.Config {
	return ai.Config{
		Provider: c.Provider,
		APIKey:   c.APIKey,
		BaseURL:  c.BaseURL,
		Model:    c.Model,
		Timeout:  c.Timeout,
	}
}

func (c AIConfig) RetryPolicy() ai.RetryPolicy {
	return ai.RetryPolicy{MaxRetries: c.MaxRetries, BaseDelay: c.RetryBaseDelay}
}

func (c AIConfig) GenerationParams() ai.GenerationParams {
	temperature := c.Temperature
	return ai.GenerationParams{Temperature: &temperature}
}

type FirebaseConfig struct {
	ProjectID       string `env:"FIREBASE_PROJECT_ID"`
	CredentialsFile string `env:"FIREBASE_CREDENTIALS_FILE"`
	StorageBucket   string `env:"FIREBASE_STORAGE_BUCKET"`
	// "none" refuses every storage call when Firebase is absent, "memory" keeps data in-process.
	StorageFallback string `env:"STORAGE_FALLBACK" env-default:"none"`
}

// Configured reports whether Firestore can be used.
func (c FirebaseConfig) Configured() bool {
	return c.ProjectID != ""
}

type MediaConfig struct {
	ImageProvider      string        `env:"IMAGE_PROVIDER" env-default:"gemini"` // gemini | http
	ImageModel         string        `env:"IMAGE_MODEL" env-default:"imagen-3.0-generate-002"`
	ImageAPIURL        string        `env:"IMAGE_API_URL"`
	ImageAPIKey        string        `env:"IMAGE_API_KEY"`
	ImageTimeout       time.Duration `env:"IMAGE_TIMEOUT" env-default:"120s"`
	DefaultAspectRatio string        `env:"IMAGE_ASPECT_RATIO" env-default:"9:16"`
	Store              string        `env:"MEDIA_STORE" env-default:"local"` // local | firebase
	ImageSavePath      string        `env:"IMAGE_SAVE_PATH" env-default:"./data/media"`
	ImagePublicBaseURL string        `env:"IMAGE_PUBLIC_BASE_URL" env-default:"http://localhost:8080/media"`
	VideoDuration      string        `env:"VIDEO_DURATION" env-default:"5-10"`
}

type PipelineConfig struct {
	IdeaCount   int `env:"PIPELINE_IDEA_COUNT" env-default:"5"`
	ScriptCount int `env:"PIPELINE_SCRIPT_COUNT" env-default:"3"`
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	// CONFIG_PATH points at an optional YAML file; env values override it.
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to load configuration from %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	cfg.loadSecrets()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadAI reads only the AI settings. Used by ugcctl.
func LoadAI() (AIConfig, error) {
	_ = godotenv.Load()

	var cfg AIConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, fmt.Errorf("failed to load AI configuration: %w", err)
	}
	if cfg.APIKey == "" {
		if key, err := ReadSecret("ai_api_key"); err == nil {
			cfg.APIKey = key
		}
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// loadSecrets fills keys missing from env with Docker secrets.
// Missing secrets are not an error here: the affected calls fail with ErrNotConfigured.
func (c *Config) loadSecrets() {
	if c.AI.APIKey == "" {
		if key, err := ReadSecret("ai_api_key"); err == nil {
			c.AI.APIKey = key
		}
	}
	if c.Media.ImageAPIKey == "" {
		if key, err := ReadSecret("image_api_key"); err == nil {
			c.Media.ImageAPIKey = key
		}
	}
}

// Validate checks enumerated settings. Credentials are checked lazily by the components.
func (c *Config) Validate() error {
	var errs []error
	if err := c.AI.validate(); err != nil {
		errs = append(errs, err)
	}
	switch strings.ToLower(c.Firebase.StorageFallback) {
	case "none", "memory":
	default:
		errs = append(errs, fmt.Errorf("unknown STORAGE_FALLBACK %q", c.Firebase.StorageFallback))
	}
	switch strings.ToLower(c.Media.ImageProvider) {
	case "gemini", "http":
	default:
		errs = append(errs, fmt.Errorf("unknown IMAGE_PROVIDER %q", c.Media.ImageProvider))
	}
	switch strings.ToLower(c.Media.Store) {
	case "local":
	case "firebase":
		if c.Firebase.StorageBucket == "" {
			errs = append(errs, errors.New("MEDIA_STORE=firebase requires FIREBASE_STORAGE_BUCKET"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown MEDIA_STORE %q", c.Media.Store))
	}
	if c.Pipeline.IdeaCount < 1 || c.Pipeline.ScriptCount < 0 {
		errs = append(errs, errors.New("PIPELINE_IDEA_COUNT must be positive and PIPELINE_SCRIPT_COUNT non-negative"))
	}
	return errors.Join(errs...)
}

func (c AIConfig) validate() error {
	switch strings.ToLower(c.Provider) {
	case ai.ProviderGemini, ai.ProviderOpenAI, ai.ProviderOllama:
	default:
		return fmt.Errorf("unknown AI_PROVIDER %q", c.Provider)
	}
	if c.MaxRetries < 1 {
		return fmt.Errorf("AI_MAX_RETRIES must be at least 1, got %d", c.MaxRetries)
	}
	return nil
}

// LogSummary writes the loaded configuration without secrets.
func (c *Config) LogSummary(log *zap.Logger) {
	log.Info("Configuration loaded",
		zap.String("app_env", c.AppEnv),
		zap.String("server_port", c.Server.Port),
		zap.String("base_path", c.Server.BasePath),
		zap.String("ai_provider", c.AI.Provider),
		zap.String("ai_model", c.AI.Model),
		zap.String("ai_api_key", maskSecret(c.AI.APIKey)),
		zap.Duration("ai_timeout", c.AI.Timeout),
		zap.Int("ai_max_retries", c.AI.MaxRetries),
		zap.Duration("ai_retry_base_delay", c.AI.RetryBaseDelay),
		zap.Bool("firebase_configured", c.Firebase.Configured()),
		zap.String("storage_fallback", c.Firebase.StorageFallback),
		zap.String("image_provider", c.Media.ImageProvider),
		zap.String("media_store", c.Media.Store),
	)
}

func maskSecret(s string) string {
	if s == "" {
		return "[NOT SET]"
	}
	return "[LOADED]"
}
