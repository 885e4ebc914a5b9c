package config

import (
	"log"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server   Server   `yaml:"server"`
	YouTube  YouTube  `yaml:"youtube"`
	Gemini   Gemini   `yaml:"gemini"`
	Analysis Analysis `yaml:"analysis"`
	Database Database `yaml:"database"`
}

// Server holds HTTP server configuration
type Server struct {
	Host         string        `yaml:"host" env:"SERVER_HOST" env-default:"0.0.0.0"`
	Port         string        `yaml:"port" env:"SERVER_PORT" env-default:"5000"`
	ReadTimeout time.Duration `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT" env-default:"15s"`

	// WriteTimeout must exceed the router's per-request budget: a max-size
	// bulk analysis holds the connection for minutes of rate-gate waits and
	// inter-chunk delays before the response is written.
	WriteTimeout time.Duration `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT" env-default:"15m"`

	IdleTimeout time.Duration `yaml:"idle_timeout" env:"SERVER_IDLE_TIMEOUT" env-default:"60s"`
}

// Address returns the full server address
func (s Server) Address() string {
	return s.Host + ":" + s.Port
}

// YouTube holds YouTube Data API configuration
type YouTube struct {
	APIKey      string `yaml:"api_key" env:"YOUTUBE_API_KEY"`
	BaseURL     string `yaml:"base_url" env:"YOUTUBE_BASE_URL" env-default:"https://www.googleapis.com/youtube/v3"`
	MaxComments int    `yaml:"max_comments" env:"YOUTUBE_MAX_COMMENTS" env-default:"500"`
}

// Gemini holds Gemini API configuration
type Gemini struct {
	APIKey  string        `yaml:"api_key" env:"GEMINI_API_KEY"`
	Model   string        `yaml:"model" env:"GEMINI_MODEL" env-default:"gemini-1.5-flash"`
	BaseURL string        `yaml:"base_url" env:"GEMINI_BASE_URL" env-default:"https://generativelanguage.googleapis.com/v1beta"`
	Timeout time.Duration `yaml:"timeout" env:"GEMINI_TIMEOUT" env-default:"90s"`

	// MinCallInterval is the minimum wall-clock gap between generateContent calls
	MinCallInterval time.Duration `yaml:"min_call_interval" env:"GEMINI_MIN_CALL_INTERVAL" env-default:"4s"`
}

// Analysis holds comment analysis pipeline configuration
type Analysis struct {
	ChunkSize       int           `yaml:"chunk_size" env:"ANALYSIS_CHUNK_SIZE" env-default:"10"`
	InterChunkDelay time.Duration `yaml:"inter_chunk_delay" env:"ANALYSIS_INTER_CHUNK_DELAY" env-default:"2s"`
	MaxComments     int           `yaml:"max_comments" env:"ANALYSIS_MAX_COMMENTS" env-default:"500"`
}

// Database holds database configuration
type Database struct {
	// Path to the sqlite database file
	Path string `yaml:"path" env:"DATABASE_PATH" env-default:"semantic_sentinel.db"`
}

// MustLoad loads configuration from environment and panics on error
func MustLoad() Config {
	// Load .env file if exists (for development)
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	return cfg
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (Config, error) {
	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
