package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvProduction represents the production environment.
	EnvProduction = "production"
)

// Config holds all application configuration.
type Config struct {
	// Server settings
	Env  string `envconfig:"ENV" default:"development"`
	Port string `envconfig:"PORT" default:"8080"`

	// Security settings
	HSTSMaxAge int    `envconfig:"HSTS_MAX_AGE" default:"31536000"`
	CSPMode    string `envconfig:"CSP_MODE" default:"relaxed"`

	// Logging settings
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Model provider credentials
	OpenAIAPIKey    string `envconfig:"OPENAI_API_KEY"`
	AnthropicAPIKey string `envconfig:"ANTHROPIC_API_KEY"`

	// Logical model roles (resolved to provider model IDs by internal/ai)
	WriterModel   string `envconfig:"WRITER_MODEL" default:"claude-sonnet-4-5"`
	ResearchModel string `envconfig:"RESEARCH_MODEL" default:"gpt-4o"`
	ParserModel   string `envconfig:"PARSER_MODEL" default:"gpt-4o-mini"`

	// Research collaborators
	SearchAPIKey  string `envconfig:"SEARCH_API_KEY"`
	SearchBaseURL string `envconfig:"SEARCH_BASE_URL" default:"https://google.serper.dev"`
	ScrapeBaseURL string `envconfig:"SCRAPE_BASE_URL" default:"https://r.jina.ai"`
	MaxScrapeURLs int    `envconfig:"MAX_SCRAPE_URLS" default:"5"`
	MaxVideos     int    `envconfig:"MAX_VIDEOS" default:"3"`

	// Media collaborators
	ScreenshotBaseURL string `envconfig:"SCREENSHOT_BASE_URL"`
	ScreenshotAPIKey  string `envconfig:"SCREENSHOT_API_KEY"`
	ImageBaseURL      string `envconfig:"IMAGE_BASE_URL"`
	ImageAPIKey       string `envconfig:"IMAGE_API_KEY"`

	// WordPress publishing
	WordPressBaseURL  string `envconfig:"WORDPRESS_BASE_URL"`
	WordPressUser     string `envconfig:"WORDPRESS_USER"`
	WordPressAppPass  string `envconfig:"WORDPRESS_APP_PASSWORD"`
	WordPressStatus   string `envconfig:"WORDPRESS_STATUS" default:"draft"`
	WordPressCategory int    `envconfig:"WORDPRESS_DEFAULT_CATEGORY" default:"1"`

	// Outbound HTTP retry policy
	HTTPMaxRetries int `envconfig:"HTTP_MAX_RETRIES" default:"3"`
	HTTPTimeoutSec int `envconfig:"HTTP_TIMEOUT_SECONDS" default:"60"`
}

// LoadConfig loads configuration from .env file and environment variables.
func LoadConfig() (*Config, error) {
	// Try to load .env file (optional for development)
	if err := godotenv.Load(); err != nil {
		// Not an error if file doesn't exist (expected in production)
		if !os.IsNotExist(err) {
			log.Printf("Warning: Error loading .env file: %v", err)
		}
	}

	// Parse environment variables into config struct
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	return &config, nil
}

// BuildCSP constructs Content Security Policy based on mode.
func BuildCSP(mode string) string {
	if mode == "strict" {
		// Production CSP
		return "default-src 'self'; " +
			"style-src 'self' 'unsafe-inline'; " +
			"script-src 'self'; " +
			"img-src 'self' data:; " +
			"object-src 'none'; " +
			"base-uri 'self'; " +
			"form-action 'self'"
	}

	// Development/relaxed CSP
	return "default-src 'self'; " +
		"style-src 'self' 'unsafe-inline'; " +
		"script-src 'self' 'unsafe-inline'; " +
		"img-src 'self' data:"
}
