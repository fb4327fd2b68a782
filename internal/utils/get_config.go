package utils

import (
	"log"
	"os"

	"gopkg.in/yaml.v2"
)

type Config struct {
	// Server
	Port string `yaml:"PORT"`

	// Object storage (S3-compatible, e.g. Cloudflare R2)
	StorageEndpoint  string `yaml:"STORAGE_ENDPOINT"`
	StorageBucket    string `yaml:"STORAGE_BUCKET"`
	StoragePublicURL string `yaml:"STORAGE_PUBLIC_URL"`
	AccessKey        string `yaml:"ACCESS_KEY"`
	SecretKey        string `yaml:"SECRET_KEY"`

	// Model provider selection and credentials
	ModelProvider   string `yaml:"MODEL_PROVIDER"`
	GeminiAPIKey    string `yaml:"GEMINI_API_KEY"`
	GeminiModel     string `yaml:"GEMINI_MODEL"`
	AnthropicAPIKey string `yaml:"ANTHROPIC_API_KEY"`
	AnthropicModel  string `yaml:"ANTHROPIC_MODEL"`

	// Chat provider (messaging channel)
	ChannelSecret string `yaml:"CHANNEL_SECRET"`
	ChannelToken  string `yaml:"CHANNEL_TOKEN"`

	// Logging
	LogLevel string `yaml:"LOG_LEVEL"`
}

var config Config

// LoadConfig reads config.yaml if present. Values from the environment
// always take precedence in GetConfig, so containerized deployments can
// run without the file.
func LoadConfig() {
	file, err := os.ReadFile("config.yaml")
	if err != nil {
		log.Printf("config.yaml not loaded: %s\n", err)
		return
	}

	if err := yaml.Unmarshal(file, &config); err != nil {
		log.Printf("Error parsing YAML file: %s\n", err)
		return
	}
}

func GetConfig(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	switch key {
	case "PORT":
		return config.Port
	case "STORAGE_ENDPOINT":
		return config.StorageEndpoint
	case "STORAGE_BUCKET":
		return config.StorageBucket
	case "STORAGE_PUBLIC_URL":
		return config.StoragePublicURL
	case "ACCESS_KEY":
		return config.AccessKey
	case "SECRET_KEY":
		return config.SecretKey
	case "MODEL_PROVIDER":
		return config.ModelProvider
	case "GEMINI_API_KEY":
		return config.GeminiAPIKey
	case "GEMINI_MODEL":
		return config.GeminiModel
	case "ANTHROPIC_API_KEY":
		return config.AnthropicAPIKey
	case "ANTHROPIC_MODEL":
		return config.AnthropicModel
	case "CHANNEL_SECRET":
		return config.ChannelSecret
	case "CHANNEL_TOKEN":
		return config.ChannelToken
	case "LOG_LEVEL":
		return config.LogLevel
	default:
		return ""
	}
}
