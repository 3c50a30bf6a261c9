package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Linear   LinearConfig   `yaml:"linear"`
	GitHub   GitHubConfig   `yaml:"github"`
	Slack    SlackConfig    `yaml:"slack"`
	Database DatabaseConfig `yaml:"database"`
	LLM      LLMConfig      `yaml:"llm"`
	HTTP     HTTPConfig     `yaml:"http"`
	Output   OutputConfig   `yaml:"output"`
}

type LinearConfig struct {
	APIKey    string `yaml:"api_key"`
	Endpoint  string `yaml:"endpoint"`
	UserEmail string `yaml:"user_email"`
}

type GitHubConfig struct {
	Username string `yaml:"username"`
	BaseURL  string `yaml:"base_url"`
}

type SlackConfig struct {
	BotToken      string `yaml:"bot_token"`
	SigningSecret string `yaml:"signing_secret"`
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type LLMConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
}

type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

type OutputConfig struct {
	Directory string `yaml:"directory"`
}

func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Linear: LinearConfig{
			APIKey:    os.Getenv("LINEAR_API_KEY"),
			Endpoint:  getEnvOrDefault("LINEAR_API_URL", "https://api.linear.app/graphql"),
			UserEmail: os.Getenv("LINEAR_USER_EMAIL"),
		},
		GitHub: GitHubConfig{
			Username: os.Getenv("GITHUB_USERNAME"),
			BaseURL:  getEnvOrDefault("GITHUB_API_URL", "https://api.github.com"),
		},
		Slack: SlackConfig{
			BotToken:      os.Getenv("SLACK_BOT_TOKEN"),
			SigningSecret: os.Getenv("SLACK_SIGNING_SECRET"),
		},
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		LLM: LLMConfig{
			BaseURL: getEnvOrDefault("LLM_BASE_URL", "https://api.openai.com/v1"),
			APIKey:  os.Getenv("LLM_API_KEY"),
			Model:   getEnvOrDefault("LLM_MODEL", "gpt-4o"),
		},
		HTTP: HTTPConfig{
			Addr: getEnvOrDefault("HTTP_ADDR", ":3000"),
		},
		Output: OutputConfig{
			Directory: getEnvOrDefault("OUTPUT_DIR", "reports"),
		},
	}

	return cfg, nil
}

// LoadFile overlays values from a YAML config file on top of cfg.
// Empty fields in the file leave the existing values untouched.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	overlay(&c.Linear.APIKey, file.Linear.APIKey)
	overlay(&c.Linear.Endpoint, file.Linear.Endpoint)
	overlay(&c.Linear.UserEmail, file.Linear.UserEmail)
	overlay(&c.GitHub.Username, file.GitHub.Username)
	overlay(&c.GitHub.BaseURL, file.GitHub.BaseURL)
	overlay(&c.Slack.BotToken, file.Slack.BotToken)
	overlay(&c.Slack.SigningSecret, file.Slack.SigningSecret)
	overlay(&c.Database.URL, file.Database.URL)
	overlay(&c.LLM.BaseURL, file.LLM.BaseURL)
	overlay(&c.LLM.APIKey, file.LLM.APIKey)
	overlay(&c.LLM.Model, file.LLM.Model)
	overlay(&c.HTTP.Addr, file.HTTP.Addr)
	overlay(&c.Output.Directory, file.Output.Directory)

	return nil
}

// ValidateReport checks the fields required for report generation.
func (c *Config) ValidateReport() error {
	if c.Linear.APIKey == "" {
		return fmt.Errorf("LINEAR_API_KEY is required")
	}
	if c.Linear.Endpoint == "" {
		return fmt.Errorf("LINEAR_API_URL is required")
	}
	if c.Linear.UserEmail == "" {
		return fmt.Errorf("LINEAR_USER_EMAIL is required")
	}
	if c.GitHub.Username == "" {
		return fmt.Errorf("GITHUB_USERNAME is required")
	}
	return nil
}

// ValidateServe checks the fields required for the webhook server.
func (c *Config) ValidateServe() error {
	if err := c.ValidateReport(); err != nil {
		return err
	}
	if c.Slack.BotToken == "" {
		return fmt.Errorf("SLACK_BOT_TOKEN is required")
	}
	if c.Slack.SigningSecret == "" {
		return fmt.Errorf("SLACK_SIGNING_SECRET is required")
	}
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.LLM.APIKey == "" {
		return fmt.Errorf("LLM_API_KEY is required")
	}
	return nil
}

// ValidateExport checks the fields required for history exports.
func (c *Config) ValidateExport() error {
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	return nil
}

func overlay(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
