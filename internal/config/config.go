package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/menta2k/gemini-analyzer/internal/logging"
	"github.com/menta2k/gemini-analyzer/internal/utils"
	"github.com/menta2k/gemini-analyzer/pkg/gemini"
	"github.com/menta2k/gemini-analyzer/pkg/ollama"
	"github.com/menta2k/gemini-analyzer/pkg/processing"
	"github.com/menta2k/gemini-analyzer/pkg/prompt"
	"github.com/menta2k/gemini-analyzer/pkg/types"
)

// BuildAPIKey is injected at build time:
//
//	go build -ldflags "-X github.com/menta2k/gemini-analyzer/internal/config.BuildAPIKey=..."
var BuildAPIKey string

// EnvPrefix prefixes environment overrides, e.g. GEMINI_ANALYZER_GEMINI_API_KEY
const EnvPrefix = "GEMINI_ANALYZER"

// Supported backends
const (
	BackendGemini = "gemini"
	BackendOllama = "ollama"
)

// Config holds the application configuration
type Config struct {
	Backend  string         `mapstructure:"backend" json:"backend"`
	Gemini   GeminiConfig   `mapstructure:"gemini" json:"gemini"`
	Ollama   OllamaConfig   `mapstructure:"ollama" json:"ollama"`
	Image    ImageConfig    `mapstructure:"image" json:"image"`
	Question string         `mapstructure:"question" json:"question"`
	Log      logging.Config `mapstructure:"log" json:"log"`
}

// GeminiConfig holds the Gemini endpoint and model identifiers
type GeminiConfig struct {
	APIKey      string `mapstructure:"api_key" json:"api_key"`
	BaseURL     string `mapstructure:"base_url" json:"base_url"`
	TextModel   string `mapstructure:"text_model" json:"text_model"`
	VisionModel string `mapstructure:"vision_model" json:"vision_model"`
}

// OllamaConfig holds the local Ollama server and model identifiers
type OllamaConfig struct {
	URL         string `mapstructure:"url" json:"url"`
	TextModel   string `mapstructure:"text_model" json:"text_model"`
	VisionModel string `mapstructure:"vision_model" json:"vision_model"`
}

// ImageConfig selects the analysed image and how it is encoded.
// An empty Path uses the bundled image.
type ImageConfig struct {
	Path        string `mapstructure:"path" json:"path"`
	SendFormat  string `mapstructure:"send_format" json:"send_format"`
	SendSize    int    `mapstructure:"send_size" json:"send_size"`
	SendQuality int    `mapstructure:"send_quality" json:"send_quality"`
}

// Default returns a configuration with default values
func Default() *Config {
	models := types.DefaultModelNames()
	return &Config{
		Backend: BackendGemini,
		Gemini: GeminiConfig{
			APIKey:      BuildAPIKey,
			BaseURL:     gemini.DefaultBaseURL,
			TextModel:   models.Text,
			VisionModel: models.Vision,
		},
		Ollama: OllamaConfig{
			URL:         ollama.DefaultURL,
			TextModel:   "llama3.2",
			VisionModel: "llava",
		},
		Image: ImageConfig{
			SendFormat:  processing.DefaultSendFormat,
			SendSize:    processing.DefaultSendSize,
			SendQuality: processing.DefaultSendQuality,
		},
		Question: prompt.DefaultQuestion,
		Log: logging.Config{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load builds the configuration from defaults, an optional file and the environment.
// An empty filename skips the file.
func Load(filename string) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if filename != "" {
		v.SetConfigFile(filename)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// LoadFromFile loads configuration from a JSON, YAML or TOML file
func LoadFromFile(filename string) (*Config, error) {
	if filename == "" {
		return nil, errors.New("config file name is empty")
	}
	return Load(filename)
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("backend", d.Backend)
	v.SetDefault("gemini.api_key", d.Gemini.APIKey)
	v.SetDefault("gemini.base_url", d.Gemini.BaseURL)
	v.SetDefault("gemini.text_model", d.Gemini.TextModel)
	v.SetDefault("gemini.vision_model", d.Gemini.VisionModel)
	v.SetDefault("ollama.url", d.Ollama.URL)
	v.SetDefault("ollama.text_model", d.Ollama.TextModel)
	v.SetDefault("ollama.vision_model", d.Ollama.VisionModel)
	v.SetDefault("image.path", d.Image.Path)
	v.SetDefault("image.send_format", d.Image.SendFormat)
	v.SetDefault("image.send_size", d.Image.SendSize)
	v.SetDefault("image.send_quality", d.Image.SendQuality)
	v.SetDefault("question", d.Question)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}

// SaveToFile saves configuration to a JSON file. The API key is not written.
func (c *Config) SaveToFile(filename string) error {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	out := *c
	out.Gemini.APIKey = ""
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendGemini:
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("gemini.api_key is required (build with -ldflags -X or set %s_GEMINI_API_KEY)", EnvPrefix)
		}
		if c.Gemini.TextModel == "" || c.Gemini.VisionModel == "" {
			return fmt.Errorf("gemini.text_model and gemini.vision_model cannot be empty")
		}
	case BackendOllama:
		if c.Ollama.URL == "" {
			return fmt.Errorf("ollama.url cannot be empty")
		}
		if c.Ollama.TextModel == "" || c.Ollama.VisionModel == "" {
			return fmt.Errorf("ollama.text_model and ollama.vision_model cannot be empty")
		}
	default:
		return fmt.Errorf("unknown backend: %q (use %q or %q)", c.Backend, BackendGemini, BackendOllama)
	}

	switch strings.ToLower(c.Image.SendFormat) {
	case "jpg", "jpeg", "png":
	default:
		return fmt.Errorf("image.send_format must be jpg or png")
	}

	if c.Image.Path != "" && !utils.IsURL(c.Image.Path) && !utils.IsImageFile(c.Image.Path) {
		return fmt.Errorf("image.path must be a jpg, png, gif or webp file or an http(s) URL")
	}

	if c.Image.SendQuality < 1 || c.Image.SendQuality > 100 {
		return fmt.Errorf("image.send_quality must be between 1 and 100")
	}

	if c.Image.SendSize < 0 {
		return fmt.Errorf("image.send_size cannot be negative")
	}

	if strings.TrimSpace(c.Question) == "" {
		return fmt.Errorf("question cannot be empty")
	}

	if !logging.KnownLevel(c.Log.Level) {
		return fmt.Errorf("log.level %q is not one of debug, info, warn, error", c.Log.Level)
	}

	return nil
}

// ModelNames returns the identifiers for the selected backend
func (c *Config) ModelNames() types.ModelNames {
	if c.Backend == BackendOllama {
		return types.ModelNames{Text: c.Ollama.TextModel, Vision: c.Ollama.VisionModel}
	}
	return types.ModelNames{Text: c.Gemini.TextModel, Vision: c.Gemini.VisionModel}
}

// SourceOptions returns the image encoding options
func (c *Config) SourceOptions() processing.SourceOptions {
	return processing.SourceOptions{
		Format:  c.Image.SendFormat,
		MaxDim:  c.Image.SendSize,
		Quality: c.Image.SendQuality,
	}
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./config.json"
	}
	return filepath.Join(home, ".config", "gemini-analyzer", "config.json")
}
