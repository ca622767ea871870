// Package config loads and validates service configuration via Viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config captures all service configuration knobs loaded via Viper.
type Config struct {
	Logging   LoggingConfig   `mapstructure:"logging"`
	Crawler   CrawlerConfig   `mapstructure:"crawler"`
	Extract   ExtractConfig   `mapstructure:"extract"`
	Classify  ClassifyConfig  `mapstructure:"classify"`
	Embedding EmbeddingConfig `mapstructure:"embedding"`
	Summary   SummaryConfig   `mapstructure:"summary"`
	Weaviate  WeaviateConfig  `mapstructure:"weaviate"`
	Ingest    IngestConfig    `mapstructure:"ingest"`
	Watch     WatchConfig     `mapstructure:"watch"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

// CrawlerConfig governs the recursive crawl.
type CrawlerConfig struct {
	SeedURL     string        `mapstructure:"seed_url"`
	UserAgent   string        `mapstructure:"user_agent"`
	MaxDepth    int           `mapstructure:"max_depth"`
	Delay       time.Duration `mapstructure:"delay"`
	Budget      time.Duration `mapstructure:"budget"`
	DataDir     string        `mapstructure:"data_dir"`
	PageLogPath string        `mapstructure:"page_log"`
	SitemapPath string        `mapstructure:"sitemap_path"`
}

// ExtractConfig controls the batch extraction run and the OCR engine.
type ExtractConfig struct {
	DataDir      string   `mapstructure:"data_dir"`
	OutputDir    string   `mapstructure:"output_dir"`
	OCRLanguages []string `mapstructure:"ocr_languages"`
	OCRDPI       float64  `mapstructure:"ocr_dpi"`
	LimitPerType int      `mapstructure:"limit_per_type"`
}

// ClassifyConfig configures the zero-shot classifier.
type ClassifyConfig struct {
	Endpoint      string        `mapstructure:"endpoint"`
	Threshold     float64       `mapstructure:"threshold"`
	TruncateChars int           `mapstructure:"truncate_chars"`
	Timeout       time.Duration `mapstructure:"timeout"`
}

// EmbeddingConfig points at the Ollama embedding server.
type EmbeddingConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// SummaryConfig configures the page summarizer.
type SummaryConfig struct {
	BaseURL       string        `mapstructure:"base_url"`
	APIKey        string        `mapstructure:"api_key"`
	Model         string        `mapstructure:"model"`
	MaxInputChars int           `mapstructure:"max_input_chars"`
	FallbackChars int           `mapstructure:"fallback_chars"`
	Timeout       time.Duration `mapstructure:"timeout"`
}

// WeaviateConfig controls access to the vector store.
type WeaviateConfig struct {
	Host   string `mapstructure:"host"`
	Scheme string `mapstructure:"scheme"`
	APIKey string `mapstructure:"api_key"`
}

// IngestConfig sets the chunking window.
type IngestConfig struct {
	ChunkSize    int `mapstructure:"chunk_size"`
	ChunkOverlap int `mapstructure:"chunk_overlap"`
}

// WatchConfig locates the watch folder tree.
type WatchConfig struct {
	BaseDir      string `mapstructure:"base_dir"`
	ProcessedDir string `mapstructure:"processed_dir"`
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Addr    string `mapstructure:"addr"`
}

// Load builds a Config from disk/environment.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("SIH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.development", true)
	v.SetDefault("crawler.user_agent", "sih2025-crawler/0.1")
	v.SetDefault("crawler.max_depth", 5)
	v.SetDefault("crawler.delay", "500ms")
	v.SetDefault("crawler.budget", "120s")
	v.SetDefault("crawler.data_dir", "data")
	v.SetDefault("crawler.page_log", "pages.jl")
	v.SetDefault("crawler.sitemap_path", "generated_sitemap.xml")
	v.SetDefault("extract.data_dir", "data")
	v.SetDefault("extract.output_dir", "processed_data")
	v.SetDefault("extract.ocr_languages", []string{"hin", "eng"})
	v.SetDefault("extract.ocr_dpi", 200)
	v.SetDefault("extract.limit_per_type", 0)
	v.SetDefault("classify.endpoint", "http://localhost:8090/score")
	v.SetDefault("classify.threshold", 0.60)
	v.SetDefault("classify.truncate_chars", 2000)
	v.SetDefault("classify.timeout", "30s")
	v.SetDefault("embedding.base_url", "http://localhost:11434")
	v.SetDefault("embedding.model", "bge-m3")
	v.SetDefault("embedding.timeout", "30s")
	v.SetDefault("summary.base_url", "https://api.sarvam.ai/v1")
	v.SetDefault("summary.model", "sarvam-2b")
	v.SetDefault("summary.max_input_chars", 8000)
	v.SetDefault("summary.fallback_chars", 2000)
	v.SetDefault("summary.timeout", "30s")
	v.SetDefault("weaviate.host", "localhost:8080")
	v.SetDefault("weaviate.scheme", "http")
	v.SetDefault("ingest.chunk_size", 512)
	v.SetDefault("ingest.chunk_overlap", 50)
	v.SetDefault("watch.base_dir", "watch_folders")
	v.SetDefault("watch.processed_dir", "watch_folders/processed")
	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.addr", ":9090")
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if c.Crawler.MaxDepth < 0 {
		return fmt.Errorf("crawler.max_depth must be >= 0")
	}
	if c.Crawler.Delay < 0 {
		return fmt.Errorf("crawler.delay must be >= 0")
	}
	if c.Crawler.Budget <= 0 {
		return fmt.Errorf("crawler.budget must be > 0")
	}
	if c.Classify.Threshold < 0 || c.Classify.Threshold > 1 {
		return fmt.Errorf("classify.threshold must be in [0,1]")
	}
	if c.Classify.TruncateChars <= 0 {
		return fmt.Errorf("classify.truncate_chars must be > 0")
	}
	if c.Ingest.ChunkSize <= 0 {
		return fmt.Errorf("ingest.chunk_size must be > 0")
	}
	if c.Ingest.ChunkOverlap < 0 || c.Ingest.ChunkOverlap >= c.Ingest.ChunkSize {
		return fmt.Errorf("ingest.chunk_overlap must be >= 0 and < ingest.chunk_size")
	}
	if len(c.Extract.OCRLanguages) == 0 {
		return fmt.Errorf("extract.ocr_languages must not be empty")
	}
	if c.Extract.OCRDPI <= 0 {
		return fmt.Errorf("extract.ocr_dpi must be > 0")
	}
	if c.Weaviate.Host == "" {
		return fmt.Errorf("weaviate.host must be set")
	}
	return nil
}
