package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/jobmatch/internal/filtering"
	"github.com/spigell/jobmatch/internal/logger"
	"github.com/spigell/jobmatch/internal/secrets"
	"github.com/spigell/jobmatch/internal/semantic"
	"github.com/spigell/jobmatch/internal/semantic/gemini"
)

const (
	providerGemini = "gemini"
	geminiKeyEnv   = "GEMINI_API_KEY"
)

// bootstrap builds the config, the logger and the semantic adapter shared by
// every scoring command. Unrecoverable errors terminate the process.
func bootstrap(ctx context.Context) (*Config, *zap.Logger, *semantic.Adapter) {
	zl, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		zl.Fatal("getting a config", zap.Error(err))
	}

	zl.Debug("starting with config", zap.Any("config", redacted(config)))

	adapter, err := newAdapter(ctx, config.Semantic, zl)
	if err != nil {
		zl.Fatal("building semantic adapter",
			zap.Error(err),
			zap.String("hint", "set GEMINI_API_KEY, GEMINI_API_KEY_FILE or semantic.gemini.api-key-file, or pass --offline"),
		)
	}

	return config, zl, adapter
}

func newAdapter(ctx context.Context, cfg *SemanticConfig, zl *zap.Logger) (*semantic.Adapter, error) {
	if cfg == nil {
		cfg = &SemanticConfig{}
	}

	if viper.GetBool("offline") || !cfg.Enabled {
		zl.Info("semantic provider disabled, skills are scored with local heuristics")
		return semantic.New(nil, cfg.Timeout, zl, 0), nil
	}

	provider := strings.ToLower(strings.TrimSpace(cfg.Provider))
	if provider == "" {
		provider = providerGemini
	}
	if provider != providerGemini {
		return nil, fmt.Errorf("unsupported semantic provider %q", cfg.Provider)
	}

	gcfg := cfg.Gemini
	if gcfg == nil {
		gcfg = &GeminiConfig{}
	}

	key, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: gcfg.APIKey,
		File:  gcfg.APIKeyFile,
		Env:   geminiKeyEnv,
	})
	if err != nil {
		return nil, err
	}

	embedder, err := gemini.NewEmbedder(ctx, key, gcfg.Model, gcfg.MaxRetries, gcfg.MaxLogLength,
		logger.WithCommonFields(zl, provider, ""))
	if err != nil {
		return nil, fmt.Errorf("creating gemini embedder: %w", err)
	}

	providerLogger := logger.WithCommonFields(zl, provider, embedder.Model())
	providerLogger.Info("semantic provider enabled", zap.Duration("timeout", effectiveTimeout(cfg.Timeout)))

	return semantic.New(embedder, cfg.Timeout, providerLogger, gcfg.MaxLogLength), nil
}

func effectiveTimeout(configured time.Duration) time.Duration {
	if configured <= 0 {
		return semantic.DefaultTimeout
	}
	return configured
}

func filterConfig(config *Config) *filtering.Config {
	return &filtering.Config{
		MinimumTotal:      config.Filters.MinimumTotal,
		RemoteOnly:        config.Filters.RemoteOnly,
		ExcludeFile:       config.ExcludeFile,
		ExcludedCompanies: config.Filters.ExcludedCompanies,
	}
}

// redacted returns a copy of config that is safe to log.
func redacted(config *Config) Config {
	out := *config
	if config.Semantic != nil && config.Semantic.Gemini != nil && config.Semantic.Gemini.APIKey != "" {
		semanticCfg := *config.Semantic
		geminiCfg := *config.Semantic.Gemini
		geminiCfg.APIKey = "***"
		semanticCfg.Gemini = &geminiCfg
		out.Semantic = &semanticCfg
	}
	return out
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
