// Package gemini provides a Gemini API backed embedding provider for the
// semantic adapter.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
	"google.golang.org/genai"

	applog "github.com/spigell/jobmatch/internal/logger"
	"github.com/spigell/jobmatch/internal/utils"
)

const (
	DefaultModel    = "text-embedding-004"
	taskType        = "SEMANTIC_SIMILARITY"
	baseBackoff     = 100 * time.Millisecond
	maxRetryDelay   = 2 * time.Second
	defaultLogLimit = 200
)

var wait = utils.WaitFor

var retryDelayPattern = regexp.MustCompile(`(?i)retry (?:after|in) (\d+(?:\.\d+)?)\s*s`)

type embedModels interface {
	EmbedContent(ctx context.Context, model string, contents []*genai.Content, config *genai.EmbedContentConfig) (*genai.EmbedContentResponse, error)
}

// Embedder wraps the Google GenAI client to produce text embeddings.
type Embedder struct {
	models     embedModels
	model      string
	maxRetries int
	maxLogLen  int
	logger     *zap.Logger
}

// NewEmbedder creates a new Embedder configured for the Gemini API backend.
func NewEmbedder(ctx context.Context, apiKey, model string, maxRetries, maxLogLength int, logger *zap.Logger) (*Embedder, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return newEmbedder(client.Models, model, maxRetries, maxLogLength, logger), nil
}

func newEmbedder(models embedModels, model string, maxRetries, maxLogLength int, logger *zap.Logger) *Embedder {
	if model = strings.TrimSpace(model); model == "" {
		model = DefaultModel
	}
	if maxRetries < 1 {
		maxRetries = 1
	}
	if maxLogLength <= 0 {
		maxLogLength = defaultLogLimit
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String(applog.FieldModel, model))

	return &Embedder{
		models:     models,
		model:      model,
		maxRetries: maxRetries,
		maxLogLen:  maxLogLength,
		logger:     logger,
	}
}

// Embed returns the embedding of text. Temporary API failures are retried up
// to maxRetries attempts in total while ctx allows it.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float64, error) {
	if e == nil || e.models == nil {
		return nil, errors.New("gemini embedder is not initialized")
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.New("text must not be empty")
	}

	e.logger.Debug("gemini embed content request",
		zap.Int("text_length", utf8.RuneCountInString(text)),
		zap.String("text_preview", utils.TruncateForLog(text, e.maxLogLen)),
	)

	var lastErr error
	for attempt := 1; attempt <= e.maxRetries; attempt++ {
		values, err := e.embedOnce(ctx, text)
		if err == nil {
			return values, nil
		}
		lastErr = err

		delay, retry := retryDelay(err, attempt)
		if !retry || attempt == e.maxRetries {
			break
		}

		e.logger.Debug("retrying gemini embed content",
			zap.Int("attempt", attempt),
			zap.Duration("delay", delay),
			zap.Error(err),
		)

		if err := wait(ctx, delay); err != nil {
			return nil, fmt.Errorf("embed content: %w", err)
		}
	}

	return nil, lastErr
}

func (e *Embedder) embedOnce(ctx context.Context, text string) ([]float64, error) {
	resp, err := e.models.EmbedContent(ctx, e.model, genai.Text(text), &genai.EmbedContentConfig{TaskType: taskType})
	if err != nil {
		return nil, fmt.Errorf("embed content: %w", err)
	}

	if resp == nil || len(resp.Embeddings) == 0 || resp.Embeddings[0] == nil || len(resp.Embeddings[0].Values) == 0 {
		return nil, errors.New("gemini api returned empty embedding")
	}

	raw := resp.Embeddings[0].Values
	values := make([]float64, len(raw))
	for i, v := range raw {
		values[i] = float64(v)
	}

	return values, nil
}

// Model reports the embedding model requests are sent to.
func (e *Embedder) Model() string {
	if e == nil {
		return ""
	}
	return e.model
}

// retryDelay decides whether err is temporary and how long to back off.
// Quota errors asking for a long pause are not retried: the semantic call
// carries a short deadline and the local fallback is cheaper.
func retryDelay(err error, attempt int) (time.Duration, bool) {
	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		return 0, false
	}

	delay := time.Duration(attempt) * baseBackoff

	switch {
	case apiErr.Code == http.StatusTooManyRequests:
		if requested, ok := parseRetryDelay(apiErr.Message); ok {
			if requested > maxRetryDelay {
				return 0, false
			}
			delay = requested
		}
		return delay, true
	case apiErr.Code >= http.StatusInternalServerError:
		return delay, true
	default:
		return 0, false
	}
}

func parseRetryDelay(message string) (time.Duration, bool) {
	match := retryDelayPattern.FindStringSubmatch(message)
	if len(match) != 2 {
		return 0, false
	}

	seconds, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0, false
	}

	return time.Duration(seconds * float64(time.Second)), true
}
