// Package semantic compares two texts through an external embedding provider
// and falls back to a local TF-IDF similarity when the provider cannot answer.
package semantic

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/jobmatch/internal/utils"
)

const (
	// DefaultTimeout bounds a single provider round trip (both embeddings).
	DefaultTimeout = 500 * time.Millisecond

	defaultMaxLogLength = 200
)

var (
	ErrNoProvider        = errors.New("semantic provider is not configured")
	ErrEmptyEmbedding    = errors.New("provider returned an empty embedding")
	ErrDimensionMismatch = errors.New("embedding dimensions differ")
)

// Embedder turns text into a vector representation.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// Source tells which path produced a similarity value.
type Source string

const (
	SourceProvider Source = "provider"
	SourceLocal    Source = "local"
)

// Result is a similarity in [0,1] together with the path that produced it.
type Result struct {
	Score  float64
	Source Source
}

// Degraded reports whether the provider was bypassed.
func (r Result) Degraded() bool {
	return r.Source != SourceProvider
}

// Adapter is safe for concurrent use: it holds no mutable state.
type Adapter struct {
	embedder  Embedder
	timeout   time.Duration
	logger    *zap.Logger
	maxLogLen int
}

// New builds an Adapter. A nil embedder is valid and means every call runs
// the local similarity.
func New(embedder Embedder, timeout time.Duration, logger *zap.Logger, maxLogLength int) *Adapter {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Adapter{
		embedder:  embedder,
		timeout:   timeout,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

// Similarity never fails. Provider errors, timeouts and malformed vectors are
// logged and answered with LocalSimilarity.
func (a *Adapter) Similarity(ctx context.Context, text1, text2 string) Result {
	if a == nil {
		return Result{Score: LocalSimilarity(text1, text2), Source: SourceLocal}
	}

	score, err := a.providerSimilarity(ctx, text1, text2)
	if err == nil {
		return Result{Score: score, Source: SourceProvider}
	}

	local := LocalSimilarity(text1, text2)

	fields := []zap.Field{
		zap.Error(err),
		zap.Float64("local_similarity", local),
		zap.Int("text1_length", utf8.RuneCountInString(text1)),
		zap.String("text1_preview", utils.TruncateForLog(text1, a.maxLogLen)),
		zap.Int("text2_length", utf8.RuneCountInString(text2)),
		zap.String("text2_preview", utils.TruncateForLog(text2, a.maxLogLen)),
	}
	if errors.Is(err, ErrNoProvider) {
		a.logger.Debug("semantic provider disabled, using local similarity", fields...)
	} else {
		a.logger.Warn("semantic provider failed, running in degraded mode", fields...)
	}

	return Result{Score: local, Source: SourceLocal}
}

func (a *Adapter) providerSimilarity(ctx context.Context, text1, text2 string) (float64, error) {
	if a.embedder == nil {
		return 0, ErrNoProvider
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	type embeddings struct {
		v1, v2 []float64
		err    error
	}

	// Buffered so a provider that ignores cancellation cannot block the
	// goroutine forever once the caller has moved on.
	done := make(chan embeddings, 1)
	go func() {
		var res embeddings
		g, gCtx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			res.v1, err = a.embedder.Embed(gCtx, text1)
			return err
		})
		g.Go(func() error {
			var err error
			res.v2, err = a.embedder.Embed(gCtx, text2)
			return err
		})
		res.err = g.Wait()
		done <- res
	}()

	var v1, v2 []float64
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("embed: %w", ctx.Err())
	case res := <-done:
		if res.err != nil {
			return 0, fmt.Errorf("embed: %w", res.err)
		}
		v1, v2 = res.v1, res.v2
	}

	cos, err := Cosine(v1, v2)
	if err != nil {
		return 0, err
	}

	return NormalizeCosine(cos), nil
}

// Cosine returns the cosine of the angle between v1 and v2, in [-1,1].
func Cosine(v1, v2 []float64) (float64, error) {
	if len(v1) == 0 || len(v2) == 0 {
		return 0, ErrEmptyEmbedding
	}
	if len(v1) != len(v2) {
		return 0, fmt.Errorf("%w: %d != %d", ErrDimensionMismatch, len(v1), len(v2))
	}

	var dot, n1, n2 float64
	for i := range v1 {
		dot += v1[i] * v2[i]
		n1 += v1[i] * v1[i]
		n2 += v2[i] * v2[i]
	}

	if n1 == 0 || n2 == 0 {
		return 0, ErrEmptyEmbedding
	}

	cos := dot / (math.Sqrt(n1) * math.Sqrt(n2))
	if math.IsNaN(cos) {
		return 0, ErrEmptyEmbedding
	}

	return math.Max(-1, math.Min(1, cos)), nil
}

// NormalizeCosine maps a cosine from [-1,1] onto [0,1].
func NormalizeCosine(cos float64) float64 {
	return math.Max(0, math.Min(1, (cos+1)/2))
}
