package semantic

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type stubEmbedder struct {
	vectors map[string][]float64
	err     error
	block   bool
}

func (s *stubEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	if s.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.vectors[text], nil
}

type hangingEmbedder struct {
	release chan struct{}
}

func (h *hangingEmbedder) Embed(context.Context, string) ([]float64, error) {
	<-h.release
	return []float64{1}, nil
}

func TestSimilarityUsesProvider(t *testing.T) {
	stub := &stubEmbedder{vectors: map[string][]float64{
		"go kubernetes": {1, 0},
		"golang k8s":    {1, 0},
	}}
	adapter := New(stub, time.Second, zap.NewNop(), 0)

	res := adapter.Similarity(context.Background(), "go kubernetes", "golang k8s")

	assert.Equal(t, SourceProvider, res.Source)
	assert.False(t, res.Degraded())
	assert.InDelta(t, 1.0, res.Score, 1e-9)
}

func TestSimilarityNormalizesOppositeVectors(t *testing.T) {
	stub := &stubEmbedder{vectors: map[string][]float64{
		"a": {1, 0},
		"b": {-1, 0},
	}}
	adapter := New(stub, time.Second, zap.NewNop(), 0)

	res := adapter.Similarity(context.Background(), "a", "b")

	assert.Equal(t, SourceProvider, res.Source)
	assert.InDelta(t, 0.0, res.Score, 1e-9)
}

func TestSimilarityFallsBackOnProviderError(t *testing.T) {
	core, observed := observer.New(zapcore.WarnLevel)
	adapter := New(&stubEmbedder{err: errors.New("quota exceeded")}, time.Second, zap.New(core), 0)

	res := adapter.Similarity(context.Background(), "python developer", "python developer")

	assert.Equal(t, SourceLocal, res.Source)
	assert.True(t, res.Degraded())
	assert.InDelta(t, 1.0, res.Score, 1e-9)

	entries := observed.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "semantic provider failed, running in degraded mode", entries[0].Message)
}

func TestSimilarityFallsBackOnTimeout(t *testing.T) {
	adapter := New(&stubEmbedder{block: true}, 10*time.Millisecond, zap.NewNop(), 0)

	res := adapter.Similarity(context.Background(), "java", "java spring")

	assert.Equal(t, SourceLocal, res.Source)
	assert.Equal(t, LocalSimilarity("java", "java spring"), res.Score)
}

func TestSimilarityDoesNotWaitForHangingProvider(t *testing.T) {
	hanging := &hangingEmbedder{release: make(chan struct{})}
	defer close(hanging.release)

	adapter := New(hanging, 10*time.Millisecond, zap.NewNop(), 0)

	start := time.Now()
	res := adapter.Similarity(context.Background(), "x", "y")

	assert.Equal(t, SourceLocal, res.Source)
	assert.Less(t, time.Since(start), time.Second)
}

func TestSimilarityFallsBackOnMalformedVectors(t *testing.T) {
	stub := &stubEmbedder{vectors: map[string][]float64{
		"a": {1, 0, 0},
		"b": {1, 0},
	}}
	adapter := New(stub, time.Second, zap.NewNop(), 0)

	res := adapter.Similarity(context.Background(), "a", "b")
	assert.Equal(t, SourceLocal, res.Source)

	res = adapter.Similarity(context.Background(), "a", "missing")
	assert.Equal(t, SourceLocal, res.Source)
}

func TestSimilarityWithoutProvider(t *testing.T) {
	core, observed := observer.New(zapcore.DebugLevel)
	adapter := New(nil, 0, zap.New(core), 0)

	res := adapter.Similarity(context.Background(), "react", "react")
	assert.Equal(t, SourceLocal, res.Source)
	assert.InDelta(t, 1.0, res.Score, 1e-9)

	entries := observed.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)

	var nilAdapter *Adapter
	assert.Equal(t, SourceLocal, nilAdapter.Similarity(context.Background(), "a", "a").Source)
}

func TestCosine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		v1, v2  []float64
		want    float64
		wantErr error
	}{
		{name: "identical", v1: []float64{1, 2, 3}, v2: []float64{1, 2, 3}, want: 1},
		{name: "orthogonal", v1: []float64{1, 0}, v2: []float64{0, 1}, want: 0},
		{name: "opposite", v1: []float64{1, 1}, v2: []float64{-1, -1}, want: -1},
		{name: "empty", v1: nil, v2: []float64{1}, wantErr: ErrEmptyEmbedding},
		{name: "zero vector", v1: []float64{0, 0}, v2: []float64{1, 1}, wantErr: ErrEmptyEmbedding},
		{name: "mismatch", v1: []float64{1}, v2: []float64{1, 2}, wantErr: ErrDimensionMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Cosine(tt.v1, tt.v2)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestNormalizeCosine(t *testing.T) {
	assert.InDelta(t, 0.0, NormalizeCosine(-1), 1e-9)
	assert.InDelta(t, 0.5, NormalizeCosine(0), 1e-9)
	assert.InDelta(t, 1.0, NormalizeCosine(1), 1e-9)
}
