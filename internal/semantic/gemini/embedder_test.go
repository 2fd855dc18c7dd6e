package gemini

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

type fakeResponse struct {
	resp *genai.EmbedContentResponse
	err  error
}

type fakeModels struct {
	mu    sync.Mutex
	calls []string
	queue []fakeResponse
}

func (f *fakeModels) enqueue(resp *genai.EmbedContentResponse, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queue = append(f.queue, fakeResponse{resp: resp, err: err})
}

func (f *fakeModels) EmbedContent(_ context.Context, model string, contents []*genai.Content, config *genai.EmbedContentConfig) (*genai.EmbedContentResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if config == nil || config.TaskType != taskType {
		return nil, errors.New("unexpected config")
	}
	if len(contents) != 1 || len(contents[0].Parts) != 1 {
		return nil, errors.New("unexpected contents")
	}
	f.calls = append(f.calls, model+":"+contents[0].Parts[0].Text)
	if len(f.queue) == 0 {
		return nil, errors.New("unexpected call")
	}
	res := f.queue[0]
	f.queue = f.queue[1:]
	return res.resp, res.err
}

func embedding(values ...float32) *genai.EmbedContentResponse {
	return &genai.EmbedContentResponse{
		Embeddings: []*genai.ContentEmbedding{{Values: values}},
	}
}

func noWait(t *testing.T) {
	t.Helper()
	original := wait
	wait = func(context.Context, time.Duration) error { return nil }
	t.Cleanup(func() { wait = original })
}

func TestEmbedderReturnsValues(t *testing.T) {
	models := &fakeModels{}
	models.enqueue(embedding(0.5, -0.25), nil)

	e := newEmbedder(models, "", 1, 0, zap.NewNop())

	values, err := e.Embed(context.Background(), "  golang  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(values) != 2 || values[0] != 0.5 || values[1] != -0.25 {
		t.Fatalf("unexpected values: %v", values)
	}

	if len(models.calls) != 1 || models.calls[0] != DefaultModel+":golang" {
		t.Fatalf("unexpected calls: %v", models.calls)
	}
}

func TestEmbedderRetriesOnTemporaryError(t *testing.T) {
	noWait(t)

	models := &fakeModels{}
	models.enqueue(nil, genai.APIError{Code: http.StatusInternalServerError, Status: "INTERNAL"})
	models.enqueue(embedding(1), nil)

	e := newEmbedder(models, "text-embedding-004", 2, 0, zap.NewNop())

	if _, err := e.Embed(context.Background(), "go"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(models.calls) != 2 {
		t.Fatalf("expected 2 calls, got %d", len(models.calls))
	}
}

func TestEmbedderStopsAfterRetriesExhausted(t *testing.T) {
	noWait(t)

	models := &fakeModels{}
	tempErr := genai.APIError{Code: http.StatusServiceUnavailable, Status: "UNAVAILABLE"}
	models.enqueue(nil, tempErr)
	models.enqueue(nil, tempErr)

	e := newEmbedder(models, "m", 2, 0, zap.NewNop())

	if _, err := e.Embed(context.Background(), "go"); err == nil {
		t.Fatal("expected error after retries exhausted")
	}

	if len(models.calls) != 2 {
		t.Fatalf("expected 2 calls, got %d", len(models.calls))
	}
}

func TestEmbedderDoesNotRetryOnLongQuotaDelay(t *testing.T) {
	models := &fakeModels{}
	models.enqueue(nil, genai.APIError{
		Code:    http.StatusTooManyRequests,
		Status:  "RESOURCE_EXHAUSTED",
		Message: "quota exhausted, retry after 60 seconds",
	})

	e := newEmbedder(models, "m", 3, 0, zap.NewNop())

	if _, err := e.Embed(context.Background(), "go"); err == nil {
		t.Fatal("expected error when quota delay too long")
	}

	if len(models.calls) != 1 {
		t.Fatalf("expected single call, got %d", len(models.calls))
	}
}

func TestEmbedderDoesNotRetryClientErrors(t *testing.T) {
	models := &fakeModels{}
	models.enqueue(nil, genai.APIError{Code: http.StatusBadRequest, Status: "INVALID_ARGUMENT"})

	e := newEmbedder(models, "m", 3, 0, zap.NewNop())

	if _, err := e.Embed(context.Background(), "go"); err == nil {
		t.Fatal("expected error")
	}

	if len(models.calls) != 1 {
		t.Fatalf("expected single call, got %d", len(models.calls))
	}
}

func TestEmbedderRejectsEmptyResponses(t *testing.T) {
	models := &fakeModels{}
	models.enqueue(&genai.EmbedContentResponse{}, nil)

	e := newEmbedder(models, "m", 1, 0, zap.NewNop())

	if _, err := e.Embed(context.Background(), "go"); err == nil {
		t.Fatal("expected error for empty embedding")
	}

	if _, err := e.Embed(context.Background(), "   "); err == nil {
		t.Fatal("expected error for empty text")
	}

	var nilEmbedder *Embedder
	if _, err := nilEmbedder.Embed(context.Background(), "go"); err == nil {
		t.Fatal("expected error for nil embedder")
	}
}

func TestParseRetryDelay(t *testing.T) {
	tests := []struct {
		message string
		want    time.Duration
		ok      bool
	}{
		{message: "retry after 60 seconds", want: 60 * time.Second, ok: true},
		{message: "Please retry in 1.5s.", want: 1500 * time.Millisecond, ok: true},
		{message: "quota exhausted", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			got, ok := parseRetryDelay(tt.message)
			if ok != tt.ok || got != tt.want {
				t.Fatalf("expected (%v, %v), got (%v, %v)", tt.want, tt.ok, got, ok)
			}
		})
	}
}
