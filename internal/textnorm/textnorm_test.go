package textnorm

import (
	"reflect"
	"testing"
)

func TestClean(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{name: "empty", input: "", expect: ""},
		{name: "lowercases", input: "GoLang", expect: "golang"},
		{name: "drops punctuation", input: "React.js", expect: "reactjs"},
		{name: "keeps underscore", input: "snake_case!", expect: "snake_case"},
		{name: "collapses spaces", input: "  machine   learning \t", expect: "machine learning"},
		{name: "folds accents", input: "Café Résumé", expect: "cafe resume"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Clean(tt.input); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestTokensEmpty(t *testing.T) {
	if got := Tokens("   ...  "); len(got) != 0 {
		t.Fatalf("expected no tokens, got %v", got)
	}
}

func TestNormalizeStemsEveryToken(t *testing.T) {
	got := Normalize("Testing Frameworks")
	if got != "test framework" {
		t.Fatalf("unexpected normalized form: %q", got)
	}

	tokens := StemmedTokens("running runs")
	if !reflect.DeepEqual(tokens, []string{"run", "run"}) {
		t.Fatalf("unexpected stems: %v", tokens)
	}
}

func TestStemEmpty(t *testing.T) {
	if Stem("") != "" {
		t.Fatalf("expected empty stem")
	}
}
