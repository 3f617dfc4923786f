package keywords

import (
	"context"
	"errors"
	"testing"

	"github.com/jonathan/ats-checker/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEnhancer struct {
	result   []string
	err      error
	gotText  string
	gotInput []string
}

func (s *stubEnhancer) Enhance(_ context.Context, text string, keywords []string) ([]string, error) {
	s.gotText = text
	s.gotInput = keywords
	return s.result, s.err
}

func TestTokenize(t *testing.T) {
	got := Tokenize("Go/Kubernetes, C++ & SQL!\n\tDevOps")
	assert.Equal(t, []string{"go", "kubernetes", "c", "sql", "devops"}, got)
}

func TestExtractBasic(t *testing.T) {
	tests := []struct {
		name string
		text string
		max  int
		want []string
	}{
		{
			name: "ranks by frequency",
			text: "python golang python kubernetes python golang",
			max:  10,
			want: []string{"python", "golang", "kubernetes"},
		},
		{
			name: "ties keep first occurrence",
			text: "zebra apple mango apple zebra mango",
			max:  10,
			want: []string{"zebra", "apple", "mango"},
		},
		{
			name: "drops stopwords and short tokens",
			text: "The team and I built an API in Go with AWS",
			max:  10,
			want: []string{"team", "built", "api", "aws"},
		},
		{
			name: "truncates to max",
			text: "alpha beta gamma delta",
			max:  2,
			want: []string{"alpha", "beta"},
		},
		{
			name: "empty text",
			text: "",
			max:  5,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractBasic(tt.text, tt.max))
		})
	}
}

func TestExtractBasic_DefaultMax(t *testing.T) {
	text := ""
	for i := 0; i < 40; i++ {
		text += " word" + string(rune('a'+i%26)) + string(rune('a'+i/26))
	}
	assert.Len(t, ExtractBasic(text, 0), DefaultMaxKeywords)
}

func TestExtractor_Extract(t *testing.T) {
	text := "python python golang kubernetes docker terraform"

	t.Run("no enhancer uses basic list", func(t *testing.T) {
		got := NewExtractor(nil, nil).Extract(context.Background(), text, 30)
		assert.Equal(t, types.SourceFallback, got.Source)
		assert.Equal(t, ExtractBasic(text, 30), got.Keywords)
	})

	t.Run("enhancer error keeps basic list unchanged", func(t *testing.T) {
		stub := &stubEnhancer{err: errors.New("rate limited")}
		got := NewExtractor(stub, nil).Extract(context.Background(), text, 30)
		assert.Equal(t, types.SourceFallback, got.Source)
		assert.Equal(t, ExtractBasic(text, 30), got.Keywords)
	})

	t.Run("NoEnhancer falls back", func(t *testing.T) {
		got := NewExtractor(NoEnhancer{}, nil).Extract(context.Background(), text, 30)
		assert.Equal(t, types.SourceFallback, got.Source)
	})

	t.Run("empty enhancer result falls back", func(t *testing.T) {
		stub := &stubEnhancer{result: []string{" ", ""}}
		got := NewExtractor(stub, nil).Extract(context.Background(), text, 30)
		assert.Equal(t, types.SourceFallback, got.Source)
	})

	t.Run("enhanced list is normalized", func(t *testing.T) {
		stub := &stubEnhancer{result: []string{"Kubernetes", " Python ", "kubernetes", "CI/CD"}}
		got := NewExtractor(stub, nil).Extract(context.Background(), text, 30)
		require.Equal(t, types.SourceProvider, got.Source)
		assert.Equal(t, []string{"kubernetes", "python", "ci/cd"}, got.Keywords)
		assert.Equal(t, text, stub.gotText)
		assert.Equal(t, "python", stub.gotInput[0])
	})

	t.Run("enhancer receives at most fifteen keywords", func(t *testing.T) {
		long := ""
		for i := 0; i < 25; i++ {
			long += " token" + string(rune('a'+i))
		}
		stub := &stubEnhancer{result: []string{"x1"}}
		NewExtractor(stub, nil).Extract(context.Background(), long, 30)
		assert.Len(t, stub.gotInput, EnhancerInputSize)
	})

	t.Run("enhanced list capped at max", func(t *testing.T) {
		stub := &stubEnhancer{result: []string{"a1", "b2", "c3", "d4"}}
		got := NewExtractor(stub, nil).Extract(context.Background(), text, 2)
		assert.Equal(t, []string{"a1", "b2"}, got.Keywords)
	})
}
