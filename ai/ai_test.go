package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(url string) *Client {
	return &Client{
		apiKey:  "test-key",
		model:   defaultModel,
		baseURL: url,
		hc:      &http.Client{Timeout: 5 * time.Second},
	}
}

func replyWith(t *testing.T, text string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, apiVersion, r.Header.Get("anthropic-version"))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"content": []map[string]string{{"type": "text", "text": text}},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestAnalysisTypeValid(t *testing.T) {
	assert.True(t, AnalysisGrammar.Valid())
	assert.True(t, AnalysisStyle.Valid())
	assert.True(t, AnalysisStructure.Valid())
	assert.True(t, AnalysisSummary.Valid())
	assert.False(t, AnalysisType("sentiment").Valid())
	assert.False(t, AnalysisType("").Valid())
}

func TestAnalysisPrompt(t *testing.T) {
	for _, typ := range []AnalysisType{AnalysisGrammar, AnalysisStyle, AnalysisStructure, AnalysisSummary} {
		prompt, err := AnalysisPrompt("the quick brown fox", typ)
		require.NoError(t, err, "type %s", typ)
		assert.Contains(t, prompt, "the quick brown fox")
	}
	_, err := AnalysisPrompt("text", AnalysisType("sentiment"))
	assert.Error(t, err)
}

func TestEnabled(t *testing.T) {
	assert.False(t, NewClient("").Enabled())
	assert.True(t, NewClient("sk-ant-x").Enabled())
}

func TestAnalyzeMemo(t *testing.T) {
	srv := replyWith(t, "Looks fine.")
	out, err := testClient(srv.URL).AnalyzeMemo(context.Background(), "some text", AnalysisGrammar)
	require.NoError(t, err)
	assert.Equal(t, "Looks fine.", out)
}

func TestAnalyzeMemoWithoutKey(t *testing.T) {
	_, err := NewClient("").AnalyzeMemo(context.Background(), "some text", AnalysisGrammar)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestAnalyzeMemoUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)
	_, err := testClient(srv.URL).AnalyzeMemo(context.Background(), "some text", AnalysisGrammar)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestRankMemos(t *testing.T) {
	srv := replyWith(t, `Here are the scores: {"m1": 20, "m2": 90, "m3": 55}`)
	docs := []RankDoc{
		{ID: "m1", Title: "Groceries", Content: "milk, eggs"},
		{ID: "m2", Title: "Go notes", Content: "channels and goroutines"},
		{ID: "m3", Title: "Reading list", Content: "books about Go"},
	}
	ranked, err := testClient(srv.URL).RankMemos(context.Background(), "golang", docs)
	require.NoError(t, err)
	require.Len(t, ranked, 3)
	assert.Equal(t, "m2", ranked[0].ID)
	assert.Equal(t, float64(90), ranked[0].Score)
	assert.Equal(t, "m3", ranked[1].ID)
	assert.Equal(t, "m1", ranked[2].ID)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abc...", truncate("abcdef", 3))

	// 4 bytes per rune; a limit of 6 lands mid-rune and must back up.
	s := "😀😀😀"
	out := truncate(s, 6)
	assert.Equal(t, "😀...", out)
	assert.True(t, utf8.ValidString(out))

	for n := 0; n <= len(s); n++ {
		assert.True(t, utf8.ValidString(truncate(s, n)), "limit %d", n)
	}
}

func TestParseScores(t *testing.T) {
	t.Run("bare object", func(t *testing.T) {
		scores, err := ParseScores(`{"a": 1, "b": 2.5}`)
		require.NoError(t, err)
		assert.Equal(t, map[string]float64{"a": 1, "b": 2.5}, scores)
	})

	t.Run("code fence", func(t *testing.T) {
		scores, err := ParseScores("```json\n{\"a\": 40}\n```")
		require.NoError(t, err)
		assert.Equal(t, map[string]float64{"a": 40}, scores)
	})

	t.Run("surrounded by prose", func(t *testing.T) {
		scores, err := ParseScores(`Sure! The relevance scores are {"x": 10} as requested.`)
		require.NoError(t, err)
		assert.Equal(t, map[string]float64{"x": 10}, scores)
	})

	t.Run("no object", func(t *testing.T) {
		_, err := ParseScores("I could not rank these memos.")
		assert.ErrorIs(t, err, ErrUnavailable)
	})

	t.Run("malformed object", func(t *testing.T) {
		_, err := ParseScores(`{"a": "high"}`)
		assert.ErrorIs(t, err, ErrUnavailable)
	})
}
