package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

const analysisSystem = "You are an assistant that analyzes and improves written text."

// AnalysisPrompt builds the user prompt for one analysis type. Split out
// so it can be checked without calling the API.
func AnalysisPrompt(content string, t AnalysisType) (string, error) {
	switch t {
	case AnalysisGrammar:
		return fmt.Sprintf("Review the grammar and spelling of the following text. "+
			"List the errors you find, suggest improvements, and provide a corrected version:\n\n%s", content), nil
	case AnalysisStyle:
		return fmt.Sprintf("Analyze the style and phrasing of the following text. "+
			"Point out where the wording could be clearer and provide an improved version:\n\n%s", content), nil
	case AnalysisStructure:
		return fmt.Sprintf("Analyze the structure of the following text. "+
			"Suggest a more logical organization and provide a restructured version:\n\n%s", content), nil
	case AnalysisSummary:
		return fmt.Sprintf("Extract the key points of the following text and "+
			"provide a concise summary:\n\n%s", content), nil
	}
	return "", fmt.Errorf("unsupported analysis type %q", t)
}

// AnalyzeMemo runs one analysis pass over the memo content.
func (c *Client) AnalyzeMemo(ctx context.Context, content string, t AnalysisType) (string, error) {
	prompt, err := AnalysisPrompt(content, t)
	if err != nil {
		return "", err
	}
	return c.complete(ctx, analysisSystem, prompt, 2000)
}

const rankSystem = "You rate how relevant each memo is to a search query. " +
	`Reply with a single JSON object mapping memo id to a 0-100 relevance score, like {"id1": 80, "id2": 15}.`

// RankDoc is the slice of a memo the ranker sees. Content is truncated by
// the caller-facing helper to keep prompts bounded.
type RankDoc struct {
	ID      string
	Title   string
	Content string
}

type RankedDoc struct {
	ID    string  `json:"id"`
	Score float64 `json:"score"`
}

const maxRankContent = 500

// RankMemos asks the model to score each doc against the query and returns
// docs sorted by descending score.
func (c *Client) RankMemos(ctx context.Context, query string, docs []RankDoc) ([]RankedDoc, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Search query: %q\n\nMemos:\n\n", query)
	for _, d := range docs {
		fmt.Fprintf(&sb, "ID: %s\nTitle: %s\nContent: %s\n---\n", d.ID, d.Title, truncate(d.Content, maxRankContent))
	}
	reply, err := c.complete(ctx, rankSystem, sb.String(), 2000)
	if err != nil {
		return nil, err
	}
	scores, err := ParseScores(reply)
	if err != nil {
		return nil, err
	}
	out := make([]RankedDoc, 0, len(scores))
	for id, score := range scores {
		out = append(out, RankedDoc{ID: id, Score: score})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out, nil
}

// truncate cuts s to at most n bytes without splitting a multi-byte rune,
// appending an ellipsis when anything was dropped.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := n
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

var jsonObjectRe = regexp.MustCompile(`\{[\s\S]*\}`)

// ParseScores pulls the id->score object out of a model reply that may
// wrap it in prose or a code fence.
func ParseScores(reply string) (map[string]float64, error) {
	raw := jsonObjectRe.FindString(reply)
	if raw == "" {
		return nil, fmt.Errorf("%w: no JSON object in reply", ErrUnavailable)
	}
	var scores map[string]float64
	if err := json.Unmarshal([]byte(raw), &scores); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return scores, nil
}
