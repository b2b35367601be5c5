// Package ai talks to the Anthropic Messages API for memo analysis and
// semantic ranking. Any upstream failure is reported as ErrUnavailable so
// handlers can answer with a degraded-service status instead of a fault.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

const (
	defaultBaseURL = "https://api.anthropic.com/v1/messages"
	defaultModel   = "claude-3-haiku-20240307"
	apiVersion     = "2023-06-01"
)

var ErrUnavailable = errors.New("ai service unavailable")

type AnalysisType string

const (
	AnalysisGrammar   AnalysisType = "grammar"
	AnalysisStyle     AnalysisType = "style"
	AnalysisStructure AnalysisType = "structure"
	AnalysisSummary   AnalysisType = "summary"
)

func (t AnalysisType) Valid() bool {
	switch t {
	case AnalysisGrammar, AnalysisStyle, AnalysisStructure, AnalysisSummary:
		return true
	}
	return false
}

type Client struct {
	apiKey  string
	model   string
	baseURL string
	hc      *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		model:   defaultModel,
		baseURL: defaultBaseURL,
		hc:      &http.Client{Timeout: 60 * time.Second},
	}
}

// Enabled reports whether an API key is configured at all.
func (c *Client) Enabled() bool { return c.apiKey != "" }

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type request struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system,omitempty"`
	Messages  []message `json:"messages"`
}

type response struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

func (c *Client) complete(ctx context.Context, system, prompt string, maxTokens int) (string, error) {
	if !c.Enabled() {
		return "", ErrUnavailable
	}
	body, _ := json.Marshal(request{
		Model:     c.model,
		MaxTokens: maxTokens,
		System:    system,
		Messages:  []message{{Role: "user", Content: prompt}},
	})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", apiVersion)

	resp, err := c.hc.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: upstream status %d", ErrUnavailable, resp.StatusCode)
	}
	var out response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	for _, blk := range out.Content {
		if blk.Type == "text" {
			return blk.Text, nil
		}
	}
	return "", fmt.Errorf("%w: no text block in reply", ErrUnavailable)
}
