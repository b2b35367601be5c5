package controllers

import (
	"net/http"
	"strconv"

	"memoflow/ai"
	"memoflow/app"

	"github.com/gin-gonic/gin"
)

type AIController struct{ *Srv }

func NewAIController(s *Srv) *AIController { return &AIController{Srv: s} }

// POST /api/ai/analyze {memoId, type}
func (ac *AIController) Analyze(c *gin.Context) {
	userID, _ := app.SessionUser(c)
	var in struct {
		MemoID string `json:"memoId" binding:"required"`
		Type   string `json:"type" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	t := ai.AnalysisType(in.Type)
	if !t.Valid() {
		c.JSON(http.StatusBadRequest, app.H{"error": "type must be grammar, style, structure or summary"})
		return
	}
	if !ac.AI.Enabled() {
		c.JSON(http.StatusServiceUnavailable, app.H{"error": "ai analysis is not configured"})
		return
	}

	m, err := ac.Repo.FindMemoByID(c.Request.Context(), in.MemoID)
	if err != nil {
		ac.writeErr(c, err)
		return
	}
	if m.UserID != userID {
		c.JSON(http.StatusForbidden, app.H{"error": "permission denied"})
		return
	}

	result, err := ac.AI.AnalyzeMemo(c.Request.Context(), m.Content, t)
	if err != nil {
		ac.writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{
		"memoId":  m.ID,
		"type":    t,
		"content": result,
	})
}

// GET /api/ai/semantic-search?q=&limit=
func (ac *AIController) SemanticSearch(c *gin.Context) {
	userID, _ := app.SessionUser(c)
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, app.H{"error": "missing query"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	if !ac.AI.Enabled() {
		c.JSON(http.StatusServiceUnavailable, app.H{"error": "semantic search is not configured"})
		return
	}

	memos, err := ac.Repo.ListUserMemosForSearch(c.Request.Context(), userID)
	if err != nil {
		ac.writeErr(c, err)
		return
	}
	if len(memos) == 0 {
		c.JSON(http.StatusOK, app.H{"results": []app.H{}, "query": query})
		return
	}

	docs := make([]ai.RankDoc, 0, len(memos))
	byID := make(map[string]int, len(memos))
	for i, m := range memos {
		docs = append(docs, ai.RankDoc{ID: m.ID, Title: m.Title, Content: m.Content})
		byID[m.ID] = i
	}
	ranked, err := ac.AI.RankMemos(c.Request.Context(), query, docs)
	if err != nil {
		ac.writeErr(c, err)
		return
	}

	results := make([]app.H, 0, limit)
	for _, r := range ranked {
		idx, ok := byID[r.ID]
		if !ok {
			continue // model invented an id
		}
		results = append(results, app.H{"memo": memos[idx], "score": r.Score})
		if len(results) == limit {
			break
		}
	}
	c.JSON(http.StatusOK, app.H{
		"results":    results,
		"query":      query,
		"totalFound": len(results),
	})
}
