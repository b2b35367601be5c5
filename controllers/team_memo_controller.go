package controllers

import (
	"net/http"
	"strconv"

	"memoflow/app"
	"memoflow/models"
	"memoflow/permissions"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TeamMemoController struct{ *Srv }

func NewTeamMemoController(s *Srv) *TeamMemoController { return &TeamMemoController{Srv: s} }

// GET /api/teams/:id/memos
func (tm *TeamMemoController) ListTeamMemos(c *gin.Context) {
	teamID := c.Param("id")
	if _, ok := tm.requireCapability(c, teamID, func(p permissions.Capabilities) bool { return p.CanViewTeam }); !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	res, err := tm.Repo.ListTeamMemos(c.Request.Context(), teamID, page, size)
	if err != nil {
		tm.writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"memos": res.Memos, "total": res.Total})
}

// POST /api/teams/:id/memos
func (tm *TeamMemoController) CreateTeamMemo(c *gin.Context) {
	teamID := c.Param("id")
	userID, _ := app.SessionUser(c)
	if _, ok := tm.requireCapability(c, teamID, func(p permissions.Capabilities) bool { return p.CanCreateMemos }); !ok {
		return
	}
	var in struct {
		Title    string   `json:"title" binding:"required"`
		Content  string   `json:"content" binding:"required"`
		IsPublic bool     `json:"isPublic"`
		TagIDs   []string `json:"tagIds"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	m := &models.Memo{
		ID:       uuid.NewString(),
		Title:    in.Title,
		Content:  in.Content,
		UserID:   userID,
		TeamID:   &teamID,
		IsPublic: in.IsPublic,
	}
	if err := tm.Repo.CreateMemo(c.Request.Context(), m, in.TagIDs); err != nil {
		tm.writeErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

// loadTeamMemo fetches a memo and checks it actually belongs to the team.
func (tm *TeamMemoController) loadTeamMemo(c *gin.Context, teamID string) (*models.Memo, bool) {
	m, err := tm.Repo.FindMemoByID(c.Request.Context(), c.Param("memoId"))
	if err != nil {
		tm.writeErr(c, err)
		return nil, false
	}
	if m.TeamID == nil || *m.TeamID != teamID {
		c.JSON(http.StatusNotFound, app.H{"error": "not found"})
		return nil, false
	}
	return m, true
}

// GET /api/teams/:id/memos/:memoId
func (tm *TeamMemoController) GetTeamMemo(c *gin.Context) {
	teamID := c.Param("id")
	if _, ok := tm.requireCapability(c, teamID, func(p permissions.Capabilities) bool { return p.CanViewTeam }); !ok {
		return
	}
	m, ok := tm.loadTeamMemo(c, teamID)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, m)
}

// PUT /api/teams/:id/memos/:memoId. The creator may always edit their own
// memo; anyone else needs the team capability.
func (tm *TeamMemoController) UpdateTeamMemo(c *gin.Context) {
	teamID := c.Param("id")
	userID, _ := app.SessionUser(c)
	role, _ := tm.membership(c, teamID)
	m, ok := tm.loadTeamMemo(c, teamID)
	if !ok {
		return
	}
	if !permissions.CanEditMemo(m.UserID == userID, role) {
		c.JSON(http.StatusForbidden, app.H{"error": "permission denied"})
		return
	}
	var in struct {
		Title    *string  `json:"title"`
		Content  *string  `json:"content"`
		IsPublic *bool    `json:"isPublic"`
		TagIDs   []string `json:"tagIds"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	fields := map[string]interface{}{}
	if in.Title != nil {
		fields["title"] = *in.Title
	}
	if in.Content != nil {
		fields["content"] = *in.Content
	}
	if in.IsPublic != nil {
		fields["is_public"] = *in.IsPublic
	}
	if err := tm.Repo.UpdateMemo(c.Request.Context(), m.ID, fields, in.TagIDs); err != nil {
		tm.writeErr(c, err)
		return
	}
	updated, err := tm.Repo.FindMemoByID(c.Request.Context(), m.ID)
	if err != nil {
		tm.writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DELETE /api/teams/:id/memos/:memoId
func (tm *TeamMemoController) DeleteTeamMemo(c *gin.Context) {
	teamID := c.Param("id")
	userID, _ := app.SessionUser(c)
	role, _ := tm.membership(c, teamID)
	m, ok := tm.loadTeamMemo(c, teamID)
	if !ok {
		return
	}
	if !permissions.CanDeleteMemo(m.UserID == userID, role) {
		c.JSON(http.StatusForbidden, app.H{"error": "permission denied"})
		return
	}
	if err := tm.Repo.DeleteMemo(c.Request.Context(), m.ID); err != nil {
		tm.writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"ok": true})
}

// GET /api/teams/:id/memos/search?q=
func (tm *TeamMemoController) SearchTeamMemos(c *gin.Context) {
	teamID := c.Param("id")
	if _, ok := tm.requireCapability(c, teamID, func(p permissions.Capabilities) bool { return p.CanViewTeam }); !ok {
		return
	}
	q := c.Query("q")
	if q == "" {
		c.JSON(http.StatusBadRequest, app.H{"error": "missing query"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	memos, err := tm.Repo.SearchTeamMemos(c.Request.Context(), teamID, q, limit)
	if err != nil {
		tm.writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"memos": memos, "query": q})
}

// GET /api/teams/:id/memos/stats
func (tm *TeamMemoController) TeamMemoStats(c *gin.Context) {
	teamID := c.Param("id")
	if _, ok := tm.requireCapability(c, teamID, func(p permissions.Capabilities) bool { return p.CanViewTeam }); !ok {
		return
	}
	st, err := tm.Repo.TeamMemoStats(c.Request.Context(), teamID)
	if err != nil {
		tm.writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"stats": st})
}
