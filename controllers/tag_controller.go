package controllers

import (
	"net/http"
	"strings"

	"memoflow/app"
	"memoflow/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TagController struct{ *Srv }

func NewTagController(s *Srv) *TagController { return &TagController{Srv: s} }

// GET /api/tags
func (tc *TagController) ListTags(c *gin.Context) {
	userID, _ := app.SessionUser(c)
	tags, err := tc.Repo.ListTags(c.Request.Context(), userID)
	if err != nil {
		tc.writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"tags": tags})
}

// POST /api/tags
func (tc *TagController) CreateTag(c *gin.Context) {
	userID, _ := app.SessionUser(c)
	var in struct {
		Name  string `json:"name" binding:"required"`
		Color string `json:"color"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, app.H{"error": "tag name is required"})
		return
	}
	if in.Color == "" {
		in.Color = "#3b82f6"
	}
	t := &models.Tag{
		ID:     uuid.NewString(),
		Name:   name,
		Color:  in.Color,
		UserID: userID,
	}
	if err := tc.Repo.CreateTag(c.Request.Context(), t); err != nil {
		tc.writeErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

// loadOwnTag fetches the tag and enforces ownership; foreign tags read as
// not found rather than forbidden.
func (tc *TagController) loadOwnTag(c *gin.Context) (*models.Tag, bool) {
	userID, _ := app.SessionUser(c)
	t, err := tc.Repo.FindTagByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		tc.writeErr(c, err)
		return nil, false
	}
	if t.UserID != userID {
		c.JSON(http.StatusNotFound, app.H{"error": "not found"})
		return nil, false
	}
	return t, true
}

// PUT /api/tags/:id
func (tc *TagController) UpdateTag(c *gin.Context) {
	t, ok := tc.loadOwnTag(c)
	if !ok {
		return
	}
	var in struct {
		Name  *string `json:"name"`
		Color *string `json:"color"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	fields := map[string]interface{}{}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			c.JSON(http.StatusBadRequest, app.H{"error": "tag name is required"})
			return
		}
		fields["name"] = name
	}
	if in.Color != nil {
		fields["color"] = *in.Color
	}
	if err := tc.Repo.UpdateTag(c.Request.Context(), t.ID, fields); err != nil {
		tc.writeErr(c, err)
		return
	}
	updated, err := tc.Repo.FindTagByID(c.Request.Context(), t.ID)
	if err != nil {
		tc.writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DELETE /api/tags/:id
func (tc *TagController) DeleteTag(c *gin.Context) {
	t, ok := tc.loadOwnTag(c)
	if !ok {
		return
	}
	if err := tc.Repo.DeleteTag(c.Request.Context(), t.ID); err != nil {
		tc.writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"ok": true})
}

// GET /api/tags/:id/memos
func (tc *TagController) ListTagMemos(c *gin.Context) {
	t, ok := tc.loadOwnTag(c)
	if !ok {
		return
	}
	memos, err := tc.Repo.ListTagMemos(c.Request.Context(), t.ID, t.UserID)
	if err != nil {
		tc.writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"tag": t, "memos": memos})
}
