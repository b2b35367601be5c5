package controllers

import (
	"net/http"
	"strconv"
	"time"

	"memoflow/app"
	"memoflow/db"
	"memoflow/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MemoController struct{ *Srv }

func NewMemoController(s *Srv) *MemoController { return &MemoController{Srv: s} }

// GET /api/memos?search=&tagId=&startDate=&endDate=&sortBy=&sortOrder=&page=&limit=
func (mc *MemoController) ListMemos(c *gin.Context) {
	userID, _ := app.SessionUser(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	q := db.MemoQuery{
		Search:    c.Query("search"),
		TagIDs:    c.QueryArray("tagId"),
		SortBy:    c.DefaultQuery("sortBy", "updatedAt"),
		SortOrder: c.DefaultQuery("sortOrder", "desc"),
		Page:      page,
		Size:      size,
	}
	if v := c.Query("startDate"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			q.StartDate = &t
		}
	}
	if v := c.Query("endDate"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			q.EndDate = &t
		}
	}
	q.Normalize()

	res, err := mc.Repo.ListMemos(c.Request.Context(), userID, q)
	if err != nil {
		mc.writeErr(c, err)
		return
	}
	pages := (res.Total + int64(q.Size) - 1) / int64(q.Size)
	c.JSON(http.StatusOK, app.H{
		"memos": res.Memos,
		"pagination": app.H{
			"total": res.Total,
			"pages": pages,
			"page":  q.Page,
			"limit": q.Size,
		},
	})
}

// POST /api/memos
func (mc *MemoController) CreateMemo(c *gin.Context) {
	userID, _ := app.SessionUser(c)
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
		IsPublic: in.IsPublic,
	}
	if err := mc.Repo.CreateMemo(c.Request.Context(), m, in.TagIDs); err != nil {
		mc.writeErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

// GET /api/memos/:id
func (mc *MemoController) GetMemo(c *gin.Context) {
	userID, _ := app.SessionUser(c)
	m, err := mc.Repo.FindMemoByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		mc.writeErr(c, err)
		return
	}
	if m.UserID != userID {
		c.JSON(http.StatusNotFound, app.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, m)
}

// PUT /api/memos/:id
func (mc *MemoController) UpdateMemo(c *gin.Context) {
	userID, _ := app.SessionUser(c)
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
	m, err := mc.Repo.FindMemoByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		mc.writeErr(c, err)
		return
	}
	if m.UserID != userID {
		c.JSON(http.StatusNotFound, app.H{"error": "not found"})
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
	if err := mc.Repo.UpdateMemo(c.Request.Context(), m.ID, fields, in.TagIDs); err != nil {
		mc.writeErr(c, err)
		return
	}
	updated, err := mc.Repo.FindMemoByID(c.Request.Context(), m.ID)
	if err != nil {
		mc.writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DELETE /api/memos/:id
func (mc *MemoController) DeleteMemo(c *gin.Context) {
	userID, _ := app.SessionUser(c)
	m, err := mc.Repo.FindMemoByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		mc.writeErr(c, err)
		return
	}
	if m.UserID != userID {
		c.JSON(http.StatusNotFound, app.H{"error": "not found"})
		return
	}
	if err := mc.Repo.DeleteMemo(c.Request.Context(), m.ID); err != nil {
		mc.writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"ok": true})
}
