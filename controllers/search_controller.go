package controllers

import (
	"net/http"
	"strconv"

	"memoflow/app"
	"memoflow/models"

	"github.com/gin-gonic/gin"
)

type SearchController struct{ *Srv }

func NewSearchController(s *Srv) *SearchController { return &SearchController{Srv: s} }

// GET /api/search/suggestions?q=
func (sc *SearchController) Suggestions(c *gin.Context) {
	userID, _ := app.SessionUser(c)
	q := c.Query("q")
	if q == "" {
		c.JSON(http.StatusOK, app.H{"suggestions": app.H{
			"titles": []string{}, "tags": []string{}, "recentSearches": []string{},
		}})
		return
	}
	titles, err := sc.Repo.TitleSuggestions(c.Request.Context(), userID, q, 5)
	if err != nil {
		sc.writeErr(c, err)
		return
	}
	tagNames, err := sc.Repo.TagSuggestions(c.Request.Context(), userID, q, 5)
	if err != nil {
		sc.writeErr(c, err)
		return
	}
	recent, err := sc.Search.Suggest(c.Request.Context(), userID, q, 5)
	if err != nil {
		sc.writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"suggestions": app.H{
		"titles":         titles,
		"tags":           tagNames,
		"recentSearches": recent,
	}})
}

// POST /api/search/log
func (sc *SearchController) LogSearch(c *gin.Context) {
	userID, _ := app.SessionUser(c)
	var in struct {
		Query       string `json:"query" binding:"required"`
		SearchType  string `json:"searchType" binding:"required"`
		ResultCount int    `json:"resultCount"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	log := &models.SearchLog{
		UserID:      userID,
		Query:       in.Query,
		SearchType:  in.SearchType,
		ResultCount: in.ResultCount,
	}
	if err := sc.Repo.LogSearch(c.Request.Context(), log); err != nil {
		sc.writeErr(c, err)
		return
	}
	// history in Redis drives autocomplete; failure there is not fatal
	if err := sc.Search.RecordSearch(c.Request.Context(), userID, in.Query, in.ResultCount); err != nil {
		sc.Log.Warnw("record search history", "err", err)
	}
	c.JSON(http.StatusOK, app.H{"ok": true})
}

// GET /api/search/log?limit= returns the caller's most-run queries.
func (sc *SearchController) PopularSearches(c *gin.Context) {
	userID, _ := app.SessionUser(c)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	out, err := sc.Repo.PopularSearches(c.Request.Context(), userID, limit)
	if err != nil {
		sc.writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"popular": out})
}

// GET /api/search/history
func (sc *SearchController) History(c *gin.Context) {
	userID, _ := app.SessionUser(c)
	items, err := sc.Search.History(c.Request.Context(), userID)
	if err != nil {
		sc.writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"history": items})
}

// DELETE /api/search/history
func (sc *SearchController) ClearHistory(c *gin.Context) {
	userID, _ := app.SessionUser(c)
	if err := sc.Search.ClearHistory(c.Request.Context(), userID); err != nil {
		sc.writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"ok": true})
}

// GET /api/search/favorites
func (sc *SearchController) ListFavorites(c *gin.Context) {
	userID, _ := app.SessionUser(c)
	favs, err := sc.Search.Favorites(c.Request.Context(), userID)
	if err != nil {
		sc.writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"favorites": favs})
}

// POST /api/search/favorites
func (sc *SearchController) AddFavorite(c *gin.Context) {
	userID, _ := app.SessionUser(c)
	var in struct {
		Name  string `json:"name" binding:"required"`
		Query string `json:"query" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	fav, err := sc.Search.AddFavorite(c.Request.Context(), userID, in.Name, in.Query)
	if err != nil {
		sc.writeErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, fav)
}

// DELETE /api/search/favorites/:id
func (sc *SearchController) RemoveFavorite(c *gin.Context) {
	userID, _ := app.SessionUser(c)
	if err := sc.Search.RemoveFavorite(c.Request.Context(), userID, c.Param("id")); err != nil {
		sc.writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"ok": true})
}
