package controllers

import (
	"net/http"
	"strings"

	"memoflow/app"
	"memoflow/models"
	"memoflow/permissions"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TeamController struct{ *Srv }

func NewTeamController(s *Srv) *TeamController { return &TeamController{Srv: s} }

// membership resolves the caller's role on a team. A missing membership
// comes back as the empty role, which evaluates to no capabilities.
func (s *Srv) membership(c *gin.Context, teamID string) (permissions.Role, *models.TeamMember) {
	userID, _ := app.SessionUser(c)
	m, err := s.Repo.FindMembership(c.Request.Context(), teamID, userID)
	if err != nil {
		return "", nil
	}
	return permissions.Role(m.Role), m
}

// requireCapability loads the caller's membership and denies unless the
// selected capability is set.
func (s *Srv) requireCapability(c *gin.Context, teamID string, pick func(permissions.Capabilities) bool) (permissions.Role, bool) {
	role, _ := s.membership(c, teamID)
	if !pick(permissions.Of(role)) {
		c.JSON(http.StatusForbidden, app.H{"error": "permission denied"})
		return role, false
	}
	return role, true
}

// GET /api/teams
func (tc *TeamController) ListTeams(c *gin.Context) {
	userID, _ := app.SessionUser(c)
	userTeams, err := tc.Repo.ListUserTeams(c.Request.Context(), userID)
	if err != nil {
		tc.writeErr(c, err)
		return
	}
	out := make([]app.H, 0, len(userTeams))
	for _, ut := range userTeams {
		members, err := tc.Repo.ListTeamMembers(c.Request.Context(), ut.Team.ID)
		if err != nil {
			tc.writeErr(c, err)
			return
		}
		memoCount, err := tc.Repo.CountTeamMemos(c.Request.Context(), ut.Team.ID)
		if err != nil {
			tc.writeErr(c, err)
			return
		}
		out = append(out, app.H{
			"team":            ut.Team,
			"members":         members,
			"memoCount":       memoCount,
			"currentUserRole": ut.Role,
		})
	}
	c.JSON(http.StatusOK, app.H{"teams": out})
}

// POST /api/teams
func (tc *TeamController) CreateTeam(c *gin.Context) {
	userID, _ := app.SessionUser(c)
	var in struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, app.H{"error": "team name is required"})
		return
	}
	t := &models.Team{
		ID:          uuid.NewString(),
		Name:        name,
		Description: strings.TrimSpace(in.Description),
	}
	if err := tc.Repo.CreateTeam(c.Request.Context(), t, userID); err != nil {
		tc.writeErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, app.H{"team": t})
}

// GET /api/teams/:id
func (tc *TeamController) GetTeam(c *gin.Context) {
	teamID := c.Param("id")
	t, err := tc.Repo.FindTeamByID(c.Request.Context(), teamID)
	if err != nil {
		tc.writeErr(c, err)
		return
	}
	role, ok := tc.requireCapability(c, teamID, func(p permissions.Capabilities) bool { return p.CanViewTeam })
	if !ok {
		return
	}
	members, err := tc.Repo.ListTeamMembers(c.Request.Context(), teamID)
	if err != nil {
		tc.writeErr(c, err)
		return
	}
	memoCount, err := tc.Repo.CountTeamMemos(c.Request.Context(), teamID)
	if err != nil {
		tc.writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"team": app.H{
		"id":              t.ID,
		"name":            t.Name,
		"description":     t.Description,
		"createdAt":       t.CreatedAt,
		"updatedAt":       t.UpdatedAt,
		"members":         members,
		"memoCount":       memoCount,
		"currentUserRole": role,
	}})
}

// PUT /api/teams/:id
func (tc *TeamController) UpdateTeam(c *gin.Context) {
	teamID := c.Param("id")
	if _, ok := tc.requireCapability(c, teamID, func(p permissions.Capabilities) bool { return p.CanEditTeam }); !ok {
		return
	}
	var in struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	fields := map[string]interface{}{}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			c.JSON(http.StatusBadRequest, app.H{"error": "team name is required"})
			return
		}
		fields["name"] = name
	}
	if in.Description != nil {
		fields["description"] = strings.TrimSpace(*in.Description)
	}
	if err := tc.Repo.UpdateTeam(c.Request.Context(), teamID, fields); err != nil {
		tc.writeErr(c, err)
		return
	}
	t, err := tc.Repo.FindTeamByID(c.Request.Context(), teamID)
	if err != nil {
		tc.writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"team": t})
}

// DELETE /api/teams/:id
func (tc *TeamController) DeleteTeam(c *gin.Context) {
	teamID := c.Param("id")
	if _, ok := tc.requireCapability(c, teamID, func(p permissions.Capabilities) bool { return p.CanDeleteTeam }); !ok {
		return
	}
	if err := tc.Repo.DeleteTeam(c.Request.Context(), teamID); err != nil {
		tc.writeErr(c, err)
		return
	}
	tc.Log.Infow("team deleted", "teamID", teamID)
	c.JSON(http.StatusOK, app.H{"ok": true})
}
