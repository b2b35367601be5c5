package controllers

import (
	"net/http"

	"memoflow/app"
	"memoflow/permissions"

	"github.com/gin-gonic/gin"
)

type MemberController struct{ *Srv }

func NewMemberController(s *Srv) *MemberController { return &MemberController{Srv: s} }

// GET /api/teams/:id/members
func (mc *MemberController) ListMembers(c *gin.Context) {
	teamID := c.Param("id")
	if _, ok := mc.requireCapability(c, teamID, func(p permissions.Capabilities) bool { return p.CanViewTeam }); !ok {
		return
	}
	members, err := mc.Repo.ListTeamMembers(c.Request.Context(), teamID)
	if err != nil {
		mc.writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"members": members})
}

// PUT /api/teams/:id/members/:memberId
func (mc *MemberController) ChangeRole(c *gin.Context) {
	teamID := c.Param("id")
	memberID := c.Param("memberId")

	var in struct {
		Role string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	newRole := permissions.Role(in.Role)
	if !newRole.Valid() {
		c.JSON(http.StatusBadRequest, app.H{"error": "invalid role"})
		return
	}

	actorRole, _ := mc.membership(c, teamID)
	if !permissions.Of(actorRole).CanChangeMemberRoles {
		c.JSON(http.StatusForbidden, app.H{"error": "permission denied"})
		return
	}
	target, err := mc.Repo.FindMemberByID(c.Request.Context(), memberID)
	if err != nil || target.TeamID != teamID {
		c.JSON(http.StatusNotFound, app.H{"error": "member not found"})
		return
	}

	// otherOwners handed as 1 here: the definitive count runs under a row
	// lock inside the repo, this call settles the role matrix.
	if !permissions.CanChangeRole(actorRole, permissions.Role(target.Role), newRole, 1) {
		c.JSON(http.StatusForbidden, app.H{"error": "permission denied"})
		return
	}
	m, err := mc.Repo.ChangeMemberRole(c.Request.Context(), teamID, memberID, newRole)
	if err != nil {
		mc.writeErr(c, err)
		return
	}
	mc.Log.Infow("member role changed", "teamID", teamID, "memberID", memberID, "role", newRole)
	c.JSON(http.StatusOK, app.H{"member": m})
}

// DELETE /api/teams/:id/members/:memberId
func (mc *MemberController) RemoveMember(c *gin.Context) {
	teamID := c.Param("id")
	memberID := c.Param("memberId")
	userID, _ := app.SessionUser(c)

	actorRole, _ := mc.membership(c, teamID)
	if actorRole == "" {
		c.JSON(http.StatusForbidden, app.H{"error": "permission denied"})
		return
	}
	target, err := mc.Repo.FindMemberByID(c.Request.Context(), memberID)
	if err != nil || target.TeamID != teamID {
		c.JSON(http.StatusNotFound, app.H{"error": "member not found"})
		return
	}

	isSelf := target.UserID == userID
	if isSelf {
		c.JSON(http.StatusBadRequest, app.H{"error": "cannot remove yourself; leave the team instead"})
		return
	}
	// otherOwners handed as 1 here: the definitive count runs inside the
	// repo transaction, this call only settles the role matrix.
	if !permissions.CanRemoveMember(actorRole, permissions.Role(target.Role), isSelf, 1) {
		c.JSON(http.StatusForbidden, app.H{"error": "permission denied"})
		return
	}

	if err := mc.Repo.RemoveMember(c.Request.Context(), teamID, memberID); err != nil {
		mc.writeErr(c, err)
		return
	}
	mc.Log.Infow("member removed", "teamID", teamID, "memberID", memberID)
	c.JSON(http.StatusOK, app.H{"ok": true})
}
