package controllers

import (
	"net/http"
	"time"

	"memoflow/app"
	"memoflow/db"
	"memoflow/invites"
	"memoflow/permissions"

	"github.com/gin-gonic/gin"
)

type InviteController struct{ *Srv }

func NewInviteController(s *Srv) *InviteController { return &InviteController{Srv: s} }

// POST /api/teams/:id/invitations
func (ic *InviteController) CreateInvitation(c *gin.Context) {
	teamID := c.Param("id")
	userID, _ := app.SessionUser(c)

	var in struct {
		Email string `json:"email" binding:"required,email"`
		Role  string `json:"role"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	if in.Role == "" {
		in.Role = string(permissions.RoleMember)
	}
	role := permissions.Role(in.Role)
	if !role.Valid() {
		c.JSON(http.StatusBadRequest, app.H{"error": "invalid role"})
		return
	}

	actorRole, _ := ic.membership(c, teamID)
	if !permissions.Of(actorRole).CanInviteMembers {
		c.JSON(http.StatusForbidden, app.H{"error": "permission denied"})
		return
	}
	// admins may not grant owner
	if !permissions.CanInviteRole(actorRole, role) {
		c.JSON(http.StatusForbidden, app.H{"error": "cannot invite with that role"})
		return
	}

	inv := db.NewInvitation(teamID, in.Email, role, userID)
	if err := ic.Repo.CreateInvitation(c.Request.Context(), inv); err != nil {
		ic.writeErr(c, err)
		return
	}
	ic.Log.Infow("invitation created", "teamID", teamID, "invitationID", inv.ID)
	c.JSON(http.StatusCreated, app.H{
		"invitation": inv,
		"token":      inv.Token,
		"link":       ic.WebOrigin + "/invitations/" + inv.Token,
	})
}

// GET /api/teams/:id/invitations
func (ic *InviteController) ListTeamInvitations(c *gin.Context) {
	teamID := c.Param("id")
	if _, ok := ic.requireCapability(c, teamID, func(p permissions.Capabilities) bool { return p.CanInviteMembers }); !ok {
		return
	}
	// lazy sweep keeps the listing consistent; accept/decline check expiry
	// on their own either way
	if _, err := ic.Repo.CleanupExpiredInvitations(c.Request.Context()); err != nil {
		ic.writeErr(c, err)
		return
	}
	out, err := ic.Repo.ListTeamInvitations(c.Request.Context(), teamID)
	if err != nil {
		ic.writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"invitations": out})
}

// GET /api/invitations: the caller's inbox, keyed by session email.
func (ic *InviteController) ListMyInvitations(c *gin.Context) {
	_, email := app.SessionUser(c)
	if _, err := ic.Repo.CleanupExpiredInvitations(c.Request.Context()); err != nil {
		ic.writeErr(c, err)
		return
	}
	out, err := ic.Repo.ListInvitationsByEmail(c.Request.Context(), email)
	if err != nil {
		ic.writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"invitations": out})
}

// GET /api/invitations/:token. Token-only read, no session required.
// Possession of the token authorizes reading this one record.
func (ic *InviteController) GetInvitation(c *gin.Context) {
	inv, err := ic.Repo.FindInvitationByToken(c.Request.Context(), c.Param("token"))
	if err != nil {
		ic.writeErr(c, err)
		return
	}
	if inv.Status != invites.StatusPending {
		c.JSON(http.StatusConflict, app.H{"error": "invitation already processed"})
		return
	}
	if !inv.ExpiresAt.After(time.Now().UTC()) {
		c.JSON(http.StatusGone, app.H{"error": "invitation expired"})
		return
	}
	c.JSON(http.StatusOK, app.H{"invitation": inv})
}

// POST /api/invitations/:token: body {"action": "accept" | "decline"}.
// Accept needs a session; decline works on the token alone.
func (ic *InviteController) ActOnInvitation(c *gin.Context) {
	token := c.Param("token")
	var in struct {
		Action string `json:"action" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	switch in.Action {
	case "accept":
		userID, _ := app.SessionUser(c)
		if userID == "" {
			c.JSON(http.StatusUnauthorized, app.H{"error": "authentication required"})
			return
		}
		inv, err := ic.Repo.AcceptInvitation(c.Request.Context(), token, userID)
		if err != nil {
			ic.writeErr(c, err)
			return
		}
		ic.Log.Infow("invitation accepted", "invitationID", inv.ID, "teamID", inv.TeamID)
		c.JSON(http.StatusOK, app.H{"invitation": inv})
	case "decline":
		inv, err := ic.Repo.DeclineInvitation(c.Request.Context(), token)
		if err != nil {
			ic.writeErr(c, err)
			return
		}
		c.JSON(http.StatusOK, app.H{"invitation": inv})
	default:
		c.JSON(http.StatusBadRequest, app.H{"error": "action must be accept or decline"})
	}
}

// DELETE /api/teams/:id/invitations/:invitationId: inviter-only cancel.
func (ic *InviteController) CancelInvitation(c *gin.Context) {
	userID, _ := app.SessionUser(c)
	if err := ic.Repo.CancelInvitation(c.Request.Context(), c.Param("invitationId"), userID); err != nil {
		ic.writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"ok": true})
}
