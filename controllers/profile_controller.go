package controllers

import (
	"net/http"
	"strings"

	"memoflow/app"

	"github.com/gin-gonic/gin"
)

type ProfileController struct{ *Srv }

func NewProfileController(s *Srv) *ProfileController { return &ProfileController{Srv: s} }

// GET /api/user/profile
func (pc *ProfileController) GetProfile(c *gin.Context) {
	userID, _ := app.SessionUser(c)
	u, err := pc.Repo.FindUserByID(c.Request.Context(), userID)
	if err != nil {
		pc.writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"user": u})
}

// PUT /api/user/profile: name and avatar only; email is fixed identity.
func (pc *ProfileController) UpdateProfile(c *gin.Context) {
	userID, _ := app.SessionUser(c)
	var in struct {
		Name   *string `json:"name"`
		Avatar *string `json:"avatar"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	fields := map[string]interface{}{}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			c.JSON(http.StatusBadRequest, app.H{"error": "name is required"})
			return
		}
		fields["name"] = name
	}
	if in.Avatar != nil {
		fields["avatar"] = *in.Avatar
	}
	if len(fields) > 0 {
		if err := pc.Repo.UpdateUserProfile(c.Request.Context(), userID, fields); err != nil {
			pc.writeErr(c, err)
			return
		}
	}
	u, err := pc.Repo.FindUserByID(c.Request.Context(), userID)
	if err != nil {
		pc.writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"user": u})
}
