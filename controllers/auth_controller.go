package controllers

import (
	"net/http"
	"regexp"
	"time"

	"memoflow/app"
	"memoflow/invites"
	"memoflow/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthController struct{ *Srv }

func NewAuthController(s *Srv) *AuthController { return &AuthController{Srv: s} }

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// POST /api/auth/register
func (ac *AuthController) Register(c *gin.Context) {
	var in struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	email := invites.NormalizeEmail(in.Email)
	if !emailRe.MatchString(email) {
		c.JSON(http.StatusBadRequest, app.H{"error": "invalid email address"})
		return
	}
	if len(in.Password) < 6 {
		c.JSON(http.StatusBadRequest, app.H{"error": "password must be at least 6 characters"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		ac.writeErr(c, err)
		return
	}
	u := &models.User{
		ID:       uuid.NewString(),
		Email:    email,
		Name:     in.Name,
		Password: string(hash),
	}
	if err := ac.Repo.CreateUser(c.Request.Context(), u); err != nil {
		ac.writeErr(c, err)
		return
	}
	ac.Log.Infow("user registered", "userID", u.ID)
	c.JSON(http.StatusCreated, app.H{"userId": u.ID})
}

// POST /api/auth/login
func (ac *AuthController) Login(c *gin.Context) {
	var in struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	u, err := ac.Repo.FindUserByEmail(c.Request.Context(), invites.NormalizeEmail(in.Email))
	if err != nil {
		c.JSON(http.StatusUnauthorized, app.H{"error": "invalid credentials"})
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(in.Password)) != nil {
		c.JSON(http.StatusUnauthorized, app.H{"error": "invalid credentials"})
		return
	}
	if err := ac.issueSession(c.Request.Context(), c.Writer, u.ID, u.Email); err != nil {
		ac.writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"user": u})
}

// POST /api/auth/logout
func (ac *AuthController) Logout(c *gin.Context) {
	if ck, err := c.Request.Cookie(app.AppSessionCookie); err == nil && ck.Value != "" {
		_ = ac.AppSess.Delete(c.Request.Context(), ck.Value)
	}
	ac.setAppCookie(c.Writer, "", -time.Second)
	c.JSON(http.StatusOK, app.H{"ok": true})
}

// POST /api/auth/logout-all drops every live session of the caller,
// not just the one behind the current cookie.
func (ac *AuthController) LogoutAll(c *gin.Context) {
	userID, _ := app.SessionUser(c)
	if err := ac.AppSess.RevokeAllForUser(c.Request.Context(), userID); err != nil {
		ac.writeErr(c, err)
		return
	}
	ac.setAppCookie(c.Writer, "", -time.Second)
	c.JSON(http.StatusOK, app.H{"ok": true})
}

// GET /api/auth/me
func (ac *AuthController) Me(c *gin.Context) {
	userID, _ := app.SessionUser(c)
	u, err := ac.Repo.FindUserByID(c.Request.Context(), userID)
	if err != nil {
		ac.writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"user": u})
}
