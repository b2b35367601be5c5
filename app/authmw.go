package app

import (
	"net/http"

	"memoflow/db"
	"memoflow/session"

	"github.com/gin-gonic/gin"
)

const AppSessionCookie = "app_session"

// AuthRequired resolves the session cookie to a (userID, email) pair and
// puts both into the gin context. Stale sessions pointing at a deleted
// user are revoked on sight.
func AuthRequired(appSess *session.AppSessionStore, repo *db.Repo) gin.HandlerFunc {
	return func(c *gin.Context) {
		ck, err := c.Request.Cookie(AppSessionCookie)
		if err != nil || ck.Value == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "authentication required"})
			return
		}
		as, err := appSess.Get(c.Request.Context(), ck.Value)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "invalid session"})
			return
		}

		u, err := repo.FindUserByID(c.Request.Context(), as.UserID)
		if err != nil {
			_ = appSess.Delete(c.Request.Context(), ck.Value)
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "authentication required"})
			return
		}
		c.Set("userID", u.ID)
		c.Set("email", u.Email)

		c.Next()
	}
}

// AuthOptional resolves the session cookie when present but lets the
// request through either way. Used on the invitation token endpoints,
// where the token itself authorizes reads and declines but accepting
// still needs a logged-in user.
func AuthOptional(appSess *session.AppSessionStore, repo *db.Repo) gin.HandlerFunc {
	return func(c *gin.Context) {
		ck, err := c.Request.Cookie(AppSessionCookie)
		if err != nil || ck.Value == "" {
			c.Next()
			return
		}
		as, err := appSess.Get(c.Request.Context(), ck.Value)
		if err != nil {
			c.Next()
			return
		}
		if u, err := repo.FindUserByID(c.Request.Context(), as.UserID); err == nil {
			c.Set("userID", u.ID)
			c.Set("email", u.Email)
		}
		c.Next()
	}
}

// SessionUser reads the identity AuthRequired stored on the context.
func SessionUser(c *gin.Context) (userID, email string) {
	if v, ok := c.Get("userID"); ok {
		userID, _ = v.(string)
	}
	if v, ok := c.Get("email"); ok {
		email, _ = v.(string)
	}
	return
}
