// controllers/srv.go
package controllers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"memoflow/ai"
	"memoflow/app"
	"memoflow/db"
	"memoflow/invites"
	"memoflow/search"
	"memoflow/session"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Srv struct {
	Repo      *db.Repo
	AppSess   *session.AppSessionStore
	Search    *search.Store
	AI        *ai.Client
	Log       *zap.SugaredLogger
	WebOrigin string
	Cfg       app.Config
}

func GetSrv(a *app.App) *Srv {
	return &Srv{
		Repo:      db.NewRepo(a.DB),
		AppSess:   a.AppSessions(),
		Search:    search.NewStore(a.RDB, 90*24*time.Hour),
		AI:        a.AI,
		Log:       a.Log,
		WebOrigin: a.Config.WebOrigin,
		Cfg:       a.Config,
	}
}

// --- helpers ---

// 统一设置业务会话 Cookie
func (s *Srv) setAppCookie(w http.ResponseWriter, sessionID string, maxAge time.Duration) {
	secure := strings.HasPrefix(s.WebOrigin, "https://")
	http.SetCookie(w, &http.Cookie{
		Name:     app.AppSessionCookie,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   secure,
		MaxAge:   int(maxAge / time.Second),
	})
}

func (s *Srv) issueSession(ctx context.Context, w http.ResponseWriter, userID, email string) error {
	id := uuid.NewString()
	if err := s.AppSess.Create(ctx, id, userID, email); err != nil {
		return err
	}
	s.setAppCookie(w, id, s.Cfg.SessionTTL)
	return nil
}

// writeErr maps the repo/workflow sentinel errors onto stable statuses.
// Anything unmatched is an internal fault.
func (s *Srv) writeErr(c *gin.Context, err error) {
	switch {
	case db.IsNotFound(err):
		c.JSON(http.StatusNotFound, app.H{"error": "not found"})
	case errors.Is(err, invites.ErrExpired):
		c.JSON(http.StatusGone, app.H{"error": err.Error()})
	case errors.Is(err, invites.ErrNotInviter):
		c.JSON(http.StatusForbidden, app.H{"error": err.Error()})
	case errors.Is(err, invites.ErrAlreadyProcessed),
		errors.Is(err, invites.ErrAlreadyMember),
		errors.Is(err, db.ErrDuplicateInvite),
		errors.Is(err, db.ErrAlreadyTeamMember),
		errors.Is(err, db.ErrLastOwner),
		errors.Is(err, db.ErrTeamNameTaken),
		errors.Is(err, db.ErrTagNameTaken),
		errors.Is(err, db.ErrEmailTaken):
		c.JSON(http.StatusConflict, app.H{"error": err.Error()})
	case errors.Is(err, ai.ErrUnavailable):
		c.JSON(http.StatusServiceUnavailable, app.H{"error": "ai service unavailable"})
	default:
		s.Log.Errorw("request failed", "path", c.FullPath(), "err", err)
		c.JSON(http.StatusInternalServerError, app.H{"error": "internal error"})
	}
}
