// File: internal/middleware/session.go
package middleware

import (
	"net/http"
	"regexp"

	"mottars_backend/internal/common"
	"mottars_backend/internal/config"
	"mottars_backend/internal/domain"
	"mottars_backend/internal/platform/crypto"
	"mottars_backend/internal/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var sessionIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{16,128}$`)

// SessionResolver attaches a session id to every request. The id comes from
// the X-Session-ID header or the session cookie; a new one is minted when
// neither carries a well-formed id. The id is echoed back in both places.
func SessionResolver(cfg *config.Config, logger *zap.Logger) gin.HandlerFunc {
	maxAge := int(cfg.SessionTTL.Seconds())
	return func(c *gin.Context) {
		sid := c.GetHeader(common.SessionIDHeader)
		if sid == "" {
			if cookie, err := c.Cookie(cfg.SessionCookieName); err == nil {
				sid = cookie
			}
		}
		if !sessionIDPattern.MatchString(sid) {
			fresh, err := crypto.NewSessionID()
			if err != nil {
				logger.Error("Failed to generate session id", zap.Error(err))
				common.RespondWithError(c, common.ErrInternalServer)
				return
			}
			sid = fresh
		}

		c.Set(common.SessionIDKey, sid)
		c.Header(common.SessionIDHeader, sid)
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(cfg.SessionCookieName, sid, maxAge, "/", "", cfg.SessionCookieSecure, true)
		c.Next()
	}
}

// RequireAuth rejects requests whose session is not authenticated, pointing
// the client at the sign-in route. The store is read on every request.
func RequireAuth(sessions session.Service, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := common.GetSessionIDFromContext(c)
		if sid == "" {
			logger.Error("RequireAuth used without SessionResolver")
			common.RespondWithError(c, common.ErrInternalServer)
			return
		}
		sess, err := sessions.GetSession(c.Request.Context(), sid)
		if err != nil {
			common.RespondWithError(c, err)
			return
		}
		if !sess.IsAuthenticated {
			common.RespondWithError(c, SignInRequired())
			return
		}
		c.Set(common.SessionKey, sess)
		c.Next()
	}
}

// SignInRequired is the error returned whenever an action needs a signed-in session.
func SignInRequired() *common.APIError {
	return common.ErrSignInRequired.WithDetails(common.RedirectDetails{
		Redirect: domain.RouteLogin,
		Label:    "Sign In",
	})
}

// GetSessionFromContext returns the session loaded by RequireAuth, or nil.
func GetSessionFromContext(c *gin.Context) *session.Session {
	val, exists := c.Get(common.SessionKey)
	if !exists {
		return nil
	}
	sess, ok := val.(*session.Session)
	if !ok {
		return nil
	}
	return sess
}
