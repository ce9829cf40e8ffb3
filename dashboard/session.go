package dashboard

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

const (
	sessionName = "ot_session"
	tokenKey    = "access_token"
	sessionTTL  = 24 * 60 * 60
)

// SessionMiddleware keeps the session in a signed, http-only cookie.
func SessionMiddleware(secret string, secure bool) gin.HandlerFunc {
	store := cookie.NewStore([]byte(secret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   sessionTTL,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
	return sessions.Sessions(sessionName, store)
}

func tokenFrom(c *gin.Context) string {
	if v, ok := sessions.Default(c).Get(tokenKey).(string); ok {
		return v
	}
	return ""
}

func saveToken(c *gin.Context, token string) error {
	s := sessions.Default(c)
	s.Set(tokenKey, token)
	return s.Save()
}

func clearToken(c *gin.Context) error {
	s := sessions.Default(c)
	s.Delete(tokenKey)
	return s.Save()
}
