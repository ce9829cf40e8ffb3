package dashboard

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

// Gate sends anonymous visitors of /dashboard to /login and signed-in
// visitors of /login to /dashboard. No response is cacheable.
func Gate() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")

		path := c.Request.URL.Path
		signedIn := tokenFrom(c) != ""

		switch {
		case isDashboardPath(path) && !signedIn:
			c.Redirect(http.StatusFound, "/login?next="+url.QueryEscape(path))
			c.Abort()
		case path == "/login" && signedIn && c.Request.Method == http.MethodGet:
			c.Redirect(http.StatusFound, "/dashboard")
			c.Abort()
		default:
			c.Next()
		}
	}
}

func isDashboardPath(p string) bool {
	return p == "/dashboard" || strings.HasPrefix(p, "/dashboard/")
}

// safeNext only allows redirects back into the dashboard.
func safeNext(next string) string {
	if isDashboardPath(next) {
		return next
	}
	return "/dashboard"
}
