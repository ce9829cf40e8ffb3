package dashboard

import (
	"embed"
	"html/template"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templateFS embed.FS

type Server struct {
	Client *Client
}

func NewServer(client *Client) *Server {
	return &Server{Client: client}
}

// Register mounts pages and the /api proxy on r. sessionSecret signs the
// session cookie.
func (s *Server) Register(r *gin.Engine, sessionSecret string, secureCookie bool) {
	r.SetHTMLTemplate(template.Must(template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")))

	r.Use(SessionMiddleware(sessionSecret, secureCookie))
	r.Use(Gate())

	r.GET("/", func(c *gin.Context) { c.Redirect(302, "/dashboard") })
	r.GET("/login", s.loginPage)
	r.POST("/login", s.loginSubmit)
	r.POST("/logout", s.logoutSubmit)
	r.GET("/dashboard", s.home)
	r.GET("/dashboard/:resource", s.resourcePage)

	api := r.Group("/api")
	{
		api.POST("/auth/login", s.apiLogin)
		api.POST("/auth/logout", s.apiLogout)
		api.GET("/auth/me", s.forward)

		for _, name := range resources {
			g := api.Group("/" + name)
			g.GET("", s.forward)
			g.POST("", s.forward)
			g.GET("/*rest", s.forward)
			g.POST("/*rest", s.forward)
			g.PATCH("/*rest", s.forward)
			g.DELETE("/*rest", s.forward)
		}
	}
}
