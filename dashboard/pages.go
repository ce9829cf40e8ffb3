package dashboard

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

type column struct {
	Header string
	Key    string
}

// table layout per resource page; keys are dotted JSON paths
var tables = map[string][]column{
	"suppliers":  {{"Name", "name"}, {"Created", "createdAt"}},
	"forwarders": {{"Name", "name"}, {"Created", "createdAt"}},
	"orders": {
		{"Ref", "refNumber"}, {"Supplier", "supplier.name"}, {"Forwarder", "forwarder.name"},
		{"Status", "status"}, {"Shipment", "shipmentName"}, {"Items", "items"},
		{"Invoices", "invoices"}, {"ETA", "estimatedDeliveryDate"}, {"Created", "createdAt"},
	},
	"invoices": {
		{"Invoice", "invoiceNumber"}, {"Order", "order.refNumber"}, {"Date", "invoiceDate"},
		{"Documents", "documents"}, {"Created", "createdAt"},
	},
}

type listMeta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

type listPage struct {
	Data []map[string]any `json:"data"`
	Meta listMeta         `json:"meta"`
}

var templateFuncs = template.FuncMap{
	"cell":  cell,
	"title": func(s string) string { return strings.ToUpper(s[:1]) + s[1:] },
	"add":   func(a, b int) int { return a + b },
}

// cell renders one value of a row: arrays as their length, timestamps as dates.
func cell(row map[string]any, key string) string {
	var v any = row
	for _, part := range strings.Split(key, ".") {
		m, ok := v.(map[string]any)
		if !ok {
			return "-"
		}
		v = m[part]
	}
	switch x := v.(type) {
	case nil:
		return "-"
	case []any:
		return strconv.Itoa(len(x))
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case string:
		if len(x) >= 10 && (strings.HasSuffix(key, "At") || strings.HasSuffix(key, "Date")) {
			return x[:10]
		}
		return x
	default:
		return fmt.Sprint(x)
	}
}

// GET /login
func (s *Server) loginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login", gin.H{"Next": c.Query("next")})
}

// POST /login (form)
func (s *Server) loginSubmit(c *gin.Context) {
	next := c.PostForm("next")
	creds := map[string]string{
		"email":    strings.TrimSpace(c.PostForm("email")),
		"password": c.PostForm("password"),
	}

	var out struct {
		AccessToken string `json:"accessToken"`
	}
	err := s.Client.PostJSON(c.Request.Context(), "/auth/login", "", creds, &out)
	if err != nil {
		status, msg := pageError(err)
		c.HTML(status, "login", gin.H{"Next": next, "Email": creds["email"], "Error": msg})
		return
	}
	if err := saveToken(c, out.AccessToken); err != nil {
		log.Printf("save session: %v", err)
		c.HTML(http.StatusInternalServerError, "login", gin.H{"Next": next, "Error": "Could not start session"})
		return
	}
	c.Redirect(http.StatusFound, safeNext(next))
}

// POST /logout
func (s *Server) logoutSubmit(c *gin.Context) {
	if err := clearToken(c); err != nil {
		log.Printf("clear session: %v", err)
	}
	c.Redirect(http.StatusFound, "/login")
}

type total struct {
	Name  string
	Count int64
}

// GET /dashboard
func (s *Server) home(c *gin.Context) {
	ctx := c.Request.Context()
	token := tokenFrom(c)

	var me struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := s.Client.GetJSON(ctx, "/auth/me", token, &me); err != nil {
		s.renderError(c, err)
		return
	}

	totals := make([]total, 0, len(resources))
	for _, name := range resources {
		n, err := s.count(ctx, name, token)
		if err != nil {
			s.renderError(c, err)
			return
		}
		totals = append(totals, total{Name: name, Count: n})
	}

	c.HTML(http.StatusOK, "home", gin.H{
		"User":      me,
		"Totals":    totals,
		"Resources": resources,
	})
}

func (s *Server) count(ctx context.Context, resource, token string) (int64, error) {
	var page listPage
	if err := s.Client.GetJSON(ctx, "/"+resource+"?page=1&limit=1", token, &page); err != nil {
		return 0, err
	}
	return page.Meta.Total, nil
}

// GET /dashboard/:resource?page=&limit=&search=
func (s *Server) resourcePage(c *gin.Context) {
	name := c.Param("resource")
	cols, ok := tables[name]
	if !ok {
		c.HTML(http.StatusNotFound, "error", gin.H{"Message": "Page not found", "Resources": resources})
		return
	}

	q := url.Values{}
	q.Set("page", c.DefaultQuery("page", "1"))
	q.Set("limit", c.DefaultQuery("limit", "10"))
	search := strings.TrimSpace(c.Query("search"))
	if search != "" {
		q.Set("search", search)
	}

	var page listPage
	if err := s.Client.GetJSON(c.Request.Context(), "/"+name+"?"+q.Encode(), tokenFrom(c), &page); err != nil {
		s.renderError(c, err)
		return
	}

	c.HTML(http.StatusOK, "resource", gin.H{
		"Name":      name,
		"Columns":   cols,
		"Rows":      page.Data,
		"Meta":      page.Meta,
		"Search":    search,
		"HasPrev":   page.Meta.Page > 1,
		"HasNext":   page.Meta.Page < page.Meta.TotalPages,
		"Resources": resources,
	})
}

// renderError drops an expired session and sends the user to /login; other
// failures show the API's message with a retry link.
func (s *Server) renderError(c *gin.Context, err error) {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
		if err := clearToken(c); err != nil {
			log.Printf("clear session: %v", err)
		}
		c.Redirect(http.StatusFound, "/login?next="+url.QueryEscape(c.Request.URL.Path))
		return
	}
	status, msg := pageError(err)
	c.HTML(status, "error", gin.H{"Message": msg, "Retry": c.Request.URL.String(), "Resources": resources})
}

func pageError(err error) (int, string) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status, apiErr.Message
	}
	log.Printf("api call failed: %v", err)
	return http.StatusBadGateway, "Backend unavailable"
}
