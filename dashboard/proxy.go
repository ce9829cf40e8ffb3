package dashboard

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const maxProxyBody = 32 << 20

// resources mirrored under /api
var resources = []string{"suppliers", "forwarders", "orders", "invoices"}

func unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
}

// POST /api/auth/login
func (s *Server) apiLogin(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxProxyBody))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	res, err := s.Client.Do(c.Request.Context(), Request{
		Method:      http.MethodPost,
		Path:        "/auth/login",
		Body:        body,
		ContentType: "application/json",
	})
	if err != nil {
		backendDown(c, err)
		return
	}
	if res.Status != http.StatusOK && res.Status != http.StatusCreated {
		passThrough(c, res)
		return
	}

	var out struct {
		AccessToken string `json:"accessToken"`
	}
	if err := json.Unmarshal(res.Body, &out); err != nil || out.AccessToken == "" {
		backendDown(c, err)
		return
	}
	if err := saveToken(c, out.AccessToken); err != nil {
		backendDown(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// POST /api/auth/logout
func (s *Server) apiLogout(c *gin.Context) {
	if err := clearToken(c); err != nil {
		log.Printf("clear session: %v", err)
	}
	c.Status(http.StatusNoContent)
}

// forward mirrors /api/<path> onto the API at /<path> with the session token
// as bearer. Status and body come back unchanged.
func (s *Server) forward(c *gin.Context) {
	token := tokenFrom(c)
	if token == "" {
		unauthorized(c)
		return
	}

	path := strings.TrimPrefix(c.Request.URL.Path, "/api")
	if c.Request.URL.RawQuery != "" {
		path += "?" + c.Request.URL.RawQuery
	}

	var body []byte
	if c.Request.Body != nil && c.Request.Method != http.MethodGet {
		b, err := io.ReadAll(io.LimitReader(c.Request.Body, maxProxyBody))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
			return
		}
		body = b
	}

	req := Request{
		Method:      c.Request.Method,
		Path:        path,
		Token:       token,
		Body:        body,
		ContentType: c.GetHeader("Content-Type"),
	}
	// the orders list is the one call that rides out a transient failure
	if c.Request.Method == http.MethodGet && c.Request.URL.Path == "/api/orders" {
		req.Retries = 1
	}

	res, err := s.Client.Do(c.Request.Context(), req)
	if err != nil {
		backendDown(c, err)
		return
	}
	passThrough(c, res)
}

func passThrough(c *gin.Context, res *Response) {
	if len(res.Body) == 0 {
		c.Status(res.Status)
		return
	}
	ct := res.ContentType
	if ct == "" {
		ct = "application/json; charset=utf-8"
	}
	c.Data(res.Status, ct, res.Body)
}

func backendDown(c *gin.Context, err error) {
	log.Printf("%s %s: api call failed: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusBadGateway, gin.H{"message": "Backend unavailable"})
}
