package server

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// mountStatic serves the built frontend when a dist directory is
// configured. Unknown /api paths stay 404; everything else falls back to
// index.html for client-side routing.
func (r *Router) mountStatic(g *gin.Engine) {
	if r.staticDir == "" {
		return
	}
	assets := filepath.Join(r.staticDir, "assets")
	if fi, err := os.Stat(assets); err == nil && fi.IsDir() {
		g.Static("/assets", assets)
	}
	index := filepath.Join(r.staticDir, "index.html")
	g.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, errorResp{Detail: "API endpoint not found"})
			return
		}
		if _, err := os.Stat(index); err != nil {
			c.JSON(http.StatusInternalServerError, errorResp{Detail: "Frontend build not found"})
			return
		}
		c.File(index)
	})
}

// meetingURL builds the browser-facing meeting link from the room URL's
// last path segment.
func meetingURL(domain, roomURL string) string {
	if domain == "" {
		return roomURL
	}
	trimmed := strings.TrimRight(roomURL, "/")
	name := trimmed
	if i := strings.LastIndexByte(trimmed, '/'); i >= 0 {
		name = trimmed[i+1:]
	}
	return strings.TrimRight(domain, "/") + "/" + name
}
