// Package server exposes the orchestration and content APIs over HTTP.
// Transport framing only; all decisions live in the orchestrator and
// content services.
package server

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/iakhil/phronesis/internal/bot"
	"github.com/iakhil/phronesis/internal/content"
	"github.com/iakhil/phronesis/internal/metrics"
	"github.com/iakhil/phronesis/internal/orchestrator"
)

// Router wires the gin handlers. Endpoints:
//
//	GET    /                connect with default spec, for browser testing
//	POST   /connect         provision a room and start a bot
//	GET    /status          registry snapshot
//	DELETE /bot/:pid        stop a bot by PID
//	GET    /metrics         Prometheus metrics
//	GET    /api/topics, /api/cs-subtopics
//	POST   /api/generate-content, /api/generate-curriculum, /api/generate-summary
type Router struct {
	svc           *orchestrator.Service
	content       *content.Service
	meetingDomain string
	staticDir     string
}

type Options struct {
	MeetingDomain string // base URL for the meeting_url convenience field
	StaticDir     string // optional SPA dist directory
}

func NewRouter(svc *orchestrator.Service, cs *content.Service, opts Options) *Router {
	return &Router{
		svc:           svc,
		content:       cs,
		meetingDomain: opts.MeetingDomain,
		staticDir:     opts.StaticDir,
	}
}

// Handler returns an http.Handler that can be mounted in any server/mux.
func (r *Router) Handler() http.Handler {
	g := gin.New()
	g.Use(gin.Recovery())

	g.GET("/", r.handleRoot)
	g.POST("/connect", r.handleConnect)
	g.GET("/status", r.handleStatus)
	g.DELETE("/bot/:pid", r.handleStopBot)
	g.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := g.Group("/api")
	api.GET("/topics", r.handleTopics)
	api.GET("/cs-subtopics", r.handleCSSubtopics)
	api.POST("/generate-content", r.handleGenerateContent)
	api.POST("/generate-curriculum", r.handleGenerateCurriculum)
	api.POST("/generate-summary", r.handleGenerateSummary)

	r.mountStatic(g)
	return g
}

// NewServer wraps the handler in an http.Server with sane timeouts.
func NewServer(addr string, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      120 * time.Second, // connect may block for a grace period
		IdleTimeout:       60 * time.Second,
	}
}

// --- Handlers ---

type errorResp struct {
	Detail string `json:"detail"`
}

type connectRequest struct {
	BotType string `json:"bot_type"`
	Topic   string `json:"topic"`
	Concept string `json:"concept"`
}

func (r *Router) handleConnect(c *gin.Context) {
	var req connectRequest
	// An absent body means the default spec.
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, errorResp{Detail: "invalid JSON: " + err.Error()})
		return
	}
	spec := bot.Spec{Type: bot.Type(req.BotType), Topic: req.Topic, Concept: req.Concept}
	res, err := r.svc.Connect(c.Request.Context(), spec)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResp{Detail: err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

func (r *Router) handleRoot(c *gin.Context) {
	res, err := r.svc.Connect(c.Request.Context(), bot.Spec{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResp{Detail: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"room_url":    res.RoomURL,
		"token":       res.Token,
		"bot_pid":     res.PID,
		"meeting_url": meetingURL(r.meetingDomain, res.RoomURL),
	})
}

func (r *Router) handleStatus(c *gin.Context) {
	report := r.svc.Status()
	c.JSON(http.StatusOK, gin.H{
		"status":        "running",
		"active_bots":   report.Count,
		"bot_processes": report.Bots,
	})
}

func (r *Router) handleStopBot(c *gin.Context) {
	pid, err := strconv.Atoi(c.Param("pid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResp{Detail: "invalid pid"})
		return
	}
	if err := r.svc.Stop(pid); err != nil {
		if errors.Is(err, bot.ErrNotFound) {
			c.JSON(http.StatusNotFound, errorResp{Detail: "Bot not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, errorResp{Detail: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Bot " + strconv.Itoa(pid) + " stopped"})
}

// --- Content API ---

type contentRequest struct {
	Topic string `json:"topic"`
	Type  string `json:"type"`
}

type curriculumRequest struct {
	Subtopic string `json:"subtopic"`
}

type summaryRequest struct {
	Topic string `json:"topic"`
}

func (r *Router) handleTopics(c *gin.Context) {
	c.JSON(http.StatusOK, content.Topics)
}

func (r *Router) handleCSSubtopics(c *gin.Context) {
	c.JSON(http.StatusOK, content.CSSubtopics)
}

func (r *Router) handleGenerateContent(c *gin.Context) {
	if !r.contentAvailable(c) {
		return
	}
	var req contentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResp{Detail: "invalid JSON: " + err.Error()})
		return
	}
	if req.Topic == "" {
		c.JSON(http.StatusBadRequest, errorResp{Detail: "Topic is required"})
		return
	}
	item, err := r.content.Generate(c.Request.Context(), req.Topic, req.Type)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResp{Detail: "Failed to generate content: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, item)
}

func (r *Router) handleGenerateCurriculum(c *gin.Context) {
	if !r.contentAvailable(c) {
		return
	}
	var req curriculumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResp{Detail: "invalid JSON: " + err.Error()})
		return
	}
	if req.Subtopic == "" {
		c.JSON(http.StatusBadRequest, errorResp{Detail: "Subtopic is required"})
		return
	}
	concepts, err := r.content.Curriculum(c.Request.Context(), req.Subtopic)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResp{Detail: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"subtopic": req.Subtopic, "curriculum": concepts})
}

func (r *Router) handleGenerateSummary(c *gin.Context) {
	if !r.contentAvailable(c) {
		return
	}
	var req summaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResp{Detail: "invalid JSON: " + err.Error()})
		return
	}
	if req.Topic == "" {
		c.JSON(http.StatusBadRequest, errorResp{Detail: "Topic is required"})
		return
	}
	summary, err := r.content.Summary(c.Request.Context(), req.Topic)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResp{Detail: "Failed to generate summary: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": summary, "topic": req.Topic})
}

func (r *Router) contentAvailable(c *gin.Context) bool {
	if r.content == nil || !r.content.Configured() {
		c.JSON(http.StatusInternalServerError, errorResp{
			Detail: "Content generation is not available. Please configure the Gemini API key.",
		})
		return false
	}
	return true
}
