// Package api exposes the label engine over HTTP: template CRUD,
// rendering, grid computation, drift comparison, and batch documents.
package api

import (
	"context"
	"fmt"
	"image/png"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/marcos010894/innobyte-labels/internal/batch"
	"github.com/marcos010894/innobyte-labels/internal/compare"
	"github.com/marcos010894/innobyte-labels/internal/pagelayout"
	"github.com/marcos010894/innobyte-labels/internal/renderer"
	"github.com/marcos010894/innobyte-labels/internal/store"
	"github.com/marcos010894/innobyte-labels/internal/units"
	"github.com/marcos010894/innobyte-labels/internal/variables"
	"github.com/marcos010894/innobyte-labels/pkg/labelformat"
)

// Server is the API server
type Server struct {
	router   *gin.Engine
	store    *store.Store
	driver   *batch.Driver
	queue    *batch.Queue
	upgrader websocket.Upgrader
}

// NewServer creates a new API server
func NewServer(templates *store.Store, driver *batch.Driver, queue *batch.Queue) *Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.Default()
	router.Use(corsMiddleware())

	server := &Server{
		router: router,
		store:  templates,
		driver: driver,
		queue:  queue,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // The editor frontend runs on its own origin
			},
		},
	}

	server.setupRoutes()
	server.setupJobEvents()

	return server
}

func (s *Server) setupRoutes() {
	// Template CRUD
	s.router.GET("/templates", s.handleListTemplates)
	s.router.POST("/templates", s.handleCreateTemplate)
	s.router.GET("/templates/:id", s.handleGetTemplate)
	s.router.PUT("/templates/:id", s.handleUpdateTemplate)
	s.router.DELETE("/templates/:id", s.handleDeleteTemplate)

	// Engine entrypoints
	s.router.POST("/render", s.handleRender)
	s.router.POST("/grid", s.handleGrid)
	s.router.POST("/compare", s.handleCompare)
	s.router.POST("/documents", s.handleGenerateDocument)

	// Async document jobs
	s.router.POST("/jobs", s.handleCreateJob)
	s.router.GET("/jobs", s.handleListJobs)
	s.router.GET("/jobs/:id", s.handleGetJob)
	s.router.GET("/jobs/:id/document", s.handleDownloadJob)
	s.router.DELETE("/jobs/:id", s.handleCancelJob)

	// WebSocket job progress
	s.router.GET("/ws", s.handleWebSocket)

	// Health check
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}

// Run starts the HTTP server
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Handler exposes the router, for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleListTemplates(c *gin.Context) {
	c.JSON(200, gin.H{"templates": s.store.List()})
}

func (s *Server) handleCreateTemplate(c *gin.Context) {
	var tpl labelformat.Template
	if err := c.ShouldBindJSON(&tpl); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	created, err := s.store.Create(tpl)
	if err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	c.JSON(201, created)
}

func (s *Server) handleGetTemplate(c *gin.Context) {
	tpl, ok := s.store.Get(c.Param("id"))
	if !ok {
		c.JSON(404, gin.H{"error": "template not found"})
		return
	}
	c.JSON(200, tpl)
}

func (s *Server) handleUpdateTemplate(c *gin.Context) {
	var tpl labelformat.Template
	if err := c.ShouldBindJSON(&tpl); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	id := c.Param("id")
	if _, ok := s.store.Get(id); !ok {
		c.JSON(404, gin.H{"error": "template not found"})
		return
	}

	updated, err := s.store.Update(id, tpl)
	if err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	c.JSON(200, updated)
}

func (s *Server) handleDeleteTemplate(c *gin.Context) {
	if !s.store.Delete(c.Param("id")) {
		c.JSON(404, gin.H{"error": "template not found"})
		return
	}
	c.JSON(200, gin.H{"success": true})
}

type renderRequest struct {
	Template   *labelformat.Template `json:"template"`
	TemplateID string                `json:"template_id"`
	Product    *labelformat.Product  `json:"product"`
	Mode       string                `json:"mode"` // "interactive" or "print"
	Options    variables.Options     `json:"options"`
}

// resolveTemplate loads the request's template, inline or by id.
func (s *Server) resolveTemplate(c *gin.Context, tpl *labelformat.Template, id string) *labelformat.Template {
	if tpl != nil {
		if err := labelformat.Validate(tpl); err != nil {
			c.JSON(400, gin.H{"error": fmt.Sprintf("invalid template: %v", err)})
			return nil
		}
		return tpl
	}

	if id == "" {
		c.JSON(400, gin.H{"error": "template or template_id is required"})
		return nil
	}

	stored, ok := s.store.Get(id)
	if !ok {
		c.JSON(404, gin.H{"error": "template not found"})
		return nil
	}
	return stored
}

// handleRender rasterizes one label to PNG
func (s *Server) handleRender(c *gin.Context) {
	var req renderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	tpl := s.resolveTemplate(c, req.Template, req.TemplateID)
	if tpl == nil {
		return
	}

	mode := renderer.ModePrint
	if req.Mode == "interactive" {
		mode = renderer.ModeInteractive
	}

	r := renderer.New(tpl.Config)
	img, err := r.Render(tpl.Elements, mode, req.Product, req.Options)
	if err != nil {
		c.JSON(500, gin.H{"error": fmt.Sprintf("failed to render label: %v", err)})
		return
	}

	c.Header("Content-Type", "image/png")
	if err := png.Encode(c.Writer, img); err != nil {
		c.JSON(500, gin.H{"error": fmt.Sprintf("failed to encode image: %v", err)})
	}
}

type gridRequest struct {
	LabelWidth  float64                     `json:"labelWidth"`
	LabelHeight float64                     `json:"labelHeight"`
	Unit        labelformat.Unit            `json:"unit"`
	PrintConfig labelformat.PagePrintConfig `json:"printConfig"`
	Products    int                         `json:"products"`
}

// handleGrid computes the page grid and, when a product count is
// given, the placement plan.
func (s *Server) handleGrid(c *gin.Context) {
	var req gridRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	if req.LabelWidth <= 0 || req.LabelHeight <= 0 {
		c.JSON(400, gin.H{"error": "labelWidth and labelHeight must be positive"})
		return
	}

	unit := req.Unit
	if unit == "" {
		unit = labelformat.UnitMillimeter
	}

	labelW := units.ToMillimeters(req.LabelWidth, unit)
	labelH := units.ToMillimeters(req.LabelHeight, unit)

	grid := pagelayout.ComputeGrid(labelW, labelH, req.PrintConfig)

	resp := gin.H{"grid": grid}
	if req.Products > 0 {
		resp["placements"] = batch.PlacementPlan(req.Products, labelW, labelH, req.PrintConfig)
	}

	c.JSON(200, resp)
}

// handleCompare runs the edit-vs-print drift comparison
func (s *Server) handleCompare(c *gin.Context) {
	var req struct {
		Template   *labelformat.Template `json:"template"`
		TemplateID string                `json:"template_id"`
		Product    labelformat.Product   `json:"product"`
		Options    variables.Options     `json:"options"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	tpl := s.resolveTemplate(c, req.Template, req.TemplateID)
	if tpl == nil {
		return
	}

	result := compare.Compare(*tpl, req.Product, req.Options)

	c.JSON(200, gin.H{
		"result": result,
		"drift":  result.HasDrift(),
		"report": result.Report(),
	})
}

type documentRequest struct {
	Template    *labelformat.Template       `json:"template"`
	TemplateID  string                      `json:"template_id"`
	Products    []labelformat.Product       `json:"products"`
	PrintConfig labelformat.PagePrintConfig `json:"printConfig"`
	Options     variables.Options           `json:"options"`
}

// handleGenerateDocument renders the batch synchronously and streams
// the PDF back
func (s *Server) handleGenerateDocument(c *gin.Context) {
	var req documentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	tpl := s.resolveTemplate(c, req.Template, req.TemplateID)
	if tpl == nil {
		return
	}
	if len(req.Products) == 0 {
		c.JSON(400, gin.H{"error": "products is required"})
		return
	}

	doc, filename, err := s.driver.GenerateDocument(context.Background(), *tpl, req.Products, req.PrintConfig, req.Options)
	if err != nil {
		status := 500
		if err == batch.ErrEmptyTemplate {
			status = 400
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(200, "application/pdf", doc)
}

func (s *Server) handleCreateJob(c *gin.Context) {
	var req documentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	tpl := s.resolveTemplate(c, req.Template, req.TemplateID)
	if tpl == nil {
		return
	}
	if len(tpl.Elements) == 0 {
		c.JSON(400, gin.H{"error": batch.ErrEmptyTemplate.Error()})
		return
	}
	if len(req.Products) == 0 {
		c.JSON(400, gin.H{"error": "products is required"})
		return
	}

	jobID := s.queue.Enqueue(*tpl, req.Products, req.PrintConfig, req.Options)
	c.JSON(202, gin.H{"job_id": jobID})
}

func (s *Server) handleListJobs(c *gin.Context) {
	c.JSON(200, gin.H{"jobs": s.queue.List()})
}

func (s *Server) handleGetJob(c *gin.Context) {
	job, ok := s.queue.Get(c.Param("id"))
	if !ok {
		c.JSON(404, gin.H{"error": "job not found"})
		return
	}
	c.JSON(200, job)
}

func (s *Server) handleDownloadJob(c *gin.Context) {
	job, ok := s.queue.Get(c.Param("id"))
	if !ok {
		c.JSON(404, gin.H{"error": "job not found"})
		return
	}
	if job.Status != batch.JobCompleted {
		c.JSON(409, gin.H{"error": fmt.Sprintf("job is %s, not completed", job.Status)})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, job.Filename))
	c.Data(200, "application/pdf", job.Document)
}

func (s *Server) handleCancelJob(c *gin.Context) {
	if !s.queue.CancelJob(c.Param("id")) {
		c.JSON(404, gin.H{"error": "job not found or already finished"})
		return
	}
	c.JSON(200, gin.H{"success": true})
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
