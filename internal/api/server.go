// Package api exposes the rendering engine over HTTP and WebSocket
package api

import (
	"encoding/json"
	"fmt"
	"image/png"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/receiptlab/receipt-designer/internal/command"
	"github.com/receiptlab/receipt-designer/internal/preview"
	"github.com/receiptlab/receipt-designer/internal/printer"
	"github.com/receiptlab/receipt-designer/internal/render"
	"github.com/receiptlab/receipt-designer/pkg/receipt"
)

// Server is the API server.
type Server struct {
	router   *gin.Engine
	pool     *printer.ConnectionPool
	queue    *printer.Queue
	executor *command.Executor
	upgrader websocket.Upgrader
	logger   *zap.Logger
	cfg      Config
}

// Config holds the server's runtime settings.
type Config struct {
	AllowOrigins []string
	PaperWidth   string
}

// NewServer creates the API server.
func NewServer(pool *printer.ConnectionPool, queue *printer.Queue, cfg Config, logger *zap.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())

	corsCfg := cors.DefaultConfig()
	if len(cfg.AllowOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.AllowOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowHeaders = []string{"Content-Type", "Authorization"}
	router.Use(cors.New(corsCfg))

	server := &Server{
		router:   router,
		pool:     pool,
		queue:    queue,
		executor: command.NewExecutor(),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		logger: logger,
		cfg:    cfg,
	}

	server.setupRoutes()

	return server
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	s.router.GET("/template/default", s.handleDefaultTemplate)

	s.router.POST("/render/html", s.handleRenderHTML)
	s.router.POST("/render/escpos", s.handleRenderESCPOS)
	s.router.POST("/render/preview", s.handleRenderPreview)

	s.router.POST("/print", s.handlePrint)
	s.router.GET("/jobs", s.handleGetJobs)
	s.router.GET("/job/:id", s.handleGetJob)

	s.router.POST("/command", s.handleCommand)

	s.router.GET("/ws", s.handleWebSocket)
}

type renderRequest struct {
	Template json.RawMessage      `json:"template" binding:"required"`
	Data     *receipt.PreviewData `json:"data"`
}

// parseRenderRequest decodes a request carrying a template and
// optional preview data. Templates go through receipt.Parse so both
// transport nestings are accepted; absent data falls back to the
// sample record so a bare designer request still previews something.
func parseRenderRequest(c *gin.Context) (*receipt.Template, receipt.PreviewData, bool) {
	var req renderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return nil, receipt.PreviewData{}, false
	}

	t, err := receipt.Parse(req.Template)
	if err != nil {
		c.JSON(400, gin.H{"error": fmt.Sprintf("invalid template: %v", err)})
		return nil, receipt.PreviewData{}, false
	}

	data := receipt.SamplePreviewData()
	if req.Data != nil {
		data = *req.Data
	}

	return t, data, true
}

func (s *Server) handleDefaultTemplate(c *gin.Context) {
	c.JSON(200, receipt.DefaultTemplate())
}

func (s *Server) handleRenderHTML(c *gin.Context) {
	t, data, ok := parseRenderRequest(c)
	if !ok {
		return
	}

	doc := render.HTML(*t, data)
	c.Data(200, "text/html; charset=utf-8", []byte(doc))
}

func (s *Server) handleRenderESCPOS(c *gin.Context) {
	t, data, ok := parseRenderRequest(c)
	if !ok {
		return
	}

	payload := printer.NewGenerator().Generate(*t, data)

	filename := c.Query("filename")
	if filename == "" {
		filename = printer.DefaultDownloadName()
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(200, "application/octet-stream", payload)
}

func (s *Server) handleRenderPreview(c *gin.Context) {
	t, data, ok := parseRenderRequest(c)
	if !ok {
		return
	}

	img := preview.New(s.paperWidth(t)).Render(*t, data)

	c.Status(200)
	c.Header("Content-Type", "image/png")
	if err := png.Encode(c.Writer, img); err != nil {
		s.logger.Warn("failed to encode preview", zap.Error(err))
	}
}

// paperWidth picks the render width: the template's own receiptWidth
// when set, else the server's configured default.
func (s *Server) paperWidth(t *receipt.Template) string {
	if w := t.Style.Styles.ReceiptWidth; w != "" {
		return w
	}
	return s.cfg.PaperWidth
}

func (s *Server) handlePrint(c *gin.Context) {
	var req struct {
		Template json.RawMessage      `json:"template" binding:"required"`
		Data     *receipt.PreviewData `json:"data"`
		Printer  printer.Destination  `json:"printer" binding:"required"`
		Raster   bool                 `json:"raster"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	t, err := receipt.Parse(req.Template)
	if err != nil {
		c.JSON(400, gin.H{"error": fmt.Sprintf("invalid template: %v", err)})
		return
	}

	if err := receipt.Validate(t); err != nil {
		c.JSON(400, gin.H{"error": fmt.Sprintf("invalid template: %v", err)})
		return
	}

	data := receipt.SamplePreviewData()
	if req.Data != nil {
		data = *req.Data
	}

	var payload []byte
	if req.Raster {
		// Raster mode prints the pixel-exact preview image instead of
		// the text command stream.
		img := preview.New(s.paperWidth(t)).Render(*t, data)
		payload = printer.EncodeImage(img)
	} else {
		payload = printer.NewGenerator().Generate(*t, data)
	}

	jobID := s.queue.Enqueue(req.Printer, payload)

	s.logger.Info("print job enqueued",
		zap.String("job_id", jobID),
		zap.String("printer", req.Printer.Key()),
		zap.Int("bytes", len(payload)))

	c.JSON(200, gin.H{
		"success": true,
		"job_id":  jobID,
	})
}

func (s *Server) handleGetJobs(c *gin.Context) {
	jobs := s.queue.GetAllJobs()

	jobsData := make([]map[string]any, len(jobs))
	for i, job := range jobs {
		jobsData[i] = jobJSON(job)
	}

	c.JSON(200, gin.H{"jobs": jobsData})
}

func (s *Server) handleGetJob(c *gin.Context) {
	job := s.queue.GetJob(c.Param("id"))
	if job == nil {
		c.JSON(404, gin.H{"error": "job not found"})
		return
	}

	c.JSON(200, jobJSON(job))
}

func jobJSON(job *printer.Job) map[string]any {
	out := map[string]any{
		"id":         job.ID,
		"printer":    job.Destination.Key(),
		"status":     job.Status,
		"retries":    job.Retries,
		"created_at": job.CreatedAt,
	}
	if job.Error != nil {
		out["error"] = job.Error.Error()
	}
	return out
}

func (s *Server) handleCommand(c *gin.Context) {
	var req struct {
		Template json.RawMessage      `json:"template" binding:"required"`
		Data     *receipt.PreviewData `json:"data"`
		Command  string               `json:"command" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "template and command are required"})
		return
	}

	t, err := receipt.Parse(req.Template)
	if err != nil {
		c.JSON(400, gin.H{"error": fmt.Sprintf("invalid template: %v", err)})
		return
	}

	data := receipt.SamplePreviewData()
	if req.Data != nil {
		data = *req.Data
	}

	result := s.executor.Execute(*t, data, req.Command)

	if result.Success {
		response := gin.H{"success": true}
		if result.Message != "" {
			response["message"] = result.Message
		}
		if result.Template != nil {
			response["template"] = result.Template
		}
		for k, v := range result.Data {
			response[k] = v
		}
		c.JSON(200, response)
	} else {
		c.JSON(400, gin.H{
			"success": false,
			"error":   result.Error,
		})
	}
}

// Run starts the API server.
func (s *Server) Run(addr string) error {
	s.logger.Info("starting API server", zap.String("addr", addr))
	return s.router.Run(addr)
}
