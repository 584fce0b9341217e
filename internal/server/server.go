package server

import (
	"context"
	"embed"
	"net/http"

	"github.com/gin-gonic/gin"

	"chatbotht/internal/chatbot"
	"chatbotht/internal/ingest"
)

//go:embed static
var staticFiles embed.FS

// Replier answers chat messages.
type Replier interface {
	Reply(ctx context.Context, text string) chatbot.Reply
}

// Ingester loads an uploaded file into the document store.
type Ingester interface {
	Ingest(ctx context.Context, path string) (*ingest.Result, error)
}

// DocumentState reports whether a document is loaded.
type DocumentState interface {
	Exists() bool
}

// Options configures the HTTP layer.
type Options struct {
	UploadDir   string
	MaxUploadMB int
}

type Server struct {
	router   *gin.Engine
	bot      Replier
	ingester Ingester
	docs     DocumentState
	opts     Options
}

// New creates a new server instance
func New(bot Replier, ingester Ingester, docs DocumentState, opts Options) *Server {
	if opts.UploadDir == "" {
		opts.UploadDir = "uploads"
	}
	if opts.MaxUploadMB <= 0 {
		opts.MaxUploadMB = 50
	}
	s := &Server{
		bot:      bot,
		ingester: ingester,
		docs:     docs,
		opts:     opts,
		router:   gin.New(),
	}
	s.router.MaxMultipartMemory = int64(opts.MaxUploadMB) << 20
	s.router.Use(gin.Recovery(), requestLogger())
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleIndex())
	s.router.GET("/healthz", s.handleHealthCheck())
	s.router.POST("/upload", s.handleUpload())
	s.router.POST("/chat", s.handleChat())
}

// Handler exposes the router, mainly for http.Server and tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

