package server

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"chatbotht/internal/ingest"
	pkgerrors "chatbotht/pkg/errors"
	"chatbotht/pkg/logger"
)

func (s *Server) handleIndex() gin.HandlerFunc {
	return func(c *gin.Context) {
		page, err := staticFiles.ReadFile("static/index.html")
		if err != nil {
			c.String(http.StatusInternalServerError, err.Error())
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", page)
	}
}

func (s *Server) handleHealthCheck() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, HealthResponse{
			Status:   "ok",
			Document: s.docs != nil && s.docs.Exists(),
		})
	}
}

func (s *Server) handleChat() gin.HandlerFunc {
	return func(c *gin.Context) {
		reply := s.bot.Reply(c.Request.Context(), c.PostForm("message"))
		logger.Debug("chat answered", "request_id", c.GetString("request_id"), "tier", reply.Tier.String())
		c.JSON(http.StatusOK, ChatResponse{Response: reply.Text})
	}
}

// handleUpload always answers 200 with a message. Files are checked before
// anything is written, so a rejected upload leaves the store untouched.
func (s *Server) handleUpload() gin.HandlerFunc {
	return func(c *gin.Context) {
		// one extra MB for the multipart envelope
		limit := int64(s.opts.MaxUploadMB+1) << 20
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)

		file, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusOK, UploadResponse{Message: s.uploadMessage(formFileError(c, err), "")})
			return
		}
		if _, err := ingest.ValidateFilename(file.Filename); err != nil {
			c.JSON(http.StatusOK, UploadResponse{Message: s.uploadMessage(err, file.Filename)})
			return
		}
		if file.Size > int64(s.opts.MaxUploadMB)<<20 {
			c.JSON(http.StatusOK, UploadResponse{Message: s.uploadMessage(pkgerrors.ErrFileTooLarge, file.Filename)})
			return
		}

		if err := os.MkdirAll(s.opts.UploadDir, 0o755); err != nil {
			c.JSON(http.StatusOK, UploadResponse{Message: fmt.Sprintf(MsgIngestFailed, err)})
			return
		}
		path := filepath.Join(s.opts.UploadDir, filepath.Base(file.Filename))
		if err := c.SaveUploadedFile(file, path); err != nil {
			logger.Error("save upload failed", "path", path, "error", err)
			c.JSON(http.StatusOK, UploadResponse{Message: fmt.Sprintf(MsgIngestFailed, err)})
			return
		}

		res, err := s.ingester.Ingest(c.Request.Context(), path)
		if err != nil {
			logger.Warn("ingest failed", "path", path, "error", err)
			c.JSON(http.StatusOK, UploadResponse{Message: s.uploadMessage(err, file.Filename)})
			return
		}
		logger.Info("upload ingested", "request_id", c.GetString("request_id"), "source", res.Source, "chunks", res.Chunks)
		c.JSON(http.StatusOK, UploadResponse{Message: MsgUploadOK})
	}
}

// formFileError tells a missing field apart from a field sent with an empty
// filename, which multipart parsing stores as a plain value.
func formFileError(c *gin.Context, err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return pkgerrors.ErrFileTooLarge
	}
	if form := c.Request.MultipartForm; form != nil {
		if _, ok := form.Value["file"]; ok {
			return pkgerrors.ErrEmptyFilename
		}
	}
	return pkgerrors.ErrNoFile
}

func (s *Server) uploadMessage(err error, filename string) string {
	switch {
	case errors.Is(err, pkgerrors.ErrNoFile):
		return MsgNoFile
	case errors.Is(err, pkgerrors.ErrEmptyFilename):
		return MsgEmptyFilename
	case errors.Is(err, pkgerrors.ErrUnsupportedFileType):
		return fmt.Sprintf(MsgUnsupportedType, ingest.Extension(filename))
	case errors.Is(err, pkgerrors.ErrFileTooLarge):
		return fmt.Sprintf(MsgFileTooLarge, s.opts.MaxUploadMB)
	case errors.Is(err, pkgerrors.ErrEmptyDocument):
		return MsgEmptyDocument
	default:
		return fmt.Sprintf(MsgIngestFailed, err)
	}
}
