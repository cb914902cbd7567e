package backend

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/alihamza/reedit-backend/pkg/extractor"
	"github.com/alihamza/reedit-backend/pkg/models"
	"github.com/alihamza/reedit-backend/pkg/storage/model"
	"github.com/alihamza/reedit-backend/pkg/synth"
)

var log = logrus.StandardLogger().WithField("package", "backend")

// maxUploadSize is a request policy, not a core contract.
const maxUploadSize = 16 << 20

var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".webp": true,
}

type Server struct {
	e         *gin.Engine
	extractor *extractor.Extractor
	archive   model.RWStorage
}

// New builds the panel API around an extraction pipeline. archive may be nil,
// in which case uploaded and generated images are not kept.
func New(ext *extractor.Extractor, archive model.RWStorage) *Server {
	s := Server{
		e:         gin.New(),
		extractor: ext,
		archive:   archive,
	}
	s.initRoutes()
	return &s
}

func (s *Server) Run(addr string) error {
	return s.e.Run(addr)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.e
}

func (s *Server) initRoutes() {
	s.e.Use(gin.Logger())
	s.e.Use(cors.Default())

	g := s.e.Group("/api/v1")
	g.POST("/upload", s.handleUpload)
	g.POST("/receipts", s.handleGenerate)
	g.GET("/images/:id/:kind", s.handleGetImage)
	g.GET("/health", s.handleHealth)
}

var badRequest = gin.H{
	"error": "bad request",
}

var internalServerError = gin.H{
	"error": "internal server error",
}

func (s *Server) handleUpload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file provided"})
		return
	}
	if file.Size > maxUploadSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file too large"})
		return
	}
	if !allowedExtensions[strings.ToLower(filepath.Ext(file.Filename))] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid file type"})
		return
	}

	f, err := file.Open()
	if err != nil {
		log.Errorf("unable to open upload: %v", err)
		c.JSON(http.StatusInternalServerError, internalServerError)
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		log.Errorf("unable to read upload: %v", err)
		c.JSON(http.StatusInternalServerError, internalServerError)
		return
	}

	mimeType := file.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}

	uploadID := uuid.NewString()
	filename := fmt.Sprintf("%s_%s", time.Now().Format("20060102_150405"), filepath.Base(file.Filename))
	log.Infof("processing %s (%d bytes)", filename, len(data))

	result := s.extractor.Extract(c.Request.Context(), data, mimeType)
	log.Infof("completed with %s", result.Method)

	s.archiveImage(uploadID, models.ImageKindUpload, data)

	c.JSON(http.StatusOK, gin.H{
		"success":           true,
		"id":                uploadID,
		"filename":          filename,
		"extracted_data":    result.Record,
		"extraction_method": result.Method,
		"vision_available":  result.Available,
		"image_url":         dataURI(mimeType, data),
	})
}

func (s *Server) handleGenerate(c *gin.Context) {
	var req models.SynthesisRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, badRequest)
		return
	}
	if req.Template == "" {
		req.Template = "jazzcash"
	}

	log.Infof("generating receipt with template %q", req.Template)
	img, err := synth.Render(req)
	if err != nil {
		log.Errorf("unable to render receipt: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "screenshot generation failed"})
		return
	}

	generatedID := uuid.NewString()
	s.archiveImage(generatedID, models.ImageKindGenerated, img)

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"id":             generatedID,
		"screenshot_url": dataURI("image/png", img),
		"template_used":  req.Template,
	})
}

func (s *Server) handleGetImage(c *gin.Context) {
	uploadID := c.Param("id")
	kind := c.Param("kind")
	if kind != models.ImageKindUpload && kind != models.ImageKindGenerated {
		c.JSON(http.StatusBadRequest, badRequest)
		return
	}
	if s.archive == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	img, err := s.archive.Retrieve(uploadID, kind)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		log.Errorf("unable to retrieve image %s: %v", uploadID, err)
		c.JSON(http.StatusInternalServerError, internalServerError)
		return
	}

	c.Header("Content-Type", "image/png")
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, img.Reader); err != nil {
		log.Errorf("unable to copy: %v", err)
		return
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":           "healthy",
		"vision_available": s.extractor.Available(),
		"features":         []string{"ai_extraction", "screenshot_generation"},
		"timestamp":        time.Now().Format(time.RFC3339),
		"version":          "2.0",
	})
}

func (s *Server) archiveImage(uploadID string, kind string, data []byte) {
	if s.archive == nil {
		return
	}
	err := s.archive.Store(models.ReceiptImage{
		Reader:   bytes.NewReader(data),
		UploadID: uploadID,
		Kind:     kind,
		Time:     time.Now(),
	})
	if err != nil {
		log.Errorf("unable to archive %s image: %v", kind, err)
	}
}

func dataURI(mimeType string, data []byte) string {
	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))
}
