package server

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/smartcv/jobfinder/internal/jobsearch"
	"github.com/smartcv/jobfinder/internal/profile"
	"go.uber.org/zap"
)

// Analyzer produces a profile from CV text. See internal/analyze.
type Analyzer interface {
	Analyze(ctx context.Context, cvText string) profile.Profile
}

// Finder aggregates postings for a profile. See internal/jobsearch.
type Finder interface {
	FindJobs(ctx context.Context, p profile.Profile, location string, limit int) []jobsearch.Posting
}

// TextExtractor pulls UTF-8 text out of an uploaded document.
type TextExtractor interface {
	ExtractText(ctx context.Context, r io.Reader, filename string) (string, error)
}

type Config struct {
	// CORSOrigins lists allowed origins; empty allows every origin.
	CORSOrigins []string
}

// Server is the HTTP boundary around the job-matching pipeline. It mirrors
// the upstream API surface: /upload_cv, /analyze and /find_jobs.
type Server struct {
	router    *gin.Engine
	extractor TextExtractor
	analyzer  Analyzer
	finder    Finder
	logger    *zap.Logger
}

func New(cfg Config, extractor TextExtractor, analyzer Analyzer, finder Finder, logger *zap.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())

	corsCfg := cors.DefaultConfig()
	if len(cfg.CORSOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.CORSOrigins
		corsCfg.AllowCredentials = true
	}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	router.Use(cors.New(corsCfg))

	s := &Server{
		router:    router,
		extractor: extractor,
		analyzer:  analyzer,
		finder:    finder,
		logger:    logger,
	}

	router.GET("/", s.root)
	router.POST("/upload_cv", s.uploadCV)
	router.POST("/analyze", s.analyze)
	router.POST("/find_jobs", s.findJobs)

	return s
}

// Run blocks serving HTTP on the given address.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// ServeHTTP makes the server usable as a plain http.Handler in tests.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":   "SmartCV Job Finder backend is running.",
		"endpoints": []string{"/upload_cv", "/analyze", "/find_jobs"},
	})
}

func (s *Server) uploadCV(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		abortWithDetail(c, http.StatusBadRequest, "file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		abortWithDetail(c, http.StatusBadRequest, "failed to read uploaded file")
		return
	}
	defer file.Close()

	text, err := s.extractor.ExtractText(c.Request.Context(), file, fileHeader.Filename)
	if err != nil {
		s.logger.Warn("text extraction failed",
			zap.String("filename", fileHeader.Filename),
			zap.Error(err),
		)
		abortWithDetail(c, http.StatusBadRequest, err.Error())
		return
	}

	if text == "" {
		abortWithDetail(c, http.StatusBadRequest, "No text could be extracted from the CV.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"text": text})
}

type analyzeRequest struct {
	CVText string `json:"cv_text"`
}

func (s *Server) analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithDetail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := profile.ValidateText(req.CVText); err != nil {
		abortWithDetail(c, http.StatusBadRequest, "CV text is too short. Please upload a more detailed CV.")
		return
	}

	c.JSON(http.StatusOK, s.analyzer.Analyze(c.Request.Context(), req.CVText))
}

type findJobsRequest struct {
	Analysis profile.Profile `json:"analysis"`
	Location string          `json:"location"`
	Limit    int             `json:"limit"`
}

const defaultFindLimit = 20

func (s *Server) findJobs(c *gin.Context) {
	var req findJobsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithDetail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Limit == 0 {
		req.Limit = defaultFindLimit
	}

	jobs := s.finder.FindJobs(c.Request.Context(), req.Analysis.Normalize(), req.Location, req.Limit)

	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}

func abortWithDetail(c *gin.Context, code int, detail string) {
	c.AbortWithStatusJSON(code, gin.H{"detail": detail})
}
