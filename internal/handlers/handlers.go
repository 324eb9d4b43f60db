// Package handlers exposes the analyzer over HTTP.
package handlers

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/muhammadolammi/cvmatch/internal/analysis"
	"github.com/muhammadolammi/cvmatch/internal/database"
	"github.com/muhammadolammi/cvmatch/internal/document"
)

// MaxUploadBytes limits the request body of the upload endpoint.
const MaxUploadBytes = 16 << 20

// MaxJSONBytes limits the request body of the JSON endpoint.
const MaxJSONBytes = 1 << 20

// Store is the subset of the query layer the API uses.
type Store interface {
	CreateAnalysis(ctx context.Context, arg database.CreateAnalysisParams) (database.Analysis, error)
	GetAnalysis(ctx context.Context, id uuid.UUID) (database.Analysis, error)
	GetAnalysesResultsBySession(ctx context.Context, sessionID uuid.UUID) (database.AnalysesResult, error)
}

type AnalyzeRequest struct {
	CVText         string `json:"cv_text"`
	JobDescription string `json:"job_description" binding:"required"`
	Strategy       string `json:"strategy"`
}

type AnalyzeResponse struct {
	analysis.Report
	ID *uuid.UUID `json:"id,omitempty"`
}

type AnalysisResponse struct {
	ID              uuid.UUID `json:"id"`
	Filename        string    `json:"filename"`
	JobDescription  string    `json:"job_description"`
	SimilarityScore float64   `json:"similarity_score"`
	Feedback        string    `json:"feedback"`
	UsingAI         bool      `json:"using_ai"`
	CreatedAt       time.Time `json:"created_at"`
}

// AnalysisHandler serves the analysis endpoints. Store may be nil, in which case nothing
// is persisted and lookups answer 503.
type AnalysisHandler struct {
	Analyzer *analysis.Analyzer
	Store    Store
	Logger   *slog.Logger
}

func NewAnalysisHandler(a *analysis.Analyzer, store Store, logger *slog.Logger) *AnalysisHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AnalysisHandler{Analyzer: a, Store: store, Logger: logger}
}

// NewRouter registers the API under /api/v1.
func NewRouter(h *AnalysisHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type"}
	r.Use(cors.New(config))

	api := r.Group("/api/v1")
	{
		api.GET("/health", HealthCheck)
		api.POST("/analyze", limitBody(MaxJSONBytes), h.Analyze)
		api.POST("/analyze/upload", limitBody(MaxUploadBytes), h.AnalyzeUpload)
		api.GET("/analyses/:id", h.GetAnalysis)
		api.GET("/sessions/:id/results", h.GetSessionResults)
	}
	return r
}

func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Analyze is POST /analyze with a JSON body.
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "request body too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	strategy, err := analysis.ParseStrategy(req.Strategy)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report := h.Analyzer.Analyze(c.Request.Context(), req.CVText, req.JobDescription, analysis.Options{Strategy: strategy})
	c.JSON(http.StatusOK, AnalyzeResponse{Report: report})
}

// AnalyzeUpload is POST /analyze/upload with a multipart form holding cv_file and
// job_description.
func (h *AnalysisHandler) AnalyzeUpload(c *gin.Context) {
	fh, err := c.FormFile("cv_file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file uploaded"})
		return
	}
	if fh.Filename == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file selected"})
		return
	}
	jobDescription := c.PostForm("job_description")
	if strings.TrimSpace(jobDescription) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "job description not provided"})
		return
	}
	strategy, err := analysis.ParseStrategy(c.PostForm("strategy"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	format, err := document.FormatFromFilename(fh.Filename)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported file format"})
		return
	}

	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read upload: " + err.Error()})
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read upload: " + err.Error()})
		return
	}

	cvText, err := document.ExtractText(format, data)
	if err != nil {
		h.Logger.Warn("text extraction failed", slog.String("filename", fh.Filename), slog.Any("error", err))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "failed to process file: " + err.Error()})
		return
	}

	report := h.Analyzer.Analyze(c.Request.Context(), cvText, jobDescription, analysis.Options{Strategy: strategy})
	resp := AnalyzeResponse{Report: report}

	if h.Store != nil {
		saved, err := h.Store.CreateAnalysis(c.Request.Context(), database.CreateAnalysisParams{
			Filename:       fh.Filename,
			JobDescription: jobDescription,
			Score:          report.SimilarityScore,
			Feedback:       report.Feedback,
			UsingAi:        report.UsingAI,
		})
		if err != nil {
			h.Logger.Error("failed to save analysis", slog.Any("error", err))
		} else {
			resp.ID = &saved.ID
		}
	}
	c.JSON(http.StatusOK, resp)
}

// GetAnalysis is GET /analyses/:id.
func (h *AnalysisHandler) GetAnalysis(c *gin.Context) {
	id, ok := h.lookupID(c)
	if !ok {
		return
	}
	a, err := h.Store.GetAnalysis(c.Request.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": "analysis not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load analysis: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, AnalysisResponse{
		ID:              a.ID,
		Filename:        a.Filename,
		JobDescription:  a.JobDescription,
		SimilarityScore: a.Score,
		Feedback:        a.Feedback,
		UsingAI:         a.UsingAi,
		CreatedAt:       a.CreatedAt,
	})
}

// GetSessionResults is GET /sessions/:id/results, the aggregate written by the worker.
func (h *AnalysisHandler) GetSessionResults(c *gin.Context) {
	id, ok := h.lookupID(c)
	if !ok {
		return
	}
	res, err := h.Store.GetAnalysesResultsBySession(c.Request.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": "results not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load results: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"session_id": res.SessionID,
		"results":    res.Results,
		"updated_at": res.UpdatedAt,
	})
}

func (h *AnalysisHandler) lookupID(c *gin.Context) (uuid.UUID, bool) {
	if h.Store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage not configured"})
		return uuid.Nil, false
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return uuid.Nil, false
	}
	return id, true
}

func limitBody(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		c.Next()
	}
}
