package http

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"go.scopelab.io/focus-api/internal/usecase"
)

// Handler handles HTTP requests for focus optimization.
type Handler struct {
	focusUC *usecase.FocusUseCase
}

// NewHandler creates a new HTTP handler.
func NewHandler(focusUC *usecase.FocusUseCase) *Handler {
	return &Handler{
		focusUC: focusUC,
	}
}

// GetOptimalFocus handles GET /v1/focus/optimum.
func (h *Handler) GetOptimalFocus(c *gin.Context) {
	req := usecase.FocusRequest{}

	// Direct optical values.
	var err error
	if req.NA, err = queryFloat(c, "na"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.RefMed, err = queryFloat(c, "ref_med"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.RefCov, err = queryFloat(c, "ref_cov"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.RefImm, err = queryFloat(c, "ref_imm"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.RefImmNom, err = queryFloat(c, "ref_imm_nom"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.FWD, err = queryFloat(c, "fwd"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Named sources.
	if s := c.Query("objective"); s != "" {
		req.Objective = &s
	}
	if s := c.Query("medium"); s != "" {
		req.Medium = &s
	}
	if s := c.Query("coverslip"); s != "" {
		req.Coverslip = &s
	}
	if s := c.Query("immersion"); s != "" {
		req.Immersion = &s
	}

	// Wavelength (required).
	lambdaStr := c.Query("lambda")
	if lambdaStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lambda parameter is required"})
		return
	}
	lambda, err := strconv.ParseFloat(lambdaStr, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid lambda: %v", err)})
		return
	}
	req.Lambda = lambda

	// Depth below the coverslip (default: 0).
	if depthStr := c.Query("depth"); depthStr != "" {
		depth, err := strconv.ParseFloat(depthStr, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid depth: %v", err)})
			return
		}
		req.Depth = depth
	}

	// Pupil sampling (default chosen by the use case).
	if npupilStr := c.Query("npupil"); npupilStr != "" {
		npupil, err := strconv.Atoi(npupilStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid npupil: %v", err)})
			return
		}
		req.Npupil = npupil
	}

	// Scan window (default chosen by the use case).
	zlowStr := c.Query("zspread_low")
	zhighStr := c.Query("zspread_high")
	if (zlowStr == "") != (zhighStr == "") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "zspread_low and zspread_high must be given together"})
		return
	}
	if zlowStr != "" {
		zlow, err := strconv.ParseFloat(zlowStr, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid zspread_low: %v", err)})
			return
		}
		zhigh, err := strconv.ParseFloat(zhighStr, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid zspread_high: %v", err)})
			return
		}
		req.ZSpread = [2]float64{zlow, zhigh}
	}

	if debugStr := c.Query("debug"); debugStr != "" {
		debug, err := strconv.ParseBool(debugStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid debug: %v", err)})
			return
		}
		req.Debug = debug
	}

	// Execute use case.
	response, err := h.focusUC.Execute(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, response)
}

// queryFloat parses an optional float query parameter.
func queryFloat(c *gin.Context, name string) (*float64, error) {
	s := c.Query(name)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %v", name, err)
	}
	return &v, nil
}

// GetMedia handles GET /v1/media.
func (h *Handler) GetMedia(c *gin.Context) {
	media, err := h.focusUC.ListMedia()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"media": media,
		"count": len(media),
	})
}

// GetObjectives handles GET /v1/objectives.
func (h *Handler) GetObjectives(c *gin.Context) {
	objectives, err := h.focusUC.ListObjectives()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"objectives": objectives,
		"count":      len(objectives),
	})
}

// HealthCheck handles GET /health.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
