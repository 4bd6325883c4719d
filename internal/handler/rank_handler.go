// Package handler contains the HTTP handlers for the channel trends service.
package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/trendboard/channel-trends-go/internal/models"
	"github.com/trendboard/channel-trends-go/internal/service"
	"github.com/trendboard/channel-trends-go/internal/service/youtube"
	"github.com/trendboard/channel-trends-go/pkg/logger"
)

// RankHandler handles leaderboard HTTP requests.
type RankHandler struct {
	rankService *service.RankService
}

// NewRankHandler creates a new RankHandler instance.
func NewRankHandler(rankService *service.RankService) *RankHandler {
	return &RankHandler{
		rankService: rankService,
	}
}

// HandleRank serves GET /api/rank. Query parameters:
//
//	q       search query (required)
//	limit   maximum leaderboard rows ("n" is accepted as an alias)
//	days    recency window in days
//	minSec  minimum video length in seconds ("min", in minutes, is accepted
//	        as a legacy alias; minSec wins when both are present)
//	pages   search pages to walk, clamped server-side
func (h *RankHandler) HandleRank(c *gin.Context) {
	req := &models.RankRequest{
		Query:      c.Query("q"),
		Limit:      intQuery(c, "limit", "n"),
		Days:       intQuery(c, "days"),
		MinSeconds: minSecondsQuery(c),
		Pages:      intQuery(c, "pages"),
	}

	logger.Log.Info("Received ranking request",
		zap.String("query", req.Query),
		zap.String("path", c.Request.URL.Path),
	)

	rows, err := h.rankService.Rank(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, rows)
}

// intQuery returns the first parseable positive-friendly integer among the
// named query parameters, or 0 when none parse.
func intQuery(c *gin.Context, names ...string) int {
	for _, name := range names {
		raw := c.Query(name)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			continue
		}
		return v
	}
	return 0
}

// minSecondsQuery resolves the duration threshold. minSec is canonical;
// min carries minutes for older clients.
func minSecondsQuery(c *gin.Context) int {
	if v := intQuery(c, "minSec"); v != 0 {
		return v
	}
	if minutes := intQuery(c, "min"); minutes != 0 {
		return minutes * 60
	}
	return 0
}

func (h *RankHandler) handleError(c *gin.Context, err error) {
	path := c.Request.URL.Path

	switch e := err.(type) {
	case *service.ValidationError:
		logger.Log.Warn("Validation error",
			zap.Error(err),
			zap.String("path", path),
		)
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Status:    http.StatusBadRequest,
			Error:     "Bad Request",
			Message:   err.Error(),
			Timestamp: time.Now(),
			Path:      path,
		})
	case *service.ConfigurationError:
		logger.Log.Error("Configuration error",
			zap.Error(err),
			zap.String("path", path),
		)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Status:    http.StatusInternalServerError,
			Error:     "Internal Server Error",
			Message:   err.Error(),
			Timestamp: time.Now(),
			Path:      path,
		})
	case *youtube.UpstreamError:
		h.handleUpstreamError(c, e)
	default:
		logger.Log.Error("Unexpected error",
			zap.Error(err),
			zap.String("path", path),
		)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Status:    http.StatusInternalServerError,
			Error:     "Internal Server Error",
			Message:   "An unexpected error occurred",
			Timestamp: time.Now(),
			Path:      path,
		})
	}
}

func (h *RankHandler) handleUpstreamError(c *gin.Context, e *youtube.UpstreamError) {
	path := c.Request.URL.Path

	var status int
	var label string
	switch e.Kind {
	case youtube.KindQuotaExceeded:
		status = http.StatusTooManyRequests
		label = "Too Many Requests"
	case youtube.KindInvalidCredential:
		status = http.StatusUnauthorized
		label = "Unauthorized"
	case youtube.KindTimeout:
		status = http.StatusBadGateway
		label = "Bad Gateway"
	default:
		status = http.StatusBadGateway
		label = "Bad Gateway"
	}

	logger.Log.Error("Upstream error",
		zap.Error(e),
		zap.String("kind", string(e.Kind)),
		zap.Int("upstreamCode", e.Code),
		zap.String("path", path),
	)

	c.JSON(status, models.ErrorResponse{
		Status:    status,
		Error:     label,
		Message:   e.Error(),
		Timestamp: time.Now(),
		Path:      path,
		Detail:    e.Detail(),
	})
}
