package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/trendboard/channel-trends-go/internal/cache"
	"github.com/trendboard/channel-trends-go/internal/metrics"
	"github.com/trendboard/channel-trends-go/internal/models"
	"github.com/trendboard/channel-trends-go/internal/service/youtube"
	"github.com/trendboard/channel-trends-go/internal/validation"
	"github.com/trendboard/channel-trends-go/pkg/logger"
)

// SearchClient is the upstream surface the ranking pipeline depends on.
// *youtube.Client satisfies it.
type SearchClient interface {
	Search(ctx context.Context, query string, days int, pageToken string) (*models.SearchPage, error)
	FetchDetails(ctx context.Context, ids []string) ([]models.VideoDetail, error)
}

// RankService runs the search, detail fetch and aggregation pipeline and
// caches finished leaderboards per normalized request.
type RankService struct {
	client    SearchClient
	cache     *cache.ResultCache
	validator *validation.Validator
	resultTTL time.Duration
	emptyTTL  time.Duration
}

// NewRankService creates a new RankService instance. client may be nil when
// no API key is configured; Rank then fails with a ConfigurationError.
func NewRankService(client SearchClient, resultCache *cache.ResultCache, validator *validation.Validator, resultTTL, emptyTTL time.Duration) *RankService {
	return &RankService{
		client:    client,
		cache:     resultCache,
		validator: validator,
		resultTTL: resultTTL,
		emptyTTL:  emptyTTL,
	}
}

// Rank produces the channel leaderboard for the given request. Results are
// served from cache when a prior identical request is still fresh; upstream
// failures are returned as-is and never cached.
func (rs *RankService) Rank(ctx context.Context, req *models.RankRequest) ([]models.RankedRow, error) {
	if err := rs.validator.NormalizeRequest(req); err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}

	if rs.client == nil {
		return nil, &ConfigurationError{Message: "YouTube API key is not configured"}
	}

	key := cacheKey(req)
	if rows, ok := rs.cache.Get(key); ok {
		metrics.CacheHits.Inc()
		logger.Log.Debug("Serving ranking from cache", zap.String("key", key))
		return rows, nil
	}
	metrics.CacheMisses.Inc()

	ids, err := rs.collectVideoIDs(ctx, req)
	if err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		logger.Log.Info("Search returned no videos",
			zap.String("query", req.Query),
			zap.Int("days", req.Days),
		)
		rows := []models.RankedRow{}
		rs.cache.Set(key, rows, rs.emptyTTL)
		return rows, nil
	}

	details, err := rs.fetchAllDetails(ctx, ids)
	if err != nil {
		return nil, err
	}

	rows := AggregateChannels(details, req.MinSeconds, req.Limit)
	rs.cache.Set(key, rows, rs.resultTTL)

	logger.Log.Info("Ranking computed",
		zap.String("query", req.Query),
		zap.Int("videos", len(ids)),
		zap.Int("channels", len(rows)),
	)
	return rows, nil
}

// collectVideoIDs walks up to req.Pages search result pages and returns the
// unique video IDs in first-seen order. Pagination stops early when the
// upstream reports no further page.
func (rs *RankService) collectVideoIDs(ctx context.Context, req *models.RankRequest) ([]string, error) {
	seen := make(map[string]struct{})
	var ids []string
	pageToken := ""

	for page := 0; page < req.Pages; page++ {
		result, err := rs.client.Search(ctx, req.Query, req.Days, pageToken)
		if err != nil {
			logger.Log.Error("Search page failed",
				zap.Error(err),
				zap.String("query", req.Query),
				zap.Int("page", page+1),
			)
			return nil, err
		}

		for _, id := range result.VideoIDs {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}

		if result.NextPageToken == "" {
			break
		}
		pageToken = result.NextPageToken
	}

	return ids, nil
}

func (rs *RankService) fetchAllDetails(ctx context.Context, ids []string) ([]models.VideoDetail, error) {
	details := make([]models.VideoDetail, 0, len(ids))
	for _, chunk := range youtube.ChunkIDs(ids, youtube.MaxBatchSize) {
		part, err := rs.client.FetchDetails(ctx, chunk)
		if err != nil {
			logger.Log.Error("Video detail fetch failed",
				zap.Error(err),
				zap.Int("batchSize", len(chunk)),
			)
			return nil, err
		}
		details = append(details, part...)
	}
	return details, nil
}

func cacheKey(req *models.RankRequest) string {
	return fmt.Sprintf("%s|%d|%d|%d|%d", req.Query, req.Limit, req.MinSeconds, req.Days, req.Pages)
}

// Custom errors

// ValidationError represents a rejected ranking request.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ConfigurationError indicates the service is missing required configuration.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return e.Message
}
