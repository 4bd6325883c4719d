// Package youtube wraps the two YouTube Data API v3 read operations the
// ranking pipeline depends on: paginated search and batch video detail lookup.
package youtube

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"

	"github.com/trendboard/channel-trends-go/internal/metrics"
	"github.com/trendboard/channel-trends-go/internal/models"
)

const (
	// maxResultsPerPage is the upstream page size for search.list.
	maxResultsPerPage = 50

	// MaxBatchSize is the upstream limit on IDs per videos.list call.
	// Callers are responsible for chunking larger sets, see ChunkIDs.
	MaxBatchSize = 50

	defaultTimeout = 20 * time.Second
)

// Client wraps the YouTube Data API v3 client.
type Client struct {
	service *yt.Service
	timeout time.Duration
}

// NewClient creates a new YouTube API client. Each upstream call is bounded
// by the given timeout (20s if non-positive).
func NewClient(ctx context.Context, apiKey string, timeout time.Duration, opts ...option.ClientOption) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("YouTube API key is required")
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	service, err := yt.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}

	return &Client{
		service: service,
		timeout: timeout,
	}, nil
}

// Search retrieves one page of up to 50 video IDs matching the query, ordered
// by view count and restricted to videos published within the last days days.
// An empty pageToken requests the first page; the returned page carries the
// continuation token for the next one, if any.
func (c *Client) Search(ctx context.Context, query string, days int, pageToken string) (*models.SearchPage, error) {
	tctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	publishedAfter := time.Now().UTC().AddDate(0, 0, -days).Truncate(time.Second).Format(time.RFC3339)

	call := c.service.Search.List([]string{"snippet"}).
		Q(query).
		Type("video").
		Order("viewCount").
		MaxResults(maxResultsPerPage).
		PublishedAfter(publishedAfter).
		Context(tctx)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	metrics.UpstreamCalls.WithLabelValues("search.list").Inc()
	response, err := call.Do()
	if err != nil {
		uerr := Classify(err)
		metrics.UpstreamErrors.WithLabelValues(string(uerr.Kind)).Inc()
		return nil, uerr
	}

	page := &models.SearchPage{
		VideoIDs:      make([]string, 0, len(response.Items)),
		NextPageToken: response.NextPageToken,
	}
	for _, item := range response.Items {
		if item.Id != nil && item.Id.VideoId != "" {
			page.VideoIDs = append(page.VideoIDs, item.Id.VideoId)
		}
	}

	return page, nil
}

// FetchDetails retrieves detail records for up to MaxBatchSize videos in a
// single call.
func (c *Client) FetchDetails(ctx context.Context, videoIDs []string) ([]models.VideoDetail, error) {
	if len(videoIDs) == 0 {
		return nil, fmt.Errorf("no video IDs provided")
	}
	if len(videoIDs) > MaxBatchSize {
		return nil, fmt.Errorf("too many video IDs (max %d, got %d)", MaxBatchSize, len(videoIDs))
	}

	tctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	call := c.service.Videos.List([]string{"snippet", "contentDetails", "statistics"}).
		Id(videoIDs...).
		Context(tctx)

	metrics.UpstreamCalls.WithLabelValues("videos.list").Inc()
	response, err := call.Do()
	if err != nil {
		uerr := Classify(err)
		metrics.UpstreamErrors.WithLabelValues(string(uerr.Kind)).Inc()
		return nil, uerr
	}

	details := make([]models.VideoDetail, 0, len(response.Items))
	for _, item := range response.Items {
		details = append(details, mapVideoDetail(item))
	}

	return details, nil
}

// mapVideoDetail converts a YouTube API video resource to our detail model.
// Absent parts degrade to zero values; the aggregator handles the defaults.
func mapVideoDetail(video *yt.Video) models.VideoDetail {
	detail := models.VideoDetail{ID: video.Id}

	if video.Snippet != nil {
		detail.ChannelID = video.Snippet.ChannelId
		detail.ChannelTitle = video.Snippet.ChannelTitle
		detail.Title = video.Snippet.Title
		detail.PublishedAt = video.Snippet.PublishedAt
	}

	if video.ContentDetails != nil {
		detail.Duration = video.ContentDetails.Duration
	}

	if video.Statistics != nil {
		detail.ViewCount = int64(video.Statistics.ViewCount)
	}

	return detail
}

// ChunkIDs splits a list of video IDs into batches of at most size. A
// non-positive or oversized size falls back to MaxBatchSize.
func ChunkIDs(videoIDs []string, size int) [][]string {
	if size <= 0 || size > MaxBatchSize {
		size = MaxBatchSize
	}

	var batches [][]string
	for i := 0; i < len(videoIDs); i += size {
		end := i + size
		if end > len(videoIDs) {
			end = len(videoIDs)
		}
		batches = append(batches, videoIDs[i:end])
	}

	return batches
}
