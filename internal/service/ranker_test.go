package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trendboard/channel-trends-go/internal/cache"
	"github.com/trendboard/channel-trends-go/internal/config"
	"github.com/trendboard/channel-trends-go/internal/models"
	"github.com/trendboard/channel-trends-go/internal/service/youtube"
	"github.com/trendboard/channel-trends-go/internal/validation"
	"github.com/trendboard/channel-trends-go/pkg/logger"
)

func init() {
	_ = logger.Init("error", "")
}

// fakeSearchClient replays canned search pages and detail records while
// counting upstream calls.
type fakeSearchClient struct {
	pages       map[string]*models.SearchPage
	details     map[string]models.VideoDetail
	searchErr   error
	detailsErr  error
	searchCalls int
	detailCalls int
}

func (f *fakeSearchClient) Search(_ context.Context, _ string, _ int, pageToken string) (*models.SearchPage, error) {
	f.searchCalls++
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	page, ok := f.pages[pageToken]
	if !ok {
		return &models.SearchPage{}, nil
	}
	return page, nil
}

func (f *fakeSearchClient) FetchDetails(_ context.Context, ids []string) ([]models.VideoDetail, error) {
	f.detailCalls++
	if f.detailsErr != nil {
		return nil, f.detailsErr
	}
	out := make([]models.VideoDetail, 0, len(ids))
	for _, id := range ids {
		if d, ok := f.details[id]; ok {
			out = append(out, d)
		}
	}
	return out, nil
}

func newTestRanker(client SearchClient) (*RankService, *cache.ResultCache) {
	c := cache.New(nil)
	v := validation.New(config.PipelineConfig{
		DefaultLimit:      30,
		DefaultDays:       7,
		DefaultMinSeconds: 600,
		DefaultPages:      2,
		MaxPages:          3,
	})
	return NewRankService(client, c, v, 5*time.Minute, 2*time.Minute), c
}

func TestRankTwoPagePipeline(t *testing.T) {
	client := &fakeSearchClient{
		pages: map[string]*models.SearchPage{
			"": {VideoIDs: []string{"a1", "b1"}, NextPageToken: "p2"},
			"p2": {VideoIDs: []string{"a2", "b1"}}, // b1 repeats across pages
		},
		details: map[string]models.VideoDetail{
			"a1": video("a1", "chA", "Alpha", "Alpha One", "2026-08-24T10:00:00Z", "PT12M", 200),
			"b1": video("b1", "chB", "Beta", "Beta One", "2026-08-25T08:30:00Z", "PT30M", 500),
			"a2": video("a2", "chA", "Alpha", "Alpha Two", "2026-08-26T14:00:00Z", "PT11M", 150),
		},
	}
	rs, _ := newTestRanker(client)

	rows, err := rs.Rank(context.Background(), &models.RankRequest{Query: "go tutorials"})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Beta", rows[0].Channel)
	assert.Equal(t, int64(500), rows[0].WeeklyViews)
	assert.Equal(t, "Alpha", rows[1].Channel)
	assert.Equal(t, int64(350), rows[1].WeeklyViews)

	assert.Equal(t, 2, client.searchCalls)
	assert.Equal(t, 1, client.detailCalls)
}

func TestRankCacheHitSkipsUpstream(t *testing.T) {
	client := &fakeSearchClient{
		pages: map[string]*models.SearchPage{
			"": {VideoIDs: []string{"a1"}},
		},
		details: map[string]models.VideoDetail{
			"a1": video("a1", "chA", "Alpha", "Alpha One", "2026-08-24T10:00:00Z", "PT12M", 200),
		},
	}
	rs, _ := newTestRanker(client)

	first, err := rs.Rank(context.Background(), &models.RankRequest{Query: "chess"})
	require.NoError(t, err)
	searchesAfterFirst := client.searchCalls
	detailsAfterFirst := client.detailCalls

	second, err := rs.Rank(context.Background(), &models.RankRequest{Query: "chess"})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, searchesAfterFirst, client.searchCalls)
	assert.Equal(t, detailsAfterFirst, client.detailCalls)
}

func TestRankDistinctParamsMissCache(t *testing.T) {
	client := &fakeSearchClient{
		pages: map[string]*models.SearchPage{"": {VideoIDs: []string{"a1"}}},
		details: map[string]models.VideoDetail{
			"a1": video("a1", "chA", "Alpha", "Alpha One", "2026-08-24T10:00:00Z", "PT12M", 200),
		},
	}
	rs, _ := newTestRanker(client)

	_, err := rs.Rank(context.Background(), &models.RankRequest{Query: "chess", Days: 7})
	require.NoError(t, err)
	_, err = rs.Rank(context.Background(), &models.RankRequest{Query: "chess", Days: 14})
	require.NoError(t, err)

	assert.Equal(t, 2, client.searchCalls)
}

func TestRankEmptySearchSkipsDetailFetch(t *testing.T) {
	client := &fakeSearchClient{
		pages: map[string]*models.SearchPage{"": {}},
	}
	rs, c := newTestRanker(client)

	rows, err := rs.Rank(context.Background(), &models.RankRequest{Query: "obscure"})
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.NotNil(t, rows)
	assert.Equal(t, 0, client.detailCalls)

	// The empty result is cached too.
	assert.Equal(t, 1, c.Len())
	_, err = rs.Rank(context.Background(), &models.RankRequest{Query: "obscure"})
	require.NoError(t, err)
	assert.Equal(t, 1, client.searchCalls)
}

func TestRankStopsWhenNextPageTokenMissing(t *testing.T) {
	client := &fakeSearchClient{
		pages: map[string]*models.SearchPage{
			"": {VideoIDs: []string{"a1"}}, // no next page despite Pages=3
		},
		details: map[string]models.VideoDetail{
			"a1": video("a1", "chA", "Alpha", "Alpha One", "2026-08-24T10:00:00Z", "PT12M", 200),
		},
	}
	rs, _ := newTestRanker(client)

	_, err := rs.Rank(context.Background(), &models.RankRequest{Query: "chess", Pages: 3})
	require.NoError(t, err)
	assert.Equal(t, 1, client.searchCalls)
}

func TestRankUpstreamErrorNotCached(t *testing.T) {
	quotaErr := &youtube.UpstreamError{
		Kind:    youtube.KindQuotaExceeded,
		Code:    403,
		Reason:  "quotaExceeded",
		Message: "Daily Limit Exceeded",
	}
	client := &fakeSearchClient{searchErr: quotaErr}
	rs, c := newTestRanker(client)

	_, err := rs.Rank(context.Background(), &models.RankRequest{Query: "chess"})
	require.Error(t, err)

	var upstream *youtube.UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, youtube.KindQuotaExceeded, upstream.Kind)
	assert.Equal(t, 0, c.Len())
}

func TestRankDetailErrorAborts(t *testing.T) {
	client := &fakeSearchClient{
		pages:      map[string]*models.SearchPage{"": {VideoIDs: []string{"a1"}}},
		detailsErr: &youtube.UpstreamError{Kind: youtube.KindGeneric, Code: 500, Message: "backendError"},
	}
	rs, c := newTestRanker(client)

	_, err := rs.Rank(context.Background(), &models.RankRequest{Query: "chess"})
	require.Error(t, err)
	assert.Equal(t, 0, c.Len())
}

func TestRankMissingQuery(t *testing.T) {
	rs, _ := newTestRanker(&fakeSearchClient{})

	_, err := rs.Rank(context.Background(), &models.RankRequest{Query: "   "})
	require.Error(t, err)

	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestRankNilClient(t *testing.T) {
	rs, _ := newTestRanker(nil)

	_, err := rs.Rank(context.Background(), &models.RankRequest{Query: "chess"})
	require.Error(t, err)

	var cerr *ConfigurationError
	assert.ErrorAs(t, err, &cerr)
}
