// Package service provides the business logic of the channel trends pipeline.
package service

import (
	"fmt"
	"sort"

	"github.com/trendboard/channel-trends-go/internal/models"
	"github.com/trendboard/channel-trends-go/internal/parser"
)

// channelRollup accumulates per-channel statistics across qualifying videos.
// The top-video slot starts below any real view count so the first qualifying
// video always claims it; later videos take it only with strictly more views,
// which keeps the earliest-seen video on ties.
type channelRollup struct {
	channelID           string
	channel             string
	weeklyViews         int64
	longCount           int
	topVideoTitle       string
	topVideoURL         string
	topVideoPublishedAt string
	topVideoViews       int64
}

// AggregateChannels folds video detail records into a ranked, size-limited
// leaderboard. Records without a channel ID and videos shorter than minSeconds
// are skipped (a duration equal to the threshold qualifies). Channels are
// sorted by summed views descending; ties keep first-appearance order. Pure
// function of its inputs.
func AggregateChannels(details []models.VideoDetail, minSeconds, limit int) []models.RankedRow {
	rollups := make(map[string]*channelRollup)
	var order []*channelRollup

	for _, d := range details {
		if d.ChannelID == "" {
			continue
		}
		if parser.DurationSeconds(d.Duration) < minSeconds {
			continue
		}

		entry, ok := rollups[d.ChannelID]
		if !ok {
			entry = &channelRollup{
				channelID:     d.ChannelID,
				channel:       d.ChannelTitle,
				topVideoViews: -1,
			}
			rollups[d.ChannelID] = entry
			order = append(order, entry)
		}

		entry.weeklyViews += d.ViewCount
		entry.longCount++

		if d.ViewCount > entry.topVideoViews {
			entry.topVideoViews = d.ViewCount
			entry.topVideoTitle = d.Title
			entry.topVideoURL = fmt.Sprintf("https://www.youtube.com/watch?v=%s", d.ID)
			entry.topVideoPublishedAt = d.PublishedAt
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return order[i].weeklyViews > order[j].weeklyViews
	})

	if limit >= 0 && len(order) > limit {
		order = order[:limit]
	}

	rows := make([]models.RankedRow, 0, len(order))
	for i, entry := range order {
		rows = append(rows, models.RankedRow{
			Rank:                i + 1,
			Channel:             entry.channel,
			WeeklyViews:         entry.weeklyViews,
			LongCount:           entry.longCount,
			TopVideoTitle:       entry.topVideoTitle,
			TopVideoURL:         entry.topVideoURL,
			TopVideoPublishedAt: publicationDate(entry.topVideoPublishedAt),
		})
	}

	return rows
}

// publicationDate truncates an ISO-8601 timestamp to its calendar date.
// Shorter values pass through unchanged.
func publicationDate(publishedAt string) string {
	if len(publishedAt) >= 10 {
		return publishedAt[:10]
	}
	return publishedAt
}
