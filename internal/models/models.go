// Package models contains the data models and DTOs for the channel trends service.
package models

import "time"

// RankRequest carries the effective parameters of one ranking request.
type RankRequest struct {
	Query      string `json:"query"`
	Limit      int    `json:"limit"`
	MinSeconds int    `json:"minSeconds"`
	Days       int    `json:"days"`
	Pages      int    `json:"pages"`
}

// SearchPage is one page of upstream search results: the raw video IDs in
// upstream order and the continuation token for the next page, if any.
type SearchPage struct {
	VideoIDs      []string
	NextPageToken string
}

// VideoDetail is one video's detail record as returned by the upstream
// videos.list operation. Absent upstream fields degrade to zero values; a
// record without a ChannelID is skipped during aggregation.
type VideoDetail struct {
	ID           string
	ChannelID    string
	ChannelTitle string
	Title        string
	PublishedAt  string
	Duration     string
	ViewCount    int64
}

// RankedRow is one row of the final leaderboard.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type RankedRow struct {
	Rank                int    `json:"rank"`
	Channel             string `json:"channel"`
	WeeklyViews         int64  `json:"weeklyViews"`
	LongCount           int    `json:"longCount"`
	TopVideoTitle       string `json:"topVideoTitle"`
	TopVideoURL         string `json:"topVideoUrl"`
	TopVideoPublishedAt string `json:"topVideoPublishedAt"`
}

// ErrorResponse represents an error response.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type ErrorResponse struct {
	Timestamp time.Time       `json:"timestamp"`
	Status    int             `json:"status"`
	Error     string          `json:"error"`
	Message   string          `json:"message"`
	Path      string          `json:"path"`
	Detail    *UpstreamDetail `json:"detail,omitempty"`
}

// UpstreamDetail carries whatever structured detail was recoverable from a
// failed upstream response.
type UpstreamDetail struct {
	Code    int    `json:"code,omitempty"`
	Reason  string `json:"reason,omitempty"`
	Message string `json:"message,omitempty"`
}
