// Package validation normalizes and validates ranking request parameters.
package validation

import (
	"fmt"
	"strings"

	"github.com/trendboard/channel-trends-go/internal/config"
	"github.com/trendboard/channel-trends-go/internal/models"
)

// Validator applies pipeline defaults and bounds to incoming requests.
type Validator struct {
	defaults config.PipelineConfig
}

// New creates a new Validator. Non-positive defaults fall back to the
// conservative built-in profile.
func New(defaults config.PipelineConfig) *Validator {
	if defaults.DefaultLimit <= 0 {
		defaults.DefaultLimit = 30
	}
	if defaults.DefaultDays <= 0 {
		defaults.DefaultDays = 7
	}
	if defaults.DefaultMinSeconds <= 0 {
		defaults.DefaultMinSeconds = 600
	}
	if defaults.DefaultPages <= 0 {
		defaults.DefaultPages = 2
	}
	if defaults.MaxPages <= 0 {
		defaults.MaxPages = 3
	}

	return &Validator{defaults: defaults}
}

// NormalizeRequest trims the query, applies defaults to unset parameters and
// clamps the page depth into [1, MaxPages]. It mutates req in place and
// returns an error only for a missing query.
func (v *Validator) NormalizeRequest(req *models.RankRequest) error {
	req.Query = strings.TrimSpace(req.Query)
	if req.Query == "" {
		return fmt.Errorf("q parameter required")
	}

	if req.Limit <= 0 {
		req.Limit = v.defaults.DefaultLimit
	}
	if req.Days <= 0 {
		req.Days = v.defaults.DefaultDays
	}
	if req.MinSeconds <= 0 {
		req.MinSeconds = v.defaults.DefaultMinSeconds
	}
	if req.Pages <= 0 {
		req.Pages = v.defaults.DefaultPages
	}
	if req.Pages > v.defaults.MaxPages {
		req.Pages = v.defaults.MaxPages
	}

	return nil
}
