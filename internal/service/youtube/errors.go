package youtube

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/api/googleapi"

	"github.com/trendboard/channel-trends-go/internal/models"
)

// Kind is the domain-level category of an upstream failure.
type Kind string

// Upstream error kinds. KindTimeout and KindGeneric are both surfaced as a
// generic upstream failure; quota and credential failures get their own
// client-facing status.
const (
	KindGeneric           Kind = "generic"
	KindQuotaExceeded     Kind = "quota_exceeded"
	KindInvalidCredential Kind = "invalid_credential"
	KindTimeout           Kind = "timeout"
)

// UpstreamError wraps a failed YouTube Data API call. It carries the
// structured error detail recovered from the upstream response when present.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type UpstreamError struct {
	Kind    Kind
	Code    int
	Reason  string
	Message string
}

func (e *UpstreamError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("youtube api error (code %d, reason %s): %s", e.Code, e.Reason, e.Message)
	}
	return fmt.Sprintf("youtube api error: %s", e.Message)
}

// Detail returns the recoverable structured detail for error responses.
func (e *UpstreamError) Detail() *models.UpstreamDetail {
	return &models.UpstreamDetail{
		Code:    e.Code,
		Reason:  e.Reason,
		Message: e.Message,
	}
}

// Classify maps an error returned by the YouTube API client onto the closed
// set of upstream error kinds. Classification inspects the first listed
// reason of the structured error body; an absent or unknown reason is the
// generic case, never a crash.
func Classify(err error) *UpstreamError {
	if errors.Is(err, context.DeadlineExceeded) {
		return &UpstreamError{Kind: KindTimeout, Message: "upstream request timed out"}
	}

	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return &UpstreamError{Kind: KindGeneric, Message: err.Error()}
	}

	reason := ""
	message := gerr.Message
	if len(gerr.Errors) > 0 {
		reason = gerr.Errors[0].Reason
		if message == "" {
			message = gerr.Errors[0].Message
		}
	}
	if message == "" {
		// Fall back to the raw response text.
		message = strings.TrimSpace(gerr.Body)
	}

	return &UpstreamError{
		Kind:    classifyReason(reason),
		Code:    gerr.Code,
		Reason:  reason,
		Message: message,
	}
}

func classifyReason(reason string) Kind {
	switch reason {
	case "quotaExceeded", "dailyLimitExceeded", "rateLimitExceeded", "userRateLimitExceeded":
		return KindQuotaExceeded
	case "keyInvalid", "keyExpired", "authError", "unauthorized":
		return KindInvalidCredential
	default:
		return KindGeneric
	}
}
