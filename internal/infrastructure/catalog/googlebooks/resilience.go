package googlebooks

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/DeathlighterZ1/E-Library-Organizer-Agent/internal/infrastructure/resilience"
)

// classifyLookupError keeps caller-side problems (cancellation, bad request)
// from tripping the breaker; upstream and transport failures count.
func classifyLookupError(err error) resilience.ErrorClassification {
	if err == nil {
		return resilience.ErrorClassification{}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return resilience.ErrorClassification{RecordFailure: false}
	}

	var statusErr *HTTPStatusError
	if errors.As(err, &statusErr) {
		if statusErr.StatusCode == http.StatusTooManyRequests || statusErr.StatusCode >= 500 {
			return resilience.ErrorClassification{RecordFailure: true}
		}
		return resilience.ErrorClassification{RecordFailure: false}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return resilience.ErrorClassification{RecordFailure: true}
	}

	return resilience.ErrorClassification{RecordFailure: true}
}
