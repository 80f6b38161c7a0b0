package llm

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"
)

// Guard paces requests to a backend and stops sending recoverable requests
// once they keep failing. Requests without a fallback always reach the
// backend. It does not retry.
type Guard struct {
	next    Backend
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker[string]
}

// NewGuard wraps next. A requestsPerMinute of zero or less disables pacing;
// a disabled breaker setting leaves the breaker out.
func NewGuard(next Backend, requestsPerMinute float64, settings BreakerSettings, log logrus.FieldLogger) (guard *Guard) {
	limit := rate.Inf
	if requestsPerMinute > 0 {
		limit = rate.Limit(requestsPerMinute / 60)
	}

	guard = &Guard{
		next:    next,
		limiter: rate.NewLimiter(limit, 1),
	}

	if settings.Enabled {
		guard.breaker = gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
			Name:        "generation-backend",
			MaxRequests: settings.MaxRequests,
			Interval:    settings.Interval,
			Timeout:     settings.Timeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
				return counts.Requests >= settings.MinRequests && failureRatio >= settings.FailureThreshold
			},
			OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
				if log == nil {
					return
				}
				log.WithFields(logrus.Fields{
					"breaker": name,
					"from":    from.String(),
					"to":      to.String(),
				}).Warn("Circuit breaker state changed")
			},
		})
	}

	return guard
}

// Complete waits for the limiter, then calls the wrapped backend. Recoverable
// requests go through the breaker.
func (g *Guard) Complete(ctx context.Context, req Request) (text string, err error) {
	err = g.limiter.Wait(ctx)
	if err != nil {
		err = errors.Wrap(err, "rate limiter wait failed")
		return text, err
	}

	if g.breaker == nil || !req.Recoverable {
		text, err = g.next.Complete(ctx, req)
		return text, err
	}

	text, err = g.breaker.Execute(func() (string, error) {
		return g.next.Complete(ctx, req)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		err = errors.Wrap(err, "generation backend unavailable")
	}

	return text, err
}

// State reports the breaker state, or "disabled" when there is no breaker.
func (g *Guard) State() (state string) {
	state = "disabled"
	if g.breaker != nil {
		state = g.breaker.State().String()
	}
	return state
}
