package shortener

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Priya00300/url-shortener-devops/internal/analytics"
	"github.com/Priya00300/url-shortener-devops/internal/metrics"
)

// incrementTimeout bounds the detached click count update.
const incrementTimeout = 2 * time.Second

// Resolver serves the redirect path: look up a code, decide liveness,
// record the click without delaying the response.
type Resolver struct {
	repo     Repository
	dispatch analytics.DispatchFunc
	logger   *zap.Logger
}

// NewResolver creates a resolver. dispatch receives one click event per
// successful resolution and must not block.
func NewResolver(repo Repository, dispatch analytics.DispatchFunc, logger *zap.Logger) *Resolver {
	return &Resolver{
		repo:     repo,
		dispatch: dispatch,
		logger:   logger,
	}
}

// Resolve returns the target URL for code. Unknown codes fail with
// ErrNotFound; links that are deactivated or past their expiry fail with
// ErrExpired. On success the click event goes to the dispatcher and the
// click counter update runs in a detached goroutine, so returning the
// target is never ordered after either.
func (r *Resolver) Resolve(ctx context.Context, code Code, meta analytics.RequestMeta) (string, error) {
	link, err := r.repo.FindByCode(ctx, code)
	if errors.Is(err, ErrNotFound) {
		metrics.Redirects.WithLabelValues("not_found").Inc()
		return "", err
	}
	if err != nil {
		return "", fmt.Errorf("resolving %q: %w", code, err)
	}

	now := time.Now()
	if !link.Redirectable(now) {
		metrics.Redirects.WithLabelValues("expired").Inc()
		return "", fmt.Errorf("%w: %q", ErrExpired, code)
	}

	r.dispatch(analytics.NewClickEvent(string(link.Code), meta, now))
	go r.incrementClickCount(link.Code)

	metrics.Redirects.WithLabelValues("ok").Inc()
	return link.TargetURL, nil
}

// incrementClickCount updates the local counter outside the request
// lifetime. Failures are logged only; the counter is best effort and may
// under-count.
func (r *Resolver) incrementClickCount(code Code) {
	ctx, cancel := context.WithTimeout(context.Background(), incrementTimeout)
	defer cancel()

	if err := r.repo.IncrementClickCount(ctx, code); err != nil {
		r.logger.Warn("failed to increment click count",
			zap.String("code", string(code)),
			zap.Error(err),
		)
	}
}
