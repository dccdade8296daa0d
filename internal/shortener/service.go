package shortener

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/Priya00300/url-shortener-devops/internal/metrics"
)

// CreateParams describes a shorten request.
type CreateParams struct {
	TargetURL   string
	CustomAlias string
	ExpiresAt   *time.Time
}

// Service orchestrates link creation, lookup and deactivation on top of
// the allocator and repository.
type Service struct {
	alloc  *Allocator
	repo   Repository
	logger *zap.Logger
}

// NewService creates a link service.
func NewService(alloc *Allocator, repo Repository, logger *zap.Logger) *Service {
	return &Service{
		alloc:  alloc,
		repo:   repo,
		logger: logger,
	}
}

// Create allocates a code and persists a new active link. A unique
// violation at insert time means another request won the code between
// the allocator's pre-check and the insert: custom aliases fail with
// ErrAliasTaken since there is no fallback string, generated codes get
// one fresh candidate before giving up with ErrExhausted.
func (s *Service) Create(ctx context.Context, params CreateParams) (*ShortLink, error) {
	if err := validateTarget(params.TargetURL); err != nil {
		return nil, err
	}

	alloc, err := s.alloc.Allocate(ctx, params.CustomAlias)
	if err != nil {
		return nil, err
	}

	link := buildLink(alloc, params)
	if err = s.repo.Insert(ctx, link); err != nil {
		var violation *UniqueViolationError
		if !errors.As(err, &violation) {
			return nil, fmt.Errorf("inserting link %q: %w", link.Code, err)
		}
		if alloc.Custom {
			return nil, fmt.Errorf("%w: %q", ErrAliasTaken, link.Code)
		}

		link, err = s.retryGenerated(ctx, params)
		if err != nil {
			return nil, err
		}
	}

	kind := "generated"
	if link.CustomAlias {
		kind = "custom"
	}
	metrics.LinksCreated.WithLabelValues(kind).Inc()

	s.logger.Info("short link created",
		zap.String("code", string(link.Code)),
		zap.Bool("custom", link.CustomAlias),
	)

	return link, nil
}

// retryGenerated handles an insert that raced on a generated code: one
// fresh allocation, one more insert.
func (s *Service) retryGenerated(ctx context.Context, params CreateParams) (*ShortLink, error) {
	metrics.AllocationCollisions.Inc()
	s.logger.Debug("insert raced on generated code, retrying with fresh candidate")

	alloc, err := s.alloc.Allocate(ctx, "")
	if err != nil {
		return nil, err
	}

	link := buildLink(alloc, params)
	if err = s.repo.Insert(ctx, link); err != nil {
		var violation *UniqueViolationError
		if errors.As(err, &violation) {
			metrics.AllocationsExhausted.Inc()
			s.logger.Warn("insert retry raced again, giving up", zap.String("code", string(link.Code)))
			return nil, ErrExhausted
		}
		return nil, fmt.Errorf("inserting link %q: %w", link.Code, err)
	}

	return link, nil
}

// Get returns the stored link for code, or ErrNotFound.
func (s *Service) Get(ctx context.Context, code Code) (*ShortLink, error) {
	return s.repo.FindByCode(ctx, code)
}

// Deactivate soft deletes a link. Deactivation is terminal, there is no
// reactivation path.
func (s *Service) Deactivate(ctx context.Context, code Code) error {
	if err := s.repo.Deactivate(ctx, code); err != nil {
		return err
	}

	s.logger.Info("short link deactivated", zap.String("code", string(code)))
	return nil
}

func buildLink(alloc Allocation, params CreateParams) *ShortLink {
	return &ShortLink{
		Code:        alloc.Code,
		TargetURL:   params.TargetURL,
		CustomAlias: alloc.Custom,
		CreatedAt:   time.Now(),
		ExpiresAt:   params.ExpiresAt,
		Active:      true,
	}
}

func validateTarget(raw string) error {
	parsed, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTarget, err)
	}
	if (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidTarget, raw)
	}
	return nil
}
