package shortener

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Priya00300/url-shortener-devops/internal/metrics"
)

// maxAttemptsPerLength bounds how many candidates Allocate probes before
// growing the code length.
const maxAttemptsPerLength = 10

// Allocation is the outcome of a successful code allocation.
type Allocation struct {
	Code   Code
	Custom bool
}

// Allocator reserves codes for new links, either by validating a caller
// supplied alias or by probing the code space for a free generated code.
// Its existence checks are an optimization under low contention; racing
// allocations are settled by the repository's uniqueness constraint at
// insert time.
type Allocator struct {
	space  *CodeSpace
	repo   Repository
	logger *zap.Logger
}

// NewAllocator creates an allocator over the given code space and repository.
func NewAllocator(space *CodeSpace, repo Repository, logger *zap.Logger) *Allocator {
	return &Allocator{
		space:  space,
		repo:   repo,
		logger: logger,
	}
}

// Allocate returns a code for a new link. A non-empty customAlias is
// normalized, validated and reserved directly, with no retry loop. An
// empty alias triggers generated allocation: up to maxAttemptsPerLength
// candidates at each length from DefaultCodeLength through MaxCodeLength,
// returning the first one no stored link holds, or ErrExhausted.
func (a *Allocator) Allocate(ctx context.Context, customAlias string) (Allocation, error) {
	if customAlias != "" {
		return a.allocateCustom(ctx, customAlias)
	}
	return a.allocateGenerated(ctx)
}

func (a *Allocator) allocateCustom(ctx context.Context, customAlias string) (Allocation, error) {
	alias := NormalizeAlias(customAlias)
	if !ValidAlias(alias) {
		return Allocation{}, fmt.Errorf("%w: %q", ErrInvalidAlias, customAlias)
	}

	taken, err := a.repo.Exists(ctx, alias)
	if err != nil {
		return Allocation{}, fmt.Errorf("checking alias %q: %w", alias, err)
	}
	if taken {
		return Allocation{}, fmt.Errorf("%w: %q", ErrAliasTaken, alias)
	}

	return Allocation{Code: alias, Custom: true}, nil
}

func (a *Allocator) allocateGenerated(ctx context.Context) (Allocation, error) {
	length := DefaultCodeLength
	for {
		for attempt := 1; attempt <= maxAttemptsPerLength; attempt++ {
			candidate := a.space.Candidate(length)

			taken, err := a.repo.Exists(ctx, candidate)
			if err != nil {
				return Allocation{}, fmt.Errorf("checking candidate %q: %w", candidate, err)
			}
			if !taken {
				return Allocation{Code: candidate, Custom: false}, nil
			}

			metrics.AllocationCollisions.Inc()
			a.logger.Debug("short code candidate collided",
				zap.String("candidate", string(candidate)),
				zap.Int("length", length),
				zap.Int("attempt", attempt),
			)
		}

		if length == MaxCodeLength {
			break
		}
		length = NextLength(length)
	}

	metrics.AllocationsExhausted.Inc()
	a.logger.Warn("short code allocation exhausted",
		zap.Int("max_length", MaxCodeLength),
		zap.Int("attempts_per_length", maxAttemptsPerLength),
	)

	return Allocation{}, ErrExhausted
}
