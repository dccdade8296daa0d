package shortener

import "context"

// Repository persists short links. Generated codes and custom aliases
// share one uniqueness constraint; implementations report collisions on
// it as *UniqueViolationError. The repository is the source of truth for
// uniqueness and liveness, the allocator's pre-checks only reduce
// constraint-violation round trips.
type Repository interface {
	// Insert stores a new link. It returns *UniqueViolationError when the
	// code is already taken.
	Insert(ctx context.Context, link *ShortLink) error

	// FindByCode returns the link matching code, or ErrNotFound.
	FindByCode(ctx context.Context, code Code) (*ShortLink, error)

	// Exists reports whether any link, active or not, holds code.
	Exists(ctx context.Context, code Code) (bool, error)

	// IncrementClickCount bumps the stored click counter for code.
	IncrementClickCount(ctx context.Context, code Code) error

	// Deactivate soft deletes the link matching code. It returns
	// ErrNotFound when no such link exists.
	Deactivate(ctx context.Context, code Code) error
}
