package shortener

import "time"

// Code is a short link identifier: either a generated short code or a
// custom alias. Both occupy the same lookup namespace.
type Code string

// ShortLink represents a shortened URL and its lifecycle state.
type ShortLink struct {
	Code        Code
	TargetURL   string
	CustomAlias bool
	CreatedAt   time.Time
	ExpiresAt   *time.Time
	Active      bool
	ClickCount  int64
}

// Expired reports whether the link's expiry, if set, has passed at now.
func (l *ShortLink) Expired(now time.Time) bool {
	return l.ExpiresAt != nil && now.After(*l.ExpiresAt)
}

// Redirectable reports whether the link may still serve redirects at now.
// Expiry is evaluated here on every call, so a stale Active flag on an
// expired link never lets a redirect through.
func (l *ShortLink) Redirectable(now time.Time) bool {
	return l.Active && !l.Expired(now)
}
