package handlers

import (
	"time"

	"github.com/Priya00300/url-shortener-devops/internal/analytics"
)

// LinkBody is the API representation of a short link.
type LinkBody struct {
	Code        string     `doc:"The short code"                           example:"abc123"                             json:"code"`
	ShortURL    string     `doc:"The full short URL"                       example:"http://localhost:8888/abc123"       json:"shortUrl"`
	TargetURL   string     `doc:"The destination URL"                      example:"https://example.com/very/long/path" json:"targetUrl"`
	CustomAlias bool       `doc:"Whether the code is a caller-chosen alias" json:"customAlias"`
	CreatedAt   time.Time  `doc:"Creation time"                            json:"createdAt"`
	ExpiresAt   *time.Time `doc:"Expiry time, if set"                      json:"expiresAt,omitempty"`
	Active      bool       `doc:"Whether the link still redirects"         json:"active"`
	ClickCount  int64      `doc:"Best-effort click total"                  json:"clickCount"`
}

// CreateLinkRequest is the request body for creating a short link.
type CreateLinkRequest struct {
	Body struct {
		TargetURL   string     `doc:"The URL to shorten"           example:"https://example.com/very/long/path" json:"targetUrl"`
		CustomAlias string     `doc:"Optional caller-chosen alias" example:"my-launch"                          json:"customAlias,omitempty"`
		ExpiresAt   *time.Time `doc:"Optional expiry time"         json:"expiresAt,omitempty"`
	}
}

// CreateLinkResponse is the response for a successfully created link.
type CreateLinkResponse struct {
	Headers struct {
		Location string `doc:"The short URL" header:"Location"`
	}
	Body LinkBody
}

// RedirectRequest identifies the code to redirect.
type RedirectRequest struct {
	Code string `doc:"The short code" example:"abc123" path:"code"`
}

// RedirectResponse sends the browser to the target URL.
type RedirectResponse struct {
	Status  int
	Headers struct {
		Location string `doc:"The destination URL" header:"Location"`
	}
}

// GetLinkRequest identifies the link to fetch.
type GetLinkRequest struct {
	Code string `doc:"The short code" example:"abc123" path:"code"`
}

// GetLinkResponse returns the stored link details.
type GetLinkResponse struct {
	Body LinkBody
}

// DeleteLinkRequest identifies the link to deactivate.
type DeleteLinkRequest struct {
	Code string `doc:"The short code" example:"abc123" path:"code"`
}

// DeleteLinkResponse carries no body.
type DeleteLinkResponse struct{}

// GetLinkStatsRequest identifies the link whose click stats to fetch.
type GetLinkStatsRequest struct {
	Code string `doc:"The short code" example:"abc123" path:"code"`
}

// GetLinkStatsResponse returns aggregated click statistics.
type GetLinkStatsResponse struct {
	Body analytics.LinkStats
}
