package analytics

import (
	"time"

	"github.com/google/uuid"
)

// TopicClickRecorded is the stream topic click events are published to
// between the ingestion endpoint and the persistence consumer.
const TopicClickRecorded = "clicks.recorded"

// RequestMeta carries the redirect request attributes that describe a click.
type RequestMeta struct {
	ClientIP       string
	UserAgent      string
	Referer        string
	CountryHint    string
	AcceptLanguage string
}

// ClickEvent is the record of one redirect, delivered best-effort to the
// analytics service. An event is built once per redirect and never
// mutated afterwards.
type ClickEvent struct {
	EventID        string    `json:"eventId"`
	Code           string    `json:"code"`
	OccurredAt     time.Time `json:"occurredAt"`
	UserAgent      string    `json:"userAgent,omitempty"`
	Referer        string    `json:"referer,omitempty"`
	ClientIP       string    `json:"clientIp,omitempty"`
	CountryHint    string    `json:"countryHint,omitempty"`
	AcceptLanguage string    `json:"acceptLanguage,omitempty"`
}

// NewClickEvent builds the click event for one redirect of code.
func NewClickEvent(code string, meta RequestMeta, occurredAt time.Time) *ClickEvent {
	return &ClickEvent{
		EventID:        uuid.NewString(),
		Code:           code,
		OccurredAt:     occurredAt,
		UserAgent:      meta.UserAgent,
		Referer:        meta.Referer,
		ClientIP:       meta.ClientIP,
		CountryHint:    meta.CountryHint,
		AcceptLanguage: meta.AcceptLanguage,
	}
}

// DispatchFunc hands a click event to the dispatcher without blocking.
type DispatchFunc func(*ClickEvent)
