package analytics

import (
	"testing"
	"time"
)

func TestNewClickEvent(t *testing.T) {
	meta := RequestMeta{
		ClientIP:       "203.0.113.7",
		UserAgent:      "curl/8.0",
		Referer:        "https://ref.example",
		CountryHint:    "DE",
		AcceptLanguage: "de-DE",
	}
	at := time.Now()

	event := NewClickEvent("abc123", meta, at)

	if event.Code != "abc123" {
		t.Errorf("code is %q, want %q", event.Code, "abc123")
	}
	if !event.OccurredAt.Equal(at) {
		t.Errorf("occurredAt is %v, want %v", event.OccurredAt, at)
	}
	if event.ClientIP != meta.ClientIP {
		t.Errorf("clientIp is %q, want %q", event.ClientIP, meta.ClientIP)
	}
	if event.UserAgent != meta.UserAgent {
		t.Errorf("userAgent is %q, want %q", event.UserAgent, meta.UserAgent)
	}
	if event.Referer != meta.Referer {
		t.Errorf("referer is %q, want %q", event.Referer, meta.Referer)
	}
	if event.CountryHint != meta.CountryHint {
		t.Errorf("countryHint is %q, want %q", event.CountryHint, meta.CountryHint)
	}
	if event.AcceptLanguage != meta.AcceptLanguage {
		t.Errorf("acceptLanguage is %q, want %q", event.AcceptLanguage, meta.AcceptLanguage)
	}
	if event.EventID == "" {
		t.Error("event id is empty")
	}

	other := NewClickEvent("abc123", meta, at)
	if other.EventID == event.EventID {
		t.Error("two events share the same event id")
	}
}
