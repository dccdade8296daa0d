package ingest

import (
	"github.com/Priya00300/url-shortener-devops/internal/analytics"
)

// IngestClickRequest carries a single click event.
type IngestClickRequest struct {
	Body analytics.ClickEvent
}

// IngestClickResponse acknowledges an accepted event.
type IngestClickResponse struct {
	Body struct {
		Accepted int `doc:"Number of events accepted" example:"1" json:"accepted"`
	}
}

// IngestBatchRequest carries a bounded batch of click events.
type IngestBatchRequest struct {
	Body []analytics.ClickEvent `minItems:"1" maxItems:"1000"`
}

// IngestBatchResponse acknowledges an accepted batch.
type IngestBatchResponse struct {
	Body struct {
		Accepted int `doc:"Number of events accepted" example:"250" json:"accepted"`
	}
}

// StatsRequest identifies the short code to aggregate clicks for.
type StatsRequest struct {
	Code string `doc:"The short code" example:"abc123" path:"code"`
	Days int    `doc:"Days of daily breakdown to include" example:"14" query:"days" default:"14" minimum:"1" maximum:"90"`
}

// StatsResponse is the aggregated click summary for one short code.
type StatsResponse struct {
	Body analytics.LinkStats
}
