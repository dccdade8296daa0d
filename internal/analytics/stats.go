package analytics

import "time"

// LinkStats summarizes the recorded clicks for one code.
type LinkStats struct {
	Code        string        `json:"code"`
	TotalClicks int64         `json:"totalClicks"`
	LastClickAt *time.Time    `json:"lastClickAt,omitempty"`
	Daily       []DailyClicks `json:"daily,omitempty"`
}

// DailyClicks is one day of click volume.
type DailyClicks struct {
	Date   string `json:"date"`
	Clicks int64  `json:"clicks"`
}
