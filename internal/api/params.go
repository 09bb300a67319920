package api

import (
	"net/url"
	"strconv"
	"time"
)

// ListParams are the optional query parameters every list endpoint accepts.
type ListParams struct {
	Search    string
	Page      int
	Limit     int
	Filter    string
	StartDate time.Time
	EndDate   time.Time
}

// Values encodes the non-zero parameters. Dates use the backend's
// YYYY-MM-DD convention.
func (p ListParams) Values() url.Values {
	q := url.Values{}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Filter != "" {
		q.Set("filter", p.Filter)
	}
	if !p.StartDate.IsZero() {
		q.Set("startDate", p.StartDate.Format("2006-01-02"))
	}
	if !p.EndDate.IsZero() {
		q.Set("endDate", p.EndDate.Format("2006-01-02"))
	}
	return q
}
