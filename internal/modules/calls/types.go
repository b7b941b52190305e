package calls

import (
	"errors"
	"time"
)

var ErrInvalidFilter = errors.New("invalid filter")

const (
	defaultLimit = 500
	maxLimit     = 1000
)

// ListFilter narrows the call summaries returned. Zero values mean "no
// constraint"; an absent limit falls back to defaultLimit.
type ListFilter struct {
	Status   string
	CallType string
	Caller   string
	From     time.Time
	To       time.Time
	Limit    int
	Offset   int
}

type ListQuery struct {
	Status   string `form:"status"`
	CallType string `form:"type"`
	Caller   string `form:"caller"`
	From     string `form:"from"`
	To       string `form:"to"`
	Limit    int    `form:"limit"`
	Offset   int    `form:"offset"`
}

// Filter validates the raw query values and converts them to a ListFilter.
func (q *ListQuery) Filter() (ListFilter, error) {
	f := ListFilter{
		Status:   q.Status,
		CallType: q.CallType,
		Caller:   q.Caller,
		Limit:    q.Limit,
		Offset:   q.Offset,
	}
	if q.From != "" {
		t, err := parseTimestamp(q.From)
		if err != nil {
			return ListFilter{}, err
		}
		f.From = t
	}
	if q.To != "" {
		t, err := parseTimestamp(q.To)
		if err != nil {
			return ListFilter{}, err
		}
		f.To = t
	}
	if f.Limit < 0 || f.Offset < 0 {
		return ListFilter{}, ErrInvalidFilter
	}
	if f.Limit == 0 {
		f.Limit = defaultLimit
	}
	if f.Limit > maxLimit {
		f.Limit = maxLimit
	}
	if !f.From.IsZero() && !f.To.IsZero() && f.To.Before(f.From) {
		return ListFilter{}, ErrInvalidFilter
	}
	return f, nil
}

// parseTimestamp accepts RFC 3339 or a plain date.
func parseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, ErrInvalidFilter
	}
	return t, nil
}
