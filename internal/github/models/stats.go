// Package models defines GitHub activity domain entities.
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Date is a calendar day. It serializes as YYYY-MM-DD in JSON and is stored
// as an ISO date string, which compares correctly as text in SQL.
type Date struct {
	time.Time
}

// NewDate truncates a timestamp to its UTC calendar day.
func NewDate(t time.Time) Date {
	t = t.UTC()
	return Date{time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(raw string) (Date, error) {
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return Date{}, err
	}
	return Date{t}, nil
}

// String returns the ISO date form.
func (d Date) String() string {
	return d.Format("2006-01-02")
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseDate(raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value implements driver.Valuer.
func (d Date) Value() (driver.Value, error) {
	return d.String(), nil
}

// Scan implements sql.Scanner.
func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		parsed, err := ParseDate(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case []byte:
		parsed, err := ParseDate(string(v))
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case time.Time:
		*d = NewDate(v)
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
}

// RepositoryList is a list of repository names stored as a JSON text column.
type RepositoryList []string

// Encode serializes the list for storage. A nil list encodes as [].
func (r RepositoryList) Encode() string {
	if r == nil {
		r = RepositoryList{}
	}
	data, err := json.Marshal(r)
	if err != nil {
		return "[]"
	}
	return string(data)
}

// DecodeRepositoryList parses a stored repository column. Corrupt or empty
// input degrades to an empty list rather than an error.
func DecodeRepositoryList(raw string) RepositoryList {
	if raw == "" {
		return RepositoryList{}
	}
	var repos RepositoryList
	if err := json.Unmarshal([]byte(raw), &repos); err != nil || repos == nil {
		return RepositoryList{}
	}
	return repos
}

// Stats is one day of GitHub activity for a user. There is no uniqueness
// guarantee on (user, date); existence is checked at the application level
// before inserting, so concurrent syncs can produce duplicate days.
type Stats struct {
	ID           string         `json:"id"`
	UserID       string         `json:"user_id"`
	Date         Date           `json:"date"`
	Commits      int            `json:"commits"`
	LinesAdded   int            `json:"lines_added"`
	LinesRemoved int            `json:"lines_removed"`
	PullRequests int            `json:"pull_requests"`
	Issues       int            `json:"issues"`
	Repositories RepositoryList `json:"repositories"`
	CreatedAt    time.Time      `json:"created_at"`
}

// DayActivity is the raw activity an ActivitySource reports for one day.
type DayActivity struct {
	Commits      int
	LinesAdded   int
	LinesRemoved int
	PullRequests int
	Issues       int
	Repositories []string
}
