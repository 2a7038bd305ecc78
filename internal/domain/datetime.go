package domain

import (
	"errors"
	"strings"
	"time"
)

// ErrInvalidDateTime is returned by ParseDateTime for unparseable input.
var ErrInvalidDateTime = errors.New("invalid date-time")

// Zoned layouts carry their own offset; local layouts are what an HTML
// datetime-local input produces and are read in the caller's location.
var (
	zonedLayouts = []string{time.RFC3339Nano, time.RFC3339}
	localLayouts = []string{"2006-01-02T15:04:05", "2006-01-02T15:04", "2006-01-02 15:04"}
)

// ParseDateTime parses a scheduled date-time. loc applies to inputs without an offset.
func ParseDateTime(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrInvalidDateTime
	}
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidDateTime
}
