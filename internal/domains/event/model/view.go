package model

import (
	"sort"
	"strings"
	"time"
)

// StatusFilter narrows a listing by temporal bucket. "all" admits every
// status; live events appear only under "all", by design of the public
// listing tabs.
type StatusFilter string

const (
	FilterAll      StatusFilter = "all"
	FilterUpcoming StatusFilter = "upcoming"
	FilterPast     StatusFilter = "past"
)

// ParseStatusFilter maps a query parameter to a filter, defaulting to all.
func ParseStatusFilter(s string) StatusFilter {
	switch StatusFilter(strings.ToLower(strings.TrimSpace(s))) {
	case FilterUpcoming:
		return FilterUpcoming
	case FilterPast:
		return FilterPast
	default:
		return FilterAll
	}
}

// View is a listing request: one status tab plus an optional search term.
type View struct {
	Status StatusFilter
	Search string
}

// ApplyView filters and orders events for a listing. Search matches
// case-insensitively against the name or any tag. Results are ordered by
// start date ascending; ties keep their input order. The input slice is
// never modified.
func ApplyView(events []Event, v View, now time.Time) []Event {
	term := strings.ToLower(strings.TrimSpace(v.Search))

	out := make([]Event, 0, len(events))
	for i := range events {
		e := events[i]
		if !matchesStatus(&e, v.Status, now) {
			continue
		}
		if term != "" && !matchesSearch(&e, term) {
			continue
		}
		out = append(out, e)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartDate.Before(out[j].StartDate)
	})
	return out
}

func matchesStatus(e *Event, f StatusFilter, now time.Time) bool {
	switch f {
	case FilterUpcoming:
		return Classify(e, now) == StatusUpcoming
	case FilterPast:
		return Classify(e, now) == StatusPast
	default:
		return true
	}
}

func matchesSearch(e *Event, term string) bool {
	if strings.Contains(strings.ToLower(e.Name), term) {
		return true
	}
	for _, tag := range e.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}
