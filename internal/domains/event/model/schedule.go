package model

import (
	"fmt"
	"time"
)

// Status is the temporal bucket of an event relative to a reference instant.
type Status string

const (
	StatusUpcoming Status = "upcoming"
	StatusLive     Status = "live"
	StatusPast     Status = "past"
)

// Classify buckets an event against "now". The effective end is the end
// instant when present, else the start. Past wins when the effective end is
// strictly before now; upcoming when the start is strictly after now;
// everything else is live. An event whose effective end equals now exactly
// is therefore still live, not past.
func Classify(e *Event, now time.Time) Status {
	if e.EffectiveEnd().Before(now) {
		return StatusPast
	}
	if e.StartDate.After(now) {
		return StatusUpcoming
	}
	return StatusLive
}

// TimeString renders the human countdown/elapsed label for a status:
//
//	upcoming: "2d 5h left", days omitted when zero ("4h left")
//	past:     "3d ago", or "Ended recently" within the first day
//	live:     "Happening now"
//
// Durations truncate toward zero, so 90 minutes out reads "1h left".
func TimeString(e *Event, status Status, now time.Time) string {
	switch status {
	case StatusUpcoming:
		hours := int(e.StartDate.Sub(now).Hours())
		if days := hours / 24; days > 0 {
			return fmt.Sprintf("%dd %dh left", days, hours%24)
		}
		return fmt.Sprintf("%dh left", hours)
	case StatusPast:
		if days := int(now.Sub(e.EffectiveEnd()).Hours()) / 24; days > 0 {
			return fmt.Sprintf("%dd ago", days)
		}
		return "Ended recently"
	default:
		return "Happening now"
	}
}
