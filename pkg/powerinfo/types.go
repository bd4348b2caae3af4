package powerinfo

import (
	"fmt"
	"strings"
)

// Status is the classification of a battery sample against the
// configured thresholds.
type Status string

const (
	// StatusLow means the battery is discharging and at or below the
	// low threshold.
	StatusLow Status = "low"
	// StatusHigh means the battery is on external power and at or above
	// the high threshold.
	StatusHigh Status = "high"
	// StatusNormal is everything else.
	StatusNormal Status = "normal"
)

const (
	// TimeUnknown is the SecondsRemaining sentinel for "the OS cannot
	// tell" (includes the unlimited case, i.e. on AC power).
	TimeUnknown = -1

	// maxPlausibleSeconds guards against drivers reporting bogus huge
	// estimates. Anything above one week is not a real estimate.
	maxPlausibleSeconds = 7 * 24 * 60 * 60
)

// Sample is one point-in-time battery reading. It is recomputed every
// poll cycle and never persisted.
type Sample struct {
	// Percent is the rounded charge percentage, 0-100.
	Percent int `json:"percent"`
	// Plugged is true when the host is on external power.
	Plugged bool `json:"plugged"`
	// SecondsRemaining is the estimated time to empty (discharging) or
	// to full (charging), or TimeUnknown.
	SecondsRemaining int `json:"secondsRemaining"`
	// Status is derived from Percent and Plugged via Classify.
	Status Status `json:"status"`
}

// Classify maps a reading to a Status. Rules are evaluated in order,
// first match wins, and both threshold boundaries are inclusive.
func Classify(percent int, plugged bool, lowThreshold, highThreshold int) Status {
	switch {
	case !plugged && percent <= lowThreshold:
		return StatusLow
	case plugged && percent >= highThreshold:
		return StatusHigh
	default:
		return StatusNormal
	}
}

// FormatDuration renders a seconds-remaining value as H:MM:SS.
// TimeUnknown (and any negative value) renders as "unknown". Values
// above one week render as "no driver estimate" because some drivers
// report garbage instead of admitting they don't know.
func FormatDuration(secs int) string {
	if secs < 0 {
		return "unknown"
	}
	if secs > maxPlausibleSeconds {
		return "no driver estimate"
	}

	mm, ss := secs/60, secs%60
	hh, mm := mm/60, mm%60
	return fmt.Sprintf("%d:%02d:%02d", hh, mm, ss)
}

// Message renders the human-readable status line that is both logged
// every cycle and sent through the notification channels.
func (s Sample) Message() string {
	return fmt.Sprintf("Battery %s — %d%% (plugged: %t) — %s",
		strings.ToUpper(string(s.Status)), s.Percent, s.Plugged, FormatDuration(s.SecondsRemaining))
}
