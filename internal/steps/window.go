package steps

import "regexp"

// ConfirmationWindow is the resolved date/time request spec §4.3.2 calls
// "ConfirmationWindow": the date in ISO form, an optional start/end time,
// and where it came from.
type ConfirmationWindow struct {
	DateISO string
	Start   string
	End     string
	Source  string
}

var timeRangeRe = regexp.MustCompile(`\b([01]?\d|2[0-3]):([0-5]\d)\s*(?:-|–|to)\s*([01]?\d|2[0-3]):([0-5]\d)\b`)
var singleTimeRe = regexp.MustCompile(`\bat\s+([01]?\d|2[0-3]):([0-5]\d)\b`)

// defaultWindowStart/End is the loop-break window spec §4.3.2 names:
// "loop-break to a default 14:00-18:00 window after two rounds".
const defaultWindowStart = "14:00"
const defaultWindowEnd = "18:00"

// resolveWindow extracts a ConfirmationWindow from message text, reusing
// the site-visit subsystem's date extraction/normalization (the same
// dotted/ISO date detection applies to event dates) and adding a
// start/end time parse on top.
func resolveWindow(messageText string, isoDate string) ConfirmationWindow {
	window := ConfirmationWindow{DateISO: isoDate}
	if isoDate == "" {
		return window
	}
	if match := timeRangeRe.FindStringSubmatch(messageText); len(match) == 5 {
		window.Start = match[1] + ":" + match[2]
		window.End = match[3] + ":" + match[4]
		window.Source = "message_range"
		return window
	}
	if match := singleTimeRe.FindStringSubmatch(messageText); len(match) == 3 {
		window.Start = match[1] + ":" + match[2]
		window.Source = "message_single"
		return window
	}
	return window
}
