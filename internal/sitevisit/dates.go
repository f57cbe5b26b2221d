package sitevisit

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"eventkernel/internal/eventmodel"
)

// defaultWeekdays and defaultHours are the tenant defaults from spec.md
// §4.10: "weekdays Mon-Fri, slots 10/14/16".
var defaultWeekdays = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday,
}

var defaultHours = []int{10, 14, 16}

const maxProposedSlots = 5

// BlockedDates returns the ISO dates (YYYY-MM-DD) of every non-cancelled
// event in db other than excludeEventID. Site visits cannot be booked on
// these days. Mirrors get_event_dates.
func BlockedDates(db *eventmodel.Database, excludeEventID string) []string {
	var dates []string
	for _, event := range db.Events {
		if event.EventID == excludeEventID {
			continue
		}
		if strings.EqualFold(string(event.Status), "cancelled") {
			continue
		}
		dateISO := event.RequestedWindow.DateISO
		if dateISO == "" {
			continue
		}
		if iso, ok := NormalizeDate(dateISO); ok {
			dates = append(dates, iso)
		}
	}
	return dates
}

// NormalizeDate accepts either "dd.mm.yyyy" or an ISO-prefixed string and
// returns "YYYY-MM-DD". Mirrors the repeated dd.mm.yyyy-to-ISO conversion
// inlined throughout site_visit_handler.py.
func NormalizeDate(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	if strings.Contains(raw, ".") {
		parts := strings.Split(raw, ".")
		if len(parts) != 3 {
			return "", false
		}
		day, errD := strconv.Atoi(parts[0])
		month, errM := strconv.Atoi(parts[1])
		year, errY := strconv.Atoi(parts[2])
		if errD != nil || errM != nil || errY != nil {
			return "", false
		}
		return fmt.Sprintf("%04d-%02d-%02d", year, month, day), true
	}
	if len(raw) >= 10 {
		return raw[:10], true
	}
	return raw, true
}

// GenerateSlots produces up to maxProposedSlots "dd.mm.yyyy at HH:MM" slots
// starting the day after now, skipping weekends and any date present in
// blockedDates. Mirrors _generate_visit_slots (definition absent from the
// filtered original_source dump; reasoned from spec.md's default weekday
// and hour list).
func GenerateSlots(now time.Time, blockedDates []string) []string {
	blocked := make(map[string]struct{}, len(blockedDates))
	for _, d := range blockedDates {
		blocked[d] = struct{}{}
	}

	isAllowedWeekday := func(day time.Weekday) bool {
		for _, wd := range defaultWeekdays {
			if wd == day {
				return true
			}
		}
		return false
	}

	var slots []string
	cursor := now.AddDate(0, 0, 1)
	for i := 0; i < 30 && len(slots) < maxProposedSlots; i++ {
		date := cursor.AddDate(0, 0, i)
		if !isAllowedWeekday(date.Weekday()) {
			continue
		}
		iso := date.Format("2006-01-02")
		if _, isBlocked := blocked[iso]; isBlocked {
			continue
		}
		for _, hour := range defaultHours {
			if len(slots) >= maxProposedSlots {
				break
			}
			slots = append(slots, fmt.Sprintf("%s at %02d:00", date.Format("02.01.2006"), hour))
		}
	}
	return slots
}

var (
	dottedDatePattern = regexp.MustCompile(`\b(\d{1,2})\.(\d{1,2})\.(\d{4})\b`)
	isoDatePattern    = regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{2})\b`)
	ordinalPattern    = regexp.MustCompile(`\b(1st|2nd|3rd|4th|5th|first|second|third|fourth|fifth|option\s*[1-5]|#[1-5])\b`)
)

// ParseSlotSelection matches messageText against the offered slots, either
// by ordinal reference ("the second one", "option 2") or by a date the
// message shares with a proposed slot. Mirrors _parse_slot_selection.
func ParseSlotSelection(messageText string, slots []string) string {
	normalized := strings.ToLower(messageText)
	if idx, ok := ordinalIndex(normalized); ok && idx >= 0 && idx < len(slots) {
		return slots[idx]
	}
	for _, slot := range slots {
		datePart := strings.SplitN(slot, " at ", 2)[0]
		if strings.Contains(messageText, datePart) {
			return slot
		}
	}
	return ""
}

func ordinalIndex(normalized string) (int, bool) {
	match := ordinalPattern.FindString(normalized)
	if match == "" {
		return 0, false
	}
	switch {
	case strings.Contains(match, "1") || strings.Contains(match, "first"):
		return 0, true
	case strings.Contains(match, "2") || strings.Contains(match, "second"):
		return 1, true
	case strings.Contains(match, "3") || strings.Contains(match, "third"):
		return 2, true
	case strings.Contains(match, "4") || strings.Contains(match, "fourth"):
		return 3, true
	case strings.Contains(match, "5") || strings.Contains(match, "fifth"):
		return 4, true
	}
	return 0, false
}

// ExtractDateFromMessage pulls the first recognizable date (dotted or ISO)
// out of free text. Mirrors _extract_date_from_message.
func ExtractDateFromMessage(messageText string) string {
	if m := dottedDatePattern.FindString(messageText); m != "" {
		return m
	}
	if m := isoDatePattern.FindString(messageText); m != "" {
		return m
	}
	return ""
}

// ParseSlot splits a "dd.mm.yyyy at HH:MM" slot string into its ISO date
// and time-of-day components. Mirrors _parse_slot.
func ParseSlot(slot string) (dateISO, timeSlot string) {
	parts := strings.SplitN(slot, " at ", 2)
	datePart := strings.TrimSpace(parts[0])
	if len(parts) == 2 {
		timeSlot = strings.TrimSpace(parts[1])
	}
	iso, ok := NormalizeDate(datePart)
	if !ok {
		return "", timeSlot
	}
	return iso, timeSlot
}
