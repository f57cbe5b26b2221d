package dateengine

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
)

// weekdayNames gives locale-appropriate weekday names for the languages the
// tenant catalog supports (English and German, matching the teacher's own
// bilingual title/metadata handling in internal/identification). Falls back
// to English for any other tag.
var weekdayNames = map[string][7]string{
	"en": {"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
	"de": {"Sonntag", "Montag", "Dienstag", "Mittwoch", "Donnerstag", "Freitag", "Samstag"},
}

// WeekdayName renders a weekday in the tenant's preferred language. langTag
// is a BCP 47 tag string such as "de-CH" or "en"; an unrecognized, empty, or
// unparseable tag resolves to English.
func WeekdayName(day time.Weekday, langTag string) string {
	base := "en"
	if tag, err := language.Parse(langTag); err == nil {
		if b, confidence := tag.Base(); confidence != language.No {
			base = b.String()
		}
	}
	names, ok := weekdayNames[base]
	if !ok {
		names = weekdayNames["en"]
	}
	return names[int(day)]
}

// ActionRow is a machine-readable representation of one proposed date,
// suitable for rendering as a client-clickable action alongside the prose
// list. Mirrors spec.md §4.11's "rendered both as a prose list and as
// machine-readable action rows (one action per date)".
type ActionRow struct {
	Action   string `json:"action"`
	DateISO  string `json:"date_iso"`
	TimeSlot string `json:"time_slot"`
	Label    string `json:"label"`
}

// RenderProposals formats proposals as a prose bullet list (for the draft
// reply body) and a parallel slice of machine-readable action rows, using
// langTag for weekday naming.
func RenderProposals(proposals []Proposal, langTag string) (prose string, rows []ActionRow) {
	lines := make([]string, 0, len(proposals))
	rows = make([]ActionRow, 0, len(proposals))

	for _, p := range proposals {
		date, err := time.Parse("2006-01-02", p.DateISO)
		weekday := ""
		if err == nil {
			weekday = WeekdayName(date.Weekday(), langTag)
		}

		label := p.DateISO
		if weekday != "" {
			label = fmt.Sprintf("%s, %s", weekday, p.DateISO)
		}

		lines = append(lines, fmt.Sprintf("- %s (%s)", label, p.TimeSlot))
		rows = append(rows, ActionRow{
			Action:   "select_candidate_date",
			DateISO:  p.DateISO,
			TimeSlot: p.TimeSlot,
			Label:    label,
		})
	}

	return strings.Join(lines, "\n"), rows
}
