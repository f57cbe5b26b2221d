package steps

import (
	"regexp"
	"strings"
)

// billingMarkers locate an explicit billing section inside a larger
// message body, grounded on step1_handler.py's _extract_billing_from_body
// marker list.
var billingMarkers = []*regexp.Regexp{
	regexp.MustCompile(`(?is)(?:our\s+)?billing\s+address(?:\s+is)?[:\s]*(.+?)(?:\n\n|Best|Kind|Thank|Regards|$)`),
	regexp.MustCompile(`(?is)invoice\s+(?:to|address)[:\s]*(.+?)(?:\n\n|Best|Kind|Thank|Regards|$)`),
	regexp.MustCompile(`(?is)send\s+invoice\s+to[:\s]*(.+?)(?:\n\n|Best|Kind|Thank|Regards|$)`),
}

var postalLikeRe = regexp.MustCompile(`\b\d{4,6}\b`)

// looksLikeBillingFragment approximates _looks_like_billing_fragment: a
// candidate fragment reads like an address when it carries a postal-code
// shaped token and at least one comma-separated component (street, city).
func looksLikeBillingFragment(fragment string) bool {
	if len(fragment) < 8 {
		return false
	}
	return postalLikeRe.MatchString(fragment) && strings.Contains(fragment, ",")
}

// ExtractBillingFragment extracts a billing address fragment embedded in a
// larger message body (spec §4.3.1: "even embedded in a larger request"),
// or "" if none is found.
func ExtractBillingFragment(body string) string {
	for _, marker := range billingMarkers {
		match := marker.FindStringSubmatch(body)
		if len(match) < 2 {
			continue
		}
		fragment := match[1]
		if looksLikeBillingFragment(fragment) {
			return trimFragment(fragment)
		}
	}
	if looksLikeBillingFragment(body) {
		return trimFragment(body)
	}
	return ""
}

func trimFragment(s string) string {
	runes := []rune(s)
	for len(runes) > 0 && (runes[len(runes)-1] == ' ' || runes[len(runes)-1] == '\n' || runes[len(runes)-1] == '\t' || runes[len(runes)-1] == '.') {
		runes = runes[:len(runes)-1]
	}
	for len(runes) > 0 && (runes[0] == ' ' || runes[0] == '\n' || runes[0] == '\t') {
		runes = runes[1:]
	}
	return string(runes)
}
