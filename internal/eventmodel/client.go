package eventmodel

import "time"

// ClientRecord is the per-email aggregate of conversation history (§3).
type ClientRecord struct {
	Email   string         `json:"email"`
	Profile ClientProfile  `json:"profile"`
	History []HistoryEntry `json:"history"`
	EventIDs []string      `json:"event_ids"`
}

// ClientProfile carries the contact fields captured from correspondence.
type ClientProfile struct {
	Name  string `json:"name,omitempty"`
	Org   string `json:"org,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// HistoryEntry is one append-only inbound-message record. BodyPreview is
// truncated to 160 characters, matching the original source's
// append_history convention (§C.2 supplement) so the document stays bounded.
type HistoryEntry struct {
	MsgID       string         `json:"msg_id"`
	Timestamp   time.Time      `json:"ts"`
	Subject     string         `json:"subject,omitempty"`
	BodyPreview string         `json:"body_preview,omitempty"`
	Intent      string         `json:"intent,omitempty"`
	Confidence  float64        `json:"confidence"`
	UserInfo    map[string]any `json:"user_info,omitempty"`
}

const historyPreviewLimit = 160

// NewHistoryEntry builds a HistoryEntry, truncating body to the preview limit.
func NewHistoryEntry(msgID, subject, body string, ts time.Time, intent string, confidence float64, userInfo map[string]any) HistoryEntry {
	preview := body
	if runes := []rune(preview); len(runes) > historyPreviewLimit {
		preview = string(runes[:historyPreviewLimit])
	}
	return HistoryEntry{
		MsgID:       msgID,
		Timestamp:   ts,
		Subject:     subject,
		BodyPreview: preview,
		Intent:      intent,
		Confidence:  confidence,
		UserInfo:    userInfo,
	}
}
