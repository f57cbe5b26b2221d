// Package dateengine generates candidate event dates for Step 2 (Date
// Confirmation) when the client's requested date is unavailable or
// unconfirmed.
//
// Given an anchor date, scheduling preferences, and a forbidden set
// (calendar-booked dates plus dates already proposed in earlier attempts),
// it produces up to five ISO candidates, prioritized by: matching preferred
// weekdays, dates the client's message already mentioned, week-scope bounds
// ("first week of March"), then a 45-180 day fallback horizon that widens
// with each retry attempt.
//
// No single original_source file isolates this logic — it is interleaved
// inside step2_handler.py/confirmation_flow.py — so the prioritization
// rules here are grounded directly on spec.md §4.11's prose rather than a
// literal port.
package dateengine
