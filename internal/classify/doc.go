// Package classify implements the three-tier intent classification and
// change-signal detection described in spec §4.8: cheap keyword/regex gates,
// a deterministic intent/Q&A classifier, and a fallback to the LLM adapter
// when the cheap tiers are inconclusive.
//
// Ported in meaning from original_source's
// backend/detection/intent/classifier.py: the same tiering, the same
// nonsense gate (no workflow signal + gibberish → silently ignore; no
// workflow signal + not gibberish → defer to the confidence gate), and the
// same Q&A sub-type → workflow step anchor table.
package classify
