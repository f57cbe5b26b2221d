// Package capture implements out-of-order field capture and promotion
// (spec §4.9): a client message can name a field that belongs to a later
// step ("our VAT number is ..." while still at Step 2) before the thread
// reaches the step that owns it. Fields land in EventRecord.Captured
// keyed by dotted path, with a deferred-intent marker recording which step
// still needs to claim them; PromoteCapturedFields lets a step handler pull
// its own fields out once the thread reaches it.
//
// Ported in meaning from original_source's workflows/common/capture.py:
// the same FieldSpec table (alias, path, owning step, deferred-intent
// label, hold-until-owner flag) and the same statement/question split used
// to decide whether a captured value should also persist into the live
// requirements set.
package capture
