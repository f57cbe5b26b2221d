// Package gate implements the order-independent confirmation gate from
// spec §4.5: an accepted offer only reaches HIL once billing details are
// complete and, if required, the deposit is paid — regardless of which
// order the client satisfies those two prerequisites in.
//
// Ported in meaning from
// original_source/backend/workflows/common/confirmation_gate.py:
// GateStatus, check_confirmation_gate, get_next_prompt, and
// auto_continue_if_ready's selective deposit-only resync (billing data
// captured in memory from the current message must never be clobbered by
// a stale on-disk copy).
package gate
