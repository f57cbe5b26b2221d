// Package changedetect implements the change detector and DAG router from
// spec §4.4: deciding whether an inbound message revises a fact the
// workflow already settled (the date, the room, a requirement, a product),
// and if so, which step owns re-evaluating it.
//
// Detection is dual-condition by design: a revision-signal phrase alone
// ("actually, let's change it") is not enough, and a new date/room/count
// alone is not enough either (a message can simply be restating what it
// already said). Only the combination is a change. This mirrors the
// original system's change-detection pass inside its routing layer
// (backend/workflows/runtime/router.py's dispatch loop calls out to this
// kind of gate before trusting a step's extracted fields); no single
// original_source file isolates the rule table the way spec §4.4 does, so
// the table itself is ported from spec §4.4's prose.
package changedetect
