package steps

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"eventkernel/internal/eventmodel"
)

// RequirementsHash returns a stable digest of req, used by Step 3 and the
// change detector to decide when a previously-locked room needs
// re-evaluation (spec glossary: "Requirements hash").
func RequirementsHash(req eventmodel.Requirements) string {
	special := append([]string(nil), req.SpecialRequirements...)
	sort.Strings(special)
	material := fmt.Sprintf("participants=%d|layout=%s|room=%s|special=%s|duration=%g",
		req.Participants, req.Layout, req.PreferredRoom, strings.Join(special, ","), req.EventDurationHours)
	sum := sha256.Sum256([]byte(material))
	return hex.EncodeToString(sum[:])[:16]
}

// LockRoomEvalHash returns the value to stamp into room_eval_hash at the
// moment a room is locked: simply the requirements hash at that instant
// (spec glossary: "Room eval hash — the value of the requirements hash at
// the time a room was locked"). A later requirements edit changes
// RequirementsHash and so invalidates the comparison in Step 3; a date
// change invalidates it explicitly via the DAG router instead (spec §4.4),
// since the date itself is not part of the requirements hash.
func LockRoomEvalHash(req eventmodel.Requirements) string {
	return RequirementsHash(req)
}
