package steps

import (
	"fmt"
	"sort"
	"strings"
)

// Step3 runs room availability (spec §4.3.3). It runs the preStepChecks
// cross-cutting interceptors first whenever it has no caller step or the
// record's current step is already 3, which covers both a direct entry and
// Step 2's inline autorun (Step 2 sets the current step to 3 before handing
// over).
func Step3(deps Dependencies, turn Turn) Result {
	record := turn.Record

	if record.CallerStep == 0 || record.CurrentStep == 3 {
		if classification, result, handled := preStepChecks(deps, turn, 3); handled {
			_ = classification
			return result
		}
	}

	record.CurrentStep = 3
	currentHash := RequirementsHash(record.Requirements)

	if record.LockedRoomID != "" && record.RoomEvalHash == currentHash {
		return advanceFromRoom(deps, turn)
	}

	if explicitRoom, ok := explicitRoomChoice(turn.UserInfo); ok {
		room, found, err := deps.Catalog.FindRoom(backgroundCtx, explicitRoom)
		if err != nil || !found {
			return Result{Action: "room_not_found", DraftBody: "I couldn't find a room named \"" + explicitRoom + "\" — could you pick from the options I sent?", Halt: true}
		}
		if room.Capacity < record.Requirements.Participants {
			return Result{Action: "room_too_small", DraftBody: fmt.Sprintf("%s seats up to %d, which is below your %d guests — would you like a larger room instead?", room.Name, room.Capacity, record.Requirements.Participants), Halt: true}
		}
		record.LockedRoomID = room.Name
		record.RoomEvalHash = LockRoomEvalHash(record.Requirements)
		record.GatekeeperPassed["step3"] = true
		record.AppendAudit(3, 4, "room_locked", "system", deps.now())
		return advanceFromRoom(deps, turn)
	}

	rooms, err := deps.Catalog.RoomsWithCapacity(backgroundCtx, record.Requirements.Participants, record.Requirements.SpecialRequirements)
	if err != nil || len(rooms) == 0 {
		return Result{Action: "no_rooms_available", DraftBody: "I don't have a room that fits that many guests on file — let me check with the team.", Halt: true}
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].Capacity < rooms[j].Capacity })

	names := make([]string, 0, len(rooms))
	for _, r := range rooms {
		names = append(names, fmt.Sprintf("%s (up to %d guests)", r.Name, r.Capacity))
	}
	body, renderErr := deps.Verbalizer.Render(backgroundCtx, "room_options", map[string]string{"date": record.ChosenDate, "rooms": strings.Join(names, ", ")})
	if renderErr != nil {
		body = "Here are the available rooms for " + record.ChosenDate + ": " + strings.Join(names, ", ") + "."
	}
	return draftResult("room_options_presented", body, "room_options", false, true)
}

func explicitRoomChoice(userInfo map[string]any) (string, bool) {
	if userInfo == nil {
		return "", false
	}
	if room, ok := userInfo["room"].(string); ok && room != "" {
		return room, true
	}
	if room, ok := userInfo["preferred_room"].(string); ok && room != "" {
		return room, true
	}
	return "", false
}

// advanceFromRoom fast-skips to the caller step if one is set (Step 3 was
// reached via a backward detour and the original caller is waiting to
// resume), otherwise advances to Step 4.
func advanceFromRoom(deps Dependencies, turn Turn) Result {
	record := turn.Record
	target := 4
	if record.CallerStep > 3 {
		target = record.CallerStep
		record.CallerStep = 0
	}
	record.AppendAudit(3, target, "room_available_advance", "system", deps.now())
	record.CurrentStep = target

	if target == 4 {
		return Step4(deps, turn)
	}
	return Result{Action: "room_fastskip_to_caller", Halt: false, Reroute: target}
}
