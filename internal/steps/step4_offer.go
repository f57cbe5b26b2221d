package steps

import (
	"fmt"
	"strings"

	"eventkernel/internal/adapters"
	"eventkernel/internal/classify"
	"eventkernel/internal/eventmodel"
)

// depositPercent is the standard deposit rate applied to every offer,
// matching the venue's flat policy referenced throughout the original
// source's offer composer (no per-tenant override surfaced in the spec).
const depositPercent = 30.0

// depositDueDays is how far out the deposit due date is set from the
// moment the offer is composed.
const depositDueDays = 14

// noExtrasTokens are the phrases Step 4 recognizes as an explicit skip of
// products (spec §4.3.4 P4: "client explicitly skipped with recognized
// tokens like \"no extras\"").
var noExtrasTokens = []string{"no extras", "nothing else", "no additions", "that's all", "thats all"}

// Step4 runs offer composition (spec §4.3.4): guards preconditions P1-P4,
// detouring to the owning step on failure, then composes and stores an
// offer. If the inbound message itself reads as an acceptance, it routes
// straight into the HIL acceptance flow instead of waiting for a second
// message.
func Step4(deps Dependencies, turn Turn) Result {
	record := turn.Record

	if classification, result, handled := preStepChecks(deps, turn, 4); handled {
		_ = classification
		return result
	}

	record.CurrentStep = 4

	if !record.DateConfirmed {
		record.CallerStep = 4
		record.CurrentStep = 2
		return Result{Action: "offer_precondition_failed", Topic: "p1_date_not_confirmed", Halt: false, Reroute: 2}
	}
	if record.LockedRoomID == "" || record.RoomEvalHash != RequirementsHash(record.Requirements) {
		record.CallerStep = 4
		record.CurrentStep = 3
		return Result{Action: "offer_precondition_failed", Topic: "p2_room_not_locked", Halt: false, Reroute: 3}
	}

	room, found, err := deps.Catalog.FindRoom(backgroundCtx, record.LockedRoomID)
	if err != nil || !found || room.Capacity < record.Requirements.Participants {
		record.CallerStep = 4
		record.CurrentStep = 3
		return Result{Action: "offer_precondition_failed", Topic: "p3_capacity_unmet", Halt: false, Reroute: 3}
	}

	normalized := classifyNormalized(turn.MessageText)
	productsReady := len(record.Products) > 0 || len(record.SelectedCatering) > 0 || matchesAny(normalized, noExtrasTokens)
	if !productsReady {
		return draftResult("offer_products_pending", "Before I put together your offer — any catering or extras you'd like included, or should I proceed without?", "offer_products_prompt", false, true)
	}

	offer, err := composeOffer(deps, record, room)
	if err != nil {
		return Result{Action: "offer_composition_failed", DraftBody: "I ran into an issue pricing your offer — let me check with the team.", Halt: true}
	}
	record.Offers = append(record.Offers, offer)
	record.CurrentOfferID = offer.OfferID
	record.OfferSequence = offer.Version
	record.OfferStatus = "Sent"
	record.ThreadState = eventmodel.ThreadAwaitingClient
	record.GatekeeperPassed["step4"] = true
	record.AppendAudit(4, 4, "offer_composed", "system", deps.now())

	summary := offerSummaryLines(offer)
	body, renderErr := deps.Verbalizer.Render(backgroundCtx, "offer_sent", map[string]string{
		"date": record.ChosenDate, "room": room.Name, "summary": strings.Join(summary, "; "),
		"deposit": fmt.Sprintf("CHF %.2f", offer.DepositDue), "due_date": offer.DueDate,
	})
	if renderErr != nil {
		body = fmt.Sprintf("Here is your offer for %s in %s: %s. A deposit of CHF %.2f is due by %s.",
			record.ChosenDate, room.Name, strings.Join(summary, "; "), offer.DepositDue, offer.DueDate)
	}

	acceptance := classify.MatchConfirmation(normalized)
	if acceptance.IsMatch && acceptance.Confidence >= 0.7 {
		record.CurrentStep = 5
		acceptResult := Step5(deps, turn)
		if acceptResult.DraftBody != "" {
			body = body + " " + acceptResult.DraftBody
		}
		acceptResult.DraftBody = body
		acceptResult.Halt = true
		return acceptResult
	}

	return draftResult("offer_draft", body, "offer_sent", false, true)
}

// composeOffer builds the line items, subtotal, and deposit block for a
// fresh offer version, matching original_source's _rebuild_pricing_inputs/
// _compose_offer_summary: one line item for the room (a flat per-event
// rate) plus one per selected product, per-person products scaled by
// participant count.
func composeOffer(deps Dependencies, record *eventmodel.EventRecord, room adapters.Room) (eventmodel.Offer, error) {
	products, err := deps.Catalog.Products(backgroundCtx)
	if err != nil {
		return eventmodel.Offer{}, err
	}
	byName := make(map[string]adapters.Product, len(products))
	for _, p := range products {
		byName[strings.ToLower(p.Name)] = p
	}

	participants := record.Requirements.Participants
	lineItems := []eventmodel.LineItem{
		{Description: room.Name, UnitPrice: room.RatePerDay, Quantity: 1, PerPerson: false, Total: room.RatePerDay},
	}

	for _, name := range selectedProductNames(record) {
		product, ok := byName[strings.ToLower(name)]
		if !ok {
			continue
		}
		quantity := 1.0
		total := product.UnitPrice
		if product.PerPerson {
			quantity = float64(participants)
			total = product.UnitPrice * quantity
		}
		lineItems = append(lineItems, eventmodel.LineItem{
			Description: product.Name, UnitPrice: product.UnitPrice, Quantity: quantity, PerPerson: product.PerPerson, Total: total,
		})
	}

	subtotal := 0.0
	for _, li := range lineItems {
		subtotal += li.Total
	}

	version := len(record.Offers) + 1
	depositDue := subtotal * depositPercent / 100
	dueDate := deps.now().AddDate(0, 0, depositDueDays).Format("2006-01-02")

	return eventmodel.Offer{
		OfferID:    newOfferID(version),
		Version:    version,
		CreatedAt:  deps.now(),
		LineItems:  lineItems,
		Subtotal:   subtotal,
		DepositDue: depositDue,
		DueDate:    dueDate,
	}, nil
}

func selectedProductNames(record *eventmodel.EventRecord) []string {
	names := append([]string(nil), record.Products...)
	for _, c := range record.SelectedCatering {
		names = append(names, c)
	}
	return names
}

func matchesAny(normalized string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(normalized, p) {
			return true
		}
	}
	return false
}

func offerSummaryLines(offer eventmodel.Offer) []string {
	lines := make([]string, 0, len(offer.LineItems))
	for _, li := range offer.LineItems {
		lines = append(lines, fmt.Sprintf("%s: CHF %.2f", li.Description, li.Total))
	}
	return lines
}
