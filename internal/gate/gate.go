package gate

import "eventkernel/internal/eventmodel"

// requiredBillingFields are the address fields check_confirmation_gate
// treats as mandatory; VAT is optional and not checked.
var requiredBillingFields = []struct {
	name string
	get  func(eventmodel.BillingDetails) string
}{
	{"company", func(b eventmodel.BillingDetails) string { return b.Company }},
	{"street", func(b eventmodel.BillingDetails) string { return b.Street }},
	{"postal_code", func(b eventmodel.BillingDetails) string { return b.PostalCode }},
	{"city", func(b eventmodel.BillingDetails) string { return b.City }},
	{"country", func(b eventmodel.BillingDetails) string { return b.Country }},
}

// MissingBillingFields returns the required billing address fields that
// are still blank, in a fixed order.
func MissingBillingFields(billing eventmodel.BillingDetails) []string {
	var missing []string
	for _, field := range requiredBillingFields {
		if field.get(billing) == "" {
			missing = append(missing, field.name)
		}
	}
	return missing
}

// Status is the current state of the two confirmation prerequisites.
type Status struct {
	BillingComplete bool
	BillingMissing  []string
	DepositRequired bool
	DepositPaid     bool
	DepositAmount   float64
	OfferAccepted   bool
}

// ReadyForHIL reports whether every prerequisite is satisfied and the
// thread can proceed to human-in-the-loop review.
func (s Status) ReadyForHIL() bool {
	if !s.OfferAccepted {
		return false
	}
	if !s.BillingComplete {
		return false
	}
	if s.DepositRequired && !s.DepositPaid {
		return false
	}
	return true
}

// PendingItems lists, in fixed order, the prerequisites still outstanding.
func (s Status) PendingItems() []string {
	var items []string
	if !s.BillingComplete {
		items = append(items, "billing_address")
	}
	if s.DepositRequired && !s.DepositPaid {
		items = append(items, "deposit_payment")
	}
	return items
}

// CheckConfirmationGate evaluates the two prerequisites against the
// record's current in-memory state.
func CheckConfirmationGate(record *eventmodel.EventRecord) Status {
	missing := MissingBillingFields(record.BillingDetails)
	return Status{
		BillingComplete: len(missing) == 0,
		BillingMissing:  missing,
		DepositRequired: record.Deposit.Required,
		DepositPaid:     record.Deposit.Paid,
		DepositAmount:   record.Deposit.Amount,
		OfferAccepted:   record.OfferAccepted,
	}
}

// SyncDepositFromFresh resyncs only the deposit fields of record from a
// freshly reloaded copy of the same record, leaving billing details (which
// may have just been captured in memory from the current message and not
// yet persisted) untouched. Mirrors auto_continue_if_ready's deliberate
// refusal to blanket-overwrite event_entry with the reloaded copy.
func SyncDepositFromFresh(record, fresh *eventmodel.EventRecord) {
	if record == nil || fresh == nil {
		return
	}
	record.Deposit = fresh.Deposit
}
