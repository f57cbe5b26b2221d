package gate_test

import (
	"testing"

	"eventkernel/internal/eventmodel"
	"eventkernel/internal/gate"
)

func completeBilling() eventmodel.BillingDetails {
	return eventmodel.BillingDetails{
		Company: "Acme GmbH", Street: "Bahnhofstrasse 1",
		PostalCode: "8001", City: "Zurich", Country: "Switzerland",
	}
}

func TestReadyForHILRequiresOfferAcceptedBillingAndDeposit(t *testing.T) {
	record := &eventmodel.EventRecord{
		OfferAccepted:  true,
		BillingDetails: completeBilling(),
		Deposit:        eventmodel.Deposit{Required: true, Paid: false, Amount: 500},
	}
	status := gate.CheckConfirmationGate(record)
	if status.ReadyForHIL() {
		t.Fatal("expected not ready while deposit unpaid")
	}

	record.Deposit.Paid = true
	status = gate.CheckConfirmationGate(record)
	if !status.ReadyForHIL() {
		t.Fatalf("expected ready once deposit paid, got %+v", status)
	}
}

func TestGateOrderIndependent(t *testing.T) {
	// Billing first, then deposit.
	a := &eventmodel.EventRecord{OfferAccepted: true, BillingDetails: completeBilling(), Deposit: eventmodel.Deposit{Required: true, Paid: true}}
	// Deposit first, then billing.
	b := &eventmodel.EventRecord{OfferAccepted: true, BillingDetails: completeBilling(), Deposit: eventmodel.Deposit{Required: true, Paid: true}}

	if !gate.CheckConfirmationGate(a).ReadyForHIL() || !gate.CheckConfirmationGate(b).ReadyForHIL() {
		t.Fatal("gate must be order-independent: both completion orders should be ready")
	}
}

func TestNextPromptPrioritizesBillingOverDeposit(t *testing.T) {
	record := &eventmodel.EventRecord{
		OfferAccepted: true,
		Deposit:       eventmodel.Deposit{Required: true, Paid: false, Amount: 500},
	}
	status := gate.CheckConfirmationGate(record)
	prompt := gate.NextPrompt(status, 5)
	if prompt == nil || prompt.Topic != "billing_details_required" {
		t.Fatalf("expected billing prompt first, got %+v", prompt)
	}
}

func TestNextPromptReturnsDepositReminderOnceBillingComplete(t *testing.T) {
	record := &eventmodel.EventRecord{
		OfferAccepted:  true,
		BillingDetails: completeBilling(),
		Deposit:        eventmodel.Deposit{Required: true, Paid: false, Amount: 500},
	}
	status := gate.CheckConfirmationGate(record)
	prompt := gate.NextPrompt(status, 5)
	if prompt == nil || prompt.Topic != "deposit_reminder" {
		t.Fatalf("expected deposit reminder, got %+v", prompt)
	}
}

func TestNextPromptNilWhenReady(t *testing.T) {
	record := &eventmodel.EventRecord{OfferAccepted: true, BillingDetails: completeBilling()}
	status := gate.CheckConfirmationGate(record)
	if prompt := gate.NextPrompt(status, 5); prompt != nil {
		t.Fatalf("expected nil prompt when gate satisfied, got %+v", prompt)
	}
}

func TestSyncDepositFromFreshLeavesBillingUntouched(t *testing.T) {
	record := &eventmodel.EventRecord{BillingDetails: eventmodel.BillingDetails{Company: "In Memory Co"}, Deposit: eventmodel.Deposit{Paid: false}}
	fresh := &eventmodel.EventRecord{BillingDetails: eventmodel.BillingDetails{Company: "Stale Disk Co"}, Deposit: eventmodel.Deposit{Paid: true}}

	gate.SyncDepositFromFresh(record, fresh)

	if record.BillingDetails.Company != "In Memory Co" {
		t.Fatalf("expected billing untouched, got %q", record.BillingDetails.Company)
	}
	if !record.Deposit.Paid {
		t.Fatal("expected deposit resynced from fresh copy")
	}
}
