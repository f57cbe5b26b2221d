package steps

import "github.com/google/uuid"

func newTaskID() string {
	return uuid.NewString()
}

func newOfferID(sequence int) string {
	return "offer-" + uuid.NewString()[:8]
}
