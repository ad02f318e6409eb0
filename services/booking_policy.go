package services

import (
	"github.com/AhmedHajAhmed/Homi/models"
)

// TargetStatuses are the statuses a caller may request on a booking update.
var TargetStatuses = []string{
	models.BookingAccepted,
	models.BookingRejected,
	models.BookingCancelled,
}

// CanTransition decides who may move a booking to the target status:
// cancellation belongs to the booking's seeker, acceptance and rejection
// to the host owning the booking's listing. The tie-break is by target
// status, not by the actor's role.
func CanTransition(actorID uint, b *models.Booking, target string) bool {
	switch target {
	case models.BookingCancelled:
		return b.SeekerID == actorID
	case models.BookingAccepted, models.BookingRejected:
		return b.Listing != nil && b.Listing.HostID == actorID
	}
	return false
}
