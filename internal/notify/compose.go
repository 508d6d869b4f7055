package notify

import (
	"fmt"

	matchmodels "reclaim/internal/match/models"
	id "reclaim/pkg/domain"
)

// Notification subjects. The wording is part of the external contract with
// the delivery templates; change it there before changing it here.
const (
	SubjectLosterFoundTriggered  = "Good News! Your Lost Item May Have Been Found"
	SubjectFounderFoundTriggered = "Thank You! Your Found Item Report May Help Someone"
	SubjectLosterLostTriggered   = "Possible Match Found for Your Lost Item"
	SubjectFounderLostTriggered  = "Potential Owner Located for the Found Item"
	SubjectClaimConfirmed        = "Item Confirmed Matched - Ready for Handover"
)

func greeting(name string) string {
	if name == "" {
		return "Hello,"
	}
	return "Hello " + name + ","
}

// FoundTriggered composes the pair of notifications for a match created by a
// new found-item report. Parties without an email on file are skipped.
func FoundTriggered(m *matchmodels.Match, losterUser, founderUser *id.UserID) []Notification {
	snap := m.Snapshot
	var out []Notification
	if snap.LosterEmail != "" {
		out = append(out, Notification{
			Recipient: snap.LosterEmail,
			UserID:    losterUser,
			Subject:   SubjectLosterFoundTriggered,
			Body: fmt.Sprintf(
				"%s\n\nAn item matching the serial number %s of your lost %s has just been reported found. "+
					"We will contact you as soon as the handover is arranged.",
				greeting(snap.LosterName), snap.SerialNumber, snap.DeviceName),
		})
	}
	if snap.FounderEmail != "" {
		out = append(out, Notification{
			Recipient: snap.FounderEmail,
			UserID:    founderUser,
			Subject:   SubjectFounderFoundTriggered,
			Body: fmt.Sprintf(
				"%s\n\nA lost report exists for the serial number %s you reported finding. "+
					"Thank you for reporting the %s; the owner has been notified.",
				greeting(snap.FounderName), snap.SerialNumber, snap.DeviceName),
		})
	}
	return out
}

// LostTriggered composes the pair of notifications for a match created by a
// new lost-item report.
func LostTriggered(m *matchmodels.Match, losterUser, founderUser *id.UserID) []Notification {
	snap := m.Snapshot
	var out []Notification
	if snap.LosterEmail != "" {
		out = append(out, Notification{
			Recipient: snap.LosterEmail,
			UserID:    losterUser,
			Subject:   SubjectLosterLostTriggered,
			Body: fmt.Sprintf(
				"%s\n\nAn item with the serial number %s you just reported lost was already reported found. "+
					"We will contact you as soon as the handover is arranged.",
				greeting(snap.LosterName), snap.SerialNumber),
		})
	}
	if snap.FounderEmail != "" {
		out = append(out, Notification{
			Recipient: snap.FounderEmail,
			UserID:    founderUser,
			Subject:   SubjectFounderLostTriggered,
			Body: fmt.Sprintf(
				"%s\n\nThe owner of the %s with serial number %s you reported finding has filed a lost report. "+
					"The owner has been notified of the match.",
				greeting(snap.FounderName), snap.DeviceName, snap.SerialNumber),
		})
	}
	return out
}

// ClaimConfirmed composes the post-claim notifications telling both parties
// the item is confirmed matched and ready for handover.
func ClaimConfirmed(m *matchmodels.Match, losterUser, founderUser *id.UserID) []Notification {
	snap := m.Snapshot
	var out []Notification
	if snap.LosterEmail != "" {
		out = append(out, Notification{
			Recipient: snap.LosterEmail,
			UserID:    losterUser,
			Subject:   SubjectClaimConfirmed,
			Body: fmt.Sprintf(
				"%s\n\nYour %s (serial number %s) is confirmed matched and ready for handover.",
				greeting(snap.LosterName), snap.DeviceName, snap.SerialNumber),
		})
	}
	if snap.FounderEmail != "" {
		out = append(out, Notification{
			Recipient: snap.FounderEmail,
			UserID:    founderUser,
			Subject:   SubjectClaimConfirmed,
			Body: fmt.Sprintf(
				"%s\n\nThe %s (serial number %s) you reported finding is confirmed matched and ready for handover.",
				greeting(snap.FounderName), snap.DeviceName, snap.SerialNumber),
		})
	}
	return out
}
