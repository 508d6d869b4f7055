// Package models defines the Return record written when a match is claimed.
package models

import (
	"time"

	id "reclaim/pkg/domain"
)

// Return is the append-only proof that a claim completed. Contact fields are
// copied out of the match snapshot at claim time; OwnerID and FinderID are
// weak references to the reporting users, nil for anonymous reports. The
// record has no update path and no store method ever mutates one.
type Return struct {
	ID           id.ReturnID
	MatchID      id.MatchID
	LostItemID   id.LostItemID
	FoundItemID  id.FoundItemID
	LosterName   string
	LosterPhone  string
	LosterEmail  string
	FounderName  string
	FounderPhone string
	FounderEmail string
	DeviceName   string
	SerialNumber string
	Confirmation bool
	OwnerID      *id.UserID
	FinderID     *id.UserID
	ClaimedBy    *id.UserID
	Notes        string
	CreatedAt    time.Time
}
