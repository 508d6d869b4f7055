// Package models defines the Match record: a durable correspondence between
// one lost item and one found item, carrying a point-in-time snapshot of both
// parties' contact details.
package models

import (
	"time"

	id "reclaim/pkg/domain"
)

// Status is the lifecycle state of a match.
type Status string

const (
	StatusUnclaimed Status = "unclaimed"
	StatusClaimed   Status = "claimed"
)

// Snapshot freezes both parties' display identity at match time. Later edits
// to the underlying items never propagate here; the snapshot is what the
// claim's Return record and all notifications are built from.
type Snapshot struct {
	LosterName   string
	LosterPhone  string
	LosterEmail  string
	FounderName  string
	FounderPhone string
	FounderEmail string
	// DeviceName is the found item's name when present, else the lost
	// item's title.
	DeviceName   string
	SerialNumber string
}

// Match links exactly one lost item with exactly one found item. At most one
// Match may ever exist for a given pair; the store enforces that with a
// database uniqueness constraint, not an application check.
type Match struct {
	ID          id.MatchID
	LostItemID  id.LostItemID
	FoundItemID id.FoundItemID
	Status      Status
	MatchedAt   time.Time
	ClaimedAt   *time.Time
	Snapshot    Snapshot
}
