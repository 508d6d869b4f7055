// Package models defines the lost and found item records and their status
// state machine.
package models

import (
	"time"

	id "reclaim/pkg/domain"
	"reclaim/pkg/names"
)

// Status is the lifecycle state of an item report.
type Status string

const (
	StatusLost    Status = "lost"
	StatusFound   Status = "found"
	StatusClaimed Status = "claimed"
)

// allowedTransitions is the complete set of legal status edges. Claimed is
// terminal; nothing ever leaves it.
var allowedTransitions = map[Status]map[Status]bool{
	StatusLost:  {StatusClaimed: true},
	StatusFound: {StatusClaimed: true},
}

// CanTransition reports whether from→to is a legal status edge.
func CanTransition(from, to Status) bool {
	return allowedTransitions[from][to]
}

// ParseStatus validates external status input.
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusLost, StatusFound, StatusClaimed:
		return Status(s), true
	}
	return "", false
}

// LostItem is a report that something was lost. Reporter identity fields are
// all optional; reports may be fully anonymous. UserID is a weak reference to
// the reporting account when one was logged in.
type LostItem struct {
	ID           id.LostItemID
	Title        string
	Category     string
	Description  string
	Color        string
	SerialNumber string
	FirstName    string
	LastName     string
	Phone        string
	Email        string
	UserID       *id.UserID
	Status       Status
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ReporterName resolves the loster's display name, empty when anonymous.
func (i *LostItem) ReporterName() string {
	return names.Display(i.FirstName, i.LastName)
}

// FoundItem mirrors LostItem for the finder side.
type FoundItem struct {
	ID           id.FoundItemID
	Name         string
	Category     string
	Description  string
	Color        string
	SerialNumber string
	FirstName    string
	LastName     string
	Phone        string
	Email        string
	UserID       *id.UserID
	Status       Status
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ReporterName resolves the founder's display name, empty when anonymous.
func (i *FoundItem) ReporterName() string {
	return names.Display(i.FirstName, i.LastName)
}
