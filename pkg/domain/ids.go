// Package domain holds domain primitives shared across modules. Typed IDs keep
// lost items, found items, matches, and returns from being mixed up at compile
// time instead of relying on naming discipline.
package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// Typed entity identifiers. All are UUIDs underneath; the distinct types exist
// so a MatchID can never be passed where a LostItemID is expected.
type (
	UserID         uuid.UUID
	LostItemID     uuid.UUID
	FoundItemID    uuid.UUID
	MatchID        uuid.UUID
	ReturnID       uuid.UUID
	NotificationID uuid.UUID
)

// NewUserID generates a fresh user identifier.
func NewUserID() UserID { return UserID(uuid.New()) }

// NewLostItemID generates a fresh lost-item identifier.
func NewLostItemID() LostItemID { return LostItemID(uuid.New()) }

// NewFoundItemID generates a fresh found-item identifier.
func NewFoundItemID() FoundItemID { return FoundItemID(uuid.New()) }

// NewMatchID generates a fresh match identifier.
func NewMatchID() MatchID { return MatchID(uuid.New()) }

// NewReturnID generates a fresh return identifier.
func NewReturnID() ReturnID { return ReturnID(uuid.New()) }

// NewNotificationID generates a fresh notification identifier.
func NewNotificationID() NotificationID { return NotificationID(uuid.New()) }

func parseID(s, kind string) (uuid.UUID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s id: %w", kind, err)
	}
	if u == uuid.Nil {
		return uuid.Nil, fmt.Errorf("invalid %s id: nil uuid", kind)
	}
	return u, nil
}

// ParseUserID constructs a UserID from external input. Rejects malformed and
// nil UUIDs; call at trust boundaries.
func ParseUserID(s string) (UserID, error) {
	u, err := parseID(s, "user")
	return UserID(u), err
}

// ParseLostItemID constructs a LostItemID from external input.
func ParseLostItemID(s string) (LostItemID, error) {
	u, err := parseID(s, "lost item")
	return LostItemID(u), err
}

// ParseFoundItemID constructs a FoundItemID from external input.
func ParseFoundItemID(s string) (FoundItemID, error) {
	u, err := parseID(s, "found item")
	return FoundItemID(u), err
}

// ParseMatchID constructs a MatchID from external input.
func ParseMatchID(s string) (MatchID, error) {
	u, err := parseID(s, "match")
	return MatchID(u), err
}

// ParseNotificationID constructs a NotificationID from external input.
func ParseNotificationID(s string) (NotificationID, error) {
	u, err := parseID(s, "notification")
	return NotificationID(u), err
}

func (id UserID) String() string         { return uuid.UUID(id).String() }
func (id LostItemID) String() string     { return uuid.UUID(id).String() }
func (id FoundItemID) String() string    { return uuid.UUID(id).String() }
func (id MatchID) String() string        { return uuid.UUID(id).String() }
func (id ReturnID) String() string       { return uuid.UUID(id).String() }
func (id NotificationID) String() string { return uuid.UUID(id).String() }

func (id UserID) IsNil() bool         { return uuid.UUID(id) == uuid.Nil }
func (id LostItemID) IsNil() bool     { return uuid.UUID(id) == uuid.Nil }
func (id FoundItemID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }
func (id MatchID) IsNil() bool        { return uuid.UUID(id) == uuid.Nil }
func (id ReturnID) IsNil() bool       { return uuid.UUID(id) == uuid.Nil }
func (id NotificationID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
