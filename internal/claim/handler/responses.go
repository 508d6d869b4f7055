package handler

import (
	"time"

	claimmodels "reclaim/internal/claim/models"
	matchmodels "reclaim/internal/match/models"
)

// MatchResponse is the HTTP representation of a claimed match.
type MatchResponse struct {
	ID           string     `json:"id"`
	LostItemID   string     `json:"lost_item_id"`
	FoundItemID  string     `json:"found_item_id"`
	Status       string     `json:"status"`
	MatchedAt    time.Time  `json:"matched_at"`
	ClaimedAt    *time.Time `json:"claimed_at,omitempty"`
	DeviceName   string     `json:"device_name"`
	SerialNumber string     `json:"serial_number"`
}

// FromMatch converts a domain match to its HTTP representation. Contact
// details stay server-side.
func FromMatch(m *matchmodels.Match) MatchResponse {
	return MatchResponse{
		ID:           m.ID.String(),
		LostItemID:   m.LostItemID.String(),
		FoundItemID:  m.FoundItemID.String(),
		Status:       string(m.Status),
		MatchedAt:    m.MatchedAt,
		ClaimedAt:    m.ClaimedAt,
		DeviceName:   m.Snapshot.DeviceName,
		SerialNumber: m.Snapshot.SerialNumber,
	}
}

// ReturnResponse is the HTTP representation of one return record.
type ReturnResponse struct {
	ID           string    `json:"id"`
	MatchID      string    `json:"match_id"`
	LostItemID   string    `json:"lost_item_id"`
	FoundItemID  string    `json:"found_item_id"`
	LosterName   string    `json:"loster_name"`
	FounderName  string    `json:"founder_name"`
	DeviceName   string    `json:"device_name"`
	SerialNumber string    `json:"serial_number"`
	Confirmation bool      `json:"confirmation"`
	OwnerID      *string   `json:"owner_id,omitempty"`
	FinderID     *string   `json:"finder_id,omitempty"`
	ClaimedBy    *string   `json:"claimed_by,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// FromReturns converts domain return records to their HTTP representation.
func FromReturns(returns []*claimmodels.Return) []ReturnResponse {
	out := make([]ReturnResponse, 0, len(returns))
	for _, r := range returns {
		resp := ReturnResponse{
			ID:           r.ID.String(),
			MatchID:      r.MatchID.String(),
			LostItemID:   r.LostItemID.String(),
			FoundItemID:  r.FoundItemID.String(),
			LosterName:   r.LosterName,
			FounderName:  r.FounderName,
			DeviceName:   r.DeviceName,
			SerialNumber: r.SerialNumber,
			Confirmation: r.Confirmation,
			Notes:        r.Notes,
			CreatedAt:    r.CreatedAt,
		}
		if r.OwnerID != nil {
			owner := r.OwnerID.String()
			resp.OwnerID = &owner
		}
		if r.FinderID != nil {
			finder := r.FinderID.String()
			resp.FinderID = &finder
		}
		if r.ClaimedBy != nil {
			claimedBy := r.ClaimedBy.String()
			resp.ClaimedBy = &claimedBy
		}
		out = append(out, resp)
	}
	return out
}
