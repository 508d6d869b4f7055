package handler

import (
	"time"

	"reclaim/internal/items/models"
)

// LostItemResponse is the HTTP representation of a lost-item report.
// Reporter contact details stay server-side; only the display name goes out.
type LostItemResponse struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Category     string    `json:"category"`
	Description  string    `json:"description,omitempty"`
	Color        string    `json:"color,omitempty"`
	SerialNumber string    `json:"serial_number,omitempty"`
	ReporterName string    `json:"reporter_name,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// FoundItemResponse is the HTTP representation of a found-item report.
type FoundItemResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Category     string    `json:"category"`
	Description  string    `json:"description,omitempty"`
	Color        string    `json:"color,omitempty"`
	SerialNumber string    `json:"serial_number,omitempty"`
	ReporterName string    `json:"reporter_name,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// FromLostItem converts a domain lost item to its HTTP representation.
func FromLostItem(item *models.LostItem) LostItemResponse {
	return LostItemResponse{
		ID:           item.ID.String(),
		Title:        item.Title,
		Category:     item.Category,
		Description:  item.Description,
		Color:        item.Color,
		SerialNumber: item.SerialNumber,
		ReporterName: item.ReporterName(),
		Status:       string(item.Status),
		CreatedAt:    item.CreatedAt,
	}
}

// FromLostItems converts a list of domain lost items.
func FromLostItems(items []*models.LostItem) []LostItemResponse {
	out := make([]LostItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, FromLostItem(item))
	}
	return out
}

// FromFoundItem converts a domain found item to its HTTP representation.
func FromFoundItem(item *models.FoundItem) FoundItemResponse {
	return FoundItemResponse{
		ID:           item.ID.String(),
		Name:         item.Name,
		Category:     item.Category,
		Description:  item.Description,
		Color:        item.Color,
		SerialNumber: item.SerialNumber,
		ReporterName: item.ReporterName(),
		Status:       string(item.Status),
		CreatedAt:    item.CreatedAt,
	}
}

// FromFoundItems converts a list of domain found items.
func FromFoundItems(items []*models.FoundItem) []FoundItemResponse {
	out := make([]FoundItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, FromFoundItem(item))
	}
	return out
}
