package handler

import (
	"strings"

	"reclaim/internal/items/models"
	"reclaim/internal/items/service"
	dErrors "reclaim/pkg/domain-errors"
)

const (
	maxTextField   = 200
	maxDescription = 2000
)

// ReportLostRequest is the HTTP request body for POST /lost-items.
type ReportLostRequest struct {
	Title        string `json:"title"`
	Category     string `json:"category"`
	Description  string `json:"description"`
	Color        string `json:"color"`
	SerialNumber string `json:"serial_number"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
}

// Validate validates the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *ReportLostRequest) Validate() error {
	r.Title = strings.TrimSpace(r.Title)
	r.Category = strings.TrimSpace(r.Category)
	if r.Title == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "title is required")
	}
	if r.Category == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "category is required")
	}
	return checkFieldSizes(r.Title, r.Category, r.Description, r.SerialNumber)
}

// ToInput converts the request to the service input. The serial number is
// passed through untouched; matching compares it byte for byte.
func (r *ReportLostRequest) ToInput() service.ReportLostInput {
	return service.ReportLostInput{
		Title:        r.Title,
		Category:     r.Category,
		Description:  r.Description,
		Color:        r.Color,
		SerialNumber: r.SerialNumber,
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		Phone:        r.Phone,
		Email:        r.Email,
	}
}

// ReportFoundRequest is the HTTP request body for POST /found-items.
type ReportFoundRequest struct {
	Name         string `json:"name"`
	Category     string `json:"category"`
	Description  string `json:"description"`
	Color        string `json:"color"`
	SerialNumber string `json:"serial_number"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
}

// Validate validates the request.
func (r *ReportFoundRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Category = strings.TrimSpace(r.Category)
	if r.Name == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "name is required")
	}
	if r.Category == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "category is required")
	}
	return checkFieldSizes(r.Name, r.Category, r.Description, r.SerialNumber)
}

// ToInput converts the request to the service input.
func (r *ReportFoundRequest) ToInput() service.ReportFoundInput {
	return service.ReportFoundInput{
		Name:         r.Name,
		Category:     r.Category,
		Description:  r.Description,
		Color:        r.Color,
		SerialNumber: r.SerialNumber,
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		Phone:        r.Phone,
		Email:        r.Email,
	}
}

// UpdateStatusRequest is the HTTP request body for the status PATCH
// endpoints.
type UpdateStatusRequest struct {
	Status string `json:"status"`

	parsed models.Status
}

// Validate validates and parses the request.
func (r *UpdateStatusRequest) Validate() error {
	status, ok := models.ParseStatus(strings.TrimSpace(r.Status))
	if !ok {
		return dErrors.New(dErrors.CodeInvalidInput, "status must be one of lost, found, claimed")
	}
	r.parsed = status
	return nil
}

// ParsedStatus returns the status parsed by Validate.
func (r *UpdateStatusRequest) ParsedStatus() models.Status {
	return r.parsed
}

func checkFieldSizes(name, category, description, serial string) error {
	if len(name) > maxTextField || len(category) > maxTextField || len(serial) > maxTextField {
		return dErrors.New(dErrors.CodeInvalidInput, "field exceeds maximum length of 200 characters")
	}
	if len(description) > maxDescription {
		return dErrors.New(dErrors.CodeInvalidInput, "description exceeds maximum length of 2000 characters")
	}
	return nil
}
