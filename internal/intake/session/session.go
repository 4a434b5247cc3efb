package session

import (
	"time"

	"esports-waitlist/internal/intake/form"
	"esports-waitlist/internal/intake/submit"
	"esports-waitlist/internal/intake/validate"
	"esports-waitlist/internal/models"
)

// Session is one visitor's intake form, from page load until it expires.
type Session struct {
	ID          string                       `json:"id"`
	State       form.State                   `json:"state"`
	Attribution *models.MarketingAttribution `json:"attribution,omitempty"`
	Errors      validate.FieldErrors         `json:"errors,omitempty"`
	LastResult  *submit.Result               `json:"lastResult,omitempty"`
	CreatedAt   time.Time                    `json:"createdAt"`
	UpdatedAt   time.Time                    `json:"updatedAt"`
}
