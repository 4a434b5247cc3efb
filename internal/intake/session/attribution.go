package session

import (
	"net/url"
	"strings"

	"esports-waitlist/internal/models"
)

// AttributionFromQuery captures the utm_* parameters of the landing URL.
// It returns nil when none of them carries a value.
func AttributionFromQuery(q url.Values) *models.MarketingAttribution {
	a := models.MarketingAttribution{
		Source:   strings.TrimSpace(q.Get("utm_source")),
		Medium:   strings.TrimSpace(q.Get("utm_medium")),
		Campaign: strings.TrimSpace(q.Get("utm_campaign")),
	}
	if a == (models.MarketingAttribution{}) {
		return nil
	}
	return &a
}
