package payload

import (
	"strings"

	"esports-waitlist/internal/intake/form"
	"esports-waitlist/internal/models"
)

const maxPayloadGames = form.MaxSelectedGames

// Build projects a validated form state into the upstream submission. It
// assumes validate.Waitlist(s) is empty and has no error path; optional keys
// are left zero so they are omitted on the wire.
func Build(s form.State, attribution *models.MarketingAttribution, catalog *models.Catalog) models.SubmissionPayload {
	p := models.SubmissionPayload{
		Email:              strings.TrimSpace(s.Email),
		ClubUsername:       strings.TrimSpace(s.ClubUsername),
		IsLocal:            s.IsLocal,
		Region:             s.Region,
		ZipCode:            strings.TrimSpace(s.ZipCode),
		DesiredMembership:  s.DesiredMembership,
		PlayIntent:         s.PlayIntent,
		PreferredPlayTimes: append([]models.PlayTime{}, s.PreferredPlayTimes...),
		Games:              flattenGames(s, catalog),
		ConnectedUsernames: connectedUsernames(s),
		ProInterest:        s.ProInterest,
		EventInterest:      s.EventInterest,
		Notes:              BuildWaitlistNotes(s.Notes, s.AvailabilitySlots),
		Consent: models.Consent{
			AgreeToTerms:   true,
			AgreeToContact: true,
		},
	}

	p.MarketingAttribution = normalizeAttribution(attribution)

	if s.DesiredMembership == models.MembershipLeadership && len(s.CoachProGames) > 0 {
		p.CoachProTrack = coachProTrack(s.CoachProGames)
	}
	if s.DesiredMembership == models.MembershipCaptain && len(s.Tier2CoachingGames) > 0 {
		p.Tier2Coaching = tier2Coaching(s.Tier2CoachingGames)
	}
	return p
}

// OtherGameSlug derives an id for a free-text game: "Apex Legends" becomes
// "other-apex-legends".
func OtherGameSlug(name string) string {
	return "other-" + strings.Join(strings.Fields(strings.ToLower(name)), "-")
}

func flattenGames(s form.State, catalog *models.Catalog) []models.GameEntry {
	games := make([]models.GameEntry, 0, len(s.SelectedGames))
	for _, ref := range s.SelectedGames {
		if ref.Other {
			for _, row := range s.OtherGames {
				name := strings.TrimSpace(row.Name)
				if name == "" {
					continue
				}
				id := strings.TrimSpace(row.ID)
				if id == "" {
					id = OtherGameSlug(name)
				}
				games = append(games, withDetail(models.GameEntry{GameID: id, GameName: name}, s.GameDetails))
			}
			continue
		}

		name := ref.ID
		if g, ok := catalog.Lookup(ref.ID); ok {
			name = g.Name
		}
		games = append(games, withDetail(models.GameEntry{GameID: ref.ID, GameName: name}, s.GameDetails))
	}

	if len(games) > maxPayloadGames {
		games = games[:maxPayloadGames]
	}
	return games
}

func withDetail(entry models.GameEntry, details map[string]form.GameDetail) models.GameEntry {
	d, ok := details[entry.GameID]
	if !ok {
		return entry
	}
	entry.Handle = strings.TrimSpace(d.Handle)
	entry.Role = strings.TrimSpace(d.Role)
	if len(d.Platforms) > 0 {
		entry.Platforms = append([]models.Platform{}, d.Platforms...)
	}
	return entry
}

func connectedUsernames(s form.State) *models.ConnectedUsernames {
	cu := models.ConnectedUsernames{
		Discord: strings.TrimSpace(s.DiscordUsername),
		Steam:   strings.TrimSpace(s.SteamUsername),
		Riot:    strings.TrimSpace(s.RiotID),
	}
	if cu == (models.ConnectedUsernames{}) {
		return nil
	}
	return &cu
}

func normalizeAttribution(a *models.MarketingAttribution) *models.MarketingAttribution {
	if a == nil {
		return nil
	}
	out := models.MarketingAttribution{
		Source:   strings.TrimSpace(a.Source),
		Medium:   strings.TrimSpace(a.Medium),
		Campaign: strings.TrimSpace(a.Campaign),
	}
	if out == (models.MarketingAttribution{}) {
		return nil
	}
	return &out
}

func coachProTrack(entries []form.CoachProGame) []models.CoachProEntry {
	out := make([]models.CoachProEntry, len(entries))
	for i, e := range entries {
		out[i] = models.CoachProEntry{
			GameID:               e.GameID,
			GameName:             strings.TrimSpace(e.GameName),
			Rank:                 strings.TrimSpace(e.Rank),
			RankProofURL:         strings.TrimSpace(e.RankProofURL),
			WantsToCoach:         e.WantsToCoach,
			WantsToCompete:       e.WantsToCompete,
			WantsToCreateContent: e.WantsToCreateContent,
		}
	}
	return out
}

func tier2Coaching(entries []form.Tier2CoachingGame) []models.Tier2CoachingEntry {
	out := make([]models.Tier2CoachingEntry, len(entries))
	for i, e := range entries {
		out[i] = models.Tier2CoachingEntry{
			GameID:      e.GameID,
			GameName:    strings.TrimSpace(e.GameName),
			CurrentRank: strings.TrimSpace(e.CurrentRank),
			DesiredRank: strings.TrimSpace(e.DesiredRank),
			Notes:       strings.TrimSpace(e.Notes),
		}
	}
	return out
}

// Partnership builds the partnerships body; blank notes are omitted.
func Partnership(in models.PartnershipInquiry) models.PartnershipPayload {
	return models.PartnershipPayload{
		Email: strings.TrimSpace(in.Email),
		Notes: strings.TrimSpace(in.Notes),
	}
}
