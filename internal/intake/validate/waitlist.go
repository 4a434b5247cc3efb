package validate

import (
	"esports-waitlist/internal/common/validation"
	"esports-waitlist/internal/intake/form"
	"esports-waitlist/internal/models"
)

const MaxPartnershipNotes = 1000

// Waitlist runs every waitlist rule against s. All rules run on every call;
// an empty result means the form is ready to submit. Tier-2 coaching rows
// carry only optional fields and are not checked.
func Waitlist(s form.State) FieldErrors {
	var errs FieldErrors

	switch {
	case validation.IsBlank(s.Email):
		errs.add("email", "Email is required")
	case !validation.ValidateEmail(s.Email):
		errs.add("email", "Enter a valid email address")
	}

	switch {
	case validation.IsBlank(s.ClubUsername):
		errs.add("clubUsername", "Club username is required")
	case !validation.ValidateClubUsername(s.ClubUsername):
		errs.add("clubUsername", "Use 2-24 letters or numbers; spaces, _, - and . are allowed inside")
	}

	if !oneOf(s.Region, models.Regions) {
		errs.add("region", "Select a region")
	}

	if len(s.SelectedGames) == 0 {
		errs.add("selectedGameIds", "Pick at least one game")
	}

	if s.HasOtherSlot() {
		if len(s.OtherGames) == 0 {
			errs.add("otherGames", "Tell us which other game you play")
		}
		for i, g := range s.OtherGames {
			if validation.IsBlank(g.Name) {
				errs.add(otherGameNameKey(i), "Game name is required")
			}
		}
	}

	if !oneOf(s.DesiredMembership, models.Memberships) {
		errs.add("desiredMembership", "Select a membership")
	}

	if s.DesiredMembership == models.MembershipLeadership {
		validateCoachPro(s.CoachProGames, &errs)
	}

	if !oneOf(s.PlayIntent, models.PlayIntents) {
		errs.add("playIntent", "Select how you want to play")
	}

	if len(s.PreferredPlayTimes) == 0 {
		errs.add("preferredPlayTimes", "Pick at least one play time")
	}

	if !oneOf(s.ProInterest, models.ProInterests) {
		errs.add("proInterest", "Tell us whether you're interested in going pro")
	}

	if !validation.IsBlank(s.ZipCode) && !validation.ValidateZipCode(s.ZipCode) {
		errs.add("zipCode", "Use a 5-digit ZIP or ZIP+4")
	}

	if !validation.WithinLength(s.Notes, 0, form.MaxNotesLength) {
		errs.add("notes", "Notes must be 300 characters or fewer")
	}

	if !s.AgreeToTerms {
		errs.add("agreeToTerms", "You must accept the community terms")
	}
	if !s.AgreeToContact {
		errs.add("agreeToContact", "You must agree to be contacted about your spot")
	}

	return errs
}

func validateCoachPro(entries []form.CoachProGame, errs *FieldErrors) {
	if len(entries) == 0 {
		errs.add("coachProGames", "Add at least one game for the Leadership Track")
		return
	}
	for i, e := range entries {
		if validation.IsBlank(e.Rank) {
			errs.add(coachProRankKey(i), "Current rank is required")
		}
		switch {
		case validation.IsBlank(e.RankProofURL):
			errs.add(coachProRankProofKey(i), "Link to a screenshot or tracker profile")
		case !validation.ValidateHTTPURL(e.RankProofURL):
			errs.add(coachProRankProofKey(i), "Rank proof must be an http(s) link")
		}
		if !e.HasGoal() {
			errs.add(coachProGoalsKey(i), "Pick at least one goal")
		}
	}
}

// Partnership validates the partnerships inquiry form. It has no
// cross-field rules.
func Partnership(in models.PartnershipInquiry) FieldErrors {
	var errs FieldErrors
	switch {
	case validation.IsBlank(in.Email):
		errs.add("email", "Email is required")
	case !validation.ValidateEmail(in.Email):
		errs.add("email", "Enter a valid email address")
	}
	if !validation.WithinLength(in.Notes, 0, MaxPartnershipNotes) {
		errs.add("notes", "Notes must be 1000 characters or fewer")
	}
	return errs
}

func oneOf[T comparable](v T, allowed []T) bool {
	for _, a := range allowed {
		if a == v {
			return true
		}
	}
	return false
}
