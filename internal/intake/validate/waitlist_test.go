package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"esports-waitlist/internal/intake/form"
	"esports-waitlist/internal/models"
)

func validState() form.State {
	return form.ReduceAll(form.Initial(),
		form.SetField{Field: form.FieldEmail, Value: "player@example.com"},
		form.SetField{Field: form.FieldClubUsername, Value: "Shadow Fox"},
		form.TogglePlayTime{PlayTime: models.PlayTimeWeekdayEvenings},
		form.SetField{Field: form.FieldAgreeToTerms, Value: true},
		form.SetField{Field: form.FieldAgreeToContact, Value: true},
	)
}

func TestWaitlist_ValidState(t *testing.T) {
	errs := Waitlist(validState())
	assert.True(t, errs.Empty(), "unexpected errors: %v", errs.Map())
	assert.Equal(t, "", errs.First())
}

func TestWaitlist_EachRuleInIsolation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*form.State)
		key    string
	}{
		{"email missing", func(s *form.State) { s.Email = "  " }, "email"},
		{"email malformed", func(s *form.State) { s.Email = "player@example" }, "email"},
		{"username missing", func(s *form.State) { s.ClubUsername = "" }, "clubUsername"},
		{"username too short", func(s *form.State) { s.ClubUsername = "x" }, "clubUsername"},
		{"username bad edge", func(s *form.State) { s.ClubUsername = "fox_" }, "clubUsername"},
		{"region missing", func(s *form.State) { s.Region = "" }, "region"},
		{"no games", func(s *form.State) { s.SelectedGames = nil }, "selectedGameIds"},
		{"other without rows", func(s *form.State) {
			s.SelectedGames = append(s.SelectedGames, form.OtherSlot)
			s.OtherGames = nil
		}, "otherGames"},
		{"membership missing", func(s *form.State) { s.DesiredMembership = "" }, "desiredMembership"},
		{"leadership without games", func(s *form.State) {
			s.DesiredMembership = models.MembershipLeadership
		}, "coachProGames"},
		{"intent missing", func(s *form.State) { s.PlayIntent = "" }, "playIntent"},
		{"no play times", func(s *form.State) { s.PreferredPlayTimes = nil }, "preferredPlayTimes"},
		{"unknown pro interest", func(s *form.State) { s.ProInterest = "Someday" }, "proInterest"},
		{"email too long", func(s *form.State) { s.Email = strings.Repeat("a", 250) + "@example.com" }, "email"},
		{"bad zip", func(s *form.State) { s.ZipCode = "123" }, "zipCode"},
		{"long notes", func(s *form.State) { s.Notes = strings.Repeat("n", 301) }, "notes"},
		{"terms", func(s *form.State) { s.AgreeToTerms = false }, "agreeToTerms"},
		{"contact", func(s *form.State) { s.AgreeToContact = false }, "agreeToContact"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validState()
			tt.mutate(&s)
			errs := Waitlist(s)
			assert.Equal(t, []string{tt.key}, errs.Fields())
		})
	}
}

func TestWaitlist_OptionalFieldsAreNotErrors(t *testing.T) {
	s := validState()
	s.ZipCode = ""
	s.Notes = strings.Repeat("é", 300)
	s.DiscordUsername = ""
	assert.True(t, Waitlist(s).Empty())

	s.ZipCode = "94107-1234"
	assert.True(t, Waitlist(s).Empty())
}

func TestWaitlist_AllRulesRun(t *testing.T) {
	errs := Waitlist(form.State{})
	assert.Equal(t, []string{
		"email", "clubUsername", "region", "selectedGameIds", "desiredMembership",
		"playIntent", "preferredPlayTimes", "proInterest", "agreeToTerms", "agreeToContact",
	}, errs.Fields())
	assert.Equal(t, "email", errs.First())
}

func TestWaitlist_OtherGameFlow(t *testing.T) {
	s := form.Reduce(validState(), form.ToggleGame{Game: form.OtherSlot, RowKey: "row-1"})
	errs := Waitlist(s)
	assert.Equal(t, []string{"otherGame_0_name"}, errs.Fields())

	s = form.Reduce(s, form.AddOtherGame{RowKey: "row-2"})
	s = form.Reduce(s, form.UpdateOtherGame{Index: 0, Field: form.OtherGameName, Value: "Apex Legends"})
	errs = Waitlist(s)
	assert.Equal(t, []string{"otherGame_1_name"}, errs.Fields())

	s = form.Reduce(s, form.UpdateOtherGame{Index: 1, Field: form.OtherGameName, Value: "Tekken 8"})
	assert.True(t, Waitlist(s).Empty())
}

func TestWaitlist_LeadershipTrackGating(t *testing.T) {
	s := form.Reduce(validState(), form.SetField{Field: form.FieldDesiredMembership, Value: models.MembershipLeadership})
	errs := Waitlist(s)
	require.Equal(t, []string{"coachProGames"}, errs.Fields())

	s = form.ReduceAll(s,
		form.AddCoachPro{GameID: "valorant", GameName: "Valorant"},
		form.UpdateCoachPro{Index: 0, Field: form.CoachProRank, Value: "Ascendant 1"},
	)
	errs = Waitlist(s)
	assert.True(t, errs.Has("coachPro_0_rankProofUrl"))
	assert.False(t, errs.Has("coachPro_0_rank"))
	assert.False(t, errs.Has("coachProGames"))

	s = form.Reduce(s, form.UpdateCoachPro{Index: 0, Field: form.CoachProRankProofURL, Value: "not a url"})
	errs = Waitlist(s)
	assert.True(t, errs.Has("coachPro_0_rankProofUrl"))

	s = form.ReduceAll(s,
		form.UpdateCoachPro{Index: 0, Field: form.CoachProRankProofURL, Value: "https://example.com/x.png"},
		form.UpdateCoachPro{Index: 0, Field: form.CoachProWantsToCoach, Value: true},
	)
	errs = Waitlist(s)
	for _, f := range errs.Fields() {
		assert.False(t, strings.HasPrefix(f, "coachPro_0_"), f)
	}
	assert.True(t, errs.Empty())
}

func TestWaitlist_CoachProEachConditionHasItsOwnKey(t *testing.T) {
	s := form.ReduceAll(validState(),
		form.SetField{Field: form.FieldDesiredMembership, Value: models.MembershipLeadership},
		form.AddCoachPro{GameID: "valorant", GameName: "Valorant"},
	)
	assert.Equal(t, []string{"coachPro_0_rank", "coachPro_0_rankProofUrl", "coachPro_0_goals"}, Waitlist(s).Fields())
}

func TestWaitlist_Tier2RowsAreNotValidated(t *testing.T) {
	s := form.ReduceAll(validState(),
		form.SetField{Field: form.FieldDesiredMembership, Value: models.MembershipCaptain},
		form.AddTier2Coaching{GameID: "rocket-league", GameName: "Rocket League"},
	)
	require.Len(t, s.Tier2CoachingGames, 1)
	assert.True(t, Waitlist(s).Empty())
}

func TestPartnership(t *testing.T) {
	assert.True(t, Partnership(models.PartnershipInquiry{Email: "biz@sponsor.gg"}).Empty())
	assert.True(t, Partnership(models.PartnershipInquiry{Email: "biz@sponsor.gg", Notes: strings.Repeat("x", 1000)}).Empty())

	errs := Partnership(models.PartnershipInquiry{Email: "nope", Notes: strings.Repeat("x", 1001)})
	assert.Equal(t, []string{"email", "notes"}, errs.Fields())

	errs = Partnership(models.PartnershipInquiry{})
	msg, ok := errs.Message("email")
	require.True(t, ok)
	assert.Equal(t, "Email is required", msg)
}

func TestFieldErrors_Helpers(t *testing.T) {
	var errs FieldErrors
	errs.add("a", "first")
	errs.add("b", "second")
	errs.add("a", "duplicate ignored")

	assert.Equal(t, "a", errs.First())
	assert.Equal(t, map[string]string{"a": "first", "b": "second"}, errs.Map())
	assert.Len(t, errs, 2)
}
