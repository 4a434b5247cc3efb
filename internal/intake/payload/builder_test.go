package payload

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"esports-waitlist/internal/common/errors"
	"esports-waitlist/internal/intake/form"
	"esports-waitlist/internal/intake/validate"
	"esports-waitlist/internal/models"
)

func minimalState() form.State {
	return form.ReduceAll(form.Initial(),
		form.SetField{Field: form.FieldEmail, Value: " player@example.com "},
		form.SetField{Field: form.FieldClubUsername, Value: "Shadow Fox"},
		form.TogglePlayTime{PlayTime: models.PlayTimeWeekdayEvenings},
		form.SetField{Field: form.FieldAgreeToTerms, Value: true},
		form.SetField{Field: form.FieldAgreeToContact, Value: true},
	)
}

func toJSONMap(t *testing.T, v interface{}) map[string]interface{} {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &m))
	return m
}

func TestBuild_MinimalStateOmitsOptionalKeys(t *testing.T) {
	p := Build(minimalState(), nil, models.LaunchCatalog())
	require.NoError(t, Conform(p))

	m := toJSONMap(t, p)
	for _, key := range []string{"connectedUsernames", "marketingAttribution", "coachProTrack", "tier2Coaching", "zipCode", "notes"} {
		assert.NotContains(t, m, key)
	}

	games := m["games"].([]interface{})
	require.Len(t, games, 1)
	entry := games[0].(map[string]interface{})
	assert.Equal(t, map[string]interface{}{"gameId": "valorant", "gameName": "Valorant"}, entry)

	assert.Equal(t, "player@example.com", p.Email)
	assert.Equal(t, models.Consent{AgreeToTerms: true, AgreeToContact: true}, p.Consent)
}

func TestBuild_OtherGameSlug(t *testing.T) {
	s := form.ReduceAll(minimalState(),
		form.ToggleGame{Game: form.OtherSlot, RowKey: "row-1"},
		form.UpdateOtherGame{Index: 0, Field: form.OtherGameName, Value: "Apex Legends"},
	)
	p := Build(s, nil, models.LaunchCatalog())
	require.NoError(t, Conform(p))

	require.Len(t, p.Games, 2)
	assert.Equal(t, models.GameEntry{GameID: "other-apex-legends", GameName: "Apex Legends"}, p.Games[1])
}

func TestBuild_OtherGameExplicitIDAndBlankRows(t *testing.T) {
	s := form.ReduceAll(minimalState(),
		form.ToggleGame{Game: form.OtherSlot, RowKey: "row-1"},
		form.AddOtherGame{RowKey: "row-2"},
		form.AddOtherGame{RowKey: "row-3"},
		form.UpdateOtherGame{Index: 0, Field: form.OtherGameName, Value: "Tekken 8"},
		form.UpdateOtherGame{Index: 0, Field: form.OtherGameID, Value: "tekken-8"},
		form.UpdateOtherGame{Index: 2, Field: form.OtherGameName, Value: "  Halo   Infinite "},
	)
	p := Build(s, nil, models.LaunchCatalog())

	require.Len(t, p.Games, 3)
	assert.Equal(t, "tekken-8", p.Games[1].GameID)
	assert.Equal(t, "other-halo-infinite", p.Games[2].GameID)
	assert.Equal(t, "Halo   Infinite", p.Games[2].GameName)
}

func TestBuild_TruncatesFlattenedGamesToSix(t *testing.T) {
	s := minimalState()
	for _, g := range models.LaunchCatalog().Games()[1:5] {
		s = form.Reduce(s, form.ToggleGame{Game: form.CatalogGame(g.ID)})
	}
	s = form.ReduceAll(s,
		form.ToggleGame{Game: form.OtherSlot, RowKey: "a"},
		form.AddOtherGame{RowKey: "b"},
		form.UpdateOtherGame{Index: 0, Field: form.OtherGameName, Value: "Apex Legends"},
		form.UpdateOtherGame{Index: 1, Field: form.OtherGameName, Value: "Tekken 8"},
	)
	require.Len(t, s.SelectedGames, 6)

	p := Build(s, nil, models.LaunchCatalog())
	assert.Len(t, p.Games, 6)
	assert.Equal(t, "other-apex-legends", p.Games[5].GameID)
	require.NoError(t, Conform(p))
}

func TestBuild_MergesGameDetails(t *testing.T) {
	handle := " fox#NA1 "
	blank := "  "
	s := form.ReduceAll(minimalState(),
		form.SetGameDetail{GameID: "valorant", Patch: form.GameDetailPatch{
			Handle:    &handle,
			Role:      &blank,
			Platforms: []models.Platform{models.PlatformPC},
		}},
	)
	p := Build(s, nil, models.LaunchCatalog())
	require.NoError(t, Conform(p))

	assert.Equal(t, models.GameEntry{
		GameID:    "valorant",
		GameName:  "Valorant",
		Handle:    "fox#NA1",
		Platforms: []models.Platform{models.PlatformPC},
	}, p.Games[0])
}

func TestBuild_DecodedPlatformsConform(t *testing.T) {
	action, err := form.DecodeAction([]byte(`{"type":"setGameDetail","gameId":"valorant","patch":{"platforms":["PC","PC","Switch"]}}`))
	require.NoError(t, err)

	s := form.Reduce(minimalState(), action)
	p := Build(s, nil, models.LaunchCatalog())
	require.NoError(t, Conform(p))
	assert.Equal(t, []models.Platform{models.PlatformPC, models.PlatformSwitch}, p.Games[0].Platforms)

	_, err = form.DecodeAction([]byte(`{"type":"setGameDetail","gameId":"valorant","patch":{"platforms":["Dreamcast"]}}`))
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidAction))

	// Unknown platforms set through the Go API are dropped rather than sent.
	s = form.Reduce(minimalState(), form.SetGameDetail{GameID: "valorant", Patch: form.GameDetailPatch{
		Platforms: []models.Platform{"Dreamcast"},
	}})
	p = Build(s, nil, models.LaunchCatalog())
	require.NoError(t, Conform(p))
	assert.Empty(t, p.Games[0].Platforms)
}

func TestBuild_ValidatedStatesConform(t *testing.T) {
	long := minimalState()
	long.Email = strings.Repeat("a", 250) + "@example.com"
	assert.True(t, validate.Waitlist(long).Has("email"))

	odd := minimalState()
	odd.ProInterest = "Someday"
	assert.True(t, validate.Waitlist(odd).Has("proInterest"))

	s := minimalState()
	require.True(t, validate.Waitlist(s).Empty())
	require.NoError(t, Conform(Build(s, nil, models.LaunchCatalog())))
}

func TestBuild_ConnectedUsernames(t *testing.T) {
	s := form.ReduceAll(minimalState(),
		form.SetField{Field: form.FieldDiscordUsername, Value: "fox"},
		form.SetField{Field: form.FieldSteamUsername, Value: "   "},
	)
	p := Build(s, nil, nil)
	require.NotNil(t, p.ConnectedUsernames)

	m := toJSONMap(t, p)
	assert.Equal(t, map[string]interface{}{"discord": "fox"}, m["connectedUsernames"])
}

func TestBuild_MarketingAttribution(t *testing.T) {
	p := Build(minimalState(), &models.MarketingAttribution{Source: "discord", Campaign: " spring-open "}, nil)
	require.NotNil(t, p.MarketingAttribution)
	assert.Equal(t, models.MarketingAttribution{Source: "discord", Campaign: "spring-open"}, *p.MarketingAttribution)

	p = Build(minimalState(), &models.MarketingAttribution{Source: " "}, nil)
	assert.Nil(t, p.MarketingAttribution)
}

func TestBuild_ConditionalTracks(t *testing.T) {
	leader := form.ReduceAll(minimalState(),
		form.SetField{Field: form.FieldDesiredMembership, Value: models.MembershipLeadership},
		form.AddCoachPro{GameID: "valorant", GameName: "Valorant"},
		form.UpdateCoachPro{Index: 0, Field: form.CoachProRank, Value: " Immortal 3 "},
		form.UpdateCoachPro{Index: 0, Field: form.CoachProRankProofURL, Value: "https://example.com/x.png"},
		form.UpdateCoachPro{Index: 0, Field: form.CoachProWantsToCoach, Value: true},
	)
	p := Build(leader, nil, models.LaunchCatalog())
	require.NoError(t, Conform(p))
	require.Len(t, p.CoachProTrack, 1)
	assert.Equal(t, "Immortal 3", p.CoachProTrack[0].Rank)
	assert.True(t, p.CoachProTrack[0].WantsToCoach)
	assert.Nil(t, p.Tier2Coaching)

	captain := form.ReduceAll(minimalState(),
		form.SetField{Field: form.FieldDesiredMembership, Value: models.MembershipCaptain},
		form.AddTier2Coaching{GameID: "valorant", GameName: "Valorant"},
		form.UpdateTier2Coaching{Index: 0, Field: form.Tier2DesiredRank, Value: "Diamond"},
	)
	p = Build(captain, nil, models.LaunchCatalog())
	require.NoError(t, Conform(p))
	assert.Nil(t, p.CoachProTrack)
	require.Len(t, p.Tier2Coaching, 1)

	m := toJSONMap(t, p)
	row := m["tier2Coaching"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, map[string]interface{}{"gameId": "valorant", "gameName": "Valorant", "desiredRank": "Diamond"}, row)

	// A stale list under the wrong tier is never emitted.
	stale := captain
	stale.DesiredMembership = models.MembershipPlayer
	assert.Nil(t, Build(stale, nil, nil).Tier2Coaching)
}

func TestBuild_NotesAndZip(t *testing.T) {
	s := form.ReduceAll(minimalState(),
		form.SetField{Field: form.FieldNotes, Value: "Can host LAN nights."},
		form.SetField{Field: form.FieldZipCode, Value: "94107"},
		form.ToggleAvailability{Slot: "Wed-morning"},
		form.ToggleAvailability{Slot: "Mon-evening"},
	)
	p := Build(s, nil, nil)
	require.NoError(t, Conform(p))
	assert.Equal(t, "94107", p.ZipCode)
	assert.Equal(t, "Can host LAN nights.\n\nTypical windows: Mon Evening, Wed Morning", p.Notes)
}

func TestBuild_UnknownCatalogIDFallsBackToID(t *testing.T) {
	s := form.Reduce(minimalState(), form.ToggleGame{Game: form.CatalogGame("retired-title")})
	p := Build(s, nil, models.LaunchCatalog())
	assert.Equal(t, models.GameEntry{GameID: "retired-title", GameName: "retired-title"}, p.Games[1])
}

func TestConform_RejectsBrokenPayload(t *testing.T) {
	p := Build(minimalState(), nil, models.LaunchCatalog())
	p.Games = nil
	p.ConnectedUsernames = &models.ConnectedUsernames{}

	err := Conform(p)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeSchemaViolation))
}

func TestPartnership(t *testing.T) {
	p := Partnership(models.PartnershipInquiry{Email: " biz@sponsor.gg ", Notes: "   "})
	assert.Equal(t, models.PartnershipPayload{Email: "biz@sponsor.gg"}, p)
	require.NoError(t, ConformPartnership(p))

	m := toJSONMap(t, p)
	assert.NotContains(t, m, "notes")
}
