package form

import (
	"esports-waitlist/internal/models"
)

// Reduce returns the state after applying a. It never mutates s and never
// fails: actions that do not apply (bad index, wrong value type, unknown
// variant) return s unchanged.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case SetField:
		return setField(s, a)
	case ToggleGame:
		return toggleGame(s, a)
	case TogglePlayTime:
		return togglePlayTime(s, a)
	case ToggleAvailability:
		return toggleAvailability(s, a)
	case SetGameDetail:
		return setGameDetail(s, a)
	case NormalizeLocality:
		next := s.clone()
		normalizeLocality(&next)
		return next
	case AddOtherGame:
		return addOtherGame(s, a)
	case RemoveOtherGame:
		return removeOtherGame(s, a)
	case UpdateOtherGame:
		return updateOtherGame(s, a)
	case AddCoachPro:
		return addCoachPro(s, a)
	case RemoveCoachPro:
		return removeCoachPro(s, a)
	case UpdateCoachPro:
		return updateCoachPro(s, a)
	case AddTier2Coaching:
		return addTier2Coaching(s, a)
	case RemoveTier2Coaching:
		return removeTier2Coaching(s, a)
	case UpdateTier2Coaching:
		return updateTier2Coaching(s, a)
	case ClearContact:
		next := s.clone()
		next.Email = ""
		next.Notes = ""
		return next
	default:
		return s
	}
}

// ReduceAll folds actions over s in order.
func ReduceAll(s State, actions ...Action) State {
	for _, a := range actions {
		s = Reduce(s, a)
	}
	return s
}

func setField(s State, a SetField) State {
	if a.Field.IsBool() {
		v, ok := a.Value.(bool)
		if !ok {
			return s
		}
		next := s.clone()
		switch a.Field {
		case FieldIsLocal:
			next.IsLocal = v
			normalizeLocality(&next)
		case FieldEventInterest:
			next.EventInterest = v
		case FieldAgreeToTerms:
			next.AgreeToTerms = v
		case FieldAgreeToContact:
			next.AgreeToContact = v
		}
		return next
	}

	v, ok := stringValue(a.Value)
	if !ok {
		return s
	}
	next := s.clone()
	switch a.Field {
	case FieldEmail:
		next.Email = v
	case FieldClubUsername:
		next.ClubUsername = v
	case FieldRegion:
		next.Region = models.Region(v)
	case FieldZipCode:
		next.ZipCode = v
	case FieldDesiredMembership:
		next.DesiredMembership = models.Membership(v)
		if next.DesiredMembership != models.MembershipLeadership {
			next.CoachProGames = []CoachProGame{}
		}
		if next.DesiredMembership != models.MembershipCaptain {
			next.Tier2CoachingGames = []Tier2CoachingGame{}
		}
	case FieldPlayIntent:
		next.PlayIntent = models.PlayIntent(v)
	case FieldDiscordUsername:
		next.DiscordUsername = v
	case FieldSteamUsername:
		next.SteamUsername = v
	case FieldRiotID:
		next.RiotID = v
	case FieldProInterest:
		next.ProInterest = models.ProInterest(v)
	case FieldNotes:
		next.Notes = v
	default:
		return s
	}
	return next
}

func stringValue(v interface{}) (string, bool) {
	switch v := v.(type) {
	case string:
		return v, true
	case models.Region:
		return string(v), true
	case models.Membership:
		return string(v), true
	case models.PlayIntent:
		return string(v), true
	case models.ProInterest:
		return string(v), true
	default:
		return "", false
	}
}

func normalizeLocality(s *State) {
	switch {
	case !s.IsLocal:
		s.Region = models.RegionNotLocal
	case s.Region == models.RegionNotLocal:
		s.Region = models.DefaultRegion
	}
}

func toggleGame(s State, a ToggleGame) State {
	if !a.Game.Other && a.Game.ID == "" {
		return s
	}
	next := s.clone()

	if i := indexOfGame(next.SelectedGames, a.Game); i >= 0 {
		next.SelectedGames = append(next.SelectedGames[:i], next.SelectedGames[i+1:]...)
		if a.Game.Other {
			next.OtherGames = []OtherGame{}
		}
		return next
	}

	next.SelectedGames = dedupGames(append(next.SelectedGames, a.Game))
	if len(next.SelectedGames) > MaxSelectedGames {
		next.SelectedGames = next.SelectedGames[:MaxSelectedGames]
	}
	if a.Game.Other && next.HasOtherSlot() && len(next.OtherGames) == 0 {
		next.OtherGames = []OtherGame{{Key: a.RowKey}}
	}
	return next
}

func indexOfGame(games []GameRef, g GameRef) int {
	for i, x := range games {
		if x == g {
			return i
		}
	}
	return -1
}

func dedupGames(games []GameRef) []GameRef {
	seen := make(map[GameRef]bool, len(games))
	out := games[:0]
	for _, g := range games {
		if seen[g] {
			continue
		}
		seen[g] = true
		out = append(out, g)
	}
	return out
}

func togglePlayTime(s State, a TogglePlayTime) State {
	if !knownPlayTime(string(a.PlayTime)) {
		return s
	}
	next := s.clone()
	if i := indexOfPlayTime(next.PreferredPlayTimes, a.PlayTime); i >= 0 {
		next.PreferredPlayTimes = append(next.PreferredPlayTimes[:i], next.PreferredPlayTimes[i+1:]...)
		return next
	}
	next.PreferredPlayTimes = append(next.PreferredPlayTimes, a.PlayTime)
	if len(next.PreferredPlayTimes) > MaxPlayTimes {
		next.PreferredPlayTimes = next.PreferredPlayTimes[:MaxPlayTimes]
	}
	return next
}

func indexOfPlayTime(times []models.PlayTime, t models.PlayTime) int {
	for i, x := range times {
		if x == t {
			return i
		}
	}
	return -1
}

func toggleAvailability(s State, a ToggleAvailability) State {
	if _, _, ok := ParseSlotKey(a.Slot); !ok {
		return s
	}
	next := s.clone()
	for i, slot := range next.AvailabilitySlots {
		if slot == a.Slot {
			next.AvailabilitySlots = append(next.AvailabilitySlots[:i], next.AvailabilitySlots[i+1:]...)
			return next
		}
	}
	next.AvailabilitySlots = append(next.AvailabilitySlots, a.Slot)
	return next
}

func setGameDetail(s State, a SetGameDetail) State {
	if a.GameID == "" {
		return s
	}
	next := s.clone()
	detail := next.GameDetails[a.GameID]
	if a.Patch.Handle != nil {
		detail.Handle = *a.Patch.Handle
	}
	if a.Patch.Role != nil {
		detail.Role = *a.Patch.Role
	}
	if a.Patch.Platforms != nil {
		detail.Platforms = uniquePlatforms(a.Patch.Platforms)
	}
	next.GameDetails[a.GameID] = detail
	return next
}

// uniquePlatforms drops unknown and repeated platforms, keeping first-seen order.
func uniquePlatforms(in []models.Platform) []models.Platform {
	out := make([]models.Platform, 0, len(in))
	for _, p := range in {
		if knownPlatform(p) && !containsPlatform(out, p) {
			out = append(out, p)
		}
	}
	return out
}

func containsPlatform(list []models.Platform, p models.Platform) bool {
	for _, q := range list {
		if q == p {
			return true
		}
	}
	return false
}

func addOtherGame(s State, a AddOtherGame) State {
	if len(s.OtherGames) >= MaxOtherGames {
		return s
	}
	next := s.clone()
	next.OtherGames = append(next.OtherGames, OtherGame{Key: a.RowKey})
	return next
}

func removeOtherGame(s State, a RemoveOtherGame) State {
	if !inBounds(a.Index, len(s.OtherGames)) {
		return s
	}
	next := s.clone()
	next.OtherGames = append(next.OtherGames[:a.Index], next.OtherGames[a.Index+1:]...)
	return next
}

func updateOtherGame(s State, a UpdateOtherGame) State {
	if !inBounds(a.Index, len(s.OtherGames)) {
		return s
	}
	next := s.clone()
	row := &next.OtherGames[a.Index]
	switch a.Field {
	case OtherGameName:
		row.Name = a.Value
	case OtherGameID:
		row.ID = a.Value
	default:
		return s
	}
	return next
}

// Coach/pro rows only exist while the Leadership Track is selected; adding
// under any other tier is a no-op.
func addCoachPro(s State, a AddCoachPro) State {
	if s.DesiredMembership != models.MembershipLeadership || a.GameID == "" {
		return s
	}
	for _, c := range s.CoachProGames {
		if c.GameID == a.GameID {
			return s
		}
	}
	next := s.clone()
	next.CoachProGames = append(next.CoachProGames, CoachProGame{GameID: a.GameID, GameName: a.GameName})
	return next
}

func removeCoachPro(s State, a RemoveCoachPro) State {
	if !inBounds(a.Index, len(s.CoachProGames)) {
		return s
	}
	next := s.clone()
	next.CoachProGames = append(next.CoachProGames[:a.Index], next.CoachProGames[a.Index+1:]...)
	return next
}

func updateCoachPro(s State, a UpdateCoachPro) State {
	if !inBounds(a.Index, len(s.CoachProGames)) {
		return s
	}
	next := s.clone()
	entry := &next.CoachProGames[a.Index]

	if a.Field.IsBool() {
		v, ok := a.Value.(bool)
		if !ok {
			return s
		}
		switch a.Field {
		case CoachProWantsToCoach:
			entry.WantsToCoach = v
		case CoachProWantsToCompete:
			entry.WantsToCompete = v
		case CoachProWantsToCreateContent:
			entry.WantsToCreateContent = v
		}
		return next
	}

	v, ok := a.Value.(string)
	if !ok {
		return s
	}
	switch a.Field {
	case CoachProRank:
		entry.Rank = v
	case CoachProRankProofURL:
		entry.RankProofURL = v
	default:
		return s
	}
	return next
}

func addTier2Coaching(s State, a AddTier2Coaching) State {
	if s.DesiredMembership != models.MembershipCaptain || a.GameID == "" {
		return s
	}
	for _, c := range s.Tier2CoachingGames {
		if c.GameID == a.GameID {
			return s
		}
	}
	next := s.clone()
	next.Tier2CoachingGames = append(next.Tier2CoachingGames, Tier2CoachingGame{GameID: a.GameID, GameName: a.GameName})
	return next
}

func removeTier2Coaching(s State, a RemoveTier2Coaching) State {
	if !inBounds(a.Index, len(s.Tier2CoachingGames)) {
		return s
	}
	next := s.clone()
	next.Tier2CoachingGames = append(next.Tier2CoachingGames[:a.Index], next.Tier2CoachingGames[a.Index+1:]...)
	return next
}

func updateTier2Coaching(s State, a UpdateTier2Coaching) State {
	if !inBounds(a.Index, len(s.Tier2CoachingGames)) {
		return s
	}
	next := s.clone()
	entry := &next.Tier2CoachingGames[a.Index]
	switch a.Field {
	case Tier2CurrentRank:
		entry.CurrentRank = a.Value
	case Tier2DesiredRank:
		entry.DesiredRank = a.Value
	case Tier2Notes:
		entry.Notes = a.Value
	default:
		return s
	}
	return next
}

func inBounds(i, n int) bool {
	return i >= 0 && i < n
}
