package form

import (
	"encoding/json"
	"fmt"
	"strings"

	"esports-waitlist/internal/models"
)

const (
	MaxSelectedGames = 6
	MaxPlayTimes     = 3
	MaxOtherGames    = 3
	MaxNotesLength   = 300

	otherSlotKey = "other"
)

// GameRef is one entry of the selected-games list: either a catalog game or
// the free-text "other" slot.
type GameRef struct {
	ID    string
	Other bool
}

// OtherSlot selects the free-text game rows.
var OtherSlot = GameRef{Other: true}

func CatalogGame(id string) GameRef {
	return GameRef{ID: id}
}

// Key is the wire form: the catalog id, or "other".
func (g GameRef) Key() string {
	if g.Other {
		return otherSlotKey
	}
	return g.ID
}

func (g GameRef) String() string { return g.Key() }

// ParseGameRef is the inverse of Key.
func ParseGameRef(key string) (GameRef, error) {
	key = strings.TrimSpace(key)
	switch key {
	case "":
		return GameRef{}, fmt.Errorf("empty game id")
	case otherSlotKey:
		return OtherSlot, nil
	default:
		return CatalogGame(key), nil
	}
}

func (g GameRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.Key())
}

func (g *GameRef) UnmarshalJSON(data []byte) error {
	var key string
	if err := json.Unmarshal(data, &key); err != nil {
		return err
	}
	ref, err := ParseGameRef(key)
	if err != nil {
		return err
	}
	*g = ref
	return nil
}

// OtherGame is a free-text game row. Key is a stable row identity; ID is the
// optional slug the respondent typed.
type OtherGame struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	ID   string `json:"id"`
}

type GameDetail struct {
	Handle    string            `json:"handle,omitempty"`
	Role      string            `json:"role,omitempty"`
	Platforms []models.Platform `json:"platforms,omitempty"`
}

// GameDetailPatch carries only the keys being changed; nil means "keep".
type GameDetailPatch struct {
	Handle    *string           `json:"handle,omitempty"`
	Role      *string           `json:"role,omitempty"`
	Platforms []models.Platform `json:"platforms,omitempty"`
}

type CoachProGame struct {
	GameID               string `json:"gameId"`
	GameName             string `json:"gameName"`
	Rank                 string `json:"rank"`
	RankProofURL         string `json:"rankProofUrl"`
	WantsToCoach         bool   `json:"wantsToCoach"`
	WantsToCompete       bool   `json:"wantsToCompete"`
	WantsToCreateContent bool   `json:"wantsToCreateContent"`
}

// HasGoal reports whether at least one goal flag is set.
func (c CoachProGame) HasGoal() bool {
	return c.WantsToCoach || c.WantsToCompete || c.WantsToCreateContent
}

type Tier2CoachingGame struct {
	GameID      string `json:"gameId"`
	GameName    string `json:"gameName"`
	CurrentRank string `json:"currentRank"`
	DesiredRank string `json:"desiredRank"`
	Notes       string `json:"notes"`
}

// State is the whole intake form.
type State struct {
	Email        string `json:"email"`
	ClubUsername string `json:"clubUsername"`

	IsLocal bool          `json:"isLocal"`
	Region  models.Region `json:"region"`
	ZipCode string        `json:"zipCode"`

	DesiredMembership  models.Membership `json:"desiredMembership"`
	PlayIntent         models.PlayIntent `json:"playIntent"`
	PreferredPlayTimes []models.PlayTime `json:"preferredPlayTimes"`

	SelectedGames []GameRef             `json:"selectedGameIds"`
	OtherGames    []OtherGame           `json:"otherGames"`
	GameDetails   map[string]GameDetail `json:"gameDetails"`

	DiscordUsername string `json:"discordUsername"`
	SteamUsername   string `json:"steamUsername"`
	RiotID          string `json:"riotId"`

	ProInterest       models.ProInterest `json:"proInterest"`
	EventInterest     bool               `json:"eventInterest"`
	Notes             string             `json:"notes"`
	AvailabilitySlots []string           `json:"availabilitySlots"`

	CoachProGames      []CoachProGame      `json:"coachProGames"`
	Tier2CoachingGames []Tier2CoachingGame `json:"tier2CoachingGames"`

	AgreeToTerms   bool `json:"agreeToTerms"`
	AgreeToContact bool `json:"agreeToContact"`
}

// Initial is the state a fresh form starts from.
func Initial() State {
	return State{
		IsLocal:            true,
		Region:             models.DefaultRegion,
		DesiredMembership:  models.MembershipCommunity,
		PlayIntent:         models.PlayIntentCasual,
		PreferredPlayTimes: []models.PlayTime{},
		SelectedGames:      []GameRef{CatalogGame(models.DefaultGameID)},
		OtherGames:         []OtherGame{},
		GameDetails:        map[string]GameDetail{},
		ProInterest:        models.ProInterestMaybe,
		AvailabilitySlots:  []string{},
		CoachProGames:      []CoachProGame{},
		Tier2CoachingGames: []Tier2CoachingGame{},
	}
}

// HasOtherSlot reports whether the "other" slot is selected.
func (s State) HasOtherSlot() bool {
	for _, g := range s.SelectedGames {
		if g.Other {
			return true
		}
	}
	return false
}

func (s State) clone() State {
	next := s
	next.PreferredPlayTimes = append([]models.PlayTime{}, s.PreferredPlayTimes...)
	next.SelectedGames = append([]GameRef{}, s.SelectedGames...)
	next.OtherGames = append([]OtherGame{}, s.OtherGames...)
	next.AvailabilitySlots = append([]string{}, s.AvailabilitySlots...)
	next.CoachProGames = append([]CoachProGame{}, s.CoachProGames...)
	next.Tier2CoachingGames = append([]Tier2CoachingGame{}, s.Tier2CoachingGames...)
	next.GameDetails = make(map[string]GameDetail, len(s.GameDetails))
	for id, d := range s.GameDetails {
		d.Platforms = append([]models.Platform(nil), d.Platforms...)
		next.GameDetails[id] = d
	}
	return next
}

// SlotKey builds an availability key such as "Mon-evening".
func SlotKey(day, block string) string {
	return day + "-" + block
}

// ParseSlotKey splits a key into its canonical day and block indexes.
func ParseSlotKey(key string) (day, block int, ok bool) {
	d, b, found := strings.Cut(key, "-")
	if !found {
		return 0, 0, false
	}
	day, block = indexOf(models.Days, d), indexOf(models.TimeBlocks, b)
	if day < 0 || block < 0 {
		return 0, 0, false
	}
	return day, block, true
}

func indexOf(list []string, v string) int {
	for i, s := range list {
		if s == v {
			return i
		}
	}
	return -1
}
