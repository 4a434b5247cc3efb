package models

// Region is one of the community's named areas.
type Region string

const (
	RegionDowntown  Region = "Downtown"
	RegionNorthSide Region = "North Side"
	RegionSouthSide Region = "South Side"
	RegionEastEnd   Region = "East End"
	RegionWestEnd   Region = "West End"
	RegionUptown    Region = "Uptown"
	RegionSuburbs   Region = "Suburbs"
	// RegionNotLocal is reserved for respondents outside the area.
	RegionNotLocal Region = "Not Local"

	DefaultRegion = RegionDowntown
)

var Regions = []Region{
	RegionDowntown, RegionNorthSide, RegionSouthSide, RegionEastEnd,
	RegionWestEnd, RegionUptown, RegionSuburbs, RegionNotLocal,
}

// Membership is the tier a respondent is applying for.
type Membership string

const (
	MembershipCommunity Membership = "Community"
	MembershipPlayer    Membership = "Player"
	// MembershipCaptain owns the tier-2 coaching add-on.
	MembershipCaptain Membership = "Captain"
	// MembershipLeadership is the coach/pro opt-in track.
	MembershipLeadership Membership = "Leadership Track"
)

var Memberships = []Membership{MembershipCommunity, MembershipPlayer, MembershipCaptain, MembershipLeadership}

type PlayIntent string

const (
	PlayIntentCasual      PlayIntent = "Casual"
	PlayIntentCompetitive PlayIntent = "Competitive"
	PlayIntentBoth        PlayIntent = "Both"
)

var PlayIntents = []PlayIntent{PlayIntentCasual, PlayIntentCompetitive, PlayIntentBoth}

type PlayTime string

const (
	PlayTimeWeekdayMornings   PlayTime = "Weekday Mornings"
	PlayTimeWeekdayAfternoons PlayTime = "Weekday Afternoons"
	PlayTimeWeekdayEvenings   PlayTime = "Weekday Evenings"
	PlayTimeWeekendMornings   PlayTime = "Weekend Mornings"
	PlayTimeWeekendAfternoons PlayTime = "Weekend Afternoons"
	PlayTimeWeekendEvenings   PlayTime = "Weekend Evenings"
	PlayTimeLateNight         PlayTime = "Late Night"
)

var PlayTimes = []PlayTime{
	PlayTimeWeekdayMornings, PlayTimeWeekdayAfternoons, PlayTimeWeekdayEvenings,
	PlayTimeWeekendMornings, PlayTimeWeekendAfternoons, PlayTimeWeekendEvenings,
	PlayTimeLateNight,
}

type ProInterest string

const (
	ProInterestYes   ProInterest = "Yes"
	ProInterestMaybe ProInterest = "Maybe"
	ProInterestNo    ProInterest = "No"
)

var ProInterests = []ProInterest{ProInterestYes, ProInterestMaybe, ProInterestNo}

type Platform string

const (
	PlatformPC          Platform = "PC"
	PlatformPlayStation Platform = "PlayStation"
	PlatformXbox        Platform = "Xbox"
	PlatformSwitch      Platform = "Switch"
	PlatformMobile      Platform = "Mobile"
)

var Platforms = []Platform{PlatformPC, PlatformPlayStation, PlatformXbox, PlatformSwitch, PlatformMobile}

// Availability grid: 7 days x 4 time blocks. Slot keys look like "Mon-evening".
var (
	Days        = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
	TimeBlocks  = []string{"morning", "afternoon", "evening", "late"}
	BlockLabels = map[string]string{
		"morning":   "Morning",
		"afternoon": "Afternoon",
		"evening":   "Evening",
		"late":      "Late Night",
	}
)

// Game is a launch title the club runs brackets for.
type Game struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Catalog resolves launch-game ids to display names, preserving order.
type Catalog struct {
	games []Game
	byID  map[string]Game
}

// NewCatalog indexes games; later duplicates of an id are ignored.
func NewCatalog(games []Game) *Catalog {
	c := &Catalog{byID: make(map[string]Game, len(games))}
	for _, g := range games {
		if _, dup := c.byID[g.ID]; dup || g.ID == "" {
			continue
		}
		c.games = append(c.games, g)
		c.byID[g.ID] = g
	}
	return c
}

func (c *Catalog) Lookup(id string) (Game, bool) {
	if c == nil {
		return Game{}, false
	}
	g, ok := c.byID[id]
	return g, ok
}

func (c *Catalog) Games() []Game {
	if c == nil {
		return nil
	}
	return append([]Game(nil), c.games...)
}

// DefaultGameID is pre-selected on a fresh form.
const DefaultGameID = "valorant"

var launchGames = []Game{
	{ID: "valorant", Name: "Valorant"},
	{ID: "league-of-legends", Name: "League of Legends"},
	{ID: "rocket-league", Name: "Rocket League"},
	{ID: "overwatch-2", Name: "Overwatch 2"},
	{ID: "counter-strike-2", Name: "Counter-Strike 2"},
	{ID: "super-smash-bros-ultimate", Name: "Super Smash Bros. Ultimate"},
	{ID: "street-fighter-6", Name: "Street Fighter 6"},
	{ID: "fortnite", Name: "Fortnite"},
}

// LaunchCatalog returns the built-in launch-game catalog.
func LaunchCatalog() *Catalog {
	return NewCatalog(launchGames)
}
