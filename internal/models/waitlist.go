package models

// SubmissionPayload is the body of POST /api/waitlist. Optional keys are
// omitted entirely when their source data is empty.
type SubmissionPayload struct {
	Email                string                `json:"email"`
	ClubUsername         string                `json:"clubUsername"`
	IsLocal              bool                  `json:"isLocal"`
	Region               Region                `json:"region"`
	ZipCode              string                `json:"zipCode,omitempty"`
	DesiredMembership    Membership            `json:"desiredMembership"`
	PlayIntent           PlayIntent            `json:"playIntent"`
	PreferredPlayTimes   []PlayTime            `json:"preferredPlayTimes"`
	Games                []GameEntry           `json:"games"`
	ConnectedUsernames   *ConnectedUsernames   `json:"connectedUsernames,omitempty"`
	ProInterest          ProInterest           `json:"proInterest"`
	EventInterest        bool                  `json:"eventInterest"`
	Notes                string                `json:"notes,omitempty"`
	MarketingAttribution *MarketingAttribution `json:"marketingAttribution,omitempty"`
	CoachProTrack        []CoachProEntry       `json:"coachProTrack,omitempty"`
	Tier2Coaching        []Tier2CoachingEntry  `json:"tier2Coaching,omitempty"`
	Consent              Consent               `json:"consent"`
}

type GameEntry struct {
	GameID    string     `json:"gameId"`
	GameName  string     `json:"gameName"`
	Handle    string     `json:"handle,omitempty"`
	Role      string     `json:"role,omitempty"`
	Platforms []Platform `json:"platforms,omitempty"`
}

type ConnectedUsernames struct {
	Discord string `json:"discord,omitempty"`
	Steam   string `json:"steam,omitempty"`
	Riot    string `json:"riot,omitempty"`
}

type MarketingAttribution struct {
	Source   string `json:"source,omitempty"`
	Medium   string `json:"medium,omitempty"`
	Campaign string `json:"campaign,omitempty"`
}

type CoachProEntry struct {
	GameID               string `json:"gameId"`
	GameName             string `json:"gameName"`
	Rank                 string `json:"rank"`
	RankProofURL         string `json:"rankProofUrl"`
	WantsToCoach         bool   `json:"wantsToCoach"`
	WantsToCompete       bool   `json:"wantsToCompete"`
	WantsToCreateContent bool   `json:"wantsToCreateContent"`
}

type Tier2CoachingEntry struct {
	GameID      string `json:"gameId"`
	GameName    string `json:"gameName"`
	CurrentRank string `json:"currentRank,omitempty"`
	DesiredRank string `json:"desiredRank,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

type Consent struct {
	AgreeToTerms   bool `json:"agreeToTerms"`
	AgreeToContact bool `json:"agreeToContact"`
}

// PartnershipInquiry is the raw partnerships form.
type PartnershipInquiry struct {
	Email string `json:"email"`
	Notes string `json:"notes"`
}

// PartnershipPayload is the body of POST /api/partnerships.
type PartnershipPayload struct {
	Email string `json:"email"`
	Notes string `json:"notes,omitempty"`
}

// APIResponse is the upstream success/failure envelope.
type APIResponse struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}
