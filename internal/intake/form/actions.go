package form

import (
	"github.com/google/uuid"

	"esports-waitlist/internal/models"
)

// Action is a closed set of form transitions. Only types in this package
// implement it.
type Action interface {
	Kind() string
	isAction()
}

// Field names a scalar form field that SetField can replace.
type Field string

const (
	FieldEmail             Field = "email"
	FieldClubUsername      Field = "clubUsername"
	FieldIsLocal           Field = "isLocal"
	FieldRegion            Field = "region"
	FieldZipCode           Field = "zipCode"
	FieldDesiredMembership Field = "desiredMembership"
	FieldPlayIntent        Field = "playIntent"
	FieldDiscordUsername   Field = "discordUsername"
	FieldSteamUsername     Field = "steamUsername"
	FieldRiotID            Field = "riotId"
	FieldProInterest       Field = "proInterest"
	FieldEventInterest     Field = "eventInterest"
	FieldNotes             Field = "notes"
	FieldAgreeToTerms      Field = "agreeToTerms"
	FieldAgreeToContact    Field = "agreeToContact"
)

// boolFields take a bool Value; every other Field takes a string (or the
// matching models enum type).
var boolFields = map[Field]bool{
	FieldIsLocal:        true,
	FieldEventInterest:  true,
	FieldAgreeToTerms:   true,
	FieldAgreeToContact: true,
}

// IsBool reports whether the field holds a boolean.
func (f Field) IsBool() bool { return boolFields[f] }

// SetField replaces one scalar field wholesale.
type SetField struct {
	Field Field
	Value interface{}
}

// ToggleGame adds or removes a game. RowKey seeds the blank "other" row when
// the other slot is switched on.
type ToggleGame struct {
	Game   GameRef
	RowKey string
}

type TogglePlayTime struct {
	PlayTime models.PlayTime
}

type ToggleAvailability struct {
	Slot string
}

// SetGameDetail merges Patch into the details of GameID.
type SetGameDetail struct {
	GameID string
	Patch  GameDetailPatch
}

// NormalizeLocality reconciles Region with IsLocal.
type NormalizeLocality struct{}

type AddOtherGame struct {
	RowKey string
}

type RemoveOtherGame struct {
	Index int
}

type OtherGameField string

const (
	OtherGameName OtherGameField = "name"
	OtherGameID   OtherGameField = "id"
)

type UpdateOtherGame struct {
	Index int
	Field OtherGameField
	Value string
}

type AddCoachPro struct {
	GameID   string
	GameName string
}

type RemoveCoachPro struct {
	Index int
}

type CoachProField string

const (
	CoachProRank                 CoachProField = "rank"
	CoachProRankProofURL         CoachProField = "rankProofUrl"
	CoachProWantsToCoach         CoachProField = "wantsToCoach"
	CoachProWantsToCompete       CoachProField = "wantsToCompete"
	CoachProWantsToCreateContent CoachProField = "wantsToCreateContent"
)

// IsBool reports whether the field is one of the goal flags.
func (f CoachProField) IsBool() bool {
	return f == CoachProWantsToCoach || f == CoachProWantsToCompete || f == CoachProWantsToCreateContent
}

// UpdateCoachPro sets one field of a coach/pro entry. Value is a string for
// rank fields and a bool for goal flags.
type UpdateCoachPro struct {
	Index int
	Field CoachProField
	Value interface{}
}

type AddTier2Coaching struct {
	GameID   string
	GameName string
}

type RemoveTier2Coaching struct {
	Index int
}

type Tier2CoachingField string

const (
	Tier2CurrentRank Tier2CoachingField = "currentRank"
	Tier2DesiredRank Tier2CoachingField = "desiredRank"
	Tier2Notes       Tier2CoachingField = "notes"
)

type UpdateTier2Coaching struct {
	Index int
	Field Tier2CoachingField
	Value string
}

// ClearContact wipes the contact-sensitive fields after a successful submit.
type ClearContact struct{}

func (SetField) Kind() string            { return "setField" }
func (ToggleGame) Kind() string          { return "toggleGame" }
func (TogglePlayTime) Kind() string      { return "togglePlayTime" }
func (ToggleAvailability) Kind() string  { return "toggleAvailability" }
func (SetGameDetail) Kind() string       { return "setGameDetail" }
func (NormalizeLocality) Kind() string   { return "normalizeLocality" }
func (AddOtherGame) Kind() string        { return "addOtherGame" }
func (RemoveOtherGame) Kind() string     { return "removeOtherGame" }
func (UpdateOtherGame) Kind() string     { return "updateOtherGame" }
func (AddCoachPro) Kind() string         { return "addCoachPro" }
func (RemoveCoachPro) Kind() string      { return "removeCoachPro" }
func (UpdateCoachPro) Kind() string      { return "updateCoachPro" }
func (AddTier2Coaching) Kind() string    { return "addTier2Coaching" }
func (RemoveTier2Coaching) Kind() string { return "removeTier2Coaching" }
func (UpdateTier2Coaching) Kind() string { return "updateTier2Coaching" }
func (ClearContact) Kind() string        { return "clearContact" }

func (SetField) isAction()            {}
func (ToggleGame) isAction()          {}
func (TogglePlayTime) isAction()      {}
func (ToggleAvailability) isAction()  {}
func (SetGameDetail) isAction()       {}
func (NormalizeLocality) isAction()   {}
func (AddOtherGame) isAction()        {}
func (RemoveOtherGame) isAction()     {}
func (UpdateOtherGame) isAction()     {}
func (AddCoachPro) isAction()         {}
func (RemoveCoachPro) isAction()      {}
func (UpdateCoachPro) isAction()      {}
func (AddTier2Coaching) isAction()    {}
func (RemoveTier2Coaching) isAction() {}
func (UpdateTier2Coaching) isAction() {}
func (ClearContact) isAction()        {}

// NewToggleGame fills in a fresh row key for the "other" seed row.
func NewToggleGame(game GameRef) ToggleGame {
	return ToggleGame{Game: game, RowKey: uuid.NewString()}
}

func NewAddOtherGame() AddOtherGame {
	return AddOtherGame{RowKey: uuid.NewString()}
}

// ShiftsRows reports whether a can move or drop list rows, which
// invalidates positional error keys such as otherGame_1_name.
func ShiftsRows(a Action) bool {
	switch a := a.(type) {
	case RemoveOtherGame, RemoveCoachPro, RemoveTier2Coaching:
		return true
	case ToggleGame:
		return a.Game.Other
	case SetField:
		return a.Field == FieldDesiredMembership
	default:
		return false
	}
}
