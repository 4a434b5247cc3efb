package form

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"esports-waitlist/internal/common/errors"
	"esports-waitlist/internal/models"
)

// envelope is the wire shape of an action: {"type": "...", ...fields}.
type envelope struct {
	Type     string          `json:"type"`
	Field    string          `json:"field"`
	Value    json.RawMessage `json:"value"`
	GameID   string          `json:"gameId"`
	GameName string          `json:"gameName"`
	PlayTime string          `json:"playTime"`
	Slot     string          `json:"slot"`
	Index    *int            `json:"index"`
	RowKey   string          `json:"rowKey"`
	Patch    GameDetailPatch `json:"patch"`
}

// DecodeAction parses a wire envelope into a typed Action. Errors are
// INVALID_ACTION StandardErrors.
func DecodeAction(data []byte) (Action, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, errors.NewInvalidActionError(fmt.Sprintf("malformed action: %v", err))
	}

	switch env.Type {
	case "setField":
		return decodeSetField(env)
	case "toggleGame":
		ref, err := ParseGameRef(env.GameID)
		if err != nil {
			return nil, errors.NewInvalidActionError("toggleGame: " + err.Error())
		}
		return ToggleGame{Game: ref, RowKey: rowKeyOrNew(env.RowKey)}, nil
	case "togglePlayTime":
		if !knownPlayTime(env.PlayTime) {
			return nil, errors.NewInvalidActionError(fmt.Sprintf("togglePlayTime: unknown play time %q", env.PlayTime))
		}
		return TogglePlayTime{PlayTime: models.PlayTime(env.PlayTime)}, nil
	case "toggleAvailability":
		if _, _, ok := ParseSlotKey(env.Slot); !ok {
			return nil, errors.NewInvalidActionError(fmt.Sprintf("toggleAvailability: unknown slot %q", env.Slot))
		}
		return ToggleAvailability{Slot: env.Slot}, nil
	case "setGameDetail":
		if env.GameID == "" {
			return nil, errors.NewInvalidActionError("setGameDetail: gameId is required")
		}
		for _, p := range env.Patch.Platforms {
			if !knownPlatform(p) {
				return nil, errors.NewInvalidActionError(fmt.Sprintf("setGameDetail: unknown platform %q", p))
			}
		}
		return SetGameDetail{GameID: env.GameID, Patch: env.Patch}, nil
	case "normalizeLocality":
		return NormalizeLocality{}, nil
	case "addOtherGame":
		return AddOtherGame{RowKey: rowKeyOrNew(env.RowKey)}, nil
	case "removeOtherGame":
		i, err := index(env)
		if err != nil {
			return nil, err
		}
		return RemoveOtherGame{Index: i}, nil
	case "updateOtherGame":
		i, err := index(env)
		if err != nil {
			return nil, err
		}
		field := OtherGameField(env.Field)
		if field != OtherGameName && field != OtherGameID {
			return nil, errors.NewInvalidActionError(fmt.Sprintf("updateOtherGame: unknown field %q", env.Field))
		}
		v, err := stringRaw(env)
		if err != nil {
			return nil, err
		}
		return UpdateOtherGame{Index: i, Field: field, Value: v}, nil
	case "addCoachPro":
		if env.GameID == "" {
			return nil, errors.NewInvalidActionError("addCoachPro: gameId is required")
		}
		return AddCoachPro{GameID: env.GameID, GameName: env.GameName}, nil
	case "removeCoachPro":
		i, err := index(env)
		if err != nil {
			return nil, err
		}
		return RemoveCoachPro{Index: i}, nil
	case "updateCoachPro":
		return decodeUpdateCoachPro(env)
	case "addTier2Coaching":
		if env.GameID == "" {
			return nil, errors.NewInvalidActionError("addTier2Coaching: gameId is required")
		}
		return AddTier2Coaching{GameID: env.GameID, GameName: env.GameName}, nil
	case "removeTier2Coaching":
		i, err := index(env)
		if err != nil {
			return nil, err
		}
		return RemoveTier2Coaching{Index: i}, nil
	case "updateTier2Coaching":
		i, err := index(env)
		if err != nil {
			return nil, err
		}
		field := Tier2CoachingField(env.Field)
		switch field {
		case Tier2CurrentRank, Tier2DesiredRank, Tier2Notes:
		default:
			return nil, errors.NewInvalidActionError(fmt.Sprintf("updateTier2Coaching: unknown field %q", env.Field))
		}
		v, err := stringRaw(env)
		if err != nil {
			return nil, err
		}
		return UpdateTier2Coaching{Index: i, Field: field, Value: v}, nil
	case "":
		return nil, errors.NewInvalidActionError("action type is required")
	default:
		return nil, errors.NewInvalidActionError(fmt.Sprintf("unknown action type %q", env.Type))
	}
}

var scalarFields = map[Field]bool{
	FieldEmail: true, FieldClubUsername: true, FieldIsLocal: true, FieldRegion: true,
	FieldZipCode: true, FieldDesiredMembership: true, FieldPlayIntent: true,
	FieldDiscordUsername: true, FieldSteamUsername: true, FieldRiotID: true,
	FieldProInterest: true, FieldEventInterest: true, FieldNotes: true,
	FieldAgreeToTerms: true, FieldAgreeToContact: true,
}

func decodeSetField(env envelope) (Action, error) {
	field := Field(env.Field)
	if !scalarFields[field] {
		return nil, errors.NewInvalidActionError(fmt.Sprintf("setField: unknown field %q", env.Field))
	}
	if field.IsBool() {
		v, err := boolRaw(env)
		if err != nil {
			return nil, err
		}
		return SetField{Field: field, Value: v}, nil
	}
	v, err := stringRaw(env)
	if err != nil {
		return nil, err
	}
	if allowed, ok := enumFields[field]; ok && !contains(allowed, v) {
		return nil, errors.NewInvalidActionError(fmt.Sprintf("setField %s: unknown value %q", field, v))
	}
	return SetField{Field: field, Value: v}, nil
}

var enumFields = map[Field][]string{
	FieldRegion:            enumStrings(models.Regions),
	FieldDesiredMembership: enumStrings(models.Memberships),
	FieldPlayIntent:        enumStrings(models.PlayIntents),
	FieldProInterest:       enumStrings(models.ProInterests),
}

func enumStrings[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

func contains(list []string, v string) bool {
	return indexOf(list, v) >= 0
}

func decodeUpdateCoachPro(env envelope) (Action, error) {
	i, err := index(env)
	if err != nil {
		return nil, err
	}
	field := CoachProField(env.Field)
	switch field {
	case CoachProRank, CoachProRankProofURL:
		v, err := stringRaw(env)
		if err != nil {
			return nil, err
		}
		return UpdateCoachPro{Index: i, Field: field, Value: v}, nil
	case CoachProWantsToCoach, CoachProWantsToCompete, CoachProWantsToCreateContent:
		v, err := boolRaw(env)
		if err != nil {
			return nil, err
		}
		return UpdateCoachPro{Index: i, Field: field, Value: v}, nil
	default:
		return nil, errors.NewInvalidActionError(fmt.Sprintf("updateCoachPro: unknown field %q", env.Field))
	}
}

func index(env envelope) (int, error) {
	if env.Index == nil {
		return 0, errors.NewInvalidActionError(env.Type + ": index is required")
	}
	if *env.Index < 0 {
		return 0, errors.NewInvalidActionError(fmt.Sprintf("%s: negative index %d", env.Type, *env.Index))
	}
	return *env.Index, nil
}

func stringRaw(env envelope) (string, error) {
	var v string
	if err := json.Unmarshal(env.Value, &v); err != nil {
		return "", errors.NewInvalidActionError(fmt.Sprintf("%s %s: value must be a string", env.Type, env.Field))
	}
	return v, nil
}

func boolRaw(env envelope) (bool, error) {
	var v bool
	if err := json.Unmarshal(env.Value, &v); err != nil {
		return false, errors.NewInvalidActionError(fmt.Sprintf("%s %s: value must be a boolean", env.Type, env.Field))
	}
	return v, nil
}

func rowKeyOrNew(key string) string {
	if key != "" {
		return key
	}
	return uuid.NewString()
}

func knownPlatform(p models.Platform) bool {
	return contains(enumStrings(models.Platforms), string(p))
}

func knownPlayTime(v string) bool {
	return contains(enumStrings(models.PlayTimes), v)
}
