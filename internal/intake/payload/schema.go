package payload

import (
	_ "embed"
	"strings"

	"esports-waitlist/internal/common/errors"
	"esports-waitlist/internal/common/validation"
	"esports-waitlist/internal/models"
)

var (
	//go:embed schemas/waitlist.schema.json
	waitlistSchemaJSON string
	//go:embed schemas/partnership.schema.json
	partnershipSchemaJSON string

	waitlistSchema    = validation.MustCompileSchema(waitlistSchemaJSON)
	partnershipSchema = validation.MustCompileSchema(partnershipSchemaJSON)
)

// Conform checks a built waitlist payload against the upstream schema. A
// failure means the builder produced something the upstream would reject,
// which is a bug rather than user error.
func Conform(p models.SubmissionPayload) error {
	return conform(waitlistSchema, p)
}

// ConformPartnership is Conform for the partnerships body.
func ConformPartnership(p models.PartnershipPayload) error {
	return conform(partnershipSchema, p)
}

func conform(schema *validation.Schema, doc interface{}) error {
	result, err := schema.Validate(doc)
	if err != nil {
		return errors.NewSchemaViolationError(err.Error())
	}
	if !result.Valid {
		return errors.NewSchemaViolationError(strings.Join(result.GetErrorMessages(), "; "))
	}
	return nil
}
