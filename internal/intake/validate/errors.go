package validate

import "fmt"

// FieldError is one invalid field and the message shown next to it.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldErrors is a sparse error map that remembers insertion order, so the
// first invalid field is well defined. A field appears at most once.
type FieldErrors []FieldError

func (fe *FieldErrors) add(field, message string) {
	if fe.Has(field) {
		return
	}
	*fe = append(*fe, FieldError{Field: field, Message: message})
}

func (fe FieldErrors) Empty() bool { return len(fe) == 0 }

func (fe FieldErrors) Has(field string) bool {
	_, ok := fe.Message(field)
	return ok
}

func (fe FieldErrors) Message(field string) (string, bool) {
	for _, e := range fe {
		if e.Field == field {
			return e.Message, true
		}
	}
	return "", false
}

// First returns the field that should receive focus, or "" when valid.
func (fe FieldErrors) First() string {
	if len(fe) == 0 {
		return ""
	}
	return fe[0].Field
}

// Map is the plain field→message form used on the wire.
func (fe FieldErrors) Map() map[string]string {
	out := make(map[string]string, len(fe))
	for _, e := range fe {
		out[e.Field] = e.Message
	}
	return out
}

// Fields lists the invalid field keys in order.
func (fe FieldErrors) Fields() []string {
	out := make([]string, len(fe))
	for i, e := range fe {
		out[i] = e.Field
	}
	return out
}

func otherGameNameKey(i int) string     { return fmt.Sprintf("otherGame_%d_name", i) }
func coachProRankKey(i int) string      { return fmt.Sprintf("coachPro_%d_rank", i) }
func coachProRankProofKey(i int) string { return fmt.Sprintf("coachPro_%d_rankProofUrl", i) }
func coachProGoalsKey(i int) string     { return fmt.Sprintf("coachPro_%d_goals", i) }
