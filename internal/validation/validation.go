package validation

import (
	"errors"
	"strings"

	"github.com/devconnect/devconnect-backend/internal/dto"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Messages maps "Field.tag" (or just "Field") to a client-facing message,
// mirroring the per-route validator chains of the API contract.
type Messages map[string]string

// Check validates a request struct and translates every failed rule into the
// wire-format error items. A nil return means the input passed.
func Check(req interface{}, msgs Messages) []dto.ErrorItem {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []dto.ErrorItem{{Msg: "Invalid request body"}}
	}

	items := make([]dto.ErrorItem, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.StructField()
		// dive failures report as e.g. Skills[2]; fold back to the field and
		// skip the per-tag lookup, an element failure is a shape failure.
		dived := false
		if i := strings.IndexByte(field, '['); i >= 0 {
			field = field[:i]
			dived = true
		}
		if msg, ok := msgs[field+"."+fe.Tag()]; ok && !dived {
			items = append(items, dto.ErrorItem{Msg: msg})
			continue
		}
		if msg, ok := msgs[field]; ok {
			items = append(items, dto.ErrorItem{Msg: msg})
			continue
		}
		items = append(items, dto.ErrorItem{Msg: fe.Field() + " is invalid"})
	}
	return items
}
