package usecase

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"math"
	"reflect"
	"strconv"
	"strings"

	"gift-suggest-core/internal/domain/entity"

	"github.com/go-playground/validator/v10"
)

// maxSafeInteger mirrors the largest integer a JSON number can carry without loss.
const maxSafeInteger = 1<<53 - 1

// requestBody is the inbound wire shape. Unknown keys are ignored.
type requestBody struct {
	PersonID   string   `json:"personId" validate:"required,uuid"`
	OccasionID any      `json:"occasionId" validate:"required"`
	Hint       *string  `json:"hint" validate:"omitempty"`
	BudgetMin  *float64 `json:"budgetMin"`
	BudgetMax  *float64 `json:"budgetMax"`
}

// DecodeRequest parses a raw JSON body and validates it. The body must be
// exactly one JSON object.
func DecodeRequest(body []byte) (entity.SuggestionRequest, error) {
	var req entity.SuggestionRequest

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var in *requestBody
	if err := dec.Decode(&in); err != nil {
		return req, decodeError(err)
	}
	if in == nil {
		return req, entity.NewValidationError("body", "must be a JSON object")
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return req, entity.NewValidationError("body", "must be a JSON object")
	}

	// The uuid rule only matches the canonical lower-case form.
	in.PersonID = strings.ToLower(in.PersonID)
	if err := validate.Struct(in); err != nil {
		return req, fieldError(err)
	}

	occasionID, err := coerceInt("occasionId", in.OccasionID)
	if err != nil {
		return req, err
	}

	req.PersonID = in.PersonID
	req.OccasionID = occasionID
	req.Hint = in.Hint
	req.BudgetMin = in.BudgetMin
	req.BudgetMax = in.BudgetMax
	return req, nil
}

func decodeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		switch typeErr.Type.Kind() {
		case reflect.String:
			return entity.NewValidationError(typeErr.Field, "must be a string")
		case reflect.Float64:
			return entity.NewValidationError(typeErr.Field, "must be a number")
		default:
			return entity.NewValidationError(typeErr.Field, "has the wrong type")
		}
	}
	return entity.NewValidationError("body", "must be a JSON object")
}

// fieldError reports the first failed rule.
func fieldError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return entity.NewValidationError("body", "is invalid")
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return entity.NewValidationError(fe.Field(), "is required")
	case "uuid":
		return entity.NewValidationError(fe.Field(), "must be a UUID")
	default:
		return entity.NewValidationError(fe.Field(), "failed rule "+fe.Tag())
	}
}

// coerceInt accepts integral numbers and numeric strings.
func coerceInt(field string, raw any) (int, error) {
	var f float64
	switch v := raw.(type) {
	case json.Number:
		if i, err := v.Int64(); err == nil {
			f = float64(i)
			break
		}
		parsed, err := v.Float64()
		if err != nil {
			return 0, entity.NewValidationError(field, "must be an integer")
		}
		f = parsed
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, entity.NewValidationError(field, "must be an integer")
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, entity.NewValidationError(field, "must be an integer")
		}
		f = parsed
	default:
		return 0, entity.NewValidationError(field, "must be an integer")
	}

	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || math.Abs(f) > maxSafeInteger {
		return 0, entity.NewValidationError(field, "must be an integer")
	}
	return int(f), nil
}
