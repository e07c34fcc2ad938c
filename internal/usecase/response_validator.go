package usecase

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gift-suggest-core/internal/domain/entity"

	"github.com/go-playground/validator/v10"
)

// suggestionPayload is the contract the model output must satisfy. Unknown
// keys are dropped; min counts characters, not bytes.
type suggestionPayload struct {
	Suggestions []suggestionJSON `json:"suggestions" validate:"required,len=3,dive"`
}

type suggestionJSON struct {
	Title     string `json:"title" validate:"required,min=2"`
	Reason    string `json:"reason" validate:"required,min=2"`
	Category  string `json:"category" validate:"required,min=2"`
	PriceHint string `json:"priceHint" validate:"required,min=2"`
}

// ParseSuggestions turns raw model text into a SuggestionSet.
func ParseSuggestions(text string) (entity.SuggestionSet, error) {
	var set entity.SuggestionSet

	var payload suggestionPayload
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return set, schemaViolation("%s is %s, want %s", typePath(typeErr), typeErr.Value, typeErr.Type)
		}
		return set, entity.NewMalformedError(entity.MalformedSyntax, err)
	}

	if err := validate.Struct(payload); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return set, schemaViolation("%s failed rule %s%s", trimRoot(fe.Namespace()), fe.Tag(), paramSuffix(fe.Param()))
		}
		return set, schemaViolation("%v", err)
	}

	for i, s := range payload.Suggestions {
		set[i] = entity.Suggestion{
			Title:     s.Title,
			Reason:    s.Reason,
			Category:  s.Category,
			PriceHint: s.PriceHint,
		}
	}
	return set, nil
}

func schemaViolation(format string, args ...any) error {
	return entity.NewMalformedError(entity.MalformedSchema, fmt.Errorf(format, args...))
}

func typePath(err *json.UnmarshalTypeError) string {
	if err.Field == "" {
		return "top level"
	}
	return err.Field
}

// trimRoot drops the struct name validator prefixes to every namespace.
func trimRoot(ns string) string {
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

func paramSuffix(p string) string {
	if p == "" {
		return ""
	}
	return "=" + p
}
