package apis

import (
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/trackme/trackme/internal/common/httpx"
)

var (
	payloadValidator *validator.Validate
	validatorOnce    sync.Once
)

// V returns the validator for request payloads. Field names in errors are
// the JSON names.
func V() *validator.Validate {
	validatorOnce.Do(func() {
		payloadValidator = validator.New(validator.WithRequiredStructEnabled())
		payloadValidator.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return payloadValidator
}

// bind decodes the JSON body of r into v and validates it.
func bind(r *http.Request, v any) error {
	if err := httpx.GetRequestData(r, v); err != nil {
		return err
	}
	err := V().Struct(v)
	if err == nil {
		return nil
	}
	validatorErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		log.Ctx(r.Context()).Error().Err(err).Msg("unable to validate payload")
		return httpx.ErrApplicationError()
	}
	issues := make([]httpx.ValidationIssue, 0, len(validatorErrors))
	for _, e := range validatorErrors {
		issues = append(issues, issueFor(e))
	}
	return httpx.ErrValidation(issues)
}

func issueFor(e validator.FieldError) httpx.ValidationIssue {
	issue := httpx.ValidationIssue{Loc: []string{"body", e.Field()}}
	switch e.Tag() {
	case "required":
		issue.Msg, issue.Type = "Field required", "missing"
	case "email":
		issue.Msg, issue.Type = "value is not a valid email address", "value_error"
	case "oneof":
		issue.Msg, issue.Type = enumMessage(strings.Fields(e.Param())), "enum"
	case "gte":
		issue.Msg, issue.Type = "Input should be greater than or equal to "+e.Param(), "greater_than_equal"
	case "min":
		issue.Msg, issue.Type = "String should have at least "+e.Param()+" character", "string_too_short"
	default:
		issue.Msg, issue.Type = "Field validation failed on the '"+e.Tag()+"' tag", e.Tag()
	}
	return issue
}

// enumMessage lists the allowed values as in "Input should be 'a', 'b' or 'c'".
func enumMessage(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "'" + v + "'"
	}
	if len(quoted) < 2 {
		return "Input should be " + strings.Join(quoted, "")
	}
	return "Input should be " + strings.Join(quoted[:len(quoted)-1], ", ") + " or " + quoted[len(quoted)-1]
}

// queryIssue reports an invalid or missing query parameter.
func queryIssue(name, msg, typ string) error {
	return httpx.ErrValidation([]httpx.ValidationIssue{{Loc: []string{"query", name}, Msg: msg, Type: typ}})
}
