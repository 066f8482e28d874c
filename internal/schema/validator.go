// Package schema holds the shapes of everything an operator can submit to the
// platform, and the validation that runs before any payload leaves the
// back-office. Entities are plain structs: json tags name the wire fields,
// validate tags carry the range checks, and struct-level rules carry the
// cross-field checks.
package schema

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/shopspring/decimal"
)

// FieldError annotates a single field of a submitted object.
type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Errors is returned whenever a payload fails validation. It is never empty.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		if fe.Path == "" {
			parts = append(parts, fe.Message)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Path, fe.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Field returns the first error attached to path.
func (e Errors) Field(path string) (FieldError, bool) {
	for _, fe := range e {
		if fe.Path == path {
			return fe, true
		}
	}
	return FieldError{}, false
}

var (
	engineOnce sync.Once
	engine     *validator.Validate
)

func validate() *validator.Validate {
	engineOnce.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			switch name {
			case "-":
				return ""
			case "":
				return f.Name
			}
			return name
		})
		if err := v.RegisterValidation("gametype", func(fl validator.FieldLevel) bool {
			return IsGameType(fl.Field().String())
		}); err != nil {
			panic(err)
		}
		if err := v.RegisterValidation("decimal", func(fl validator.FieldLevel) bool {
			_, err := decimal.NewFromString(fl.Field().String())
			return err == nil
		}); err != nil {
			panic(err)
		}
		registerRules(v)
		engine = v
	})
	return engine
}

// Validate runs tag and struct-level rules on v, which must be a struct or a
// pointer to one. It returns nil or Errors.
func Validate(v any) error {
	err := validate().Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := make(Errors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Path:    fieldPath(fe.Namespace()),
			Message: message(fe),
		})
	}
	return out
}

// Decode shapes a raw form object into out. Form inputs arrive as strings, so
// numeric and boolean fields are coerced; values that cannot be coerced are
// reported against their field.
func Decode(raw map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(raw); err != nil {
		return decodeErrors(err)
	}
	return nil
}

// Parse decodes raw into a T and validates it. Parsing the JSON form of an
// already valid T yields an equal T.
func Parse[T any](raw map[string]any) (T, error) {
	var out T
	if err := Decode(raw, &out); err != nil {
		return out, err
	}
	if err := Validate(&out); err != nil {
		return out, err
	}
	return out, nil
}

// fieldPath drops the root type name validator puts in front of every namespace.
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

// decodeField picks the quoted field name out of a mapstructure error line.
var decodeField = regexp.MustCompile(`'([^']+)'`)

func decodeErrors(err error) error {
	var out Errors
	for _, line := range strings.Split(err.Error(), "\n") {
		line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "*"))
		m := decodeField.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		out = append(out, FieldError{Path: m[1], Message: line})
	}
	if len(out) == 0 {
		out = append(out, FieldError{Message: err.Error()})
	}
	return out
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	collection := fe.Kind() == reflect.Slice || fe.Kind() == reflect.Array || fe.Kind() == reflect.Map
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "min":
		if collection {
			return fmt.Sprintf("%s must contain at least %s items", field, fe.Param())
		}
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters long", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if collection {
			return fmt.Sprintf("%s must contain at most %s items", field, fe.Param())
		}
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters long", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "len":
		return fmt.Sprintf("%s must contain exactly %s items", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, strings.Join(strings.Fields(fe.Param()), ", "))
	case "gametype":
		return fmt.Sprintf("%s must be one of [%s]", field, strings.Join(GameTypes, ", "))
	case "datetime":
		return fmt.Sprintf("%s must match the %s layout", field, fe.Param())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "ip":
		return fmt.Sprintf("%s must be a valid IP address", field)
	case "decimal":
		return fmt.Sprintf("%s must be a decimal string", field)
	case "gtfield":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "ltfield":
		return fmt.Sprintf("%s must be less than %s", field, fe.Param())
	case "nonzero":
		return fmt.Sprintf("%s must not all be zero", field)
	}
	return fmt.Sprintf("%s failed the %s check", field, fe.Tag())
}
