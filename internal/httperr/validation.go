package httperr

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldErrors turns validator output into one {field, message} entry per failure.
// Field names come from the json tags registered by the validators package.
func FieldErrors(ve validator.ValidationErrors) []FieldError {
	out := make([]FieldError, 0, len(ve))
	for _, fe := range ve {
		out = append(out, FieldError{
			Field:   fieldPath(fe),
			Message: message(fe),
		})
	}
	return out
}

func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	name := fe.Field()

	switch fe.Tag() {
	case "required", "required_with", "required_without":
		return fmt.Sprintf("%s is required", name)
	case "email":
		return "Please provide a valid email"
	case "min":
		if isList(fe) {
			return fmt.Sprintf("%s must contain at least %s item(s)", name, fe.Param())
		}
		if isText(fe) {
			return fmt.Sprintf("%s must be at least %s characters", name, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", name, fe.Param())
	case "max":
		if isText(fe) {
			return fmt.Sprintf("%s must be at most %s characters", name, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", name, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", name, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "hhmm":
		return fmt.Sprintf("%s must be in HH:MM format", name)
	case "strongpassword":
		return "Password must contain at least one lowercase letter, one uppercase letter, one number and one special character"
	case "gtfield":
		return fmt.Sprintf("%s must be after %s", name, lowerFirst(fe.Param()))
	case "gtefield":
		return fmt.Sprintf("%s must not be before %s", name, lowerFirst(fe.Param()))
	case "uuid", "uuid4":
		return fmt.Sprintf("%s must be a valid id", name)
	case "timezone":
		return fmt.Sprintf("%s must be a valid IANA timezone", name)
	case "dive", "gt":
		return fmt.Sprintf("%s is invalid", name)
	default:
		return fmt.Sprintf("%s failed %s validation", name, fe.Tag())
	}
}

func isText(fe validator.FieldError) bool {
	return fe.Kind().String() == "string"
}

func isList(fe validator.FieldError) bool {
	k := fe.Kind().String()
	return k == "slice" || k == "array"
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
