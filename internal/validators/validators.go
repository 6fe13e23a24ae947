package validators

import (
	"reflect"
	"regexp"
	"strings"
	"sync"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/workforce-scheduler/internal/httperr"
)

var timeOfDay = regexp.MustCompile(`^([0-1]\d|2[0-3]):([0-5]\d)$`)

var once sync.Once

// Register installs the custom tags on gin's validator. Safe to call more than once.
func Register() {
	once.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}

		v.RegisterTagNameFunc(jsonName)
		_ = v.RegisterValidation("hhmm", validateTimeOfDay)
		_ = v.RegisterValidation("strongpassword", validateStrongPassword)
	})
}

func IsTimeOfDay(s string) bool {
	return timeOfDay.MatchString(s)
}

func IsStrongPassword(s string) bool {
	if len(s) < 8 {
		return false
	}

	var lower, upper, digit, special bool
	for _, r := range s {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			special = true
		}
	}
	return lower && upper && digit && special
}

// ParseID reads a path parameter as an id. A malformed id is reported as 404.
func ParseID(c *gin.Context, name string) (uuid.UUID, error) {
	raw := c.Param(name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, httperr.NotFound("invalid_id", "Resource not found with id of "+raw)
	}
	return id, nil
}

func validateTimeOfDay(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	return IsTimeOfDay(s)
}

func validateStrongPassword(fl validator.FieldLevel) bool {
	return IsStrongPassword(fl.Field().String())
}

func jsonName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		if form := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]; form != "" {
			return form
		}
		return f.Name
	}
	return name
}
