package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Check validates a request struct and surfaces the first field issue
// as a 400 error, mirroring how schema failures read to API clients.
func Check(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
		fe := verrs[0]
		return fiber.NewError(fiber.StatusBadRequest, fieldMessage(fe))
	}
	return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "len":
		return fmt.Sprintf("%s must be exactly %s characters long", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters long", fe.Field(), fe.Param())
	case "numeric":
		return fe.Field() + " must be numeric"
	case "email":
		return fe.Field() + " must be a valid email"
	case "oneof":
		return fe.Field() + " must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	default:
		return fe.Field() + " is invalid"
	}
}

var nonPhoneChars = regexp.MustCompile(`[\s\-().]`)

// NormalizePhone coerces Indonesian phone numbers into +62 canonical
// form. Accepted inputs: +62..., 62..., and local 08... numbers.
func NormalizePhone(phone string) (string, error) {
	p := nonPhoneChars.ReplaceAllString(strings.TrimSpace(phone), "")
	if p == "" {
		return "", fiber.NewError(fiber.StatusBadRequest, "phone_number is required")
	}

	switch {
	case strings.HasPrefix(p, "+62"):
	case strings.HasPrefix(p, "62"):
		p = "+" + p
	case strings.HasPrefix(p, "0"):
		p = "+62" + p[1:]
	default:
		return "", fiber.NewError(fiber.StatusBadRequest, "phone_number must be a valid Indonesian number")
	}

	digits := p[1:]
	if len(digits) < 9 || len(digits) > 15 {
		return "", fiber.NewError(fiber.StatusBadRequest, "phone_number must be a valid Indonesian number")
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return "", fiber.NewError(fiber.StatusBadRequest, "phone_number must be a valid Indonesian number")
		}
	}
	return p, nil
}
