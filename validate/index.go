package validate

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"mission_manager/utils"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// decimal(10,7): up to 3 integer digits, up to 7 fractional digits.
var decimalPattern = regexp.MustCompile(`^-?\d{1,3}(\.\d{1,7})?$`)

func init() {
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation("lunar_decimal", func(fl validator.FieldLevel) bool {
		return decimalPattern.MatchString(fl.Field().String())
	})

	_ = validate.RegisterValidation("mission_date", func(fl validator.FieldLevel) bool {
		_, err := utils.ParseDate(fl.Field().String())
		return err == nil
	})
}

// fieldErrors turns validator failures into field-path → messages, with the
// leading payload struct name stripped so paths read like the JSON body.
func fieldErrors(err error) map[string][]string {
	errs := make(map[string][]string)

	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		errs["body"] = []string{"invalid request body"}
		return errs
	}

	for _, fe := range ve {
		path := fe.Namespace()
		if i := strings.Index(path, "."); i >= 0 {
			path = path[i+1:]
		}
		errs[path] = append(errs[path], messageFor(fe))
	}
	return errs
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("field %s can not be blank", fe.Field())
	case "email":
		return "must be a valid email address"
	case "lunar_decimal":
		return "must be a decimal with at most 3 integer and 7 fractional digits"
	case "mission_date":
		return "must be a date in YYYY-MM-DD format"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
