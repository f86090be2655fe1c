package utils

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

var imeiPattern = regexp.MustCompile(`^[0-9]{15}$`)

func init() {
	validate = validator.New()

	err := validate.RegisterValidation("imei", validateIMEI)
	if err != nil {
		return
	}
	err = validate.RegisterValidation("phone", validatePhone)
	if err != nil {
		return
	}
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateIMEI(fl validator.FieldLevel) bool {
	return IsValidIMEI(fl.Field().String())
}

// IsValidIMEI reports whether s is a 15-digit IMEI.
func IsValidIMEI(s string) bool {
	return imeiPattern.MatchString(s)
}

func validatePhone(fl validator.FieldLevel) bool {
	phone := fl.Field().String()
	re := regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)
	return re.MatchString(phone)
}
