package domain

import (
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// trans is a private global translator
var trans ut.Translator

// InitValidator configures the validator engine behind gin's binding.
// CALL THIS ONCE in your main.go
func InitValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		// Report fields by their json tag name, not the struct field name
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		enLocale := en.New()
		uni := ut.New(enLocale, enLocale)
		trans, _ = uni.GetTranslator("en")

		_ = en_translations.RegisterDefaultTranslations(v, trans)
	}
}

// ParseValidationError converts raw binding errors into a clean field map.
// Example: "required" -> "routes is a required field"
func ParseValidationError(err error) map[string]string {
	errMap := make(map[string]string)

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			errMap[e.Field()] = e.Translate(trans)
		}
		return errMap
	}

	// Fallback for JSON parsing errors (e.g. sending "abc" for an object field)
	errMap["body"] = "Invalid request body format"
	return errMap
}
