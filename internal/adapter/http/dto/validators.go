package dto

import (
	"html"
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	paymentRefRe = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
	cardExpiryRe = regexp.MustCompile(`^\d{4}/(0[1-9]|1[0-2])$`)
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("payment_ref", validatePaymentRef)
		_ = v.RegisterValidation("card_expiry", validateCardExpiry)
	}
}

// validatePaymentRef allows only alphanumeric reference codes. The
// processor rejects anything else, so the API does too.
func validatePaymentRef(fl validator.FieldLevel) bool {
	return paymentRefRe.MatchString(fl.Field().String())
}

// validateCardExpiry requires the YYYY/MM format the processor expects.
func validateCardExpiry(fl validator.FieldLevel) bool {
	return cardExpiryRe.MatchString(fl.Field().String())
}

// SanitizeStruct trims whitespace and HTML-escapes every exported string
// field (including *string) of a struct pointer. Nested structs are
// sanitized recursively.
func SanitizeStruct(v interface{}) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return
	}
	sanitizeFields(rv.Elem())
}

func sanitizeFields(rv reflect.Value) {
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if !f.CanSet() {
			continue
		}
		switch f.Kind() {
		case reflect.String:
			f.SetString(sanitize(f.String()))
		case reflect.Struct:
			sanitizeFields(f)
		case reflect.Ptr:
			if f.IsNil() {
				continue
			}
			elem := f.Elem()
			switch elem.Kind() {
			case reflect.String:
				elem.SetString(sanitize(elem.String()))
			case reflect.Struct:
				sanitizeFields(elem)
			}
		}
	}
}

func sanitize(s string) string {
	return html.EscapeString(strings.TrimSpace(s))
}
