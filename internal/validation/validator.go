package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var (
	nonDigit = regexp.MustCompile(`\D`)
	ufRegex  = regexp.MustCompile(`^[A-Za-z]{2}$`)

	once     sync.Once
	instance *validator.Validate
)

var customTags = map[string]validator.Func{
	"cnpj": func(fl validator.FieldLevel) bool {
		return IsValidCNPJ(fl.Field().String())
	},
	"uf": func(fl validator.FieldLevel) bool {
		return ufRegex.MatchString(strings.TrimSpace(fl.Field().String()))
	},
	"cep": func(fl validator.FieldLevel) bool {
		return len(nonDigit.ReplaceAllString(fl.Field().String(), "")) == 8
	},
}

// mustRegister panics when a tag cannot be registered; it only runs while
// the shared validator is built.
func mustRegister(v *validator.Validate, tags map[string]validator.Func) {
	for tag, fn := range tags {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("validation: registering %q: %v", tag, err))
		}
	}
}

// Validator returns the shared validator. Field names in errors follow the
// json tags, and the tags cnpj, uf and cep are registered.
func Validator() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return field.Name
			}
			return name
		})

		mustRegister(v, customTags)

		instance = v
	})
	return instance
}

// IsValidCNPJ checks the two check digits of a CNPJ. Punctuation is ignored.
func IsValidCNPJ(value string) bool {
	digits := nonDigit.ReplaceAllString(value, "")
	if len(digits) != 14 {
		return false
	}
	if strings.Count(digits, digits[:1]) == 14 {
		return false
	}

	checkDigit := func(n int) byte {
		weight := n - 7
		sum := 0
		for i := 0; i < n; i++ {
			sum += int(digits[i]-'0') * weight
			weight--
			if weight < 2 {
				weight = 9
			}
		}
		r := sum % 11
		if r < 2 {
			return '0'
		}
		return byte('0' + 11 - r)
	}

	return digits[12] == checkDigit(12) && digits[13] == checkDigit(13)
}

// IsValidUUID reports whether s parses as a UUID.
func IsValidUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil && len(s) == 36
}
