package validator

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	maxTagCount  = 20
	maxTagLength = 50
)

// registerCustomRules регистрирует доменные правила валидации.
func registerCustomRules(v *validator.Validate) {
	// tags_csv: comma-delimited список тегов; сами теги короткие, их не слишком много.
	// Пустая строка валидна (теги опциональны).
	_ = v.RegisterValidation("tags_csv", func(fl validator.FieldLevel) bool {
		raw := fl.Field().String()
		if raw == "" {
			return true
		}

		parts := strings.Split(raw, ",")
		if len(parts) > maxTagCount {
			return false
		}
		for _, p := range parts {
			if len(strings.TrimSpace(p)) > maxTagLength {
				return false
			}
		}
		return true
	})
}
