package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator checks configuration tags plus the rules that span several fields
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a validator with the production config rules registered
func NewValidator() *Validator {
	v := validator.New()
	v.RegisterStructValidation(validateDatabase, DatabaseConfig{})
	v.RegisterStructValidation(validateProduction, ProductionConfig{})
	return &Validator{validate: v}
}

// Validate validates a struct using validation tags
func (v *Validator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// A postgres connection needs either a URL or a host and database name
func validateDatabase(sl validator.StructLevel) {
	db := sl.Current().Interface().(DatabaseConfig)
	switch db.Type {
	case "postgres":
		if db.URL == "" && (db.Host == "" || db.Name == "") {
			sl.ReportError(db.URL, "URL", "url", "postgres_dsn", "")
		}
	case "sqlite":
		if db.Path == "" {
			sl.ReportError(db.Path, "Path", "path", "required", "")
		}
	}
}

// One workshop must not allow more orders than the whole queue
func validateProduction(sl validator.StructLevel) {
	p := sl.Current().Interface().(ProductionConfig)
	if p.PerWorkshopLimit > p.MaxQueueLength {
		sl.ReportError(p.PerWorkshopLimit, "PerWorkshopLimit", "per_workshop_limit", "ltefield", "MaxQueueLength")
	}
}

func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}
	messages := make([]string, 0, len(validationErrs))
	for _, e := range validationErrs {
		rule := e.Tag()
		if e.Param() != "" {
			rule += "=" + e.Param()
		}
		messages = append(messages, fmt.Sprintf("%s: failed %s (value: '%v')", e.Namespace(), rule, e.Value()))
	}
	return fmt.Errorf("validation failed:\n  %s", strings.Join(messages, "\n  "))
}

// ValidateConfig validates the entire configuration
func ValidateConfig(cfg *Config) error {
	return NewValidator().Validate(cfg)
}
