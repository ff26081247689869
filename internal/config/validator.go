package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/seabearDEV/hlwords/internal/highlight"
	"github.com/seabearDEV/hlwords/internal/logging"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "logging.level")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidRenderModes returns the accepted console.render values.
func ValidRenderModes() []string {
	return []string{RenderAuto, RenderAlways, RenderNever}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	for i, w := range c.Words {
		if strings.TrimSpace(w) == "" {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("words[%d]", i),
				Value:   w,
				Message: "must not be blank",
			})
		}
	}

	if _, ok := highlight.LookupColor(c.Color); !ok {
		errors = append(errors, ValidationError{
			Field:   "color",
			Value:   c.Color,
			Message: "must be a mIRC color code 00-15 or a palette name",
		})
	}

	if !slices.Contains(highlight.ValidModes(), highlight.Mode(c.Mode)) {
		errors = append(errors, ValidationError{
			Field:   "mode",
			Value:   c.Mode,
			Message: fmt.Sprintf("must be one of: %v", highlight.ValidModes()),
		})
	}

	if !slices.Contains(ValidRenderModes(), c.Console.Render) {
		errors = append(errors, ValidationError{
			Field:   "console.render",
			Value:   c.Console.Render,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidRenderModes(), ", ")),
		})
	}

	errors = append(errors, c.validateLogging()...)

	return errors
}

func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if !slices.Contains(logging.ValidLevels(), strings.ToLower(c.Logging.Level)) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(logging.ValidLevels(), ", ")),
		})
	}
	if c.Logging.MaxSizeMB < 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_size_mb",
			Value:   c.Logging.MaxSizeMB,
			Message: "must be non-negative",
		})
	}
	if c.Logging.MaxBackups < 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_backups",
			Value:   c.Logging.MaxBackups,
			Message: "must be non-negative",
		})
	}
	if c.Logging.MaxAgeDays < 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_age_days",
			Value:   c.Logging.MaxAgeDays,
			Message: "must be non-negative",
		})
	}

	return errors
}
