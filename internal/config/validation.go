package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

// Validate checks the configuration for valid values.
func (c *Config) Validate() error {
	var errors ValidationErrors

	errors = append(errors, c.validateInput()...)
	errors = append(errors, c.validateReport()...)
	errors = append(errors, c.validateLogging()...)

	if len(errors) > 0 {
		return errors
	}
	return nil
}

func (c *Config) validateInput() ValidationErrors {
	var errors ValidationErrors

	validFormats := map[string]bool{"auto": true, "yaml": true, "json": true, "": true}
	if !validFormats[c.Input.Format] {
		errors = append(errors, ValidationError{
			Field:   "input.format",
			Message: "format must be 'auto', 'yaml', or 'json'",
		})
	}

	if c.Input.Selector != "" && c.Input.Format == "yaml" {
		errors = append(errors, ValidationError{
			Field:   "input.selector",
			Message: "selector is only supported for json dumps",
		})
	}

	return errors
}

func (c *Config) validateReport() ValidationErrors {
	var errors ValidationErrors

	validWalks := map[string]bool{"recursive": true, "iterative": true, "": true}
	if !validWalks[c.Report.Walk] {
		errors = append(errors, ValidationError{
			Field:   "report.walk",
			Message: "walk must be 'recursive' or 'iterative'",
		})
	}

	validEmits := map[string]bool{EmitStdout: true, EmitLog: true, "": true}
	if !validEmits[c.Report.Emit] {
		errors = append(errors, ValidationError{
			Field:   "report.emit",
			Message: "emit must be 'stdout' or 'log'",
		})
	}

	return errors
}

func (c *Config) validateLogging() ValidationErrors {
	var errors ValidationErrors

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true, "": true}
	if !validLevels[c.Logging.Level] {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Message: "level must be 'debug', 'info', 'warn', or 'error'",
		})
	}

	validFormats := map[string]bool{"json": true, "text": true, "": true}
	if !validFormats[c.Logging.Format] {
		errors = append(errors, ValidationError{
			Field:   "logging.format",
			Message: "format must be 'json' or 'text'",
		})
	}

	return errors
}
