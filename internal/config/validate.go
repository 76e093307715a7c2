package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ValidationError represents a configuration validation error with context
type ValidationError struct {
	FilePath string
	Line     int
	Column   int
	Message  string
	Field    string
}

func (e *ValidationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s", e.FilePath, e.Line, e.Column, e.Message)
	}
	if e.Field != "" {
		return fmt.Sprintf("%s: field '%s': %s", e.FilePath, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.FilePath, e.Message)
}

// ValidateYAMLSyntax checks that the config file parses as YAML so syntax
// errors are reported with their position. A missing or blank file is valid.
func ValidateYAMLSyntax(filePath string) error {
	data, err := os.ReadFile(filePath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return &ValidationError{FilePath: filePath, Message: err.Error()}
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		line, column, msg := splitYAMLError(err.Error())
		return &ValidationError{
			FilePath: filePath,
			Line:     line,
			Column:   column,
			Message:  msg,
		}
	}
	return nil
}

// ValidateConfigValues checks the loaded values. The first problem is
// returned as a ValidationError naming the config key.
func ValidateConfigValues(cfg *Configuration, filePath string) error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("koanf")
	})

	if err := validate.Struct(cfg); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return &ValidationError{
				FilePath: filePath,
				Field:    configKey(fieldErrs[0]),
				Message:  describeFieldError(fieldErrs[0]),
			}
		}
		return &ValidationError{FilePath: filePath, Message: err.Error()}
	}

	for _, t := range cfg.FragmentTypes {
		if strings.ContainsAny(t, "./\\") {
			return &ValidationError{
				FilePath: filePath,
				Field:    "fragment_types",
				Message:  fmt.Sprintf("type %q must not contain '.', '/' or '\\'", t),
			}
		}
	}

	return nil
}

// splitYAMLError separates the position from a yaml.v3 message such as
// "yaml: line 5: column 3: could not find expected ':'".
func splitYAMLError(errMsg string) (line, column int, msg string) {
	msg = errMsg
	if i := strings.LastIndex(errMsg, ": "); i > 0 && strings.HasPrefix(errMsg, "yaml:") {
		msg = errMsg[i+2:]
	}
	if n, _ := fmt.Sscanf(errMsg, "yaml: line %d: column %d:", &line, &column); n == 2 {
		return line, column, msg
	}
	if n, _ := fmt.Sscanf(errMsg, "yaml: line %d:", &line); n == 1 {
		return line, 1, msg
	}
	return 0, 0, msg
}

// configKey names the config key of a field error; list elements report
// their list ("fragment_types[1]" becomes "fragment_types").
func configKey(fieldErr validator.FieldError) string {
	key, _, _ := strings.Cut(fieldErr.Field(), "[")
	return key
}

func describeFieldError(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "is required"
	case "excludesall":
		return fmt.Sprintf("must not contain any of %q", fieldErr.Param())
	default:
		return fmt.Sprintf("failed validation: %s", fieldErr.Tag())
	}
}

// Render returns the configuration as YAML, keyed the same way as the
// config file.
func Render(cfg *Configuration) (string, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("rendering config: %w", err)
	}
	return string(data), nil
}
