package domain

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	DefaultLinter         = "flake8"
	DefaultFormatter      = "black"
	DefaultTestLib        = "pytest"
	DefaultDocstringStyle = "google"
	DefaultLineWidth      = 79
)

// ValidLinters enumerates the supported external linters.
var ValidLinters = []string{"flake8", "pylint", "pycodestyle", "pyflakes", "ruff"}

// ValidFormatters enumerates the supported external formatters.
var ValidFormatters = []string{"black", "autopep8", "yapf"}

// ValidTestLibs enumerates the supported test libraries.
var ValidTestLibs = []string{"pytest", "unittest"}

// ValidDocstringStyles enumerates the supported docstring layouts.
var ValidDocstringStyles = []string{"google", "numpy", "reST"}

// ProjectConfig holds project-level configuration loaded from .pycoding.yaml.
type ProjectConfig struct {
	VenvName         string   `yaml:"venv_name"          json:"venv_name,omitempty"       validate:"omitempty,excludesall=/\\"`
	Linter           string   `yaml:"linter"             json:"linter,omitempty"          validate:"omitempty,oneof=flake8 pylint pycodestyle pyflakes ruff"`
	Formatter        string   `yaml:"formatter"          json:"formatter,omitempty"       validate:"omitempty,oneof=black autopep8 yapf"`
	TestLib          string   `yaml:"test_lib"           json:"test_lib,omitempty"        validate:"omitempty,oneof=pytest unittest"`
	DocstringStyle   string   `yaml:"docstring_style"    json:"docstring_style,omitempty" validate:"omitempty,oneof=google numpy reST"`
	LineWidth        int      `yaml:"line_width"         json:"line_width,omitempty"      validate:"omitempty,min=40,max=200"`
	CheckSystemPaths *bool    `yaml:"check_system_paths" json:"check_system_paths,omitempty"`
	Autolint         bool     `yaml:"autolint"           json:"autolint,omitempty"`
	ExcludePaths     []string `yaml:"exclude_paths"      json:"exclude_paths,omitempty"   validate:"dive,required"`
}

// DefaultConfig returns a zero-value config; accessors supply the defaults.
func DefaultConfig() ProjectConfig {
	return ProjectConfig{}
}

// EffectiveLinter returns the configured linter or the default one.
func (c ProjectConfig) EffectiveLinter() string {
	return firstNonEmpty(c.Linter, DefaultLinter)
}

// EffectiveFormatter returns the configured formatter or the default one.
func (c ProjectConfig) EffectiveFormatter() string {
	return firstNonEmpty(c.Formatter, DefaultFormatter)
}

// EffectiveTestLib returns the configured test library or the default one.
func (c ProjectConfig) EffectiveTestLib() string {
	return firstNonEmpty(c.TestLib, DefaultTestLib)
}

// EffectiveDocstringStyle returns the configured docstring style or the default one.
func (c ProjectConfig) EffectiveDocstringStyle() string {
	return firstNonEmpty(c.DocstringStyle, DefaultDocstringStyle)
}

// EffectiveLineWidth returns the configured line width or the default one.
func (c ProjectConfig) EffectiveLineWidth() int {
	if c.LineWidth > 0 {
		return c.LineWidth
	}
	return DefaultLineWidth
}

// ChecksSystemPaths reports whether executable lookup may fall back to system directories.
func (c ProjectConfig) ChecksSystemPaths() bool {
	if c.CheckSystemPaths == nil {
		return true
	}
	return *c.CheckSystemPaths
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks the config for invalid values and returns a descriptive error.
func (c ProjectConfig) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describeFieldError(fe))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func describeFieldError(fe validator.FieldError) string {
	// Dive errors name the element, e.g. exclude_paths[1].
	field, _, _ := strings.Cut(fe.Field(), "[")
	switch fe.Tag() {
	case "oneof":
		return fmt.Sprintf("unknown %s %q (valid: %s)", field, fe.Value(), strings.ReplaceAll(fe.Param(), " ", ", "))
	case "min", "max":
		return fmt.Sprintf("%s = %v (must be between 40 and 200)", field, fe.Value())
	case "excludesall":
		return fmt.Sprintf("%s %q must be a name, not a path", field, fe.Value())
	case "required":
		return fmt.Sprintf("%s must not contain empty entries", field)
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
