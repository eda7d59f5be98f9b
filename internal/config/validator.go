package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/san-kum/phaseplot/internal/integrators"
	"golang.org/x/image/colornames"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

type ValidationErrors []ValidationError

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

func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

func ValidLogFormats() []string {
	return []string{"console", "json"}
}

// ValidColor reports whether name is an SVG 1.1 color keyword.
func ValidColor(name string) bool {
	_, ok := colornames.Map[strings.ToLower(name)]
	return ok
}

// Validate returns every invalid setting, or nil.
func (s *Settings) Validate() ValidationErrors {
	var errs ValidationErrors

	if !slices.Contains(ValidLogLevels(), s.Logger.Level) {
		errs = append(errs, ValidationError{"logger.level", s.Logger.Level, "must be one of " + strings.Join(ValidLogLevels(), ", ")})
	}
	if !slices.Contains(ValidLogFormats(), s.Logger.Format) {
		errs = append(errs, ValidationError{"logger.format", s.Logger.Format, "must be one of " + strings.Join(ValidLogFormats(), ", ")})
	}
	if s.Logger.LogFile != "" && s.Logger.MaxSize <= 0 {
		errs = append(errs, ValidationError{"logger.max_size", s.Logger.MaxSize, "must be positive when log_file is set"})
	}

	r := s.Render
	if r.Width <= 0 {
		errs = append(errs, ValidationError{"render.width", r.Width, "must be positive"})
	}
	if r.Height <= 0 {
		errs = append(errs, ValidationError{"render.height", r.Height, "must be positive"})
	}
	if r.DPI < 10 || r.DPI > 2400 {
		errs = append(errs, ValidationError{"render.dpi", r.DPI, "must be between 10 and 2400"})
	}
	if r.Resolution < 2 {
		errs = append(errs, ValidationError{"render.resolution", r.Resolution, "must be at least 2"})
	}
	if r.ArrowLength <= 0 || r.ArrowLength > 1 {
		errs = append(errs, ValidationError{"render.arrow_length", r.ArrowLength, "must be in (0, 1]"})
	}
	for i, c := range r.FieldColormap {
		if !ValidColor(c) {
			errs = append(errs, ValidationError{fmt.Sprintf("render.field_colormap[%d]", i), c, "unknown color name"})
		}
	}

	in := s.Integration
	if in.Samples != 0 && in.Samples < 2 {
		errs = append(errs, ValidationError{"integration.samples", in.Samples, "must be at least 2"})
	}
	if in.Method != "" && !slices.Contains(integrators.Methods(), in.Method) {
		errs = append(errs, ValidationError{"integration.method", in.Method, "must be one of " + strings.Join(integrators.Methods(), ", ")})
	}
	if in.RelTol < 0 {
		errs = append(errs, ValidationError{"integration.rel_tol", in.RelTol, "must not be negative"})
	}
	if in.AbsTol < 0 {
		errs = append(errs, ValidationError{"integration.abs_tol", in.AbsTol, "must not be negative"})
	}
	if in.MaxSteps < 0 {
		errs = append(errs, ValidationError{"integration.max_steps", in.MaxSteps, "must not be negative"})
	}

	if s.Workers < 0 {
		errs = append(errs, ValidationError{"workers", s.Workers, "must not be negative"})
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
