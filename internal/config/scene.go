package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/san-kum/phaseplot/internal/field"
	"github.com/san-kum/phaseplot/internal/portrait"
	"github.com/san-kum/phaseplot/internal/systems"
	"github.com/san-kum/phaseplot/internal/trajectory"
	"gopkg.in/yaml.v3"
)

// Scene describes one phase portrait: which system to draw, over which
// window, and what to put on it.
type Scene struct {
	Name        string             `yaml:"name,omitempty"`
	Description string             `yaml:"description,omitempty"`
	System      SystemSpec         `yaml:"system"`
	Viewport    ViewportSpec       `yaml:"viewport"`
	Time        field.TimeDomain   `yaml:"time"`
	Resolution  int                `yaml:"resolution,omitempty"`
	Integration trajectory.Options `yaml:"integration,omitempty"`

	Points            []portrait.PointAnnotation  `yaml:"points,omitempty"`
	InitialConditions []portrait.InitialCondition `yaml:"initial_conditions,omitempty"`
	Circles           []portrait.CircleAnnotation `yaml:"circles,omitempty"`
}

type SystemSpec struct {
	Name   string             `yaml:"name"`
	Params map[string]float64 `yaml:"params,omitempty"`
}

// ViewportSpec holds [start, end] pairs.
type ViewportSpec struct {
	X [2]float64 `yaml:"x,flow"`
	Y [2]float64 `yaml:"y,flow"`
}

func (v ViewportSpec) Viewport() field.Viewport {
	return field.Viewport{XStart: v.X[0], XEnd: v.X[1], YStart: v.Y[0], YEnd: v.Y[1]}
}

func LoadScene(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := ParseScene(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// ParseScene decodes a YAML scene and rejects unknown keys.
func ParseScene(data []byte) (*Scene, error) {
	var s Scene
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

func SaveScene(path string, s *Scene) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks everything that can be checked without integrating.
func (s *Scene) Validate() error {
	var errs ValidationErrors

	if s.System.Name == "" {
		errs = append(errs, ValidationError{"system.name", s.System.Name, "is required"})
	} else if _, err := systems.Lookup(s.System.Name, s.System.Params); err != nil {
		errs = append(errs, ValidationError{"system", s.System.Name, err.Error()})
	}
	if err := s.Viewport.Viewport().Validate(); err != nil {
		errs = append(errs, ValidationError{"viewport", s.Viewport, err.Error()})
	}
	if err := s.Time.Validate(); err != nil {
		errs = append(errs, ValidationError{"time", s.Time, err.Error()})
	}
	if s.Resolution != 0 && s.Resolution < 2 {
		errs = append(errs, ValidationError{"resolution", s.Resolution, "must be at least 2"})
	}
	for i, c := range s.Circles {
		if !(c.Radius > 0) {
			errs = append(errs, ValidationError{fmt.Sprintf("circles[%d].radius", i), c.Radius, "must be positive"})
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Build constructs the portrait model for the scene. The scene's integration
// options override base field by field.
func (s *Scene) Build(base trajectory.Options, opts ...portrait.Option) (*portrait.Model, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	sys, err := systems.Lookup(s.System.Name, s.System.Params)
	if err != nil {
		return nil, err
	}

	opts = append([]portrait.Option{portrait.WithTrajectoryOptions(mergeOptions(base, s.Integration))}, opts...)
	m, err := portrait.New(sys.Field(), s.Viewport.Viewport(), s.Time, opts...)
	if err != nil {
		return nil, err
	}

	var errs []error
	for i, p := range s.Points {
		if err := m.AddPoint(p); err != nil {
			errs = append(errs, fmt.Errorf("points[%d]: %w", i, err))
		}
	}
	for i, ic := range s.InitialConditions {
		if err := m.AddInitialCondition(ic); err != nil {
			errs = append(errs, fmt.Errorf("initial_conditions[%d]: %w", i, err))
		}
	}
	for i, c := range s.Circles {
		if err := m.AddCircle(c); err != nil {
			errs = append(errs, fmt.Errorf("circles[%d]: %w", i, err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return m, nil
}

// GridResolution returns the scene's quiver density or fallback.
func (s *Scene) GridResolution(fallback int) int {
	if s.Resolution > 0 {
		return s.Resolution
	}
	return fallback
}

func mergeOptions(base, over trajectory.Options) trajectory.Options {
	if over.Samples != 0 {
		base.Samples = over.Samples
	}
	if over.Method != "" {
		base.Method = over.Method
	}
	if over.RelTol != 0 {
		base.RelTol = over.RelTol
	}
	if over.AbsTol != 0 {
		base.AbsTol = over.AbsTol
	}
	if over.InitialStep != 0 {
		base.InitialStep = over.InitialStep
	}
	if over.MinStep != 0 {
		base.MinStep = over.MinStep
	}
	if over.MaxSteps != 0 {
		base.MaxSteps = over.MaxSteps
	}
	if over.Substeps != 0 {
		base.Substeps = over.Substeps
	}
	return base
}
