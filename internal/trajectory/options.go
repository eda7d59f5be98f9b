package trajectory

import (
	"errors"
	"fmt"

	"github.com/san-kum/phaseplot/internal/dynamo"
	"github.com/san-kum/phaseplot/internal/integrators"
)

// DefaultSamples is the number of instants spread over a time domain.
const DefaultSamples = 500

var ErrInvalidSamples = errors.New("trajectory: at least 2 samples required")

// Options tunes Integrate. The zero value integrates 500 samples with the
// adaptive Dormand–Prince method at default tolerances.
type Options struct {
	Samples int    `yaml:"samples" mapstructure:"samples"`
	Method  string `yaml:"method" mapstructure:"method"`

	RelTol float64 `yaml:"rel_tol" mapstructure:"rel_tol"`
	AbsTol float64 `yaml:"abs_tol" mapstructure:"abs_tol"`

	InitialStep float64 `yaml:"initial_step" mapstructure:"initial_step"`
	MinStep     float64 `yaml:"min_step" mapstructure:"min_step"`
	MaxSteps    int     `yaml:"max_steps" mapstructure:"max_steps"`
	Substeps    int     `yaml:"substeps" mapstructure:"substeps"`
}

func (o Options) withDefaults() (Options, error) {
	if o.Samples == 0 {
		o.Samples = DefaultSamples
	}
	if o.Samples < 2 {
		return o, fmt.Errorf("%w, got %d", ErrInvalidSamples, o.Samples)
	}
	if o.Method == "" {
		o.Method = integrators.DefaultMethod
	}
	if o.RelTol < 0 || o.AbsTol < 0 {
		return o, fmt.Errorf("trajectory: negative tolerance (rel %g, abs %g)", o.RelTol, o.AbsTol)
	}
	return o, nil
}

func (o Options) solverOptions() integrators.Options {
	tol := dynamo.DefaultTolerance()
	if o.RelTol > 0 {
		tol.Rel = o.RelTol
	}
	if o.AbsTol > 0 {
		tol.Abs = o.AbsTol
	}
	return integrators.Options{
		Tolerance:   tol,
		InitialStep: o.InitialStep,
		MinStep:     o.MinStep,
		MaxSteps:    o.MaxSteps,
		Substeps:    o.Substeps,
	}
}
