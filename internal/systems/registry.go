package systems

import (
	"errors"
	"fmt"
	"sort"

	"github.com/san-kum/phaseplot/internal/dynamo"
	"github.com/san-kum/phaseplot/internal/field"
)

var (
	ErrUnknownSystem = errors.New("systems: unknown system")
	ErrUnknownParam  = errors.New("systems: unknown parameter")
)

// System is a named, parameterised planar vector field.
type System interface {
	dynamo.Configurable
	Name() string
	Description() string
	Field() field.Field
}

var catalog = map[string]func() System{
	"harmonic":      func() System { return NewHarmonic() },
	"linear":        func() System { return NewLinear() },
	"vanderpol":     func() System { return NewVanDerPol() },
	"duffing":       func() System { return NewDuffing() },
	"pendulum":      func() System { return NewPendulum() },
	"doublewell":    func() System { return NewDoubleWell() },
	"lotkavolterra": func() System { return NewLotkaVolterra() },
}

// New returns the named system with its default parameters.
func New(name string) (System, error) {
	fn, ok := catalog[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSystem, name)
	}
	return fn(), nil
}

// Lookup returns the named system with params applied over the defaults.
func Lookup(name string, params map[string]float64) (System, error) {
	sys, err := New(name)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := sys.SetParam(k, params[k]); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	}
	return sys, nil
}

func Names() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func unknownParam(name string) error {
	return fmt.Errorf("%w: %s", ErrUnknownParam, name)
}
