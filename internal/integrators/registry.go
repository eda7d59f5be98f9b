package integrators

import (
	"fmt"
	"sort"

	"github.com/san-kum/phaseplot/internal/dynamo"
)

// DefaultMethod is the stepper used when a caller does not pick one.
const DefaultMethod = "rk45"

var steppers = map[string]func() dynamo.Stepper{
	"euler":  func() dynamo.Stepper { return NewEuler() },
	"rk4":    func() dynamo.Stepper { return NewRK4() },
	"rk45":   func() dynamo.Stepper { return NewRK45() },
	"dopri5": func() dynamo.Stepper { return NewRK45() },
}

// ByName returns a fresh stepper for a method name. An empty name selects
// DefaultMethod.
func ByName(name string) (dynamo.Stepper, error) {
	if name == "" {
		name = DefaultMethod
	}
	fn, ok := steppers[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
	return fn(), nil
}

func Methods() []string {
	names := make([]string, 0, len(steppers))
	for name := range steppers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
