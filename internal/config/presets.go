package config

import (
	"sort"

	"github.com/san-kum/phaseplot/internal/field"
	"github.com/san-kum/phaseplot/internal/portrait"
)

var square10 = ViewportSpec{X: [2]float64{-10, 10}, Y: [2]float64{-10, 10}}

// nodeStarts approach the origin from all four quadrants; some start just
// outside the window.
var nodeStarts = []portrait.InitialCondition{
	{X: -11, Y: 4, Color: "black"},
	{X: -7, Y: 10, Color: "black"},
	{X: 3, Y: 10, Color: "black"},
	{X: 11, Y: -4, Color: "black"},
	{X: 7, Y: -10, Color: "black"},
	{X: -3, Y: -10, Color: "black"},
}

var origin = []portrait.PointAnnotation{{X: 0, Y: 0, Color: "black"}}

var Presets = map[string]*Scene{
	"harmonic": {
		Name:        "harmonic",
		Description: "direction field of x' = y, y' = -x",
		System:      SystemSpec{Name: "harmonic"},
		Viewport:    square10,
		Time:        field.TimeDomain{Start: -10, End: 10},
	},
	"harmonic-orbits": {
		Name:        "harmonic-orbits",
		Description: "closed orbits of the harmonic oscillator through (0, 2) and (0, 5)",
		System:      SystemSpec{Name: "harmonic"},
		Viewport:    square10,
		Time:        field.TimeDomain{Start: -10, End: 10},
		InitialConditions: []portrait.InitialCondition{
			{X: 0, Y: 2, Color: "black", Label: "r = 2"},
			{X: 0, Y: 5, Color: "black", Label: "r = 5"},
		},
	},
	"stable-node": {
		Name:        "stable-node",
		Description: "degenerate stable node x' = -x + y, y' = -y",
		System: SystemSpec{Name: "linear", Params: map[string]float64{
			"a": -1, "b": 1, "c": 0, "d": -1,
		}},
		Viewport:          square10,
		Time:              field.TimeDomain{Start: -10, End: 10},
		Points:            origin,
		InitialConditions: nodeStarts,
	},
	"unstable-node": {
		Name:        "unstable-node",
		Description: "degenerate unstable node x' = x - y, y' = y",
		System: SystemSpec{Name: "linear", Params: map[string]float64{
			"a": 1, "b": -1, "c": 0, "d": 1,
		}},
		Viewport:          square10,
		Time:              field.TimeDomain{Start: -10, End: 10},
		Points:            origin,
		InitialConditions: nodeStarts,
	},
	"circle-demo": {
		Name:        "circle-demo",
		Description: "harmonic orbits with a dashed circle annotation",
		System:      SystemSpec{Name: "harmonic"},
		Viewport:    square10,
		Time:        field.TimeDomain{Start: 0, End: 10},
		Points:      origin,
		InitialConditions: []portrait.InitialCondition{
			{X: 2, Y: 0, Color: "black"},
			{X: 8, Y: 0, Color: "red"},
		},
		Circles: []portrait.CircleAnnotation{
			{X: 8, Y: 0, Radius: 5, Color: "red", LineStyle: portrait.LineDashed},
		},
	},
	"vanderpol": {
		Name:        "vanderpol",
		Description: "Van der Pol limit cycle approached from inside and outside",
		System:      SystemSpec{Name: "vanderpol", Params: map[string]float64{"mu": 1}},
		Viewport:    ViewportSpec{X: [2]float64{-4, 4}, Y: [2]float64{-4, 4}},
		Time:        field.TimeDomain{Start: 0, End: 20},
		Resolution:  20,
		Points:      origin,
		InitialConditions: []portrait.InitialCondition{
			{X: 0.1, Y: 0, Color: "steelblue", Label: "inside", Legend: true},
			{X: 3.5, Y: 3, Color: "crimson", Label: "outside", Legend: true},
		},
	},
	"pendulum": {
		Name:        "pendulum",
		Description: "damped pendulum with saddles at theta = ±pi",
		System:      SystemSpec{Name: "pendulum"},
		Viewport:    ViewportSpec{X: [2]float64{-7, 7}, Y: [2]float64{-8, 8}},
		Time:        field.TimeDomain{Start: 0, End: 15},
		Resolution:  25,
		Points: []portrait.PointAnnotation{
			{X: 0, Y: 0, Color: "black", Label: "rest"},
			{X: -3.141592653589793, Y: 0, Color: "red", Label: "saddle"},
			{X: 3.141592653589793, Y: 0, Color: "red", Label: "saddle"},
		},
		InitialConditions: []portrait.InitialCondition{
			{X: -6, Y: 7, Color: "darkgreen"},
			{X: 0, Y: 6.5, Color: "darkorange"},
			{X: 2, Y: 0, Color: "navy"},
		},
	},
}

// GetPreset returns a deep copy of the named preset, or nil.
func GetPreset(name string) *Scene {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	return p.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *Scene) Clone() *Scene {
	c := *s
	if s.System.Params != nil {
		c.System.Params = make(map[string]float64, len(s.System.Params))
		for k, v := range s.System.Params {
			c.System.Params[k] = v
		}
	}
	c.Points = append([]portrait.PointAnnotation(nil), s.Points...)
	c.Circles = append([]portrait.CircleAnnotation(nil), s.Circles...)
	c.InitialConditions = make([]portrait.InitialCondition, len(s.InitialConditions))
	for i, ic := range s.InitialConditions {
		if ic.Domain != nil {
			d := *ic.Domain
			ic.Domain = &d
		}
		c.InitialConditions[i] = ic
	}
	return &c
}
