package config

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/san-kum/phaseplot/internal/field"
	"github.com/san-kum/phaseplot/internal/portrait"
	"github.com/san-kum/phaseplot/internal/trajectory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sceneYAML = `
name: spiral
system:
  name: linear
  params: {a: -0.2, b: 1, c: -1, d: -0.2}
viewport:
  x: [-5, 5]
  y: [-4, 4]
time:
  start: -2
  end: 8
resolution: 12
integration:
  samples: 200
points:
  - {x: 0, y: 0, label: focus}
initial_conditions:
  - {x: 3, y: 0, color: teal, label: outer, legend: true}
  - x: 1
    y: 1
    domain: {start: 0, end: 4}
circles:
  - {x: 0, y: 0, radius: 2, line_style: dotted}
`

func TestParseScene(t *testing.T) {
	s, err := ParseScene([]byte(sceneYAML))
	require.NoError(t, err)

	assert.Equal(t, "spiral", s.Name)
	assert.Equal(t, "linear", s.System.Name)
	assert.Equal(t, -0.2, s.System.Params["a"])
	assert.Equal(t, field.Viewport{XStart: -5, XEnd: 5, YStart: -4, YEnd: 4}, s.Viewport.Viewport())
	assert.Equal(t, field.TimeDomain{Start: -2, End: 8}, s.Time)
	assert.Equal(t, 12, s.GridResolution(30))
	assert.Equal(t, 200, s.Integration.Samples)

	require.Len(t, s.InitialConditions, 2)
	assert.True(t, s.InitialConditions[0].Legend)
	assert.Nil(t, s.InitialConditions[0].Domain)
	require.NotNil(t, s.InitialConditions[1].Domain)
	assert.Equal(t, 4.0, s.InitialConditions[1].Domain.End)
	assert.Equal(t, portrait.LineDotted, s.Circles[0].LineStyle)
	assert.NoError(t, s.Validate())
}

func TestParseSceneRejectsUnknownKeys(t *testing.T) {
	_, err := ParseScene([]byte("system: {name: harmonic}\nviewprot: {x: [0, 1]}\n"))
	assert.Error(t, err)
}

func TestSceneValidate(t *testing.T) {
	s, err := ParseScene([]byte(`
system: {name: lorenz}
viewport: {x: [1, -1], y: [0, 1]}
time: {start: 1, end: 2}
resolution: 1
circles: [{radius: -1}]
`))
	require.NoError(t, err)

	err = s.Validate()
	require.Error(t, err)
	verrs, ok := err.(ValidationErrors)
	require.True(t, ok)

	fields := make([]string, len(verrs))
	for i, e := range verrs {
		fields[i] = e.Field
	}
	assert.Equal(t, []string{"system", "viewport", "time", "resolution", "circles[0].radius"}, fields)
}

func TestSceneRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	orig := GetPreset("circle-demo")
	require.NoError(t, SaveScene(path, orig))

	loaded, err := LoadScene(path)
	require.NoError(t, err)
	assert.Equal(t, orig.Viewport, loaded.Viewport)
	assert.Equal(t, orig.Time, loaded.Time)
	assert.Equal(t, orig.InitialConditions, loaded.InitialConditions)
	assert.Equal(t, orig.Circles, loaded.Circles)
}

func TestSceneBuild(t *testing.T) {
	s, err := ParseScene([]byte(sceneYAML))
	require.NoError(t, err)

	m, err := s.Build(trajectory.Options{Method: "rk4", Substeps: 5})
	require.NoError(t, err)
	assert.Len(t, m.Points(), 1)
	assert.Len(t, m.InitialConditions(), 2)
	assert.Len(t, m.Circles(), 1)

	results, err := m.ComputeTrajectories(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, r := range results {
		require.NoError(t, r.Err)
	}
	// 200 samples over [-2, 8] miss 0, so it is inserted.
	assert.Equal(t, 201, results[0].Trajectory.Negative.Len()+results[0].Trajectory.Positive.Len())
	assert.Equal(t, 4.0, results[1].Trajectory.Positive.Times[results[1].Trajectory.Positive.Len()-1])
}

func TestSceneBuildRejectsBadAnnotation(t *testing.T) {
	s := GetPreset("harmonic")
	s.Circles = []portrait.CircleAnnotation{{Radius: 1, LineStyle: "zigzag"}}
	_, err := s.Build(trajectory.Options{})
	assert.ErrorIs(t, err, portrait.ErrUnknownLineStyle)
}

func TestMergeOptions(t *testing.T) {
	got := mergeOptions(
		trajectory.Options{Samples: 500, Method: "rk45", RelTol: 1e-8},
		trajectory.Options{Samples: 100, AbsTol: 1e-12},
	)
	assert.Equal(t, trajectory.Options{Samples: 100, Method: "rk45", RelTol: 1e-8, AbsTol: 1e-12}, got)
}
