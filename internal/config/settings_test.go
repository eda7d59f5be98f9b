package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSettingsValid(t *testing.T) {
	s := DefaultSettings()
	assert.Empty(t, s.Validate())
	assert.Equal(t, 400, s.Render.DPI)
	assert.Equal(t, 30, s.Render.Resolution)
	assert.Equal(t, "rk45", s.Integration.Method)
}

func TestLoadSettingsDefaultsWithoutFile(t *testing.T) {
	t.Chdir(t.TempDir())

	s, err := LoadSettings(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, *DefaultSettings(), *s)
}

func TestLoadSettingsFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "phaseplot.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
logger:
  level: debug
render:
  dpi: 150
  resolution: 15
integration:
  method: rk4
  substeps: 4
`), 0644))

	t.Setenv("PHASEPLOT_WORKERS", "3")
	t.Setenv("PHASEPLOT_RENDER_GRID", "false")

	s, err := LoadSettings(viper.New(), path)
	require.NoError(t, err)

	assert.Equal(t, "debug", s.Logger.Level)
	assert.Equal(t, 150, s.Render.DPI)
	assert.Equal(t, 15, s.Render.Resolution)
	assert.Equal(t, "rk4", s.Integration.Method)
	assert.Equal(t, 4, s.Integration.Substeps)
	assert.Equal(t, 500, s.Integration.Samples)
	assert.Equal(t, 3, s.Workers)
	assert.False(t, s.Render.Grid)
	assert.True(t, s.Render.HideZeroTick)
}

func TestLoadSettingsMissingExplicitFile(t *testing.T) {
	_, err := LoadSettings(viper.New(), filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadSettingsRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "phaseplot.yaml")
	require.NoError(t, os.WriteFile(path, []byte("render:\n  dpi: 1\nlogger:\n  level: loud\n"), 0644))

	_, err := LoadSettings(viper.New(), path)
	require.Error(t, err)

	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Len(t, verrs, 2)
}

func TestSettingsValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Settings)
		field  string
	}{
		{"log level", func(s *Settings) { s.Logger.Level = "trace" }, "logger.level"},
		{"log format", func(s *Settings) { s.Logger.Format = "xml" }, "logger.format"},
		{"rotation size", func(s *Settings) { s.Logger.LogFile = "x.log"; s.Logger.MaxSize = 0 }, "logger.max_size"},
		{"width", func(s *Settings) { s.Render.Width = 0 }, "render.width"},
		{"resolution", func(s *Settings) { s.Render.Resolution = 1 }, "render.resolution"},
		{"arrow length", func(s *Settings) { s.Render.ArrowLength = 2 }, "render.arrow_length"},
		{"colormap", func(s *Settings) { s.Render.FieldColormap = []string{"teal", "notacolor"} }, "render.field_colormap[1]"},
		{"samples", func(s *Settings) { s.Integration.Samples = 1 }, "integration.samples"},
		{"method", func(s *Settings) { s.Integration.Method = "verlet" }, "integration.method"},
		{"tolerance", func(s *Settings) { s.Integration.RelTol = -1 }, "integration.rel_tol"},
		{"workers", func(s *Settings) { s.Workers = -2 }, "workers"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.mutate(s)
			errs := s.Validate()
			require.Len(t, errs, 1)
			assert.Equal(t, tt.field, errs[0].Field)
		})
	}
}

func TestValidationErrorsMessage(t *testing.T) {
	errs := ValidationErrors{
		{Field: "a", Value: 1, Message: "bad"},
		{Field: "b", Value: "x", Message: "worse"},
	}
	assert.Equal(t, "a: bad (got: 1)", errs[0].Error())
	assert.Contains(t, errs.Error(), "2 validation errors")
	assert.Contains(t, errs.Error(), "2. b: worse (got: x)")
	assert.Equal(t, "", ValidationErrors(nil).Error())
}
