package render

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/san-kum/phaseplot/internal/config"
	"golang.org/x/image/colornames"
	"gonum.org/v1/plot/vg"
)

var (
	ErrUnknownColor  = errors.New("render: unknown color")
	ErrUnknownFormat = errors.New("render: unsupported output format")
	ErrInvalidSize   = errors.New("render: invalid canvas size")
)

// Context is the complete styling of one figure.
type Context struct {
	Width, Height vg.Length
	DPI           int
	Title         string

	// ArrowLength is the quiver arrow length as a fraction of one grid cell.
	ArrowLength float64
	Colormap    []string

	HideZeroTick      bool
	AxesThroughOrigin bool
	Grid              bool
	Legend            bool
	ClipTrajectories  bool
}

// FromConfig converts settings, given in centimetres, into a Context.
func FromConfig(rc config.RenderConfig) Context {
	return Context{
		Width:             vg.Length(rc.Width) * vg.Centimeter,
		Height:            vg.Length(rc.Height) * vg.Centimeter,
		DPI:               rc.DPI,
		ArrowLength:       rc.ArrowLength,
		Colormap:          append([]string(nil), rc.FieldColormap...),
		HideZeroTick:      rc.HideZeroTick,
		AxesThroughOrigin: rc.AxesThroughOrigin,
		Grid:              rc.Grid,
		Legend:            rc.Legend,
		ClipTrajectories:  rc.ClipTrajectories,
	}
}

func DefaultContext() Context {
	return FromConfig(config.DefaultSettings().Render)
}

func (c Context) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: %v x %v", ErrInvalidSize, c.Width, c.Height)
	}
	if c.DPI <= 0 {
		return fmt.Errorf("%w: dpi %d", ErrInvalidSize, c.DPI)
	}
	for _, name := range c.Colormap {
		if _, err := Color(name, nil); err != nil {
			return err
		}
	}
	return nil
}

// Color resolves an SVG color name. An empty name yields fallback.
func Color(name string, fallback color.Color) (color.Color, error) {
	if name == "" {
		return fallback, nil
	}
	c, ok := colornames.Map[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColor, name)
	}
	return c, nil
}
