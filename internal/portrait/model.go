package portrait

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/san-kum/phaseplot/internal/field"
	"github.com/san-kum/phaseplot/internal/trajectory"
	"go.uber.org/zap"
)

var ErrNilField = errors.New("portrait: vector field has no component functions")

type Model struct {
	field    field.Field
	viewport field.Viewport
	domain   field.TimeDomain

	trajOpts trajectory.Options
	workers  int
	logger   *zap.Logger

	points     []PointAnnotation
	conditions []InitialCondition
	circles    []CircleAnnotation
}

type Option func(*Model)

func WithLogger(l *zap.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

func WithTrajectoryOptions(o trajectory.Options) Option {
	return func(m *Model) { m.trajOpts = o }
}

// WithWorkers bounds ComputeTrajectoriesParallel. Values below 1 select
// GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(m *Model) { m.workers = n }
}

// New fixes the field, viewport and default time domain of a portrait.
func New(f field.Field, vp field.Viewport, td field.TimeDomain, opts ...Option) (*Model, error) {
	if !f.Valid() {
		return nil, ErrNilField
	}
	if err := vp.Validate(); err != nil {
		return nil, err
	}
	if err := td.Validate(); err != nil {
		return nil, err
	}

	m := &Model{
		field:    f,
		viewport: vp,
		domain:   td,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.workers < 1 {
		m.workers = runtime.GOMAXPROCS(0)
	}
	m.logger = m.logger.Named("portrait")
	return m, nil
}

func (m *Model) Field() field.Field           { return m.field }
func (m *Model) Viewport() field.Viewport     { return m.viewport }
func (m *Model) TimeDomain() field.TimeDomain { return m.domain }

func (m *Model) AddPoint(p PointAnnotation) error {
	if err := p.validate(); err != nil {
		return err
	}
	m.points = append(m.points, p)
	return nil
}

func (m *Model) AddInitialCondition(ic InitialCondition) error {
	if err := ic.validate(); err != nil {
		return err
	}
	if ic.Domain != nil {
		d := *ic.Domain
		ic.Domain = &d
	}
	m.conditions = append(m.conditions, ic)
	return nil
}

func (m *Model) AddCircle(c CircleAnnotation) error {
	if err := c.validate(); err != nil {
		return err
	}
	m.circles = append(m.circles, c)
	return nil
}

func (m *Model) Points() []PointAnnotation {
	return append([]PointAnnotation(nil), m.points...)
}

func (m *Model) InitialConditions() []InitialCondition {
	out := make([]InitialCondition, len(m.conditions))
	for i, ic := range m.conditions {
		if ic.Domain != nil {
			d := *ic.Domain
			ic.Domain = &d
		}
		out[i] = ic
	}
	return out
}

func (m *Model) Circles() []CircleAnnotation {
	return append([]CircleAnnotation(nil), m.circles...)
}

// DirectionField samples the field over the viewport at t = 0.
func (m *Model) DirectionField(nx, ny int) (*field.Grid, error) {
	g, err := field.NewSampler(m.field, m.viewport).Sample(nx, ny)
	if err != nil {
		return nil, fmt.Errorf("direction field: %w", err)
	}
	return g, nil
}

// ClipToViewport keeps the points inside the model's viewport, in order.
func (m *Model) ClipToViewport(points []field.Point) []field.Point {
	return Clip(m.viewport, points)
}

func Clip(vp field.Viewport, points []field.Point) []field.Point {
	out := make([]field.Point, 0, len(points))
	for _, p := range points {
		if vp.Contains(p) {
			out = append(out, p)
		}
	}
	return out
}
