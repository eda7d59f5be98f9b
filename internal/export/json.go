package export

import (
	"io"
	"math"

	jsoniter "github.com/json-iterator/go"
	"github.com/san-kum/phaseplot/internal/portrait"
	"github.com/san-kum/phaseplot/internal/trajectory"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Document is the JSON form of a computed portrait. JSON has no NaN, so
// singular field samples carry zeros and Singular = true.
type Document struct {
	Name         string                      `json:"name,omitempty"`
	Viewport     Bounds                      `json:"viewport"`
	TimeDomain   [2]float64                  `json:"time_domain"`
	Field        *FieldDoc                   `json:"field,omitempty"`
	Trajectories []TrajectoryDoc             `json:"trajectories"`
	Points       []portrait.PointAnnotation  `json:"points,omitempty"`
	Circles      []portrait.CircleAnnotation `json:"circles,omitempty"`
}

type Bounds struct {
	X [2]float64 `json:"x"`
	Y [2]float64 `json:"y"`
}

type FieldDoc struct {
	Nx      int         `json:"nx"`
	Ny      int         `json:"ny"`
	Time    float64     `json:"time"`
	Samples []SampleDoc `json:"samples"`
}

type SampleDoc struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	DX        float64 `json:"dx"`
	DY        float64 `json:"dy"`
	Magnitude float64 `json:"magnitude"`
	Singular  bool    `json:"singular,omitempty"`
}

type TrajectoryDoc struct {
	Label    string    `json:"label,omitempty"`
	Color    string    `json:"color,omitempty"`
	X0       float64   `json:"x0"`
	Y0       float64   `json:"y0"`
	Negative BranchDoc `json:"negative"`
	Positive BranchDoc `json:"positive"`
	Error    string    `json:"error,omitempty"`
}

type BranchDoc struct {
	Times       []float64 `json:"t"`
	X           []float64 `json:"x"`
	Y           []float64 `json:"y"`
	Steps       int       `json:"steps"`
	Rejected    int       `json:"rejected"`
	Evaluations int       `json:"evaluations"`
	Error       string    `json:"error,omitempty"`
}

// NewDocument converts computed artifacts. Branch samples are copied.
func NewDocument(name string, art *portrait.Artifacts) *Document {
	vp, td := art.Viewport, art.TimeDomain
	doc := &Document{
		Name:         name,
		Viewport:     Bounds{X: [2]float64{vp.XStart, vp.XEnd}, Y: [2]float64{vp.YStart, vp.YEnd}},
		TimeDomain:   [2]float64{td.Start, td.End},
		Trajectories: make([]TrajectoryDoc, 0, len(art.Trajectories)),
		Points:       art.Points,
		Circles:      art.Circles,
	}

	if g := art.Field; g != nil {
		fd := &FieldDoc{Nx: g.Nx, Ny: g.Ny, Time: g.Time, Samples: make([]SampleDoc, len(g.Samples))}
		for i, s := range g.Samples {
			if s.Singular() {
				fd.Samples[i] = SampleDoc{X: s.X, Y: s.Y, Singular: true}
				continue
			}
			fd.Samples[i] = SampleDoc{X: s.X, Y: s.Y, DX: s.DX, DY: s.DY, Magnitude: s.Magnitude}
		}
		doc.Field = fd
	}

	for _, r := range art.Trajectories {
		td := TrajectoryDoc{
			Label:    r.Condition.Label,
			Color:    r.Condition.Color,
			X0:       r.Condition.X,
			Y0:       r.Condition.Y,
			Negative: branchDoc(r.Trajectory.Negative),
			Positive: branchDoc(r.Trajectory.Positive),
			Error:    errString(r.Err),
		}
		doc.Trajectories = append(doc.Trajectories, td)
	}
	return doc
}

func branchDoc(b trajectory.Branch) BranchDoc {
	bd := BranchDoc{
		Times:       append([]float64{}, b.Times...),
		X:           make([]float64, b.Len()),
		Y:           make([]float64, b.Len()),
		Steps:       b.Stats.Steps,
		Rejected:    b.Stats.Rejected,
		Evaluations: b.Stats.Evaluations,
		Error:       errString(b.Err),
	}
	for k, p := range b.Points {
		bd.X[k], bd.Y[k] = finiteOrZero(p.X), finiteOrZero(p.Y)
	}
	return bd
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func WriteJSON(w io.Writer, doc *Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func ReadJSON(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}
