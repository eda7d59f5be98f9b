package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/san-kum/phaseplot/internal/field"
	"github.com/san-kum/phaseplot/internal/portrait"
	"github.com/san-kum/phaseplot/internal/trajectory"
)

var (
	trajectoryHeader = []string{"trajectory", "label", "branch", "t", "x", "y"}
	fieldHeader      = []string{"x", "y", "dx", "dy", "magnitude", "singular"}
)

// Row is one trajectory sample as stored in CSV.
type Row struct {
	Trajectory int
	Label      string
	Branch     string
	T, X, Y    float64
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// WriteTrajectoriesCSV writes every sample of every result in time order,
// negative branch first.
func WriteTrajectoriesCSV(w io.Writer, results []portrait.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(trajectoryHeader); err != nil {
		return err
	}

	for i, r := range results {
		neg, pos := r.Trajectory.Negative, r.Trajectory.Positive
		for k := neg.Len() - 1; k >= 0; k-- {
			if err := cw.Write(trajectoryRow(i, r.Condition.Label, trajectory.NegativeBranch, neg.Times[k], neg.Points[k])); err != nil {
				return err
			}
		}
		for k := range pos.Points {
			if err := cw.Write(trajectoryRow(i, r.Condition.Label, trajectory.PositiveBranch, pos.Times[k], pos.Points[k])); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

func trajectoryRow(i int, label, branch string, t float64, p field.Point) []string {
	return []string{strconv.Itoa(i), label, branch, formatFloat(t), formatFloat(p.X), formatFloat(p.Y)}
}

// WriteFieldCSV writes the grid row-major. Singular samples keep their NaN
// or Inf components and are flagged.
func WriteFieldCSV(w io.Writer, g *field.Grid) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(fieldHeader); err != nil {
		return err
	}
	for _, s := range g.Samples {
		row := []string{
			formatFloat(s.X), formatFloat(s.Y),
			formatFloat(s.DX), formatFloat(s.DY),
			formatFloat(s.Magnitude),
			strconv.FormatBool(s.Singular()),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadTrajectoriesCSV parses the output of WriteTrajectoriesCSV.
func ReadTrajectoriesCSV(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(trajectoryHeader)

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("export: missing trajectory header")
	}

	rows := make([]Row, 0, len(records)-1)
	for n, rec := range records[1:] {
		idx, err := strconv.Atoi(rec[0])
		if err != nil {
			return nil, fmt.Errorf("export: line %d: trajectory index: %w", n+2, err)
		}
		var vals [3]float64
		for k := range vals {
			if vals[k], err = strconv.ParseFloat(rec[3+k], 64); err != nil {
				return nil, fmt.Errorf("export: line %d: %s: %w", n+2, trajectoryHeader[3+k], err)
			}
		}
		rows = append(rows, Row{Trajectory: idx, Label: rec[1], Branch: rec[2], T: vals[0], X: vals[1], Y: vals[2]})
	}
	return rows, nil
}
