package export

import (
	"bytes"
	"context"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/san-kum/phaseplot/internal/field"
	"github.com/san-kum/phaseplot/internal/portrait"
	"github.com/san-kum/phaseplot/internal/trajectory"
	"github.com/san-kum/phaseplot/internal/viz"
)

func harmonicArtifacts(t *testing.T) *portrait.Artifacts {
	t.Helper()
	f := field.New(
		func(x, y float64) float64 { return y },
		func(x, y float64) float64 { return -x },
	)
	m, err := portrait.New(f, field.Viewport{XStart: -4, XEnd: 4, YStart: -4, YEnd: 4}, field.TimeDomain{Start: -1, End: 1},
		portrait.WithTrajectoryOptions(trajectory.Options{Samples: 11}))
	if err != nil {
		t.Fatal(err)
	}
	if err := m.AddInitialCondition(portrait.InitialCondition{X: 2, Color: "red", Label: "r=2"}); err != nil {
		t.Fatal(err)
	}
	if err := m.AddPoint(portrait.PointAnnotation{Color: "black"}); err != nil {
		t.Fatal(err)
	}
	art, err := m.Compute(context.Background(), 5, 5)
	if err != nil {
		t.Fatal(err)
	}
	return art
}

func TestTrajectoriesCSVRoundTrip(t *testing.T) {
	art := harmonicArtifacts(t)

	var buf bytes.Buffer
	if err := WriteTrajectoriesCSV(&buf, art.Trajectories); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "trajectory,label,branch,t,x,y\n") {
		t.Fatalf("unexpected header: %q", strings.SplitN(buf.String(), "\n", 2)[0])
	}

	rows, err := ReadTrajectoriesCSV(&buf)
	if err != nil {
		t.Fatal(err)
	}

	times, points := art.Trajectories[0].Trajectory.Chronological()
	if len(rows) != len(points) {
		t.Fatalf("got %d rows, want %d", len(rows), len(points))
	}
	for k, r := range rows {
		if r.T != times[k] || r.X != points[k].X || r.Y != points[k].Y {
			t.Fatalf("row %d = %+v, want t=%v %v", k, r, times[k], points[k])
		}
		wantBranch := trajectory.PositiveBranch
		if r.T < 0 {
			wantBranch = trajectory.NegativeBranch
		}
		if r.Branch != wantBranch || r.Label != "r=2" {
			t.Errorf("row %d branch %q label %q", k, r.Branch, r.Label)
		}
	}
	if rows[0].T != -1 || rows[len(rows)-1].T != 1 {
		t.Errorf("rows span [%v, %v], want [-1, 1]", rows[0].T, rows[len(rows)-1].T)
	}
}

func TestFieldCSVFlagsSingular(t *testing.T) {
	g := &field.Grid{Nx: 2, Ny: 1, Samples: []field.Sample{
		{X: 0, Y: 0},
		{X: 1, Y: 0, DX: math.NaN(), DY: math.NaN(), Magnitude: math.NaN()},
	}}

	var buf bytes.Buffer
	if err := WriteFieldCSV(&buf, g); err != nil {
		t.Fatal(err)
	}

	want := "x,y,dx,dy,magnitude,singular\n0,0,0,0,0,false\n1,0,NaN,NaN,NaN,true\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("field csv (-want +got):\n%s", diff)
	}
}

func TestReadTrajectoriesCSVRejectsGarbage(t *testing.T) {
	in := "trajectory,label,branch,t,x,y\n0,a,positive,zero,1,2\n"
	if _, err := ReadTrajectoriesCSV(strings.NewReader(in)); err == nil {
		t.Error("expected parse error")
	}
	if _, err := ReadTrajectoriesCSV(strings.NewReader("")); err == nil {
		t.Error("expected error for empty input")
	}
}

func TestJSONDocument(t *testing.T) {
	art := harmonicArtifacts(t)
	art.Field.Samples[0].DX = math.Inf(1)

	doc := NewDocument("harmonic", art)
	if !doc.Field.Samples[0].Singular || doc.Field.Samples[0].DX != 0 {
		t.Errorf("singular sample not sanitized: %+v", doc.Field.Samples[0])
	}

	var buf bytes.Buffer
	if err := WriteJSON(&buf, doc); err != nil {
		t.Fatal(err)
	}
	back, err := ReadJSON(&buf)
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(doc, back); diff != "" {
		t.Errorf("json round trip (-want +got):\n%s", diff)
	}
	if back.Trajectories[0].Positive.X[0] != 2 {
		t.Errorf("positive branch starts at x=%v, want 2", back.Trajectories[0].Positive.X[0])
	}
}

func TestJSONDocumentRecordsErrors(t *testing.T) {
	f := field.New(
		func(x, y float64) float64 { return -1 / math.Sqrt(x) },
		func(x, y float64) float64 { return 0 },
	)
	m, err := portrait.New(f, field.Viewport{XStart: -1, XEnd: 2, YStart: -1, YEnd: 1}, field.TimeDomain{Start: -1, End: 2})
	if err != nil {
		t.Fatal(err)
	}
	if err := m.AddInitialCondition(portrait.InitialCondition{X: 1}); err != nil {
		t.Fatal(err)
	}
	art, err := m.Compute(context.Background(), 3, 3)
	if err != nil {
		t.Fatal(err)
	}

	doc := NewDocument("drain", art)
	tr := doc.Trajectories[0]
	if tr.Error == "" || tr.Positive.Error == "" {
		t.Errorf("failure not recorded: %+v", tr)
	}
	if tr.Negative.Error != "" {
		t.Errorf("negative branch error %q", tr.Negative.Error)
	}
}

func TestCanvasToSVG(t *testing.T) {
	c := viz.NewCanvas(2, 1)
	c.Set(0, 0, viz.InkTrajectory)
	c.Set(3, 3, viz.InkPoint)

	var buf bytes.Buffer
	if err := CanvasToSVG(&buf, c, 10); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	if n := strings.Count(out, "<circle"); n != 2 {
		t.Errorf("got %d dots, want 2", n)
	}
	for _, want := range []string{`width="40"`, `height="40"`, `cx="5.0" cy="5.0"`, inkFill[viz.InkPoint]} {
		if !strings.Contains(out, want) {
			t.Errorf("svg missing %q", want)
		}
	}

	if err := CanvasToSVG(&buf, nil, 1); err == nil {
		t.Error("expected error for nil canvas")
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := NewStore(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	clock := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	st.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}

	art := harmonicArtifacts(t)
	first, err := st.Save("harmonic", art)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	second, err := st.Save("harmonic", art)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if first == second {
		t.Fatalf("run ids collide: %s", first)
	}

	meta, err := st.Load(first)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Name != "harmonic" || meta.Trajectories != 1 || meta.Failed != 0 {
		t.Errorf("unexpected metadata %+v", meta)
	}
	if meta.Grid != [2]int{5, 5} {
		t.Errorf("grid %v, want [5 5]", meta.Grid)
	}

	rows, err := st.LoadTrajectories(first)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != meta.Samples {
		t.Errorf("loaded %d rows, metadata says %d", len(rows), meta.Samples)
	}

	doc, err := st.LoadDocument(first)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Name != "harmonic" || len(doc.Trajectories) != 1 {
		t.Errorf("unexpected document %+v", doc)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 || runs[0].ID != second {
		t.Errorf("List() = %v, want newest %s first", runs, second)
	}
}

func TestStoreListMissingDir(t *testing.T) {
	runs, err := NewStore(t.TempDir() + "/absent").List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 0 {
		t.Errorf("got %d runs", len(runs))
	}
}
