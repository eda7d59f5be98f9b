package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/san-kum/phaseplot/internal/portrait"
)

const (
	metadataFile     = "metadata.json"
	trajectoriesFile = "trajectories.csv"
	fieldFile        = "field.csv"
	documentFile     = "portrait.json"
)

// Store keeps one directory per saved portrait under baseDir.
type Store struct {
	baseDir string
	now     func() time.Time
}

func NewStore(baseDir string) *Store {
	return &Store{baseDir: baseDir, now: time.Now}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Timestamp    time.Time `json:"timestamp"`
	Trajectories int       `json:"trajectories"`
	Failed       int       `json:"failed"`
	Samples      int       `json:"samples"`
	Grid         [2]int    `json:"grid"`
}

// Save writes metadata, both CSV files and the JSON document into a new run
// directory and returns its ID.
func (s *Store) Save(name string, art *portrait.Artifacts) (string, error) {
	ts := s.now().UTC()
	runID := fmt.Sprintf("%s_%s", name, ts.Format("20060102T150405.000000000"))
	runDir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{ID: runID, Name: name, Timestamp: ts, Trajectories: len(art.Trajectories)}
	for _, r := range art.Trajectories {
		if r.Err != nil {
			meta.Failed++
		}
		meta.Samples += r.Trajectory.Negative.Len() + r.Trajectory.Positive.Len()
	}
	if art.Field != nil {
		meta.Grid = [2]int{art.Field.Nx, art.Field.Ny}
	}

	if err := writeFile(filepath.Join(runDir, metadataFile), func(f *os.File) error {
		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		return enc.Encode(meta)
	}); err != nil {
		return "", err
	}
	if err := writeFile(filepath.Join(runDir, trajectoriesFile), func(f *os.File) error {
		return WriteTrajectoriesCSV(f, art.Trajectories)
	}); err != nil {
		return "", err
	}
	if art.Field != nil {
		if err := writeFile(filepath.Join(runDir, fieldFile), func(f *os.File) error {
			return WriteFieldCSV(f, art.Field)
		}); err != nil {
			return "", err
		}
	}
	if err := writeFile(filepath.Join(runDir, documentFile), func(f *os.File) error {
		return WriteJSON(f, NewDocument(name, art))
	}); err != nil {
		return "", err
	}

	return runID, nil
}

func writeFile(path string, fill func(*os.File) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return fill(f)
}

// List returns the metadata of every readable run, newest first. Unreadable
// directories are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.After(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadTrajectories(runID string) ([]Row, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, trajectoriesFile))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadTrajectoriesCSV(f)
}

func (s *Store) LoadDocument(runID string) (*Document, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, documentFile))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadJSON(f)
}
