package adapter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	m "github.com/mouse-blink/casecov/internal/model"
)

// ErrNoReports is returned when a reports directory holds no stored run.
var ErrNoReports = errors.New("no stored reports")

const (
	indexFile  = "_index.yaml"
	latestFile = "latest.msgpack"
)

// ReportStore persists and retrieves check runs.
type ReportStore interface {
	SaveRun(dir m.Path, run m.Run) error
	LoadLatest(dir m.Path) (m.Run, error)
}

// LocalReportStore keeps one YAML file per run, an index of runs and a
// msgpack copy of the most recent run.
type LocalReportStore struct{}

// NewReportStore constructs a ReportStore implementation.
func NewReportStore() ReportStore {
	return &LocalReportStore{}
}

type indexEntry struct {
	ID         string    `yaml:"id"`
	CreatedAt  time.Time `yaml:"created_at"`
	Members    int       `yaml:"members"`
	Incomplete int       `yaml:"incomplete"`
}

type runIndex struct {
	Runs []indexEntry `yaml:"runs"`
}

// SaveRun writes the run, refreshes the index and replaces the latest cache.
func (rs *LocalReportStore) SaveRun(dir m.Path, run m.Run) error {
	if dir == "" {
		return errors.New("reports directory is empty")
	}

	if run.ID == "" {
		return errors.New("run has no id")
	}

	if err := os.MkdirAll(string(dir), 0o750); err != nil {
		return fmt.Errorf("create reports dir: %w", err)
	}

	data, err := yaml.Marshal(run)
	if err != nil {
		return fmt.Errorf("marshal run: %w", err)
	}

	if err := writeAtomic(rs.runPath(dir, run.ID), data); err != nil {
		return fmt.Errorf("write run %s: %w", run.ID, err)
	}

	if err := rs.appendIndex(dir, run); err != nil {
		return err
	}

	cached, err := msgpack.Marshal(run)
	if err != nil {
		return fmt.Errorf("encode latest run: %w", err)
	}

	if err := writeAtomic(filepath.Join(string(dir), latestFile), cached); err != nil {
		return fmt.Errorf("write latest run: %w", err)
	}

	return nil
}

// LoadLatest returns the most recent run, preferring the msgpack cache and
// falling back to the newest indexed YAML file.
func (rs *LocalReportStore) LoadLatest(dir m.Path) (m.Run, error) {
	if run, ok := rs.loadCached(dir); ok {
		return run, nil
	}

	idx, err := rs.loadIndex(dir)
	if err != nil {
		return m.Run{}, err
	}

	if len(idx.Runs) == 0 {
		return m.Run{}, fmt.Errorf("%s: %w", dir, ErrNoReports)
	}

	newest := idx.Runs[len(idx.Runs)-1]

	data, err := os.ReadFile(rs.runPath(dir, newest.ID))
	if err != nil {
		return m.Run{}, fmt.Errorf("read run %s: %w", newest.ID, err)
	}

	var run m.Run
	if err := yaml.Unmarshal(data, &run); err != nil {
		return m.Run{}, fmt.Errorf("decode run %s: %w", newest.ID, err)
	}

	return run, nil
}

func (rs *LocalReportStore) runPath(dir m.Path, id string) string {
	return filepath.Join(string(dir), id+".yaml")
}

func (rs *LocalReportStore) loadCached(dir m.Path) (m.Run, bool) {
	f, err := os.Open(filepath.Join(string(dir), latestFile))
	if err != nil {
		return m.Run{}, false
	}

	defer func() { _ = f.Close() }()

	var run m.Run
	if err := msgpack.NewDecoder(f).Decode(&run); err != nil || run.ID == "" {
		return m.Run{}, false
	}

	return run, true
}

func (rs *LocalReportStore) loadIndex(dir m.Path) (runIndex, error) {
	var idx runIndex

	data, err := os.ReadFile(filepath.Join(string(dir), indexFile))
	if errors.Is(err, os.ErrNotExist) {
		return idx, nil
	}

	if err != nil {
		return idx, fmt.Errorf("read index: %w", err)
	}

	if err := yaml.Unmarshal(data, &idx); err != nil {
		return idx, fmt.Errorf("decode index: %w", err)
	}

	return idx, nil
}

func (rs *LocalReportStore) appendIndex(dir m.Path, run m.Run) error {
	idx, err := rs.loadIndex(dir)
	if err != nil {
		return err
	}

	entry := indexEntry{ID: run.ID, CreatedAt: run.CreatedAt, Members: len(run.Reports)}
	for _, r := range run.Reports {
		if !r.Complete() {
			entry.Incomplete++
		}
	}

	idx.Runs = append(idx.Runs, entry)
	sort.SliceStable(idx.Runs, func(i, j int) bool {
		return idx.Runs[i].CreatedAt.Before(idx.Runs[j].CreatedAt)
	})

	data, err := yaml.Marshal(idx)
	if err != nil {
		return fmt.Errorf("marshal index: %w", err)
	}

	if err := writeAtomic(filepath.Join(string(dir), indexFile), data); err != nil {
		return fmt.Errorf("write index: %w", err)
	}

	return nil
}

// writeAtomic replaces path with data through a temporary file.
func writeAtomic(path string, data []byte) error {
	f, err := os.CreateTemp(filepath.Dir(path), "tmp-*")
	if err != nil {
		return err
	}

	defer func() { _ = os.Remove(f.Name()) }()

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return err
	}

	return os.Rename(f.Name(), path)
}
