package store

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/san-kum/pinsim/internal/pin"
	"github.com/san-kum/pinsim/internal/trace"
)

var ErrRunNotFound = errors.New("store: run not found")

const (
	metadataFile = "metadata.json"
	levelsFile   = "levels.csv"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunMetadata describes one recorded simulation.
type RunMetadata struct {
	ID         string    `json:"id"`
	Source     string    `json:"source"`
	Preset     string    `json:"preset,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
	IntervalMs int64     `json:"interval_ms"`
	Initial    string    `json:"initial"`
	Ticks      uint64    `json:"ticks"`
	Emissions  int       `json:"emissions"`
	Script     string    `json:"script,omitempty"`
}

func (m RunMetadata) Interval() time.Duration {
	return time.Duration(m.IntervalMs) * time.Millisecond
}

var createFile = os.Create

// Save writes meta and samples to a new run directory and returns its id.
// ID, Timestamp and Emissions are filled in by Save.
func (s *Store) Save(meta RunMetadata, samples []trace.Sample) (string, error) {
	source := meta.Source
	if source == "" {
		source = "run"
	}
	meta.ID = fmt.Sprintf("%s_%s", source, uuid.NewString()[:8])
	meta.Timestamp = time.Now()
	meta.Emissions = len(samples)

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}
	if err := writeRun(runDir, meta, samples); err != nil {
		os.RemoveAll(runDir)
		return "", err
	}
	return meta.ID, nil
}

func writeRun(runDir string, meta RunMetadata, samples []trace.Sample) error {
	err := writeFile(filepath.Join(runDir, metadataFile), func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(meta)
	})
	if err != nil {
		return err
	}
	return writeFile(filepath.Join(runDir, levelsFile), func(w io.Writer) error {
		return WriteCSV(w, samples)
	})
}

// writeFile creates path, runs write on it and reports the first error,
// including the one from Close.
func writeFile(path string, write func(io.Writer) error) error {
	f, err := createFile(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return f.Close()
}

// WriteCSV writes samples as seq,t_ms,level rows under a header.
func WriteCSV(w io.Writer, samples []trace.Sample) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"seq", "t_ms", "level"}); err != nil {
		return err
	}
	for _, smp := range samples {
		row := []string{
			strconv.Itoa(smp.Seq),
			strconv.FormatInt(smp.At.Milliseconds(), 10),
			smp.Level.String(),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// List returns all runs, newest first. Directories without readable
// metadata are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
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

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("decode %s metadata: %w", runID, err)
	}
	return &meta, nil
}

func (s *Store) LoadSamples(runID string) ([]trace.Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, levelsFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	samples := make([]trace.Sample, 0, len(records))
	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) < 3 {
			continue
		}
		seq, err := strconv.Atoi(record[0])
		if err != nil {
			continue
		}
		ms, err := strconv.ParseInt(record[1], 10, 64)
		if err != nil {
			continue
		}
		level, err := pin.ParseLevel(record[2])
		if err != nil {
			continue
		}
		samples = append(samples, trace.Sample{
			Seq:   seq,
			At:    time.Duration(ms) * time.Millisecond,
			Level: level,
		})
	}
	return samples, nil
}
