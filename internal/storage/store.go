package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/orbsim/internal/analysis"
	"github.com/san-kum/orbsim/internal/domain"
	"github.com/san-kum/orbsim/internal/orbit"
	"github.com/san-kum/orbsim/internal/sim"
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

// Dir returns the directory holding snapshot id.
func (s *Store) Dir(id string) string {
	return filepath.Join(s.baseDir, id)
}

type Metadata struct {
	ID        string             `json:"id"`
	Domain    domain.Kind        `json:"domain"`
	Source    string             `json:"source"`
	Parent    string             `json:"parent,omitempty"`
	Timestamp time.Time          `json:"timestamp"`
	Entities  int                `json:"entities"`
	Tracks    int                `json:"tracks"`
	Relations int                `json:"relations"`
	Entropy   float64            `json:"entropy"`
	Problems  int                `json:"problems,omitempty"`
	Metrics   map[string]float64 `json:"metrics,omitempty"`
}

// SaveOptions annotates a snapshot.
type SaveOptions struct {
	Source   string
	Parent   string
	Problems int
	Metrics  map[string]float64
}

// Save writes a snapshot of sys and returns its id.
func (s *Store) Save(sys domain.System, opts SaveOptions) (string, error) {
	doc, err := Encode(sys)
	if err != nil {
		return "", err
	}

	id := uuid.New().String()
	dir := s.Dir(id)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	reg := sys.Registry()
	meta := Metadata{
		ID:        id,
		Domain:    sys.Kind(),
		Source:    opts.Source,
		Parent:    opts.Parent,
		Timestamp: time.Now(),
		Entities:  reg.Len(),
		Tracks:    len(reg.Tracks()),
		Relations: len(doc.Relations),
		Entropy:   analysis.Entropy(reg),
		Problems:  opts.Problems,
		Metrics:   opts.Metrics,
	}

	if err := writeJSON(filepath.Join(dir, "metadata.json"), meta); err != nil {
		return "", err
	}
	if err := writeJSON(filepath.Join(dir, "registry.json"), doc); err != nil {
		return "", err
	}
	if err := writeTrackCounts(filepath.Join(dir, "tracks.csv"), reg); err != nil {
		return "", err
	}
	return id, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeTrackCounts(path string, reg *orbit.Registry) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	counts := reg.TrackCounts()
	if err := w.Write([]string{"major", "minor", "count"}); err != nil {
		return err
	}
	for _, t := range reg.Tracks() {
		row := []string{
			strconv.FormatFloat(t.Major, 'g', -1, 64),
			strconv.FormatFloat(t.Minor, 'g', -1, 64),
			strconv.Itoa(counts[t]),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// SaveRun records a simulation run next to snapshot id.
func (s *Store) SaveRun(id string, result *sim.Result) error {
	f, err := os.Create(filepath.Join(s.Dir(id), "run.csv"))
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"time", "entropy"}); err != nil {
		return err
	}
	for i := range result.Times {
		row := []string{
			strconv.FormatFloat(result.Times[i], 'f', 6, 64),
			strconv.FormatFloat(result.Entropy[i], 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns every snapshot, oldest first.
func (s *Store) List() ([]Metadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Metadata{}, nil
		}
		return nil, err
	}

	snaps := make([]Metadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		snaps = append(snaps, *meta)
	}
	sort.Slice(snaps, func(i, j int) bool { return snaps[i].Timestamp.Before(snaps[j].Timestamp) })
	return snaps, nil
}

// Resolve expands a unique id prefix to the full id.
func (s *Store) Resolve(prefix string) (string, error) {
	if _, err := uuid.Parse(prefix); err == nil {
		return prefix, nil
	}
	snaps, err := s.List()
	if err != nil {
		return "", err
	}
	var match []string
	for _, m := range snaps {
		if len(prefix) > 0 && len(m.ID) >= len(prefix) && m.ID[:len(prefix)] == prefix {
			match = append(match, m.ID)
		}
	}
	switch len(match) {
	case 0:
		return "", fmt.Errorf("no snapshot matches %q", prefix)
	case 1:
		return match[0], nil
	}
	return "", fmt.Errorf("%q is ambiguous: %d snapshots match", prefix, len(match))
}

func (s *Store) Load(id string) (*Metadata, error) {
	data, err := os.ReadFile(filepath.Join(s.Dir(id), "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadDocument reads the serialized registry of snapshot id.
func (s *Store) LoadDocument(id string) (*Document, error) {
	data, err := os.ReadFile(filepath.Join(s.Dir(id), "registry.json"))
	if err != nil {
		return nil, err
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", id, err)
	}
	doc.fillKinds()
	return &doc, nil
}

// LoadSystem rebuilds the system stored under id.
func (s *Store) LoadSystem(id string, opts ...orbit.Option) (domain.System, error) {
	doc, err := s.LoadDocument(id)
	if err != nil {
		return nil, err
	}
	return doc.Decode(opts...)
}

// LoadTrackCounts reads tracks.csv of snapshot id.
func (s *Store) LoadTrackCounts(id string) (map[orbit.Track]int, error) {
	file, err := os.Open(filepath.Join(s.Dir(id), "tracks.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, err
	}

	counts := make(map[orbit.Track]int)
	for _, rec := range records[min(1, len(records)):] {
		if len(rec) != 3 {
			continue
		}
		major, err1 := strconv.ParseFloat(rec[0], 64)
		minor, err2 := strconv.ParseFloat(rec[1], 64)
		n, err3 := strconv.Atoi(rec[2])
		if err1 != nil || err2 != nil || err3 != nil {
			continue
		}
		t, err := orbit.NewTrack(major, minor)
		if err != nil {
			continue
		}
		counts[t] = n
	}
	return counts, nil
}

// Delete removes snapshot id.
func (s *Store) Delete(id string) error {
	if _, err := s.Load(id); err != nil {
		return err
	}
	return os.RemoveAll(s.Dir(id))
}
