package export

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/preston-bernstein/mlb-season-service/internal/domain/games"
	"github.com/preston-bernstein/mlb-season-service/internal/domain/reports"
)

// DefaultPrefix names games tables when no prefix is configured.
const DefaultPrefix = "mets"

// Writer persists games and summary tables plus the manifest.
type Writer struct {
	dir    string
	prefix string
	runID  string
	now    func() time.Time
}

// NewWriter constructs a writer rooted at dir. Every writer gets its own run id.
func NewWriter(dir, prefix string) *Writer {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Writer{
		dir:    dir,
		prefix: prefix,
		runID:  uuid.NewString(),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Dir exposes the writer root path.
func (w *Writer) Dir() string {
	if w == nil {
		return ""
	}
	return w.dir
}

// RunID identifies this writer in the manifest.
func (w *Writer) RunID() string {
	if w == nil {
		return ""
	}
	return w.runID
}

// WriteGames writes the games table for season and returns its path.
func (w *Writer) WriteGames(season int, raw []games.RawGame) (string, error) {
	if w == nil {
		return "", fmt.Errorf("export writer not configured")
	}
	var buf bytes.Buffer
	if err := EncodeGames(&buf, raw, season); err != nil {
		return "", err
	}
	target := GamesPath(w.dir, w.prefix, season)
	if err := w.write(target, buf.Bytes()); err != nil {
		return "", err
	}
	return target, w.updateManifest(func(m *Manifest) {
		m.Seasons = addSeason(m.Seasons, season)
	})
}

// WriteReport writes the summary table for dimension and returns its path.
func (w *Writer) WriteReport(dimension reports.Dimension, rows []reports.Row) (string, error) {
	if w == nil {
		return "", fmt.Errorf("export writer not configured")
	}
	var buf bytes.Buffer
	if err := EncodeReport(&buf, rows); err != nil {
		return "", err
	}
	target := ReportPath(w.dir, dimension)
	if err := w.write(target, buf.Bytes()); err != nil {
		return "", err
	}
	return target, w.updateManifest(func(m *Manifest) {
		m.Reports = addReport(m.Reports, string(dimension))
	})
}

// write skips the rename when the target already holds identical bytes.
func (w *Writer) write(target string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	if existing, err := os.ReadFile(target); err == nil && bytes.Equal(existing, data) {
		return nil
	}
	return writeAtomic(target, data)
}

func (w *Writer) updateManifest(apply func(*Manifest)) error {
	m, _ := readManifest(ManifestPath(w.dir))
	now := w.now()
	apply(&m)
	m.RunID = w.runID
	m.LastRefreshed = now
	return writeManifest(w.dir, m, now)
}

func writeAtomic(target string, data []byte) error {
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, target)
}

func addSeason(seasons []int, season int) []int {
	for _, s := range seasons {
		if s == season {
			return seasons
		}
	}
	seasons = append(seasons, season)
	sort.Ints(seasons)
	return seasons
}

func addReport(names []string, name string) []string {
	for _, n := range names {
		if n == name {
			return names
		}
	}
	names = append(names, name)
	sort.Strings(names)
	return names
}
