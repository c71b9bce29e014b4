package export

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/preston-bernstein/mlb-season-service/internal/domain/reports"
)

func TestWriterWritesGamesAndManifest(t *testing.T) {
	dir := t.TempDir()
	w := fixedWriter(t, dir)

	path, err := w.WriteGames(2024, sampleGames())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if path != filepath.Join(dir, "mets_games_2024.csv") {
		t.Fatalf("unexpected path %s", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected games table, got err %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("expected temp file to be renamed away")
	}

	m, err := ReadManifest(dir)
	if err != nil {
		t.Fatalf("expected manifest, got err %v", err)
	}
	if _, err := uuid.Parse(m.RunID); err != nil || m.RunID != w.RunID() {
		t.Fatalf("expected writer run id in manifest, got %q", m.RunID)
	}
	if len(m.Seasons) != 1 || m.Seasons[0] != 2024 || m.Version != 1 {
		t.Fatalf("unexpected manifest %+v", m)
	}
	if !m.LastRefreshed.Equal(time.Date(2024, 10, 1, 12, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected last refreshed %s", m.LastRefreshed)
	}
}

func TestWriterSkipsIdenticalContent(t *testing.T) {
	dir := t.TempDir()
	w := fixedWriter(t, dir)

	path, err := w.WriteGames(2024, sampleGames())
	if err != nil {
		t.Fatalf("first write failed: %v", err)
	}
	old := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	if err := os.Chtimes(path, old, old); err != nil {
		t.Fatalf("chtimes failed: %v", err)
	}
	if _, err := w.WriteGames(2024, sampleGames()); err != nil {
		t.Fatalf("second write failed: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if !info.ModTime().Equal(old) {
		t.Fatalf("expected unchanged table to be left alone, mtime %s", info.ModTime())
	}
}

func TestWriterTracksSeasonsAndReports(t *testing.T) {
	dir := t.TempDir()
	w := fixedWriter(t, dir)

	for _, season := range []int{2025, 2024, 2025} {
		if _, err := w.WriteGames(season, sampleGames()); err != nil {
			t.Fatalf("write %d failed: %v", season, err)
		}
	}
	for _, dim := range []reports.Dimension{reports.DimensionVenue, reports.DimensionMonth} {
		path, err := w.WriteReport(dim, nil)
		if err != nil {
			t.Fatalf("write report failed: %v", err)
		}
		if filepath.Base(path) != "summary_by_"+string(dim)+".csv" {
			t.Fatalf("unexpected report path %s", path)
		}
	}

	m, err := ReadManifest(dir)
	if err != nil {
		t.Fatalf("read manifest failed: %v", err)
	}
	if len(m.Seasons) != 2 || m.Seasons[0] != 2024 || m.Seasons[1] != 2025 {
		t.Fatalf("expected sorted unique seasons, got %v", m.Seasons)
	}
	if len(m.Reports) != 2 || m.Reports[0] != "month" || m.Reports[1] != "venue" {
		t.Fatalf("expected sorted report names, got %v", m.Reports)
	}
}

func TestNilWriterErrors(t *testing.T) {
	var w *Writer
	if _, err := w.WriteGames(2024, nil); err == nil {
		t.Fatal("expected error from nil writer")
	}
	if w.Dir() != "" || w.RunID() != "" {
		t.Fatal("expected empty accessors on nil writer")
	}
}

func TestReadManifestMissingReturnsDefault(t *testing.T) {
	m, err := ReadManifest(t.TempDir())
	if err == nil {
		t.Fatal("expected error for missing manifest")
	}
	if m.Version != 1 || m.Seasons == nil || m.Reports == nil {
		t.Fatalf("expected default manifest, got %+v", m)
	}
}
