package export

import (
	"encoding/json"
	"os"
	"time"
)

// Manifest tracks what the export directory holds and which run wrote it last.
type Manifest struct {
	Version       int       `json:"version"`
	GeneratedAt   time.Time `json:"generatedAt"`
	RunID         string    `json:"runId"`
	Seasons       []int     `json:"seasons"`
	Reports       []string  `json:"reports"`
	LastRefreshed time.Time `json:"lastRefreshed"`
}

func defaultManifest() Manifest {
	return Manifest{
		Version: 1,
		Seasons: []int{},
		Reports: []string{},
	}
}

// ReadManifest loads the manifest in dir.
func ReadManifest(dir string) (Manifest, error) {
	return readManifest(ManifestPath(dir))
}

func readManifest(path string) (Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return defaultManifest(), err
	}
	defer f.Close()
	var m Manifest
	if err := json.NewDecoder(f).Decode(&m); err != nil {
		return defaultManifest(), err
	}
	if m.Seasons == nil {
		m.Seasons = []int{}
	}
	if m.Reports == nil {
		m.Reports = []string{}
	}
	return m, nil
}

func writeManifest(dir string, m Manifest, now time.Time) error {
	m.GeneratedAt = now
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return writeAtomic(ManifestPath(dir), data)
}
