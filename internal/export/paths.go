package export

import (
	"fmt"
	"path/filepath"

	"github.com/preston-bernstein/mlb-season-service/internal/domain/reports"
)

const manifestFile = "manifest.json"

// GamesPath builds the path to a season's games table.
func GamesPath(dir, prefix string, season int) string {
	return filepath.Join(dir, fmt.Sprintf("%s_games_%d.csv", prefix, season))
}

// ReportPath builds the path to a grouped summary table.
func ReportPath(dir string, dimension reports.Dimension) string {
	return filepath.Join(dir, fmt.Sprintf("summary_by_%s.csv", dimension))
}

// ManifestPath builds the path to the export manifest.
func ManifestPath(dir string) string {
	return filepath.Join(dir, manifestFile)
}
