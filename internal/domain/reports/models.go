package reports

// Dimension is the axis a report groups games by.
type Dimension string

const (
	DimensionMonth    Dimension = "month"
	DimensionOpponent Dimension = "opponent"
	DimensionHomeAway Dimension = "home_away"
	DimensionVenue    Dimension = "venue"
	DimensionSeason   Dimension = "season"
)

// UnknownVenue is the group key for games without a venue name.
const UnknownVenue = "Unknown venue"

// Dimensions lists every supported grouping in report order.
func Dimensions() []Dimension {
	return []Dimension{DimensionMonth, DimensionOpponent, DimensionHomeAway, DimensionVenue, DimensionSeason}
}

// ParseDimension maps a user supplied name onto a Dimension.
func ParseDimension(raw string) (Dimension, bool) {
	for _, d := range Dimensions() {
		if string(d) == raw {
			return d, true
		}
	}
	return "", false
}

// Row summarizes one group of games.
// WinPct is nil when the group has no decided games.
type Row struct {
	Dimension    Dimension `json:"dimension"`
	Key          string    `json:"key"`
	Season       int       `json:"season,omitempty"`
	TotalGames   int       `json:"totalGames"`
	DecidedGames int       `json:"decidedGames"`
	Wins         int       `json:"wins"`
	Losses       int       `json:"losses"`
	Ties         int       `json:"ties"`
	Unknown      int       `json:"unknown"`
	RunsScored   int       `json:"runsScored"`
	RunsAllowed  int       `json:"runsAllowed"`
	WinPct       *float64  `json:"winPct"`
}

// Report is the payload returned for a grouped report.
type Report struct {
	Dimension Dimension `json:"dimension"`
	MinGames  int       `json:"minGames"`
	Rows      []Row     `json:"rows"`
}
