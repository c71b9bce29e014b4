package statsapi

type scheduleResponse struct {
	Dates []dateBlock `json:"dates"`
}

type dateBlock struct {
	Date  string         `json:"date"`
	Games []gameResponse `json:"games"`
}

type gameResponse struct {
	GamePK    int64              `json:"gamePk"`
	GameDate  string             `json:"gameDate"`
	GameType  string             `json:"gameType"`
	Status    statusResponse     `json:"status"`
	Teams     gameTeamsResponse  `json:"teams"`
	Venue     venueResponse      `json:"venue"`
	Linescore *linescoreResponse `json:"linescore"`
}

type statusResponse struct {
	DetailedState string `json:"detailedState"`
}

type gameTeamsResponse struct {
	Home sideResponse `json:"home"`
	Away sideResponse `json:"away"`
}

type sideResponse struct {
	Team teamRef `json:"team"`
}

type teamRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type venueResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type linescoreResponse struct {
	Teams struct {
		Home linescoreSide `json:"home"`
		Away linescoreSide `json:"away"`
	} `json:"teams"`
}

type linescoreSide struct {
	Runs *int `json:"runs"`
}

type teamsResponse struct {
	Teams []teamResponse `json:"teams"`
}

type teamResponse struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	TeamName     string `json:"teamName"`
	Abbreviation string `json:"abbreviation"`
}
