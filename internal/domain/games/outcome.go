package games

// Outcome is the result of a game for the tracked team.
type Outcome string

const (
	OutcomeWin     Outcome = "W"
	OutcomeLoss    Outcome = "L"
	OutcomeTie     Outcome = "T"
	OutcomeUnknown Outcome = "NA"
)

// Decided reports whether the outcome counts toward win percentage.
func (o Outcome) Decided() bool {
	return o == OutcomeWin || o == OutcomeLoss
}

// OutcomeFor compares run counts. A nil count yields OutcomeUnknown.
func OutcomeFor(teamRuns, opponentRuns *int) Outcome {
	if teamRuns == nil || opponentRuns == nil {
		return OutcomeUnknown
	}
	switch {
	case *teamRuns > *opponentRuns:
		return OutcomeWin
	case *teamRuns < *opponentRuns:
		return OutcomeLoss
	default:
		return OutcomeTie
	}
}
