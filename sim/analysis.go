package sim

import (
	"fmt"
	"math"
	"sort"
)

// TeamAnalysis is one row of the final per-team output table.
type TeamAnalysis struct {
	Team                  string  `json:"team"`
	WinProbabilityPct     float64 `json:"winProbabilityPct"`
	PlayoffProbabilityPct float64 `json:"playoffProbabilityPct"`
	TitlesWon             int     `json:"titlesWon"`
	PlayoffAppearances    int     `json:"playoffAppearances"`
}

// CrucialMatch is a high-tension fixture from the sample run.
type CrucialMatch struct {
	MatchID         int     `json:"matchId"`
	Teams           string  `json:"teams"`
	Venue           string  `json:"venue"`
	Winner          string  `json:"winner"`
	ImportanceScore float64 `json:"importanceScore"`
	ProbDifference  float64 `json:"probDifference"`
}

// Analyze converts aggregate counts into probabilities. Every team
// known to the rating lookup gets a row, including teams that never
// appeared in a simulation. Rows are sorted by win probability, ties
// keeping input team order. An aggregate of zero runs yields all-zero
// probabilities.
func Analyze(data *Data, agg *Aggregate) []TeamAnalysis {
	rows := make([]TeamAnalysis, 0, len(data.teams))
	for _, team := range data.Teams() {
		row := TeamAnalysis{
			Team:               team,
			TitlesWon:          agg.TitlesWon[team],
			PlayoffAppearances: agg.PlayoffAppearances[team],
		}
		if agg.Runs > 0 {
			row.WinProbabilityPct = round1(float64(row.TitlesWon) / float64(agg.Runs) * 100)
			row.PlayoffProbabilityPct = round1(float64(row.PlayoffAppearances) / float64(agg.Runs) * 100)
		}
		rows = append(rows, row)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].WinProbabilityPct > rows[j].WinProbabilityPct
	})
	return rows
}

// FindCrucialMatches filters the sample run down to matches between
// the four highest-rated teams and scores each by how close the
// contest was: importance = 100 - |prob1 - prob2|. Returns at most
// the top five.
func FindCrucialMatches(data *Data, results []MatchResult) []CrucialMatch {
	top := make(map[string]bool, 4)
	for _, team := range data.TopRatedTeams(4) {
		top[team] = true
	}

	crucial := make([]CrucialMatch, 0)
	for _, m := range results {
		if !top[m.Team1] || !top[m.Team2] {
			continue
		}
		diff := math.Abs(m.WinProb1 - m.WinProb2)
		crucial = append(crucial, CrucialMatch{
			MatchID:         m.MatchID,
			Teams:           fmt.Sprintf("%s vs %s", m.Team1, m.Team2),
			Venue:           m.Venue,
			Winner:          m.Winner,
			ImportanceScore: round1(100 - diff),
			ProbDifference:  round1(diff),
		})
	}

	sort.SliceStable(crucial, func(i, j int) bool {
		return crucial[i].ImportanceScore > crucial[j].ImportanceScore
	})
	if len(crucial) > 5 {
		crucial = crucial[:5]
	}
	return crucial
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
