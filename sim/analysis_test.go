package sim

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyze(t *testing.T) {
	data := leagueData()
	agg := &Aggregate{
		Runs:               10,
		TitlesWon:          map[string]int{"T1": 6, "T2": 3, "T3": 1},
		PlayoffAppearances: map[string]int{"T1": 10, "T2": 9, "T3": 7, "T4": 5, "T5": 3},
		PointsDistribution: map[string][]int{},
	}

	rows := Analyze(data, agg)

	// Every rated team gets a row even if it never won or qualified.
	assert.Len(t, rows, 8)

	assert.Equal(t, "T1", rows[0].Team)
	assert.Equal(t, 60.0, rows[0].WinProbabilityPct)
	assert.Equal(t, 100.0, rows[0].PlayoffProbabilityPct)
	assert.Equal(t, 6, rows[0].TitlesWon)

	assert.Equal(t, "T2", rows[1].Team)
	assert.Equal(t, 30.0, rows[1].WinProbabilityPct)
	assert.Equal(t, 90.0, rows[1].PlayoffProbabilityPct)

	for i := 1; i < len(rows); i++ {
		assert.GreaterOrEqual(t, rows[i-1].WinProbabilityPct, rows[i].WinProbabilityPct)
	}

	last := rows[len(rows)-1]
	assert.Equal(t, 0.0, last.WinProbabilityPct)
	assert.Equal(t, 0, last.TitlesWon)
}

func TestAnalyze_ZeroRuns(t *testing.T) {
	data := leagueData()
	agg := &Aggregate{
		Runs:               0,
		TitlesWon:          map[string]int{},
		PlayoffAppearances: map[string]int{},
		PointsDistribution: map[string][]int{},
	}

	rows := Analyze(data, agg)
	assert.Len(t, rows, 8)
	for _, row := range rows {
		assert.Equal(t, 0.0, row.WinProbabilityPct)
		assert.Equal(t, 0.0, row.PlayoffProbabilityPct)
	}
}

func TestAnalyze_FullSimulation(t *testing.T) {
	data := leagueData()
	s := NewSimulator(data, rand.New(rand.NewSource(77)))

	const n = 200
	rows := Analyze(data, s.RunSimulations(n))
	assert.Len(t, rows, 8)

	var winSum float64
	for _, row := range rows {
		winSum += row.WinProbabilityPct
		// A title requires a playoff berth first.
		assert.GreaterOrEqual(t, row.PlayoffProbabilityPct, row.WinProbabilityPct)
	}
	// Rounding to one decimal place can drift the sum slightly off 100.
	assert.InDelta(t, 100.0, winSum, 0.5)
}

func TestFindCrucialMatches(t *testing.T) {
	data := leagueData()

	// Top four by rating are T1-T4. Matches touching anyone else must
	// be filtered out regardless of how close they were.
	results := []MatchResult{
		{MatchID: 1, Team1: "T1", Team2: "T2", Venue: "Ground A", Winner: "T1", WinProb1: 52, WinProb2: 48},
		{MatchID: 2, Team1: "T3", Team2: "T4", Venue: "Ground B", Winner: "T4", WinProb1: 60, WinProb2: 40},
		{MatchID: 3, Team1: "T1", Team2: "T8", Venue: "Ground C", Winner: "T1", WinProb1: 50, WinProb2: 50},
		{MatchID: 4, Team1: "T2", Team2: "T3", Venue: "Ground A", Winner: "T2", WinProb1: 50.5, WinProb2: 49.5},
	}

	crucial := FindCrucialMatches(data, results)
	assert.Len(t, crucial, 3)

	assert.Equal(t, 4, crucial[0].MatchID)
	assert.Equal(t, 99.0, crucial[0].ImportanceScore)
	assert.Equal(t, 1.0, crucial[0].ProbDifference)

	assert.Equal(t, 1, crucial[1].MatchID)
	assert.Equal(t, 96.0, crucial[1].ImportanceScore)

	assert.Equal(t, 2, crucial[2].MatchID)
	assert.Equal(t, "T3 vs T4", crucial[2].Teams)
	assert.Equal(t, "T4", crucial[2].Winner)
}

func TestFindCrucialMatches_CapAndEmpty(t *testing.T) {
	data := leagueData()

	assert.Empty(t, FindCrucialMatches(data, nil))

	results := make([]MatchResult, 0, 8)
	for i := 1; i <= 8; i++ {
		results = append(results, MatchResult{
			MatchID: i, Team1: "T1", Team2: "T2",
			WinProb1: 50 + float64(i), WinProb2: 50 - float64(i),
		})
	}
	crucial := FindCrucialMatches(data, results)
	assert.Len(t, crucial, 5)
	// Closest contests first.
	assert.Equal(t, 1, crucial[0].MatchID)
	assert.Equal(t, 5, crucial[4].MatchID)
}
