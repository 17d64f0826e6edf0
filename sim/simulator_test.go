package sim

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

// leagueData builds an eight-team single round robin, 28 fixtures.
func leagueData() *Data {
	teams := []string{"T1", "T2", "T3", "T4", "T5", "T6", "T7", "T8"}

	ratings := make([]TeamRating, 0, len(teams))
	for i, team := range teams {
		overall := 60 - float64(i)*2.5
		ratings = append(ratings, TeamRating{
			Team:    team,
			Batting: overall + 2,
			Bowling: overall - 2,
			Overall: overall,
		})
	}

	venues := []VenueProfile{
		{Venue: "Ground A", BatFirstWinPct: 55, BowlFirstWinPct: 45, AvgFirstInnings: 155, RunRate: 8.6},
		{Venue: "Ground B", BatFirstWinPct: 45, BowlFirstWinPct: 55, AvgFirstInnings: 145, RunRate: 8.2},
		{Venue: "Ground C", BatFirstWinPct: 50, BowlFirstWinPct: 50, AvgFirstInnings: 150, RunRate: 8.5},
	}

	var schedule []Fixture
	id := 1
	for i := 0; i < len(teams); i++ {
		for j := i + 1; j < len(teams); j++ {
			schedule = append(schedule, Fixture{
				MatchID: id,
				Team1:   teams[i],
				Team2:   teams[j],
				Venue:   venues[id%len(venues)].Venue,
				Date:    fmt.Sprintf("2025-08-%02d", 1+id%28),
			})
			id++
		}
	}

	return NewData(ratings, venues, schedule, nil)
}

func TestSimulator_SimulateFixture(t *testing.T) {
	data := leagueData()
	s := NewSimulator(data, rand.New(rand.NewSource(42)))

	fx, err := data.Fixture(1)
	assert.NoError(t, err)

	for i := 0; i < 200; i++ {
		res := s.SimulateFixture(fx)
		assert.Contains(t, []string{fx.Team1, fx.Team2}, res.Winner)
		assert.Contains(t, []string{fx.Team1, fx.Team2}, res.Loser)
		assert.NotEqual(t, res.Winner, res.Loser)
		assert.Equal(t, 100.0, res.WinProb1+res.WinProb2)
		assert.Contains(t, []TossWinner{TossTeamA, TossTeamB}, res.TossWinner)
		assert.Contains(t, []TossDecision{DecisionBat, DecisionBowl}, res.TossDecision)
	}
}

func TestSimulator_SimulateGroupStage(t *testing.T) {
	data := leagueData()
	s := NewSimulator(data, rand.New(rand.NewSource(1)))

	standings, results := s.SimulateGroupStage()

	assert.Len(t, results, 28)
	assert.Len(t, standings, 8)

	var totalWins, totalLosses int
	for _, row := range standings {
		totalWins += row.Wins
		totalLosses += row.Losses
		assert.Equal(t, 7, row.Wins+row.Losses)
		assert.Equal(t, row.Wins*2, row.Points)
	}
	assert.Equal(t, 28, totalWins)
	assert.Equal(t, 28, totalLosses)

	for i := 1; i < len(standings); i++ {
		assert.GreaterOrEqual(t, standings[i-1].Points, standings[i].Points)
	}
}

func TestSimulator_ResolvePlayoffs(t *testing.T) {
	data := leagueData()
	s := NewSimulator(data, rand.New(rand.NewSource(2)))

	standings := []StandingsRow{
		{Team: "T3", Wins: 6, Losses: 1, Points: 12},
		{Team: "T1", Wins: 5, Losses: 2, Points: 10},
		{Team: "T5", Wins: 4, Losses: 3, Points: 8},
		{Team: "T2", Wins: 4, Losses: 3, Points: 8},
		{Team: "T4", Wins: 3, Losses: 4, Points: 6},
		{Team: "T6", Wins: 2, Losses: 5, Points: 4},
		{Team: "T7", Wins: 2, Losses: 5, Points: 4},
		{Team: "T8", Wins: 2, Losses: 5, Points: 4},
	}

	winner, pt := s.ResolvePlayoffs(standings)

	assert.Equal(t, []string{"T3", "T1", "T5"}, pt.Top3)
	assert.Equal(t, []string{"T2", "T4"}, pt.Eliminator)
	assert.Equal(t, []string{"T3", "T1", "T5", "T2"}, pt.Final4)
	// The final is always between the top two seeds.
	assert.Contains(t, []string{"T3", "T1"}, winner)
}

func TestSimulator_ResolvePlayoffs_FourTeams(t *testing.T) {
	data := leagueData()
	s := NewSimulator(data, rand.New(rand.NewSource(3)))

	standings := []StandingsRow{
		{Team: "T1", Points: 8},
		{Team: "T2", Points: 6},
		{Team: "T3", Points: 4},
		{Team: "T4", Points: 2},
	}
	winner, pt := s.ResolvePlayoffs(standings)

	// Ranks 4-5 only exist with five or more teams.
	assert.Equal(t, []string{"T1", "T2", "T3"}, pt.Top3)
	assert.Empty(t, pt.Eliminator)
	assert.Equal(t, []string{"T1", "T2", "T3"}, pt.Final4)
	assert.Contains(t, []string{"T1", "T2"}, winner)
}

func TestSimulator_ResolvePlayoffs_Degenerate(t *testing.T) {
	data := leagueData()
	s := NewSimulator(data, rand.New(rand.NewSource(4)))

	winner, pt := s.ResolvePlayoffs([]StandingsRow{
		{Team: "T2", Points: 4},
		{Team: "T1", Points: 2},
	})
	assert.Equal(t, "T2", winner)
	assert.Equal(t, []string{"T2", "T1"}, pt.Top3)
	assert.Empty(t, pt.Eliminator)

	winner, _ = s.ResolvePlayoffs(nil)
	assert.Equal(t, "T1", winner) // first team in the reference data
}

func TestSimulator_RunSimulations(t *testing.T) {
	data := leagueData()
	s := NewSimulator(data, rand.New(rand.NewSource(99)))

	const n = 50
	agg := s.RunSimulations(n)

	assert.Equal(t, n, agg.Runs)
	assert.Len(t, agg.SampleResults, 28)

	var titles, appearances int
	for _, c := range agg.TitlesWon {
		titles += c
	}
	for _, c := range agg.PlayoffAppearances {
		appearances += c
	}
	assert.Equal(t, n, titles)
	// Three direct qualifiers plus two eliminator candidates per run.
	assert.Equal(t, 5*n, appearances)

	for team, points := range agg.PointsDistribution {
		assert.Len(t, points, n, "team %s", team)
		for _, p := range points {
			assert.GreaterOrEqual(t, p, 0)
			assert.LessOrEqual(t, p, 14)
		}
	}
}

func TestSimulator_RunSimulations_Zero(t *testing.T) {
	data := leagueData()
	s := NewSimulator(data, rand.New(rand.NewSource(5)))

	agg := s.RunSimulations(0)
	assert.Equal(t, 0, agg.Runs)
	assert.Empty(t, agg.TitlesWon)
	assert.Empty(t, agg.PlayoffAppearances)
	assert.Empty(t, agg.SampleResults)
}

func TestSimulator_TossDecisionFollowsVenueLean(t *testing.T) {
	data := leagueData()
	s := NewSimulator(data, rand.New(rand.NewSource(6)))

	// Over many draws the favored call should dominate at leaning
	// venues. 80/20 split leaves lots of slack for a 1000-draw sample.
	batCount := 0
	for i := 0; i < 1000; i++ {
		if s.tossDecision("Ground A") == DecisionBat {
			batCount++
		}
	}
	assert.Greater(t, batCount, 700)
	assert.Less(t, batCount, 900)

	bowlCount := 0
	for i := 0; i < 1000; i++ {
		if s.tossDecision("Ground B") == DecisionBowl {
			bowlCount++
		}
	}
	assert.Greater(t, bowlCount, 700)
	assert.Less(t, bowlCount, 900)
}
