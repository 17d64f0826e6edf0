package sim

import (
	"math/rand"
	"sort"
)

// The final is played at a fixed neutral venue under a synthetic match
// ID so it never collides with a scheduled fixture.
const (
	finalMatchID = 999
	finalVenue   = "Lord's, London"
)

// MatchResult is one simulated outcome of a fixture.
type MatchResult struct {
	MatchID      int          `json:"matchId"`
	Team1        string       `json:"team1"`
	Team2        string       `json:"team2"`
	Venue        string       `json:"venue"`
	Winner       string       `json:"winner"`
	Loser        string       `json:"loser"`
	WinProb1     float64      `json:"winProbTeam1"`
	WinProb2     float64      `json:"winProbTeam2"`
	TossWinner   TossWinner   `json:"tossWinner"`
	TossDecision TossDecision `json:"tossDecision"`
}

// StandingsRow is one team's group-stage record. Points are always
// 2 x wins; there are no draws or abandonments.
type StandingsRow struct {
	Team   string `json:"team"`
	Wins   int    `json:"wins"`
	Losses int    `json:"losses"`
	Points int    `json:"points"`
}

// PlayoffTeams holds the qualification sets for one simulated season.
// Ranks 4-5 are eliminator candidates; they count as playoff
// appearances even though no eliminator match is simulated.
type PlayoffTeams struct {
	Top3       []string `json:"top3"`
	Eliminator []string `json:"eliminator"`
	Final4     []string `json:"final4"`
}

// RunResult is one full tournament playthrough.
type RunResult struct {
	Winner       string
	Standings    []StandingsRow
	Playoffs     PlayoffTeams
	MatchResults []MatchResult
}

// Aggregate accumulates outcome counts across Monte Carlo runs. Only
// the first run's match results are retained, as a representative
// sample for crucial-match extraction.
type Aggregate struct {
	Runs               int
	TitlesWon          map[string]int
	PlayoffAppearances map[string]int
	PointsDistribution map[string][]int
	SampleResults      []MatchResult
}

// Simulator plays out fixtures and whole tournaments. It is not safe
// for concurrent use; run parallel simulations with one Simulator and
// one random stream per worker.
type Simulator struct {
	data     *Data
	analyzer *Analyzer
	rng      *rand.Rand
}

func NewSimulator(data *Data, rng *rand.Rand) *Simulator {
	return &Simulator{
		data:     data,
		analyzer: NewAnalyzer(data, rng),
		rng:      rng,
	}
}

// tossDecision draws the toss winner's call. At venues with a clear
// historical lean the favored call is taken 80% of the time; balanced
// venues are a coin flip.
func (s *Simulator) tossDecision(venue string) TossDecision {
	v := s.data.Venue(venue)
	switch {
	case v.BatFirstWinPct > 52:
		if s.rng.Float64() > 0.2 {
			return DecisionBat
		}
		return DecisionBowl
	case v.BatFirstWinPct < 48:
		if s.rng.Float64() > 0.2 {
			return DecisionBowl
		}
		return DecisionBat
	default:
		if s.rng.Intn(2) == 0 {
			return DecisionBat
		}
		return DecisionBowl
	}
}

// SimulateFixture plays one match: draws the toss winner uniformly,
// draws the decision, runs the probability model, then samples the
// winner against team1's probability.
func (s *Simulator) SimulateFixture(fx Fixture) MatchResult {
	tossWinner := TossTeamA
	if s.rng.Intn(2) == 1 {
		tossWinner = TossTeamB
	}
	decision := s.tossDecision(fx.Venue)

	pred := s.analyzer.PredictFixture(fx, tossWinner, decision)

	winner, loser := fx.Team2, fx.Team1
	if s.rng.Float64() < pred.WinProb1/100 {
		winner, loser = fx.Team1, fx.Team2
	}

	return MatchResult{
		MatchID:      fx.MatchID,
		Team1:        fx.Team1,
		Team2:        fx.Team2,
		Venue:        fx.Venue,
		Winner:       winner,
		Loser:        loser,
		WinProb1:     pred.WinProb1,
		WinProb2:     pred.WinProb2,
		TossWinner:   tossWinner,
		TossDecision: decision,
	}
}

// SimulateGroupStage plays every scheduled fixture exactly once, in
// schedule order, and returns the standings sorted by points.
func (s *Simulator) SimulateGroupStage() ([]StandingsRow, []MatchResult) {
	order := s.data.Teams()
	index := make(map[string]int, len(order))
	rows := make([]*StandingsRow, 0, len(order))
	for _, team := range order {
		index[team] = len(rows)
		rows = append(rows, &StandingsRow{Team: team})
	}
	row := func(team string) *StandingsRow {
		if i, ok := index[team]; ok {
			return rows[i]
		}
		// Scheduled team missing from the ratings data; track it anyway.
		index[team] = len(rows)
		rows = append(rows, &StandingsRow{Team: team})
		return rows[len(rows)-1]
	}

	results := make([]MatchResult, 0, len(s.data.schedule))
	for _, fx := range s.data.Schedule() {
		res := s.SimulateFixture(fx)
		results = append(results, res)

		w := row(res.Winner)
		w.Wins++
		w.Points += 2
		row(res.Loser).Losses++
	}

	standings := make([]StandingsRow, len(rows))
	for i, r := range rows {
		standings[i] = *r
	}
	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].Points > standings[j].Points
	})
	return standings, results
}

// ResolvePlayoffs ranks the standings, qualifies the top 3 directly,
// marks ranks 4-5 as eliminator candidates, and simulates a final
// between the top two. Points is the sole ranking key; ties keep the
// stable sort order. With fewer than 3 teams the top-ranked team is
// declared champion without a final.
func (s *Simulator) ResolvePlayoffs(standings []StandingsRow) (string, PlayoffTeams) {
	ranked := make([]StandingsRow, len(standings))
	copy(ranked, standings)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Points > ranked[j].Points
	})

	var pt PlayoffTeams
	for i, r := range ranked {
		if i >= 3 {
			break
		}
		pt.Top3 = append(pt.Top3, r.Team)
	}
	// Ranks 4-5 only qualify as eliminator candidates when the table
	// actually has five teams.
	if len(ranked) >= 5 {
		pt.Eliminator = []string{ranked[3].Team, ranked[4].Team}
	}
	pt.Final4 = append(pt.Final4, pt.Top3...)
	if len(pt.Eliminator) > 0 {
		pt.Final4 = append(pt.Final4, pt.Eliminator[0])
	}

	if len(pt.Top3) < 3 {
		if len(pt.Top3) > 0 {
			return pt.Top3[0], pt
		}
		if teams := s.data.Teams(); len(teams) > 0 {
			return teams[0], pt
		}
		return "", pt
	}

	final := Fixture{
		MatchID: finalMatchID,
		Team1:   pt.Top3[0],
		Team2:   pt.Top3[1],
		Venue:   finalVenue,
	}
	return s.SimulateFixture(final).Winner, pt
}

// Run plays one full tournament: group stage plus playoff resolution.
func (s *Simulator) Run() RunResult {
	standings, results := s.SimulateGroupStage()
	winner, playoffs := s.ResolvePlayoffs(standings)
	return RunResult{
		Winner:       winner,
		Standings:    standings,
		Playoffs:     playoffs,
		MatchResults: results,
	}
}

// RunSimulations repeats Run n times and aggregates winner frequency,
// playoff appearances and points distributions. Runs are independent;
// a partial aggregate normalized by the completed run count is valid.
func (s *Simulator) RunSimulations(n int) *Aggregate {
	agg := &Aggregate{
		Runs:               n,
		TitlesWon:          make(map[string]int),
		PlayoffAppearances: make(map[string]int),
		PointsDistribution: make(map[string][]int),
	}

	for i := 0; i < n; i++ {
		run := s.Run()

		if run.Winner != "" {
			agg.TitlesWon[run.Winner]++
		}
		for _, team := range run.Playoffs.Top3 {
			agg.PlayoffAppearances[team]++
		}
		for _, team := range run.Playoffs.Eliminator {
			agg.PlayoffAppearances[team]++
		}
		for _, row := range run.Standings {
			agg.PointsDistribution[row.Team] = append(agg.PointsDistribution[row.Team], row.Points)
		}
		if i == 0 {
			agg.SampleResults = run.MatchResults
		}
	}
	return agg
}
