package sim

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
)

// TossWinner identifies which schedule slot won the toss.
type TossWinner string

const (
	TossTeamA TossWinner = "Team A"
	TossTeamB TossWinner = "Team B"
)

// TossDecision is what the toss winner elected to do.
type TossDecision string

const (
	DecisionBat  TossDecision = "Bat"
	DecisionBowl TossDecision = "Bowl"
)

// Full bonus for winning the toss and choosing the venue-favored
// strategy; a suboptimal choice earns half.
const tossAdvantage = 15.0

// Probabilities are always clamped into this band, so no match is ever
// reported outside a 15/85 split regardless of rating gap or toss.
const (
	minWinProb = 15.0
	maxWinProb = 85.0
)

// HeadToHead is a synthetic historical record derived from the overall
// rating gap. It is generated fresh for every query and never cached.
type HeadToHead struct {
	TotalMatches int
	Team1Wins    int
	Team2Wins    int
	Team1WinPct  float64
	Team2WinPct  float64
}

// Prediction is the output of the win-probability model. WinProb1 and
// WinProb2 always sum to exactly 100. BatEdge1/BatEdge2 are the
// venue-adjusted batting-vs-bowling edges; they do not feed the final
// probability and are reported for inspection only.
type Prediction struct {
	MatchID       int          `json:"matchId"`
	Team1         string       `json:"team1"`
	Team2         string       `json:"team2"`
	Venue         string       `json:"venue"`
	WinProb1      float64      `json:"winProbTeam1"`
	WinProb2      float64      `json:"winProbTeam2"`
	BatEdge1      float64      `json:"batEdgeTeam1"`
	BatEdge2      float64      `json:"batEdgeTeam2"`
	KeyFactor     string       `json:"keyFactor"`
	VenueImpact   string       `json:"venueImpact"`
	HeadToHead    string       `json:"headToHead"`
	TossImpact    string       `json:"tossImpact"`
	PlayerToWatch string       `json:"playerToWatch"`
	TossWinner    TossWinner   `json:"tossWinner"`
	TossDecision  TossDecision `json:"tossDecision"`
}

// Analyzer computes per-match win probabilities from the reference data.
type Analyzer struct {
	data *Data
	rng  *rand.Rand
}

func NewAnalyzer(data *Data, rng *rand.Rand) *Analyzer {
	return &Analyzer{data: data, rng: rng}
}

// Predict resolves matchID against the schedule and runs the model.
// Returns *NotFoundError if the match ID is not scheduled.
func (a *Analyzer) Predict(matchID int, tossWinner TossWinner, decision TossDecision) (*Prediction, error) {
	fx, err := a.data.Fixture(matchID)
	if err != nil {
		return nil, err
	}
	return a.PredictFixture(fx, tossWinner, decision), nil
}

// PredictFixture runs the model on a fixture value directly, without a
// schedule lookup. The playoff final uses this with a synthetic fixture.
func (a *Analyzer) PredictFixture(fx Fixture, tossWinner TossWinner, decision TossDecision) *Prediction {
	r1 := a.data.Rating(fx.Team1)
	r2 := a.data.Rating(fx.Team2)
	venue := a.data.Venue(fx.Venue)
	h2h := a.headToHead(fx.Team1, fx.Team2)

	// Raw batting-vs-bowling edges. The +20 floor stops the ratio
	// blowing up against very weak bowling attacks.
	edge1 := r1.Batting / (r2.Bowling + 20) * 100
	edge2 := r2.Batting / (r1.Bowling + 20) * 100

	// Scale edges by whichever strategy the venue historically rewards.
	if venue.BatFirstWinPct > 50 {
		edge1 *= venue.BatFirstWinPct / 50
		edge2 *= venue.BatFirstWinPct / 50
	} else {
		edge1 *= venue.BowlFirstWinPct / 50
		edge2 *= venue.BowlFirstWinPct / 50
	}

	// Base probability from the overall rating gap.
	prob1 := 50 + (r1.Overall-r2.Overall)*1.5
	prob2 := 100 - prob1

	// Blend in the synthetic head-to-head record at 10% weight.
	const h2hWeight = 0.1
	prob1 = prob1*(1-h2hWeight) + h2h.Team1WinPct*h2hWeight
	prob2 = 100 - prob1

	// Toss bonus: full for the venue-favored call, half otherwise.
	bonus := tossAdvantage * 0.5
	if decision == DecisionBat && venue.BatFirstWinPct > 50 {
		bonus = tossAdvantage
	} else if decision == DecisionBowl && venue.BowlFirstWinPct > 50 {
		bonus = tossAdvantage
	}
	if tossWinner == TossTeamA {
		prob1 += bonus
	} else {
		prob2 += bonus
	}

	// Renormalize to 100, then clamp into the [15,85] band. The toss
	// bonus always leaves the pair summing to 100 + bonus, so the guard
	// fires on every call.
	if total := prob1 + prob2; total != 100 {
		prob1 = prob1 / total * 100
	}
	prob1 = math.Max(minWinProb, math.Min(maxWinProb, prob1))
	prob1 = math.Round(prob1*10) / 10
	prob2 = 100 - prob1

	return &Prediction{
		MatchID:       fx.MatchID,
		Team1:         fx.Team1,
		Team2:         fx.Team2,
		Venue:         fx.Venue,
		WinProb1:      prob1,
		WinProb2:      prob2,
		BatEdge1:      edge1,
		BatEdge2:      edge2,
		KeyFactor:     keyFactor(fx.Team1, fx.Team2, r1, r2, venue),
		VenueImpact:   fmt.Sprintf("Bat first: %.0f%%, Bowl first: %.0f%%", venue.BatFirstWinPct, venue.BowlFirstWinPct),
		HeadToHead:    fmt.Sprintf("%s %d-%d %s", fx.Team1, h2h.Team1Wins, h2h.Team2Wins, fx.Team2),
		TossImpact:    fmt.Sprintf("Toss won by %s, chose to %s", tossWinner, strings.ToLower(string(decision))),
		PlayerToWatch: fmt.Sprintf("%s: %s; %s: %s", fx.Team1, a.playerToWatch(fx.Team1), fx.Team2, a.playerToWatch(fx.Team2)),
		TossWinner:    tossWinner,
		TossDecision:  decision,
	}
}

// headToHead synthesizes a historical record from the overall rating
// gap. Total matches are drawn in [8,15]; repeated calls for the same
// pair yield different histories unless the random stream is pinned.
func (a *Analyzer) headToHead(team1, team2 string) HeadToHead {
	o1 := a.data.Rating(team1).Overall
	o2 := a.data.Rating(team2).Overall

	total := 8 + a.rng.Intn(8)
	wins1 := int(float64(total) * (0.5 + (o1-o2)/100))
	if wins1 < 0 {
		wins1 = 0
	} else if wins1 > total {
		wins1 = total
	}
	wins2 := total - wins1

	return HeadToHead{
		TotalMatches: total,
		Team1Wins:    wins1,
		Team2Wins:    wins2,
		Team1WinPct:  float64(wins1) / float64(total) * 100,
		Team2WinPct:  float64(wins2) / float64(total) * 100,
	}
}

// playerToWatch picks the team's best first-innings batter by average,
// falling back to the most economical bowler. An empty pool reports
// unavailable rather than failing.
func (a *Analyzer) playerToWatch(team string) string {
	players := a.data.TeamPlayers(team)

	bat := -1
	for i, p := range players {
		if !p.Role.CanBat() || p.BatAvgFirst <= 0 {
			continue
		}
		if bat < 0 || p.BatAvgFirst > players[bat].BatAvgFirst {
			bat = i
		}
	}
	if bat >= 0 {
		p := players[bat]
		return fmt.Sprintf("%s (avg %.1f, SR %.1f)", p.Player, p.BatAvgFirst, p.BatSRFirst)
	}

	bowl := -1
	for i, p := range players {
		if !p.Role.CanBowl() || p.BowlEcon <= 0 {
			continue
		}
		if bowl < 0 || p.BowlEcon < players[bowl].BowlEcon {
			bowl = i
		}
	}
	if bowl >= 0 {
		p := players[bowl]
		return fmt.Sprintf("%s (economy %.1f)", p.Player, p.BowlEcon)
	}
	return "Key player stats unavailable"
}

func keyFactor(team1, team2 string, r1, r2 TeamRating, venue VenueProfile) string {
	var factors []string
	if venue.BatFirstWinPct > 55 {
		factors = append(factors, "Venue favors batting first teams")
	} else if venue.BowlFirstWinPct > 55 {
		factors = append(factors, "Venue favors chasing teams")
	}
	if math.Abs(r1.Overall-r2.Overall) > 3 {
		stronger := team1
		if r2.Overall > r1.Overall {
			stronger = team2
		}
		factors = append(factors, fmt.Sprintf("%s has higher overall rating", stronger))
	}
	if len(factors) == 0 {
		factors = append(factors, "Evenly matched teams")
	}
	return strings.Join(factors, "; ")
}
