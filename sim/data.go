// Package sim implements the win-probability model and the Monte Carlo
// tournament engine for The Hundred. All reference data is loaded once
// into a read-only Data value; every random draw comes from a caller
// supplied *rand.Rand so runs can be seeded for reproducibility.
package sim

import (
	"fmt"
	"sort"
)

// Role is the closed set of player roles used across the squad data.
type Role string

const (
	RoleBatter     Role = "Batter"
	RoleBowler     Role = "Bowler"
	RoleAllRounder Role = "All-rounder"
)

// CanBat reports whether players with this role contribute batting stats.
func (r Role) CanBat() bool {
	return r == RoleBatter || r == RoleAllRounder
}

// CanBowl reports whether players with this role contribute bowling stats.
func (r Role) CanBowl() bool {
	return r == RoleBowler || r == RoleAllRounder
}

// TeamRating holds a team's precomputed strength scores.
type TeamRating struct {
	Team    string  `json:"team"`
	Batting float64 `json:"batting"`
	Bowling float64 `json:"bowling"`
	Overall float64 `json:"overall"`
}

// VenueProfile holds historical venue characteristics. The two win
// percentages are independent observations and need not sum to 100.
type VenueProfile struct {
	Venue           string  `json:"venue"`
	BatFirstWinPct  float64 `json:"batFirstWinPct"`
	BowlFirstWinPct float64 `json:"bowlFirstWinPct"`
	AvgFirstInnings float64 `json:"avgFirstInnings"`
	RunRate         float64 `json:"runRate"`
}

// Fixture is one scheduled match. Team1/Team2 are the toss slots
// ("Team A"/"Team B"), not home/away.
type Fixture struct {
	MatchID int    `json:"matchId"`
	Team1   string `json:"team1"`
	Team2   string `json:"team2"`
	Venue   string `json:"venue"`
	Date    string `json:"date"`
	Time    string `json:"time"`
}

// PlayerStat is a roster-joined first-innings performance record.
type PlayerStat struct {
	Team        string
	Player      string
	Role        Role
	BatAvgFirst float64
	BatSRFirst  float64
	BowlEcon    float64
	BowlAvg     float64
}

// Neutral fallbacks used when a team or venue is missing from the
// reference data. Missing data is never fatal.
var (
	neutralRating = TeamRating{Batting: 50, Bowling: 50, Overall: 50}
	neutralVenue  = VenueProfile{
		BatFirstWinPct:  50,
		BowlFirstWinPct: 50,
		AvgFirstInnings: 150,
		RunRate:         8.5,
	}
)

// NotFoundError is returned when a match ID is absent from the schedule.
type NotFoundError struct {
	MatchID int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("match ID %d not found", e.MatchID)
}

// Data is the read-only reference dataset the engine runs against.
type Data struct {
	teams       []string
	ratings     map[string]TeamRating
	venues      map[string]VenueProfile
	schedule    []Fixture
	fixtureByID map[int]Fixture
	players     map[string][]PlayerStat
}

// NewData builds the lookup tables. The order of ratings determines the
// canonical team order used for tie-breaking in standings and analysis.
func NewData(ratings []TeamRating, venues []VenueProfile, schedule []Fixture, players []PlayerStat) *Data {
	d := &Data{
		ratings:     make(map[string]TeamRating, len(ratings)),
		venues:      make(map[string]VenueProfile, len(venues)),
		schedule:    make([]Fixture, len(schedule)),
		fixtureByID: make(map[int]Fixture, len(schedule)),
		players:     make(map[string][]PlayerStat),
	}
	for _, r := range ratings {
		if _, ok := d.ratings[r.Team]; ok {
			continue
		}
		d.ratings[r.Team] = r
		d.teams = append(d.teams, r.Team)
	}
	for _, v := range venues {
		d.venues[v.Venue] = v
	}
	copy(d.schedule, schedule)
	for _, fx := range schedule {
		d.fixtureByID[fx.MatchID] = fx
	}
	for _, p := range players {
		d.players[p.Team] = append(d.players[p.Team], p)
	}
	return d
}

// Teams returns the known teams in input order.
func (d *Data) Teams() []string {
	out := make([]string, len(d.teams))
	copy(out, d.teams)
	return out
}

// Rating returns a team's rating, or the neutral 50/50/50 fallback.
func (d *Data) Rating(team string) TeamRating {
	if r, ok := d.ratings[team]; ok {
		return r
	}
	r := neutralRating
	r.Team = team
	return r
}

// Venue returns a venue profile, or the neutral fallback.
func (d *Data) Venue(name string) VenueProfile {
	if v, ok := d.venues[name]; ok {
		return v
	}
	v := neutralVenue
	v.Venue = name
	return v
}

// Fixture resolves a match ID against the schedule.
func (d *Data) Fixture(matchID int) (Fixture, error) {
	fx, ok := d.fixtureByID[matchID]
	if !ok {
		return Fixture{}, &NotFoundError{MatchID: matchID}
	}
	return fx, nil
}

// Schedule returns all fixtures in schedule order.
func (d *Data) Schedule() []Fixture {
	out := make([]Fixture, len(d.schedule))
	copy(out, d.schedule)
	return out
}

// TeamPlayers returns the performance records for one team's squad.
func (d *Data) TeamPlayers(team string) []PlayerStat {
	return d.players[team]
}

// TopRatedTeams returns up to n team names sorted by overall rating,
// highest first. Ties keep input order.
func (d *Data) TopRatedTeams(n int) []string {
	teams := d.Teams()
	sort.SliceStable(teams, func(i, j int) bool {
		return d.Rating(teams[i]).Overall > d.Rating(teams[j]).Overall
	})
	if n < len(teams) {
		teams = teams[:n]
	}
	return teams
}
