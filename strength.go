package main

import (
	"fmt"
	"math"
	"sort"

	"gorm.io/gorm"

	"github.com/tdowrick/hundred-server/sim"
)

// teamHomeVenues links each franchise to its home ground, whose run
// rate feeds the batting strength formula.
var teamHomeVenues = map[string]string{
	"London Spirit":          "Lord's, London",
	"Oval Invincibles":       "Kennington Oval, London",
	"Manchester Originals":   "Emirates Old Trafford, Manchester",
	"Birmingham Phoenix":     "Edgbaston, Birmingham",
	"Northern Superchargers": "Headingley, Leeds",
	"Southern Brave":         "The Rose Bowl, Southampton",
	"Trent Rockets":          "Trent Bridge, Nottingham",
	"Welsh Fire":             "Sophia Gardens, Cardiff",
}

// updateTeamRatings recomputes every team's batting, bowling and
// overall ratings from the stored squads, player stats and venue stats.
func updateTeamRatings(db *gorm.DB) error {
	var squads []SquadMember
	if err := db.Order("id").Find(&squads).Error; err != nil {
		return err
	}
	if len(squads) == 0 {
		return fmt.Errorf("no squad members loaded; seed the squads first")
	}

	var stats []PlayerStat
	if err := db.Find(&stats).Error; err != nil {
		return err
	}
	// Join player stats to the roster by team+player name.
	statByKey := make(map[string]PlayerStat, len(stats))
	for _, ps := range stats {
		statByKey[ps.Team+"|"+ps.Player] = ps
	}

	var venues []VenueStat
	if err := db.Find(&venues).Error; err != nil {
		return err
	}
	venueByName := make(map[string]VenueStat, len(venues))
	for _, v := range venues {
		venueByName[v.Venue] = v
	}

	var teams []string
	seen := make(map[string]bool)
	squadStats := make(map[string][]PlayerStat)
	for _, m := range squads {
		if !seen[m.Team] {
			seen[m.Team] = true
			teams = append(teams, m.Team)
		}
		ps, ok := statByKey[m.Team+"|"+m.Player]
		if !ok {
			continue
		}
		ps.Role = m.Role
		squadStats[m.Team] = append(squadStats[m.Team], ps)
	}

	rows := make([]*TeamRating, 0, len(teams))
	for _, team := range teams {
		bat := battingStrength(squadStats[team], homeRunRate(team, venueByName))
		bowl := bowlingStrength(squadStats[team])
		// Overall slightly favors batting, as short-format results do.
		overall := round1(bat*0.55 + bowl*0.45)
		rows = append(rows, &TeamRating{
			Team:          team,
			BatRating:     bat,
			BowlRating:    bowl,
			OverallRating: overall,
		})
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&TeamRating{}).Error; err != nil {
			return err
		}
		return tx.Create(&rows).Error
	})
}

func homeRunRate(team string, venues map[string]VenueStat) float64 {
	if v, ok := venues[teamHomeVenues[team]]; ok {
		return v.RunRate
	}
	return 8.5
}

// battingStrength averages the top five first-innings batting averages
// of players who can bat, scaled by the home ground's run rate and a
// capped strike-rate factor.
func battingStrength(players []PlayerStat, runRate float64) float64 {
	batters := make([]PlayerStat, 0, len(players))
	for _, p := range players {
		if sim.Role(p.Role).CanBat() && p.BatAvgFirst > 0 {
			batters = append(batters, p)
		}
	}
	if len(batters) == 0 {
		return 50.0
	}

	sort.SliceStable(batters, func(i, j int) bool {
		return batters[i].BatAvgFirst > batters[j].BatAvgFirst
	})
	if len(batters) > 5 {
		batters = batters[:5]
	}

	var sumAvg, sumSR float64
	for _, p := range batters {
		sumAvg += p.BatAvgFirst
		sumSR += p.BatSRFirst
	}
	avgBatting := sumAvg / float64(len(batters))
	avgStrikeRate := sumSR / float64(len(batters))

	strength := avgBatting * (runRate / 10)
	strength *= math.Min(avgStrikeRate/130, 1.2)

	return round1(strength)
}

// bowlingStrength scores the five most economical bowlers; lower
// economy and lower bowling average both raise the rating.
func bowlingStrength(players []PlayerStat) float64 {
	bowlers := make([]PlayerStat, 0, len(players))
	for _, p := range players {
		if sim.Role(p.Role).CanBowl() && p.BowlEconFirst > 0 {
			bowlers = append(bowlers, p)
		}
	}
	if len(bowlers) == 0 {
		return 50.0
	}

	sort.SliceStable(bowlers, func(i, j int) bool {
		return bowlers[i].BowlEconFirst < bowlers[j].BowlEconFirst
	})
	if len(bowlers) > 5 {
		bowlers = bowlers[:5]
	}

	var sumEcon, sumAvg float64
	for _, p := range bowlers {
		sumEcon += p.BowlEconFirst
		sumAvg += p.BowlAvgFirst
	}
	avgEconomy := sumEcon / float64(len(bowlers))
	avgBowlingAvg := sumAvg / float64(len(bowlers))

	strength := (10 - avgEconomy) * 2
	strength *= math.Max(1.0, (30-avgBowlingAvg)/30)
	strength = math.Max(strength, 10.0)

	return round1(strength)
}
