package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func Test_battingStrength(t *testing.T) {
	players := []PlayerStat{
		{Player: "A", Role: "Batter", BatAvgFirst: 40, BatSRFirst: 130},
		{Player: "B", Role: "Batter", BatAvgFirst: 30, BatSRFirst: 130},
		{Player: "C", Role: "Bowler", BowlEconFirst: 8, BowlAvgFirst: 24},
	}

	// (40+30)/2 * (8.5/10) * min(130/130, 1.2) = 29.75 -> 29.8
	assert.Equal(t, 29.8, battingStrength(players, 8.5))

	// No usable batters falls back to the neutral 50.
	assert.Equal(t, 50.0, battingStrength(players[2:], 8.5))
	assert.Equal(t, 50.0, battingStrength(nil, 8.5))
}

func Test_battingStrength_TopFiveOnly(t *testing.T) {
	players := make([]PlayerStat, 0, 7)
	for i := 0; i < 7; i++ {
		players = append(players, PlayerStat{
			Player: string(rune('A' + i)), Role: "Batter",
			BatAvgFirst: 20 + float64(i)*2, BatSRFirst: 130,
		})
	}
	// Top five by average are 24..32, mean 28; a weak sixth and seventh
	// batter must not drag the rating down.
	assert.Equal(t, round1(28*0.85), battingStrength(players, 8.5))
}

func Test_bowlingStrength(t *testing.T) {
	strong := []PlayerStat{
		{Player: "A", Role: "Bowler", BowlEconFirst: 6.0, BowlAvgFirst: 18},
		{Player: "B", Role: "Bowler", BowlEconFirst: 6.4, BowlAvgFirst: 20},
	}
	// avg econ 6.2, avg bowling avg 19:
	// (10-6.2)*2 * max(1, (30-19)/30) = 7.6 -> floored to 10.0
	assert.Equal(t, 10.0, bowlingStrength(strong))

	elite := []PlayerStat{
		{Player: "A", Role: "Bowler", BowlEconFirst: 3.0, BowlAvgFirst: 12},
	}
	// (10-3)*2 = 14, avg factor max(1, 18/30) = 1 -> 14.0
	assert.Equal(t, 14.0, bowlingStrength(elite))

	assert.Equal(t, 50.0, bowlingStrength(nil))
}

func Test_updateTeamRatings(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, applyMigrations(db))

	// Empty squads table is an error, not a silent no-op.
	err = updateTeamRatings(db)
	assert.Error(t, err)

	squads := []SquadMember{
		{Team: "London Spirit", Player: "Opener", Role: "Batter"},
		{Team: "London Spirit", Player: "Quick", Role: "Bowler"},
		{Team: "Welsh Fire", Player: "Finisher", Role: "Batter"},
		{Team: "Welsh Fire", Player: "Spinner", Role: "Bowler"},
	}
	assert.NoError(t, db.Create(&squads).Error)

	stats := []PlayerStat{
		{Team: "London Spirit", Player: "Opener", Role: "Batter", BatAvgFirst: 40, BatSRFirst: 130},
		{Team: "London Spirit", Player: "Quick", Role: "Bowler", BowlEconFirst: 7.0, BowlAvgFirst: 20},
		{Team: "Welsh Fire", Player: "Finisher", Role: "Batter", BatAvgFirst: 25, BatSRFirst: 120},
		{Team: "Welsh Fire", Player: "Spinner", Role: "Bowler", BowlEconFirst: 9.0, BowlAvgFirst: 30},
	}
	assert.NoError(t, db.Create(&stats).Error)

	venues := []VenueStat{
		{Venue: "Lord's, London", WinPctBatFirst: 45, WinPctBowlFirst: 55, AvgFirstInningsScore: 148, RunRate: 8.0},
		{Venue: "Sophia Gardens, Cardiff", WinPctBatFirst: 46, WinPctBowlFirst: 54, AvgFirstInningsScore: 147, RunRate: 9.0},
	}
	assert.NoError(t, db.Create(&venues).Error)

	assert.NoError(t, updateTeamRatings(db))

	var ratings []TeamRating
	assert.NoError(t, db.Order("team").Find(&ratings).Error)
	assert.Len(t, ratings, 2)

	spirit := ratings[0]
	assert.Equal(t, "London Spirit", spirit.Team)
	// 40 * (8.0/10) * min(130/130, 1.2) = 32.0
	assert.Equal(t, 32.0, spirit.BatRating)
	// (10-7)*2 = 6 -> floored to 10
	assert.Equal(t, 10.0, spirit.BowlRating)
	assert.Equal(t, round1(32.0*0.55+10.0*0.45), spirit.OverallRating)

	fire := ratings[1]
	assert.Equal(t, "Welsh Fire", fire.Team)
	// 25 * (9.0/10) * min(120/130, 1.2) = 20.769... -> 20.8
	assert.Equal(t, 20.8, fire.BatRating)
	assert.Greater(t, spirit.OverallRating, fire.OverallRating)

	// A second run replaces rather than appends.
	assert.NoError(t, updateTeamRatings(db))
	var count int64
	assert.NoError(t, db.Model(&TeamRating{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}
