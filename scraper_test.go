package main

import (
	"math/rand"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tdowrick/hundred-server/sim"
)

func Test_scrapeVenueStats(t *testing.T) {
	htmlContent, err := os.ReadFile(filepath.Join("testdata", "venue-stats.html"))
	assert.NoError(t, err)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(htmlContent)
	}))
	defer server.Close()

	vs, err := scrapeVenueStats(server.URL, "Lord's, London")
	assert.NoError(t, err)

	assert.Equal(t, "Lord's, London", vs.Venue)
	assert.Equal(t, 40, vs.MatchesPlayed)
	assert.Equal(t, 55.0, vs.WinPctBatFirst)
	assert.Equal(t, 45.0, vs.WinPctBowlFirst)
	assert.Equal(t, 156.3, vs.AvgFirstInningsScore)
	assert.Equal(t, 8.7, vs.RunRate)
}

func Test_updateVenueStats_FallsBackToEstimates(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, applyMigrations(db))

	// Every page 404s, so every venue must come from the estimate table.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	assert.NoError(t, updateVenueStats(db, server.URL))

	var venues []*VenueStat
	assert.NoError(t, db.Find(&venues).Error)
	assert.Len(t, venues, len(hundredVenues))

	byName := make(map[string]*VenueStat)
	for _, v := range venues {
		byName[v.Venue] = v
	}
	lords := byName["Lord's, London"]
	assert.NotNil(t, lords)
	assert.Equal(t, 45.0, lords.WinPctBatFirst)
	assert.Equal(t, 55.0, lords.WinPctBowlFirst)
	assert.Equal(t, 148.0, lords.AvgFirstInningsScore)
	assert.Equal(t, 8.2, lords.RunRate)
}

func Test_scrapePlayerStats(t *testing.T) {
	searchHTML, err := os.ReadFile(filepath.Join("testdata", "player-search.html"))
	assert.NoError(t, err)
	profileHTML, err := os.ReadFile(filepath.Join("testdata", "player-profile.html"))
	assert.NoError(t, err)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/search"):
			w.Write(searchHTML)
		case strings.HasPrefix(r.URL.Path, "/cricketers/"):
			w.Write(profileHTML)
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	ps := &PlayerStat{Player: "Joe Root", Role: "Batter"}
	scrapePlayerStats(server.URL, "Joe Root", sim.RoleBatter, ps)

	// The Hundred row of the career table, not the T20I row.
	assert.Equal(t, 38.2, ps.BatAvgFirst)
	assert.Equal(t, 131.5, ps.BatSRFirst)
	assert.Equal(t, 38.2, ps.BatAvgSecond)
	assert.Equal(t, 131.5, ps.BatSRSecond)

	// A pure batter keeps zero bowling numbers even though the profile
	// table carries them.
	assert.Equal(t, 0.0, ps.BowlEconFirst)
	assert.Equal(t, 0.0, ps.BowlAvgFirst)
}

func Test_scrapePlayerStats_MissingProfileKeepsEstimates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	ps := &PlayerStat{Player: "Unknown Player", Role: "Batter", BatAvgFirst: 27.5, BatSRFirst: 128.0}
	scrapePlayerStats(server.URL, "Unknown Player", sim.RoleBatter, ps)

	assert.Equal(t, 27.5, ps.BatAvgFirst)
	assert.Equal(t, 128.0, ps.BatSRFirst)
}

func Test_updatePlayerStats_Estimates(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, applyMigrations(db))

	rng := rand.New(rand.NewSource(42))

	// Empty squads table is an error.
	assert.Error(t, updatePlayerStats(db, "", rng))

	squads := []SquadMember{
		{Team: "Trent Rockets", Player: "Joe Root", Role: "Batter"},
		{Team: "Trent Rockets", Player: "Sam Cook", Role: "Bowler"},
		{Team: "Trent Rockets", Player: "Adam Hose", Role: "All-rounder"},
	}
	assert.NoError(t, db.Create(&squads).Error)

	assert.NoError(t, updatePlayerStats(db, "", rng))

	var stats []*PlayerStat
	assert.NoError(t, db.Order("player").Find(&stats).Error)
	assert.Len(t, stats, 3)

	byName := make(map[string]*PlayerStat)
	for _, ps := range stats {
		byName[ps.Player] = ps
	}

	// Star batter band is 28-42 average before the innings variation.
	root := byName["Joe Root"]
	assert.Equal(t, "Trent Rockets", root.Team)
	assert.GreaterOrEqual(t, root.BatAvgFirst, 28*0.85)
	assert.LessOrEqual(t, root.BatAvgFirst, 42*1.15)
	assert.Equal(t, 0.0, root.BowlEconFirst)

	cook := byName["Sam Cook"]
	assert.Equal(t, 0.0, cook.BatAvgFirst)
	assert.GreaterOrEqual(t, cook.BowlEconFirst, 7.8*0.9)
	assert.LessOrEqual(t, cook.BowlEconFirst, 9.5*1.1)

	// All-rounders get both sets of numbers.
	hose := byName["Adam Hose"]
	assert.Greater(t, hose.BatAvgFirst, 0.0)
	assert.Greater(t, hose.BowlEconFirst, 0.0)

	// A refresh replaces the table instead of appending.
	assert.NoError(t, updatePlayerStats(db, "", rng))
	var count int64
	assert.NoError(t, db.Model(&PlayerStat{}).Count(&count).Error)
	assert.Equal(t, int64(3), count)
}
