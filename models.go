package main

import (
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Credentials struct {
	Username string `json:"username" gorm:"index"`
	Password string `json:"password"`
}

type PWChangeRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type DBCredentials struct {
	gorm.Model
	Username     string
	PasswordHash string
}

// ScheduleMatch is one fixture of the group stage. Team1/Team2 are the
// toss slots ("Team A"/"Team B"), not home/away.
type ScheduleMatch struct {
	gorm.Model
	MatchID int            `json:"matchId" gorm:"uniqueIndex"`
	Date    datatypes.Date `json:"date"`
	Time    string         `json:"time"`
	Team1   string         `json:"team1"`
	Team2   string         `json:"team2"`
	Venue   string         `json:"venue"`
}

type SquadMember struct {
	gorm.Model
	Team   string `json:"team" gorm:"index"`
	Player string `json:"player"`
	Role   string `json:"role"`
}

// PlayerStat holds first- and second-innings performance splits for one
// squad member. Zero values mean the player has no record in that
// discipline.
type PlayerStat struct {
	gorm.Model
	Team           string  `json:"team" gorm:"index"`
	Player         string  `json:"player"`
	Role           string  `json:"role"`
	BatAvgFirst    float64 `json:"batAvgFirst"`
	BatSRFirst     float64 `json:"batSrFirst"`
	BatAvgSecond   float64 `json:"batAvgSecond"`
	BatSRSecond    float64 `json:"batSrSecond"`
	BowlEconFirst  float64 `json:"bowlEconFirst"`
	BowlAvgFirst   float64 `json:"bowlAvgFirst"`
	BowlEconSecond float64 `json:"bowlEconSecond"`
	BowlAvgSecond  float64 `json:"bowlAvgSecond"`
}

// VenueStat holds historical venue characteristics. The two win
// percentages are separate observations and need not sum to 100.
type VenueStat struct {
	gorm.Model
	Venue                string  `json:"venue" gorm:"uniqueIndex"`
	MatchesPlayed        int     `json:"matchesPlayed"`
	WinPctBatFirst       float64 `json:"winPctBatFirst"`
	WinPctBowlFirst      float64 `json:"winPctBowlFirst"`
	AvgFirstInningsScore float64 `json:"avgFirstInningsScore"`
	RunRate              float64 `json:"runRate"`
}

// TeamRating is a team's precomputed strength, derived from the squad
// and player stats by updateTeamRatings.
type TeamRating struct {
	gorm.Model
	Team          string  `json:"team" gorm:"uniqueIndex"`
	BatRating     float64 `json:"batRating"`
	BowlRating    float64 `json:"bowlRating"`
	OverallRating float64 `json:"overallRating"`
}

type SimulateRequest struct {
	Simulations int    `json:"simulations"`
	Seed        *int64 `json:"seed,omitempty"`
}
