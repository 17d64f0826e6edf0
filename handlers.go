package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/tdowrick/hundred-server/sim"
)

func (s *Server) POSTLoginHandler(w http.ResponseWriter, r *http.Request) {
	var creds Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	// Check if rate limit has been exceeded
	key := loginRateLimitKey(r, creds.Username)
	ctx, err := s.loginRateLimiter.Peek(r.Context(), key)
	if err != nil {
		http.Error(w, "Rate limiter error", http.StatusInternalServerError)
		return
	}
	if ctx.Reached {
		http.Error(w, "Too many failed login attempts", http.StatusTooManyRequests)
		return
	}

	dbCreds := &DBCredentials{}
	result := s.db.First(dbCreds, "username = ?", creds.Username)
	if result.Error != nil {
		s.loginRateLimiter.Increment(r.Context(), key, 2)
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	err = bcrypt.CompareHashAndPassword([]byte(dbCreds.PasswordHash), []byte(creds.Password))
	if err != nil {
		s.loginRateLimiter.Increment(r.Context(), key, 2)
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	expiration := time.Now().Add(60 * time.Minute)
	claims := &Claims{
		Username: creds.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiration),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenStr, err := token.SignedString(jwtKey)
	if err != nil {
		http.Error(w, "Could not generate token", http.StatusInternalServerError)
		return
	}

	// Set HTTP-only JWT cookie
	http.SetCookie(w, &http.Cookie{
		Name:     "auth_token",
		Value:    tokenStr,
		HttpOnly: true,
		Secure:   !s.devMode,
		SameSite: http.SameSiteNoneMode,
		Path:     "/",
	})
	w.WriteHeader(http.StatusOK)
}

func loginRateLimitKey(r *http.Request, username string) string {
	ip := r.RemoteAddr
	return fmt.Sprintf("%s:%s", ip, username)
}

func (s *Server) POSTLogoutHandler(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "auth_token",
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   !s.devMode,
		SameSite: http.SameSiteNoneMode,
		Expires:  time.Unix(0, 0), // Expire immediately
		MaxAge:   -1,              // Force deletion
	})
	w.WriteHeader(http.StatusOK)
}

func (s *Server) POSTAuthMe(w http.ResponseWriter, r *http.Request) {
	claims, ok := r.Context().Value(userContextKey).(*Claims)
	if !ok || claims == nil {
		http.Error(w, "User info not found in context", http.StatusInternalServerError)
		return
	}

	dbCreds := &DBCredentials{}
	result := s.db.First(dbCreds, "username = ?", claims.Username)
	if result.Error != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	json.NewEncoder(w).Encode(map[string]any{
		"authenticated": true,
		"username":      claims.Username,
	})
}

func (s *Server) POSTChangePasswordHandler(w http.ResponseWriter, r *http.Request) {
	claims, ok := r.Context().Value(userContextKey).(*Claims)
	if !ok || claims == nil {
		http.Error(w, "User info not found in context", http.StatusInternalServerError)
		return
	}

	var pwChangeReq PWChangeRequest
	if err := json.NewDecoder(r.Body).Decode(&pwChangeReq); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	dbCreds := &DBCredentials{}
	result := s.db.First(dbCreds, "username = ?", claims.Username)
	if result.Error != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	err := bcrypt.CompareHashAndPassword([]byte(dbCreds.PasswordHash), []byte(pwChangeReq.CurrentPassword))
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pwChangeReq.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "Could not check password", http.StatusInternalServerError)
		return
	}
	dbCreds.PasswordHash = string(hash)
	if err := s.db.Save(&dbCreds).Error; err != nil {
		http.Error(w, "Could not save password", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) GETSchedule(w http.ResponseWriter, r *http.Request) {
	var schedule []ScheduleMatch
	if err := s.db.Order("match_id").Find(&schedule).Error; err != nil {
		http.Error(w, "Failed to load schedule", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(schedule)
}

func (s *Server) GETTeamRatings(w http.ResponseWriter, r *http.Request) {
	var ratings []TeamRating
	if err := s.db.Order("overall_rating DESC").Find(&ratings).Error; err != nil {
		http.Error(w, "Failed to load team ratings", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ratings)
}

func (s *Server) GETVenues(w http.ResponseWriter, r *http.Request) {
	var venues []VenueStat
	if err := s.db.Order("venue").Find(&venues).Error; err != nil {
		http.Error(w, "Failed to load venue stats", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(venues)
}

func (s *Server) GETPlayerStats(w http.ResponseWriter, r *http.Request) {
	q := s.db.Order("team, player")
	if team := r.URL.Query().Get("team"); team != "" {
		q = q.Where("team = ?", team)
	}
	var stats []PlayerStat
	if err := q.Find(&stats).Error; err != nil {
		http.Error(w, "Failed to load player stats", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}

// GETMatchPrediction runs the win-probability model for one scheduled
// match under a caller supplied toss outcome. Query params: toss=A|B,
// decision=bat|bowl, and an optional seed to pin the synthetic
// head-to-head history.
func (s *Server) GETMatchPrediction(w http.ResponseWriter, r *http.Request) {
	matchID, err := strconv.Atoi(chi.URLParam(r, "matchID"))
	if err != nil {
		http.Error(w, "Invalid match ID", http.StatusBadRequest)
		return
	}

	tossWinner := sim.TossTeamA
	switch strings.ToUpper(r.URL.Query().Get("toss")) {
	case "", "A":
	case "B":
		tossWinner = sim.TossTeamB
	default:
		http.Error(w, "toss must be A or B", http.StatusBadRequest)
		return
	}

	decision := sim.DecisionBat
	switch strings.ToLower(r.URL.Query().Get("decision")) {
	case "", "bat":
	case "bowl":
		decision = sim.DecisionBowl
	default:
		http.Error(w, "decision must be bat or bowl", http.StatusBadRequest)
		return
	}

	data, err := s.loadSimData()
	if err != nil {
		http.Error(w, "Failed to load reference data", http.StatusInternalServerError)
		return
	}

	analyzer := sim.NewAnalyzer(data, s.newRand(r.URL.Query().Get("seed")))
	pred, err := analyzer.Predict(matchID, tossWinner, decision)
	if err != nil {
		var nfe *sim.NotFoundError
		if errors.As(err, &nfe) {
			http.Error(w, "Match not found", http.StatusNotFound)
		} else {
			http.Error(w, "Prediction failed", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(pred)
}

// POSTSimulate runs the Monte Carlo engine over the full schedule and
// returns the per-team analysis table, the crucial-match list and the
// first run's per-fixture predictions.
func (s *Server) POSTSimulate(w http.ResponseWriter, r *http.Request) {
	var req SimulateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	n := req.Simulations
	if n <= 0 {
		n = s.defaultSims
	}
	if n > 20000 {
		http.Error(w, "Too many simulations requested", http.StatusBadRequest)
		return
	}

	data, err := s.loadSimData()
	if err != nil {
		http.Error(w, "Failed to load reference data", http.StatusInternalServerError)
		return
	}

	seed := time.Now().UnixNano()
	if req.Seed != nil {
		seed = *req.Seed
	}
	simulator := sim.NewSimulator(data, rand.New(rand.NewSource(seed)))

	agg := simulator.RunSimulations(n)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"simulations":    n,
		"analysis":       sim.Analyze(data, agg),
		"crucialMatches": sim.FindCrucialMatches(data, agg.SampleResults),
		"predictions":    agg.SampleResults,
	})
}

// POSTRefreshRatings recomputes team strength ratings from the stored
// squad and player stats.
func (s *Server) POSTRefreshRatings(w http.ResponseWriter, r *http.Request) {
	if err := updateTeamRatings(s.db); err != nil {
		http.Error(w, fmt.Sprintf("Error recomputing ratings: %s", err.Error()), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) POSTRefreshVenueStats(w http.ResponseWriter, r *http.Request) {
	if err := updateVenueStats(s.db, cricinfoBaseURL); err != nil {
		http.Error(w, fmt.Sprintf("Error downloading venue stats: %s", err.Error()), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) POSTRefreshPlayerStats(w http.ResponseWriter, r *http.Request) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	if err := updatePlayerStats(s.db, cricinfoBaseURL, rng); err != nil {
		http.Error(w, fmt.Sprintf("Error downloading player stats: %s", err.Error()), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// loadSimData pulls the four reference tables into the read-only lookup
// structure the simulation engine runs against.
func (s *Server) loadSimData() (*sim.Data, error) {
	var dbRatings []TeamRating
	if err := s.db.Order("id").Find(&dbRatings).Error; err != nil {
		return nil, err
	}
	var dbVenues []VenueStat
	if err := s.db.Find(&dbVenues).Error; err != nil {
		return nil, err
	}
	var dbSchedule []ScheduleMatch
	if err := s.db.Order("match_id").Find(&dbSchedule).Error; err != nil {
		return nil, err
	}
	var dbPlayers []PlayerStat
	if err := s.db.Find(&dbPlayers).Error; err != nil {
		return nil, err
	}

	ratings := make([]sim.TeamRating, 0, len(dbRatings))
	for _, t := range dbRatings {
		ratings = append(ratings, sim.TeamRating{
			Team:    t.Team,
			Batting: t.BatRating,
			Bowling: t.BowlRating,
			Overall: t.OverallRating,
		})
	}
	venues := make([]sim.VenueProfile, 0, len(dbVenues))
	for _, v := range dbVenues {
		venues = append(venues, sim.VenueProfile{
			Venue:           v.Venue,
			BatFirstWinPct:  v.WinPctBatFirst,
			BowlFirstWinPct: v.WinPctBowlFirst,
			AvgFirstInnings: v.AvgFirstInningsScore,
			RunRate:         v.RunRate,
		})
	}
	schedule := make([]sim.Fixture, 0, len(dbSchedule))
	for _, m := range dbSchedule {
		schedule = append(schedule, sim.Fixture{
			MatchID: m.MatchID,
			Team1:   m.Team1,
			Team2:   m.Team2,
			Venue:   m.Venue,
			Date:    time.Time(m.Date).Format("2006-01-02"),
			Time:    m.Time,
		})
	}
	players := make([]sim.PlayerStat, 0, len(dbPlayers))
	for _, p := range dbPlayers {
		players = append(players, sim.PlayerStat{
			Team:        p.Team,
			Player:      p.Player,
			Role:        sim.Role(p.Role),
			BatAvgFirst: p.BatAvgFirst,
			BatSRFirst:  p.BatSRFirst,
			BowlEcon:    p.BowlEconFirst,
			BowlAvg:     p.BowlAvgFirst,
		})
	}

	return sim.NewData(ratings, venues, schedule, players), nil
}

// newRand builds the random stream for a single query; an explicit
// seed param makes the synthetic head-to-head history reproducible.
func (s *Server) newRand(seedParam string) *rand.Rand {
	seed := time.Now().UnixNano()
	if seedParam != "" {
		if parsed, err := strconv.ParseInt(seedParam, 10, 64); err == nil {
			seed = parsed
		}
	}
	return rand.New(rand.NewSource(seed))
}
