package main

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/user"
	"path"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jessevdk/go-flags"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	dataDir        = ".hundredserver"
	dbName         = "hundred.db"
	jwtKeyHex      = "7c1b3f9ad44e8c205bd521ff4ec987d1bb5a8627743f93db1efe15a228b4d0e1"
	userContextKey = contextKey("user")
)

type contextKey string

type Options struct {
	Port        int    `short:"p" long:"port" description:"Port to listen on" default:"8080"`
	DataDir     string `short:"d" long:"datadir" description:"Override the default data directory"`
	DevMode     bool   `long:"dev" description:"Run in dev mode (insecure cookies)"`
	Simulations int    `short:"n" long:"simulations" description:"Default number of Monte Carlo runs per request" default:"1000"`
}

type Server struct {
	db               *gorm.DB
	r                chi.Router
	devMode          bool
	defaultSims      int
	loginRateLimiter *limiter.Limiter
}

var jwtKey []byte

func init() {
	var err error
	jwtKey, err = hex.DecodeString(jwtKeyHex)
	if err != nil {
		log.Fatal("error parsing jwt key")
	}
}

func main() {
	var opts Options
	if _, err := flags.Parse(&opts); err != nil {
		os.Exit(1)
	}

	db, err := initDatabase(opts.DataDir)
	if err != nil {
		log.Fatalf("Database initialization errored: %v", err)
	}

	if err := seedReferenceData(db); err != nil {
		log.Fatalf("Reference data seeding errored: %v", err)
	}

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	s := &Server{
		db:          db,
		r:           r,
		devMode:     opts.DevMode,
		defaultSims: opts.Simulations,
		loginRateLimiter: limiter.New(memory.NewStore(), limiter.Rate{
			Period: 15 * time.Minute,
			Limit:  10,
		}),
	}

	r.Post("/login", s.POSTLoginHandler)
	r.Post("/logout", s.POSTLogoutHandler)
	r.Post("/auth/me", authMiddleware(s.POSTAuthMe))
	r.Post("/changepw", authMiddleware(s.POSTChangePasswordHandler))

	r.Get("/api/schedule", s.GETSchedule)
	r.Get("/api/teams", s.GETTeamRatings)
	r.Get("/api/venues", s.GETVenues)
	r.Get("/api/players", s.GETPlayerStats)
	r.Get("/api/predictions/{matchID}", s.GETMatchPrediction)
	r.Post("/api/simulate", s.POSTSimulate)

	r.Post("/api/refresh/ratings", authMiddleware(s.POSTRefreshRatings))
	r.Post("/api/refresh/venues", authMiddleware(s.POSTRefreshVenueStats))
	r.Post("/api/refresh/players", authMiddleware(s.POSTRefreshPlayerStats))

	log.Printf("Listening on :%d", opts.Port)
	if err := http.ListenAndServe(fmt.Sprintf(":%d", opts.Port), r); err != nil {
		log.Fatal(err)
	}
}

// Check to see if the database exists. If not create it and initialize
// it with a default admin password to be changed later.
func initDatabase(dataDirOverride string) (*gorm.DB, error) {
	dataDirPath := dataDirOverride
	if dataDirPath == "" {
		// Get the OS specific home directory via the Go standard lib.
		var homeDir string
		usr, err := user.Current()
		if err == nil {
			homeDir = usr.HomeDir
		}

		// Fall back to standard HOME environment variable that works
		// for most POSIX OSes if the directory from the Go standard
		// lib failed.
		if err != nil || homeDir == "" {
			homeDir = os.Getenv("HOME")
		}
		dataDirPath = path.Join(homeDir, dataDir)
	}

	if err := ensureDir(dataDirPath); err != nil {
		return nil, err
	}

	db, err := gorm.Open(sqlite.Open(path.Join(dataDirPath, dbName)), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := applyMigrations(db); err != nil {
		return nil, err
	}

	var creds DBCredentials
	result := db.First(&creds)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			hash, err := bcrypt.GenerateFromPassword([]byte("letmein"), bcrypt.DefaultCost)
			if err != nil {
				return nil, err
			}
			result := db.Create(&DBCredentials{Username: "admin", PasswordHash: string(hash)})
			if result.Error != nil {
				return nil, result.Error
			}
		} else {
			return nil, result.Error
		}
	}

	return db, nil
}

func applyMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&DBCredentials{},
		&ScheduleMatch{},
		&SquadMember{},
		&PlayerStat{},
		&VenueStat{},
		&TeamRating{},
	)
}

// Validate the JWT token. It can either been in a cookie or a header.
func authMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var tokenStr string

		// First try Authorization header
		authHeader := r.Header.Get("Authorization")
		if len(authHeader) >= 7 && authHeader[:7] == "Bearer " {
			tokenStr = authHeader[7:]
		} else {
			// Fallback to auth_token cookie
			cookie, err := r.Cookie("auth_token")
			if err != nil {
				http.Error(w, "Missing auth token", http.StatusUnauthorized)
				return
			}
			tokenStr = cookie.Value
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			return jwtKey, nil
		})

		if err != nil || !token.Valid {
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		// Token is valid, proceed
		ctx := context.WithValue(r.Context(), userContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}
