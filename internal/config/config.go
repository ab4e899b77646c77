package config // package config loads application configuration from environment variables

import (
	"log"     // log reports configuration errors before the zap logger exists
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
	"time"
	_ "time/tzdata" // zone names resolve on hosts without a zoneinfo database

	"github.com/joho/godotenv"
)

// Config holds the runtime configuration of the booking service.  Each
// field corresponds to an environment variable.
type Config struct {
	Env           string         // application environment (dev, prod)
	LogLevel      string         // zap level override (debug, info, warn, error)
	Port          string         // HTTP port to listen on
	Location      *time.Location // campus time zone used to decide what "today" is
	DBUser        string         // database username
	DBPass        string         // database password (optional)
	DBHost        string         // database host address
	DBPort        string         // database port number
	DBName        string         // database name
	DBAutoMigrate bool           // apply pending migrations at startup
	JWTSecret     string         // secret used to sign access tokens
	AccessTTLMin  int            // access token time-to-live in minutes
	BcryptCost    int            // bcrypt cost for password hashing
}

// Load reads a .env file when one is present and then builds a Config from
// the process environment.  Missing required variables are fatal.
func Load() Config {
	LoadDotEnv()
	return Config{
		Env:           envStr("APP_ENV", "dev"),
		LogLevel:      os.Getenv("LOG_LEVEL"),
		Port:          envStr("APP_PORT", "3000"),
		Location:      location("APP_TZ"),
		DBUser:        must("DB_USER"),
		DBPass:        os.Getenv("DB_PASS"),
		DBHost:        must("DB_HOST"),
		DBPort:        envStr("DB_PORT", "3306"),
		DBName:        must("DB_NAME"),
		DBAutoMigrate: envBool("DB_AUTO_MIGRATE", false),
		JWTSecret:     must("JWT_SECRET"),
		AccessTTLMin:  intOr("ACCESS_TOKEN_TTL_MIN", 60),
		BcryptCost:    intOr("BCRYPT_COST", 10),
	}
}

// LoadDotEnv loads variables from a .env file in the working directory when
// one exists.  Variables already set in the environment win.
func LoadDotEnv() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("config: .env not loaded: %v", err)
	}
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// intOr is like envInt but treats a malformed value as fatal instead of
// silently falling back to the default.
func intOr(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}

// location resolves an IANA zone name such as "Europe/Berlin".  Unset means
// UTC; an unknown zone is fatal.
func location(key string) *time.Location {
	name := os.Getenv(key)
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Fatalf("invalid time zone for %s: %q", key, name)
	}
	return loc
}
