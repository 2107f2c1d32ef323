package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/skillpath/analytics/internal/bkt"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type Config struct {
	Mode     Mode
	HTTPAddr string

	DBDriver      string
	DBDSN         string
	EnableArchive bool

	// Remote language-analysis service; empty means local heuristics
	// only.
	NLPBaseURL string
	NLPTimeout time.Duration

	EnableLocalAuth bool
	AuthSecret      string
	ServiceUser     string
	ServicePassHash string // bcrypt

	CORSOriginsOnline  []string
	CORSOriginsOffline []string

	// Knowledge-tracing parameters, overridable per deployment.
	BKTParams bkt.Parameters

	// Registry sweep for abandoned sessions; zero disables it.
	SessionMaxAge time.Duration

	LogLevel string
	LogFile  string // empty: stderr only
}

func FromEnv() Config {
	mode := Mode(os.Getenv("MODE"))
	if mode == "" {
		mode = ModeOffline
	}
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	defaults := bkt.DefaultParameters()
	return Config{
		Mode:     mode,
		HTTPAddr: addr,

		DBDriver:      envOr("DB_DRIVER", "sqlite"),
		DBDSN:         envOr("DB_DSN", ""),
		EnableArchive: envBool("ENABLE_ARCHIVE", true),

		NLPBaseURL: os.Getenv("NLP_BASE_URL"),
		NLPTimeout: envDur("NLP_TIMEOUT", 5*time.Second),

		EnableLocalAuth: envBool("ENABLE_LOCAL_AUTH", true),
		AuthSecret:      envOr("AUTH_HMAC_SECRET", "supersecret-dev-key"),
		ServiceUser:     envOr("SERVICE_USER", "service"),
		ServicePassHash: envOr("SERVICE_PASS_HASH", "$2y$12$pyZAiWaTfVtM7UElIRStvOC3gNbnp70nmQU4eYopLGBfCJr1DOvji"),

		CORSOriginsOnline:  csvOr("CORS_ORIGINS_ONLINE", "https://app.skillpath.dev"),
		CORSOriginsOffline: csvOr("CORS_ORIGINS_OFFLINE", "http://localhost:3000,http://localhost:5173"),

		BKTParams: bkt.Parameters{
			PInit:    envFloat("BKT_P_INIT", defaults.PInit),
			PTransit: envFloat("BKT_P_TRANSIT", defaults.PTransit),
			PSlip:    envFloat("BKT_P_SLIP", defaults.PSlip),
			PGuess:   envFloat("BKT_P_GUESS", defaults.PGuess),
		},

		SessionMaxAge: envDur("SESSION_MAX_AGE", 24*time.Hour),

		LogLevel: envOr("LOG_LEVEL", "info"),
		LogFile:  os.Getenv("LOG_FILE"),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envBool(k string, def bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return def
	}
}

func envFloat(k string, def float64) float64 {
	if v := os.Getenv(k); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func envDur(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
