package main

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	api "github.com/skillpath/analytics/internal/api/http"
	"github.com/skillpath/analytics/internal/auth"
	"github.com/skillpath/analytics/internal/config"
	"github.com/skillpath/analytics/internal/db"
	"github.com/skillpath/analytics/internal/logging"
	"github.com/skillpath/analytics/internal/nlp"
	"github.com/skillpath/analytics/internal/session"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()
	logging.Setup(cfg.LogLevel, cfg.LogFile)

	// --- Analyzer: remote service when configured, heuristics otherwise ---
	var remote nlp.Analyzer
	if cfg.NLPBaseURL != "" {
		remote = nlp.NewClient(cfg.NLPBaseURL, cfg.NLPTimeout)
	}
	analyzer := nlp.NewChained(remote)

	// --- Engine ---
	registry := session.NewMemoryRegistry()
	opts := []session.Option{
		session.WithAnalyzer(analyzer),
		session.WithParameters(cfg.BKTParams),
	}
	if cfg.EnableArchive {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
		cancel()
		if err != nil {
			log.Fatalf("db open failed: %v", err)
		}
		opts = append(opts, session.WithArchiver(session.NewSQLArchive(dbh)))
	}
	engine := session.NewEngine(registry, opts...)

	// Abandoned sessions are swept by age; finalized results are
	// already archived by then.
	if cfg.SessionMaxAge > 0 {
		go func() {
			for range time.Tick(time.Hour) {
				if n := registry.PurgeOlderThan(time.Now().Add(-cfg.SessionMaxAge)); n > 0 {
					log.WithField("purged", n).Info("swept stale sessions")
				}
			}
		}()
	}

	authSvc := auth.NewService(cfg.AuthSecret)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	origins := cfg.CORSOriginsOffline
	if cfg.Mode == config.ModeOnline {
		origins = cfg.CORSOriginsOnline
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if cfg.EnableLocalAuth {
		r.Post("/auth/login", auth.LoginHandler(authSvc, auth.Credentials{
			Username: cfg.ServiceUser,
			PassHash: cfg.ServicePassHash,
		}))
	}

	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(authSvc))

		pr.Post("/sessions", api.StartSessionHandler(engine))
		pr.Post("/sessions/{sessionID}/responses", api.ProcessResponseHandler(engine))
		pr.Post("/sessions/{sessionID}/finalize", api.FinalizeSessionHandler(engine))
		pr.Get("/sessions/{sessionID}/analytics", api.GetAnalyticsHandler(engine))

		pr.Post("/nlp/analyze", api.AnalyzeTextHandler(analyzer))
		pr.Post("/nlp/performance", api.QuizPerformanceHandler(analyzer))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	log.Infof("listening on %s (mode=%s, archive=%v)", cfg.HTTPAddr, cfg.Mode, cfg.EnableArchive)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
