package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/hs2213/proelection/internal/cache"
	"github.com/hs2213/proelection/internal/http/handlers"
	authmw "github.com/hs2213/proelection/internal/http/middleware"
	"github.com/hs2213/proelection/internal/mailer"
	"github.com/hs2213/proelection/internal/notify"
	"github.com/hs2213/proelection/internal/repo/postgres"
	"github.com/hs2213/proelection/internal/service"
	"github.com/hs2213/proelection/pkg/config"
	"github.com/hs2213/proelection/pkg/database"
	"github.com/hs2213/proelection/pkg/events"
	"github.com/hs2213/proelection/pkg/logger"
	mw "github.com/hs2213/proelection/pkg/middleware"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	ctx := context.Background()
	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	eventBus, err := events.NewNATSEventBus(cfg.NATS.URL)
	if err != nil {
		logger.Error("Failed to connect to NATS", "error", err)
		os.Exit(1)
	}
	defer eventBus.Close()

	var results cache.ResultsCache = cache.NoopResultsCache{}
	if redisCache, err := cache.NewRedisResultsCache(cfg.Redis, cfg.Results.CacheTTL); err != nil {
		logger.Warn("Results cache disabled", "error", err)
	} else {
		defer redisCache.Close()
		results = redisCache
	}

	var mail mailer.Service
	switch {
	case cfg.Email.DevMode:
		mail = mailer.NewDevMailer()
	case cfg.Email.MailerSendKey != "":
		mail = mailer.NewMailerSend(cfg.Email.MailerSendKey, "ProElection", cfg.Email.SMTPFrom)
	default:
		mail = mailer.NewSMTPMailer(cfg.Email.SMTPHost, cfg.Email.SMTPPort, cfg.Email.SMTPFrom,
			cfg.Email.SMTPUser, cfg.Email.SMTPPass, cfg.Email.SMTPUseTLS)
	}

	notifier := notify.NewEventNotifier(eventBus)

	userRepo := postgres.NewUserRepo(pool)
	electionRepo := postgres.NewElectionRepo(pool)
	voteRepo := postgres.NewVoteRepo(pool)
	codeRepo := postgres.NewElectionCodeRepo(pool)

	electionService := service.NewElectionService(electionRepo, codeRepo, voteRepo, userRepo, notifier, eventBus, results, mail)
	userService := service.NewUserService(userRepo, electionService, notifier, eventBus, mail, cfg)

	h := handlers.New(userService, electionService)

	r := chi.NewRouter()

	r.Use(mw.RequestID)
	r.Use(mw.ServiceName("proelection"))
	r.Use(mw.Logging)
	r.Use(mw.Recover)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(mw.Health)

	secret := cfg.Auth.JWTSecret

	r.Route("/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Register)
			r.Post("/login", h.Login)
		})

		r.Route("/elections", func(r chi.Router) {
			r.With(authmw.RequireJWT(secret)).Get("/", h.ListElections)
			r.With(authmw.RequireJWT(secret)).Get("/{id}", h.GetElection)
			r.With(authmw.RequireJWT(secret)).Get("/{id}/results", h.GetResults)
			r.With(authmw.RequireJWT(secret)).Get("/{id}/candidates", h.GetElectionCandidates)
			r.With(authmw.RequireJWT(secret)).Get("/{id}/voted", h.HasVoted)
			r.With(authmw.RequireJWT(secret, "voter")).Post("/{id}/code", h.RequestElectionCode)

			// Admin election management
			r.With(authmw.RequireJWT(secret, "admin")).Post("/", h.CreateElection)
			r.With(authmw.RequireJWT(secret, "admin")).Patch("/{id}", h.UpdateElection)
			r.With(authmw.RequireJWT(secret, "admin")).Post("/{id}/users", h.AddUserToElection)
			r.With(authmw.RequireJWT(secret, "admin")).Get("/{id}/users/search", h.SearchUsersForElection)
		})

		// Admin account provisioning: the only path to non-voter types.
		r.With(authmw.RequireJWT(secret, "admin")).Post("/users", h.CreateUser)

		r.With(authmw.RequireJWT(secret, "voter")).Post("/votes", h.CastVote)

		r.With(authmw.RequireJWT(secret)).Get("/me/elections", h.MyElections)

		// In-person flow: the code itself is the credential.
		r.Route("/codes", func(r chi.Router) {
			r.Get("/{id}", h.GetElectionCode)
			r.Post("/{id}/vote", h.VoteWithCode)
		})
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("Starting API server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", "error", err)
	}
}
