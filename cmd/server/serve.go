package main

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/yukikurage/brand-studio-api/internal/config"
	"github.com/yukikurage/brand-studio-api/internal/constants"
	"github.com/yukikurage/brand-studio-api/internal/database"
	"github.com/yukikurage/brand-studio-api/internal/email"
	"github.com/yukikurage/brand-studio-api/internal/ratelimit"
	"github.com/yukikurage/brand-studio-api/internal/repository"
	"github.com/yukikurage/brand-studio-api/internal/server"
	"github.com/yukikurage/brand-studio-api/internal/services"
	"github.com/yukikurage/brand-studio-api/internal/storage"
	"go.uber.org/zap"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run migrations and start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
}

func runServe() error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	gin.SetMode(cfg.GinMode)

	db, err := database.Connect(cfg, log)
	if err != nil {
		return err
	}
	if err := database.Migrate(db, log); err != nil {
		return err
	}

	sessionStore, err := newSessionStore(cfg)
	if err != nil {
		return err
	}

	redisClient, err := ratelimit.Connect(cfg.RedisAddr(), cfg.RedisPassword)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	store, err := storage.New(cfg)
	if err != nil {
		return err
	}

	deps := server.Deps{
		Log:          log,
		Repos:        repository.New(db),
		SessionStore: sessionStore,
		Store:        store,
		Mailer:       email.NewService(newMailer(cfg, log), cfg.EmailFrom, log),
		BaseURL:      cfg.AppBaseURL,
		AuthLimiter:  ratelimit.NewRedisLimiter(redisClient, "ratelimit:auth", cfg.AuthRateLimit, cfg.AuthRateWindow),
	}

	if local, ok := store.(*storage.LocalStore); ok {
		deps.LocalFiles = local
		deps.LocalFilesPath = cfg.UploadPublicURL
	}

	if generator := newGenerator(cfg); generator != nil {
		deps.Generator = generator
	} else {
		log.Info("OPENAI_API_KEY not set, copy generation disabled")
	}

	r := server.NewRouter(deps)

	log.Info("server starting", zap.String("addr", cfg.ListenAddr()))
	if err := r.Run(cfg.ListenAddr()); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

func newSessionStore(cfg *config.Config) (sessions.Store, error) {
	store, err := redisStore.NewStore(
		10,    // Redis pool size
		"tcp", // network type
		cfg.RedisAddr(),
		"", // username (empty for default user)
		cfg.RedisPassword,
		[]byte(cfg.SessionSecret),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Redis store: %w", err)
	}

	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   constants.SessionMaxAge,
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
	return store, nil
}

func newMailer(cfg *config.Config, log *zap.Logger) email.Mailer {
	if cfg.ResendAPIKey == "" {
		log.Warn("RESEND_API_KEY not set, emails will only be logged")
		return email.NewLogMailer(log)
	}
	return email.NewResendMailer(cfg.ResendAPIKey)
}

func newGenerator(cfg *config.Config) services.CopyGenerator {
	if ai := services.NewAIService(cfg.OpenAIAPIKey); ai != nil {
		return ai
	}
	return nil
}
