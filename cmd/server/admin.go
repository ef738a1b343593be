package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yukikurage/brand-studio-api/internal/database"
	"github.com/yukikurage/brand-studio-api/internal/email"
	"github.com/yukikurage/brand-studio-api/internal/repository"
	"github.com/yukikurage/brand-studio-api/internal/services"
	"go.uber.org/zap"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			db, err := database.Connect(cfg, log)
			if err != nil {
				return err
			}
			return database.Migrate(db, log)
		},
	}
}

type createAdminOptions struct {
	Email    string
	FullName string
	Password string
}

// newCreateAdminCommand seeds an ADMIN account. Signup never grants ADMIN,
// so this is the only way to create the first one.
func newCreateAdminCommand() *cobra.Command {
	opts := &createAdminOptions{}

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an administrator account",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			db, err := database.Connect(cfg, log)
			if err != nil {
				return err
			}
			if err := database.Migrate(db, log); err != nil {
				return err
			}

			repos := repository.New(db)
			activity := services.NewActivityService(repos)
			mailer := email.NewService(email.NewLogMailer(log), cfg.EmailFrom, log)
			authService := services.NewAuthService(repos, activity, mailer, cfg.AppBaseURL, log)

			user, err := authService.CreateAdmin(context.Background(), opts.FullName, opts.Email, opts.Password)
			if err != nil {
				return fmt.Errorf("failed to create admin: %w", err)
			}

			log.Info("admin created", zap.String("user_id", user.ID), zap.String("email", user.Email))
			fmt.Fprintf(cmd.OutOrStdout(), "created admin %s (%s)\n", user.Email, user.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Email, "email", "", "admin email address")
	cmd.Flags().StringVar(&opts.FullName, "name", "Administrator", "admin full name")
	cmd.Flags().StringVar(&opts.Password, "password", "", "admin password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}
