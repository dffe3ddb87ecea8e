package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"medipred/internal/app"
	"medipred/internal/config"
	"medipred/internal/model"
	"medipred/internal/risk"
	"medipred/internal/service"
	"medipred/internal/transport/rest"
)

// @title medipred API
// @version 1.0
// @description Clinical questionnaire risk scoring and prediction history
// @BasePath /v1
func main() {
	rootCmd := &cobra.Command{
		Use:   "medipred",
		Short: "Clinical risk assessment API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(scoreCmd())
	rootCmd.AddCommand(tokenCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func scoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score <questionnaire.json>",
		Short: "Score a questionnaire file offline and print the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			condition, _ := cmd.Flags().GetString("condition")
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			return scoreQuestionnaire(cmd.OutOrStdout(), f, condition)
		},
	}
	cmd.Flags().StringP("condition", "c", "", "heart | diabetes | parkinsons | mental-health")
	cmd.MarkFlagRequired("condition")
	return cmd
}

func tokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a user token signed with JWT_SECRET",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			userID, _ := cmd.Flags().GetString("user")
			ttl, _ := cmd.Flags().GetDuration("ttl")
			if ttl == 0 {
				ttl = cfg.TokenTTL
			}
			return mintToken(cmd.OutOrStdout(), service.NewAuthService(cfg.JWTSecret), userID, ttl)
		},
	}
	cmd.Flags().String("user", "", "User id to embed (random when empty)")
	cmd.Flags().Duration("ttl", 0, "Token lifetime (defaults to TOKEN_TTL)")
	return cmd
}

func scoreQuestionnaire(out io.Writer, in io.Reader, condition string) error {
	c, ok := model.ParseCondition(condition)
	if !ok {
		return fmt.Errorf("unknown condition %q", condition)
	}

	var form model.Form
	if err := json.NewDecoder(in).Decode(&form); err != nil {
		return fmt.Errorf("decode questionnaire: %w", err)
	}

	result, err := risk.NewRegistry(nil).Evaluate(c, form)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func mintToken(out io.Writer, authSvc *service.AuthService, userID string, ttl time.Duration) error {
	if userID == "" {
		userID = uuid.NewString()
	}
	tok, err := authSvc.IssueToken(userID, ttl)
	if err != nil {
		return err
	}
	return json.NewEncoder(out).Encode(tok)
}

func runServer() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := app.NewLogger(cfg, os.Stdout)

	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx := context.Background()
	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to start")
	}
	defer a.Close(context.Background())

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           rest.NewRouter(a.Container()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().
			Str("port", cfg.Port).
			Str("env", cfg.Env).
			Str("store", cfg.StoreDriver).
			Dur("scoring_delay", cfg.ScoringDelay).
			Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server shutdown failed")
		return err
	}
	logger.Info().Msg("server stopped")
	return nil
}
