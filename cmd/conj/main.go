// Package main provides the conj command line tool for looking up, generating
// and drilling Spanish verb conjugations without running the server.
package main

import (
	"context"
	"fmt"
	"os"

	"verbtrainer/cmd/conj/commands"
	"verbtrainer/internal/config"
	"verbtrainer/internal/di"
	"verbtrainer/internal/observability"
	"verbtrainer/internal/version"

	"github.com/spf13/cobra"
)

func main() {
	ctx := context.Background()

	// Set default config file if not already set
	if os.Getenv(config.ConfigFileEnv) == "" {
		for _, path := range []string{"config.yaml", "../config.yaml", "../../config.yaml"} {
			if _, err := os.Stat(path); err == nil {
				if err := os.Setenv(config.ConfigFileEnv, path); err != nil {
					fmt.Fprintf(os.Stderr, "Failed to set %s environment variable: %v\n", config.ConfigFileEnv, err)
					os.Exit(1)
				}
				break
			}
		}
	}

	cfg, err := config.NewConfig()
	if err != nil {
		if os.Getenv(config.ConfigFileEnv) != "" {
			fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
			os.Exit(1)
		}
		// No config file anywhere: the embedded catalog is all the CLI needs
		cfg = &config.Config{}
	}

	cfg.Server.LogLevel = "error"

	// Disable all OpenTelemetry features for the CLI to avoid connection errors
	cfg.OpenTelemetry.EnableTracing = false
	cfg.OpenTelemetry.EnableMetrics = false
	cfg.OpenTelemetry.EnableLogging = false

	_, _, logger, err := observability.SetupObservability(&cfg.OpenTelemetry, "verbtrainer-cli")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize observability: %v\n", err)
		os.Exit(1)
	}

	container := di.NewServiceContainer(cfg, logger)
	if err := container.Initialize(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load verb catalog: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = container.Shutdown(ctx) }()

	practiceService, err := container.GetPracticeService()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to get practice service: %v\n", err)
		os.Exit(1)
	}
	quizService, err := container.GetQuizService()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to get quiz service: %v\n", err)
		os.Exit(1)
	}

	rootCmd := &cobra.Command{
		Use:     "conj",
		Short:   "Spanish verb conjugation trainer",
		Version: version.String(),
		Long: `Spanish verb conjugation trainer

Resolve Spanish or English phrases to their verb, tense and pronoun,
generate English phrases for any conjugation slot, browse the verb
catalog or drill yourself with the quiz.`,
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, _ []string) {
			if err := cmd.Help(); err != nil {
				fmt.Printf("Error showing help: %v\n", err)
			}
		},
	}
	rootCmd.PersistentFlags().String("lang", cfg.Server.DefaultLocale, "UI language for messages (en or es)")

	rootCmd.AddCommand(commands.ResolveCommands(practiceService))
	rootCmd.AddCommand(commands.GenerateCommand(practiceService))
	rootCmd.AddCommand(commands.CatalogCommands(practiceService)...)
	rootCmd.AddCommand(commands.QuizCommand(quizService))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
