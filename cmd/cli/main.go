package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dylancreed/ward-rota/internal/config"
	"github.com/dylancreed/ward-rota/pkg/core/services"
	"github.com/dylancreed/ward-rota/pkg/postgres"
	"github.com/dylancreed/ward-rota/pkg/utils/logging"
)

// App holds the application dependencies
type App struct {
	cfg      *config.Config
	database *postgres.DB
	logger   *zap.Logger
	ctx      context.Context
}

var (
	env     string
	verbose bool
	app     *App
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ward-rota",
		Short: "Ward Rota CLI - Generate and inspect duty rosters",
		Long:  `A CLI tool for generating ward duty rosters: daily Cover and Late assignments, weekend off blocks, and leave-week resolution, with fairness carried over between periods.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil {
				if app.database != nil {
					app.database.Close()
				}
				if app.logger != nil {
					app.logger.Sync()
				}
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show debug output on the console")
	rootCmd.MarkPersistentFlagRequired("env")

	rootCmd.AddCommand(generateCmd())
	rootCmd.AddCommand(rosterCmd())
	rootCmd.AddCommand(summaryCmd())
	rootCmd.AddCommand(runsCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config, and database
func initApp() error {
	var err error
	app = &App{
		ctx: context.Background(),
	}

	app.logger, err = logging.InitLogger(env, verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.logger.Info("Starting application", zap.String("environment", env))

	app.logger.Info("Loading configuration")
	app.cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.logger.Debug("Configuration loaded successfully", zap.Int("people", len(app.cfg.People)))

	app.logger.Info("Connecting to database")
	app.database, err = postgres.NewDB(app.ctx, app.cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := app.database.EnsureSchema(app.ctx); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	app.logger.Info("Database initialized successfully")

	return nil
}

// Command definitions

func generateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate <start> <end>",
		Short: "Generate a roster for the date range (dates as YYYY-MM-DD)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			seed, _ := cmd.Flags().GetInt64("seed")
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			forceCommit, _ := cmd.Flags().GetBool("force-commit")

			if !cmd.Flags().Changed("seed") {
				seed = app.cfg.DefaultSeed
			}

			result, err := services.GenerateRoster(app.ctx, app.database, app.cfg, app.logger, args[0], args[1], seed, dryRun, forceCommit)
			if err != nil {
				return err
			}

			switch {
			case result.Saved:
				fmt.Printf("\nRoster generated and saved.\n\n")
				fmt.Printf("Run ID: %s\n", result.Run.ID)
				if result.OverlapRunID != "" {
					fmt.Printf("Saved despite overlapping run %s (--force-commit).\n", result.OverlapRunID)
				}
			case dryRun:
				fmt.Printf("\nRoster generated (dry run, not saved).\n\n")
			default:
				fmt.Printf("\nRoster generated but NOT saved: range overlaps run %s.\n", result.OverlapRunID)
				fmt.Printf("Use --force-commit to save anyway.\n\n")
			}
			if result.PriorRunID != "" {
				fmt.Printf("Counters carried over from run %s\n", result.PriorRunID)
			}

			fmt.Printf("\n%-12s  %-12s  %s\n", "Date", "Cover", "Late")
			for _, day := range result.Outcome.Days {
				fmt.Printf("%-12s  %-12s  %s\n", day.Date.Format("2006-01-02"), day.Cover, day.Late)
			}

			if len(result.Outcome.Leave) > 0 {
				fmt.Printf("\nLeave:\n")
				for _, la := range result.Outcome.Leave {
					fmt.Printf("  %s: %s to %s (%s)\n",
						la.Person,
						la.Start.Format("2006-01-02"),
						la.End().Format("2006-01-02"),
						la.Rank)
				}
			}

			fmt.Printf("\n%-12s  %5s  %5s  %6s  %5s  %s\n", "Person", "Cover", "Late", "Blocks", "Hours", "Leave")
			for _, row := range result.Outcome.Summary {
				fmt.Printf("%-12s  %5d  %5d  %6d  %5d  %s\n",
					row.Person,
					row.Counters.Cover,
					row.Counters.Late,
					row.Counters.FreeBlocks,
					row.TotalHours,
					row.LeaveChoice)
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().Int64("seed", 0, "Seed for the off-block shuffle (defaults to the configured seed)")
	cmd.Flags().Bool("dry-run", false, "Run without saving to database")
	cmd.Flags().Bool("force-commit", false, "Save even when the range overlaps an existing run")

	return cmd
}

func rosterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "roster [run_id]",
		Short: "View the day-by-day roster (defaults to latest run)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var runID string
			if len(args) > 0 {
				runID = args[0]
			}

			result, err := services.ViewRoster(app.ctx, app.database, app.logger, runID)
			if err != nil {
				return err
			}

			fmt.Printf("\nRoster %s (%s to %s)\n\n", result.Run.ID, result.Run.Start, result.Run.End)
			fmt.Printf("%-12s  %-12s  %s\n", "Date", "Cover", "Late")
			for _, row := range result.Rows {
				fmt.Printf("%-12s  %-12s  %s\n", row.Date, row.Cover, row.Late)
			}

			if len(result.Leave) > 0 {
				fmt.Printf("\nLeave:\n")
				for _, lr := range result.Leave {
					fmt.Printf("  %s: %s to %s (%s)\n", lr.Person, lr.Start, lr.End, lr.Rank)
				}
			}
			fmt.Println()

			return nil
		},
	}
}

func summaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary [run_id]",
		Short: "View the fairness summary for a run (defaults to latest run)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var runID string
			if len(args) > 0 {
				runID = args[0]
			}

			result, err := services.ViewSummary(app.ctx, app.database, app.logger, runID)
			if err != nil {
				return err
			}

			fmt.Printf("\nSummary for run %s (%s to %s)\n\n", result.Run.ID, result.Run.Start, result.Run.End)
			fmt.Printf("%-12s  %5s  %5s  %6s  %5s  %s\n", "Person", "Cover", "Late", "Blocks", "Hours", "Leave")
			for _, row := range result.Rows {
				fmt.Printf("%-12s  %5d  %5d  %6d  %5d  %s\n",
					row.Person,
					row.CoverCount,
					row.LateCount,
					row.FreeBlockCount,
					row.TotalHours,
					row.LeaveChoice)
			}
			fmt.Println()

			return nil
		},
	}
}

func runsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "runs",
		Short: "List all saved roster runs, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runs, err := services.ListRuns(app.ctx, app.database, app.logger)
			if err != nil {
				return err
			}

			if len(runs) == 0 {
				fmt.Println("No runs saved yet.")
				return nil
			}

			fmt.Printf("\nFound %d runs:\n\n", len(runs))
			for _, run := range runs {
				fmt.Printf("- %s  %s to %s  (seed %d)\n", run.ID, run.Start, run.End, run.Seed)
			}
			fmt.Println()

			return nil
		},
	}
}
