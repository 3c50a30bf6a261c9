package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ashishkj21/DailyPulseSlackBot/internal/app"
	"github.com/ashishkj21/DailyPulseSlackBot/internal/config"
	"github.com/ashishkj21/DailyPulseSlackBot/internal/dates"
	"github.com/ashishkj21/DailyPulseSlackBot/internal/export"
	"github.com/ashishkj21/DailyPulseSlackBot/internal/storage/pgx"
)

var (
	configFile   string
	reportEmail  string
	reportUser   string
	reportDate   string
	exportFrom   string
	exportTo     string
	exportUser   string
	exportFormat string
	outputDir    string
)

var rootCmd = &cobra.Command{
	Use:   "dailypulse",
	Short: "Daily standup assistant over GitHub and Linear activity",
	Long:  `DailyPulse drafts daily standup updates from GitHub and Linear activity, refines them over Slack, and stores them in the dailypulse table.`,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the Slack events webhook server",
	RunE:  runServe,
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the combined activity report for a single day",
	RunE:  runReport,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export dailypulse history to json, csv, or xlsx",
	RunE:  runExport,
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(exportCmd)

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to YAML config file (overlays environment)")

	reportCmd.Flags().StringVar(&reportEmail, "email", "", "Linear user email (defaults to LINEAR_USER_EMAIL)")
	reportCmd.Flags().StringVarP(&reportUser, "user", "u", "", "GitHub username (defaults to GITHUB_USERNAME)")
	reportCmd.Flags().StringVarP(&reportDate, "date", "d", "", "Target date (YYYY-MM-DD), defaults to yesterday UTC")

	exportCmd.Flags().StringVar(&exportFrom, "from", "", "Start date (YYYY-MM-DD), defaults to 30 days ago")
	exportCmd.Flags().StringVar(&exportTo, "to", "", "End date (YYYY-MM-DD), defaults to today")
	exportCmd.Flags().StringVarP(&exportUser, "user", "u", "", "Limit export to one username")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "xlsx", "Output format: json, csv, or xlsx")
	exportCmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output directory (defaults to OUTPUT_DIR)")
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, err
	}

	if configFile != "" {
		if err := cfg.LoadFile(configFile); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.ValidateServe(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return app.New(cfg).Serve(ctx)
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if reportEmail != "" {
		cfg.Linear.UserEmail = reportEmail
	}
	if reportUser != "" {
		cfg.GitHub.Username = reportUser
	}

	if err := cfg.ValidateReport(); err != nil {
		return err
	}

	day := dates.Yesterday(time.Now())
	if reportDate != "" {
		day, err = dates.ParseDay(reportDate)
		if err != nil {
			return fmt.Errorf("invalid date: %w", err)
		}
	}

	bar := newSpinner("Fetching activity")
	application := app.New(cfg)

	combined, err := application.Report(context.Background(), day)
	finishBar(bar)
	if err != nil {
		return err
	}

	fmt.Println(combined)
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.ValidateExport(); err != nil {
		return err
	}

	if outputDir == "" {
		outputDir = cfg.Output.Directory
	}

	now := time.Now().UTC()
	from := now.AddDate(0, 0, -30)
	to := now

	if exportFrom != "" {
		from, err = dates.ParseDay(exportFrom)
		if err != nil {
			return fmt.Errorf("invalid from date: %w", err)
		}
	}
	if exportTo != "" {
		to, err = dates.ParseDay(exportTo)
		if err != nil {
			return fmt.Errorf("invalid to date: %w", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := pgx.NewStorage(ctx, cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to init storage: %w", err)
	}
	defer store.Close()

	bar := newSpinner("Fetching updates")
	updates, err := store.ListUpdates(ctx, exportUser, from, to)
	finishBar(bar)
	if err != nil {
		return fmt.Errorf("failed to list updates: %w", err)
	}

	fmt.Printf("Found %d updates (%s to %s)\n", len(updates), from.Format("2006-01-02"), to.Format("2006-01-02"))

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	exportBar := newProgress(1, "Exporting")
	defer finishBar(exportBar)

	switch exportFormat {
	case "json":
		exporter := export.NewExporter(outputDir)
		filename := fmt.Sprintf("dailypulse_%s.json", time.Now().Format("20060102_150405"))
		if err := exporter.ExportJSON(updates, filename); err != nil {
			return fmt.Errorf("failed to export JSON: %w", err)
		}

	case "csv":
		exporter := export.NewCSVExporter(outputDir)
		if err := exporter.Export(updates, from, to); err != nil {
			return fmt.Errorf("failed to export CSV: %w", err)
		}

	case "xlsx":
		exporter := export.NewExcelExporter(outputDir)
		if err := exporter.Export(updates, from, to); err != nil {
			return fmt.Errorf("failed to export Excel: %w", err)
		}

	default:
		return fmt.Errorf("unknown format: %s (expected json, csv, or xlsx)", exportFormat)
	}

	_ = exportBar.Add(1)
	fmt.Printf("\nReports saved to %s/\n", outputDir)
	return nil
}
